// ABOUTME: Classified error taxonomy for the Beeminder API client.
// ABOUTME: Keeps transport details from leaking past the adapter boundary.
package api

import (
	"errors"
	"fmt"
)

// Kind classifies an API failure so callers can branch without parsing
// messages.
type Kind int

const (
	KindUnknown Kind = iota
	// KindNotFound means the goal or datapoint does not exist remotely.
	KindNotFound
	// KindUnauthorized means the credentials were rejected.
	KindUnauthorized
	// KindUnavailable means the remote service could not be reached.
	KindUnavailable
	// KindTimeout means the call was cancelled or timed out locally.
	KindTimeout
	// KindUpstream means the remote service returned an error envelope or
	// a malformed response.
	KindUpstream
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindUnavailable:
		return "remote_unavailable"
	case KindTimeout:
		return "timeout"
	case KindUpstream:
		return "upstream_error"
	default:
		return "unknown"
	}
}

// Error is the single error type the client returns. StatusCode is zero
// when the failure happened before an HTTP response arrived.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	cause      error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("beeminder: %s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("beeminder: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf extracts the classification from an error chain, or KindUnknown
// for errors that did not come from this client.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return KindUnknown
}

// IsNotFound reports whether the error chain carries KindNotFound.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}
