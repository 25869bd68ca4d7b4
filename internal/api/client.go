// ABOUTME: HTTP client for the Beeminder REST API.
// ABOUTME: Handles authentication, request encoding, and error classification.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/harperreed/beeminder/internal/config"
)

// DefaultBaseURL is the production Beeminder API endpoint.
const DefaultBaseURL = "https://www.beeminder.com/api/v1"

const defaultTimeout = 30 * time.Second

// Client issues authenticated calls against the Beeminder API. It holds no
// mutable state beyond the credentials it was constructed with, so a single
// instance is safe to share. Failures come back as *Error; no call is
// retried.
type Client struct {
	baseURL string
	httpc   *http.Client
	creds   config.Credentials
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint, mainly for tests.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.httpc = h
	}
}

// New creates a client scoped to the credentialed user.
func New(creds config.Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
		creds:   creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Username returns the username the client is scoped to.
func (c *Client) Username() string {
	return c.creds.Username
}

// userPath builds a path under the credentialed user.
func (c *Client) userPath(segments ...string) string {
	parts := append([]string{"users", url.PathEscape(c.creds.Username)}, segments...)
	return "/" + strings.Join(parts, "/") + ".json"
}

// do issues one request and decodes the JSON response into out. Params go
// in the query string for GET and DELETE and in a form body otherwise,
// which is what the Beeminder API expects.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("auth_token", c.creds.APIKey)

	var (
		reqURL = c.baseURL + path
		body   io.Reader
	)
	if method == http.MethodGet || method == http.MethodDelete {
		reqURL += "?" + params.Encode()
	} else {
		body = strings.NewReader(params.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return &Error{Kind: KindUnknown, Message: err.Error(), cause: err}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return classifyTransport(ctx, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransport(ctx, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{
			Kind:       KindUpstream,
			Message:    fmt.Sprintf("malformed response: %v", err),
			StatusCode: resp.StatusCode,
			cause:      err,
		}
	}
	return nil
}

// classifyTransport maps pre-response failures. Cancellation and deadline
// expiry must surface as KindTimeout, never hang or masquerade as a remote
// fault.
func classifyTransport(ctx context.Context, err error) *Error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &Error{Kind: KindTimeout, Message: ctxErr.Error(), cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindTimeout, Message: err.Error(), cause: err}
	}
	return &Error{Kind: KindUnavailable, Message: err.Error(), cause: err}
}

func classifyStatus(status int, body []byte) *Error {
	msg := upstreamMessage(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if msg == "" {
			msg = "bad credentials"
		}
		return &Error{Kind: KindUnauthorized, Message: msg, StatusCode: status}
	case status == http.StatusNotFound:
		if msg == "" {
			msg = "not found"
		}
		return &Error{Kind: KindNotFound, Message: msg, StatusCode: status}
	default:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{Kind: KindUpstream, Message: msg, StatusCode: status}
	}
}

// upstreamMessage pulls the message out of Beeminder's error envelope,
// which is either {"errors": "..."} or {"errors": {"message": "..."}}.
func upstreamMessage(body []byte) string {
	var envelope struct {
		Errors json.RawMessage `json:"errors"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil || len(envelope.Errors) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(envelope.Errors, &s); err == nil {
		return s
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(envelope.Errors, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}
	return string(envelope.Errors)
}
