// ABOUTME: Datapoint operations for the Beeminder API client.
// ABOUTME: Covers list, single and batch create, and delete.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/harperreed/beeminder/internal/models"
)

// DatapointParams are the fields accepted when creating a datapoint.
// Timestamp and Daystamp are alternatives; with neither set the server
// stamps the point "today" in the user's timezone. RequestID makes the
// create idempotent on the server side.
type DatapointParams struct {
	Value     float64
	Timestamp *int64
	Daystamp  string
	Comment   string
	RequestID string
}

func (p DatapointParams) values() url.Values {
	v := url.Values{}
	v.Set("value", strconv.FormatFloat(p.Value, 'f', -1, 64))
	if p.Timestamp != nil {
		v.Set("timestamp", strconv.FormatInt(*p.Timestamp, 10))
	}
	if p.Daystamp != "" {
		v.Set("daystamp", p.Daystamp)
	}
	if p.Comment != "" {
		v.Set("comment", p.Comment)
	}
	if p.RequestID != "" {
		v.Set("requestid", p.RequestID)
	}
	return v
}

// DatapointQuery controls listing order and pagination. Zero values are
// omitted and the API defaults apply.
type DatapointQuery struct {
	Sort  string
	Count int
	Page  int
	Per   int
}

func (q DatapointQuery) values() url.Values {
	v := url.Values{}
	if q.Sort != "" {
		v.Set("sort", q.Sort)
	}
	if q.Count > 0 {
		v.Set("count", strconv.Itoa(q.Count))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Per > 0 {
		v.Set("per", strconv.Itoa(q.Per))
	}
	return v
}

// ListDatapoints returns datapoints for a goal. An unknown slug yields
// KindNotFound.
func (c *Client) ListDatapoints(ctx context.Context, slug string, query DatapointQuery) ([]*models.Datapoint, error) {
	var datapoints []*models.Datapoint
	path := c.userPath("goals", url.PathEscape(slug), "datapoints")
	if err := c.do(ctx, http.MethodGet, path, query.values(), &datapoints); err != nil {
		return nil, err
	}
	return datapoints, nil
}

// CreateDatapoint records a single datapoint against a goal.
func (c *Client) CreateDatapoint(ctx context.Context, slug string, params DatapointParams) (*models.Datapoint, error) {
	var datapoint models.Datapoint
	path := c.userPath("goals", url.PathEscape(slug), "datapoints")
	if err := c.do(ctx, http.MethodPost, path, params.values(), &datapoint); err != nil {
		return nil, err
	}
	return &datapoint, nil
}

// CreateDatapoints records multiple datapoints in one call via the
// create_all endpoint.
func (c *Client) CreateDatapoints(ctx context.Context, slug string, params []DatapointParams) ([]*models.Datapoint, error) {
	batch := make([]map[string]any, 0, len(params))
	for _, p := range params {
		entry := map[string]any{"value": p.Value}
		if p.Timestamp != nil {
			entry["timestamp"] = *p.Timestamp
		}
		if p.Daystamp != "" {
			entry["daystamp"] = p.Daystamp
		}
		if p.Comment != "" {
			entry["comment"] = p.Comment
		}
		if p.RequestID != "" {
			entry["requestid"] = p.RequestID
		}
		batch = append(batch, entry)
	}

	encoded, err := json.Marshal(batch)
	if err != nil {
		return nil, &Error{Kind: KindUnknown, Message: fmt.Sprintf("encode datapoints: %v", err), cause: err}
	}

	v := url.Values{}
	v.Set("datapoints", string(encoded))

	var datapoints []*models.Datapoint
	path := c.userPath("goals", url.PathEscape(slug), "datapoints", "create_all")
	if err := c.do(ctx, http.MethodPost, path, v, &datapoints); err != nil {
		return nil, err
	}
	return datapoints, nil
}

// DeleteDatapoint removes a datapoint by ID and returns the deleted entity.
func (c *Client) DeleteDatapoint(ctx context.Context, slug, id string) (*models.Datapoint, error) {
	var datapoint models.Datapoint
	path := c.userPath("goals", url.PathEscape(slug), "datapoints", url.PathEscape(id))
	if err := c.do(ctx, http.MethodDelete, path, nil, &datapoint); err != nil {
		return nil, err
	}
	return &datapoint, nil
}
