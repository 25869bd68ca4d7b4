// ABOUTME: Goal operations for the Beeminder API client.
// ABOUTME: Covers list, get, create, update, and delete.
package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/harperreed/beeminder/internal/models"
)

// GoalParams are the fields accepted when creating a goal. Exactly two of
// Goaldate, Goalval, and Rate must be set; the server derives the third.
type GoalParams struct {
	Slug       string
	Title      string
	GoalType   models.GoalType
	Goaldate   *int64
	Goalval    *float64
	Rate       *float64
	Initval    *float64
	Gunits     string
	Secret     bool
	Datapublic bool
}

func (p GoalParams) values() url.Values {
	v := url.Values{}
	v.Set("slug", p.Slug)
	v.Set("title", p.Title)
	v.Set("goal_type", string(p.GoalType))
	if p.Goaldate != nil {
		v.Set("goaldate", strconv.FormatInt(*p.Goaldate, 10))
	}
	if p.Goalval != nil {
		v.Set("goalval", strconv.FormatFloat(*p.Goalval, 'f', -1, 64))
	}
	if p.Rate != nil {
		v.Set("rate", strconv.FormatFloat(*p.Rate, 'f', -1, 64))
	}
	if p.Initval != nil {
		v.Set("initval", strconv.FormatFloat(*p.Initval, 'f', -1, 64))
	}
	if p.Gunits != "" {
		v.Set("gunits", p.Gunits)
	}
	if p.Secret {
		v.Set("secret", "true")
	}
	if p.Datapublic {
		v.Set("datapublic", "true")
	}
	return v
}

// GoalUpdate holds the mutable goal fields. Nil pointers and empty strings
// are left untouched remotely.
type GoalUpdate struct {
	Title     string
	Goaldate  *int64
	Goalval   *float64
	Rate      *float64
	Runits    string
	Gunits    string
	Fineprint string
	Secret    *bool
}

func (u GoalUpdate) values() url.Values {
	v := url.Values{}
	if u.Title != "" {
		v.Set("title", u.Title)
	}
	if u.Goaldate != nil {
		v.Set("goaldate", strconv.FormatInt(*u.Goaldate, 10))
	}
	if u.Goalval != nil {
		v.Set("goalval", strconv.FormatFloat(*u.Goalval, 'f', -1, 64))
	}
	if u.Rate != nil {
		v.Set("rate", strconv.FormatFloat(*u.Rate, 'f', -1, 64))
	}
	if u.Runits != "" {
		v.Set("runits", u.Runits)
	}
	if u.Gunits != "" {
		v.Set("gunits", u.Gunits)
	}
	if u.Fineprint != "" {
		v.Set("fineprint", u.Fineprint)
	}
	if u.Secret != nil {
		v.Set("secret", strconv.FormatBool(*u.Secret))
	}
	return v
}

// ListGoals returns all active goals for the credentialed user, in
// urgencykey order as the API delivers them.
func (c *Client) ListGoals(ctx context.Context) ([]*models.Goal, error) {
	var goals []*models.Goal
	if err := c.do(ctx, http.MethodGet, c.userPath("goals"), nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// ListArchivedGoals returns the user's archived goals.
func (c *Client) ListArchivedGoals(ctx context.Context) ([]*models.Goal, error) {
	var goals []*models.Goal
	if err := c.do(ctx, http.MethodGet, c.userPath("goals", "archived"), nil, &goals); err != nil {
		return nil, err
	}
	return goals, nil
}

// GetGoal fetches a single goal by slug, optionally including its
// datapoints.
func (c *Client) GetGoal(ctx context.Context, slug string, withDatapoints bool) (*models.Goal, error) {
	params := url.Values{}
	if withDatapoints {
		params.Set("datapoints", "true")
	}
	var goal models.Goal
	if err := c.do(ctx, http.MethodGet, c.userPath("goals", url.PathEscape(slug)), params, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// CreateGoal creates a new goal and returns the remote-reported entity.
func (c *Client) CreateGoal(ctx context.Context, params GoalParams) (*models.Goal, error) {
	var goal models.Goal
	if err := c.do(ctx, http.MethodPost, c.userPath("goals"), params.values(), &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// UpdateGoal applies the given fields to an existing goal.
func (c *Client) UpdateGoal(ctx context.Context, slug string, update GoalUpdate) (*models.Goal, error) {
	var goal models.Goal
	if err := c.do(ctx, http.MethodPut, c.userPath("goals", url.PathEscape(slug)), update.values(), &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

// DeleteGoal removes a goal. Deleting an already-deleted slug yields
// KindNotFound.
func (c *Client) DeleteGoal(ctx context.Context, slug string) (*models.Goal, error) {
	var goal models.Goal
	if err := c.do(ctx, http.MethodDelete, c.userPath("goals", url.PathEscape(slug)), nil, &goal); err != nil {
		return nil, err
	}
	return &goal, nil
}
