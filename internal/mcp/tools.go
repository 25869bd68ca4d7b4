// ABOUTME: MCP tool implementations for Beeminder goals and datapoints.
// ABOUTME: Validates arguments locally, then delegates to the API client.
package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harperreed/beeminder/internal/api"
	"github.com/harperreed/beeminder/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// list_goals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_goals",
		Description: "List all active goals for the current user, best presented as a table",
	}, s.handleListGoals)

	// get_archived_goals
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_archived_goals",
		Description: "List all archived goals for the current user",
	}, s.handleGetArchivedGoals)

	// get_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_goal",
		Description: "Get details for a specific goal, optionally including its datapoints",
	}, s.handleGetGoal)

	// create_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_goal",
		Description: "Create a new goal. Exactly two of goaldate, goalval, and rate are required; Beeminder derives the third",
	}, s.handleCreateGoal)

	// update_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "update_goal",
		Description: "Update fields of an existing goal (title, rate, target, units, fineprint)",
	}, s.handleUpdateGoal)

	// delete_goal
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_goal",
		Description: "Delete a goal and all its datapoints. This cannot be undone",
	}, s.handleDeleteGoal)

	// list_datapoints
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_datapoints",
		Description: "List datapoints for a goal, best presented as a table",
	}, s.handleListDatapoints)

	// create_datapoint
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_datapoint",
		Description: "Record a datapoint against a goal. Defaults to today in the user's timezone",
	}, s.handleCreateDatapoint)

	// create_datapoints
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "create_datapoints",
		Description: "Record multiple datapoints against a goal in one call",
	}, s.handleCreateDatapoints)

	// delete_datapoint
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_datapoint",
		Description: "Delete a datapoint from a goal by ID",
	}, s.handleDeleteDatapoint)

	// get_user
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_user",
		Description: "Get the current user's profile, timezone, and goal slugs",
	}, s.handleGetUser)
}

// Tool input/output types

type listGoalsInput struct{}

type goalListOutput struct {
	Goals []*models.Goal `json:"goals"`
	Count int            `json:"count"`
}

type getGoalInput struct {
	Slug       string `json:"slug" jsonschema:"The slug identifier for the goal"`
	Datapoints bool   `json:"datapoints,omitempty" jsonschema:"Include the goal's datapoints in the response"`
}

type createGoalInput struct {
	Slug       string   `json:"slug" jsonschema:"URL slug for the goal (e.g. 'run-miles')"`
	Title      string   `json:"title" jsonschema:"Display title for the goal"`
	GoalType   string   `json:"goal_type" jsonschema:"Goal type: hustler (do more), biker (odometer), fatloser (weight loss), gainer (gain weight), inboxer (inbox fewer), drinker (do less)"`
	Rate       *float64 `json:"rate,omitempty" jsonschema:"Slope of the red line per rate unit"`
	Goalval    *float64 `json:"goalval,omitempty" jsonschema:"Target value the red line will reach"`
	Goaldate   *int64   `json:"goaldate,omitempty" jsonschema:"Unix timestamp of the goal date"`
	Initval    *float64 `json:"initval,omitempty" jsonschema:"Initial value of the red line (e.g. current weight)"`
	Gunits     string   `json:"gunits,omitempty" jsonschema:"Goal units label (e.g. 'hours', 'pages', 'kg')"`
	Secret     bool     `json:"secret,omitempty" jsonschema:"Hide the goal from other users"`
	Datapublic bool     `json:"datapublic,omitempty" jsonschema:"Make the datapoints publicly visible"`
}

type updateGoalInput struct {
	Slug      string   `json:"slug" jsonschema:"The slug identifier for the goal"`
	Title     string   `json:"title,omitempty" jsonschema:"New title for the goal"`
	Rate      *float64 `json:"rate,omitempty" jsonschema:"New rate for the goal"`
	Goalval   *float64 `json:"goalval,omitempty" jsonschema:"New target value"`
	Goaldate  *int64   `json:"goaldate,omitempty" jsonschema:"New goal date as a Unix timestamp"`
	Runits    string   `json:"runits,omitempty" jsonschema:"New rate units: one of y, m, w, d, h"`
	Gunits    string   `json:"gunits,omitempty" jsonschema:"New goal units label"`
	Fineprint string   `json:"fineprint,omitempty" jsonschema:"New fineprint describing the commitment"`
}

type slugInput struct {
	Slug string `json:"slug" jsonschema:"The slug identifier for the goal"`
}

type listDatapointsInput struct {
	Slug  string `json:"slug" jsonschema:"The slug identifier for the goal"`
	Sort  string `json:"sort,omitempty" jsonschema:"Attribute to sort on, descending. Defaults to id"`
	Count int    `json:"count,omitempty" jsonschema:"Limit results to this many datapoints"`
	Page  int    `json:"page,omitempty" jsonschema:"Page number for pagination (1-indexed)"`
	Per   int    `json:"per,omitempty" jsonschema:"Results per page (default 25)"`
}

type datapointListOutput struct {
	Slug       string              `json:"slug"`
	Datapoints []*models.Datapoint `json:"datapoints"`
	Count      int                 `json:"count"`
}

type createDatapointInput struct {
	Slug      string  `json:"slug" jsonschema:"The slug identifier for the goal"`
	Value     float64 `json:"value" jsonschema:"The value for the datapoint"`
	Timestamp *int64  `json:"timestamp,omitempty" jsonschema:"Unix timestamp for the datapoint"`
	Daystamp  string  `json:"daystamp,omitempty" jsonschema:"Date stamp in YYYYMMDD format; defaults to today"`
	Comment   string  `json:"comment,omitempty" jsonschema:"Optional comment for the datapoint"`
	RequestID string  `json:"requestid,omitempty" jsonschema:"Idempotency key; generated when omitted"`
}

type datapointEntry struct {
	Value     float64 `json:"value" jsonschema:"The value for the datapoint"`
	Timestamp *int64  `json:"timestamp,omitempty" jsonschema:"Unix timestamp for the datapoint"`
	Daystamp  string  `json:"daystamp,omitempty" jsonschema:"Date stamp in YYYYMMDD format"`
	Comment   string  `json:"comment,omitempty" jsonschema:"Optional comment"`
	RequestID string  `json:"requestid,omitempty" jsonschema:"Idempotency key; generated when omitted"`
}

type createDatapointsInput struct {
	Slug       string           `json:"slug" jsonschema:"The slug identifier for the goal"`
	Datapoints []datapointEntry `json:"datapoints" jsonschema:"Datapoints to create"`
}

type deleteDatapointInput struct {
	Slug        string `json:"slug" jsonschema:"The slug identifier for the goal"`
	DatapointID string `json:"datapoint_id" jsonschema:"The ID of the datapoint to delete"`
}

type getUserInput struct{}

// textResult wraps a one-line human summary in the tool-response envelope.
func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(format, args...)}},
	}
}

// Tool handlers

func (s *Server) handleListGoals(ctx context.Context, req *mcp.CallToolRequest, input listGoalsInput) (*mcp.CallToolResult, goalListOutput, error) {
	goals, err := s.client.ListGoals(ctx)
	if err != nil {
		return nil, goalListOutput{}, fmt.Errorf("failed to list goals: %w", err)
	}

	emergencies := 0
	for _, g := range goals {
		if g.Beemergency() {
			emergencies++
		}
	}

	summary := fmt.Sprintf("%d active goals", len(goals))
	if emergencies > 0 {
		summary += fmt.Sprintf(", %d in beemergency", emergencies)
	}

	return textResult("%s", summary), goalListOutput{Goals: goals, Count: len(goals)}, nil
}

func (s *Server) handleGetArchivedGoals(ctx context.Context, req *mcp.CallToolRequest, input listGoalsInput) (*mcp.CallToolResult, goalListOutput, error) {
	goals, err := s.client.ListArchivedGoals(ctx)
	if err != nil {
		return nil, goalListOutput{}, fmt.Errorf("failed to list archived goals: %w", err)
	}

	return textResult("%d archived goals", len(goals)), goalListOutput{Goals: goals, Count: len(goals)}, nil
}

func (s *Server) handleGetGoal(ctx context.Context, req *mcp.CallToolRequest, input getGoalInput) (*mcp.CallToolResult, *models.Goal, error) {
	if input.Slug == "" {
		return nil, nil, &models.FieldError{Field: "slug", Reason: "slug is required"}
	}

	goal, err := s.client.GetGoal(ctx, input.Slug, input.Datapoints)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch goal %q: %w", input.Slug, err)
	}

	return textResult("%s (%s): %s, %d safe days", goal.Slug, goal.TypeName(), goal.Title, goal.Safebuf), goal, nil
}

func (s *Server) handleCreateGoal(ctx context.Context, req *mcp.CallToolRequest, input createGoalInput) (*mcp.CallToolResult, *models.Goal, error) {
	if input.Slug == "" {
		return nil, nil, &models.FieldError{Field: "slug", Reason: "slug is required"}
	}
	if input.Title == "" {
		return nil, nil, &models.FieldError{Field: "title", Reason: "title is required"}
	}
	if err := models.ValidateGoalType(input.GoalType); err != nil {
		return nil, nil, err
	}
	if err := models.ValidateCommitment(input.Goaldate, input.Goalval, input.Rate); err != nil {
		return nil, nil, err
	}
	goalType := models.GoalType(input.GoalType)
	if err := models.ValidateRateDirection(goalType, input.Rate); err != nil {
		return nil, nil, err
	}

	gunits := input.Gunits
	if gunits == "" {
		if p, ok := models.LookupPolicy(goalType); ok {
			gunits = p.Units
		}
	}

	goal, err := s.client.CreateGoal(ctx, api.GoalParams{
		Slug:       input.Slug,
		Title:      input.Title,
		GoalType:   goalType,
		Goaldate:   input.Goaldate,
		Goalval:    input.Goalval,
		Rate:       input.Rate,
		Initval:    input.Initval,
		Gunits:     gunits,
		Secret:     input.Secret,
		Datapublic: input.Datapublic,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create goal: %w", err)
	}

	return textResult("Created %s goal %s: %s", goal.TypeName(), goal.Slug, goal.Title), goal, nil
}

func (s *Server) handleUpdateGoal(ctx context.Context, req *mcp.CallToolRequest, input updateGoalInput) (*mcp.CallToolResult, *models.Goal, error) {
	if input.Slug == "" {
		return nil, nil, &models.FieldError{Field: "slug", Reason: "slug is required"}
	}

	update := api.GoalUpdate{
		Title:     input.Title,
		Goaldate:  input.Goaldate,
		Goalval:   input.Goalval,
		Rate:      input.Rate,
		Runits:    input.Runits,
		Gunits:    input.Gunits,
		Fineprint: input.Fineprint,
	}
	if update.Title == "" && update.Goaldate == nil && update.Goalval == nil &&
		update.Rate == nil && update.Runits == "" && update.Gunits == "" && update.Fineprint == "" {
		return nil, nil, &models.FieldError{Field: "title", Reason: "at least one field to update is required"}
	}

	goal, err := s.client.UpdateGoal(ctx, input.Slug, update)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to update goal %q: %w", input.Slug, err)
	}

	return textResult("Updated goal %s: %s", goal.Slug, goal.Title), goal, nil
}

func (s *Server) handleDeleteGoal(ctx context.Context, req *mcp.CallToolRequest, input slugInput) (*mcp.CallToolResult, *models.Goal, error) {
	if input.Slug == "" {
		return nil, nil, &models.FieldError{Field: "slug", Reason: "slug is required"}
	}

	goal, err := s.client.DeleteGoal(ctx, input.Slug)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to delete goal %q: %w", input.Slug, err)
	}

	return textResult("Deleted goal %s: %s", goal.Slug, goal.Title), goal, nil
}

func (s *Server) handleListDatapoints(ctx context.Context, req *mcp.CallToolRequest, input listDatapointsInput) (*mcp.CallToolResult, datapointListOutput, error) {
	if input.Slug == "" {
		return nil, datapointListOutput{}, &models.FieldError{Field: "slug", Reason: "slug is required"}
	}

	datapoints, err := s.client.ListDatapoints(ctx, input.Slug, api.DatapointQuery{
		Sort:  input.Sort,
		Count: input.Count,
		Page:  input.Page,
		Per:   input.Per,
	})
	if err != nil {
		return nil, datapointListOutput{}, fmt.Errorf("failed to list datapoints for %q: %w", input.Slug, err)
	}

	return textResult("%d datapoints for %s", len(datapoints), input.Slug), datapointListOutput{
		Slug:       input.Slug,
		Datapoints: datapoints,
		Count:      len(datapoints),
	}, nil
}

func (s *Server) handleCreateDatapoint(ctx context.Context, req *mcp.CallToolRequest, input createDatapointInput) (*mcp.CallToolResult, *models.Datapoint, error) {
	if input.Slug == "" {
		return nil, nil, &models.FieldError{Field: "slug", Reason: "slug is required"}
	}
	if err := models.ValidateDaystamp(input.Daystamp); err != nil {
		return nil, nil, err
	}

	// Pre-fetch the goal: an unknown slug fails here with no partial state,
	// and the goal type drives value validation.
	goal, err := s.client.GetGoal(ctx, input.Slug, false)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch goal %q: %w", input.Slug, err)
	}
	if err := models.ValidateDatapointValue(goal.GoalType, input.Value); err != nil {
		return nil, nil, err
	}

	requestID := input.RequestID
	if requestID == "" {
		requestID = uuid.New().String()
	}

	datapoint, err := s.client.CreateDatapoint(ctx, input.Slug, api.DatapointParams{
		Value:     input.Value,
		Timestamp: input.Timestamp,
		Daystamp:  input.Daystamp,
		Comment:   input.Comment,
		RequestID: requestID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create datapoint: %w", err)
	}

	return textResult("Added %g to %s on %s (ID: %s)", datapoint.Value, input.Slug, datapoint.Daystamp, datapoint.ID), datapoint, nil
}

func (s *Server) handleCreateDatapoints(ctx context.Context, req *mcp.CallToolRequest, input createDatapointsInput) (*mcp.CallToolResult, datapointListOutput, error) {
	if input.Slug == "" {
		return nil, datapointListOutput{}, &models.FieldError{Field: "slug", Reason: "slug is required"}
	}
	if len(input.Datapoints) == 0 {
		return nil, datapointListOutput{}, &models.FieldError{Field: "datapoints", Reason: "at least one datapoint is required"}
	}
	for i, entry := range input.Datapoints {
		if err := models.ValidateDaystamp(entry.Daystamp); err != nil {
			return nil, datapointListOutput{}, &models.FieldError{
				Field:  fmt.Sprintf("datapoints[%d].daystamp", i),
				Reason: err.Error(),
			}
		}
	}

	goal, err := s.client.GetGoal(ctx, input.Slug, false)
	if err != nil {
		return nil, datapointListOutput{}, fmt.Errorf("failed to fetch goal %q: %w", input.Slug, err)
	}

	params := make([]api.DatapointParams, 0, len(input.Datapoints))
	for i, entry := range input.Datapoints {
		if err := models.ValidateDatapointValue(goal.GoalType, entry.Value); err != nil {
			return nil, datapointListOutput{}, &models.FieldError{
				Field:  fmt.Sprintf("datapoints[%d].value", i),
				Reason: err.Error(),
			}
		}
		requestID := entry.RequestID
		if requestID == "" {
			requestID = uuid.New().String()
		}
		params = append(params, api.DatapointParams{
			Value:     entry.Value,
			Timestamp: entry.Timestamp,
			Daystamp:  entry.Daystamp,
			Comment:   entry.Comment,
			RequestID: requestID,
		})
	}

	created, err := s.client.CreateDatapoints(ctx, input.Slug, params)
	if err != nil {
		return nil, datapointListOutput{}, fmt.Errorf("failed to create datapoints: %w", err)
	}

	return textResult("Added %d datapoints to %s", len(created), input.Slug), datapointListOutput{
		Slug:       input.Slug,
		Datapoints: created,
		Count:      len(created),
	}, nil
}

func (s *Server) handleDeleteDatapoint(ctx context.Context, req *mcp.CallToolRequest, input deleteDatapointInput) (*mcp.CallToolResult, *models.Datapoint, error) {
	if input.Slug == "" {
		return nil, nil, &models.FieldError{Field: "slug", Reason: "slug is required"}
	}
	if input.DatapointID == "" {
		return nil, nil, &models.FieldError{Field: "datapoint_id", Reason: "datapoint_id is required"}
	}

	datapoint, err := s.client.DeleteDatapoint(ctx, input.Slug, input.DatapointID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to delete datapoint %q: %w", input.DatapointID, err)
	}

	return textResult("Deleted datapoint %s (%g) from %s", datapoint.ID, datapoint.Value, input.Slug), datapoint, nil
}

func (s *Server) handleGetUser(ctx context.Context, req *mcp.CallToolRequest, input getUserInput) (*mcp.CallToolResult, *models.User, error) {
	user, err := s.client.GetUser(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	summary := fmt.Sprintf("%s (%s), %d goals", user.Username, user.Timezone, len(user.Goals))
	if len(user.Goals) > 0 {
		summary += ": " + strings.Join(user.Goals, ", ")
	}
	return textResult("%s", summary), user, nil
}
