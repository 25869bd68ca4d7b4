// ABOUTME: Tests for MCP server, tools, and resources.
// ABOUTME: Covers validation, dispatch, error mapping, and round-trips.
package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/harperreed/beeminder/internal/api"
	"github.com/harperreed/beeminder/internal/api/apitest"
	"github.com/harperreed/beeminder/internal/config"
	"github.com/harperreed/beeminder/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// setupServer creates an MCP server backed by a fake Beeminder service.
func setupServer(t *testing.T) (*Server, *apitest.Server) {
	t.Helper()

	fake := apitest.NewServer("alice", "secret-token")
	t.Cleanup(fake.Close)

	creds := config.Credentials{Username: "alice", APIKey: "secret-token"}
	client := api.New(creds, api.WithBaseURL(fake.URL()))

	server, err := NewServer(client)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return server, fake
}

func seedBikerGoal(fake *apitest.Server, slug string) {
	fake.AddGoal(&models.Goal{
		Slug:     slug,
		Title:    "Running",
		GoalType: models.GoalBiker,
		Safebuf:  5,
	})
}

func TestNewServer(t *testing.T) {
	server, _ := setupServer(t)

	if server.mcpServer == nil {
		t.Error("Expected non-nil mcpServer")
	}
	if server.client == nil {
		t.Error("Expected non-nil client")
	}
}

func TestNewServerNilClient(t *testing.T) {
	if _, err := NewServer(nil); err == nil {
		t.Error("Expected error for nil client")
	}
}

func TestHandleCreateGoalValidation(t *testing.T) {
	rate := 1.0
	negRate := -1.0
	goalval := 100.0
	goaldate := int64(1767225600)

	tests := []struct {
		name      string
		input     createGoalInput
		wantField string
	}{
		{
			name:      "missing slug",
			input:     createGoalInput{Title: "Reading", GoalType: "hustler", Rate: &rate, Goalval: &goalval},
			wantField: "slug",
		},
		{
			name:      "missing title",
			input:     createGoalInput{Slug: "pages", GoalType: "hustler", Rate: &rate, Goalval: &goalval},
			wantField: "title",
		},
		{
			name:      "unknown goal type",
			input:     createGoalInput{Slug: "pages", Title: "Reading", GoalType: "sprinter", Rate: &rate, Goalval: &goalval},
			wantField: "goal_type",
		},
		{
			name:      "only one commitment field",
			input:     createGoalInput{Slug: "pages", Title: "Reading", GoalType: "hustler", Rate: &rate},
			wantField: "rate",
		},
		{
			name:      "all three commitment fields",
			input:     createGoalInput{Slug: "pages", Title: "Reading", GoalType: "hustler", Rate: &rate, Goalval: &goalval, Goaldate: &goaldate},
			wantField: "rate",
		},
		{
			name:      "rate against goal direction",
			input:     createGoalInput{Slug: "weight", Title: "Weight", GoalType: "fatloser", Rate: &rate, Goalval: &goalval},
			wantField: "rate",
		},
		{
			name:      "negative rate on do-more",
			input:     createGoalInput{Slug: "pages", Title: "Reading", GoalType: "hustler", Rate: &negRate, Goalval: &goalval},
			wantField: "rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, fake := setupServer(t)

			_, _, err := server.handleCreateGoal(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q should name field %q", err.Error(), tt.wantField)
			}
			if n := fake.RequestCount(); n != 0 {
				t.Errorf("validation failure issued %d network calls, want 0", n)
			}
		})
	}
}

func TestHandleCreateGoalRoundTrip(t *testing.T) {
	server, _ := setupServer(t)
	ctx := context.Background()

	rate := 1.5
	goalval := 300.0
	result, created, err := server.handleCreateGoal(ctx, &mcp.CallToolRequest{}, createGoalInput{
		Slug:     "pages",
		Title:    "Reading",
		GoalType: "hustler",
		Rate:     &rate,
		Goalval:  &goalval,
	})
	if err != nil {
		t.Fatalf("create_goal failed: %v", err)
	}
	if created.Slug != "pages" {
		t.Errorf("Slug = %s, want pages", created.Slug)
	}
	if created.GoalType != models.GoalHustler {
		t.Errorf("GoalType = %s, want hustler", created.GoalType)
	}
	if created.Gunits != "units" {
		t.Errorf("Gunits = %s, want policy default units", created.Gunits)
	}
	if result == nil || len(result.Content) == 0 {
		t.Fatal("expected a summary in the tool result")
	}

	_, fetched, err := server.handleGetGoal(ctx, &mcp.CallToolRequest{}, getGoalInput{Slug: "pages"})
	if err != nil {
		t.Fatalf("get_goal failed: %v", err)
	}
	if fetched.Slug != created.Slug || fetched.Title != created.Title || fetched.GoalType != created.GoalType {
		t.Errorf("round-trip mismatch: got %+v, want %+v", fetched, created)
	}
	if fetched.Rate == nil || *fetched.Rate != 1.5 {
		t.Errorf("Rate not preserved: %v", fetched.Rate)
	}
}

func TestHandleGetGoalNotFound(t *testing.T) {
	server, _ := setupServer(t)

	_, _, err := server.handleGetGoal(context.Background(), &mcp.CallToolRequest{}, getGoalInput{Slug: "missing"})
	if !api.IsNotFound(err) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestHandleUpdateGoal(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")

	rate := 10.0
	_, updated, err := server.handleUpdateGoal(context.Background(), &mcp.CallToolRequest{}, updateGoalInput{
		Slug:  "run-miles",
		Title: "Marathon Training",
		Rate:  &rate,
	})
	if err != nil {
		t.Fatalf("update_goal failed: %v", err)
	}
	if updated.Title != "Marathon Training" {
		t.Errorf("Title = %s, want Marathon Training", updated.Title)
	}
	if updated.Rate == nil || *updated.Rate != 10.0 {
		t.Errorf("Rate not updated: %v", updated.Rate)
	}
}

func TestHandleUpdateGoalNoFields(t *testing.T) {
	server, fake := setupServer(t)

	_, _, err := server.handleUpdateGoal(context.Background(), &mcp.CallToolRequest{}, updateGoalInput{Slug: "run-miles"})
	if err == nil {
		t.Fatal("expected error for empty update")
	}
	if n := fake.RequestCount(); n != 0 {
		t.Errorf("empty update issued %d network calls, want 0", n)
	}
}

func TestHandleDeleteGoalIdempotence(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")
	ctx := context.Background()

	_, deleted, err := server.handleDeleteGoal(ctx, &mcp.CallToolRequest{}, slugInput{Slug: "run-miles"})
	if err != nil {
		t.Fatalf("first delete failed: %v", err)
	}
	if deleted.Slug != "run-miles" {
		t.Errorf("Slug = %s, want run-miles", deleted.Slug)
	}

	_, _, err = server.handleDeleteGoal(ctx, &mcp.CallToolRequest{}, slugInput{Slug: "run-miles"})
	if !api.IsNotFound(err) {
		t.Errorf("second delete: got %v, want not found", err)
	}
}

func TestHandleCreateDatapoint(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")
	ctx := context.Background()

	_, dp, err := server.handleCreateDatapoint(ctx, &mcp.CallToolRequest{}, createDatapointInput{
		Slug:     "run-miles",
		Value:    5.2,
		Daystamp: "2024-01-01",
		Comment:  "new year run",
	})
	if err != nil {
		t.Fatalf("create_datapoint failed: %v", err)
	}
	if dp.Value != 5.2 {
		t.Errorf("Value = %g, want 5.2", dp.Value)
	}
	if dp.Daystamp != "20240101" {
		t.Errorf("Daystamp = %s, want 20240101", dp.Daystamp)
	}
	if dp.RequestID == "" {
		t.Error("expected a generated requestid")
	}

	_, listed, err := server.handleListDatapoints(ctx, &mcp.CallToolRequest{}, listDatapointsInput{Slug: "run-miles"})
	if err != nil {
		t.Fatalf("list_datapoints failed: %v", err)
	}
	if listed.Count != 1 {
		t.Fatalf("Count = %d, want 1", listed.Count)
	}
	if listed.Datapoints[0].Value != 5.2 || listed.Datapoints[0].Daystamp != "20240101" {
		t.Errorf("listed datapoint = %+v, want value 5.2 on 20240101", listed.Datapoints[0])
	}
}

func TestHandleCreateDatapointUnknownGoal(t *testing.T) {
	server, _ := setupServer(t)

	_, _, err := server.handleCreateDatapoint(context.Background(), &mcp.CallToolRequest{}, createDatapointInput{
		Slug:  "does-not-exist",
		Value: 1,
	})
	if !api.IsNotFound(err) {
		t.Errorf("got %v, want not found", err)
	}
}

func TestHandleCreateDatapointValidation(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")

	tests := []struct {
		name      string
		input     createDatapointInput
		wantField string
		wantCalls int
	}{
		{
			name:      "missing slug",
			input:     createDatapointInput{Value: 1},
			wantField: "slug",
			wantCalls: 0,
		},
		{
			name:      "bad daystamp",
			input:     createDatapointInput{Slug: "run-miles", Value: 1, Daystamp: "jan 1"},
			wantField: "daystamp",
			wantCalls: 0,
		},
		{
			name:      "negative odometer reading",
			input:     createDatapointInput{Slug: "run-miles", Value: -3},
			wantField: "value",
			wantCalls: 1, // the goal pre-fetch, no create
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := fake.RequestCount()
			_, _, err := server.handleCreateDatapoint(context.Background(), &mcp.CallToolRequest{}, tt.input)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantField) {
				t.Errorf("error %q should name field %q", err.Error(), tt.wantField)
			}
			if n := fake.RequestCount() - before; n != tt.wantCalls {
				t.Errorf("issued %d network calls, want %d", n, tt.wantCalls)
			}
		})
	}
}

func TestHandleCreateDatapoints(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")
	ctx := context.Background()

	ts := int64(1704067200)
	_, out, err := server.handleCreateDatapoints(ctx, &mcp.CallToolRequest{}, createDatapointsInput{
		Slug: "run-miles",
		Datapoints: []datapointEntry{
			{Value: 5.2, Timestamp: &ts},
			{Value: 3.1, Comment: "recovery"},
		},
	})
	if err != nil {
		t.Fatalf("create_datapoints failed: %v", err)
	}
	if out.Count != 2 {
		t.Fatalf("Count = %d, want 2", out.Count)
	}
	for _, dp := range out.Datapoints {
		if dp.RequestID == "" {
			t.Error("expected generated requestid on batch entries")
		}
	}
}

func TestHandleCreateDatapointsValidation(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")

	_, _, err := server.handleCreateDatapoints(context.Background(), &mcp.CallToolRequest{}, createDatapointsInput{
		Slug: "run-miles",
	})
	if err == nil || !strings.Contains(err.Error(), "datapoints") {
		t.Errorf("got %v, want error naming datapoints", err)
	}

	_, _, err = server.handleCreateDatapoints(context.Background(), &mcp.CallToolRequest{}, createDatapointsInput{
		Slug:       "run-miles",
		Datapoints: []datapointEntry{{Value: 1}, {Value: -2}},
	})
	if err == nil || !strings.Contains(err.Error(), "datapoints[1].value") {
		t.Errorf("got %v, want error naming datapoints[1].value", err)
	}
}

func TestHandleDeleteDatapoint(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")
	ctx := context.Background()

	_, dp, err := server.handleCreateDatapoint(ctx, &mcp.CallToolRequest{}, createDatapointInput{
		Slug:  "run-miles",
		Value: 5.2,
	})
	if err != nil {
		t.Fatalf("create_datapoint failed: %v", err)
	}

	_, deleted, err := server.handleDeleteDatapoint(ctx, &mcp.CallToolRequest{}, deleteDatapointInput{
		Slug:        "run-miles",
		DatapointID: dp.ID,
	})
	if err != nil {
		t.Fatalf("delete_datapoint failed: %v", err)
	}
	if deleted.ID != dp.ID {
		t.Errorf("ID = %s, want %s", deleted.ID, dp.ID)
	}

	_, _, err = server.handleDeleteDatapoint(ctx, &mcp.CallToolRequest{}, deleteDatapointInput{
		Slug:        "run-miles",
		DatapointID: dp.ID,
	})
	if !api.IsNotFound(err) {
		t.Errorf("second delete: got %v, want not found", err)
	}
}

func TestHandleListGoals(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")
	fake.AddGoal(&models.Goal{Slug: "inbox", Title: "Inbox Zero", GoalType: models.GoalInboxer, Safebuf: 0})

	result, out, err := server.handleListGoals(context.Background(), &mcp.CallToolRequest{}, listGoalsInput{})
	if err != nil {
		t.Fatalf("list_goals failed: %v", err)
	}
	if out.Count != 2 {
		t.Errorf("Count = %d, want 2", out.Count)
	}

	text := result.Content[0].(*mcp.TextContent).Text
	if !strings.Contains(text, "beemergency") {
		t.Errorf("summary %q should mention the beemergency", text)
	}
}

func TestHandleGetUser(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")

	_, user, err := server.handleGetUser(context.Background(), &mcp.CallToolRequest{}, getUserInput{})
	if err != nil {
		t.Fatalf("get_user failed: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %s, want alice", user.Username)
	}
	if len(user.Goals) != 1 || user.Goals[0] != "run-miles" {
		t.Errorf("Goals = %v, want [run-miles]", user.Goals)
	}
}

func TestHandleGetUserUnauthorized(t *testing.T) {
	fake := apitest.NewServer("alice", "secret-token")
	t.Cleanup(fake.Close)

	creds := config.Credentials{Username: "alice", APIKey: "wrong-token"}
	client := api.New(creds, api.WithBaseURL(fake.URL()))
	server, err := NewServer(client)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}

	_, _, err = server.handleGetUser(context.Background(), &mcp.CallToolRequest{}, getUserInput{})
	if api.KindOf(err) != api.KindUnauthorized {
		t.Errorf("got %v, want unauthorized", err)
	}
}

func TestHandleGoalsResource(t *testing.T) {
	server, fake := setupServer(t)
	seedBikerGoal(fake, "run-miles")

	result, err := server.handleGoalsResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("goals resource failed: %v", err)
	}
	if result.Contents[0].URI != "beeminder://goals" {
		t.Errorf("URI = %s, want beeminder://goals", result.Contents[0].URI)
	}
	if result.Contents[0].MIMEType != "application/json" {
		t.Errorf("MIMEType = %s, want application/json", result.Contents[0].MIMEType)
	}
	if !strings.Contains(result.Contents[0].Text, "run-miles") {
		t.Error("expected run-miles in resource text")
	}
}

func TestHandleFrontburnerResource(t *testing.T) {
	server, fake := setupServer(t)
	fake.AddGoal(&models.Goal{Slug: "safe", Title: "Safe", GoalType: models.GoalHustler, Safebuf: 10})
	fake.AddGoal(&models.Goal{Slug: "urgent", Title: "Urgent", GoalType: models.GoalHustler, Safebuf: 0})
	fake.AddGoal(&models.Goal{Slug: "done", Title: "Done", GoalType: models.GoalHustler, Safebuf: 0, Won: true})

	result, err := server.handleFrontburnerResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("frontburner resource failed: %v", err)
	}

	text := result.Contents[0].Text
	if !strings.Contains(text, "urgent") {
		t.Error("expected urgent goal in frontburner")
	}
	if strings.Contains(text, `"safe"`) {
		t.Error("safe goal should not be in frontburner")
	}
	if strings.Contains(text, `"done"`) {
		t.Error("won goal should not be in frontburner")
	}
}

func TestHandleUserResource(t *testing.T) {
	server, _ := setupServer(t)

	result, err := server.handleUserResource(context.Background(), &mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("user resource failed: %v", err)
	}
	if result.Contents[0].URI != "beeminder://user" {
		t.Errorf("URI = %s, want beeminder://user", result.Contents[0].URI)
	}
	if !strings.Contains(result.Contents[0].Text, "alice") {
		t.Error("expected username in resource text")
	}
}
