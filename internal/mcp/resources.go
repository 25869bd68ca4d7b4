// ABOUTME: MCP resource implementations for Beeminder data.
// ABOUTME: Provides beeminder://goals, beeminder://frontburner, and beeminder://user.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/beeminder/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// frontburnerDays is the safe-day cutoff for the frontburner resource.
const frontburnerDays = 2

func (s *Server) registerResources() {
	// beeminder://goals - all active goals in urgency order
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "beeminder://goals",
		Name:        "All Goals",
		Description: "All active goals in order of decreasing urgency",
		MIMEType:    "application/json",
	}, s.handleGoalsResource)

	// beeminder://frontburner - goals that need attention soon
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "beeminder://frontburner",
		Name:        "Frontburner Goals",
		Description: "Goals with two or fewer safe days, including beemergencies",
		MIMEType:    "application/json",
	}, s.handleFrontburnerResource)

	// beeminder://user - the credentialed account
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "beeminder://user",
		Name:        "User Profile",
		Description: "The authenticated user's profile, timezone, and goal slugs",
		MIMEType:    "application/json",
	}, s.handleUserResource)
}

// Resource handlers

func (s *Server) handleGoalsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	goals, err := s.client.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	return jsonResource("beeminder://goals", map[string]any{
		"goals": goals,
		"count": len(goals),
	})
}

func (s *Server) handleFrontburnerResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	goals, err := s.client.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}

	var urgent []*models.Goal
	emergencies := 0
	for _, g := range goals {
		if g.Frozen || g.Won {
			continue
		}
		if g.Safebuf <= frontburnerDays {
			urgent = append(urgent, g)
		}
		if g.Beemergency() {
			emergencies++
		}
	}

	return jsonResource("beeminder://frontburner", map[string]any{
		"goals":         urgent,
		"count":         len(urgent),
		"beemergencies": emergencies,
	})
}

func (s *Server) handleUserResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	user, err := s.client.GetUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}

	return jsonResource("beeminder://user", user)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
