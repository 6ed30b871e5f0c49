// ABOUTME: MCP resource implementations for the wellness tracker.
// ABOUTME: Provides agewell://today, agewell://cycles, and agewell://summary resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/agewell/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// agewell://today - habit progress for today
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "agewell://today",
		Name:        "Today's Habits",
		Description: "Habit completions and overall progress for today",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "agewell://cycles",
		Name:        "Recent Cycles",
		Description: "The six most recent cycles and the next predicted period",
		MIMEType:    "application/json",
	}, s.handleCyclesResource)

	// agewell://summary - profile, habits and prediction in one view
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "agewell://summary",
		Name:        "Wellness Summary",
		Description: "Profile, today's habit progress, and the next predicted period",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	day := s.today()
	summary, err := s.svc.Progress(day)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	return jsonResource("agewell://today", map[string]any{
		"date":     day.Format(models.DateFormat),
		"progress": summary,
	})
}

func (s *Server) handleCyclesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	cycles, err := s.svc.Cycles(6)
	if err != nil {
		return nil, fmt.Errorf("failed to list cycles: %w", err)
	}
	out := make([]cycleOutput, 0, len(cycles))
	for _, c := range cycles {
		out = append(out, toCycleOutput(c))
	}

	prediction, err := s.prediction()
	if err != nil {
		return nil, fmt.Errorf("failed to predict cycle: %w", err)
	}

	return jsonResource("agewell://cycles", map[string]any{
		"cycles":     out,
		"prediction": prediction,
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	result := map[string]any{}

	if p, err := s.svc.Profile(); err == nil {
		profile := map[string]any{"full_name": p.FullName}
		if age, ok := p.Age(s.now()); ok {
			profile["age"] = age
		}
		result["profile"] = profile
	}

	summary, err := s.svc.Progress(s.today())
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	result["habits"] = summary

	prediction, err := s.prediction()
	if err != nil {
		return nil, fmt.Errorf("failed to predict cycle: %w", err)
	}
	result["prediction"] = prediction

	return jsonResource("agewell://summary", result)
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
