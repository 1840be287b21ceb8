// ABOUTME: MCP resource implementations for the training tracker.
// ABOUTME: Provides hoops://dashboard, hoops://today, and hoops://progress resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harperreed/hoops/internal/stats"
	"github.com/harperreed/hoops/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "hoops://dashboard",
		Name:        "Training Dashboard",
		Description: "Streak, accuracy by shot type, last session and game records",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "hoops://today",
		Name:        "Today's Training",
		Description: "Today's drill plan, sessions logged today and reminder status",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "hoops://progress",
		Name:        "Training Progress",
		Description: "Accuracy series and weekly shot volume over all sessions",
		MIMEType:    "application/json",
	}, s.handleProgressResource)
}

// Resource handlers

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ov, err := s.svc.Overview(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return jsonResource("hoops://dashboard", ov)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.svc.Today()

	sessions, err := s.svc.ListSessions(ctx, storage.SessionQuery{From: &today, To: &today})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	reminder, err := s.svc.Reminder(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check reminder: %w", err)
	}

	result := map[string]interface{}{
		"date":     today,
		"plan":     s.svc.Plan(-1, nil),
		"sessions": sessions,
		"totals":   stats.TallyHistory(sessions),
		"reminder": reminder,
	}
	return jsonResource("hoops://today", result)
}

func (s *Server) handleProgressResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	p, err := s.svc.Progress(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build progress: %w", err)
	}
	return jsonResource("hoops://progress", p)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
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
