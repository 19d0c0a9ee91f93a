// ABOUTME: MCP resource implementations for longevity metrics.
// ABOUTME: Provides longevity://dashboard, longevity://today, and longevity://coaching resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/longevity/internal/engine"
	"github.com/harperreed/longevity/internal/models"
	"github.com/harperreed/longevity/internal/storage"
)

func (s *Server) registerResources() {
	// longevity://dashboard - full status snapshot for every active metric
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "longevity://dashboard",
		Name:        "Metric Dashboard",
		Description: "Status, streaks, and weekly progress for every active metric",
		MIMEType:    "application/json",
	}, s.handleDashboardResource)

	// longevity://today - values logged today plus what is still missing
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "longevity://today",
		Name:        "Today's Log",
		Description: "Values logged today and daily metrics still unlogged",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// longevity://coaching - prioritized feedback and coaching summary
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "longevity://coaching",
		Name:        "Coaching Summary",
		Description: "Prioritized feedback plus missing daily and at-risk weekly metrics",
		MIMEType:    "application/json",
	}, s.handleCoachingResource)
}

// Resource handlers

func resourceResult(uri string, payload any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(payload, "", "  ")
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

func (s *Server) handleDashboardResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	state, metrics, err := s.dashboardState(time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	active := make(map[string]models.MetricStatusData)
	for _, m := range metrics {
		if m.Active {
			active[m.ID] = state[m.ID]
		}
	}

	return resourceResult("longevity://dashboard", map[string]interface{}{
		"generated_at": time.Now().Format(time.RFC3339),
		"metrics":      active,
	})
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	metrics, err := s.repo.ListMetricDefs()
	if err != nil {
		return nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	entries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}

	processed := s.engine.ProcessEntries(entries, metrics)

	logged := make(map[string]float64)
	var todayEntries []models.LogEntry
	for _, e := range processed {
		if e.Timestamp.Before(todayStart) {
			continue
		}
		todayEntries = append(todayEntries, e)
		for id, val := range e.Values {
			logged[id] = val
		}
	}

	var missing []string
	for _, m := range metrics {
		if !m.Active || m.IsCalculated || m.Category != models.CategoryDaily {
			continue
		}
		if _, ok := logged[m.ID]; !ok {
			missing = append(missing, m.ID)
		}
	}
	if missing == nil {
		missing = []string{}
	}
	if todayEntries == nil {
		todayEntries = []models.LogEntry{}
	}

	return resourceResult("longevity://today", map[string]interface{}{
		"date":    todayStart.Format("2006-01-02"),
		"entries": todayEntries,
		"missing": missing,
	})
}

func (s *Server) handleCoachingResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	now := time.Now()
	state, metrics, err := s.dashboardState(now)
	if err != nil {
		return nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	dismissed, err := s.repo.GetPreference(storage.PrefDismissedFeedback)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	pinned, err := s.repo.GetPreference(storage.PrefPinnedFeedback)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	items := engine.GenerateFeedback(state, metrics, dismissed)
	engine.SortFeedback(items, pinned)

	return resourceResult("longevity://coaching", map[string]interface{}{
		"generated_at": now.Format(time.RFC3339),
		"feedback":     items,
		"coaching":     engine.Coaching(state, metrics, now),
	})
}
