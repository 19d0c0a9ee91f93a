// ABOUTME: MCP tool implementations for longevity metrics.
// ABOUTME: Covers entry logging, metric definitions, dashboard, feedback, and coaching.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/longevity/internal/engine"
	"github.com/harperreed/longevity/internal/models"
	"github.com/harperreed/longevity/internal/storage"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_entry",
		Description: "Record metric values (sleep, rhr, protein, labs, etc.) as a new log entry",
	}, s.handleLogEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "amend_entry",
		Description: "Replace an existing log entry's values and timestamp wholesale",
	}, s.handleAmendEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_entries",
		Description: "List recent log entries with raw and calculated values",
	}, s.handleListEntries)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_entry",
		Description: "Delete a log entry by ID or ID prefix",
	}, s.handleDeleteEntry)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_dashboard",
		Description: "Get current status, streaks, and weekly progress for every active metric",
	}, s.handleGetDashboard)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_feedback",
		Description: "Get prioritized feedback messages for metrics with data",
	}, s.handleGetFeedback)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_coaching",
		Description: "Get today's coaching summary: unlogged daily metrics and at-risk weekly targets",
	}, s.handleGetCoaching)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_metrics",
		Description: "List metric definitions in registry order",
	}, s.handleListMetricDefs)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "upsert_metric",
		Description: "Create or update a metric definition",
	}, s.handleUpsertMetric)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "dismiss_feedback",
		Description: "Dismiss feedback for a metric so it stops appearing",
	}, s.handleDismissFeedback)
}

// Tool input/output types

type logEntryInput struct {
	Values    map[string]float64 `json:"values" jsonschema:"metric values keyed by metric id (e.g. sleep, rhr, protein)"`
	Timestamp string             `json:"timestamp,omitempty" jsonschema:"timestamp (ISO 8601), defaults to now"`
}

type entryOutput struct {
	ID        string             `json:"id"`
	Timestamp string             `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
	Message   string             `json:"message"`
}

type amendEntryInput struct {
	ID        string             `json:"id" jsonschema:"entry ID or prefix"`
	Values    map[string]float64 `json:"values" jsonschema:"complete replacement values keyed by metric id"`
	Timestamp string             `json:"timestamp,omitempty" jsonschema:"new timestamp (ISO 8601), defaults to the entry's current one"`
}

type listEntriesInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"max results (default 20)"`
}

type deleteEntryInput struct {
	ID string `json:"id" jsonschema:"entry ID or prefix"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type upsertMetricInput struct {
	ID          string  `json:"id" jsonschema:"metric id (snake_case)"`
	Name        string  `json:"name" jsonschema:"display name"`
	RangeMin    float64 `json:"range_min" jsonschema:"lower bound of the target range"`
	RangeMax    float64 `json:"range_max" jsonschema:"upper bound of the target range"`
	Unit        string  `json:"unit,omitempty" jsonschema:"unit of measurement"`
	Category    string  `json:"category,omitempty" jsonschema:"daily or weekly (default daily)"`
	Formula     string  `json:"formula,omitempty" jsonschema:"expression for calculated metrics"`
	IsTimeBased bool    `json:"is_time_based,omitempty" jsonschema:"display values as H:MM"`
	Inactive    bool    `json:"inactive,omitempty" jsonschema:"exclude from dashboard and feedback"`
}

type dismissFeedbackInput struct {
	MetricID string `json:"metric_id" jsonschema:"metric id to dismiss feedback for"`
}

// Tool handlers

func (s *Server) handleLogEntry(ctx context.Context, req *mcp.CallToolRequest, input logEntryInput) (*mcp.CallToolResult, entryOutput, error) {
	if len(input.Values) == 0 {
		return nil, entryOutput{}, fmt.Errorf("no values provided")
	}

	timestamp := time.Now()
	if input.Timestamp != "" {
		t, err := parseTimestamp(input.Timestamp)
		if err != nil {
			return nil, entryOutput{}, err
		}
		timestamp = t
	}
	e := models.NewLogEntry(timestamp, input.Values)

	if err := s.repo.CreateEntry(e); err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to create entry: %w", err)
	}

	return nil, entryOutput{
		ID:        e.ID[:8],
		Timestamp: e.Timestamp.Format(time.RFC3339),
		Values:    e.Values,
		Message:   fmt.Sprintf("Logged %d value(s) (ID: %s)", len(e.Values), e.ID[:8]),
	}, nil
}

func (s *Server) handleAmendEntry(ctx context.Context, req *mcp.CallToolRequest, input amendEntryInput) (*mcp.CallToolResult, entryOutput, error) {
	if len(input.Values) == 0 {
		return nil, entryOutput{}, fmt.Errorf("no values provided")
	}

	existing, err := s.repo.GetEntry(input.ID)
	if err != nil {
		return nil, entryOutput{}, err
	}

	replacement := &models.LogEntry{
		ID:        existing.ID,
		Timestamp: existing.Timestamp,
		Values:    models.MetricValues(input.Values),
	}
	if input.Timestamp != "" {
		t, err := parseTimestamp(input.Timestamp)
		if err != nil {
			return nil, entryOutput{}, err
		}
		replacement.Timestamp = t
	}

	if err := s.repo.ReplaceEntry(replacement); err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to replace entry: %w", err)
	}

	return nil, entryOutput{
		ID:        replacement.ID[:8],
		Timestamp: replacement.Timestamp.Format(time.RFC3339),
		Values:    replacement.Values,
		Message:   fmt.Sprintf("Replaced entry %s", replacement.ID[:8]),
	}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input listEntriesInput) (*mcp.CallToolResult, any, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	metrics, err := s.repo.ListMetricDefs()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	entries, err := s.repo.ListEntries(0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, map[string]interface{}{"message": "No entries found."}, nil
	}

	processed := s.engine.ProcessEntries(entries, metrics)
	// ProcessEntries returns chronological order; show most recent first.
	out := make([]models.LogEntry, 0, input.Limit)
	for i := len(processed) - 1; i >= 0 && len(out) < input.Limit; i-- {
		out = append(out, processed[i])
	}
	return nil, out, nil
}

func (s *Server) handleDeleteEntry(ctx context.Context, req *mcp.CallToolRequest, input deleteEntryInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.repo.DeleteEntry(input.ID); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete entry: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted entry: %s", input.ID),
	}, nil
}

func (s *Server) handleGetDashboard(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	state, metrics, err := s.dashboardState(time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	// Registry order, active metrics only.
	type row struct {
		ID string `json:"id"`
		models.MetricStatusData
	}
	rows := make([]row, 0, len(metrics))
	for _, m := range metrics {
		if !m.Active {
			continue
		}
		rows = append(rows, row{ID: m.ID, MetricStatusData: state[m.ID]})
	}
	return nil, rows, nil
}

func (s *Server) handleGetFeedback(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	state, metrics, err := s.dashboardState(time.Now())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build dashboard: %w", err)
	}

	dismissed, err := s.repo.GetPreference(storage.PrefDismissedFeedback)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	pinned, err := s.repo.GetPreference(storage.PrefPinnedFeedback)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load preferences: %w", err)
	}

	items := engine.GenerateFeedback(state, metrics, dismissed)
	engine.SortFeedback(items, pinned)
	if len(items) == 0 {
		return nil, map[string]interface{}{"message": "No feedback available."}, nil
	}
	return nil, items, nil
}

func (s *Server) handleGetCoaching(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	now := time.Now()
	state, metrics, err := s.dashboardState(now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build dashboard: %w", err)
	}
	return nil, engine.Coaching(state, metrics, now), nil
}

func (s *Server) handleListMetricDefs(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, any, error) {
	metrics, err := s.repo.ListMetricDefs()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list metrics: %w", err)
	}
	return nil, metrics, nil
}

func (s *Server) handleUpsertMetric(ctx context.Context, req *mcp.CallToolRequest, input upsertMetricInput) (*mcp.CallToolResult, simpleOutput, error) {
	category := input.Category
	if category == "" {
		category = models.CategoryDaily
	}
	if category != models.CategoryDaily && category != models.CategoryWeekly {
		return nil, simpleOutput{}, fmt.Errorf("unknown category: %s", category)
	}

	def := models.MetricDefinition{
		ID:           input.ID,
		Name:         input.Name,
		RangeMin:     input.RangeMin,
		RangeMax:     input.RangeMax,
		Unit:         input.Unit,
		Category:     category,
		Active:       !input.Inactive,
		IsCalculated: input.Formula != "",
		Formula:      input.Formula,
		IsTimeBased:  input.IsTimeBased,
	}
	if existing, err := s.repo.GetMetricDef(input.ID); err == nil {
		def.Fact = existing.Fact
		def.Citation = existing.Citation
		def.Step = existing.Step
		def.IncludeInChart = existing.IncludeInChart
	}

	if err := s.repo.UpsertMetric(&def); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to upsert metric: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Saved metric: %s", def.ID),
	}, nil
}

func (s *Server) handleDismissFeedback(ctx context.Context, req *mcp.CallToolRequest, input dismissFeedbackInput) (*mcp.CallToolResult, simpleOutput, error) {
	dismissed, err := s.repo.GetPreference(storage.PrefDismissedFeedback)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to load preferences: %w", err)
	}
	for _, id := range dismissed {
		if id == input.MetricID {
			return nil, simpleOutput{Message: fmt.Sprintf("Already dismissed: %s", input.MetricID)}, nil
		}
	}
	dismissed = append(dismissed, input.MetricID)
	if err := s.repo.SetPreference(storage.PrefDismissedFeedback, dismissed); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil, simpleOutput{
		Message: fmt.Sprintf("Dismissed feedback for: %s", input.MetricID),
	}, nil
}

// parseTimestamp accepts RFC3339 or a friendlier "2006-01-02 15:04" form.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp: %s", s)
}
