package mcp

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Handler handles MCP tool requests and responses: parses input, calls the service, formats MCP result.
type Handler struct {
	service contextService
}

// NewHandler builds a handler with the given service.
func NewHandler(service contextService) *Handler {
	return &Handler{
		service: service,
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error encoding response: " + err.Error()), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(raw)}},
	}, nil, nil
}

// GetRecoverySnapshotTool returns the MCP tool handler for get_recovery_snapshot.
func (h *Handler) GetRecoverySnapshotTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		snapshot, err := h.service.GetSnapshot(ctx)
		if err != nil {
			return errorResult("Error fetching recovery snapshot: " + err.Error()), nil, nil
		}
		return jsonResult(snapshot)
	}
}

// MuscleStatusInput is the input for get_muscle_status.
type MuscleStatusInput struct {
	Muscle string `json:"muscle" jsonschema:"Muscle to check (e.g. chest, quads, biceps)"`
}

// GetMuscleStatusTool returns the MCP tool handler for get_muscle_status.
func (h *Handler) GetMuscleStatusTool() func(context.Context, *mcp.CallToolRequest, MuscleStatusInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in MuscleStatusInput) (*mcp.CallToolResult, any, error) {
		if in.Muscle == "" {
			return errorResult("Missing muscle: provide a muscle name (e.g. chest)"), nil, nil
		}
		status, err := h.service.GetMuscleStatus(ctx, in.Muscle)
		if err != nil {
			return errorResult("Error fetching muscle status: " + err.Error()), nil, nil
		}
		return jsonResult(status)
	}
}

// GetReadinessTool returns the MCP tool handler for get_readiness.
func (h *Handler) GetReadinessTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		readiness, err := h.service.GetReadiness(ctx)
		if err != nil {
			return errorResult("Error fetching readiness: " + err.Error()), nil, nil
		}
		return jsonResult(readiness)
	}
}

// ConsistencyInput is the input for get_consistency.
type ConsistencyInput struct {
	Weeks int `json:"weeks,omitempty" jsonschema:"Limit the breakdown to the most recent N weeks (0 = whole window)"`
}

// GetConsistencyTool returns the MCP tool handler for get_consistency.
func (h *Handler) GetConsistencyTool() func(context.Context, *mcp.CallToolRequest, ConsistencyInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in ConsistencyInput) (*mcp.CallToolResult, any, error) {
		if in.Weeks < 0 {
			return errorResult("Invalid weeks: must be >= 0"), nil, nil
		}
		consistency, err := h.service.GetConsistency(ctx, in.Weeks)
		if err != nil {
			return errorResult("Error fetching consistency: " + err.Error()), nil, nil
		}
		return jsonResult(consistency)
	}
}

// GetImbalancesTool returns the MCP tool handler for get_imbalances.
func (h *Handler) GetImbalancesTool() func(context.Context, *mcp.CallToolRequest, any) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ any) (*mcp.CallToolResult, any, error) {
		imbalances, err := h.service.GetImbalances(ctx)
		if err != nil {
			return errorResult("Error fetching imbalances: " + err.Error()), nil, nil
		}
		if len(imbalances) == 0 {
			return &mcp.CallToolResult{
				Content: []mcp.Content{&mcp.TextContent{Text: "No imbalances detected (or not enough workouts logged yet)."}},
			}, nil, nil
		}
		return jsonResult(imbalances)
	}
}

// RecentWorkoutsInput is the input for list_recent_workouts.
type RecentWorkoutsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Max workouts to return (default 10, max 50)"`
}

// ListRecentWorkoutsTool returns the MCP tool handler for list_recent_workouts.
func (h *Handler) ListRecentWorkoutsTool() func(context.Context, *mcp.CallToolRequest, RecentWorkoutsInput) (*mcp.CallToolResult, any, error) {
	return func(ctx context.Context, _ *mcp.CallToolRequest, in RecentWorkoutsInput) (*mcp.CallToolResult, any, error) {
		if in.Limit < 0 {
			return errorResult("Invalid limit: must be >= 0"), nil, nil
		}
		list, err := h.service.ListRecentWorkouts(ctx, in.Limit)
		if err != nil {
			return errorResult("Error listing workouts: " + err.Error()), nil, nil
		}
		return jsonResult(list)
	}
}
