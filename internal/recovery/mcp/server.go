package mcp

import (
	"net/http"

	"github.com/repready/backend/internal/recovery"
	"github.com/repready/backend/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SecretHeader carries the shared secret for the MCP endpoint.
const SecretHeader = "X-MCP-Secret"

// NewServer builds an MCP server with recovery tools: snapshot, muscle status,
// readiness, consistency, imbalances, recent workouts.
// Used by the main backend when mounting MCP at /mcp (internal/server).
func NewServer(recoveryService *recovery.Service, workoutsRepo *workouts.Repo) *mcp.Server {
	svc := NewContextService(recoveryService, workoutsRepo)
	h := NewHandler(svc)
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "repready-recovery",
		Version: "1.0.0",
	}, nil)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_recovery_snapshot",
		Description: "Returns the full recovery snapshot: per-muscle recovery percentages and statuses, overall readiness with trend, weekly consistency and left/right imbalances. Use as the starting point when assessing training state.",
	}, h.GetRecoverySnapshotTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_muscle_status",
		Description: "Returns the recovery status of one muscle: recovery percentage, status (recovered/recovering/sore/overworked), workload score, last worked time and recommended rest days. Arg: muscle (e.g. chest, quads, biceps).",
	}, h.GetMuscleStatusTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_readiness",
		Description: "Returns the overall training readiness score (0-100), its status (ready/recovering/needs_rest) and the trend vs one week ago. Use when deciding whether to train today.",
	}, h.GetReadinessTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_consistency",
		Description: "Returns the workout consistency score (0-100) with a per-ISO-week breakdown (workout count, threshold, consistent flag). Optional arg: weeks, to limit the breakdown to the most recent N weeks.",
	}, h.GetConsistencyTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "get_imbalances",
		Description: "Returns detected left/right volume imbalances per bilateral muscle (moderate above 10%, severe above 25%). Needs at least 7 logged workouts with per-side data.",
	}, h.GetImbalancesTool())

	mcp.AddTool(s, &mcp.Tool{
		Name:        "list_recent_workouts",
		Description: "Returns the most recent workouts with their sets (exercise, kilos, reps, side). Optional arg: limit (default 10, max 50). Use when you need the raw training log behind the recovery numbers.",
	}, h.ListRecentWorkoutsTool())

	return s
}

// RequireSecret guards the mounted MCP endpoint with a shared secret header.
// An empty configured secret disables the endpoint rather than opening it up.
func RequireSecret(secret string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		if secret == "" || r.Header.Get(SecretHeader) != secret {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
