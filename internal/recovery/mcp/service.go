package mcp

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/repready/backend/internal/recovery"
	"github.com/repready/backend/internal/workouts"
)

// snapshotProvider runs the recovery engine (through its cache) on demand.
type snapshotProvider interface {
	Snapshot(ctx context.Context) (*recovery.Snapshot, error)
}

// workoutsRepo provides recent workout history (for dependency injection and testing).
type workoutsRepo interface {
	List(ctx context.Context, params workouts.ListParams) ([]workouts.Workout, int, error)
}

// contextService provides recovery context data (snapshot, muscles, readiness,
// consistency, imbalances, recent workouts). Used by Handler for testability.
type contextService interface {
	GetSnapshot(ctx context.Context) (*recovery.Snapshot, error)
	GetMuscleStatus(ctx context.Context, muscle string) (*recovery.MuscleStatus, error)
	GetReadiness(ctx context.Context) (*recovery.Readiness, error)
	GetConsistency(ctx context.Context, weeks int) (*recovery.Consistency, error)
	GetImbalances(ctx context.Context) ([]recovery.Imbalance, error)
	ListRecentWorkouts(ctx context.Context, limit int) ([]workouts.Workout, error)
}

const (
	defaultRecentWorkoutsLimit = 10
	maxRecentWorkoutsLimit     = 50
)

// ContextService holds dependencies and implements the recovery context business logic.
type ContextService struct {
	snapshots snapshotProvider
	workouts  workoutsRepo
}

// NewContextService builds a ContextService with the given dependencies.
func NewContextService(snapshots snapshotProvider, workoutsRepo workoutsRepo) *ContextService {
	return &ContextService{
		snapshots: snapshots,
		workouts:  workoutsRepo,
	}
}

// GetSnapshot returns the full engine output: per-muscle recovery, readiness
// with trend, consistency breakdown and detected imbalances.
func (s *ContextService) GetSnapshot(ctx context.Context) (*recovery.Snapshot, error) {
	return s.snapshots.Snapshot(ctx)
}

// GetMuscleStatus returns the recovery status of a single muscle.
func (s *ContextService) GetMuscleStatus(ctx context.Context, muscle string) (*recovery.MuscleStatus, error) {
	snapshot, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	wanted := strings.ToLower(strings.TrimSpace(muscle))
	for i := range snapshot.Muscles {
		if string(snapshot.Muscles[i].Muscle) == wanted {
			return &snapshot.Muscles[i], nil
		}
	}
	return nil, fmt.Errorf("unknown muscle: %s", muscle)
}

// GetReadiness returns the overall readiness score with its 7-day trend.
func (s *ContextService) GetReadiness(ctx context.Context) (*recovery.Readiness, error) {
	snapshot, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return &snapshot.Readiness, nil
}

// GetConsistency returns the workout consistency score with its per-week
// breakdown. A positive weeks value keeps only the most recent N weeks and
// rescores over those.
func (s *ContextService) GetConsistency(ctx context.Context, weeks int) (*recovery.Consistency, error) {
	snapshot, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	consistency := snapshot.Consistency
	if weeks <= 0 || len(consistency.Weeks) <= weeks {
		return &consistency, nil
	}

	kept := consistency.Weeks[len(consistency.Weeks)-weeks:]
	consistent := 0
	for _, w := range kept {
		if w.Consistent {
			consistent++
		}
	}
	return &recovery.Consistency{
		Score: int(math.Round(float64(consistent) / float64(len(kept)) * 100)),
		Weeks: kept,
	}, nil
}

// GetImbalances returns the detected left/right muscle imbalances.
func (s *ContextService) GetImbalances(ctx context.Context) ([]recovery.Imbalance, error) {
	snapshot, err := s.snapshots.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Imbalances, nil
}

// ListRecentWorkouts returns the newest workouts, most recent first.
func (s *ContextService) ListRecentWorkouts(ctx context.Context, limit int) ([]workouts.Workout, error) {
	if limit <= 0 {
		limit = defaultRecentWorkoutsLimit
	}
	if limit > maxRecentWorkoutsLimit {
		limit = maxRecentWorkoutsLimit
	}
	list, _, err := s.workouts.List(ctx, workouts.ListParams{
		Page: 1,
		Size: limit,
	})
	return list, err
}
