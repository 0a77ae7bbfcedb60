package recovery

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/repready/backend/internal/settings"
	"github.com/repready/backend/internal/sleep"
	"github.com/repready/backend/internal/telemetry/metrics"
	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/internal/workouts"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=recovery_test

type workoutsLister interface {
	ListAll(ctx context.Context, params workouts.WorkoutParams) ([]workouts.Workout, error)
}

type sleepLister interface {
	Latest(ctx context.Context, n int) ([]sleep.Log, error)
}

type settingsGetter interface {
	Get(ctx context.Context) (settings.Settings, error)
}

const (
	// snapshots go stale quickly while training, keep the cache short
	snapshotCacheExpireSeconds = 60
)

// Service loads the engine inputs, runs Compute and caches the
// marshalled snapshot. All mutating handlers call Invalidate so
// dashboards never read a snapshot older than the last change.
type Service struct {
	workoutsRepo workoutsLister
	sleepRepo    sleepLister
	settingsRepo settingsGetter
	cache        *freecache.Cache
	windowDays   int
	metrics      *metrics.Manager
}

func NewService(
	workoutsRepo workoutsLister,
	sleepRepo sleepLister,
	settingsRepo settingsGetter,
	windowDays int,
	metricsManager *metrics.Manager,
) *Service {
	megabyte := 1024 * 1024
	cacheSize := 10 * megabyte

	return &Service{
		workoutsRepo: workoutsRepo,
		sleepRepo:    sleepRepo,
		settingsRepo: settingsRepo,
		cache:        freecache.NewCache(cacheSize),
		windowDays:   windowDays,
		metrics:      metricsManager,
	}
}

func (s *Service) cacheKey() []byte {
	return []byte(fmt.Sprintf("snapshot::%dd", s.windowDays))
}

// Snapshot returns the current engine output, from cache when fresh.
func (s *Service) Snapshot(ctx context.Context) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recovery.snapshot")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if snapshotBytes, err := s.cache.Get(s.cacheKey()); err == nil {
		var snapshot Snapshot
		if err := json.Unmarshal(snapshotBytes, &snapshot); err == nil {
			log.Tracef("recovery snapshot served from cache")
			s.metrics.CounterSnapshotCacheHits.Inc()
			span.SetAttributes(attribute.Bool("snapshot.cached", true))
			return &snapshot, nil
		}
		log.Errorf("failed to unmarshal cached recovery snapshot: %s", err)
	}

	snapshot, err := s.compute(ctx)
	if err != nil {
		return nil, err
	}

	snapshotBytes, err := json.Marshal(snapshot)
	if err != nil {
		log.Errorf("failed to marshal recovery snapshot for cache: %s", err)
		return snapshot, nil
	}
	if err := s.cache.Set(s.cacheKey(), snapshotBytes, snapshotCacheExpireSeconds); err != nil {
		log.Errorf("failed to cache recovery snapshot: %s", err)
	}

	return snapshot, nil
}

// Recompute drops the cached snapshot and computes a fresh one.
func (s *Service) Recompute(ctx context.Context) (*Snapshot, error) {
	s.Invalidate()
	return s.Snapshot(ctx)
}

// Invalidate drops the cached snapshot. Safe to call concurrently and
// cheap enough to call after every mutation.
func (s *Service) Invalidate() {
	s.cache.Del(s.cacheKey())
	log.Tracef("recovery snapshot cache invalidated")
}

func (s *Service) compute(ctx context.Context) (_ *Snapshot, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.recovery.compute")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := time.Now()
	from := now.AddDate(0, 0, -s.windowDays)

	history, err := s.workoutsRepo.ListAll(ctx, workouts.WorkoutParams{From: &from})
	if err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	recoverySettings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get recovery settings: %w", err)
	}

	sleepLogs, err := s.sleepRepo.Latest(ctx, sleepNights)
	if err != nil {
		return nil, fmt.Errorf("failed to get sleep logs: %w", err)
	}

	computeStart := time.Now()
	snapshot := Compute(Inputs{
		Workouts:  history,
		SleepLogs: sleepLogs,
		Settings:  recoverySettings,
		Now:       now,
	})
	s.metrics.HistEngineComputeDuration.Observe(time.Since(computeStart).Seconds())
	s.metrics.CounterEngineRecomputes.Inc()

	span.SetAttributes(
		attribute.Int("snapshot.workouts", snapshot.WorkoutCount),
		attribute.Int("snapshot.readiness", snapshot.Readiness.Score),
	)

	return &snapshot, nil
}
