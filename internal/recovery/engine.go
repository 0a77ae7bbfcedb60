package recovery

import (
	"sort"
	"time"

	"github.com/repready/backend/internal/settings"
	"github.com/repready/backend/internal/sleep"
	"github.com/repready/backend/internal/workouts"
)

// Inputs is an immutable per-call snapshot of everything the engine
// consumes. The engine itself holds no state between calls.
type Inputs struct {
	Workouts  []workouts.Workout
	SleepLogs []sleep.Log
	Settings  settings.Settings
	Now       time.Time
}

// Snapshot bundles all engine outputs generated from one history pass.
type Snapshot struct {
	GeneratedAt       time.Time      `json:"generatedAt"`
	Muscles           []MuscleStatus `json:"muscles"`
	Readiness         Readiness      `json:"readiness"`
	Consistency       Consistency    `json:"consistency"`
	Imbalances        []Imbalance    `json:"imbalances"`
	WorkoutCount      int            `json:"workoutCount"`
	UnmappedExercises []string       `json:"unmappedExercises,omitempty"`
}

// Compute runs the whole engine: workload aggregation, per-muscle
// recovery, readiness with its 7-day trend, consistency and imbalance
// detection. It is pure and synchronous: no I/O, no shared state, and
// identical inputs always produce identical outputs.
func Compute(in Inputs) Snapshot {
	if in.Now.IsZero() {
		in.Now = time.Now()
	}

	workload := AggregateWorkload(in.Workouts)

	sleepFactor := 1.0
	if in.Settings.SleepAdjustmentEnabled {
		sleepFactor = SleepFactor(in.SleepLogs)
	}

	muscles := statusesAt(workload, in.Settings, sleepFactor, in.Now)
	previous := statusesAt(workload, in.Settings, sleepFactor, in.Now.AddDate(0, 0, -7))

	return Snapshot{
		GeneratedAt:       in.Now,
		Muscles:           muscles,
		Readiness:         CalcReadiness(muscles, previous),
		Consistency:       CalcConsistency(in.Workouts, in.Now),
		Imbalances:        DetectImbalances(workload),
		WorkoutCount:      workload.WorkoutCount,
		UnmappedExercises: workload.UnmappedExercises,
	}
}

// statusesAt evaluates every tracked muscle, plus any extra muscles
// that entered through stored muscle lists, at the given reference
// time. The trend computation reuses it with a shifted reference.
func statusesAt(workload Workload, s settings.Settings, sleepFactor float64, now time.Time) []MuscleStatus {
	tracked := make(map[Muscle]bool, len(TrackedMuscles))
	muscles := make([]Muscle, 0, len(TrackedMuscles))
	for _, m := range TrackedMuscles {
		tracked[m] = true
		muscles = append(muscles, m)
	}

	extras := make([]Muscle, 0)
	for m := range workload.PerMuscle {
		if !tracked[m] {
			extras = append(extras, m)
		}
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i] < extras[j] })
	muscles = append(muscles, extras...)

	statuses := make([]MuscleStatus, 0, len(muscles))
	for _, m := range muscles {
		params := CalcParams{
			Muscle:                m,
			Level:                 s.ExperienceLevel,
			BaseRestIntervalHours: s.BaseRestIntervalHours,
			SleepFactor:           sleepFactor,
			Now:                   now,
		}
		if mw, ok := workload.PerMuscle[m]; ok {
			params.WorkloadScore = mw.WorkloadScore
			params.LastWorked = mw.LastWorked
		}
		statuses = append(statuses, CalcMuscleStatus(params))
	}
	return statuses
}
