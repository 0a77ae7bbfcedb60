package recovery

import (
	"math"
	"sort"
	"time"

	"github.com/repready/backend/internal/workouts"
)

const (
	// one bodyweight rep counts as lifting 30 volume units
	bodyweightRepVolume = 30
	// one minute of a timed set counts as 5 volume units
	timedMinuteVolume = 5
	// 100 meters of a distance set count as 1 volume unit
	distanceUnitMeters = 100
	// accumulated volume that maps to a workload score of 100
	workloadScoreVolume = 2500
	maxWorkloadScore    = 150
)

// setVolume converts one set into volume units, based on what the set
// actually recorded: weighted, bodyweight, timed or distance work.
func setVolume(s workouts.Set) float64 {
	switch {
	case s.Kilos > 0 && s.Reps > 0:
		return s.Kilos * float64(s.Reps)
	case s.Reps > 0:
		return float64(s.Reps) * bodyweightRepVolume
	case s.Seconds > 0:
		return float64(s.Seconds) / 60 * timedMinuteVolume
	case s.Meters > 0:
		return s.Meters / distanceUnitMeters
	}
	return 0
}

// MuscleWorkload is one muscle's accumulated training volume over the
// history window, with its left/right split and last-worked time.
type MuscleWorkload struct {
	Muscle        Muscle
	Volume        float64
	LeftVolume    float64
	RightVolume   float64
	LastWorked    time.Time
	WorkloadScore float64
}

// Workload is the Workload Aggregator output consumed by the recovery
// calculator and the imbalance detector.
type Workload struct {
	PerMuscle         map[Muscle]*MuscleWorkload
	WorkoutCount      int
	UnmappedExercises []string
}

// AggregateWorkload walks the workout history and accumulates volume
// per muscle and per side. A set's volume splits evenly across all
// muscles the exercise resolves to; a side-explicit set contributes
// wholly to that side, otherwise 50/50. Unresolvable exercises
// contribute nothing and are reported in UnmappedExercises.
func AggregateWorkload(history []workouts.Workout) Workload {
	agg := Workload{
		PerMuscle:    make(map[Muscle]*MuscleWorkload),
		WorkoutCount: len(history),
	}

	unmapped := make(map[string]bool)
	for _, workout := range history {
		for _, set := range workout.Sets {
			muscles, ok := resolveMuscles(set)
			if !ok {
				if set.ExerciseID != "" {
					unmapped[normalizeExerciseID(set.ExerciseID)] = true
				}
				continue
			}

			share := setVolume(set) / float64(len(muscles))
			for _, m := range muscles {
				mw := agg.PerMuscle[m]
				if mw == nil {
					mw = &MuscleWorkload{Muscle: m}
					agg.PerMuscle[m] = mw
				}

				mw.Volume += share
				switch set.Side {
				case workouts.SideLeft:
					mw.LeftVolume += share
				case workouts.SideRight:
					mw.RightVolume += share
				default:
					mw.LeftVolume += share / 2
					mw.RightVolume += share / 2
				}

				if workout.PerformedAt.After(mw.LastWorked) {
					mw.LastWorked = workout.PerformedAt
				}
			}
		}
	}

	for _, mw := range agg.PerMuscle {
		mw.WorkloadScore = math.Min(mw.Volume/workloadScoreVolume*100, maxWorkloadScore)
	}

	agg.UnmappedExercises = make([]string, 0, len(unmapped))
	for id := range unmapped {
		agg.UnmappedExercises = append(agg.UnmappedExercises, id)
	}
	sort.Strings(agg.UnmappedExercises)

	return agg
}
