package tools

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/repready/backend/internal/db"
	"github.com/repready/backend/internal/recovery"
	"github.com/repready/backend/internal/sleep"
	"github.com/repready/backend/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
)

// exercises where sets are logged per body side
var unilateralExercises = map[string]bool{
	"lunge":                 true,
	"bulgarian-split-squat": true,
	"step-up":               true,
	"dumbbell-row":          true,
	"concentration-curl":    true,
	"side-plank":            true,
}

// exercises logged with duration/distance instead of kilos/reps
var cardioExercises = map[string]bool{
	"running":   true,
	"cycling":   true,
	"rowing":    true,
	"swimming":  true,
	"jump-rope": true,
}

var bodyweightExercises = map[string]bool{
	"push-up":           true,
	"pull-up":           true,
	"chin-up":           true,
	"dip":               true,
	"plank":             true,
	"side-plank":        true,
	"crunch":            true,
	"sit-up":            true,
	"hanging-leg-raise": true,
	"russian-twist":     true,
	"ab-wheel-rollout":  true,
	"glute-bridge":      true,
}

// rough per-exercise working weight ranges in kilos
var weightRanges = map[string][2]float64{
	"bench-press":       {40, 110},
	"squat":             {50, 140},
	"deadlift":          {60, 180},
	"romanian-deadlift": {40, 120},
	"overhead-press":    {25, 70},
	"barbell-row":       {40, 100},
	"hip-thrust":        {60, 160},
	"leg-press":         {80, 250},
}

var splitDays = [][]string{
	{"bench-press", "incline-bench-press", "overhead-press", "lateral-raise", "triceps-pushdown", "dip", "chest-fly"},
	{"deadlift", "pull-up", "barbell-row", "lat-pulldown", "face-pull", "barbell-curl", "hammer-curl", "dumbbell-row"},
	{"squat", "romanian-deadlift", "leg-press", "lunge", "leg-curl", "calf-raise", "hip-thrust", "bulgarian-split-squat"},
	{"running", "plank", "hanging-leg-raise", "russian-twist", "rowing", "jump-rope", "crunch"},
}

// SeedWorkoutHistory fills the database with a plausible training
// history for local development: a rotating push/pull/legs/conditioning
// split over the past `days` days, with rest days, unilateral sets
// logged per side, cardio logged as duration/distance, and a sleep log
// for every night. Data goes straight through the repos, so digests,
// soft delete columns and timestamps behave exactly like live traffic.
func SeedWorkoutHistory(ctx context.Context, dbHost, dbPort, dbName, dbPassword string, days int) error {
	fmt.Printf("seeding %d days of workout history into %s ...\n", days, dbName)

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     dbHost,
		DBPort:     dbPort,
		DBName:     dbName,
		DBPassword: dbPassword,
	})
	if err != nil {
		return fmt.Errorf("failed to create db pool: %w", err)
	}
	defer dbPool.Close()

	workoutsRepo := workouts.NewRepo(dbPool)
	sleepRepo := sleep.NewRepo(dbPool)

	catalogIDs := recovery.CatalogExerciseIDs()
	now := time.Now()

	var workoutsAdded, sleepLogsAdded int
	for dayOffset := days; dayOffset > 0; dayOffset-- {
		day := now.AddDate(0, 0, -dayOffset)

		nightOf := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		if _, err := sleepRepo.Add(ctx, sleep.Log{
			Night:   nightOf,
			Quality: gofakeit.Number(35, 95),
			Hours:   math.Round(gofakeit.Float64Range(5.5, 9)*4) / 4,
		}); err != nil {
			return fmt.Errorf("failed to add sleep log for %s: %w", nightOf.Format("2006-01-02"), err)
		}
		sleepLogsAdded++

		// roughly two rest days per week
		if gofakeit.Number(1, 7) <= 2 {
			continue
		}

		workout := randomWorkout(day, dayOffset, catalogIDs)
		if _, err := workoutsRepo.Add(ctx, workout); err != nil {
			return fmt.Errorf("failed to add workout for %s: %w", day.Format("2006-01-02"), err)
		}
		workoutsAdded++
	}

	fmt.Printf("done: %d workouts and %d sleep logs added\n", workoutsAdded, sleepLogsAdded)

	return nil
}

func randomWorkout(day time.Time, dayOffset int, catalogIDs []string) workouts.Workout {
	hour := 18
	if gofakeit.Bool() {
		hour = 8
	}
	performedAt := time.Date(
		day.Year(), day.Month(), day.Day(),
		hour, gofakeit.Number(0, 59), 0, 0, time.UTC,
	)

	plan := splitDays[dayOffset%len(splitDays)]
	exerciseCount := gofakeit.Number(4, min(6, len(plan)))
	exercises := make([]string, len(plan))
	copy(exercises, plan)
	gofakeit.ShuffleStrings(exercises)
	exercises = exercises[:exerciseCount]

	// occasional accessory picked from the whole catalog
	if gofakeit.Number(1, 4) == 1 {
		exercises = append(exercises, catalogIDs[gofakeit.Number(0, len(catalogIDs)-1)])
	}

	workout := workouts.Workout{
		PerformedAt: performedAt,
	}
	if gofakeit.Number(1, 5) == 1 {
		workout.Note = gofakeit.Sentence(4)
	}

	setIndex := 0
	for _, exerciseID := range exercises {
		setCount := gofakeit.Number(3, 5)
		if cardioExercises[exerciseID] {
			setCount = 1
		}
		for i := 0; i < setCount; i++ {
			if unilateralExercises[exerciseID] {
				for _, side := range []workouts.Side{workouts.SideLeft, workouts.SideRight} {
					set := randomSet(exerciseID)
					set.Side = side
					set.SetIndex = setIndex
					workout.Sets = append(workout.Sets, set)
					setIndex++
				}
				continue
			}
			set := randomSet(exerciseID)
			set.SetIndex = setIndex
			workout.Sets = append(workout.Sets, set)
			setIndex++
		}
	}

	return workout
}

func randomSet(exerciseID string) workouts.Set {
	set := workouts.Set{ExerciseID: exerciseID}

	switch {
	case cardioExercises[exerciseID]:
		set.Seconds = gofakeit.Number(10, 45) * 60
		if exerciseID != "jump-rope" {
			set.Meters = float64(gofakeit.Number(2, 12)) * 500
		}
	case bodyweightExercises[exerciseID]:
		set.Reps = gofakeit.Number(6, 20)
	default:
		weights, ok := weightRanges[exerciseID]
		if !ok {
			weights = [2]float64{10, 60}
		}
		// plates come in 1.25kg pairs
		set.Kilos = math.Round(gofakeit.Float64Range(weights[0], weights[1])/2.5) * 2.5
		set.Reps = gofakeit.Number(3, 15)
	}

	return set
}
