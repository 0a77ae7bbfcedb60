package workouts

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sort"
	"time"
)

// Side marks which side of the body a set was performed on.
// The empty value means the set loads both sides evenly.
type Side string

const (
	SideBoth  Side = ""
	SideLeft  Side = "left"
	SideRight Side = "right"
)

func (s Side) Valid() bool {
	switch s {
	case SideBoth, SideLeft, SideRight:
		return true
	}
	return false
}

type Set struct {
	ID         int    `json:"id"`
	WorkoutID  int    `json:"workoutId"`
	ExerciseID string `json:"exerciseId"`
	// MuscleGroups is the per-exercise stored muscle list, used as a
	// fallback when the exercise catalog has no entry for ExerciseID.
	MuscleGroups []string `json:"muscleGroups,omitempty"`
	Side         Side     `json:"side,omitempty"`
	Kilos        float64  `json:"kilos,omitempty"`
	Reps         int      `json:"reps,omitempty"`
	Seconds      int      `json:"seconds,omitempty"`
	Meters       float64  `json:"meters,omitempty"`
	SetIndex     int      `json:"setIndex"`
}

type Workout struct {
	ID          int       `json:"id"`
	PerformedAt time.Time `json:"performedAt"`
	Note        string    `json:"note,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	Sets        []Set     `json:"sets"`
}

func (w Workout) Validate() error {
	if len(w.Sets) == 0 {
		return errors.New("workout has no sets")
	}
	for i, s := range w.Sets {
		if s.ExerciseID == "" {
			return fmt.Errorf("set %d: exercise id empty", i)
		}
		if !s.Side.Valid() {
			return fmt.Errorf("set %d: invalid side %q", i, s.Side)
		}
		if s.Kilos < 0 || s.Reps < 0 || s.Seconds < 0 || s.Meters < 0 {
			return fmt.Errorf("set %d: negative load values", i)
		}
	}
	return nil
}

// Digest is a stable hash over the workout timestamp and its sets,
// used to detect duplicate submissions (e.g. a retried POST).
func (w Workout) Digest() string {
	sets := make([]Set, len(w.Sets))
	copy(sets, w.Sets)
	sort.Slice(sets, func(i, j int) bool {
		if sets[i].SetIndex != sets[j].SetIndex {
			return sets[i].SetIndex < sets[j].SetIndex
		}
		return sets[i].ExerciseID < sets[j].ExerciseID
	})

	h := sha256.New()
	fmt.Fprintf(h, "%d", w.PerformedAt.UTC().Unix())
	for _, s := range sets {
		fmt.Fprintf(h, "|%s:%s:%.2f:%d:%d:%.2f", s.ExerciseID, s.Side, s.Kilos, s.Reps, s.Seconds, s.Meters)
	}
	return hex.EncodeToString(h.Sum(nil))
}
