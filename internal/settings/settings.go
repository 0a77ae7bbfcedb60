package settings

import (
	"fmt"
	"time"
)

// Level is the user's training experience level. It selects the base
// recovery hour tables used by the recovery engine.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

func (l Level) Valid() bool {
	switch l {
	case LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

const (
	MinBaseRestIntervalHours = 12
	MaxBaseRestIntervalHours = 168
)

// Settings is the single recovery settings row. Every change to it
// affects all recovery calculations globally.
type Settings struct {
	BaseRestIntervalHours  float64   `json:"baseRestIntervalHours"`
	ExperienceLevel        Level     `json:"experienceLevel"`
	SleepAdjustmentEnabled bool      `json:"sleepAdjustmentEnabled"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func Default() Settings {
	return Settings{
		BaseRestIntervalHours:  48,
		ExperienceLevel:        LevelBeginner,
		SleepAdjustmentEnabled: true,
	}
}

func (s Settings) Validate() error {
	if !s.ExperienceLevel.Valid() {
		return fmt.Errorf("invalid experience level %q", s.ExperienceLevel)
	}
	if s.BaseRestIntervalHours < MinBaseRestIntervalHours || s.BaseRestIntervalHours > MaxBaseRestIntervalHours {
		return fmt.Errorf(
			"base rest interval must be between %d and %d hours",
			MinBaseRestIntervalHours, MaxBaseRestIntervalHours,
		)
	}
	return nil
}
