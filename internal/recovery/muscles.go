package recovery

import "github.com/repready/backend/internal/settings"

// Muscle identifies a tracked muscle group.
type Muscle string

const (
	MuscleChest      Muscle = "chest"
	MuscleBack       Muscle = "back"
	MuscleShoulders  Muscle = "shoulders"
	MuscleBiceps     Muscle = "biceps"
	MuscleTriceps    Muscle = "triceps"
	MuscleForearms   Muscle = "forearms"
	MuscleCore       Muscle = "core"
	MuscleQuads      Muscle = "quads"
	MuscleHamstrings Muscle = "hamstrings"
	MuscleGlutes     Muscle = "glutes"
	MuscleCalves     Muscle = "calves"
)

// TrackedMuscles is the fixed set of muscle groups the engine reports
// on, in presentation order. Muscles outside this list can still enter
// the computation through a set's stored muscle list.
var TrackedMuscles = []Muscle{
	MuscleChest,
	MuscleBack,
	MuscleShoulders,
	MuscleBiceps,
	MuscleTriceps,
	MuscleForearms,
	MuscleCore,
	MuscleQuads,
	MuscleHamstrings,
	MuscleGlutes,
	MuscleCalves,
}

// bilateralMuscles are the groups with distinct left/right sides,
// eligible for imbalance detection. Core is excluded: it has no
// meaningful left/right volume split.
var bilateralMuscles = map[Muscle]bool{
	MuscleChest:      true,
	MuscleBack:       true,
	MuscleShoulders:  true,
	MuscleBiceps:     true,
	MuscleTriceps:    true,
	MuscleForearms:   true,
	MuscleQuads:      true,
	MuscleHamstrings: true,
	MuscleGlutes:     true,
	MuscleCalves:     true,
}

// baseRecoveryHours holds the default full-recovery duration per muscle
// for each experience level, assuming a 48h base rest interval and no
// accumulated workload. More trained athletes recover faster.
var baseRecoveryHours = map[settings.Level]map[Muscle]float64{
	settings.LevelBeginner: {
		MuscleChest:      48,
		MuscleBack:       48,
		MuscleShoulders:  48,
		MuscleBiceps:     36,
		MuscleTriceps:    36,
		MuscleForearms:   24,
		MuscleCore:       24,
		MuscleQuads:      60,
		MuscleHamstrings: 60,
		MuscleGlutes:     48,
		MuscleCalves:     36,
	},
	settings.LevelIntermediate: {
		MuscleChest:      42,
		MuscleBack:       42,
		MuscleShoulders:  40,
		MuscleBiceps:     32,
		MuscleTriceps:    32,
		MuscleForearms:   20,
		MuscleCore:       20,
		MuscleQuads:      52,
		MuscleHamstrings: 52,
		MuscleGlutes:     42,
		MuscleCalves:     30,
	},
	settings.LevelAdvanced: {
		MuscleChest:      36,
		MuscleBack:       36,
		MuscleShoulders:  34,
		MuscleBiceps:     28,
		MuscleTriceps:    28,
		MuscleForearms:   18,
		MuscleCore:       18,
		MuscleQuads:      46,
		MuscleHamstrings: 46,
		MuscleGlutes:     36,
		MuscleCalves:     26,
	},
}

// defaultRecoveryHours per level, for muscles that entered the
// computation through a stored muscle list and have no table entry.
var defaultRecoveryHours = map[settings.Level]float64{
	settings.LevelBeginner:     48,
	settings.LevelIntermediate: 42,
	settings.LevelAdvanced:     36,
}

func baseHoursFor(muscle Muscle, level settings.Level) float64 {
	table, ok := baseRecoveryHours[level]
	if !ok {
		table = baseRecoveryHours[settings.LevelBeginner]
		level = settings.LevelBeginner
	}
	if hours, ok := table[muscle]; ok {
		return hours
	}
	return defaultRecoveryHours[level]
}
