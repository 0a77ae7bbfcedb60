package recovery

import (
	"strings"

	"github.com/repready/backend/internal/workouts"
)

// exerciseCatalog is the static exercise → muscles table. Primary and
// secondary muscles are listed together; set volume splits evenly
// across all of them.
var exerciseCatalog = map[string][]Muscle{
	"bench-press":                {MuscleChest, MuscleTriceps, MuscleShoulders},
	"incline-bench-press":        {MuscleChest, MuscleShoulders, MuscleTriceps},
	"decline-bench-press":        {MuscleChest, MuscleTriceps},
	"dumbbell-press":             {MuscleChest, MuscleTriceps},
	"chest-fly":                  {MuscleChest},
	"cable-crossover":            {MuscleChest},
	"push-up":                    {MuscleChest, MuscleTriceps, MuscleCore},
	"dip":                        {MuscleTriceps, MuscleChest},
	"overhead-press":             {MuscleShoulders, MuscleTriceps},
	"arnold-press":               {MuscleShoulders, MuscleTriceps},
	"lateral-raise":              {MuscleShoulders},
	"front-raise":                {MuscleShoulders},
	"rear-delt-fly":              {MuscleShoulders, MuscleBack},
	"face-pull":                  {MuscleShoulders, MuscleBack},
	"shrug":                      {MuscleBack},
	"pull-up":                    {MuscleBack, MuscleBiceps},
	"chin-up":                    {MuscleBack, MuscleBiceps},
	"lat-pulldown":               {MuscleBack, MuscleBiceps},
	"barbell-row":                {MuscleBack, MuscleBiceps},
	"dumbbell-row":               {MuscleBack, MuscleBiceps},
	"seated-cable-row":           {MuscleBack, MuscleBiceps},
	"t-bar-row":                  {MuscleBack, MuscleBiceps},
	"deadlift":                   {MuscleBack, MuscleHamstrings, MuscleGlutes},
	"romanian-deadlift":          {MuscleHamstrings, MuscleGlutes, MuscleBack},
	"sumo-deadlift":              {MuscleGlutes, MuscleHamstrings, MuscleQuads, MuscleBack},
	"good-morning":               {MuscleHamstrings, MuscleGlutes, MuscleBack},
	"barbell-curl":               {MuscleBiceps, MuscleForearms},
	"dumbbell-curl":              {MuscleBiceps, MuscleForearms},
	"hammer-curl":                {MuscleBiceps, MuscleForearms},
	"preacher-curl":              {MuscleBiceps},
	"concentration-curl":         {MuscleBiceps},
	"triceps-pushdown":           {MuscleTriceps},
	"skull-crusher":              {MuscleTriceps},
	"overhead-triceps-extension": {MuscleTriceps},
	"close-grip-bench-press":     {MuscleTriceps, MuscleChest},
	"wrist-curl":                 {MuscleForearms},
	"farmers-walk":               {MuscleForearms, MuscleCore},
	"squat":                      {MuscleQuads, MuscleGlutes, MuscleHamstrings, MuscleCore},
	"front-squat":                {MuscleQuads, MuscleCore, MuscleGlutes},
	"goblet-squat":               {MuscleQuads, MuscleGlutes, MuscleCore},
	"leg-press":                  {MuscleQuads, MuscleGlutes},
	"hack-squat":                 {MuscleQuads, MuscleGlutes},
	"lunge":                      {MuscleQuads, MuscleGlutes, MuscleHamstrings},
	"bulgarian-split-squat":      {MuscleQuads, MuscleGlutes},
	"step-up":                    {MuscleQuads, MuscleGlutes},
	"leg-extension":              {MuscleQuads},
	"leg-curl":                   {MuscleHamstrings},
	"hip-thrust":                 {MuscleGlutes, MuscleHamstrings},
	"glute-bridge":               {MuscleGlutes},
	"calf-raise":                 {MuscleCalves},
	"seated-calf-raise":          {MuscleCalves},
	"plank":                      {MuscleCore},
	"side-plank":                 {MuscleCore},
	"crunch":                     {MuscleCore},
	"sit-up":                     {MuscleCore},
	"hanging-leg-raise":          {MuscleCore, MuscleForearms},
	"russian-twist":              {MuscleCore},
	"ab-wheel-rollout":           {MuscleCore, MuscleShoulders},
	"running":                    {MuscleQuads, MuscleHamstrings, MuscleCalves, MuscleGlutes},
	"cycling":                    {MuscleQuads, MuscleCalves, MuscleGlutes},
	"rowing":                     {MuscleBack, MuscleBiceps, MuscleQuads, MuscleCore},
	"swimming":                   {MuscleBack, MuscleShoulders, MuscleCore},
	"jump-rope":                  {MuscleCalves, MuscleForearms, MuscleCore},
}

// CatalogExerciseIDs returns all exercise ids known to the catalog,
// mainly for seeding and client pickers.
func CatalogExerciseIDs() []string {
	ids := make([]string, 0, len(exerciseCatalog))
	for id := range exerciseCatalog {
		ids = append(ids, id)
	}
	return ids
}

// resolveMuscles maps a set to the muscles it loads: first through the
// static catalog, then through the set's own stored muscle list. The
// second return value is false when neither path resolves anything, in
// which case the set contributes zero volume.
func resolveMuscles(set workouts.Set) ([]Muscle, bool) {
	if muscles, ok := exerciseCatalog[normalizeExerciseID(set.ExerciseID)]; ok {
		return muscles, true
	}
	if len(set.MuscleGroups) == 0 {
		return nil, false
	}
	muscles := make([]Muscle, 0, len(set.MuscleGroups))
	seen := make(map[Muscle]bool, len(set.MuscleGroups))
	for _, name := range set.MuscleGroups {
		m := Muscle(strings.ToLower(strings.TrimSpace(name)))
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		muscles = append(muscles, m)
	}
	if len(muscles) == 0 {
		return nil, false
	}
	return muscles, true
}

func normalizeExerciseID(id string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), " ", "-")
}
