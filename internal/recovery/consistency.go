package recovery

import (
	"math"
	"time"

	"github.com/repready/backend/internal/workouts"
)

type WeekBucket struct {
	WeekStart  time.Time `json:"weekStart"`
	Workouts   int       `json:"workouts"`
	Threshold  int       `json:"threshold"`
	Consistent bool      `json:"consistent"`
}

type Consistency struct {
	Score int          `json:"score"`
	Weeks []WeekBucket `json:"weeks"`
}

// target workout count for a full 7-day week
const targetWorkoutsPerWeek = 3

// dateOnly projects t's calendar date to a UTC midnight, so week
// arithmetic works in exact 24h days regardless of the source zone.
func dateOnly(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// startOfISOWeek returns the Monday of t's ISO week.
func startOfISOWeek(t time.Time) time.Time {
	d := dateOnly(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// CalcConsistency scores workout frequency per ISO calendar week
// (Monday start). A week is consistent when its workout count reaches
// ceil(3 * daysInWeek / 7); partial first and last weeks prorate
// daysInWeek by clipping against the window, which runs from the
// earliest workout to now.
func CalcConsistency(history []workouts.Workout, now time.Time) Consistency {
	if len(history) == 0 {
		return Consistency{Score: 0, Weeks: []WeekBucket{}}
	}

	perWeek := make(map[time.Time]int)
	var earliest time.Time
	for _, w := range history {
		if earliest.IsZero() || w.PerformedAt.Before(earliest) {
			earliest = w.PerformedAt
		}
		perWeek[startOfISOWeek(w.PerformedAt)]++
	}

	windowFrom := dateOnly(earliest)
	windowTo := dateOnly(now)

	weeks := make([]WeekBucket, 0)
	consistentWeeks := 0
	for weekStart := startOfISOWeek(windowFrom); !weekStart.After(windowTo); weekStart = weekStart.AddDate(0, 0, 7) {
		weekEnd := weekStart.AddDate(0, 0, 6)

		from := weekStart
		if from.Before(windowFrom) {
			from = windowFrom
		}
		to := weekEnd
		if to.After(windowTo) {
			to = windowTo
		}
		daysInWeek := int(to.Sub(from).Hours()/24) + 1

		threshold := (targetWorkoutsPerWeek*daysInWeek + 6) / 7
		count := perWeek[weekStart]
		consistent := count >= threshold
		if consistent {
			consistentWeeks++
		}

		weeks = append(weeks, WeekBucket{
			WeekStart:  weekStart,
			Workouts:   count,
			Threshold:  threshold,
			Consistent: consistent,
		})
	}

	if len(weeks) == 0 {
		return Consistency{Score: 0, Weeks: weeks}
	}

	score := int(math.Round(float64(consistentWeeks) / float64(len(weeks)) * 100))
	if score > 100 {
		score = 100
	}

	return Consistency{
		Score: score,
		Weeks: weeks,
	}
}
