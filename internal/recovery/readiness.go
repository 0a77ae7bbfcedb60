package recovery

import "math"

type ReadinessStatus string

const (
	ReadinessReady      ReadinessStatus = "ready"
	ReadinessRecovering ReadinessStatus = "recovering"
	ReadinessNeedsRest  ReadinessStatus = "needs_rest"
)

type Trend struct {
	Current          float64 `json:"current"`
	Previous         float64 `json:"previous"`
	Change           float64 `json:"change"`
	ChangePercentage float64 `json:"changePercentage"`
}

type Readiness struct {
	Score  int             `json:"score"`
	Status ReadinessStatus `json:"status"`
	Trend  Trend           `json:"trend"`
}

const (
	readinessReadyThreshold      = 75
	readinessRecoveringThreshold = 50
)

func meanRecovery(muscles []MuscleStatus) float64 {
	if len(muscles) == 0 {
		return 100
	}
	var sum float64
	for _, m := range muscles {
		sum += m.RecoveryPercentage
	}
	return sum / float64(len(muscles))
}

// CalcReadiness combines all muscle recovery percentages into one
// score with a week-over-week trend. current holds the statuses for
// now, previous the same muscles re-evaluated as if now were 7 days
// earlier. Pure and idempotent: identical inputs, identical output.
func CalcReadiness(current, previous []MuscleStatus) Readiness {
	currentAvg := meanRecovery(current)
	previousAvg := meanRecovery(previous)

	change := currentAvg - previousAvg
	var changePct float64
	switch {
	case previousAvg != 0:
		changePct = change / previousAvg * 100
	case currentAvg > 0:
		changePct = 100
	default:
		changePct = 0
	}

	score := int(math.Round(currentAvg))
	return Readiness{
		Score:  score,
		Status: readinessStatusFor(score),
		Trend: Trend{
			Current:          currentAvg,
			Previous:         previousAvg,
			Change:           change,
			ChangePercentage: changePct,
		},
	}
}

func readinessStatusFor(score int) ReadinessStatus {
	switch {
	case score >= readinessReadyThreshold:
		return ReadinessReady
	case score >= readinessRecoveringThreshold:
		return ReadinessRecovering
	default:
		return ReadinessNeedsRest
	}
}
