package recovery

import (
	"math"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/repready/backend/internal/settings"
	"github.com/repready/backend/internal/sleep"
)

type RecoveryStatus string

const (
	StatusRecovered  RecoveryStatus = "recovered"
	StatusRecovering RecoveryStatus = "recovering"
	StatusSore       RecoveryStatus = "sore"
	StatusOverworked RecoveryStatus = "overworked"
)

// MuscleStatus is the per-muscle engine output. It is recomputed on
// demand and always derivable from workout history plus settings,
// never independently mutated.
type MuscleStatus struct {
	Muscle              Muscle         `json:"muscle"`
	RecoveryPercentage  float64        `json:"recoveryPercentage"`
	RecoveryStatus      RecoveryStatus `json:"recoveryStatus"`
	WorkloadScore       float64        `json:"workloadScore"`
	LastWorked          *time.Time     `json:"lastWorked,omitempty"`
	RecommendedRestDays int            `json:"recommendedRestDays"`
}

const (
	// the base recovery hour tables assume this rest interval
	referenceRestIntervalHours = 48

	thresholdRecovered      = 90
	thresholdRecovering     = 50
	thresholdSore           = 25
	overworkedWorkloadScore = 50

	sleepQualityNeutral = 70
	sleepFactorFloor    = 0.8
	sleepNights         = 3
)

// SleepFactor derives the recovery-hours multiplier from the most
// recent nights. Good sleep (average quality above 70) shortens
// recovery down to a floor of 0.8; poor sleep never extends it.
func SleepFactor(logs []sleep.Log) float64 {
	if len(logs) == 0 {
		return 1
	}

	sorted := make([]sleep.Log, len(logs))
	copy(sorted, logs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Night.After(sorted[j].Night)
	})
	if len(sorted) > sleepNights {
		sorted = sorted[:sleepNights]
	}

	var sum float64
	for _, l := range sorted {
		sum += float64(l.Quality)
	}
	avgQuality := sum / float64(len(sorted))
	if avgQuality <= sleepQualityNeutral {
		return 1
	}

	factor := 1 - 0.2*(avgQuality-sleepQualityNeutral)/(100-sleepQualityNeutral)
	if factor < sleepFactorFloor {
		factor = sleepFactorFloor
	}
	return factor
}

type CalcParams struct {
	Muscle        Muscle
	WorkloadScore float64
	// LastWorked zero means the muscle was never worked
	LastWorked            time.Time
	Level                 settings.Level
	BaseRestIntervalHours float64
	SleepFactor           float64
	Now                   time.Time
}

// CalcMuscleStatus computes one muscle's recovery percentage and
// status. Recovery is a pure function of elapsed time since last
// worked, accumulated workload, experience level and settings.
func CalcMuscleStatus(p CalcParams) MuscleStatus {
	status := MuscleStatus{
		Muscle:        p.Muscle,
		WorkloadScore: p.WorkloadScore,
	}

	if p.LastWorked.IsZero() {
		status.RecoveryPercentage = 100
		status.RecoveryStatus = StatusRecovered
		return status
	}
	lastWorked := p.LastWorked
	status.LastWorked = &lastWorked

	baseHours := baseHoursFor(p.Muscle, p.Level)
	if p.BaseRestIntervalHours > 0 {
		baseHours *= p.BaseRestIntervalHours / referenceRestIntervalHours
	}
	workloadMultiplier := 1 + p.WorkloadScore/100
	adjustedHours := baseHours * workloadMultiplier
	if p.SleepFactor > 0 {
		adjustedHours *= p.SleepFactor
	}

	// invalid intermediates fall back to fully recovered
	if math.IsNaN(adjustedHours) || math.IsInf(adjustedHours, 0) || adjustedHours <= 0 {
		log.Warnf("muscle %s: invalid adjusted recovery hours %f, reporting fully recovered", p.Muscle, adjustedHours)
		status.RecoveryPercentage = 100
		status.RecoveryStatus = StatusRecovered
		return status
	}

	hoursSince := p.Now.Sub(p.LastWorked).Hours()
	if hoursSince < 0 {
		hoursSince = 0
	}

	status.RecoveryPercentage = clamp(hoursSince/adjustedHours*100, 0, 100)
	status.RecoveryStatus = statusFor(status.RecoveryPercentage, p.WorkloadScore)

	if remaining := adjustedHours - hoursSince; remaining > 0 {
		status.RecommendedRestDays = int(math.Ceil(remaining / 24))
	}
	return status
}

func statusFor(pct, workloadScore float64) RecoveryStatus {
	switch {
	case pct >= thresholdRecovered:
		return StatusRecovered
	case pct >= thresholdRecovering:
		return StatusRecovering
	case pct >= thresholdSore:
		return StatusSore
	case workloadScore > overworkedWorkloadScore:
		return StatusOverworked
	default:
		return StatusSore
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
