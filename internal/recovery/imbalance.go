package recovery

import (
	"math"
	"sort"
)

type ImbalanceStatus string

const (
	ImbalanceModerate ImbalanceStatus = "moderate"
	ImbalanceSevere   ImbalanceStatus = "severe"
)

type Imbalance struct {
	Muscle           Muscle          `json:"muscle"`
	LeftVolume       float64         `json:"leftVolume"`
	RightVolume      float64         `json:"rightVolume"`
	ImbalancePercent float64         `json:"imbalancePercent"`
	Status           ImbalanceStatus `json:"status"`
}

const (
	// minimum logged workouts before imbalance detection kicks in
	imbalanceMinWorkouts = 7
	// minimum relative left/right difference worth reporting
	imbalanceMinPercent    = 10
	imbalanceSeverePercent = 25
	// minimum combined volume; below this the sample is noise
	imbalanceVolumeFloor = 100
)

// DetectImbalances compares left/right volume per bilateral muscle.
// With fewer than 7 workouts it returns an empty list: an
// insufficient-data guard, not an error. Sets without side information
// were split evenly by the aggregator and so can detect nothing here.
func DetectImbalances(workload Workload) []Imbalance {
	imbalances := make([]Imbalance, 0)
	if workload.WorkoutCount < imbalanceMinWorkouts {
		return imbalances
	}

	for muscle, mw := range workload.PerMuscle {
		if !bilateralMuscles[muscle] {
			continue
		}

		maxSide := math.Max(mw.LeftVolume, mw.RightVolume)
		if maxSide <= 0 {
			continue
		}
		if mw.LeftVolume+mw.RightVolume <= imbalanceVolumeFloor {
			continue
		}

		pct := math.Abs(mw.LeftVolume-mw.RightVolume) / maxSide * 100
		if pct <= imbalanceMinPercent {
			continue
		}

		status := ImbalanceModerate
		if pct > imbalanceSeverePercent {
			status = ImbalanceSevere
		}

		imbalances = append(imbalances, Imbalance{
			Muscle:           muscle,
			LeftVolume:       mw.LeftVolume,
			RightVolume:      mw.RightVolume,
			ImbalancePercent: pct,
			Status:           status,
		})
	}

	sort.Slice(imbalances, func(i, j int) bool {
		if imbalances[i].ImbalancePercent != imbalances[j].ImbalancePercent {
			return imbalances[i].ImbalancePercent > imbalances[j].ImbalancePercent
		}
		return imbalances[i].Muscle < imbalances[j].Muscle
	})

	return imbalances
}
