package sleep

import (
	"fmt"
	"time"
)

// Log is one night of sleep. Quality feeds the recovery engine's
// sleep adjustment; Hours is informational.
type Log struct {
	ID        int       `json:"id"`
	Night     time.Time `json:"night"`
	Quality   int       `json:"quality"`
	Hours     float64   `json:"hours,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (l Log) Validate() error {
	if l.Night.IsZero() {
		return fmt.Errorf("night date empty")
	}
	if l.Quality < 0 || l.Quality > 100 {
		return fmt.Errorf("quality %d out of range [0, 100]", l.Quality)
	}
	if l.Hours < 0 || l.Hours > 24 {
		return fmt.Errorf("hours %.1f out of range [0, 24]", l.Hours)
	}
	return nil
}
