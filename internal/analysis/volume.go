package analysis

import (
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// RelativeVolumePeriod is the trailing window used as the volume baseline.
const RelativeVolumePeriod = 20

// RelativeVolume compares the last bar's volume against the mean volume of
// the `period` bars before it, rounded to 2 decimal places. A value above
// 1 means the latest session traded heavier than its recent baseline.
// Returns nil when fewer than period+1 bars are supplied or the baseline
// mean is zero.
func RelativeVolume(bars []models.Bar, period int) *float64 {
	if period <= 0 || len(bars) < period+1 {
		return nil
	}

	prior := bars[len(bars)-1-period : len(bars)-1]
	sum := 0.0
	for _, b := range prior {
		sum += float64(b.Volume)
	}
	mean := sum / float64(period)
	if mean == 0 {
		return nil
	}
	return f64(round2(float64(bars[len(bars)-1].Volume) / mean))
}
