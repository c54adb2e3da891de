package analysis

import (
	"math"

	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// TrueRanges computes the per-bar true range for an ascending OHLC series.
// The first bar has no previous close, so its true range is high - low;
// each later bar takes max(high-low, |high-prevClose|, |low-prevClose|).
func TrueRanges(bars []models.Bar) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		tr := b.High - b.Low
		if i > 0 {
			prevClose := bars[i-1].Close
			if v := math.Abs(b.High - prevClose); v > tr {
				tr = v
			}
			if v := math.Abs(b.Low - prevClose); v > tr {
				tr = v
			}
		}
		out[i] = tr
	}
	return out
}

// WildersAverage applies Wilder's recursive smoothing to a series. NaN
// entries are treated as missing and dropped before the sufficiency check.
// The seed is the arithmetic mean of the first `period` clean values; every
// later value v folds in as result = v/period + result*(period-1)/period.
// Returns nil when fewer than `period` clean values remain.
func WildersAverage(values []float64, period int) *float64 {
	if period <= 0 {
		return nil
	}
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		clean = append(clean, v)
	}
	if len(clean) < period {
		return nil
	}

	sum := 0.0
	for _, v := range clean[:period] {
		sum += v
	}
	result := sum / float64(period)

	k := 1.0 / float64(period)
	for _, v := range clean[period:] {
		result = k*v + (1-k)*result
	}
	return f64(result)
}
