// Package analysis provides the pure technical indicator calculations:
// moving averages, true range, Wilder smoothing, and benchmark-relative
// strength. All functions operate on series in ascending date order, most
// recent last, and return nil when the series is too short for the window.
package analysis

import "math"

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func f64(v float64) *float64 {
	return &v
}

// SMA calculates the simple moving average of the last `period` prices,
// rounded to 2 decimal places. Returns nil when fewer than `period` prices
// are supplied.
func SMA(prices []float64, period int) *float64 {
	if period <= 0 || len(prices) < period {
		return nil
	}
	sum := 0.0
	for _, p := range prices[len(prices)-period:] {
		sum += p
	}
	return f64(round2(sum / float64(period)))
}

// EMA calculates an exponential moving average with smoothing factor
// 2/(period+1), seeded with the first price of the series and iterated
// across every subsequent price. The first-price seed differs from the
// textbook initial-window mean and is kept for compatibility with
// historical outputs. Result rounded to 2 decimal places; nil when fewer
// than `period` prices are supplied.
func EMA(prices []float64, period int) *float64 {
	if period <= 0 || len(prices) < period {
		return nil
	}
	alpha := 2.0 / float64(period+1)
	ema := prices[0]
	for _, p := range prices[1:] {
		ema = alpha*p + (1-alpha)*ema
	}
	return f64(round2(ema))
}
