package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

var seriesStart = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

// tradingDate returns the i-th weekday on or after seriesStart.
func tradingDate(i int) time.Time {
	d := seriesStart
	for i > 0 {
		d = d.AddDate(0, 0, 1)
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			i--
		}
	}
	return d
}

// risingBars generates n bars whose closes climb by step per day, with a
// fixed wing above and below the close. Every bar's true range works out to
// step, including the gap terms.
func risingBars(n int, start, step, wing float64) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		c := start + float64(i)*step
		bars[i] = models.Bar{
			Symbol: "TEST",
			Date:   tradingDate(i),
			Open:   c,
			High:   c + wing,
			Low:    c - wing,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}

// flatBars generates n identical bars with an intraday range of 2*wing.
func flatBars(n int, close, wing float64) []models.Bar {
	bars := make([]models.Bar, n)
	for i := range bars {
		bars[i] = models.Bar{
			Symbol: "TEST",
			Date:   tradingDate(i),
			Open:   close,
			High:   close + wing,
			Low:    close - wing,
			Close:  close,
			Volume: 1_000_000,
		}
	}
	return bars
}

func TestTrueRanges_SingleBar(t *testing.T) {
	bars := []models.Bar{{High: 105, Low: 98, Close: 100}}
	trs := TrueRanges(bars)
	require.Len(t, trs, 1)
	assert.Equal(t, 7.0, trs[0])
}

func TestTrueRanges_MultiBar(t *testing.T) {
	bars := []models.Bar{
		{High: 102, Low: 98, Close: 100},
		{High: 103, Low: 101, Close: 102}, // intraday range 2, gap from 100 is 3
		{High: 96, Low: 94, Close: 95},    // gap down: |94-102| = 8 dominates
		{High: 96, Low: 93, Close: 94},    // plain range 3 dominates
	}
	trs := TrueRanges(bars)
	require.Len(t, trs, 4)
	assert.Equal(t, 4.0, trs[0])
	assert.Equal(t, 3.0, trs[1])
	assert.Equal(t, 8.0, trs[2])
	assert.Equal(t, 3.0, trs[3])
}

func TestTrueRanges_Empty(t *testing.T) {
	assert.Empty(t, TrueRanges(nil))
}

func TestWildersAverage(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		period   int
		expected float64
	}{
		{
			name:     "exactly period values equals simple mean",
			values:   []float64{10, 11, 12},
			period:   3,
			expected: 11.0,
		},
		{
			name: "iterative recurrence past the seed",
			// seed = mean(1,2,3) = 2; then 4/3 + 2*(2/3) = 2.666...;
			// then 5/3 + 2.666...*(2/3) = 3.444...
			values:   []float64{1, 2, 3, 4, 5},
			period:   3,
			expected: 3.4444444444444446,
		},
		{
			name:     "NaN entries dropped before the sufficiency check",
			values:   []float64{1, math.NaN(), 2, 3, math.NaN(), 4, 5},
			period:   3,
			expected: 3.4444444444444446,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WildersAverage(tt.values, tt.period)
			require.NotNil(t, result)
			assert.InDelta(t, tt.expected, *result, 1e-12)
		})
	}
}

func TestWildersAverage_InsufficientData(t *testing.T) {
	assert.Nil(t, WildersAverage([]float64{1, 2}, 3))
	assert.Nil(t, WildersAverage(nil, 1))
	assert.Nil(t, WildersAverage([]float64{1, 2, 3}, 0))

	// Three values but one is missing: only two clean remain.
	assert.Nil(t, WildersAverage([]float64{1, math.NaN(), 3}, 3))
}
