package analysis

import (
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// atrPeriod is the fixed Wilder smoothing window used for every relative
// strength lookback. The moving window applies to the price change only;
// the volatility normalizer stays at 14 regardless of the lookback, which
// mirrors the common charting convention.
const atrPeriod = 14

// RRSPeriods are the lookback periods, in trading days, computed for every
// indicator record.
var RRSPeriods = []int{1, 3, 8, 15}

// RRSForPeriod computes the real relative strength of a subject series
// against a date-aligned benchmark series over the given lookback period.
//
// The benchmark's move is divided by its ATR-14 to get a "power index";
// multiplying by the subject's ATR-14 gives the move the subject should
// have made to merely keep pace. The result is the subject's excess move in
// units of its own ATR, rounded to 4 decimal places.
//
// Returns nil when either series has fewer than max(period+1, 15)
// observations, or when either ATR is nil or zero.
func RRSForPeriod(subject, benchmark []models.Bar, period int) *float64 {
	if period <= 0 {
		return nil
	}
	minLen := period + 1
	if minLen < atrPeriod+1 {
		minLen = atrPeriod + 1
	}
	if len(subject) < minLen || len(benchmark) < minLen {
		return nil
	}

	subjectATR := WildersAverage(TrueRanges(subject), atrPeriod)
	benchmarkATR := WildersAverage(TrueRanges(benchmark), atrPeriod)
	if subjectATR == nil || benchmarkATR == nil || *subjectATR == 0 || *benchmarkATR == 0 {
		return nil
	}

	subjectMove := subject[len(subject)-1].Close - subject[len(subject)-1-period].Close
	benchmarkMove := benchmark[len(benchmark)-1].Close - benchmark[len(benchmark)-1-period].Close

	powerIndex := benchmarkMove / *benchmarkATR
	expectedMove := powerIndex * *subjectATR

	return f64(round4((subjectMove - expectedMove) / *subjectATR))
}
