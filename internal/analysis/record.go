package analysis

import (
	"math"
	"time"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// minObservations is the shortest subject history worth computing on. Below
// this, every indicator would be null anyway, so the record stays empty.
const minObservations = 20

// ComputeRecord derives one symbol's indicator record for targetDate from
// its bar history and the benchmark's bar history, both ascending by date.
//
// The target date must appear exactly in the subject series; if it does
// not, or the history up to it is shorter than 20 observations, or the bars
// carry non-finite values, the returned record is all-null. Each indicator
// otherwise degrades to null independently: a short benchmark overlap nulls
// the relative strength fields without touching the moving averages.
//
// ComputeRecord is pure; running it twice on the same inputs produces
// identical records.
func ComputeRecord(symbol string, subjectBars, benchmarkBars []models.Bar, targetDate time.Time) *models.IndicatorRecord {
	record := &models.IndicatorRecord{
		Symbol: symbol,
		Date:   common.Midnight(targetDate),
	}

	idx := -1
	for i := len(subjectBars) - 1; i >= 0; i-- {
		if common.SameDate(subjectBars[i].Date, targetDate) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return record
	}

	subject := subjectBars[:idx+1]
	if len(subject) < minObservations {
		return record
	}

	subjectAligned, benchmarkAligned := alignSeries(subject, benchmarkBars)
	if hasMalformedBars(subject) || hasMalformedBars(benchmarkAligned) {
		return record
	}

	closes := make([]float64, len(subject))
	for i, b := range subject {
		closes[i] = b.Close
	}

	record.SMA200 = SMA(closes, 200)
	record.SMA100 = SMA(closes, 100)
	record.SMA50 = SMA(closes, 50)
	record.EMA15 = EMA(closes, 15)
	record.EMA8 = EMA(closes, 8)

	record.RRS1 = RRSForPeriod(subjectAligned, benchmarkAligned, 1)
	record.RRS3 = RRSForPeriod(subjectAligned, benchmarkAligned, 3)
	record.RRS8 = RRSForPeriod(subjectAligned, benchmarkAligned, 8)
	record.RRS15 = RRSForPeriod(subjectAligned, benchmarkAligned, 15)

	record.RelativeVolume = RelativeVolume(subject, RelativeVolumePeriod)

	return record
}

// alignSeries intersects the two series on date, preserving ascending
// order. Only dates present in both participate; the returned slices have
// equal length and pair up element-wise.
func alignSeries(subject, benchmark []models.Bar) ([]models.Bar, []models.Bar) {
	byDate := make(map[time.Time]models.Bar, len(benchmark))
	for _, b := range benchmark {
		byDate[common.Midnight(b.Date)] = b
	}

	var subjectOut, benchmarkOut []models.Bar
	for _, s := range subject {
		if b, ok := byDate[common.Midnight(s.Date)]; ok {
			subjectOut = append(subjectOut, s)
			benchmarkOut = append(benchmarkOut, b)
		}
	}
	return subjectOut, benchmarkOut
}

func hasMalformedBars(bars []models.Bar) bool {
	for _, b := range bars {
		for _, v := range [4]float64{b.Open, b.High, b.Low, b.Close} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return true
			}
		}
	}
	return false
}
