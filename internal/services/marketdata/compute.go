package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rongxanh88/day-trade-assistant/internal/analysis"
	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// historyLimit bounds the bar history loaded per computation. 300 bars
// comfortably covers the 200-day average plus the ATR warm-up.
const historyLimit = 300

// ComputeIndicators computes and stores indicator records for every
// universe symbol on every trading day in [start, end]. Dates with no bar
// or too little history produce an empty record, which is counted as
// skipped and not persisted. Recomputing an existing (symbol, date) simply
// overwrites it.
func (s *Service) ComputeIndicators(ctx context.Context, start, end time.Time) (*models.ComputeReport, error) {
	startedAt := time.Now()
	start = common.Midnight(start)
	end = common.Midnight(end)

	report := &models.ComputeReport{
		ID:        uuid.New().String(),
		Start:     start,
		End:       end,
		StartedAt: startedAt,
	}

	days := common.TradingDays(start, end)
	if len(days) == 0 {
		report.Duration = time.Since(startedAt)
		return report, nil
	}

	s.logger.Info().
		Int("symbols", len(s.universe)).
		Int("days", len(days)).
		Str("from", start.Format(common.DateLayout)).
		Str("to", end.Format(common.DateLayout)).
		Msg("Computing indicators")

	for _, symbol := range s.universe {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if err := s.computeSymbol(ctx, symbol, days, report); err != nil {
			report.Failures = append(report.Failures, models.SymbolFailure{
				Symbol: symbol,
				Reason: err.Error(),
			})
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Indicator computation failed")
		}
	}

	report.Duration = time.Since(startedAt)
	s.logger.Info().
		Int("calculated", report.Calculated).
		Int("skipped", report.Skipped).
		Dur("duration", report.Duration).
		Msg("Indicator computation complete")

	return report, nil
}

// computeSymbol loads one symbol's history once, wide enough that every
// day in the range still sees its full lookback, then derives each day's
// record from the historyLimit bars ending at that day. A record for
// (symbol, date) must come out the same whether the date is computed
// alone or inside a longer range.
func (s *Service) computeSymbol(ctx context.Context, symbol string, days []time.Time, report *models.ComputeReport) error {
	lastDay := days[len(days)-1]
	limit := historyLimit + len(days)

	subjectBars, err := s.storage.Bars().BarsUpTo(ctx, symbol, lastDay, limit)
	if err != nil {
		return fmt.Errorf("failed to load bars for %s: %w", symbol, err)
	}
	benchmarkBars, err := s.storage.Bars().BarsUpTo(ctx, s.benchmark, lastDay, limit)
	if err != nil {
		return fmt.Errorf("failed to load benchmark bars: %w", err)
	}

	for _, day := range days {
		record := analysis.ComputeRecord(symbol, historyThrough(subjectBars, day), historyThrough(benchmarkBars, day), day)
		if record.IsEmpty() {
			report.Skipped++
			continue
		}
		if err := s.storage.Indicators().UpsertRecord(ctx, record); err != nil {
			return fmt.Errorf("failed to store record for %s: %w", symbol, err)
		}
		report.Calculated++
	}
	return nil
}

// historyThrough returns at most historyLimit bars dated on or before day.
// bars must be ascending by date.
func historyThrough(bars []models.Bar, day time.Time) []models.Bar {
	hi := len(bars)
	for hi > 0 && bars[hi-1].Date.After(day) {
		hi--
	}
	lo := hi - historyLimit
	if lo < 0 {
		lo = 0
	}
	return bars[lo:hi]
}
