package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/interfaces"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

const lastSyncKey = "last_sync"

// MissingDates returns the trading days in [start, end] with no stored bar,
// ascending. An empty result means storage already covers every trading
// day in the range; weekends are never flagged.
func MissingDates(tradingDays, stored []time.Time) []time.Time {
	have := make(map[time.Time]struct{}, len(stored))
	for _, d := range stored {
		have[common.Midnight(d)] = struct{}{}
	}

	var missing []time.Time
	for _, d := range tradingDays {
		if _, ok := have[common.Midnight(d)]; !ok {
			missing = append(missing, d)
		}
	}
	return missing
}

// SynchronizeSymbol fills bar gaps for one symbol over [start, end] and
// returns the number of bars written. The provider is asked for a single
// range covering [min(missing), max(missing)] and the response is filtered
// down to exactly the missing dates before the upsert.
func (s *Service) SynchronizeSymbol(ctx context.Context, symbol string, start, end time.Time) (int, error) {
	start = common.Midnight(start)
	end = common.Midnight(end)

	tradingDays := common.TradingDays(start, end)
	if len(tradingDays) == 0 {
		return 0, nil
	}

	stored, err := s.storage.Bars().ExistingDates(ctx, symbol, start, end)
	if err != nil {
		return 0, fmt.Errorf("failed to read stored dates for %s: %w", symbol, err)
	}

	missing := MissingDates(tradingDays, stored)
	if len(missing) == 0 {
		s.logger.Debug().Str("symbol", symbol).Msg("No missing trading days")
		return 0, nil
	}

	fetchStart := missing[0]
	fetchEnd := missing[len(missing)-1]
	s.logger.Debug().
		Str("symbol", symbol).
		Int("missing", len(missing)).
		Str("from", fetchStart.Format(common.DateLayout)).
		Str("to", fetchEnd.Format(common.DateLayout)).
		Msg("Fetching missing bars")

	bars, err := s.client.GetHistoricalBars(ctx, symbol, "daily", fetchStart, fetchEnd)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch bars for %s: %w", symbol, err)
	}

	// The provider may return bars outside the requested set; keep only
	// the dates we actually need.
	wanted := make(map[time.Time]struct{}, len(missing))
	for _, d := range missing {
		wanted[common.Midnight(d)] = struct{}{}
	}
	filtered := make([]models.Bar, 0, len(missing))
	for _, bar := range bars {
		if _, ok := wanted[common.Midnight(bar.Date)]; ok {
			bar.Symbol = symbol
			filtered = append(filtered, bar)
		}
	}

	if len(filtered) == 0 {
		return 0, nil
	}
	if err := s.storage.Bars().UpsertBars(ctx, filtered); err != nil {
		return 0, fmt.Errorf("failed to store bars for %s: %w", symbol, err)
	}
	return len(filtered), nil
}

// SynchronizeUniverse fills bar gaps for the benchmark and every universe
// symbol. Symbols are processed sequentially; one symbol's fetch or store
// failure is logged and tallied, never fatal to the batch. Cancellation is
// checked between symbols only.
func (s *Service) SynchronizeUniverse(ctx context.Context, opts interfaces.SyncOptions) (*models.SyncReport, error) {
	startedAt := time.Now()

	end := opts.End
	if end.IsZero() {
		end = time.Now()
	}
	start := opts.Start
	if start.IsZero() {
		start = end.AddDate(0, 0, -s.syncDays)
	}
	start = common.Midnight(start)
	end = common.Midnight(end)

	report := &models.SyncReport{
		ID:        uuid.New().String(),
		Start:     start,
		End:       end,
		StartedAt: startedAt,
	}

	symbols := s.allSymbols()
	s.logger.Info().
		Int("symbols", len(symbols)).
		Str("from", start.Format(common.DateLayout)).
		Str("to", end.Format(common.DateLayout)).
		Msg("Synchronizing universe")

	for _, symbol := range symbols {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		fetched, err := s.SynchronizeSymbol(ctx, symbol, start, end)
		report.SymbolsProcessed++
		if err != nil {
			report.SymbolsFailed++
			report.Failures = append(report.Failures, models.SymbolFailure{
				Symbol: symbol,
				Reason: err.Error(),
			})
			s.logger.Warn().Err(err).Str("symbol", symbol).Msg("Symbol sync failed")
			continue
		}
		report.RecordsFetched += fetched
	}

	report.Duration = time.Since(startedAt)

	if err := s.storage.SetSystemKV(ctx, lastSyncKey, startedAt.UTC().Format(time.RFC3339)); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record sync timestamp")
	}

	s.logger.Info().
		Int("processed", report.SymbolsProcessed).
		Int("failed", report.SymbolsFailed).
		Int("fetched", report.RecordsFetched).
		Dur("duration", report.Duration).
		Msg("Universe sync complete")

	return report, nil
}
