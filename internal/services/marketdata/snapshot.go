package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// snapshotFallbackDays is how many prior business days a snapshot lookup
// walks back when the requested date has no record.
const snapshotFallbackDays = 5

// GetIndicatorSnapshot returns the indicator record for a symbol on a
// date. When the exact date has no record (holiday, weekend request, or an
// uncomputed day), the lookup walks back one business day at a time, up to
// five, and flags the substitution in the snapshot.
func (s *Service) GetIndicatorSnapshot(ctx context.Context, symbol string, date time.Time) (*models.IndicatorSnapshot, error) {
	requested := common.Midnight(date)

	snapshot := &models.IndicatorSnapshot{
		Symbol:        symbol,
		RequestedDate: requested,
	}

	effective := requested
	for back := 0; back <= snapshotFallbackDays; back++ {
		record, err := s.storage.Indicators().GetRecord(ctx, symbol, effective)
		if err != nil {
			return nil, fmt.Errorf("failed to read record for %s: %w", symbol, err)
		}
		if record != nil {
			snapshot.EffectiveDate = effective
			snapshot.Substituted = back > 0
			snapshot.DaysBack = back
			snapshot.Record = record

			if bar, err := s.storage.Bars().GetBar(ctx, symbol, effective); err == nil && bar != nil {
				snapshot.Close = bar.Close
			}
			return snapshot, nil
		}
		effective = common.PreviousTradingDay(effective)
	}

	return nil, fmt.Errorf("no indicator record for %s within %d business days of %s",
		symbol, snapshotFallbackDays, requested.Format(common.DateLayout))
}
