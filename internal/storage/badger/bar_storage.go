package badger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

type barStorage struct {
	store  *Store
	logger *common.Logger
}

// NewBarStorage creates a BarStorage backed by BadgerHold.
func NewBarStorage(store *Store, logger *common.Logger) *barStorage {
	return &barStorage{store: store, logger: logger}
}

// barKey builds the natural (symbol, date) key that enforces bar uniqueness.
func barKey(symbol string, date time.Time) string {
	return symbol + "|" + common.Midnight(date).Format(common.DateLayout)
}

func (s *barStorage) UpsertBars(_ context.Context, bars []models.Bar) error {
	now := time.Now()
	for i := range bars {
		bar := bars[i]
		bar.Date = common.Midnight(bar.Date)
		bar.UpdatedAt = now

		key := barKey(bar.Symbol, bar.Date)

		var existing models.Bar
		if err := s.store.db.Get(key, &existing); err == nil {
			bar.CreatedAt = existing.CreatedAt
		} else {
			bar.CreatedAt = now
		}

		if err := s.store.db.Upsert(key, bar); err != nil {
			return fmt.Errorf("failed to upsert bar %s: %w", key, err)
		}
	}
	if len(bars) > 0 {
		s.logger.Debug().Str("symbol", bars[0].Symbol).Int("count", len(bars)).Msg("Bars upserted")
	}
	return nil
}

func (s *barStorage) ExistingDates(_ context.Context, symbol string, start, end time.Time) ([]time.Time, error) {
	start = common.Midnight(start)
	end = common.Midnight(end)

	var bars []models.Bar
	if err := s.store.db.Find(&bars, badgerhold.Where("Symbol").Eq(symbol).Index("Symbol")); err != nil {
		return nil, fmt.Errorf("failed to query bars for %s: %w", symbol, err)
	}

	var dates []time.Time
	for _, b := range bars {
		d := common.Midnight(b.Date)
		if !d.Before(start) && !d.After(end) {
			dates = append(dates, d)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (s *barStorage) BarsUpTo(_ context.Context, symbol string, end time.Time, limit int) ([]models.Bar, error) {
	end = common.Midnight(end)

	var bars []models.Bar
	if err := s.store.db.Find(&bars, badgerhold.Where("Symbol").Eq(symbol).Index("Symbol")); err != nil {
		return nil, fmt.Errorf("failed to query bars for %s: %w", symbol, err)
	}

	filtered := bars[:0]
	for _, b := range bars {
		if !common.Midnight(b.Date).After(end) {
			filtered = append(filtered, b)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].Date.Before(filtered[j].Date) })

	if limit > 0 && len(filtered) > limit {
		filtered = filtered[len(filtered)-limit:]
	}
	return filtered, nil
}

func (s *barStorage) GetBar(_ context.Context, symbol string, date time.Time) (*models.Bar, error) {
	var bar models.Bar
	err := s.store.db.Get(barKey(symbol, date), &bar)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bar for %s: %w", symbol, err)
	}
	return &bar, nil
}
