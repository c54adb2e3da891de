package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/timshannon/badgerhold/v4"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

type indicatorStorage struct {
	store  *Store
	logger *common.Logger
}

// NewIndicatorStorage creates an IndicatorStorage backed by BadgerHold.
func NewIndicatorStorage(store *Store, logger *common.Logger) *indicatorStorage {
	return &indicatorStorage{store: store, logger: logger}
}

func recordKey(symbol string, date time.Time) string {
	return symbol + "|" + common.Midnight(date).Format(common.DateLayout)
}

func (s *indicatorStorage) UpsertRecord(_ context.Context, record *models.IndicatorRecord) error {
	if record == nil {
		return fmt.Errorf("record is nil")
	}
	rec := *record
	rec.Date = common.Midnight(rec.Date)
	if rec.ComputedAt.IsZero() {
		rec.ComputedAt = time.Now()
	}

	key := recordKey(rec.Symbol, rec.Date)
	if err := s.store.db.Upsert(key, rec); err != nil {
		return fmt.Errorf("failed to upsert indicator record %s: %w", key, err)
	}
	return nil
}

func (s *indicatorStorage) GetRecord(_ context.Context, symbol string, date time.Time) (*models.IndicatorRecord, error) {
	var rec models.IndicatorRecord
	err := s.store.db.Get(recordKey(symbol, date), &rec)
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get indicator record for %s: %w", symbol, err)
	}
	return &rec, nil
}

func (s *indicatorStorage) LatestComputedDate(_ context.Context) (time.Time, error) {
	var records []models.IndicatorRecord
	if err := s.store.db.Find(&records, nil); err != nil {
		return time.Time{}, fmt.Errorf("failed to scan indicator records: %w", err)
	}

	var latest time.Time
	for _, rec := range records {
		if rec.RRS1 == nil {
			continue
		}
		d := common.Midnight(rec.Date)
		if d.After(latest) {
			latest = d
		}
	}
	return latest, nil
}

func (s *indicatorStorage) RecordsForDate(_ context.Context, date time.Time) ([]models.IndicatorRecord, error) {
	date = common.Midnight(date)

	var records []models.IndicatorRecord
	if err := s.store.db.Find(&records, badgerhold.Where("Date").Eq(date)); err != nil {
		return nil, fmt.Errorf("failed to query indicator records: %w", err)
	}
	return records, nil
}
