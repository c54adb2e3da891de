package interfaces

import (
	"context"
	"time"

	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// StorageManager coordinates the storage backends.
type StorageManager interface {
	Bars() BarStorage
	Indicators() IndicatorStorage

	// System key-value (last sync timestamp, runtime settings)
	GetSystemKV(ctx context.Context, key string) (string, error)
	SetSystemKV(ctx context.Context, key, value string) error

	Close() error
}

// BarStorage persists daily OHLCV bars keyed on (symbol, date).
type BarStorage interface {
	// UpsertBars writes bars, replacing price fields on key conflict.
	UpsertBars(ctx context.Context, bars []models.Bar) error

	// ExistingDates returns the dates with a stored bar for the symbol
	// within [start, end], ascending.
	ExistingDates(ctx context.Context, symbol string, start, end time.Time) ([]time.Time, error)

	// BarsUpTo returns bars for the symbol with date <= end, ascending,
	// capped at the `limit` most recent.
	BarsUpTo(ctx context.Context, symbol string, end time.Time, limit int) ([]models.Bar, error)

	// GetBar returns the bar for an exact (symbol, date) key, or nil when
	// absent.
	GetBar(ctx context.Context, symbol string, date time.Time) (*models.Bar, error)
}

// IndicatorStorage persists computed indicator records keyed on
// (symbol, date).
type IndicatorStorage interface {
	// UpsertRecord writes a record, replacing indicator fields on key
	// conflict.
	UpsertRecord(ctx context.Context, record *models.IndicatorRecord) error

	// GetRecord returns the record for an exact (symbol, date) key, or nil
	// when absent.
	GetRecord(ctx context.Context, symbol string, date time.Time) (*models.IndicatorRecord, error)

	// LatestComputedDate returns the most recent date carrying any record
	// with a non-nil 1-day relative strength, or the zero time when none
	// exist.
	LatestComputedDate(ctx context.Context) (time.Time, error)

	// RecordsForDate returns every symbol's record for the given date.
	RecordsForDate(ctx context.Context, date time.Time) ([]models.IndicatorRecord, error)
}
