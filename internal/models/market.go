// Package models defines data structures for the day-trade assistant.
package models

import (
	"time"
)

// Bar represents a single day's OHLCV price data for a symbol.
// At most one bar exists per (symbol, date); a re-upsert with the same key
// replaces the price fields.
type Bar struct {
	Symbol    string    `json:"symbol" badgerhold:"index"`
	Date      time.Time `json:"date"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IndicatorRecord holds the derived indicators for one symbol on one date.
// Every numeric field is independently nullable: a nil pointer means the
// source series was too short for that indicator's minimum window, not that
// the value was zero.
type IndicatorRecord struct {
	Symbol string    `json:"symbol" badgerhold:"index"`
	Date   time.Time `json:"date"`

	SMA200 *float64 `json:"sma_200"`
	SMA100 *float64 `json:"sma_100"`
	SMA50  *float64 `json:"sma_50"`
	EMA15  *float64 `json:"ema_15"`
	EMA8   *float64 `json:"ema_8"`

	RRS1  *float64 `json:"rrs_1_day"`
	RRS3  *float64 `json:"rrs_3_day"`
	RRS8  *float64 `json:"rrs_8_day"`
	RRS15 *float64 `json:"rrs_15_day"`

	RelativeVolume *float64 `json:"relative_volume"`

	ComputedAt time.Time `json:"computed_at"`
}

// IsEmpty reports whether every indicator field is nil. Empty records are
// produced when the target date is absent from the series or the history is
// too short; they are not persisted.
func (r *IndicatorRecord) IsEmpty() bool {
	return r.SMA200 == nil && r.SMA100 == nil && r.SMA50 == nil &&
		r.EMA15 == nil && r.EMA8 == nil &&
		r.RRS1 == nil && r.RRS3 == nil && r.RRS8 == nil && r.RRS15 == nil &&
		r.RelativeVolume == nil
}

// SymbolFailure records one symbol's failure inside a batch operation.
type SymbolFailure struct {
	Symbol string `json:"symbol"`
	Reason string `json:"reason"`
}

// SyncReport summarises a universe synchronization run. A sync is
// best-effort: individual symbol failures are tallied here and never abort
// the batch.
type SyncReport struct {
	ID               string          `json:"id"`
	Start            time.Time       `json:"start"`
	End              time.Time       `json:"end"`
	SymbolsProcessed int             `json:"symbols_processed"`
	SymbolsFailed    int             `json:"symbols_failed"`
	RecordsFetched   int             `json:"records_fetched"`
	Failures         []SymbolFailure `json:"failures,omitempty"`
	Duration         time.Duration   `json:"duration"`
	StartedAt        time.Time       `json:"started_at"`
}

// ComputeReport summarises an indicator computation run over a date range.
type ComputeReport struct {
	ID         string          `json:"id"`
	Start      time.Time       `json:"start"`
	End        time.Time       `json:"end"`
	Calculated int             `json:"calculated"`
	Skipped    int             `json:"skipped"`
	Failures   []SymbolFailure `json:"failures,omitempty"`
	Duration   time.Duration   `json:"duration"`
	StartedAt  time.Time       `json:"started_at"`
}

// IndicatorSnapshot is the consumer-facing view of one symbol's indicators
// on (or near) a requested date. When the exact date has no record, the
// service walks back up to five business days and flags the substitution.
type IndicatorSnapshot struct {
	Symbol        string           `json:"symbol"`
	RequestedDate time.Time        `json:"requested_date"`
	EffectiveDate time.Time        `json:"effective_date"`
	Substituted   bool             `json:"substituted"`
	DaysBack      int              `json:"days_back"`
	Record        *IndicatorRecord `json:"record,omitempty"`
	Close         float64          `json:"close"`
}

// ScreenOptions configures a relative-strength screen over stored indicator
// records. Thresholds are per lookback period; a symbol passes only when
// every requested period's RRS exceeds its threshold.
type ScreenOptions struct {
	Thresholds map[int]float64 `json:"thresholds"` // period (1,3,8,15) -> minimum RRS
	Limit      int             `json:"limit"`
}

// ScreenRow is one row of a relative-strength screen result.
type ScreenRow struct {
	Symbol         string    `json:"symbol"`
	Date           time.Time `json:"date"`
	RRS1           *float64  `json:"rrs_1_day"`
	RRS3           *float64  `json:"rrs_3_day"`
	RRS8           *float64  `json:"rrs_8_day"`
	RRS15          *float64  `json:"rrs_15_day"`
	Close          float64   `json:"close"`
	RelativeVolume *float64  `json:"relative_volume"`
}

// ScreenResult holds a full screen outcome.
type ScreenResult struct {
	Date  time.Time   `json:"date"`
	Rows  []ScreenRow `json:"rows"`
	Total int         `json:"total"`
}
