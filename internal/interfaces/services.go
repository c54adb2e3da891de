package interfaces

import (
	"context"
	"time"

	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// SyncOptions configures a synchronization run.
type SyncOptions struct {
	Start time.Time // zero: now minus the configured sync window
	End   time.Time // zero: today
}

// MarketDataService is the engine's consumer-facing contract: bar
// synchronization, indicator computation, snapshots, and screening.
type MarketDataService interface {
	// SynchronizeUniverse fills bar gaps for every configured symbol plus
	// the benchmark. Per-symbol failures are tallied in the report; the
	// batch never aborts on one symbol.
	SynchronizeUniverse(ctx context.Context, opts SyncOptions) (*models.SyncReport, error)

	// SynchronizeSymbol fills bar gaps for one symbol and returns the
	// number of bars fetched.
	SynchronizeSymbol(ctx context.Context, symbol string, start, end time.Time) (int, error)

	// ComputeIndicators computes and stores indicator records for every
	// universe symbol on every trading day in [start, end].
	ComputeIndicators(ctx context.Context, start, end time.Time) (*models.ComputeReport, error)

	// GetIndicatorSnapshot returns the indicator record for a symbol on a
	// date, falling back up to five prior business days when the exact date
	// has no record.
	GetIndicatorSnapshot(ctx context.Context, symbol string, date time.Time) (*models.IndicatorSnapshot, error)

	// ScreenRelativeStrength filters the latest computed records by
	// per-period RRS thresholds.
	ScreenRelativeStrength(ctx context.Context, opts models.ScreenOptions) (*models.ScreenResult, error)
}
