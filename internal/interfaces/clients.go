// Package interfaces defines service contracts for the day-trade assistant.
package interfaces

import (
	"context"
	"time"

	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// MarketDataClient fetches historical price data from the upstream provider.
// Implementations may return bars outside the requested range, sparse
// results, or an empty slice; callers filter rather than trust completeness.
type MarketDataClient interface {
	// GetHistoricalBars retrieves bars for the symbol between start and end
	// inclusive at the given interval ("daily" is the only interval the
	// engine uses).
	GetHistoricalBars(ctx context.Context, symbol, interval string, start, end time.Time) ([]models.Bar, error)
}
