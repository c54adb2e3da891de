// Package marketdata provides the bar synchronization and indicator
// computation engine.
package marketdata

import (
	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/interfaces"
)

// Service implements interfaces.MarketDataService.
type Service struct {
	storage   interfaces.StorageManager
	client    interfaces.MarketDataClient
	logger    *common.Logger
	universe  []string
	benchmark string
	syncDays  int
}

// NewService creates a new market data service. The store and provider
// handles are injected here and scoped to the service; nothing in the
// engine reaches for process-wide state.
func NewService(
	storage interfaces.StorageManager,
	client interfaces.MarketDataClient,
	logger *common.Logger,
	universe common.UniverseConfig,
) *Service {
	syncDays := universe.SyncDays
	if syncDays <= 0 {
		syncDays = 365
	}
	return &Service{
		storage:   storage,
		client:    client,
		logger:    logger,
		universe:  universe.Symbols,
		benchmark: universe.Benchmark,
		syncDays:  syncDays,
	}
}

// allSymbols returns the universe plus the benchmark, benchmark first so
// its history is in place before any dependent computation.
func (s *Service) allSymbols() []string {
	out := make([]string, 0, len(s.universe)+1)
	if s.benchmark != "" {
		out = append(out, s.benchmark)
	}
	for _, sym := range s.universe {
		if sym != s.benchmark {
			out = append(out, sym)
		}
	}
	return out
}

var _ interfaces.MarketDataService = (*Service)(nil)
