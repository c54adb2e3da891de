package marketdata

import (
	"context"
	"sort"
	"time"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/interfaces"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// --- Mock market data client ---

type mockClient struct {
	bars    map[string][]models.Bar // canned response per symbol
	err     error
	errFor  map[string]error
	fetches []fetchCall
}

type fetchCall struct {
	symbol     string
	start, end time.Time
}

func (m *mockClient) GetHistoricalBars(_ context.Context, symbol, _ string, start, end time.Time) ([]models.Bar, error) {
	m.fetches = append(m.fetches, fetchCall{symbol: symbol, start: start, end: end})
	if m.err != nil {
		return nil, m.err
	}
	if err, ok := m.errFor[symbol]; ok {
		return nil, err
	}
	return m.bars[symbol], nil
}

var _ interfaces.MarketDataClient = (*mockClient)(nil)

// --- In-memory storage ---

type memStorage struct {
	bars    map[string]models.Bar // symbol|date
	records map[string]models.IndicatorRecord
	kv      map[string]string
}

func newMemStorage() *memStorage {
	return &memStorage{
		bars:    make(map[string]models.Bar),
		records: make(map[string]models.IndicatorRecord),
		kv:      make(map[string]string),
	}
}

func memKey(symbol string, date time.Time) string {
	return symbol + "|" + common.Midnight(date).Format(common.DateLayout)
}

func (m *memStorage) Bars() interfaces.BarStorage             { return m }
func (m *memStorage) Indicators() interfaces.IndicatorStorage { return m }
func (m *memStorage) Close() error                            { return nil }

func (m *memStorage) GetSystemKV(_ context.Context, key string) (string, error) {
	return m.kv[key], nil
}

func (m *memStorage) SetSystemKV(_ context.Context, key, value string) error {
	m.kv[key] = value
	return nil
}

func (m *memStorage) UpsertBars(_ context.Context, bars []models.Bar) error {
	for _, b := range bars {
		b.Date = common.Midnight(b.Date)
		m.bars[memKey(b.Symbol, b.Date)] = b
	}
	return nil
}

func (m *memStorage) ExistingDates(_ context.Context, symbol string, start, end time.Time) ([]time.Time, error) {
	var dates []time.Time
	for _, b := range m.bars {
		if b.Symbol == symbol && !b.Date.Before(common.Midnight(start)) && !b.Date.After(common.Midnight(end)) {
			dates = append(dates, b.Date)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (m *memStorage) BarsUpTo(_ context.Context, symbol string, end time.Time, limit int) ([]models.Bar, error) {
	var bars []models.Bar
	for _, b := range m.bars {
		if b.Symbol == symbol && !b.Date.After(common.Midnight(end)) {
			bars = append(bars, b)
		}
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	if limit > 0 && len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return bars, nil
}

func (m *memStorage) GetBar(_ context.Context, symbol string, date time.Time) (*models.Bar, error) {
	if b, ok := m.bars[memKey(symbol, date)]; ok {
		return &b, nil
	}
	return nil, nil
}

func (m *memStorage) UpsertRecord(_ context.Context, record *models.IndicatorRecord) error {
	rec := *record
	rec.Date = common.Midnight(rec.Date)
	if rec.ComputedAt.IsZero() {
		rec.ComputedAt = time.Now()
	}
	m.records[memKey(rec.Symbol, rec.Date)] = rec
	return nil
}

func (m *memStorage) GetRecord(_ context.Context, symbol string, date time.Time) (*models.IndicatorRecord, error) {
	if rec, ok := m.records[memKey(symbol, date)]; ok {
		return &rec, nil
	}
	return nil, nil
}

func (m *memStorage) LatestComputedDate(_ context.Context) (time.Time, error) {
	var latest time.Time
	for _, rec := range m.records {
		if rec.RRS1 != nil && rec.Date.After(latest) {
			latest = rec.Date
		}
	}
	return latest, nil
}

func (m *memStorage) RecordsForDate(_ context.Context, date time.Time) ([]models.IndicatorRecord, error) {
	var out []models.IndicatorRecord
	for _, rec := range m.records {
		if common.SameDate(rec.Date, date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

var _ interfaces.StorageManager = (*memStorage)(nil)

// --- Shared fixtures ---

func testService(storage interfaces.StorageManager, client interfaces.MarketDataClient, symbols ...string) *Service {
	return NewService(storage, client, common.NewLogger("error"), common.UniverseConfig{
		Symbols:   symbols,
		Benchmark: "SPY",
		SyncDays:  365,
	})
}

// weekdayBars generates one bar per trading day in [start, end], closes
// climbing by step per day with a small wing around each close.
func weekdayBars(symbol string, start, end time.Time, base, step float64) []models.Bar {
	days := common.TradingDays(start, end)
	bars := make([]models.Bar, len(days))
	for i, d := range days {
		c := base + float64(i)*step
		bars[i] = models.Bar{
			Symbol: symbol,
			Date:   d,
			Open:   c,
			High:   c + 0.5,
			Low:    c - 0.5,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return bars
}
