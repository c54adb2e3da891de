package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/interfaces"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

func date(s string) time.Time {
	t, err := time.Parse(common.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestMissingDates_FullYearNoData(t *testing.T) {
	start := date("2024-06-03")
	end := date("2025-06-02")
	tradingDays := common.TradingDays(start, end)

	missing := MissingDates(tradingDays, nil)
	assert.Equal(t, len(tradingDays), len(missing))

	// 2024-06-03 through 2025-06-02 spans 365 calendar days containing
	// exactly 261 weekdays.
	assert.Equal(t, 261, len(missing))
	for _, d := range missing {
		wd := d.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
}

func TestMissingDates_PartialCoverage(t *testing.T) {
	tradingDays := common.TradingDays(date("2025-06-02"), date("2025-06-06"))
	stored := []time.Time{date("2025-06-03"), date("2025-06-05")}

	missing := MissingDates(tradingDays, stored)
	require.Len(t, missing, 3)
	assert.Equal(t, date("2025-06-02"), missing[0])
	assert.Equal(t, date("2025-06-04"), missing[1])
	assert.Equal(t, date("2025-06-06"), missing[2])
}

func TestMissingDates_FullCoverage(t *testing.T) {
	tradingDays := common.TradingDays(date("2025-06-02"), date("2025-06-06"))
	missing := MissingDates(tradingDays, tradingDays)
	assert.Empty(t, missing)
}

func TestSynchronizeSymbol_SingleRangeFetch(t *testing.T) {
	storage := newMemStorage()
	start, end := date("2025-06-02"), date("2025-06-13")

	client := &mockClient{bars: map[string][]models.Bar{
		"AAPL": weekdayBars("AAPL", start, end, 200, 0.5),
	}}
	svc := testService(storage, client, "AAPL")

	// Pre-store the first two days: the fetch range must start at the
	// first missing day, not the range start.
	require.NoError(t, storage.UpsertBars(context.Background(),
		weekdayBars("AAPL", date("2025-06-02"), date("2025-06-03"), 200, 0.5)))

	fetched, err := svc.SynchronizeSymbol(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	assert.Equal(t, 8, fetched)

	require.Len(t, client.fetches, 1)
	assert.Equal(t, date("2025-06-04"), client.fetches[0].start)
	assert.Equal(t, date("2025-06-13"), client.fetches[0].end)
}

func TestSynchronizeSymbol_FiltersProviderSuperset(t *testing.T) {
	storage := newMemStorage()
	start, end := date("2025-06-02"), date("2025-06-06")

	// Provider returns a weekend bar and a bar outside the range; neither
	// may be stored.
	bars := weekdayBars("AAPL", start, end, 200, 0.5)
	bars = append(bars,
		models.Bar{Symbol: "AAPL", Date: date("2025-06-07"), Close: 999},
		models.Bar{Symbol: "AAPL", Date: date("2025-05-30"), Close: 999},
	)
	client := &mockClient{bars: map[string][]models.Bar{"AAPL": bars}}
	svc := testService(storage, client, "AAPL")

	fetched, err := svc.SynchronizeSymbol(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	assert.Equal(t, 5, fetched)

	stray, err := storage.GetBar(context.Background(), "AAPL", date("2025-06-07"))
	require.NoError(t, err)
	assert.Nil(t, stray)
}

func TestSynchronizeSymbol_NoGapsSkipsFetch(t *testing.T) {
	storage := newMemStorage()
	start, end := date("2025-06-02"), date("2025-06-06")
	client := &mockClient{bars: map[string][]models.Bar{
		"AAPL": weekdayBars("AAPL", start, end, 200, 0.5),
	}}
	svc := testService(storage, client, "AAPL")

	fetched, err := svc.SynchronizeSymbol(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	assert.Equal(t, 5, fetched)

	// Second pass: everything present, provider untouched.
	fetched, err = svc.SynchronizeSymbol(context.Background(), "AAPL", start, end)
	require.NoError(t, err)
	assert.Equal(t, 0, fetched)
	assert.Len(t, client.fetches, 1)
}

func TestSynchronizeUniverse_AbsorbsSymbolFailures(t *testing.T) {
	storage := newMemStorage()
	start, end := date("2025-06-02"), date("2025-06-06")

	client := &mockClient{
		bars: map[string][]models.Bar{
			"SPY":  weekdayBars("SPY", start, end, 590, 0.2),
			"AAPL": weekdayBars("AAPL", start, end, 200, 0.5),
			"NVDA": weekdayBars("NVDA", start, end, 120, 0.3),
		},
		errFor: map[string]error{"AAPL": errors.New("upstream timeout")},
	}
	svc := testService(storage, client, "AAPL", "NVDA")

	report, err := svc.SynchronizeUniverse(context.Background(), interfaces.SyncOptions{Start: start, End: end})
	require.NoError(t, err)

	// Benchmark plus two universe symbols.
	assert.Equal(t, 3, report.SymbolsProcessed)
	assert.Equal(t, 1, report.SymbolsFailed)
	assert.Equal(t, 10, report.RecordsFetched)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, "AAPL", report.Failures[0].Symbol)

	// The failed symbol did not block NVDA.
	bar, err := storage.GetBar(context.Background(), "NVDA", date("2025-06-06"))
	require.NoError(t, err)
	assert.NotNil(t, bar)
}

func TestSynchronizeUniverse_RecordsLastSync(t *testing.T) {
	storage := newMemStorage()
	start, end := date("2025-06-02"), date("2025-06-06")
	client := &mockClient{bars: map[string][]models.Bar{
		"SPY": weekdayBars("SPY", start, end, 590, 0.2),
	}}
	svc := testService(storage, client)

	_, err := svc.SynchronizeUniverse(context.Background(), interfaces.SyncOptions{Start: start, End: end})
	require.NoError(t, err)

	stamp, err := storage.GetSystemKV(context.Background(), lastSyncKey)
	require.NoError(t, err)
	_, err = time.Parse(time.RFC3339, stamp)
	assert.NoError(t, err)
}

func TestSynchronizeUniverse_CancelledBetweenSymbols(t *testing.T) {
	storage := newMemStorage()
	client := &mockClient{}
	svc := testService(storage, client, "AAPL", "NVDA")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SynchronizeUniverse(ctx, interfaces.SyncOptions{
		Start: date("2025-06-02"), End: date("2025-06-06"),
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, client.fetches)
}
