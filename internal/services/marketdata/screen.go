package marketdata

import (
	"context"
	"fmt"
	"sort"

	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// ScreenRelativeStrength filters the latest date's computed records by
// per-period RRS thresholds. A symbol passes only when every requested
// period has a value and that value exceeds its threshold; rows are sorted
// by 1-day RRS descending.
func (s *Service) ScreenRelativeStrength(ctx context.Context, opts models.ScreenOptions) (*models.ScreenResult, error) {
	latest, err := s.storage.Indicators().LatestComputedDate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find latest computed date: %w", err)
	}
	if latest.IsZero() {
		return nil, fmt.Errorf("no computed indicator records; run a sync and compute first")
	}

	records, err := s.storage.Indicators().RecordsForDate(ctx, latest)
	if err != nil {
		return nil, fmt.Errorf("failed to read records for %s: %w", latest.Format("2006-01-02"), err)
	}

	result := &models.ScreenResult{Date: latest}
	for _, rec := range records {
		if !passesThresholds(&rec, opts.Thresholds) {
			continue
		}
		row := models.ScreenRow{
			Symbol:         rec.Symbol,
			Date:           rec.Date,
			RRS1:           rec.RRS1,
			RRS3:           rec.RRS3,
			RRS8:           rec.RRS8,
			RRS15:          rec.RRS15,
			RelativeVolume: rec.RelativeVolume,
		}
		if bar, err := s.storage.Bars().GetBar(ctx, rec.Symbol, rec.Date); err == nil && bar != nil {
			row.Close = bar.Close
		}
		result.Rows = append(result.Rows, row)
	}

	sort.Slice(result.Rows, func(i, j int) bool {
		return derefOrMin(result.Rows[i].RRS1) > derefOrMin(result.Rows[j].RRS1)
	})

	result.Total = len(result.Rows)
	if opts.Limit > 0 && len(result.Rows) > opts.Limit {
		result.Rows = result.Rows[:opts.Limit]
	}
	return result, nil
}

func passesThresholds(rec *models.IndicatorRecord, thresholds map[int]float64) bool {
	byPeriod := map[int]*float64{1: rec.RRS1, 3: rec.RRS3, 8: rec.RRS8, 15: rec.RRS15}
	for period, min := range thresholds {
		value, ok := byPeriod[period]
		if !ok || value == nil || *value <= min {
			return false
		}
	}
	return true
}

func derefOrMin(v *float64) float64 {
	if v == nil {
		return -1e18
	}
	return *v
}
