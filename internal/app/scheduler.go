package app

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/interfaces"
)

// scheduler runs the nightly sync-then-compute job after market close.
type scheduler struct {
	cron   *cron.Cron
	logger *common.Logger
}

// StartScheduler launches the cron-driven daily job when enabled in config.
// The schedule uses six fields (seconds first), e.g. "0 30 17 * * MON-FRI".
func (a *App) StartScheduler() error {
	if !a.Config.Scheduler.Enabled {
		a.Logger.Debug().Msg("Scheduler disabled")
		return nil
	}

	c := cron.New(cron.WithSeconds())
	spec := a.Config.Scheduler.Cron

	_, err := c.AddFunc(spec, func() {
		runDailyJob(context.Background(), a.MarketData, a.Logger)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", spec, err)
	}

	c.Start()
	a.scheduler = &scheduler{cron: c, logger: a.Logger}
	a.Logger.Info().Str("schedule", spec).Msg("Daily sync scheduler started")
	return nil
}

func (s *scheduler) stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(30 * time.Second):
		s.logger.Warn().Msg("Scheduler stop timed out with a job still running")
	}
}

// runDailyJob synchronizes the universe and recomputes the trailing week of
// indicator records, so a missed night heals itself on the next run.
func runDailyJob(ctx context.Context, svc interfaces.MarketDataService, logger *common.Logger) {
	start := time.Now()
	logger.Info().Msg("Daily job: starting")

	report, err := svc.SynchronizeUniverse(ctx, interfaces.SyncOptions{})
	if err != nil {
		logger.Error().Err(err).Msg("Daily job: sync failed")
		return
	}

	end := common.Midnight(time.Now())
	computeReport, err := svc.ComputeIndicators(ctx, end.AddDate(0, 0, -7), end)
	if err != nil {
		logger.Error().Err(err).Msg("Daily job: indicator computation failed")
		return
	}

	logger.Info().
		Int("fetched", report.RecordsFetched).
		Int("failed", report.SymbolsFailed).
		Int("calculated", computeReport.Calculated).
		Dur("elapsed", time.Since(start)).
		Msg("Daily job: complete")
}
