package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// formatValue renders a nullable indicator with fixed decimals, or "n/a"
// when the history was too short to compute it.
func formatValue(v *float64, decimals int) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

// formatSyncReport formats a universe sync report as markdown
func formatSyncReport(report *models.SyncReport) string {
	var sb strings.Builder

	sb.WriteString("# Market Data Sync\n\n")
	sb.WriteString(fmt.Sprintf("**Range:** %s to %s\n",
		report.Start.Format(common.DateLayout), report.End.Format(common.DateLayout)))
	sb.WriteString(fmt.Sprintf("**Symbols processed:** %d\n", report.SymbolsProcessed))
	sb.WriteString(fmt.Sprintf("**Bars fetched:** %d\n", report.RecordsFetched))
	sb.WriteString(fmt.Sprintf("**Duration:** %s\n", report.Duration.Round(time.Millisecond)))

	if report.SymbolsFailed > 0 {
		sb.WriteString(fmt.Sprintf("\n## Failures (%d)\n\n", report.SymbolsFailed))
		for _, f := range report.Failures {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", f.Symbol, f.Reason))
		}
	} else {
		sb.WriteString("\nAll symbols synchronized.\n")
	}

	return sb.String()
}

// formatComputeReport formats an indicator computation report as markdown
func formatComputeReport(report *models.ComputeReport) string {
	var sb strings.Builder

	sb.WriteString("# Indicator Computation\n\n")
	sb.WriteString(fmt.Sprintf("**Range:** %s to %s\n",
		report.Start.Format(common.DateLayout), report.End.Format(common.DateLayout)))
	sb.WriteString(fmt.Sprintf("**Records calculated:** %d\n", report.Calculated))
	sb.WriteString(fmt.Sprintf("**Skipped (insufficient history):** %d\n", report.Skipped))
	sb.WriteString(fmt.Sprintf("**Duration:** %s\n", report.Duration.Round(time.Millisecond)))

	if len(report.Failures) > 0 {
		sb.WriteString(fmt.Sprintf("\n## Failures (%d)\n\n", len(report.Failures)))
		for _, f := range report.Failures {
			sb.WriteString(fmt.Sprintf("- **%s**: %s\n", f.Symbol, f.Reason))
		}
	}

	return sb.String()
}

// maLine renders a moving average with the close's percentage distance from it.
func maLine(label string, v *float64, close float64) string {
	if v == nil {
		return fmt.Sprintf("- %s: n/a\n", label)
	}
	if close == 0 {
		return fmt.Sprintf("- %s: %.2f\n", label, *v)
	}
	diff := close - *v
	position := "below"
	if diff > 0 {
		position = "above"
	}
	pct := diff / *v * 100
	return fmt.Sprintf("- %s: %.2f (price %+.1f%% %s)\n", label, *v, pct, position)
}

// rrsLine renders a relative strength value with its classification.
func rrsLine(label string, v *float64) string {
	if v == nil {
		return fmt.Sprintf("- %s: n/a\n", label)
	}
	strength := "Weak"
	switch {
	case math.Abs(*v) > 2:
		strength = "Strong"
	case math.Abs(*v) > 1:
		strength = "Moderate"
	}
	direction := "Underperforming"
	if *v > 0 {
		direction = "Outperforming"
	}
	return fmt.Sprintf("- %s: %.4f (%s %s)\n", label, *v, strength, direction)
}

// formatSnapshot formats one symbol's indicator snapshot as markdown
func formatSnapshot(snapshot *models.IndicatorSnapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Technical Summary: %s\n\n", snapshot.Symbol))
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", snapshot.EffectiveDate.Format(common.DateLayout)))
	if snapshot.Substituted {
		sb.WriteString(fmt.Sprintf("*(no record for %s; using the closest prior business day, %d back)*\n",
			snapshot.RequestedDate.Format(common.DateLayout), snapshot.DaysBack))
	}
	if snapshot.Close != 0 {
		sb.WriteString(fmt.Sprintf("**Close:** %.2f\n", snapshot.Close))
	}

	rec := snapshot.Record
	if rec == nil {
		sb.WriteString("\nNo indicator record available.\n")
		return sb.String()
	}

	sb.WriteString("\n## Moving Averages\n\n")
	sb.WriteString(maLine("SMA 200", rec.SMA200, snapshot.Close))
	sb.WriteString(maLine("SMA 100", rec.SMA100, snapshot.Close))
	sb.WriteString(maLine("SMA 50", rec.SMA50, snapshot.Close))
	sb.WriteString(maLine("EMA 15", rec.EMA15, snapshot.Close))
	sb.WriteString(maLine("EMA 8", rec.EMA8, snapshot.Close))

	sb.WriteString("\n## Relative Strength vs Benchmark\n\n")
	sb.WriteString(rrsLine("1-day", rec.RRS1))
	sb.WriteString(rrsLine("3-day", rec.RRS3))
	sb.WriteString(rrsLine("8-day", rec.RRS8))
	sb.WriteString(rrsLine("15-day", rec.RRS15))

	sb.WriteString(fmt.Sprintf("\n**Relative volume:** %s\n", formatValue(rec.RelativeVolume, 2)))

	return sb.String()
}

// formatScreenResult formats a relative strength screen as a markdown table
func formatScreenResult(result *models.ScreenResult) string {
	var sb strings.Builder

	sb.WriteString("# Relative Strength Screen\n\n")
	sb.WriteString(fmt.Sprintf("**Date:** %s\n", result.Date.Format(common.DateLayout)))
	sb.WriteString(fmt.Sprintf("**Matches:** %d", result.Total))
	if len(result.Rows) < result.Total {
		sb.WriteString(fmt.Sprintf(" (showing %d)", len(result.Rows)))
	}
	sb.WriteString("\n\n")

	if len(result.Rows) == 0 {
		sb.WriteString("No symbols cleared the thresholds.\n")
		return sb.String()
	}

	sb.WriteString("| Symbol | Close | RRS 1d | RRS 3d | RRS 8d | RRS 15d | Rel Vol |\n")
	sb.WriteString("|--------|-------|--------|--------|--------|---------|---------|\n")
	for _, row := range result.Rows {
		sb.WriteString(fmt.Sprintf("| %s | %.2f | %s | %s | %s | %s | %s |\n",
			row.Symbol, row.Close,
			formatValue(row.RRS1, 4), formatValue(row.RRS3, 4),
			formatValue(row.RRS8, 4), formatValue(row.RRS15, 4),
			formatValue(row.RelativeVolume, 2)))
	}

	return sb.String()
}
