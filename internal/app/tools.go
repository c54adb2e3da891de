package app

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetVersionTool returns the get_version tool definition
func createGetVersionTool() mcp.Tool {
	return mcp.NewTool("get_version",
		mcp.WithDescription("Get the day-trade assistant server version and status. Use this to verify connectivity."),
	)
}

// createSyncMarketDataTool returns the sync_market_data tool definition
func createSyncMarketDataTool() mcp.Tool {
	return mcp.NewTool("sync_market_data",
		mcp.WithDescription("Fill gaps in stored daily bars for the configured universe and benchmark. Fetches only the trading days missing from storage and reports a per-symbol tally."),
		mcp.WithString("start_date",
			mcp.Description("Range start (YYYY-MM-DD). Defaults to the configured sync window back from today."),
		),
		mcp.WithString("end_date",
			mcp.Description("Range end (YYYY-MM-DD). Defaults to today."),
		),
	)
}

// createComputeIndicatorsTool returns the compute_indicators tool definition
func createComputeIndicatorsTool() mcp.Tool {
	return mcp.NewTool("compute_indicators",
		mcp.WithDescription("Compute and store moving averages and relative strength for every universe symbol over a date range. Days without enough history are skipped, not failed."),
		mcp.WithString("start_date",
			mcp.Required(),
			mcp.Description("Range start (YYYY-MM-DD)"),
		),
		mcp.WithString("end_date",
			mcp.Description("Range end (YYYY-MM-DD). Defaults to start_date."),
		),
	)
}

// createGetIndicatorSnapshotTool returns the get_indicator_snapshot tool definition
func createGetIndicatorSnapshotTool() mcp.Tool {
	return mcp.NewTool("get_indicator_snapshot",
		mcp.WithDescription("Get the computed technical indicators for a symbol on a date: SMA 200/100/50, EMA 15/8, relative strength over 1/3/8/15 days, and relative volume. Falls back up to 5 prior business days when the exact date has no record."),
		mcp.WithString("symbol",
			mcp.Required(),
			mcp.Description("Ticker symbol (e.g., 'AAPL')"),
		),
		mcp.WithString("date",
			mcp.Description("Target date (YYYY-MM-DD). Defaults to today."),
		),
	)
}

// createScreenRelativeStrengthTool returns the screen_relative_strength tool definition
func createScreenRelativeStrengthTool() mcp.Tool {
	return mcp.NewTool("screen_relative_strength",
		mcp.WithDescription("Screen the latest computed records for symbols whose relative strength clears per-period thresholds. All supplied thresholds must pass; rows are sorted by 1-day relative strength."),
		mcp.WithNumber("min_rrs_1",
			mcp.Description("Minimum 1-day relative strength"),
		),
		mcp.WithNumber("min_rrs_3",
			mcp.Description("Minimum 3-day relative strength"),
		),
		mcp.WithNumber("min_rrs_8",
			mcp.Description("Minimum 8-day relative strength"),
		),
		mcp.WithNumber("min_rrs_15",
			mcp.Description("Minimum 15-day relative strength"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum rows to return (default: 20)"),
		),
	)
}
