package app

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/interfaces"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

// handleGetVersion implements the get_version tool
func handleGetVersion() server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result := fmt.Sprintf("Day-Trade Assistant MCP Server\nVersion: %s\nBuild: %s\nCommit: %s\nStatus: OK",
			common.GetVersion(), common.GetBuild(), common.GetGitCommit())
		return textResult(result), nil
	}
}

// handleSyncMarketData implements the sync_market_data tool
func handleSyncMarketData(svc interfaces.MarketDataService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts := interfaces.SyncOptions{}

		if s := request.GetString("start_date", ""); s != "" {
			start, err := time.Parse(common.DateLayout, s)
			if err != nil {
				return errorResult(fmt.Sprintf("Error: invalid start_date %q, expected YYYY-MM-DD", s)), nil
			}
			opts.Start = start
		}
		if s := request.GetString("end_date", ""); s != "" {
			end, err := time.Parse(common.DateLayout, s)
			if err != nil {
				return errorResult(fmt.Sprintf("Error: invalid end_date %q, expected YYYY-MM-DD", s)), nil
			}
			opts.End = end
		}

		report, err := svc.SynchronizeUniverse(ctx, opts)
		if err != nil {
			logger.Error().Err(err).Msg("Universe sync failed")
			return errorResult(fmt.Sprintf("Sync error: %v", err)), nil
		}

		return textResult(formatSyncReport(report)), nil
	}
}

// handleComputeIndicators implements the compute_indicators tool
func handleComputeIndicators(svc interfaces.MarketDataService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		startStr, err := request.RequireString("start_date")
		if err != nil || startStr == "" {
			return errorResult("Error: start_date parameter is required"), nil
		}
		start, err := time.Parse(common.DateLayout, startStr)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: invalid start_date %q, expected YYYY-MM-DD", startStr)), nil
		}

		end := start
		if s := request.GetString("end_date", ""); s != "" {
			end, err = time.Parse(common.DateLayout, s)
			if err != nil {
				return errorResult(fmt.Sprintf("Error: invalid end_date %q, expected YYYY-MM-DD", s)), nil
			}
		}
		if end.Before(start) {
			return errorResult("Error: end_date is before start_date"), nil
		}

		report, err := svc.ComputeIndicators(ctx, start, end)
		if err != nil {
			logger.Error().Err(err).Msg("Indicator computation failed")
			return errorResult(fmt.Sprintf("Compute error: %v", err)), nil
		}

		return textResult(formatComputeReport(report)), nil
	}
}

// handleGetIndicatorSnapshot implements the get_indicator_snapshot tool
func handleGetIndicatorSnapshot(svc interfaces.MarketDataService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		symbol, err := request.RequireString("symbol")
		if err != nil || symbol == "" {
			return errorResult("Error: symbol parameter is required"), nil
		}

		date := time.Now()
		if s := request.GetString("date", ""); s != "" {
			date, err = time.Parse(common.DateLayout, s)
			if err != nil {
				return errorResult(fmt.Sprintf("Error: invalid date %q, expected YYYY-MM-DD", s)), nil
			}
		}

		snapshot, err := svc.GetIndicatorSnapshot(ctx, symbol, date)
		if err != nil {
			logger.Warn().Err(err).Str("symbol", symbol).Msg("Snapshot lookup failed")
			return errorResult(fmt.Sprintf("Snapshot error: %v", err)), nil
		}

		return textResult(formatSnapshot(snapshot)), nil
	}
}

// handleScreenRelativeStrength implements the screen_relative_strength tool
func handleScreenRelativeStrength(svc interfaces.MarketDataService, logger *common.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		thresholds := make(map[int]float64)
		for period, key := range map[int]string{1: "min_rrs_1", 3: "min_rrs_3", 8: "min_rrs_8", 15: "min_rrs_15"} {
			if raw, ok := args[key]; ok {
				v, ok := raw.(float64)
				if !ok {
					return errorResult(fmt.Sprintf("Error: %s must be a number", key)), nil
				}
				thresholds[period] = v
			}
		}

		opts := models.ScreenOptions{
			Thresholds: thresholds,
			Limit:      request.GetInt("limit", 20),
		}

		result, err := svc.ScreenRelativeStrength(ctx, opts)
		if err != nil {
			logger.Warn().Err(err).Msg("Relative strength screen failed")
			return errorResult(fmt.Sprintf("Screen error: %v", err)), nil
		}

		return textResult(formatScreenResult(result)), nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}
