// Package app wires configuration, storage, clients, services, and the MCP
// tool surface into a single shared core used by both binaries.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"github.com/rongxanh88/day-trade-assistant/internal/clients/tradier"
	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/interfaces"
	"github.com/rongxanh88/day-trade-assistant/internal/services/marketdata"
	"github.com/rongxanh88/day-trade-assistant/internal/storage"
)

// App holds all initialized services, clients, and the MCP server.
type App struct {
	Config        *common.Config
	Logger        *common.Logger
	Storage       interfaces.StorageManager
	TradierClient interfaces.MarketDataClient
	MarketData    interfaces.MarketDataService
	MCPServer     *server.MCPServer
	StartupTime   time.Time

	scheduler *scheduler
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, the provider client, the market data service,
// and the MCP server. configPath may be empty, in which case the
// ASSISTANT_CONFIG env var and then the binary directory are checked.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("ASSISTANT_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "assistant.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/assistant.toml"
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if config.Storage.Path != "" && !filepath.IsAbs(config.Storage.Path) {
		config.Storage.Path = filepath.Join(binDir, config.Storage.Path)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	storageManager, err := storage.NewManager(logger, config)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	if config.Clients.Tradier.APIKey == "" {
		logger.Warn().Msg("Tradier API key not configured - bar synchronization will be unavailable")
	}
	tradierClient := tradier.NewClient(config.Clients.Tradier.APIKey,
		tradier.WithBaseURL(config.Clients.Tradier.BaseURL),
		tradier.WithLogger(logger),
		tradier.WithRateLimit(config.Clients.Tradier.RateLimit),
		tradier.WithTimeout(config.Clients.Tradier.GetTimeout()),
	)

	marketDataService := marketdata.NewService(storageManager, tradierClient, logger, config.Universe)

	mcpServer := server.NewMCPServer(
		"day-trade-assistant",
		common.GetVersion(),
		server.WithToolCapabilities(true),
	)

	a := &App{
		Config:        config,
		Logger:        logger,
		Storage:       storageManager,
		TradierClient: tradierClient,
		MarketData:    marketDataService,
		MCPServer:     mcpServer,
		StartupTime:   startupStart,
	}

	a.registerTools()

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}

// Close releases all resources held by the App. Shutdown order: stop the
// scheduler, close storage.
func (a *App) Close() {
	if a.scheduler != nil {
		a.scheduler.stop()
		a.scheduler = nil
	}
	if a.Storage != nil {
		a.Storage.Close()
		a.Storage = nil
	}
}

// registerTools registers all MCP tools on the App's MCPServer.
func (a *App) registerTools() {
	s := a.MCPServer
	logger := a.Logger

	s.AddTool(createGetVersionTool(), handleGetVersion())
	s.AddTool(createSyncMarketDataTool(), handleSyncMarketData(a.MarketData, logger))
	s.AddTool(createComputeIndicatorsTool(), handleComputeIndicators(a.MarketData, logger))
	s.AddTool(createGetIndicatorSnapshotTool(), handleGetIndicatorSnapshot(a.MarketData, logger))
	s.AddTool(createScreenRelativeStrengthTool(), handleScreenRelativeStrength(a.MarketData, logger))
}
