package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func writeTestConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	os.MkdirAll(filepath.Join(dir, "data"), 0755)

	config := `
[storage]
path = "` + filepath.Join(dir, "data") + `"

[universe]
symbols = ["AAPL", "NVDA"]
benchmark = "SPY"

[logging]
level = "error"
`
	configPath := filepath.Join(dir, "assistant.toml")
	if err := os.WriteFile(configPath, []byte(config), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return configPath
}

// newInProcessClient creates an mcp-go in-process client connected to the
// given MCP server and performs the initialization handshake.
func newInProcessClient(t *testing.T, mcpServer *server.MCPServer) (*client.Client, error) {
	t.Helper()

	c, err := client.NewInProcessClient(mcpServer)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := c.Start(ctx); err != nil {
		return nil, err
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}
	if _, err := c.Initialize(ctx, initReq); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func TestNewApp_InitializesAllServices(t *testing.T) {
	configPath := writeTestConfig(t)

	a, err := NewApp(configPath)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer a.Close()

	if a.Config == nil {
		t.Error("Config is nil")
	}
	if a.Logger == nil {
		t.Error("Logger is nil")
	}
	if a.Storage == nil {
		t.Error("Storage is nil")
	}
	if a.TradierClient == nil {
		t.Error("TradierClient is nil")
	}
	if a.MarketData == nil {
		t.Error("MarketData is nil")
	}
	if a.MCPServer == nil {
		t.Error("MCPServer is nil")
	}
	if a.StartupTime.IsZero() {
		t.Error("StartupTime is zero")
	}
}

func TestNewApp_RegistersAllTools(t *testing.T) {
	configPath := writeTestConfig(t)

	a, err := NewApp(configPath)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer a.Close()

	c, err := newInProcessClient(t, a.MCPServer)
	if err != nil {
		t.Fatalf("Failed to create in-process client: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	toolsResult, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		t.Fatalf("ListTools failed: %v", err)
	}

	expectedTools := []string{
		"get_version",
		"sync_market_data",
		"compute_indicators",
		"get_indicator_snapshot",
		"screen_relative_strength",
	}

	registered := make(map[string]bool, len(toolsResult.Tools))
	for _, tool := range toolsResult.Tools {
		registered[tool.Name] = true
	}

	for _, name := range expectedTools {
		if !registered[name] {
			t.Errorf("tool %s not registered", name)
		}
	}
	if len(toolsResult.Tools) != len(expectedTools) {
		t.Errorf("expected %d tools, got %d", len(expectedTools), len(toolsResult.Tools))
	}
}

func TestNewApp_GetVersionToolWorks(t *testing.T) {
	configPath := writeTestConfig(t)

	a, err := NewApp(configPath)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	defer a.Close()

	c, err := newInProcessClient(t, a.MCPServer)
	if err != nil {
		t.Fatalf("Failed to create in-process client: %v", err)
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req := mcp.CallToolRequest{}
	req.Params.Name = "get_version"
	result, err := c.CallTool(ctx, req)
	if err != nil {
		t.Fatalf("CallTool failed: %v", err)
	}
	if result.IsError {
		t.Fatal("get_version returned an error result")
	}
	if len(result.Content) == 0 {
		t.Fatal("get_version returned no content")
	}
}

func TestNewApp_CloseIsIdempotent(t *testing.T) {
	configPath := writeTestConfig(t)

	a, err := NewApp(configPath)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}

	a.Close()
	a.Close()
}

func TestNewApp_InvalidConfigReturnsError(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "broken.toml")
	if err := os.WriteFile(configPath, []byte("[universe\nsymbols ="), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := NewApp(configPath); err == nil {
		t.Fatal("expected error for malformed config")
	}
}
