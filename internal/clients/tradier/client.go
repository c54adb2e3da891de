// Package tradier provides a client for the Tradier market data API.
package tradier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/rongxanh88/day-trade-assistant/internal/common"
	"github.com/rongxanh88/day-trade-assistant/internal/interfaces"
	"github.com/rongxanh88/day-trade-assistant/internal/models"
)

const (
	DefaultBaseURL   = "https://api.tradier.com/v1"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Client implements the MarketDataClient interface against Tradier.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new Tradier client
func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents an API error
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Tradier API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", c.baseURL+path).Msg("Tradier API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    string(body),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

// dayBarResponse represents a single bar in the /markets/history response.
type dayBarResponse struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// dayList handles the Tradier quirk of returning a bare object instead of an
// array when the range contains a single trading day.
type dayList []dayBarResponse

func (d *dayList) UnmarshalJSON(data []byte) error {
	var many []dayBarResponse
	if err := json.Unmarshal(data, &many); err == nil {
		*d = many
		return nil
	}
	var one dayBarResponse
	if err := json.Unmarshal(data, &one); err != nil {
		return fmt.Errorf("cannot unmarshal history day list: %w", err)
	}
	*d = dayList{one}
	return nil
}

// historyResponse represents the /markets/history envelope. The "history"
// field is null when the symbol has no data in range.
type historyResponse struct {
	History *struct {
		Day dayList `json:"day"`
	} `json:"history"`
}

// GetHistoricalBars retrieves historical bars for a symbol. The response may
// be sparse or empty; bars that fail to parse are skipped with a warning
// rather than failing the whole fetch.
func (c *Client) GetHistoricalBars(ctx context.Context, symbol, interval string, start, end time.Time) ([]models.Bar, error) {
	if interval == "" {
		interval = "daily"
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("interval", interval)
	params.Set("start", start.Format(common.DateLayout))
	params.Set("end", end.Format(common.DateLayout))

	var resp historyResponse
	if err := c.get(ctx, "/markets/history", params, &resp); err != nil {
		return nil, err
	}

	if resp.History == nil {
		return nil, nil
	}

	bars := make([]models.Bar, 0, len(resp.History.Day))
	for _, day := range resp.History.Day {
		date, err := time.Parse(common.DateLayout, day.Date)
		if err != nil {
			c.logger.Warn().Str("symbol", symbol).Str("date", day.Date).Msg("Skipping bar with unparseable date")
			continue
		}
		bars = append(bars, models.Bar{
			Symbol: symbol,
			Date:   date,
			Open:   day.Open,
			High:   day.High,
			Low:    day.Low,
			Close:  day.Close,
			Volume: day.Volume,
		})
	}

	return bars, nil
}

// Ensure Client implements MarketDataClient
var _ interfaces.MarketDataClient = (*Client)(nil)
