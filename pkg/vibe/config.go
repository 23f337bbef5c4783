package vibe

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/vibewatch/vibewatch/internal/httpc"
)

// Config holds client configuration.
type Config struct {
	// Connection
	BaseURL string // API base URL
	APIKey  string // Anthropic API key

	// Model is the vision-capable model used for analysis.
	Model string

	// MaxTokens limits single-image responses; TemporalMaxTokens limits
	// the longer multi-image responses.
	MaxTokens         int
	TemporalMaxTokens int

	// Timeout bounds each HTTP request.
	Timeout time.Duration

	// Retry configuration
	MaxRetries int
	RetryDelay time.Duration

	// HTTPClient overrides the shared client (tests mostly).
	HTTPClient *http.Client

	// Observability
	Logger *slog.Logger
}

// Option is a functional option for configuring the client.
type Option func(*Config)

// WithBaseURL sets the API base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) { c.BaseURL = url }
}

// WithAPIKey sets the API key.
func WithAPIKey(key string) Option {
	return func(c *Config) { c.APIKey = key }
}

// WithModel sets the vision model.
func WithModel(model string) Option {
	return func(c *Config) { c.Model = model }
}

// WithMaxTokens sets the single-image response limit.
func WithMaxTokens(n int) Option {
	return func(c *Config) { c.MaxTokens = n }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
		c.HTTPClient = httpc.NewClient(d)
	}
}

// WithRetry configures retry behavior.
func WithRetry(maxRetries int, delay time.Duration) Option {
	return func(c *Config) {
		c.MaxRetries = maxRetries
		c.RetryDelay = delay
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) { c.HTTPClient = hc }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// DefaultConfig returns sensible defaults for the Anthropic API.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:           "https://api.anthropic.com",
		Model:             "claude-3-5-sonnet-20241022",
		MaxTokens:         1024,
		TemporalMaxTokens: 2048,
		Timeout:           httpc.DefaultTimeout,
		MaxRetries:        3,
		RetryDelay:        100 * time.Millisecond,
		HTTPClient:        httpc.Client,
		Logger:            slog.Default(),
	}
}

// Apply applies functional options to the config.
func (c *Config) Apply(opts ...Option) {
	for _, opt := range opts {
		opt(c)
	}
}
