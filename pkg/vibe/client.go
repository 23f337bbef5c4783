package vibe

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// anthropicVersion is the API version header required by the Messages API.
const anthropicVersion = "2023-06-01"

// Client analyzes images through the Anthropic Messages API.
type Client struct {
	baseURL string
	apiKey  string
	config  *Config
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a new vision analysis client.
func NewClient(opts ...Option) (*Client, error) {
	cfg := DefaultConfig()
	cfg.Apply(opts...)

	if cfg.APIKey == "" {
		return nil, ErrNoAPIKey
	}

	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		config:  cfg,
		http:    cfg.HTTPClient,
		logger:  cfg.Logger.With("component", "vibe.client"),
	}, nil
}

// AnalyzeImage classifies one image.
func (c *Client) AnalyzeImage(ctx context.Context, path string) (*Result, error) {
	c.logger.Debug("analyzing image", "file", filepath.Base(path))

	block, err := imageBlock(path)
	if err != nil {
		return nil, err
	}

	content := []contentBlock{block, textBlock(singleImagePrompt)}
	text, err := c.createMessage(ctx, content, c.config.MaxTokens)
	if err != nil {
		return nil, err
	}

	p := parseResponse(text)
	return &Result{
		ImagePath:   path,
		IsVibing:    p.vibing,
		Confidence:  p.confidence,
		Description: p.description,
		Raw:         text,
	}, nil
}

// AnalyzeSequence classifies each image independently and aggregates the
// results: majority vote for the overall verdict, mean confidence.
func (c *Client) AnalyzeSequence(ctx context.Context, paths []string) (*Summary, error) {
	if len(paths) == 0 {
		return nil, ErrNoImages
	}

	results := make([]Result, 0, len(paths))
	for i, path := range paths {
		result, err := c.AnalyzeImage(ctx, path)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
		c.logger.Info("image analyzed",
			"progress", fmt.Sprintf("%d/%d", i+1, len(paths)),
			"vibing", result.IsVibing,
			"confidence", result.Confidence,
		)
	}

	return Summarize(results), nil
}

// AnalyzeTemporal sends the ordered sequence as one multi-image request so
// the model can compare frames for motion. With fewer than two images there
// is nothing to compare, so it degrades to an independent analysis and
// reshapes the summary.
func (c *Client) AnalyzeTemporal(ctx context.Context, paths []string) (*TemporalResult, error) {
	if len(paths) == 0 {
		return nil, ErrNoImages
	}
	if len(paths) < 2 {
		summary, err := c.AnalyzeSequence(ctx, paths)
		if err != nil {
			return nil, err
		}
		return temporalFromSummary(summary), nil
	}

	content := make([]contentBlock, 0, len(paths)+1)
	for _, path := range paths {
		block, err := imageBlock(path)
		if err != nil {
			return nil, err
		}
		content = append(content, block)
	}
	content = append(content, textBlock(temporalPrompt(len(paths))))

	text, err := c.createMessage(ctx, content, c.config.TemporalMaxTokens)
	if err != nil {
		return nil, err
	}

	p := parseResponse(text)
	return &TemporalResult{
		TotalImages:      len(paths),
		IsVibing:         p.vibing,
		Confidence:       p.confidence,
		MovementDetected: p.movement,
		EnergyLevel:      p.energyLevel,
		Description:      p.description,
		Raw:              text,
	}, nil
}

// temporalFromSummary reshapes an independent-mode summary into the
// temporal result type for the short-sequence fallback.
func temporalFromSummary(s *Summary) *TemporalResult {
	t := &TemporalResult{
		TotalImages: s.TotalImages,
		IsVibing:    s.OverallVibing,
		Confidence:  int(s.AverageConfidence),
		EnergyLevel: EnergyUnknown,
	}
	if len(s.Results) > 0 {
		t.Description = s.Results[0].Description
		t.Raw = s.Results[0].Raw
	}
	return t
}

// contentBlock is one element of a Messages API content array.
type contentBlock map[string]interface{}

// textBlock builds a text content block.
func textBlock(text string) contentBlock {
	return contentBlock{"type": "text", "text": text}
}

// imageBlock reads and base64-encodes one image file.
func imageBlock(path string) (contentBlock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ImageError{Path: path, Err: err}
	}

	mediaType := "image/jpeg"
	if strings.EqualFold(filepath.Ext(path), ".png") {
		mediaType = "image/png"
	}

	return contentBlock{
		"type": "image",
		"source": map[string]string{
			"type":       "base64",
			"media_type": mediaType,
			"data":       base64.StdEncoding.EncodeToString(data),
		},
	}, nil
}

// messagesResponse is the subset of the Messages API response we consume.
type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// createMessage posts one Messages API request and returns the response text.
func (c *Client) createMessage(ctx context.Context, content []contentBlock, maxTokens int) (string, error) {
	payload := map[string]interface{}{
		"model":      c.config.Model,
		"max_tokens": maxTokens,
		"messages": []map[string]interface{}{
			{"role": "user", "content": content},
		},
	}

	resp, err := c.post(ctx, "/v1/messages", payload)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("vibe: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", parseAPIError(resp.StatusCode, bodyBytes)
	}

	var result messagesResponse
	if err := json.Unmarshal(bodyBytes, &result); err != nil {
		return "", fmt.Errorf("vibe: decode response: %w", err)
	}
	if result.Error.Message != "" {
		return "", &APIError{StatusCode: resp.StatusCode, Type: result.Error.Type, Message: result.Error.Message}
	}

	for _, block := range result.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}

// post makes a POST request with retry on transient failures.
func (c *Client) post(ctx context.Context, path string, payload interface{}) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("vibe: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("vibe: create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	return c.doWithRetry(ctx, req, body)
}

// doWithRetry performs the request, retrying rate limits and server errors
// with linear backoff.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, body []byte) (*http.Response, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.config.RetryDelay * time.Duration(attempt)):
			}
			// Reset body for retry
			req.Body = io.NopCloser(bytes.NewReader(body))
		}

		resp, err := c.http.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("vibe: request failed: %w", err)
			c.logger.Warn("request failed, retrying", "attempt", attempt+1, "error", err)
			continue
		}

		if resp.StatusCode == 429 || resp.StatusCode >= 500 {
			bodyBytes, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			lastErr = parseAPIError(resp.StatusCode, bodyBytes)
			c.logger.Warn("retrying request", "attempt", attempt+1, "status", resp.StatusCode)
			continue
		}

		return resp, nil
	}

	return nil, lastErr
}

// parseAPIError builds an APIError from a non-200 response body.
func parseAPIError(status int, body []byte) error {
	var errResp struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return &APIError{StatusCode: status, Type: errResp.Error.Type, Message: errResp.Error.Message}
	}
	msg := string(body)
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return &APIError{StatusCode: status, Message: msg}
}

// Verify Client implements Analyzer at compile time.
var _ Analyzer = (*Client)(nil)
