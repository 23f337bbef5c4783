package vibe

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions.
var (
	// ErrNoAPIKey is returned when an API key is required but missing.
	ErrNoAPIKey = errors.New("vibe: API key required")

	// ErrNoImages is returned when analysis is requested with no images.
	ErrNoImages = errors.New("vibe: at least one image required")

	// ErrEmptyResponse is returned when the API returns no content blocks.
	ErrEmptyResponse = errors.New("vibe: empty response from API")
)

// APIError represents an error response from the vision API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Type is the API error type (if provided).
	Type string

	// Message is the error message from the API.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("vibe: API error %d (%s): %s", e.StatusCode, e.Type, e.Message)
	}
	return fmt.Sprintf("vibe: API error %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}

// IsRetryable returns true if the request should be retried.
func (e *APIError) IsRetryable() bool {
	return e.IsRateLimited() || e.IsServerError()
}

// ImageError wraps a failure reading or encoding one input image.
type ImageError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ImageError) Error() string {
	return fmt.Sprintf("vibe: image %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ImageError) Unwrap() error {
	return e.Err
}
