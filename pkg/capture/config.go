package capture

import (
	"fmt"
	"time"
)

// Config holds frame acquisition parameters shared by all sources.
type Config struct {
	// Width and Height are the requested frame dimensions in pixels.
	// Real devices may deliver a different resolution; the actual frame
	// dimensions are reported on each Frame.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Quality is the JPEG encode quality 1-100.
	Quality int `json:"quality"`

	// WarmUp is how long to wait after opening a real device before the
	// first read. Cameras need a moment for auto-exposure to settle.
	WarmUp time.Duration `json:"warm_up"`
}

// DefaultConfig returns the recommended capture configuration.
func DefaultConfig() Config {
	return Config{
		Width:   1280,
		Height:  720,
		Quality: 85,
		WarmUp:  500 * time.Millisecond,
	}
}

// Validate checks that the config values are within valid ranges.
func (c Config) Validate() error {
	if c.Width < 160 || c.Width > 7680 {
		return fmt.Errorf("capture: width must be between 160 and 7680, got %d", c.Width)
	}
	if c.Height < 120 || c.Height > 4320 {
		return fmt.Errorf("capture: height must be between 120 and 4320, got %d", c.Height)
	}
	if c.Quality < 1 || c.Quality > 100 {
		return fmt.Errorf("capture: quality must be between 1 and 100, got %d", c.Quality)
	}
	if c.WarmUp < 0 {
		return fmt.Errorf("capture: warm_up must not be negative")
	}
	return nil
}
