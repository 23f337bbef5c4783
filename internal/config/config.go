// Package config provides configuration helpers for vibewatch commands.
// Environment lookup lives here and in the CLI layer only; library
// packages receive configuration as explicit values.
package config

import (
	"fmt"
	"os"
)

// Defaults for the capture session.
const (
	DefaultOutputDir = "vibe_images"
	DefaultDuration  = 10
	DefaultInterval  = 1.0
)

// APIKey returns the Anthropic API key from ANTHROPIC_API_KEY.
// Falls back to the provided override if set.
func APIKey(override string) string {
	if override != "" {
		return override
	}
	return os.Getenv("ANTHROPIC_API_KEY")
}

// APIKeyRequired returns the Anthropic API key or exits with usage help.
func APIKeyRequired(override string) string {
	key := APIKey(override)
	if key == "" {
		fmt.Fprintln(os.Stderr, "Error: Anthropic API key is required")
		fmt.Fprintln(os.Stderr, "Set the ANTHROPIC_API_KEY environment variable or pass -api-key")
		os.Exit(1)
	}
	return key
}

// LogLevel returns the log level from VIBEWATCH_LOG_LEVEL or the default.
func LogLevel(defaultLevel string) string {
	if lvl := os.Getenv("VIBEWATCH_LOG_LEVEL"); lvl != "" {
		return lvl
	}
	return defaultLevel
}
