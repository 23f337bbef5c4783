package vibe

import (
	"strconv"
	"strings"
)

// defaultConfidence is used when the CONFIDENCE line is missing or carries
// no digits.
const defaultConfidence = 50

// parsed holds the fields recognized in a response. Missing prefixes keep
// their deterministic defaults: vibing false, confidence 50, movement
// false, energy UNKNOWN, description empty.
type parsed struct {
	vibing      bool
	confidence  int
	movement    bool
	energyLevel EnergyLevel
	description string
}

// parseResponse scans the free-text response for the recognized line
// prefixes. Unrecognized lines are ignored.
func parseResponse(text string) parsed {
	p := parsed{
		confidence:  defaultConfidence,
		energyLevel: EnergyUnknown,
	}

	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		switch {
		case strings.HasPrefix(line, "VIBING:"):
			p.vibing = strings.Contains(strings.ToUpper(line), "YES")
		case strings.HasPrefix(line, "CONFIDENCE:"):
			p.confidence = parseConfidence(line)
		case strings.HasPrefix(line, "MOVEMENT_DETECTED:"):
			p.movement = strings.Contains(strings.ToUpper(line), "YES")
		case strings.HasPrefix(line, "ENERGY_LEVEL:"):
			if level := strings.TrimSpace(strings.TrimPrefix(line, "ENERGY_LEVEL:")); level != "" {
				p.energyLevel = EnergyLevel(strings.ToUpper(level))
			}
		case strings.HasPrefix(line, "DESCRIPTION:"):
			p.description = strings.TrimSpace(strings.TrimPrefix(line, "DESCRIPTION:"))
		}
	}

	return p
}

// parseConfidence concatenates every digit on the line and parses the
// result, so "CONFIDENCE: 85" and "CONFIDENCE: 85%" both yield 85. A line
// with no digits yields the default.
func parseConfidence(line string) int {
	var digits strings.Builder
	for _, r := range line {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return defaultConfidence
	}
	n, err := strconv.Atoi(digits.String())
	if err != nil {
		return defaultConfidence
	}
	return n
}
