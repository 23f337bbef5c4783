// Package vibe analyzes captured frames with Claude's vision API to decide
// whether the people in them are vibing to music.
//
// Two analysis modes are supported. Independent mode sends each image as its
// own classification request and aggregates by majority vote. Temporal mode
// sends the whole ordered sequence in one request so the model can compare
// frames for motion; it falls back to independent mode when fewer than two
// images are available.
//
// Example usage:
//
//	client, _ := vibe.NewClient(
//	    vibe.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY")),
//	)
//	result, _ := client.AnalyzeTemporal(ctx, paths)
package vibe

import "context"

// EnergyLevel is the model's coarse assessment of movement energy.
type EnergyLevel string

// Recognized energy levels. EnergyUnknown is the explicit sentinel used
// when the response omits or mangles the ENERGY_LEVEL line.
const (
	EnergyLow     EnergyLevel = "LOW"
	EnergyMedium  EnergyLevel = "MEDIUM"
	EnergyHigh    EnergyLevel = "HIGH"
	EnergyUnknown EnergyLevel = "UNKNOWN"
)

// Result is the classification of a single image.
type Result struct {
	// ImagePath is the analyzed file.
	ImagePath string `json:"image_path"`

	// IsVibing is the model's verdict for this frame.
	IsVibing bool `json:"is_vibing"`

	// Confidence is the model's self-reported confidence, nominally 0-100.
	Confidence int `json:"confidence"`

	// Description is the model's free-text observation.
	Description string `json:"description"`

	// Raw is the unparsed response text.
	Raw string `json:"raw_response"`
}

// Summary aggregates independent per-image results.
type Summary struct {
	TotalImages       int      `json:"total_images"`
	VibingImages      int      `json:"vibing_images"`
	VibingPercentage  float64  `json:"vibing_percentage"`
	AverageConfidence float64  `json:"average_confidence"`
	OverallVibing     bool     `json:"overall_vibing"`
	Results           []Result `json:"individual_results"`
}

// TemporalResult is the classification of an ordered frame sequence
// analyzed in one request.
type TemporalResult struct {
	TotalImages      int         `json:"total_images"`
	IsVibing         bool        `json:"is_vibing"`
	Confidence       int         `json:"confidence"`
	MovementDetected bool        `json:"movement_detected"`
	EnergyLevel      EnergyLevel `json:"energy_level"`
	Description      string      `json:"description"`
	Raw              string      `json:"raw_response"`
}

// Analyzer classifies captured frames. Implemented by Client and Mock.
// Image paths must be supplied in capture order; temporal analysis depends
// on it.
type Analyzer interface {
	// AnalyzeImage classifies one image.
	AnalyzeImage(ctx context.Context, path string) (*Result, error)

	// AnalyzeSequence classifies each image independently and aggregates:
	// overall vibing is a simple majority (>= 50% positive) and confidence
	// is the arithmetic mean.
	AnalyzeSequence(ctx context.Context, paths []string) (*Summary, error)

	// AnalyzeTemporal classifies the ordered sequence in one multi-image
	// request so the model can compare frames for motion.
	AnalyzeTemporal(ctx context.Context, paths []string) (*TemporalResult, error)
}

// Summarize computes the aggregate over independent results: majority vote
// for the overall verdict and the mean of confidences.
func Summarize(results []Result) *Summary {
	s := &Summary{
		TotalImages: len(results),
		Results:     results,
	}
	if len(results) == 0 {
		return s
	}

	var confidenceSum int
	for _, r := range results {
		if r.IsVibing {
			s.VibingImages++
		}
		confidenceSum += r.Confidence
	}

	s.VibingPercentage = float64(s.VibingImages) / float64(s.TotalImages) * 100
	s.AverageConfidence = float64(confidenceSum) / float64(s.TotalImages)
	s.OverallVibing = s.VibingPercentage >= 50

	return s
}
