// Package detect ties capture and analysis together: record a timed frame
// session, then ask the vision API whether anyone was vibing.
package detect

import (
	"context"
	"log/slog"
	"time"

	"github.com/vibewatch/vibewatch/pkg/capture"
	"github.com/vibewatch/vibewatch/pkg/vibe"
)

// Mode selects how captured frames are analyzed.
type Mode string

// Analysis modes.
const (
	// ModeIndependent classifies each frame on its own and aggregates by
	// majority vote.
	ModeIndependent Mode = "independent"

	// ModeTemporal sends the whole sequence in one request so the model
	// can compare frames for motion.
	ModeTemporal Mode = "temporal"
)

// Options configures one detection run.
type Options struct {
	// OutputDir receives the captured frames.
	OutputDir string

	// Duration and Interval drive the capture schedule.
	Duration time.Duration
	Interval time.Duration

	// DeviceIndex selects an explicit camera, or capture.AutoIndex to probe.
	DeviceIndex int

	// ForceSynthetic skips device probing and uses the synthetic source.
	ForceSynthetic bool

	// Screen captures the primary display instead of a camera.
	Screen bool

	// Mode selects the analysis strategy.
	Mode Mode
}

// Report is the outcome of one detection run.
type Report struct {
	// Artifacts are the captured frames in order.
	Artifacts []capture.Artifact

	// Fallback is true when no real device resolved and the synthetic
	// source was used instead.
	Fallback bool

	// Mode is the analysis mode actually used. A temporal request over a
	// single frame degrades to independent mode.
	Mode Mode

	// IsVibing and Confidence are the aggregate verdict.
	IsVibing   bool
	Confidence float64

	// Exactly one of Summary and Temporal is set, matching Mode.
	Summary  *vibe.Summary
	Temporal *vibe.TemporalResult
}

// Detector runs capture sessions and feeds them to an Analyzer.
type Detector struct {
	// Analyzer classifies the captured frames.
	Analyzer vibe.Analyzer

	// Resolver finds the capture source. Defaults to real device probing.
	Resolver *capture.Resolver

	// Logger for run progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// New creates a detector around the given analyzer.
func New(analyzer vibe.Analyzer) *Detector {
	return &Detector{
		Analyzer: analyzer,
		Resolver: capture.NewResolver(),
		Logger:   slog.Default(),
	}
}

// Run records a session and analyzes it. Artifacts are analyzed in capture
// order. A session with zero captures returns capture.ErrEmptySession;
// falling back to the synthetic source is reported on the Report, not as an
// error.
func (d *Detector) Run(ctx context.Context, opts Options) (*Report, error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	source, prefix, fallback := d.resolveSource(opts)

	rec, err := capture.NewRecorder(source, capture.SessionConfig{
		OutputDir: opts.OutputDir,
		Prefix:    prefix,
		Duration:  opts.Duration,
		Interval:  opts.Interval,
	})
	if err != nil {
		source.Close()
		return nil, err
	}
	rec.Logger = logger

	artifacts, err := rec.Record(ctx)
	if err != nil {
		return nil, err
	}

	logger.Info("analyzing session", "frames", len(artifacts), "mode", opts.Mode)

	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.Path
	}

	report := &Report{
		Artifacts: artifacts,
		Fallback:  fallback,
		Mode:      opts.Mode,
	}

	// Temporal comparison needs at least two frames.
	if report.Mode != ModeIndependent && len(paths) < 2 {
		report.Mode = ModeIndependent
	}

	switch report.Mode {
	case ModeTemporal:
		result, err := d.Analyzer.AnalyzeTemporal(ctx, paths)
		if err != nil {
			return nil, err
		}
		report.Temporal = result
		report.IsVibing = result.IsVibing
		report.Confidence = float64(result.Confidence)
	default:
		report.Mode = ModeIndependent
		summary, err := d.Analyzer.AnalyzeSequence(ctx, paths)
		if err != nil {
			return nil, err
		}
		report.Summary = summary
		report.IsVibing = summary.OverallVibing
		report.Confidence = summary.AverageConfidence
	}

	return report, nil
}

// resolveSource picks the capture source and filename prefix for the run.
func (d *Detector) resolveSource(opts Options) (capture.Source, string, bool) {
	if opts.Screen {
		return capture.NewScreen(0), "screenshot", false
	}

	resolver := d.Resolver
	if resolver == nil {
		resolver = capture.NewResolver()
	}
	res := resolver.Resolve(opts.DeviceIndex, opts.ForceSynthetic)
	return res.Source, "camera", res.Fallback
}
