package detect_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vibewatch/vibewatch/pkg/capture"
	"github.com/vibewatch/vibewatch/pkg/detect"
	"github.com/vibewatch/vibewatch/pkg/vibe"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// syntheticDetector wires a detector whose resolver never touches hardware.
// Frames are kept small so encoding stays well inside the capture interval.
func syntheticDetector(analyzer vibe.Analyzer) *detect.Detector {
	d := detect.New(analyzer)
	d.Logger = quietLogger()
	d.Resolver.Logger = quietLogger()
	d.Resolver.Config.Width = 160
	d.Resolver.Config.Height = 120
	return d
}

func baseOptions(t *testing.T) detect.Options {
	t.Helper()
	return detect.Options{
		OutputDir:      t.TempDir(),
		Duration:       200 * time.Millisecond,
		Interval:       50 * time.Millisecond,
		DeviceIndex:    capture.AutoIndex,
		ForceSynthetic: true,
		Mode:           detect.ModeTemporal,
	}
}

func TestDetectorRun(t *testing.T) {
	t.Run("temporal mode sends the whole session once", func(t *testing.T) {
		mock := vibe.NewMock()
		detector := syntheticDetector(mock)

		report, err := detector.Run(context.Background(), baseOptions(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Mode != detect.ModeTemporal {
			t.Errorf("expected temporal mode, got %s", report.Mode)
		}
		if mock.CallCount("AnalyzeTemporal") != 1 {
			t.Errorf("expected 1 temporal call, got %d", mock.CallCount("AnalyzeTemporal"))
		}
		if !report.IsVibing || report.Temporal == nil {
			t.Errorf("unexpected report: %+v", report)
		}
		if len(report.Artifacts) == 0 {
			t.Error("expected captured artifacts")
		}
	})

	t.Run("independent mode aggregates per-frame results", func(t *testing.T) {
		mock := vibe.NewMock()
		detector := syntheticDetector(mock)

		opts := baseOptions(t)
		opts.Mode = detect.ModeIndependent

		report, err := detector.Run(context.Background(), opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if report.Summary == nil || report.Temporal != nil {
			t.Errorf("expected a summary-only report: %+v", report)
		}
		if mock.CallCount("AnalyzeSequence") != 1 {
			t.Errorf("expected 1 sequence call, got %d", mock.CallCount("AnalyzeSequence"))
		}
	})

	t.Run("analyzer sees paths in capture order", func(t *testing.T) {
		mock := vibe.NewMock()
		var got atomic.Value
		mock.AnalyzeTemporalFunc = func(ctx context.Context, paths []string) (*vibe.TemporalResult, error) {
			got.Store(append([]string(nil), paths...))
			return &vibe.TemporalResult{TotalImages: len(paths), EnergyLevel: vibe.EnergyUnknown}, nil
		}

		detector := syntheticDetector(mock)
		report, err := detector.Run(context.Background(), baseOptions(t))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		paths, _ := got.Load().([]string)
		if len(paths) != len(report.Artifacts) {
			t.Fatalf("expected %d paths, got %d", len(report.Artifacts), len(paths))
		}
		for i, a := range report.Artifacts {
			if paths[i] != a.Path {
				t.Errorf("path %d out of order: %q != %q", i, paths[i], a.Path)
			}
		}
	})

	t.Run("temporal degrades to independent for a single frame", func(t *testing.T) {
		mock := vibe.NewMock()
		detector := syntheticDetector(mock)

		opts := baseOptions(t)
		opts.Duration = 30 * time.Millisecond
		opts.Interval = 50 * time.Millisecond

		report, err := detector.Run(context.Background(), opts)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(report.Artifacts) != 1 {
			t.Fatalf("expected a single artifact, got %d", len(report.Artifacts))
		}
		if report.Mode != detect.ModeIndependent {
			t.Errorf("expected degraded independent mode, got %s", report.Mode)
		}
		if mock.CallCount("AnalyzeTemporal") != 0 {
			t.Error("temporal analyzer must not be called for one frame")
		}
	})

	t.Run("zero duration surfaces the empty session", func(t *testing.T) {
		detector := syntheticDetector(vibe.NewMock())

		opts := baseOptions(t)
		opts.Duration = 0

		_, err := detector.Run(context.Background(), opts)
		if !errors.Is(err, capture.ErrEmptySession) {
			t.Errorf("expected ErrEmptySession, got %v", err)
		}
	})

	t.Run("device fallback is reported, not an error", func(t *testing.T) {
		detector := syntheticDetector(vibe.NewMock())
		detector.Resolver.Factory = func(index int, backend capture.Backend, cfg capture.Config) capture.Source {
			m := capture.NewMock()
			m.OpenFunc = func() error { return errors.New("no camera") }
			return m
		}

		opts := baseOptions(t)
		opts.ForceSynthetic = false

		report, err := detector.Run(context.Background(), opts)
		if err != nil {
			t.Fatalf("fallback must not fail the run: %v", err)
		}
		if !report.Fallback {
			t.Error("expected fallback to be reported")
		}
	})

	t.Run("analysis failure propagates as a vibe error", func(t *testing.T) {
		detector := syntheticDetector(vibe.WithError(&vibe.APIError{StatusCode: 500, Message: "boom"}))

		_, err := detector.Run(context.Background(), baseOptions(t))

		var apiErr *vibe.APIError
		if !errors.As(err, &apiErr) {
			t.Errorf("expected vibe.APIError, got %v", err)
		}
	})

	t.Run("invalid interval rejected", func(t *testing.T) {
		detector := syntheticDetector(vibe.NewMock())

		opts := baseOptions(t)
		opts.Interval = 0

		_, err := detector.Run(context.Background(), opts)
		if !errors.Is(err, capture.ErrInvalidInterval) {
			t.Errorf("expected ErrInvalidInterval, got %v", err)
		}
	})
}
