package capture_test

import (
	"bytes"
	"errors"
	"image"
	_ "image/jpeg"
	"testing"

	"github.com/vibewatch/vibewatch/pkg/capture"
)

func TestSyntheticSource(t *testing.T) {
	cfg := capture.DefaultConfig()
	cfg.Width = 320
	cfg.Height = 240

	src := capture.NewSynthetic(cfg)

	t.Run("read before open fails", func(t *testing.T) {
		_, err := src.ReadFrame()
		if !errors.Is(err, capture.ErrSourceClosed) {
			t.Errorf("expected ErrSourceClosed, got %v", err)
		}
	})

	t.Run("open never fails", func(t *testing.T) {
		if err := src.Open(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !src.IsReady() {
			t.Error("expected source to be ready")
		}
	})

	t.Run("frames decode with configured dimensions", func(t *testing.T) {
		frame, err := src.ReadFrame()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if frame.Format != capture.FormatJPEG {
			t.Errorf("expected jpg format, got %s", frame.Format)
		}

		imgCfg, format, err := image.DecodeConfig(bytes.NewReader(frame.Data))
		if err != nil {
			t.Fatalf("frame does not decode: %v", err)
		}
		if format != "jpeg" {
			t.Errorf("expected jpeg, got %s", format)
		}
		if imgCfg.Width != 320 || imgCfg.Height != 240 {
			t.Errorf("expected 320x240, got %dx%d", imgCfg.Width, imgCfg.Height)
		}
	})

	t.Run("counter increments and frames differ", func(t *testing.T) {
		before := src.FrameCount()
		first, err := src.ReadFrame()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		second, err := src.ReadFrame()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if src.FrameCount() != before+2 {
			t.Errorf("expected counter %d, got %d", before+2, src.FrameCount())
		}
		if bytes.Equal(first.Data, second.Data) {
			t.Error("expected consecutive frames to differ")
		}
	})

	t.Run("generation is deterministic", func(t *testing.T) {
		a := capture.NewSynthetic(cfg)
		b := capture.NewSynthetic(cfg)
		a.Open()
		b.Open()

		fa, _ := a.ReadFrame()
		fb, _ := b.ReadFrame()
		if !bytes.Equal(fa.Data, fb.Data) {
			t.Error("expected identical frames for identical counter and config")
		}
	})

	t.Run("zero config falls back to default dimensions", func(t *testing.T) {
		s := capture.NewSynthetic(capture.Config{})
		if err := s.Open(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer s.Close()

		frame, err := s.ReadFrame()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		def := capture.DefaultConfig()
		if frame.Width != def.Width || frame.Height != def.Height {
			t.Errorf("expected %dx%d, got %dx%d", def.Width, def.Height, frame.Width, frame.Height)
		}
	})

	t.Run("close is idempotent", func(t *testing.T) {
		if err := src.Close(); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if err := src.Close(); err != nil {
			t.Errorf("second close should not fail: %v", err)
		}
		if src.IsReady() {
			t.Error("expected source to be closed")
		}
	})
}
