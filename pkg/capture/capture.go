// Package capture provides timed frame capture from cameras, screens, and a
// synthetic generator, with automatic device resolution and fallback.
//
// A Source is acquired through the Resolver, which probes candidate device
// indices and backends and falls back to the hardware-free Synthetic source
// when nothing responds. A Recorder drives a fixed-duration sampling loop
// over the source, persisting one frame per interval through a Sink.
//
// Example usage:
//
//	res := capture.NewResolver().Resolve(capture.AutoIndex, false)
//	rec, _ := capture.NewRecorder(res.Source, capture.SessionConfig{
//	    OutputDir: "vibe_images",
//	    Duration:  10 * time.Second,
//	    Interval:  time.Second,
//	})
//	artifacts, err := rec.Record(ctx)
package capture

import (
	"time"
)

// Format identifies the on-disk encoding of a frame.
type Format string

// Supported frame formats. The format doubles as the file extension.
const (
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
)

// Frame is one captured image, already encoded for persistence.
type Frame struct {
	// Data is the encoded image bytes (JPEG or PNG per Format).
	Data []byte

	// Width and Height are the frame dimensions in pixels.
	Width  int
	Height int

	// Format selects the file extension used by the Sink.
	Format Format
}

// Source is a frame producer. Implementations: Device (camera), Screen
// (display grab), Synthetic (deterministic generator), and Mock (tests).
type Source interface {
	// Open acquires the underlying device. Calling Open on an already
	// open source is a no-op.
	Open() error

	// IsReady reports whether the source is open and able to produce frames.
	IsReady() bool

	// ReadFrame captures and encodes a single frame.
	ReadFrame() (Frame, error)

	// Close releases the source. It is idempotent and safe to call
	// after a failed Open.
	Close() error
}

// Artifact is one persisted frame plus its sequence metadata.
// Seq is dense over successful captures: 1..N with no gaps.
type Artifact struct {
	Seq       int
	Timestamp time.Time
	Path      string
}
