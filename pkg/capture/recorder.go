package capture

import (
	"context"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
)

// SessionConfig aggregates the settings for one recording session.
type SessionConfig struct {
	// OutputDir is the flat directory frames are written into.
	OutputDir string

	// Prefix is the filename prefix ("camera", "screenshot", ...).
	Prefix string

	// Duration is the total wall-clock length of the session.
	Duration time.Duration

	// Interval is the target spacing between captures. May be fractional
	// seconds; must be positive.
	Interval time.Duration
}

// Recorder drives a fixed-duration, fixed-cadence capture loop over one
// source. Pacing is anchored to the session start: each sleep targets the
// next absolute slot startTime + k*Interval, so per-capture latency does not
// accumulate into drift. A failed tick is logged and its slot is given up,
// but the session continues and sequence numbers stay dense over successes.
type Recorder struct {
	// Clock is the time source. Defaults to the real clock; tests inject
	// a mock to make pacing deterministic.
	Clock clock.Clock

	// Logger for per-tick progress. Defaults to slog.Default().
	Logger *slog.Logger

	source Source
	sink   *Sink
	cfg    SessionConfig
}

// NewRecorder creates a recorder for one session over the given source.
// The recorder owns the source for the session: Record releases it on every
// exit path.
func NewRecorder(src Source, cfg SessionConfig) (*Recorder, error) {
	if cfg.Interval <= 0 {
		return nil, ErrInvalidInterval
	}
	if cfg.Duration < 0 {
		return nil, ErrInvalidDuration
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "capture"
	}

	return &Recorder{
		Clock:  clock.New(),
		Logger: slog.Default(),
		source: src,
		sink:   NewSink(cfg.OutputDir, cfg.Prefix),
		cfg:    cfg,
	}, nil
}

// ExpectedCaptures returns the nominal capture count for display. The
// actual count depends on wall-clock timing and may differ by one.
func (r *Recorder) ExpectedCaptures() int {
	return int(r.cfg.Duration / r.cfg.Interval)
}

// Record runs the capture loop until Duration elapses or ctx is canceled.
// It returns the artifacts in capture order. The source is closed exactly
// once before returning, whatever the exit path. A session that finishes
// with zero successful captures returns ErrEmptySession; cancellation
// returns the partial artifact list along with the context error.
func (r *Recorder) Record(ctx context.Context) ([]Artifact, error) {
	if err := r.sink.Setup(); err != nil {
		return nil, err
	}
	if err := r.source.Open(); err != nil {
		return nil, err
	}
	defer r.source.Close()

	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("recording",
		"duration", r.cfg.Duration,
		"interval", r.cfg.Interval,
		"expected", r.ExpectedCaptures(),
		"dir", r.cfg.OutputDir,
	)

	start := r.Clock.Now()
	var artifacts []Artifact

	for {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}

		elapsed := r.Clock.Since(start)
		if elapsed >= r.cfg.Duration {
			break
		}

		ts := r.Clock.Now()
		if frame, err := r.source.ReadFrame(); err != nil {
			logger.Warn("capture failed", "elapsed_s", elapsed.Seconds(), "error", err)
		} else {
			seq := len(artifacts) + 1
			path, err := r.sink.Save(frame, seq, ts)
			if err != nil {
				logger.Warn("persist failed", "elapsed_s", elapsed.Seconds(), "error", err)
			} else {
				artifacts = append(artifacts, Artifact{Seq: seq, Timestamp: ts, Path: path})
				logger.Info("captured", "seq", seq, "file", path, "elapsed_s", elapsed.Seconds())
			}
		}

		r.sleepUntilNextSlot(start)
	}

	logger.Info("recording complete", "captures", len(artifacts))

	if len(artifacts) == 0 {
		return nil, ErrEmptySession
	}
	return artifacts, nil
}

// sleepUntilNextSlot pauses until the next schedule slot strictly after now.
// Slots sit at start + k*Interval; anchoring to start (rather than to the
// previous capture) keeps cadence drift-free, and a slot overrun by a slow
// or failed capture is skipped instead of bunching later captures together.
func (r *Recorder) sleepUntilNextSlot(start time.Time) {
	elapsed := r.Clock.Since(start)
	slot := int(elapsed/r.cfg.Interval) + 1
	next := start.Add(time.Duration(slot) * r.cfg.Interval)

	if wait := next.Sub(r.Clock.Now()); wait > 0 {
		r.Clock.Sleep(wait)
	}
}
