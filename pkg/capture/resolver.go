package capture

import (
	"log/slog"
)

// AutoIndex asks the Resolver to probe candidate indices instead of
// opening one explicit device.
const AutoIndex = -1

// DefaultMaxIndex bounds the candidate device indices probed during
// auto-detection (0..DefaultMaxIndex-1).
const DefaultMaxIndex = 6

// DeviceFactory constructs a Source for an index/backend pair. The default
// factory builds real gocv devices; tests substitute their own.
type DeviceFactory func(index int, backend Backend, cfg Config) Source

// Resolver finds a working capture source. It probes candidate device
// indices crossed with candidate backends, index-major, and falls back to
// the Synthetic source when nothing delivers a frame. Resolve never fails.
type Resolver struct {
	// MaxIndex bounds auto-detection to indices 0..MaxIndex-1.
	MaxIndex int

	// Backends are the candidate backends, tried in order for each index.
	Backends []Backend

	// Config is passed to every constructed source.
	Config Config

	// Factory builds candidate sources. Defaults to real devices.
	Factory DeviceFactory

	// Logger for probe progress. Defaults to slog.Default().
	Logger *slog.Logger
}

// Resolution is the outcome of device resolution.
type Resolution struct {
	// Source is open and ready to read. The caller owns it and must Close it.
	Source Source

	// Fallback is true when no real device responded and Source is the
	// Synthetic generator.
	Fallback bool

	// Index and Backend identify the selected device. Index is AutoIndex
	// for synthetic sources.
	Index   int
	Backend Backend
}

// NewResolver creates a resolver with default probing bounds.
func NewResolver() *Resolver {
	return &Resolver{
		MaxIndex: DefaultMaxIndex,
		Backends: DefaultBackends(),
		Config:   DefaultConfig(),
		Factory: func(index int, backend Backend, cfg Config) Source {
			return NewDevice(index, backend, cfg)
		},
		Logger: slog.Default(),
	}
}

// Resolve selects a capture source.
//
// With forceSynthetic, the synthetic source is returned immediately with no
// probing. An explicit deviceIndex is tried with the default backend first;
// if it fails, resolution degrades to auto-detection rather than failing.
// Auto-detection walks indices 0..MaxIndex-1 crossed with the backend list
// and selects the first pair that both opens and delivers a frame. The frame
// read is a hard liveness check: a device can report open while never
// producing frames. If no candidate succeeds, the synthetic source is
// returned with Fallback set.
func (r *Resolver) Resolve(deviceIndex int, forceSynthetic bool) *Resolution {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if forceSynthetic {
		logger.Info("using synthetic source")
		return r.synthetic(false)
	}

	if deviceIndex != AutoIndex {
		if src := r.probe(deviceIndex, BackendAny); src != nil {
			logger.Info("opened explicit device", "index", deviceIndex)
			return &Resolution{Source: src, Index: deviceIndex, Backend: BackendAny}
		}
		logger.Warn("explicit device failed, auto-detecting", "index", deviceIndex)
	}

	maxIndex := r.MaxIndex
	if maxIndex <= 0 {
		maxIndex = DefaultMaxIndex
	}
	backends := r.Backends
	if len(backends) == 0 {
		backends = DefaultBackends()
	}

	for index := 0; index < maxIndex; index++ {
		for _, backend := range backends {
			if src := r.probe(index, backend); src != nil {
				logger.Info("auto-detected device", "index", index, "backend", backend.String())
				return &Resolution{Source: src, Index: index, Backend: backend}
			}
		}
	}

	logger.Warn("no working device found, falling back to synthetic source")
	return r.synthetic(true)
}

// probe opens a candidate and verifies it delivers a frame. Returns the
// open source on success, nil on any failure.
func (r *Resolver) probe(index int, backend Backend) Source {
	factory := r.Factory
	if factory == nil {
		factory = func(index int, backend Backend, cfg Config) Source {
			return NewDevice(index, backend, cfg)
		}
	}
	cfg := r.Config
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	src := factory(index, backend, cfg)

	if err := src.Open(); err != nil {
		src.Close()
		if r.Logger != nil {
			r.Logger.Debug("probe open failed", "index", index, "backend", backend.String(), "error", err)
		}
		return nil
	}
	if _, err := src.ReadFrame(); err != nil {
		src.Close()
		if r.Logger != nil {
			r.Logger.Debug("probe read failed", "index", index, "backend", backend.String(), "error", err)
		}
		return nil
	}
	return src
}

// synthetic builds an open synthetic resolution.
func (r *Resolver) synthetic(fallback bool) *Resolution {
	src := NewSynthetic(r.Config)
	src.Open()
	return &Resolution{Source: src, Fallback: fallback, Index: AutoIndex}
}
