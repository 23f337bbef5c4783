package capture_test

import (
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/vibewatch/vibewatch/pkg/capture"
)

var errNoDevice = errors.New("no such device")

// probeLog records every index/backend pair the resolver tried.
type probeLog struct {
	mu    sync.Mutex
	pairs [][2]int
}

func (p *probeLog) add(index int, backend capture.Backend) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pairs = append(p.pairs, [2]int{index, int(backend)})
}

func (p *probeLog) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pairs)
}

// testResolver builds a resolver whose factory succeeds only for the pairs
// accepted by ok.
func testResolver(log *probeLog, ok func(index int, backend capture.Backend) bool) *capture.Resolver {
	r := capture.NewResolver()
	r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	r.Factory = func(index int, backend capture.Backend, cfg capture.Config) capture.Source {
		log.add(index, backend)
		m := capture.NewMock()
		if !ok(index, backend) {
			m.OpenFunc = func() error {
				return &capture.DeviceError{Index: index, Backend: backend, Stage: capture.StageOpen, Err: errNoDevice}
			}
		}
		return m
	}
	return r
}

func TestResolver(t *testing.T) {
	t.Run("force synthetic skips probing", func(t *testing.T) {
		log := &probeLog{}
		r := testResolver(log, func(int, capture.Backend) bool { return true })

		res := r.Resolve(capture.AutoIndex, true)

		if log.count() != 0 {
			t.Errorf("expected no probes, got %d", log.count())
		}
		if _, ok := res.Source.(*capture.Synthetic); !ok {
			t.Errorf("expected synthetic source, got %T", res.Source)
		}
		if res.Fallback {
			t.Error("forced synthetic is not a fallback")
		}
		if !res.Source.IsReady() {
			t.Error("expected source to be open")
		}
	})

	t.Run("explicit index used when it works", func(t *testing.T) {
		log := &probeLog{}
		r := testResolver(log, func(index int, _ capture.Backend) bool { return index == 1 })

		res := r.Resolve(1, false)

		if res.Index != 1 || res.Fallback {
			t.Errorf("expected device 1, got index %d fallback %v", res.Index, res.Fallback)
		}
		if log.count() != 1 {
			t.Errorf("expected a single probe, got %d", log.count())
		}
	})

	t.Run("failed explicit index degrades to auto-detect", func(t *testing.T) {
		log := &probeLog{}
		r := testResolver(log, func(index int, _ capture.Backend) bool { return index == 2 })

		res := r.Resolve(1, false)

		if res.Fallback {
			t.Fatal("expected a real device, got fallback")
		}
		if res.Index != 2 {
			t.Errorf("expected auto-detected index 2, got %d", res.Index)
		}
	})

	t.Run("auto-detect selects the first live index and backend", func(t *testing.T) {
		log := &probeLog{}
		r := testResolver(log, func(index int, backend capture.Backend) bool {
			return index == 2 && backend == capture.BackendV4L2
		})

		res := r.Resolve(capture.AutoIndex, false)

		if res.Fallback {
			t.Fatal("expected a real device, got fallback")
		}
		if res.Index != 2 || res.Backend != capture.BackendV4L2 {
			t.Errorf("expected index 2 backend v4l2, got index %d backend %s", res.Index, res.Backend)
		}
	})

	t.Run("device that opens without delivering frames is skipped", func(t *testing.T) {
		log := &probeLog{}
		r := capture.NewResolver()
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		r.Factory = func(index int, backend capture.Backend, cfg capture.Config) capture.Source {
			log.add(index, backend)
			m := capture.NewMock()
			if index == 0 {
				// Opens fine, never produces a frame.
				m.ReadFrameFunc = func() (capture.Frame, error) {
					return capture.Frame{}, &capture.DeviceError{
						Index: index, Backend: backend, Stage: capture.StageRead, Err: errNoDevice,
					}
				}
			}
			return m
		}

		res := r.Resolve(capture.AutoIndex, false)

		if res.Index == 0 {
			t.Error("resolver selected a device that cannot deliver frames")
		}
		if res.Fallback {
			t.Error("expected a live device, got fallback")
		}
	})

	t.Run("zero value resolver resolves without panicking", func(t *testing.T) {
		// Only Factory-independent fields are left nil on purpose; the
		// single real probe either finds a device or falls back.
		r := &capture.Resolver{
			MaxIndex: 1,
			Backends: []capture.Backend{capture.BackendAny},
			Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		}

		res := r.Resolve(capture.AutoIndex, false)

		if res.Source == nil {
			t.Fatal("expected a source")
		}
		defer res.Source.Close()
		if res.Fallback {
			if _, ok := res.Source.(*capture.Synthetic); !ok {
				t.Errorf("fallback must be synthetic, got %T", res.Source)
			}
		}
	})

	t.Run("total failure falls back to synthetic and reports it", func(t *testing.T) {
		log := &probeLog{}
		r := testResolver(log, func(int, capture.Backend) bool { return false })

		res := r.Resolve(capture.AutoIndex, false)

		if !res.Fallback {
			t.Error("expected fallback to be reported")
		}
		if _, ok := res.Source.(*capture.Synthetic); !ok {
			t.Errorf("expected synthetic source, got %T", res.Source)
		}
		if !res.Source.IsReady() {
			t.Error("expected fallback source to be open")
		}
		// Every index/backend pair was tried before giving up.
		want := capture.DefaultMaxIndex * len(capture.DefaultBackends())
		if log.count() != want {
			t.Errorf("expected %d probes, got %d", want, log.count())
		}
	})
}
