package vibe

import (
	"context"
	"sync"
	"time"
)

// Mock implements Analyzer for testing.
type Mock struct {
	// AnalyzeImageFunc is called when AnalyzeImage is invoked.
	AnalyzeImageFunc func(ctx context.Context, path string) (*Result, error)

	// AnalyzeSequenceFunc is called when AnalyzeSequence is invoked.
	AnalyzeSequenceFunc func(ctx context.Context, paths []string) (*Summary, error)

	// AnalyzeTemporalFunc is called when AnalyzeTemporal is invoked.
	AnalyzeTemporalFunc func(ctx context.Context, paths []string) (*TemporalResult, error)

	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a method invocation.
type MockCall struct {
	Method string
	Time   time.Time
}

// NewMock creates a mock analyzer with sensible defaults: every frame vibes
// with confidence 90.
func NewMock() *Mock {
	m := &Mock{}
	m.AnalyzeImageFunc = func(ctx context.Context, path string) (*Result, error) {
		return &Result{
			ImagePath:   path,
			IsVibing:    true,
			Confidence:  90,
			Description: "Mock analysis",
		}, nil
	}
	m.AnalyzeSequenceFunc = func(ctx context.Context, paths []string) (*Summary, error) {
		if len(paths) == 0 {
			return nil, ErrNoImages
		}
		results := make([]Result, 0, len(paths))
		for _, p := range paths {
			r, err := m.AnalyzeImageFunc(ctx, p)
			if err != nil {
				return nil, err
			}
			results = append(results, *r)
		}
		return Summarize(results), nil
	}
	m.AnalyzeTemporalFunc = func(ctx context.Context, paths []string) (*TemporalResult, error) {
		if len(paths) == 0 {
			return nil, ErrNoImages
		}
		return &TemporalResult{
			TotalImages:      len(paths),
			IsVibing:         true,
			Confidence:       90,
			MovementDetected: true,
			EnergyLevel:      EnergyHigh,
			Description:      "Mock temporal analysis",
		}, nil
	}
	return m
}

// WithError returns a mock where every method returns the given error.
func WithError(err error) *Mock {
	return &Mock{
		AnalyzeImageFunc: func(ctx context.Context, path string) (*Result, error) {
			return nil, err
		},
		AnalyzeSequenceFunc: func(ctx context.Context, paths []string) (*Summary, error) {
			return nil, err
		},
		AnalyzeTemporalFunc: func(ctx context.Context, paths []string) (*TemporalResult, error) {
			return nil, err
		},
	}
}

// AnalyzeImage calls AnalyzeImageFunc and records the call.
func (m *Mock) AnalyzeImage(ctx context.Context, path string) (*Result, error) {
	m.record("AnalyzeImage")
	if m.AnalyzeImageFunc != nil {
		return m.AnalyzeImageFunc(ctx, path)
	}
	return nil, ErrEmptyResponse
}

// AnalyzeSequence calls AnalyzeSequenceFunc and records the call.
func (m *Mock) AnalyzeSequence(ctx context.Context, paths []string) (*Summary, error) {
	m.record("AnalyzeSequence")
	if m.AnalyzeSequenceFunc != nil {
		return m.AnalyzeSequenceFunc(ctx, paths)
	}
	return nil, ErrEmptyResponse
}

// AnalyzeTemporal calls AnalyzeTemporalFunc and records the call.
func (m *Mock) AnalyzeTemporal(ctx context.Context, paths []string) (*TemporalResult, error) {
	m.record("AnalyzeTemporal")
	if m.AnalyzeTemporalFunc != nil {
		return m.AnalyzeTemporalFunc(ctx, paths)
	}
	return nil, ErrEmptyResponse
}

// record adds a call to the tracking list.
func (m *Mock) record(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, MockCall{Method: method, Time: time.Now()})
}

// Calls returns all recorded method calls.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of times a method was called.
func (m *Mock) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, c := range m.calls {
		if c.Method == method {
			count++
		}
	}
	return count
}

// Reset clears all recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}

// Verify Mock implements Analyzer at compile time.
var _ Analyzer = (*Mock)(nil)
