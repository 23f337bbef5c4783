package capture

import (
	"sync"
	"time"
)

// Mock implements Source for testing.
type Mock struct {
	// OpenFunc is called when Open is invoked.
	OpenFunc func() error

	// ReadFrameFunc is called when ReadFrame is invoked.
	ReadFrameFunc func() (Frame, error)

	// CloseFunc is called when Close is invoked.
	CloseFunc func() error

	mu    sync.Mutex
	open  bool
	calls []MockCall
}

// MockCall records a method invocation.
type MockCall struct {
	Method string
	Time   time.Time
}

// minimal valid JPEG marker sequence, enough for code that only moves bytes
var mockJPEG = []byte{0xff, 0xd8, 0xff, 0xd9}

// NewMock creates a mock source with sensible defaults: Open succeeds and
// ReadFrame returns a tiny JPEG frame.
func NewMock() *Mock {
	return &Mock{
		ReadFrameFunc: func() (Frame, error) {
			return Frame{Data: mockJPEG, Width: 640, Height: 480, Format: FormatJPEG}, nil
		},
	}
}

// WithReadError returns a mock whose reads always fail with err.
func WithReadError(err error) *Mock {
	return &Mock{
		ReadFrameFunc: func() (Frame, error) {
			return Frame{}, err
		},
	}
}

// Open calls OpenFunc and records the call.
func (m *Mock) Open() error {
	m.record("Open")
	if m.OpenFunc != nil {
		if err := m.OpenFunc(); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.open = true
	m.mu.Unlock()
	return nil
}

// IsReady reports whether Open has succeeded.
func (m *Mock) IsReady() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// ReadFrame calls ReadFrameFunc and records the call.
func (m *Mock) ReadFrame() (Frame, error) {
	m.record("ReadFrame")
	if m.ReadFrameFunc != nil {
		return m.ReadFrameFunc()
	}
	return Frame{}, ErrSourceClosed
}

// Close calls CloseFunc and records the call. Idempotent by default.
func (m *Mock) Close() error {
	m.record("Close")
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
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

// Verify Mock implements Source at compile time.
var _ Source = (*Mock)(nil)
