package capture

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// timestampLayout is the second-resolution stamp embedded in filenames.
const timestampLayout = "20060102_150405"

// Sink persists frames into a flat output directory with deterministic,
// collision-free names: "<prefix>_<NNN>_<YYYYMMDD_HHMMSS>.<ext>". The
// zero-padded sequence number disambiguates captures within one second.
type Sink struct {
	Dir    string
	Prefix string
}

// NewSink creates a sink for the given directory and filename prefix.
func NewSink(dir, prefix string) *Sink {
	return &Sink{Dir: dir, Prefix: prefix}
}

// Setup creates the output directory if absent. An existing directory is
// reused as-is; pre-existing files are never removed.
func (s *Sink) Setup() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return &PersistError{Path: s.Dir, Err: err}
	}
	return nil
}

// Save writes one frame under the sequence number and timestamp, returning
// the file path.
func (s *Sink) Save(frame Frame, seq int, ts time.Time) (string, error) {
	name := fmt.Sprintf("%s_%03d_%s.%s", s.Prefix, seq, ts.Format(timestampLayout), frame.Format)
	path := filepath.Join(s.Dir, name)

	if err := os.WriteFile(path, frame.Data, 0o644); err != nil {
		return "", &PersistError{Path: path, Err: err}
	}
	return path, nil
}
