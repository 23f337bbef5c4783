package capture

import (
	"fmt"
	"time"

	"gocv.io/x/gocv"
)

// Backend selects the OS-level capture API used to open a device.
// Semantics are backend-specific and opaque to the Resolver.
type Backend int

// Known capture backends.
const (
	BackendAny Backend = iota
	BackendV4L2
	BackendAVFoundation
	BackendDirectShow
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendV4L2:
		return "v4l2"
	case BackendAVFoundation:
		return "avfoundation"
	case BackendDirectShow:
		return "dshow"
	default:
		return "any"
	}
}

// api maps the backend to the gocv VideoCapture API identifier.
func (b Backend) api() gocv.VideoCaptureAPI {
	switch b {
	case BackendV4L2:
		return gocv.VideoCaptureV4L2
	case BackendAVFoundation:
		return gocv.VideoCaptureAVFoundation
	case BackendDirectShow:
		return gocv.VideoCaptureDshow
	default:
		return gocv.VideoCaptureAny
	}
}

// DefaultBackends returns the candidate backends in probe order.
// BackendAny lets the driver pick; the platform-specific backends follow
// for devices that misreport through the automatic selection.
func DefaultBackends() []Backend {
	return []Backend{BackendAny, BackendV4L2, BackendAVFoundation, BackendDirectShow}
}

// Device is a real camera opened through gocv. Frames are encoded as JPEG.
type Device struct {
	index   int
	backend Backend
	config  Config
	cam     *gocv.VideoCapture
}

// NewDevice creates a camera source for the given index and backend.
// The device is not opened until Open is called.
func NewDevice(index int, backend Backend, cfg Config) *Device {
	return &Device{index: index, backend: backend, config: cfg}
}

// Open acquires the camera. No-op if already open.
func (d *Device) Open() error {
	if d.cam != nil {
		return nil
	}

	cam, err := gocv.OpenVideoCaptureWithAPI(d.index, d.backend.api())
	if err != nil {
		return &DeviceError{Index: d.index, Backend: d.backend, Stage: StageOpen, Err: err}
	}
	if !cam.IsOpened() {
		cam.Close()
		return &DeviceError{Index: d.index, Backend: d.backend, Stage: StageOpen,
			Err: fmt.Errorf("device reports closed")}
	}

	cam.Set(gocv.VideoCaptureFrameWidth, float64(d.config.Width))
	cam.Set(gocv.VideoCaptureFrameHeight, float64(d.config.Height))

	// Let auto-exposure settle before the first read.
	if d.config.WarmUp > 0 {
		time.Sleep(d.config.WarmUp)
	}

	d.cam = cam
	return nil
}

// IsReady reports whether the camera is open.
func (d *Device) IsReady() bool {
	return d.cam != nil && d.cam.IsOpened()
}

// ReadFrame captures one frame and encodes it as JPEG.
func (d *Device) ReadFrame() (Frame, error) {
	if d.cam == nil {
		return Frame{}, ErrSourceClosed
	}

	mat := gocv.NewMat()
	defer mat.Close()

	if ok := d.cam.Read(&mat); !ok || mat.Empty() {
		return Frame{}, &DeviceError{Index: d.index, Backend: d.backend, Stage: StageRead,
			Err: fmt.Errorf("no frame delivered")}
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, mat,
		[]int{gocv.IMWriteJpegQuality, d.config.Quality})
	if err != nil {
		return Frame{}, &DeviceError{Index: d.index, Backend: d.backend, Stage: StageRead,
			Err: fmt.Errorf("encode frame: %w", err)}
	}
	defer buf.Close()

	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())

	return Frame{
		Data:   data,
		Width:  mat.Cols(),
		Height: mat.Rows(),
		Format: FormatJPEG,
	}, nil
}

// Close releases the camera. Idempotent and safe after a failed Open.
func (d *Device) Close() error {
	if d.cam == nil {
		return nil
	}
	cam := d.cam
	d.cam = nil
	return cam.Close()
}

// Index returns the device index.
func (d *Device) Index() int {
	return d.index
}

// Backend returns the backend the device was opened with.
func (d *Device) Backend() Backend {
	return d.backend
}

// Verify Device implements Source at compile time.
var _ Source = (*Device)(nil)
