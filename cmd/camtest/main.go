// camtest - probe capture devices and verify frames can be read.
//
// Walks the candidate device indices and backends the same way a recording
// session would, saves a test frame from whatever resolves, and can exercise
// the synthetic source with -mock when no hardware is around.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/vibewatch/vibewatch/internal/log"
	"github.com/vibewatch/vibewatch/pkg/capture"
)

func main() {
	var (
		mock     = flag.Bool("mock", false, "test the synthetic source only (no hardware required)")
		camera   = flag.Int("camera", capture.AutoIndex, "explicit camera index to try first")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log.Init(*logLevel)

	fmt.Println("==================================================")
	fmt.Println("CAPTURE DEVICE TEST")
	fmt.Println("==================================================")

	if *mock {
		fmt.Println("Running in MOCK mode (no camera required)")
		testSynthetic()
		return
	}

	listVideoDevices()

	resolver := capture.NewResolver()
	resolver.Logger = log.L()

	res := resolver.Resolve(*camera, false)
	defer res.Source.Close()

	if res.Fallback {
		fmt.Println("✗ No working camera found, used synthetic fallback")
		testSynthetic()
		fmt.Println("\nTIP: run with -mock to skip the hardware probe")
		os.Exit(1)
	}

	fmt.Printf("✓ Camera opened: index %d, backend %s\n", res.Index, res.Backend)

	frame, err := res.Source.ReadFrame()
	if err != nil {
		fmt.Printf("✗ Failed to capture frame: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ Frame captured: %dx%d, %d bytes\n", frame.Width, frame.Height, len(frame.Data))

	path := saveTestFrame(frame, "test_camera_capture")
	fmt.Printf("✓ Test image saved: %s\n", path)
}

// testSynthetic verifies the hardware-free source end to end.
func testSynthetic() {
	src := capture.NewSynthetic(capture.DefaultConfig())
	src.Open()
	defer src.Close()

	frame, err := src.ReadFrame()
	if err != nil {
		fmt.Printf("✗ Synthetic source failed: %v\n", err)
		os.Exit(1)
	}

	path := saveTestFrame(frame, "mock_camera_test")
	fmt.Println("✓ Synthetic source test successful!")
	fmt.Printf("✓ Test image created: %s (%dx%d)\n", path, frame.Width, frame.Height)
}

// saveTestFrame writes one frame to the working directory.
func saveTestFrame(frame capture.Frame, name string) string {
	path := fmt.Sprintf("%s.%s", name, frame.Format)
	if err := os.WriteFile(path, frame.Data, 0o644); err != nil {
		fmt.Printf("✗ Failed to save %s: %v\n", path, err)
		os.Exit(1)
	}
	return path
}

// listVideoDevices prints /dev/video* entries on Linux. Informational only;
// the probe is what decides whether a device actually works.
func listVideoDevices() {
	entries, err := os.ReadDir("/dev")
	if err != nil {
		fmt.Println("Cannot check /dev directory (not Linux?)")
		return
	}

	var devices []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), "video") {
			devices = append(devices, "/dev/"+e.Name())
		}
	}
	sort.Strings(devices)

	if len(devices) == 0 {
		fmt.Println("No /dev/video* devices found")
		return
	}
	fmt.Println("Found video devices:")
	for _, d := range devices {
		fmt.Printf("  %s\n", d)
	}
}
