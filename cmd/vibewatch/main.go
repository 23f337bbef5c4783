// vibewatch - capture frames from a camera or screen and check whether
// anyone is vibing to the music.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vibewatch/vibewatch/internal/config"
	"github.com/vibewatch/vibewatch/internal/log"
	"github.com/vibewatch/vibewatch/pkg/capture"
	"github.com/vibewatch/vibewatch/pkg/detect"
	"github.com/vibewatch/vibewatch/pkg/vibe"
)

func main() {
	var (
		duration   = flag.Int("duration", config.DefaultDuration, "recording duration in seconds")
		interval   = flag.Float64("interval", config.DefaultInterval, "time between captures in seconds")
		outputDir  = flag.String("output-dir", config.DefaultOutputDir, "directory to save images")
		camera     = flag.Int("camera", capture.AutoIndex, "camera device index (-1 = auto-detect)")
		screen     = flag.Bool("screen", false, "capture the primary display instead of a camera")
		synthetic  = flag.Bool("synthetic", false, "use the synthetic source (no hardware)")
		noTemporal = flag.Bool("no-temporal", false, "analyze frames individually instead of comparing them over time")
		apiKey     = flag.String("api-key", "", "Anthropic API key (or set ANTHROPIC_API_KEY)")
		logLevel   = flag.String("log-level", config.LogLevel("info"), "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log.Init(*logLevel)

	key := config.APIKeyRequired(*apiKey)

	client, err := vibe.NewClient(
		vibe.WithAPIKey(key),
		vibe.WithLogger(log.L()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	mode := detect.ModeTemporal
	if *noTemporal {
		mode = detect.ModeIndependent
	}

	// Ctrl+C releases the device and exits after the current tick.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	fmt.Println("🎵 VIBE DETECTOR - Checking if you're vibing to the music! 🎵")
	fmt.Println()

	detector := detect.New(client)
	detector.Logger = log.L()

	report, err := detector.Run(ctx, detect.Options{
		OutputDir:      *outputDir,
		Duration:       time.Duration(float64(*duration) * float64(time.Second)),
		Interval:       time.Duration(*interval * float64(time.Second)),
		DeviceIndex:    *camera,
		ForceSynthetic: *synthetic,
		Screen:         *screen,
		Mode:           mode,
	})
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled):
			fmt.Println("\nVibe detection interrupted")
			os.Exit(0)
		case errors.Is(err, capture.ErrEmptySession):
			fmt.Fprintln(os.Stderr, "Error: no images were captured")
			os.Exit(2)
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	printReport(report)

	if report.IsVibing {
		fmt.Println("\n🎉 Keep vibing! 🎉")
	} else {
		fmt.Println("\n💡 Tip: Try moving more energetically to the music!")
	}
}

func printReport(r *detect.Report) {
	fmt.Println("============================================================")
	fmt.Println("VIBE ANALYSIS")
	fmt.Println("============================================================")
	fmt.Printf("Images analyzed: %d\n", len(r.Artifacts))
	if r.Fallback {
		fmt.Println("Source: synthetic (no camera found)")
	}

	switch {
	case r.Temporal != nil:
		t := r.Temporal
		fmt.Printf("Vibing detected: %s\n", yesNo(t.IsVibing))
		fmt.Printf("Confidence: %d%%\n", t.Confidence)
		fmt.Printf("Movement detected: %s\n", yesNo(t.MovementDetected))
		fmt.Printf("Energy level: %s\n", t.EnergyLevel)
		fmt.Printf("\nAnalysis: %s\n", t.Description)
	case r.Summary != nil:
		s := r.Summary
		fmt.Printf("Images showing vibing: %d\n", s.VibingImages)
		fmt.Printf("Vibing percentage: %.1f%%\n", s.VibingPercentage)
		fmt.Printf("Average confidence: %.1f%%\n", s.AverageConfidence)
	}

	if r.IsVibing {
		fmt.Println("\n🎉 PERSON IS VIBING!")
	} else {
		fmt.Println("\n😐 Not really vibing")
	}
	fmt.Println("============================================================")
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}
