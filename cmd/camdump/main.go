// camdump - capture a fixed number of frames and dump them as timestamped PNGs
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/teslashibe/camdump/internal/config"
	"github.com/teslashibe/camdump/internal/log"
	"github.com/teslashibe/camdump/pkg/camera"
	"github.com/teslashibe/camdump/pkg/dump"
	"github.com/teslashibe/camdump/pkg/imgio"
)

func main() {
	def := config.Defaults()

	// Command line flags
	device := flag.Int("device", def.Device, "Camera device index")
	preset := flag.String("preset", "", "Resolution preset (overrides -width/-height): "+fmt.Sprint(camera.PresetNames()))
	width := flag.Int("width", def.Width, "Frame width")
	height := flag.Int("height", def.Height, "Frame height")
	frames := flag.Int("frames", def.Frames, "Number of frames to capture")
	outDir := flag.String("out", def.OutDir, "Output directory (or set CAMDUMP_OUT env)")
	direct := flag.Bool("direct", def.Direct, "Write frames while capturing instead of buffering")
	preview := flag.Bool("preview", def.Preview, "Show a preview window; any key stops capture")
	synthetic := flag.Bool("synthetic", def.Synthetic, "Use a generated test pattern instead of a camera")
	logLevel := flag.String("log-level", def.LogLevel, "Log level: debug, info, warn, error")
	flag.Parse()

	log.Init(*logLevel)

	camCfg := camera.DefaultConfig()
	camCfg.DeviceID = *device
	camCfg.Width = *width
	camCfg.Height = *height
	if *preset != "" {
		p := camera.GetPreset(*preset)
		if p == nil {
			log.Error("unknown preset", "preset", *preset, "available", camera.PresetNames())
			os.Exit(1)
		}
		camCfg.Width, camCfg.Height = p.Width, p.Height
	}

	fmt.Println("📷 camdump")
	fmt.Printf("   Source: %s\n", sourceName(*synthetic, camCfg.DeviceID))
	fmt.Printf("   w:%d, h:%d, frames:%d\n", camCfg.Width, camCfg.Height, *frames)
	fmt.Printf("   Output: %s\n", *outDir)
	fmt.Println()

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Error("cannot create output directory", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	// Handle Ctrl+C: stop capturing, still write what we have
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\n⏹️  Stopping capture...")
		cancel()
	}()

	opts := []dump.Option{
		dump.WithResolution(camCfg.Width, camCfg.Height),
		dump.WithCapacity(*frames),
		dump.WithDir(*outDir),
		dump.WithLogger(log.L()),
	}
	if *direct {
		opts = append(opts, dump.WithMode(dump.ModeDirect))
	}

	var (
		src  dump.Source
		sink dump.Sink
	)
	if *synthetic {
		src, sink = imgio.NewPatternSource(), imgio.NewPNGWriter()
	} else {
		src, sink = camera.NewSession(camCfg), camera.NewMatWriter()
		if *preview {
			win := camera.NewPreview("frame")
			defer win.Close()
			opts = append(opts, dump.WithPreview(win))
		}
	}

	d, err := dump.New(src, sink, opts...)
	if err != nil {
		log.Error("invalid settings", "error", err)
		os.Exit(1)
	}

	report, err := d.Run(ctx)
	if err != nil {
		log.Error("capture failed", "run_id", report.RunID, "error", err)
		os.Exit(1)
	}

	fmt.Printf("\n✅ Wrote %d of %d frames to %s\n", report.Written, report.Captured, *outDir)
}

func sourceName(synthetic bool, device int) string {
	if synthetic {
		return "test pattern"
	}
	return fmt.Sprintf("camera %d", device)
}
