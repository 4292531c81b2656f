// Command tile3dbench drives a tileset headlessly against a local
// manifest and directory of content files, printing frame-by-frame
// cache and request statistics. It is meant for profiling traversal and
// cache behavior against a real dataset without standing up a renderer.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	tile3d "github.com/tile3d/streamer"
	"github.com/tile3d/streamer/config"
	"github.com/tile3d/streamer/content"
	"github.com/tile3d/streamer/rendergpu"
)

type fileFetcher struct {
	root string
}

func (f fileFetcher) Fetch(_ context.Context, uri string) ([]byte, error) {
	return os.ReadFile(filepath.Join(f.root, filepath.FromSlash(uri)))
}

func main() {
	var (
		manifestPath = flag.String("manifest", "", "path to the root tileset.json")
		configPath   = flag.String("config", "", "optional TOML tileset config")
		frames       = flag.Int("frames", 120, "number of Update(PassRender) calls to run")
		verbose      = flag.Bool("v", false, "log tile3d's internal Debug/Info/Warn output to stderr")
		fovY         = flag.Float64("fovy", 1.0, "camera vertical field of view, radians")
		width        = flag.Int("width", 1920, "viewport width in pixels")
		height       = flag.Int("height", 1080, "viewport height in pixels")
		gpu          = flag.Bool("gpu", false, "select a real GPU adapter and log its identity plus per-pass snapshot stats")
		listFormats  = flag.Bool("list-formats", false, "print registered content types and exit")
	)
	flag.Parse()

	if *listFormats {
		for _, name := range content.Available() {
			fmt.Println(name)
		}
		return
	}

	if *manifestPath == "" {
		fmt.Fprintln(os.Stderr, "tile3dbench: -manifest is required")
		os.Exit(2)
	}

	if *verbose {
		tile3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	options := tile3d.DefaultOptions()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("tile3dbench: load config: %v", err)
		}
		options = loaded
	}

	data, err := os.ReadFile(*manifestPath)
	if err != nil {
		log.Fatalf("tile3dbench: read manifest: %v", err)
	}

	contentLoader := content.Default()
	if contentLoader == nil {
		log.Fatal("tile3dbench: no content loader registered (see -list-formats)")
	}

	manifestDir := filepath.Dir(*manifestPath)
	loadOpts := []tile3d.Option{
		func(o *tile3d.Options) { *o = options },
		tile3d.WithFetcher(fileFetcher{root: manifestDir}),
		tile3d.WithContentLoader(contentLoader),
	}
	if *gpu {
		gpuRenderer, err := rendergpu.New(*verbose)
		if err != nil {
			log.Fatalf("tile3dbench: select GPU adapter: %v", err)
		}
		log.Printf("tile3dbench: bound renderer to %s", gpuRenderer.AdapterInfo())
		loadOpts = append(loadOpts, tile3d.WithRenderer(gpuRenderer))
	}

	ts, err := tile3d.Load(data, loadOpts...)
	if err != nil {
		log.Fatalf("tile3dbench: load tileset: %v", err)
	}
	defer ts.Close()

	var loaded, failed int
	ts.SetHooks(tile3d.Hooks{
		OnTileLoad:   func(tile3d.TileID) { loaded++ },
		OnTileFailed: func(id tile3d.TileID, uri, message string) { failed++; log.Printf("tile %d (%s): %s", id, uri, message) },
		OnInitialTilesLoaded: func() {
			log.Println("tile3dbench: initial tiles loaded")
		},
	})
	ts.SetViewport(tile3d.Viewport{Width: *width, Height: *height})

	start := time.Now()
	for frame := 0; frame < *frames; frame++ {
		ts.SetCamera(orbitCamera(frame, *fovY))
		ready, err := ts.Update(tile3d.PassRender)
		if err != nil {
			log.Fatalf("tile3dbench: update: %v", err)
		}
		if frame%30 == 0 || ready {
			stats := ts.CacheStats()
			sched := ts.SchedulerStats()
			fmt.Printf("frame %4d: selected=%3d loaded=%-4d failed=%-3d cache=%d/%d workers=%d inflight=%d queued=%d ready=%v\n",
				frame, len(ts.Snapshot()), loaded, failed, stats.Size, stats.Budget, sched.Workers, sched.InFlight, sched.Queued, ready)
		}
	}
	fmt.Printf("tile3dbench: %d frames in %s\n", *frames, time.Since(start))
}

// orbitCamera sweeps a fixed-radius camera around the origin so every
// frame sees a different slice of the tileset, exercising cancellation
// and re-request instead of settling onto one static view.
func orbitCamera(frame int, fovY float64) tile3d.Camera {
	const radius = 500.0
	angle := float64(frame) * 0.05
	pos := tile3d.V3(radius*math.Cos(angle), 200, radius*math.Sin(angle))
	dir := pos.Mul(-1).Normalize()
	return tile3d.Camera{
		Position:  pos,
		Direction: dir,
		Up:        tile3d.V3(0, 1, 0),
		FovY:      fovY,
		Moved:     true,
		Speed:     radius * 0.05,
	}
}

