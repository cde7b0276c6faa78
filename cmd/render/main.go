package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"planet-renderer/internal/batch"
	"planet-renderer/internal/config"
	"planet-renderer/internal/logging"
	"planet-renderer/internal/postprocess"
	"planet-renderer/internal/render"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config file (.json or .toml)")
	sceneFile := flag.String("scene", "", "Scene YAML file (default: built-in system)")
	frames := flag.Int("frames", 0, "Number of orbit frames (default: 120)")
	width := flag.Int("width", 0, "Frame width (default: 800)")
	height := flag.Int("height", 0, "Frame height (default: 600)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	baseDir := flag.String("base", "", "Base directory for relative paths (default: cwd)")
	outputDir := flag.String("output", "", "Output directory (default: frames)")
	thumb := flag.Int("thumb", 0, "Also write a thumbnail of frame 0 at this size")
	verbose := flag.Bool("v", false, "Log progress and per-frame diagnostics to stderr")

	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		BaseDir:   *baseDir,
		SceneFile: *sceneFile,
		OutputDir: *outputDir,
		Width:     *width,
		Height:    *height,
		Frames:    *frames,
		Workers:   *workers,
	})

	setup, err := render.Prepare(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sceneName := cfg.SceneFile
	if sceneName == "" {
		sceneName = "(built-in)"
	}
	fmt.Printf("Software planet renderer → WebP\n")
	fmt.Printf("Scene: %s, objects: %d, textures indexed: %d\n", sceneName, len(setup.Scene.Objects), setup.Textures)
	fmt.Printf("Frames: %d at %dx%d (x%d), Workers: %d\n", cfg.Frames, cfg.Width, cfg.Height, cfg.Upscale, cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(batch.Config{
		Scene:      setup.Scene,
		Dispatcher: setup.Dispatcher,
		Options:    setup.Options,
		OutputDir:  cfg.OutputDir,
		Frames:     cfg.Frames,
		OrbitStep:  cfg.OrbitStep,
		Upscale:    cfg.Upscale,
		Workers:    cfg.Workers,
	})

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs (%.1f frames/sec)\n", elapsed.Seconds(), float64(len(results))/elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var fragments int
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
			fragments += r.Stats.Fragments
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d, fragments: %d\n", success, len(results), fragments)

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := min(len(errors), 20)
		for _, e := range errors[:limit] {
			fmt.Printf("  frame %d: %s\n", e.Frame, e.Error)
		}
	}

	if *thumb > 0 {
		r := render.New(setup.Options, setup.Dispatcher)
		fb := r.NewFrameBuffer()
		r.RenderFrame(fb, batch.FrameScene(setup.Scene, 0, cfg.OrbitStep), 0)
		thumbPath := filepath.Join(cfg.OutputDir, "thumbnail.webp")
		if err := batch.WriteImage(thumbPath, postprocess.Thumbnail(fb.Image(), *thumb)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: thumbnail write failed: %v\n", err)
		} else {
			fmt.Printf("Thumbnail: %s\n", thumbPath)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	manifest := batch.BuildManifest(cfg.Width*cfg.Upscale, cfg.Height*cfg.Upscale, results)
	if err := batch.WriteManifest(manifestPath, manifest); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
