package batch

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"planet-renderer/internal/logging"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/postprocess"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/render"
	"planet-renderer/internal/scene"
	"planet-renderer/internal/shader"
)

// Config holds all shared resources for a batch run.
type Config struct {
	Scene      *scene.Scene
	Dispatcher *shader.Dispatcher
	Options    render.Options
	OutputDir  string
	Frames     int
	OrbitStep  float64 // camera yaw per frame, degrees
	Upscale    int
	Workers    int
}

// Result holds the outcome of rendering one frame.
type Result struct {
	Frame   int
	Image   string // path relative to OutputDir
	Yaw     float64
	Stats   render.Stats
	Success bool
	Error   string
}

// FrameName is the file name of frame i.
func FrameName(i int) string {
	return fmt.Sprintf("frame_%04d.webp", i)
}

// Run renders every frame of a camera orbit using a worker pool. Each worker
// owns its renderer and framebuffer; the scene is shared read-only.
func Run(cfg Config) []Result {
	total := cfg.Frames
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	log := logging.Logger()
	log.Info("batch started", "frames", total, "workers", cfg.Workers,
		"size", fmt.Sprintf("%dx%d", cfg.Options.Width, cfg.Options.Height))

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					log.Info("progress", "done", p, "total", total, "fps", float64(p)/elapsed)
				}
			}
		}
	}()

	// Worker pool
	frameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < max(cfg.Workers, 1); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r := render.New(cfg.Options, cfg.Dispatcher)
			fb := r.NewFrameBuffer()
			for idx := range frameChan {
				results[idx] = renderFrame(cfg, r, fb, idx)
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := 0; i < total; i++ {
		frameChan <- i
	}
	close(frameChan)

	wg.Wait()
	close(done)

	log.Info("batch finished", "frames", total, "elapsed", time.Since(start))
	return results
}

// FrameScene returns a shallow copy of s whose camera has orbited by
// frame×step degrees. Objects, skybox and noise stay shared.
func FrameScene(s *scene.Scene, frame int, step float64) *scene.Scene {
	fs := *s
	cam := *s.Camera
	cam.Orbit(mathutil.Deg2Rad(step*float64(frame)), 0)
	fs.Camera = &cam
	return &fs
}

func renderFrame(cfg Config, r *render.Renderer, fb *raster.FrameBuffer, idx int) Result {
	res := Result{Frame: idx, Image: FrameName(idx), Yaw: cfg.OrbitStep * float64(idx)}

	res.Stats = r.RenderFrame(fb, FrameScene(cfg.Scene, idx, cfg.OrbitStep), uint64(idx))
	img := postprocess.Upscale(fb.Image(), cfg.Upscale)

	if err := WriteImage(filepath.Join(cfg.OutputDir, res.Image), img); err != nil {
		logging.Logger().Warn("frame encode failed", "frame", idx, "err", err)
		res.Error = err.Error()
		return res
	}
	res.Success = true
	return res
}

// WriteImage encodes img as lossless WebP at path, creating parent directories.
func WriteImage(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("WebP encode: %w", err)
	}
	return f.Close()
}
