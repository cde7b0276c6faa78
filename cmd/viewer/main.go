// Command viewer shows the scene in a window and lets the camera be flown
// interactively.
//
//	arrows     orbit the camera
//	W / S      zoom in / out (mouse wheel too)
//	A / D      pan the view
//	O          toggle orbit paths
//	Space      pause animation
//
// With -watch the scene file is reloaded whenever it is saved.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"planet-renderer/internal/color"
	"planet-renderer/internal/config"
	"planet-renderer/internal/logging"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/render"
	"planet-renderer/internal/scene"
)

const (
	orbitSpeed = 0.03
	zoomSpeed  = 0.2
	panSpeed   = 1.0
)

var orbitColor = color.New(60, 60, 90)

type viewer struct {
	scene    *scene.Scene
	renderer *render.Renderer
	fb       *raster.FrameBuffer
	pix      []byte

	frame  uint64
	paused bool
	orbits bool
	stats  render.Stats

	reload <-chan *render.Setup
}

// swap installs a freshly prepared scene, keeping the current camera.
func (v *viewer) swap(setup *render.Setup) {
	setup.Scene.Camera = v.scene.Camera
	setup.Options.Width, setup.Options.Height = v.fb.Width, v.fb.Height
	v.scene = setup.Scene
	v.renderer = render.New(setup.Options, setup.Dispatcher)
	v.scene.Camera.HasChanged = true
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}
	select {
	case setup := <-v.reload:
		v.swap(setup)
	default:
	}
	cam := v.scene.Camera

	var yaw, pitch float64
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		yaw -= orbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		yaw += orbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		pitch -= orbitSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		pitch += orbitSpeed
	}
	if yaw != 0 || pitch != 0 {
		cam.Orbit(yaw, pitch)
	}

	_, wheel := ebiten.Wheel()
	zoom := wheel * zoomSpeed
	if ebiten.IsKeyPressed(ebiten.KeyW) {
		zoom += zoomSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		zoom -= zoomSpeed
	}
	if zoom != 0 {
		cam.Zoom(zoom)
	}

	if ebiten.IsKeyPressed(ebiten.KeyA) {
		cam.MoveCenter(mathutil.Vec3{-panSpeed, 0, 0})
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		cam.MoveCenter(mathutil.Vec3{panSpeed, 0, 0})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		v.orbits = !v.orbits
		cam.HasChanged = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
	}
	if !v.paused {
		v.frame++
		cam.HasChanged = true
	}

	if cam.HasChanged {
		v.stats = v.renderer.RenderFrame(v.fb, v.scene, v.frame)
		if v.orbits {
			render.DrawOrbits(v.fb, v.scene, orbitColor)
		}
		v.fb.CopyRGBA(v.pix)
		cam.HasChanged = false
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.WritePixels(v.pix)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS %.0f  tris %d  frags %d  %s",
		ebiten.ActualFPS(), v.stats.Triangles, v.stats.Fragments, v.stats.Elapsed.Round(100*time.Microsecond)))
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return v.fb.Width, v.fb.Height
}

func main() {
	configFile := flag.String("config", "", "Path to config file (.json or .toml)")
	sceneFile := flag.String("scene", "", "Scene YAML file (default: built-in system)")
	width := flag.Int("width", 0, "Window width (default: 800)")
	height := flag.Int("height", 0, "Window height (default: 600)")
	baseDir := flag.String("base", "", "Base directory for relative paths (default: cwd)")
	watch := flag.Bool("watch", false, "Reload the scene file when it changes")
	verbose := flag.Bool("v", false, "Log per-frame diagnostics to stderr")
	flag.Parse()

	if *verbose {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	var cfg config.Config
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{BaseDir: *baseDir, SceneFile: *sceneFile, Width: *width, Height: *height})

	setup, err := render.Prepare(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	r := render.New(setup.Options, setup.Dispatcher)
	fb := r.NewFrameBuffer()
	v := &viewer{
		scene:    setup.Scene,
		renderer: r,
		fb:       fb,
		pix:      make([]byte, fb.Width*fb.Height*4),
	}
	v.scene.Camera.HasChanged = true

	if *watch && cfg.SceneFile != "" {
		reload, stop, err := watchScene(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", cfg.SceneFile, err)
		} else {
			defer stop()
			v.reload = reload
		}
	}

	ebiten.SetWindowSize(fb.Width, fb.Height)
	ebiten.SetWindowTitle("planet-renderer")
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
