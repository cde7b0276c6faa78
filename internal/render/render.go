// Package render drives one frame through the pipeline: clear, backdrop,
// per-object vertex stage, rasterization and shading into depth-tested
// writes, then the bloom pass.
package render

import (
	"fmt"
	"time"

	"planet-renderer/internal/color"
	"planet-renderer/internal/logging"
	"planet-renderer/internal/mathutil"
	"planet-renderer/internal/raster"
	"planet-renderer/internal/scene"
	"planet-renderer/internal/shader"
)

// Options are the per-run settings shared by every frame.
type Options struct {
	Width, Height     int
	BloomRadius       int
	BloomIntensity    float64
	EmissionIntensity float64
	Cull              raster.Cull
}

// DefaultOptions are 800×600 with bloom radius 2 at 0.5 and unit emission.
func DefaultOptions() Options {
	return Options{
		Width:             800,
		Height:            600,
		BloomRadius:       2,
		BloomIntensity:    0.5,
		EmissionIntensity: 1,
	}
}

// Stats summarises one frame.
type Stats struct {
	Objects   int
	Triangles int
	Fragments int
	Written   int // fragments that passed the depth test
	Stars     int
	Elapsed   time.Duration
}

// Renderer owns reusable per-frame scratch. It is not safe for concurrent
// use; run one Renderer per goroutine.
type Renderer struct {
	opts   Options
	raster *raster.Rasterizer
	shade  *shader.Dispatcher
	verts  []raster.Vertex
}

func New(opts Options, d *shader.Dispatcher) *Renderer {
	r := raster.NewRasterizer(opts.Width, opts.Height)
	r.Cull = opts.Cull
	return &Renderer{opts: opts, raster: r, shade: d}
}

// Options returns the settings the renderer was built with.
func (r *Renderer) Options() Options { return r.opts }

// NewFrameBuffer allocates a buffer matching the renderer's size.
func (r *Renderer) NewFrameBuffer() *raster.FrameBuffer {
	return raster.NewFrameBuffer(r.opts.Width, r.opts.Height)
}

// Validate checks that every object in s can be shaded with the injected
// samplers.
func (r *Renderer) Validate(s *scene.Scene) error {
	for _, o := range s.Objects {
		if err := r.shade.Validate(o.Surface); err != nil {
			return fmt.Errorf("render: object %q: %w", o.Name, err)
		}
	}
	return nil
}

// RenderFrame draws s at the given frame into fb, which must match the
// renderer's size.
func (r *Renderer) RenderFrame(fb *raster.FrameBuffer, s *scene.Scene, frame uint64) Stats {
	start := time.Now()
	var st Stats

	fb.SetBackground(s.Background)
	fb.Clear()

	view := s.Camera.View()
	if s.Skybox != nil {
		proj := s.Projection.Matrix(r.opts.Width, r.opts.Height)
		vp := mathutil.Viewport(float64(r.opts.Width), float64(r.opts.Height))
		st.Stars = s.Skybox.Render(fb, view, proj, vp)
	}

	for _, o := range s.Objects {
		u := s.Uniforms(o, frame, r.opts.Width, r.opts.Height, r.opts.EmissionIntensity)
		r.verts = raster.TransformVertices(r.verts, o.Vertices, &u)
		st.Objects++
		st.Triangles += len(r.verts) / 3

		st.Fragments += r.raster.Rasterize(r.verts, func(f *raster.Fragment) {
			base, emission, ok := r.shade.Shade(f, &u, o.Surface)
			if !ok {
				emission = color.Black
			}
			x, y := f.Pixel()
			if fb.WriteShaded(x, y, f.Depth, base, emission) {
				st.Written++
			}
		})
	}

	fb.Bloom(r.opts.BloomRadius, r.opts.BloomIntensity)
	st.Elapsed = time.Since(start)

	logging.Logger().Debug("frame rendered",
		"frame", frame,
		"objects", st.Objects,
		"triangles", st.Triangles,
		"fragments", st.Fragments,
		"written", st.Written,
		"stars", st.Stars,
		"elapsed", st.Elapsed,
	)
	return st
}
