// Package renderer drives the per-pixel render loop: camera ray generation,
// supersampling, and the parallel worker pool writing the frame buffer.
package renderer

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/integrator"
	"github.com/hweiss/go-whitted-raytracer/pkg/scene"
)

// Config contains the render configuration
type Config struct {
	Width    int
	Height   int
	MaxDepth int           // Maximum shading recursion depth
	Workers  int           // 0 selects runtime.NumCPU()
	Seed     int64         // Base seed for all stochastic sampling
	Sampling SuperSampling // Per-pixel supersampling strategy
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:    800,
		Height:   450,
		MaxDepth: 8,
		Seed:     42,
		Sampling: NewUniformSampling(1),
	}
}

// Renderer renders a scene through a camera into a frame buffer. Rows are
// distributed over a pool of workers; each row is a disjoint region of the
// buffer, so workers never contend and the buffer needs no locking. The
// scene and camera are shared read-only.
type Renderer struct {
	config     Config
	camera     *Camera
	scene      *scene.Scene
	integrator *integrator.Whitted
}

// RenderStats summarizes a completed render
type RenderStats struct {
	Pixels          int
	SamplesPerPixel int
	Workers         int
}

// NewRenderer creates a renderer for the given scene and camera
func NewRenderer(sc *scene.Scene, camera *Camera, config Config) *Renderer {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Sampling.Resolution < 1 {
		config.Sampling = NewUniformSampling(1)
	}
	return &Renderer{
		config:     config,
		camera:     camera,
		scene:      sc,
		integrator: integrator.NewWhitted(config.MaxDepth),
	}
}

// Render traces every pixel and returns the finished frame buffer along with
// render statistics. The result is a pure function of scene, camera and
// config: each row draws its samples from an RNG seeded by Seed+row, so the
// output is byte-identical no matter how many workers run or how the
// scheduler interleaves them.
func (r *Renderer) Render() (*FrameBuffer, RenderStats) {
	fb := NewFrameBuffer(r.config.Width, r.config.Height)

	rows := make(chan int, r.config.Height)
	for j := 0; j < r.config.Height; j++ {
		rows <- j
	}
	close(rows)

	var wg sync.WaitGroup
	for w := 0; w < r.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range rows {
				r.renderRow(fb, j)
			}
		}()
	}
	wg.Wait()

	return fb, RenderStats{
		Pixels:          r.config.Width * r.config.Height,
		SamplesPerPixel: r.config.Sampling.SamplesPerPixel(),
		Workers:         r.config.Workers,
	}
}

// renderRow renders one full row of pixels into the frame buffer
func (r *Renderer) renderRow(fb *FrameBuffer, j int) {
	random := rand.New(rand.NewSource(r.config.Seed + int64(j)))
	width := float64(r.config.Width)
	height := float64(r.config.Height)

	offsets := make([][2]float64, 0, r.config.Sampling.SamplesPerPixel())
	for i := 0; i < r.config.Width; i++ {
		offsets = r.config.Sampling.Offsets(random, offsets[:0])

		accum := core.Vec3{}
		for _, offset := range offsets {
			s := (float64(i) + offset[0]) / width
			t := 1 - (float64(j)+offset[1])/height
			ray := r.camera.GetRay(s, t, random)
			accum = accum.Add(r.integrator.Trace(ray, r.scene))
		}

		fb.Set(i, j, accum.Multiply(1/float64(len(offsets))))
	}
}
