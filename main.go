package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/loaders"
	"github.com/hweiss/go-whitted-raytracer/pkg/renderer"
	"github.com/hweiss/go-whitted-raytracer/pkg/scene"
)

func main() {
	scenePath := flag.String("scene", "default", "Scene: 'default' or path to a YAML scene file")
	outPath := flag.String("out", "render.png", "Output image path (format from extension)")
	width := flag.Int("width", 0, "Output width (overrides the scene file)")
	height := flag.Int("height", 0, "Output height (overrides the scene file)")
	ssaa := flag.String("ssaa", "uniform:1", "Supersampling: 'uniform:N' or 'jitter:N'")
	depth := flag.Int("depth", 8, "Maximum shading recursion depth")
	workers := flag.Int("workers", 0, "Worker goroutines (0 = all CPUs)")
	seed := flag.Int64("seed", 42, "Base seed for stochastic sampling")
	scale := flag.Int("scale", 1, "Render at N times the resolution, then downscale")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		fmt.Println("Whitted Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		return
	}

	if err := run(*scenePath, *outPath, *width, *height, *ssaa, *depth, *workers, *seed, *scale); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath, outPath string, width, height int, ssaa string, depth, workers int, seed int64, scale int) error {
	if scale < 1 {
		return fmt.Errorf("scale must be at least 1, got %d", scale)
	}

	sampling, err := renderer.ParseSuperSampling(ssaa)
	if err != nil {
		return err
	}

	var (
		sc           *scene.Scene
		cameraConfig renderer.CameraConfig
	)

	if scenePath == "default" {
		fmt.Println("Using built-in default scene")
		sc = scene.NewDefaultScene()
		if width == 0 {
			width = 800
		}
		if height == 0 {
			height = 450
		}
		cameraConfig = renderer.CameraConfig{
			LookFrom:    core.NewVec3(0, 2, 4),
			LookAt:      core.NewVec3(0, 1, -3),
			Up:          core.NewVec3(0, 1, 0),
			VFov:        50,
			AspectRatio: float64(width) / float64(height),
		}
	} else {
		fmt.Printf("Loading scene %s\n", scenePath)
		loaded, config, img, err := loaders.LoadScene(scenePath)
		if err != nil {
			return err
		}
		sc = loaded
		cameraConfig = config
		if width == 0 {
			width = img.Width
		}
		if height == 0 {
			height = img.Height
		}
		cameraConfig.AspectRatio = float64(width) / float64(height)
	}

	if err := sc.Preprocess(); err != nil {
		return err
	}

	camera, err := renderer.NewCamera(cameraConfig)
	if err != nil {
		return err
	}

	r := renderer.NewRenderer(sc, camera, renderer.Config{
		Width:    width * scale,
		Height:   height * scale,
		MaxDepth: depth,
		Workers:  workers,
		Seed:     seed,
		Sampling: sampling,
	})

	fmt.Printf("Rendering %dx%d (%d primitives, %d samples/pixel)\n",
		width*scale, height*scale, sc.PrimitiveCount(), sampling.SamplesPerPixel())

	start := time.Now()
	fb, stats := r.Render()
	elapsed := time.Since(start)

	fmt.Printf("Render completed in %v (%d pixels, %d workers)\n", elapsed, stats.Pixels, stats.Workers)

	var img image.Image = fb.ToImage()
	if scale > 1 {
		img = resize.Resize(uint(width), uint(height), img, resize.Bilinear)
	}

	if err := imaging.Save(img, outPath); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}

	fmt.Printf("Saved %s\n", outPath)
	return nil
}
