package renderer

import (
	"image"
	"image/color"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
)

// FrameBuffer is a width×height grid of linear color samples. The renderer
// writes each pixel exactly once; the buffer is read out at the end via
// ToImage.
type FrameBuffer struct {
	width, height int
	pixels        []core.Vec3
}

// NewFrameBuffer creates an empty frame buffer
func NewFrameBuffer(width, height int) *FrameBuffer {
	return &FrameBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Width returns the buffer width in pixels
func (fb *FrameBuffer) Width() int { return fb.width }

// Height returns the buffer height in pixels
func (fb *FrameBuffer) Height() int { return fb.height }

// Set stores the color for pixel (x, y), with y=0 at the top
func (fb *FrameBuffer) Set(x, y int, c core.Vec3) {
	fb.pixels[y*fb.width+x] = c
}

// At returns the stored color for pixel (x, y)
func (fb *FrameBuffer) At(x, y int) core.Vec3 {
	return fb.pixels[y*fb.width+x]
}

// Equal reports whether two buffers hold byte-identical pixels
func (fb *FrameBuffer) Equal(other *FrameBuffer) bool {
	if fb.width != other.width || fb.height != other.height {
		return false
	}
	for i := range fb.pixels {
		if fb.pixels[i] != other.pixels[i] {
			return false
		}
	}
	return true
}

// ToImage converts the linear buffer into an 8-bit image, applying gamma 2.0
// correction and clamping to [0,1].
func (fb *FrameBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.At(x, y).GammaCorrect(2.0).Clamp(0.0, 1.0)
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * c.X),
				G: uint8(255 * c.Y),
				B: uint8(255 * c.Z),
				A: 255,
			})
		}
	}
	return img
}
