// Package lights defines the light sources visible to the shader.
package lights

import (
	"fmt"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
)

// PointLight is a light emitting equally in all directions from a single
// point. Immutable after scene construction.
type PointLight struct {
	Position  core.Vec3
	Color     core.Vec3
	Intensity float64
}

// NewPointLight creates a point light with the given position, color and
// intensity scale.
func NewPointLight(position, color core.Vec3, intensity float64) PointLight {
	return PointLight{Position: position, Color: color, Intensity: intensity}
}

// Contribution returns the light color scaled by intensity
func (l PointLight) Contribution() core.Vec3 {
	return l.Color.Multiply(l.Intensity)
}

// Validate reports configuration errors
func (l PointLight) Validate() error {
	if l.Intensity < 0 {
		return fmt.Errorf("light intensity must be non-negative, got %g", l.Intensity)
	}
	return nil
}
