// Package material defines the Phong material model used by the shader.
package material

import (
	"fmt"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
)

// Material describes how a surface responds to light under the Phong model.
// A single Material value is shared by pointer across every face of a mesh
// group and must not be mutated once the scene is built.
type Material struct {
	Ambient   core.Vec3 // Ambient reflectance, multiplied with the scene ambient light
	Diffuse   core.Vec3 // Lambertian albedo
	Specular  core.Vec3 // Specular highlight color
	Shininess float64   // Phong exponent

	Reflectivity float64 // Mirror contribution in [0,1]
	Transparency float64 // Refracted contribution in [0,1]

	// RefractiveIndex is only meaningful when Transparency > 0.
	RefractiveIndex float64
}

// NewDiffuse creates a matte material with the given albedo and a small
// matching ambient term.
func NewDiffuse(albedo core.Vec3) *Material {
	return &Material{
		Ambient:   albedo,
		Diffuse:   albedo,
		Specular:  core.NewVec3(0, 0, 0),
		Shininess: 1,
	}
}

// NewMirror creates a reflective material. reflectivity 1.0 is a perfect
// mirror with no local shading.
func NewMirror(albedo core.Vec3, reflectivity float64) *Material {
	m := NewDiffuse(albedo)
	m.Specular = core.NewVec3(1, 1, 1)
	m.Shininess = 64
	m.Reflectivity = reflectivity
	return m
}

// NewGlass creates a transparent material with the given refractive index.
func NewGlass(tint core.Vec3, transparency, refractiveIndex float64) *Material {
	m := NewDiffuse(tint)
	m.Transparency = transparency
	m.RefractiveIndex = refractiveIndex
	return m
}

// Validate reports configuration errors. Coefficients summing above 1 are
// accepted as configured; energy conservation is not enforced.
func (m *Material) Validate() error {
	if m.Reflectivity < 0 || m.Reflectivity > 1 {
		return fmt.Errorf("material reflectivity %g outside [0,1]", m.Reflectivity)
	}
	if m.Transparency < 0 || m.Transparency > 1 {
		return fmt.Errorf("material transparency %g outside [0,1]", m.Transparency)
	}
	if m.Transparency > 0 && m.RefractiveIndex <= 0 {
		return fmt.Errorf("transparent material requires a positive refractive index, got %g", m.RefractiveIndex)
	}
	return nil
}
