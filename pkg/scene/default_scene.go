package scene

import (
	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/geometry"
	"github.com/hweiss/go-whitted-raytracer/pkg/lights"
	"github.com/hweiss/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates the built-in demo scene: a matte sphere, a mirror
// sphere and a glass sphere over a ground plane, lit by two point lights.
// Used by the CLI when no scene file is given and by integration tests.
func NewDefaultScene() *Scene {
	s := &Scene{
		AmbientLight: core.NewVec3(0.1, 0.1, 0.1),
		Background:   core.NewVec3(0.5, 0.7, 1.0),
	}

	ground := material.NewDiffuse(core.NewVec3(0.6, 0.6, 0.6))
	matteRed := material.NewDiffuse(core.NewVec3(0.8, 0.2, 0.2))
	matteRed.Specular = core.NewVec3(0.5, 0.5, 0.5)
	matteRed.Shininess = 32
	mirror := material.NewMirror(core.NewVec3(0.9, 0.9, 0.9), 0.8)
	glass := material.NewGlass(core.NewVec3(1, 1, 1), 0.9, 1.5)

	s.Add(
		geometry.NewPlane(core.NewVec3(0, 0, 0), core.NewVec3(0, 1, 0), ground),
		geometry.NewSphere(core.NewVec3(0, 1, -3), 1, matteRed),
		geometry.NewSphere(core.NewVec3(-2.2, 1, -3.5), 1, mirror),
		geometry.NewSphere(core.NewVec3(2.2, 1, -2.5), 1, glass),
	)

	s.AddLight(lights.NewPointLight(core.NewVec3(-4, 6, 2), core.NewVec3(1, 1, 1), 0.8))
	s.AddLight(lights.NewPointLight(core.NewVec3(5, 4, 0), core.NewVec3(1, 0.95, 0.9), 0.5))

	return s
}
