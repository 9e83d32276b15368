// Package scene aggregates primitives, lights and render-time queries.
package scene

import (
	"fmt"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/geometry"
	"github.com/hweiss/go-whitted-raytracer/pkg/lights"
)

// shadowBias offsets shadow ray origins along the surface normal so the ray
// does not immediately re-intersect the surface it started on (shadow acne).
const shadowBias = 1e-4

// Scene contains all the elements needed for rendering. It is built once and
// must be treated as read-only for the duration of a render; that is what
// lets workers share it without locks.
type Scene struct {
	Shapes       []geometry.Shape
	Lights       []lights.PointLight
	AmbientLight core.Vec3
	Background   core.Vec3

	bvh *geometry.BVH
}

// Add appends shapes to the scene. Only valid before Preprocess.
func (s *Scene) Add(shapes ...geometry.Shape) {
	s.Shapes = append(s.Shapes, shapes...)
}

// AddLight appends a light to the scene. Only valid before Preprocess.
func (s *Scene) AddLight(light lights.PointLight) {
	s.Lights = append(s.Lights, light)
}

// Preprocess validates the scene and builds the BVH acceleration structure.
// Rendering must not proceed if it returns an error.
func (s *Scene) Preprocess() error {
	for i, light := range s.Lights {
		if err := light.Validate(); err != nil {
			return fmt.Errorf("light %d: %w", i, err)
		}
	}
	s.bvh = geometry.NewBVH(s.Shapes)
	return nil
}

// ClosestHit returns the nearest intersection along the ray in (tMin, tMax).
// Ties between equally distant shapes resolve by scan order; that order is
// deterministic but carries no meaning.
func (s *Scene) ClosestHit(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	if s.bvh != nil {
		return s.bvh.Hit(ray, tMin, tMax)
	}

	// Linear scan fallback for scenes that were never preprocessed
	var closestHit *geometry.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range s.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, hitAnything
}

// AnyHit reports whether anything intersects the ray in (tMin, tMax),
// without caring what. Early-exits on the first intersection found.
func (s *Scene) AnyHit(ray core.Ray, tMin, tMax float64) bool {
	if s.bvh != nil {
		return s.bvh.AnyHit(ray, tMin, tMax)
	}

	for _, shape := range s.Shapes {
		if _, isHit := shape.Hit(ray, tMin, tMax); isHit {
			return true
		}
	}
	return false
}

// Occluded reports whether an opaque surface blocks the segment between a
// shaded point and a light position. The shadow ray starts slightly off the
// surface along its normal and stops just short of the light, so neither
// endpoint can shadow itself.
func (s *Scene) Occluded(point, normal, lightPos core.Vec3) bool {
	origin := point.Add(normal.Multiply(shadowBias))
	direction := lightPos.Subtract(origin)

	// Direction is left unnormalized so t=1 lands exactly on the light
	return s.AnyHit(core.NewRay(origin, direction), shadowBias, 1-shadowBias)
}

// PrimitiveCount returns the number of top-level shapes, with meshes counted
// by their triangle count.
func (s *Scene) PrimitiveCount() int {
	count := 0
	for _, shape := range s.Shapes {
		if mesh, ok := shape.(*geometry.TriangleMesh); ok {
			count += mesh.TriangleCount()
			continue
		}
		count++
	}
	return count
}
