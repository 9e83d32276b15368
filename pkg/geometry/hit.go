// Package geometry provides the ray-intersectable primitives and the BVH
// acceleration structure. The set of Shape implementations is closed:
// Sphere, Plane, Triangle, TriangleMesh and BVH.
package geometry

import (
	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	T         float64            // Parameter t along the ray
	Point     core.Vec3          // Point of intersection
	Normal    core.Vec3          // Unit surface normal, oriented against the incoming ray
	FrontFace bool               // Whether the geometric normal already opposed the ray
	U, V      float64            // Barycentric/texture coordinates where the shape provides them
	Material  *material.Material // Material of the hit object
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Shape is implemented by everything a ray can intersect
type Shape interface {
	// Hit returns the closest intersection in (tMin, tMax), if any
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)

	// BoundingBox returns the axis-aligned bounding box of the shape
	BoundingBox() core.AABB
}
