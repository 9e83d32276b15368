package geometry

import (
	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/material"
)

// Triangle represents a single triangle defined by three vertices.
// When per-vertex normals are set, hits interpolate them by barycentric
// weight for smooth shading; otherwise the flat face normal is used.
type Triangle struct {
	V0, V1, V2 core.Vec3
	Material   *material.Material

	normal        core.Vec3 // Cached face normal
	n0, n1, n2    core.Vec3 // Per-vertex normals for smooth shading
	vertexNormals bool
	bbox          core.AABB
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, mat *material.Material) *Triangle {
	t := &Triangle{V0: v0, V1: v1, V2: v2, Material: mat}
	t.computeNormal()
	t.computeBoundingBox()
	return t
}

// NewSmoothTriangle creates a triangle with per-vertex normals
func NewSmoothTriangle(v0, v1, v2, n0, n1, n2 core.Vec3, mat *material.Material) *Triangle {
	t := NewTriangle(v0, v1, v2, mat)
	t.n0 = n0.Normalize()
	t.n1 = n1.Normalize()
	t.n2 = n2.Normalize()
	t.vertexNormals = true
	return t
}

// computeNormal calculates and caches the triangle's face normal
func (t *Triangle) computeNormal() {
	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)
	t.normal = edge1.Cross(edge2).Normalize()
}

// computeBoundingBox calculates and caches the triangle's bounding box
func (t *Triangle) computeBoundingBox() {
	t.bbox = core.NewAABBFromPoints(t.V0, t.V1, t.V2)
}

// Hit tests if a ray intersects with the triangle using the Möller-Trumbore
// algorithm
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	const epsilon = 1e-8

	edge1 := t.V1.Subtract(t.V0)
	edge2 := t.V2.Subtract(t.V0)

	h := ray.Direction.Cross(edge2)
	a := edge1.Dot(h)

	// Near-zero determinant: the ray lies in the triangle plane, or the
	// triangle is degenerate (zero area). Either way, no hit.
	if a > -epsilon && a < epsilon {
		return nil, false
	}

	f := 1.0 / a
	s := ray.Origin.Subtract(t.V0)
	u := f * s.Dot(h)
	if u < 0.0 || u > 1.0 {
		return nil, false
	}

	q := s.Cross(edge1)
	v := f * ray.Direction.Dot(q)
	if v < 0.0 || u+v > 1.0 {
		return nil, false
	}

	tParam := f * edge2.Dot(q)
	if tParam < tMin || tParam > tMax {
		return nil, false
	}

	hit := &HitRecord{
		T:        tParam,
		Point:    ray.At(tParam),
		U:        u,
		V:        v,
		Material: t.Material,
	}

	normal := t.normal
	if t.vertexNormals {
		// Barycentric interpolation: weight (1-u-v) on V0, u on V1, v on V2
		normal = t.n0.Multiply(1 - u - v).
			Add(t.n1.Multiply(u)).
			Add(t.n2.Multiply(v)).
			Normalize()
	}
	hit.SetFaceNormal(ray, normal)

	return hit, true
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the cached flat face normal
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
