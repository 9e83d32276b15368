package geometry

import (
	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/material"
)

// TriangleMesh represents an indexed triangle mesh with an internal BVH for
// fast intersection. Faces must already be triangulated; this type never
// triangulates polygons itself.
type TriangleMesh struct {
	triangles []Shape
	bvh       *BVH
	bbox      core.AABB
	material  *material.Material // Default material for faces without an override
}

// MeshOptions contains optional per-face data for mesh creation
type MeshOptions struct {
	// Normals are per-vertex normals. When set together with NormalIndices
	// (three per face, parallel to the face indices), triangles shade
	// smoothly by barycentric interpolation.
	Normals       []core.Vec3
	NormalIndices []int

	// Materials and FaceMaterials assign one material per face; the index
	// refers into Materials. Both must be set together.
	Materials     []*material.Material
	FaceMaterials []int
}

// NewTriangleMesh creates a mesh from vertex positions and face indices
// (three per triangle). Malformed index data is a caller error and panics;
// loaders are expected to validate before construction.
func NewTriangleMesh(vertices []core.Vec3, faces []int, defaultMaterial *material.Material, options *MeshOptions) *TriangleMesh {
	if len(faces)%3 != 0 {
		panic("mesh face indices must come in groups of three")
	}
	numTriangles := len(faces) / 3

	if options != nil {
		if options.NormalIndices != nil && len(options.NormalIndices) != len(faces) {
			panic("mesh normal indices must parallel face indices")
		}
		if options.FaceMaterials != nil && len(options.FaceMaterials) != numTriangles {
			panic("mesh face materials must match the number of faces")
		}
	}

	triangles := make([]Shape, 0, numTriangles)
	for i := 0; i < numTriangles; i++ {
		i0, i1, i2 := faces[i*3], faces[i*3+1], faces[i*3+2]
		if i0 < 0 || i1 < 0 || i2 < 0 ||
			i0 >= len(vertices) || i1 >= len(vertices) || i2 >= len(vertices) {
			panic("mesh face index out of bounds")
		}

		mat := defaultMaterial
		if options != nil && options.FaceMaterials != nil {
			idx := options.FaceMaterials[i]
			if idx < 0 || idx >= len(options.Materials) {
				panic("mesh face material index out of bounds")
			}
			mat = options.Materials[idx]
		}

		var tri *Triangle
		if options != nil && options.NormalIndices != nil {
			for _, idx := range options.NormalIndices[i*3 : i*3+3] {
				if idx < 0 || idx >= len(options.Normals) {
					panic("mesh normal index out of bounds")
				}
			}
			n0 := options.Normals[options.NormalIndices[i*3]]
			n1 := options.Normals[options.NormalIndices[i*3+1]]
			n2 := options.Normals[options.NormalIndices[i*3+2]]
			tri = NewSmoothTriangle(vertices[i0], vertices[i1], vertices[i2], n0, n1, n2, mat)
		} else {
			tri = NewTriangle(vertices[i0], vertices[i1], vertices[i2], mat)
		}
		triangles = append(triangles, tri)
	}

	mesh := &TriangleMesh{
		triangles: triangles,
		bvh:       NewBVH(triangles),
		material:  defaultMaterial,
	}
	mesh.bbox = mesh.bvh.BoundingBox()
	return mesh
}

// Hit tests the ray against the mesh via its internal BVH
func (m *TriangleMesh) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	return m.bvh.Hit(ray, tMin, tMax)
}

// BoundingBox returns the bounding box of the whole mesh
func (m *TriangleMesh) BoundingBox() core.AABB {
	return m.bbox
}

// TriangleCount returns the number of triangles in the mesh
func (m *TriangleMesh) TriangleCount() int {
	return len(m.triangles)
}
