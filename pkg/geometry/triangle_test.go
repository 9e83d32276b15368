package geometry

import (
	"math"
	"testing"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)

	ray := core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1))
	hit, isHit := tri.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
	if math.Abs(hit.U-0.2) > 1e-9 || math.Abs(hit.V-0.2) > 1e-9 {
		t.Errorf("Expected barycentric (0.2, 0.2), got (%f, %f)", hit.U, hit.V)
	}
	if !hit.FrontFace {
		t.Error("Expected front face hit")
	}

	expectedNormal := core.NewVec3(0, 0, 1)
	if math.Abs(hit.Normal.X-expectedNormal.X) > 1e-9 ||
		math.Abs(hit.Normal.Y-expectedNormal.Y) > 1e-9 ||
		math.Abs(hit.Normal.Z-expectedNormal.Z) > 1e-9 {
		t.Errorf("Expected normal %v, got %v", expectedNormal, hit.Normal)
	}
}

func TestTriangle_Hit_Miss(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)

	tests := []struct {
		name string
		ray  core.Ray
	}{
		{
			name: "pointing away",
			ray:  core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, 1)),
		},
		{
			name: "outside barycentric range u",
			ray:  core.NewRay(core.NewVec3(1.5, 0.2, 1), core.NewVec3(0, 0, -1)),
		},
		{
			name: "outside barycentric range u+v",
			ray:  core.NewRay(core.NewVec3(0.6, 0.6, 1), core.NewVec3(0, 0, -1)),
		},
		{
			name: "parallel to the triangle plane",
			ray:  core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(1, 0, 0)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hit, isHit := tri.Hit(tt.ray, 0.001, 1000.0); isHit {
				t.Errorf("Expected miss, but got hit at t=%f", hit.T)
			}
		})
	}
}

func TestTriangle_Hit_BackFace(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)

	// From behind the triangle the normal flips to oppose the ray
	ray := core.NewRay(core.NewVec3(0.2, 0.2, -1), core.NewVec3(0, 0, 1))
	hit, isHit := tri.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.FrontFace {
		t.Error("Expected back face hit")
	}
	if math.Abs(hit.Normal.Z+1) > 1e-9 {
		t.Errorf("Expected flipped normal (0,0,-1), got %v", hit.Normal)
	}
}

func TestTriangle_Hit_Degenerate(t *testing.T) {
	// Colinear vertices give zero area; every ray misses
	tri := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(2, 0, 0),
		testMaterial(),
	)

	ray := core.NewRay(core.NewVec3(0.5, 0, 1), core.NewVec3(0, 0, -1))
	if _, isHit := tri.Hit(ray, 0.001, 1000.0); isHit {
		t.Error("Expected degenerate triangle to never hit")
	}
}

func TestSmoothTriangle_InterpolatesNormals(t *testing.T) {
	tri := NewSmoothTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		testMaterial(),
	)

	// Hit at barycentric (u, v) = (0.25, 0.25): weights 0.5/0.25/0.25
	ray := core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1))
	hit, isHit := tri.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	expected := core.NewVec3(0, 0, 1).Multiply(0.5).
		Add(core.NewVec3(1, 0, 0).Multiply(0.25)).
		Add(core.NewVec3(0, 1, 0).Multiply(0.25)).
		Normalize()

	tolerance := 1e-9
	if math.Abs(hit.Normal.X-expected.X) > tolerance ||
		math.Abs(hit.Normal.Y-expected.Y) > tolerance ||
		math.Abs(hit.Normal.Z-expected.Z) > tolerance {
		t.Errorf("Expected interpolated normal %v, got %v", expected, hit.Normal)
	}
	if math.Abs(hit.Normal.Length()-1) > tolerance {
		t.Errorf("Expected unit normal, got length %f", hit.Normal.Length())
	}
}

func TestSmoothTriangle_VertexNormalExact(t *testing.T) {
	n0 := core.NewVec3(0, 0, 1)
	tri := NewSmoothTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		n0,
		core.NewVec3(1, 0, 1),
		core.NewVec3(0, 1, 1),
		testMaterial(),
	)

	// Nearly on V0 the interpolated normal converges to n0
	ray := core.NewRay(core.NewVec3(1e-9, 1e-9, 1), core.NewVec3(0, 0, -1))
	hit, isHit := tri.Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Normal.X-n0.X) > 1e-6 ||
		math.Abs(hit.Normal.Y-n0.Y) > 1e-6 ||
		math.Abs(hit.Normal.Z-n0.Z) > 1e-6 {
		t.Errorf("Expected normal near %v at vertex, got %v", n0, hit.Normal)
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	tri := NewTriangle(
		core.NewVec3(-1, 0, 2),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 3, 1),
		testMaterial(),
	)

	box := tri.BoundingBox()
	if box.Min != core.NewVec3(-1, 0, 0) || box.Max != core.NewVec3(1, 3, 2) {
		t.Errorf("Unexpected bounding box %v", box)
	}
}
