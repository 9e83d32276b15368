package loaders

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestLoadOBJ_Triangles(t *testing.T) {
	path := writeFile(t, t.TempDir(), "quad.obj", `
# unit quad in the z=0 plane
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(meshes) != 1 {
		t.Fatalf("Expected 1 mesh, got %d", len(meshes))
	}
	if meshes[0].TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", meshes[0].TriangleCount())
	}

	ray := core.NewRay(core.NewVec3(0.5, 0.5, 1), core.NewVec3(0, 0, -1))
	hit, isHit := meshes[0].Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit on the quad")
	}
	if math.Abs(hit.T-1.0) > 1e-9 {
		t.Errorf("Expected t=1, got t=%f", hit.T)
	}
}

func TestLoadOBJ_FaceIndexFormats(t *testing.T) {
	// v, v/vt, v//vn and v/vt/vn must all parse
	path := writeFile(t, t.TempDir(), "formats.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vt 1 0
vt 0 1
vn 0 0 1
f 1 2 3
f 1/1 2/2 3/3
f 1//1 2//1 3//1
f 1/1/1 2/2/1 3/3/1
`)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if meshes[0].TriangleCount() != 4 {
		t.Errorf("Expected 4 triangles, got %d", meshes[0].TriangleCount())
	}
}

func TestLoadOBJ_SmoothNormals(t *testing.T) {
	tilted := core.NewVec3(0, 1, 1).Normalize()
	path := writeFile(t, t.TempDir(), "smooth.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 1 1
f 1//1 2//1 3//1
`)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1))
	hit, isHit := meshes[0].Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Normal.Y-tilted.Y) > 1e-9 || math.Abs(hit.Normal.Z-tilted.Z) > 1e-9 {
		t.Errorf("Expected shading normal %v, got %v", tilted, hit.Normal)
	}
}

func TestLoadOBJ_MixedNormalsFallBackToFlat(t *testing.T) {
	// One face without normal indices demotes the group to flat shading
	path := writeFile(t, t.TempDir(), "mixed.obj", `
v 0 0 0
v 1 0 0
v 0 1 0
v 1 1 0
vn 0 1 1
f 1//1 2//1 3//1
f 2 4 3
`)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1))
	hit, isHit := meshes[0].Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if math.Abs(hit.Normal.Z-1) > 1e-9 {
		t.Errorf("Expected flat face normal (0,0,1), got %v", hit.Normal)
	}
}

func TestLoadOBJ_Materials(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "scene.mtl", `
newmtl shiny
Ka 0.1 0.1 0.1
Kd 0.8 0.2 0.2
Ks 0.9 0.9 0.9
Ns 64
`)
	path := writeFile(t, dir, "scene.obj", `
mtllib scene.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl shiny
f 1 2 3
`)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1))
	hit, isHit := meshes[0].Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	mat := hit.Material
	if mat.Diffuse != core.NewVec3(0.8, 0.2, 0.2) {
		t.Errorf("Expected MTL diffuse color, got %v", mat.Diffuse)
	}
	if mat.Shininess != 64 {
		t.Errorf("Expected shininess 64, got %f", mat.Shininess)
	}
}

func TestLoadOBJ_FacesBeforeUsemtlInheritMaterial(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "late.mtl", `
newmtl red
Kd 1 0 0
`)
	path := writeFile(t, dir, "late.obj", `
mtllib late.mtl
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
usemtl red
`)

	meshes, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	ray := core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1))
	hit, isHit := meshes[0].Hit(ray, 0.001, 1000.0)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}
	if hit.Material.Diffuse != core.NewVec3(1, 0, 0) {
		t.Errorf("Expected inherited red material, got %v", hit.Material.Diffuse)
	}
}

func TestLoadOBJ_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{
			name: "quad face",
			content: `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`,
			errContains: "triangulated",
		},
		{
			name: "undefined material",
			content: `
v 0 0 0
v 1 0 0
v 0 1 0
usemtl missing
f 1 2 3
`,
			errContains: "undefined material",
		},
		{
			name: "vertex index out of range",
			content: `
v 0 0 0
v 1 0 0
f 1 2 9
`,
			errContains: "out of range",
		},
		{
			name:        "no faces",
			content:     "v 0 0 0\n",
			errContains: "no faces",
		},
		{
			name: "malformed vertex",
			content: `
v 0 0
`,
			errContains: "expected 3 components",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "bad.obj", tt.content)
			_, err := LoadOBJ(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestLoadOBJ_MalformedMTL(t *testing.T) {
	tests := []struct {
		name        string
		mtl         string
		errContains string
	}{
		{
			name:        "Ns without a value",
			mtl:         "newmtl a\nNs\n",
			errContains: "Ns without a value",
		},
		{
			name:        "non-numeric shininess",
			mtl:         "newmtl a\nNs soft\n",
			errContains: "invalid shininess",
		},
		{
			name:        "truncated color",
			mtl:         "newmtl a\nKd 0.5 0.5\n",
			errContains: "expected 3 components",
		},
		{
			name:        "newmtl without a name",
			mtl:         "newmtl\n",
			errContains: "newmtl without a name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "bad.mtl", tt.mtl)
			path := writeFile(t, dir, "bad.obj", `
mtllib bad.mtl
v 0 0 0
v 1 0 0
v 0 1 0
usemtl a
f 1 2 3
`)

			_, err := LoadOBJ(path)
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("Expected error containing %q, got %q", tt.errContains, err.Error())
			}
		})
	}
}

func TestLoadOBJ_MissingFile(t *testing.T) {
	if _, err := LoadOBJ(filepath.Join(t.TempDir(), "nope.obj")); err == nil {
		t.Error("Expected error for missing file")
	}
}
