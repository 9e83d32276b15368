// Package loaders ingests scene descriptions (YAML) and meshes (OBJ/MTL)
// into in-memory scene values. All failures here surface before rendering
// starts; nothing in this package is called mid-render.
package loaders

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/geometry"
	"github.com/hweiss/go-whitted-raytracer/pkg/material"
)

// objObject accumulates one "o" group while scanning an OBJ file
type objObject struct {
	faces         []int
	normalIndices []int
	faceMaterials []int
	materials     []*material.Material
	flatOnly      bool // Set when any face lacks normal indices
}

// LoadOBJ loads a Wavefront OBJ file (with its MTL library, if referenced)
// into triangle meshes, one per object group. Only triangulated faces are
// supported: a face with more than three vertices is a fatal load error, not
// something the renderer works around.
func LoadOBJ(path string) ([]*geometry.TriangleMesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open OBJ file: %w", err)
	}
	defer file.Close()

	var (
		vertices  []core.Vec3
		normals   []core.Vec3
		materials = make(map[string]*material.Material)
		objects   []*objObject
		current   *objObject
		activeMat = -1
		lineNum   = 0
	)

	// Faces may appear before any "o" statement
	ensureObject := func() *objObject {
		if current == nil {
			current = &objObject{}
			objects = append(objects, current)
		}
		return current
	}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "mtllib":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%s:%d: mtllib without a file name", path, lineNum)
			}
			mtlPath := filepath.Join(filepath.Dir(path), fields[1])
			if err := loadMTL(mtlPath, materials); err != nil {
				return nil, err
			}
		case "o", "g":
			current = &objObject{}
			objects = append(objects, current)
			activeMat = -1
		case "v":
			v, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
			}
			vertices = append(vertices, v)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
			}
			normals = append(normals, n)
		case "vt":
			// Texture coordinates are parsed past; no texture support
		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("%s:%d: usemtl without a material name", path, lineNum)
			}
			mat, ok := materials[fields[1]]
			if !ok {
				return nil, fmt.Errorf("%s:%d: reference to undefined material %q", path, lineNum, fields[1])
			}
			obj := ensureObject()
			obj.materials = append(obj.materials, mat)
			activeMat = len(obj.materials) - 1
			// Faces recorded before the first usemtl inherit this material
			for len(obj.faceMaterials) < len(obj.faces)/3 {
				obj.faceMaterials = append(obj.faceMaterials, activeMat)
			}
		case "f":
			if len(fields)-1 != 3 {
				return nil, fmt.Errorf("%s:%d: face with %d vertices; meshes must be triangulated", path, lineNum, len(fields)-1)
			}
			obj := ensureObject()
			if err := parseFace(fields[1:], obj, activeMat, len(vertices), len(normals)); err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNum, err)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read OBJ file: %w", err)
	}

	defaultMat := material.NewDiffuse(core.NewVec3(0.7, 0.7, 0.7))

	var meshes []*geometry.TriangleMesh
	for _, obj := range objects {
		if len(obj.faces) == 0 {
			continue
		}

		options := &geometry.MeshOptions{}
		if !obj.flatOnly && len(obj.normalIndices) == len(obj.faces) {
			options.Normals = normals
			options.NormalIndices = obj.normalIndices
		}
		if len(obj.materials) > 0 {
			options.Materials = obj.materials
			options.FaceMaterials = obj.faceMaterials
		}

		meshes = append(meshes, geometry.NewTriangleMesh(vertices, obj.faces, defaultMat, options))
	}

	if len(meshes) == 0 {
		return nil, fmt.Errorf("OBJ file %s contains no faces", path)
	}
	return meshes, nil
}

// parseFace parses one triangular face in any of the four OBJ index formats
// (v, v/vt, v//vn, v/vt/vn) and appends it to the object.
func parseFace(verts []string, obj *objObject, activeMat, vertexCount, normalCount int) error {
	var faceNormals [3]int
	hasNormals := true

	for i, vert := range verts {
		parts := strings.Split(vert, "/")

		vIdx, err := parseIndex(parts[0], vertexCount)
		if err != nil {
			return fmt.Errorf("vertex index %q: %w", parts[0], err)
		}
		obj.faces = append(obj.faces, vIdx)

		// parts: [v], [v, vt], [v, "", vn], [v, vt, vn]
		if len(parts) == 3 && parts[2] != "" {
			nIdx, err := parseIndex(parts[2], normalCount)
			if err != nil {
				return fmt.Errorf("normal index %q: %w", parts[2], err)
			}
			faceNormals[i] = nIdx
		} else {
			hasNormals = false
		}
	}

	if hasNormals && !obj.flatOnly {
		obj.normalIndices = append(obj.normalIndices, faceNormals[0], faceNormals[1], faceNormals[2])
	} else {
		// One flat face demotes the whole group to flat shading
		obj.flatOnly = true
		obj.normalIndices = nil
	}

	if len(obj.materials) > 0 {
		if activeMat < 0 {
			activeMat = 0
		}
		obj.faceMaterials = append(obj.faceMaterials, activeMat)
	}
	return nil
}

// parseIndex converts a 1-based OBJ index into a 0-based slice index
func parseIndex(s string, count int) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("not an integer")
	}
	if idx < 1 || idx > count {
		return 0, fmt.Errorf("index %d out of range [1,%d]", idx, count)
	}
	return idx - 1, nil
}

// loadMTL parses a material library into the given map. Recognized keys are
// newmtl, Ka, Kd, Ks and Ns; everything else is skipped.
func loadMTL(path string, materials map[string]*material.Material) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open MTL file: %w", err)
	}
	defer file.Close()

	var active *material.Material
	lineNum := 0

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		if fields[0] == "newmtl" {
			if len(fields) < 2 {
				return fmt.Errorf("%s:%d: newmtl without a name", path, lineNum)
			}
			active = &material.Material{Shininess: 1}
			materials[fields[1]] = active
			continue
		}

		if active == nil {
			continue
		}

		switch fields[0] {
		case "Ka", "Kd", "Ks":
			c, err := parseVec3(fields[1:])
			if err != nil {
				return fmt.Errorf("%s:%d: %w", path, lineNum, err)
			}
			switch fields[0] {
			case "Ka":
				active.Ambient = c
			case "Kd":
				active.Diffuse = c
			case "Ks":
				active.Specular = c
			}
		case "Ns":
			if len(fields) < 2 {
				return fmt.Errorf("%s:%d: Ns without a value", path, lineNum)
			}
			ns, err := strconv.ParseFloat(fields[1], 64)
			if err != nil {
				return fmt.Errorf("%s:%d: invalid shininess %q", path, lineNum, fields[1])
			}
			active.Shininess = ns
		}
	}
	return scanner.Err()
}

// parseVec3 parses three whitespace-separated floats
func parseVec3(fields []string) (core.Vec3, error) {
	if len(fields) < 3 {
		return core.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var components [3]float64
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("invalid number %q", fields[i])
		}
		components[i] = f
	}
	return core.NewVec3(components[0], components[1], components[2]), nil
}
