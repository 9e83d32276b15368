package loaders

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/geometry"
	"github.com/hweiss/go-whitted-raytracer/pkg/lights"
	"github.com/hweiss/go-whitted-raytracer/pkg/material"
	"github.com/hweiss/go-whitted-raytracer/pkg/renderer"
	"github.com/hweiss/go-whitted-raytracer/pkg/scene"
)

// SceneFile is the YAML scene description schema. Vectors and colors are
// written as three-element sequences, e.g. `center: [0, 1, -3]`.
type SceneFile struct {
	Image  ImageSection  `yaml:"image"`
	Camera CameraSection `yaml:"camera"`
	Scene  SceneSection  `yaml:"scene"`
}

// ImageSection configures the output raster
type ImageSection struct {
	Width      int   `yaml:"width"`
	Height     int   `yaml:"height"`
	Background tuple `yaml:"background"`
}

// CameraSection configures the pinhole camera
type CameraSection struct {
	Eye           tuple   `yaml:"eye"`
	LookAt        tuple   `yaml:"look_at"`
	Up            tuple   `yaml:"up"`
	Fovy          float64 `yaml:"fovy"`
	Aperture      float64 `yaml:"aperture"`
	FocusDistance float64 `yaml:"focus_distance"`
}

// SceneSection holds lights and objects
type SceneSection struct {
	AmbientLight tuple           `yaml:"ambient_light"`
	Lights       []LightSection  `yaml:"lights"`
	Objects      []ObjectSection `yaml:"objects"`
}

// LightSection describes one point light
type LightSection struct {
	Position  tuple    `yaml:"position"`
	Color     tuple    `yaml:"color"`
	Intensity *float64 `yaml:"intensity"` // Defaults to 1 when omitted
}

// ObjectSection is the tagged union of scene objects. Type selects which of
// the remaining fields apply.
type ObjectSection struct {
	Type string `yaml:"type"`

	// sphere
	Center tuple   `yaml:"center"`
	Radius float64 `yaml:"radius"`

	// plane
	Point  tuple `yaml:"point"`
	Normal tuple `yaml:"normal"`

	// mesh: OBJ path relative to the scene file
	Path string `yaml:"path"`

	Material *MaterialSection `yaml:"material"`
}

// MaterialSection describes a Phong material
type MaterialSection struct {
	Ambient         tuple   `yaml:"ambient"`
	Diffuse         tuple   `yaml:"diffuse"`
	Specular        tuple   `yaml:"specular"`
	Shininess       float64 `yaml:"shininess"`
	Mirror          float64 `yaml:"mirror"`
	Transparency    float64 `yaml:"transparency"`
	RefractiveIndex float64 `yaml:"ior"`
}

// tuple is a [x, y, z] YAML sequence
type tuple [3]float64

func (t tuple) vec3() core.Vec3 {
	return core.NewVec3(t[0], t[1], t[2])
}

// LoadScene parses a YAML scene description, loads any referenced meshes,
// and returns the assembled scene together with the camera configuration and
// output dimensions. Any error here is fatal; rendering must not proceed.
func LoadScene(path string) (*scene.Scene, renderer.CameraConfig, ImageSection, error) {
	var file SceneFile

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, renderer.CameraConfig{}, ImageSection{}, fmt.Errorf("failed to read scene file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, renderer.CameraConfig{}, ImageSection{}, fmt.Errorf("failed to parse scene file: %w", err)
	}

	if file.Image.Width <= 0 || file.Image.Height <= 0 {
		return nil, renderer.CameraConfig{}, ImageSection{}, fmt.Errorf("scene image dimensions must be positive, got %dx%d", file.Image.Width, file.Image.Height)
	}

	s := &scene.Scene{
		AmbientLight: file.Scene.AmbientLight.vec3(),
		Background:   file.Image.Background.vec3(),
	}

	for i, l := range file.Scene.Lights {
		intensity := 1.0
		if l.Intensity != nil {
			intensity = *l.Intensity
		}
		light := lights.NewPointLight(l.Position.vec3(), l.Color.vec3(), intensity)
		if err := light.Validate(); err != nil {
			return nil, renderer.CameraConfig{}, ImageSection{}, fmt.Errorf("light %d: %w", i, err)
		}
		s.AddLight(light)
	}

	for i, obj := range file.Scene.Objects {
		if err := addObject(s, obj, filepath.Dir(path)); err != nil {
			return nil, renderer.CameraConfig{}, ImageSection{}, fmt.Errorf("object %d: %w", i, err)
		}
	}

	cameraConfig := renderer.CameraConfig{
		LookFrom:      file.Camera.Eye.vec3(),
		LookAt:        file.Camera.LookAt.vec3(),
		Up:            file.Camera.Up.vec3(),
		VFov:          file.Camera.Fovy,
		AspectRatio:   float64(file.Image.Width) / float64(file.Image.Height),
		Aperture:      file.Camera.Aperture,
		FocusDistance: file.Camera.FocusDistance,
	}

	return s, cameraConfig, file.Image, nil
}

// addObject converts one tagged object section into scene shapes
func addObject(s *scene.Scene, obj ObjectSection, baseDir string) error {
	switch obj.Type {
	case "sphere":
		if obj.Radius <= 0 {
			return fmt.Errorf("sphere radius must be positive, got %g", obj.Radius)
		}
		mat, err := buildMaterial(obj.Material)
		if err != nil {
			return err
		}
		s.Add(geometry.NewSphere(obj.Center.vec3(), obj.Radius, mat))
		return nil

	case "plane":
		if obj.Normal.vec3().NearZero() {
			return fmt.Errorf("plane normal must be nonzero")
		}
		mat, err := buildMaterial(obj.Material)
		if err != nil {
			return err
		}
		s.Add(geometry.NewPlane(obj.Point.vec3(), obj.Normal.vec3(), mat))
		return nil

	case "mesh":
		if obj.Path == "" {
			return fmt.Errorf("mesh object requires a path")
		}
		meshes, err := LoadOBJ(filepath.Join(baseDir, obj.Path))
		if err != nil {
			return err
		}
		for _, mesh := range meshes {
			s.Add(mesh)
		}
		return nil

	default:
		return fmt.Errorf("unknown object type %q", obj.Type)
	}
}

// buildMaterial converts a material section, validating the coefficients. A
// missing material is a configuration error for spheres and planes (meshes
// carry their own from the MTL library).
func buildMaterial(section *MaterialSection) (*material.Material, error) {
	if section == nil {
		return nil, fmt.Errorf("missing material")
	}

	mat := &material.Material{
		Ambient:         section.Ambient.vec3(),
		Diffuse:         section.Diffuse.vec3(),
		Specular:        section.Specular.vec3(),
		Shininess:       section.Shininess,
		Reflectivity:    section.Mirror,
		Transparency:    section.Transparency,
		RefractiveIndex: section.RefractiveIndex,
	}
	if err := mat.Validate(); err != nil {
		return nil, err
	}
	return mat, nil
}
