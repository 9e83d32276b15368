package renderer

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
)

// CameraConfig describes a pinhole camera, optionally with a thin lens for
// depth of field.
type CameraConfig struct {
	LookFrom    core.Vec3
	LookAt      core.Vec3
	Up          core.Vec3
	VFov        float64 // Vertical field of view in degrees
	AspectRatio float64

	// Aperture > 0 enables depth of field; FocusDistance 0 focuses on LookAt
	Aperture      float64
	FocusDistance float64
}

// Camera generates primary rays. The orthonormal basis is derived once at
// construction and never changes.
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3 // Basis vectors spanning the lens plane
	lensRadius      float64
}

// NewCamera derives the camera basis from the config. A degenerate basis
// (coincident look-from/look-at, or an up vector colinear with the view
// direction) is a fatal configuration error.
func NewCamera(config CameraConfig) (*Camera, error) {
	if config.VFov <= 0 || config.VFov >= 180 {
		return nil, fmt.Errorf("camera vfov must be in (0, 180), got %g", config.VFov)
	}
	if config.AspectRatio <= 0 {
		return nil, fmt.Errorf("camera aspect ratio must be positive, got %g", config.AspectRatio)
	}

	view := config.LookAt.Subtract(config.LookFrom)
	if view.NearZero() {
		return nil, fmt.Errorf("camera look-from and look-at coincide")
	}

	w := view.Negate().Normalize()
	uCross := config.Up.Cross(w)
	if uCross.NearZero() {
		return nil, fmt.Errorf("camera up vector is colinear with the view direction")
	}
	u := uCross.Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = view.Length()
	}

	theta := config.VFov * math.Pi / 180
	halfHeight := math.Tan(theta / 2)
	viewportHeight := 2 * halfHeight * focusDistance
	viewportWidth := config.AspectRatio * viewportHeight

	origin := config.LookFrom
	horizontal := u.Multiply(viewportWidth)
	vertical := v.Multiply(viewportHeight)
	lowerLeftCorner := origin.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          origin,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2,
	}, nil
}

// GetRay generates a ray through viewport coordinates (s, t), with
// 0 <= s,t <= 1 and t increasing upward. The direction is normalized. With a
// nonzero aperture the origin is jittered on the lens disk using random.
func (c *Camera) GetRay(s, t float64, random *rand.Rand) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(rd.X)).Add(c.v.Multiply(rd.Y))
	}

	target := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t))

	return core.NewRay(origin, target.Subtract(origin).Normalize())
}
