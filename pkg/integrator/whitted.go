// Package integrator implements the recursive Whitted-style shader: Phong
// local illumination with hard shadows, plus mirror reflection and Snell
// refraction up to a fixed recursion depth.
package integrator

import (
	"math"

	"github.com/hweiss/go-whitted-raytracer/pkg/core"
	"github.com/hweiss/go-whitted-raytracer/pkg/geometry"
	"github.com/hweiss/go-whitted-raytracer/pkg/scene"
)

// tMinHit is the minimum ray parameter for all trace queries; it keeps
// secondary rays from re-intersecting their origin surface.
const tMinHit = 1e-3

// surfaceBias offsets secondary ray origins off the surface they spawn from.
const surfaceBias = 1e-4

// Whitted traces rays through a scene with fixed-depth recursion. The zero
// value is unusable; construct with NewWhitted.
type Whitted struct {
	MaxDepth int
}

// NewWhitted creates an integrator with the given maximum recursion depth
func NewWhitted(maxDepth int) *Whitted {
	return &Whitted{MaxDepth: maxDepth}
}

// Trace computes the color seen along a primary ray
func (w *Whitted) Trace(ray core.Ray, sc *scene.Scene) core.Vec3 {
	return w.rayColor(ray, sc, w.MaxDepth)
}

// rayColor returns the color for a ray with depth recursion steps remaining.
// Depth exhaustion is a normal terminal condition, not an error.
func (w *Whitted) rayColor(ray core.Ray, sc *scene.Scene, depth int) core.Vec3 {
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := sc.ClosestHit(ray, tMinHit, math.Inf(1))
	if !isHit {
		return sc.Background
	}

	mat := hit.Material
	local := w.shadeLocal(ray, sc, hit)

	kr := mat.Reflectivity
	kt := mat.Transparency

	// local*(1-kr-kt) + kr*reflected + kt*refracted. The weights are taken
	// as configured even when kr+kt exceeds 1; energy is not conserved.
	color := local.Multiply(1 - kr - kt)

	if kr > 0 {
		color = color.Add(w.reflectedColor(ray, sc, hit, depth).Multiply(kr))
	}
	if kt > 0 {
		color = color.Add(w.refractedColor(ray, sc, hit, depth).Multiply(kt))
	}

	return color
}

// shadeLocal computes the Phong ambient/diffuse/specular terms with binary
// hard shadows.
func (w *Whitted) shadeLocal(ray core.Ray, sc *scene.Scene, hit *geometry.HitRecord) core.Vec3 {
	mat := hit.Material
	color := mat.Ambient.MultiplyVec(sc.AmbientLight)
	view := ray.Direction.Normalize().Negate()

	for _, light := range sc.Lights {
		if sc.Occluded(hit.Point, hit.Normal, light.Position) {
			continue
		}

		lightDir := light.Position.Subtract(hit.Point).Normalize()
		nDotL := hit.Normal.Dot(lightDir)
		if nDotL <= 0 {
			continue
		}

		lightColor := light.Contribution()
		color = color.Add(lightColor.MultiplyVec(mat.Diffuse).Multiply(nDotL))

		reflected := lightDir.Negate().Reflect(hit.Normal)
		rDotV := reflected.Dot(view)
		if rDotV > 0 {
			spec := math.Pow(rDotV, mat.Shininess)
			color = color.Add(lightColor.MultiplyVec(mat.Specular).Multiply(spec))
		}
	}

	return color
}

// reflectedColor traces the mirror reflection of the incoming ray
func (w *Whitted) reflectedColor(ray core.Ray, sc *scene.Scene, hit *geometry.HitRecord, depth int) core.Vec3 {
	direction := ray.Direction.Normalize().Reflect(hit.Normal)
	origin := hit.Point.Add(hit.Normal.Multiply(surfaceBias))
	return w.rayColor(core.NewRay(origin, direction), sc, depth-1)
}

// refractedColor traces the transmission through a transparent surface.
// FrontFace selects the index ratio for entering vs exiting the medium. On
// total internal reflection all energy goes to the reflected ray; otherwise
// the Schlick Fresnel term splits it between refraction and reflection.
func (w *Whitted) refractedColor(ray core.Ray, sc *scene.Scene, hit *geometry.HitRecord, depth int) core.Vec3 {
	mat := hit.Material

	etaRatio := mat.RefractiveIndex
	if hit.FrontFace {
		etaRatio = 1.0 / mat.RefractiveIndex
	}

	unitDir := ray.Direction.Normalize()
	refracted, ok := unitDir.Refract(hit.Normal, etaRatio)
	if !ok {
		return w.reflectedColor(ray, sc, hit, depth)
	}

	cosTheta := math.Min(unitDir.Negate().Dot(hit.Normal), 1.0)
	fresnel := core.Schlick(cosTheta, etaRatio)

	// Refracted rays start just inside the surface
	origin := hit.Point.Subtract(hit.Normal.Multiply(surfaceBias))
	transmitted := w.rayColor(core.NewRay(origin, refracted.Normalize()), sc, depth-1)
	if fresnel <= 0 {
		return transmitted
	}

	reflected := w.reflectedColor(ray, sc, hit, depth)
	return transmitted.Multiply(1 - fresnel).Add(reflected.Multiply(fresnel))
}
