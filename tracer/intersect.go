package tracer

import (
	"math"

	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/types"
)

// Triangle tests reject rays whose direction is this close to parallel to the
// triangle plane as well as near-singular linear systems.
const triangleEpsilon float32 = 1e-5

// Intersect a ray with a decoded primitive, accepting hits within (tMin, tMax).
// On a miss the returned state carries the color of prior.
func Intersect(ray Ray, geom scene.Geometry, tMin, tMax float32, prior RenderState) RenderState {
	switch g := geom.(type) {
	case scene.Sphere:
		return hitSphere(ray, g, tMin, tMax, prior)
	case scene.Triangle:
		return hitTriangle(ray, g, tMin, tMax, prior)
	}
	return RenderState{Color: prior.Color}
}

// Only the near root of the quadratic is considered; rays starting inside a
// sphere never report the exit point.
func hitSphere(ray Ray, sphere scene.Sphere, tMin, tMax float32, prior RenderState) RenderState {
	state := RenderState{Color: prior.Color}

	oc := ray.Origin.Sub(sphere.Origin)
	a := ray.Direction.Dot(ray.Direction)
	b := 2.0 * ray.Direction.Dot(oc)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius
	disc := b*b - 4.0*a*c
	if disc <= 0 {
		return state
	}

	t := (-b - float32(math.Sqrt(float64(disc)))) / (2.0 * a)
	if t <= tMin || t >= tMax {
		return state
	}

	state.Hit = true
	state.T = t
	state.Position = ray.At(t)
	state.Normal = state.Position.Sub(sphere.Origin).Normalize()
	state.Color = sphere.Color
	return state
}

// Solve o + t·d = a + u·ab + v·ac for (t, u, v) using Cramer's rule on the
// system with columns (d, -ab, -ac). Both faces are intersectable; the
// reported normal always faces the incoming ray.
func hitTriangle(ray Ray, tri scene.Triangle, tMin, tMax float32, prior RenderState) RenderState {
	state := RenderState{Color: prior.Color}

	edgeAB := tri.Corners[1].Sub(tri.Corners[0])
	edgeAC := tri.Corners[2].Sub(tri.Corners[0])
	normal := edgeAB.Cross(edgeAC).Normalize()

	rayDotTri := ray.Direction.Dot(normal)
	if rayDotTri > 0 {
		rayDotTri = -rayDotTri
		normal = normal.Neg()
	}
	if abs(rayDotTri) < triangleEpsilon {
		return state
	}

	negAB, negAC := edgeAB.Neg(), edgeAC.Neg()
	denominator := types.Det3(ray.Direction, negAB, negAC)
	if abs(denominator) < triangleEpsilon {
		return state
	}

	rhs := tri.Corners[0].Sub(ray.Origin)
	u := types.Det3(ray.Direction, rhs, negAC) / denominator
	v := types.Det3(ray.Direction, negAB, rhs) / denominator
	if u < 0 || u > 1 || v < 0 || u+v > 1 {
		return state
	}

	t := types.Det3(rhs, negAB, negAC) / denominator
	if t <= tMin || t >= tMax {
		return state
	}

	state.Hit = true
	state.T = t
	state.Position = ray.At(t)
	state.Normal = normal
	state.Color = tri.Color
	return state
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
