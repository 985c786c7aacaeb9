// Package tracer implements the per-pixel tracing kernel: camera ray
// generation, BVH-accelerated nearest hit search and reflective shading.
//
// Every function in this package is a pure computation over read-only
// inputs. Invocations for different pixels share nothing but the Inputs
// they are handed, so they can run concurrently without synchronization.
package tracer

import (
	"math"

	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/types"
)

const (
	// Hits closer than this distance are ignored to prevent bounced rays
	// from re-intersecting the surface they originate from.
	MinHitDistance float32 = 0.001

	// The initial nearest-hit distance for a trace.
	NearestHitSentinel float32 = 1e20

	// Returned by SlabTest when a box is missed. It is larger than
	// NearestHitSentinel so missed boxes are always pruned.
	MissDistance float32 = math.MaxFloat32
)

// The Environment interface is implemented by samplers that provide the
// color seen along rays that escape the scene.
type Environment interface {
	Sample(dir types.Vec3) types.Vec3
}

// Inputs bundles the read-only per-frame buffers consumed by the kernel.
type Inputs struct {
	Scene scene.SceneData

	Primitives    []scene.GeometricPrimitive
	Nodes         []scene.BvhNode
	ObjectIndices []uint32

	Environment Environment
}

// Create kernel inputs from a frame and an environment sampler.
func NewInputs(frame *scene.Frame, env Environment) *Inputs {
	return &Inputs{
		Scene:         frame.SceneData(),
		Primitives:    frame.Primitives,
		Nodes:         frame.BvhNodes,
		ObjectIndices: frame.ObjectIndices,
		Environment:   env,
	}
}

type Ray struct {
	Origin    types.Vec3
	Direction types.Vec3
}

// Get the point at distance t along the ray.
func (r Ray) At(t float32) types.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// RenderState is the hit record produced by intersection tests. When Hit is
// false, T, Position and Normal are undefined and Color holds the color
// carried over from the previous state (or the environment after a miss).
type RenderState struct {
	Hit      bool
	T        float32
	Position types.Vec3
	Normal   types.Vec3
	Color    types.Vec3
}
