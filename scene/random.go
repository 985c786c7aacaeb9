package scene

import (
	"math/rand"

	"github.com/achilleasa/prism/types"
)

// Generate a frame with count randomly placed spheres inside a 100 unit
// cube centered at the origin, viewed from (-20, 0, 0). The same seed always
// generates the same frame.
func RandomFrame(count int, seed int64) *Frame {
	rng := rand.New(rand.NewSource(seed))
	unit := func() float32 { return rng.Float32() }

	prims := make([]GeometricPrimitive, 0, count)
	for i := 0; i < count; i++ {
		center := types.Vec3{-50 + 100*unit(), -50 + 100*unit(), -50 + 100*unit()}
		color := types.Vec3{0.3 + 0.7*unit(), 0.3 + 0.7*unit(), 0.3 + 0.7*unit()}
		radius := 0.1 + 1.9*unit()
		prims = append(prims, NewSphere(center, radius, color))
	}

	nodes, indices := SingleLeafBvh(prims)
	return &Frame{
		Primitives:    prims,
		BvhNodes:      nodes,
		ObjectIndices: indices,
		Camera:        Camera{Position: types.Vec3{-20, 0, 0}},
		MaxBounces:    8,
		Environment: EnvironmentSpec{
			Type:    GradientEnvironment,
			Horizon: types.Vec3{1, 1, 1},
			Zenith:  types.Vec3{0.5, 0.7, 1.0},
		},
	}
}
