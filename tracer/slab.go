package tracer

import "github.com/achilleasa/prism/scene"

// Intersect a ray with a node bbox using the slab method and return the
// distance to the box entry point. Axis-aligned rays produce infinite
// reciprocals which the min/max reductions below handle without special
// cases. Returns MissDistance if the box is missed or lies behind the ray.
func SlabTest(ray Ray, node *scene.BvhNode) float32 {
	invDir := ray.Direction.Recip()

	tEntry := -MissDistance
	tExit := MissDistance
	for axis := 0; axis < 3; axis++ {
		t1 := (node.Min[axis] - ray.Origin[axis]) * invDir[axis]
		t2 := (node.Max[axis] - ray.Origin[axis]) * invDir[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tEntry {
			tEntry = t1
		}
		if t2 < tExit {
			tExit = t2
		}
	}

	if tEntry > tExit || tExit < 0 {
		return MissDistance
	}
	return tEntry
}
