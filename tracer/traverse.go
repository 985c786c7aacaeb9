package tracer

import "github.com/achilleasa/prism/scene"

// A fixed-capacity stack of node indices. It lives on the goroutine stack and
// is never grown; Frame.Validate guarantees that trees fit.
type nodeStack struct {
	entries [scene.MaxBvhDepth]uint32
	top     int
}

func (s *nodeStack) push(node uint32) {
	s.entries[s.top] = node
	s.top++
}

// Pop the next node. Returns false if the stack is empty.
func (s *nodeStack) pop() (uint32, bool) {
	if s.top == 0 {
		return 0, false
	}
	s.top--
	return s.entries[s.top], true
}

// Trace a ray through the BVH and return the nearest hit. If nothing is hit,
// the returned state holds the environment color along the ray direction.
func Trace(in *Inputs, ray Ray) RenderState {
	var (
		state      RenderState
		stack      nodeStack
		nearestHit = NearestHitSentinel
		nodeIndex  uint32
		ok         bool
	)

	for {
		node := &in.Nodes[nodeIndex]

		if node.ObjectCount == 0 {
			near, far := node.LeftChild, node.LeftChild+1
			nearDist := SlabTest(ray, &in.Nodes[near])
			farDist := SlabTest(ray, &in.Nodes[far])
			if nearDist > farDist {
				near, far = far, near
				nearDist, farDist = farDist, nearDist
			}

			if nearDist > nearestHit {
				if nodeIndex, ok = stack.pop(); !ok {
					break
				}
				continue
			}

			nodeIndex = near
			if farDist < nearestHit {
				stack.push(far)
			}
			continue
		}

		first, count := node.GetObjects()
		for _, objIndex := range in.ObjectIndices[first : first+count] {
			candidate := Intersect(ray, in.Primitives[objIndex].Decode(), MinHitDistance, nearestHit, state)
			if candidate.Hit {
				nearestHit = candidate.T
				state = candidate
			}
		}

		if nodeIndex, ok = stack.pop(); !ok {
			break
		}
	}

	if !state.Hit {
		state.Color = in.Environment.Sample(ray.Direction)
	}
	return state
}

// TraceLinear finds the nearest hit by testing every primitive in buffer
// order. It follows the same acceptance rules as Trace and serves as the
// reference that BVH traversal results are checked against.
func TraceLinear(in *Inputs, ray Ray) RenderState {
	var state RenderState
	nearestHit := NearestHitSentinel

	for idx := range in.Primitives {
		candidate := Intersect(ray, in.Primitives[idx].Decode(), MinHitDistance, nearestHit, state)
		if candidate.Hit {
			nearestHit = candidate.T
			state = candidate
		}
	}

	if !state.Hit {
		state.Color = in.Environment.Sample(ray.Direction)
	}
	return state
}
