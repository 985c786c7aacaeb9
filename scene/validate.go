package scene

import (
	"errors"
	"fmt"
)

var (
	ErrNoPrimitives     = errors.New("scene: no primitives defined")
	ErrInvalidPrimitive = errors.New("scene: invalid primitive")
	ErrInvalidBvh       = errors.New("scene: invalid bvh")
	ErrInvalidBounces   = errors.New("scene: max bounces must be > 0")
)

// Triangles whose doubled area is below this threshold are considered degenerate.
const minTriangleArea float32 = 1e-12

// Validate checks the invariants that the tracing kernel relies on but never
// verifies itself: known primitive types, well-formed geometry, in-range node
// and leaf references, a tree no deeper than MaxBvhDepth and leaf ranges that
// cover every primitive exactly once.
func (f *Frame) Validate() error {
	if len(f.Primitives) == 0 {
		return ErrNoPrimitives
	}
	if f.MaxBounces == 0 {
		return ErrInvalidBounces
	}

	for idx := range f.Primitives {
		if err := validatePrimitive(&f.Primitives[idx]); err != nil {
			return fmt.Errorf("%w %d: %s", ErrInvalidPrimitive, idx, err.Error())
		}
	}

	return f.validateBvh()
}

func validatePrimitive(p *GeometricPrimitive) error {
	switch geom := p.Decode().(type) {
	case Sphere:
		if !(geom.Radius > 0) {
			return fmt.Errorf("sphere radius must be > 0; got %f", geom.Radius)
		}
	case Triangle:
		if geom.FaceNormal().Len() < minTriangleArea {
			return fmt.Errorf("degenerate triangle %v", geom.Corners)
		}
	default:
		return fmt.Errorf("unknown primitive type %d", p.Type)
	}
	return nil
}

func (f *Frame) validateBvh() error {
	if len(f.BvhNodes) == 0 {
		return fmt.Errorf("%w: no nodes defined", ErrInvalidBvh)
	}

	for idx, objIndex := range f.ObjectIndices {
		if int(objIndex) >= len(f.Primitives) {
			return fmt.Errorf("%w: object index entry %d references missing primitive %d", ErrInvalidBvh, idx, objIndex)
		}
	}

	type pending struct {
		node  uint32
		depth int
	}

	visited := make([]bool, len(f.BvhNodes))
	coverage := make([]int, len(f.Primitives))
	work := []pending{{0, 0}}
	for len(work) > 0 {
		item := work[len(work)-1]
		work = work[:len(work)-1]

		if visited[item.node] {
			return fmt.Errorf("%w: node %d is reachable from more than one parent", ErrInvalidBvh, item.node)
		}
		visited[item.node] = true

		if item.depth > MaxBvhDepth {
			return fmt.Errorf("%w: tree depth exceeds %d", ErrInvalidBvh, MaxBvhDepth)
		}

		node := &f.BvhNodes[item.node]
		for axis := 0; axis < 3; axis++ {
			if node.Min[axis] > node.Max[axis] {
				return fmt.Errorf("%w: node %d has an inverted bbox along axis %d", ErrInvalidBvh, item.node, axis)
			}
		}

		if node.IsLeaf() {
			first, count := node.GetObjects()
			if uint64(first)+uint64(count) > uint64(len(f.ObjectIndices)) {
				return fmt.Errorf("%w: leaf %d range [%d, %d) exceeds object index list", ErrInvalidBvh, item.node, first, first+count)
			}
			for _, objIndex := range f.ObjectIndices[first : first+count] {
				coverage[objIndex]++
			}
			continue
		}

		if uint64(node.LeftChild)+1 >= uint64(len(f.BvhNodes)) {
			return fmt.Errorf("%w: node %d references missing children %d, %d", ErrInvalidBvh, item.node, node.LeftChild, node.LeftChild+1)
		}
		if node.LeftChild <= item.node {
			return fmt.Errorf("%w: node %d children must follow their parent", ErrInvalidBvh, item.node)
		}
		work = append(work,
			pending{node.LeftChild, item.depth + 1},
			pending{node.LeftChild + 1, item.depth + 1},
		)
	}

	for primIndex, count := range coverage {
		if count != 1 {
			return fmt.Errorf("%w: primitive %d is referenced by %d leafs; expected exactly 1", ErrInvalidBvh, primIndex, count)
		}
	}

	return nil
}
