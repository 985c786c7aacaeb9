package scene

import (
	"math"

	"github.com/achilleasa/prism/types"
)

// The maximum supported BVH depth. The traversal stack is sized to this
// value so deeper trees are rejected by Validate.
const MaxBvhDepth = 32

// Bvh node definition. Each node takes 32 bytes and mirrors the layout of
// the GPU buffer record:
//
//   - For internal nodes ObjectCount is 0 and LeftChild points to the first
//     of two sibling nodes stored at LeftChild and LeftChild+1.
//   - For leafs ObjectCount is > 0 and LeftChild points to the first entry
//     of the leaf range in the object index lookup list.
type BvhNode struct {
	Min       types.Vec3
	LeftChild uint32

	Max         types.Vec3
	ObjectCount uint32
}

// Returns true if this is a leaf node.
func (n *BvhNode) IsLeaf() bool {
	return n.ObjectCount > 0
}

// Set bounding box.
func (n *BvhNode) SetBBox(bbox [2]types.Vec3) {
	n.Min = bbox[0]
	n.Max = bbox[1]
}

// Set the index of the first of the two child nodes.
func (n *BvhNode) SetChildNodes(first uint32) {
	n.LeftChild = first
	n.ObjectCount = 0
}

// Set leaf object index range.
func (n *BvhNode) SetObjects(firstIndex, count uint32) {
	n.LeftChild = firstIndex
	n.ObjectCount = count
}

// Get leaf object index range.
func (n *BvhNode) GetObjects() (firstIndex, count uint32) {
	return n.LeftChild, n.ObjectCount
}

// Return an empty bbox that any union operation will replace.
func EmptyBBox() [2]types.Vec3 {
	return [2]types.Vec3{
		{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Grow bbox so that it also encloses other.
func UnionBBox(bbox, other [2]types.Vec3) [2]types.Vec3 {
	return [2]types.Vec3{
		types.MinVec3(bbox[0], other[0]),
		types.MaxVec3(bbox[1], other[1]),
	}
}

// Generate the trivial hierarchy for a primitive list: a single root leaf
// whose box encloses every primitive and whose index range covers all of them
// in order. Scene descriptions that do not ship a prebuilt tree use this.
func SingleLeafBvh(prims []GeometricPrimitive) ([]BvhNode, []uint32) {
	bbox := EmptyBBox()
	indices := make([]uint32, len(prims))
	for idx := range prims {
		indices[idx] = uint32(idx)
		if geom := prims[idx].Decode(); geom != nil {
			bbox = UnionBBox(bbox, geom.BBox())
		}
	}

	root := BvhNode{}
	root.SetBBox(bbox)
	root.SetObjects(0, uint32(len(prims)))
	return []BvhNode{root}, indices
}
