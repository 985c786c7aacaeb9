package scene

import "github.com/achilleasa/prism/types"

type PrimitiveType uint32

const (
	SpherePrimitive PrimitiveType = iota
	TrianglePrimitive
)

// The number of float slots in a primitive payload.
const PayloadSize = 16

// Payload slot offsets. Both primitive kinds share the color slots so that
// colors can be read without branching on the primitive type.
const (
	slotCenter  = 0
	slotRadius  = 3
	slotColor   = 4
	slotCornerA = 7
	slotCornerB = 10
	slotCornerC = 13
)

// GeometricPrimitive is the fixed-size record stored in the primitive buffer.
// The payload layout depends on Type:
//
//   - [0-2] sphere center
//   - [3] sphere radius
//   - [4-6] color (both types)
//   - [7-9], [10-12], [13-15] triangle corners
type GeometricPrimitive struct {
	Type    PrimitiveType
	Payload [PayloadSize]float32
}

// Geometry is the decoded form of a GeometricPrimitive. It is implemented
// by Sphere and Triangle only.
type Geometry interface {
	// Get the geometry bounding box.
	BBox() [2]types.Vec3

	// Get the geometry center.
	Center() types.Vec3

	// Get the surface color.
	SurfaceColor() types.Vec3

	geometry()
}

type Sphere struct {
	Origin types.Vec3
	Radius float32
	Color  types.Vec3
}

type Triangle struct {
	Corners [3]types.Vec3
	Color   types.Vec3
}

// Create a new sphere primitive.
func NewSphere(center types.Vec3, radius float32, color types.Vec3) GeometricPrimitive {
	prim := GeometricPrimitive{Type: SpherePrimitive}
	prim.put(slotCenter, center)
	prim.Payload[slotRadius] = radius
	prim.put(slotColor, color)
	return prim
}

// Create a new triangle primitive.
func NewTriangle(corners [3]types.Vec3, color types.Vec3) GeometricPrimitive {
	prim := GeometricPrimitive{Type: TrianglePrimitive}
	prim.put(slotCornerA, corners[0])
	prim.put(slotCornerB, corners[1])
	prim.put(slotCornerC, corners[2])
	prim.put(slotColor, color)
	return prim
}

// Decode the payload according to the primitive type. Records with an
// unknown type decode to nil.
func (p *GeometricPrimitive) Decode() Geometry {
	switch p.Type {
	case SpherePrimitive:
		return Sphere{
			Origin: p.get(slotCenter),
			Radius: p.Payload[slotRadius],
			Color:  p.get(slotColor),
		}
	case TrianglePrimitive:
		return Triangle{
			Corners: [3]types.Vec3{
				p.get(slotCornerA),
				p.get(slotCornerB),
				p.get(slotCornerC),
			},
			Color: p.get(slotColor),
		}
	}
	return nil
}

func (p *GeometricPrimitive) put(offset int, v types.Vec3) {
	copy(p.Payload[offset:offset+3], v[:])
}

func (p *GeometricPrimitive) get(offset int) types.Vec3 {
	return types.Vec3{p.Payload[offset], p.Payload[offset+1], p.Payload[offset+2]}
}

func (s Sphere) BBox() [2]types.Vec3 {
	r := types.Splat(s.Radius)
	return [2]types.Vec3{s.Origin.Sub(r), s.Origin.Add(r)}
}

func (s Sphere) Center() types.Vec3 {
	return s.Origin
}

func (s Sphere) SurfaceColor() types.Vec3 {
	return s.Color
}

func (Sphere) geometry() {}

func (t Triangle) BBox() [2]types.Vec3 {
	min := types.MinVec3(types.MinVec3(t.Corners[0], t.Corners[1]), t.Corners[2])
	max := types.MaxVec3(types.MaxVec3(t.Corners[0], t.Corners[1]), t.Corners[2])
	return [2]types.Vec3{min, max}
}

func (t Triangle) Center() types.Vec3 {
	return t.Corners[0].Add(t.Corners[1]).Add(t.Corners[2]).Mul(1.0 / 3.0)
}

func (t Triangle) SurfaceColor() types.Vec3 {
	return t.Color
}

// Get the unnormalized face normal (ab x ac). Its length is twice the triangle area.
func (t Triangle) FaceNormal() types.Vec3 {
	return t.Corners[1].Sub(t.Corners[0]).Cross(t.Corners[2].Sub(t.Corners[0]))
}

func (Triangle) geometry() {}
