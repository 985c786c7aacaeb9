package scene

import (
	"testing"

	"github.com/achilleasa/prism/types"
)

func TestSpherePayloadLayout(t *testing.T) {
	prim := NewSphere(types.Vec3{1, 2, 3}, 4, types.Vec3{0.5, 0.6, 0.7})

	expPayload := [PayloadSize]float32{1, 2, 3, 4, 0.5, 0.6, 0.7}
	if prim.Payload != expPayload {
		t.Fatalf("expected payload to be %v; got %v", expPayload, prim.Payload)
	}

	sphere, ok := prim.Decode().(Sphere)
	if !ok {
		t.Fatalf("expected primitive to decode to a Sphere; got %T", prim.Decode())
	}
	if sphere.Origin != (types.Vec3{1, 2, 3}) || sphere.Radius != 4 || sphere.Color != (types.Vec3{0.5, 0.6, 0.7}) {
		t.Fatalf("unexpected decoded sphere %+v", sphere)
	}
}

func TestTrianglePayloadLayout(t *testing.T) {
	corners := [3]types.Vec3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	prim := NewTriangle(corners, types.Vec3{0.1, 0.2, 0.3})

	expPayload := [PayloadSize]float32{0, 0, 0, 0, 0.1, 0.2, 0.3, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if prim.Payload != expPayload {
		t.Fatalf("expected payload to be %v; got %v", expPayload, prim.Payload)
	}

	tri, ok := prim.Decode().(Triangle)
	if !ok {
		t.Fatalf("expected primitive to decode to a Triangle; got %T", prim.Decode())
	}
	if tri.Corners != corners || tri.Color != (types.Vec3{0.1, 0.2, 0.3}) {
		t.Fatalf("unexpected decoded triangle %+v", tri)
	}
}

func TestUnknownPrimitiveType(t *testing.T) {
	prim := GeometricPrimitive{Type: PrimitiveType(7)}
	if geom := prim.Decode(); geom != nil {
		t.Fatalf("expected unknown primitive type to decode to nil; got %T", geom)
	}
}

func TestGeometryBBox(t *testing.T) {
	type spec struct {
		prim   GeometricPrimitive
		expBox [2]types.Vec3
	}
	specs := []spec{
		{
			NewSphere(types.Vec3{0, 1, 2}, 1, types.Vec3{}),
			[2]types.Vec3{{-1, 0, 1}, {1, 2, 3}},
		},
		{
			NewTriangle([3]types.Vec3{{0, 0, 0}, {2, -1, 0}, {1, 3, 5}}, types.Vec3{}),
			[2]types.Vec3{{0, -1, 0}, {2, 3, 5}},
		},
	}

	for index, s := range specs {
		if got := s.prim.Decode().BBox(); got != s.expBox {
			t.Fatalf("[spec %d] expected bbox %v; got %v", index, s.expBox, got)
		}
	}
}

func TestSingleLeafBvh(t *testing.T) {
	prims := []GeometricPrimitive{
		NewSphere(types.Vec3{-5, 0, 0}, 1, types.Vec3{1, 1, 1}),
		NewTriangle([3]types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 4, 2}}, types.Vec3{1, 1, 1}),
	}

	nodes, indices := SingleLeafBvh(prims)
	if len(nodes) != 1 {
		t.Fatalf("expected 1 node; got %d", len(nodes))
	}
	first, count := nodes[0].GetObjects()
	if first != 0 || count != 2 {
		t.Fatalf("expected root leaf to cover [0, 2); got first %d, count %d", first, count)
	}
	if len(indices) != 2 || indices[0] != 0 || indices[1] != 1 {
		t.Fatalf("expected identity index list; got %v", indices)
	}
	expMin, expMax := types.Vec3{-6, -1, -1}, types.Vec3{1, 4, 2}
	if nodes[0].Min != expMin || nodes[0].Max != expMax {
		t.Fatalf("expected root bbox [%v, %v]; got [%v, %v]", expMin, expMax, nodes[0].Min, nodes[0].Max)
	}
}
