package scene

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/achilleasa/prism/types"
)

// Per-frame kernel parameters. The camera vectors form an orthonormal basis.
type SceneData struct {
	CameraPos      types.Vec3
	CameraForwards types.Vec3
	CameraRight    types.Vec3
	CameraUp       types.Vec3

	// The max number of traced segments per pixel path.
	MaxBounces uint32

	// Total primitive count. Informational only.
	ObjectCount uint32
}

type EnvironmentType string

const (
	SolidEnvironment    EnvironmentType = "solid"
	GradientEnvironment EnvironmentType = "gradient"
	CubeMapEnvironment  EnvironmentType = "cubemap"
)

// Describes the environment that is sampled by rays that escape the scene.
type EnvironmentSpec struct {
	Type EnvironmentType

	// Used by solid environments.
	Color types.Vec3

	// Used by gradient environments.
	Horizon types.Vec3
	Zenith  types.Vec3

	// Cube map face images in +X, -X, +Y, -Y, +Z, -Z order.
	Faces []string
}

// A Frame bundles all read-only inputs for rendering a frame.
type Frame struct {
	// Primitives are stored as a flat array of fixed-size records.
	Primitives []GeometricPrimitive

	// Bvh nodes stored as a contiguous list; the root is at index 0.
	BvhNodes []BvhNode

	// Leafs reference contiguous ranges of this list.
	ObjectIndices []uint32

	Camera     Camera
	MaxBounces uint32

	Environment EnvironmentSpec
}

// Build the kernel parameters for the current camera.
func (f *Frame) SceneData() SceneData {
	fwd, right, up := f.Camera.Basis()
	return SceneData{
		CameraPos:      f.Camera.Position,
		CameraForwards: fwd,
		CameraRight:    right,
		CameraUp:       up,
		MaxBounces:     f.MaxBounces,
		ObjectCount:    uint32(len(f.Primitives)),
	}
}

// Build a tabular representation of frame statistics.
func (f *Frame) Stats() string {
	var spheres, triangles int
	for _, p := range f.Primitives {
		switch p.Type {
		case SpherePrimitive:
			spheres++
		case TrianglePrimitive:
			triangles++
		}
	}

	var leafs int
	for idx := range f.BvhNodes {
		if f.BvhNodes[idx].IsLeaf() {
			leafs++
		}
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Asset", "Count", "Size"})
	table.Append([]string{"Geometry", "---", fmt.Sprint(len(f.Primitives)), fmtSize(f.Primitives)})
	table.Append([]string{"", "Spheres", fmt.Sprint(spheres), ""})
	table.Append([]string{"", "Triangles", fmt.Sprint(triangles), ""})
	table.Append([]string{" ", " ", " ", " "})
	table.Append([]string{"BVH", "---", "", fmtSize(f.BvhNodes, f.ObjectIndices)})
	table.Append([]string{"", "Nodes", fmt.Sprint(len(f.BvhNodes)), fmtSize(f.BvhNodes)})
	table.Append([]string{"", "Leafs", fmt.Sprint(leafs), ""})
	table.Append([]string{"", "Object indices", fmt.Sprint(len(f.ObjectIndices)), fmtSize(f.ObjectIndices)})
	table.SetFooter([]string{"Total", " ", " ", strings.TrimLeft(fmtSize(f.Primitives, f.BvhNodes, f.ObjectIndices), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
