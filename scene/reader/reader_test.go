package reader

import (
	"archive/zip"
	"encoding/gob"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/types"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func assertVecNear(t *testing.T, exp, got types.Vec3, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, types.ApproxEqual(exp, got, 1e-5), "expected %v; got %v %v", exp, got, msgAndArgs)
}

const roomScene = `
camera:
  position: [0, -5, 1]
  yaw: 90
  pitch: -10
max_bounces: 4
environment:
  type: cubemap
  faces: [sky/px.png, sky/nx.png, sky/py.png, sky/ny.png, sky/pz.png, sky/nz.png]
spheres:
  - center: [0, 0, 1]
    radius: 1
    color: [0.9, 0.1, 0.1]
triangles:
  - corners: [[0, 0, 0], [1, 0, 0], [0, 1, 0]]
squares:
  - center: [0, 0, -1]
    width: 4
    height: 2
    orientation: 0
    color: [0.5, 0.5, 0.5]
`

func TestReadYamlScene(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "room.yaml", roomScene)

	frame, err := ReadScene(path)
	require.NoError(t, err)

	assert.Equal(t, scene.Camera{Position: types.Vec3{0, -5, 1}, Yaw: 90, Pitch: -10}, frame.Camera)
	assert.Equal(t, uint32(4), frame.MaxBounces)

	// 1 sphere + 1 triangle + 2 square halves
	require.Len(t, frame.Primitives, 4)
	sphere, ok := frame.Primitives[0].Decode().(scene.Sphere)
	require.True(t, ok)
	assert.Equal(t, types.Vec3{0.9, 0.1, 0.1}, sphere.Color)

	tri, ok := frame.Primitives[1].Decode().(scene.Triangle)
	require.True(t, ok)
	assert.Equal(t, types.Vec3{0.8, 0.8, 0.8}, tri.Color, "missing colors should use the default")

	// Without a bvh block the reader emits a single leaf.
	require.Len(t, frame.BvhNodes, 1)
	assert.True(t, frame.BvhNodes[0].IsLeaf())
	assert.Equal(t, []uint32{0, 1, 2, 3}, frame.ObjectIndices)

	assert.Equal(t, scene.CubeMapEnvironment, frame.Environment.Type)
	require.Len(t, frame.Environment.Faces, 6)
	assert.Equal(t, filepath.Join(dir, "sky", "px.png"), frame.Environment.Faces[0])
}

func TestReadYamlDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "minimal.yml", "spheres:\n  - center: [3, 0, 0]\n    radius: 0.5\n")

	frame, err := ReadScene(path)
	require.NoError(t, err)

	assert.Equal(t, defaultMaxBounces, frame.MaxBounces)
	assert.Equal(t, scene.GradientEnvironment, frame.Environment.Type)
	assert.Equal(t, defaultHorizon, frame.Environment.Horizon)
	assert.Equal(t, defaultZenith, frame.Environment.Zenith)
}

func TestSquareTriangles(t *testing.T) {
	sq := squareDoc{
		Center:      types.Vec3{1, 2, 3},
		Width:       2,
		Height:      4,
		Orientation: math.Pi / 2,
	}
	tris := squareTriangles(sq)
	require.Len(t, tris, 2)

	// A quarter turn swaps the extents: width runs along Y.
	first := tris[0].Decode().(scene.Triangle)
	assertVecNear(t, types.Vec3{-1, 1, 3}, first.Corners[0])
	assertVecNear(t, types.Vec3{3, 1, 3}, first.Corners[1])
	assertVecNear(t, types.Vec3{-1, 3, 3}, first.Corners[2])

	second := tris[1].Decode().(scene.Triangle)
	assertVecNear(t, types.Vec3{3, 1, 3}, second.Corners[0])
	assertVecNear(t, types.Vec3{3, 3, 3}, second.Corners[1])
	assertVecNear(t, types.Vec3{-1, 3, 3}, second.Corners[2])

	// Both halves share the same plane orientation.
	assertVecNear(t, first.FaceNormal().Normalize(), second.FaceNormal().Normalize())
}

func TestReadYamlMesh(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "meshes/tri.obj", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	path := writeFile(t, dir, "scene.yaml", `
meshes:
  - path: meshes/tri.obj
    color: [0, 1, 0]
    translate: [10, 0, 0]
    rotate: [90, 0, 0]
    scale: [2, 2, 2]
`)

	frame, err := ReadScene(path)
	require.NoError(t, err)
	require.Len(t, frame.Primitives, 1)

	tri := frame.Primitives[0].Decode().(scene.Triangle)
	assert.Equal(t, types.Vec3{0, 1, 0}, tri.Color)
	assertVecNear(t, types.Vec3{10, 0, 0}, tri.Corners[0])
	assertVecNear(t, types.Vec3{10, 2, 0}, tri.Corners[1])
	assertVecNear(t, types.Vec3{8, 0, 0}, tri.Corners[2])
}

func TestReadYamlExplicitBvh(t *testing.T) {
	path := writeFile(t, t.TempDir(), "split.yaml", `
spheres:
  - center: [-2, 0, 0]
    radius: 1
  - center: [2, 0, 0]
    radius: 1
bvh:
  nodes:
    - {min: [-3, -1, -1], max: [3, 1, 1], left_child: 1, object_count: 0}
    - {min: [-3, -1, -1], max: [-1, 1, 1], left_child: 0, object_count: 1}
    - {min: [1, -1, -1], max: [3, 1, 1], left_child: 1, object_count: 1}
  object_indices: [0, 1]
`)

	frame, err := ReadScene(path)
	require.NoError(t, err)
	require.Len(t, frame.BvhNodes, 3)
	assert.False(t, frame.BvhNodes[0].IsLeaf())

	first, count := frame.BvhNodes[2].GetObjects()
	assert.Equal(t, uint32(1), first)
	assert.Equal(t, uint32(1), count)
}

func TestReadSceneErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadScene(writeFile(t, dir, "scene.obj", "v 0 0 0\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = ReadScene(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = ReadScene(writeFile(t, dir, "typo.yaml", "sphere:\n  - radius: 1\n"))
	assert.Error(t, err, "unknown fields should be rejected")

	_, err = ReadScene(writeFile(t, dir, "empty.yaml", "camera:\n  yaw: 10\n"))
	assert.ErrorIs(t, err, scene.ErrNoPrimitives)

	_, err = ReadScene(writeFile(t, dir, "badbvh.yaml", `
spheres:
  - center: [0, 0, 0]
    radius: 1
bvh:
  nodes:
    - {min: [-1, -1, -1], max: [1, 1, 1], left_child: 0, object_count: 2}
  object_indices: [0]
`))
	assert.ErrorIs(t, err, scene.ErrInvalidBvh)

	_, err = ReadScene(writeFile(t, dir, "badmesh.yaml", "meshes:\n  - path: nope.obj\n"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func writeZip(t *testing.T, path string, entries map[string]interface{}) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, payload := range entries {
		w, err := zw.Create(name)
		require.NoError(t, err)
		require.NoError(t, gob.NewEncoder(w).Encode(payload))
	}
	require.NoError(t, zw.Close())
}

func TestReadZipScene(t *testing.T) {
	prims := []scene.GeometricPrimitive{
		scene.NewSphere(types.Vec3{0, 0, 0}, 1, types.Vec3{1, 0, 0}),
	}
	nodes, indices := scene.SingleLeafBvh(prims)
	exp := &scene.Frame{
		Primitives:    prims,
		BvhNodes:      nodes,
		ObjectIndices: indices,
		Camera:        scene.Camera{Position: types.Vec3{-4, 0, 0}},
		MaxBounces:    3,
		Environment:   scene.EnvironmentSpec{Type: scene.SolidEnvironment, Color: types.Vec3{0, 0, 1}},
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "frame.zip")
	writeZip(t, path, map[string]interface{}{
		dataFile:     exp,
		"readme.bin": "ignored",
	})

	frame, err := ReadScene(path)
	require.NoError(t, err)
	assert.Equal(t, exp, frame)

	emptyPath := filepath.Join(dir, "empty.zip")
	writeZip(t, emptyPath, map[string]interface{}{"other.bin": 1})
	_, err = ReadScene(emptyPath)
	assert.Error(t, err)

	_, err = ReadScene(writeFile(t, dir, "corrupt.zip", "definitely not a zip"))
	assert.Error(t, err)
}

func TestReadBundledScene(t *testing.T) {
	frame, err := ReadScene(filepath.Join("..", "..", "scenes", "mirror_spheres.yaml"))
	require.NoError(t, err)

	// 3 spheres + a floor split into 2 triangles
	assert.Len(t, frame.Primitives, 5)
	assert.Equal(t, uint32(6), frame.MaxBounces)
	assert.Equal(t, scene.GradientEnvironment, frame.Environment.Type)
}
