package reader

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/achilleasa/prism/asset"
	"github.com/achilleasa/prism/log"
	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/types"
)

const defaultMaxBounces uint32 = 8

var (
	defaultColor   = types.Vec3{0.8, 0.8, 0.8}
	defaultHorizon = types.Vec3{1, 1, 1}
	defaultZenith  = types.Vec3{0.5, 0.7, 1.0}
)

type cameraDoc struct {
	Position types.Vec3 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
}

type environmentDoc struct {
	Type    scene.EnvironmentType `yaml:"type"`
	Color   types.Vec3            `yaml:"color"`
	Horizon *types.Vec3           `yaml:"horizon"`
	Zenith  *types.Vec3           `yaml:"zenith"`
	Faces   []string              `yaml:"faces"`
}

type sphereDoc struct {
	Center types.Vec3  `yaml:"center"`
	Radius float32     `yaml:"radius"`
	Color  *types.Vec3 `yaml:"color"`
}

type triangleDoc struct {
	Corners [3]types.Vec3 `yaml:"corners"`
	Color   *types.Vec3   `yaml:"color"`
}

// A horizontal rectangle centered at Center, rotated about the Z axis by
// Orientation radians.
type squareDoc struct {
	Center      types.Vec3  `yaml:"center"`
	Width       float32     `yaml:"width"`
	Height      float32     `yaml:"height"`
	Orientation float32     `yaml:"orientation"`
	Color       *types.Vec3 `yaml:"color"`
}

// A wavefront mesh placed with a scale, rotate (yaw/pitch/roll degrees about
// Z/Y/X) and translate transformation.
type meshDoc struct {
	Path      string      `yaml:"path"`
	Color     *types.Vec3 `yaml:"color"`
	Translate types.Vec3  `yaml:"translate"`
	Rotate    types.Vec3  `yaml:"rotate"`
	Scale     *types.Vec3 `yaml:"scale"`
}

type bvhNodeDoc struct {
	Min         types.Vec3 `yaml:"min"`
	Max         types.Vec3 `yaml:"max"`
	LeftChild   uint32     `yaml:"left_child"`
	ObjectCount uint32     `yaml:"object_count"`
}

type bvhDoc struct {
	Nodes         []bvhNodeDoc `yaml:"nodes"`
	ObjectIndices []uint32     `yaml:"object_indices"`
}

// The scene description document. Primitives are emitted in the order
// spheres, triangles, squares, meshes; explicit BVH object indices refer to
// that order.
type sceneDoc struct {
	Camera      cameraDoc       `yaml:"camera"`
	MaxBounces  uint32          `yaml:"max_bounces"`
	Environment *environmentDoc `yaml:"environment"`
	Spheres     []sphereDoc     `yaml:"spheres"`
	Triangles   []triangleDoc   `yaml:"triangles"`
	Squares     []squareDoc     `yaml:"squares"`
	Meshes      []meshDoc       `yaml:"meshes"`
	Bvh         *bvhDoc         `yaml:"bvh"`
}

type yamlSceneReader struct {
	logger log.Logger
}

func newYamlSceneReader() *yamlSceneReader {
	return &yamlSceneReader{
		logger: log.New("yaml reader"),
	}
}

// Read scene description.
func (r *yamlSceneReader) Read(sceneRes *asset.Resource) (*scene.Frame, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	var doc sceneDoc
	dec := yaml.NewDecoder(sceneRes)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("yamlSceneReader: could not parse %s: %w", sceneRes.Path(), err)
	}

	frame := &scene.Frame{
		Camera: scene.Camera{
			Position: doc.Camera.Position,
			Yaw:      doc.Camera.Yaw,
			Pitch:    doc.Camera.Pitch,
		},
		MaxBounces: doc.MaxBounces,
	}
	if frame.MaxBounces == 0 {
		frame.MaxBounces = defaultMaxBounces
	}

	var err error
	if frame.Environment, err = environment(doc.Environment, sceneRes); err != nil {
		return nil, err
	}

	for _, s := range doc.Spheres {
		frame.Primitives = append(frame.Primitives, scene.NewSphere(s.Center, s.Radius, colorOrDefault(s.Color)))
	}
	for _, t := range doc.Triangles {
		frame.Primitives = append(frame.Primitives, scene.NewTriangle(t.Corners, colorOrDefault(t.Color)))
	}
	for _, sq := range doc.Squares {
		frame.Primitives = append(frame.Primitives, squareTriangles(sq)...)
	}
	for _, m := range doc.Meshes {
		prims, err := r.loadMesh(m, sceneRes)
		if err != nil {
			return nil, err
		}
		frame.Primitives = append(frame.Primitives, prims...)
	}

	if doc.Bvh != nil {
		frame.BvhNodes = make([]scene.BvhNode, len(doc.Bvh.Nodes))
		for idx, n := range doc.Bvh.Nodes {
			frame.BvhNodes[idx] = scene.BvhNode{
				Min:         n.Min,
				LeftChild:   n.LeftChild,
				Max:         n.Max,
				ObjectCount: n.ObjectCount,
			}
		}
		frame.ObjectIndices = doc.Bvh.ObjectIndices
	} else {
		frame.BvhNodes, frame.ObjectIndices = scene.SingleLeafBvh(frame.Primitives)
	}

	r.logger.Noticef("parsed scene with %d primitives in %d ms", len(frame.Primitives), time.Since(start).Milliseconds())
	return frame, nil
}

// Build the environment description. Cube map face paths are resolved
// against the scene resource so compiled frames can be loaded from any
// working directory.
func environment(doc *environmentDoc, sceneRes *asset.Resource) (scene.EnvironmentSpec, error) {
	if doc == nil {
		return scene.EnvironmentSpec{
			Type:    scene.GradientEnvironment,
			Horizon: defaultHorizon,
			Zenith:  defaultZenith,
		}, nil
	}

	spec := scene.EnvironmentSpec{
		Type:    doc.Type,
		Color:   doc.Color,
		Horizon: defaultHorizon,
		Zenith:  defaultZenith,
	}
	if spec.Type == "" {
		spec.Type = scene.SolidEnvironment
	}
	if doc.Horizon != nil {
		spec.Horizon = *doc.Horizon
	}
	if doc.Zenith != nil {
		spec.Zenith = *doc.Zenith
	}

	for _, facePath := range doc.Faces {
		resolved, err := asset.Resolve(facePath, sceneRes)
		if err != nil {
			return spec, err
		}
		spec.Faces = append(spec.Faces, resolved)
	}

	return spec, nil
}

func colorOrDefault(c *types.Vec3) types.Vec3 {
	if c == nil {
		return defaultColor
	}
	return *c
}

// Split a square into two triangles.
func squareTriangles(sq squareDoc) []scene.GeometricPrimitive {
	halfW, halfH := sq.Width*0.5, sq.Height*0.5
	rot := mgl32.Rotate3DZ(sq.Orientation)

	var corners [4]types.Vec3
	for idx, c := range [4]mgl32.Vec3{
		{-halfW, halfH, 0},
		{halfW, halfH, 0},
		{-halfW, -halfH, 0},
		{halfW, -halfH, 0},
	} {
		corners[idx] = types.Vec3(rot.Mul3x1(c)).Add(sq.Center)
	}

	color := colorOrDefault(sq.Color)
	return []scene.GeometricPrimitive{
		scene.NewTriangle([3]types.Vec3{corners[0], corners[2], corners[1]}, color),
		scene.NewTriangle([3]types.Vec3{corners[2], corners[3], corners[1]}, color),
	}
}

// Load a wavefront mesh and transform its triangles to world space.
func (r *yamlSceneReader) loadMesh(m meshDoc, sceneRes *asset.Resource) ([]scene.GeometricPrimitive, error) {
	meshRes, err := asset.NewResource(m.Path, sceneRes)
	if err != nil {
		return nil, fmt.Errorf("yamlSceneReader: could not open mesh %s: %w", m.Path, err)
	}
	defer meshRes.Close()

	wf := newWavefrontReader()
	if err = wf.parse(meshRes); err != nil {
		return nil, err
	}

	scale := mgl32.Vec3{1, 1, 1}
	if m.Scale != nil {
		scale = mgl32.Vec3(*m.Scale)
	}

	// M = T * Rz * Ry * Rx * S
	transform := mgl32.Translate3D(m.Translate[0], m.Translate[1], m.Translate[2]).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(m.Rotate[0]))).
		Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(m.Rotate[1]))).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(m.Rotate[2]))).
		Mul4(mgl32.Scale3D(scale[0], scale[1], scale[2]))

	color := colorOrDefault(m.Color)
	prims := make([]scene.GeometricPrimitive, 0, len(wf.triangles))
	for _, tri := range wf.triangles {
		var corners [3]types.Vec3
		for idx, v := range tri {
			corners[idx] = types.Vec3(mgl32.TransformCoordinate(mgl32.Vec3(v), transform))
		}
		prims = append(prims, scene.NewTriangle(corners, color))
	}

	r.logger.Infof("loaded %d triangles from %s", len(prims), meshRes.Path())
	return prims, nil
}
