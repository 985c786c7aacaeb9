package renderer

import (
	"context"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/achilleasa/prism/envmap"
	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/tracer"
	"github.com/achilleasa/prism/types"
)

var testEnv = envmap.Gradient{Horizon: types.Vec3{1, 1, 1}, Zenith: types.Vec3{0.2, 0.4, 1}}

func testFrame() *scene.Frame {
	prims := []scene.GeometricPrimitive{
		scene.NewSphere(types.Vec3{5, 0, 0}, 1, types.Vec3{0.9, 0.2, 0.2}),
		scene.NewTriangle([3]types.Vec3{{-10, -10, -1}, {10, -10, -1}, {-10, 10, -1}}, types.Vec3{0.5, 0.5, 0.5}),
	}
	nodes, indices := scene.SingleLeafBvh(prims)
	return &scene.Frame{
		Primitives:    prims,
		BvhNodes:      nodes,
		ObjectIndices: indices,
		Camera:        scene.Camera{Position: types.Vec3{0, 0, 0}},
		MaxBounces:    4,
	}
}

func newTestRenderer(t *testing.T, frame *scene.Frame, env tracer.Environment, opts Options) Renderer {
	t.Helper()
	r, err := NewCPU(frame, env, opts)
	require.NoError(t, err)
	t.Cleanup(r.Close)
	return r
}

func TestRenderMatchesKernel(t *testing.T) {
	frame := testFrame()
	opts := Options{FrameW: 13, FrameH: 17, Workers: 3, Gamma: 2.2}
	r := newTestRenderer(t, frame, testEnv, opts)

	img, err := r.Render(context.Background())
	require.NoError(t, err)
	require.Equal(t, 13, img.Rect.Dx())
	require.Equal(t, 17, img.Rect.Dy())

	in := tracer.NewInputs(frame, testEnv)
	exp := make([]uint8, 4)
	for y := 0; y < 17; y++ {
		for x := 0; x < 13; x++ {
			encodePixel(exp, tracer.Pixel(in, x, y, 13, 17), 1/2.2)
			offset := img.PixOffset(x, y)
			require.Equal(t, exp, img.Pix[offset:offset+4], "pixel (%d, %d)", x, y)
		}
	}
}

func TestRenderIsIndependentOfWorkerCount(t *testing.T) {
	single := newTestRenderer(t, testFrame(), testEnv, Options{FrameW: 16, FrameH: 16, Workers: 1, Scheduler: "naive"})
	multi := newTestRenderer(t, testFrame(), testEnv, Options{FrameW: 16, FrameH: 16, Workers: 5})

	exp, err := single.Render(context.Background())
	require.NoError(t, err)

	// Run a few frames so the perfect scheduler rebalances blocks.
	for i := 0; i < 3; i++ {
		got, err := multi.Render(context.Background())
		require.NoError(t, err)
		assert.Equal(t, exp.Pix, got.Pix, "frame %d", i)
	}
}

func TestEncodePixel(t *testing.T) {
	type spec struct {
		in       float32
		invGamma float64
		exp      uint8
	}
	specs := []spec{
		{0, 1, 0},
		{1, 1, 255},
		{0.5, 1, 128},
		{2, 1, 255},
		{-1, 1, 0},
		{float32(math.NaN()), 1, 0},
		{0.5, 1 / 2.2, 186},
		{1, 1 / 2.2, 255},
	}

	pix := make([]uint8, 4)
	for index, s := range specs {
		encodePixel(pix, types.Splat(s.in), s.invGamma)
		for ch := 0; ch < 3; ch++ {
			if pix[ch] != s.exp {
				t.Fatalf("[spec %d] expected channel %d to be %d; got %d", index, ch, s.exp, pix[ch])
			}
		}
		if pix[3] != 255 {
			t.Fatalf("[spec %d] expected alpha to be 255; got %d", index, pix[3])
		}
	}
}

// Cancels the render context the first time it is sampled.
type cancelEnv struct {
	cancel context.CancelFunc
}

func (e cancelEnv) Sample(_ types.Vec3) types.Vec3 {
	e.cancel()
	return types.Vec3{}
}

func TestRenderInterrupted(t *testing.T) {
	r := newTestRenderer(t, testFrame(), testEnv, Options{FrameW: 8, FrameH: 8, Workers: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	img, err := r.Render(ctx)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Nil(t, img)

	ctx, cancel = context.WithCancel(context.Background())
	defer cancel()
	r = newTestRenderer(t, testFrame(), cancelEnv{cancel}, Options{FrameW: 8, FrameH: 8, Workers: 1})
	img, err = r.Render(ctx)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.Nil(t, img)
}

func TestNewCPUErrors(t *testing.T) {
	_, err := NewCPU(nil, testEnv, Options{FrameW: 1, FrameH: 1})
	assert.ErrorIs(t, err, ErrSceneNotDefined)

	_, err = NewCPU(testFrame(), nil, Options{FrameW: 1, FrameH: 1})
	assert.ErrorIs(t, err, ErrEnvironmentNotDefined)

	_, err = NewCPU(testFrame(), testEnv, Options{FrameW: 0, FrameH: 1})
	assert.ErrorIs(t, err, ErrInvalidFrameSize)

	_, err = NewCPU(testFrame(), testEnv, Options{FrameW: 1, FrameH: 0})
	assert.ErrorIs(t, err, ErrInvalidFrameSize)
}

func TestFrameStats(t *testing.T) {
	r := newTestRenderer(t, testFrame(), testEnv, Options{FrameW: 4, FrameH: 3, Workers: 8})

	_, err := r.Render(context.Background())
	require.NoError(t, err)
	first := r.Stats()

	// Workers are capped to the frame height.
	require.Len(t, first.Workers, 3)
	assert.NotEqual(t, uuid.Nil, first.FrameID)

	var rows uint32
	var percent float32
	for _, stat := range first.Workers {
		rows += stat.BlockH
		percent += stat.FramePercent
	}
	assert.Equal(t, uint32(3), rows)
	assert.InDelta(t, 100, percent, 1e-3)

	table := first.Table()
	assert.Contains(t, table, "cpu-0")
	assert.Contains(t, table, "TOTAL")
	assert.Contains(t, table, first.FrameID.String())

	_, err = r.Render(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, first.FrameID, r.Stats().FrameID)
}

func TestSetCamera(t *testing.T) {
	opts := Options{FrameW: 8, FrameH: 8, Workers: 2, Gamma: 1}
	r := newTestRenderer(t, testFrame(), testEnv, opts)

	before, err := r.Render(context.Background())
	require.NoError(t, err)

	// Looking straight up only the environment is visible.
	r.SetCamera(scene.Camera{Position: types.Vec3{0, 0, 0}, Pitch: 89})
	after, err := r.Render(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, before.Pix, after.Pix)

	frame := testFrame()
	frame.Camera.Pitch = 89
	in := tracer.NewInputs(frame, testEnv)
	exp := make([]uint8, 4)
	encodePixel(exp, tracer.Pixel(in, 3, 5, 8, 8), 1)
	offset := after.PixOffset(3, 5)
	assert.Equal(t, exp, after.Pix[offset:offset+4])
}

func TestRenderAfterClose(t *testing.T) {
	r, err := NewCPU(testFrame(), testEnv, Options{FrameW: 2, FrameH: 2, Workers: 2})
	require.NoError(t, err)

	r.Close()
	r.Close()

	_, err = r.Render(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
