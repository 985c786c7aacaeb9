package renderer

import (
	"context"
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/achilleasa/prism/log"
	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/tracer"
)

// A renderer that splits each frame into row blocks and traces them on a
// pool of persistent worker goroutines.
type cpuRenderer struct {
	sync.Mutex

	logger log.Logger
	wg     sync.WaitGroup

	frame     scene.Frame
	env       tracer.Environment
	scheduler BlockScheduler
	options   Options
	invGamma  float64

	workers []*worker
	stats   FrameStats
	closed  bool
}

// Create a new cpu renderer for a frame. The frame's buffers are shared with
// the caller and must not be modified while the renderer is in use.
func NewCPU(frame *scene.Frame, env tracer.Environment, opts Options) (Renderer, error) {
	if frame == nil {
		return nil, ErrSceneNotDefined
	}
	if env == nil {
		return nil, ErrEnvironmentNotDefined
	}
	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, ErrInvalidFrameSize
	}

	numWorkers := opts.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	// Every worker needs at least one row.
	if numWorkers > int(opts.FrameH) {
		numWorkers = int(opts.FrameH)
	}

	r := &cpuRenderer{
		logger:    log.New("cpu renderer"),
		frame:     *frame,
		env:       env,
		scheduler: NewScheduler(opts.Scheduler),
		options:   opts,
		invGamma:  1,
	}
	if opts.Gamma > 0 {
		r.invGamma = 1.0 / float64(opts.Gamma)
	}

	for idx := 0; idx < numWorkers; idx++ {
		r.workers = append(r.workers, startWorker(idx, &r.wg))
	}
	r.logger.Infof("started %d workers for %dx%d frames", numWorkers, opts.FrameW, opts.FrameH)

	return r, nil
}

// Move the camera used by subsequent Render calls.
func (r *cpuRenderer) SetCamera(camera scene.Camera) {
	r.Lock()
	defer r.Unlock()
	r.frame.Camera = camera
}

// Render frame.
func (r *cpuRenderer) Render(ctx context.Context) (*image.NRGBA, error) {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if ctx.Err() != nil {
		return nil, ErrInterrupted
	}

	start := time.Now()
	frameID := uuid.New()
	frameW, frameH := r.options.FrameW, r.options.FrameH
	img := image.NewNRGBA(image.Rect(0, 0, int(frameW), int(frameH)))
	inputs := tracer.NewInputs(&r.frame, r.env)

	stats := make([]WorkerStat, len(r.workers))
	for idx, w := range r.workers {
		stats[idx] = w.stats
	}
	blockAssignment := r.scheduler.Schedule(stats, frameH)

	// Buffered so workers never block when replying.
	doneChan := make(chan uint32, len(r.workers))
	errChan := make(chan error, len(r.workers))

	var blockY uint32
	pending := 0
	for idx, w := range r.workers {
		rows := blockAssignment[idx]
		if rows == 0 {
			w.stats.BlockH = 0
			w.stats.RenderTime = 0
			continue
		}
		w.Enqueue(BlockRequest{
			BlockY:   blockY,
			BlockH:   rows,
			Inputs:   inputs,
			Frame:    img,
			InvGamma: r.invGamma,
			Ctx:      ctx,
			DoneChan: doneChan,
			ErrChan:  errChan,
		})
		blockY += rows
		pending++
	}

	// Wait for every block so no worker touches img after we return.
	var err error
	for ; pending > 0; pending-- {
		select {
		case <-doneChan:
		case blockErr := <-errChan:
			if err == nil {
				err = blockErr
			}
		}
	}
	if err != nil {
		r.logger.Warningf("frame %s: %s", frameID, err.Error())
		return nil, err
	}

	r.stats = FrameStats{
		FrameID:    frameID,
		Workers:    make([]WorkerStat, len(r.workers)),
		RenderTime: time.Since(start),
	}
	for idx, w := range r.workers {
		r.stats.Workers[idx] = w.stats
		r.stats.Workers[idx].BlockH = blockAssignment[idx]
		r.stats.Workers[idx].FramePercent = 100 * float32(blockAssignment[idx]) / float32(frameH)
	}

	r.logger.Debugf("rendered frame %s in %s", frameID, r.stats.RenderTime)
	return img, nil
}

// Get statistics for the last rendered frame.
func (r *cpuRenderer) Stats() FrameStats {
	r.Lock()
	defer r.Unlock()
	return r.stats
}

// Shutdown renderer and its workers.
func (r *cpuRenderer) Close() {
	r.Lock()
	defer r.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	for _, w := range r.workers {
		w.Close()
	}
	r.wg.Wait()
}
