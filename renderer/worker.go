package renderer

import (
	"context"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	"github.com/achilleasa/prism/log"
	"github.com/achilleasa/prism/tracer"
	"github.com/achilleasa/prism/types"
)

// A unit of work that is processed by a worker.
type BlockRequest struct {
	// Block start row and height.
	BlockY uint32
	BlockH uint32

	// Kernel inputs for this frame.
	Inputs *tracer.Inputs

	// The output frame. Workers only write the rows of their block.
	Frame *image.NRGBA

	// 1/gamma; 1 disables gamma correction.
	InvGamma float64

	// Checked before tracing each row.
	Ctx context.Context

	// A channel to signal on block completion with the number of completed rows.
	DoneChan chan<- uint32

	// A channel to signal if an error occurs.
	ErrChan chan<- error
}

type worker struct {
	logger log.Logger

	id string

	// A channel for receiving block requests from the renderer.
	blockReqChan chan BlockRequest

	// Statistics for last rendered frame. Only the worker goroutine writes
	// them while a block is in flight.
	stats WorkerStat
}

// Spawn a worker go-routine that processes block requests until
// blockReqChan is closed.
func startWorker(index int, wg *sync.WaitGroup) *worker {
	id := fmt.Sprintf("cpu-%d", index)
	w := &worker{
		logger:       log.New(fmt.Sprintf("worker (%s)", id)),
		id:           id,
		blockReqChan: make(chan BlockRequest),
		stats: WorkerStat{
			Id:            id,
			SpeedEstimate: 1,
		},
	}

	readyChan := make(chan struct{})
	wg.Add(1)
	go func() {
		defer wg.Done()
		close(readyChan)
		for blockReq := range w.blockReqChan {
			startTime := time.Now()
			if err := w.renderBlock(&blockReq); err != nil {
				blockReq.ErrChan <- err
				continue
			}

			w.stats.BlockH = blockReq.BlockH
			w.stats.RenderTime = time.Since(startTime)
			blockReq.DoneChan <- blockReq.BlockH
		}
		w.logger.Debug("shutting down")
	}()

	// Wait for go-routine to start
	<-readyChan
	return w
}

// Enqueue block request.
func (w *worker) Enqueue(blockReq BlockRequest) {
	w.blockReqChan <- blockReq
}

// Stop accepting requests. The caller waits on the shared WaitGroup for
// the goroutine to exit.
func (w *worker) Close() {
	close(w.blockReqChan)
}

func (w *worker) renderBlock(blockReq *BlockRequest) error {
	frame := blockReq.Frame
	frameW, frameH := frame.Rect.Dx(), frame.Rect.Dy()

	for y := blockReq.BlockY; y < blockReq.BlockY+blockReq.BlockH; y++ {
		if blockReq.Ctx.Err() != nil {
			return ErrInterrupted
		}

		offset := int(y) * frame.Stride
		for x := 0; x < frameW; x++ {
			c := tracer.Pixel(blockReq.Inputs, x, int(y), frameW, frameH)
			encodePixel(frame.Pix[offset:offset+4], c, blockReq.InvGamma)
			offset += 4
		}
	}
	return nil
}

// Encode a linear color as an 8-bit NRGBA pixel. Channels are clamped to
// [0, 1] before applying gamma.
func encodePixel(pix []uint8, c types.Vec3, invGamma float64) {
	for ch := 0; ch < 3; ch++ {
		v := float64(c[ch])
		switch {
		case math.IsNaN(v) || v <= 0:
			v = 0
		case v > 1:
			v = 1
		}
		if invGamma != 1 {
			v = math.Pow(v, invGamma)
		}
		pix[ch] = uint8(v*255 + 0.5)
	}
	pix[3] = 255
}
