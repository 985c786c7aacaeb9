package renderer

import (
	"context"
	"image"

	"github.com/achilleasa/prism/scene"
)

type Renderer interface {
	// Render frame. If ctx is done before all blocks complete, no image
	// is returned and the error is ErrInterrupted.
	Render(ctx context.Context) (*image.NRGBA, error)

	// Move the camera used by subsequent Render calls.
	SetCamera(scene.Camera)

	// Shutdown renderer and its workers.
	Close()

	// Get statistics for the last rendered frame.
	Stats() FrameStats
}
