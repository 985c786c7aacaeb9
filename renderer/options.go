package renderer

import (
	"github.com/achilleasa/prism/config"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of worker goroutines. If 0, one worker per CPU is used.
	Workers int

	// Block scheduling algorithm; either "naive" or "perfect".
	Scheduler string

	// Output gamma. The linear frame color c is encoded as c^(1/Gamma);
	// values <= 0 or equal to 1 disable gamma correction.
	Gamma float32
}

// Build renderer options from the render section of the app config.
func OptionsFromConfig(cfg config.RenderConfig) Options {
	return Options{
		FrameW:    uint32(cfg.Width),
		FrameH:    uint32(cfg.Height),
		Workers:   cfg.Workers,
		Scheduler: cfg.Scheduler,
		Gamma:     float32(cfg.Gamma),
	}
}
