package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/achilleasa/prism/envmap"
	"github.com/achilleasa/prism/tracer"
)

// Max number of mismatching pixels that get logged.
const maxReportedMismatches = 10

type traversalMismatch struct {
	X, Y   int
	Bvh    tracer.RenderState
	Linear tracer.RenderState
}

// Trace every primary ray with both the BVH and a linear primitive scan and
// report any pixel where the two searches disagree.
func Debug(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}

	frame, err := loadFrame(ctx)
	if err != nil {
		return err
	}

	env, err := envmap.Load(frame.Environment, nil)
	if err != nil {
		return err
	}

	frameW, frameH := cfg.Render.Width, cfg.Render.Height
	mismatches := compareTraversal(tracer.NewInputs(frame, env), frameW, frameH)
	for idx, m := range mismatches {
		if idx == maxReportedMismatches {
			logger.Warningf("... and %d more", len(mismatches)-idx)
			break
		}
		logger.Warningf("pixel (%d, %d): bvh %+v; linear %+v", m.X, m.Y, m.Bvh, m.Linear)
	}

	if len(mismatches) != 0 {
		return fmt.Errorf("bvh traversal disagrees with linear search for %d of %d primary rays", len(mismatches), frameW*frameH)
	}
	logger.Noticef("bvh traversal matches linear search for all %d primary rays", frameW*frameH)
	return nil
}

func compareTraversal(in *tracer.Inputs, frameW, frameH int) []traversalMismatch {
	var mismatches []traversalMismatch
	for y := 0; y < frameH; y++ {
		for x := 0; x < frameW; x++ {
			ray := tracer.PrimaryRay(&in.Scene, x, y, frameW, frameH)
			bvh, linear := tracer.Trace(in, ray), tracer.TraceLinear(in, ray)
			if bvh != linear {
				mismatches = append(mismatches, traversalMismatch{x, y, bvh, linear})
			}
		}
	}
	return mismatches
}
