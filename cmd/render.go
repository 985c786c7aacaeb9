package cmd

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/urfave/cli"

	"github.com/achilleasa/prism/envmap"
	"github.com/achilleasa/prism/renderer"
)

// Render one or more still frames.
func RenderFrame(ctx *cli.Context) error {
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

	r, err := renderer.NewCPU(frame, env, renderer.OptionsFromConfig(cfg.Render))
	if err != nil {
		return err
	}
	defer r.Close()

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	numFrames := ctx.Int("frames")
	if numFrames < 1 {
		numFrames = 1
	}
	yawStep := float32(ctx.Float64("yaw-step"))

	camera := frame.Camera
	for frameIndex := 0; frameIndex < numFrames; frameIndex++ {
		r.SetCamera(camera)

		logger.Noticef("rendering frame %d/%d (%s)", frameIndex+1, numFrames, camera)
		img, err := r.Render(sigCtx)
		if err != nil {
			return err
		}

		// Display stats
		logger.Noticef("frame statistics\n%s", r.Stats().Table())

		imgFile := frameFilename(cfg.Render.Out, frameIndex, numFrames)
		if err = writePNG(imgFile, img); err != nil {
			return err
		}

		camera.RotateYaw(yawStep)
	}

	return nil
}

// Generate the output filename for a frame. Animations get a zero-padded
// frame index before the file extension.
func frameFilename(out string, frameIndex, numFrames int) string {
	if numFrames <= 1 {
		return out
	}

	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%04d%s", strings.TrimSuffix(out, ext), frameIndex, ext)
}

func writePNG(imgFile string, img image.Image) error {
	start := time.Now()
	f, err := os.Create(imgFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err = png.Encode(f, img); err != nil {
		return fmt.Errorf("error encoding png file: %w", err)
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Milliseconds())
	return nil
}
