package cmd

import (
	"errors"

	"github.com/urfave/cli"

	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/scene/reader"
)

// Load the frame named by the scene file argument or, when the random flag
// is set, generate a frame with that many random spheres.
func loadFrame(ctx *cli.Context) (*scene.Frame, error) {
	if count := ctx.Int("random"); count > 0 {
		seed := ctx.Int64("seed")
		logger.Noticef("generating random scene with %d spheres (seed %d)", count, seed)
		return scene.RandomFrame(count, seed), nil
	}

	if ctx.NArg() != 1 {
		return nil, errors.New("missing scene file argument")
	}
	return reader.ReadScene(ctx.Args().First())
}

// Display scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	if _, err := setup(ctx); err != nil {
		return err
	}

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	frame, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Noticef("%s, max bounces: %d, environment: %s", frame.Camera, frame.MaxBounces, frame.Environment.Type)
	logger.Noticef("scene information:\n%s", frame.Stats())

	return nil
}

// Print the effective configuration after applying the config file and
// any command line overrides.
func ShowConfig(ctx *cli.Context) error {
	cfg, err := setup(ctx)
	if err != nil {
		return err
	}
	return cfg.Write(ctx.App.Writer)
}
