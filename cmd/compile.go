package cmd

import (
	"path/filepath"
	"strings"

	"github.com/urfave/cli"

	"github.com/achilleasa/prism/scene/reader"
	"github.com/achilleasa/prism/scene/writer"
)

// Compile scene descriptions to the binary zip format.
func CompileScene(ctx *cli.Context) error {
	if _, err := setup(ctx); err != nil {
		return err
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		ext := strings.ToLower(filepath.Ext(sceneFile))
		if ext != ".yaml" && ext != ".yml" {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		logger.Noticef("parsing and compiling scene: %s", sceneFile)
		frame, err := reader.ReadScene(sceneFile)
		if err != nil {
			return err
		}

		// Display compiled scene info
		logger.Noticef("scene information:\n%s", frame.Stats())

		zipFile := strings.TrimSuffix(sceneFile, filepath.Ext(sceneFile)) + ".zip"
		if err = writer.WriteScene(frame, zipFile); err != nil {
			return err
		}
	}

	return nil
}
