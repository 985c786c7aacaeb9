package writer

import (
	"archive/zip"
	"encoding/gob"
	"fmt"
	"os"
	"time"

	"github.com/achilleasa/prism/log"
	"github.com/achilleasa/prism/scene"
)

// Must match the entry name expected by the zip scene reader.
const dataFile = "frame.bin"

type zipSceneWriter struct {
	logger    log.Logger
	sceneFile string
}

// Create a new zip scene writer
func newZipSceneWriter(sceneFile string) *zipSceneWriter {
	return &zipSceneWriter{
		logger:    log.New("zip writer"),
		sceneFile: sceneFile,
	}
}

// Write frame definition to zip file.
func (w *zipSceneWriter) Write(frame *scene.Frame) (err error) {
	w.logger.Noticef("writing compiled scene to %s", w.sceneFile)
	start := time.Now()

	zipFile, err := os.Create(w.sceneFile)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := zipFile.Close(); err == nil {
			err = closeErr
		}
	}()

	zw := zip.NewWriter(zipFile)
	cw, err := zw.Create(dataFile)
	if err != nil {
		return err
	}
	if err = gob.NewEncoder(cw).Encode(frame); err != nil {
		return fmt.Errorf("zipSceneWriter: could not encode frame: %w", err)
	}
	if err = zw.Close(); err != nil {
		return err
	}

	w.logger.Noticef("compiled scene in %d ms", time.Since(start).Milliseconds())
	return nil
}
