package reader

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"time"

	"github.com/achilleasa/prism/asset"
	"github.com/achilleasa/prism/log"
	"github.com/achilleasa/prism/scene"
)

// Name of the zip entry holding the gob-encoded frame.
const dataFile = "frame.bin"

type zipSceneReader struct {
	logger log.Logger
}

// Create a new zip scene reader.
func newZipSceneReader() *zipSceneReader {
	return &zipSceneReader{
		logger: log.New("zip reader"),
	}
}

// Read a compiled frame from a zip file.
func (r *zipSceneReader) Read(sceneRes *asset.Resource) (*scene.Frame, error) {
	r.logger.Noticef(`loading compiled scene from "%s"`, sceneRes.Path())
	start := time.Now()

	// zip.NewReader needs an io.ReaderAt so the whole archive is buffered.
	data, err := io.ReadAll(sceneRes)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("zipSceneReader: %s is not a valid zip file: %w", sceneRes.Path(), err)
	}

	var frame *scene.Frame
	for _, f := range zr.File {
		if f.Name != dataFile {
			r.logger.Warningf("unknown file %s in scene zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		frame = &scene.Frame{}
		err = gob.NewDecoder(rc).Decode(frame)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("zipSceneReader: failed to load %s: %w", f.Name, err)
		}
	}

	if frame == nil {
		return nil, fmt.Errorf("zipSceneReader: %s does not contain %s", sceneRes.Path(), dataFile)
	}

	r.logger.Noticef("loaded scene in %d ms", time.Since(start).Milliseconds())
	return frame, nil
}
