package reader

import (
	"errors"
	"fmt"

	"github.com/achilleasa/prism/asset"
	"github.com/achilleasa/prism/scene"
)

var ErrUnsupportedFormat = errors.New("readScene: unsupported file format")

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read a frame definition from a resource.
	Read(*asset.Resource) (*scene.Frame, error)
}

// Read and validate a frame from a yaml scene description or a compiled zip
// file. Remote http(s) locations are supported.
func ReadScene(filename string) (*scene.Frame, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	// Select reader based on file extension
	var reader Reader
	switch res.Ext() {
	case ".yaml", ".yml":
		reader = newYamlSceneReader()
	case ".zip":
		reader = newZipSceneReader()
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, res.Ext())
	}

	frame, err := reader.Read(res)
	if err != nil {
		return nil, err
	}
	if err = frame.Validate(); err != nil {
		return nil, fmt.Errorf("readScene: %s: %w", filename, err)
	}
	return frame, nil
}
