package writer

import "github.com/achilleasa/prism/scene"

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write frame definition.
	Write(*scene.Frame) error
}

// Write frame to the compiled zip format.
func WriteScene(frame *scene.Frame, filename string) error {
	writer := newZipSceneWriter(filename)
	return writer.Write(frame)
}
