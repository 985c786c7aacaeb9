package renderer

import "errors"

var (
	ErrSceneNotDefined       = errors.New("renderer: no scene defined")
	ErrEnvironmentNotDefined = errors.New("renderer: no environment defined")
	ErrInvalidFrameSize      = errors.New("renderer: frame dimensions must be > 0")
	ErrInterrupted           = errors.New("renderer: interrupted while rendering")
	ErrClosed                = errors.New("renderer: renderer is closed")
)
