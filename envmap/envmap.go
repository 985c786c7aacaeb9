// Package envmap provides the samplers that supply the color seen by rays
// escaping the scene.
package envmap

import (
	"errors"
	"fmt"

	"github.com/achilleasa/prism/asset"
	"github.com/achilleasa/prism/asset/texture"
	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/tracer"
	"github.com/achilleasa/prism/types"
)

var (
	ErrUnknownEnvironment = errors.New("envmap: unknown environment type")
	ErrInvalidCubeMap     = errors.New("envmap: invalid cube map")
)

// A constant color environment.
type Solid struct {
	Color types.Vec3
}

func (s Solid) Sample(_ types.Vec3) types.Vec3 {
	return s.Color
}

// A sky gradient that blends from Horizon (straight down) to Zenith (straight
// up) based on the Z component of the sampled direction.
type Gradient struct {
	Horizon types.Vec3
	Zenith  types.Vec3
}

func (g Gradient) Sample(dir types.Vec3) types.Vec3 {
	t := 0.5 * (dir.Normalize()[2] + 1.0)
	return g.Horizon.Mul(1.0 - t).Add(g.Zenith.Mul(t))
}

// Create an environment sampler from its description. Cube map face paths
// are resolved relative to relTo when it is not nil.
func Load(spec scene.EnvironmentSpec, relTo *asset.Resource) (tracer.Environment, error) {
	switch spec.Type {
	case scene.SolidEnvironment:
		return Solid{Color: spec.Color}, nil
	case scene.GradientEnvironment:
		return Gradient{Horizon: spec.Horizon, Zenith: spec.Zenith}, nil
	case scene.CubeMapEnvironment:
		cubeMap, err := loadCubeMap(spec.Faces, relTo)
		if err != nil {
			return nil, err
		}
		return cubeMap, nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownEnvironment, spec.Type)
}

func loadCubeMap(facePaths []string, relTo *asset.Resource) (*CubeMap, error) {
	if len(facePaths) != numFaces {
		return nil, fmt.Errorf("%w: expected %d faces; got %d", ErrInvalidCubeMap, numFaces, len(facePaths))
	}

	var faces [numFaces]*texture.Texture
	for idx, facePath := range facePaths {
		res, err := asset.NewResource(facePath, relTo)
		if err != nil {
			return nil, fmt.Errorf("envmap: could not open cube map face %s: %w", facePath, err)
		}
		faces[idx], err = texture.New(res)
		res.Close()
		if err != nil {
			return nil, fmt.Errorf("envmap: could not load cube map face %s: %w", facePath, err)
		}
	}

	return NewCubeMap(faces)
}
