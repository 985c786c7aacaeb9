package envmap

import (
	"fmt"

	"github.com/achilleasa/prism/asset/texture"
	"github.com/achilleasa/prism/types"
)

// Cube map face indices.
const (
	FacePosX = iota
	FaceNegX
	FacePosY
	FaceNegY
	FacePosZ
	FaceNegZ
	numFaces
)

// A cube map environment made up of six square faces of equal size. Face
// selection and texture coordinates follow the OpenGL cube map convention.
// Lookups use nearest texel sampling and return stored colors unchanged.
type CubeMap struct {
	size  int
	faces [numFaces]*texture.Texture
}

// Create a cube map from six faces in +X, -X, +Y, -Y, +Z, -Z order.
func NewCubeMap(faces [numFaces]*texture.Texture) (*CubeMap, error) {
	size := -1
	for idx, face := range faces {
		if face == nil {
			return nil, fmt.Errorf("%w: face %d is missing", ErrInvalidCubeMap, idx)
		}
		if face.Width != face.Height || face.Width == 0 {
			return nil, fmt.Errorf("%w: face %d is not square (%dx%d)", ErrInvalidCubeMap, idx, face.Width, face.Height)
		}
		if size == -1 {
			size = int(face.Width)
		} else if int(face.Width) != size {
			return nil, fmt.Errorf("%w: face %d size %d does not match %d", ErrInvalidCubeMap, idx, face.Width, size)
		}
	}

	return &CubeMap{size: size, faces: faces}, nil
}

func (c *CubeMap) Sample(dir types.Vec3) types.Vec3 {
	face, u, v := faceCoords(dir)
	x := int(u * float32(c.size))
	y := int(v * float32(c.size))
	return c.faces[face].At(x, y)
}

// Select the face hit by dir and return the [0, 1] texture coordinates of
// the hit point on it. Coordinate v grows downwards.
func faceCoords(dir types.Vec3) (face int, u, v float32) {
	x, y, z := dir[0], dir[1], dir[2]
	ax, ay, az := abs(x), abs(y), abs(z)

	var sc, tc, ma float32
	switch {
	case ax >= ay && ax >= az:
		ma = ax
		if x > 0 {
			face, sc, tc = FacePosX, -z, -y
		} else {
			face, sc, tc = FaceNegX, z, -y
		}
	case ay >= az:
		ma = ay
		if y > 0 {
			face, sc, tc = FacePosY, x, z
		} else {
			face, sc, tc = FaceNegY, x, -z
		}
	default:
		ma = az
		if z > 0 {
			face, sc, tc = FacePosZ, x, -y
		} else {
			face, sc, tc = FaceNegZ, -x, -y
		}
	}

	if ma == 0 {
		return FacePosX, 0.5, 0.5
	}
	return face, 0.5 * (sc/ma + 1.0), 0.5 * (tc/ma + 1.0)
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
