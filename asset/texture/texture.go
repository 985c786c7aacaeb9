package texture

import (
	"fmt"
	"image"
	"image/color"

	// Register decoders with image.Decode
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/achilleasa/prism/asset"
	"github.com/achilleasa/prism/types"
)

// A decoded texture image. Texels are stored in row-major order starting at
// the top-left corner as non-premultiplied RGB triplets in the [0, 1] range.
type Texture struct {
	Format string

	Width  uint32
	Height uint32

	Data []types.Vec3
}

// Create a new texture from a Resource. The resource is fully consumed but
// not closed.
func New(res *asset.Resource) (*Texture, error) {
	img, format, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %w", res.Path(), err)
	}

	return FromImage(img, format), nil
}

// Convert an already decoded image into a texture.
func FromImage(img image.Image, format string) *Texture {
	bounds := img.Bounds()
	tex := &Texture{
		Format: format,
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
		Data:   make([]types.Vec3, bounds.Dx()*bounds.Dy()),
	}

	offset := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBA64Model.Convert(img.At(x, y)).(color.NRGBA64)
			tex.Data[offset] = types.Vec3{
				float32(c.R) / 0xffff,
				float32(c.G) / 0xffff,
				float32(c.B) / 0xffff,
			}
			offset++
		}
	}

	return tex
}

// Get the texel at (x, y). Coordinates are clamped to the texture bounds.
func (t *Texture) At(x, y int) types.Vec3 {
	x = clamp(x, int(t.Width)-1)
	y = clamp(y, int(t.Height)-1)
	return t.Data[y*int(t.Width)+x]
}

func clamp(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
