package tracer

import (
	"github.com/achilleasa/prism/scene"
	"github.com/achilleasa/prism/types"
)

var (
	white = types.Vec3{1, 1, 1}
	black = types.Vec3{}
)

// Generate the camera ray through pixel (x, y) of a w x h frame. Row 0 is the
// top of the frame. Both screen coefficients are scaled by the frame width so
// that pixels stay square for any aspect ratio.
func PrimaryRay(sd *scene.SceneData, x, y, w, h int) Ray {
	horizontal := (float32(x) - float32(w)*0.5) / float32(w)
	vertical := (float32(h)*0.5 - float32(y)) / float32(w)

	return Ray{
		Origin: sd.CameraPos,
		Direction: sd.CameraForwards.
			Add(sd.CameraRight.Mul(horizontal)).
			Add(sd.CameraUp.Mul(vertical)).
			Normalize(),
	}
}

// Shade follows a ray as it bounces between reflective surfaces, multiplying
// the colors of every hit. The path ends when a ray escapes to the environment
// or the bounce budget runs out. Paths that are still hitting geometry on
// their last bounce never reach the environment and are absorbed.
func Shade(in *Inputs, ray Ray) types.Vec3 {
	color := white

	var state RenderState
	for bounce := uint32(0); bounce < in.Scene.MaxBounces; bounce++ {
		state = Trace(in, ray)
		color = color.MulVec(state.Color)
		if !state.Hit {
			break
		}

		ray = Ray{
			Origin:    state.Position,
			Direction: ray.Direction.Reflect(state.Normal).Normalize(),
		}
	}

	if state.Hit {
		return black
	}
	return color
}

// Pixel runs the kernel for a single pixel of a w x h frame.
func Pixel(in *Inputs, x, y, w, h int) types.Vec3 {
	return Shade(in, PrimaryRay(&in.Scene, x, y, w, h))
}
