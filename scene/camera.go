package scene

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/achilleasa/prism/types"
)

// Pitch is clamped to this range (in degrees) to prevent the camera basis
// from flipping when looking straight up or down.
const maxPitch float32 = 89.0

// The world up axis. Scenes are Z-up.
var worldUp = types.Vec3{0, 0, 1}

// The camera type controls the scene camera. Angles are specified in degrees;
// yaw rotates around the world Z axis and pitch tilts towards it.
type Camera struct {
	Position types.Vec3
	Yaw      float32
	Pitch    float32
}

// Create a camera at the given position looking down the +X axis.
func NewCamera(position types.Vec3) *Camera {
	return &Camera{Position: position}
}

func (c Camera) String() string {
	return fmt.Sprintf("Camera(pos: %v, yaw: %3.1f, pitch: %3.1f)", c.Position, c.Yaw, c.Pitch)
}

// Calculate the orthonormal camera basis.
func (c *Camera) Basis() (forwards, right, up types.Vec3) {
	yaw := float64(mgl32.DegToRad(c.Yaw))
	pitch := float64(mgl32.DegToRad(mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)))

	forwards = types.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
	}
	right = forwards.Cross(worldUp).Normalize()
	up = right.Cross(forwards)
	return forwards, right, up
}

// Move the camera along its forward vector.
func (c *Camera) MoveForwards(dist float32) {
	f, _, _ := c.Basis()
	c.Position = c.Position.Add(f.Mul(dist))
}

// Move the camera along its right vector.
func (c *Camera) MoveRight(dist float32) {
	_, r, _ := c.Basis()
	c.Position = c.Position.Add(r.Mul(dist))
}

// Move the camera along its up vector.
func (c *Camera) MoveUp(dist float32) {
	_, _, u := c.Basis()
	c.Position = c.Position.Add(u.Mul(dist))
}

// Rotate the camera left or right.
func (c *Camera) RotateYaw(angle float32) {
	c.Yaw += angle
}

// Rotate the camera up or down.
func (c *Camera) RotatePitch(angle float32) {
	c.Pitch = mgl32.Clamp(c.Pitch+angle, -maxPitch, maxPitch)
}
