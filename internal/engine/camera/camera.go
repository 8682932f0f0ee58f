// Package camera provides the free-look scene camera and its derived
// matrices.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is a position plus Euler angles in degrees. The zero value looks
// down negative Z from the origin.
type Camera struct {
	Position mgl32.Vec3
	Pitch    float32
	Yaw      float32
	Roll     float32
}

// New returns a camera at the given position with the given pitch and yaw.
func New(position mgl32.Vec3, pitch, yaw float32) Camera {
	return Camera{Position: position, Pitch: pitch, Yaw: yaw}
}

// ViewMatrix builds the world-to-eye transform: rotate by the camera angles,
// then translate by the negated position.
func (c Camera) ViewMatrix() mgl32.Mat4 {
	view := mgl32.HomogRotate3DX(mgl32.DegToRad(c.Pitch))
	view = view.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(c.Yaw)))
	view = view.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(c.Roll)))
	return view.Mul4(mgl32.Translate3D(-c.Position.X(), -c.Position.Y(), -c.Position.Z()))
}

// Reflected returns a new camera mirrored about the horizontal plane at
// waterHeight, for rendering the water reflection. The receiver is not
// modified.
func (c Camera) Reflected(waterHeight float32) Camera {
	r := c
	r.Position[1] = waterHeight - (c.Position.Y() - waterHeight)
	r.Pitch = -c.Pitch
	return r
}

// Forward returns the unit view direction in world space.
func (c Camera) Forward() mgl32.Vec3 {
	pitch := mgl32.DegToRad(c.Pitch)
	yaw := mgl32.DegToRad(c.Yaw)
	return mgl32.Vec3{
		math32.Sin(yaw) * math32.Cos(pitch),
		-math32.Sin(pitch),
		-math32.Cos(yaw) * math32.Cos(pitch),
	}
}

// Move offsets the camera position in world space.
func (c *Camera) Move(delta mgl32.Vec3) {
	c.Position = c.Position.Add(delta)
}
