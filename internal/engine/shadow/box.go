// Package shadow implements directional shadow mapping: a per-frame
// light-space bounding box fitted around the visible part of the camera
// frustum, and the depth-only render pass that fills the shadow map.
package shadow

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/camera"
)

const (
	// Distance is how far from the camera shadows are rendered. Geometry
	// beyond it casts no shadow.
	Distance = 100.0
	// boxPadding widens the fitted box so casters just outside the frustum
	// still shadow geometry inside it.
	boxPadding = 10.0
	// upEpsilon is the parallelism threshold for the look-at up-vector
	// fallback.
	upEpsilon = 1e-3
)

// Box is the light-space cuboid that tightly bounds the shadow-relevant
// part of the camera frustum. It is refitted every frame; the ortho
// projection derived from it keeps shadow-map texels on visible geometry.
type Box struct {
	nearWidth  float32
	nearHeight float32
	farWidth   float32
	farHeight  float32
	nearPlane  float32

	// MinCorner and MaxCorner are in light space, component-wise min ≤ max
	// after every Update.
	MinCorner mgl32.Vec3
	MaxCorner mgl32.Vec3

	worldCenter mgl32.Vec3
}

// NewBox precomputes the frustum cross-section sizes at the near plane and
// at the shadow distance from the horizontal field of view and the aspect
// ratio. These never change; the corners derived from them do.
func NewBox(fovDegrees, aspectRatio, nearPlane float32) *Box {
	tanHalfFOV := math32.Tan(mgl32.DegToRad(fovDegrees / 2))
	nearWidth := 2 * nearPlane * tanHalfFOV
	farWidth := 2 * Distance * tanHalfFOV
	return &Box{
		nearWidth:  nearWidth,
		nearHeight: nearWidth / aspectRatio,
		farWidth:   farWidth,
		farHeight:  farWidth / aspectRatio,
		nearPlane:  nearPlane,
	}
}

// Update refits the box: the eight corners of the camera sub-frustum (near
// plane to the shadow distance) are placed in world space from the camera's
// rotation and position, transformed into light space, and min/max reduced.
// The world-space center of the fitted box re-anchors the light's look-at
// origin on the next frame; the resulting one-frame lag is acceptable for a
// slowly moving sun.
func (b *Box) Update(cam camera.Camera, worldToLight mgl32.Mat4) {
	corners := b.frustumCornersInLightSpace(cam, worldToLight)

	b.MinCorner = corners[0]
	b.MaxCorner = corners[0]
	for _, c := range corners[1:] {
		for i := 0; i < 3; i++ {
			if c[i] < b.MinCorner[i] {
				b.MinCorner[i] = c[i]
			} else if c[i] > b.MaxCorner[i] {
				b.MaxCorner[i] = c[i]
			}
		}
	}

	mid := b.MinCorner.Add(b.MaxCorner).Mul(0.5)
	b.worldCenter = worldToLight.Inv().Mul4x1(mid.Vec4(1)).Vec3()
}

// frustumCornersInLightSpace builds the eight sub-frustum corners in camera
// space, rotates them into the camera's world orientation, offsets by the
// camera position and transforms into light space.
func (b *Box) frustumCornersInLightSpace(cam camera.Camera, worldToLight mgl32.Mat4) [8]mgl32.Vec3 {
	local := [8]mgl32.Vec3{
		{b.nearWidth / 2, b.nearHeight / 2, -b.nearPlane},
		{b.nearWidth / 2, -b.nearHeight / 2, -b.nearPlane},
		{-b.nearWidth / 2, -b.nearHeight / 2, -b.nearPlane},
		{-b.nearWidth / 2, b.nearHeight / 2, -b.nearPlane},
		{-b.farWidth / 2, b.farHeight / 2, -Distance},
		{b.farWidth / 2, b.farHeight / 2, -Distance},
		{b.farWidth / 2, -b.farHeight / 2, -Distance},
		{-b.farWidth / 2, -b.farHeight / 2, -Distance},
	}

	rotation := cameraRotation(cam)
	var corners [8]mgl32.Vec3
	for i, c := range local {
		world := rotation.Mul4x1(c.Vec4(0)).Vec3().Add(cam.Position)
		corners[i] = worldToLight.Mul4x1(world.Vec4(1)).Vec3()
	}
	return corners
}

// cameraRotation is the camera's orientation in world space, the inverse of
// the rotation part of its view matrix.
func cameraRotation(cam camera.Camera) mgl32.Mat4 {
	r := mgl32.HomogRotate3DZ(mgl32.DegToRad(-cam.Roll))
	r = r.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(-cam.Yaw)))
	return r.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-cam.Pitch)))
}

// WorldSpaceCenter is the box midpoint back in world space, from the most
// recent Update.
func (b *Box) WorldSpaceCenter() mgl32.Vec3 {
	return b.worldCenter
}

// WorldSpaceCorners returns the padded box's eight corners in world space,
// oriented along the light basis rather than the world axes, x varying
// fastest. worldToLight must be the matrix the box was last updated with.
func (b *Box) WorldSpaceCorners(worldToLight mgl32.Mat4) [8]mgl32.Vec3 {
	lightToWorld := worldToLight.Inv()
	mid := b.MinCorner.Add(b.MaxCorner).Mul(0.5)
	w, h, l := b.Width()/2, b.Height()/2, b.Length()/2

	var corners [8]mgl32.Vec3
	i := 0
	for _, z := range []float32{-l, l} {
		for _, y := range []float32{-h, h} {
			for _, x := range []float32{-w, w} {
				p := mid.Add(mgl32.Vec3{x, y, z})
				corners[i] = lightToWorld.Mul4x1(p.Vec4(1)).Vec3()
				i++
			}
		}
	}
	return corners
}

// Width is the light-space X extent plus padding.
func (b *Box) Width() float32 {
	return b.MaxCorner.X() - b.MinCorner.X() + boxPadding
}

// Height is the light-space Y extent plus padding.
func (b *Box) Height() float32 {
	return b.MaxCorner.Y() - b.MinCorner.Y() + boxPadding
}

// Length is the light-space Z extent plus padding.
func (b *Box) Length() float32 {
	return b.MaxCorner.Z() - b.MinCorner.Z() + boxPadding
}

// OrthoProjection is the shadow pass projection fitted to the box extents.
func (b *Box) OrthoProjection() mgl32.Mat4 {
	w := b.Width() / 2
	h := b.Height() / 2
	l := b.Length() / 2
	return mgl32.Ortho(-w, w, -h, h, -l, l)
}

// LightViewMatrix builds the world-to-light transform: a look-at from a
// point along the light direction toward the box center. Up is +Y unless
// the light direction is near-parallel to it, then +Z; the fallback keeps
// the basis from collapsing when the sun is overhead.
func LightViewMatrix(lightDirection, center mgl32.Vec3) mgl32.Mat4 {
	dir := lightDirection.Normalize()
	eye := center.Add(dir.Mul(Distance / 2))
	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Dot(up)) > 1-upEpsilon {
		up = mgl32.Vec3{0, 0, 1}
	}
	return mgl32.LookAtV(eye, center, up)
}
