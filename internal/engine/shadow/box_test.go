package shadow

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/camera"
)

func testBox() *Box {
	return NewBox(70, 16.0/9.0, 0.1)
}

func TestUpdateKeepsMinBelowMax(t *testing.T) {
	cameras := []camera.Camera{
		{},
		{Position: mgl32.Vec3{100, 20, -50}},
		{Pitch: 45, Yaw: 30},
		{Pitch: -89, Yaw: 180, Roll: 15},
		{Position: mgl32.Vec3{-3, 900, 7}, Pitch: 90},
		{Pitch: 10, Yaw: 275, Roll: -170},
	}
	lights := []mgl32.Vec3{
		{100, 200, 100},
		{0, 1, 0.001},
		{-1, 0.2, -1},
	}

	box := testBox()
	for _, cam := range cameras {
		for _, lightDir := range lights {
			view := LightViewMatrix(lightDir, box.WorldSpaceCenter())
			box.Update(cam, view)
			for i := 0; i < 3; i++ {
				if box.MinCorner[i] > box.MaxCorner[i] {
					t.Errorf("camera %+v light %v: min %v exceeds max %v on axis %d",
						cam, lightDir, box.MinCorner, box.MaxCorner, i)
				}
			}
		}
	}
}

func TestUpdateZeroOrientation(t *testing.T) {
	box := testBox()
	box.Update(camera.Camera{}, mgl32.Ident4())

	// With an identity light transform the box must span the sub-frustum
	// depth range along Z.
	depth := box.MaxCorner.Z() - box.MinCorner.Z()
	want := float32(Distance) - 0.1
	if math32.Abs(depth-want) > 1e-2 {
		t.Errorf("light-space depth = %v, want %v", depth, want)
	}
	if box.Width() <= 0 || box.Height() <= 0 || box.Length() <= 0 {
		t.Errorf("degenerate box extents: %v %v %v", box.Width(), box.Height(), box.Length())
	}
}

func TestWorldSpaceCenterTracksCamera(t *testing.T) {
	box := testBox()
	cam := camera.Camera{Position: mgl32.Vec3{500, 50, 500}}
	box.Update(cam, LightViewMatrix(mgl32.Vec3{1, 2, 1}, mgl32.Vec3{}))

	center := box.WorldSpaceCenter()
	// The fitted box midpoint must sit between the camera and the shadow
	// distance, not at the origin.
	if center.Sub(cam.Position).Len() > Distance {
		t.Errorf("world center %v too far from camera %v", center, cam.Position)
	}
}

func TestLightViewMatrixUpFallback(t *testing.T) {
	tests := []struct {
		name string
		dir  mgl32.Vec3
	}{
		{"straight up", mgl32.Vec3{0, 1, 0}},
		{"straight down", mgl32.Vec3{0, -1, 0}},
		{"near parallel", mgl32.Vec3{1e-5, 1, 0}},
		{"oblique", mgl32.Vec3{1, 1, 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view := LightViewMatrix(tt.dir, mgl32.Vec3{10, 0, 10})
			if det := view.Det(); math32.Abs(det) < 1e-4 {
				t.Errorf("light view determinant %v, basis collapsed", det)
			}
		})
	}
}

func TestWorldSpaceCornersFollowLightBasis(t *testing.T) {
	box := testBox()
	cam := camera.Camera{Position: mgl32.Vec3{200, 30, -80}, Pitch: 20, Yaw: 140}
	view := LightViewMatrix(mgl32.Vec3{1, -1, 0.5}, box.WorldSpaceCenter())
	box.Update(cam, view)

	corners := box.WorldSpaceCorners(view)

	// Back in light space the corners must form an axis-aligned cuboid with
	// the padded extents, centered on the fitted box midpoint.
	mid := box.MinCorner.Add(box.MaxCorner).Mul(0.5)
	min, max := mid, mid
	var sum mgl32.Vec3
	for _, c := range corners {
		sum = sum.Add(c)
		p := view.Mul4x1(c.Vec4(1)).Vec3()
		for i := 0; i < 3; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	got := [3]float32{max.X() - min.X(), max.Y() - min.Y(), max.Z() - min.Z()}
	want := [3]float32{box.Width(), box.Height(), box.Length()}
	for i := 0; i < 3; i++ {
		if math32.Abs(got[i]-want[i]) > 1e-2 {
			t.Errorf("light-space extent %d = %v, want %v", i, got[i], want[i])
		}
	}

	// The corner average is the box center in world space.
	center := sum.Mul(1.0 / 8.0)
	if center.Sub(box.WorldSpaceCenter()).Len() > 1e-2 {
		t.Errorf("corner average %v, want world center %v", center, box.WorldSpaceCenter())
	}
}

func TestOrthoProjectionMapsBoxToClipSpace(t *testing.T) {
	box := testBox()
	box.Update(camera.Camera{Yaw: 33}, LightViewMatrix(mgl32.Vec3{1, 3, 1}, mgl32.Vec3{}))

	proj := box.OrthoProjection()
	// Center of the box extent must land inside the NDC cube.
	p := proj.Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	for i := 0; i < 3; i++ {
		if p[i] < -1 || p[i] > 1 {
			t.Errorf("box center maps outside clip space: %v", p)
		}
	}
}

func TestBiasMatrixRemapsClipToTexture(t *testing.T) {
	bias := biasMatrix()
	corners := []mgl32.Vec4{
		{-1, -1, -1, 1},
		{1, 1, 1, 1},
		{0, 0, 0, 1},
	}
	want := []mgl32.Vec4{
		{0, 0, 0, 1},
		{1, 1, 1, 1},
		{0.5, 0.5, 0.5, 1},
	}
	for i, c := range corners {
		got := bias.Mul4x1(c)
		for j := 0; j < 3; j++ {
			if math32.Abs(got[j]-want[i][j]) > 1e-6 {
				t.Errorf("bias(%v) = %v, want %v", c, got, want[i])
			}
		}
	}
}
