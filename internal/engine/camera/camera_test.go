package camera

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestReflectedMirrorsAboutWaterPlane(t *testing.T) {
	tests := []struct {
		name        string
		cam         Camera
		waterHeight float32
		wantY       float32
		wantPitch   float32
	}{
		{
			name:        "above water",
			cam:         Camera{Position: mgl32.Vec3{10, 8, -3}, Pitch: 20, Yaw: 45},
			waterHeight: 2,
			wantY:       -4,
			wantPitch:   -20,
		},
		{
			name:        "at water level",
			cam:         Camera{Position: mgl32.Vec3{0, 5, 0}, Pitch: -15},
			waterHeight: 5,
			wantY:       5,
			wantPitch:   15,
		},
		{
			name:        "below water",
			cam:         Camera{Position: mgl32.Vec3{0, -1, 0}, Pitch: 0},
			waterHeight: 1,
			wantY:       3,
			wantPitch:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cam.Reflected(tt.waterHeight)
			if got.Position.Y() != tt.wantY {
				t.Errorf("reflected Y = %v, want %v", got.Position.Y(), tt.wantY)
			}
			if got.Pitch != tt.wantPitch {
				t.Errorf("reflected pitch = %v, want %v", got.Pitch, tt.wantPitch)
			}
			if got.Position.X() != tt.cam.Position.X() || got.Position.Z() != tt.cam.Position.Z() {
				t.Errorf("reflection must not move the camera horizontally: got %v", got.Position)
			}
			if got.Yaw != tt.cam.Yaw || got.Roll != tt.cam.Roll {
				t.Errorf("reflection must not change yaw or roll")
			}
		})
	}
}

func TestReflectedDoesNotMutateReceiver(t *testing.T) {
	cam := Camera{Position: mgl32.Vec3{1, 7, 2}, Pitch: 30}
	before := cam
	_ = cam.Reflected(0)
	if cam != before {
		t.Errorf("Reflected mutated the receiver: %+v != %+v", cam, before)
	}
}

func TestReflectedTwiceIsIdentity(t *testing.T) {
	cam := Camera{Position: mgl32.Vec3{3, 9, -4}, Pitch: 12, Yaw: 80, Roll: 1}
	back := cam.Reflected(2.5).Reflected(2.5)
	if back != cam {
		t.Errorf("double reflection should restore the camera: %+v != %+v", back, cam)
	}
}

func TestViewMatrixTranslatesByNegatedPosition(t *testing.T) {
	cam := Camera{Position: mgl32.Vec3{2, 3, 4}}
	view := cam.ViewMatrix()
	origin := view.Mul4x1(mgl32.Vec4{2, 3, 4, 1})
	for i := 0; i < 3; i++ {
		if !mgl32.FloatEqualThreshold(origin[i], 0, 1e-5) {
			t.Errorf("camera position should map to eye origin, got %v", origin)
		}
	}
}
