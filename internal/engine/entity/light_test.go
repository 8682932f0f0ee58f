package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPadLights(t *testing.T) {
	sun := NewInfinite(mgl32.Vec3{100, 200, 100}, mgl32.Vec3{1, 1, 1})
	lamp := NewPoint(mgl32.Vec3{5, 2, 5}, mgl32.Vec3{2, 0, 0}, mgl32.Vec3{1, 0.01, 0.002})

	tests := []struct {
		name   string
		lights []Light
		filled int
	}{
		{"none", nil, 0},
		{"one", []Light{sun}, 1},
		{"two", []Light{sun, lamp}, 2},
		{"full", []Light{sun, lamp, sun, lamp}, 4},
		{"overflow drops extras", []Light{sun, lamp, sun, lamp, sun}, 4},
	}

	sentinel := Light{Attenuation: mgl32.Vec3{1, 0, 0}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			padded := PadLights(tt.lights)
			for i := 0; i < tt.filled; i++ {
				if padded[i] != tt.lights[i] {
					t.Errorf("slot %d = %+v, want %+v", i, padded[i], tt.lights[i])
				}
			}
			for i := tt.filled; i < MaxLights; i++ {
				if padded[i] != sentinel {
					t.Errorf("slot %d = %+v, want dark sentinel %+v", i, padded[i], sentinel)
				}
			}
		})
	}
}

func TestSentinelContributesNoLight(t *testing.T) {
	padded := PadLights(nil)
	for i, l := range padded {
		if l.Color != (mgl32.Vec3{}) {
			t.Errorf("slot %d sentinel has color %v; shaders would pick up stray light", i, l.Color)
		}
		if l.Attenuation.X() == 0 {
			t.Errorf("slot %d sentinel has zero constant attenuation; shader would divide by zero", i)
		}
	}
}

func TestWaterHeight(t *testing.T) {
	if _, ok := WaterHeight(nil); ok {
		t.Error("no tiles must report no water height")
	}
	h, ok := WaterHeight([]WaterTile{{X: 0, Z: 0, Height: -2}, {X: 120, Z: 0, Height: -2}})
	if !ok || h != -2 {
		t.Errorf("got (%v, %v), want (-2, true)", h, ok)
	}
}
