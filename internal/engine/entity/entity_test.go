package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/model"
)

func TestTransformAppliesTranslation(t *testing.T) {
	e := Entity{Position: mgl32.Vec3{10, 20, 30}, Scale: 1}
	p := e.Transform().Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	want := mgl32.Vec4{10, 20, 30, 1}
	for i := range want {
		if !mgl32.FloatEqualThreshold(p[i], want[i], 1e-5) {
			t.Fatalf("origin transformed to %v, want %v", p, want)
		}
	}
}

func TestTransformAppliesScale(t *testing.T) {
	e := Entity{Scale: 3}
	p := e.Transform().Mul4x1(mgl32.Vec4{1, 1, 1, 1})
	want := mgl32.Vec4{3, 3, 3, 1}
	for i := range want {
		if !mgl32.FloatEqualThreshold(p[i], want[i], 1e-5) {
			t.Fatalf("unit point transformed to %v, want %v", p, want)
		}
	}
}

func TestAtlasOffset(t *testing.T) {
	tm := &model.TexturedModel{Texture: model.ModelTexture{AtlasRows: 2}}
	tests := []struct {
		index int
		want  mgl32.Vec2
	}{
		{0, mgl32.Vec2{0, 0}},
		{1, mgl32.Vec2{0.5, 0}},
		{2, mgl32.Vec2{0, 0.5}},
		{3, mgl32.Vec2{0.5, 0.5}},
	}
	for _, tt := range tests {
		e := Entity{Model: tm, AtlasIndex: tt.index}
		if got := e.AtlasOffset(); got != tt.want {
			t.Errorf("index %d: offset = %v, want %v", tt.index, got, tt.want)
		}
	}
}

func TestAtlasOffsetSingleTile(t *testing.T) {
	tm := &model.TexturedModel{Texture: model.ModelTexture{AtlasRows: 1}}
	e := Entity{Model: tm, AtlasIndex: 0}
	if got := e.AtlasOffset(); got != (mgl32.Vec2{}) {
		t.Errorf("1x1 atlas offset = %v, want zero", got)
	}
}

func TestIncreaseRotationAccumulates(t *testing.T) {
	e := Entity{Rotation: mgl32.Vec3{0, 350, 0}}
	e.IncreaseRotation(5, 15, -10)
	e.IncreaseRotation(5, 15, -10)
	want := mgl32.Vec3{10, 380, -20}
	if e.Rotation != want {
		t.Errorf("rotation = %v, want %v", e.Rotation, want)
	}
}

func TestSkyboxBlendFactorCycle(t *testing.T) {
	s := NewSkybox(model.SkyboxModel{})
	if got := s.BlendFactor(); got != 0 {
		t.Errorf("fresh skybox blend = %v, want 0", got)
	}
	s.Update(60) // half the cycle
	if got := s.BlendFactor(); !mgl32.FloatEqualThreshold(got, 1, 1e-4) {
		t.Errorf("midnight blend = %v, want 1", got)
	}
	s.Update(60) // wraps back to dawn
	if got := s.BlendFactor(); !mgl32.FloatEqualThreshold(got, 0, 1e-4) {
		t.Errorf("after full cycle blend = %v, want 0", got)
	}
}
