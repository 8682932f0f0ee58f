package resource

import (
	"strings"
	"testing"
)

// Accessors must fail loudly before their Init counterpart ran; reading a
// zero-value model would surface much later as a blank draw.

func expectPanicContaining(t *testing.T, substr string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, substr) {
			t.Errorf("panic %v does not mention %q", r, substr)
		}
	}()
	fn()
}

func TestAccessorsPanicBeforeInit(t *testing.T) {
	m := NewManager("res", 1)
	defer m.Destroy()

	expectPanicContaining(t, "InitModels", func() { m.Model("tree") })
	expectPanicContaining(t, "InitTerrain", func() { m.Terrain(0, 0) })
	expectPanicContaining(t, "InitSkybox", func() { m.Skybox() })
	expectPanicContaining(t, "InitWater", func() { m.Water() })
	expectPanicContaining(t, "InitParticles", func() { m.ParticleModel() })
	expectPanicContaining(t, "InitParticleAtlas", func() { m.ParticleAtlas("fire") })
	expectPanicContaining(t, "InitGUITexture", func() { m.GUITexture("health") })
	expectPanicContaining(t, "InitGUITexture", func() { m.GUIQuad() })
}

func TestQuadGeometrySizes(t *testing.T) {
	if got := len(skyboxVertices()); got != 36*3 {
		t.Errorf("skybox has %d floats, want %d", got, 36*3)
	}
	if got := len(waterQuadVertices()); got != 6*2 {
		t.Errorf("water quad has %d floats, want %d", got, 6*2)
	}
	if got := len(particleQuadVertices()); got != 6*2 {
		t.Errorf("particle quad has %d floats, want %d", got, 6*2)
	}
	if p, tc := len(guiQuadPositions()), len(guiQuadTexCoords()); p != 6*2 || tc != p {
		t.Errorf("gui quad has %d positions and %d tex coords, want %d each", p, tc, 6*2)
	}
}
