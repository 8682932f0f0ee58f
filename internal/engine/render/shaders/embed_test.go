package shaders

import (
	"strings"
	"testing"
)

// allSources maps every embedded shader to its name for contract checks.
func allSources() map[string]string {
	return map[string]string{
		"entity.vert":    EntityVert,
		"entity.frag":    EntityFrag,
		"normalmap.vert": NormalMapVert,
		"normalmap.frag": NormalMapFrag,
		"animated.vert":  AnimatedVert,
		"terrain.vert":   TerrainVert,
		"terrain.frag":   TerrainFrag,
		"skybox.vert":    SkyboxVert,
		"skybox.frag":    SkyboxFrag,
		"water.vert":     WaterVert,
		"water.frag":     WaterFrag,
		"particle.vert":  ParticleVert,
		"particle.frag":  ParticleFrag,
		"shadow.vert":    ShadowVert,
		"shadow.frag":    ShadowFrag,
		"envmap.vert":    EnvMapVert,
		"envmap.frag":    EnvMapFrag,
		"debug.vert":     DebugVert,
		"debug.frag":     DebugFrag,
	}
}

func TestSourcesEmbedded(t *testing.T) {
	for name, src := range allSources() {
		if !strings.Contains(src, "#version 410 core") {
			t.Errorf("%s: missing or wrong version directive", name)
		}
	}
}

// Boolean flags travel as float uniforms (0.0/1.0) because the Go side
// uploads them with Uniform1f; a bool declaration would invite an integer
// upload, which GL rejects against a float uniform.
func TestFlagUniformsDeclaredFloat(t *testing.T) {
	for name, src := range allSources() {
		if strings.Contains(src, "uniform bool") {
			t.Errorf("%s: bool uniform declared; flags must be float", name)
		}
	}
	if !strings.Contains(EntityVert, "uniform float useFakeLighting;") {
		t.Error("entity.vert: useFakeLighting must be a float uniform")
	}
}
