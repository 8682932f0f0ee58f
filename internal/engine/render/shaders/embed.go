// Package shaders embeds the GLSL sources for every shader program in the
// engine.
package shaders

import _ "embed"

var (
	//go:embed entity.vert
	EntityVert string
	//go:embed entity.frag
	EntityFrag string

	//go:embed normalmap.vert
	NormalMapVert string
	//go:embed normalmap.frag
	NormalMapFrag string

	//go:embed animated.vert
	AnimatedVert string

	//go:embed terrain.vert
	TerrainVert string
	//go:embed terrain.frag
	TerrainFrag string

	//go:embed skybox.vert
	SkyboxVert string
	//go:embed skybox.frag
	SkyboxFrag string

	//go:embed water.vert
	WaterVert string
	//go:embed water.frag
	WaterFrag string

	//go:embed particle.vert
	ParticleVert string
	//go:embed particle.frag
	ParticleFrag string

	//go:embed shadow.vert
	ShadowVert string
	//go:embed shadow.frag
	ShadowFrag string

	//go:embed envmap.vert
	EnvMapVert string
	//go:embed envmap.frag
	EnvMapFrag string

	//go:embed debug.vert
	DebugVert string
	//go:embed debug.frag
	DebugFrag string
)
