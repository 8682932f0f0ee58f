package entity

import "github.com/go-gl/mathgl/mgl32"

// MaxLights is the number of light slots in every lit shader.
const MaxLights = 4

// Light is a point or infinite light. Attenuation is the quadratic
// (constant, linear, quadratic) triple; (1,0,0) means no falloff, which is
// how sun-style infinite lights are expressed.
type Light struct {
	Position    mgl32.Vec3
	Color       mgl32.Vec3
	Attenuation mgl32.Vec3
}

// NewInfinite returns a light without distance falloff.
func NewInfinite(position, color mgl32.Vec3) Light {
	return Light{Position: position, Color: color, Attenuation: mgl32.Vec3{1, 0, 0}}
}

// NewPoint returns a light with the given quadratic attenuation.
func NewPoint(position, color, attenuation mgl32.Vec3) Light {
	return Light{Position: position, Color: color, Attenuation: attenuation}
}

// PadLights copies up to MaxLights lights into a fixed-size array, filling
// unused slots with a dark sentinel that contributes nothing: zero position,
// zero color, attenuation (1,0,0). Shaders always read all four slots.
func PadLights(lights []Light) [MaxLights]Light {
	var padded [MaxLights]Light
	for i := range padded {
		if i < len(lights) {
			padded[i] = lights[i]
		} else {
			padded[i] = Light{Attenuation: mgl32.Vec3{1, 0, 0}}
		}
	}
	return padded
}
