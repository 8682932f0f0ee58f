package entity

import "github.com/fernwood/glade/internal/engine/model"

// skyboxRotateSpeed is degrees of skybox yaw per second.
const skyboxRotateSpeed = 1.0

// dayLengthSeconds is one full day-night cycle.
const dayLengthSeconds = 120.0

// Skybox carries the sky cube model plus the day-night clock that drives
// the cubemap crossfade.
type Skybox struct {
	Model    model.SkyboxModel
	Rotation float32
	clock    float32
}

// NewSkybox wraps a skybox model with the clock at dawn.
func NewSkybox(m model.SkyboxModel) *Skybox {
	return &Skybox{Model: m}
}

// Update advances the rotation and day-night clock by dt seconds.
func (s *Skybox) Update(dt float32) {
	s.Rotation += skyboxRotateSpeed * dt
	s.clock += dt
	for s.clock >= dayLengthSeconds {
		s.clock -= dayLengthSeconds
	}
}

// BlendFactor returns how much of the night cubemap to mix in, 0 at midday
// and 1 at midnight, ramping linearly through dusk and dawn.
func (s *Skybox) BlendFactor() float32 {
	half := float32(dayLengthSeconds / 2)
	if s.clock < half {
		return s.clock / half
	}
	return (float32(dayLengthSeconds) - s.clock) / half
}
