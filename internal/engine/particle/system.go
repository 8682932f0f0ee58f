package particle

import (
	"math/rand"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/model"
)

// System emits particles from a point at a steady rate with randomized
// speed, life and scale.
type System struct {
	Texture model.ParticleTexture

	ParticlesPerSecond float32
	Speed              float32
	GravityEffect      float32
	Life               float32
	Scale              float32

	// Jitter fractions, 0 disables. SpeedJitter 0.5 means emitted speed
	// varies ±50%.
	SpeedJitter float32
	LifeJitter  float32
	ScaleJitter float32

	// Direction restricts emission to a cone around this axis when set;
	// zero means emit in all directions.
	Direction      mgl32.Vec3
	DirectionCone  float32
	RandomRotation bool

	rng        *rand.Rand
	carryEmits float32
}

// NewSystem returns an emitter with a deterministic random source.
func NewSystem(tex model.ParticleTexture, pps, speed, gravityEffect, life, scale float32, seed int64) *System {
	return &System{
		Texture:            tex,
		ParticlesPerSecond: pps,
		Speed:              speed,
		GravityEffect:      gravityEffect,
		Life:               life,
		Scale:              scale,
		rng:                rand.New(rand.NewSource(seed)),
	}
}

// Emit generates this frame's particles at the given world position.
// Fractional emission counts carry over so low rates still emit.
func (s *System) Emit(dt float32, center mgl32.Vec3) []Particle {
	toEmit := s.ParticlesPerSecond*dt + s.carryEmits
	count := int(toEmit)
	s.carryEmits = toEmit - float32(count)

	particles := make([]Particle, 0, count)
	for i := 0; i < count; i++ {
		particles = append(particles, s.emitOne(center))
	}
	return particles
}

func (s *System) emitOne(center mgl32.Vec3) Particle {
	velocity := s.emitDirection().Mul(s.jittered(s.Speed, s.SpeedJitter))
	var rotation float32
	if s.RandomRotation {
		rotation = s.rng.Float32() * 360
	}
	return Particle{
		Texture:       s.Texture,
		Position:      center,
		Velocity:      velocity,
		GravityEffect: s.GravityEffect,
		Life:          s.jittered(s.Life, s.LifeJitter),
		Rotation:      rotation,
		Scale:         s.jittered(s.Scale, s.ScaleJitter),
	}
}

// emitDirection picks a random unit vector, inside the emission cone when
// one is configured.
func (s *System) emitDirection() mgl32.Vec3 {
	if s.Direction.Len() > 0 {
		return s.coneDirection()
	}
	theta := s.rng.Float32() * 2 * math32.Pi
	z := s.rng.Float32()*2 - 1
	r := math32.Sqrt(1 - z*z)
	return mgl32.Vec3{r * math32.Cos(theta), z, r * math32.Sin(theta)}
}

// coneDirection samples a direction within DirectionCone radians of the
// configured axis.
func (s *System) coneDirection() mgl32.Vec3 {
	cosCone := math32.Cos(s.DirectionCone)
	z := cosCone + s.rng.Float32()*(1-cosCone)
	theta := s.rng.Float32() * 2 * math32.Pi
	r := math32.Sqrt(1 - z*z)
	local := mgl32.Vec3{r * math32.Cos(theta), r * math32.Sin(theta), z}

	axis := s.Direction.Normalize()
	if axis.ApproxEqual(mgl32.Vec3{0, 0, 1}) {
		return local
	}
	if axis.ApproxEqual(mgl32.Vec3{0, 0, -1}) {
		return mgl32.Vec3{local.X(), -local.Y(), -local.Z()}
	}
	rot := mgl32.QuatBetweenVectors(mgl32.Vec3{0, 0, 1}, axis)
	return rot.Rotate(local)
}

func (s *System) jittered(value, jitter float32) float32 {
	if jitter == 0 {
		return value
	}
	return value * (1 + (s.rng.Float32()*2-1)*jitter)
}
