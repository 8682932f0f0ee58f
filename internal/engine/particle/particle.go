// Package particle implements the CPU side of the particle effects:
// emission, simulation, atlas progression and the back-to-front ordering
// the renderer needs for alpha blending.
package particle

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/model"
)

// gravity is world units per second squared, pulling down.
const gravity = -50.0

// Particle is one live particle. It is simulated until Life runs out.
type Particle struct {
	Texture       model.ParticleTexture
	Position      mgl32.Vec3
	Velocity      mgl32.Vec3
	GravityEffect float32
	Life          float32
	Rotation      float32
	Scale         float32

	elapsed float32
	// Atlas progression, refreshed every update.
	OffsetCurrent mgl32.Vec2
	OffsetNext    mgl32.Vec2
	Blend         float32
	// distance to the camera, squared; maintained for the depth sort.
	distance float32
}

// Update advances the particle by dt seconds and reports whether it is
// still alive. The camera position feeds the back-to-front sort.
func (p *Particle) Update(dt float32, cameraPos mgl32.Vec3) bool {
	p.Velocity[1] += gravity * p.GravityEffect * dt
	p.Position = p.Position.Add(p.Velocity.Mul(dt))
	p.distance = cameraPos.Sub(p.Position).LenSqr()
	p.advanceAtlas(dt)
	p.elapsed += dt
	return p.elapsed < p.Life
}

// advanceAtlas maps the particle's lifetime progress onto the texture atlas
// tiles and the blend factor between the current and next tile.
func (p *Particle) advanceAtlas(dt float32) {
	rows := p.Texture.AtlasRows
	if rows <= 1 {
		return
	}
	tiles := rows * rows
	progress := (p.elapsed + dt) / p.Life
	if progress > 1 {
		progress = 1
	}
	exact := progress * float32(tiles)
	current := int(exact)
	next := current + 1
	if current >= tiles {
		current = tiles - 1
	}
	if next >= tiles {
		next = tiles - 1
	}
	p.Blend = exact - float32(int(exact))
	p.OffsetCurrent = atlasOffset(current, rows)
	p.OffsetNext = atlasOffset(next, rows)
}

func atlasOffset(index, rows int) mgl32.Vec2 {
	col := index % rows
	row := index / rows
	return mgl32.Vec2{float32(col) / float32(rows), float32(row) / float32(rows)}
}
