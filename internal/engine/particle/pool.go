package particle

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/model"
)

// Pool holds every live particle, grouped by texture so the renderer binds
// each atlas once.
type Pool struct {
	groups map[model.ParticleTexture][]Particle
}

// NewPool returns an empty particle pool.
func NewPool() *Pool {
	return &Pool{groups: make(map[model.ParticleTexture][]Particle)}
}

// Add inserts particles into their texture group.
func (p *Pool) Add(particles []Particle) {
	for _, pt := range particles {
		p.groups[pt.Texture] = append(p.groups[pt.Texture], pt)
	}
}

// Update simulates every particle, drops the dead and keeps each group
// sorted back-to-front relative to the camera. Alpha-blended particles draw
// far-to-near; the sort is insertion-based because frame-to-frame order is
// nearly stable.
func (p *Pool) Update(dt float32, cameraPos mgl32.Vec3) {
	for tex, group := range p.groups {
		alive := group[:0]
		for i := range group {
			if group[i].Update(dt, cameraPos) {
				alive = append(alive, group[i])
			}
		}
		if len(alive) == 0 {
			delete(p.groups, tex)
			continue
		}
		sortBackToFront(alive)
		p.groups[tex] = alive
	}
}

// Groups visits every texture group. Iteration order is unspecified; the
// particles within a group are back-to-front.
func (p *Pool) Groups(visit func(tex model.ParticleTexture, particles []Particle)) {
	for tex, group := range p.groups {
		visit(tex, group)
	}
}

// Len returns the total number of live particles.
func (p *Pool) Len() int {
	n := 0
	for _, group := range p.groups {
		n += len(group)
	}
	return n
}

// sortBackToFront insertion-sorts by descending camera distance.
func sortBackToFront(particles []Particle) {
	for i := 1; i < len(particles); i++ {
		current := particles[i]
		j := i - 1
		for j >= 0 && particles[j].distance < current.distance {
			particles[j+1] = particles[j]
			j--
		}
		particles[j+1] = current
	}
}
