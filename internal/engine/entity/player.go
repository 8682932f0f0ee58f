package entity

import "github.com/fernwood/glade/internal/engine/animation"

// Player is the controllable scene entity. A player either uses the plain
// entity shading path or the skinned path, depending on whether it carries
// an animator.
type Player struct {
	Entity
	// Animator is nil for static players.
	Animator *animation.Animator
}

// Animated reports whether the player renders through the skinned pipeline.
func (p *Player) Animated() bool {
	return p.Animator != nil
}

// Update advances the player's animation, if any, by dt seconds.
func (p *Player) Update(dt float32) {
	if p.Animator != nil {
		p.Animator.Update(dt)
	}
}
