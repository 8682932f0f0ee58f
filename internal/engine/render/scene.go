package render

import (
	"github.com/fernwood/glade/internal/engine/entity"
	"github.com/fernwood/glade/internal/engine/particle"
	"github.com/fernwood/glade/internal/engine/terrain"
)

// Scene is everything the master renderer draws in one frame.
type Scene struct {
	Entities          []*entity.Entity
	NormalMapEntities []*entity.Entity
	EnvMapEntities    []*entity.Entity
	Player            *entity.Player
	Terrains          []*terrain.Terrain
	WaterTiles        []entity.WaterTile
	Skybox            *entity.Skybox
	Lights            []entity.Light
	Particles         *particle.Pool
}
