// Package entity holds the scene-side objects the renderer consumes:
// placed models, lights, water tiles and the skybox clock.
package entity

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/model"
)

// Entity is one placed instance of a textured model.
type Entity struct {
	Model    *model.TexturedModel
	Position mgl32.Vec3
	// Rotation is Euler angles in degrees, applied X then Y then Z.
	Rotation mgl32.Vec3
	Scale    float32
	// AtlasIndex selects the tile within the model texture atlas, row-major.
	AtlasIndex int
}

// New places a model in the scene with uniform scale.
func New(m *model.TexturedModel, position, rotation mgl32.Vec3, scale float32) Entity {
	return Entity{Model: m, Position: position, Rotation: rotation, Scale: scale}
}

// Transform builds the entity's model matrix.
func (e *Entity) Transform() mgl32.Mat4 {
	t := mgl32.Translate3D(e.Position.X(), e.Position.Y(), e.Position.Z())
	t = t.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(e.Rotation.X())))
	t = t.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(e.Rotation.Y())))
	t = t.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(e.Rotation.Z())))
	return t.Mul4(mgl32.Scale3D(e.Scale, e.Scale, e.Scale))
}

// AtlasOffset returns the UV offset of the entity's atlas tile. A 1x1 atlas
// always yields (0,0).
func (e *Entity) AtlasOffset() mgl32.Vec2 {
	rows := e.Model.Texture.AtlasRows
	if rows <= 1 {
		return mgl32.Vec2{}
	}
	col := e.AtlasIndex % rows
	row := e.AtlasIndex / rows
	return mgl32.Vec2{float32(col) / float32(rows), float32(row) / float32(rows)}
}

// IncreaseRotation adds the given angles, in degrees, to the entity rotation.
func (e *Entity) IncreaseRotation(dx, dy, dz float32) {
	e.Rotation = e.Rotation.Add(mgl32.Vec3{dx, dy, dz})
}
