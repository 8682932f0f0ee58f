// Package model defines the GPU-side data model shared by the loader and the
// renderers: raw vertex arrays, textured models, and the specialized model
// kinds used by the terrain, skybox, water, particle and debug paths.
package model

// Vertex attribute slots. Every shader in the engine binds these by index.
const (
	PosAttrib         uint32 = 0
	TexCoordAttrib    uint32 = 1
	NormalAttrib      uint32 = 2
	TangentAttrib     uint32 = 3
	JointIndexAttrib  uint32 = 4
	JointWeightAttrib uint32 = 5
)

// RawModel is a GPU vertex array with its draw count.
type RawModel struct {
	VaoID       uint32
	VertexCount int32
}

// ModelTexture is a GPU texture handle plus the material scalars the entity
// shaders consume.
type ModelTexture struct {
	ID              TextureID
	ShineDamper     float32
	Reflectivity    float32
	HasTransparency bool
	UsesFakeLight   bool
	// AtlasRows is 1 for plain textures. Atlases are square, so rows equal
	// columns.
	AtlasRows int
}

// DefaultModelTexture returns a ModelTexture with neutral material values.
func DefaultModelTexture() ModelTexture {
	return ModelTexture{
		ID:          EmptyTexture(),
		ShineDamper: 1.0,
		AtlasRows:   1,
	}
}

// TexturedModel pairs a raw model with its texture and an optional normal
// map. Identity for render batching is (texture handle, vertex array handle).
type TexturedModel struct {
	Raw       RawModel
	Texture   ModelTexture
	NormalMap TextureID // Empty when the model has no normal map
}

// Key identifies a TexturedModel for batching purposes.
type Key struct {
	Texture TextureID
	VaoID   uint32
}

// Key returns the batching identity of the model. All entities sharing a key
// are drawn with a single vertex-array and texture bind per pass.
func (m *TexturedModel) Key() Key {
	return Key{Texture: m.Texture.ID, VaoID: m.Raw.VaoID}
}

// TerrainModel is a generated terrain mesh together with its height grid for
// walkable-height queries.
type TerrainModel struct {
	Raw     RawModel
	Heights [][]float32
}

// TerrainTexturePack holds the blend-mapped terrain layer textures.
type TerrainTexturePack struct {
	Background TextureID
	R          TextureID
	G          TextureID
	B          TextureID
}

// SkyboxModel is a cube mesh with day and night cubemap textures.
type SkyboxModel struct {
	Raw          RawModel
	DayTexture   TextureID
	NightTexture TextureID
}

// WaterModel is the water quad with its distortion and normal maps.
type WaterModel struct {
	Raw       RawModel
	DuDvMap   TextureID
	NormalMap TextureID
}

// QuadModel is a screen-space quad used for GUI and composite passes.
type QuadModel struct {
	Raw RawModel
}

// DynamicModel is an indexed mesh whose vertex positions are re-streamed
// every frame (debug cuboids).
type DynamicModel struct {
	Raw       RawModel
	StreamVBO uint32
}

// Instanced particle attribute slots and layout.
const (
	ParticleModelviewCol1 uint32 = 1
	ParticleModelviewCol2 uint32 = 2
	ParticleModelviewCol3 uint32 = 3
	ParticleModelviewCol4 uint32 = 4
	ParticleTexOffset     uint32 = 5
	ParticleBlend         uint32 = 6

	// ParticleInstanceFloats is the per-instance stride: a 4x4 modelview,
	// two atlas offsets, and a blend factor.
	ParticleInstanceFloats = 21
	// ParticleMaxInstances bounds the stream VBO size.
	ParticleMaxInstances = 10000
)

// ParticleModel is the shared particle quad with its per-instance stream VBO.
type ParticleModel struct {
	Raw       RawModel
	StreamVBO uint32
}

// ParticleTexture is a particle atlas texture.
type ParticleTexture struct {
	ID        TextureID
	AtlasRows int
	// Additive selects additive blending instead of alpha blending.
	Additive bool
}

// ParticleTexturedModel pairs the shared quad with one atlas; it is the
// batching key for instanced particle draws.
type ParticleTexturedModel struct {
	Model   ParticleModel
	Texture ParticleTexture
}
