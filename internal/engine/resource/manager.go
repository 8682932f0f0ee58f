// Package resource owns the loader and the engine's asset catalog. Every
// Init method is idempotent: the first call loads, later calls are no-ops,
// so scene setup code can declare what it needs without coordination.
package resource

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fernwood/glade/internal/engine/loader"
	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/terrain"
	"github.com/fernwood/glade/internal/logger"
	"github.com/fernwood/glade/pkg/objfile"
)

// ModelSpec describes one entry of the model catalog.
type ModelSpec struct {
	Name            string
	OBJPath         string
	TexturePath     string
	NormalMapPath   string // optional; triggers tangent generation
	ShineDamper     float32
	Reflectivity    float32
	HasTransparency bool
	UsesFakeLight   bool
	AtlasRows       int
}

// Manager loads and hands out every asset the engine uses. Not safe for
// concurrent use; all methods run on the GL thread.
type Manager struct {
	ld        *loader.Loader
	assetRoot string

	models map[string]*model.TexturedModel

	terrainModel model.TerrainModel
	terrainPack  model.TerrainTexturePack
	terrainBlend model.TextureID
	terrainReady bool

	skybox      model.SkyboxModel
	skyboxReady bool

	water      model.WaterModel
	waterReady bool

	particleModel model.ParticleModel
	particleReady bool
	atlases       map[string]model.ParticleTexture

	guiQuad     model.QuadModel
	guiReady    bool
	guiTextures map[string]model.TextureID
}

// NewManager creates a manager rooted at the asset directory with the
// given number of decode workers.
func NewManager(assetRoot string, workers int) *Manager {
	return &Manager{
		ld:          loader.New(workers),
		assetRoot:   assetRoot,
		models:      make(map[string]*model.TexturedModel),
		atlases:     make(map[string]model.ParticleTexture),
		guiTextures: make(map[string]model.TextureID),
	}
}

// Loader exposes the underlying loader for draining and VAO creation.
func (m *Manager) Loader() *loader.Loader {
	return m.ld
}

func (m *Manager) path(rel string) string {
	return filepath.Join(m.assetRoot, rel)
}

// InitModels loads the catalog entries that are not loaded yet.
func (m *Manager) InitModels(specs []ModelSpec) error {
	for _, spec := range specs {
		if _, done := m.models[spec.Name]; done {
			continue
		}
		tm, err := m.loadModel(spec)
		if err != nil {
			return fmt.Errorf("loading model %s: %w", spec.Name, err)
		}
		m.models[spec.Name] = tm
		logger.Log.Debug("model loaded", zap.String("name", spec.Name))
	}
	return nil
}

func (m *Manager) loadModel(spec ModelSpec) (*model.TexturedModel, error) {
	mesh, err := objfile.Load(m.path(spec.OBJPath))
	if err != nil {
		return nil, err
	}

	var raw model.RawModel
	var normalMap model.TextureID
	if spec.NormalMapPath != "" {
		raw = m.ld.LoadToVAOWithNormalMap(mesh.Positions, mesh.TexCoords, mesh.Normals,
			mesh.ComputeTangents(), mesh.Indices)
		normalMap = m.ld.RequestTexture(m.path(spec.NormalMapPath), loader.MipmappedTexture(0))
	} else {
		raw = m.ld.LoadToVAO(mesh.Positions, mesh.TexCoords, mesh.Normals, mesh.Indices)
		normalMap = model.EmptyTexture()
	}

	atlasRows := spec.AtlasRows
	if atlasRows < 1 {
		atlasRows = 1
	}
	shine := spec.ShineDamper
	if shine == 0 {
		shine = 1
	}
	return &model.TexturedModel{
		Raw: raw,
		Texture: model.ModelTexture{
			ID:              m.ld.RequestTexture(m.path(spec.TexturePath), loader.MipmappedTexture(-0.4)),
			ShineDamper:     shine,
			Reflectivity:    spec.Reflectivity,
			HasTransparency: spec.HasTransparency,
			UsesFakeLight:   spec.UsesFakeLight,
			AtlasRows:       atlasRows,
		},
		NormalMap: normalMap,
	}, nil
}

// Model returns a catalog model by name, panicking when InitModels has not
// loaded it.
func (m *Manager) Model(name string) *model.TexturedModel {
	tm, ok := m.models[name]
	if !ok {
		panic(fmt.Sprintf("resource: model %q not loaded; call InitModels first", name))
	}
	return tm
}

// InitTerrain generates the terrain mesh and requests the blend textures.
func (m *Manager) InitTerrain(seed int64, vertexCount int) {
	if m.terrainReady {
		return
	}
	gen := terrain.NewHeightsGenerator(seed, 18, 0.08)
	mesh := terrain.GenerateMesh(gen, vertexCount)
	m.terrainModel = model.TerrainModel{
		Raw:     m.ld.LoadToVAO(mesh.Positions, mesh.TexCoords, mesh.Normals, mesh.Indices),
		Heights: mesh.Heights,
	}
	params := loader.AnisotropicTexture()
	m.terrainPack = model.TerrainTexturePack{
		Background: m.ld.RequestTexture(m.path("terrain/grass.png"), params),
		R:          m.ld.RequestTexture(m.path("terrain/mud.png"), params),
		G:          m.ld.RequestTexture(m.path("terrain/flowers.png"), params),
		B:          m.ld.RequestTexture(m.path("terrain/path.png"), params),
	}
	m.terrainBlend = m.ld.RequestTexture(m.path("terrain/blendmap.png"), loader.TextureParams{})
	m.terrainReady = true
}

// Terrain builds a terrain chunk placed at the given world position.
func (m *Manager) Terrain(x, z float32) *terrain.Terrain {
	if !m.terrainReady {
		panic("resource: terrain not loaded; call InitTerrain first")
	}
	return terrain.New(x, z, m.terrainModel, m.terrainPack, m.terrainBlend)
}

// InitSkybox uploads the sky cube and requests both cubemaps.
func (m *Manager) InitSkybox() {
	if m.skyboxReady {
		return
	}
	m.skybox = model.SkyboxModel{
		Raw:          m.ld.LoadSimpleToVAO(skyboxVertices(), 3),
		DayTexture:   m.ld.LoadCubeMap(m.path("skybox/day")),
		NightTexture: m.ld.LoadCubeMap(m.path("skybox/night")),
	}
	m.skyboxReady = true
}

// Skybox returns the sky model, panicking before InitSkybox.
func (m *Manager) Skybox() model.SkyboxModel {
	if !m.skyboxReady {
		panic("resource: skybox not loaded; call InitSkybox first")
	}
	return m.skybox
}

// InitWater uploads the shared water quad and its distortion textures.
func (m *Manager) InitWater() {
	if m.waterReady {
		return
	}
	m.water = model.WaterModel{
		Raw:       m.ld.LoadSimpleToVAO(waterQuadVertices(), 2),
		DuDvMap:   m.ld.RequestTexture(m.path("water/dudv.png"), loader.TextureParams{}),
		NormalMap: m.ld.RequestTexture(m.path("water/normal.png"), loader.TextureParams{}),
	}
	m.waterReady = true
}

// Water returns the water model, panicking before InitWater.
func (m *Manager) Water() model.WaterModel {
	if !m.waterReady {
		panic("resource: water not loaded; call InitWater first")
	}
	return m.water
}

// InitParticles uploads the instanced particle quad and its stream VBO.
func (m *Manager) InitParticles() {
	if m.particleReady {
		return
	}
	raw := m.ld.LoadSimpleToVAO(particleQuadVertices(), 2)
	stream := m.ld.CreateEmptyFloatVBO(model.ParticleMaxInstances * model.ParticleInstanceFloats)

	stride := model.ParticleInstanceFloats
	m.ld.AddInstancedAttrib(raw.VaoID, stream, model.ParticleModelviewCol1, 4, stride, 0)
	m.ld.AddInstancedAttrib(raw.VaoID, stream, model.ParticleModelviewCol2, 4, stride, 4)
	m.ld.AddInstancedAttrib(raw.VaoID, stream, model.ParticleModelviewCol3, 4, stride, 8)
	m.ld.AddInstancedAttrib(raw.VaoID, stream, model.ParticleModelviewCol4, 4, stride, 12)
	m.ld.AddInstancedAttrib(raw.VaoID, stream, model.ParticleTexOffset, 4, stride, 16)
	m.ld.AddInstancedAttrib(raw.VaoID, stream, model.ParticleBlend, 1, stride, 20)

	m.particleModel = model.ParticleModel{Raw: raw, StreamVBO: stream}
	m.particleReady = true
}

// ParticleModel returns the shared particle quad, panicking before
// InitParticles.
func (m *Manager) ParticleModel() model.ParticleModel {
	if !m.particleReady {
		panic("resource: particle model not loaded; call InitParticles first")
	}
	return m.particleModel
}

// InitParticleAtlas requests a particle atlas texture under a name.
func (m *Manager) InitParticleAtlas(name, relPath string, rows int, additive bool) {
	if _, done := m.atlases[name]; done {
		return
	}
	m.atlases[name] = model.ParticleTexture{
		ID:        m.ld.RequestTexture(m.path(relPath), loader.TextureParams{}),
		AtlasRows: rows,
		Additive:  additive,
	}
}

// ParticleAtlas returns a named atlas, panicking when it was never
// requested.
func (m *Manager) ParticleAtlas(name string) model.ParticleTexture {
	tex, ok := m.atlases[name]
	if !ok {
		panic(fmt.Sprintf("resource: particle atlas %q not loaded; call InitParticleAtlas first", name))
	}
	return tex
}

// InitGUITexture requests a flat overlay texture (HUD elements, font
// atlases) under a name. The first call also uploads the quad all overlays
// share.
func (m *Manager) InitGUITexture(name, relPath string) {
	if !m.guiReady {
		m.guiQuad = model.QuadModel{Raw: m.ld.LoadQuadsToVAO(guiQuadPositions(), guiQuadTexCoords())}
		m.guiReady = true
	}
	if _, done := m.guiTextures[name]; done {
		return
	}
	m.guiTextures[name] = m.ld.RequestTexture(m.path(relPath), loader.TextureParams{})
}

// GUIQuad returns the shared overlay quad, panicking before the first
// InitGUITexture call.
func (m *Manager) GUIQuad() model.QuadModel {
	if !m.guiReady {
		panic("resource: gui quad not loaded; call InitGUITexture first")
	}
	return m.guiQuad
}

// GUITexture returns a named overlay texture, panicking when it was never
// requested.
func (m *Manager) GUITexture(name string) model.TextureID {
	id, ok := m.guiTextures[name]
	if !ok {
		panic(fmt.Sprintf("resource: gui texture %q not loaded; call InitGUITexture first", name))
	}
	return id
}

// ResolveAll converts every Loading texture id into its Loaded handle.
// Call once the loader reports no in-flight work; resolving earlier panics
// in the loader.
func (m *Manager) ResolveAll() {
	for _, tm := range m.models {
		tm.Texture.ID = m.ld.Resolve(tm.Texture.ID)
		if tm.NormalMap.Kind() != model.TextureEmpty {
			tm.NormalMap = m.ld.Resolve(tm.NormalMap)
		}
	}
	if m.terrainReady {
		m.terrainPack.Background = m.ld.Resolve(m.terrainPack.Background)
		m.terrainPack.R = m.ld.Resolve(m.terrainPack.R)
		m.terrainPack.G = m.ld.Resolve(m.terrainPack.G)
		m.terrainPack.B = m.ld.Resolve(m.terrainPack.B)
		m.terrainBlend = m.ld.Resolve(m.terrainBlend)
	}
	if m.skyboxReady {
		m.skybox.DayTexture = m.ld.Resolve(m.skybox.DayTexture)
		m.skybox.NightTexture = m.ld.Resolve(m.skybox.NightTexture)
	}
	if m.waterReady {
		m.water.DuDvMap = m.ld.Resolve(m.water.DuDvMap)
		m.water.NormalMap = m.ld.Resolve(m.water.NormalMap)
	}
	for name, tex := range m.atlases {
		tex.ID = m.ld.Resolve(tex.ID)
		m.atlases[name] = tex
	}
	for name, id := range m.guiTextures {
		m.guiTextures[name] = m.ld.Resolve(id)
	}
}

// Destroy releases the loader and with it every GPU resource.
func (m *Manager) Destroy() {
	m.ld.Destroy()
}
