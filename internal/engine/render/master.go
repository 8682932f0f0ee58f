package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/camera"
	"github.com/fernwood/glade/internal/engine/entity"
	"github.com/fernwood/glade/internal/engine/framebuffer"
	"github.com/fernwood/glade/internal/engine/loader"
	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/shadow"
)

// clipOverlap extends the water clip planes slightly past the surface so
// the distorted edge does not show a gap.
const clipOverlap = 0.5

// noClipPlane keeps everything: no geometry of interest sits above
// y=10000. Used in the main pass, where GL requires some plane value even
// though clipping is not wanted.
var noClipPlane = mgl32.Vec4{0, -1, 0, 10000}

// Config is the camera and output geometry the master renderer is built
// for.
type Config struct {
	FOVDegrees   float32
	AspectRatio  float32
	NearPlane    float32
	FarPlane     float32
	ScreenWidth  int32
	ScreenHeight int32
	SkyColor     mgl32.Vec3
	ShowDebug    bool
}

// Master sequences the render passes of one frame: shadow map, water
// reflection/refraction, main camera pass, water composite, environment-
// mapped entities, particles. The multisample resolve and any GUI overlay
// happen outside, after RenderFrame returns.
type Master struct {
	cfg        Config
	projection mgl32.Mat4

	entities  *EntityRenderer
	normals   *NormalMapRenderer
	animated  *AnimatedRenderer
	terrains  *TerrainRenderer
	skybox    *SkyboxRenderer
	water     *WaterRenderer
	particles *ParticleRenderer
	envmap    *EnvMapRenderer
	debug     *DebugRenderer
	shadows   *shadow.Renderer

	fbos *framebuffer.Map
}

// NewMaster builds every per-category renderer against a shared projection
// matrix.
func NewMaster(cfg Config, ld *loader.Loader, fbos *framebuffer.Map, waterQuad model.WaterModel, particleModel model.ParticleModel) (*Master, error) {
	projection := mgl32.Perspective(mgl32.DegToRad(cfg.FOVDegrees), cfg.AspectRatio, cfg.NearPlane, cfg.FarPlane)

	m := &Master{cfg: cfg, projection: projection, fbos: fbos}

	var err error
	if m.entities, err = NewEntityRenderer(projection); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	if m.normals, err = NewNormalMapRenderer(projection); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	if m.animated, err = NewAnimatedRenderer(projection); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	if m.terrains, err = NewTerrainRenderer(projection); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	if m.skybox, err = NewSkyboxRenderer(projection); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	if m.water, err = NewWaterRenderer(projection, waterQuad, cfg.NearPlane, cfg.FarPlane); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	if m.particles, err = NewParticleRenderer(projection, ld, particleModel); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	if m.envmap, err = NewEnvMapRenderer(projection); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	if m.debug, err = NewDebugRenderer(projection, ld); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	if m.shadows, err = shadow.NewRenderer(cfg.FOVDegrees, cfg.AspectRatio, cfg.NearPlane); err != nil {
		return nil, fmt.Errorf("master renderer: %w", err)
	}
	return m, nil
}

// RenderFrame draws the scene. On return the camera framebuffer holds the
// finished frame and the default framebuffer is bound.
func (m *Master) RenderFrame(scene *Scene, cam camera.Camera, dt float32) {
	sun := sunLight(scene.Lights)
	lights := entity.PadLights(scene.Lights)

	entityBatches := GroupByModel(staticCasters(scene))
	normalBatches := GroupByModel(scene.NormalMapEntities)

	// 1. Shadow pass.
	m.shadowPass(scene, cam, sun, entityBatches, normalBatches)
	shadowTexture := m.fbos.Get(framebuffer.ShadowMap).DepthTexture
	toShadow := m.shadows.ToShadowMapSpace()

	// 2. Water reflection and refraction. With no water tiles neither pass
	// runs and the clip plane state is never touched.
	renderWaterPasses(scene.WaterTiles, clipToggle,
		func(waterHeight float32) {
			reflected := cam.Reflected(waterHeight)
			m.fbos.Get(framebuffer.Reflection).Bind()
			m.clear()
			m.renderScenePass(scene, &FrameState{
				View:             reflected.ViewMatrix(),
				CameraPosition:   reflected.Position,
				ClipPlane:        mgl32.Vec4{0, 1, 0, -waterHeight + clipOverlap},
				ToShadowMapSpace: toShadow,
				Lights:           lights,
				ShadowMapTexture: shadowTexture,
			}, entityBatches, normalBatches)
		},
		func(waterHeight float32) {
			m.fbos.Get(framebuffer.Refraction).Bind()
			m.clear()
			m.renderScenePass(scene, &FrameState{
				View:             cam.ViewMatrix(),
				CameraPosition:   cam.Position,
				ClipPlane:        mgl32.Vec4{0, -1, 0, waterHeight + clipOverlap},
				ToShadowMapSpace: toShadow,
				Lights:           lights,
				ShadowMapTexture: shadowTexture,
			}, entityBatches, normalBatches)
		})

	// 3. Main camera pass into the multisampled target.
	frame := &FrameState{
		View:             cam.ViewMatrix(),
		CameraPosition:   cam.Position,
		ClipPlane:        noClipPlane,
		ToShadowMapSpace: toShadow,
		Lights:           lights,
		ShadowMapTexture: shadowTexture,
	}
	m.fbos.Get(framebuffer.CameraMultisampled).Bind()
	m.clear()
	m.renderScenePass(scene, frame, entityBatches, normalBatches)

	// 4. Water composite over the main pass.
	m.water.Render(scene.WaterTiles, frame, m.fbos, sun, dt)

	// 5. Environment-mapped entities reflect the day sky.
	if scene.Skybox != nil {
		m.envmap.Render(scene.EnvMapEntities, frame, scene.Skybox.Model.DayTexture.Handle())
	}

	// 6. Particles draw last, over everything but without depth writes.
	m.particles.Render(scene.Particles, frame.View)

	if m.cfg.ShowDebug {
		m.debug.RenderCuboid(m.shadows.BoxCornersWorldSpace(), mgl32.Vec3{1, 0, 0}, frame.View)
	}

	framebuffer.Unbind(m.cfg.ScreenWidth, m.cfg.ScreenHeight)
}

// shadowPass renders the depth-only shadow map for all caster categories.
func (m *Master) shadowPass(scene *Scene, cam camera.Camera, sun entity.Light, entityBatches, normalBatches []Batch) {
	m.fbos.Get(framebuffer.ShadowMap).Bind()
	m.shadows.StartRender(cam, sun)
	for _, b := range entityBatches {
		m.shadows.RenderEntities(b.Model, b.Entities)
	}
	for _, b := range normalBatches {
		m.shadows.RenderEntities(b.Model, b.Entities)
	}
	if scene.Player != nil && scene.Player.Animated() {
		// The skinned vertex layout keeps plain bind-pose positions in
		// slot 0, which is all the depth pass reads.
		m.shadows.RenderEntities(scene.Player.Model, []*entity.Entity{&scene.Player.Entity})
	}
	m.shadows.RenderTerrain(scene.Terrains)
	m.shadows.StopRender()
	framebuffer.Unbind(m.cfg.ScreenWidth, m.cfg.ScreenHeight)
}

// renderScenePass draws the lit categories with one frame state. Used for
// the reflection, refraction and main passes; only the view matrix and
// clip plane differ between them.
func (m *Master) renderScenePass(scene *Scene, frame *FrameState, entityBatches, normalBatches []Batch) {
	m.entities.Render(entityBatches, frame)
	m.normals.Render(normalBatches, frame)
	if scene.Player != nil && scene.Player.Animated() {
		m.animated.Render(scene.Player, frame)
	}
	m.terrains.Render(scene.Terrains, frame)
	m.skybox.Render(scene.Skybox, frame.View)
}

// staticCasters is the entity list plus the player when it uses the static
// shading path. The animated player skins in its own shader and gets its
// own depth draw in the shadow pass, so it stays out of these batches.
func staticCasters(scene *Scene) []*entity.Entity {
	if scene.Player == nil || scene.Player.Animated() {
		return scene.Entities
	}
	casters := make([]*entity.Entity, 0, len(scene.Entities)+1)
	casters = append(casters, scene.Entities...)
	return append(casters, &scene.Player.Entity)
}

// clipToggle flips the global CLIP_DISTANCE0 state. A package variable so
// the water pass guard is observable without a GL context.
var clipToggle = func(enabled bool) {
	if enabled {
		gl.Enable(gl.CLIP_DISTANCE0)
	} else {
		gl.Disable(gl.CLIP_DISTANCE0)
	}
}

// renderWaterPasses brackets the reflection and refraction passes with the
// hardware clip plane toggle. Without water tiles neither pass runs and
// toggle is never called.
func renderWaterPasses(tiles []entity.WaterTile, toggle func(bool), reflection, refraction func(waterHeight float32)) {
	waterHeight, ok := entity.WaterHeight(tiles)
	if !ok {
		return
	}
	toggle(true)
	reflection(waterHeight)
	refraction(waterHeight)
	toggle(false)
}

func (m *Master) clear() {
	c := m.cfg.SkyColor
	gl.ClearColor(c.X(), c.Y(), c.Z(), 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
}

// sunLight is the dominant light driving shadows and water specular: the
// first light of the scene, or a dim overhead default when there is none.
func sunLight(lights []entity.Light) entity.Light {
	if len(lights) > 0 {
		return lights[0]
	}
	return entity.NewInfinite(mgl32.Vec3{0, 1000, 0}, mgl32.Vec3{0.3, 0.3, 0.3})
}

// Destroy releases every renderer.
func (m *Master) Destroy() {
	m.entities.Destroy()
	m.normals.Destroy()
	m.animated.Destroy()
	m.terrains.Destroy()
	m.skybox.Destroy()
	m.water.Destroy()
	m.particles.Destroy()
	m.envmap.Destroy()
	m.debug.Destroy()
	m.shadows.Destroy()
}
