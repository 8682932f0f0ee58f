package main

import (
	"fmt"
	"math/rand"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/animation"
	"github.com/fernwood/glade/internal/engine/entity"
	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/particle"
	"github.com/fernwood/glade/internal/engine/render"
	"github.com/fernwood/glade/internal/engine/resource"
	"github.com/fernwood/glade/internal/engine/terrain"
	"github.com/fernwood/glade/pkg/objfile"
)

// waterLevel is the lake surface height. Vegetation is not placed below it.
const waterLevel float32 = -2

const sceneSeed = 42

// modelCatalog lists every model the demo scene places.
func modelCatalog() []resource.ModelSpec {
	return []resource.ModelSpec{
		{Name: "tree", OBJPath: "models/tree.obj", TexturePath: "models/tree.png"},
		{Name: "pine", OBJPath: "models/pine.obj", TexturePath: "models/pine.png"},
		{Name: "fern", OBJPath: "models/fern.obj", TexturePath: "models/fern.png",
			HasTransparency: true, AtlasRows: 2},
		{Name: "grass", OBJPath: "models/grass.obj", TexturePath: "models/grass.png",
			HasTransparency: true, UsesFakeLight: true},
		{Name: "lamp", OBJPath: "models/lamp.obj", TexturePath: "models/lamp.png",
			UsesFakeLight: true},
		{Name: "barrel", OBJPath: "models/barrel.obj", TexturePath: "models/barrel.png",
			NormalMapPath: "models/barrelNormal.png", ShineDamper: 10, Reflectivity: 0.5},
		{Name: "boulder", OBJPath: "models/boulder.obj", TexturePath: "models/boulder.png",
			NormalMapPath: "models/boulderNormal.png", ShineDamper: 6, Reflectivity: 0.3},
		{Name: "crate", OBJPath: "models/crate.obj", TexturePath: "models/crate.png",
			ShineDamper: 4, Reflectivity: 0.2},
		{Name: "player", OBJPath: "models/player.obj", TexturePath: "models/player.png"},
	}
}

// emitter pins a particle system to a world position.
type emitter struct {
	system *particle.System
	origin mgl32.Vec3
}

// demoScene is the renderable scene plus the simulation-side pieces the frame
// loop advances.
type demoScene struct {
	*render.Scene
	emitters []emitter
	// crate spins slowly so the environment reflection sweeps across it.
	crate *entity.Entity
}

// update advances everything that moves: the player animation, the day-night
// clock, the showcase crate and the particle simulation.
func (d *demoScene) update(dt float32, cameraPos mgl32.Vec3) {
	if d.Player != nil {
		d.Player.Update(dt)
	}
	if d.crate != nil {
		d.crate.IncreaseRotation(0, 25*dt, 0)
	}
	if d.Skybox != nil {
		d.Skybox.Update(dt)
	}
	for i := range d.emitters {
		d.Particles.Add(d.emitters[i].system.Emit(dt, d.emitters[i].origin))
	}
	d.Particles.Update(dt, cameraPos)
}

// buildScene assembles the demo: one terrain chunk, scattered vegetation,
// normal-mapped props, an environment-mapped crate, a lake, lamps with
// matching point lights, a skinned player and two particle emitters.
func buildScene(res *resource.Manager, assetRoot string) (*demoScene, error) {
	chunk := res.Terrain(0, 0)

	scene := &render.Scene{
		Terrains:  []*terrain.Terrain{chunk},
		Skybox:    entity.NewSkybox(res.Skybox()),
		Particles: particle.NewPool(),
	}

	rng := rand.New(rand.NewSource(sceneSeed))

	scatter(scene, chunk, rng, res.Model("tree"), 40, 5, 1.5)
	scatter(scene, chunk, rng, res.Model("pine"), 30, 0.9, 0.3)
	scatter(scene, chunk, rng, res.Model("grass"), 120, 1.2, 0.4)
	scatterAtlas(scene, chunk, rng, res.Model("fern"), 60, 0.8)

	placeLamps(scene, chunk, res)
	crate := placeProps(scene, chunk, res)

	lake := mgl32.Vec2{400, 340}
	scene.WaterTiles = []entity.WaterTile{
		{X: lake.X(), Z: lake.Y(), Height: waterLevel},
		{X: lake.X() + 2*entity.WaterTileSize, Z: lake.Y(), Height: waterLevel},
	}

	player, err := buildPlayer(res, assetRoot)
	if err != nil {
		return nil, err
	}
	player.Position = mgl32.Vec3{420, chunk.HeightAt(420, 500), 500}
	player.Scale = 1
	scene.Player = player

	campfire := mgl32.Vec3{380, chunk.HeightAt(380, 480), 480}
	d := &demoScene{Scene: scene, crate: crate}
	d.emitters = []emitter{
		{system: fireSystem(res), origin: campfire.Add(mgl32.Vec3{0, 1, 0})},
		{system: smokeSystem(res), origin: campfire.Add(mgl32.Vec3{0, 3, 0})},
	}
	return d, nil
}

// scatter places count instances of a model at random terrain positions with
// random yaw and jittered scale. Positions that fall under the lake surface
// are skipped.
func scatter(scene *render.Scene, chunk *terrain.Terrain, rng *rand.Rand, m *model.TexturedModel, count int, scale, scaleJitter float32) {
	for i := 0; i < count; i++ {
		x := rng.Float32() * terrain.Size
		z := rng.Float32() * terrain.Size
		y := chunk.HeightAt(x, z)
		if y < waterLevel+1 {
			continue
		}
		e := entity.New(m,
			mgl32.Vec3{x, y, z},
			mgl32.Vec3{0, rng.Float32() * 360, 0},
			scale+(rng.Float32()*2-1)*scaleJitter)
		scene.Entities = append(scene.Entities, &e)
	}
}

// scatterAtlas is scatter for atlas-textured models, picking a random tile
// per instance.
func scatterAtlas(scene *render.Scene, chunk *terrain.Terrain, rng *rand.Rand, m *model.TexturedModel, count int, scale float32) {
	rows := m.Texture.AtlasRows
	for i := 0; i < count; i++ {
		x := rng.Float32() * terrain.Size
		z := rng.Float32() * terrain.Size
		y := chunk.HeightAt(x, z)
		if y < waterLevel+1 {
			continue
		}
		e := entity.New(m, mgl32.Vec3{x, y, z}, mgl32.Vec3{0, rng.Float32() * 360, 0}, scale)
		e.AtlasIndex = rng.Intn(rows * rows)
		scene.Entities = append(scene.Entities, &e)
	}
}

// placeLamps puts three lamps near the campsite, each with a point light
// floating at the bulb. The sun goes in slot 0: it drives shadows and water
// specular.
func placeLamps(scene *render.Scene, chunk *terrain.Terrain, res *resource.Manager) {
	scene.Lights = append(scene.Lights,
		entity.NewInfinite(mgl32.Vec3{10000, 15000, -10000}, mgl32.Vec3{1, 1, 1}))

	onGround := func(x, z float32) mgl32.Vec3 {
		return mgl32.Vec3{x, chunk.HeightAt(x, z), z}
	}
	attenuation := mgl32.Vec3{1, 0.01, 0.002}
	positions := []mgl32.Vec3{
		onGround(360, 460),
		onGround(440, 450),
		onGround(400, 530),
	}
	colors := []mgl32.Vec3{{2, 0, 0}, {0, 2, 2}, {2, 2, 0}}
	lampModel := res.Model("lamp")
	for i, pos := range positions {
		e := entity.New(lampModel, pos, mgl32.Vec3{}, 1)
		scene.Entities = append(scene.Entities, &e)
		scene.Lights = append(scene.Lights,
			entity.NewPoint(pos.Add(mgl32.Vec3{0, 12, 0}), colors[i], attenuation))
	}
}

// placeProps adds the normal-mapped and environment-mapped showcase objects
// and returns the crate so the frame loop can spin it.
func placeProps(scene *render.Scene, chunk *terrain.Terrain, res *resource.Manager) *entity.Entity {
	barrel := entity.New(res.Model("barrel"),
		mgl32.Vec3{410, chunk.HeightAt(410, 470) + 3, 470}, mgl32.Vec3{}, 0.6)
	boulder := entity.New(res.Model("boulder"),
		mgl32.Vec3{350, chunk.HeightAt(350, 520), 520}, mgl32.Vec3{0, 70, 0}, 1.2)
	scene.NormalMapEntities = append(scene.NormalMapEntities, &barrel, &boulder)

	crate := entity.New(res.Model("crate"),
		mgl32.Vec3{430, chunk.HeightAt(430, 520) + 2, 520}, mgl32.Vec3{0, 30, 0}, 0.05)
	scene.EnvMapEntities = append(scene.EnvMapEntities, &crate)
	return &crate
}

// buildPlayer loads the player mesh through the skinned vertex layout and
// rigs it with a two-joint swaying skeleton: everything below the waist binds
// to the root, everything above to the spine joint.
func buildPlayer(res *resource.Manager, assetRoot string) (*entity.Player, error) {
	mesh, err := objfile.Load(filepath.Join(assetRoot, "models/player.obj"))
	if err != nil {
		return nil, fmt.Errorf("loading player mesh: %w", err)
	}

	const waistHeight float32 = 4
	jointIndices, jointWeights := rigidWeightsByHeight(mesh.Positions, waistHeight)
	raw := res.Loader().LoadAnimatedToVAO(mesh.Positions, mesh.TexCoords, mesh.Normals,
		jointIndices, jointWeights, mesh.Indices)

	skeleton, err := animation.NewSkeleton([]animation.Joint{
		{Name: "root", Parent: animation.NoParent, BindTransform: mgl32.Ident4()},
		{Name: "spine", Parent: 0, BindTransform: mgl32.Translate3D(0, waistHeight, 0)},
	})
	if err != nil {
		return nil, err
	}

	animator, err := animation.NewAnimator(skeleton, swayAnimation(waistHeight))
	if err != nil {
		return nil, err
	}

	// Reuse the catalog texture so ResolveAll covers it; only the vertex
	// layout differs from the static player model.
	catalog := res.Model("player")
	return &entity.Player{
		Entity: entity.Entity{
			Model: &model.TexturedModel{
				Raw:       raw,
				Texture:   catalog.Texture,
				NormalMap: model.EmptyTexture(),
			},
			Scale: 1,
		},
		Animator: animator,
	}, nil
}

// rigidWeightsByHeight assigns each vertex fully to joint 0 or joint 1 based
// on its model-space height. Four influence slots per vertex; the unused
// three carry zero weight.
func rigidWeightsByHeight(positions []float32, split float32) ([]int32, []float32) {
	vertexCount := len(positions) / 3
	indices := make([]int32, vertexCount*4)
	weights := make([]float32, vertexCount*4)
	for v := 0; v < vertexCount; v++ {
		joint := int32(0)
		if positions[v*3+1] >= split {
			joint = 1
		}
		indices[v*4] = joint
		weights[v*4] = 1
	}
	return indices, weights
}

// fireSystem emits upward-coned additive flames with jittered life and size.
func fireSystem(res *resource.Manager) *particle.System {
	s := particle.NewSystem(res.ParticleAtlas("fire"), 60, 8, 0.05, 1.6, 2.4, sceneSeed)
	s.Direction = mgl32.Vec3{0, 1, 0}
	s.DirectionCone = 0.4
	s.SpeedJitter = 0.4
	s.LifeJitter = 0.3
	s.ScaleJitter = 0.2
	return s
}

// smokeSystem emits slow alpha-blended smoke that drifts up against gravity.
func smokeSystem(res *resource.Manager) *particle.System {
	s := particle.NewSystem(res.ParticleAtlas("smoke"), 15, 2, -0.03, 5, 4, sceneSeed+1)
	s.Direction = mgl32.Vec3{0, 1, 0}
	s.DirectionCone = 0.25
	s.LifeJitter = 0.4
	s.ScaleJitter = 0.5
	s.RandomRotation = true
	return s
}

// swayAnimation rocks the spine joint side to side over two seconds.
func swayAnimation(waistHeight float32) *animation.Animation {
	spineAt := func(angleDegrees float32) animation.JointTransform {
		return animation.JointTransform{
			Position: mgl32.Vec3{0, waistHeight, 0},
			Rotation: mgl32.QuatRotate(mgl32.DegToRad(angleDegrees), mgl32.Vec3{0, 0, 1}),
		}
	}
	root := animation.JointTransform{Rotation: mgl32.QuatIdent()}

	return &animation.Animation{
		Name:   "sway",
		Length: 2,
		Keyframes: []animation.Keyframe{
			{Time: 0, Joints: []animation.JointTransform{root, spineAt(-15)}},
			{Time: 1, Joints: []animation.JointTransform{root, spineAt(15)}},
			{Time: 2, Joints: []animation.JointTransform{root, spineAt(-15)}},
		},
	}
}
