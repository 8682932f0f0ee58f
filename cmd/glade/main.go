// Package main is the entry point for the glade demo scene.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/fernwood/glade/internal/config"
	"github.com/fernwood/glade/internal/engine/camera"
	"github.com/fernwood/glade/internal/engine/framebuffer"
	"github.com/fernwood/glade/internal/engine/render"
	"github.com/fernwood/glade/internal/engine/resource"
	"github.com/fernwood/glade/internal/engine/window"
	"github.com/fernwood/glade/internal/logger"
)

const (
	terrainSeed        = 1337
	terrainVertexCount = 128

	cameraMoveSpeed = 40.0 // world units per second
	cameraTurnSpeed = 90.0 // degrees per second

	// maxFrameDt caps the simulation step so a debugger pause or window drag
	// does not launch every particle into orbit.
	maxFrameDt = 0.1
)

var skyColor = mgl32.Vec3{0.54, 0.62, 0.69}

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== glade ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	if err := run(cfg); err != nil {
		logger.Error("engine error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("engine closed normally")
}

func run(cfg *config.Config) error {
	w, err := window.New(window.Config{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Fullscreen:  cfg.Window.Fullscreen,
		VSync:       cfg.Window.VSync,
		MSAASamples: cfg.Graphics.MSAASamples,
	})
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer w.Close()

	res := resource.NewManager(cfg.Assets.Root, cfg.Assets.LoaderWorkers)
	defer res.Destroy()

	if err := res.InitModels(modelCatalog()); err != nil {
		return fmt.Errorf("loading model catalog: %w", err)
	}
	res.InitTerrain(terrainSeed, terrainVertexCount)
	res.InitSkybox()
	res.InitWater()
	res.InitParticles()
	res.InitParticleAtlas("fire", "particles/fire.png", 8, true)
	res.InitParticleAtlas("smoke", "particles/smoke.png", 8, false)

	quit, err := loadLoop(w, res)
	if err != nil {
		return fmt.Errorf("loading assets: %w", err)
	}
	if quit {
		return nil
	}
	res.ResolveAll()

	screenW, screenH := w.Size()
	fbos := framebuffer.NewMap()
	defer fbos.Destroy()
	if err := registerFramebuffers(fbos, cfg, screenW, screenH); err != nil {
		return fmt.Errorf("creating render targets: %w", err)
	}

	master, err := render.NewMaster(render.Config{
		FOVDegrees:   cfg.Graphics.FOV,
		AspectRatio:  float32(screenW) / float32(screenH),
		NearPlane:    cfg.Graphics.NearPlane,
		FarPlane:     cfg.Graphics.FarPlane,
		ScreenWidth:  screenW,
		ScreenHeight: screenH,
		SkyColor:     skyColor,
		ShowDebug:    cfg.Graphics.ShowDebugBoxes,
	}, res.Loader(), fbos, res.Water(), res.ParticleModel())
	if err != nil {
		return err
	}
	defer master.Destroy()

	scene, err := buildScene(res, cfg.Assets.Root)
	if err != nil {
		return fmt.Errorf("building scene: %w", err)
	}

	cam := camera.New(mgl32.Vec3{400, 25, 500}, 12, 0)

	logger.Info("entering frame loop")
	last := time.Now()
	for !w.PollQuit() {
		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		if dt > maxFrameDt {
			dt = maxFrameDt
		}

		moveCamera(&cam, w.KeyState(), dt)
		scene.update(dt, cam.Position)

		master.RenderFrame(scene.Scene, cam, dt)
		fbos.Get(framebuffer.CameraMultisampled).ResolveToScreen(screenW, screenH)
		w.SwapBuffers()
	}
	return nil
}

// loadLoop swaps a sky-colored frame while the decode workers run, draining
// finished textures to the GPU each pass. Returns quit=true when the window
// is closed before loading completes.
func loadLoop(w *window.Window, res *resource.Manager) (quit bool, err error) {
	ld := res.Loader()
	for ld.Loading() {
		if w.PollQuit() {
			return true, nil
		}
		if err := ld.Drain(); err != nil {
			return false, err
		}
		gl.ClearColor(skyColor.X(), skyColor.Y(), skyColor.Z(), 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)
		w.SwapBuffers()
	}
	// Results can land between the last Loading check and here.
	return false, ld.Drain()
}

// registerFramebuffers creates the four off-screen targets the render passes
// address by name. The reflection target only needs its color sampled; the
// refraction target additionally exposes depth for soft water edges.
func registerFramebuffers(fbos *framebuffer.Map, cfg *config.Config, screenW, screenH int32) error {
	waterW, waterH := int32(cfg.Graphics.WaterFBOWidth), int32(cfg.Graphics.WaterFBOHeight)

	reflection, err := framebuffer.New(waterW, waterH, framebuffer.Flags{
		ColorTexture:      true,
		DepthRenderbuffer: true,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", framebuffer.Reflection, err)
	}
	fbos.Register(framebuffer.Reflection, reflection)

	refraction, err := framebuffer.New(waterW, waterH, framebuffer.Flags{
		ColorTexture: true,
		DepthTexture: true,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", framebuffer.Refraction, err)
	}
	fbos.Register(framebuffer.Refraction, refraction)

	shadowSize := int32(cfg.Graphics.ShadowMapSize)
	shadowMap, err := framebuffer.New(shadowSize, shadowSize, framebuffer.Flags{
		DepthTexture: true,
	})
	if err != nil {
		return fmt.Errorf("%s: %w", framebuffer.ShadowMap, err)
	}
	fbos.Register(framebuffer.ShadowMap, shadowMap)

	cameraFlags := framebuffer.Flags{
		ColorRenderbuffer: true,
		DepthRenderbuffer: true,
	}
	if cfg.Graphics.MSAASamples > 0 {
		cameraFlags.Multisampled = true
		cameraFlags.Samples = int32(cfg.Graphics.MSAASamples)
	}
	cameraFBO, err := framebuffer.New(screenW, screenH, cameraFlags)
	if err != nil {
		return fmt.Errorf("%s: %w", framebuffer.CameraMultisampled, err)
	}
	fbos.Register(framebuffer.CameraMultisampled, cameraFBO)

	return nil
}

// moveCamera applies free-look keyboard input: WASD moves along the view
// direction, space/shift move vertically, arrow keys turn.
func moveCamera(cam *camera.Camera, keys []uint8, dt float32) {
	move := cameraMoveSpeed * dt
	turn := cameraTurnSpeed * dt

	forward := cam.Forward()
	right := forward.Cross(mgl32.Vec3{0, 1, 0}).Normalize()

	if keys[sdl.SCANCODE_W] != 0 {
		cam.Move(forward.Mul(move))
	}
	if keys[sdl.SCANCODE_S] != 0 {
		cam.Move(forward.Mul(-move))
	}
	if keys[sdl.SCANCODE_A] != 0 {
		cam.Move(right.Mul(-move))
	}
	if keys[sdl.SCANCODE_D] != 0 {
		cam.Move(right.Mul(move))
	}
	if keys[sdl.SCANCODE_SPACE] != 0 {
		cam.Move(mgl32.Vec3{0, move, 0})
	}
	if keys[sdl.SCANCODE_LSHIFT] != 0 {
		cam.Move(mgl32.Vec3{0, -move, 0})
	}

	if keys[sdl.SCANCODE_LEFT] != 0 {
		cam.Yaw -= turn
	}
	if keys[sdl.SCANCODE_RIGHT] != 0 {
		cam.Yaw += turn
	}
	if keys[sdl.SCANCODE_UP] != 0 {
		cam.Pitch -= turn
	}
	if keys[sdl.SCANCODE_DOWN] != 0 {
		cam.Pitch += turn
	}
	if cam.Pitch > 89 {
		cam.Pitch = 89
	}
	if cam.Pitch < -89 {
		cam.Pitch = -89
	}
}
