package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/entity"
	"github.com/fernwood/glade/internal/engine/framebuffer"
	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/render/shaders"
	"github.com/fernwood/glade/internal/engine/shader"
)

// waveSpeed is dudv scroll distance per second.
const waveSpeed = 0.03

// WaterRenderer composites the reflection and refraction passes onto the
// water quads with dudv distortion and a Fresnel mix.
type WaterRenderer struct {
	program uint32
	quad    model.WaterModel

	transformLoc  int32
	viewLoc       int32
	projectionLoc int32
	cameraPosLoc  int32
	lightPosLoc   int32
	lightColorLoc int32
	moveFactorLoc int32
	nearPlaneLoc  int32
	farPlaneLoc   int32
	reflectionLoc int32
	refractionLoc int32
	dudvLoc       int32
	normalMapLoc  int32
	depthMapLoc   int32

	moveFactor float32
}

// NewWaterRenderer compiles the water shader for the given shared quad
// model.
func NewWaterRenderer(projection mgl32.Mat4, quad model.WaterModel, nearPlane, farPlane float32) (*WaterRenderer, error) {
	program, err := shader.CompileProgram(shaders.WaterVert, shaders.WaterFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling water shader: %w", err)
	}
	r := &WaterRenderer{
		program:       program,
		quad:          quad,
		transformLoc:  shader.MustGetUniform(program, "transform"),
		viewLoc:       shader.MustGetUniform(program, "view"),
		projectionLoc: shader.MustGetUniform(program, "projection"),
		cameraPosLoc:  shader.MustGetUniform(program, "cameraPosition"),
		lightPosLoc:   shader.MustGetUniform(program, "lightPosition"),
		lightColorLoc: shader.MustGetUniform(program, "lightColor"),
		moveFactorLoc: shader.MustGetUniform(program, "moveFactor"),
		nearPlaneLoc:  shader.MustGetUniform(program, "nearPlane"),
		farPlaneLoc:   shader.MustGetUniform(program, "farPlane"),
		reflectionLoc: shader.MustGetUniform(program, "reflectionTexture"),
		refractionLoc: shader.MustGetUniform(program, "refractionTexture"),
		dudvLoc:       shader.MustGetUniform(program, "dudvMap"),
		normalMapLoc:  shader.MustGetUniform(program, "normalMap"),
		depthMapLoc:   shader.MustGetUniform(program, "depthMap"),
	}
	gl.UseProgram(program)
	shader.LoadMat4(r.projectionLoc, projection)
	shader.LoadInt(r.reflectionLoc, 0)
	shader.LoadInt(r.refractionLoc, 1)
	shader.LoadInt(r.dudvLoc, 2)
	shader.LoadInt(r.normalMapLoc, 3)
	shader.LoadInt(r.depthMapLoc, 4)
	shader.LoadFloat(r.nearPlaneLoc, nearPlane)
	shader.LoadFloat(r.farPlaneLoc, farPlane)
	gl.UseProgram(0)
	return r, nil
}

// Render draws the water tiles, sampling the reflection and refraction
// targets rendered earlier this frame.
func (r *WaterRenderer) Render(tiles []entity.WaterTile, frame *FrameState, fbos *framebuffer.Map, sun entity.Light, dt float32) {
	if len(tiles) == 0 {
		return
	}
	r.moveFactor += waveSpeed * dt
	for r.moveFactor >= 1 {
		r.moveFactor--
	}

	gl.UseProgram(r.program)
	shader.LoadMat4(r.viewLoc, frame.View)
	shader.LoadVec3(r.cameraPosLoc, frame.CameraPosition)
	shader.LoadVec3(r.lightPosLoc, sun.Position)
	shader.LoadVec3(r.lightColorLoc, sun.Color)
	shader.LoadFloat(r.moveFactorLoc, r.moveFactor)

	reflection := fbos.Get(framebuffer.Reflection)
	refraction := fbos.Get(framebuffer.Refraction)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, reflection.ColorTexture)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, refraction.ColorTexture)
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, r.quad.DuDvMap.Handle())
	gl.ActiveTexture(gl.TEXTURE3)
	gl.BindTexture(gl.TEXTURE_2D, r.quad.NormalMap.Handle())
	gl.ActiveTexture(gl.TEXTURE4)
	gl.BindTexture(gl.TEXTURE_2D, refraction.DepthTexture)

	// Soft edges blend against already-rendered geometry.
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	gl.BindVertexArray(r.quad.Raw.VaoID)
	gl.EnableVertexAttribArray(model.PosAttrib)
	for _, tile := range tiles {
		transform := mgl32.Translate3D(tile.X, tile.Height, tile.Z).
			Mul4(mgl32.Scale3D(entity.WaterTileSize, 1, entity.WaterTileSize))
		shader.LoadMat4(r.transformLoc, transform)
		gl.DrawArrays(gl.TRIANGLES, 0, r.quad.Raw.VertexCount)
	}
	gl.DisableVertexAttribArray(model.PosAttrib)
	gl.BindVertexArray(0)

	gl.Disable(gl.BLEND)
	gl.UseProgram(0)
}

// Destroy releases the shader program.
func (r *WaterRenderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}
