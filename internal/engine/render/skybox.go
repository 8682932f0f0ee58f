package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/entity"
	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/render/shaders"
	"github.com/fernwood/glade/internal/engine/shader"
)

// SkyboxRenderer draws the rotating day/night sky cube.
type SkyboxRenderer struct {
	program uint32

	viewLoc       int32
	projectionLoc int32
	blendLoc      int32
	dayMapLoc     int32
	nightMapLoc   int32
}

// NewSkyboxRenderer compiles the skybox shader.
func NewSkyboxRenderer(projection mgl32.Mat4) (*SkyboxRenderer, error) {
	program, err := shader.CompileProgram(shaders.SkyboxVert, shaders.SkyboxFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling skybox shader: %w", err)
	}
	r := &SkyboxRenderer{
		program:       program,
		viewLoc:       shader.MustGetUniform(program, "view"),
		projectionLoc: shader.MustGetUniform(program, "projection"),
		blendLoc:      shader.MustGetUniform(program, "blendFactor"),
		dayMapLoc:     shader.MustGetUniform(program, "dayMap"),
		nightMapLoc:   shader.MustGetUniform(program, "nightMap"),
	}
	gl.UseProgram(program)
	shader.LoadMat4(r.projectionLoc, projection)
	shader.LoadInt(r.dayMapLoc, 0)
	shader.LoadInt(r.nightMapLoc, 1)
	gl.UseProgram(0)
	return r, nil
}

// Render draws the sky. The view matrix loses its translation so the cube
// follows the camera, and gains the skybox's own slow rotation.
func (r *SkyboxRenderer) Render(sky *entity.Skybox, view mgl32.Mat4) {
	if sky == nil {
		return
	}
	gl.UseProgram(r.program)

	skyView := view
	skyView.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	skyView = skyView.Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(sky.Rotation)))
	shader.LoadMat4(r.viewLoc, skyView)
	shader.LoadFloat(r.blendLoc, sky.BlendFactor())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sky.Model.DayTexture.Handle())
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sky.Model.NightTexture.Handle())

	gl.DepthFunc(gl.LEQUAL)
	gl.BindVertexArray(sky.Model.Raw.VaoID)
	gl.EnableVertexAttribArray(model.PosAttrib)
	gl.DrawArrays(gl.TRIANGLES, 0, sky.Model.Raw.VertexCount)
	gl.DisableVertexAttribArray(model.PosAttrib)
	gl.BindVertexArray(0)
	gl.DepthFunc(gl.LESS)
	gl.UseProgram(0)
}

// Destroy releases the shader program.
func (r *SkyboxRenderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}
