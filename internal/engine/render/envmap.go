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

// EnvMapRenderer draws entities that reflect the sky cubemap. These render
// after the main pass, outside the batched clip-plane flow; there are few
// of them and they skip shadows and fog on purpose.
type EnvMapRenderer struct {
	program uint32

	transformLoc    int32
	viewLoc         int32
	projectionLoc   int32
	cameraPosLoc    int32
	reflectivityLoc int32
	modelTextureLoc int32
	envMapLoc       int32
}

// NewEnvMapRenderer compiles the environment-mapped entity shader.
func NewEnvMapRenderer(projection mgl32.Mat4) (*EnvMapRenderer, error) {
	program, err := shader.CompileProgram(shaders.EnvMapVert, shaders.EnvMapFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling envmap shader: %w", err)
	}
	r := &EnvMapRenderer{
		program:         program,
		transformLoc:    shader.MustGetUniform(program, "transform"),
		viewLoc:         shader.MustGetUniform(program, "view"),
		projectionLoc:   shader.MustGetUniform(program, "projection"),
		cameraPosLoc:    shader.MustGetUniform(program, "cameraPosition"),
		reflectivityLoc: shader.MustGetUniform(program, "reflectivity"),
		modelTextureLoc: shader.MustGetUniform(program, "modelTexture"),
		envMapLoc:       shader.MustGetUniform(program, "environmentMap"),
	}
	gl.UseProgram(program)
	shader.LoadMat4(r.projectionLoc, projection)
	shader.LoadInt(r.modelTextureLoc, 0)
	shader.LoadInt(r.envMapLoc, 1)
	gl.UseProgram(0)
	return r, nil
}

// Render draws the env-mapped entities, reflecting the given cubemap.
func (r *EnvMapRenderer) Render(entities []*entity.Entity, frame *FrameState, envMap uint32) {
	if len(entities) == 0 {
		return
	}
	gl.UseProgram(r.program)
	shader.LoadMat4(r.viewLoc, frame.View)
	shader.LoadVec3(r.cameraPosLoc, frame.CameraPosition)

	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, envMap)

	for _, e := range entities {
		m := e.Model
		gl.BindVertexArray(m.Raw.VaoID)
		gl.EnableVertexAttribArray(model.PosAttrib)
		gl.EnableVertexAttribArray(model.TexCoordAttrib)
		gl.EnableVertexAttribArray(model.NormalAttrib)

		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, m.Texture.ID.Handle())
		shader.LoadFloat(r.reflectivityLoc, m.Texture.Reflectivity)
		shader.LoadMat4(r.transformLoc, e.Transform())

		gl.DrawElementsWithOffset(gl.TRIANGLES, m.Raw.VertexCount, gl.UNSIGNED_INT, 0)

		gl.DisableVertexAttribArray(model.PosAttrib)
		gl.DisableVertexAttribArray(model.TexCoordAttrib)
		gl.DisableVertexAttribArray(model.NormalAttrib)
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Destroy releases the shader program.
func (r *EnvMapRenderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}
