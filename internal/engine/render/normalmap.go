package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/render/shaders"
	"github.com/fernwood/glade/internal/engine/shader"
)

// NormalMapRenderer draws batched entities whose models carry tangent data
// and a normal map.
type NormalMapRenderer struct {
	program uint32

	transformLoc    int32
	viewLoc         int32
	projectionLoc   int32
	toShadowLoc     int32
	clipPlaneLoc    int32
	atlasRowsLoc    int32
	atlasOffsetLoc  int32
	shineDamperLoc  int32
	reflectivityLoc int32
	modelTextureLoc int32
	normalMapLoc    int32
	shadowMapLoc    int32
	lights          lightUniforms
}

// NewNormalMapRenderer compiles the normal-mapped entity shader.
func NewNormalMapRenderer(projection mgl32.Mat4) (*NormalMapRenderer, error) {
	program, err := shader.CompileProgram(shaders.NormalMapVert, shaders.NormalMapFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling normal-map shader: %w", err)
	}
	r := &NormalMapRenderer{
		program:         program,
		transformLoc:    shader.MustGetUniform(program, "transform"),
		viewLoc:         shader.MustGetUniform(program, "view"),
		projectionLoc:   shader.MustGetUniform(program, "projection"),
		toShadowLoc:     shader.MustGetUniform(program, "toShadowMapSpace"),
		clipPlaneLoc:    shader.MustGetUniform(program, "clipPlane"),
		atlasRowsLoc:    shader.MustGetUniform(program, "atlasRows"),
		atlasOffsetLoc:  shader.MustGetUniform(program, "atlasOffset"),
		shineDamperLoc:  shader.MustGetUniform(program, "shineDamper"),
		reflectivityLoc: shader.MustGetUniform(program, "reflectivity"),
		modelTextureLoc: shader.MustGetUniform(program, "modelTexture"),
		normalMapLoc:    shader.MustGetUniform(program, "normalMap"),
		shadowMapLoc:    shader.MustGetUniform(program, "shadowMap"),
		lights:          resolveLightUniforms(program),
	}
	gl.UseProgram(program)
	shader.LoadMat4(r.projectionLoc, projection)
	shader.LoadInt(r.modelTextureLoc, 0)
	shader.LoadInt(r.normalMapLoc, 1)
	shader.LoadInt(r.shadowMapLoc, shadowMapUnit)
	gl.UseProgram(0)
	return r, nil
}

// Render draws the batches. Models without a normal map are a scene setup
// bug; Handle() panics on their empty texture id.
func (r *NormalMapRenderer) Render(batches []Batch, frame *FrameState) {
	if len(batches) == 0 {
		return
	}
	gl.UseProgram(r.program)
	shader.LoadMat4(r.viewLoc, frame.View)
	shader.LoadMat4(r.toShadowLoc, frame.ToShadowMapSpace)
	shader.LoadVec4(r.clipPlaneLoc, frame.ClipPlane)
	r.lights.load(frame.Lights)

	gl.ActiveTexture(gl.TEXTURE0 + shadowMapUnit)
	gl.BindTexture(gl.TEXTURE_2D, frame.ShadowMapTexture)

	for _, batch := range batches {
		r.prepareModel(batch.Model)
		for _, e := range batch.Entities {
			shader.LoadMat4(r.transformLoc, e.Transform())
			shader.LoadVec2(r.atlasOffsetLoc, e.AtlasOffset())
			gl.DrawElementsWithOffset(gl.TRIANGLES, batch.Model.Raw.VertexCount, gl.UNSIGNED_INT, 0)
		}
		r.unbindModel()
	}
	gl.UseProgram(0)
}

func (r *NormalMapRenderer) prepareModel(m *model.TexturedModel) {
	gl.BindVertexArray(m.Raw.VaoID)
	gl.EnableVertexAttribArray(model.PosAttrib)
	gl.EnableVertexAttribArray(model.TexCoordAttrib)
	gl.EnableVertexAttribArray(model.NormalAttrib)
	gl.EnableVertexAttribArray(model.TangentAttrib)

	shader.LoadFloat(r.atlasRowsLoc, float32(m.Texture.AtlasRows))
	shader.LoadFloat(r.shineDamperLoc, m.Texture.ShineDamper)
	shader.LoadFloat(r.reflectivityLoc, m.Texture.Reflectivity)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.Texture.ID.Handle())
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, m.NormalMap.Handle())
}

func (r *NormalMapRenderer) unbindModel() {
	gl.DisableVertexAttribArray(model.PosAttrib)
	gl.DisableVertexAttribArray(model.TexCoordAttrib)
	gl.DisableVertexAttribArray(model.NormalAttrib)
	gl.DisableVertexAttribArray(model.TangentAttrib)
	gl.BindVertexArray(0)
}

// Destroy releases the shader program.
func (r *NormalMapRenderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}
