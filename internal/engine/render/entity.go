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

// shadowMapUnit is the texture unit every lit shader samples the shadow
// map from; units 0..4 belong to material textures.
const shadowMapUnit = 5

// lightUniforms is the per-slot uniform location triple shared by every
// lit renderer.
type lightUniforms struct {
	position [entity.MaxLights]int32
	color    [entity.MaxLights]int32
	atten    [entity.MaxLights]int32
}

func resolveLightUniforms(program uint32) lightUniforms {
	var lu lightUniforms
	for i := 0; i < entity.MaxLights; i++ {
		lu.position[i] = shader.MustGetUniform(program, fmt.Sprintf("lightPosition[%d]", i))
		lu.color[i] = shader.MustGetUniform(program, fmt.Sprintf("lightColor[%d]", i))
		lu.atten[i] = shader.MustGetUniform(program, fmt.Sprintf("attenuation[%d]", i))
	}
	return lu
}

// load uploads the padded light array into the resolved slots.
func (lu *lightUniforms) load(lights [entity.MaxLights]entity.Light) {
	for i, l := range lights {
		shader.LoadVec3(lu.position[i], l.Position)
		shader.LoadVec3(lu.color[i], l.Color)
		shader.LoadVec3(lu.atten[i], l.Attenuation)
	}
}

// EntityRenderer draws batched opaque entities.
type EntityRenderer struct {
	program uint32

	// Uniform locations, resolved once at construction.
	transformLoc    int32
	viewLoc         int32
	projectionLoc   int32
	toShadowLoc     int32
	clipPlaneLoc    int32
	fakeLightingLoc int32
	atlasRowsLoc    int32
	atlasOffsetLoc  int32
	shineDamperLoc  int32
	reflectivityLoc int32
	modelTextureLoc int32
	shadowMapLoc    int32
	lights          lightUniforms
}

// NewEntityRenderer compiles the entity shader and resolves its uniforms.
func NewEntityRenderer(projection mgl32.Mat4) (*EntityRenderer, error) {
	program, err := shader.CompileProgram(shaders.EntityVert, shaders.EntityFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling entity shader: %w", err)
	}
	r := &EntityRenderer{
		program:         program,
		transformLoc:    shader.MustGetUniform(program, "transform"),
		viewLoc:         shader.MustGetUniform(program, "view"),
		projectionLoc:   shader.MustGetUniform(program, "projection"),
		toShadowLoc:     shader.MustGetUniform(program, "toShadowMapSpace"),
		clipPlaneLoc:    shader.MustGetUniform(program, "clipPlane"),
		fakeLightingLoc: shader.MustGetUniform(program, "useFakeLighting"),
		atlasRowsLoc:    shader.MustGetUniform(program, "atlasRows"),
		atlasOffsetLoc:  shader.MustGetUniform(program, "atlasOffset"),
		shineDamperLoc:  shader.MustGetUniform(program, "shineDamper"),
		reflectivityLoc: shader.MustGetUniform(program, "reflectivity"),
		modelTextureLoc: shader.MustGetUniform(program, "modelTexture"),
		shadowMapLoc:    shader.MustGetUniform(program, "shadowMap"),
		lights:          resolveLightUniforms(program),
	}
	gl.UseProgram(program)
	shader.LoadMat4(r.projectionLoc, projection)
	shader.LoadInt(r.modelTextureLoc, 0)
	shader.LoadInt(r.shadowMapLoc, shadowMapUnit)
	gl.UseProgram(0)
	return r, nil
}

// Render draws the batches with the given frame state.
func (r *EntityRenderer) Render(batches []Batch, frame *FrameState) {
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

func (r *EntityRenderer) prepareModel(m *model.TexturedModel) {
	gl.BindVertexArray(m.Raw.VaoID)
	gl.EnableVertexAttribArray(model.PosAttrib)
	gl.EnableVertexAttribArray(model.TexCoordAttrib)
	gl.EnableVertexAttribArray(model.NormalAttrib)

	if m.Texture.HasTransparency {
		gl.Disable(gl.CULL_FACE)
	}
	shader.LoadBool(r.fakeLightingLoc, m.Texture.UsesFakeLight)
	shader.LoadFloat(r.atlasRowsLoc, float32(m.Texture.AtlasRows))
	shader.LoadFloat(r.shineDamperLoc, m.Texture.ShineDamper)
	shader.LoadFloat(r.reflectivityLoc, m.Texture.Reflectivity)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.Texture.ID.Handle())
}

func (r *EntityRenderer) unbindModel() {
	gl.Enable(gl.CULL_FACE)
	gl.DisableVertexAttribArray(model.PosAttrib)
	gl.DisableVertexAttribArray(model.TexCoordAttrib)
	gl.DisableVertexAttribArray(model.NormalAttrib)
	gl.BindVertexArray(0)
}

// Destroy releases the shader program.
func (r *EntityRenderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}
