package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/animation"
	"github.com/fernwood/glade/internal/engine/entity"
	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/render/shaders"
	"github.com/fernwood/glade/internal/engine/shader"
)

// AnimatedRenderer draws the skinned player model, uploading the joint
// palette each frame.
type AnimatedRenderer struct {
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
	shadowMapLoc    int32
	jointLocs       [animation.MaxJoints]int32
	lights          lightUniforms
}

// NewAnimatedRenderer compiles the skinned entity shader and resolves the
// joint palette locations.
func NewAnimatedRenderer(projection mgl32.Mat4) (*AnimatedRenderer, error) {
	program, err := shader.CompileProgram(shaders.AnimatedVert, shaders.EntityFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling animated shader: %w", err)
	}
	r := &AnimatedRenderer{
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
		shadowMapLoc:    shader.MustGetUniform(program, "shadowMap"),
		lights:          resolveLightUniforms(program),
	}
	for i := range r.jointLocs {
		// The array is indexed dynamically in the shader, so every slot
		// stays active.
		r.jointLocs[i] = shader.GetUniform(program, fmt.Sprintf("jointTransforms[%d]", i))
	}
	gl.UseProgram(program)
	shader.LoadMat4(r.projectionLoc, projection)
	shader.LoadInt(r.modelTextureLoc, 0)
	shader.LoadInt(r.shadowMapLoc, shadowMapUnit)
	gl.UseProgram(0)
	return r, nil
}

// Render draws an animated player. The entity shading model is shared with
// the static entity renderer; only the vertex stage differs.
func (r *AnimatedRenderer) Render(player *entity.Player, frame *FrameState) {
	if player == nil || !player.Animated() {
		return
	}
	gl.UseProgram(r.program)
	shader.LoadMat4(r.viewLoc, frame.View)
	shader.LoadMat4(r.toShadowLoc, frame.ToShadowMapSpace)
	shader.LoadVec4(r.clipPlaneLoc, frame.ClipPlane)
	r.lights.load(frame.Lights)

	palette := player.Animator.Skeleton.Palette()
	for i, loc := range r.jointLocs {
		if loc >= 0 {
			shader.LoadMat4(loc, palette[i])
		}
	}

	m := player.Model
	gl.BindVertexArray(m.Raw.VaoID)
	gl.EnableVertexAttribArray(model.PosAttrib)
	gl.EnableVertexAttribArray(model.TexCoordAttrib)
	gl.EnableVertexAttribArray(model.NormalAttrib)
	gl.EnableVertexAttribArray(model.JointIndexAttrib)
	gl.EnableVertexAttribArray(model.JointWeightAttrib)

	shader.LoadFloat(r.atlasRowsLoc, float32(m.Texture.AtlasRows))
	shader.LoadFloat(r.shineDamperLoc, m.Texture.ShineDamper)
	shader.LoadFloat(r.reflectivityLoc, m.Texture.Reflectivity)
	shader.LoadVec2(r.atlasOffsetLoc, player.AtlasOffset())
	shader.LoadMat4(r.transformLoc, player.Transform())

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, m.Texture.ID.Handle())
	gl.ActiveTexture(gl.TEXTURE0 + shadowMapUnit)
	gl.BindTexture(gl.TEXTURE_2D, frame.ShadowMapTexture)

	gl.DrawElementsWithOffset(gl.TRIANGLES, m.Raw.VertexCount, gl.UNSIGNED_INT, 0)

	gl.DisableVertexAttribArray(model.PosAttrib)
	gl.DisableVertexAttribArray(model.TexCoordAttrib)
	gl.DisableVertexAttribArray(model.NormalAttrib)
	gl.DisableVertexAttribArray(model.JointIndexAttrib)
	gl.DisableVertexAttribArray(model.JointWeightAttrib)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Destroy releases the shader program.
func (r *AnimatedRenderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}
