package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/render/shaders"
	"github.com/fernwood/glade/internal/engine/shader"
	"github.com/fernwood/glade/internal/engine/terrain"
)

// Terrain material is uniform across chunks.
const (
	terrainShineDamper  = 1.0
	terrainReflectivity = 0.0
)

// TerrainRenderer draws the blend-mapped ground chunks.
type TerrainRenderer struct {
	program uint32

	transformLoc    int32
	viewLoc         int32
	projectionLoc   int32
	toShadowLoc     int32
	clipPlaneLoc    int32
	shineDamperLoc  int32
	reflectivityLoc int32
	backgroundLoc   int32
	rTextureLoc     int32
	gTextureLoc     int32
	bTextureLoc     int32
	blendMapLoc     int32
	shadowMapLoc    int32
	lights          lightUniforms
}

// NewTerrainRenderer compiles the terrain shader and pins its five
// material samplers to fixed texture units.
func NewTerrainRenderer(projection mgl32.Mat4) (*TerrainRenderer, error) {
	program, err := shader.CompileProgram(shaders.TerrainVert, shaders.TerrainFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling terrain shader: %w", err)
	}
	r := &TerrainRenderer{
		program:         program,
		transformLoc:    shader.MustGetUniform(program, "transform"),
		viewLoc:         shader.MustGetUniform(program, "view"),
		projectionLoc:   shader.MustGetUniform(program, "projection"),
		toShadowLoc:     shader.MustGetUniform(program, "toShadowMapSpace"),
		clipPlaneLoc:    shader.MustGetUniform(program, "clipPlane"),
		shineDamperLoc:  shader.MustGetUniform(program, "shineDamper"),
		reflectivityLoc: shader.MustGetUniform(program, "reflectivity"),
		backgroundLoc:   shader.MustGetUniform(program, "backgroundTexture"),
		rTextureLoc:     shader.MustGetUniform(program, "rTexture"),
		gTextureLoc:     shader.MustGetUniform(program, "gTexture"),
		bTextureLoc:     shader.MustGetUniform(program, "bTexture"),
		blendMapLoc:     shader.MustGetUniform(program, "blendMap"),
		shadowMapLoc:    shader.MustGetUniform(program, "shadowMap"),
		lights:          resolveLightUniforms(program),
	}
	gl.UseProgram(program)
	shader.LoadMat4(r.projectionLoc, projection)
	shader.LoadInt(r.backgroundLoc, 0)
	shader.LoadInt(r.rTextureLoc, 1)
	shader.LoadInt(r.gTextureLoc, 2)
	shader.LoadInt(r.bTextureLoc, 3)
	shader.LoadInt(r.blendMapLoc, 4)
	shader.LoadInt(r.shadowMapLoc, shadowMapUnit)
	shader.LoadFloat(r.shineDamperLoc, terrainShineDamper)
	shader.LoadFloat(r.reflectivityLoc, terrainReflectivity)
	gl.UseProgram(0)
	return r, nil
}

// Render draws the terrain chunks with the given frame state.
func (r *TerrainRenderer) Render(terrains []*terrain.Terrain, frame *FrameState) {
	if len(terrains) == 0 {
		return
	}
	gl.UseProgram(r.program)
	shader.LoadMat4(r.viewLoc, frame.View)
	shader.LoadMat4(r.toShadowLoc, frame.ToShadowMapSpace)
	shader.LoadVec4(r.clipPlaneLoc, frame.ClipPlane)
	r.lights.load(frame.Lights)

	gl.ActiveTexture(gl.TEXTURE0 + shadowMapUnit)
	gl.BindTexture(gl.TEXTURE_2D, frame.ShadowMapTexture)

	for _, t := range terrains {
		r.bindTextures(t)
		gl.BindVertexArray(t.Model.Raw.VaoID)
		gl.EnableVertexAttribArray(model.PosAttrib)
		gl.EnableVertexAttribArray(model.TexCoordAttrib)
		gl.EnableVertexAttribArray(model.NormalAttrib)

		shader.LoadMat4(r.transformLoc, mgl32.Translate3D(t.X, 0, t.Z))
		gl.DrawElementsWithOffset(gl.TRIANGLES, t.Model.Raw.VertexCount, gl.UNSIGNED_INT, 0)

		gl.DisableVertexAttribArray(model.PosAttrib)
		gl.DisableVertexAttribArray(model.TexCoordAttrib)
		gl.DisableVertexAttribArray(model.NormalAttrib)
	}
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

func (r *TerrainRenderer) bindTextures(t *terrain.Terrain) {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, t.Textures.Background.Handle())
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, t.Textures.R.Handle())
	gl.ActiveTexture(gl.TEXTURE2)
	gl.BindTexture(gl.TEXTURE_2D, t.Textures.G.Handle())
	gl.ActiveTexture(gl.TEXTURE3)
	gl.BindTexture(gl.TEXTURE_2D, t.Textures.B.Handle())
	gl.ActiveTexture(gl.TEXTURE4)
	gl.BindTexture(gl.TEXTURE_2D, t.BlendMap.Handle())
}

// Destroy releases the shader program.
func (r *TerrainRenderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}
