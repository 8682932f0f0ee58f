package shadow

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/camera"
	"github.com/fernwood/glade/internal/engine/entity"
	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/render/shaders"
	"github.com/fernwood/glade/internal/engine/shader"
	"github.com/fernwood/glade/internal/engine/terrain"
)

// mode tracks the renderer's pass state so out-of-order calls fail loudly.
type mode int

const (
	idle mode = iota
	rendering
)

// Renderer draws the depth-only shadow pass. Usage per frame: StartRender,
// any number of RenderEntities/RenderTerrain calls, StopRender.
type Renderer struct {
	program uint32
	// mvpLoc is resolved once at construction; the shadow shader has a
	// single uniform.
	mvpLoc int32

	Box          *Box
	worldToLight mgl32.Mat4
	vpMatrix     mgl32.Mat4
	bias         mgl32.Mat4
	state        mode
}

// NewRenderer compiles the depth shader and prepares the shadow box for the
// given camera parameters.
func NewRenderer(fovDegrees, aspectRatio, nearPlane float32) (*Renderer, error) {
	program, err := shader.CompileProgram(shaders.ShadowVert, shaders.ShadowFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling shadow shader: %w", err)
	}
	return &Renderer{
		program:      program,
		mvpLoc:       shader.MustGetUniform(program, "mvpMatrix"),
		Box:          NewBox(fovDegrees, aspectRatio, nearPlane),
		worldToLight: mgl32.Ident4(),
		vpMatrix:     mgl32.Ident4(),
		bias:         biasMatrix(),
	}, nil
}

// StartRender recomputes the light matrix, refits the box and begins the
// depth pass. The caller binds the shadow framebuffer first.
func (r *Renderer) StartRender(cam camera.Camera, sun entity.Light) {
	if r.state != idle {
		panic("shadow renderer: StartRender while already rendering")
	}
	r.state = rendering

	// The sun position doubles as its direction; the look-at is anchored at
	// the previous frame's box center.
	r.worldToLight = LightViewMatrix(sun.Position, r.Box.WorldSpaceCenter())
	r.Box.Update(cam, r.worldToLight)
	r.vpMatrix = r.Box.OrthoProjection().Mul4(r.worldToLight)

	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(r.program)
}

// RenderEntities draws one model group into the shadow map. Only positions
// are read; textures and lighting do not matter for depth.
func (r *Renderer) RenderEntities(m *model.TexturedModel, entities []*entity.Entity) {
	r.mustBeRendering("RenderEntities")
	gl.BindVertexArray(m.Raw.VaoID)
	gl.EnableVertexAttribArray(model.PosAttrib)
	for _, e := range entities {
		shader.LoadMat4(r.mvpLoc, r.vpMatrix.Mul4(e.Transform()))
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.Raw.VertexCount, gl.UNSIGNED_INT, 0)
	}
	gl.DisableVertexAttribArray(model.PosAttrib)
	gl.BindVertexArray(0)
}

// RenderTerrain draws terrain chunks into the shadow map.
func (r *Renderer) RenderTerrain(terrains []*terrain.Terrain) {
	r.mustBeRendering("RenderTerrain")
	for _, t := range terrains {
		gl.BindVertexArray(t.Model.Raw.VaoID)
		gl.EnableVertexAttribArray(model.PosAttrib)
		transform := mgl32.Translate3D(t.X, 0, t.Z)
		shader.LoadMat4(r.mvpLoc, r.vpMatrix.Mul4(transform))
		gl.DrawElementsWithOffset(gl.TRIANGLES, t.Model.Raw.VertexCount, gl.UNSIGNED_INT, 0)
		gl.DisableVertexAttribArray(model.PosAttrib)
	}
	gl.BindVertexArray(0)
}

// StopRender ends the depth pass.
func (r *Renderer) StopRender() {
	r.mustBeRendering("StopRender")
	gl.UseProgram(0)
	r.state = idle
}

// BoxCornersWorldSpace exposes the fitted shadow volume for debug
// rendering, using the light matrix from the last StartRender.
func (r *Renderer) BoxCornersWorldSpace() [8]mgl32.Vec3 {
	return r.Box.WorldSpaceCorners(r.worldToLight)
}

// ToShadowMapSpace returns the matrix that takes world-space positions to
// shadow-map texture coordinates: bias × ortho × light view.
func (r *Renderer) ToShadowMapSpace() mgl32.Mat4 {
	return r.bias.Mul4(r.vpMatrix)
}

// Destroy releases the shader program.
func (r *Renderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}

func (r *Renderer) mustBeRendering(op string) {
	if r.state != rendering {
		panic(fmt.Sprintf("shadow renderer: %s outside StartRender/StopRender", op))
	}
}

// biasMatrix remaps clip-space [-1,1] to texture-space [0,1] so the shadow
// matrix can be sampled directly.
func biasMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(0.5, 0.5, 0.5).Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))
}
