package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/loader"
	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/render/shaders"
	"github.com/fernwood/glade/internal/engine/shader"
)

// debugCuboidFloats is 8 corners × 3 components.
const debugCuboidFloats = 24

// CuboidEdgeIndices is the line list connecting the 8 corners of a box:
// min/max-ordered as produced by corner enumeration (x fastest, then y,
// then z).
var CuboidEdgeIndices = []uint32{
	0, 1, 1, 3, 3, 2, 2, 0, // bottom face
	4, 5, 5, 7, 7, 6, 6, 4, // top face
	0, 4, 1, 5, 2, 6, 3, 7, // verticals
}

// DebugRenderer streams wireframe cuboids, used to visualize the fitted
// shadow volume.
type DebugRenderer struct {
	program uint32
	ld      *loader.Loader
	cuboid  model.DynamicModel

	viewLoc       int32
	projectionLoc int32
	colorLoc      int32
}

// NewDebugRenderer compiles the line shader and allocates the streamed
// cuboid model.
func NewDebugRenderer(projection mgl32.Mat4, ld *loader.Loader) (*DebugRenderer, error) {
	program, err := shader.CompileProgram(shaders.DebugVert, shaders.DebugFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling debug shader: %w", err)
	}
	r := &DebugRenderer{
		program:       program,
		ld:            ld,
		cuboid:        ld.LoadDynamicIndexedToVAO(8, CuboidEdgeIndices, 3),
		viewLoc:       shader.MustGetUniform(program, "view"),
		projectionLoc: shader.MustGetUniform(program, "projection"),
		colorLoc:      shader.MustGetUniform(program, "lineColor"),
	}
	gl.UseProgram(program)
	shader.LoadMat4(r.projectionLoc, projection)
	gl.UseProgram(0)
	return r, nil
}

// RenderCuboid streams the 8 world-space corners and draws the edges.
func (r *DebugRenderer) RenderCuboid(corners [8]mgl32.Vec3, color mgl32.Vec3, view mgl32.Mat4) {
	data := make([]float32, 0, debugCuboidFloats)
	for _, c := range corners {
		data = append(data, c.X(), c.Y(), c.Z())
	}
	r.ld.UpdateStreamVBO(r.cuboid.StreamVBO, data, debugCuboidFloats)

	gl.UseProgram(r.program)
	shader.LoadMat4(r.viewLoc, view)
	shader.LoadVec3(r.colorLoc, color)

	gl.BindVertexArray(r.cuboid.Raw.VaoID)
	gl.EnableVertexAttribArray(model.PosAttrib)
	gl.DrawElementsWithOffset(gl.LINES, r.cuboid.Raw.VertexCount, gl.UNSIGNED_INT, 0)
	gl.DisableVertexAttribArray(model.PosAttrib)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// Destroy releases the shader program.
func (r *DebugRenderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}
