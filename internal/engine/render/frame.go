package render

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/entity"
)

// FrameState carries the per-pass values shared by the lit renderers. The
// master renderer rebuilds it for each pass: the reflection pass, for
// example, uses a mirrored view matrix and a different clip plane than the
// main pass.
type FrameState struct {
	View             mgl32.Mat4
	CameraPosition   mgl32.Vec3
	ClipPlane        mgl32.Vec4
	ToShadowMapSpace mgl32.Mat4
	Lights           [entity.MaxLights]entity.Light
	ShadowMapTexture uint32
}
