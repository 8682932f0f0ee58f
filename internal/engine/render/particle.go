package render

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/loader"
	"github.com/fernwood/glade/internal/engine/model"
	"github.com/fernwood/glade/internal/engine/particle"
	"github.com/fernwood/glade/internal/engine/render/shaders"
	"github.com/fernwood/glade/internal/engine/shader"
)

// ParticleRenderer draws all particles of a texture group in one instanced
// call, streaming per-instance data through the particle model's VBO.
type ParticleRenderer struct {
	program uint32
	ld      *loader.Loader
	pm      model.ParticleModel

	projectionLoc int32
	atlasRowsLoc  int32
	textureLoc    int32

	// instanceData is reused across frames to avoid per-frame allocation.
	instanceData []float32
}

// NewParticleRenderer compiles the instanced particle shader.
func NewParticleRenderer(projection mgl32.Mat4, ld *loader.Loader, pm model.ParticleModel) (*ParticleRenderer, error) {
	program, err := shader.CompileProgram(shaders.ParticleVert, shaders.ParticleFrag)
	if err != nil {
		return nil, fmt.Errorf("compiling particle shader: %w", err)
	}
	r := &ParticleRenderer{
		program:       program,
		ld:            ld,
		pm:            pm,
		projectionLoc: shader.MustGetUniform(program, "projection"),
		atlasRowsLoc:  shader.MustGetUniform(program, "atlasRows"),
		textureLoc:    shader.MustGetUniform(program, "particleTexture"),
		instanceData:  make([]float32, 0, model.ParticleMaxInstances*model.ParticleInstanceFloats),
	}
	gl.UseProgram(program)
	shader.LoadMat4(r.projectionLoc, projection)
	shader.LoadInt(r.textureLoc, 0)
	gl.UseProgram(0)
	return r, nil
}

// Render draws the particle pool. Particles test against depth but do not
// write it, so they never occlude each other; blending is additive for
// fire-style textures, standard alpha otherwise.
func (r *ParticleRenderer) Render(pool *particle.Pool, view mgl32.Mat4) {
	if pool == nil || pool.Len() == 0 {
		return
	}
	gl.UseProgram(r.program)
	gl.Enable(gl.BLEND)
	gl.DepthMask(false)

	gl.BindVertexArray(r.pm.Raw.VaoID)
	for a := uint32(0); a <= model.ParticleBlend; a++ {
		gl.EnableVertexAttribArray(a)
	}

	pool.Groups(func(tex model.ParticleTexture, particles []particle.Particle) {
		if tex.Additive {
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
		} else {
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		}
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, tex.ID.Handle())
		shader.LoadFloat(r.atlasRowsLoc, float32(tex.AtlasRows))

		count := len(particles)
		if count > model.ParticleMaxInstances {
			count = model.ParticleMaxInstances
		}
		r.fillInstanceData(particles[:count], view)
		r.ld.UpdateStreamVBO(r.pm.StreamVBO, r.instanceData,
			model.ParticleMaxInstances*model.ParticleInstanceFloats)

		gl.DrawArraysInstanced(gl.TRIANGLES, 0, r.pm.Raw.VertexCount, int32(count))
	})

	for a := uint32(0); a <= model.ParticleBlend; a++ {
		gl.DisableVertexAttribArray(a)
	}
	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Disable(gl.BLEND)
	gl.UseProgram(0)
}

// fillInstanceData packs the per-instance stream: the four columns of the
// billboarded modelview matrix, the two atlas offsets and the blend factor.
func (r *ParticleRenderer) fillInstanceData(particles []particle.Particle, view mgl32.Mat4) {
	r.instanceData = r.instanceData[:0]
	for i := range particles {
		mv := billboardModelview(&particles[i], view)
		for col := 0; col < 4; col++ {
			c := mv.Col(col)
			r.instanceData = append(r.instanceData, c[0], c[1], c[2], c[3])
		}
		p := &particles[i]
		r.instanceData = append(r.instanceData,
			p.OffsetCurrent.X(), p.OffsetCurrent.Y(),
			p.OffsetNext.X(), p.OffsetNext.Y(),
			p.Blend,
		)
	}
}

// billboardModelview builds a modelview whose rotation part is the
// transpose of the view rotation, cancelling it so the quad always faces
// the camera.
func billboardModelview(p *particle.Particle, view mgl32.Mat4) mgl32.Mat4 {
	m := mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			m.Set(row, col, view.At(col, row))
		}
	}
	mv := view.Mul4(m)
	mv = mv.Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(p.Rotation)))
	return mv.Mul4(mgl32.Scale3D(p.Scale, p.Scale, p.Scale))
}

// Destroy releases the shader program.
func (r *ParticleRenderer) Destroy() {
	gl.DeleteProgram(r.program)
	r.program = 0
}
