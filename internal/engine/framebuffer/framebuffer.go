// Package framebuffer manages the engine's off-screen render targets and
// the named registry the render passes look them up in.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Attachment flags select what storage an Object carries. A color side and
// a depth side are configured independently; texture attachments can be
// sampled later, renderbuffers cannot.
type Flags struct {
	ColorTexture      bool
	ColorRenderbuffer bool
	DepthTexture      bool
	DepthRenderbuffer bool
	Multisampled      bool
	Samples           int32
}

// Object is one framebuffer with its attachments.
type Object struct {
	ID     uint32
	Width  int32
	Height int32
	Flags  Flags

	// ColorTexture and DepthTexture are 0 unless the matching flag was set.
	ColorTexture uint32
	DepthTexture uint32

	colorRbo uint32
	depthRbo uint32
}

// New creates a framebuffer with the requested attachments and verifies
// completeness.
func New(width, height int32, flags Flags) (*Object, error) {
	f := &Object{Width: width, Height: height, Flags: flags}

	gl.GenFramebuffers(1, &f.ID)
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.ID)
	defer gl.BindFramebuffer(gl.FRAMEBUFFER, 0)

	if flags.ColorTexture {
		f.ColorTexture = createColorTexture(width, height)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, f.ColorTexture, 0)
	}
	if flags.ColorRenderbuffer {
		f.colorRbo = createRenderbuffer(width, height, gl.RGBA8, flags)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, f.colorRbo)
	}
	if flags.DepthTexture {
		f.DepthTexture = createDepthTexture(width, height)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, f.DepthTexture, 0)
	}
	if flags.DepthRenderbuffer {
		f.depthRbo = createRenderbuffer(width, height, gl.DEPTH_COMPONENT24, flags)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, f.depthRbo)
	}

	if !flags.ColorTexture && !flags.ColorRenderbuffer {
		// Depth-only target (shadow map).
		gl.DrawBuffer(gl.NONE)
		gl.ReadBuffer(gl.NONE)
	}

	if status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); status != gl.FRAMEBUFFER_COMPLETE {
		f.Destroy()
		return nil, fmt.Errorf("framebuffer incomplete: status 0x%x", status)
	}
	return f, nil
}

func createColorTexture(width, height int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, width, height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func createDepthTexture(width, height int32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT24, width, height, 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func createRenderbuffer(width, height int32, format uint32, flags Flags) uint32 {
	var rbo uint32
	gl.GenRenderbuffers(1, &rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rbo)
	if flags.Multisampled {
		gl.RenderbufferStorageMultisample(gl.RENDERBUFFER, flags.Samples, format, width, height)
	} else {
		gl.RenderbufferStorage(gl.RENDERBUFFER, format, width, height)
	}
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
	return rbo
}

// Bind directs rendering into this framebuffer and sets the viewport.
func (f *Object) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, f.ID)
	gl.Viewport(0, 0, f.Width, f.Height)
}

// Unbind restores the default framebuffer with the given screen viewport.
func Unbind(screenWidth, screenHeight int32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, screenWidth, screenHeight)
}

// ResolveToScreen blits a multisampled framebuffer onto the default
// framebuffer, collapsing the samples.
func (f *Object) ResolveToScreen(screenWidth, screenHeight int32) {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, f.ID)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, f.Width, f.Height, 0, 0, screenWidth, screenHeight,
		gl.COLOR_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Destroy releases the framebuffer and its attachments.
func (f *Object) Destroy() {
	if f.ColorTexture != 0 {
		gl.DeleteTextures(1, &f.ColorTexture)
		f.ColorTexture = 0
	}
	if f.DepthTexture != 0 {
		gl.DeleteTextures(1, &f.DepthTexture)
		f.DepthTexture = 0
	}
	if f.colorRbo != 0 {
		gl.DeleteRenderbuffers(1, &f.colorRbo)
		f.colorRbo = 0
	}
	if f.depthRbo != 0 {
		gl.DeleteRenderbuffers(1, &f.depthRbo)
		f.depthRbo = 0
	}
	if f.ID != 0 {
		gl.DeleteFramebuffers(1, &f.ID)
		f.ID = 0
	}
}
