package loader

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/go-gl/gl/v4.1-core/gl"
)

// uploader is the GPU side of the loader. It exists as a seam so the drain
// and cubemap accumulation logic can be exercised without a GL context.
type uploader interface {
	uploadTexture(img *image.RGBA, params TextureParams) uint32
	uploadCubemap(faces [CubemapFaces]*image.RGBA) uint32
	deleteAll(vaos, vbos, textures []uint32)
}

// Anisotropic filtering is an extension below GL 4.6; the core bindings do
// not export its enums.
const (
	glTextureMaxAnisotropy    = 0x84FE
	glMaxTextureMaxAnisotropy = 0x84FF
)

type glUploader struct{}

func (glUploader) uploadTexture(img *image.RGBA, params TextureParams) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	wrap := int32(gl.REPEAT)
	if params.ClampToEdge {
		wrap = gl.CLAMP_TO_EDGE
	}
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrap)

	w := int32(img.Bounds().Dx())
	h := int32(img.Bounds().Dy())
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))

	if params.UseMipmap {
		// Has to happen after the pixel upload.
		gl.GenerateMipmap(gl.TEXTURE_2D)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_LOD_BIAS, params.MipmapLOD)
		if params.Anisotropic {
			var max float32
			gl.GetFloatv(glMaxTextureMaxAnisotropy, &max)
			gl.TexParameterf(gl.TEXTURE_2D, glTextureMaxAnisotropy, math32.Min(DefaultAnisotropy, max))
		}
	} else {
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	}

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

func (glUploader) uploadCubemap(faces [CubemapFaces]*image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, tex)

	for i, face := range faces {
		w := int32(face.Bounds().Dx())
		h := int32(face.Bounds().Dy())
		target := uint32(gl.TEXTURE_CUBE_MAP_POSITIVE_X + i)
		gl.TexImage2D(target, 0, gl.RGBA8, w, h, 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(face.Pix))
	}

	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)

	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)
	return tex
}

func (glUploader) deleteAll(vaos, vbos, textures []uint32) {
	if len(vaos) > 0 {
		gl.DeleteVertexArrays(int32(len(vaos)), &vaos[0])
	}
	if len(vbos) > 0 {
		gl.DeleteBuffers(int32(len(vbos)), &vbos[0])
	}
	if len(textures) > 0 {
		gl.DeleteTextures(int32(len(textures)), &textures[0])
	}
}
