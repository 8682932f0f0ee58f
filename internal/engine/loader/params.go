package loader

// TextureParams controls decode and GPU upload behavior for one texture.
type TextureParams struct {
	// FlipVertically reverses the pixel rows during decode. OpenGL expects
	// the first row at the bottom; most PNG art is authored top-down.
	FlipVertically bool
	UseMipmap      bool
	// MipmapLOD biases texture detail level selection. More negative is
	// sharper; grass and foliage at glancing angles blur when this is >= 0.
	MipmapLOD   float32
	Anisotropic bool
	ClampToEdge bool
}

// DefaultAnisotropy is the requested anisotropic filtering amount, clamped to
// the driver maximum at upload time.
const DefaultAnisotropy = 4.0

// MipmappedTexture returns params for a mipmapped texture with the given LOD
// bias.
func MipmappedTexture(lod float32) TextureParams {
	return TextureParams{UseMipmap: true, MipmapLOD: lod}
}

// AnisotropicTexture returns params for a mipmapped, anisotropically filtered
// texture.
func AnisotropicTexture() TextureParams {
	return TextureParams{UseMipmap: true, Anisotropic: true}
}
