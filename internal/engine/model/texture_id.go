package model

import "fmt"

// TextureKind discriminates the states a texture reference can be in.
type TextureKind uint8

const (
	// TextureEmpty is the zero state: no texture has been requested.
	TextureEmpty TextureKind = iota
	// TextureLoading holds a loader token; the decode has been queued but the
	// GPU handle does not exist yet.
	TextureLoading
	// TextureLoaded holds a live GPU texture handle.
	TextureLoaded
	// TextureFBO holds a framebuffer attachment handle. It is already on the
	// GPU and must never go through the loader's resolve path.
	TextureFBO
)

// TextureID is a tagged reference to a texture in one of four states.
// A Loading id must be resolved to Loaded before it can be bound to a draw
// call; resolving is only valid once the owning loader has drained the
// background decode result.
type TextureID struct {
	kind  TextureKind
	value uint32 // loader token or GPU handle, depending on kind
}

// EmptyTexture returns the zero TextureID.
func EmptyTexture() TextureID {
	return TextureID{kind: TextureEmpty}
}

// LoadingTexture wraps a loader token.
func LoadingTexture(token uint32) TextureID {
	return TextureID{kind: TextureLoading, value: token}
}

// LoadedTexture wraps a GPU texture handle.
func LoadedTexture(handle uint32) TextureID {
	return TextureID{kind: TextureLoaded, value: handle}
}

// FBOTexture wraps a framebuffer attachment handle.
func FBOTexture(handle uint32) TextureID {
	return TextureID{kind: TextureFBO, value: handle}
}

// Kind returns the state tag.
func (t TextureID) Kind() TextureKind {
	return t.kind
}

// Token returns the loader token. Panics unless the id is Loading.
func (t TextureID) Token() uint32 {
	if t.kind != TextureLoading {
		panic(fmt.Sprintf("model: Token called on %v texture id", t.kind))
	}
	return t.value
}

// Handle returns the GPU handle for a Loaded or FBO texture. Calling it on an
// Empty or Loading id is a call-ordering bug and panics.
func (t TextureID) Handle() uint32 {
	switch t.kind {
	case TextureLoaded, TextureFBO:
		return t.value
	case TextureLoading:
		panic("model: texture is still loading; resolve it before binding")
	default:
		panic("model: cannot bind an empty texture id")
	}
}

// String implements fmt.Stringer for log output.
func (t TextureID) String() string {
	switch t.kind {
	case TextureEmpty:
		return "Empty"
	case TextureLoading:
		return fmt.Sprintf("Loading(%d)", t.value)
	case TextureLoaded:
		return fmt.Sprintf("Loaded(%d)", t.value)
	case TextureFBO:
		return fmt.Sprintf("FBO(%d)", t.value)
	default:
		return fmt.Sprintf("Unknown(%d)", t.value)
	}
}

// String implements fmt.Stringer for the kind tag.
func (k TextureKind) String() string {
	switch k {
	case TextureEmpty:
		return "Empty"
	case TextureLoading:
		return "Loading"
	case TextureLoaded:
		return "Loaded"
	case TextureFBO:
		return "FBO"
	default:
		return "Unknown"
	}
}
