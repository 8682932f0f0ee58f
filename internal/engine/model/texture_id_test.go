package model

import "testing"

func TestTextureIDKinds(t *testing.T) {
	tests := []struct {
		name string
		id   TextureID
		kind TextureKind
	}{
		{"empty", EmptyTexture(), TextureEmpty},
		{"loading", LoadingTexture(7), TextureLoading},
		{"loaded", LoadedTexture(42), TextureLoaded},
		{"fbo", FBOTexture(3), TextureFBO},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.id.Kind() != tt.kind {
				t.Errorf("expected kind %v, got %v", tt.kind, tt.id.Kind())
			}
		})
	}
}

func TestTextureIDHandle(t *testing.T) {
	if h := LoadedTexture(42).Handle(); h != 42 {
		t.Errorf("expected handle 42, got %d", h)
	}
	if h := FBOTexture(3).Handle(); h != 3 {
		t.Errorf("expected handle 3, got %d", h)
	}
}

func TestTextureIDHandlePanicsWhileLoading(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic binding a loading texture")
		}
	}()
	_ = LoadingTexture(1).Handle()
}

func TestTextureIDHandlePanicsWhenEmpty(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic binding an empty texture")
		}
	}()
	_ = EmptyTexture().Handle()
}

func TestTextureIDToken(t *testing.T) {
	if tok := LoadingTexture(9).Token(); tok != 9 {
		t.Errorf("expected token 9, got %d", tok)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic reading token of a loaded texture")
		}
	}()
	_ = LoadedTexture(9).Token()
}

func TestTexturedModelKey(t *testing.T) {
	tex := DefaultModelTexture()
	tex.ID = LoadedTexture(5)

	a := &TexturedModel{Raw: RawModel{VaoID: 10, VertexCount: 36}, Texture: tex}
	b := &TexturedModel{Raw: RawModel{VaoID: 10, VertexCount: 36}, Texture: tex}

	if a.Key() != b.Key() {
		t.Error("models sharing texture and vao must have equal keys")
	}

	c := &TexturedModel{Raw: RawModel{VaoID: 11}, Texture: tex}
	if a.Key() == c.Key() {
		t.Error("models with different vaos must have different keys")
	}
}
