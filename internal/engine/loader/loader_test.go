package loader

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fernwood/glade/internal/engine/model"
)

// fakeGPU records uploads instead of touching a GL context.
type fakeGPU struct {
	nextHandle     uint32
	textureUploads int
	cubemapUploads int
	cubemapFaces   [][CubemapFaces]*image.RGBA
}

func (f *fakeGPU) uploadTexture(img *image.RGBA, params TextureParams) uint32 {
	f.textureUploads++
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeGPU) uploadCubemap(faces [CubemapFaces]*image.RGBA) uint32 {
	f.cubemapUploads++
	f.cubemapFaces = append(f.cubemapFaces, faces)
	f.nextHandle++
	return f.nextHandle
}

func (f *fakeGPU) deleteAll(vaos, vbos, textures []uint32) {}

// writeTestPNG writes a small solid-color PNG and returns its path.
func writeTestPNG(t *testing.T, dir, name string, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = byte(i)
	}
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encoding %s: %v", path, err)
	}
	return path
}

// drainUntilIdle polls Drain the way the frame loop does, with a deadline so
// a broken loader cannot hang the test.
func drainUntilIdle(t *testing.T, l *Loader) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for l.Loading() {
		if err := l.Drain(); err != nil {
			t.Fatalf("drain failed: %v", err)
		}
		if time.Now().After(deadline) {
			t.Fatal("loader did not finish within deadline")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRequestTextureRoundTrip(t *testing.T) {
	dir := t.TempDir()
	gpu := &fakeGPU{}
	l := newWithUploader(4, gpu)
	defer l.Destroy()

	const n = 12
	ids := make([]model.TextureID, 0, n)
	for i := 0; i < n; i++ {
		path := writeTestPNG(t, dir, fmt.Sprintf("tex%d.png", i), 4, 4)
		id := l.RequestTexture(path, TextureParams{})
		if id.Kind() != model.TextureLoading {
			t.Fatalf("expected Loading id, got %v", id)
		}
		ids = append(ids, id)
	}

	if !l.Loading() {
		t.Fatal("expected loader to report in-flight textures")
	}

	drainUntilIdle(t, l)

	if gpu.textureUploads != n {
		t.Errorf("expected %d uploads, got %d", n, gpu.textureUploads)
	}
	if len(l.tokenMap) != n {
		t.Errorf("expected %d token map entries, got %d", n, len(l.tokenMap))
	}

	// Every token resolves to a distinct handle.
	seen := make(map[uint32]bool)
	for _, id := range ids {
		resolved := l.Resolve(id)
		if resolved.Kind() != model.TextureLoaded {
			t.Fatalf("expected Loaded after drain, got %v", resolved)
		}
		if seen[resolved.Handle()] {
			t.Errorf("handle %d resolved for two different tokens", resolved.Handle())
		}
		seen[resolved.Handle()] = true
	}
}

func TestCubemapSingleUploadWithOrderedFaces(t *testing.T) {
	dir := t.TempDir()
	// Distinct sizes per face so the upload order is observable.
	for face := 1; face <= CubemapFaces; face++ {
		writeTestPNG(t, dir, fmt.Sprintf("%d.png", face), face, face)
	}

	gpu := &fakeGPU{}
	l := newWithUploader(CubemapFaces, gpu) // all faces decode concurrently
	defer l.Destroy()

	id := l.LoadCubeMap(dir)
	drainUntilIdle(t, l)

	if gpu.cubemapUploads != 1 {
		t.Fatalf("expected exactly one cubemap upload, got %d", gpu.cubemapUploads)
	}
	if gpu.textureUploads != 0 {
		t.Errorf("cubemap faces must not be uploaded as standalone textures, got %d", gpu.textureUploads)
	}

	faces := gpu.cubemapFaces[0]
	for i, face := range faces {
		if face == nil {
			t.Fatalf("face %d missing from upload", i+1)
		}
		if face.Bounds().Dx() != i+1 {
			t.Errorf("face slot %d holds image of width %d; faces must be bound in index order", i, face.Bounds().Dx())
		}
	}

	resolved := l.Resolve(id)
	if resolved.Kind() != model.TextureLoaded {
		t.Fatalf("expected Loaded cubemap, got %v", resolved)
	}
	if len(l.pendingCubemaps) != 0 {
		t.Errorf("accumulation entry should be removed after upload")
	}
}

func TestDrainReportsDecodeFailure(t *testing.T) {
	gpu := &fakeGPU{}
	l := newWithUploader(1, gpu)
	defer l.Destroy()

	l.RequestTexture("/nonexistent/missing.png", TextureParams{})

	deadline := time.Now().Add(5 * time.Second)
	for {
		err := l.Drain()
		if err != nil {
			break // expected: missing assets are fatal to the caller
		}
		if !l.Loading() {
			t.Fatal("loader went idle without reporting the failed decode")
		}
		if time.Now().After(deadline) {
			t.Fatal("decode failure never reported")
		}
		time.Sleep(time.Millisecond)
	}

	if l.Loading() {
		t.Error("failed load must still settle the in-flight counter")
	}
}

func TestResolveUnknownTokenPanics(t *testing.T) {
	l := newWithUploader(1, &fakeGPU{})
	defer l.Destroy()

	defer func() {
		if recover() == nil {
			t.Error("expected panic resolving a token that was never registered")
		}
	}()
	l.Resolve(model.LoadingTexture(999))
}

func TestResolveEmptyPanics(t *testing.T) {
	l := newWithUploader(1, &fakeGPU{})
	defer l.Destroy()

	defer func() {
		if recover() == nil {
			t.Error("expected panic resolving an empty texture id")
		}
	}()
	l.Resolve(model.EmptyTexture())
}

func TestResolveFBOTexturePanics(t *testing.T) {
	l := newWithUploader(1, &fakeGPU{})
	defer l.Destroy()

	defer func() {
		if recover() == nil {
			t.Error("expected panic resolving a framebuffer attachment")
		}
	}()
	l.Resolve(model.FBOTexture(2))
}

func TestResolveLoadedPassesThrough(t *testing.T) {
	l := newWithUploader(1, &fakeGPU{})
	defer l.Destroy()

	id := model.LoadedTexture(17)
	if got := l.Resolve(id); got != id {
		t.Errorf("expected pass-through of loaded id, got %v", got)
	}
}

func TestFlipRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 2))
	img.Pix = []byte{1, 2, 3, 4, 5, 6, 7, 8}
	flipRows(img)
	want := []byte{5, 6, 7, 8, 1, 2, 3, 4}
	for i := range want {
		if img.Pix[i] != want[i] {
			t.Fatalf("flip mismatch at %d: got %v want %v", i, img.Pix, want)
		}
	}
}
