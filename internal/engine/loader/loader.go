// Package loader owns every GPU resource handle in the engine: vertex
// arrays, buffers and textures. Image files are decoded on a fixed pool of
// background workers; the actual GPU upload happens on the thread that owns
// the GL context, once per frame, when Drain is called.
package loader

import (
	"fmt"
	"image"
	"os"
	"sync"

	// Registered decoders for the asset formats the engine ships.
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	"github.com/fernwood/glade/internal/engine/model"
)

// CubemapFaces is the number of face textures per cubemap (1.png .. 6.png).
const CubemapFaces = 6

// cubemapInfo tags a decode result that belongs to a cubemap face.
type cubemapInfo struct {
	isCubemap bool
	face      int // 1-based face index, fixes upload order
	token     uint32
}

type decodeJob struct {
	path    string
	token   uint32
	params  TextureParams
	cubemap cubemapInfo
}

type decodeResult struct {
	img     *image.RGBA
	token   uint32
	params  TextureParams
	cubemap cubemapInfo
	path    string
	err     error
}

// Loader decodes textures in the background and creates all GPU resources on
// the draining thread. All methods except the internal decode workers must be
// called from the thread that owns the GL context.
type Loader struct {
	vaoList []uint32
	vboList []uint32
	texList []uint32

	jobs    chan decodeJob
	results chan decodeResult
	wg      sync.WaitGroup

	// Owned exclusively by the draining thread; the results channel is the
	// only concurrency boundary.
	tokenMap        map[uint32]uint32
	pendingCubemaps map[uint32][]decodeResult
	nextToken       uint32
	inFlight        int

	gpu uploader
}

// New creates a loader with the given number of decode workers.
func New(workers int) *Loader {
	return newWithUploader(workers, glUploader{})
}

func newWithUploader(workers int, gpu uploader) *Loader {
	if workers < 1 {
		workers = 1
	}

	l := &Loader{
		jobs:            make(chan decodeJob, 256),
		results:         make(chan decodeResult, 256),
		tokenMap:        make(map[uint32]uint32),
		pendingCubemaps: make(map[uint32][]decodeResult),
		gpu:             gpu,
	}

	l.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go l.decodeWorker()
	}

	return l
}

// decodeWorker runs until the jobs channel is closed. A failed decode is
// reported through the results channel rather than panicking inside the pool.
func (l *Loader) decodeWorker() {
	defer l.wg.Done()
	for job := range l.jobs {
		img, err := decodeImage(job.path, job.params)
		l.results <- decodeResult{
			img:     img,
			token:   job.token,
			params:  job.params,
			cubemap: job.cubemap,
			path:    job.path,
			err:     err,
		}
	}
}

// decodeImage reads and decodes an image file into RGBA pixels.
func decodeImage(path string, params TextureParams) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening texture %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %s: %w", path, err)
	}

	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(rgba, rgba.Bounds(), src, b.Min, xdraw.Src)

	if params.FlipVertically {
		flipRows(rgba)
	}
	return rgba, nil
}

// flipRows reverses the pixel rows in place.
func flipRows(img *image.RGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bot := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bot)
		copy(bot, row)
	}
}

// RequestTexture queues a background decode and returns a Loading id whose
// token resolves to the GPU handle after the decode has been drained.
func (l *Loader) RequestTexture(path string, params TextureParams) model.TextureID {
	l.nextToken++
	token := l.nextToken
	l.inFlight++
	l.jobs <- decodeJob{path: path, token: token, params: params}
	return model.LoadingTexture(token)
}

// LoadCubeMap queues decodes for the six faces of a cubemap stored as
// dir/1.png .. dir/6.png. The cubemap is uploaded once, after all six faces
// have arrived, in face order regardless of decode completion order.
func (l *Loader) LoadCubeMap(dir string) model.TextureID {
	l.nextToken++
	token := l.nextToken
	// The accumulation entry must exist before any face can be drained.
	l.pendingCubemaps[token] = nil

	params := TextureParams{ClampToEdge: true}
	for face := 1; face <= CubemapFaces; face++ {
		l.inFlight++
		l.jobs <- decodeJob{
			path:    fmt.Sprintf("%s/%d.png", dir, face),
			token:   token,
			params:  params,
			cubemap: cubemapInfo{isCubemap: true, face: face, token: token},
		}
	}
	return model.LoadingTexture(token)
}

// Drain receives all completed decodes without blocking and performs their
// GPU uploads. It must be called every frame on the GL thread. A decode
// failure is returned as an error; required art assets are not optional, so
// callers abort initialization on it.
func (l *Loader) Drain() error {
	for {
		select {
		case res := <-l.results:
			if err := l.processResult(res); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (l *Loader) processResult(res decodeResult) error {
	// Every drained result settles one in-flight load, failed or not.
	l.inFlight--

	if res.err != nil {
		return fmt.Errorf("texture load failed: %w", res.err)
	}

	if res.cubemap.isCubemap {
		pending, ok := l.pendingCubemaps[res.cubemap.token]
		if !ok {
			panic(fmt.Sprintf("loader: cubemap token %d has no accumulation entry; entries are created when the token is generated", res.cubemap.token))
		}
		pending = append(pending, res)
		if len(pending) < CubemapFaces {
			l.pendingCubemaps[res.cubemap.token] = pending
			return nil
		}

		var faces [CubemapFaces]*image.RGBA
		for _, face := range pending {
			faces[face.cubemap.face-1] = face.img
		}
		handle := l.gpu.uploadCubemap(faces)
		l.texList = append(l.texList, handle)
		l.tokenMap[res.cubemap.token] = handle
		delete(l.pendingCubemaps, res.cubemap.token)
		return nil
	}

	handle := l.gpu.uploadTexture(res.img, res.params)
	l.texList = append(l.texList, handle)
	l.tokenMap[res.token] = handle
	return nil
}

// Loading reports whether any requested texture has not been drained yet.
// Callers must poll this (after Drain) before resolving texture ids.
func (l *Loader) Loading() bool {
	return l.inFlight > 0
}

// Resolve converts a Loading id into a Loaded id. Calling it with a token
// that was never registered, or with an Empty or FBO id, is a call-ordering
// bug in the engine and panics.
func (l *Loader) Resolve(id model.TextureID) model.TextureID {
	switch id.Kind() {
	case model.TextureLoading:
		handle, ok := l.tokenMap[id.Token()]
		if !ok {
			panic(fmt.Sprintf("loader: resolve of unknown token %d; all texture ids must come from this loader and be drained first", id.Token()))
		}
		return model.LoadedTexture(handle)
	case model.TextureLoaded:
		return id
	case model.TextureEmpty:
		panic("loader: not permitted to resolve an empty texture id")
	default:
		panic("loader: not permitted to resolve a framebuffer attachment")
	}
}

// Destroy stops the worker pool and releases every GPU handle the loader
// owns. Outstanding decodes are drained and discarded first; a started
// decode always runs to completion.
func (l *Loader) Destroy() {
	close(l.jobs)
	l.wg.Wait()
	for {
		select {
		case <-l.results:
		default:
			l.gpu.deleteAll(l.vaoList, l.vboList, l.texList)
			l.vaoList, l.vboList, l.texList = nil, nil, nil
			return
		}
	}
}
