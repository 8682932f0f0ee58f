package terrain

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/fernwood/glade/internal/engine/model"
)

// Size is the world-space edge length of one terrain chunk.
const Size = 800

// Terrain is one ground chunk: its world placement, the textures blended
// over it and the height grid kept for collision queries.
type Terrain struct {
	X, Z     float32 // world position of the chunk's min corner
	Model    model.TerrainModel
	Textures model.TerrainTexturePack
	BlendMap model.TextureID
	heights  [][]float32
}

// New places a generated terrain chunk in the world.
func New(x, z float32, m model.TerrainModel, textures model.TerrainTexturePack, blendMap model.TextureID) *Terrain {
	return &Terrain{X: x, Z: z, Model: m, Textures: textures, BlendMap: blendMap, heights: m.Heights}
}

// MeshData is the raw vertex data of a terrain chunk, ready for VAO upload.
type MeshData struct {
	Positions []float32
	TexCoords []float32
	Normals   []float32
	Indices   []uint32
	Heights   [][]float32
}

// GenerateMesh builds a (vertexCount × vertexCount) grid mesh with heights
// from the generator and normals from central differences.
func GenerateMesh(gen *HeightsGenerator, vertexCount int) MeshData {
	heights := gen.Grid(vertexCount)

	count := vertexCount * vertexCount
	mesh := MeshData{
		Positions: make([]float32, 0, count*3),
		TexCoords: make([]float32, 0, count*2),
		Normals:   make([]float32, 0, count*3),
		Heights:   heights,
	}

	span := float32(vertexCount - 1)
	for z := 0; z < vertexCount; z++ {
		for x := 0; x < vertexCount; x++ {
			mesh.Positions = append(mesh.Positions,
				float32(x)/span*Size,
				heights[z][x],
				float32(z)/span*Size,
			)
			mesh.TexCoords = append(mesh.TexCoords,
				float32(x)/span,
				float32(z)/span,
			)
			n := gridNormal(heights, x, z)
			mesh.Normals = append(mesh.Normals, n.X(), n.Y(), n.Z())
		}
	}

	for z := 0; z < vertexCount-1; z++ {
		for x := 0; x < vertexCount-1; x++ {
			topLeft := uint32(z*vertexCount + x)
			topRight := topLeft + 1
			bottomLeft := uint32((z+1)*vertexCount + x)
			bottomRight := bottomLeft + 1
			mesh.Indices = append(mesh.Indices,
				topLeft, bottomLeft, topRight,
				topRight, bottomLeft, bottomRight,
			)
		}
	}
	return mesh
}

// gridNormal estimates the surface normal at a grid point from the height
// difference of its neighbors, clamping at the chunk edge.
func gridNormal(heights [][]float32, x, z int) mgl32.Vec3 {
	last := len(heights) - 1
	hl := heights[z][maxInt(x-1, 0)]
	hr := heights[z][minInt(x+1, last)]
	hd := heights[maxInt(z-1, 0)][x]
	hu := heights[minInt(z+1, last)][x]
	return mgl32.Vec3{hl - hr, 2, hd - hu}.Normalize()
}

// HeightAt returns the interpolated terrain height at a world position, or
// 0 when the point lies outside this chunk.
func (t *Terrain) HeightAt(worldX, worldZ float32) float32 {
	localX := worldX - t.X
	localZ := worldZ - t.Z
	gridSquares := len(t.heights) - 1
	squareSize := float32(Size) / float32(gridSquares)

	gridX := int(math32.Floor(localX / squareSize))
	gridZ := int(math32.Floor(localZ / squareSize))
	if gridX < 0 || gridZ < 0 || gridX >= gridSquares || gridZ >= gridSquares {
		return 0
	}

	// Coordinate within the square, 0..1.
	xc := math32.Mod(localX, squareSize) / squareSize
	zc := math32.Mod(localZ, squareSize) / squareSize

	// Each grid square is two triangles split along the x+z=1 diagonal.
	if xc <= 1-zc {
		return barycentricHeight(
			mgl32.Vec3{0, t.heights[gridZ][gridX], 0},
			mgl32.Vec3{1, t.heights[gridZ][gridX+1], 0},
			mgl32.Vec3{0, t.heights[gridZ+1][gridX], 1},
			xc, zc,
		)
	}
	return barycentricHeight(
		mgl32.Vec3{1, t.heights[gridZ][gridX+1], 0},
		mgl32.Vec3{1, t.heights[gridZ+1][gridX+1], 1},
		mgl32.Vec3{0, t.heights[gridZ+1][gridX], 1},
		xc, zc,
	)
}

// barycentricHeight interpolates the Y of three (x, height, z) triangle
// vertices at point (x, z).
func barycentricHeight(p1, p2, p3 mgl32.Vec3, x, z float32) float32 {
	det := (p2.Z()-p3.Z())*(p1.X()-p3.X()) + (p3.X()-p2.X())*(p1.Z()-p3.Z())
	l1 := ((p2.Z()-p3.Z())*(x-p3.X()) + (p3.X()-p2.X())*(z-p3.Z())) / det
	l2 := ((p3.Z()-p1.Z())*(x-p3.X()) + (p1.X()-p3.X())*(z-p3.Z())) / det
	l3 := 1 - l1 - l2
	return l1*p1.Y() + l2*p2.Y() + l3*p3.Y()
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
