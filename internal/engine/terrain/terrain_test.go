package terrain

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/fernwood/glade/internal/engine/model"
)

func TestGenerateMeshDimensions(t *testing.T) {
	gen := NewHeightsGenerator(42, 10, 0.1)
	const vc = 8
	mesh := GenerateMesh(gen, vc)

	if got := len(mesh.Positions); got != vc*vc*3 {
		t.Errorf("positions = %d floats, want %d", got, vc*vc*3)
	}
	if got := len(mesh.TexCoords); got != vc*vc*2 {
		t.Errorf("texcoords = %d floats, want %d", got, vc*vc*2)
	}
	if got := len(mesh.Normals); got != vc*vc*3 {
		t.Errorf("normals = %d floats, want %d", got, vc*vc*3)
	}
	wantIndices := (vc - 1) * (vc - 1) * 6
	if got := len(mesh.Indices); got != wantIndices {
		t.Errorf("indices = %d, want %d", got, wantIndices)
	}
	for _, idx := range mesh.Indices {
		if idx >= vc*vc {
			t.Fatalf("index %d out of range", idx)
		}
	}
}

func TestGenerateMeshIsDeterministic(t *testing.T) {
	a := GenerateMesh(NewHeightsGenerator(7, 20, 0.05), 6)
	b := GenerateMesh(NewHeightsGenerator(7, 20, 0.05), 6)
	for i := range a.Positions {
		if a.Positions[i] != b.Positions[i] {
			t.Fatalf("same seed produced different terrain at float %d", i)
		}
	}
}

func TestNormalsAreUnitLength(t *testing.T) {
	mesh := GenerateMesh(NewHeightsGenerator(3, 40, 0.2), 6)
	for i := 0; i+2 < len(mesh.Normals); i += 3 {
		n := mesh.Normals[i]*mesh.Normals[i] + mesh.Normals[i+1]*mesh.Normals[i+1] + mesh.Normals[i+2]*mesh.Normals[i+2]
		if math32.Abs(n-1) > 1e-4 {
			t.Fatalf("normal %d has squared length %v", i/3, n)
		}
		if mesh.Normals[i+1] <= 0 {
			t.Fatalf("normal %d points downward", i/3)
		}
	}
}

// flatTerrain builds a 2x2-square chunk with hand-set corner heights.
func flatTerrain(heights [][]float32) *Terrain {
	return New(0, 0, model.TerrainModel{Heights: heights}, model.TerrainTexturePack{}, model.EmptyTexture())
}

func TestHeightAtGridPoints(t *testing.T) {
	heights := [][]float32{
		{0, 4, 0},
		{2, 6, 2},
		{0, 4, 0},
	}
	terr := flatTerrain(heights)
	half := float32(Size) / 2

	tests := []struct {
		x, z float32
		want float32
	}{
		{0, 0, 0},
		{half, 0, 4},
		{0, half, 2},
		{half, half, 6},
	}
	for _, tt := range tests {
		if got := terr.HeightAt(tt.x, tt.z); math32.Abs(got-tt.want) > 1e-4 {
			t.Errorf("HeightAt(%v, %v) = %v, want %v", tt.x, tt.z, got, tt.want)
		}
	}
}

func TestHeightAtInterpolatesInsideTriangle(t *testing.T) {
	heights := [][]float32{
		{0, 8},
		{0, 0},
	}
	terr := flatTerrain(heights)
	// Quarter of the way along the top edge sits on the upper triangle.
	got := terr.HeightAt(float32(Size)/4, 0)
	if math32.Abs(got-2) > 1e-3 {
		t.Errorf("interpolated height = %v, want 2", got)
	}
}

func TestHeightAtOutsideChunk(t *testing.T) {
	terr := flatTerrain([][]float32{{5, 5}, {5, 5}})
	if got := terr.HeightAt(-10, 0); got != 0 {
		t.Errorf("outside query = %v, want 0", got)
	}
	if got := terr.HeightAt(Size+1, Size+1); got != 0 {
		t.Errorf("outside query = %v, want 0", got)
	}
}
