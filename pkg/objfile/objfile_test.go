package objfile

import (
	"strings"
	"testing"

	"github.com/chewxy/math32"
)

const quadOBJ = `# two triangles sharing an edge
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1
f 1/1/1 3/3/1 4/4/1
`

func TestParseQuad(t *testing.T) {
	mesh, err := Parse(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("parsing quad: %v", err)
	}
	if got := mesh.VertexCount(); got != 4 {
		t.Errorf("vertex count = %d, want 4 (shared vertices deduplicated)", got)
	}
	if got := len(mesh.Indices); got != 6 {
		t.Errorf("index count = %d, want 6", got)
	}
	// Shared corners reuse the same index.
	if mesh.Indices[0] != mesh.Indices[3] {
		t.Errorf("shared corner not deduplicated: %v", mesh.Indices)
	}
	if mesh.Indices[2] != mesh.Indices[4] {
		t.Errorf("shared corner not deduplicated: %v", mesh.Indices)
	}
}

func TestParseFlipsV(t *testing.T) {
	mesh, err := Parse(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("parsing quad: %v", err)
	}
	// First vertex had vt 0 0; V is flipped to 1.
	if mesh.TexCoords[1] != 1 {
		t.Errorf("V coordinate = %v, want 1 after flip", mesh.TexCoords[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"no faces", "v 0 0 0\n"},
		{"quad face", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 1/1/1 1/1/1 1/1/1\n"},
		{"index out of range", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1/1 2/1/1 1/1/1\n"},
		{"missing normal ref", "v 0 0 0\nvt 0 0\nvn 0 0 1\nf 1/1 1/1 1/1\n"},
		{"bad float", "v a b c\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.src)); err == nil {
				t.Error("expected parse error")
			}
		})
	}
}

func TestComputeTangents(t *testing.T) {
	mesh, err := Parse(strings.NewReader(quadOBJ))
	if err != nil {
		t.Fatalf("parsing quad: %v", err)
	}
	tangents := mesh.ComputeTangents()
	if got := len(tangents); got != mesh.VertexCount()*4 {
		t.Fatalf("tangent floats = %d, want %d", got, mesh.VertexCount()*4)
	}
	for vi := 0; vi < mesh.VertexCount(); vi++ {
		x, y, z := tangents[vi*4], tangents[vi*4+1], tangents[vi*4+2]
		length := math32.Sqrt(x*x + y*y + z*z)
		if math32.Abs(length-1) > 1e-4 {
			t.Errorf("tangent %d not unit length: %v", vi, length)
		}
		// The quad's U axis runs along +X, the flipped V axis along -Y; the
		// tangent must follow U.
		if math32.Abs(x) < 0.9 {
			t.Errorf("tangent %d = (%v,%v,%v), want along X", vi, x, y, z)
		}
	}
}
