// Package objfile parses Wavefront OBJ meshes into flat vertex arrays
// ready for GPU upload.
package objfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Mesh is the parsed, de-duplicated vertex data of one OBJ file.
type Mesh struct {
	Positions []float32 // xyz per vertex
	TexCoords []float32 // uv per vertex
	Normals   []float32 // xyz per vertex
	Indices   []uint32
}

// VertexCount returns the number of unique vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// Load parses the OBJ file at path.
func Load(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening obj %s: %w", path, err)
	}
	defer f.Close()

	mesh, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing obj %s: %w", path, err)
	}
	return mesh, nil
}

// Parse reads OBJ data from r. Faces must be triangles with v/vt/vn
// references; quads and negative indices are not supported.
func Parse(r io.Reader) (*Mesh, error) {
	var (
		positions [][3]float32
		texCoords [][2]float32
		normals   [][3]float32
	)
	mesh := &Mesh{}
	// A vertex is unique per (position, texcoord, normal) triple.
	seen := make(map[string]uint32)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "v":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vertex: %w", lineNo, err)
			}
			positions = append(positions, v)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: texcoord needs 2 components", lineNo)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: bad texcoord", lineNo)
			}
			// OBJ uses bottom-left origin for V; textures load top-down.
			texCoords = append(texCoords, [2]float32{u, 1 - v})
		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "f":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: face has %d vertices, only triangles supported", lineNo, len(fields)-1)
			}
			for _, ref := range fields[1:] {
				idx, err := resolveVertex(ref, positions, texCoords, normals, mesh, seen)
				if err != nil {
					return nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				mesh.Indices = append(mesh.Indices, idx)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading obj: %w", err)
	}
	if len(mesh.Indices) == 0 {
		return nil, fmt.Errorf("obj contains no faces")
	}
	return mesh, nil
}

// resolveVertex returns the flat-array index for a face vertex reference,
// appending a new unique vertex on first sight.
func resolveVertex(ref string, positions [][3]float32, texCoords [][2]float32, normals [][3]float32, mesh *Mesh, seen map[string]uint32) (uint32, error) {
	if idx, ok := seen[ref]; ok {
		return idx, nil
	}

	parts := strings.Split(ref, "/")
	if len(parts) != 3 {
		return 0, fmt.Errorf("face vertex %q: want v/vt/vn", ref)
	}
	pi, err1 := strconv.Atoi(parts[0])
	ti, err2 := strconv.Atoi(parts[1])
	ni, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, fmt.Errorf("face vertex %q: non-numeric index", ref)
	}
	// OBJ indices are 1-based.
	if pi < 1 || pi > len(positions) || ti < 1 || ti > len(texCoords) || ni < 1 || ni > len(normals) {
		return 0, fmt.Errorf("face vertex %q: index out of range", ref)
	}

	idx := uint32(mesh.VertexCount())
	p := positions[pi-1]
	t := texCoords[ti-1]
	n := normals[ni-1]
	mesh.Positions = append(mesh.Positions, p[0], p[1], p[2])
	mesh.TexCoords = append(mesh.TexCoords, t[0], t[1])
	mesh.Normals = append(mesh.Normals, n[0], n[1], n[2])
	seen[ref] = idx
	return idx, nil
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("want 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		v, err := parseFloat(fields[i])
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
