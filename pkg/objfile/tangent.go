package objfile

import "github.com/chewxy/math32"

// ComputeTangents derives per-vertex tangents for normal mapping. Each
// tangent is xyzw: the tangent direction plus the bitangent handedness sign.
// Tangents of shared vertices are accumulated across triangles and then
// normalized, which smooths them the same way shared normals are smoothed.
func (m *Mesh) ComputeTangents() []float32 {
	count := m.VertexCount()
	accum := make([][3]float32, count)

	for i := 0; i+2 < len(m.Indices); i += 3 {
		i0, i1, i2 := m.Indices[i], m.Indices[i+1], m.Indices[i+2]

		e1 := sub3(m.position(i1), m.position(i0))
		e2 := sub3(m.position(i2), m.position(i0))
		duv1 := sub2(m.texCoord(i1), m.texCoord(i0))
		duv2 := sub2(m.texCoord(i2), m.texCoord(i0))

		det := duv1[0]*duv2[1] - duv2[0]*duv1[1]
		if math32.Abs(det) < 1e-8 {
			continue // degenerate UV mapping
		}
		f := 1 / det
		tangent := [3]float32{
			f * (duv2[1]*e1[0] - duv1[1]*e2[0]),
			f * (duv2[1]*e1[1] - duv1[1]*e2[1]),
			f * (duv2[1]*e1[2] - duv1[1]*e2[2]),
		}
		for _, vi := range []uint32{i0, i1, i2} {
			accum[vi][0] += tangent[0]
			accum[vi][1] += tangent[1]
			accum[vi][2] += tangent[2]
		}
	}

	out := make([]float32, 0, count*4)
	for vi := 0; vi < count; vi++ {
		t := accum[vi]
		length := math32.Sqrt(t[0]*t[0] + t[1]*t[1] + t[2]*t[2])
		if length < 1e-8 {
			// No usable UV gradient; any unit tangent keeps the shader sane.
			out = append(out, 1, 0, 0, 1)
			continue
		}
		out = append(out, t[0]/length, t[1]/length, t[2]/length, 1)
	}
	return out
}

func (m *Mesh) position(i uint32) [3]float32 {
	return [3]float32{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
}

func (m *Mesh) texCoord(i uint32) [2]float32 {
	return [2]float32{m.TexCoords[i*2], m.TexCoords[i*2+1]}
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func sub2(a, b [2]float32) [2]float32 {
	return [2]float32{a[0] - b[0], a[1] - b[1]}
}
