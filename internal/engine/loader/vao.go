package loader

import (
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/fernwood/glade/internal/engine/model"
)

// LoadToVAO uploads a static mesh with positions, texture coordinates and
// normals.
func (l *Loader) LoadToVAO(positions, texCoords, normals []float32, indices []uint32) model.RawModel {
	vao := l.createVAO()
	l.bindIndicesBuffer(indices)
	l.storeFloatAttrib(model.PosAttrib, 3, positions)
	l.storeFloatAttrib(model.TexCoordAttrib, 2, texCoords)
	l.storeFloatAttrib(model.NormalAttrib, 3, normals)
	gl.BindVertexArray(0)
	return model.RawModel{VaoID: vao, VertexCount: int32(len(indices))}
}

// LoadToVAOWithNormalMap uploads a static mesh that additionally carries
// per-vertex tangents for normal mapping.
func (l *Loader) LoadToVAOWithNormalMap(positions, texCoords, normals, tangents []float32, indices []uint32) model.RawModel {
	vao := l.createVAO()
	l.bindIndicesBuffer(indices)
	l.storeFloatAttrib(model.PosAttrib, 3, positions)
	l.storeFloatAttrib(model.TexCoordAttrib, 2, texCoords)
	l.storeFloatAttrib(model.NormalAttrib, 3, normals)
	l.storeFloatAttrib(model.TangentAttrib, 4, tangents)
	gl.BindVertexArray(0)
	return model.RawModel{VaoID: vao, VertexCount: int32(len(indices))}
}

// LoadAnimatedToVAO uploads a skinned mesh with joint indices and weights.
func (l *Loader) LoadAnimatedToVAO(positions, texCoords, normals []float32, jointIndices []int32, jointWeights []float32, indices []uint32) model.RawModel {
	vao := l.createVAO()
	l.bindIndicesBuffer(indices)
	l.storeFloatAttrib(model.PosAttrib, 3, positions)
	l.storeFloatAttrib(model.TexCoordAttrib, 2, texCoords)
	l.storeFloatAttrib(model.NormalAttrib, 3, normals)
	l.storeIntAttrib(model.JointIndexAttrib, 4, jointIndices)
	l.storeFloatAttrib(model.JointWeightAttrib, 4, jointWeights)
	gl.BindVertexArray(0)
	return model.RawModel{VaoID: vao, VertexCount: int32(len(indices))}
}

// LoadSimpleToVAO uploads a position-only mesh with the given component
// count per vertex (2 for screen quads, 3 for skybox cubes).
func (l *Loader) LoadSimpleToVAO(positions []float32, dimensions int32) model.RawModel {
	vao := l.createVAO()
	l.storeFloatAttrib(model.PosAttrib, dimensions, positions)
	gl.BindVertexArray(0)
	return model.RawModel{VaoID: vao, VertexCount: int32(len(positions)) / dimensions}
}

// LoadQuadsToVAO uploads a 2D quad mesh with texture coordinates (GUI text
// and overlay geometry).
func (l *Loader) LoadQuadsToVAO(positions, texCoords []float32) model.RawModel {
	vao := l.createVAO()
	l.storeFloatAttrib(model.PosAttrib, 2, positions)
	l.storeFloatAttrib(model.TexCoordAttrib, 2, texCoords)
	gl.BindVertexArray(0)
	return model.RawModel{VaoID: vao, VertexCount: int32(len(positions)) / 2}
}

// LoadDynamicIndexedToVAO creates an indexed model whose vertex positions
// are streamed every frame (debug cuboids).
func (l *Loader) LoadDynamicIndexedToVAO(uniqueVertexCount int, indices []uint32, dimensions int32) model.DynamicModel {
	vao := l.createVAO()
	l.bindIndicesBuffer(indices)
	streamVBO := l.createEmptyFloatVBOForAttrib(model.PosAttrib, uniqueVertexCount, dimensions)
	gl.BindVertexArray(0)
	return model.DynamicModel{
		Raw:       model.RawModel{VaoID: vao, VertexCount: int32(len(indices))},
		StreamVBO: streamVBO,
	}
}

// CreateEmptyFloatVBO allocates an uninitialized stream-draw buffer of the
// given float capacity.
func (l *Loader) CreateEmptyFloatVBO(floatCount int) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	l.vboList = append(l.vboList, vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, floatCount*4, nil, gl.STREAM_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

// AddInstancedAttrib attaches a per-instance float attribute backed by an
// interleaved stream VBO to the given vertex array.
func (l *Loader) AddInstancedAttrib(vao, vbo, attrib uint32, components int32, strideFloats, offsetFloats int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BindVertexArray(vao)
	gl.VertexAttribPointerWithOffset(attrib, components, gl.FLOAT, false, int32(strideFloats*4), uintptr(offsetFloats*4))
	gl.VertexAttribDivisor(attrib, 1)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// UpdateStreamVBO re-specifies a stream VBO with fresh data, orphaning the
// previous storage so the driver does not stall on in-flight draws.
func (l *Loader) UpdateStreamVBO(vbo uint32, data []float32, capacityFloats int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, capacityFloats*4, nil, gl.STREAM_DRAW)
	if len(data) > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(data))
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// createEmptyFloatVBOForAttrib allocates a stream-draw buffer and wires it
// to an attribute of the currently bound vertex array.
func (l *Loader) createEmptyFloatVBOForAttrib(attrib uint32, vertexCount int, dimensions int32) uint32 {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	l.vboList = append(l.vboList, vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, vertexCount*int(dimensions)*4, nil, gl.STREAM_DRAW)
	gl.VertexAttribPointerWithOffset(attrib, dimensions, gl.FLOAT, false, 0, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return vbo
}

func (l *Loader) createVAO() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	l.vaoList = append(l.vaoList, vao)
	gl.BindVertexArray(vao)
	return vao
}

func (l *Loader) storeFloatAttrib(attrib uint32, size int32, data []float32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	l.vboList = append(l.vboList, vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(attrib, size, gl.FLOAT, false, 0, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (l *Loader) storeIntAttrib(attrib uint32, size int32, data []int32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	l.vboList = append(l.vboList, vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribIPointerWithOffset(attrib, size, gl.INT, 0, 0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// bindIndicesBuffer uploads the element array. No unbind: the element
// binding is part of VAO state and must stay attached.
func (l *Loader) bindIndicesBuffer(indices []uint32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	l.vboList = append(l.vboList, vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)
}
