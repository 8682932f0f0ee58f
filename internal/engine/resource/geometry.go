package resource

// skyboxSize is the half-extent of the sky cube. Depth writes are off for
// the skybox, so the size only has to clear the near plane.
const skyboxSize = 500

// skyboxVertices is the 36-vertex sky cube, faces wound to be visible from
// the inside.
func skyboxVertices() []float32 {
	s := float32(skyboxSize)
	return []float32{
		-s, s, -s, -s, -s, -s, s, -s, -s,
		s, -s, -s, s, s, -s, -s, s, -s,

		-s, -s, s, -s, -s, -s, -s, s, -s,
		-s, s, -s, -s, s, s, -s, -s, s,

		s, -s, -s, s, -s, s, s, s, s,
		s, s, s, s, s, -s, s, -s, -s,

		-s, -s, s, -s, s, s, s, s, s,
		s, s, s, s, -s, s, -s, -s, s,

		-s, s, -s, s, s, -s, s, s, s,
		s, s, s, -s, s, s, -s, s, -s,

		-s, -s, -s, -s, -s, s, s, -s, -s,
		s, -s, -s, -s, -s, s, s, -s, s,
	}
}

// waterQuadVertices is a unit quad in the XZ plane, expressed as 2D
// coordinates the water shader lifts to y=0.
func waterQuadVertices() []float32 {
	return []float32{
		-1, -1, -1, 1, 1, -1,
		1, -1, -1, 1, 1, 1,
	}
}

// guiQuadPositions is a full-screen quad in NDC; overlay transforms scale
// and place it.
func guiQuadPositions() []float32 {
	return []float32{
		-1, 1, -1, -1, 1, 1,
		1, 1, -1, -1, 1, -1,
	}
}

// guiQuadTexCoords flips V so image-space textures draw upright.
func guiQuadTexCoords() []float32 {
	return []float32{
		0, 0, 0, 1, 1, 0,
		1, 0, 0, 1, 1, 1,
	}
}

// particleQuadVertices is the billboarded unit quad, centered on the
// particle position.
func particleQuadVertices() []float32 {
	return []float32{
		-0.5, 0.5, -0.5, -0.5, 0.5, 0.5,
		0.5, 0.5, -0.5, -0.5, 0.5, -0.5,
	}
}
