// Package terrain generates the procedural ground mesh and answers
// height-at-point queries against it.
package terrain

import (
	"github.com/aquilax/go-perlin"
)

// Default noise shape for the demo terrain.
const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3
)

// HeightsGenerator produces a deterministic grid of terrain heights from
// layered Perlin noise.
type HeightsGenerator struct {
	noise     *perlin.Perlin
	amplitude float64
	frequency float64
}

// NewHeightsGenerator seeds a generator. Amplitude scales the output height
// range, frequency the horizontal feature size.
func NewHeightsGenerator(seed int64, amplitude, frequency float64) *HeightsGenerator {
	return &HeightsGenerator{
		noise:     perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
		amplitude: amplitude,
		frequency: frequency,
	}
}

// HeightAt samples the noise at grid coordinates (x, z).
func (g *HeightsGenerator) HeightAt(x, z int) float32 {
	return float32(g.noise.Noise2D(float64(x)*g.frequency, float64(z)*g.frequency) * g.amplitude)
}

// Grid fills a (vertexCount × vertexCount) height grid, indexed [z][x].
func (g *HeightsGenerator) Grid(vertexCount int) [][]float32 {
	grid := make([][]float32, vertexCount)
	for z := range grid {
		grid[z] = make([]float32, vertexCount)
		for x := range grid[z] {
			grid[z][x] = g.HeightAt(x, z)
		}
	}
	return grid
}
