package entity

// WaterTileSize is the world-space half-extent of one water quad.
const WaterTileSize = 60

// WaterTile is a flat water quad centered at (X, Z) at the given height.
type WaterTile struct {
	X      float32
	Z      float32
	Height float32
}

// WaterHeight returns the surface height shared by the given tiles, or false
// when there are none. All tiles of a scene sit at the same height; the
// first tile is authoritative.
func WaterHeight(tiles []WaterTile) (float32, bool) {
	if len(tiles) == 0 {
		return 0, false
	}
	return tiles[0].Height, true
}
