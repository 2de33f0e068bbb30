package world

// Chunk is a generated ChunkSize x ChunkSize block of tiles plus its
// decorative props. Tiles are stored row-major.
type Chunk struct {
	tiles []Tile
	props []Prop
}

// At returns the tile at local coordinates within the chunk.
func (c *Chunk) At(lx, ly int) Tile {
	return c.tiles[ly*ChunkSize+lx]
}

// Props returns the chunk's decorative features in generation order.
func (c *Chunk) Props() []Prop {
	return c.props
}
