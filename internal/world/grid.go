package world

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const (
	// TileSize is the width of one tile in world units.
	TileSize = 32
	// ChunkSize is the width of one chunk in tiles.
	ChunkSize = 32
)

// TileKey addresses a single tile in world tile coordinates.
type TileKey struct {
	X, Y int
}

// ChunkKey addresses a generated chunk.
type ChunkKey struct {
	X, Y int
}

// String renders the "x,y" form used in snapshots.
func (k TileKey) String() string {
	return strconv.Itoa(k.X) + "," + strconv.Itoa(k.Y)
}

// ParseTileKey reads the "x,y" snapshot form.
func ParseTileKey(s string) (TileKey, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return TileKey{}, fmt.Errorf("tile key %q: missing comma", s)
	}
	x, err := strconv.Atoi(xs)
	if err != nil {
		return TileKey{}, fmt.Errorf("tile key %q: %w", s, err)
	}
	y, err := strconv.Atoi(ys)
	if err != nil {
		return TileKey{}, fmt.Errorf("tile key %q: %w", s, err)
	}
	return TileKey{X: x, Y: y}, nil
}

// TileOf maps a world coordinate to its tile coordinate.
func TileOf(v float64) int {
	return int(math.Floor(v / TileSize))
}

func floorDiv(a, b int) int {
	// b > 0
	q := a / b
	if r := a % b; r < 0 {
		q--
	}
	return q
}

func mod(a, b int) int {
	// b > 0
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
