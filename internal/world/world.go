package world

import (
	"math"
	"math/rand"
)

// Params are the world tuning knobs.
type Params struct {
	RevealRadius  int     // tiles uncovered around a reveal point
	DayStart      float64 // clock hour at boot
	ClockRate     float64 // in-game hours per real second
	WeatherMin    float64 // seconds between weather rolls
	WeatherMax    float64
	MaxDiscovered int        // discovered tiles kept in a snapshot
	Landmarks     []Landmark // designed biome override regions
}

func DefaultParams() Params {
	return Params{
		RevealRadius:  9,
		DayStart:      8.0,
		ClockRate:     0.28,
		WeatherMin:    35,
		WeatherMax:    65,
		MaxDiscovered: 8000,
	}
}

// World owns the generated terrain, the fog of war, player-built blocks
// and the day/weather clock. It is not safe for concurrent use; all
// access happens on the tick goroutine.
type World struct {
	gen    *Generator
	params Params
	rng    *rand.Rand

	chunks     map[ChunkKey]*Chunk
	discovered map[TileKey]struct{}
	blocks     map[TileKey]BlockKind

	timeOfDay    float64
	weather      Weather
	weatherTimer float64
}

// New creates a world for the seed. The stream drives weather rolls and
// must be dedicated to the world if runs are to be reproducible.
func New(seed int64, stream *rand.Rand, params Params) *World {
	return &World{
		gen:          NewGenerator(seed, params.Landmarks...),
		params:       params,
		rng:          stream,
		chunks:       make(map[ChunkKey]*Chunk),
		discovered:   make(map[TileKey]struct{}),
		blocks:       make(map[TileKey]BlockKind),
		timeOfDay:    params.DayStart,
		weather:      WeatherClear,
		weatherTimer: 40.0,
	}
}

func (w *World) Seed() int64 {
	return w.gen.seed
}

// GetChunk returns the chunk, generating and caching it on first use.
func (w *World) GetChunk(cx, cy int) *Chunk {
	key := ChunkKey{X: cx, Y: cy}
	c, ok := w.chunks[key]
	if !ok {
		c = w.gen.Generate(cx, cy)
		w.chunks[key] = c
	}
	return c
}

// ChunkCount returns how many chunks are resident.
func (w *World) ChunkCount() int {
	return len(w.chunks)
}

// EnsureAround warms the chunk cache in a square of radius chunks
// around a world position.
func (w *World) EnsureAround(x, y float64, radiusChunks int) {
	cx := int(math.Floor(x / (TileSize * ChunkSize)))
	cy := int(math.Floor(y / (TileSize * ChunkSize)))
	for oy := -radiusChunks; oy <= radiusChunks; oy++ {
		for ox := -radiusChunks; ox <= radiusChunks; ox++ {
			w.GetChunk(cx+ox, cy+oy)
		}
	}
}

// TileAt returns the terrain tile at tile coordinates.
func (w *World) TileAt(tx, ty int) Tile {
	c := w.GetChunk(floorDiv(tx, ChunkSize), floorDiv(ty, ChunkSize))
	return c.At(mod(tx, ChunkSize), mod(ty, ChunkSize))
}

// BiomeAt classifies the tile's biome.
func (w *World) BiomeAt(tx, ty int) Biome {
	return w.gen.BiomeAt(tx, ty)
}

// SolidAt reports whether the tile blocks movement. A player block
// overrides terrain: walls are solid, anything else placed is passable.
func (w *World) SolidAt(tx, ty int) bool {
	if kind, ok := w.blocks[TileKey{X: tx, Y: ty}]; ok {
		return kind == BlockWall
	}
	return w.TileAt(tx, ty).Solid()
}

// RectBlocked reports whether any tile under the rectangle is solid.
// The rectangle is in world units with an exclusive right and bottom
// edge, so a 32-wide rect starting at 0 covers only tile column 0.
func (w *World) RectBlocked(left, top, width, height int) bool {
	minX := floorDiv(left, TileSize)
	maxX := floorDiv(left+width-1, TileSize)
	minY := floorDiv(top, TileSize)
	maxY := floorDiv(top+height-1, TileSize)
	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			if w.SolidAt(tx, ty) {
				return true
			}
		}
	}
	return false
}

// RevealAround uncovers fog of war in a square around a world position.
func (w *World) RevealAround(x, y float64) {
	tx, ty := TileOf(x), TileOf(y)
	r := w.params.RevealRadius
	for oy := -r; oy <= r; oy++ {
		for ox := -r; ox <= r; ox++ {
			w.discovered[TileKey{X: tx + ox, Y: ty + oy}] = struct{}{}
		}
	}
}

// Discovered reports whether the tile has been uncovered.
func (w *World) Discovered(tx, ty int) bool {
	_, ok := w.discovered[TileKey{X: tx, Y: ty}]
	return ok
}

func (w *World) DiscoveredCount() int {
	return len(w.discovered)
}

// PlaceBlock puts a player block on a tile, replacing any existing one.
func (w *World) PlaceBlock(tx, ty int, kind BlockKind) {
	w.blocks[TileKey{X: tx, Y: ty}] = kind
}

// RemoveBlock clears a player block and reports whether one was there.
func (w *World) RemoveBlock(tx, ty int) bool {
	key := TileKey{X: tx, Y: ty}
	if _, ok := w.blocks[key]; !ok {
		return false
	}
	delete(w.blocks, key)
	return true
}

// BlockAt returns the player block on a tile, if any.
func (w *World) BlockAt(tx, ty int) (BlockKind, bool) {
	kind, ok := w.blocks[TileKey{X: tx, Y: ty}]
	return kind, ok
}

func (w *World) BlockCount() int {
	return len(w.blocks)
}

// WallCount returns how many placed blocks are walls.
func (w *World) WallCount() int {
	n := 0
	for _, kind := range w.blocks {
		if kind == BlockWall {
			n++
		}
	}
	return n
}

// BlockKeys returns placed block positions in sorted order. Callers that
// pick a random block index into this list so the pick is reproducible.
func (w *World) BlockKeys() []TileKey {
	keys := make([]TileKey, 0, len(w.blocks))
	for k := range w.blocks {
		keys = append(keys, k)
	}
	sortTileKeys(keys)
	return keys
}

// Advance moves the day clock and rolls weather when its timer lapses.
func (w *World) Advance(dt float64) {
	w.timeOfDay = math.Mod(w.timeOfDay+dt*w.params.ClockRate, 24.0)
	w.weatherTimer -= dt
	if w.weatherTimer <= 0 {
		w.weatherTimer = w.params.WeatherMin + w.rng.Float64()*(w.params.WeatherMax-w.params.WeatherMin)
		w.weather = weatherPool[w.rng.Intn(len(weatherPool))]
	}
}

func (w *World) TimeOfDay() float64 {
	return w.timeOfDay
}

// IsNight reports whether the clock is outside the 6:00-19:00 day window.
func (w *World) IsNight() bool {
	return w.timeOfDay < 6 || w.timeOfDay > 19
}

func (w *World) Weather() Weather {
	return w.weather
}
