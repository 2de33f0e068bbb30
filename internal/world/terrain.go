package world

import (
	"math"
	"math/rand"
)

// Landmark pins a biome inside a fixed radius, overriding noise
// classification. Used for designed points of interest like a castle.
type Landmark struct {
	Name   string
	TX, TY int
	Radius int
	Biome  Biome
}

// Contains reports whether the tile falls inside the landmark circle.
func (l Landmark) Contains(tx, ty int) bool {
	dx, dy := tx-l.TX, ty-l.TY
	return dx*dx+dy*dy <= l.Radius*l.Radius
}

// Generator produces terrain deterministically from the seed. The same
// seed always yields the same biomes, tiles and props at every
// coordinate, so chunks can be dropped and regenerated freely.
type Generator struct {
	seed      int64
	landmarks []Landmark
}

func NewGenerator(seed int64, landmarks ...Landmark) *Generator {
	return &Generator{seed: seed, landmarks: landmarks}
}

// Noise is a cheap layered trig field in [-1, 1]. The seed shifts the
// phase of each layer so different seeds produce unrelated maps.
func (g *Generator) Noise(x, y int, freq float64) float64 {
	s := float64(g.seed)
	return (math.Sin((float64(x)+s*3)*freq) +
		math.Cos((float64(y)-s*5)*freq*0.8) +
		math.Sin(float64(x+y)*freq*0.65)) / 3.0
}

// BiomeAt classifies the tile. Landmark regions win outright; otherwise
// two noise octaves decide: the first splits mountains, forest and
// plains by elevation bands, the second separates ruins from dungeon in
// the high band.
func (g *Generator) BiomeAt(tx, ty int) Biome {
	for _, l := range g.landmarks {
		if l.Contains(tx, ty) {
			return l.Biome
		}
	}
	n := g.Noise(tx, ty, 0.06)
	switch {
	case n < -0.22:
		return BiomeMountains
	case n < -0.05:
		return BiomeForest
	case n < 0.18:
		return BiomePlains
	}
	if g.Noise(tx+999, ty-431, 0.08) > 0.25 {
		return BiomeVillageRuins
	}
	return BiomeDungeon
}

// cellRNG returns the per-tile random stream used for prop placement.
// The classic spatial hash keys it to tile coordinates and seed only.
func (g *Generator) cellRNG(tx, ty int) *rand.Rand {
	v := int64(tx)*73856093 ^ int64(ty)*19349663 ^ g.seed*83492791
	return rand.New(rand.NewSource(v))
}

// Generate builds the chunk at chunk coordinates (cx, cy).
func (g *Generator) Generate(cx, cy int) *Chunk {
	c := &Chunk{tiles: make([]Tile, ChunkSize*ChunkSize)}
	for ly := 0; ly < ChunkSize; ly++ {
		for lx := 0; lx < ChunkSize; lx++ {
			tx := cx*ChunkSize + lx
			ty := cy*ChunkSize + ly

			biome := g.BiomeAt(tx, ty)
			val := g.Noise(tx*2, ty*2, 0.1)

			var tile Tile
			switch biome {
			case BiomePlains:
				tile = TileDirt
				if val > -0.1 {
					tile = TileGrass
				}
			case BiomeForest:
				tile = TileDirt
				if val > -0.2 {
					tile = TileGrass
				}
				if g.cellRNG(tx, ty).Float64() < 0.08 {
					c.props = append(c.props, Prop{Kind: PropTree, TX: tx, TY: ty})
				}
			case BiomeMountains:
				tile = TileDirt
				if val > -0.35 {
					tile = TileStone
				}
				if g.cellRNG(tx, ty).Float64() < 0.05 {
					c.props = append(c.props, Prop{Kind: PropRock, TX: tx, TY: ty})
				}
			case BiomeDungeon:
				tile = TileStone
				if val > -0.3 {
					tile = TileDungeon
				}
				if g.cellRNG(tx, ty).Float64() < 0.025 {
					c.props = append(c.props, Prop{Kind: PropObelisk, TX: tx, TY: ty})
				}
			default:
				tile = TileDirt
				if val > -0.2 {
					tile = TileRuins
				}
				if g.cellRNG(tx, ty).Float64() < 0.04 {
					c.props = append(c.props, Prop{Kind: PropPillar, TX: tx, TY: ty})
				}
			}

			// Rivers and lakes cut across every biome.
			if g.Noise(tx-350, ty+177, 0.12) > 0.45 {
				tile = TileWater
			}

			c.tiles[ly*ChunkSize+lx] = tile
		}
	}
	return c
}
