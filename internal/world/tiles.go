package world

// Tile is a terrain surface kind.
type Tile string

const (
	TileGrass   Tile = "grass"
	TileWater   Tile = "water"
	TileStone   Tile = "stone"
	TileDirt    Tile = "dirt"
	TileSand    Tile = "sand"
	TileDungeon Tile = "dungeon"
	TileRuins   Tile = "ruins"
)

// Solid reports whether the terrain itself blocks movement.
func (t Tile) Solid() bool {
	return t == TileWater || t == TileStone
}

// Biome classifies a region of the map.
type Biome string

const (
	BiomePlains       Biome = "plains"
	BiomeForest       Biome = "forest"
	BiomeMountains    Biome = "mountains"
	BiomeDungeon      Biome = "dungeon"
	BiomeVillageRuins Biome = "village_ruins"
)

// Weather is the current sky state.
type Weather string

const (
	WeatherClear      Weather = "clear"
	WeatherRain       Weather = "rain"
	WeatherArcaneWind Weather = "arcane_wind"
)

// weatherPool weights clear and rain double against arcane wind.
var weatherPool = []Weather{
	WeatherClear, WeatherClear,
	WeatherRain, WeatherRain,
	WeatherArcaneWind,
}

// PropKind is a decorative chunk feature.
type PropKind string

const (
	PropTree    PropKind = "tree"
	PropRock    PropKind = "rock"
	PropObelisk PropKind = "obelisk"
	PropPillar  PropKind = "pillar"
)

// Prop is a feature anchored to a world tile.
type Prop struct {
	Kind PropKind
	TX   int
	TY   int
}

// BlockKind is a player-placed structure on a tile.
type BlockKind string

// BlockWall is the only structural block; it overrides terrain solidity.
const BlockWall BlockKind = "wall"
