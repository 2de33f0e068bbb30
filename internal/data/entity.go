package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// EntityTemplate holds the base statline for an entity kind.
type EntityTemplate struct {
	Kind    string  `yaml:"kind"`
	Faction string  `yaml:"faction"`
	HP      int     `yaml:"hp"`
	Speed   float64 `yaml:"speed"`
	Radius  float64 `yaml:"radius"`
}

// SpawnEntry defines one initial placement: either Count copies scattered
// uniformly in [-Spread, Spread] on both axes, or a single fixed position
// when Spread is zero.
type SpawnEntry struct {
	Kind    string  `yaml:"kind"`
	Faction string  `yaml:"faction"`
	Count   int     `yaml:"count"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Spread  int     `yaml:"spread"`
	HP      int     `yaml:"hp"`
	Speed   float64 `yaml:"speed"`
	Radius  float64 `yaml:"radius"`
}

type entityTableFile struct {
	Wild   []EntityTemplate `yaml:"wild"`
	Allies []EntityTemplate `yaml:"allies"`
}

type spawnListFile struct {
	Spawns []SpawnEntry `yaml:"spawns"`
}

// EntityTable holds statlines for ring-spawned wildlife and summonable
// allies. The wild pool is ordered; the spawner indexes into it with a
// seeded draw.
type EntityTable struct {
	wild   []EntityTemplate
	allies map[string]EntityTemplate
}

// LoadEntityTable loads statlines from a YAML file.
func LoadEntityTable(path string) (*EntityTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entity table: %w", err)
	}
	var f entityTableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse entity table: %w", err)
	}
	return newEntityTable(f.Wild, f.Allies), nil
}

func newEntityTable(wild, allies []EntityTemplate) *EntityTable {
	t := &EntityTable{wild: wild, allies: make(map[string]EntityTemplate, len(allies))}
	for _, a := range allies {
		t.allies[a.Kind] = a
	}
	return t
}

// Wild returns the ring-spawn pool.
func (t *EntityTable) Wild() []EntityTemplate {
	return t.wild
}

// Ally returns the statline for a summonable ally kind. Unknown kinds get
// a generic ally statline rather than an error.
func (t *EntityTable) Ally(kind string) EntityTemplate {
	if tpl, ok := t.allies[kind]; ok {
		return tpl
	}
	return EntityTemplate{Kind: kind, Faction: "allies", HP: 90, Speed: 120, Radius: 10}
}

// Count returns the number of loaded statlines.
func (t *EntityTable) Count() int {
	return len(t.wild) + len(t.allies)
}

// LoadSpawnList loads initial placements from a YAML file.
func LoadSpawnList(path string) ([]SpawnEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn list: %w", err)
	}
	var f spawnListFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse spawn list: %w", err)
	}
	return f.Spawns, nil
}

func DefaultEntityTable() *EntityTable {
	return newEntityTable(
		[]EntityTemplate{
			{Kind: "slime", Faction: "monsters", HP: 25, Speed: 70, Radius: 10},
			{Kind: "goblin", Faction: "monsters", HP: 35, Speed: 90, Radius: 12},
			{Kind: "wolf", Faction: "monsters", HP: 30, Speed: 108, Radius: 10},
		},
		[]EntityTemplate{
			{Kind: "spirit", Faction: "allies", HP: 95, Speed: 125, Radius: 10},
			{Kind: "wolf_ally", Faction: "allies", HP: 120, Speed: 140, Radius: 11},
			{Kind: "knight", Faction: "allies", HP: 170, Speed: 95, Radius: 13},
		},
	)
}

// DefaultSpawns seeds the opening population: scattered wildlife, a
// handful of villagers near the origin and two fixed bosses far out.
func DefaultSpawns() []SpawnEntry {
	return []SpawnEntry{
		{Kind: "slime", Faction: "monsters", Count: 12, Spread: 700, HP: 26, Speed: 70, Radius: 11},
		{Kind: "goblin", Faction: "monsters", Count: 6, Spread: 900, HP: 38, Speed: 88, Radius: 12},
		{Kind: "wolf", Faction: "monsters", Count: 5, Spread: 800, HP: 32, Speed: 105, Radius: 10},
		{Kind: "villager", Faction: "villagers", Count: 2, Spread: 400, HP: 70, Speed: 68, Radius: 12},
		{Kind: "merchant", Faction: "villagers", Count: 1, Spread: 400, HP: 70, Speed: 68, Radius: 12},
		{Kind: "companion", Faction: "villagers", Count: 1, Spread: 400, HP: 70, Speed: 68, Radius: 12},
		{Kind: "dragon", Faction: "boss", Count: 1, X: 620, Y: -420, HP: 360, Speed: 95, Radius: 20},
		{Kind: "demon_lord", Faction: "boss", Count: 1, X: -760, Y: 500, HP: 460, Speed: 75, Radius: 22},
	}
}
