package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultEntityTable(t *testing.T) {
	tbl := DefaultEntityTable()
	if len(tbl.Wild()) != 3 {
		t.Fatalf("wild pool size %d, want 3", len(tbl.Wild()))
	}
	knight := tbl.Ally("knight")
	if knight.HP != 170 || knight.Speed != 95 || knight.Radius != 13 {
		t.Fatalf("knight statline %+v", knight)
	}
	generic := tbl.Ally("golem")
	if generic.Kind != "golem" || generic.HP != 90 || generic.Faction != "allies" {
		t.Fatalf("fallback ally %+v", generic)
	}
}

func TestDefaultSpawnsShape(t *testing.T) {
	spawns := DefaultSpawns()
	var monsters, bosses, villagers int
	for _, s := range spawns {
		switch s.Faction {
		case "monsters":
			monsters += s.Count
		case "boss":
			bosses += s.Count
			if s.Spread != 0 {
				t.Fatalf("boss %s should be fixed placement", s.Kind)
			}
		case "villagers":
			villagers += s.Count
		}
	}
	if monsters != 23 || bosses != 2 || villagers != 4 {
		t.Fatalf("population monsters=%d bosses=%d villagers=%d", monsters, bosses, villagers)
	}
}

func TestLoadEntityTableAndSpawnList(t *testing.T) {
	dir := t.TempDir()
	entPath := filepath.Join(dir, "entities.yaml")
	entBody := `
wild:
  - kind: bat
    faction: monsters
    hp: 12
    speed: 130
    radius: 7
allies:
  - kind: golem
    faction: allies
    hp: 240
    speed: 60
    radius: 16
`
	if err := os.WriteFile(entPath, []byte(entBody), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	tbl, err := LoadEntityTable(entPath)
	if err != nil {
		t.Fatalf("LoadEntityTable: %v", err)
	}
	if tbl.Count() != 2 {
		t.Fatalf("count %d, want 2", tbl.Count())
	}
	if got := tbl.Ally("golem"); got.HP != 240 {
		t.Fatalf("golem %+v", got)
	}

	spawnPath := filepath.Join(dir, "spawns.yaml")
	spawnBody := `
spawns:
  - kind: bat
    faction: monsters
    count: 4
    spread: 200
    hp: 12
    speed: 130
    radius: 7
`
	if err := os.WriteFile(spawnPath, []byte(spawnBody), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	spawns, err := LoadSpawnList(spawnPath)
	if err != nil {
		t.Fatalf("LoadSpawnList: %v", err)
	}
	if len(spawns) != 1 || spawns[0].Count != 4 || spawns[0].Kind != "bat" {
		t.Fatalf("spawns %+v", spawns)
	}
}
