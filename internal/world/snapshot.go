package world

import (
	"fmt"
	"sort"
)

// Snapshot is the persisted world state. Terrain is never stored; it
// regenerates from the seed. Discovered tiles are sorted and capped so
// snapshots of the same state are byte-identical.
type Snapshot struct {
	Seed         int64             `json:"seed"`
	TimeOfDay    float64           `json:"time_of_day"`
	Weather      string            `json:"weather"`
	PlayerBlocks map[string]string `json:"player_blocks"`
	Discovered   []string          `json:"discovered"`
}

func (w *World) Snapshot() Snapshot {
	blocks := make(map[string]string, len(w.blocks))
	for k, kind := range w.blocks {
		blocks[k.String()] = string(kind)
	}

	keys := make([]TileKey, 0, len(w.discovered))
	for k := range w.discovered {
		keys = append(keys, k)
	}
	sortTileKeys(keys)
	if len(keys) > w.params.MaxDiscovered {
		keys = keys[:w.params.MaxDiscovered]
	}
	discovered := make([]string, len(keys))
	for i, k := range keys {
		discovered[i] = k.String()
	}

	return Snapshot{
		Seed:         w.gen.seed,
		TimeOfDay:    w.timeOfDay,
		Weather:      string(w.weather),
		PlayerBlocks: blocks,
		Discovered:   discovered,
	}
}

// Restore replaces world state from a snapshot. The chunk cache is
// dropped so terrain regenerates under the restored seed.
func (w *World) Restore(snap Snapshot) error {
	if snap.Seed != w.gen.seed {
		w.gen = NewGenerator(snap.Seed, w.params.Landmarks...)
	}
	w.chunks = make(map[ChunkKey]*Chunk)

	w.timeOfDay = snap.TimeOfDay
	if snap.Weather != "" {
		w.weather = Weather(snap.Weather)
	}

	w.blocks = make(map[TileKey]BlockKind, len(snap.PlayerBlocks))
	for s, kind := range snap.PlayerBlocks {
		key, err := ParseTileKey(s)
		if err != nil {
			return fmt.Errorf("player block: %w", err)
		}
		w.blocks[key] = BlockKind(kind)
	}

	w.discovered = make(map[TileKey]struct{}, len(snap.Discovered))
	for _, s := range snap.Discovered {
		key, err := ParseTileKey(s)
		if err != nil {
			return fmt.Errorf("discovered tile: %w", err)
		}
		w.discovered[key] = struct{}{}
	}
	return nil
}

func sortTileKeys(keys []TileKey) {
	// Same order as BlockKeys: X then Y.
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].X != keys[j].X {
			return keys[i].X < keys[j].X
		}
		return keys[i].Y < keys[j].Y
	})
}
