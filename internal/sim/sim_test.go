package sim

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/otherworld/sim/internal/config"
	"github.com/otherworld/sim/internal/data"
)

const tick = 200 * time.Millisecond

func newSim(t *testing.T, seed int64, spawns []data.SpawnEntry) *Simulation {
	t.Helper()
	cfg := config.Default()
	cfg.Server.Seed = seed
	return New(cfg, Deps{
		Content: data.DefaultContent(),
		Table:   data.DefaultEntityTable(),
		Spawns:  spawns,
	})
}

func TestSameSeedSameTrace(t *testing.T) {
	a := newSim(t, 42, data.DefaultSpawns())
	b := newSim(t, 42, data.DefaultSpawns())
	for i := 0; i < 300; i++ {
		a.Step(tick)
		b.Step(tick)
	}

	rawA, err := json.Marshal(a.Snapshot())
	require.NoError(t, err)
	rawB, err := json.Marshal(b.Snapshot())
	require.NoError(t, err)
	require.Equal(t, string(rawA), string(rawB))

	actorsA, actorsB := a.Entities.Actors(), b.Entities.Actors()
	require.Equal(t, len(actorsA), len(actorsB))
	for i := range actorsA {
		require.Equal(t, actorsA[i].X, actorsB[i].X, "actor %d drifted", i)
		require.Equal(t, actorsA[i].Y, actorsB[i].Y, "actor %d drifted", i)
	}
}

func TestDifferentSeedDiverges(t *testing.T) {
	a := newSim(t, 42, data.DefaultSpawns())
	b := newSim(t, 1337, data.DefaultSpawns())
	for i := 0; i < 50; i++ {
		a.Step(tick)
		b.Step(tick)
	}

	type pos struct{ X, Y float64 }
	collect := func(s *Simulation) []pos {
		var out []pos
		for _, actor := range s.Entities.Actors() {
			out = append(out, pos{actor.X, actor.Y})
		}
		return out
	}
	require.NotEqual(t, collect(a), collect(b))
}

func TestLootFeedsProgression(t *testing.T) {
	spawns := []data.SpawnEntry{
		{Kind: "slime", Faction: "monsters", X: 5000, Y: 5000, HP: 10, Speed: 0, Radius: 10},
	}
	s := newSim(t, 42, spawns)
	actors := s.Entities.Actors()
	require.Len(t, actors, 1)

	s.Entities.Damage(actors[0], 999)
	// Tick 1 sweeps the corpse and buffers the loot signal; tick 2
	// dispatches it to the reward subscriber.
	s.Step(tick)
	s.Step(tick)

	require.Equal(t, 14, s.Player.Exp)
	total := 0
	for _, n := range s.Player.Items {
		total += n
	}
	require.Equal(t, 17, total, "one loot item on top of the starting 16")
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	a := newSim(t, 42, data.DefaultSpawns())
	for i := 0; i < 120; i++ {
		a.Step(tick)
	}
	a.World.PlaceBlock(5, 5, "wall")
	snap := a.Snapshot()

	b := newSim(t, 42, nil)
	require.NoError(t, b.Restore(snap))
	require.Equal(t, snap, b.Snapshot())
	require.True(t, b.World.SolidAt(5, 5))
	require.Equal(t, a.Player.Level, b.Player.Level)
}

func TestTickOrderEventsSeeUpdatedWorld(t *testing.T) {
	// The event engine runs after the world clock: advance to night and
	// the night spark must be able to fire on the same tick. Forcing the
	// chance to 1 makes the first night tick generate an event.
	cfg := config.Default()
	cfg.Server.Seed = 42
	cfg.World.DayStart = 5.0 // already night (< 6:00)
	cfg.Events.NightSpark = 1.0
	s := New(cfg, Deps{Content: data.DefaultContent(), Table: data.DefaultEntityTable()})

	require.True(t, s.World.IsNight())
	s.Step(tick)
	require.NotEmpty(t, s.Events.ActiveEvents())
}

func TestConfigParamsReachSubsystems(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Seed = 7
	cfg.Entities.MaxPopulation = 3
	cfg.Entities.SpawnChance = 1.0
	s := New(cfg, Deps{Content: data.DefaultContent(), Table: data.DefaultEntityTable()})

	for i := 0; i < 20; i++ {
		s.Step(tick)
	}
	require.LessOrEqual(t, s.Entities.Count(), 4, "population cap ignored")
}
