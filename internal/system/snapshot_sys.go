package system

import (
	"context"
	"time"

	coresys "github.com/otherworld/sim/internal/core/system"
	"github.com/otherworld/sim/internal/event"
	"github.com/otherworld/sim/internal/persist"
	"github.com/otherworld/sim/internal/player"
	"github.com/otherworld/sim/internal/world"
	"go.uber.org/zap"
)

// SnapshotSaver stores a combined snapshot under a slot name.
// *persist.SnapshotRepo implements it.
type SnapshotSaver interface {
	Save(ctx context.Context, slot string, snap *persist.Snapshot) error
}

// SnapshotSystem autosaves the combined world/events/player snapshot
// every interval ticks. Best effort: a failed save is logged and the
// simulation carries on. Phase 5 (Persist).
type SnapshotSystem struct {
	world  *world.World
	player *player.Player
	engine *event.Engine
	saver  SnapshotSaver
	slot   string
	log    *zap.Logger

	tickCount int
	interval  int
}

func NewSnapshotSystem(w *world.World, pl *player.Player, engine *event.Engine,
	saver SnapshotSaver, slot string, intervalTicks int, log *zap.Logger) *SnapshotSystem {
	return &SnapshotSystem{
		world:    w,
		player:   pl,
		engine:   engine,
		saver:    saver,
		slot:     slot,
		log:      log,
		interval: intervalTicks,
	}
}

func (s *SnapshotSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *SnapshotSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	s.SaveNow()
}

// SaveNow writes a snapshot immediately. Called on shutdown so nothing
// since the last autosave is lost.
func (s *SnapshotSystem) SaveNow() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snap := &persist.Snapshot{
		World:  s.world.Snapshot(),
		Events: s.engine.Snapshot(),
		Player: s.player.Snapshot(),
	}
	if err := s.saver.Save(ctx, s.slot, snap); err != nil {
		s.log.Error("snapshot autosave failed", zap.String("slot", s.slot), zap.Error(err))
		return
	}
	s.log.Debug("snapshot saved", zap.String("slot", s.slot),
		zap.Int("discovered", len(snap.World.Discovered)),
		zap.Int("active_events", len(snap.Events.ActiveEvents)))
}
