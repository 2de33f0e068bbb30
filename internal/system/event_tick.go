package system

import (
	"time"

	coresys "github.com/otherworld/sim/internal/core/system"
	"github.com/otherworld/sim/internal/entity"
	"github.com/otherworld/sim/internal/event"
	"github.com/otherworld/sim/internal/player"
	"github.com/otherworld/sim/internal/world"
)

// EventSystem drives the procedural event engine after the world and
// every actor have updated, so events react to this tick's state.
// Phase 3 (PostUpdate).
type EventSystem struct {
	engine *event.Engine
	world  *world.World
	player *player.Player
	ents   *entity.Simulation
}

func NewEventSystem(engine *event.Engine, w *world.World, pl *player.Player, ents *entity.Simulation) *EventSystem {
	return &EventSystem{engine: engine, world: w, player: pl, ents: ents}
}

func (s *EventSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *EventSystem) Update(dt time.Duration) {
	s.engine.Update(dt.Seconds(), s.player, s.world, s.ents)
}
