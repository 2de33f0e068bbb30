// Package system holds the per-tick systems the runner executes in
// phase order: world clock, entity AI, event engine, signal dispatch,
// snapshot autosave and the dead-actor sweep.
package system

import (
	"time"

	coresys "github.com/otherworld/sim/internal/core/system"
	"github.com/otherworld/sim/internal/player"
	"github.com/otherworld/sim/internal/world"
)

// warmRadius is how many chunks around the player stay generated.
const warmRadius = 2

// WorldSystem advances the player's timers, the day/weather clock and
// keeps terrain generated and revealed around the player.
// Phase 1 (PreUpdate).
type WorldSystem struct {
	world  *world.World
	player *player.Player
}

func NewWorldSystem(w *world.World, pl *player.Player) *WorldSystem {
	return &WorldSystem{world: w, player: pl}
}

func (s *WorldSystem) Phase() coresys.Phase { return coresys.PhasePreUpdate }

func (s *WorldSystem) Update(dt time.Duration) {
	s.player.Tick(dt.Seconds())
	s.world.Advance(dt.Seconds())
	s.world.EnsureAround(s.player.X, s.player.Y, warmRadius)
	s.world.RevealAround(s.player.X, s.player.Y)
}
