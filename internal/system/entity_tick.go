package system

import (
	"time"

	coresys "github.com/otherworld/sim/internal/core/system"
	"github.com/otherworld/sim/internal/entity"
)

// EntitySystem runs the actor AI state machines and the proximity
// spawner. Phase 2 (Update).
type EntitySystem struct {
	sim *entity.Simulation
}

func NewEntitySystem(sim *entity.Simulation) *EntitySystem {
	return &EntitySystem{sim: sim}
}

func (s *EntitySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EntitySystem) Update(dt time.Duration) {
	s.sim.Update(dt.Seconds())
}

// CleanupSystem compacts dead actors out of the arena after every
// damage source has run. Phase 6 (Cleanup).
type CleanupSystem struct {
	sim *entity.Simulation
}

func NewCleanupSystem(sim *entity.Simulation) *CleanupSystem {
	return &CleanupSystem{sim: sim}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	s.sim.Sweep()
}
