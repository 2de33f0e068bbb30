package system

import (
	"time"

	coreevent "github.com/otherworld/sim/internal/core/event"
	coresys "github.com/otherworld/sim/internal/core/system"
)

// DispatchSystem delivers the signals buffered during this tick to
// their subscribers. Signals emitted from inside a handler land in the
// next tick's batch. Phase 4 (Output).
type DispatchSystem struct {
	bus *coreevent.Bus
}

func NewDispatchSystem(bus *coreevent.Bus) *DispatchSystem {
	return &DispatchSystem{bus: bus}
}

func (s *DispatchSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *DispatchSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()
}
