package system

import "time"

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: apply queued external commands
	PhasePreUpdate               // 1: world clock, weather, chunk warming
	PhaseUpdate                  // 2: entity AI and movement
	PhasePostUpdate              // 3: event generation and resolution
	PhaseOutput                  // 4: deliver buffered signals
	PhasePersist                 // 5: snapshot autosave
	PhaseCleanup                 // 6: remove dead entities
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
