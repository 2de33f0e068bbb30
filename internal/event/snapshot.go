package event

// Snapshot is the persisted engine state. Active events carry their
// full template output so restored saves keep exact titles and rewards.
type Snapshot struct {
	NextEventID     int          `json:"next_event_id"`
	GameMinutes     float64      `json:"game_minutes"`
	NextEventIn     float64      `json:"next_event_in"`
	NextFlavorIn    float64      `json:"next_flavor_in"`
	ActiveEvents    []WorldEvent `json:"active_events"`
	CompletedEvents []string     `json:"completed_events"`
}

func (e *Engine) Snapshot() Snapshot {
	active := make([]WorldEvent, 0, len(e.active))
	for _, ev := range e.active {
		if !ev.Resolved {
			active = append(active, *ev)
		}
	}
	completed := e.completed
	if len(completed) > completedKept {
		completed = completed[len(completed)-completedKept:]
	}
	return Snapshot{
		NextEventID:     e.nextID,
		GameMinutes:     e.gameMinutes,
		NextEventIn:     e.nextEventIn,
		NextFlavorIn:    e.nextFlavorIn,
		ActiveEvents:    active,
		CompletedEvents: append([]string(nil), completed...),
	}
}

// Restore replaces engine state from a snapshot. Missing fields fall
// back to sane defaults: the ID counter never moves backwards and zero
// timers are re-randomized rather than firing immediately.
func (e *Engine) Restore(snap Snapshot) {
	if snap.NextEventID > 0 {
		e.nextID = snap.NextEventID
	}
	e.gameMinutes = snap.GameMinutes
	e.nextEventIn = snap.NextEventIn
	if e.nextEventIn <= 0 {
		e.nextEventIn = e.uniform(eventGapMin, eventGapMax)
	}
	e.nextFlavorIn = snap.NextFlavorIn
	if e.nextFlavorIn <= 0 {
		e.nextFlavorIn = e.uniform(flavorGapMin, flavorGapMax)
	}

	e.active = e.active[:0]
	for _, ev := range snap.ActiveEvents {
		if ev.Resolved {
			continue
		}
		restored := ev
		if restored.ID >= e.nextID {
			e.nextID = restored.ID + 1
		}
		e.active = append(e.active, &restored)
	}

	e.completed = append([]string(nil), snap.CompletedEvents...)
	if len(e.completed) > completedKept {
		e.completed = e.completed[len(e.completed)-completedKept:]
	}
}
