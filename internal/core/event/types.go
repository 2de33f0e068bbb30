package event

// Signals crossing system boundaries. Systems emit, the facade subscribes.

// LootDropped fires when a dead entity is swept from the arena.
type LootDropped struct {
	Item string
	X, Y float64
	Exp  int
}

// DialogueSpoken fires when a friendly entity near the player speaks.
type DialogueSpoken struct {
	Speaker string
	Line    string
}

// EventOpened fires when the event engine spawns a new active event.
type EventOpened struct {
	ID    int
	Title string
}

// EventResolved fires when an active event completes.
type EventResolved struct {
	ID      int
	Title   string
	Summary string
}

// EventExpired fires when an active event times out unresolved.
type EventExpired struct {
	ID    int
	Title string
}

// FlavorLine fires on the ambient flavor timer.
type FlavorLine struct {
	Text string
}
