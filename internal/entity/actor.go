// Package entity runs the per-tick AI for every non-player actor: the
// wander/chase/social/assist state machine, contact combat, the
// proximity spawner and the faction relation table.
package entity

// Faction groups actors sharing hostility and assistance rules.
type Faction string

const (
	FactionMonsters  Faction = "monsters"
	FactionVillagers Faction = "villagers"
	FactionBoss      Faction = "boss"
	FactionAllies    Faction = "allies"
	// FactionPlayer only appears in the relation table; the player is
	// not an actor.
	FactionPlayer Faction = "player"
)

// Hostile reports whether the faction attacks the player on sight.
func (f Faction) Hostile() bool {
	return f == FactionMonsters || f == FactionBoss
}

// State is an actor's current AI mode.
type State string

const (
	StateWander State = "wander"
	StateChase  State = "chase"
	StateSocial State = "social"
	StateAssist State = "assist"
)

// Kind names an actor's species. String-typed like world tiles; the
// serialization boundary and content banks use the same identifiers.
type Kind string

const (
	KindSlime     Kind = "slime"
	KindGoblin    Kind = "goblin"
	KindWolf      Kind = "wolf"
	KindVillager  Kind = "villager"
	KindMerchant  Kind = "merchant"
	KindCompanion Kind = "companion"
	KindDragon    Kind = "dragon"
	KindDemonLord Kind = "demon_lord"
	KindSpirit    Kind = "spirit"
	KindWolfAlly  Kind = "wolf_ally"
	KindKnight    Kind = "knight"
)

// Actor is one simulated creature. Owned by the Simulation arena;
// everything else holds at most a borrowed pointer for one tick.
type Actor struct {
	Kind    Kind
	Faction Faction

	X, Y   float64
	HP     int
	HPMax  int
	Speed  float64
	Radius float64

	State      State
	DirX, DirY float64

	// aiTimer gates state re-evaluation so actors stay desynchronized;
	// socialCooldown spaces out dialogue lines.
	aiTimer        float64
	socialCooldown float64
}

// Alive reports whether the actor still takes part in the simulation.
// Dead actors linger in the arena until the end-of-tick sweep.
func (a *Actor) Alive() bool {
	return a.HP > 0
}
