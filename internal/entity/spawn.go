package entity

import (
	"math"

	"github.com/otherworld/sim/internal/data"
)

// Inject adds an externally built actor to the arena: raid spawns,
// settler arrival. The AI timer is staggered so a batch of injected
// actors does not re-evaluate in lockstep.
func (s *Simulation) Inject(a *Actor) {
	if a.HPMax == 0 {
		a.HPMax = a.HP
	}
	if a.State == "" {
		a.State = StateWander
	}
	if a.aiTimer == 0 {
		a.aiTimer = s.rng.Float64() * aiTimerMax
	}
	s.actors = append(s.actors, a)
}

// SummonAlly spawns an ally of the given kind at a world position and
// returns it. Allies enter in assist and stay there.
func (s *Simulation) SummonAlly(x, y float64, kind Kind) *Actor {
	tpl := s.table.Ally(string(kind))
	a := &Actor{
		Kind:    Kind(tpl.Kind),
		Faction: Faction(tpl.Faction),
		X:       x,
		Y:       y,
		HP:      tpl.HP,
		HPMax:   tpl.HP,
		Speed:   tpl.Speed,
		Radius:  tpl.Radius,
		State:   StateAssist,
	}
	s.Inject(a)
	return a
}

// Populate seeds the opening population from spawn entries. Entries
// with a spread scatter Count copies uniformly around their anchor;
// zero spread places them exactly.
func (s *Simulation) Populate(entries []data.SpawnEntry) {
	for _, e := range entries {
		count := e.Count
		if count < 1 {
			count = 1
		}
		for i := 0; i < count; i++ {
			x, y := e.X, e.Y
			if e.Spread > 0 {
				x += (s.rng.Float64()*2 - 1) * float64(e.Spread)
				y += (s.rng.Float64()*2 - 1) * float64(e.Spread)
			}
			s.Inject(&Actor{
				Kind:    Kind(e.Kind),
				Faction: Faction(e.Faction),
				X:       x,
				Y:       y,
				HP:      e.HP,
				HPMax:   e.HP,
				Speed:   e.Speed,
				Radius:  e.Radius,
			})
		}
	}
}

// spawnNearPlayer rolls the proximity spawner: while under the
// population cap, a small per-tick chance drops one wild hostile on a
// ring around the player.
func (s *Simulation) spawnNearPlayer() {
	if s.Count() > s.params.MaxPopulation {
		return
	}
	if s.rng.Float64() >= s.params.SpawnChance {
		return
	}
	wild := s.table.Wild()
	if len(wild) == 0 {
		return
	}
	tpl := wild[s.rng.Intn(len(wild))]
	ang := s.rng.Float64() * 2 * math.Pi
	d := s.params.SpawnRingMin + s.rng.Float64()*(s.params.SpawnRingMax-s.params.SpawnRingMin)
	s.Inject(&Actor{
		Kind:    Kind(tpl.Kind),
		Faction: Faction(tpl.Faction),
		X:       s.player.X + math.Cos(ang)*d,
		Y:       s.player.Y + math.Sin(ang)*d,
		HP:      tpl.HP,
		HPMax:   tpl.HP,
		Speed:   tpl.Speed,
		Radius:  tpl.Radius,
	})
}
