package entity

import (
	"math"
	"math/rand"

	coreevent "github.com/otherworld/sim/internal/core/event"
	"github.com/otherworld/sim/internal/data"
	"github.com/otherworld/sim/internal/pathfind"
	"github.com/otherworld/sim/internal/player"
	"github.com/otherworld/sim/internal/world"
)

// Behavior tuning. Distances are world units.
const (
	chaseRange  = 300.0 // hostiles this close to the player start chasing
	socialRange = 130.0 // villagers this close go social

	meleeRange      = 28.0
	meleeDamage     = 3
	bossMeleeDamage = 6

	dialogueRange = 80.0

	assistMonsterRange = 260.0
	assistBossRange    = 300.0
	assistDamage       = 5
	assistContactPad   = 10.0
	trailSpeed         = 0.7
	trailDistance      = 6.33 // stop trailing the player inside this

	wanderSpeed = 0.45

	aiTimerMin = 0.6
	aiTimerMax = 1.6
)

// lootPool is drawn from uniformly when a hostile dies.
var lootPool = []string{"wood", "ore", "core", "gold"}

const (
	lootExpMonster = 14
	lootExpBoss    = 60
)

// Params are the simulation tuning knobs.
type Params struct {
	MaxPopulation    int     // spawner stops above this many live actors
	SpawnChance      float64 // per-tick roll while under the cap
	SpawnRingMin     float64 // spawn distance band around the player
	SpawnRingMax     float64
	TimeSlowFactor   float64 // speed multiplier while the player's time-slow runs
	PathBudgetNodes  int     // node budget for Route queries
	ChaseBudgetNodes int     // tighter budget for per-tick chase planning
	DialogueChance   float64 // per-tick roll while social and in range
	DialogueCooldown float64 // seconds between lines from one actor
}

func DefaultParams() Params {
	return Params{
		MaxPopulation:    55,
		SpawnChance:      0.02,
		SpawnRingMin:     280,
		SpawnRingMax:     700,
		TimeSlowFactor:   0.45,
		PathBudgetNodes:  300,
		ChaseBudgetNodes: 220,
		DialogueChance:   0.003,
		DialogueCooldown: 8,
	}
}

// Simulation owns every live actor and the faction relation table.
// Dead actors stay in the arena, excluded from evaluation, until Sweep
// compacts them out at the end of the tick. Not safe for concurrent
// use; all access happens on the tick goroutine.
type Simulation struct {
	world   *world.World
	player  *player.Player
	bus     *coreevent.Bus
	content *data.ContentTable
	table   *data.EntityTable
	rng     *rand.Rand
	params  Params

	rels   Relations
	actors []*Actor
}

func NewSimulation(w *world.World, pl *player.Player, bus *coreevent.Bus,
	content *data.ContentTable, table *data.EntityTable,
	stream *rand.Rand, params Params) *Simulation {
	return &Simulation{
		world:   w,
		player:  pl,
		bus:     bus,
		content: content,
		table:   table,
		rng:     stream,
		params:  params,
		rels:    DefaultRelations(),
	}
}

// Relations exposes the mutable faction diplomacy table.
func (s *Simulation) Relations() Relations {
	return s.rels
}

// Actors returns the live actors in arena order.
func (s *Simulation) Actors() []*Actor {
	out := make([]*Actor, 0, len(s.actors))
	for _, a := range s.actors {
		if a.Alive() {
			out = append(out, a)
		}
	}
	return out
}

// Count returns how many actors are alive.
func (s *Simulation) Count() int {
	n := 0
	for _, a := range s.actors {
		if a.Alive() {
			n++
		}
	}
	return n
}

// Update runs one tick of AI for every live actor, then rolls the
// proximity spawner. dt is in seconds.
func (s *Simulation) Update(dt float64) {
	scale := 1.0
	if s.player.TimeSlow > 0 {
		scale = s.params.TimeSlowFactor
	}

	for _, a := range s.actors {
		if !a.Alive() {
			continue
		}
		if a.socialCooldown > 0 {
			a.socialCooldown -= dt
		}
		a.aiTimer -= dt
		if a.aiTimer <= 0 {
			a.aiTimer = aiTimerMin + s.rng.Float64()*(aiTimerMax-aiTimerMin)
			s.reevaluate(a)
		}
		switch a.State {
		case StateChase:
			s.tickChase(a, dt, scale)
		case StateSocial:
			s.tickSocial(a)
		case StateAssist:
			s.tickAssist(a, dt, scale)
		default:
			s.move(a, wanderSpeed*a.Speed*scale*dt)
		}
	}

	s.spawnNearPlayer()
}

// Sweep compacts dead actors out of the arena, emitting loot for
// hostile deaths. Runs once per tick, after every system that might
// deal damage.
func (s *Simulation) Sweep() {
	out := s.actors[:0]
	for _, a := range s.actors {
		if a.Alive() {
			out = append(out, a)
			continue
		}
		if a.Faction.Hostile() {
			exp := lootExpMonster
			if a.Faction == FactionBoss {
				exp = lootExpBoss
			}
			coreevent.Emit(s.bus, coreevent.LootDropped{
				Item: lootPool[s.rng.Intn(len(lootPool))],
				X:    a.X,
				Y:    a.Y,
				Exp:  exp,
			})
		}
	}
	// Keep the tail clear so swept actors can be collected.
	for i := len(out); i < len(s.actors); i++ {
		s.actors[i] = nil
	}
	s.actors = out
}

// Damage applies amount to an actor and reports whether it died. Dead
// actors stay in place until the end-of-tick sweep.
func (s *Simulation) Damage(a *Actor, amount int) bool {
	a.HP -= amount
	return !a.Alive()
}

// Nearest returns the closest live actor of a faction within maxDist of
// a point, or nil. Ties resolve to the earliest arena slot.
func (s *Simulation) Nearest(x, y, maxDist float64, faction Faction) *Actor {
	var best *Actor
	bestDist := maxDist
	for _, a := range s.actors {
		if !a.Alive() || a.Faction != faction {
			continue
		}
		d := math.Hypot(a.X-x, a.Y-y)
		if d < bestDist {
			bestDist = d
			best = a
		}
	}
	return best
}

// Route plans a bounded path between two tiles over current solidity.
// Nil means no usable route within the node budget.
func (s *Simulation) Route(from, to pathfind.Point) []pathfind.Point {
	return pathfind.FindPath(s.world, from, to, s.params.PathBudgetNodes)
}

// ---------- state machine ----------

func (s *Simulation) reevaluate(a *Actor) {
	d := s.distToPlayer(a)
	switch {
	case a.Faction.Hostile() && d < chaseRange:
		a.State = StateChase
	case a.Faction == FactionAllies:
		a.State = StateAssist
	case a.Faction == FactionVillagers && d < socialRange:
		a.State = StateSocial
	default:
		a.State = StateWander
		ang := s.rng.Float64() * 2 * math.Pi
		a.DirX, a.DirY = math.Cos(ang), math.Sin(ang)
	}
}

func (s *Simulation) tickChase(a *Actor, dt, scale float64) {
	dist := s.distToPlayer(a)
	if dist > 2 {
		// Plan a bounded path; on budget exhaustion fall back to a
		// straight line at the player.
		tx, ty := s.player.X, s.player.Y
		path := pathfind.FindPath(s.world,
			tileOf(a.X, a.Y), tileOf(s.player.X, s.player.Y),
			s.params.ChaseBudgetNodes)
		if len(path) > 1 {
			next := path[1]
			tx = tileCenter(next.X)
			ty = tileCenter(next.Y)
		}
		s.steer(a, tx, ty)
		s.move(a, a.Speed*scale*dt)
	}
	if dist < meleeRange {
		dmg := meleeDamage
		if a.Faction == FactionBoss {
			dmg = bossMeleeDamage
		}
		s.player.Damage(dmg)
	}
}

func (s *Simulation) tickSocial(a *Actor) {
	if s.distToPlayer(a) >= dialogueRange || a.socialCooldown > 0 {
		return
	}
	if s.rng.Float64() >= s.params.DialogueChance {
		return
	}
	a.socialCooldown = s.params.DialogueCooldown
	lines := s.content.DialogueFor(string(a.Kind))
	coreevent.Emit(s.bus, coreevent.DialogueSpoken{
		Speaker: data.DisplayName(string(a.Kind)),
		Line:    lines[s.rng.Intn(len(lines))],
	})
}

func (s *Simulation) tickAssist(a *Actor, dt, scale float64) {
	target := s.Nearest(a.X, a.Y, assistMonsterRange, FactionMonsters)
	if target == nil {
		target = s.Nearest(a.X, a.Y, assistBossRange, FactionBoss)
	}
	if target != nil {
		s.steer(a, target.X, target.Y)
		s.move(a, a.Speed*scale*dt)
		if math.Hypot(target.X-a.X, target.Y-a.Y) < a.Radius+target.Radius+assistContactPad {
			s.Damage(target, assistDamage)
		}
		return
	}
	if s.distToPlayer(a) > trailDistance {
		s.steer(a, s.player.X, s.player.Y)
		s.move(a, trailSpeed*a.Speed*scale*dt)
	}
}

// ---------- movement ----------

// steer points the actor's heading at a world position.
func (s *Simulation) steer(a *Actor, tx, ty float64) {
	dx, dy := tx-a.X, ty-a.Y
	d := math.Hypot(dx, dy)
	if d == 0 {
		return
	}
	a.DirX, a.DirY = dx/d, dy/d
}

// move advances the actor along its heading. Stepping onto a solid
// tile reverts the step and bounces the heading.
func (s *Simulation) move(a *Actor, dist float64) {
	nx := a.X + a.DirX*dist
	ny := a.Y + a.DirY*dist
	if s.world.SolidAt(world.TileOf(nx), world.TileOf(ny)) {
		a.DirX, a.DirY = -a.DirX, -a.DirY
		return
	}
	a.X, a.Y = nx, ny
}

func (s *Simulation) distToPlayer(a *Actor) float64 {
	return math.Hypot(s.player.X-a.X, s.player.Y-a.Y)
}

func tileOf(x, y float64) pathfind.Point {
	return pathfind.Point{X: world.TileOf(x), Y: world.TileOf(y)}
}

func tileCenter(t int) float64 {
	return float64(t)*world.TileSize + world.TileSize/2
}
