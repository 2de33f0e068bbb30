package event

import (
	"fmt"
	"math/rand"
	"strings"

	coreevent "github.com/otherworld/sim/internal/core/event"
	"github.com/otherworld/sim/internal/data"
	"github.com/otherworld/sim/internal/entity"
	"github.com/otherworld/sim/internal/player"
	"github.com/otherworld/sim/internal/world"
)

const (
	eventGapMin   = 2.0 // game minutes until the next scheduled event
	eventGapMax   = 10.0
	flavorGapMin  = 25.0 // real seconds between ambient flavor lines
	flavorGapMax  = 55.0
	eventTimerMin = 50.0 // countdown handed to a fresh event
	eventTimerMax = 130.0

	completedKept = 50 // resolved titles kept in history
)

// Params are the engine tuning knobs. Chain probabilities are exposed
// so tests can force or forbid follow-ups.
type Params struct {
	MaxActive        int
	NightSpark       float64 // extra per-tick trigger chance at night
	LevelSpark       float64 // extra per-tick trigger chance once seasoned
	LevelSparkAt     int     // player level that arms LevelSpark
	AutoResolveBase  float64 // per-event per-tick self-resolve chance
	AutoResolveLevel float64 // added per player level
	ChainDefense     float64 // follow-up chance after a defense event
	ChainQuestline   float64 // follow-up chance after a questline event
}

func DefaultParams() Params {
	return Params{
		MaxActive:        5,
		NightSpark:       0.0009,
		LevelSpark:       0.0008,
		LevelSparkAt:     4,
		AutoResolveBase:  0.0005,
		AutoResolveLevel: 0.00008,
		ChainDefense:     0.55,
		ChainQuestline:   0.45,
	}
}

// RewardScaler post-processes template rewards. The Lua hook engine
// implements it; a nil scaler leaves the built-in formulas alone.
type RewardScaler interface {
	ScaleReward(etype string, difficulty, exp, rep int) (int, int)
}

// Engine owns the active event set. Resolved events stay in the slice
// until the next Update sweeps them; expired events drop immediately
// with no reward. Not safe for concurrent use.
type Engine struct {
	params  Params
	content *data.ContentTable
	rng     *rand.Rand
	bus     *coreevent.Bus
	scaler  RewardScaler

	nextID       int
	gameMinutes  float64
	nextEventIn  float64 // game minutes
	nextFlavorIn float64 // real seconds

	active    []*WorldEvent
	completed []string
}

func NewEngine(content *data.ContentTable, bus *coreevent.Bus,
	stream *rand.Rand, scaler RewardScaler, params Params) *Engine {
	e := &Engine{
		params:  params,
		content: content,
		rng:     stream,
		bus:     bus,
		scaler:  scaler,
		nextID:  1,
	}
	e.nextEventIn = e.uniform(eventGapMin, eventGapMax)
	e.nextFlavorIn = e.uniform(flavorGapMin, flavorGapMax)
	return e
}

// ActiveEvents returns the unresolved events in creation order.
func (e *Engine) ActiveEvents() []*WorldEvent {
	out := make([]*WorldEvent, 0, len(e.active))
	for _, ev := range e.active {
		if !ev.Resolved {
			out = append(out, ev)
		}
	}
	return out
}

// Completed returns the bounded history of resolved event titles.
func (e *Engine) Completed() []string {
	return e.completed
}

// Update advances timers, rolls generation triggers, expires overdue
// events and gives each survivor its small self-resolve chance. dt is
// in real seconds.
func (e *Engine) Update(dt float64, pl *player.Player, w *world.World, ents *entity.Simulation) {
	e.sweepResolved()

	e.gameMinutes += dt / 10

	e.nextEventIn -= dt / 60
	if e.nextEventIn <= 0 {
		e.nextEventIn = e.uniform(eventGapMin, eventGapMax)
		e.spawn(pl, w)
	}
	if w.IsNight() && e.rng.Float64() < e.params.NightSpark {
		e.spawn(pl, w)
	}
	if pl.Level >= e.params.LevelSparkAt && e.rng.Float64() < e.params.LevelSpark {
		e.spawn(pl, w)
	}

	e.nextFlavorIn -= dt
	if e.nextFlavorIn <= 0 {
		e.nextFlavorIn = e.uniform(flavorGapMin, flavorGapMax)
		if len(e.content.FlavorLines) > 0 {
			coreevent.Emit(e.bus, coreevent.FlavorLine{
				Text: e.content.FlavorLines[e.rng.Intn(len(e.content.FlavorLines))],
			})
		}
	}

	autoResolve := e.params.AutoResolveBase + float64(pl.Level)*e.params.AutoResolveLevel
	kept := e.active[:0]
	for _, ev := range e.active {
		if ev.Resolved {
			kept = append(kept, ev)
			continue
		}
		ev.Timer -= dt
		if ev.Timer <= 0 {
			coreevent.Emit(e.bus, coreevent.EventExpired{ID: ev.ID, Title: ev.Title})
			continue
		}
		kept = append(kept, ev)
	}
	for i := len(kept); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = kept

	// Self-resolution happens after the expiry pass so an event never
	// pays out on the tick it timed out. Chained follow-ups appended by
	// Complete are not rolled until next tick.
	for _, ev := range e.active[:len(e.active):len(e.active)] {
		if ev.Resolved {
			continue
		}
		if e.rng.Float64() < autoResolve {
			e.Complete(ev.ID, pl, w, ents)
		}
	}
}

// Complete resolves an event by ID: grants the reward, applies the
// category's world impact, rolls the chain and records the title.
// Idempotent; unknown or already-resolved IDs return ("", false).
func (e *Engine) Complete(id int, pl *player.Player, w *world.World, ents *entity.Simulation) (string, bool) {
	var ev *WorldEvent
	for _, cand := range e.active {
		if cand.ID == id {
			ev = cand
			break
		}
	}
	if ev == nil || ev.Resolved {
		return "", false
	}
	ev.Resolved = true

	pl.GainExp(ev.Reward.Exp)
	pl.Reputation += ev.Reward.Rep
	for _, g := range ev.Reward.Items {
		pl.AddItem(g.Kind, g.Count)
	}

	e.applyImpact(ev, pl, w, ents)
	e.rollChain(ev, pl, w)

	e.completed = append(e.completed, ev.Title)
	if len(e.completed) > completedKept {
		e.completed = e.completed[len(e.completed)-completedKept:]
	}

	summary := fmt.Sprintf("%s resolved: +%d exp, %+d reputation", ev.Title, ev.Reward.Exp, ev.Reward.Rep)
	coreevent.Emit(e.bus, coreevent.EventResolved{ID: ev.ID, Title: ev.Title, Summary: summary})
	return summary, true
}

// Trigger forces one generation roll immediately, subject to the
// active-event cap. Used by debug commands; the periodic timers call
// the same path.
func (e *Engine) Trigger(pl *player.Player, w *world.World) *WorldEvent {
	return e.spawn(pl, w)
}

// ---------- generation ----------

// typePool weights quest and world double against raid and isekai.
var typePool = []Type{TypeRaid, TypeQuest, TypeQuest, TypeWorld, TypeWorld, TypeIsekai}

func (e *Engine) spawn(pl *player.Player, w *world.World) *WorldEvent {
	if len(e.ActiveEvents()) >= e.params.MaxActive {
		return nil
	}
	typ := typePool[e.rng.Intn(len(typePool))]
	biome := string(w.BiomeAt(world.TileOf(pl.X), world.TileOf(pl.Y)))
	diff := pl.Level + e.rng.Intn(5) - 1
	if diff < 1 {
		diff = 1
	}

	ev := e.synthesize(typ, biome, diff, w.IsNight())
	ev.ID = e.nextID
	e.nextID++
	ev.Timer = e.uniform(eventTimerMin, eventTimerMax)

	e.active = append(e.active, ev)
	coreevent.Emit(e.bus, coreevent.EventOpened{ID: ev.ID, Title: ev.Title})
	return ev
}

// synthesize fills in everything but ID and timer from the content
// banks and the reward formulas.
func (e *Engine) synthesize(typ Type, biome string, diff int, night bool) *WorldEvent {
	theme := e.content.Theme(biome)
	adj := theme.Adjectives[e.rng.Intn(len(theme.Adjectives))]
	noun := theme.Nouns[e.rng.Intn(len(theme.Nouns))]
	intro := e.content.EventIntros[e.rng.Intn(len(e.content.EventIntros))]
	place := e.content.BiomeName(biome)

	ev := &WorldEvent{Type: typ, Biome: biome, Difficulty: diff}
	switch typ {
	case TypeRaid:
		variant := e.content.RaidVariants[e.rng.Intn(len(e.content.RaidVariants))]
		ev.Title = fmt.Sprintf("%s at the %s %s", variant, adj, noun)
		ev.Description = fmt.Sprintf("%s Hostile forces mass in %s.", intro, place)
		ev.Reward = Reward{Exp: 25 + 8*diff, Rep: 2 + diff/2,
			Items: []ItemGrant{{Kind: "gold", Count: 2 + diff}}}
		ev.ChainTag = ChainDefense
	case TypeQuest:
		objective := e.content.QuestObjectives[e.rng.Intn(len(e.content.QuestObjectives))]
		promised := e.content.QuestRewards[e.rng.Intn(len(e.content.QuestRewards))]
		ev.Title = "Quest: " + objective
		ev.Description = fmt.Sprintf("%s Word spreads through %s. The notice promises a %s.", intro, place, promised)
		kinds := []string{"ore", "core", "plank", "gold"}
		ev.Reward = Reward{Exp: 35 + 10*diff, Rep: 3 + diff,
			Items: []ItemGrant{{Kind: kinds[e.rng.Intn(len(kinds))], Count: 3 + diff}}}
		ev.ChainTag = ChainQuestline
	case TypeWorld:
		variant := e.content.WorldVariants[e.rng.Intn(len(e.content.WorldVariants))]
		ev.Title = "World shift: " + variant
		ev.Description = fmt.Sprintf("%s %s reshapes %s.", intro, data.DisplayName(variant), place)
		kinds := []string{"core", "ore", "gold"}
		ev.Reward = Reward{Exp: 20 + 6*diff, Rep: 1 + diff/2,
			Items: []ItemGrant{{Kind: kinds[e.rng.Intn(len(kinds))], Count: 2 + diff}}}
		ev.ChainTag = ChainWorldshift
	default:
		twist := e.content.IsekaiTwists[e.rng.Intn(len(e.content.IsekaiTwists))]
		ev.Title = "Isekai twist: " + twist
		ev.Description = fmt.Sprintf("%s Somewhere beyond the %s %s, %s.", intro, adj, noun, twist)
		items := []ItemGrant{{Kind: "gold", Count: 4 + diff}}
		if night {
			items = append(items, ItemGrant{Kind: "core", Count: 1 + diff/2})
		}
		ev.Reward = Reward{Exp: 45 + 7*diff, Rep: e.rng.Intn(8) - 2, Items: items}
		ev.ChainTag = ChainIsekai
	}

	if e.scaler != nil {
		ev.Reward.Exp, ev.Reward.Rep = e.scaler.ScaleReward(string(typ), diff, ev.Reward.Exp, ev.Reward.Rep)
	}
	return ev
}

// ---------- resolution side effects ----------

func (e *Engine) applyImpact(ev *WorldEvent, pl *player.Player, w *world.World, ents *entity.Simulation) {
	switch ev.Type {
	case TypeRaid:
		// Half the time the raid tears down a wall; otherwise survivors
		// regroup as a hostile cluster near the player.
		keys := w.BlockKeys()
		if len(keys) > 0 && e.rng.Float64() < 0.5 {
			k := keys[e.rng.Intn(len(keys))]
			w.RemoveBlock(k.X, k.Y)
			return
		}
		if ents == nil {
			return
		}
		n := 1 + ev.Difficulty/2
		if n > 5 {
			n = 5
		}
		for i := 0; i < n; i++ {
			ents.Inject(&entity.Actor{
				Kind:    entity.KindGoblin,
				Faction: entity.FactionMonsters,
				X:       pl.X + e.uniform(-400, 400),
				Y:       pl.Y + e.uniform(-400, 400),
				HP:      28 + 2*ev.Difficulty,
				HPMax:   28 + 2*ev.Difficulty,
				Speed:   80 + 2*float64(ev.Difficulty),
				Radius:  11,
			})
		}
	case TypeWorld:
		if !strings.Contains(strings.ToLower(ev.Title), "ruin") {
			return
		}
		bx := e.rng.Intn(61) - 30
		by := e.rng.Intn(61) - 30
		for dy := 0; dy < 5; dy++ {
			for dx := 0; dx < 5; dx++ {
				w.PlaceBlock(bx+dx, by+dy, world.BlockWall)
			}
		}
	case TypeIsekai:
		if ents == nil || !strings.Contains(strings.ToLower(ev.Title), "blessing") {
			return
		}
		if e.rng.Float64() < 0.5 {
			ents.Relations().Shift(entity.FactionPlayer, entity.FactionVillagers, 10)
		} else {
			ents.Relations().Shift(entity.FactionPlayer, entity.FactionMonsters, -10)
		}
	}
}

func (e *Engine) rollChain(parent *WorldEvent, pl *player.Player, w *world.World) {
	switch parent.ChainTag {
	case ChainDefense:
		if e.rng.Float64() >= e.params.ChainDefense {
			return
		}
		follow := e.synthesize(TypeQuest, parent.Biome, max1(parent.Difficulty), w.IsNight())
		follow.Timer = 90
		e.append(follow)
	case ChainQuestline:
		if e.rng.Float64() >= e.params.ChainQuestline {
			return
		}
		follow := e.synthesize(TypeIsekai, parent.Biome, parent.Difficulty+1, w.IsNight())
		follow.Timer = 100
		e.append(follow)
	}
}

func (e *Engine) append(ev *WorldEvent) {
	ev.ID = e.nextID
	e.nextID++
	e.active = append(e.active, ev)
	coreevent.Emit(e.bus, coreevent.EventOpened{ID: ev.ID, Title: ev.Title})
}

func (e *Engine) sweepResolved() {
	kept := e.active[:0]
	for _, ev := range e.active {
		if !ev.Resolved {
			kept = append(kept, ev)
		}
	}
	for i := len(kept); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = kept
}

func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}

func max1(v int) int {
	if v < 1 {
		return 1
	}
	return v
}
