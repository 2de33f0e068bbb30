package event

import (
	"encoding/json"
	"math/rand"
	"reflect"
	"strings"
	"testing"

	coreevent "github.com/otherworld/sim/internal/core/event"
	"github.com/otherworld/sim/internal/data"
	"github.com/otherworld/sim/internal/entity"
	"github.com/otherworld/sim/internal/player"
	"github.com/otherworld/sim/internal/world"
)

type fixture struct {
	world  *world.World
	player *player.Player
	ents   *entity.Simulation
	bus    *coreevent.Bus
	engine *Engine
}

func newFixture(t *testing.T, params Params) *fixture {
	t.Helper()
	w := world.New(42, rand.New(rand.NewSource(5)), world.DefaultParams())
	pl := player.New()
	bus := coreevent.NewBus()
	ents := entity.NewSimulation(w, pl, bus, data.DefaultContent(), data.DefaultEntityTable(),
		rand.New(rand.NewSource(6)), entity.DefaultParams())
	eng := NewEngine(data.DefaultContent(), bus, rand.New(rand.NewSource(13)), nil, params)
	return &fixture{world: w, player: pl, ents: ents, bus: bus, engine: eng}
}

// triggerType keeps rolling generation until it produces the wanted
// category; the weighted pools make every category common.
func (f *fixture) triggerType(t *testing.T, typ Type, wantTitle string) *WorldEvent {
	t.Helper()
	for i := 0; i < 500; i++ {
		ev := f.engine.Trigger(f.player, f.world)
		if ev == nil {
			t.Fatalf("generation hit the active cap before finding a %s event", typ)
		}
		if ev.Type == typ && strings.Contains(strings.ToLower(ev.Title), wantTitle) {
			return ev
		}
	}
	t.Fatalf("no %s event with %q in 500 rolls", typ, wantTitle)
	return nil
}

func uncapped(p Params) Params {
	p.MaxActive = 10000
	return p
}

func TestTriggerFillsTemplate(t *testing.T) {
	f := newFixture(t, DefaultParams())
	ev := f.engine.Trigger(f.player, f.world)
	if ev == nil {
		t.Fatalf("trigger under the cap returned nil")
	}
	if ev.ID != 1 {
		t.Fatalf("first event id %d, want 1", ev.ID)
	}
	if ev.Title == "" || ev.Description == "" || ev.Biome == "" {
		t.Fatalf("template left blanks: %+v", ev)
	}
	if ev.Difficulty < 1 {
		t.Fatalf("difficulty %d below floor", ev.Difficulty)
	}
	if ev.Timer < eventTimerMin || ev.Timer > eventTimerMax {
		t.Fatalf("timer %.1f outside [%v,%v]", ev.Timer, eventTimerMin, eventTimerMax)
	}
	if ev.Reward.Exp <= 0 {
		t.Fatalf("reward exp %d", ev.Reward.Exp)
	}
	if ev.ChainTag == ChainNone {
		t.Fatalf("every category carries a chain tag")
	}
}

func TestActiveCap(t *testing.T) {
	params := DefaultParams()
	params.MaxActive = 2
	f := newFixture(t, params)
	for i := 0; i < 2; i++ {
		if f.engine.Trigger(f.player, f.world) == nil {
			t.Fatalf("trigger %d under the cap returned nil", i)
		}
	}
	if f.engine.Trigger(f.player, f.world) != nil {
		t.Fatalf("trigger over the cap should be refused")
	}
	if got := len(f.engine.ActiveEvents()); got != 2 {
		t.Fatalf("active %d, want 2", got)
	}
}

func TestCompleteIdempotent(t *testing.T) {
	params := DefaultParams()
	params.ChainDefense = 0
	params.ChainQuestline = 0
	f := newFixture(t, params)
	ev := f.engine.Trigger(f.player, f.world)

	repBefore := f.player.Reputation
	msg, ok := f.engine.Complete(ev.ID, f.player, f.world, f.ents)
	if !ok || msg == "" {
		t.Fatalf("first completion failed: %q %v", msg, ok)
	}
	if f.player.Reputation != repBefore+ev.Reward.Rep {
		t.Fatalf("reputation %d, want %d", f.player.Reputation, repBefore+ev.Reward.Rep)
	}
	if _, ok := f.engine.Complete(ev.ID, f.player, f.world, f.ents); ok {
		t.Fatalf("second completion should be a no-op")
	}
	if f.player.Reputation != repBefore+ev.Reward.Rep {
		t.Fatalf("double completion granted the reward twice")
	}
	if _, ok := f.engine.Complete(9999, f.player, f.world, f.ents); ok {
		t.Fatalf("unknown id should be a no-op")
	}
	if len(f.engine.ActiveEvents()) != 0 {
		t.Fatalf("resolved event still listed as active")
	}
}

func TestDefenseChainForced(t *testing.T) {
	params := uncapped(DefaultParams())
	params.ChainDefense = 1.0
	f := newFixture(t, params)
	raid := f.triggerType(t, TypeRaid, "")
	activeBefore := len(f.engine.ActiveEvents())

	if _, ok := f.engine.Complete(raid.ID, f.player, f.world, f.ents); !ok {
		t.Fatalf("raid completion failed")
	}

	active := f.engine.ActiveEvents()
	if len(active) != activeBefore {
		// parent left (-1), follow-up joined (+1)
		t.Fatalf("active count %d, want %d", len(active), activeBefore)
	}
	var follow *WorldEvent
	for _, ev := range active {
		if ev.ID > raid.ID {
			if follow != nil {
				t.Fatalf("more than one follow-up appended")
			}
			follow = ev
		}
		if ev.ID == raid.ID {
			t.Fatalf("resolved parent still active")
		}
	}
	if follow == nil {
		t.Fatalf("forced defense chain produced no follow-up")
	}
	if follow.Type != TypeQuest || follow.ChainTag != ChainQuestline {
		t.Fatalf("follow-up %s/%s, want quest/questline", follow.Type, follow.ChainTag)
	}
	if follow.Timer != 90 {
		t.Fatalf("follow-up timer %.0f, want 90", follow.Timer)
	}
}

func TestDefenseChainSuppressed(t *testing.T) {
	params := uncapped(DefaultParams())
	params.ChainDefense = 0
	f := newFixture(t, params)
	raid := f.triggerType(t, TypeRaid, "")
	before := len(f.engine.ActiveEvents())
	f.engine.Complete(raid.ID, f.player, f.world, f.ents)
	if got := len(f.engine.ActiveEvents()); got != before-1 {
		t.Fatalf("zero chain probability still appended: %d -> %d", before, got)
	}
}

func TestQuestlineChainsToIsekai(t *testing.T) {
	params := uncapped(DefaultParams())
	params.ChainQuestline = 1.0
	f := newFixture(t, params)
	quest := f.triggerType(t, TypeQuest, "")
	f.engine.Complete(quest.ID, f.player, f.world, f.ents)

	var follow *WorldEvent
	for _, ev := range f.engine.ActiveEvents() {
		if ev.ID > quest.ID {
			follow = ev
		}
	}
	if follow == nil || follow.Type != TypeIsekai || follow.ChainTag != ChainIsekai {
		t.Fatalf("questline follow-up %+v, want isekai/isekai", follow)
	}
	if follow.Difficulty != quest.Difficulty+1 {
		t.Fatalf("follow-up difficulty %d, want %d", follow.Difficulty, quest.Difficulty+1)
	}
}

func TestTimeoutPaysNothing(t *testing.T) {
	params := DefaultParams()
	f := newFixture(t, params)
	ev := f.engine.Trigger(f.player, f.world)
	ev.Timer = 0.5

	expired := 0
	coreevent.Subscribe(f.bus, func(coreevent.EventExpired) { expired++ })

	exp, rep := f.player.Exp, f.player.Reputation
	f.engine.Update(1.0, f.player, f.world, f.ents)
	f.bus.SwapBuffers()
	f.bus.DispatchAll()

	if expired != 1 {
		t.Fatalf("expected one expiry signal, got %d", expired)
	}
	if len(f.engine.ActiveEvents()) != 0 {
		t.Fatalf("timed-out event still active")
	}
	if f.player.Exp != exp || f.player.Reputation != rep {
		t.Fatalf("timeout granted a reward")
	}
	if _, ok := f.engine.Complete(ev.ID, f.player, f.world, f.ents); ok {
		t.Fatalf("timed-out event should not complete")
	}
}

func TestAutoResolveForced(t *testing.T) {
	params := DefaultParams()
	params.AutoResolveBase = 1.0
	params.ChainDefense = 0
	params.ChainQuestline = 0
	f := newFixture(t, params)
	ev := f.engine.Trigger(f.player, f.world)

	f.engine.Update(0.1, f.player, f.world, f.ents)
	if len(f.engine.ActiveEvents()) != 0 {
		t.Fatalf("forced auto-resolve left the event active")
	}
	history := f.engine.Completed()
	if len(history) != 1 || history[0] != ev.Title {
		t.Fatalf("history %v, want [%q]", history, ev.Title)
	}
}

func TestRaidImpactInjectsMonsters(t *testing.T) {
	params := uncapped(DefaultParams())
	params.ChainDefense = 0
	f := newFixture(t, params)
	raid := f.triggerType(t, TypeRaid, "")

	before := f.ents.Count()
	f.engine.Complete(raid.ID, f.player, f.world, f.ents)
	injected := f.ents.Count() - before
	want := 1 + raid.Difficulty/2
	if want > 5 {
		want = 5
	}
	if injected != want {
		t.Fatalf("raid injected %d monsters, want %d", injected, want)
	}
}

func TestRuinsImpactStampsStructure(t *testing.T) {
	params := uncapped(DefaultParams())
	params.ChainDefense = 0
	params.ChainQuestline = 0
	f := newFixture(t, params)
	ev := f.triggerType(t, TypeWorld, "ruin")

	f.engine.Complete(ev.ID, f.player, f.world, f.ents)
	if got := f.world.BlockCount(); got != 25 {
		t.Fatalf("ruins stamp placed %d blocks, want 25", got)
	}
	for _, k := range f.world.BlockKeys() {
		if kind, _ := f.world.BlockAt(k.X, k.Y); kind != world.BlockWall {
			t.Fatalf("stamp placed %q at %v, want wall", kind, k)
		}
	}
}

func TestBlessingShiftsRelations(t *testing.T) {
	params := uncapped(DefaultParams())
	f := newFixture(t, params)
	ev := f.triggerType(t, TypeIsekai, "blessing")

	f.engine.Complete(ev.ID, f.player, f.world, f.ents)
	rels := f.ents.Relations()
	villagers := rels.Get(entity.FactionPlayer, entity.FactionVillagers)
	monsters := rels.Get(entity.FactionPlayer, entity.FactionMonsters)
	if villagers == 10 && monsters == -80 {
		t.Fatalf("blessing left both relations at their defaults")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	params := uncapped(DefaultParams())
	params.ChainDefense = 0
	params.ChainQuestline = 0
	f := newFixture(t, params)
	first := f.engine.Trigger(f.player, f.world)
	f.engine.Trigger(f.player, f.world)
	f.engine.Complete(first.ID, f.player, f.world, f.ents)

	snap := f.engine.Snapshot()
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	restored := NewEngine(data.DefaultContent(), f.bus, rand.New(rand.NewSource(99)), nil, params)
	restored.Restore(decoded)

	if got := len(restored.ActiveEvents()); got != 1 {
		t.Fatalf("restored %d active events, want 1", got)
	}
	orig := f.engine.ActiveEvents()[0]
	back := restored.ActiveEvents()[0]
	if !reflect.DeepEqual(back, orig) {
		t.Fatalf("restored event %+v != %+v", back, orig)
	}
	if got := restored.Completed(); len(got) != 1 || got[0] != first.Title {
		t.Fatalf("restored history %v", got)
	}
	next := restored.Trigger(f.player, f.world)
	if next.ID <= back.ID {
		t.Fatalf("restored id counter reissued %d", next.ID)
	}
}

func TestRestoreDefaultsMissingFields(t *testing.T) {
	f := newFixture(t, DefaultParams())
	f.engine.Restore(Snapshot{}) // legacy empty save
	if f.engine.nextID < 1 {
		t.Fatalf("id counter reset to %d", f.engine.nextID)
	}
	if f.engine.nextEventIn <= 0 || f.engine.nextFlavorIn <= 0 {
		t.Fatalf("zero timers should re-randomize, got %v %v",
			f.engine.nextEventIn, f.engine.nextFlavorIn)
	}
}
