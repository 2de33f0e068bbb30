package system

import (
	"context"
	"math/rand"
	"testing"
	"time"

	coreevent "github.com/otherworld/sim/internal/core/event"
	"github.com/otherworld/sim/internal/data"
	"github.com/otherworld/sim/internal/event"
	"github.com/otherworld/sim/internal/persist"
	"github.com/otherworld/sim/internal/player"
	"github.com/otherworld/sim/internal/world"
	"go.uber.org/zap"
)

type recordingSaver struct {
	saves []persist.Snapshot
	err   error
}

func (r *recordingSaver) Save(_ context.Context, _ string, snap *persist.Snapshot) error {
	if r.err != nil {
		return r.err
	}
	r.saves = append(r.saves, *snap)
	return nil
}

func newSnapshotSystem(saver SnapshotSaver, interval int) *SnapshotSystem {
	w := world.New(42, rand.New(rand.NewSource(1)), world.DefaultParams())
	pl := player.New()
	engine := event.NewEngine(data.DefaultContent(), coreevent.NewBus(),
		rand.New(rand.NewSource(2)), nil, event.DefaultParams())
	return NewSnapshotSystem(w, pl, engine, saver, "main", interval, zap.NewNop())
}

func TestSnapshotSystemSavesOnInterval(t *testing.T) {
	saver := &recordingSaver{}
	sys := newSnapshotSystem(saver, 3)
	for i := 0; i < 7; i++ {
		sys.Update(200 * time.Millisecond)
	}
	if len(saver.saves) != 2 {
		t.Fatalf("7 ticks at interval 3 saved %d times, want 2", len(saver.saves))
	}
	if saver.saves[0].World.Seed != 42 {
		t.Fatalf("snapshot seed %d, want 42", saver.saves[0].World.Seed)
	}
}

func TestSaveNowBypassesInterval(t *testing.T) {
	saver := &recordingSaver{}
	sys := newSnapshotSystem(saver, 1000)
	sys.SaveNow()
	if len(saver.saves) != 1 {
		t.Fatalf("SaveNow saved %d times, want 1", len(saver.saves))
	}
}
