// Package sim wires the world, the actors, the event engine and the
// tick systems into one simulation a caller can step.
package sim

import (
	"time"

	"github.com/otherworld/sim/internal/config"
	coreevent "github.com/otherworld/sim/internal/core/event"
	"github.com/otherworld/sim/internal/core/rng"
	coresys "github.com/otherworld/sim/internal/core/system"
	"github.com/otherworld/sim/internal/data"
	"github.com/otherworld/sim/internal/entity"
	"github.com/otherworld/sim/internal/event"
	"github.com/otherworld/sim/internal/persist"
	"github.com/otherworld/sim/internal/player"
	"github.com/otherworld/sim/internal/system"
	"github.com/otherworld/sim/internal/world"
	"go.uber.org/zap"
)

// Deps are the content and collaborators the simulation is built from.
// Saver and Scaler may be nil: no persistence, built-in reward formulas.
type Deps struct {
	Content *data.ContentTable
	Table   *data.EntityTable
	Spawns  []data.SpawnEntry
	Scaler  event.RewardScaler
	Saver   system.SnapshotSaver
	Log     *zap.Logger
}

// Simulation owns all mutable game state. Exactly one goroutine may
// step it; the tick loop in cmd/otherworld is that owner.
type Simulation struct {
	cfg *config.Config
	log *zap.Logger

	Bus      *coreevent.Bus
	World    *world.World
	Player   *player.Player
	Entities *entity.Simulation
	Events   *event.Engine

	runner      *coresys.Runner
	snapshotSys *system.SnapshotSystem
}

func New(cfg *config.Config, deps Deps) *Simulation {
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	seed := cfg.Server.Seed
	bus := coreevent.NewBus()

	w := world.New(seed, rng.Derive(seed, "world"), worldParams(cfg.World))
	pl := player.New()
	ents := entity.NewSimulation(w, pl, bus, deps.Content, deps.Table,
		rng.Derive(seed, "entities"), entityParams(cfg.Entities))
	ents.Populate(deps.Spawns)
	events := event.NewEngine(deps.Content, bus, rng.Derive(seed, "events"),
		deps.Scaler, eventParams(cfg.Events))

	s := &Simulation{
		cfg:      cfg,
		log:      log,
		Bus:      bus,
		World:    w,
		Player:   pl,
		Entities: ents,
		Events:   events,
		runner:   coresys.NewRunner(),
	}

	s.runner.Register(system.NewWorldSystem(w, pl))
	s.runner.Register(system.NewEntitySystem(ents))
	s.runner.Register(system.NewEventSystem(events, w, pl, ents))
	s.runner.Register(system.NewDispatchSystem(bus))
	s.runner.Register(system.NewCleanupSystem(ents))
	if deps.Saver != nil {
		interval := int(cfg.Database.AutosaveInterval / cfg.Server.TickRate)
		if interval < 1 {
			interval = 1
		}
		s.snapshotSys = system.NewSnapshotSystem(w, pl, events,
			deps.Saver, cfg.Database.Slot, interval, log)
		s.runner.Register(s.snapshotSys)
	}

	s.subscribe()
	return s
}

// Step runs one full tick: world, entities, events, signal dispatch,
// autosave and the dead-actor sweep, in that order.
func (s *Simulation) Step(dt time.Duration) {
	s.runner.Tick(dt)
}

// Snapshot captures the persisted state of everything.
func (s *Simulation) Snapshot() *persist.Snapshot {
	return &persist.Snapshot{
		World:  s.World.Snapshot(),
		Events: s.Events.Snapshot(),
		Player: s.Player.Snapshot(),
	}
}

// Restore replaces world, event and player state from a snapshot.
func (s *Simulation) Restore(snap *persist.Snapshot) error {
	if err := s.World.Restore(snap.World); err != nil {
		return err
	}
	s.Events.Restore(snap.Events)
	s.Player.Restore(snap.Player)
	return nil
}

// SaveNow forces a snapshot write, used at shutdown. No-op without a
// configured saver.
func (s *Simulation) SaveNow() {
	if s.snapshotSys != nil {
		s.snapshotSys.SaveNow()
	}
}

// subscribe applies core signals to the player and mirrors the rest to
// the log, standing in for the UI layer.
func (s *Simulation) subscribe() {
	coreevent.Subscribe(s.Bus, func(sig coreevent.LootDropped) {
		s.Player.AddItem(sig.Item, 1)
		if ups := s.Player.GainExp(sig.Exp); ups > 0 {
			s.log.Info("level up", zap.Int("level", s.Player.Level))
		}
		s.log.Debug("loot collected", zap.String("item", sig.Item), zap.Int("exp", sig.Exp))
	})
	coreevent.Subscribe(s.Bus, func(sig coreevent.DialogueSpoken) {
		s.log.Info("dialogue", zap.String("speaker", sig.Speaker), zap.String("line", sig.Line))
	})
	coreevent.Subscribe(s.Bus, func(sig coreevent.EventOpened) {
		s.log.Info("event opened", zap.Int("id", sig.ID), zap.String("title", sig.Title))
	})
	coreevent.Subscribe(s.Bus, func(sig coreevent.EventResolved) {
		s.log.Info("event resolved", zap.Int("id", sig.ID), zap.String("summary", sig.Summary))
	})
	coreevent.Subscribe(s.Bus, func(sig coreevent.EventExpired) {
		s.log.Info("event expired", zap.Int("id", sig.ID), zap.String("title", sig.Title))
	})
	coreevent.Subscribe(s.Bus, func(sig coreevent.FlavorLine) {
		s.log.Info("flavor", zap.String("text", sig.Text))
	})
}

func worldParams(cfg config.WorldConfig) world.Params {
	p := world.DefaultParams()
	if cfg.RevealRadius > 0 {
		p.RevealRadius = cfg.RevealRadius
	}
	if cfg.DayStart > 0 {
		p.DayStart = cfg.DayStart
	}
	if cfg.ClockRate > 0 {
		p.ClockRate = cfg.ClockRate
	}
	if cfg.WeatherMin > 0 {
		p.WeatherMin = cfg.WeatherMin
	}
	if cfg.WeatherMax > 0 {
		p.WeatherMax = cfg.WeatherMax
	}
	if cfg.MaxDiscovered > 0 {
		p.MaxDiscovered = cfg.MaxDiscovered
	}
	for _, lc := range cfg.Landmarks {
		p.Landmarks = append(p.Landmarks, world.Landmark{
			Name:   lc.Name,
			TX:     lc.TX,
			TY:     lc.TY,
			Radius: lc.Radius,
			Biome:  world.Biome(lc.Biome),
		})
	}
	return p
}

func entityParams(cfg config.EntitiesConfig) entity.Params {
	p := entity.DefaultParams()
	if cfg.MaxPopulation > 0 {
		p.MaxPopulation = cfg.MaxPopulation
	}
	if cfg.SpawnChance > 0 {
		p.SpawnChance = cfg.SpawnChance
	}
	if cfg.SpawnRingMin > 0 {
		p.SpawnRingMin = cfg.SpawnRingMin
	}
	if cfg.SpawnRingMax > 0 {
		p.SpawnRingMax = cfg.SpawnRingMax
	}
	if cfg.TimeSlowFactor > 0 {
		p.TimeSlowFactor = cfg.TimeSlowFactor
	}
	if cfg.PathBudget > 0 {
		p.PathBudgetNodes = cfg.PathBudget
	}
	if cfg.ChaseBudget > 0 {
		p.ChaseBudgetNodes = cfg.ChaseBudget
	}
	return p
}

func eventParams(cfg config.EventsConfig) event.Params {
	p := event.DefaultParams()
	if cfg.MaxActive > 0 {
		p.MaxActive = cfg.MaxActive
	}
	if cfg.NightSpark > 0 {
		p.NightSpark = cfg.NightSpark
	}
	if cfg.LevelSpark > 0 {
		p.LevelSpark = cfg.LevelSpark
	}
	if cfg.LevelSparkAt > 0 {
		p.LevelSparkAt = cfg.LevelSparkAt
	}
	if cfg.AutoResolveBase > 0 {
		p.AutoResolveBase = cfg.AutoResolveBase
	}
	if cfg.AutoResolveLevel > 0 {
		p.AutoResolveLevel = cfg.AutoResolveLevel
	}
	if cfg.ChainDefense > 0 {
		p.ChainDefense = cfg.ChainDefense
	}
	if cfg.ChainQuestline > 0 {
		p.ChainQuestline = cfg.ChainQuestline
	}
	return p
}
