package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/otherworld/sim/internal/config"
	"github.com/otherworld/sim/internal/data"
	"github.com/otherworld/sim/internal/event"
	"github.com/otherworld/sim/internal/persist"
	"github.com/otherworld/sim/internal/script"
	"github.com/otherworld/sim/internal/sim"
	"github.com/otherworld/sim/internal/system"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner(worldName string, seed int64) {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m           otherworld  v0.1.0              \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  │\033[0m      sandbox world simulation server      \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
	fmt.Printf("  \033[1mworld:\033[0m %s \033[90m(seed: %d)\033[0m\n\n", worldName, seed)
}

func printSection(title string) {
	lineLen := 46 - len(title) - 1
	if lineLen < 3 {
		lineLen = 3
	}
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, count int) {
	numStr := fmt.Sprintf("%d", count)
	dotsLen := 42 - len(label) - len(numStr)
	if dotsLen < 3 {
		dotsLen = 3
	}
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dotsLen), numStr)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

func printReady(msg string) {
	fmt.Printf("  \033[32m▶\033[0m %s\n", msg)
}

// ── Main simulation logic ─────────────────────────────────────────

func run() error {
	// 1. Load config
	cfgPath := "config/otherworld.toml"
	if p := os.Getenv("OTHERWORLD_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner(cfg.Server.Name, cfg.Server.Seed)

	// 3. Connect to PostgreSQL and run migrations. An empty DSN runs
	// the simulation without persistence.
	var repo *persist.SnapshotRepo
	if cfg.Database.DSN != "" {
		printSection("database")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		printOK("postgresql connected")

		if err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")
		fmt.Println()

		repo = persist.NewSnapshotRepo(db)
	}

	// 4. Load content and entity tables, built-ins when no data files
	// are shipped alongside the binary.
	printSection("data")

	content, err := loadContent("data/yaml/content.yaml")
	if err != nil {
		return err
	}
	printStat("quest objectives", len(content.QuestObjectives))
	printStat("flavor lines", len(content.FlavorLines))

	table, spawns, err := loadEntityData("data/yaml/entity_list.yaml", "data/yaml/spawn_list.yaml")
	if err != nil {
		return err
	}
	printStat("entity statlines", table.Count())
	printStat("spawn entries", len(spawns))

	// 5. Optional Lua reward hooks
	var scaler event.RewardScaler
	if cfg.Script.Enabled {
		engine, err := script.NewEngine(cfg.Script.Path, log)
		if err != nil {
			return fmt.Errorf("scripting: %w", err)
		}
		defer engine.Close()
		scaler = engine
		printOK("lua reward hooks loaded")
	}
	fmt.Println()

	// 6. Build the simulation
	var saver system.SnapshotSaver
	if repo != nil {
		saver = repo
	}
	s := sim.New(cfg, sim.Deps{
		Content: content,
		Table:   table,
		Spawns:  spawns,
		Scaler:  scaler,
		Saver:   saver,
		Log:     log,
	})

	// 7. Restore the previous snapshot, if any
	if repo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		snap, found, err := repo.Load(ctx, cfg.Database.Slot)
		cancel()
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if found {
			if err := s.Restore(snap); err != nil {
				return fmt.Errorf("restore snapshot: %w", err)
			}
			printOK(fmt.Sprintf("snapshot %q restored", cfg.Database.Slot))
		}
	}

	// 8. Start the tick loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(cfg.Server.TickRate)
	defer ticker.Stop()

	printSection("simulation ready")
	printReady(fmt.Sprintf("tick loop started (tick: %s)", cfg.Server.TickRate))
	printStat("initial population", s.Entities.Count())
	fmt.Println()

	for {
		select {
		case <-ticker.C:
			s.Step(cfg.Server.TickRate)
		case sig := <-shutdownCh:
			log.Info("shutdown signal received", zap.String("signal", sig.String()))
			s.SaveNow()
			log.Info("simulation stopped")
			return nil
		}
	}
}

// loadContent reads the content bank file, falling back to the
// built-in banks when the file is absent.
func loadContent(path string) (*data.ContentTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return data.DefaultContent(), nil
	}
	content, err := data.LoadContentTable(path)
	if err != nil {
		return nil, fmt.Errorf("load content table: %w", err)
	}
	return content, nil
}

func loadEntityData(tablePath, spawnPath string) (*data.EntityTable, []data.SpawnEntry, error) {
	table := data.DefaultEntityTable()
	if _, err := os.Stat(tablePath); err == nil {
		table, err = data.LoadEntityTable(tablePath)
		if err != nil {
			return nil, nil, fmt.Errorf("load entity table: %w", err)
		}
	}
	spawns := data.DefaultSpawns()
	if _, err := os.Stat(spawnPath); err == nil {
		spawns, err = data.LoadSpawnList(spawnPath)
		if err != nil {
			return nil, nil, fmt.Errorf("load spawn list: %w", err)
		}
	}
	return table, spawns, nil
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
