package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesOverridesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sim.toml")
	body := `
[server]
name = "testworld"
seed = 77
tick_rate = 100000000

[[world.landmarks]]
name = "castle"
tx = 140
ty = -90
radius = 12
biome = "village_ruins"

[events]
chain_defense = 1.0
chain_questline = 0.0

[database]
dsn = "postgres://test@localhost:5432/test"

[logging]
level = "debug"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Name != "testworld" || cfg.Server.Seed != 77 {
		t.Fatalf("server overrides not applied: %+v", cfg.Server)
	}
	if cfg.Server.TickRate != 100*time.Millisecond {
		t.Fatalf("tick_rate = %v, want 100ms", cfg.Server.TickRate)
	}
	if cfg.Events.ChainDefense != 1.0 || cfg.Events.ChainQuestline != 0.0 {
		t.Fatalf("event overrides not applied: %+v", cfg.Events)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("logging level = %q", cfg.Logging.Level)
	}

	if len(cfg.World.Landmarks) != 1 || cfg.World.Landmarks[0].Name != "castle" || cfg.World.Landmarks[0].Radius != 12 {
		t.Fatalf("landmarks not parsed: %+v", cfg.World.Landmarks)
	}

	// Untouched sections keep their defaults.
	if cfg.World.RevealRadius != 9 {
		t.Fatalf("reveal_radius default lost: %d", cfg.World.RevealRadius)
	}
	if cfg.Events.MaxActive != 5 {
		t.Fatalf("max_active default lost: %d", cfg.Events.MaxActive)
	}
	if cfg.Entities.MaxPopulation != 55 || cfg.Entities.PathBudget != 300 {
		t.Fatalf("entity defaults lost: %+v", cfg.Entities)
	}
	if cfg.Database.Slot != "main" {
		t.Fatalf("slot default lost: %q", cfg.Database.Slot)
	}
	if cfg.Server.StartTime == 0 {
		t.Fatalf("StartTime not stamped at load")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatalf("expected error for missing config")
	}
}

func TestLoadRejectsMalformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[server\nname="), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected parse error")
	}
}
