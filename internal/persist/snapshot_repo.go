package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/otherworld/sim/internal/event"
	"github.com/otherworld/sim/internal/player"
	"github.com/otherworld/sim/internal/world"
)

// Snapshot is the combined persisted shape. Each sub-shape is owned by
// its package; this struct only glues them into one document.
type Snapshot struct {
	World  world.Snapshot  `json:"world"`
	Events event.Snapshot  `json:"events"`
	Player player.Snapshot `json:"player"`
}

// SnapshotRepo stores snapshots by slot name.
type SnapshotRepo struct {
	db *DB
}

func NewSnapshotRepo(db *DB) *SnapshotRepo {
	return &SnapshotRepo{db: db}
}

// Save upserts the snapshot for a slot.
func (r *SnapshotRepo) Save(ctx context.Context, slot string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = r.db.Pool.Exec(ctx,
		`INSERT INTO snapshots (slot, data, saved_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (slot) DO UPDATE SET data = EXCLUDED.data, saved_at = now()`,
		slot, data,
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w", slot, err)
	}
	return nil
}

// Load reads the snapshot for a slot. A missing slot is not an error;
// it reports found=false and the caller starts a fresh world.
func (r *SnapshotRepo) Load(ctx context.Context, slot string) (*Snapshot, bool, error) {
	var data []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT data FROM snapshots WHERE slot = $1`, slot,
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot %s: %w", slot, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, false, fmt.Errorf("decode snapshot %s: %w", slot, err)
	}
	return &snap, true, nil
}
