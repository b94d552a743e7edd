package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mamadbah2/kitchen/internal/repository/slots"
)

//go:embed schema.sql
var schema string

// Repository stores kitchen slots in a local SQLite file.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

var _ slots.Store = (*Repository)(nil)

// NewRepository opens (or creates) the database at path and applies the schema.
func NewRepository(path string, logger *zap.Logger) (*Repository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection keeps writes strictly ordered.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("sqlite slot store ready", zap.String("path", path))
	return &Repository{db: db, logger: logger}, nil
}

// Load reads the payload stored under slot.
func (r *Repository) Load(ctx context.Context, slot slots.Slot) ([]byte, error) {
	var payload string
	err := r.db.QueryRowContext(ctx, `SELECT payload FROM kitchen_slots WHERE slot = ?`, string(slot)).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, slots.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", slot, err)
	}
	return []byte(payload), nil
}

// Save upserts the payload for slot.
func (r *Repository) Save(ctx context.Context, slot slots.Slot, payload []byte) error {
	query := `
		INSERT INTO kitchen_slots (slot, payload, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`
	if _, err := r.db.ExecContext(ctx, query, string(slot), string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("save slot %s: %w", slot, err)
	}
	r.logger.Debug("slot saved", zap.String("slot", string(slot)), zap.Int("bytes", len(payload)))
	return nil
}

// Close closes the database handle.
func (r *Repository) Close(context.Context) error {
	return r.db.Close()
}
