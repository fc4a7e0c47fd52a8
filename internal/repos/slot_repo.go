package repos

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"revivedgoods/internal/domain"
)

// SlotRepo keeps one opaque value per (profile, key).
type SlotRepo struct{ db *sqlx.DB }

func NewSlotRepo(db *sqlx.DB) *SlotRepo { return &SlotRepo{db: db} }

func (r *SlotRepo) Get(ctx context.Context, profile, key string) ([]byte, error) {
	var v string
	err := r.db.GetContext(ctx, &v, r.db.Rebind(`
	  SELECT value FROM state_slots WHERE profile_id = ? AND slot_key = ?
	`), profile, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrSlotEmpty
	}
	if err != nil {
		return nil, err
	}
	return []byte(v), nil
}

// Put replaces the value in a single statement.
func (r *SlotRepo) Put(ctx context.Context, profile, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`
	  INSERT INTO state_slots(profile_id, slot_key, value, updated_at)
	  VALUES(?, ?, ?, ?)
	  ON CONFLICT(profile_id, slot_key) DO UPDATE
	  SET value = excluded.value, updated_at = excluded.updated_at
	`), profile, key, string(value), time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

