// Package repository stores diary entries with sqlx. Queries are written with '?' and
// rebound for the connection's driver.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dailythought/internal/models"
)

var ErrNotFound = errors.New("diary entry not found")

const entryColumns = `id, owner_id, entry_date, body, mood, mood_intensity, created_at, updated_at`

type DiaryRepository struct {
	db *sqlx.DB
}

func NewDiaryRepository(db *sqlx.DB) *DiaryRepository {
	return &DiaryRepository{db: db}
}

// ListByOwner returns the owner's entries in insertion order.
func (r *DiaryRepository) ListByOwner(ctx context.Context, ownerID int) ([]models.DiaryEntry, error) {
	q := r.db.Rebind(`SELECT ` + entryColumns + ` FROM diary_entries WHERE owner_id = ? ORDER BY seq`)
	out := []models.DiaryEntry{}
	if err := r.db.SelectContext(ctx, &out, q, ownerID); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return out, nil
}

// Get returns ErrNotFound for a missing id and for an id owned by someone else.
func (r *DiaryRepository) Get(ctx context.Context, ownerID int, id string) (models.DiaryEntry, error) {
	q := r.db.Rebind(`SELECT ` + entryColumns + ` FROM diary_entries WHERE id = ? AND owner_id = ?`)
	var e models.DiaryEntry
	err := r.db.GetContext(ctx, &e, q, id, ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.DiaryEntry{}, ErrNotFound
	}
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

// Create inserts e, assigning an id when it has none.
func (r *DiaryRepository) Create(ctx context.Context, e *models.DiaryEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if e.UpdatedAt.IsZero() {
		e.UpdatedAt = e.CreatedAt
	}
	q := r.db.Rebind(`INSERT INTO diary_entries (` + entryColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.OwnerID, e.Date, e.Body, e.Mood, e.MoodIntensity, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// Update overwrites the mutable fields and returns the stored row.
func (r *DiaryRepository) Update(ctx context.Context, ownerID int, id string, c models.EntryChanges, at time.Time) (models.DiaryEntry, error) {
	q := r.db.Rebind(`UPDATE diary_entries SET body = ?, mood = ?, mood_intensity = ?, updated_at = ? WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q, c.Body, c.Mood, c.MoodIntensity, at, id, ownerID)
	if err != nil {
		return models.DiaryEntry{}, fmt.Errorf("update entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.DiaryEntry{}, ErrNotFound
	}
	return r.Get(ctx, ownerID, id)
}

func (r *DiaryRepository) Delete(ctx context.Context, ownerID int, id string) error {
	q := r.db.Rebind(`DELETE FROM diary_entries WHERE id = ? AND owner_id = ?`)
	res, err := r.db.ExecContext(ctx, q, id, ownerID)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
