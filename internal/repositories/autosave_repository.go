// Package repositories holds the local autosave slot store
package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lessonbuilder/backend/internal/models"
	"go.uber.org/zap"
)

// ErrSlotNotFound is returned when no autosave exists for a key
var ErrSlotNotFound = errors.New("autosave slot not found")

// SlotKey returns the autosave key of a lesson: autosave_<week>_<date>
func SlotKey(week, date string) string {
	return "autosave_" + strings.TrimSpace(week) + "_" + strings.TrimSpace(date)
}

type autosaveRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAutosaveRepository creates a new autosave slot repository
func NewAutosaveRepository(db *sql.DB, logger *zap.Logger) *autosaveRepository {
	return &autosaveRepository{
		db:     db,
		logger: logger,
	}
}

// Get retrieves the slot stored under key
func (r *autosaveRepository) Get(ctx context.Context, key string) (*models.AutosaveSlot, error) {
	query := `
		SELECT data, updated_at
		FROM autosave_slots
		WHERE slot_key = ?
	`

	var (
		data      string
		updatedAt int64
	)
	err := r.db.QueryRowContext(ctx, query, key).Scan(&data, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		r.logger.Error("failed to query autosave slot", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("failed to query autosave slot: %w", err)
	}

	return &models.AutosaveSlot{
		Key:       key,
		Data:      []byte(data),
		UpdatedAt: time.UnixMilli(updatedAt).UTC(),
	}, nil
}

// Put stores data under key, replacing any previous value
func (r *autosaveRepository) Put(ctx context.Context, key string, data []byte) error {
	query := `
		INSERT INTO autosave_slots (slot_key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slot_key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, key, string(data), time.Now().UnixMilli()); err != nil {
		r.logger.Error("failed to write autosave slot", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to write autosave slot: %w", err)
	}
	return nil
}

// Delete removes the slot stored under key. Deleting a missing slot is not an error.
func (r *autosaveRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM autosave_slots WHERE slot_key = ?`

	if _, err := r.db.ExecContext(ctx, query, key); err != nil {
		r.logger.Error("failed to delete autosave slot", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("failed to delete autosave slot: %w", err)
	}
	return nil
}
