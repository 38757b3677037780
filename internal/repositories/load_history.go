package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/shared"
)

// LoadHistoryRepository records every fetch attempt.
type LoadHistoryRepository struct {
	db *sql.DB
}

// NewLoadHistoryRepository creates a new [LoadHistoryRepository] with the given database connection
func NewLoadHistoryRepository(db *sql.DB) *LoadHistoryRepository {
	return &LoadHistoryRepository{db: db}
}

// Record inserts entry, assigning it a generated ID.
func (r *LoadHistoryRepository) Record(entry *models.LoadRecord) error {
	if entry.Source == "" {
		return fmt.Errorf("%w: load record has no source", shared.ErrInvalidInput)
	}

	entry.ID = shared.GenerateID()

	query := `
		INSERT INTO load_history (id, source, member_count, error, from_cache, loaded_at) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, entry.ID, entry.Source, entry.Count, entry.Error, entry.FromCache, entry.LoadedAt)
	if err != nil {
		return fmt.Errorf("failed to insert load record: %w", err)
	}
	return nil
}

// List returns up to limit records, newest first. A non-positive limit returns every record.
func (r *LoadHistoryRepository) List(limit int) ([]models.LoadRecord, error) {
	query := `
		SELECT id, source, member_count, error, from_cache, loaded_at
		FROM load_history
		ORDER BY loaded_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query load history: %w", err)
	}
	defer rows.Close()

	var records []models.LoadRecord
	for rows.Next() {
		var rec models.LoadRecord
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Count, &rec.Error, &rec.FromCache, &rec.LoadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan load record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
