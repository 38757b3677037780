package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/adminui/internal/models"
	"github.com/desertthunder/adminui/internal/shared"
)

// MemberCacheRepository stores the last successful payload for each source.
type MemberCacheRepository struct {
	db *sql.DB
}

// NewMemberCacheRepository creates a new [MemberCacheRepository] with the given database connection
func NewMemberCacheRepository(db *sql.DB) *MemberCacheRepository {
	return &MemberCacheRepository{db: db}
}

// Save replaces the cached rows for source with members, keeping their order.
func (r *MemberCacheRepository) Save(source string, members []models.Member, fetchedAt time.Time) error {
	return inTx(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM member_cache WHERE source = ?`, source); err != nil {
			return fmt.Errorf("failed to clear cached members: %w", err)
		}

		stmt, err := tx.Prepare(`
			INSERT INTO member_cache (source, position, member_id, name, email, role, fetched_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare insert: %w", err)
		}
		defer stmt.Close()

		for i, m := range members {
			if _, err := stmt.Exec(source, i, m.ID, m.Name, m.Email, m.Role, fetchedAt); err != nil {
				return fmt.Errorf("failed to cache member %s: %w", m.ID, err)
			}
		}
		return nil
	})
}

// Load returns the cached members for source and when they were fetched.
//
// Returns [shared.ErrCacheMiss] when nothing is cached for source.
func (r *MemberCacheRepository) Load(source string) ([]models.Member, time.Time, error) {
	rows, err := r.db.Query(`
		SELECT member_id, name, email, role, fetched_at
		FROM member_cache
		WHERE source = ?
		ORDER BY position
	`, source)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to query cached members: %w", err)
	}
	defer rows.Close()

	var (
		members   []models.Member
		fetchedAt time.Time
	)
	for rows.Next() {
		var m models.Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Role, &fetchedAt); err != nil {
			return nil, time.Time{}, fmt.Errorf("failed to scan cached member: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("failed to iterate cached members: %w", err)
	}

	if len(members) == 0 {
		return nil, time.Time{}, fmt.Errorf("%w: %s", shared.ErrCacheMiss, source)
	}
	return members, fetchedAt, nil
}

// Clear removes the cached rows for source, or for every source when source is empty.
// It returns the number of rows removed.
func (r *MemberCacheRepository) Clear(source string) (int64, error) {
	var (
		result sql.Result
		err    error
	)
	if source == "" {
		result, err = r.db.Exec(`DELETE FROM member_cache`)
	} else {
		result, err = r.db.Exec(`DELETE FROM member_cache WHERE source = ?`, source)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get affected rows: %w", err)
	}
	return rows, nil
}

// Sources lists every cached source with its row count, ordered by source.
func (r *MemberCacheRepository) Sources() ([]models.CachedSource, error) {
	rows, err := r.db.Query(`
		SELECT source, COUNT(*), fetched_at
		FROM member_cache
		GROUP BY source
		ORDER BY source
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached sources: %w", err)
	}
	defer rows.Close()

	var sources []models.CachedSource
	for rows.Next() {
		var s models.CachedSource
		if err := rows.Scan(&s.Source, &s.Count, &s.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cached source: %w", err)
		}
		sources = append(sources, s)
	}
	return sources, rows.Err()
}
