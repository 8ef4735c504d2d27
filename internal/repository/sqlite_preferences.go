package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/clockwork/internal/db"
	"github.com/alexanderramin/clockwork/internal/domain"
)

// SQLitePreferencesRepo implements PreferencesRepo using a SQLite database.
type SQLitePreferencesRepo struct {
	db db.DBTX
}

// NewSQLitePreferencesRepo creates a new SQLitePreferencesRepo.
func NewSQLitePreferencesRepo(conn db.DBTX) *SQLitePreferencesRepo {
	return &SQLitePreferencesRepo{db: conn}
}

func (r *SQLitePreferencesRepo) Get(ctx context.Context) (*domain.Preferences, error) {
	query := `SELECT id, hourly_rate, updated_at FROM preferences WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, domain.DefaultPreferencesID)

	var p domain.Preferences
	var updatedAt sql.NullString
	if err := row.Scan(&p.ID, &p.HourlyRate, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("preferences: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning preferences: %w", err)
	}
	if t := parseNullableTime(updatedAt); t != nil {
		p.UpdatedAt = *t
	}
	return &p, nil
}

func (r *SQLitePreferencesRepo) Upsert(ctx context.Context, p *domain.Preferences) error {
	if p.ID == "" {
		p.ID = domain.DefaultPreferencesID
	}
	query := `INSERT INTO preferences (id, hourly_rate, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET hourly_rate = excluded.hourly_rate, updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query, p.ID, p.HourlyRate, formatTime(p.UpdatedAt))
	if err != nil {
		return fmt.Errorf("upserting preferences: %w", err)
	}
	return nil
}
