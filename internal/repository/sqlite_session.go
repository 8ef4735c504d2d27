package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/clockwork/internal/db"
	"github.com/alexanderramin/clockwork/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `id, start_time, end_time, paused_ns, hourly_rate`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.Session, position int) error {
	query := `INSERT INTO sessions (id, position, start_time, end_time, paused_ns, hourly_rate)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		position,
		formatTime(s.StartTime),
		nullableTimeToString(s.EndTime),
		int64(s.TotalPaused),
		s.HourlyRate,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// List returns sessions newest first.
func (r *SQLiteSessionRepo) List(ctx context.Context) ([]*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions ORDER BY position ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions`); err != nil {
		return fmt.Errorf("clearing sessions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var (
		s        domain.Session
		startStr string
		endStr   sql.NullString
		pausedNs int64
	)
	if err := row.Scan(&s.ID, &startStr, &endStr, &pausedNs, &s.HourlyRate); err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}

	start, err := parseTime(startStr)
	if err != nil {
		return nil, fmt.Errorf("parsing start_time: %w", err)
	}
	s.StartTime = start
	s.EndTime = parseNullableTime(endStr)
	s.TotalPaused = time.Duration(pausedNs)
	return &s, nil
}
