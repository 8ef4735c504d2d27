package repository

import (
	"database/sql"
	"time"
)

// timeLayout keeps nanoseconds so sessions round-trip exactly.
const timeLayout = time.RFC3339Nano

// parseNullableTime parses a nullable column into a *time.Time.
// Returns nil for NULL, empty, or unparseable values.
func parseNullableTime(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(timeLayout, s.String)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// nullableTimeToString converts a *time.Time into a value for SQLite storage.
// Returns nil (SQL NULL) for a nil pointer.
func nullableTimeToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.UTC().Format(timeLayout)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
