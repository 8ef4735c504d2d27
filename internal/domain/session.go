package domain

import (
	"time"

	"github.com/google/uuid"
)

// Session is one pause-aware work interval. It is active while EndTime is nil.
type Session struct {
	ID          string
	StartTime   time.Time
	EndTime     *time.Time
	TotalPaused time.Duration
	HourlyRate  float64
}

// NewSession creates an active session that bills at rate.
func NewSession(start time.Time, rate float64) *Session {
	return &Session{
		ID:         uuid.New().String(),
		StartTime:  start.UTC(),
		HourlyRate: rate,
	}
}

// IsEnded reports whether the session has an end time.
func (s *Session) IsEnded() bool {
	return s.EndTime != nil
}

// Duration returns worked time up to EndTime, or up to asOf while the
// session is still active. Never negative.
func (s *Session) Duration(asOf time.Time) time.Duration {
	end := asOf
	if s.EndTime != nil {
		end = *s.EndTime
	}
	d := end.Sub(s.StartTime) - s.TotalPaused
	if d < 0 {
		return 0
	}
	return d
}

// Earnings returns Duration(asOf) billed at the session's own rate.
func (s *Session) Earnings(asOf time.Time) float64 {
	return s.Duration(asOf).Seconds() / 3600 * s.HourlyRate
}

// AddPause folds a finished pause interval into TotalPaused.
func (s *Session) AddPause(d time.Duration) {
	if d <= 0 {
		return
	}
	s.TotalPaused += d
}

// End stamps the end time. An already ended session keeps its first end time.
func (s *Session) End(at time.Time) {
	if s.EndTime != nil {
		return
	}
	end := at.UTC()
	s.EndTime = &end
}

// Clone returns a deep copy so callers can't mutate timer-owned state.
func (s *Session) Clone() *Session {
	c := *s
	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}
	return &c
}
