package service

import (
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// Summary aggregates the ended-session history.
type Summary struct {
	Count         int
	TotalDuration time.Duration
	TotalPaused   time.Duration
	TotalEarnings float64
	First         *time.Time
	Last          *time.Time
}

// AverageRate is earnings per worked hour across the history, or 0 when
// nothing has been worked.
func (s Summary) AverageRate() float64 {
	hours := s.TotalDuration.Hours()
	if hours == 0 {
		return 0
	}
	return s.TotalEarnings / hours
}

// Summarize totals sessions. Each session bills at its own rate; active
// sessions are measured up to now.
func Summarize(sessions []domain.Session, now time.Time) Summary {
	var sum Summary
	for i := range sessions {
		s := &sessions[i]
		sum.Count++
		sum.TotalDuration += s.Duration(now)
		sum.TotalPaused += s.TotalPaused
		sum.TotalEarnings += s.Earnings(now)

		start := s.StartTime
		if sum.First == nil || start.Before(*sum.First) {
			sum.First = &start
		}
		if sum.Last == nil || start.After(*sum.Last) {
			sum.Last = &start
		}
	}
	return sum
}
