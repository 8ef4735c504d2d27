package service

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// ExportVersion identifies the export document layout.
const ExportVersion = 1

// ExportDocument is the JSON layout written by `clockwork session export`.
type ExportDocument struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exported_at"`
	HourlyRate float64         `json:"hourly_rate"`
	Sessions   []ExportSession `json:"sessions"`
	Totals     ExportTotals    `json:"totals"`
}

// ExportSession is one history entry with derived duration and earnings.
type ExportSession struct {
	ID            string     `json:"id"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	PausedSeconds float64    `json:"paused_seconds"`
	HourlyRate    float64    `json:"hourly_rate"`
	Seconds       int64      `json:"duration_seconds"`
	Earnings      float64    `json:"earnings"`
}

// ExportTotals mirrors Summary.
type ExportTotals struct {
	Count    int     `json:"count"`
	Seconds  int64   `json:"duration_seconds"`
	Earnings float64 `json:"earnings"`
}

// BuildExport converts the history into an ExportDocument.
func BuildExport(sessions []domain.Session, rate float64, now time.Time) ExportDocument {
	doc := ExportDocument{
		Version:    ExportVersion,
		ExportedAt: now.UTC(),
		HourlyRate: rate,
		Sessions:   make([]ExportSession, 0, len(sessions)),
	}
	for i := range sessions {
		s := &sessions[i]
		doc.Sessions = append(doc.Sessions, ExportSession{
			ID:            s.ID,
			StartTime:     s.StartTime,
			EndTime:       s.EndTime,
			PausedSeconds: s.TotalPaused.Seconds(),
			HourlyRate:    s.HourlyRate,
			Seconds:       int64(s.Duration(now) / time.Second),
			Earnings:      roundCents(s.Earnings(now)),
		})
	}
	sum := Summarize(sessions, now)
	doc.Totals = ExportTotals{
		Count:    sum.Count,
		Seconds:  int64(sum.TotalDuration / time.Second),
		Earnings: roundCents(sum.TotalEarnings),
	}
	return doc
}

// WriteExport writes doc as indented JSON.
func WriteExport(w io.Writer, doc ExportDocument) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	return nil
}

// roundCents keeps non-finite values as they are so the encoder rejects them.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
