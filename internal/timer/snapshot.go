package timer

import (
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
)

// State is the controller's position in the idle/running/paused machine.
type State string

const (
	StateIdle    State = "idle"
	StateRunning State = "running"
	StatePaused  State = "paused"
)

// Snapshot is a copy of the published timer state. Mutating it has no
// effect on the timer.
type Snapshot struct {
	// Version increases with every published change, so subscribers can
	// drop snapshots that arrive out of order.
	Version     uint64
	State       State
	Current     *domain.Session
	Sessions    []domain.Session
	IsPaused    bool
	IsRunning   bool
	ElapsedTime time.Duration
	HourlyRate  float64
}

// CurrentEarnings bills ElapsedTime at the active session's own rate.
func (s Snapshot) CurrentEarnings() float64 {
	if s.Current == nil {
		return 0
	}
	return s.ElapsedTime.Seconds() / 3600 * s.Current.HourlyRate
}

// FindSession returns the history entry with id.
func (s Snapshot) FindSession(id string) (domain.Session, bool) {
	for _, sess := range s.Sessions {
		if sess.ID == id {
			return sess, true
		}
	}
	return domain.Session{}, false
}

func copySessions(in []domain.Session) []domain.Session {
	out := make([]domain.Session, len(in))
	for i := range in {
		out[i] = *in[i].Clone()
	}
	return out
}
