package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/clockwork/internal/domain"
	"github.com/alexanderramin/clockwork/internal/service"
	"github.com/alexanderramin/clockwork/internal/timer"
)

// FormatSessionTable renders the history newest first. Active sessions
// are measured up to now.
func FormatSessionTable(sessions []domain.Session, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No sessions yet.") + "\n"
	}

	headers := []string{"WHEN", "DURATION", "HOURS", "RATE", "EARNED", "ID"}
	rows := make([][]string, 0, len(sessions))
	for i := range sessions {
		s := &sessions[i]
		d := s.Duration(now)
		rows = append(rows, []string{
			domain.FormatTimeRange(s),
			domain.FormatClock(d),
			domain.FormatHours(d),
			Dim(domain.FormatRate(s.HourlyRate)),
			Money(s.Earnings(now)),
			TruncID(s.ID),
		})
	}
	return RenderTable(headers, rows, 1, 2, 3, 4)
}

// FormatStatus renders history totals together with the live timer state.
func FormatStatus(sum service.Summary, snap timer.Snapshot) string {
	pairs := [][2]string{
		{"State", StateIndicator(snap.State)},
	}
	if snap.Current != nil {
		pairs = append(pairs,
			[2]string{"Current", domain.FormatClock(snap.ElapsedTime) + "  " + Money(snap.CurrentEarnings())},
		)
	}
	pairs = append(pairs,
		[2]string{"Sessions", fmt.Sprintf("%d", sum.Count)},
		[2]string{"Total time", domain.FormatClock(sum.TotalDuration) + " " + Dim("("+domain.FormatHours(sum.TotalDuration)+")")},
		[2]string{"Earned", Money(sum.TotalEarnings)},
	)
	if sum.TotalPaused > 0 {
		pairs = append(pairs, [2]string{"Paused", domain.FormatClock(sum.TotalPaused)})
	}
	if sum.Count > 0 {
		pairs = append(pairs, [2]string{"Average", domain.FormatRate(sum.AverageRate())})
	}
	if sum.First != nil && sum.Last != nil {
		pairs = append(pairs, [2]string{"Range", domain.FormatShortTime(*sum.First) + " … " + domain.FormatShortTime(*sum.Last)})
	}
	pairs = append(pairs, [2]string{"Rate", domain.FormatRate(snap.HourlyRate)})

	return RenderBox("Clockwork", RenderKeyValues(pairs))
}

// FormatStatusLine is the one-line summary shown at the top of the
// dashboard: "IDLE @ $100/hr" or "RUNNING 00:12:03 $20.00".
func FormatStatusLine(snap timer.Snapshot) string {
	label := strings.ToUpper(string(snap.State))
	styled := StateColor(snap.State).Bold(true).Render(label)
	if snap.Current == nil {
		return styled + " " + Dim("@ "+domain.FormatRateWhole(snap.HourlyRate))
	}
	return fmt.Sprintf("%s %s %s", styled, Bold(domain.FormatClock(snap.ElapsedTime)), Money(snap.CurrentEarnings()))
}
