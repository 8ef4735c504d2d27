package domain

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatClock renders d as HH:MM:SS using whole seconds.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// FormatHours renders d as decimal hours, e.g. "1.25h".
func FormatHours(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	return fmt.Sprintf("%.2fh", d.Hours())
}

// FormatMoney renders an amount in dollars with two decimals and digit grouping.
func FormatMoney(v float64) string {
	return moneyPrinter.Sprintf("$%.2f", v)
}

// FormatRate renders a rate with cents, e.g. "$82.50/hr".
func FormatRate(rate float64) string {
	return moneyPrinter.Sprintf("$%.2f/hr", rate)
}

// FormatRateWhole renders a rate in whole dollars for the compact idle
// line: "$100/hr".
func FormatRateWhole(rate float64) string {
	return moneyPrinter.Sprintf("$%.0f/hr", rate)
}

// FormatShortTime renders a timestamp in local time without a locale, e.g. "Jan 2 15:04".
func FormatShortTime(t time.Time) string {
	return t.Local().Format("Jan 2 15:04")
}

// FormatTimeRange renders "start – end" for ended sessions and the start alone otherwise.
func FormatTimeRange(s *Session) string {
	start := FormatShortTime(s.StartTime)
	if s.EndTime == nil {
		return start
	}
	return start + " – " + s.EndTime.Local().Format("15:04")
}
