package formatter

import (
	"fmt"
	"strings"
	"time"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderHourProgress renders how far the current billed hour has run,
// e.g. [████░░░░░░] 42m. A whole number of hours renders an empty bar.
func RenderHourProgress(elapsed time.Duration, width int) string {
	if width < 2 {
		width = 2
	}
	if elapsed < 0 {
		elapsed = 0
	}
	into := elapsed % time.Hour
	pct := float64(into) / float64(time.Hour)

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleBlue
	if pct >= 0.75 {
		style = StyleGreen
	}
	return fmt.Sprintf("[%s] %s", style.Render(bar), Dim(fmt.Sprintf("%dm", int(into/time.Minute))))
}
