package output

import (
	"fmt"
	"strings"
)

// DefaultBarWidth is the character width of completion rate bars.
const DefaultBarWidth = 25

// RateBar renders a bracketed progress bar for a completion rate with a
// rate and count suffix. Example: "[██████████░░░░░░░░░░░░░░░]  40.0% (12/30)"
// Rates above 100% fill the whole bar rather than overflowing it.
func RateBar(rate float64, completed, total, width int) string {
	if width <= 0 {
		width = DefaultBarWidth
	}
	filled := 0
	if rate > 0 {
		filled = int(float64(width) * rate / 100.0)
	}
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	var style func(string) string
	switch {
	case rate >= 60:
		style = func(s string) string { return StyleSuccess.Render(s) }
	case rate >= 40:
		style = func(s string) string { return StyleWarning.Render(s) }
	default:
		style = func(s string) string { return StyleError.Render(s) }
	}

	suffix := fmt.Sprintf("%5.1f%% (%d/%d)", rate, completed, total)
	return fmt.Sprintf("[%s] %s", style(bar), StyleMuted.Render(suffix))
}

// StreakMarker returns an emoji-tagged streak count: a trophy from 30 days,
// a star from 7, a flame below that. Zero streaks return an empty string.
func StreakMarker(streak int) string {
	switch {
	case streak <= 0:
		return ""
	case streak >= 30:
		return fmt.Sprintf("🏆 %d", streak)
	case streak >= 7:
		return fmt.Sprintf("⭐ %d", streak)
	default:
		return fmt.Sprintf("🔥 %d", streak)
	}
}

// TrendArrow returns a styled trend indicator for a delta value.
// Positive delta shows an up arrow, negative shows down, zero shows a dash.
// The higherIsBetter parameter indicates whether higher values are better.
func TrendArrow(delta float64, higherIsBetter bool) string {
	if delta == 0 {
		return StyleMuted.Render("─")
	}

	isPositive := delta > 0
	isImproved := (isPositive && higherIsBetter) || (!isPositive && !higherIsBetter)

	var arrow string
	if isPositive {
		arrow = fmt.Sprintf("▲ +%.1f", delta)
	} else {
		arrow = fmt.Sprintf("▼ %.1f", delta)
	}

	if isImproved {
		return StyleSuccess.Render(arrow)
	}
	return StyleError.Render(arrow)
}

// Section prints a styled section header with a horizontal rule.
func Section(title string) string {
	header := StyleHeader.Render(title)
	rule := StyleMuted.Render(strings.Repeat("─", 66))
	return fmt.Sprintf("\n %s\n %s", header, rule)
}
