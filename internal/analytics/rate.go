package analytics

import "math"

// CompletionRate converts a completion count over a window length into a
// percentage rounded to one decimal. Non-positive windows yield 0.0. The
// result is deliberately not clamped at 100: a count exceeding the
// window signals a caller bug and should stay visible, not be silently
// repaired.
func CompletionRate(completed, windowDays int) float64 {
	if windowDays <= 0 {
		return 0.0
	}
	return round1(float64(completed) / float64(windowDays) * 100)
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
