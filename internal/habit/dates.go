package habit

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Dates are handled as calendar days: midnight UTC regardless of where the
// wall-clock time came from. This keeps day arithmetic exact across DST
// transitions and matches the YYYY-MM-DD storage format.

// Day normalizes a time to its calendar day (midnight UTC).
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current local calendar day.
func Today() time.Time {
	return Day(time.Now())
}

// DaysBetween returns the number of calendar days from a to b
// (positive when b is after a).
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}

var offsetPattern = regexp.MustCompile(`^([+-]\d+)d?$`)

// ParseDate parses a user-supplied date string relative to today.
//
// Accepted forms: empty or "today", "yesterday", "tomorrow", relative day
// offsets ("-1", "+7", "-3d"), and explicit dates in YYYY-MM-DD,
// YYYY/MM/DD, MM/DD/YYYY, or MM-DD-YYYY form.
func ParseDate(s string, today time.Time) (time.Time, error) {
	today = Day(today)

	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "today", "now":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	}

	if m := offsetPattern.FindStringSubmatch(s); m != nil {
		offset, err := strconv.Atoi(m[1])
		if err == nil {
			return today.AddDate(0, 0, offset), nil
		}
	}

	layouts := []string{"2006-01-02", "2006/01/02", "01/02/2006", "01-02-2006"}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return Day(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date %q: use YYYY-MM-DD, 'today', 'yesterday', or an offset like '-1d'", s)
}

// FormatRelative renders a date relative to today ("today", "yesterday",
// "3 days ago", "2 weeks ago"), falling back to the ISO form for anything
// further out than a month.
func FormatRelative(d, today time.Time) string {
	delta := DaysBetween(today, d)

	switch {
	case delta == 0:
		return "today"
	case delta == 1:
		return "tomorrow"
	case delta == -1:
		return "yesterday"
	case delta > 1 && delta <= 7:
		return fmt.Sprintf("in %d days", delta)
	case delta < -1 && delta >= -7:
		return fmt.Sprintf("%d days ago", -delta)
	case delta < -7 && delta >= -30:
		weeks := -delta / 7
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	default:
		return Day(d).Format("2006-01-02")
	}
}
