// Package analytics computes streaks, completion rates, and chart data from
// habit completion histories. All functions are pure: they operate on value
// snapshots handed in by the caller and never touch the store.
package analytics

import "time"

// HabitInfo is a value snapshot of a habit, decoupled from storage rows.
type HabitInfo struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Frequency string    `json:"frequency"`
	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`
}

// Entry is a single completed day, with the optional note attached at
// tracking time.
type Entry struct {
	Date time.Time `json:"date"`
	Note string    `json:"note,omitempty"`
}

// Stats is the full statistics record for one habit over one period.
type Stats struct {
	// Habit is the habit name the statistics belong to.
	Habit string `json:"habit"`

	// Period is the period token the window was resolved from.
	Period string `json:"period"`

	// TotalCompletions is the number of completed days inside the window.
	TotalCompletions int `json:"total_completions"`

	// CurrentStreak is the streak ending at today or yesterday, computed
	// from the window-filtered dates only.
	CurrentStreak int `json:"current_streak"`

	// LongestStreak is the longest consecutive run inside the window.
	LongestStreak int `json:"longest_streak"`

	// CompletionRate is completions over window days as a percentage,
	// rounded to one decimal.
	CompletionRate float64 `json:"completion_rate"`

	CreatedAt time.Time `json:"created_at"`
	Active    bool      `json:"active"`

	// Recent holds up to the 10 most recent entries in the window, in
	// ascending date order. Display layers that want newest-first
	// reverse it themselves.
	Recent []Entry `json:"recent"`
}

// HabitSummary is the per-habit line of the cross-habit view. Longest
// streak is deliberately absent: the fleet view only reports the current
// streak.
type HabitSummary struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Frequency      string  `json:"frequency"`
	Active         bool    `json:"active"`
	Completions    int     `json:"completions"`
	CompletionRate float64 `json:"completion_rate"`
	CurrentStreak  int     `json:"current_streak"`
}

// Summary is the fleet-level rollup across all habits.
type Summary struct {
	TotalHabits      int `json:"total_habits"`
	ActiveHabits     int `json:"active_habits"`
	TotalCompletions int `json:"total_completions"`

	// AverageCompletionRate is the unweighted mean of per-habit rates,
	// rounded to one decimal. A habit created yesterday counts the same
	// as one tracked for a year.
	AverageCompletionRate float64 `json:"average_completion_rate"`
}

// Overall bundles the per-habit summaries with the fleet rollup. The
// slice preserves the caller's habit order; sorting is a display concern.
type Overall struct {
	Habits  []HabitSummary `json:"habits"`
	Summary Summary        `json:"summary"`
}

// Point is one day of a dense chart sequence.
type Point struct {
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// ChartData is the dense day-by-day view of one habit over a bounded
// window, shaped for calendar and heatmap rendering.
type ChartData struct {
	HabitName string `json:"habit_name"`
	Period    string `json:"period"`

	// Points covers every day in the window in ascending order, one
	// entry per calendar day with no gaps.
	Points []Point `json:"points"`

	CompletionRate float64 `json:"completion_rate"`
	TotalDays      int     `json:"total_days"`
	CompletedDays  int     `json:"completed_days"`

	// Streaks lists every maximal run of completed days in the window,
	// in order of appearance.
	Streaks []int `json:"streaks"`

	// LongestStreak is the maximum of Streaks (0 when empty).
	LongestStreak int `json:"longest_streak"`

	// CurrentStreak is the trailing run of completed days at the end of
	// the window, 0 if the last day is incomplete. It is clipped to the
	// window and can differ from the grace-window streak in Stats.
	CurrentStreak int `json:"current_streak"`
}

// Trend direction labels.
const (
	TrendStrongUpward       = "strong upward"
	TrendSlightUpward       = "slight upward"
	TrendStable             = "stable"
	TrendSlightDownward     = "slight downward"
	TrendConcerningDownward = "concerning downward"
)

// Trend compares the early half of a dense sequence against the recent
// half.
type Trend struct {
	// Direction is one of the Trend* labels.
	Direction string `json:"direction"`

	// EarlyRate and RecentRate are the completion percentages of the two
	// halves, rounded to one decimal.
	EarlyRate  float64 `json:"early_rate"`
	RecentRate float64 `json:"recent_rate"`

	// Diff is the recent-minus-early percentage-point change, rounded
	// to one decimal.
	Diff float64 `json:"diff"`
}
