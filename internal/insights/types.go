// Package insights provides the rule engine that turns habit statistics
// into the observations shown by the stats, progress, and insights commands.
package insights

// Priority levels for insights.
const (
	PriorityHigh   = 1
	PriorityMedium = 2
	PriorityLow    = 3
)

// Insight is a single observation about the tracked habits.
type Insight struct {
	Category string  `json:"category"`
	Priority int     `json:"priority"`
	Message  string  `json:"message"`
	Score    float64 `json:"score"`
}

// Context provides all data needed by insight rules. It is assembled from
// computed statistics before being passed to the engine; rules never touch
// the store.
type Context struct {
	// Period is the analysis window the statistics were computed over.
	Period string `json:"period"`

	// Habits holds one entry per habit, in no particular order.
	Habits []HabitContext `json:"habits"`

	// AverageRate is the unweighted mean completion rate across Habits.
	AverageRate float64 `json:"average_rate"`

	// ActiveCount is the number of habits not archived.
	ActiveCount int `json:"active_count"`

	// TotalCount is the number of habits including archived ones.
	TotalCount int `json:"total_count"`
}

// HabitContext provides per-habit data for insight rules.
type HabitContext struct {
	Name           string  `json:"name"`
	CompletionRate float64 `json:"completion_rate"`
	CurrentStreak  int     `json:"current_streak"`
	Active         bool    `json:"active"`

	// TrendDirection is one of the analytics trend constants, or empty
	// when no trend was computed for this habit.
	TrendDirection string `json:"trend_direction,omitempty"`

	// TrendChange is the recent-minus-early percentage-point change that
	// produced TrendDirection.
	TrendChange float64 `json:"trend_change,omitempty"`
}

// Rule is a function that examines the context and produces zero or more
// insights.
type Rule func(ctx *Context) []Insight
