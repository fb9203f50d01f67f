// Package config provides configuration loading and defaults for habitwatch.
package config

// DefaultConfigDir is the default location for habitwatch configuration.
const DefaultConfigDir = "~/.config/habitwatch"

// DefaultDBName is the filename for the SQLite database.
const DefaultDBName = "habitwatch.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultDBPath is the default SQLite database location.
const DefaultDBPath = DefaultConfigDir + "/" + DefaultDBName

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color: true,
	Width: 80,
}

// DefaultReminder holds the default reminder thresholds. Untracked
// habits get a nudge after 18:00 and endangered streaks escalate
// after 20:00; milestones follow the classic streak lengths.
var DefaultReminder = Reminder{
	Hour:           18,
	StreakRiskHour: 20,
	Milestones:     []int{7, 14, 30, 60, 100, 365},
}

// DefaultCache holds the default statistics cache lifetimes. Stats go
// stale fast once tracking starts; habit rows change rarely.
var DefaultCache = Cache{
	StatsTTLSeconds: 60,
	HabitTTLSeconds: 180,
}
