package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the top-level habitwatch configuration.
type Config struct {
	Database Database `mapstructure:"database"`
	Output   Output   `mapstructure:"output"`
	Reminder Reminder `mapstructure:"reminder"`
	Cache    Cache    `mapstructure:"cache"`
}

// Database defines storage locations.
type Database struct {
	Path string `mapstructure:"path"`
}

// Output defines output preferences.
type Output struct {
	Color bool `mapstructure:"color"`
	Width int  `mapstructure:"width"`
}

// Reminder defines when the watch mode starts nagging.
type Reminder struct {
	// Hour is the hour of day (0-23) after which untracked habits
	// raise a reminder.
	Hour int `mapstructure:"hour"`

	// StreakRiskHour is the hour after which an endangered streak
	// (yesterday tracked, today not) escalates to critical.
	StreakRiskHour int `mapstructure:"streak_risk_hour"`

	// Milestones are the streak lengths worth celebrating. An empty
	// list disables milestone alerts.
	Milestones []int `mapstructure:"milestones"`
}

// Cache defines statistics cache lifetimes in seconds.
type Cache struct {
	StatsTTLSeconds int `mapstructure:"stats_ttl_seconds"`
	HabitTTLSeconds int `mapstructure:"habit_ttl_seconds"`
}

// StatsTTL returns the stats cache lifetime as a duration.
func (c Cache) StatsTTL() time.Duration {
	return time.Duration(c.StatsTTLSeconds) * time.Second
}

// HabitTTL returns the habit cache lifetime as a duration.
func (c Cache) HabitTTL() time.Duration {
	return time.Duration(c.HabitTTLSeconds) * time.Second
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("database.path", DefaultDBPath)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.width", DefaultOutput.Width)
	v.SetDefault("reminder.hour", DefaultReminder.Hour)
	v.SetDefault("reminder.streak_risk_hour", DefaultReminder.StreakRiskHour)
	v.SetDefault("reminder.milestones", DefaultReminder.Milestones)
	v.SetDefault("cache.stats_ttl_seconds", DefaultCache.StatsTTLSeconds)
	v.SetDefault("cache.habit_ttl_seconds", DefaultCache.HabitTTLSeconds)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.Database.Path = expandPath(cfg.Database.Path)

	return &cfg, nil
}

// DBPath returns the resolved path to the SQLite database.
func (c *Config) DBPath() string {
	return c.Database.Path
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
