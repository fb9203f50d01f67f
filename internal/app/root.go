// Package app contains the Cobra command tree for habitwatch.
package app

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagJSON    bool
	flagVerbose bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "habitwatch",
	Short: "Track habits, streaks, and completion rates from the terminal",
	Long: `habitwatch is a personal habit tracker for the terminal. Define habits,
mark daily completions, and watch streaks, completion rates, and trends
build up over time. Data lives in a local SQLite database.

Run 'habitwatch today' for a quick look at the day.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Styled output only when writing to a terminal.
		if flagNoColor || !isTerminal(os.Stdout) {
			output.SetNoColor(true)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("habitwatch", appVersion)
		fmt.Println()
		fmt.Println("Use a subcommand:")
		fmt.Println("  add       Add a new habit to track")
		fmt.Println("  track     Mark a habit complete for a date")
		fmt.Println("  today     Show today's tracking status")
		fmt.Println("  list      List habits with streaks and completions")
		fmt.Println("  stats     Show habit statistics and insights")
		fmt.Println("  chart     Render a completion chart for a habit")
		fmt.Println("  progress  Compare completion-rate bars across habits")
		fmt.Println("  report    Generate a fleet report (table, json, csv, markdown)")
		fmt.Println("  watch     Monitor tracking status and send reminders")
		fmt.Println()
		fmt.Println("Run 'habitwatch --help' for the full command list.")
		return nil
	},
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/habitwatch/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
