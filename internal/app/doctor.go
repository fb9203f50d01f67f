package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/config"
	"github.com/blackwell-systems/habitwatch/internal/output"
	"github.com/blackwell-systems/habitwatch/internal/reminder"
	"github.com/blackwell-systems/habitwatch/internal/store"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check whether the habitwatch setup is healthy",
	Long: `Run a series of health checks against your habitwatch configuration
and database. Prints a pass/fail line for each check and a summary of
how many checks passed.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// doctorCheck holds the result of a single health check.
type doctorCheck struct {
	Name    string `json:"name"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// doctorOutput is the JSON-serializable result of the doctor command.
type doctorOutput struct {
	Checks      []doctorCheck `json:"checks"`
	PassedCount int           `json:"passed"`
	TotalCount  int           `json:"total"`
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	var checks []doctorCheck

	// 1. Config directory exists and is a directory.
	checks = append(checks, checkConfigDir())

	// 2. Database file exists and opens; the open handle feeds the
	// schema, integrity, and count checks.
	dbCheck, db := checkDatabase(cfg)
	checks = append(checks, dbCheck)
	if db != nil {
		defer func() { _ = db.Close() }()
		checks = append(checks, checkSchema(db))
		checks = append(checks, checkIntegrity(db))
		checks = append(checks, checkHabits(db))
		checks = append(checks, checkEntries(db))
	}

	// 3. Watch daemon PID file exists and the process is running.
	checks = append(checks, checkWatchDaemon())

	// 4. A desktop notifier better than stderr is available.
	checks = append(checks, checkNotifier())

	// Count passes.
	passed := 0
	for _, c := range checks {
		if c.Passed {
			passed++
		}
	}

	if flagJSON {
		out := doctorOutput{
			Checks:      checks,
			PassedCount: passed,
			TotalCount:  len(checks),
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	// Render styled output.
	fmt.Println(output.Section("Doctor"))
	fmt.Println()

	for _, c := range checks {
		renderDoctorCheck(c)
	}

	fmt.Println()
	summary := fmt.Sprintf("%d/%d checks passed", passed, len(checks))
	if passed == len(checks) {
		fmt.Printf(" %s\n\n", output.StyleSuccess.Render(summary))
	} else {
		fmt.Printf(" %s\n\n", output.StyleWarning.Render(summary))
	}

	return nil
}

// renderDoctorCheck prints a single check result line.
func renderDoctorCheck(c doctorCheck) {
	var indicator string
	if c.Passed {
		indicator = output.StyleSuccess.Render("✓")
	} else {
		indicator = output.StyleWarning.Render("✗")
	}
	label := output.StyleBold.Render(c.Name)
	detail := output.StyleMuted.Render(c.Message)
	fmt.Printf("  %s  %-30s %s\n", indicator, label, detail)
}

// checkConfigDir verifies that the config directory exists.
func checkConfigDir() doctorCheck {
	dir := config.ConfigDir()
	info, err := os.Stat(dir)
	if err != nil {
		return doctorCheck{
			Name:    "Config directory",
			Passed:  false,
			Message: fmt.Sprintf("not found: %s (created on first use)", dir),
		}
	}
	if !info.IsDir() {
		return doctorCheck{
			Name:    "Config directory",
			Passed:  false,
			Message: fmt.Sprintf("path exists but is not a directory: %s", dir),
		}
	}
	return doctorCheck{
		Name:    "Config directory",
		Passed:  true,
		Message: dir,
	}
}

// checkDatabase verifies that the database file exists and opens. The
// returned handle is nil when the check failed.
func checkDatabase(cfg *config.Config) (doctorCheck, *store.DB) {
	dbPath := cfg.DBPath()
	if _, err := os.Stat(dbPath); err != nil {
		return doctorCheck{
			Name:    "Database",
			Passed:  false,
			Message: fmt.Sprintf("not found at %s (run 'habitwatch add' to create)", dbPath),
		}, nil
	}

	db, err := store.Open(dbPath)
	if err != nil {
		return doctorCheck{
			Name:    "Database",
			Passed:  false,
			Message: fmt.Sprintf("failed to open: %v", err),
		}, nil
	}
	return doctorCheck{
		Name:    "Database",
		Passed:  true,
		Message: dbPath,
	}, db
}

// checkSchema verifies the schema version matches the current one.
func checkSchema(db *store.DB) doctorCheck {
	version, err := db.SchemaVersion()
	if err != nil {
		return doctorCheck{
			Name:    "Schema version",
			Passed:  false,
			Message: fmt.Sprintf("error reading version: %v", err),
		}
	}
	if version != store.CurrentSchemaVersion {
		return doctorCheck{
			Name:    "Schema version",
			Passed:  false,
			Message: fmt.Sprintf("version %d, expected %d", version, store.CurrentSchemaVersion),
		}
	}
	return doctorCheck{
		Name:    "Schema version",
		Passed:  true,
		Message: fmt.Sprintf("version %d (current)", version),
	}
}

// checkIntegrity runs SQLite's integrity check.
func checkIntegrity(db *store.DB) doctorCheck {
	verdict, err := db.IntegrityCheck()
	if err != nil {
		return doctorCheck{
			Name:    "Database integrity",
			Passed:  false,
			Message: fmt.Sprintf("integrity check failed: %v", err),
		}
	}
	if verdict != "ok" {
		return doctorCheck{
			Name:    "Database integrity",
			Passed:  false,
			Message: verdict,
		}
	}
	return doctorCheck{
		Name:    "Database integrity",
		Passed:  true,
		Message: "ok",
	}
}

// checkHabits verifies that at least one habit exists.
func checkHabits(db *store.DB) doctorCheck {
	total, err := db.CountHabits(store.FilterAll)
	if err != nil {
		return doctorCheck{
			Name:    "Habits",
			Passed:  false,
			Message: fmt.Sprintf("error counting habits: %v", err),
		}
	}
	if total == 0 {
		return doctorCheck{
			Name:    "Habits",
			Passed:  false,
			Message: "no habits yet (run 'habitwatch add')",
		}
	}
	active, err := db.CountHabits(store.FilterActive)
	if err != nil {
		return doctorCheck{
			Name:    "Habits",
			Passed:  false,
			Message: fmt.Sprintf("error counting habits: %v", err),
		}
	}
	return doctorCheck{
		Name:    "Habits",
		Passed:  true,
		Message: fmt.Sprintf("%d habits (%d active)", total, active),
	}
}

// checkEntries verifies that something has been tracked.
func checkEntries(db *store.DB) doctorCheck {
	n, err := db.CountEntries()
	if err != nil {
		return doctorCheck{
			Name:    "Tracking entries",
			Passed:  false,
			Message: fmt.Sprintf("error counting entries: %v", err),
		}
	}
	if n == 0 {
		return doctorCheck{
			Name:    "Tracking entries",
			Passed:  false,
			Message: "nothing tracked yet (run 'habitwatch track')",
		}
	}
	return doctorCheck{
		Name:    "Tracking entries",
		Passed:  true,
		Message: fmt.Sprintf("%d entries", n),
	}
}

// checkWatchDaemon checks whether the watch daemon PID file exists and
// the process is running.
func checkWatchDaemon() doctorCheck {
	pid, err := readPID()
	if err != nil {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: "not running (no PID file)",
		}
	}
	if !processExists(pid) {
		return doctorCheck{
			Name:    "Watch daemon",
			Passed:  false,
			Message: fmt.Sprintf("PID %d is not running (stale PID file)", pid),
		}
	}
	return doctorCheck{
		Name:    "Watch daemon",
		Passed:  true,
		Message: fmt.Sprintf("running (PID %d)", pid),
	}
}

// checkNotifier reports which desktop notification command alerts will
// use.
func checkNotifier() doctorCheck {
	name := reminder.NotifierName()
	if name == "stderr" {
		return doctorCheck{
			Name:    "Desktop notifier",
			Passed:  false,
			Message: "no notifier found (alerts print to stderr)",
		}
	}
	return doctorCheck{
		Name:    "Desktop notifier",
		Passed:  true,
		Message: name,
	}
}
