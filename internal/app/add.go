package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
)

var (
	addFlagFrequency   string
	addFlagDescription string
)

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a new habit to track",
	Long: `Create a new habit with the given frequency. If a habit with the same
name was previously archived, it is restored instead of creating a
duplicate.

Examples:
  habitwatch add "Exercise"
  habitwatch add "Read" --frequency daily --description "Read for 30 minutes"
  habitwatch add "Gym" -f weekly`,
	Args: cobra.ExactArgs(1),
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&addFlagFrequency, "frequency", "f", "daily", "Habit frequency: daily, weekly, custom")
	addCmd.Flags().StringVarP(&addFlagDescription, "description", "d", "", "Optional habit description (max 500 characters)")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	name, err := habit.NormalizeName(args[0])
	if err != nil {
		return err
	}
	frequency, err := habit.ParseFrequency(addFlagFrequency)
	if err != nil {
		return err
	}
	description, err := habit.NormalizeDescription(addFlagDescription)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	existing, err := env.db.GetHabitByName(name)
	if err != nil {
		return fmt.Errorf("looking up habit: %w", err)
	}

	if existing != nil {
		if existing.Active() {
			return fmt.Errorf("habit '%s' already exists (track it with 'habitwatch track \"%s\"')", name, name)
		}

		// Archived habit of the same name: reactivate it and take the
		// new frequency/description, history intact.
		if err := env.db.RestoreHabit(existing.ID); err != nil {
			return fmt.Errorf("restoring habit: %w", err)
		}
		if err := env.db.UpdateHabit(existing.ID, name, description, frequency); err != nil {
			return fmt.Errorf("updating habit: %w", err)
		}
		env.invalidateStats(name)

		fmt.Printf("%s Restored habit '%s' from the archive (%s)\n",
			output.StyleSuccess.Render("✓"), output.StyleBold.Render(name), frequency)
		printAddHints(name)
		return nil
	}

	row, err := env.db.CreateHabit(name, description, frequency)
	if err != nil {
		return fmt.Errorf("creating habit: %w", err)
	}
	env.invalidateStats(name)

	fmt.Printf("%s Added habit '%s' (%s)\n",
		output.StyleSuccess.Render("✓"), output.StyleBold.Render(row.Name), row.Frequency)
	if row.Description != "" {
		fmt.Printf("  %s\n", output.StyleMuted.Render(row.Description))
	}
	printAddHints(name)
	return nil
}

func printAddHints(name string) {
	fmt.Println()
	fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Track it:  habitwatch track \"%s\"", name)))
	fmt.Printf(" %s\n", output.StyleMuted.Render("See today: habitwatch today"))
}
