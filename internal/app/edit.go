package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/habit"
	"github.com/blackwell-systems/habitwatch/internal/output"
)

var (
	editFlagName        string
	editFlagDescription string
	editFlagFrequency   string
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Edit a habit's name, description, or frequency",
	Long: `Update fields of an existing active habit. Tracking history always
stays attached to the habit, including across renames.

Examples:
  habitwatch edit "Exercise" --name "Morning Exercise"
  habitwatch edit "Read" --frequency weekly
  habitwatch edit "Gym" --description "Strength training"`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editFlagName, "name", "", "New habit name")
	editCmd.Flags().StringVar(&editFlagDescription, "description", "", "New description (empty clears it)")
	editCmd.Flags().StringVar(&editFlagFrequency, "frequency", "", "New frequency: daily, weekly, custom")
	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	nameChanged := cmd.Flags().Changed("name")
	descChanged := cmd.Flags().Changed("description")
	freqChanged := cmd.Flags().Changed("frequency")
	if !nameChanged && !descChanged && !freqChanged {
		return fmt.Errorf("no changes specified (provide at least one of --name, --description, --frequency)")
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	row, err := env.findHabit(args[0])
	if err != nil {
		return err
	}
	if !row.Active() {
		return fmt.Errorf("cannot edit archived habit '%s' (restore it first)", row.Name)
	}

	newName := row.Name
	newDesc := row.Description
	newFreq := row.Frequency
	var changes []string

	if nameChanged {
		newName, err = habit.NormalizeName(editFlagName)
		if err != nil {
			return err
		}
		if newName == row.Name {
			return fmt.Errorf("new name is the same as the current name")
		}
		other, err := env.db.GetHabitByName(newName)
		if err != nil {
			return fmt.Errorf("checking name: %w", err)
		}
		if other != nil {
			if other.Active() {
				return fmt.Errorf("habit '%s' already exists", newName)
			}
			return fmt.Errorf("an archived habit named '%s' exists (restore or delete it first)", newName)
		}
		changes = append(changes, fmt.Sprintf("renamed to '%s'", newName))
	}

	if descChanged {
		newDesc, err = habit.NormalizeDescription(editFlagDescription)
		if err != nil {
			return err
		}
		if newDesc == "" {
			changes = append(changes, "description cleared")
		} else {
			changes = append(changes, "description updated")
		}
	}

	if freqChanged {
		newFreq, err = habit.ParseFrequency(editFlagFrequency)
		if err != nil {
			return err
		}
		changes = append(changes, fmt.Sprintf("frequency %s → %s", row.Frequency, newFreq))
	}

	if err := env.db.UpdateHabit(row.ID, newName, newDesc, newFreq); err != nil {
		return fmt.Errorf("updating habit: %w", err)
	}

	// Cached statistics carry the old name and fields.
	env.invalidateStats(row.Name)

	fmt.Printf("%s Updated habit '%s'\n", output.StyleSuccess.Render("✓"), output.StyleBold.Render(row.Name))
	for _, c := range changes {
		fmt.Printf("  %s\n", output.StyleMuted.Render(c))
	}
	return nil
}
