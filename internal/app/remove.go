package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/habitwatch/internal/output"
)

var (
	removeFlagYes bool
	deleteFlagYes bool
)

var removeCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Archive a habit, keeping its history",
	Long: `Archive a habit without deleting its tracking data. Archived habits
drop out of daily views but can be restored at any time.

Examples:
  habitwatch remove "Old Habit"
  habitwatch remove "Old Habit" --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runRemove,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Permanently delete a habit and all its history",
	Long: `Permanently delete a habit and every tracking entry it has. This
cannot be undone. Prefer 'habitwatch remove' to archive instead.

Examples:
  habitwatch delete "Unwanted Habit"
  habitwatch delete "Unwanted Habit" --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var restoreCmd = &cobra.Command{
	Use:   "restore <name>",
	Short: "Restore an archived habit",
	Long: `Bring an archived habit back to active tracking. All of its history
is still there.

Examples:
  habitwatch restore "Exercise"`,
	Args: cobra.ExactArgs(1),
	RunE: runRestore,
}

func init() {
	removeCmd.Flags().BoolVarP(&removeFlagYes, "yes", "y", false, "Skip the confirmation prompt")
	deleteCmd.Flags().BoolVarP(&deleteFlagYes, "yes", "y", false, "Skip the confirmation prompts")
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(restoreCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
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
		fmt.Printf("%s Habit '%s' is already archived.\n", output.StyleWarning.Render("!"), row.Name)
		return nil
	}

	if !removeFlagYes {
		if !confirm(fmt.Sprintf("Archive habit '%s'? (tracking data will be preserved)", row.Name)) {
			fmt.Println("Operation cancelled.")
			return nil
		}
	}

	if err := env.db.ArchiveHabit(row.ID); err != nil {
		return err
	}
	env.invalidateStats(row.Name)

	fmt.Printf("%s Archived habit '%s'\n", output.StyleWarning.Render("✓"), output.StyleBold.Render(row.Name))
	fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Restore:  habitwatch restore \"%s\"", row.Name)))
	fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Delete:   habitwatch delete \"%s\"", row.Name)))
	return nil
}

func runDelete(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	row, err := env.findHabit(args[0])
	if err != nil {
		return err
	}

	if !deleteFlagYes {
		fmt.Println(output.StyleError.Render("⚠️  WARNING: PERMANENT DELETION"))
		fmt.Printf("This will permanently delete habit '%s' and ALL its tracking data.\n", output.StyleBold.Render(row.Name))
		fmt.Printf("This action %s.\n", output.StyleError.Render("CANNOT BE UNDONE"))
		fmt.Println()

		if !confirm("Do you really want to permanently delete this habit?") {
			fmt.Println("Operation cancelled.")
			return nil
		}

		// Second confirmation: the exact name must be typed back.
		fmt.Printf("\nTo confirm, please type the habit name exactly: %s\n", output.StyleBold.Render(row.Name))
		if promptLine("Habit name") != row.Name {
			return fmt.Errorf("habit name does not match, operation cancelled")
		}
	}

	if err := env.db.DeleteHabit(row.ID); err != nil {
		return err
	}
	env.invalidateStats(row.Name)

	fmt.Printf("%s Permanently deleted habit '%s' and all its data\n", output.StyleWarning.Render("✗"), output.StyleBold.Render(row.Name))
	return nil
}

func runRestore(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer func() { _ = env.Close() }()

	row, err := env.findHabit(args[0])
	if err != nil {
		return err
	}
	if row.Active() {
		fmt.Printf("%s Habit '%s' is already active.\n", output.StyleWarning.Render("!"), row.Name)
		return nil
	}

	if err := env.db.RestoreHabit(row.ID); err != nil {
		return err
	}
	env.invalidateStats(row.Name)

	fmt.Printf("%s Restored habit '%s'\n", output.StyleSuccess.Render("✓"), output.StyleBold.Render(row.Name))
	fmt.Printf(" %s\n", output.StyleMuted.Render(fmt.Sprintf("Start tracking again: habitwatch track \"%s\"", row.Name)))
	return nil
}

// confirm prompts for a yes/no answer on stdin. Anything but y or yes
// declines.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// promptLine reads one trimmed line from stdin.
func promptLine(prompt string) string {
	fmt.Printf("%s: ", prompt)
	line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	return strings.TrimSpace(line)
}
