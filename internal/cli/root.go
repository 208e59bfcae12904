// Package cli implements the habitd command-line interface using Cobra.
// Each subcommand maps to a core operation (serve, habit, checkin,
// history, due).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "habitd",
	Short: "habitd — Track habits, keep streaks, get reminded",
	Long: `habitd tracks recurring personal habits for many independent users,
preserving streaks across daily, weekly, monthly, and fixed-interval
schedules, and reminding each user in their own time zone.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// userFlag names the owning user for habit commands.
var userFlag string

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
