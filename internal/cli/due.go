package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/habitloop/habitd/internal/daemon"
)

var dueAt string

func init() {
	dueCmd.Flags().StringVar(&dueAt, "at", "", "Evaluate at an RFC3339 instant (default: now)")
	rootCmd.AddCommand(dueCmd)
}

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List habits due for a reminder across all users",
	RunE:  runDue,
}

func runDue(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	at := time.Now()
	if dueAt != "" {
		at, err = time.Parse(time.RFC3339, dueAt)
		if err != nil {
			return fmt.Errorf("--at must be RFC3339: %w", err)
		}
	}

	batches, err := d.Selector.SelectDue(at)
	if err != nil {
		return err
	}
	if len(batches) == 0 {
		fmt.Println("Nothing due.")
		return nil
	}

	for _, b := range batches {
		fmt.Printf("%s:\n", b.UserID)
		for _, h := range b.Habits {
			fmt.Printf("  %s (streak %d)\n", h.Name, h.Streak)
		}
	}
	return nil
}
