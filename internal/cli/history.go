package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/habitloop/habitd/internal/app/history"
	"github.com/habitloop/habitd/internal/daemon"
)

func init() {
	historyCmd.Flags().StringVarP(&userFlag, "user", "u", "local", "Owning user id")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history <habit>",
	Short: "Show a habit's reconstructed day-by-day timeline",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec, err := d.DB.Get(userFlag)
	if err != nil {
		return err
	}
	h, err := resolveHabit(rec, args[0])
	if err != nil {
		return err
	}

	today := d.Evaluator.LocalDate(nowUTC(), rec.Preferences.Timezone)
	timeline := history.Reconstruct(h, today)
	if len(timeline) == 0 {
		fmt.Println("No activity recorded yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tOUTCOME\tSTREAK")
	for _, e := range timeline {
		fmt.Fprintf(w, "%s\t%s\t%d\n", e.Date, e.Outcome, e.StreakAfter)
	}
	return w.Flush()
}
