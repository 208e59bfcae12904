package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/habitloop/habitd/internal/daemon"
	"github.com/habitloop/habitd/internal/domain"
)

var (
	checkinOutcome string
	checkinDate    string
)

func init() {
	checkinCmd.Flags().StringVarP(&userFlag, "user", "u", "local", "Owning user id")
	checkinCmd.Flags().StringVarP(&checkinOutcome, "outcome", "o", "done", "Outcome: done, skip, or drop")
	checkinCmd.Flags().StringVar(&checkinDate, "date", "", "Check-in day YYYY-MM-DD (default: today)")
	rootCmd.AddCommand(checkinCmd)
}

var checkinCmd = &cobra.Command{
	Use:   "checkin <habit>",
	Short: "Record a check-in outcome for a habit",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckin,
}

func runCheckin(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	outcome, err := parseOutcome(checkinOutcome)
	if err != nil {
		return err
	}

	rec, err := d.DB.Get(userFlag)
	if err != nil {
		return err
	}
	h, err := resolveHabit(rec, args[0])
	if err != nil {
		return err
	}

	today := d.Evaluator.LocalDate(nowUTC(), rec.Preferences.Timezone)
	if checkinDate != "" {
		today, err = domain.ParseDate(checkinDate)
		if err != nil {
			return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
		}
	}

	updated, badges, err := d.CheckIns.CheckIn(userFlag, h.ID, today, outcome)
	if err != nil {
		return err
	}

	fmt.Printf("%s: %s on %s — streak %d\n", updated.Name, outcome, today, updated.Streak)
	for _, b := range badges {
		fmt.Printf("  🏅 %d-day milestone reached!\n", b)
	}
	return nil
}
