package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/habitloop/habitd/internal/app/schedule"
	"github.com/habitloop/habitd/internal/daemon"
	"github.com/habitloop/habitd/internal/domain"
)

var (
	habitType      string
	habitAt        string
	habitTZ        string
	habitWeekdays  string
	habitMonthDays string
	habitEvery     int
	habitStart     string
)

func init() {
	habitCmd.PersistentFlags().StringVarP(&userFlag, "user", "u", "local", "Owning user id")

	habitAddCmd.Flags().StringVar(&habitType, "type", "", "Schedule type: daily, weekly, monthly, interval (default: daily reminder)")
	habitAddCmd.Flags().StringVar(&habitAt, "at", "09:00", "Reminder time HH:MM")
	habitAddCmd.Flags().StringVar(&habitTZ, "tz", "", "IANA time zone (default: user preference)")
	habitAddCmd.Flags().StringVar(&habitWeekdays, "days", "", "Weekly: days of week, 0-6 with 0=Sunday (e.g. 1,5)")
	habitAddCmd.Flags().StringVar(&habitMonthDays, "month-days", "", "Monthly: days of month, 1-31 (e.g. 1,15)")
	habitAddCmd.Flags().IntVar(&habitEvery, "every", 0, "Interval: every N days")
	habitAddCmd.Flags().StringVar(&habitStart, "start", "", "Interval: start date YYYY-MM-DD (default: creation day)")

	habitCmd.AddCommand(habitAddCmd)
	habitCmd.AddCommand(habitListCmd)
	rootCmd.AddCommand(habitCmd)
}

var habitCmd = &cobra.Command{
	Use:   "habit",
	Short: "Manage tracked habits",
}

var habitAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a habit with an optional recurrence schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runHabitAdd,
}

func runHabitAdd(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	sched, err := buildSchedule()
	if err != nil {
		return err
	}
	if sched != nil {
		if err := schedule.Validate(*sched); err != nil {
			return err
		}
	}

	var created domain.Habit
	err = d.CheckIns.Update(userFlag, func(rec *domain.UserRecord) error {
		created = domain.Habit{
			ID:               uuid.NewString(),
			UserID:           userFlag,
			Name:             args[0],
			CreatedAt:        d.Evaluator.LocalDate(nowUTC(), rec.Preferences.Timezone),
			Schedule:         sched,
			RemindersEnabled: true,
		}
		rec.Habits = append(rec.Habits, created)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Created %q (%s)\n", created.Name, created.ID)
	if sched != nil {
		fmt.Printf("  %s\n", schedule.Describe(*sched))
	} else {
		fmt.Printf("  Daily reminder at the default time\n")
	}
	return nil
}

// buildSchedule turns the flags into a schedule, or nil for the daily
// default.
func buildSchedule() (*domain.Schedule, error) {
	if habitType == "" {
		return nil, nil
	}

	hour, minute, err := parseHHMM(habitAt)
	if err != nil {
		return nil, err
	}

	sched := &domain.Schedule{
		Type:     domain.ScheduleType(habitType),
		Hour:     hour,
		Minute:   minute,
		Timezone: habitTZ,
	}

	switch sched.Type {
	case domain.ScheduleWeekly:
		sched.DaysOfWeek, err = parseIntList(habitWeekdays)
	case domain.ScheduleMonthly:
		sched.DaysOfMonth, err = parseIntList(habitMonthDays)
	case domain.ScheduleInterval:
		sched.IntervalDays = habitEvery
		if habitStart != "" {
			sched.StartDate, err = domain.ParseDate(habitStart)
		}
	}
	if err != nil {
		return nil, err
	}
	return sched, nil
}

var habitListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List a user's habits",
	RunE:    runHabitList,
}

func runHabitList(cmd *cobra.Command, args []string) error {
	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	rec, err := d.DB.Get(userFlag)
	if err != nil {
		return err
	}
	if len(rec.Habits) == 0 {
		fmt.Println("No habits yet. Run 'habitd habit add <name>' to get started.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTREAK\tBEST\tBADGES\tSCHEDULE\tLAST CHECK")
	for _, h := range rec.Habits {
		schedText := "Daily (default)"
		if h.Schedule != nil {
			schedText = schedule.Describe(*h.Schedule)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\t%s\n",
			h.Name, h.Streak, h.BestStreak, len(h.Badges), schedText, h.LastChecked)
	}
	return w.Flush()
}
