package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/caresync-api/internal/app"
	"github.com/jwalitptl/caresync-api/internal/model"
	"github.com/jwalitptl/caresync-api/internal/service/medication"
)

func medCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "med",
		Aliases: []string{"meds", "medication"},
		Short:   "Manage medications and log doses",
	}
	cmd.AddCommand(medAddCmd(r))
	cmd.AddCommand(medListCmd(r))
	cmd.AddCommand(medTodayCmd(r))
	cmd.AddCommand(medStatusCmd(r))
	cmd.AddCommand(medLogCmd(r, "take", model.AdherenceTaken))
	cmd.AddCommand(medLogCmd(r, "miss", model.AdherenceMissed))
	cmd.AddCommand(medAdherenceCmd(r))
	return cmd
}

func medAddCmd(r *runner) *cobra.Command {
	var (
		dose, at, frequency, channel string
		noReminder                   bool
	)
	cmd := &cobra.Command{
		Use:   "add [name]",
		Short: "Add a medication",
		Example: `
caresync med add Aspirin --dose 100mg --time 09:00
caresync med add "Vitamin D" --dose 1000IU --time "8:30 PM" --channel email`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := !noReminder
			req := &model.CreateMedicationRequest{
				Name:            strings.Join(args, " "),
				Dose:            dose,
				Frequency:       frequency,
				Time:            at,
				ReminderEnabled: &enabled,
				ReminderChannel: model.ReminderChannel(channel),
			}
			return r.withApp(func(a *app.App) error {
				med, err := a.Medications.Add(cmd.Context(), req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", med.Name)
				printMedication(cmd.OutOrStdout(), med)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&dose, "dose", "d", "", "dose, e.g. 100mg")
	cmd.Flags().StringVarP(&at, "time", "t", "", "time of day, e.g. 09:00 or 9:00 PM")
	cmd.Flags().StringVarP(&frequency, "frequency", "f", "", "frequency (default \"Once daily\")")
	cmd.Flags().StringVar(&channel, "channel", "", "reminder channel: all, email, desktop or mobile")
	cmd.Flags().BoolVar(&noReminder, "no-reminder", false, "never send reminders for this medication")
	_ = cmd.MarkFlagRequired("dose")
	return cmd
}

func medListCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List medications",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				meds, err := a.Medications.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(meds) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No medications yet.")
					return nil
				}
				for _, med := range meds {
					printMedication(cmd.OutOrStdout(), med)
				}
				return nil
			})
		},
	}
}

func medTodayCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Show today's schedule and send reminders for doses due soon",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				view, err := a.Medications.Today(cmd.Context(), a.Now())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Today's schedule (%s)\n", view.Date)
				if len(view.Entries) == 0 {
					fmt.Fprintln(w, "No medications scheduled.")
				}
				printSection(w, "Overdue", view.Overdue)
				printSection(w, "Upcoming", view.Upcoming)
				printSection(w, "Taken", view.Taken)
				printSection(w, "Missed", view.Missed)
				printDispatch(w, view.Reminders)
				return nil
			})
		},
	}
}

func medStatusCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show medications due within half an hour either side of now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				statuses, err := a.Medications.ReminderStatus(cmd.Context(), a.Now())
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(statuses) == 0 {
					fmt.Fprintln(w, takenColor.Sprint("All medications are up to date!"))
					return nil
				}
				for _, s := range statuses {
					label := upcomingColor.Sprint(s.Label)
					if s.DeltaMinutes < 0 {
						label = overdueColor.Sprint(s.Label)
					}
					fmt.Fprintf(w, "%s (%s) at %s  %s\n", s.Medication.Name, s.Medication.Dose, s.Medication.Time, label)
				}
				return nil
			})
		},
	}
}

func medLogCmd(r *runner, use string, status model.AdherenceStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [id]",
		Short: fmt.Sprintf("Mark today's dose as %s", status),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid medication ID %q", args[0])
			}
			return r.withApp(func(a *app.App) error {
				now := a.Now()
				if err := a.Medications.Log(cmd.Context(), id, now, status); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked medication %d as %s for %s\n", id, status, model.DateOf(now))
				return nil
			})
		},
	}
}

func medAdherenceCmd(r *runner) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "adherence",
		Short: "Show taken and missed doses per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				stats, err := a.Medications.Adherence(cmd.Context(), a.Now(), days)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, day := range stats {
					if day.Taken+day.Missed == 0 {
						fmt.Fprintf(w, "%s  %s\n", day.Date, faintColor.Sprint("no doses logged"))
						continue
					}
					fmt.Fprintf(w, "%s  %s  %s  %3.0f%%\n", day.Date,
						takenColor.Sprintf("taken %d", day.Taken),
						missedColor.Sprintf("missed %d", day.Missed),
						day.Rate*100)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&days, "days", medication.DefaultAdherenceDays, "number of days up to today")
	return cmd
}
