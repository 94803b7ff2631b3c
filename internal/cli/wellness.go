package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/caresync-api/internal/app"
	"github.com/jwalitptl/caresync-api/internal/model"
)

func moodCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mood",
		Aliases: []string{"moods"},
		Short:   "Log and review moods",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "log [score]",
		Short: "Log today's mood from 1 (bad) to 5 (great)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("score must be a number from 1 to 5")
			}
			return r.withApp(func(a *app.App) error {
				mood, err := a.Wellness.LogMood(cmd.Context(), a.Now(), &model.LogMoodRequest{Score: score})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Mood saved! %s %d on %s\n", mood.Emoji, mood.Score, mood.Date)
				return nil
			})
		},
	})

	var limit int
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent moods, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				moods, err := a.Wellness.Moods(cmd.Context(), limit)
				if err != nil {
					return err
				}
				printMoods(cmd, moods)
				return nil
			})
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of entries")
	cmd.AddCommand(list)

	var trendLimit int
	trend := &cobra.Command{
		Use:   "trend",
		Short: "Show recent moods oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				moods, err := a.Wellness.Trend(cmd.Context(), trendLimit)
				if err != nil {
					return err
				}
				printMoods(cmd, moods)
				return nil
			})
		},
	}
	trend.Flags().IntVarP(&trendLimit, "limit", "n", 0, "maximum number of entries")
	cmd.AddCommand(trend)

	return cmd
}

func printMoods(cmd *cobra.Command, moods []*model.MoodEntry) {
	w := cmd.OutOrStdout()
	if len(moods) == 0 {
		fmt.Fprintln(w, "No moods logged yet.")
		return
	}
	for _, m := range moods {
		label := ""
		if opt, ok := model.MoodOptionFor(m.Score); ok {
			label = opt.Label
		}
		fmt.Fprintf(w, "%s  %s %d %s  %s\n", m.Date, m.Emoji, m.Score,
			strings.Repeat("█", m.Score), faintColor.Sprint(label))
	}
}

func journalCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "journal",
		Aliases: []string{"journals"},
		Short:   "Write and read journal entries",
	}

	var quick bool
	add := &cobra.Command{
		Use:   "add [text]",
		Short: "Write a journal entry",
		Example: `
caresync journal add Slept well and went for a walk
caresync journal add --quick Headache after lunch`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &model.CreateJournalRequest{Text: strings.Join(args, " "), Kind: model.JournalFull}
			if quick {
				req.Kind = model.JournalQuick
			}
			return r.withApp(func(a *app.App) error {
				entry, err := a.Wellness.AddJournal(cmd.Context(), a.Now(), req)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Journal entry saved! (%s, %s)\n", entry.Kind, entry.Date)
				return nil
			})
		},
	}
	add.Flags().BoolVarP(&quick, "quick", "q", false, fmt.Sprintf("quick entry, at most %d characters", model.QuickJournalMaxChars))
	cmd.AddCommand(add)

	var limit int
	list := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recent journal entries, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				entries, err := a.Wellness.Journals(cmd.Context(), limit)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(w, "No journal entries yet.")
					return nil
				}
				for _, e := range entries {
					fmt.Fprintf(w, "%s %s\n  %s\n", headerColor.Sprint(e.Date), faintColor.Sprintf("(%s)", e.Kind), e.Text)
				}
				return nil
			})
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of entries")
	cmd.AddCommand(list)

	return cmd
}
