package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/caresync-api/internal/app"
	"github.com/jwalitptl/caresync-api/internal/model"
)

func insightCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "insight",
		Aliases: []string{"insights"},
		Short:   "Ask for AI insights on moods, journals and side effects",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "summary",
		Short: "Summarize recent moods, journal entries and today's adherence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				insight, err := a.Insights.Summary(cmd.Context(), a.Now())
				if err != nil {
					return err
				}
				printInsight(cmd.OutOrStdout(), insight)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reflection",
		Short: "Reflect on the latest journal entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				insight, err := a.Insights.Reflection(cmd.Context())
				if err != nil {
					return err
				}
				printInsight(cmd.OutOrStdout(), insight)
				return nil
			})
		},
	})

	var medication, severity string
	sideEffects := &cobra.Command{
		Use:   "side-effects [reaction]",
		Short: "Get guidance on a reaction to a medication",
		Example: `
caresync insight side-effects --medication Aspirin --severity Mild slight nausea`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := &model.SideEffectRequest{
				Medication: medication,
				Severity:   severity,
				Reaction:   strings.Join(args, " "),
			}
			return r.withApp(func(a *app.App) error {
				insight, err := a.Insights.SideEffects(cmd.Context(), req)
				if err != nil {
					return err
				}
				printInsight(cmd.OutOrStdout(), insight)
				return nil
			})
		},
	}
	sideEffects.Flags().StringVarP(&medication, "medication", "m", "", "medication name")
	sideEffects.Flags().StringVarP(&severity, "severity", "s", "", "Mild, Moderate or Severe")
	_ = sideEffects.MarkFlagRequired("medication")
	cmd.AddCommand(sideEffects)

	return cmd
}
