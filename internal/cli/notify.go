package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/caresync-api/internal/app"
	"github.com/jwalitptl/caresync-api/internal/model"
)

func notifyCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notify",
		Aliases: []string{"notifications"},
		Short:   "Inspect and test notification channels",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "settings",
		Short: "Show which channels are enabled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				settings := a.Notifications.Settings()
				for _, ch := range model.AllChannels {
					state := faintColor.Sprint("disabled")
					if settings.Enabled(ch) {
						state = takenColor.Sprint("enabled")
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", ch, state)
				}
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "test [channel]",
		Short:     "Send a test notification on one channel",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"email", "desktop", "mobile"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(func(a *app.App) error {
				res, err := a.Notifications.Test(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if !res.Success {
					return fmt.Errorf("%s test notification failed: %s", res.Channel, res.Error)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s test notification sent\n", takenColor.Sprint("✔"), res.Channel)
				return nil
			})
		},
	})

	return cmd
}
