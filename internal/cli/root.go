// Package cli is the caresync command line. Every command opens the same
// store and services the API server uses.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jwalitptl/caresync-api/internal/app"
	"github.com/jwalitptl/caresync-api/internal/config"
)

// Opener builds the application for one command invocation.
type Opener func(configFile string) (*app.App, error)

func openApp(configFile string) (*app.App, error) {
	cfg, err := config.Load(viper.New(), configFile)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, app.NewLogger(cfg.Log, os.Stderr))
}

type runner struct {
	open       Opener
	configFile string
}

// withApp opens the application, runs fn and closes the store.
func (r *runner) withApp(fn func(a *app.App) error) error {
	a, err := r.open(r.configFile)
	if err != nil {
		return err
	}
	defer a.Close()
	return fn(a)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(openApp)
}

func newRootCmd(open Opener) *cobra.Command {
	r := &runner{open: open}

	rootCmd := &cobra.Command{
		Use:   "caresync",
		Short: "CareSync medication reminders, mood tracking and journaling",
		Long: `CareSync tracks daily medications, sends reminders when a dose is due,
and keeps a mood log and journal with optional AI insights.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&r.configFile, "config", "c", "", "config file (default ./config.yaml or ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd(r))
	rootCmd.AddCommand(medCmd(r))
	rootCmd.AddCommand(moodCmd(r))
	rootCmd.AddCommand(journalCmd(r))
	rootCmd.AddCommand(insightCmd(r))
	rootCmd.AddCommand(notifyCmd(r))

	return rootCmd
}
