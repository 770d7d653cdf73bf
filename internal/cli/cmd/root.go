// Package cmd provides Cobra CLI commands for voyage.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/voyage/internal/cli"
	"github.com/bnema/voyage/internal/domain/build"
)

var (
	app       *cli.App
	buildInfo build.Info
	rootCmd   = newRootCmd()
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voyage",
		Short: "A keyboard-driven browser core with a terminal omnibox",
		Long: `Voyage - tabs, windows and an address bar that suggests as you type.

Suggestions come from your open tabs, history, bookmarks and the search
engine, merged in the order you configure.

Use 'voyage open' for the interactive omnibox, or the subcommands to query
suggestions and manage history and bookmarks from scripts.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip initialization for commands that don't need app context
			switch cmd.Name() {
			case "help", "completion", "schema":
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			app.BuildInfo = buildInfo
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
				app = nil
			}
		},
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

func requireApp() (*cli.App, error) {
	if app == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	return app, nil
}

// SetBuildInfo sets the build information (called from main.go before Execute).
func SetBuildInfo(info build.Info) {
	buildInfo = info
}
