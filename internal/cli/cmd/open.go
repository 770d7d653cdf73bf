package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/voyage/internal/cli"
	"github.com/bnema/voyage/internal/cli/model"
	"github.com/bnema/voyage/internal/logging"
)

var openWatch bool

var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open a window with the interactive omnibox",
	Long: `Opens a browser window (restoring the last session when enabled) and
drives it from an address field that suggests as you type.

Keys:
  enter      open the highlighted suggestion or the typed text
  tab        accept the inline completion
  ctrl+t     new tab          ctrl+w  close tab
  ctrl+l     next tab         ctrl+r  reopen closed tab
  ctrl+d     bookmark tab     esc     quit (the session is saved)`,
	Args: cobra.NoArgs,
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
	openCmd.Flags().BoolVar(&openWatch, "watch-config", true, "apply config file edits while running")
}

func runOpen(_ *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	b, err := app.Browser()
	if err != nil {
		return err
	}
	ctx := app.Ctx()
	log := logging.FromContext(ctx)

	if openWatch {
		if err := app.WatchConfig(); err != nil {
			log.Warn().Err(err).Msg("config watch unavailable")
		}
	}

	windowID, err := b.OpenWindow(ctx)
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}
	defer func() {
		if err := b.CloseWindow(ctx, windowID); err != nil {
			log.Warn().Err(err).Msg("window close failed")
		}
	}()

	core := cli.NewWindowCore(ctx, b, windowID)
	p := tea.NewProgram(model.NewOmniboxModel(app.Theme, core), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
