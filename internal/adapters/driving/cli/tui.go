package cli

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/foodshare/internal/adapters/driving/tui"
	"github.com/custodia-labs/foodshare/internal/logger"
)

// isTerminal reports whether stdout is a terminal. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// runApp runs the TUI program. Replaced in tests.
var runApp = func(app *tui.App) error {
	return app.Run()
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive dashboard",
	Long: `Launch the interactive terminal dashboard.

Pick a city, provider and food type to see matching listings, provider
contacts, receivers and the claims distribution. Add listings from the
form. The dashboard refreshes when another process writes the database.

Controls:
  Tab/Shift+Tab - Move between selectors and tables
  ←/h, →/l      - Change the focused selector
  a             - Add a listing
  r             - Refresh
  Esc           - Back
  ?             - Help
  q             - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = fmt.Errorf("TUI panic: %v", r)
		}
	}()

	if !isTerminal() {
		return errors.New("the dashboard needs a terminal; use the read commands or --json instead")
	}

	app, err := tui.NewApp(tui.NewPorts(dashboardService, queryService, settingsService))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}
	app.WithContext(cmd.Context())

	if changeWatcher != nil {
		changes, err := changeWatcher.Watch(cmd.Context())
		if err != nil {
			logger.Warn("database changes will not refresh the dashboard: %v", err)
		} else {
			app.WithChanges(changes)
		}
	}

	if err := runApp(app); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
