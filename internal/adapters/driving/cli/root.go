// Package cli provides the cobra commands for the foodshare binary.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodshare/internal/core/ports/driven"
	"github.com/custodia-labs/foodshare/internal/core/ports/driving"
	"github.com/custodia-labs/foodshare/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// skipBootstrap marks commands that run without opening the stores.
const skipBootstrap = "skip-bootstrap"

// Options are the global flag values passed to the bootstrap hook.
type Options struct {
	DBPath    string
	ConfigDir string
	Verbose   bool
}

// Services holds the ports the commands drive.
type Services struct {
	Dashboard driving.DashboardService
	Query     driving.QueryService
	Settings  driving.SettingsService

	// Watcher is nil when change watching is disabled.
	Watcher driven.ChangeWatcher

	// Close releases the stores. May be nil.
	Close func() error
}

// Bootstrap opens the stores for the given options and builds the services.
type Bootstrap func(opts Options) (*Services, error)

var (
	globalOpts Options
	bootstrap  Bootstrap

	dashboardService driving.DashboardService
	queryService     driving.QueryService
	settingsService  driving.SettingsService
	changeWatcher    driven.ChangeWatcher
	closeServices    func() error
)

var rootCmd = &cobra.Command{
	Use:   "foodshare",
	Short: "Food donation dashboard",
	Long: `foodshare browses food-donation listings stored in a local SQLite
database. Filter listings by city, provider and food type, see who to
contact, how claims are distributed, and add new listings.

Run 'foodshare tui' for the interactive dashboard.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&globalOpts.DBPath, "db", "",
		"SQLite database file (default ~/.foodshare/data/foodshare.db)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.ConfigDir, "config-dir", "",
		"configuration directory (default ~/.foodshare)")
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.Verbose, "verbose", "v", false,
		"print queries and inserts to stderr")
}

// SetBootstrap sets the hook that builds the services before a command runs.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing the bootstrap hook.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	dashboardService = s.Dashboard
	queryService = s.Query
	settingsService = s.Settings
	changeWatcher = s.Watcher
	closeServices = s.Close
}

// SetVersion sets the version printed by 'foodshare version'.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command and releases the services afterwards.
// Cancelling ctx stops long-running commands such as serve.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := shutdown(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

func runBootstrap(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(globalOpts.Verbose)

	if _, skip := cmd.Annotations[skipBootstrap]; skip {
		return nil
	}
	if bootstrap == nil || dashboardService != nil {
		return nil
	}

	services, err := bootstrap(globalOpts)
	if err != nil {
		return fmt.Errorf("starting foodshare: %w", err)
	}
	SetServices(services)
	return nil
}

func shutdown() error {
	var errs []error
	if changeWatcher != nil {
		errs = append(errs, changeWatcher.Close())
		changeWatcher = nil
	}
	if closeServices != nil {
		errs = append(errs, closeServices())
		closeServices = nil
	}
	return errors.Join(errs...)
}

func requireDashboard() error {
	if dashboardService == nil {
		return errors.New("dashboard service not configured")
	}
	return nil
}

func requireQuery() error {
	if queryService == nil {
		return errors.New("query service not configured")
	}
	return nil
}
