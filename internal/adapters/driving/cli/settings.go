package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/foodshare/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change foodshare settings stored in ~/.foodshare/config.toml.

Keys:
  storage.path            SQLite database file
  watch.enabled           refresh the dashboard on external writes (true/false)
  watch.debounce          minimum time between refreshes, e.g. 500ms
  server.addr             listen address for 'foodshare serve'
  server.allowed_origins  comma-separated CORS origins, "*" for any`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting",
	Args:  cobra.ExactArgs(2),
	RunE:  runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	path := settings.Storage.Path
	if path == "" {
		path = "(default)"
	}
	cmd.Printf("  Path: %s\n", path)
	cmd.Println()

	cmd.Println("[Watch]")
	if settings.Watch.Enabled {
		cmd.Printf("  Enabled: yes\n")
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Printf("  Debounce: %s\n", settings.Watch.Debounce)
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	origins := strings.Join(settings.Server.AllowedOrigins, ", ")
	if origins == "" {
		origins = "(none)"
	}
	cmd.Printf("  Allowed origins: %s\n", origins)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		if errors.Is(err, domain.ErrUnknownSetting) {
			return fmt.Errorf("%w (valid keys: %s)", err, strings.Join(domain.AllSettingKeys(), ", "))
		}
		return err
	}

	cmd.Printf("Set %s = %s\n", key, value)
	if key == domain.SettingStoragePath || strings.HasPrefix(key, "watch.") {
		cmd.Println("Takes effect on next start.")
	}
	return nil
}
