// Command foodshare is the food donation dashboard.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/foodshare/internal/adapters/driven/config/file"
	"github.com/custodia-labs/foodshare/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/foodshare/internal/adapters/driven/watch"
	"github.com/custodia-labs/foodshare/internal/adapters/driving/cli"
	"github.com/custodia-labs/foodshare/internal/core/ports/driven"
	"github.com/custodia-labs/foodshare/internal/core/services"
	"github.com/custodia-labs/foodshare/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// bootstrap opens the config and database and wires the services.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	configStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = settings.Storage.Path
	}
	store, err := sqlite.NewStore(dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	logger.Debug("config %s, database %s", configStore.Path(), store.Path())

	queries := services.NewQueryService(store.QueryStore())
	listings := services.NewListingService(store.ListingStore())

	var watcher driven.ChangeWatcher
	if settings.Watch.Enabled {
		watcher = watch.New(store.Path(), settings.Watch.Debounce)
	}

	return &cli.Services{
		Dashboard: services.NewDashboardService(queries, listings),
		Query:     queries,
		Settings:  settingsService,
		Watcher:   watcher,
		Close:     store.Close,
	}, nil
}
