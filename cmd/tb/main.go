package main

import (
	"context"
	"fmt"
	"os"

	"taskboard/internal/api"
	"taskboard/internal/cache"
	"taskboard/internal/cli"
	"taskboard/internal/logging"
	"taskboard/internal/status"
)

func main() {
	env := getEnvironment()
	cfg, err := loadConfig(env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Application.Verbose {
		logging.SetVerbose(true)
	}

	if env != Testing {
		if missing := cfg.Airtable.UnconfiguredTables(); len(missing) > 0 {
			logging.Warn("unconfigured tables, operations against them will fail", "tables", missing)
		}
	}

	factory := NewStoreFactory(env, cfg)
	store, err := factory.CreateStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating store: %v\n", err)
		os.Exit(1)
	}

	cacheStore := cache.NewStore(cache.Options{
		DedupeInterval:  cfg.Cache.DedupeInterval,
		RefreshInterval: cfg.Cache.RefreshInterval,
	})
	defer cacheStore.Stop()

	registry := status.NewRegistry()
	apiInstance := api.New(store, cacheStore, registry)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Application.Timeout)
	defer cancel()

	// A missing or failing color table is not fatal; statuses render in
	// the default gray.
	_ = registry.Load(ctx, store)

	if cfg.Cache.BackgroundRefresh {
		cacheStore.StartRefresh(context.Background())
	}

	app := cli.NewApp(apiInstance, registry, cfg)
	root := cli.NewRootCommand(app, cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
