package main

import (
	"os"

	"taskboard/internal/airtable"
	"taskboard/internal/config"
)

// Environment represents the current environment
type Environment string

const (
	Testing    Environment = "testing"
	Production Environment = "production"
)

// StoreFactory creates store instances based on environment
type StoreFactory struct {
	env Environment
	cfg *config.Config
}

// NewStoreFactory creates a new store factory for the given environment
func NewStoreFactory(env Environment, cfg *config.Config) *StoreFactory {
	return &StoreFactory{env: env, cfg: cfg}
}

// CreateStore creates a store instance based on the current environment
func (sf *StoreFactory) CreateStore() (airtable.Store, error) {
	switch sf.env {
	case Testing:
		return sf.createTestingStore()
	default:
		return sf.createProductionStore()
	}
}

// createTestingStore creates an in-memory store, useful for trying the
// commands without a remote base
func (sf *StoreFactory) createTestingStore() (airtable.Store, error) {
	return airtable.NewMemoryStore(), nil
}

// createProductionStore creates a store backed by the configured remote base
func (sf *StoreFactory) createProductionStore() (airtable.Store, error) {
	client := airtable.NewRESTClient(sf.cfg.Airtable.Token, sf.cfg.Airtable.BaseID)
	if sf.cfg.Airtable.BaseURL != "" {
		client = client.WithBaseURL(sf.cfg.Airtable.BaseURL)
	}

	tables := airtable.Tables{
		Tasks:        sf.cfg.Airtable.TasksTableID,
		Clients:      sf.cfg.Airtable.ClientsTableID,
		Stages:       sf.cfg.Airtable.StagesTableID,
		Team:         sf.cfg.Airtable.TeamTableID,
		StatusColors: sf.cfg.Airtable.ColorsTableID,
	}
	return airtable.NewRemoteStore(client, tables), nil
}

// loadConfig loads configuration for the environment. The testing
// environment needs no remote credentials, so validation is skipped.
func loadConfig(env Environment) (*config.Config, error) {
	if env == Testing {
		cfg := config.NewConfig()
		if err := cfg.LoadFromEnvironment(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return config.NewLoader().Load()
}

// getEnvironment determines the current environment
func getEnvironment() Environment {
	switch os.Getenv("TB_ENV") {
	case "testing":
		return Testing
	default:
		return Production
	}
}
