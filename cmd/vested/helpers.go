package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/viper"

	"github.com/kwasifin/vested/internal/common"
	"github.com/kwasifin/vested/internal/config"
	"github.com/kwasifin/vested/internal/engine"
	"github.com/kwasifin/vested/internal/model"
	"github.com/kwasifin/vested/internal/service"
	"github.com/kwasifin/vested/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/vested/vested.db"
	}
	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initEngine loads reference data and builds the analysis engine.
// A bad reference-data file is fatal; data problems never are.
func initEngine() (*engine.Engine, error) {
	cfg, err := config.Load(config.ExpandPath(viper.GetString("engine.config")))
	if err != nil {
		return nil, err
	}
	return engine.New(cfg)
}

// loadAnalysisInputs opens storage and fetches the profile plus the full
// transaction snapshot the engine will analyze.
func loadAnalysisInputs(ctx context.Context) (service.Storage, *model.BusinessProfile, []model.Transaction, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	profile, err := store.GetProfile(ctx)
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, common.NewUserError("no business profile configured, run 'vested profile set' first", err)
	}

	txns, err := store.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		_ = store.Close()
		return nil, nil, nil, fmt.Errorf("load transactions: %w", err)
	}

	return store, profile, txns, nil
}

// printJSON emits a result envelope as indented JSON on stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
