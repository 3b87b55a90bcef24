// Package app wires the vault components from a loaded configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/soulfile-vault/backend/internal/compress"
	"github.com/soulfile-vault/backend/internal/config"
	"github.com/soulfile-vault/backend/internal/ingest"
	"github.com/soulfile-vault/backend/internal/metadata"
	"github.com/soulfile-vault/backend/internal/models"
	"github.com/soulfile-vault/backend/internal/storage"
	"github.com/soulfile-vault/backend/internal/symbols"
	"github.com/soulfile-vault/backend/internal/upload"
)

// App holds the components shared by the server and the CLI.
// The metadata store is opened once and held until Close.
type App struct {
	Config    *config.AppConfig
	Records   metadata.Store
	Artifacts *storage.LocalStore
	Symbols   []models.SymbolEntry
	Pipeline  *ingest.Pipeline
	Uploads   *upload.Manager
}

// New validates cfg, opens storage, loads the symbol table and builds the pipeline.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	if errs := cfg.Validate(); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, fmt.Errorf("invalid configuration: %w", errors.Join(joined...))
	}

	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}

	store, err := metadata.Open(cfg.Storage.DatabaseDriver, cfg.Storage.DatabasePath, metadata.Options{
		DuckDBThreads:     cfg.Advanced.DuckDBThreads,
		DuckDBMemoryLimit: cfg.Advanced.DuckDBMemoryLimit,
	})
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		store.Close()
		return nil, err
	}

	table, err := symbols.NewLoader(cfg.Storage.SymbolsFile).Load()
	if err != nil {
		store.Close()
		return nil, err
	}

	artifacts, err := storage.NewLocalStore(cfg.GetArtifactDir())
	if err != nil {
		store.Close()
		return nil, err
	}

	compressor := compress.New(artifacts, compress.Options{
		Quality:  cfg.Compression.Quality,
		Optimize: cfg.Compression.Optimize,
	})
	pipeline := ingest.NewPipeline(compressor, store, ingest.Options{
		SniffContent: cfg.Compression.SniffContent,
	})

	return &App{
		Config:    cfg,
		Records:   store,
		Artifacts: artifacts,
		Symbols:   table,
		Pipeline:  pipeline,
		Uploads:   upload.NewManager(pipeline),
	}, nil
}

// Close releases the metadata store.
func (a *App) Close() error {
	return a.Records.Close()
}
