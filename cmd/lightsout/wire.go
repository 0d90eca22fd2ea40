package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"svw.info/lightsout/internal/config"
	"svw.info/lightsout/internal/generator"
	"svw.info/lightsout/internal/hint"
	"svw.info/lightsout/internal/infrastructure/storage"
	"svw.info/lightsout/internal/leaderboard"
	"svw.info/lightsout/internal/ports"
	"svw.info/lightsout/internal/solver"
	"svw.info/lightsout/internal/usecase"
	"svw.info/lightsout/internal/validator"
)

const sqliteFile = "lightsout.db"

// openStore returns the leaderboard backend named by cfg and a close func.
func openStore(cfg config.StorageConfig) (ports.LeaderboardStore, func() error, error) {
	noop := func() error { return nil }
	switch strings.ToLower(cfg.Driver) {
	case "memory":
		return storage.NewMemory(), noop, nil
	case "fs":
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create data dir: %w", err)
		}
		return storage.NewFS(cfg.Path), noop, nil
	case "sqlite":
		dsn := cfg.Path
		if dsn != ":memory:" && filepath.Ext(dsn) == "" {
			if err := os.MkdirAll(dsn, 0o755); err != nil {
				return nil, nil, fmt.Errorf("create data dir: %w", err)
			}
			dsn = filepath.Join(dsn, sqliteFile)
		}
		db, err := storage.NewSQLite(dsn)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
}

// buildService wires providers into the use case service.
func buildService(cfg *config.Config, logger *zap.Logger) (*usecase.Service, func() error, error) {
	store, closeStore, err := openStore(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	s := solver.NewGF2Solver()
	g := generator.New(s, cfg.Game.SolvableAttempts)
	uc := usecase.NewService(s, g, validator.New(), hint.NewPresses(s), store,
		cfg.Game.Levels, leaderboard.New(cfg.Game.LeaderboardSize), logger)
	return uc, closeStore, nil
}
