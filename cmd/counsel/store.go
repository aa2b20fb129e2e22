package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alfredjeanlab/counsel/internal/config"
	"github.com/alfredjeanlab/counsel/internal/fixtures"
	"github.com/alfredjeanlab/counsel/internal/store"
	"github.com/alfredjeanlab/counsel/internal/store/memory"
	"github.com/alfredjeanlab/counsel/internal/store/postgres"
)

// openStore connects to Postgres when a database URL is configured and
// otherwise uses an in-memory store. With seeding on, bundled roster records
// that are missing from the store are added.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (store.Store, error) {
	var st store.Store
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		st = pg
		logger.Info("using postgres store")
	} else {
		st = memory.New()
		logger.Info("using in-memory store (COUNSEL_DATABASE_URL not set)")
	}

	if cfg.Seed {
		n, err := fixtures.Seed(ctx, st)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("seeding roster: %w", err)
		}
		logger.Info("roster seeded", "added", n)
	}
	return st, nil
}
