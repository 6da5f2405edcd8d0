// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/taibuivan/reignline/internal/platform/config"
)

// databaseFlags locate the PostgreSQL store. Empty flags fall back to
// DATABASE_URL and MIGRATION_PATH from the environment or .env.
type databaseFlags struct {
	url           string
	migrationPath string
}

func (flags *databaseFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&flags.url, "database-url", "", "PostgreSQL URL (default $DATABASE_URL)")
	cmd.PersistentFlags().StringVar(&flags.migrationPath, "migrations", "", "migrations directory (default $MIGRATION_PATH)")
}

func (flags *databaseFlags) resolve() (url, migrationPath string, err error) {
	cfg, err := config.Load()
	if err != nil {
		return "", "", err
	}

	url, migrationPath = cfg.DatabaseURL, cfg.MigrationPath
	if flags.url != "" {
		url = flags.url
	}
	if flags.migrationPath != "" {
		migrationPath = flags.migrationPath
	}
	if url == "" {
		return "", "", errors.New("no database: set --database-url or DATABASE_URL")
	}
	return url, migrationPath, nil
}
