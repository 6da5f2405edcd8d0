// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taibuivan/reignline/internal/platform/migration"
)

func newMigrateCmd() *cobra.Command {
	var db databaseFlags

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL dataset schema",
	}
	db.register(cmd)

	logger := func(cmd *cobra.Command) *slog.Logger {
		return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, path, err := db.resolve()
			if err != nil {
				return err
			}
			return migration.RunUp(url, path, logger(cmd))
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, path, err := db.resolve()
			if err != nil {
				return err
			}
			return migration.RunDown(url, path, steps, logger(cmd))
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, path, err := db.resolve()
			if err != nil {
				return err
			}
			status, err := migration.Version(url, path, logger(cmd))
			if err != nil {
				return err
			}
			if !status.Applied {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "no migrations applied")
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "version %d dirty=%t\n", status.Version, status.Dirty)
			return err
		},
	})

	return cmd
}
