// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/reignline/internal/core/timeline"
	"github.com/taibuivan/reignline/internal/platform/migration"
	pgstore "github.com/taibuivan/reignline/internal/platform/postgres"
)

func newImportCmd(opts *globalOptions) *cobra.Command {
	var (
		db     databaseFlags
		dryRun bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the PostgreSQL dataset with the dataset file",
		Long: `Import validates the dataset file, applies pending migrations and
replaces every stored record in one transaction.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataset, err := timeline.ReadDatasetFile(opts.datasetPath)
			if err != nil {
				return err
			}
			if problems := dataset.Validate(); len(problems) > 0 {
				for _, problem := range problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", problem.Field, problem.Message)
				}
				return errInvalidDataset
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d groups, %d dynasties, %d entities, %d people\n",
				len(dataset.Groups), len(dataset.Dynasties), len(dataset.Entities), len(dataset.People))
			if dryRun {
				return nil
			}

			url, path, err := db.resolve()
			if err != nil {
				return err
			}

			logger := opts.logger(cmd)
			if err := migration.RunUp(url, path, logger); err != nil {
				return err
			}

			pool, err := pgstore.NewPool(cmd.Context(), url, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := timeline.NewPostgresRepository(pool).Import(cmd.Context(), dataset); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "imported")
			return err
		},
	}

	db.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate and count without touching the database")
	return cmd
}
