// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/taibuivan/reignline/internal/chronicle"
)

var errInvalidDataset = errors.New("dataset has errors")

func newValidateCmd(opts *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check the dataset for malformed records and suspicious data",
		Long: `Validate runs field checks (ids, date ranges, colors) and the audit
(dangling references, overlapping context bands). Errors fail the command;
warnings fail it only with --strict.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := opts.service(cmd, 0, 1, 1)
			if err != nil {
				return err
			}

			report, err := service.Report(cmd.Context())
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			var errorCount, warningCount int
			for _, problem := range report.Problems {
				if problem.Severity == chronicle.SeverityError {
					errorCount++
				} else {
					warningCount++
				}
				fmt.Fprintf(writer, "%s\t%s\t%s\n", strings.ToUpper(string(problem.Severity)), problem.Field, problem.Message)
			}
			if err := writer.Flush(); err != nil {
				return err
			}

			counts := make([]string, 0, len(report.Counts))
			for _, key := range slices.Sorted(maps.Keys(report.Counts)) {
				counts = append(counts, fmt.Sprintf("%d %s", report.Counts[key], key))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s; %d error(s), %d warning(s)\n",
				opts.datasetPath, strings.Join(counts, ", "), errorCount, warningCount)

			if errorCount > 0 || (strict && warningCount > 0) {
				return errInvalidDataset
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}
