// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taibuivan/reignline/internal/core/timeline"
)

func newConvertCmd(opts *globalOptions) *cobra.Command {
	var (
		out    string
		format string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Rewrite the dataset file as YAML or JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dataset, err := timeline.ReadDatasetFile(opts.datasetPath)
			if err != nil {
				return err
			}

			var raw []byte
			switch strings.ToLower(format) {
			case "yaml", "yml":
				raw, err = timeline.EncodeDataset(dataset)
			case "json":
				raw, err = json.MarshalIndent(dataset, "", "  ")
				raw = append(raw, '\n')
			default:
				return fmt.Errorf("unsupported --format %q (yaml|json)", format)
			}
			if err != nil {
				return fmt.Errorf("encode dataset: %w", err)
			}

			writer, closeOutput, err := output(cmd, out)
			if err != nil {
				return err
			}
			if _, err := writer.Write(raw); err != nil {
				_ = closeOutput()
				return err
			}
			return closeOutput()
		},
	}

	cmd.Flags().StringVarP(&out, "output", "o", "", "write to a file instead of stdout")
	cmd.Flags().StringVar(&format, "format", "yaml", "output format (yaml|json)")
	return cmd
}
