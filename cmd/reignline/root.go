// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/reignline/internal/core/timeline"
	"github.com/taibuivan/reignline/internal/platform/constants"
)

const defaultDatasetPath = "./data/seed/franks.yaml"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	datasetPath string
	debug       bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:           constants.AppName,
		Short:         "Timeline layout and dataset tools",
		Version:       constants.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.datasetPath, "dataset", defaultDatasetPath, "dataset file (.yaml, .yml or .json)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "log debug events to stderr")

	cmd.AddCommand(newSceneCmd(opts))
	cmd.AddCommand(newRoleCmd(opts))
	cmd.AddCommand(newValidateCmd(opts))
	cmd.AddCommand(newConvertCmd(opts))
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newImportCmd(opts))
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logger writes to the command's stderr so stdout stays machine-readable.
func (opts *globalOptions) logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if opts.debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
		With(slog.String(constants.FieldApp, constants.AppName))
}

// service builds an uncached timeline service over the dataset file.
func (opts *globalOptions) service(cmd *cobra.Command, minYear, maxYear int, zoom float64) (*timeline.Service, error) {
	repo, err := timeline.NewFileRepository(opts.datasetPath)
	if err != nil {
		return nil, err
	}
	return timeline.NewService(repo, nil, nil, timeline.Options{
		MinYear: minYear,
		MaxYear: maxYear,
		Zoom:    zoom,
	}, opts.logger(cmd)), nil
}

// output opens the -o target, or stdout when it is empty or "-".
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open output: %w", err)
	}
	return file, file.Close, nil
}
