// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRoleCmd(opts *globalOptions) *cobra.Command {
	var (
		flags    viewFlags
		personID string
	)

	cmd := &cobra.Command{
		Use:   "role",
		Short: "Resolve a person's effective role and visibility under the active contexts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := opts.service(cmd, flags.minYear, flags.maxYear, flags.zoom)
			if err != nil {
				return err
			}

			result, err := service.Visibility(cmd.Context(), personID, flags.view())
			if err != nil {
				return fmt.Errorf("person %q: %w", personID, err)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\tvisible=%t\n", result.PersonID, result.EffectiveRole, result.Visible)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&personID, "person", "", "person id")
	_ = cmd.MarkFlagRequired("person")
	return cmd
}
