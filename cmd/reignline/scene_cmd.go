// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/core/timeline"
)

// viewFlags are the view parameters shared by scene and role.
type viewFlags struct {
	contexts      []string
	hidden        []string
	forceVisible  []string
	highlight     string
	zoom          float64
	minYear       int
	maxYear       int
	showSecondary bool
	showTertiary  bool
}

func (flags *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&flags.contexts, "context", nil, "active historical group ids (repeatable or comma separated)")
	cmd.Flags().StringSliceVar(&flags.hidden, "hide-entity", nil, "political entity ids to hide")
	cmd.Flags().StringSliceVar(&flags.forceVisible, "force-visible", nil, "person ids drawn regardless of role")
	cmd.Flags().StringVar(&flags.highlight, "highlight", "", "dynasty id to emphasise")
	cmd.Flags().Float64Var(&flags.zoom, "zoom", 10, "pixels per year")
	cmd.Flags().IntVar(&flags.minYear, "min-year", 450, "first year of the axis")
	cmd.Flags().IntVar(&flags.maxYear, "max-year", 2025, "last year of the axis")
	cmd.Flags().BoolVar(&flags.showSecondary, "show-secondary", false, "draw secondary people")
	cmd.Flags().BoolVar(&flags.showTertiary, "show-tertiary", false, "draw tertiary people")
}

func (flags *viewFlags) view() timeline.ViewRequest {
	settings := chronicle.DefaultViewSettings(flags.zoom)
	settings.ShowSecondary = flags.showSecondary
	settings.ShowTertiary = flags.showTertiary
	settings.HighlightedDynastyID = flags.highlight
	if len(flags.forceVisible) > 0 {
		settings.ForceVisibleIDs = flags.forceVisible
	}

	return timeline.ViewRequest{
		ActiveContextIDs: flags.contexts,
		HiddenEntityIDs:  flags.hidden,
		Settings:         &settings,
	}
}

func newSceneCmd(opts *globalOptions) *cobra.Command {
	var (
		flags  viewFlags
		out    string
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "scene",
		Short: "Compute a scene and print it as JSON",
		Example: `  reignline scene --context g1 --zoom 20 -o scene.json
  reignline scene --context g1,g2 --show-secondary --hide-entity kingdom_austrasia`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			service, err := opts.service(cmd, flags.minYear, flags.maxYear, flags.zoom)
			if err != nil {
				return err
			}

			scene, _, err := service.Scene(cmd.Context(), flags.view())
			if err != nil {
				return err
			}

			writer, closeOutput, err := output(cmd, out)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(writer)
			if pretty {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(scene); err != nil {
				_ = closeOutput()
				return fmt.Errorf("encode scene: %w", err)
			}
			return closeOutput()
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "output", "o", "", "write the scene to a file instead of stdout")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent the JSON output")
	return cmd
}
