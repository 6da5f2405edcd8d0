// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chronicle

import "slices"

// ViewSettings is the user's display state. It is replaced wholesale on every change.
type ViewSettings struct {
	// Zoom is the horizontal scale in pixels per year.
	Zoom float64 `json:"zoom" yaml:"zoom"`

	ShowLifespans           bool `json:"showLifespans"           yaml:"showLifespans"`
	ShowSecondary           bool `json:"showSecondary"           yaml:"showSecondary"`
	ShowTertiary            bool `json:"showTertiary"            yaml:"showTertiary"`
	ShowGrid                bool `json:"showGrid"                yaml:"showGrid"`
	ShowMarriages           bool `json:"showMarriages"           yaml:"showMarriages"`
	ShowParentalConnections bool `json:"showParentalConnections" yaml:"showParentalConnections"`

	// ForceVisibleIDs overrides role filtering for the listed people.
	ForceVisibleIDs []string `json:"forceVisibleIds" yaml:"forceVisibleIds"`

	// HighlightedDynastyID emphasises one dynasty's nodes and connectors.
	HighlightedDynastyID string `json:"highlightedDynastyId,omitempty" yaml:"highlightedDynastyId,omitempty"`
}

// DefaultViewSettings mirrors the initial state of a fresh session.
func DefaultViewSettings(zoom float64) ViewSettings {
	return ViewSettings{
		Zoom:                    zoom,
		ShowLifespans:           true,
		ShowMarriages:           true,
		ShowParentalConnections: true,
		ForceVisibleIDs:         []string{},
	}
}

// IsForcedVisible reports whether id is in the force-visible set.
func (s ViewSettings) IsForcedVisible(id string) bool {
	return slices.Contains(s.ForceVisibleIDs, id)
}

// WithForceVisible returns a copy whose force-visible set also contains ids, in insertion order.
func (s ViewSettings) WithForceVisible(ids ...string) ViewSettings {
	out := s
	out.ForceVisibleIDs = slices.Clone(s.ForceVisibleIDs)
	for _, id := range ids {
		if !slices.Contains(out.ForceVisibleIDs, id) {
			out.ForceVisibleIDs = append(out.ForceVisibleIDs, id)
		}
	}
	return out
}

// WithoutForceVisible returns a copy with ids removed from the force-visible set.
func (s ViewSettings) WithoutForceVisible(ids ...string) ViewSettings {
	out := s
	out.ForceVisibleIDs = slices.DeleteFunc(slices.Clone(s.ForceVisibleIDs), func(id string) bool {
		return slices.Contains(ids, id)
	})
	if out.ForceVisibleIDs == nil {
		out.ForceVisibleIDs = []string{}
	}
	return out
}
