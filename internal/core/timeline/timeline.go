// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package timeline serves layout passes over the stored dataset.

It follows the usual domain layout:

  - timeline.go: request and response models.
  - store*.go: dataset repositories (file, memory, PostgreSQL) and scene caches (memory, Redis).
  - service.go: runs the layout engine, memoizes scenes and maps engine errors.
  - http.go: the chi handler mounted under /api/v1.

Commands (move, hide, family toggle) return updated records and never write them
back. Clients send their uncommitted edits as overrides on the next request.
*/
package timeline

import (
	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/internal/layout"
)

// # Requests

// ViewRequest describes what the client is looking at.
type ViewRequest struct {
	ActiveContextIDs []string `json:"activeContextIds"`
	HiddenEntityIDs  []string `json:"hiddenEntityIds"`

	// Settings falls back to the default view settings when omitted.
	Settings *chronicle.ViewSettings `json:"settings,omitempty"`

	// MinYear and MaxYear fall back to the configured timeline bounds.
	MinYear *int `json:"minYear,omitempty"`
	MaxYear *int `json:"maxYear,omitempty"`

	Drag *layout.DragOffset `json:"drag,omitempty"`

	// Overrides replace stored people with the same id. They never add people.
	Overrides []chronicle.Person `json:"overrides,omitempty"`
}

// MoveRequest shifts a person vertically by a pixel delta.
type MoveRequest struct {
	ViewRequest
	DeltaPixels float64 `json:"deltaPixels"`
}

// ToggleRequest shows or hides one kind of relatives.
type ToggleRequest struct {
	ViewRequest
	Kind string `json:"kind"`
}

// # Responses

// RoleResult is the effective role of a person under a set of contexts.
type RoleResult struct {
	PersonID      string         `json:"personId"`
	EffectiveRole chronicle.Role `json:"effectiveRole"`
}

// VisibilityResult reports whether a person is drawn under a view.
type VisibilityResult struct {
	PersonID      string         `json:"personId"`
	EffectiveRole chronicle.Role `json:"effectiveRole"`
	Visible       bool           `json:"visible"`
}

// PersonSummary is one people search hit.
type PersonSummary struct {
	ID           string         `json:"id"`
	OfficialName string         `json:"officialName"`
	RealName     string         `json:"realName,omitempty"`
	DynastyID    string         `json:"dynastyId,omitempty"`
	BirthYear    int            `json:"birthYear"`
	DeathYear    int            `json:"deathYear"`
	Role         chronicle.Role `json:"role"`

	// Distance is the fuzzy match distance. Lower is closer.
	Distance int `json:"distance"`
}

// DatasetReport lists the problems found in the stored dataset.
type DatasetReport struct {
	Source   string              `json:"source"`
	Counts   map[string]int      `json:"counts"`
	Problems []chronicle.Problem `json:"problems"`
}

func summaryOf(person chronicle.Person, distance int) PersonSummary {
	return PersonSummary{
		ID:           person.ID,
		OfficialName: person.OfficialName,
		RealName:     person.RealName,
		DynastyID:    person.DynastyID,
		BirthYear:    person.BirthYear,
		DeathYear:    person.DeathYear,
		Role:         person.Role,
		Distance:     distance,
	}
}

func countsOf(dataset chronicle.Dataset) map[string]int {
	return map[string]int{
		"groups":    len(dataset.Groups),
		"dynasties": len(dataset.Dynasties),
		"entities":  len(dataset.Entities),
		"people":    len(dataset.People),
	}
}
