// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"fmt"

	"github.com/taibuivan/reignline/internal/chronicle"
)

// FamilyKind selects which relatives a family toggle affects.
type FamilyKind string

const (
	FamilyAncestors   FamilyKind = "ancestors"
	FamilyDescendants FamilyKind = "descendants"
	FamilySpouses     FamilyKind = "spouses"
)

// ParseFamilyKind validates a family kind name.
func ParseFamilyKind(s string) (FamilyKind, error) {
	switch kind := FamilyKind(s); kind {
	case FamilyAncestors, FamilyDescendants, FamilySpouses:
		return kind, nil
	default:
		return "", fmt.Errorf("layout: unknown family kind %q", s)
	}
}

// FamilyToggle is the outcome of showing or hiding a set of relatives.
type FamilyToggle struct {
	// Shown is true when the relatives were revealed, false when they were hidden.
	Shown bool `json:"shown"`

	// People holds the updated record of every affected relative.
	People   []chronicle.Person     `json:"people"`
	Settings chronicle.ViewSettings `json:"settings"`
}

// ToggleFamily shows or hides a person's direct relatives.
//
// When every relative is already visible they are all hidden. Otherwise they are
// all unhidden, and those the role toggles would filter out are force-shown.
func (e *Engine) ToggleFamily(personID string, kind FamilyKind) (FamilyToggle, error) {
	person, ok := e.index.Person(personID)
	if !ok {
		return FamilyToggle{}, fmt.Errorf("%w: %s", ErrUnknownPerson, personID)
	}

	var ids []string
	switch kind {
	case FamilyAncestors:
		ids = chronicle.ParentIDsOf(person)
	case FamilyDescendants:
		ids = chronicle.ChildIDsOf(e.input.People, personID)
	case FamilySpouses:
		ids = chronicle.SpouseIDsOf(e.input.People, person)
	default:
		return FamilyToggle{}, fmt.Errorf("layout: unknown family kind %q", kind)
	}

	var relatives []chronicle.Person
	for _, id := range ids {
		if relative, ok := e.index.Person(id); ok {
			relatives = append(relatives, relative)
		}
	}

	settings := e.input.Settings
	result := FamilyToggle{People: []chronicle.Person{}, Settings: settings}
	if len(relatives) == 0 {
		return result, nil
	}

	allVisible := true
	for _, relative := range relatives {
		if !e.IsVisible(relative, settings) {
			allVisible = false
			break
		}
	}

	targetIDs := make([]string, 0, len(relatives))
	var forced []string
	for _, relative := range relatives {
		targetIDs = append(targetIDs, relative.ID)

		updated := relative.Clone()
		updated.IsHidden = allVisible
		result.People = append(result.People, updated)

		if !allVisible && !IsVisible(updated, e.effectiveRole(updated), settings) {
			forced = append(forced, relative.ID)
		}
	}

	if allVisible {
		result.Settings = settings.WithoutForceVisible(targetIDs...)
	} else {
		result.Shown = true
		result.Settings = settings.WithForceVisible(forced...)
	}
	return result, nil
}
