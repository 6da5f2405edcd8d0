// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chronicle

import "slices"

// Relations lists a person's direct family as resolved records.
type Relations struct {
	Father        *Person  `json:"father,omitempty"`
	Mother        *Person  `json:"mother,omitempty"`
	AdoptedParent *Person  `json:"adoptedParent,omitempty"`
	Spouses       []Person `json:"spouses"`
	Children      []Person `json:"children"`
}

// FamilyOf resolves the relations of the person with id.
//
// Dangling references are dropped. Spouses include people who list this person
// without being listed back. Children are ordered by birth year.
func (i *Index) FamilyOf(people []Person, id string) (Relations, bool) {
	person, ok := i.Person(id)
	if !ok {
		return Relations{}, false
	}

	relations := Relations{Spouses: []Person{}, Children: []Person{}}
	if father, ok := i.Person(person.FatherID); ok {
		relations.Father = &father
	}
	if mother, ok := i.Person(person.MotherID); ok {
		relations.Mother = &mother
	}
	if adopted, ok := i.Person(person.AdoptedParentID); ok {
		relations.AdoptedParent = &adopted
	}

	for _, spouseID := range SpouseIDsOf(people, person) {
		if spouse, ok := i.Person(spouseID); ok {
			relations.Spouses = append(relations.Spouses, spouse)
		}
	}

	for _, candidate := range people {
		if candidate.FatherID == id || candidate.MotherID == id {
			relations.Children = append(relations.Children, candidate)
		}
	}
	slices.SortStableFunc(relations.Children, func(a, b Person) int {
		return a.BirthYear - b.BirthYear
	})

	return relations, true
}

// SpouseIDsOf merges the person's own spouse list with reverse-recorded links.
func SpouseIDsOf(people []Person, person Person) []string {
	ids := make([]string, 0, len(person.SpouseIDs))
	for _, id := range person.SpouseIDs {
		if id != person.ID && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	for _, other := range people {
		if other.ID != person.ID && other.HasSpouse(person.ID) && !slices.Contains(ids, other.ID) {
			ids = append(ids, other.ID)
		}
	}
	return ids
}

// ParentIDsOf returns the father, mother and adopted parent ids that are set.
func ParentIDsOf(person Person) []string {
	ids := make([]string, 0, 3)
	for _, id := range []string{person.FatherID, person.MotherID, person.AdoptedParentID} {
		if id != "" && !slices.Contains(ids, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// ChildIDsOf returns the ids of people naming id as father or mother.
func ChildIDsOf(people []Person, id string) []string {
	var ids []string
	for _, p := range people {
		if p.FatherID == id || p.MotherID == id {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
