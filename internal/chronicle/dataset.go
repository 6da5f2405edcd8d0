// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chronicle

// Dynasty is a ruling house. People reference it for their default connector color.
type Dynasty struct {
	ID          string `json:"id"                    yaml:"id"                    validate:"required"`
	Name        string `json:"name"                  yaml:"name"                  validate:"required"`
	Color       string `json:"color"                 yaml:"color"                 validate:"omitempty,iscolor"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// HistoricalGroup is a selectable historical context such as "History of France".
type HistoricalGroup struct {
	ID          string `json:"id"                    yaml:"id"                    validate:"required"`
	Name        string `json:"name"                  yaml:"name"                  validate:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Dataset is the full record set supplied by the store.
type Dataset struct {
	Groups    []HistoricalGroup `json:"groups"    yaml:"groups"    validate:"dive"`
	Dynasties []Dynasty         `json:"dynasties" yaml:"dynasties" validate:"dive"`
	Entities  []PoliticalEntity `json:"entities"  yaml:"entities"  validate:"dive"`
	People    []Person          `json:"people"    yaml:"people"    validate:"dive"`
}

// # Lookup

// IDSet is an immutable set of record ids.
type IDSet map[string]struct{}

// NewIDSet builds a set from ids. Empty ids are ignored.
func NewIDSet(ids ...string) IDSet {
	set := make(IDSet, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// Has reports membership. A nil set contains nothing.
func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// Index holds id-keyed maps over a dataset, built once per pass.
type Index struct {
	People    map[string]Person
	Entities  map[string]PoliticalEntity
	Dynasties map[string]Dynasty
	Groups    map[string]HistoricalGroup
}

// NewIndex builds lookup maps. When ids repeat, the first record wins.
func NewIndex(people []Person, entities []PoliticalEntity, dynasties []Dynasty, groups []HistoricalGroup) *Index {
	index := &Index{
		People:    make(map[string]Person, len(people)),
		Entities:  make(map[string]PoliticalEntity, len(entities)),
		Dynasties: make(map[string]Dynasty, len(dynasties)),
		Groups:    make(map[string]HistoricalGroup, len(groups)),
	}
	for _, p := range people {
		if _, dup := index.People[p.ID]; !dup {
			index.People[p.ID] = p
		}
	}
	for _, e := range entities {
		if _, dup := index.Entities[e.ID]; !dup {
			index.Entities[e.ID] = e
		}
	}
	for _, d := range dynasties {
		if _, dup := index.Dynasties[d.ID]; !dup {
			index.Dynasties[d.ID] = d
		}
	}
	for _, g := range groups {
		if _, dup := index.Groups[g.ID]; !dup {
			index.Groups[g.ID] = g
		}
	}
	return index
}

// Index builds lookup maps over the dataset.
func (d Dataset) Index() *Index {
	return NewIndex(d.People, d.Entities, d.Dynasties, d.Groups)
}

// Person returns the person with the given id.
func (i *Index) Person(id string) (Person, bool) {
	if id == "" {
		return Person{}, false
	}
	p, ok := i.People[id]
	return p, ok
}

// EntityName returns the entity name, or fallback when the id dangles.
func (i *Index) EntityName(id, fallback string) string {
	if e, ok := i.Entities[id]; ok {
		return e.Name
	}
	return fallback
}
