// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import "github.com/taibuivan/reignline/internal/chronicle"

// PeriodInstance is one entity period that is active under the current context selection.
type PeriodInstance struct {
	EntityID   string
	EntityName string
	PeriodID   string
	StartYear  int
	EndYear    int
	Color      string
	Vassalage  []chronicle.EntityVassalage

	// Context is the winning context-role among the active groups.
	Context chronicle.EntityContextRole
}

// LayerTable is the flattened vertical layering for one context selection.
type LayerTable struct {
	Instances []PeriodInstance
	maxIndex  int
	entities  chronicle.IDSet
}

// ResolveLayers emits one instance per (entity, period) that has at least one active context.
//
// When several active contexts match a period, only the highest-priority one is kept.
// Hidden entities are skipped entirely.
func ResolveLayers(entities []chronicle.PoliticalEntity, active, hidden chronicle.IDSet) LayerTable {
	table := LayerTable{maxIndex: -1, entities: chronicle.IDSet{}}

	for _, entity := range entities {
		if hidden.Has(entity.ID) {
			continue
		}
		for _, period := range entity.Periods {
			best, ok := chronicle.BestContext(period.Contexts, active)
			if !ok {
				continue
			}

			table.Instances = append(table.Instances, PeriodInstance{
				EntityID:   entity.ID,
				EntityName: entity.Name,
				PeriodID:   period.ID,
				StartYear:  period.StartYear,
				EndYear:    period.EndYear,
				Color:      period.Color,
				Vassalage:  period.Vassalage,
				Context:    best,
			})
			table.entities[entity.ID] = struct{}{}
			table.maxIndex = max(table.maxIndex, best.LastRow())
		}
	}

	return table
}

// MaxLayerIndex returns the largest heightIndex + rowSpan - 1, or -1 when nothing is active.
func (t LayerTable) MaxLayerIndex() int {
	return t.maxIndex
}

// LayerCount is the number of rows occupied by entity bands.
func (t LayerTable) LayerCount() int {
	return t.maxIndex + 1
}

// HasEntity reports whether the entity produced at least one instance.
func (t LayerTable) HasEntity(id string) bool {
	return t.entities.Has(id)
}
