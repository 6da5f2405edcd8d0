// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import "github.com/taibuivan/reignline/internal/chronicle"

// ResolveRole computes a person's effective role under the active contexts.
//
// A title counts when its entity has a period with an active context-role that
// overlaps the person's lifespan. The best role among counting titles wins;
// with no counting title the person's default role applies.
func ResolveRole(person chronicle.Person, active chronicle.IDSet, entities map[string]chronicle.PoliticalEntity) chronicle.Role {
	start, end := person.Lifespan()

	resolved, found := chronicle.RoleTertiary, false
	for _, title := range person.Titles {
		if len(title.Periods) == 0 {
			continue
		}
		entity, ok := entities[title.EntityID]
		if !ok || !entityActiveDuring(entity, active, start, end) {
			continue
		}
		if !found || title.Role.Outranks(resolved) {
			resolved, found = title.Role, true
		}
	}

	if !found {
		return person.Role
	}
	return resolved
}

func entityActiveDuring(entity chronicle.PoliticalEntity, active chronicle.IDSet, start, end int) bool {
	for _, period := range entity.Periods {
		if !period.OverlapsLifespan(start, end) {
			continue
		}
		if _, ok := chronicle.BestContext(period.Contexts, active); ok {
			return true
		}
	}
	return false
}
