// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import "github.com/taibuivan/reignline/internal/chronicle"

// IsVisible applies the draw rule to a person whose effective role is already known.
func IsVisible(person chronicle.Person, role chronicle.Role, settings chronicle.ViewSettings) bool {
	if person.IsHidden {
		return false
	}
	if settings.IsForcedVisible(person.ID) {
		return true
	}
	switch role {
	case chronicle.RoleNucleus:
		return true
	case chronicle.RoleSecondary:
		return settings.ShowSecondary
	default:
		return settings.ShowTertiary
	}
}

// IsVisible resolves the person's role against the pass's active contexts and applies the draw rule.
func (e *Engine) IsVisible(person chronicle.Person, settings chronicle.ViewSettings) bool {
	return IsVisible(person, e.effectiveRole(person), settings)
}

// EntityVisible reports whether an entity is drawn: not hidden and active under some context.
func (e *Engine) EntityVisible(entityID string) bool {
	return !e.hidden.Has(entityID) && e.layers.HasEntity(entityID)
}
