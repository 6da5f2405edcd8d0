// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chronicle defines the historical record types consumed by the layout engine.

Records are owned by the dataset store. The engine reads them and returns derived
geometry; the only mutations happen through explicit commands that return new values.

Relations between people (parents, spouses) are plain id references into a single
[Dataset], never embedded pointers. A missing id is "not found", not a crash.
*/
package chronicle

import (
	"fmt"
	"strings"
)

// # Roles

// Role is the prominence of a person or of an entity period within a historical context.
//
// The zero value is [RoleTertiary], the least prominent role.
type Role uint8

const (
	// RoleTertiary is only drawn when tertiary characters are toggled on.
	RoleTertiary Role = iota

	// RoleSecondary is only drawn when secondary characters are toggled on.
	RoleSecondary

	// RoleNucleus is always drawn.
	RoleNucleus
)

// Priority maps a role to its precedence when several roles compete.
//
// It is the single ordering shared by role resolution, layer resolution and placement.
func (r Role) Priority() int {
	switch r {
	case RoleNucleus:
		return 3
	case RoleSecondary:
		return 2
	default:
		return 1
	}
}

// Outranks reports whether r strictly beats other.
func (r Role) Outranks(other Role) bool {
	return r.Priority() > other.Priority()
}

// String returns the wire name of the role.
func (r Role) String() string {
	switch r {
	case RoleNucleus:
		return "NUCLEUS"
	case RoleSecondary:
		return "SECONDARY"
	default:
		return "TERTIARY"
	}
}

// ParseRole converts a wire name into a [Role]. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "NUCLEUS":
		return RoleNucleus, nil
	case "SECONDARY":
		return RoleSecondary, nil
	case "TERTIARY":
		return RoleTertiary, nil
	default:
		return RoleTertiary, fmt.Errorf("chronicle: unknown role %q", s)
	}
}

// MarshalText implements [encoding.TextMarshaler].
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler]. Unknown names are rejected.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// # Ranks

// Rank orders titles by seniority. Lower values are more senior.
type Rank int

const (
	RankPope     Rank = 0
	RankEmperor  Rank = 1
	RankKing     Rank = 2
	RankDuke     Rank = 3
	RankCount    Rank = 4
	RankGeneral  Rank = 8
	RankPeasant  Rank = 19
	RankUnranked Rank = 99
)
