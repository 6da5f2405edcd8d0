// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chronicle

// PoliticalEntity is a kingdom, empire, duchy or office that may exist, cease and re-exist.
type PoliticalEntity struct {
	ID          string         `json:"id"                    yaml:"id"                    validate:"required"`
	Name        string         `json:"name"                  yaml:"name"                  validate:"required"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Periods     []EntityPeriod `json:"periods"               yaml:"periods"               validate:"dive"`
}

// EntityPeriod is one contiguous existence of an entity.
type EntityPeriod struct {
	ID        string              `json:"id"        yaml:"id"`
	StartYear int                 `json:"startYear" yaml:"startYear"`
	EndYear   int                 `json:"endYear"   yaml:"endYear"   validate:"gtefield=StartYear"`
	Color     string              `json:"color"     yaml:"color"     validate:"omitempty,iscolor"`
	Contexts  []EntityContextRole `json:"contexts"  yaml:"contexts"  validate:"dive"`
	Vassalage []EntityVassalage   `json:"vassalage" yaml:"vassalage" validate:"dive"`
}

// EntityContextRole assigns a period a role and a vertical band within one historical context.
type EntityContextRole struct {
	GroupID     string `json:"groupId"     yaml:"groupId"     validate:"required"`
	Role        Role   `json:"role"        yaml:"role"`
	HeightIndex int    `json:"heightIndex" yaml:"heightIndex" validate:"min=0"`
	RowSpan     int    `json:"rowSpan"     yaml:"rowSpan"     validate:"min=0"`
}

// EntityVassalage marks a sub-interval during which the entity was subordinate to a liege.
type EntityVassalage struct {
	StartYear int    `json:"startYear" yaml:"startYear"`
	EndYear   int    `json:"endYear"   yaml:"endYear"   validate:"gtefield=StartYear"`
	LiegeID   string `json:"liegeId"   yaml:"liegeId"   validate:"required"`
}

// Span returns the rows covered by the band. A non-positive span counts as one row.
func (c EntityContextRole) Span() int {
	return max(c.RowSpan, 1)
}

// LastRow returns heightIndex + rowSpan - 1.
func (c EntityContextRole) LastRow() int {
	return c.HeightIndex + c.Span() - 1
}

// # Context selection

// BestContext picks the highest-priority context-role whose group is active.
//
// Ties go to the first occurrence in the list. ok is false when no group is active.
func BestContext(contexts []EntityContextRole, active IDSet) (best EntityContextRole, ok bool) {
	for _, candidate := range contexts {
		if !active.Has(candidate.GroupID) {
			continue
		}
		if !ok || candidate.Role.Outranks(best.Role) {
			best, ok = candidate, true
		}
	}
	return best, ok
}

// # Interval tests

// OverlapsLifespan reports whether the closed period meets the half-open interval [start, end).
func (p EntityPeriod) OverlapsLifespan(start, end int) bool {
	return p.StartYear < end && p.EndYear >= start
}

// OverlapsTitle reports whether the closed period meets the closed title period.
func (p EntityPeriod) OverlapsTitle(period TitlePeriod) bool {
	return p.StartYear <= period.EndYear && p.EndYear >= period.StartYear
}

// Clip intersects a vassalage interval with the period. ok is false when nothing remains.
func (p EntityPeriod) Clip(v EntityVassalage) (start, end int, ok bool) {
	start = max(p.StartYear, v.StartYear)
	end = min(p.EndYear, v.EndYear)
	return start, end, start < end
}
