// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chronicle

import (
	"slices"

	"github.com/taibuivan/reignline/pkg/pointer"
)

// Person is a historical figure drawn as a node on the timeline.
type Person struct {
	ID           string `json:"id"                     yaml:"id"                     validate:"required"`
	OfficialName string `json:"officialName"           yaml:"officialName"           validate:"required"`
	RealName     string `json:"realName,omitempty"     yaml:"realName,omitempty"`
	DynastyID    string `json:"dynastyId,omitempty"    yaml:"dynastyId,omitempty"`
	Description  string `json:"description,omitempty"  yaml:"description,omitempty"`
	ImageURL     string `json:"imageUrl,omitempty"     yaml:"imageUrl,omitempty"     validate:"omitempty,url"`

	BirthYear  int `json:"birthYear"            yaml:"birthYear"`
	BirthMonth int `json:"birthMonth,omitempty" yaml:"birthMonth,omitempty" validate:"min=0,max=12"`
	BirthDay   int `json:"birthDay,omitempty"   yaml:"birthDay,omitempty"   validate:"min=0,max=31"`
	DeathYear  int `json:"deathYear"            yaml:"deathYear"            validate:"gtefield=BirthYear"`
	DeathMonth int `json:"deathMonth,omitempty" yaml:"deathMonth,omitempty" validate:"min=0,max=12"`
	DeathDay   int `json:"deathDay,omitempty"   yaml:"deathDay,omitempty"   validate:"min=0,max=31"`

	FatherID        string   `json:"fatherId,omitempty"        yaml:"fatherId,omitempty"`
	MotherID        string   `json:"motherId,omitempty"        yaml:"motherId,omitempty"`
	AdoptedParentID string   `json:"adoptedParentId,omitempty" yaml:"adoptedParentId,omitempty"`
	SpouseIDs       []string `json:"spouseIds,omitempty"       yaml:"spouseIds,omitempty"`

	Titles []Title `json:"titles,omitempty" yaml:"titles,omitempty" validate:"dive"`

	// Role is the default role, used when no title resolves against the active contexts.
	Role Role `json:"role" yaml:"role"`

	// VerticalPosition is the free slot index used when no title anchors the person.
	VerticalPosition float64 `json:"verticalPosition" yaml:"verticalPosition"`

	Color    string `json:"color,omitempty" yaml:"color,omitempty" validate:"omitempty,iscolor"`
	IsHidden bool   `json:"isHidden"        yaml:"isHidden"`
}

// Title is an office held by a person over one or more periods.
type Title struct {
	ID       string `json:"id"       yaml:"id"`
	Name     string `json:"name"     yaml:"name"     validate:"required"`
	EntityID string `json:"entityId" yaml:"entityId" validate:"required"`

	// Rank is nil when the title has no defined seniority; such titles sort last.
	Rank *Rank `json:"rank,omitempty" yaml:"rank,omitempty"`

	Role          Role          `json:"role"          yaml:"role"`
	Periods       []TitlePeriod `json:"periods"       yaml:"periods"       validate:"dive"`
	PositionIndex int           `json:"positionIndex" yaml:"positionIndex"`

	// VerticalShift offsets the holder within the entity band, in node-diameter units.
	VerticalShift float64 `json:"verticalShift" yaml:"verticalShift"`
}

// TitlePeriod is one contiguous span of office.
type TitlePeriod struct {
	StartYear  int `json:"startYear"            yaml:"startYear"`
	StartMonth int `json:"startMonth,omitempty" yaml:"startMonth,omitempty" validate:"min=0,max=12"`
	StartDay   int `json:"startDay,omitempty"   yaml:"startDay,omitempty"   validate:"min=0,max=31"`
	EndYear    int `json:"endYear"              yaml:"endYear"              validate:"gtefield=StartYear"`
	EndMonth   int `json:"endMonth,omitempty"   yaml:"endMonth,omitempty"   validate:"min=0,max=12"`
	EndDay     int `json:"endDay,omitempty"     yaml:"endDay,omitempty"     validate:"min=0,max=31"`

	// IsHidden suppresses the date label. Rendering only.
	IsHidden bool `json:"isHidden,omitempty" yaml:"isHidden,omitempty"`
}

// # Person helpers

// Lifespan returns the half-open year interval [start, end) the person was alive.
//
// A person who died in their birth year (or has a malformed death year) lives one year.
func (p Person) Lifespan() (start, end int) {
	if p.DeathYear <= p.BirthYear {
		return p.BirthYear, p.BirthYear + 1
	}
	return p.BirthYear, p.DeathYear
}

// AgeAtDeath returns the age in whole years, honouring month and day when both are known.
func (p Person) AgeAtDeath() int {
	age := p.DeathYear - p.BirthYear
	if p.BirthMonth == 0 || p.DeathMonth == 0 {
		return max(age, 0)
	}
	if p.DeathMonth < p.BirthMonth || (p.DeathMonth == p.BirthMonth && p.DeathDay < p.BirthDay) {
		age--
	}
	return max(age, 0)
}

// ReignSpan returns the min/max years over every title period, or the lifespan
// when the person holds no dated titles.
func (p Person) ReignSpan() (start, end int) {
	found := false
	for _, title := range p.Titles {
		for _, period := range title.Periods {
			if !found {
				start, end, found = period.StartYear, period.EndYear, true
				continue
			}
			start = min(start, period.StartYear)
			end = max(end, period.EndYear)
		}
	}
	if !found {
		return p.BirthYear, p.DeathYear
	}
	return start, end
}

// HasSpouse reports whether id is listed on this side of the marriage.
func (p Person) HasSpouse(id string) bool {
	return slices.Contains(p.SpouseIDs, id)
}

// Clone returns a deep copy safe to mutate without touching the original record.
func (p Person) Clone() Person {
	clone := p
	clone.SpouseIDs = slices.Clone(p.SpouseIDs)
	if p.Titles != nil {
		clone.Titles = make([]Title, len(p.Titles))
		for i, title := range p.Titles {
			title.Periods = slices.Clone(title.Periods)
			if title.Rank != nil {
				title.Rank = pointer.To(*title.Rank)
			}
			clone.Titles[i] = title
		}
	}
	return clone
}

// # Title helpers

// EffectiveRank returns the title rank, or [RankUnranked] when undefined.
func (t Title) EffectiveRank() Rank {
	return pointer.Fallback(t.Rank, RankUnranked)
}

// EarliestStart returns the smallest period start year. ok is false for a title without periods.
func (t Title) EarliestStart() (year int, ok bool) {
	for i, period := range t.Periods {
		if i == 0 || period.StartYear < year {
			year = period.StartYear
		}
	}
	return year, len(t.Periods) > 0
}

// SortedPeriods returns the periods ordered by start year without modifying the title.
func (t Title) SortedPeriods() []TitlePeriod {
	periods := slices.Clone(t.Periods)
	slices.SortStableFunc(periods, func(a, b TitlePeriod) int {
		return a.StartYear - b.StartYear
	})
	return periods
}
