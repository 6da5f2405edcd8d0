// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chronicle

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// structValidator is safe for concurrent use and caches struct metadata.
var structValidator = validator.New(validator.WithRequiredStructEnabled())

// Severity classifies a dataset problem.
type Severity string

const (
	// SeverityError marks malformed records that should be fixed before use.
	SeverityError Severity = "error"

	// SeverityWarning marks data the engine tolerates but probably renders wrongly.
	SeverityWarning Severity = "warning"
)

// Problem is one finding about a dataset.
type Problem struct {
	Severity Severity `json:"severity"`
	Field    string   `json:"field"`
	Message  string   `json:"message"`
}

// Validate checks field-level constraints (required ids, date ranges, colors).
func (d Dataset) Validate() []Problem {
	err := structValidator.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return []Problem{{Severity: SeverityError, Field: "dataset", Message: err.Error()}}
	}

	problems := make([]Problem, 0, len(fieldErrors))
	for _, fe := range fieldErrors {
		problems = append(problems, Problem{
			Severity: SeverityError,
			Field:    fe.Namespace(),
			Message:  describeTag(fe),
		})
	}
	return problems
}

func describeTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "gtefield":
		return fmt.Sprintf("Must not be before %s", fe.Param())
	case "min", "max":
		return fmt.Sprintf("Out of range (%s=%s)", fe.Tag(), fe.Param())
	case "iscolor":
		return "Must be a CSS color"
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Failed %q check", fe.Tag())
	}
}

// Audit reports referential problems the layout engine silently tolerates:
// duplicate ids, dangling references, and entity bands that claim the same
// rows in the same context at the same time.
func (d Dataset) Audit() []Problem {
	var problems []Problem
	warn := func(field, format string, args ...any) {
		problems = append(problems, Problem{Severity: SeverityWarning, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	index := d.Index()
	seen := make(map[string]bool, len(d.People))
	for _, p := range d.People {
		if seen[p.ID] {
			warn("people."+p.ID, "duplicate person id")
		}
		seen[p.ID] = true
	}

	for _, p := range d.People {
		field := "people." + p.ID
		for _, ref := range ParentIDsOf(p) {
			if _, ok := index.People[ref]; !ok {
				warn(field, "unknown parent %q", ref)
			}
		}
		for _, ref := range p.SpouseIDs {
			if _, ok := index.People[ref]; !ok {
				warn(field, "unknown spouse %q", ref)
			}
		}
		if p.DynastyID != "" {
			if _, ok := index.Dynasties[p.DynastyID]; !ok {
				warn(field, "unknown dynasty %q", p.DynastyID)
			}
		}
		for _, title := range p.Titles {
			if _, ok := index.Entities[title.EntityID]; !ok {
				warn(field+".titles."+title.ID, "unknown entity %q", title.EntityID)
			}
			if len(title.Periods) == 0 {
				warn(field+".titles."+title.ID, "title has no periods")
			}
		}
	}

	for _, e := range d.Entities {
		for _, period := range e.Periods {
			for _, ctx := range period.Contexts {
				if _, ok := index.Groups[ctx.GroupID]; !ok {
					warn("entities."+e.ID+"."+period.ID, "unknown group %q", ctx.GroupID)
				}
			}
			for _, v := range period.Vassalage {
				if _, ok := index.Entities[v.LiegeID]; !ok {
					warn("entities."+e.ID+"."+period.ID, "unknown liege %q", v.LiegeID)
				}
			}
		}
	}

	return append(problems, overlappingBands(d.Entities)...)
}

type band struct {
	entityID, periodID string
	period             EntityPeriod
	ctx                EntityContextRole
}

func overlappingBands(entities []PoliticalEntity) []Problem {
	var bands []band
	for _, e := range entities {
		for _, period := range e.Periods {
			for _, ctx := range period.Contexts {
				bands = append(bands, band{entityID: e.ID, periodID: period.ID, period: period, ctx: ctx})
			}
		}
	}

	var problems []Problem
	for i := 0; i < len(bands); i++ {
		for j := i + 1; j < len(bands); j++ {
			a, b := bands[i], bands[j]
			if a.entityID == b.entityID || a.ctx.GroupID != b.ctx.GroupID {
				continue
			}
			rowsMeet := a.ctx.HeightIndex <= b.ctx.LastRow() && b.ctx.HeightIndex <= a.ctx.LastRow()
			yearsMeet := a.period.StartYear <= b.period.EndYear && b.period.StartYear <= a.period.EndYear
			if rowsMeet && yearsMeet {
				problems = append(problems, Problem{
					Severity: SeverityWarning,
					Field:    "entities." + a.entityID + "." + a.periodID,
					Message: fmt.Sprintf("band overlaps %s.%s in group %q",
						b.entityID, b.periodID, a.ctx.GroupID),
				})
			}
		}
	}
	return problems
}
