// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/taibuivan/reignline/internal/chronicle"
)

// Placement is the position of one person, before visibility filtering.
type Placement struct {
	X             float64
	Y             float64
	Width         float64
	ContentOffset float64

	// Anchored is true when a title ties the person to an entity band.
	Anchored    bool
	TitleIndex  int
	EntityID    string
	PeriodID    string
	HeightIndex int
}

type candidate struct {
	titleIndex int
	rank       chronicle.Rank
	earliest   int
	position   int
	period     chronicle.EntityPeriod
	context    chronicle.EntityContextRole
}

// Place computes the person's node position.
//
// The best qualifying title (lowest rank, then earliest period) anchors the person
// to its entity band, offset by the title's vertical shift. Without one, the person
// sits in a free slot below every band.
func (e *Engine) Place(person chronicle.Person) Placement {
	placement := Placement{TitleIndex: -1}
	placement.X, placement.Width, placement.ContentOffset = e.horizontal(person)

	candidates := e.candidates(person)
	if len(candidates) == 0 {
		placement.Y = e.FallbackBaseY() + person.VerticalPosition*e.scale.SlotHeight()
		return placement
	}

	best := candidates[0]
	title := person.Titles[best.titleIndex]
	placement.Anchored = true
	placement.TitleIndex = best.titleIndex
	placement.EntityID = title.EntityID
	placement.PeriodID = best.period.ID
	placement.HeightIndex = best.context.HeightIndex
	placement.Y = e.scale.LayerY(best.context.HeightIndex) + title.VerticalShift*e.scale.UnitHeight()
	return placement
}

// FallbackBaseY is the top of the free slot area, just below the tallest band.
func (e *Engine) FallbackBaseY() float64 {
	return float64(e.layers.LayerCount())*e.scale.LayerHeight() + e.scale.FallbackPadding()
}

func (e *Engine) horizontal(person chronicle.Person) (x, width, contentOffset float64) {
	x = e.axis.YearToX(float64(person.BirthYear))
	width = math.Max(e.axis.YearToX(float64(person.DeathYear))-x, minNodeWidth)

	reignStart, reignEnd := person.ReignSpan()
	mid := float64(reignStart+reignEnd) / 2
	contentOffset = (mid - float64(person.BirthYear)) * e.axis.Zoom
	return x, width, contentOffset
}

func (e *Engine) candidates(person chronicle.Person) []candidate {
	start, end := person.Lifespan()

	var candidates []candidate
	for i, title := range person.Titles {
		earliest, ok := title.EarliestStart()
		if !ok {
			continue
		}
		entity, ok := e.index.Entities[title.EntityID]
		if !ok || e.hidden.Has(entity.ID) {
			continue
		}
		period, context, ok := e.anchorPeriod(entity, title, start, end)
		if !ok {
			continue
		}
		candidates = append(candidates, candidate{
			titleIndex: i,
			rank:       title.EffectiveRank(),
			earliest:   earliest,
			position:   title.PositionIndex,
			period:     period,
			context:    context,
		})
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return cmp.Or(
			cmp.Compare(a.rank, b.rank),
			cmp.Compare(a.earliest, b.earliest),
			cmp.Compare(a.position, b.position),
		)
	})
	return candidates
}

// anchorPeriod picks the entity period a title is drawn against.
//
// Qualifying periods have an active context and overlap the lifespan. The one
// met by the title's earliest overlapping period wins; otherwise the first qualifying one.
func (e *Engine) anchorPeriod(entity chronicle.PoliticalEntity, title chronicle.Title, start, end int) (chronicle.EntityPeriod, chronicle.EntityContextRole, bool) {
	type qualifying struct {
		period  chronicle.EntityPeriod
		context chronicle.EntityContextRole
	}

	var periods []qualifying
	for _, period := range entity.Periods {
		if !period.OverlapsLifespan(start, end) {
			continue
		}
		if context, ok := chronicle.BestContext(period.Contexts, e.active); ok {
			periods = append(periods, qualifying{period: period, context: context})
		}
	}
	if len(periods) == 0 {
		return chronicle.EntityPeriod{}, chronicle.EntityContextRole{}, false
	}

	for _, held := range title.SortedPeriods() {
		for _, q := range periods {
			if q.period.OverlapsTitle(held) {
				return q.period, q.context, true
			}
		}
	}
	return periods[0].period, periods[0].context, true
}

// # Title tracks

// TitleTrack is one title drawn under a person node.
type TitleTrack struct {
	TitleID  string         `json:"titleId"`
	Name     string         `json:"name"`
	EntityID string         `json:"entityId"`
	Rank     chronicle.Rank `json:"rank"`
	Role     chronicle.Role `json:"role"`
	Segments []TitleSegment `json:"segments"`
}

// TitleSegment is one held period. X is relative to the node's left edge.
type TitleSegment struct {
	StartYear int     `json:"startYear"`
	EndYear   int     `json:"endYear"`
	X         float64 `json:"x"`
	Width     float64 `json:"width"`
	HideDates bool    `json:"hideDates,omitempty"`
}

func (e *Engine) titleTracks(person chronicle.Person, nodeX float64) []TitleTrack {
	titles := slices.Clone(person.Titles)
	slices.SortStableFunc(titles, func(a, b chronicle.Title) int {
		return cmp.Or(
			cmp.Compare(a.EffectiveRank(), b.EffectiveRank()),
			cmp.Compare(a.PositionIndex, b.PositionIndex),
		)
	})

	tracks := make([]TitleTrack, 0, len(titles))
	for _, title := range titles {
		track := TitleTrack{
			TitleID:  title.ID,
			Name:     title.Name,
			EntityID: title.EntityID,
			Rank:     title.EffectiveRank(),
			Role:     title.Role,
			Segments: make([]TitleSegment, 0, len(title.Periods)),
		}
		for _, period := range title.SortedPeriods() {
			x := e.axis.YearToX(float64(period.StartYear))
			track.Segments = append(track.Segments, TitleSegment{
				StartYear: period.StartYear,
				EndYear:   period.EndYear,
				X:         x - nodeX,
				Width:     e.axis.YearToX(float64(period.EndYear)) - x,
				HideDates: period.IsHidden,
			})
		}
		tracks = append(tracks, track)
	}
	return tracks
}

// # Commands

// MovePosition nudges a person vertically by deltaPixels and returns the updated record.
//
// An anchored person moves by adjusting the anchoring title's vertical shift; a
// free-floating one by adjusting its slot index. Both are rounded to one decimal.
func (e *Engine) MovePosition(personID string, deltaPixels float64) (chronicle.Person, error) {
	person, ok := e.index.Person(personID)
	if !ok {
		return chronicle.Person{}, fmt.Errorf("%w: %s", ErrUnknownPerson, personID)
	}

	moved := person.Clone()
	placement := e.Place(person)
	if placement.Anchored {
		title := &moved.Titles[placement.TitleIndex]
		title.VerticalShift = roundTenth(title.VerticalShift + deltaPixels/e.scale.UnitHeight())
	} else {
		moved.VerticalPosition = roundTenth(moved.VerticalPosition + deltaPixels/e.scale.SlotHeight())
	}
	return moved, nil
}

// Hide returns a copy of the person with the hidden flag set.
func (e *Engine) Hide(personID string) (chronicle.Person, error) {
	person, ok := e.index.Person(personID)
	if !ok {
		return chronicle.Person{}, fmt.Errorf("%w: %s", ErrUnknownPerson, personID)
	}
	hidden := person.Clone()
	hidden.IsHidden = true
	return hidden, nil
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
