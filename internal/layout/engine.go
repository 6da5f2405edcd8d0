// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"math"
	"slices"

	"github.com/taibuivan/reignline/internal/chronicle"
)

// Input is everything a layout pass reads. It is supplied fresh on every pass.
type Input struct {
	People           []chronicle.Person          `json:"people"`
	Entities         []chronicle.PoliticalEntity `json:"entities"`
	Dynasties        []chronicle.Dynasty         `json:"dynasties"`
	ActiveContextIDs []string                    `json:"activeContextIds"`
	HiddenEntityIDs  []string                    `json:"hiddenEntityIds"`
	Settings         chronicle.ViewSettings      `json:"settings"`
	MinYear          int                         `json:"minYear"`
	MaxYear          int                         `json:"maxYear"`

	// Drag is the uncommitted offset of an in-progress drag gesture.
	Drag *DragOffset `json:"drag,omitempty"`
}

// WithPerson returns a copy of the input in which the record with the same id is replaced.
func (in Input) WithPerson(updated chronicle.Person) Input {
	out := in
	out.People = slices.Clone(in.People)
	for i := range out.People {
		if out.People[i].ID == updated.ID {
			out.People[i] = updated
		}
	}
	return out
}

// Engine holds the derived lookups of one layout pass.
type Engine struct {
	input  Input
	index  *chronicle.Index
	active chronicle.IDSet
	hidden chronicle.IDSet
	scale  Scale
	axis   TimeAxis
	layers LayerTable
}

// New validates the input and resolves the entity layers.
func New(in Input) (*Engine, error) {
	scale, err := NewScale(in.Settings.Zoom)
	if err != nil {
		return nil, err
	}
	axis, err := NewTimeAxis(in.MinYear, in.Settings.Zoom)
	if err != nil {
		return nil, err
	}
	if err := CheckYearRange(in.MinYear, in.MaxYear); err != nil {
		return nil, err
	}

	active := chronicle.NewIDSet(in.ActiveContextIDs...)
	hidden := chronicle.NewIDSet(in.HiddenEntityIDs...)

	return &Engine{
		input:  in,
		index:  chronicle.NewIndex(in.People, in.Entities, in.Dynasties, nil),
		active: active,
		hidden: hidden,
		scale:  scale,
		axis:   axis,
		layers: ResolveLayers(in.Entities, active, hidden),
	}, nil
}

// Compute runs a full layout pass.
func Compute(in Input) (*Scene, error) {
	engine, err := New(in)
	if err != nil {
		return nil, err
	}
	return engine.Scene(), nil
}

func (e *Engine) Scale() Scale       { return e.scale }
func (e *Engine) Axis() TimeAxis     { return e.axis }
func (e *Engine) Layers() LayerTable { return e.layers }

// ResolveEffectiveRole resolves the person's role against the given context ids.
func (e *Engine) ResolveEffectiveRole(person chronicle.Person, activeContextIDs []string) chronicle.Role {
	return ResolveRole(person, chronicle.NewIDSet(activeContextIDs...), e.index.Entities)
}

func (e *Engine) effectiveRole(person chronicle.Person) chronicle.Role {
	return ResolveRole(person, e.active, e.index.Entities)
}

// # Scene

// Scene is the renderer-facing output of a layout pass.
type Scene struct {
	Zoom       float64       `json:"zoom"`
	Scale      float64       `json:"scale"`
	MinYear    int           `json:"minYear"`
	MaxYear    int           `json:"maxYear"`
	Width      float64       `json:"width"`
	Height     float64       `json:"height"`
	Ticks      []Tick        `json:"ticks"`
	GridLines  []float64     `json:"gridLines,omitempty"`
	Entities   []EntityBlock `json:"entities"`
	People     []PersonNode  `json:"people"`
	Connectors []Connector   `json:"connectors"`
	Markers    []Marker      `json:"markers"`
}

// EntityBlock is the drawable band of one active period instance.
type EntityBlock struct {
	EntityID    string             `json:"entityId"`
	EntityName  string             `json:"entityName"`
	PeriodID    string             `json:"periodId"`
	GroupID     string             `json:"groupId"`
	Role        chronicle.Role     `json:"role"`
	HeightIndex int                `json:"heightIndex"`
	RowSpan     int                `json:"rowSpan"`
	StartYear   int                `json:"startYear"`
	EndYear     int                `json:"endYear"`
	X           float64            `json:"x"`
	Y           float64            `json:"y"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Color       string             `json:"color"`
	Vassalage   []VassalageOverlay `json:"vassalageOverlays"`
}

// VassalageOverlay is a vassalage interval clipped to its block. X is relative to the block.
type VassalageOverlay struct {
	LiegeID   string  `json:"liegeId"`
	LiegeName string  `json:"liegeName"`
	StartYear int     `json:"startYear"`
	EndYear   int     `json:"endYear"`
	X         float64 `json:"x"`
	Width     float64 `json:"width"`
}

// PersonNode is a visible person with its final geometry.
type PersonNode struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	DynastyID     string         `json:"dynastyId,omitempty"`
	X             float64        `json:"x"`
	Y             float64        `json:"y"`
	Width         float64        `json:"width"`
	ContentOffset float64        `json:"contentOffset"`
	ImageSize     float64        `json:"imageSize"`
	EffectiveRole chronicle.Role `json:"effectiveRole"`
	Anchored      bool           `json:"anchored"`
	AnchorEntity  string         `json:"anchorEntityId,omitempty"`
	Color         string         `json:"color"`
	Age           int            `json:"age"`
	ShowLifespan  bool           `json:"showLifespan"`
	Highlighted   bool           `json:"highlighted,omitempty"`
	Dimmed        bool           `json:"dimmed,omitempty"`
	Dragging      bool           `json:"dragging,omitempty"`
	Titles        []TitleTrack   `json:"titles"`
}

// Scene assembles blocks, nodes, connectors and ruler for the input.
func (e *Engine) Scene() *Scene {
	in := e.input
	scene := &Scene{
		Zoom:       in.Settings.Zoom,
		Scale:      e.scale.Factor,
		MinYear:    in.MinYear,
		MaxYear:    in.MaxYear,
		Width:      e.axis.Width(in.MaxYear),
		Ticks:      e.axis.Ticks(in.MaxYear),
		Entities:   e.entityBlocks(),
		People:     []PersonNode{},
		Connectors: []Connector{},
	}
	if in.Settings.ShowGrid {
		scene.GridLines = e.axis.GridLines(in.MaxYear)
	}

	drawn := make(map[string]anchorBox, len(in.People))
	order := make([]chronicle.Person, 0, len(in.People))
	bottom := 0.0

	for _, person := range in.People {
		if _, dup := drawn[person.ID]; dup {
			continue
		}
		role := e.effectiveRole(person)
		if !IsVisible(person, role, in.Settings) {
			continue
		}

		node := e.personNode(person, role)
		scene.People = append(scene.People, node)
		drawn[person.ID] = newAnchorBox(node)
		order = append(order, person)
		restingY := node.Y
		if node.Dragging {
			restingY -= in.Drag.DeltaY
		}
		bottom = math.Max(bottom, restingY+e.scale.SlotHeight())
	}

	scene.Connectors = e.connectors(order, drawn)
	scene.Markers = collectMarkers(scene.Connectors)

	scene.Height = math.Max(minSceneHeight, float64(e.layers.LayerCount())*e.scale.LayerHeight()+sceneMargin)
	if len(scene.People) > 0 {
		scene.Height = math.Max(scene.Height, bottom+sceneMargin)
	}

	return scene
}

func (e *Engine) entityBlocks() []EntityBlock {
	blocks := make([]EntityBlock, 0, len(e.layers.Instances))
	for _, instance := range e.layers.Instances {
		x := e.axis.YearToX(float64(instance.StartYear))
		block := EntityBlock{
			EntityID:    instance.EntityID,
			EntityName:  instance.EntityName,
			PeriodID:    instance.PeriodID,
			GroupID:     instance.Context.GroupID,
			Role:        instance.Context.Role,
			HeightIndex: instance.Context.HeightIndex,
			RowSpan:     instance.Context.Span(),
			StartYear:   instance.StartYear,
			EndYear:     instance.EndYear,
			X:           x,
			Y:           e.scale.LayerY(instance.Context.HeightIndex),
			Width:       e.axis.YearToX(float64(instance.EndYear)) - x,
			Height:      e.scale.BandHeight(instance.Context.RowSpan),
			Color:       instance.Color,
			Vassalage:   []VassalageOverlay{},
		}

		period := chronicle.EntityPeriod{StartYear: instance.StartYear, EndYear: instance.EndYear}
		for _, v := range instance.Vassalage {
			start, end, ok := period.Clip(v)
			if !ok {
				continue
			}
			block.Vassalage = append(block.Vassalage, VassalageOverlay{
				LiegeID:   v.LiegeID,
				LiegeName: e.index.EntityName(v.LiegeID, "Unknown"),
				StartYear: start,
				EndYear:   end,
				X:         float64(start-instance.StartYear) * e.axis.Zoom,
				Width:     float64(end-start) * e.axis.Zoom,
			})
		}
		blocks = append(blocks, block)
	}
	return blocks
}

func (e *Engine) personNode(person chronicle.Person, role chronicle.Role) PersonNode {
	placement := e.Place(person)
	settings := e.input.Settings

	node := PersonNode{
		ID:            person.ID,
		Name:          person.OfficialName,
		DynastyID:     person.DynastyID,
		X:             placement.X,
		Y:             placement.Y,
		Width:         placement.Width,
		ContentOffset: placement.ContentOffset,
		ImageSize:     e.scale.ImageSize(role),
		EffectiveRole: role,
		Anchored:      placement.Anchored,
		AnchorEntity:  placement.EntityID,
		Color:         e.colorOf(person, defaultConnectorColor).Color,
		Age:           person.AgeAtDeath(),
		ShowLifespan:  settings.ShowLifespans,
		Titles:        e.titleTracks(person, placement.X),
	}

	if drag := e.input.Drag; drag != nil && drag.PersonID == person.ID {
		node.Y += drag.DeltaY
		node.Dragging = true
	}

	if highlight := settings.HighlightedDynastyID; highlight != "" {
		node.Highlighted = person.DynastyID == highlight
		node.Dimmed = !node.Highlighted
	}

	return node
}
