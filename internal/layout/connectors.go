// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"github.com/taibuivan/reignline/internal/chronicle"
	"github.com/taibuivan/reignline/pkg/slug"
)

const (
	defaultConnectorColor = "#666666"
	marriageDash          = "4 2"
	markerPrefix          = "arrowhead-"
	defaultMarkerID       = markerPrefix + "default"
)

// ConnectorKind distinguishes parentage from marriage links.
type ConnectorKind string

const (
	ConnectorParent   ConnectorKind = "parent"
	ConnectorMarriage ConnectorKind = "marriage"
)

// Stroke is one drawn path of a connector.
type Stroke struct {
	Path  Path   `json:"d"`
	Color string `json:"color"`
	Dash  string `json:"dash,omitempty"`
}

// Connector links two visible people. Marriages carry two dashed strands, one per spouse color.
type Connector struct {
	Kind       ConnectorKind `json:"kind"`
	FromID     string        `json:"fromId"`
	ToID       string        `json:"toId"`
	Strokes    []Stroke      `json:"strokes"`
	MarkerID   string        `json:"markerId,omitempty"`
	Emphasized bool          `json:"emphasized,omitempty"`
}

// Marker is an arrowhead definition shared by every connector of the same color source.
type Marker struct {
	ID    string `json:"id"`
	Color string `json:"color"`
}

// anchorBox is the image geometry connectors attach to.
type anchorBox struct {
	left, right, centerX, midY float64
}

func newAnchorBox(node PersonNode) anchorBox {
	center := node.X + node.ContentOffset
	half := node.ImageSize / 2
	return anchorBox{left: center - half, right: center + half, centerX: center, midY: node.Y + half}
}

type colorSource struct {
	Color    string
	MarkerID string
}

// colorOf resolves the person's override color, then the dynasty color, then fallback.
func (e *Engine) colorOf(person chronicle.Person, fallback string) colorSource {
	if person.Color != "" {
		return colorSource{Color: person.Color, MarkerID: markerPrefix + "person-" + markerKey(person.ID)}
	}
	if dynasty, ok := e.index.Dynasties[person.DynastyID]; ok && dynasty.Color != "" {
		return colorSource{Color: dynasty.Color, MarkerID: markerPrefix + "dynasty-" + markerKey(dynasty.ID)}
	}
	return colorSource{Color: fallback, MarkerID: defaultMarkerID}
}

func markerKey(id string) string {
	if key := slug.From(id); key != "" {
		return key
	}
	return id
}

func (e *Engine) emphasized(a, b chronicle.Person) bool {
	highlight := e.input.Settings.HighlightedDynastyID
	return highlight != "" && (a.DynastyID == highlight || b.DynastyID == highlight)
}

// connectors routes parent and marriage links between drawn people, in draw order.
func (e *Engine) connectors(order []chronicle.Person, drawn map[string]anchorBox) []Connector {
	settings := e.input.Settings
	radius := e.scale.CornerRadius()
	out := []Connector{}

	if settings.ShowParentalConnections {
		for _, child := range order {
			childBox := drawn[child.ID]

			// Mother first so the father's connector is painted on top.
			for i, parentID := range []string{child.MotherID, child.FatherID} {
				if parentID == "" || parentID == child.ID || (i == 1 && parentID == child.MotherID) {
					continue
				}
				parentBox, ok := drawn[parentID]
				if !ok {
					continue
				}
				parent := e.index.People[parentID]
				source := e.colorOf(parent, defaultConnectorColor)

				path := RoutePath(
					parentBox.right+e.scale.ParentStartGap(), parentBox.midY,
					childBox.left-e.scale.ParentEndGap(), childBox.midY,
					radius,
				)
				out = append(out, Connector{
					Kind:       ConnectorParent,
					FromID:     parentID,
					ToID:       child.ID,
					Strokes:    []Stroke{{Path: path, Color: source.Color}},
					MarkerID:   source.MarkerID,
					Emphasized: e.emphasized(parent, child),
				})
			}
		}
	}

	if settings.ShowMarriages {
		for _, pair := range spousePairs(order, drawn) {
			out = append(out, e.marriage(pair[0], pair[1], drawn, radius))
		}
	}

	return out
}

func (e *Engine) marriage(a, b chronicle.Person, drawn map[string]anchorBox, radius float64) Connector {
	boxA, boxB := drawn[a.ID], drawn[b.ID]
	gap := e.scale.SpouseGap()

	x1, x2 := boxA.left-gap, boxB.right+gap
	if boxA.centerX < boxB.centerX {
		x1, x2 = boxA.right+gap, boxB.left-gap
	}

	offset := e.scale.StrandOffset()
	return Connector{
		Kind:   ConnectorMarriage,
		FromID: a.ID,
		ToID:   b.ID,
		Strokes: []Stroke{
			{
				Path:  RoutePath(x1, boxA.midY-offset, x2, boxB.midY-offset, radius),
				Color: e.colorOf(a, defaultConnectorColor).Color,
				Dash:  marriageDash,
			},
			{
				Path:  RoutePath(x1, boxA.midY+offset, x2, boxB.midY+offset, radius),
				Color: e.colorOf(b, defaultConnectorColor).Color,
				Dash:  marriageDash,
			},
		},
		Emphasized: e.emphasized(a, b),
	}
}

// spousePairs builds the undirected marriage edge set among drawn people.
//
// Links recorded on only one side are found because every drawn person's list is
// scanned; the canonical key (sorted ids) keeps each pair exactly once.
func spousePairs(order []chronicle.Person, drawn map[string]anchorBox) [][2]chronicle.Person {
	byID := make(map[string]chronicle.Person, len(order))
	for _, p := range order {
		byID[p.ID] = p
	}

	seen := make(map[[2]string]struct{})
	var pairs [][2]chronicle.Person
	for _, person := range order {
		for _, spouseID := range person.SpouseIDs {
			if spouseID == person.ID {
				continue
			}
			if _, ok := drawn[spouseID]; !ok {
				continue
			}
			key := [2]string{person.ID, spouseID}
			if key[1] < key[0] {
				key[0], key[1] = key[1], key[0]
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			pairs = append(pairs, [2]chronicle.Person{person, byID[spouseID]})
		}
	}
	return pairs
}

func collectMarkers(connectors []Connector) []Marker {
	markers := []Marker{}
	seen := make(map[string]struct{})
	for _, c := range connectors {
		if c.MarkerID == "" || len(c.Strokes) == 0 {
			continue
		}
		if _, dup := seen[c.MarkerID]; dup {
			continue
		}
		seen[c.MarkerID] = struct{}{}
		markers = append(markers, Marker{ID: c.MarkerID, Color: c.Strokes[0].Color})
	}
	return markers
}
