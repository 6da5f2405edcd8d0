// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package layout converts historical records into timeline scene geometry.

Every function here is pure and synchronous. A layout pass takes people, political
entities, dynasties, the active context selection and the view settings, and
produces coordinates and path descriptors for a renderer to draw:

  - TimeAxis maps calendar years to horizontal pixels.
  - Scale shrinks every size constant uniformly when zoomed out.
  - ResolveLayers flattens entity periods into banded instances.
  - The engine places people, filters visibility and routes connectors.

The package never loads or saves records. Commands such as [Engine.MovePosition]
return updated copies that the caller persists.
*/
package layout

import (
	"errors"
	"math"

	"github.com/taibuivan/reignline/internal/chronicle"
)

var (
	// ErrInvalidZoom is returned for a zoom that is not a positive finite number.
	ErrInvalidZoom = errors.New("layout: zoom must be a positive number")

	// ErrInvalidYearRange is returned when the axis bounds are inverted, too far apart or out of range.
	ErrInvalidYearRange = errors.New("layout: invalid year range")

	// ErrUnknownPerson is returned by commands addressing an id that is not in the input.
	ErrUnknownPerson = errors.New("layout: unknown person")
)

// Base sizes at scale 1.
const (
	baseLayerHeight     = 220.0
	baseSlotHeight      = 140.0
	baseLayerPadding    = 20.0
	baseFallbackPadding = 40.0
	baseBandInset       = 40.0
	baseCornerRadius    = 15.0

	baseNucleusImage   = 50.0
	baseSecondaryImage = 30.0
	baseTertiaryImage  = 20.0

	baseParentStartGap = 2.0
	baseParentEndGap   = 6.0
	baseSpouseGap      = 4.0
	baseStrandOffset   = 2.0

	minScale       = 0.4
	referenceZoom  = 10.0
	minNodeWidth   = 140.0
	minSceneWidth  = 1000.0
	minSceneHeight = 500.0
	sceneMargin    = 100.0
)

// Scale is the semantic zoom factor applied to every size-dependent constant.
type Scale struct {
	Zoom   float64
	Factor float64
}

// NewScale derives the factor min(1, max(0.4, zoom/10)).
func NewScale(zoom float64) (Scale, error) {
	if err := checkZoom(zoom); err != nil {
		return Scale{}, err
	}
	return Scale{Zoom: zoom, Factor: math.Min(1, math.Max(minScale, zoom/referenceZoom))}, nil
}

func checkZoom(zoom float64) error {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		return ErrInvalidZoom
	}
	return nil
}

// LayerHeight is the height of one entity row.
func (s Scale) LayerHeight() float64 { return baseLayerHeight * s.Factor }

// SlotHeight is the height of one free-floating person slot.
func (s Scale) SlotHeight() float64 { return baseSlotHeight * s.Factor }

// LayerPadding offsets a band from the top of its row.
func (s Scale) LayerPadding() float64 { return baseLayerPadding * s.Factor }

// FallbackPadding separates the lowest band from the free slot area.
func (s Scale) FallbackPadding() float64 { return baseFallbackPadding * s.Factor }

// BandInset is trimmed from the height of a band.
func (s Scale) BandInset() float64 { return baseBandInset * s.Factor }

// CornerRadius rounds the turns of connector paths.
func (s Scale) CornerRadius() float64 { return baseCornerRadius * s.Factor }

// ParentStartGap offsets a parent connector from the parent's node.
func (s Scale) ParentStartGap() float64 { return baseParentStartGap * s.Factor }

// ParentEndGap leaves room for the arrowhead before the child's node.
func (s Scale) ParentEndGap() float64 { return baseParentEndGap * s.Factor }

// SpouseGap offsets a marriage connector from both nodes.
func (s Scale) SpouseGap() float64 { return baseSpouseGap * s.Factor }

// StrandOffset shifts each of the two marriage strands off the shared path.
func (s Scale) StrandOffset() float64 { return baseStrandOffset * s.Factor }

// ImageSize is the node diameter for a role.
func (s Scale) ImageSize(role chronicle.Role) float64 {
	switch role {
	case chronicle.RoleNucleus:
		return baseNucleusImage * s.Factor
	case chronicle.RoleSecondary:
		return baseSecondaryImage * s.Factor
	default:
		return baseTertiaryImage * s.Factor
	}
}

// UnitHeight converts a title's vertical shift into pixels. One unit is one Nucleus diameter.
func (s Scale) UnitHeight() float64 {
	return s.ImageSize(chronicle.RoleNucleus)
}

// LayerY is the top of the band at heightIndex.
func (s Scale) LayerY(heightIndex int) float64 {
	return float64(heightIndex)*s.LayerHeight() + s.LayerPadding()
}

// BandHeight is the drawn height of a band spanning rowSpan rows.
func (s Scale) BandHeight(rowSpan int) float64 {
	return s.LayerHeight()*float64(max(rowSpan, 1)) - s.BandInset()
}
