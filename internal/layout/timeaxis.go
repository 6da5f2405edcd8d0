// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"fmt"
	"math"
)

// TimeAxis maps calendar years onto horizontal pixel offsets.
type TimeAxis struct {
	MinYear int
	Zoom    float64
}

// Year bounds accepted by the engine. They keep the ruler and grid finite.
const (
	// MaxYearSpan is the widest range between the first and last year of an axis.
	MaxYearSpan = 10_000

	// YearLimit bounds the absolute value of any axis year.
	YearLimit = 1_000_000
)

// CheckYearRange reports [ErrInvalidYearRange] unless
// -YearLimit <= minYear <= maxYear <= YearLimit and maxYear-minYear <= MaxYearSpan.
func CheckYearRange(minYear, maxYear int) error {
	if minYear < -YearLimit || maxYear > YearLimit || maxYear < minYear || maxYear-minYear > MaxYearSpan {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidYearRange, minYear, maxYear)
	}
	return nil
}

// NewTimeAxis returns an axis starting at minYear with zoom pixels per year.
func NewTimeAxis(minYear int, zoom float64) (TimeAxis, error) {
	if err := checkZoom(zoom); err != nil {
		return TimeAxis{}, err
	}
	return TimeAxis{MinYear: minYear, Zoom: zoom}, nil
}

// YearToX returns (year - minYear) * zoom. Fractional years are allowed.
func (a TimeAxis) YearToX(year float64) float64 {
	return (year - float64(a.MinYear)) * a.Zoom
}

// XToYear is the inverse of [TimeAxis.YearToX].
func (a TimeAxis) XToYear(x float64) float64 {
	return x/a.Zoom + float64(a.MinYear)
}

// Width returns the content width up to maxYear, never less than the minimum scene width.
func (a TimeAxis) Width(maxYear int) float64 {
	return math.Max(float64(maxYear-a.MinYear)*a.Zoom, minSceneWidth)
}

// # Ruler

// Tick is one labelled year on the ruler.
type Tick struct {
	Year  int     `json:"year"`
	X     float64 `json:"x"`
	Major bool    `json:"major"`
}

// Ticks lists ruler marks between minYear and maxYear.
//
// Decades are always present and major. Above 5 px/year every fifth year is added,
// above 15 px/year every year.
//
// A range rejected by [CheckYearRange] yields no ticks.
func (a TimeAxis) Ticks(maxYear int) []Tick {
	if CheckYearRange(a.MinYear, maxYear) != nil {
		return nil
	}

	step := 10
	switch {
	case a.Zoom > 15:
		step = 1
	case a.Zoom > 5:
		step = 5
	}

	first := ceilToMultiple(a.MinYear, step)
	ticks := make([]Tick, 0, max(0, (maxYear-first)/step+1))
	for year := first; year <= maxYear; year += step {
		ticks = append(ticks, Tick{Year: year, X: a.YearToX(float64(year)), Major: year%10 == 0})
	}
	return ticks
}

// GridLines returns the x of every decade between minYear and maxYear.
func (a TimeAxis) GridLines(maxYear int) []float64 {
	if CheckYearRange(a.MinYear, maxYear) != nil {
		return nil
	}

	var lines []float64
	for year := ceilToMultiple(a.MinYear, 10); year <= maxYear; year += 10 {
		lines = append(lines, a.YearToX(float64(year)))
	}
	return lines
}

func ceilToMultiple(n, step int) int {
	r := n % step
	switch {
	case r == 0:
		return n
	case r > 0:
		return n + step - r
	default:
		return n - r
	}
}
