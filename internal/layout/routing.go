// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package layout

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Segment is one path command: M and L carry one point, Q carries a control point and an end point.
type Segment struct {
	Op     byte
	Coords []float64
}

// Path is an SVG-compatible path description.
type Path []Segment

func (p Path) moveTo(x, y float64) Path { return append(p, Segment{Op: 'M', Coords: []float64{x, y}}) }
func (p Path) lineTo(x, y float64) Path { return append(p, Segment{Op: 'L', Coords: []float64{x, y}}) }
func (p Path) quadTo(cx, cy, x, y float64) Path {
	return append(p, Segment{Op: 'Q', Coords: []float64{cx, cy, x, y}})
}

// String renders the path as "M x y L x y Q cx cy x y ...".
func (p Path) String() string {
	var b strings.Builder
	for i, segment := range p {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(segment.Op)
		for _, v := range segment.Coords {
			b.WriteByte(' ')
			b.WriteString(formatCoord(v))
		}
	}
	return b.String()
}

// MarshalText renders the path string so JSON carries a ready-to-draw "d" attribute.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a path previously produced by [Path.MarshalText].
func (p *Path) UnmarshalText(text []byte) error {
	fields := strings.Fields(string(text))
	parsed := Path{}
	for i := 0; i < len(fields); {
		op := fields[i]
		arity := 2
		switch op {
		case "M", "L":
		case "Q":
			arity = 4
		default:
			return fmt.Errorf("layout: unsupported path command %q", op)
		}
		if i+arity >= len(fields) {
			return fmt.Errorf("layout: truncated %s command", op)
		}
		coords := make([]float64, arity)
		for j := range coords {
			v, err := strconv.ParseFloat(fields[i+1+j], 64)
			if err != nil {
				return fmt.Errorf("layout: bad coordinate: %w", err)
			}
			coords[j] = v
		}
		parsed = append(parsed, Segment{Op: op[0], Coords: coords})
		i += arity + 1
	}
	*p = parsed
	return nil
}

// End returns the final point of the path.
func (p Path) End() (x, y float64) {
	if len(p) == 0 {
		return 0, 0
	}
	coords := p[len(p)-1].Coords
	return coords[len(coords)-2], coords[len(coords)-1]
}

func formatCoord(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // normalise -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RoutePath draws a rounded H-V-H connector from (x1, y1) to (x2, y2).
//
// The path runs horizontally to the midpoint, turns, runs vertically, turns again
// and finishes horizontally. The corner radius is clamped to half of each gap. It
// degenerates to a straight line when the horizontal gap is under two radii or the
// vertical gap is under 2 px.
func RoutePath(x1, y1, x2, y2, radius float64) Path {
	dx := math.Abs(x2 - x1)
	dy := math.Abs(y2 - y1)
	if dx < radius*2 || dy < 2 {
		return Path{}.moveTo(x1, y1).lineTo(x2, y2)
	}

	xDir, yDir := 1.0, 1.0
	if x2 < x1 {
		xDir = -1
	}
	if y2 < y1 {
		yDir = -1
	}
	r := math.Min(radius, math.Min(dy/2, dx/2))
	midX := (x1 + x2) / 2

	return Path{}.
		moveTo(x1, y1).
		lineTo(midX-r*xDir, y1).
		quadTo(midX, y1, midX, y1+r*yDir).
		lineTo(midX, y2-r*yDir).
		quadTo(midX, y2, midX+r*xDir, y2).
		lineTo(x2, y2)
}
