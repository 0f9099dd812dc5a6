// math/geom.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

// Line is a pair of lat-long points; procedure legs use it for their
// defining segment.
type Line struct {
	A, B Point2LL
}

// IsPoint reports whether the line is degenerate, i.e. both endpoints are
// at the same position.
func (l Line) IsPoint() bool {
	return l.A == l.B
}

// LineString is an ordered sequence of lat-long points describing the
// displayable path of a route leg: a single point for the first leg, two
// points for a direct leg, or whatever the procedure definition gives us.
type LineString []Point2LL

func (ls LineString) IsPoint() bool {
	if len(ls) == 1 {
		return true
	}
	for _, p := range ls[1:] {
		if p != ls[0] {
			return false
		}
	}
	return len(ls) > 0
}

// Length returns the total great-circle length of the line string in
// nautical miles.
func (ls LineString) Length() float32 {
	var d float32
	for i := 1; i < len(ls); i++ {
		d += NMDistance2LL(ls[i-1], ls[i])
	}
	return d
}
