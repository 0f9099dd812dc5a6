// route/procedure.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"github.com/flightnav/navroute/math"
	"github.com/flightnav/navroute/nav"
)

// ProcedureLegType is the path terminator of a procedure leg, a subset of
// the ARINC424 leg types that matter for display and course/distance
// bookkeeping.
type ProcedureLegType int

const (
	LegInitialFix ProcedureLegType = iota
	LegStartOfProcedure
	LegTrackToFix
	LegCourseToFix
	LegDirectToFix
	LegArcToFix
	LegProcedureTurn
	LegHoldToAltitude
	LegHoldToFix
	LegHoldToManualTermination
)

func (t ProcedureLegType) IsHold() bool {
	return t == LegHoldToAltitude || t == LegHoldToFix || t == LegHoldToManualTermination
}

func (t ProcedureLegType) String() string {
	switch t {
	case LegInitialFix:
		return "IF"
	case LegStartOfProcedure:
		return "Start"
	case LegTrackToFix:
		return "TF"
	case LegCourseToFix:
		return "CF"
	case LegDirectToFix:
		return "DF"
	case LegArcToFix:
		return "AF"
	case LegProcedureTurn:
		return "PI"
	case LegHoldToAltitude:
		return "HA"
	case LegHoldToFix:
		return "HF"
	case LegHoldToManualTermination:
		return "HM"
	default:
		return "?"
	}
}

// ProcedureLeg is one leg of a published approach/departure procedure,
// pre-built by whoever expanded the procedure. Its course, distance, and
// geometry are authoritative: route resolution adopts them rather than
// recomputing (except for point legs following an en-route leg, see
// Leg.UpdateDistanceAndCourse).
type ProcedureLeg struct {
	Type    ProcedureLegType
	MapType MapObjectType // MapApproachLeg, MapTransitionLeg, or MapMissedApproachLeg

	// Defining segment; B is the leg's terminal point.
	Line math.Line
	// Displayable path, possibly curved (arcs, holds).
	Geometry math.LineString

	TrueCourse  float32 // degrees, precomputed by the procedure builder
	Distance    float32 // nm, precomputed
	Magvar      float32
	DisplayText []string

	// Navaids the procedure references at this leg, when resolved.
	Waypoint  *nav.Waypoint
	VOR       *nav.VOR
	NDB       *nav.NDB
	ILS       *nav.ILS
	RunwayEnd *nav.RunwayEnd
}

// Procedure is a pre-expanded approach (or departure) procedure: an
// ordered sequence of legs ready to be appended to a route.
type Procedure struct {
	Name    string
	Airport string
	Legs    []ProcedureLeg
}
