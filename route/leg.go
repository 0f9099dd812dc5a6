// route/leg.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"github.com/flightnav/navroute/math"
	"github.com/flightnav/navroute/nav"
)

// Leg is one leg of a route: a flight plan entry resolved against the
// navigation database, plus the course, distance, and geometry to the
// preceding leg.
//
// A leg holds a non-owning (flightplan, index) reference into the plan's
// entry sequence; successful resolution writes the database's ident,
// region, and position back through it. The entry sequence is owned
// elsewhere and must not be mutated concurrently with resolution.
//
// At most one payload field is meaningful at a time, selected by kind;
// all accessors dispatch on it.
type Leg struct {
	fp    *Flightplan
	index int

	kind      MapObjectType
	airport   nav.Airport
	vor       nav.VOR
	ndb       nav.NDB
	waypoint  nav.Waypoint
	ils       nav.ILS
	runwayEnd nav.RunwayEnd
	procedure ProcedureLeg

	// Departure parking spot or start position; mutually exclusive, and
	// only set on the first leg when it is an airport.
	parking *nav.Parking
	start   *nav.Start

	magvar float32
	valid  bool

	courseTo        float32 // true course from the previous leg, degrees [0,360)
	courseRhumbTo   float32
	distanceTo      float32 // nm from the previous leg
	distanceToRhumb float32
	geometry        math.LineString
}

// NewLeg returns a leg bound to the given flight plan but not yet
// resolved; one of the Create methods fills it in.
func NewLeg(fp *Flightplan) Leg {
	return Leg{fp: fp, index: -1, kind: MapInvalid}
}

// CreateFromAirport fills in the leg from an already-chosen airport,
// bypassing database lookup (used when the user picks the airport
// directly from the map).
func (l *Leg) CreateFromAirport(index int, ap nav.Airport, prev *Leg) {
	l.index = index
	l.kind = MapAirport
	l.airport = ap
	l.valid = true

	l.updateMagvar()
	l.UpdateDistanceAndCourse(index, prev)
}

// CreateFromProcedureLeg fills in the leg from a pre-built procedure leg.
func (l *Leg) CreateFromProcedureLeg(index int, pl ProcedureLeg, prev *Leg) {
	l.index = index
	l.kind = pl.MapType
	l.procedure = pl
	l.magvar = pl.Magvar
	l.valid = true

	l.updateMagvar()
	l.UpdateDistanceAndCourse(index, prev)
}

// SetDepartureParking assigns the leg's departure parking spot, clearing
// any start position.
func (l *Leg) SetDepartureParking(p nav.Parking) {
	l.parking = &p
	l.start = nil
}

// SetDepartureStart assigns the leg's departure start position, clearing
// any parking spot.
func (l *Leg) SetDepartureStart(s nav.Start) {
	l.start = &s
	l.parking = nil
}

// UpdateUserName renames the user-defined waypoint behind this leg.
func (l *Leg) UpdateUserName(name string) {
	if l.fp != nil && l.index >= 0 && l.index < len(l.fp.Entries) {
		l.fp.Entries[l.index].UserName = name
	}
}

// updateMagvar pulls the magnetic variation from the resolved payload.
// User waypoints and invalid legs have none; BackfillMagvar fills those
// in from their neighbors.
func (l *Leg) updateMagvar() {
	switch {
	case l.kind.IsProcedure():
		l.magvar = l.procedure.Magvar
	case l.kind == MapAirport:
		l.magvar = l.airport.Magvar
	case l.kind == MapVOR:
		l.magvar = l.vor.Magvar
	case l.kind == MapNDB:
		l.magvar = l.ndb.Magvar
	case l.kind == MapWaypoint:
		l.magvar = l.waypoint.Magvar
	default:
		l.magvar = 0
	}
}

const magvarEpsilon = 1e-4

// BackfillMagvar fills in the magnetic variation of user-defined and
// unresolved legs from the nearest legs in the route that have one: the
// closest non-zero value scanning backward from this leg and the closest
// scanning forward, averaged when both exist. O(route length); call it
// after a bulk resolve pass, not per access.
func (l *Leg) BackfillMagvar(r *Route) {
	if l.kind != MapUser && l.kind != MapInvalid {
		return
	}

	l.magvar = 0

	var backward, forward float32
	for i := min(l.index, r.Len()-1); i >= 0; i-- {
		if v := r.At(i).Magvar(); math.Abs(v) > magvarEpsilon {
			backward = v
			break
		}
	}
	for i := min(l.index, r.Len()-1); i < r.Len(); i++ {
		if v := r.At(i).Magvar(); math.Abs(v) > magvarEpsilon {
			forward = v
			break
		}
	}

	// Use the average of the two, or whichever one is known.
	if math.Abs(backward) > 0 && math.Abs(forward) > 0 {
		l.magvar = (backward + forward) / 2
	} else if math.Abs(backward) > 0 {
		l.magvar = backward
	} else if math.Abs(forward) > 0 {
		l.magvar = forward
	}
}

// UpdateDistanceAndCourse recomputes the derived geometry of the leg
// relative to its predecessor (nil for the first leg of the route).
//
// Procedure legs keep the course, distance, and geometry their procedure
// definition precomputed, with one exception: a procedure leg whose
// defining line is a single point directly following an en-route leg gets
// its course and distance computed from that leg's position, since the
// procedure builder had no way of knowing where the route would join.
func (l *Leg) UpdateDistanceAndCourse(index int, prev *Leg) {
	l.index = index

	if l.kind.IsProcedure() {
		if prev != nil && prev.IsRoute() && l.procedure.Line.IsPoint() {
			prevPos := prev.Position()
			end := l.procedure.Line.B
			l.courseTo = math.GreatCircleHeading2LL(prevPos, end)
			l.courseRhumbTo = math.RhumbHeading2LL(prevPos, end)
			l.distanceTo = math.NMDistance2LL(end, prevPos)
			l.distanceToRhumb = math.NMDistanceRhumb2LL(end, prevPos)
		} else {
			// Procedure data is authoritative; no separate rhumb values.
			l.courseTo = l.procedure.TrueCourse
			l.courseRhumbTo = l.procedure.TrueCourse
			l.distanceTo = l.procedure.Distance
			l.distanceToRhumb = l.procedure.Distance
		}

		l.geometry = l.procedure.Geometry
	} else if prev != nil {
		prevPos := prev.Position()
		pos := l.Position()
		l.distanceTo = math.NMDistance2LL(pos, prevPos)
		l.distanceToRhumb = math.NMDistanceRhumb2LL(pos, prevPos)
		l.courseTo = math.GreatCircleHeading2LL(prevPos, pos)
		l.courseRhumbTo = math.RhumbHeading2LL(prevPos, pos)
		l.geometry = math.LineString{prevPos, pos}
	} else {
		// No predecessor - this one is the first in the list
		l.distanceTo = 0
		l.distanceToRhumb = 0
		l.courseTo = 0
		l.courseRhumbTo = 0
		l.geometry = math.LineString{l.Position()}
	}
}
