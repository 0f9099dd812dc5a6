// route/accessors.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"github.com/flightnav/navroute/math"
	"github.com/flightnav/navroute/nav"
)

// Read-only projections over the leg's resolved payload. All of these
// return a sentinel (empty string, -1, zero) rather than an error when
// the leg has nothing to offer.

func (l *Leg) Index() int          { return l.index }
func (l *Leg) Kind() MapObjectType { return l.kind }
func (l *Leg) IsValid() bool       { return l.valid }
func (l *Leg) Magvar() float32     { return l.magvar }

// IsRoute reports whether the leg is a plain en-route leg, i.e. not part
// of a procedure.
func (l *Leg) IsRoute() bool { return !l.kind.IsProcedure() }

// IsProcedurePoint reports whether the leg is a procedure leg that is
// displayed as a point rather than a path: its geometry is degenerate or
// it starts the procedure. Holds are paths even though their defining
// line is a point.
func (l *Leg) IsProcedurePoint() bool {
	if !l.kind.IsProcedure() || l.procedure.Type.IsHold() {
		return false
	}
	return l.procedure.Geometry.IsPoint() || l.procedure.Type == LegInitialFix ||
		l.procedure.Type == LegStartOfProcedure
}

func (l *Leg) CourseTo() float32        { return l.courseTo }
func (l *Leg) CourseToRhumb() float32   { return l.courseRhumbTo }
func (l *Leg) DistanceTo() float32      { return l.distanceTo }
func (l *Leg) DistanceToRhumb() float32 { return l.distanceToRhumb }

// CourseToMag returns the magnetic course from the previous leg, derived
// on demand from the true course and the leg's magnetic variation.
func (l *Leg) CourseToMag() float32 {
	return math.NormalizeHeading(l.courseTo - l.magvar)
}

func (l *Leg) CourseToRhumbMag() float32 {
	return math.NormalizeHeading(l.courseRhumbTo - l.magvar)
}

func (l *Leg) Geometry() math.LineString { return l.geometry }

func (l *Leg) Parking() (nav.Parking, bool) {
	if l.parking != nil {
		return *l.parking, true
	}
	return nav.Parking{}, false
}

func (l *Leg) Start() (nav.Start, bool) {
	if l.start != nil {
		return *l.start, true
	}
	return nav.Start{}, false
}

// ProcedureLeg returns the leg's procedure definition, for procedure legs.
func (l *Leg) ProcedureLeg() (ProcedureLeg, bool) {
	if l.kind.IsProcedure() {
		return l.procedure, true
	}
	return ProcedureLeg{}, false
}

// curEntry returns the flight plan entry behind this leg, or a zero entry
// for procedure legs (which have none).
func (l *Leg) curEntry() FlightplanEntry {
	if l.IsRoute() && l.fp != nil && l.index >= 0 && l.index < len(l.fp.Entries) {
		return l.fp.Entries[l.index]
	}
	return FlightplanEntry{}
}

// Position returns the leg's resolved position: the terminal point for
// procedure legs, the navaid/airport position otherwise, falling back to
// the entry's recorded position for user and unresolved legs.
func (l *Leg) Position() math.Point2LL {
	if l.kind.IsProcedure() {
		return l.procedure.Line.B
	}

	switch l.kind {
	case MapAirport:
		return l.airport.Position
	case MapVOR:
		return l.vor.Position
	case MapNDB:
		return l.ndb.Position
	case MapWaypoint:
		return l.waypoint.Position
	case MapILS:
		return l.ils.Position
	case MapRunwayEnd:
		return l.runwayEnd.Position
	case MapUser, MapInvalid:
		return l.curEntry().Position
	default:
		return math.Point2LL{}
	}
}

// Ident returns the leg's identifier, most specific source first.
func (l *Leg) Ident() string {
	if l.kind.IsProcedure() {
		// Procedure legs name themselves after the navaid they
		// reference, or their display text.
		pl := &l.procedure
		switch {
		case pl.VOR != nil:
			return pl.VOR.Ident
		case pl.NDB != nil:
			return pl.NDB.Ident
		case pl.Waypoint != nil:
			return pl.Waypoint.Ident
		case pl.ILS != nil:
			return pl.ILS.Ident
		case pl.RunwayEnd != nil:
			return "RW" + pl.RunwayEnd.Name
		case len(pl.DisplayText) > 0:
			return pl.DisplayText[0]
		default:
			return ""
		}
	}

	switch l.kind {
	case MapAirport:
		return l.airport.Ident
	case MapVOR:
		return l.vor.Ident
	case MapNDB:
		return l.ndb.Ident
	case MapWaypoint:
		return l.waypoint.Ident
	case MapILS:
		return l.ils.Ident
	case MapRunwayEnd:
		return "RW" + l.runwayEnd.Name
	case MapUser:
		return l.curEntry().UserName
	case MapInvalid:
		return l.curEntry().Ident
	default:
		return ""
	}
}

// ID returns the database id of the resolved object, -1 if there is none.
func (l *Leg) ID() int {
	if l.kind.IsProcedure() {
		pl := &l.procedure
		switch {
		case pl.Waypoint != nil:
			return pl.Waypoint.ID
		case pl.VOR != nil:
			return pl.VOR.ID
		case pl.NDB != nil:
			return pl.NDB.ID
		case pl.ILS != nil:
			return pl.ILS.ID
		default:
			return -1
		}
	}

	switch l.kind {
	case MapAirport:
		return l.airport.ID
	case MapVOR:
		return l.vor.ID
	case MapNDB:
		return l.ndb.ID
	case MapWaypoint:
		return l.waypoint.ID
	case MapILS:
		return l.ils.ID
	default:
		return -1
	}
}

// Region returns the ICAO region of the resolved object; only radio
// navaids and waypoints carry one.
func (l *Leg) Region() string {
	if l.kind.IsProcedure() {
		pl := &l.procedure
		switch {
		case pl.VOR != nil:
			return pl.VOR.Region
		case pl.NDB != nil:
			return pl.NDB.Region
		case pl.Waypoint != nil:
			return pl.Waypoint.Region
		default:
			return ""
		}
	}

	switch l.kind {
	case MapVOR:
		return l.vor.Region
	case MapNDB:
		return l.ndb.Region
	case MapWaypoint:
		return l.waypoint.Region
	default:
		return ""
	}
}

// Name returns the facility name of the resolved object, if it has one.
func (l *Leg) Name() string {
	if l.kind.IsProcedure() {
		pl := &l.procedure
		switch {
		case pl.VOR != nil:
			return pl.VOR.Name
		case pl.NDB != nil:
			return pl.NDB.Name
		case pl.ILS != nil:
			return pl.ILS.Name
		default:
			return ""
		}
	}

	switch l.kind {
	case MapAirport:
		return l.airport.Name
	case MapVOR:
		return l.vor.Name
	case MapNDB:
		return l.ndb.Name
	case MapILS:
		return l.ils.Name
	default:
		return ""
	}
}

// Frequency returns the radio frequency in kHz; zero for anything that
// isn't a radio navaid.
func (l *Leg) Frequency() int {
	if l.kind.IsProcedure() {
		pl := &l.procedure
		switch {
		case pl.VOR != nil:
			return pl.VOR.Frequency
		case pl.NDB != nil:
			return pl.NDB.Frequency
		case pl.ILS != nil:
			return pl.ILS.Frequency
		default:
			return 0
		}
	}

	switch l.kind {
	case MapVOR:
		return l.vor.Frequency
	case MapNDB:
		return l.ndb.Frequency
	case MapILS:
		return l.ils.Frequency
	default:
		return 0
	}
}

// Range returns the radio range in nm, -1 for anything that isn't a
// radio navaid.
func (l *Leg) Range() int {
	if l.kind.IsProcedure() {
		pl := &l.procedure
		switch {
		case pl.VOR != nil:
			return pl.VOR.Range
		case pl.NDB != nil:
			return pl.NDB.Range
		case pl.ILS != nil:
			return pl.ILS.Range
		default:
			return -1
		}
	}

	switch l.kind {
	case MapVOR:
		return l.vor.Range
	case MapNDB:
		return l.ndb.Range
	case MapILS:
		return l.ils.Range
	default:
		return -1
	}
}

// Airway returns the airway the flight plan uses to reach this leg.
func (l *Leg) Airway() string {
	if l.IsRoute() {
		return l.curEntry().Airway
	}
	return ""
}

// TypeName returns a display name for what the leg resolved to.
func (l *Leg) TypeName() string {
	switch l.kind {
	case MapInvalid:
		return "Invalid"
	case MapAirport:
		return "Airport"
	case MapVOR:
		if l.vor.Type != "" {
			return "VOR (" + l.vor.Type + ")"
		}
		return "VOR"
	case MapNDB:
		if l.ndb.Type != "" {
			return "NDB (" + l.ndb.Type + ")"
		}
		return "NDB"
	case MapWaypoint:
		return "Waypoint"
	case MapILS:
		return "ILS"
	case MapRunwayEnd:
		return "Runway"
	case MapUser:
		return ""
	default:
		return l.kind.String()
	}
}
