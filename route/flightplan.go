// route/flightplan.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"github.com/flightnav/navroute/math"

	"github.com/iancoleman/orderedmap"
)

// EntryType tags a flight plan entry with the kind of waypoint the user
// (or the file it was read from) claims it is; resolution against the
// navigation database decides what it actually is.
type EntryType int

const (
	EntryUnknown EntryType = iota
	EntryAirport
	EntryWaypoint
	EntryVOR
	EntryNDB
	EntryUser
)

func (t EntryType) String() string {
	switch t {
	case EntryAirport:
		return "Airport"
	case EntryWaypoint:
		return "Waypoint"
	case EntryVOR:
		return "VOR"
	case EntryNDB:
		return "NDB"
	case EntryUser:
		return "User"
	default:
		return "Unknown"
	}
}

// FlightplanEntry is one stop in a flight plan as stored in the plan
// itself: an identifier plus an approximate position. Resolution
// overwrites Ident, Region, and Position with the database's values when
// it finds a matching navaid within tolerance.
type FlightplanEntry struct {
	Type     EntryType
	Ident    string
	Region   string
	Airway   string // airway used to reach this entry, if any
	UserName string // display name for user-defined waypoints
	Position math.Point2LL
}

// Flightplan is the externally-owned entry sequence that route legs hold
// index-based references into.
type Flightplan struct {
	Entries []FlightplanEntry

	// Name of the departure parking spot or start position, as the user
	// picked it ("GATE A 12", "04", ...). Resolution rewrites it with
	// the database's canonical name, or clears it when nothing matches
	// so that the caller knows to re-pick.
	DepartureParkingName string
	DeparturePosition    math.Point2LL

	// Plan metadata (procedure names and the like); insertion order is
	// kept so plans round-trip stably.
	Properties *orderedmap.OrderedMap
}

func NewFlightplan() *Flightplan {
	return &Flightplan{Properties: orderedmap.New()}
}

func (fp *Flightplan) SetProperty(key, value string) {
	if fp.Properties == nil {
		fp.Properties = orderedmap.New()
	}
	fp.Properties.Set(key, value)
}

func (fp *Flightplan) Property(key string) (string, bool) {
	if fp.Properties == nil {
		return "", false
	}
	if v, ok := fp.Properties.Get(key); ok {
		s, ok := v.(string)
		return s, ok
	}
	return "", false
}
