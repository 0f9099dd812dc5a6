// nav/types.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"github.com/flightnav/navroute/math"
)

// Record types for the navigation database. Idents are not unique: the
// same five-letter waypoint name may exist in multiple ICAO regions, so
// queries return slices and leave disambiguation to the caller.

type Airport struct {
	ID        int
	Ident     string
	Name      string
	Region    string
	Position  math.Point2LL
	Elevation int // feet MSL
	Magvar    float32
}

type VOR struct {
	ID        int
	Ident     string
	Name      string
	Region    string
	Type      string // "H", "L", "T", "VORTAC", "TACAN", ...
	Position  math.Point2LL
	Magvar    float32
	Frequency int // kHz
	Range     int // nm
}

type NDB struct {
	ID        int
	Ident     string
	Name      string
	Region    string
	Type      string
	Position  math.Point2LL
	Magvar    float32
	Frequency int // kHz
	Range     int // nm
}

type Waypoint struct {
	ID       int
	Ident    string
	Region   string
	Type     string // "WN" named, "WU" unnamed, ...
	Position math.Point2LL
	Magvar   float32
}

type ILS struct {
	ID        int
	Ident     string
	Name      string
	Position  math.Point2LL
	Magvar    float32
	Frequency int // kHz
	Range     int // nm
	Heading   float32
}

type RunwayEnd struct {
	ID       int
	Name     string // "04L", "22R", ...
	Position math.Point2LL
	Heading  float32
}

// Parking is a gate or ramp spot at an airport. Name holds the database
// form of the spot name ("GATE_A", "RAMP_GA", ...).
type Parking struct {
	ID        int
	AirportID int
	Name      string
	Number    int
	Position  math.Point2LL
	Type      string
}

// Start is a runway or helipad departure point at an airport.
type Start struct {
	ID            int
	AirportID     int
	RunwayName    string // empty for helipads
	HelipadNumber int    // 0 unless this is a helipad
	Position      math.Point2LL
	Type          string // "R" runway, "H" helipad, "W" water
}
