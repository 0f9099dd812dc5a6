// nav/query.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"strconv"
	"strings"

	"github.com/flightnav/navroute/math"
)

// Ident queries. Results are memoized in an LRU cache since route
// resolution tends to look up the same handful of idents repeatedly
// (e.g., when a route is re-resolved after every edit). An empty region
// matches all regions.

func lookupByIdent[T any](db *Database, kind, ident, region string, byIdent map[string][]int,
	all []T, regionOf func(T) string) []T {
	key := kind + ":" + ident + "/" + region
	if v, ok := db.queryCache.Get(key); ok {
		return v.([]T)
	}

	var result []T
	for _, i := range byIdent[ident] {
		if region == "" || regionOf(all[i]) == region {
			result = append(result, all[i])
		}
	}

	db.queryCache.Add(key, result)
	return result
}

func (db *Database) AirportsByIdent(ident string) []Airport {
	return lookupByIdent(db, "A", ident, "", db.airportsByIdent, db.Airports,
		func(a Airport) string { return a.Region })
}

func (db *Database) VORsByIdent(ident, region string) []VOR {
	return lookupByIdent(db, "V", ident, region, db.vorsByIdent, db.VORs,
		func(v VOR) string { return v.Region })
}

func (db *Database) NDBsByIdent(ident, region string) []NDB {
	return lookupByIdent(db, "N", ident, region, db.ndbsByIdent, db.NDBs,
		func(n NDB) string { return n.Region })
}

func (db *Database) WaypointsByIdent(ident, region string) []Waypoint {
	return lookupByIdent(db, "W", ident, region, db.waypointsByIdent, db.Waypoints,
		func(w Waypoint) string { return w.Region })
}

// ParkingsByNameAndNumber returns the parking spots at the given airport
// matching the database-form name ("GATE_A", ...) and spot number. Names
// parsed out of flight plans can carry a trailing underscore where the
// name met the number; ignore it.
func (db *Database) ParkingsByNameAndNumber(airportID int, name string, number int) []Parking {
	name = strings.TrimRight(name, "_")
	var result []Parking
	for _, p := range db.Parkings[airportID] {
		if strings.EqualFold(strings.TrimRight(p.Name, "_"), name) && p.Number == number {
			result = append(result, p)
		}
	}
	return result
}

// StartByNameAndPosition returns the start position at the given airport
// whose runway or helipad name matches; if several match (e.g. both ends
// of a water runway), the one nearest pos wins. Helipads are matched by
// their number since they have no runway name.
func (db *Database) StartByNameAndPosition(airportID int, name string, pos math.Point2LL) (Start, bool) {
	helipad, helipadErr := strconv.Atoi(name)

	var best Start
	found := false
	for _, s := range db.Starts[airportID] {
		if !strings.EqualFold(s.RunwayName, name) &&
			!(s.HelipadNumber > 0 && helipadErr == nil && s.HelipadNumber == helipad) {
			continue
		}
		if !found || (!pos.IsZero() &&
			math.SimpleDistance2LL(pos, s.Position) < math.SimpleDistance2LL(pos, best.Position)) {
			best = s
			found = true
		}
	}
	return best, found
}
