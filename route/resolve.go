// route/resolve.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"fmt"
	gomath "math"
	"regexp"
	"strconv"
	"strings"

	"github.com/flightnav/navroute/log"
	"github.com/flightnav/navroute/math"
	"github.com/flightnav/navroute/nav"
)

// NavQuery is what route resolution needs from the navigation database.
// Idents are not unique; the ByIdent queries return all matches and the
// resolver picks the nearest. An empty region matches all regions.
type NavQuery interface {
	AirportsByIdent(ident string) []nav.Airport
	VORsByIdent(ident, region string) []nav.VOR
	NDBsByIdent(ident, region string) []nav.NDB
	WaypointsByIdent(ident, region string) []nav.Waypoint
	ParkingsByNameAndNumber(airportID int, name string, number int) []nav.Parking
	StartByNameAndPosition(airportID int, name string, pos math.Point2LL) (nav.Start, bool)
}

// If the plan has no region for an entry, accept navaids with the same
// name up to this far from the entry's recorded position.
const maxWaypointDistanceMeters = 10000

// Region code some route planners write when they have none.
const invalidRegion = "KK"

// Parking names come in as "<letters><number>" ("GATE A 12"); split them
// for the database lookup.
var parkingNameAndNumber = regexp.MustCompile(`([A-Za-z_ ]*)([0-9]+)`)

// nearestObject returns the element of objs whose position is closest to
// pos; position distances are compared with the fast approximate metric
// since only the ordering matters. Ties keep the first candidate.
func nearestObject[T any](objs []T, pos math.Point2LL, position func(T) math.Point2LL) (T, bool) {
	if len(objs) == 0 {
		var zero T
		return zero, false
	}

	nearest := objs[0]
	if len(objs) > 1 {
		distance := float32(gomath.MaxFloat32)
		for _, obj := range objs {
			if d := math.SimpleDistance2LL(pos, position(obj)); d < distance {
				distance = d
				nearest = obj
			}
		}
	}
	return nearest, true
}

// withinTolerance checks that the resolved position is close enough to
// the entry's recorded position to be the object the plan meant.
func withinTolerance(resolved, expected math.Point2LL) bool {
	return math.MetersDistance2LL(resolved, expected) < maxWaypointDistanceMeters
}

// CreateFromEntry resolves the flight plan entry at the given index
// against the navigation database and fills in the leg: payload, magnetic
// variation, and course/distance to prev (nil for the first leg).
//
// On a successful resolve the entry's ident, region, and position are
// overwritten with the database's values. If nothing matches, or the best
// match is too far from the entry's recorded position, the leg is marked
// invalid and the entry is left alone. Entries with an unknown type tag
// are skipped and end up invalid.
func (l *Leg) CreateFromEntry(index int, q NavQuery, prev *Leg, lg *log.Logger) {
	l.index = index
	entry := &l.fp.Entries[index]

	region := entry.Region
	if region == invalidRegion {
		region = ""
	}

	l.kind = MapInvalid
	l.valid = false

	switch entry.Type {
	case EntryUnknown:
		// Leave the leg to be classified invalid below.

	case EntryAirport:
		if ap, found := nearestObject(q.AirportsByIdent(entry.Ident), entry.Position,
			func(a nav.Airport) math.Point2LL { return a.Position }); found {
			l.kind = MapAirport
			l.airport = ap
			l.valid = entry.Position.IsZero() || withinTolerance(ap.Position, entry.Position)
			if l.valid {
				entry.Region = ap.Region
				entry.Ident = ap.Ident
				entry.Position = ap.Position

				l.resolveDeparturePosition(q, prev, lg)
			}
		}

	case EntryWaypoint:
		if wp, found := nearestObject(q.WaypointsByIdent(entry.Ident, region), entry.Position,
			func(w nav.Waypoint) math.Point2LL { return w.Position }); found {
			l.kind = MapWaypoint
			l.waypoint = wp
			l.valid = withinTolerance(wp.Position, entry.Position)
			if l.valid {
				// Update all fields in entry if found - otherwise leave as is
				entry.Region = wp.Region
				entry.Ident = wp.Ident
				entry.Position = wp.Position
			}
		}

	case EntryVOR:
		if vor, found := nearestObject(q.VORsByIdent(entry.Ident, region), entry.Position,
			func(v nav.VOR) math.Point2LL { return v.Position }); found {
			l.kind = MapVOR
			l.vor = vor
			l.valid = withinTolerance(vor.Position, entry.Position)
			if l.valid {
				entry.Region = vor.Region
				entry.Ident = vor.Ident
				entry.Position = vor.Position
			}
		}

	case EntryNDB:
		if ndb, found := nearestObject(q.NDBsByIdent(entry.Ident, region), entry.Position,
			func(n nav.NDB) math.Point2LL { return n.Position }); found {
			l.kind = MapNDB
			l.ndb = ndb
			l.valid = withinTolerance(ndb.Position, entry.Position)
			if l.valid {
				entry.Region = ndb.Region
				entry.Ident = ndb.Ident
				entry.Position = ndb.Position
			}
		}

	case EntryUser:
		l.valid = true
		l.kind = MapUser
		entry.Ident = ""
		entry.Region = ""
	}

	if !l.valid {
		l.kind = MapInvalid
	}

	l.updateMagvar()
	l.UpdateDistanceAndCourse(index, prev)
}

// resolveDeparturePosition resolves the flight plan's departure parking
// or start position name at the just-resolved airport. Only the first
// leg of a route departs; any other airport leg has its parking and
// start cleared.
func (l *Leg) resolveDeparturePosition(q NavQuery, prev *Leg, lg *log.Logger) {
	name := strings.TrimSpace(l.fp.DepartureParkingName)

	if name == "" || prev != nil {
		// Airport is not the departure: reset start and parking
		l.parking = nil
		l.start = nil
		return
	}

	parkingName, number := splitParkingName(name)
	if parkingName != "" {
		// Seems to be a parking position
		parkings := q.ParkingsByNameAndNumber(l.airport.ID, parkingName, number)
		if len(parkings) == 0 {
			lg.Warnf("%s: no parking spots matching %q", l.airport.Ident, name)
			// Clear the name so that the caller knows to re-pick.
			l.fp.DepartureParkingName = ""
			return
		}

		if len(parkings) > 1 {
			lg.Warnf("%s: multiple parking spots matching %q", l.airport.Ident, name)
		}
		l.SetDepartureParking(parkings[0])
		// Update flightplan with found name
		l.fp.DepartureParkingName = parkingNameForFlightplan(parkings[0])
	} else {
		// Runway or helipad
		start, ok := q.StartByNameAndPosition(l.airport.ID, name, l.fp.DeparturePosition)
		if !ok {
			lg.Warnf("%s: no start positions matching %q", l.airport.Ident, name)
			l.fp.DepartureParkingName = ""
			return
		}

		l.SetDepartureStart(start)
		if start.HelipadNumber > 0 {
			// Helicopter pad
			l.fp.DepartureParkingName = strconv.Itoa(start.HelipadNumber)
		} else {
			// Runway name
			l.fp.DepartureParkingName = start.RunwayName
		}
	}
}

// splitParkingName converts a user-facing parking name ("Gate A 12") to
// the database name form ("GATE_A_") and the spot number. The letter
// part is empty for pure runway/helipad names ("04").
func splitParkingName(name string) (string, int) {
	match := parkingNameAndNumber.FindStringSubmatch(name)
	if match == nil {
		return "", 0
	}

	dbName := strings.ReplaceAll(strings.ToUpper(match[1]), " ", "_")
	number, _ := strconv.Atoi(match[2])
	return dbName, number
}

// parkingNameForFlightplan converts a database parking spot back to the
// user-facing form stored in the flight plan.
func parkingNameForFlightplan(p nav.Parking) string {
	return fmt.Sprintf("%s %d", strings.TrimSpace(strings.ReplaceAll(p.Name, "_", " ")), p.Number)
}
