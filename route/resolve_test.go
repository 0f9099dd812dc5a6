// route/resolve_test.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"strconv"
	"strings"
	"testing"

	"github.com/flightnav/navroute/math"
	"github.com/flightnav/navroute/nav"
	"github.com/flightnav/navroute/util"
)

// fakeQuery implements NavQuery over fixed slices.
type fakeQuery struct {
	airports  []nav.Airport
	vors      []nav.VOR
	ndbs      []nav.NDB
	waypoints []nav.Waypoint
	parkings  []nav.Parking
	starts    []nav.Start
}

func (f *fakeQuery) AirportsByIdent(ident string) []nav.Airport {
	return util.FilterSlice(f.airports, func(a nav.Airport) bool { return a.Ident == ident })
}

func (f *fakeQuery) VORsByIdent(ident, region string) []nav.VOR {
	return util.FilterSlice(f.vors, func(v nav.VOR) bool {
		return v.Ident == ident && (region == "" || v.Region == region)
	})
}

func (f *fakeQuery) NDBsByIdent(ident, region string) []nav.NDB {
	return util.FilterSlice(f.ndbs, func(n nav.NDB) bool {
		return n.Ident == ident && (region == "" || n.Region == region)
	})
}

func (f *fakeQuery) WaypointsByIdent(ident, region string) []nav.Waypoint {
	return util.FilterSlice(f.waypoints, func(w nav.Waypoint) bool {
		return w.Ident == ident && (region == "" || w.Region == region)
	})
}

func (f *fakeQuery) ParkingsByNameAndNumber(airportID int, name string, number int) []nav.Parking {
	name = strings.TrimRight(name, "_")
	return util.FilterSlice(f.parkings, func(p nav.Parking) bool {
		return p.AirportID == airportID && strings.EqualFold(p.Name, name) && p.Number == number
	})
}

func (f *fakeQuery) StartByNameAndPosition(airportID int, name string, pos math.Point2LL) (nav.Start, bool) {
	helipad, _ := strconv.Atoi(name)
	for _, s := range f.starts {
		if s.AirportID != airportID {
			continue
		}
		if strings.EqualFold(s.RunwayName, name) || (s.HelipadNumber > 0 && s.HelipadNumber == helipad) {
			return s, true
		}
	}
	return nav.Start{}, false
}

func TestNearestObject(t *testing.T) {
	pos := func(p math.Point2LL) math.Point2LL { return p }

	if _, found := nearestObject(nil, math.Point2LL{}, pos); found {
		t.Errorf("empty candidate list should not resolve")
	}

	// A single candidate is returned no matter how far away it is.
	far := math.Point2LL{100, -40}
	if got, found := nearestObject([]math.Point2LL{far}, math.Point2LL{-75, 40}, pos); !found || got != far {
		t.Errorf("single candidate: found=%v got=%v", found, got)
	}

	// Multiple candidates: the nearest wins.
	expected := math.Point2LL{-75, 40}
	cands := []math.Point2LL{{-80, 42}, {-75.01, 40.01}, {-74, 39}}
	if got, _ := nearestObject(cands, expected, pos); got != cands[1] {
		t.Errorf("nearest candidate: got %v", got)
	}

	// Exact ties keep the first encountered.
	tied := []math.Point2LL{{-75, 41}, {-75, 39}}
	if got, _ := nearestObject(tied, expected, pos); got != tied[0] {
		t.Errorf("tie should keep first candidate, got %v", got)
	}
}

func TestSplitParkingName(t *testing.T) {
	for _, tc := range []struct {
		in     string
		name   string
		number int
	}{
		{"GATE 12", "GATE_", 12},
		{"Gate A 12", "GATE_A_", 12},
		{"04", "", 4},
		{"RAMP GA 3", "RAMP_GA_", 3},
	} {
		name, number := splitParkingName(tc.in)
		if name != tc.name || number != tc.number {
			t.Errorf("splitParkingName(%q) = %q, %d; want %q, %d",
				tc.in, name, number, tc.name, tc.number)
		}
	}
}

func TestResolveWaypoint(t *testing.T) {
	q := &fakeQuery{
		waypoints: []nav.Waypoint{
			{ID: 1, Ident: "BUNTS", Region: "K6", Position: math.Point2LL{-75.5, 40.0}, Magvar: -12},
			{ID: 2, Ident: "BUNTS", Region: "ED", Position: math.Point2LL{8.6, 50.1}, Magvar: 2},
		},
	}

	fp := NewFlightplan()
	fp.Entries = []FlightplanEntry{
		{Type: EntryWaypoint, Ident: "BUNTS", Position: math.Point2LL{-75.49, 40.01}},
	}

	leg := NewLeg(fp)
	leg.CreateFromEntry(0, q, nil, nil)

	if !leg.IsValid() || leg.Kind() != MapWaypoint {
		t.Fatalf("leg did not resolve: valid=%v kind=%v", leg.IsValid(), leg.Kind())
	}
	if leg.ID() != 1 {
		t.Errorf("resolved to waypoint id %d, want 1 (nearest)", leg.ID())
	}

	// Database values take precedence: the entry is rewritten.
	if e := fp.Entries[0]; e.Region != "K6" || e.Position != (math.Point2LL{-75.5, 40.0}) {
		t.Errorf("entry not written back: %+v", e)
	}
	if leg.Magvar() != -12 {
		t.Errorf("magvar %f, want -12", leg.Magvar())
	}
}

func TestResolveRegionHandling(t *testing.T) {
	q := &fakeQuery{
		waypoints: []nav.Waypoint{
			{ID: 1, Ident: "BUNTS", Region: "K6", Position: math.Point2LL{-75.5, 40.0}},
			{ID: 2, Ident: "BUNTS", Region: "ED", Position: math.Point2LL{-75.6, 40.0}},
		},
	}

	// A region restricts the query.
	fp := NewFlightplan()
	fp.Entries = []FlightplanEntry{
		{Type: EntryWaypoint, Ident: "BUNTS", Region: "ED", Position: math.Point2LL{-75.5, 40.0}},
	}
	leg := NewLeg(fp)
	leg.CreateFromEntry(0, q, nil, nil)
	if leg.ID() != 2 {
		t.Errorf("region-restricted lookup resolved id %d, want 2", leg.ID())
	}

	// The "KK" sentinel region is treated as unset, so the nearest of
	// all regions wins.
	fp = NewFlightplan()
	fp.Entries = []FlightplanEntry{
		{Type: EntryWaypoint, Ident: "BUNTS", Region: "KK", Position: math.Point2LL{-75.5, 40.0}},
	}
	leg = NewLeg(fp)
	leg.CreateFromEntry(0, q, nil, nil)
	if leg.ID() != 1 {
		t.Errorf("KK-region lookup resolved id %d, want 1", leg.ID())
	}
}

func TestResolveBeyondTolerance(t *testing.T) {
	// Same-named waypoint exists but is ~22 km from where the plan says
	// it should be: the leg is invalid and the entry untouched.
	q := &fakeQuery{
		waypoints: []nav.Waypoint{
			{ID: 1, Ident: "BUNTS", Region: "K6", Position: math.Point2LL{-75.5, 40.2}},
		},
	}

	fp := NewFlightplan()
	fp.Entries = []FlightplanEntry{
		{Type: EntryWaypoint, Ident: "BUNTS", Region: "ED", Position: math.Point2LL{-75.5, 40.0}},
	}
	// Region filter drops the only candidate entirely
	leg := NewLeg(fp)
	leg.CreateFromEntry(0, q, nil, nil)
	if leg.IsValid() || leg.Kind() != MapInvalid {
		t.Errorf("no-candidate leg should be invalid: valid=%v kind=%v", leg.IsValid(), leg.Kind())
	}

	fp.Entries[0].Region = "K6"
	leg = NewLeg(fp)
	leg.CreateFromEntry(0, q, nil, nil)
	if leg.IsValid() {
		t.Errorf("out-of-tolerance leg should be invalid")
	}
	if leg.Kind() != MapInvalid {
		t.Errorf("out-of-tolerance leg kind %v, want MapInvalid", leg.Kind())
	}
	if e := fp.Entries[0]; e.Region != "K6" || e.Position != (math.Point2LL{-75.5, 40.0}) {
		t.Errorf("entry of invalid leg was modified: %+v", e)
	}

	// The invalid leg still reports the entry's ident and position.
	if leg.Ident() != "BUNTS" {
		t.Errorf("invalid leg ident %q", leg.Ident())
	}
	if leg.Position() != (math.Point2LL{-75.5, 40.0}) {
		t.Errorf("invalid leg position %v", leg.Position())
	}
}

func TestResolveUnknownEntryType(t *testing.T) {
	fp := NewFlightplan()
	fp.Entries = []FlightplanEntry{
		{Type: EntryUnknown, Ident: "WHAT"},
	}
	leg := NewLeg(fp)
	leg.CreateFromEntry(0, &fakeQuery{}, nil, nil)
	if leg.IsValid() || leg.Kind() != MapInvalid {
		t.Errorf("unknown entry type: valid=%v kind=%v", leg.IsValid(), leg.Kind())
	}
}

func TestResolveUser(t *testing.T) {
	fp := NewFlightplan()
	fp.Entries = []FlightplanEntry{
		{Type: EntryUser, Ident: "WP1", Region: "XX", UserName: "My Point", Position: math.Point2LL{-75, 40}},
	}
	leg := NewLeg(fp)
	leg.CreateFromEntry(0, &fakeQuery{}, nil, nil)

	if !leg.IsValid() || leg.Kind() != MapUser {
		t.Fatalf("user leg: valid=%v kind=%v", leg.IsValid(), leg.Kind())
	}
	// Ident and region are cleared on the entry; the display name and
	// position remain.
	if e := fp.Entries[0]; e.Ident != "" || e.Region != "" {
		t.Errorf("user entry ident/region not cleared: %+v", e)
	}
	if leg.Ident() != "My Point" {
		t.Errorf("user leg ident %q", leg.Ident())
	}
	if leg.Position() != (math.Point2LL{-75, 40}) {
		t.Errorf("user leg position %v", leg.Position())
	}
}

func TestResolveAirportRoundTrip(t *testing.T) {
	ap := nav.Airport{ID: 7, Ident: "KPHL", Name: "Philadelphia Intl", Region: "K6",
		Position: math.Point2LL{-75.241, 39.872}, Magvar: -12}
	q := &fakeQuery{airports: []nav.Airport{ap}}

	fp := NewFlightplan()
	fp.Entries = []FlightplanEntry{
		// Approximate position, as read from a plan file
		{Type: EntryAirport, Ident: "KPHL", Position: math.Point2LL{-75.24, 39.87}},
	}
	leg := NewLeg(fp)
	leg.CreateFromEntry(0, q, nil, nil)

	if !leg.IsValid() || leg.Kind() != MapAirport {
		t.Fatalf("airport leg: valid=%v kind=%v", leg.IsValid(), leg.Kind())
	}
	// The resolved candidate's values win over the plan's approximations.
	if leg.Ident() != ap.Ident || leg.Position() != ap.Position {
		t.Errorf("round trip: ident %q position %v", leg.Ident(), leg.Position())
	}
	if fp.Entries[0].Position != ap.Position {
		t.Errorf("entry position not rewritten: %v", fp.Entries[0].Position)
	}
	if leg.Name() != "Philadelphia Intl" || leg.TypeName() != "Airport" {
		t.Errorf("name %q typename %q", leg.Name(), leg.TypeName())
	}
}

func TestResolveDepartureParking(t *testing.T) {
	ap := nav.Airport{ID: 7, Ident: "KPHL", Region: "K6", Position: math.Point2LL{-75.241, 39.872}}

	makePlan := func(parkingName string) *Flightplan {
		fp := NewFlightplan()
		fp.DepartureParkingName = parkingName
		fp.Entries = []FlightplanEntry{
			{Type: EntryAirport, Ident: "KPHL", Position: ap.Position},
		}
		return fp
	}

	t.Run("parking spot", func(t *testing.T) {
		q := &fakeQuery{
			airports: []nav.Airport{ap},
			parkings: []nav.Parking{{ID: 40, AirportID: 7, Name: "GATE_A", Number: 12}},
		}
		fp := makePlan("Gate A 12")
		leg := NewLeg(fp)
		leg.CreateFromEntry(0, q, nil, nil)

		if p, ok := leg.Parking(); !ok || p.ID != 40 {
			t.Fatalf("parking not resolved: %+v ok=%v", p, ok)
		}
		if _, ok := leg.Start(); ok {
			t.Errorf("start should not be set alongside parking")
		}
		if fp.DepartureParkingName != "GATE A 12" {
			t.Errorf("canonical parking name %q", fp.DepartureParkingName)
		}
	})

	t.Run("runway start", func(t *testing.T) {
		q := &fakeQuery{
			airports: []nav.Airport{ap},
			starts:   []nav.Start{{ID: 50, AirportID: 7, RunwayName: "04", Type: "R"}},
		}
		fp := makePlan("04")
		leg := NewLeg(fp)
		leg.CreateFromEntry(0, q, nil, nil)

		if s, ok := leg.Start(); !ok || s.ID != 50 {
			t.Fatalf("start not resolved: %+v ok=%v", s, ok)
		}
		if fp.DepartureParkingName != "04" {
			t.Errorf("runway name %q", fp.DepartureParkingName)
		}
	})

	t.Run("helipad start", func(t *testing.T) {
		q := &fakeQuery{
			airports: []nav.Airport{ap},
			starts:   []nav.Start{{ID: 51, AirportID: 7, HelipadNumber: 2, Type: "H"}},
		}
		fp := makePlan("2")
		leg := NewLeg(fp)
		leg.CreateFromEntry(0, q, nil, nil)

		if s, ok := leg.Start(); !ok || s.HelipadNumber != 2 {
			t.Fatalf("helipad not resolved: ok=%v", ok)
		}
		// Helipads are stored by number
		if fp.DepartureParkingName != "2" {
			t.Errorf("helipad name %q", fp.DepartureParkingName)
		}
	})

	t.Run("no match clears the name", func(t *testing.T) {
		q := &fakeQuery{airports: []nav.Airport{ap}}
		fp := makePlan("Gate Z 99")
		leg := NewLeg(fp)
		leg.CreateFromEntry(0, q, nil, nil)

		if _, ok := leg.Parking(); ok {
			t.Errorf("parking should not resolve")
		}
		if fp.DepartureParkingName != "" {
			t.Errorf("departure parking name not cleared: %q", fp.DepartureParkingName)
		}
		// The leg itself still resolved fine.
		if !leg.IsValid() {
			t.Errorf("leg should still be valid")
		}
	})

	t.Run("not the first leg", func(t *testing.T) {
		q := &fakeQuery{
			airports: []nav.Airport{ap},
			parkings: []nav.Parking{{ID: 40, AirportID: 7, Name: "GATE_A", Number: 12}},
		}
		fp := makePlan("Gate A 12")
		fp.Entries = append([]FlightplanEntry{
			{Type: EntryUser, UserName: "Start", Position: math.Point2LL{-75, 40}},
		}, fp.Entries...)

		prev := NewLeg(fp)
		prev.CreateFromEntry(0, q, nil, nil)
		leg := NewLeg(fp)
		leg.CreateFromEntry(1, q, &prev, nil)

		if _, ok := leg.Parking(); ok {
			t.Errorf("non-departure airport leg must not get a parking spot")
		}
		if fp.DepartureParkingName != "Gate A 12" {
			t.Errorf("departure parking name should be untouched, got %q", fp.DepartureParkingName)
		}
	})
}
