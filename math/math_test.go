// math/math_test.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestNormalizeHeading(t *testing.T) {
	for _, tc := range []struct{ in, want float32 }{
		{0, 0},
		{360, 0},
		{725, 5},
		{-45, 315},
		{-360, 0},
		{359.5, 359.5},
	} {
		if got := NormalizeHeading(tc.in); Abs(got-tc.want) > 0.001 {
			t.Errorf("NormalizeHeading(%f) = %f, want %f", tc.in, got, tc.want)
		}
	}
}

func TestHeadingDifference(t *testing.T) {
	for _, tc := range []struct{ a, b, want float32 }{
		{10, 350, 20},
		{350, 10, 20},
		{90, 270, 180},
		{5, 5, 0},
	} {
		if got := HeadingDifference(tc.a, tc.b); Abs(got-tc.want) > 0.001 {
			t.Errorf("HeadingDifference(%f, %f) = %f, want %f", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestNMDistance2LL(t *testing.T) {
	// JFK to LAX is about 2145 nm
	jfk := Point2LL{-73.779, 40.64}
	lax := Point2LL{-118.408, 33.942}
	if d := NMDistance2LL(jfk, lax); Abs(d-2145) > 15 {
		t.Errorf("JFK-LAX distance %f, expected ~2145", d)
	}

	// One degree of latitude is 60 nm
	a := Point2LL{-75, 40}
	b := Point2LL{-75, 41}
	if d := NMDistance2LL(a, b); Abs(d-60) > 0.5 {
		t.Errorf("1 degree latitude distance %f, expected ~60", d)
	}

	if d := NMDistance2LL(jfk, jfk); d != 0 {
		t.Errorf("zero distance expected, got %f", d)
	}
}

func TestRhumbDistance(t *testing.T) {
	// Along a meridian the rhumb line is the great circle.
	a := Point2LL{-75, 40}
	b := Point2LL{-75, 45}
	gc, rh := NMDistance2LL(a, b), NMDistanceRhumb2LL(a, b)
	if Abs(gc-rh) > 1 {
		t.Errorf("meridian: great circle %f vs rhumb %f", gc, rh)
	}

	// Rhumb distance is never shorter than great circle.
	c := Point2LL{-120, 50}
	if gc, rh := NMDistance2LL(a, c), NMDistanceRhumb2LL(a, c); rh < gc-0.5 {
		t.Errorf("rhumb %f shorter than great circle %f", rh, gc)
	}
}

func TestHeadings2LL(t *testing.T) {
	a := Point2LL{-75, 40}

	// Due north
	if h := GreatCircleHeading2LL(a, Point2LL{-75, 45}); HeadingDifference(h, 360) > 0.5 {
		t.Errorf("north heading %f", h)
	}
	if h := RhumbHeading2LL(a, Point2LL{-75, 45}); HeadingDifference(h, 360) > 0.5 {
		t.Errorf("north rhumb heading %f", h)
	}

	// Due south
	if h := GreatCircleHeading2LL(a, Point2LL{-75, 35}); HeadingDifference(h, 180) > 0.5 {
		t.Errorf("south heading %f", h)
	}

	// Eastbound along a parallel: the rhumb bearing is exactly 90, the
	// great-circle initial bearing is slightly north of it in the
	// northern hemisphere.
	b := Point2LL{-70, 40}
	if h := RhumbHeading2LL(a, b); HeadingDifference(h, 90) > 0.5 {
		t.Errorf("east rhumb heading %f", h)
	}
	if h := GreatCircleHeading2LL(a, b); h < 85 || h >= 90.5 {
		t.Errorf("east great circle heading %f", h)
	}

	// All results normalized
	for _, to := range []Point2LL{{-75, 45}, {-80, 35}, {-70, 40}, {-75.001, 39.999}} {
		if h := GreatCircleHeading2LL(a, to); h < 0 || h >= 360 {
			t.Errorf("heading %f out of [0,360)", h)
		}
		if h := RhumbHeading2LL(a, to); h < 0 || h >= 360 {
			t.Errorf("rhumb heading %f out of [0,360)", h)
		}
	}
}

func TestSimpleDistanceOrdering(t *testing.T) {
	// SimpleDistance2LL must order nearby candidates the same way the
	// exact distance does.
	p := Point2LL{-75, 40}
	candidates := []Point2LL{
		{-75.1, 40.05},
		{-74.2, 40.9},
		{-75.01, 40.01},
		{-76, 39},
	}

	nearestSimple, nearestExact := 0, 0
	for i, c := range candidates {
		if SimpleDistance2LL(p, c) < SimpleDistance2LL(p, candidates[nearestSimple]) {
			nearestSimple = i
		}
		if NMDistance2LL(p, c) < NMDistance2LL(p, candidates[nearestExact]) {
			nearestExact = i
		}
	}
	if nearestSimple != nearestExact {
		t.Errorf("simple distance picked %d, exact picked %d", nearestSimple, nearestExact)
	}
}

func TestParseLatLong(t *testing.T) {
	for _, tc := range []struct {
		s    string
		want Point2LL
	}{
		{"40.640000, -73.779000", Point2LL{-73.779, 40.64}},
		{"N040.38.24.000,W073.46.44.400", Point2LL{-73.779, 40.64}},
	} {
		p, err := ParseLatLong(tc.s)
		if err != nil {
			t.Errorf("%s: unexpected error %v", tc.s, err)
			continue
		}
		if Abs(p[0]-tc.want[0]) > 0.001 || Abs(p[1]-tc.want[1]) > 0.001 {
			t.Errorf("%s: got %v, want %v", tc.s, p, tc.want)
		}
	}

	if _, err := ParseLatLong("bogus"); err == nil {
		t.Errorf("expected error parsing bogus latlong")
	}
}

func TestPoint2LLJSONRoundTrip(t *testing.T) {
	p := Point2LL{-73.779, 40.64}
	b, err := p.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var q Point2LL
	if err := q.UnmarshalJSON(b); err != nil {
		t.Fatal(err)
	}
	if Abs(p[0]-q[0]) > 0.001 || Abs(p[1]-q[1]) > 0.001 {
		t.Errorf("round trip %v -> %s -> %v", p, b, q)
	}
}

func TestLineString(t *testing.T) {
	if !(LineString{{1, 2}}).IsPoint() {
		t.Errorf("single point LineString should be a point")
	}
	if !(LineString{{1, 2}, {1, 2}}).IsPoint() {
		t.Errorf("repeated point LineString should be a point")
	}
	if (LineString{{1, 2}, {3, 4}}).IsPoint() {
		t.Errorf("two distinct points are not a point")
	}
	if (LineString{}).IsPoint() {
		t.Errorf("empty LineString is not a point")
	}

	ls := LineString{{-75, 40}, {-75, 41}, {-75, 42}}
	if l := ls.Length(); Abs(l-120) > 1 {
		t.Errorf("LineString length %f, expected ~120", l)
	}
}
