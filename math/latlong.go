// math/latlong.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"encoding/json"
	"fmt"
	gomath "math"
	"regexp"
	"strconv"
)

const MetersPerNauticalMile = 1852

// Point2LL represents a 2D point on the Earth in latitude-longitude.
// Important: 0 (x) is longitude, 1 (y) is latitude
type Point2LL [2]float32

func (p Point2LL) Longitude() float32 {
	return p[0]
}

func (p Point2LL) Latitude() float32 {
	return p[1]
}

func (p Point2LL) IsZero() bool {
	return p[0] == 0 && p[1] == 0
}

// DDString returns the position in decimal degrees, e.g.:
// (39.860901, -75.274864)
func (p Point2LL) DDString() string {
	return fmt.Sprintf("(%f, %f)", p[1], p[0]) // latitude, longitude
}

// DMSString returns the position in degrees minutes, seconds, e.g.
// N039.51.39.243,W075.16.29.511
func (p Point2LL) DMSString() string {
	format := func(v float32) string {
		s := fmt.Sprintf("%03d", int(v))
		v -= Floor(v)
		v *= 60
		s += fmt.Sprintf(".%02d", int(v))
		v -= Floor(v)
		v *= 60
		s += fmt.Sprintf(".%02d", int(v))
		v -= Floor(v)
		v *= 1000
		s += fmt.Sprintf(".%03d", int(v))
		return s
	}

	var s string
	if p[1] > 0 {
		s = "N"
	} else {
		s = "S"
	}
	s += format(Abs(p[1]))

	if p[0] > 0 {
		s += ",E"
	} else {
		s += ",W"
	}
	s += format(Abs(p[0]))

	return s
}

var (
	// pair of floats (no exponents)
	reWaypointFloat = regexp.MustCompile(`^(\-?[0-9]+\.[0-9]+), *(\-?[0-9]+\.[0-9]+)`)
	// N040.44.21.753,W075.41.55.347
	reWaypointDotted = regexp.MustCompile(`^([NS])([0-9]+)\.([0-9]+)\.([0-9]+)\.([0-9]+), *([EW])([0-9]+)\.([0-9]+)\.([0-9]+)\.([0-9]+)`)
)

// ParseLatLong parses positions given either as a pair of decimal degree
// floats ("40.63, -73.77") or in the dotted degrees-minutes-seconds form
// that DMSString emits.
func ParseLatLong(llstr string) (Point2LL, error) {
	var p Point2LL
	if strs := reWaypointFloat.FindStringSubmatch(llstr); len(strs) == 3 {
		if l, err := strconv.ParseFloat(strs[1], 32); err != nil {
			return Point2LL{}, err
		} else {
			p[1] = float32(l)
		}
		if l, err := strconv.ParseFloat(strs[2], 32); err != nil {
			return Point2LL{}, err
		} else {
			p[0] = float32(l)
		}
		return p, nil
	} else if strs := reWaypointDotted.FindStringSubmatch(llstr); len(strs) == 11 {
		parse := func(deg, min, sec, frac string) (float32, error) {
			d, err := strconv.Atoi(deg)
			if err != nil {
				return 0, err
			}
			m, err := strconv.Atoi(min)
			if err != nil {
				return 0, err
			}
			s, err := strconv.Atoi(sec)
			if err != nil {
				return 0, err
			}
			// Treat the fractional seconds as a decimal so that .1 is
			// handled as .100.
			for len(frac) < 3 {
				frac += "0"
			}
			f, err := strconv.Atoi(frac)
			if err != nil {
				return 0, err
			}
			return float32(d) + float32(m)/60 + float32(s)/3600 + float32(f)/3600000, nil
		}

		var err error
		p[1], err = parse(strs[2], strs[3], strs[4], strs[5])
		if err != nil {
			return Point2LL{}, err
		}
		if strs[1] == "S" {
			p[1] = -p[1]
		}
		p[0], err = parse(strs[7], strs[8], strs[9], strs[10])
		if err != nil {
			return Point2LL{}, err
		}
		if strs[6] == "W" {
			p[0] = -p[0]
		}
		return p, nil
	} else {
		return Point2LL{}, fmt.Errorf("%s: invalid latlong string", llstr)
	}
}

// Store Point2LLs as strings in JSON, for compactness/friendliness...
func (p Point2LL) MarshalJSON() ([]byte, error) {
	return []byte("\"" + p.DMSString() + "\""), nil
}

func (p *Point2LL) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '[' {
		// Backwards compatibility for arrays of two floats...
		var pt [2]float32
		err := json.Unmarshal(b, &pt)
		if err == nil {
			*p = pt
		}
		return err
	}
	n := len(b)
	if n < 2 {
		return fmt.Errorf("%s: invalid latlong JSON", b)
	}
	pt, err := ParseLatLong(string(b[1 : n-1]))
	if err == nil {
		*p = pt
	}
	return err
}

///////////////////////////////////////////////////////////////////////////
// distances and bearings

// NMDistance2LL returns the great-circle distance in nautical miles
// between two provided lat-long coordinates.
func NMDistance2LL(a Point2LL, b Point2LL) float32 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	const R = 6371000 // metres
	rad := func(d float64) float64 { return float64(d) / 180 * gomath.Pi }
	lat1, lon1 := rad(float64(a[1])), rad(float64(a[0]))
	lat2, lon2 := rad(float64(b[1])), rad(float64(b[0]))
	dlat, dlon := lat2-lat1, lon2-lon1

	x := Sqr(gomath.Sin(dlat/2)) + gomath.Cos(lat1)*gomath.Cos(lat2)*Sqr(gomath.Sin(dlon/2))
	c := 2 * gomath.Atan2(gomath.Sqrt(x), gomath.Sqrt(1-x))
	dm := R * c // in metres

	return float32(dm * 0.000539957)
}

// MetersDistance2LL returns the great-circle distance between two points
// in meters.
func MetersDistance2LL(a Point2LL, b Point2LL) float32 {
	return NMDistance2LL(a, b) * MetersPerNauticalMile
}

// SimpleDistance2LL returns an approximate distance between two lat-long
// points using an equirectangular projection. It is only good for
// comparing distances of nearby points (which is exactly what
// nearest-candidate selection needs), not for reporting them.
func SimpleDistance2LL(a Point2LL, b Point2LL) float32 {
	dlat := b[1] - a[1]
	dlon := (b[0] - a[0]) * Cos(Radians((a[1]+b[1])/2))
	return Sqrt(Sqr(dlat) + Sqr(dlon))
}

// NMDistanceRhumb2LL returns the rhumb-line (constant bearing) distance in
// nautical miles between two lat-long points.
func NMDistanceRhumb2LL(a Point2LL, b Point2LL) float32 {
	// https://www.movable-type.co.uk/scripts/latlong.html
	const R = 6371000 // metres
	lat1, lon1 := float64(Radians(a[1])), float64(Radians(a[0]))
	lat2, lon2 := float64(Radians(b[1])), float64(Radians(b[0]))
	dlat, dlon := lat2-lat1, lon2-lon1

	dpsi := gomath.Log(gomath.Tan(gomath.Pi/4+lat2/2) / gomath.Tan(gomath.Pi/4+lat1/2))
	var q float64
	if gomath.Abs(dpsi) > 1e-12 {
		q = dlat / dpsi
	} else {
		// E-W line: Mercator stretching factor degenerates
		q = gomath.Cos(lat1)
	}

	// Take the shorter way around the Earth
	if gomath.Abs(dlon) > gomath.Pi {
		if dlon > 0 {
			dlon -= 2 * gomath.Pi
		} else {
			dlon += 2 * gomath.Pi
		}
	}

	dm := gomath.Sqrt(dlat*dlat+q*q*dlon*dlon) * R
	return float32(dm * 0.000539957)
}

// GreatCircleHeading2LL returns the initial bearing in degrees [0,360) of
// the great-circle path from a to b.
func GreatCircleHeading2LL(a Point2LL, b Point2LL) float32 {
	lat1, lon1 := float64(Radians(a[1])), float64(Radians(a[0]))
	lat2, lon2 := float64(Radians(b[1])), float64(Radians(b[0]))
	dlon := lon2 - lon1

	y := gomath.Sin(dlon) * gomath.Cos(lat2)
	x := gomath.Cos(lat1)*gomath.Sin(lat2) - gomath.Sin(lat1)*gomath.Cos(lat2)*gomath.Cos(dlon)
	return NormalizeHeading(Degrees(float32(gomath.Atan2(y, x))))
}

// RhumbHeading2LL returns the constant bearing in degrees [0,360) of the
// rhumb line from a to b.
func RhumbHeading2LL(a Point2LL, b Point2LL) float32 {
	lat1, lon1 := float64(Radians(a[1])), float64(Radians(a[0]))
	lat2, lon2 := float64(Radians(b[1])), float64(Radians(b[0]))
	dlon := lon2 - lon1

	dpsi := gomath.Log(gomath.Tan(gomath.Pi/4+lat2/2) / gomath.Tan(gomath.Pi/4+lat1/2))
	if gomath.Abs(dlon) > gomath.Pi {
		if dlon > 0 {
			dlon -= 2 * gomath.Pi
		} else {
			dlon += 2 * gomath.Pi
		}
	}
	return NormalizeHeading(Degrees(float32(gomath.Atan2(dlon, dpsi))))
}
