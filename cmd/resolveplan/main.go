// cmd/resolveplan/main.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// resolveplan resolves a flight plan file against a navigation database
// and prints the resulting route, one leg per line.
// Usage: resolveplan -navdata <dir> -plan <plan.json>

package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/flightnav/navroute/log"
	"github.com/flightnav/navroute/math"
	"github.com/flightnav/navroute/nav"
	"github.com/flightnav/navroute/route"

	"github.com/goforj/godump"
)

var (
	navdataDir = flag.String("navdata", "", "navigation database directory")
	planFile   = flag.String("plan", "", "flight plan JSON file")
	logLevel   = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir     = flag.String("logdir", "", "log file directory")
	dumpPlan   = flag.Bool("dump", false, "dump the resolved flight plan and exit")
)

// planEntry is a flight plan entry as stored in the plan file; Type is a
// string there ("airport", "waypoint", ...) rather than an enum.
type planEntry struct {
	Type     string    `json:"type"`
	Ident    string    `json:"ident"`
	Region   string    `json:"region,omitempty"`
	Airway   string    `json:"airway,omitempty"`
	Name     string    `json:"name,omitempty"`
	Position []float32 `json:"pos,omitempty"` // [latitude, longitude]
}

type planFileContents struct {
	DepartureParking  string      `json:"departure_parking,omitempty"`
	DeparturePosition []float32   `json:"departure_pos,omitempty"`
	Entries           []planEntry `json:"entries"`
}

func main() {
	flag.Parse()

	if *navdataDir == "" || *planFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: resolveplan -navdata <dir> -plan <plan.json>")
		os.Exit(1)
	}

	lg := log.New(*logLevel, *logDir)

	fp, err := loadPlan(*planFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *planFile, err)
		os.Exit(1)
	}

	db, err := nav.LoadDatabase(*navdataDir, lg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", *navdataDir, err)
		os.Exit(1)
	}

	r := route.NewRoute(fp)
	r.Update(db, lg)

	if *dumpPlan {
		godump.Dump(fp)
		return
	}

	printRoute(r)
}

func loadPlan(path string) (*route.Flightplan, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var pf planFileContents
	if err := json.Unmarshal(b, &pf); err != nil {
		return nil, err
	}

	fp := route.NewFlightplan()
	fp.DepartureParkingName = pf.DepartureParking
	fp.DeparturePosition = position(pf.DeparturePosition)

	for _, e := range pf.Entries {
		fp.Entries = append(fp.Entries, route.FlightplanEntry{
			Type:     entryType(e.Type),
			Ident:    e.Ident,
			Region:   e.Region,
			Airway:   e.Airway,
			UserName: e.Name,
			Position: position(e.Position),
		})
	}
	return fp, nil
}

func entryType(s string) route.EntryType {
	switch strings.ToLower(s) {
	case "airport":
		return route.EntryAirport
	case "waypoint", "intersection":
		return route.EntryWaypoint
	case "vor":
		return route.EntryVOR
	case "ndb":
		return route.EntryNDB
	case "user":
		return route.EntryUser
	default:
		return route.EntryUnknown
	}
}

func position(p []float32) math.Point2LL {
	if len(p) != 2 {
		return math.Point2LL{}
	}
	return math.Point2LL{p[1], p[0]}
}

func printRoute(r *route.Route) {
	fmt.Printf("%3s %-7s %-12s %-3s %8s %6s %7s %8s  %s\n",
		"#", "ident", "type", "reg", "freq", "crs", "crs(M)", "dist", "name")

	for i := 0; i < r.Len(); i++ {
		l := r.At(i)

		freq := ""
		if f := l.Frequency(); f > 0 {
			freq = fmt.Sprintf("%.2f", float32(f)/1000)
		}

		course, courseMag := "", ""
		if i > 0 {
			course = fmt.Sprintf("%03.0f", l.CourseTo())
			courseMag = fmt.Sprintf("%03.0f", l.CourseToMag())
		}

		name := l.Name()
		if aw := l.Airway(); aw != "" {
			name += " [" + aw + "]"
		}
		if !l.IsValid() {
			name = strings.TrimSpace(name + " (not found)")
		}

		fmt.Printf("%3d %-7s %-12s %-3s %8s %6s %7s %7.1fnm  %s\n",
			i+1, l.Ident(), l.TypeName(), l.Region(), freq, course, courseMag,
			l.DistanceTo(), name)
	}

	fmt.Printf("\nTotal distance: %.1f nm\n", r.TotalDistance())
}
