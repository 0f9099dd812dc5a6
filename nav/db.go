// nav/db.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"encoding/csv"

	"github.com/flightnav/navroute/log"
	"github.com/flightnav/navroute/math"
	"github.com/flightnav/navroute/util"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Database is an in-memory navigation database: airports, radio navaids,
// waypoints, ILSes, runway ends, and airport parking/start positions,
// indexed by ident for route resolution.
//
// The exported fields are what gets serialized to the disk cache; the
// ident indices and the query cache are rebuilt after loading.
type Database struct {
	Airports   []Airport
	VORs       []VOR
	NDBs       []NDB
	Waypoints  []Waypoint
	ILSs       []ILS
	RunwayEnds []RunwayEnd
	Parkings   map[int][]Parking // airport id -> parking spots
	Starts     map[int][]Start   // airport id -> start positions
	Magnetic   MagneticGrid

	airportsByIdent  map[string][]int
	vorsByIdent      map[string][]int
	ndbsByIdent      map[string][]int
	waypointsByIdent map[string][]int

	queryCache *lru.Cache[string, any]
}

const queryCacheSize = 1024
const databaseCacheFile = "navdata.msgpack"

// Source files expected in the navigation data directory.
var sourceFiles = []string{
	"airports.csv.zst", "vors.csv.zst", "ndbs.csv.zst", "waypoints.csv.zst",
	"ils.csv.zst", "runway_ends.csv.zst", "parkings.csv.zst", "starts.csv.zst",
	"magnetic_grid.txt.zst",
}

// LoadDatabase reads the navigation data files in dir, using a cached
// pre-parsed copy when one exists that is newer than all of the source
// files.
func LoadDatabase(dir string, lg *log.Logger) (*Database, error) {
	newest := time.Time{}
	for _, fn := range sourceFiles {
		fi, err := os.Stat(filepath.Join(dir, fn))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fn, err)
		}
		if fi.ModTime().After(newest) {
			newest = fi.ModTime()
		}
	}

	db := &Database{}
	if stored, err := util.CacheRetrieveObject(databaseCacheFile, db); err == nil && stored.After(newest) {
		lg.Debugf("%s: loaded navigation database from cache", databaseCacheFile)
		db.init()
		return db, nil
	}

	db, err := parseDatabase(dir)
	if err != nil {
		return nil, err
	}

	if err := util.CacheStoreObject(databaseCacheFile, db); err != nil {
		lg.Warnf("%s: unable to cache navigation database: %v", databaseCacheFile, err)
	}

	lg.Infof("%s: parsed navigation database: %d airports, %d VORs, %d NDBs, %d waypoints",
		dir, len(db.Airports), len(db.VORs), len(db.NDBs), len(db.Waypoints))

	db.init()
	return db, nil
}

func parseDatabase(dir string) (*Database, error) {
	db := &Database{
		Parkings: make(map[int][]Parking),
		Starts:   make(map[int][]Start),
	}

	load := func(name string, fields []string, callback func([]string)) error {
		r, err := util.LoadResource(dir, name)
		if err != nil {
			return err
		}
		defer r.Close()
		mungeCSV(name, r, fields, callback)
		return nil
	}

	atof := func(s string) float64 {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			panic(fmt.Sprintf("%s: parsing error: %v", s, err))
		}
		return v
	}
	atoi := func(s string) int {
		s = strings.TrimSpace(s)
		if s == "" {
			return 0
		}
		v, err := strconv.Atoi(s)
		if err != nil {
			panic(fmt.Sprintf("%s: parsing error: %v", s, err))
		}
		return v
	}

	if err := load("airports.csv.zst",
		[]string{"id", "ident", "name", "region", "laty", "lonx", "altitude", "mag_var"},
		func(s []string) {
			db.Airports = append(db.Airports, Airport{
				ID:        atoi(s[0]),
				Ident:     strings.TrimSpace(s[1]),
				Name:      strings.TrimSpace(s[2]),
				Region:    strings.TrimSpace(s[3]),
				Position:  math.Point2LL{float32(atof(s[5])), float32(atof(s[4]))},
				Elevation: atoi(s[6]),
				Magvar:    float32(atof(s[7])),
			})
		}); err != nil {
		return nil, err
	}

	if err := load("vors.csv.zst",
		[]string{"id", "ident", "name", "region", "type", "laty", "lonx", "frequency", "range", "mag_var"},
		func(s []string) {
			db.VORs = append(db.VORs, VOR{
				ID:        atoi(s[0]),
				Ident:     strings.TrimSpace(s[1]),
				Name:      strings.TrimSpace(s[2]),
				Region:    strings.TrimSpace(s[3]),
				Type:      strings.TrimSpace(s[4]),
				Position:  math.Point2LL{float32(atof(s[6])), float32(atof(s[5]))},
				Frequency: atoi(s[7]),
				Range:     atoi(s[8]),
				Magvar:    float32(atof(s[9])),
			})
		}); err != nil {
		return nil, err
	}

	if err := load("ndbs.csv.zst",
		[]string{"id", "ident", "name", "region", "type", "laty", "lonx", "frequency", "range", "mag_var"},
		func(s []string) {
			db.NDBs = append(db.NDBs, NDB{
				ID:        atoi(s[0]),
				Ident:     strings.TrimSpace(s[1]),
				Name:      strings.TrimSpace(s[2]),
				Region:    strings.TrimSpace(s[3]),
				Type:      strings.TrimSpace(s[4]),
				Position:  math.Point2LL{float32(atof(s[6])), float32(atof(s[5]))},
				Frequency: atoi(s[7]),
				Range:     atoi(s[8]),
				Magvar:    float32(atof(s[9])),
			})
		}); err != nil {
		return nil, err
	}

	if err := load("waypoints.csv.zst",
		[]string{"id", "ident", "region", "type", "laty", "lonx", "mag_var"},
		func(s []string) {
			db.Waypoints = append(db.Waypoints, Waypoint{
				ID:       atoi(s[0]),
				Ident:    strings.TrimSpace(s[1]),
				Region:   strings.TrimSpace(s[2]),
				Type:     strings.TrimSpace(s[3]),
				Position: math.Point2LL{float32(atof(s[5])), float32(atof(s[4]))},
				Magvar:   float32(atof(s[6])),
			})
		}); err != nil {
		return nil, err
	}

	if err := load("ils.csv.zst",
		[]string{"id", "ident", "name", "laty", "lonx", "frequency", "range", "mag_var", "loc_heading"},
		func(s []string) {
			db.ILSs = append(db.ILSs, ILS{
				ID:        atoi(s[0]),
				Ident:     strings.TrimSpace(s[1]),
				Name:      strings.TrimSpace(s[2]),
				Position:  math.Point2LL{float32(atof(s[4])), float32(atof(s[3]))},
				Frequency: atoi(s[5]),
				Range:     atoi(s[6]),
				Magvar:    float32(atof(s[7])),
				Heading:   float32(atof(s[8])),
			})
		}); err != nil {
		return nil, err
	}

	if err := load("runway_ends.csv.zst",
		[]string{"id", "name", "laty", "lonx", "heading"},
		func(s []string) {
			db.RunwayEnds = append(db.RunwayEnds, RunwayEnd{
				ID:       atoi(s[0]),
				Name:     strings.TrimSpace(s[1]),
				Position: math.Point2LL{float32(atof(s[3])), float32(atof(s[2]))},
				Heading:  float32(atof(s[4])),
			})
		}); err != nil {
		return nil, err
	}

	if err := load("parkings.csv.zst",
		[]string{"id", "airport_id", "name", "number", "laty", "lonx", "type"},
		func(s []string) {
			ap := atoi(s[1])
			db.Parkings[ap] = append(db.Parkings[ap], Parking{
				ID:        atoi(s[0]),
				AirportID: ap,
				Name:      strings.TrimSpace(s[2]),
				Number:    atoi(s[3]),
				Position:  math.Point2LL{float32(atof(s[5])), float32(atof(s[4]))},
				Type:      strings.TrimSpace(s[6]),
			})
		}); err != nil {
		return nil, err
	}

	if err := load("starts.csv.zst",
		[]string{"id", "airport_id", "runway_name", "heliport_number", "laty", "lonx", "type"},
		func(s []string) {
			ap := atoi(s[1])
			db.Starts[ap] = append(db.Starts[ap], Start{
				ID:            atoi(s[0]),
				AirportID:     ap,
				RunwayName:    strings.TrimSpace(s[2]),
				HelipadNumber: atoi(s[3]),
				Position:      math.Point2LL{float32(atof(s[5])), float32(atof(s[4]))},
				Type:          strings.TrimSpace(s[6]),
			})
		}); err != nil {
		return nil, err
	}

	r, err := util.LoadResource(dir, "magnetic_grid.txt.zst")
	if err != nil {
		return nil, err
	}
	defer r.Close()
	db.Magnetic, err = ParseMagneticGrid(r)
	if err != nil {
		return nil, err
	}

	db.backfillMagvar()

	return db, nil
}

// backfillMagvar fills in the magnetic variation of records whose source
// data has it as zero, via the magnetic grid.
func (db *Database) backfillMagvar() {
	lookup := func(magvar *float32, p math.Point2LL) {
		if *magvar == 0 {
			if v, err := db.Magnetic.Lookup(p); err == nil {
				*magvar = v
			}
		}
	}

	for i := range db.Airports {
		lookup(&db.Airports[i].Magvar, db.Airports[i].Position)
	}
	for i := range db.VORs {
		lookup(&db.VORs[i].Magvar, db.VORs[i].Position)
	}
	for i := range db.NDBs {
		lookup(&db.NDBs[i].Magvar, db.NDBs[i].Position)
	}
	for i := range db.Waypoints {
		lookup(&db.Waypoints[i].Magvar, db.Waypoints[i].Position)
	}
	for i := range db.ILSs {
		lookup(&db.ILSs[i].Magvar, db.ILSs[i].Position)
	}
}

// init rebuilds the ident indices and the query cache; it must be called
// after the exported fields have been filled in, whether from the source
// files or from the disk cache.
func (db *Database) init() {
	index := func(n int, ident func(int) string) map[string][]int {
		m := make(map[string][]int)
		for i := 0; i < n; i++ {
			id := ident(i)
			m[id] = append(m[id], i)
		}
		return m
	}

	db.airportsByIdent = index(len(db.Airports), func(i int) string { return db.Airports[i].Ident })
	db.vorsByIdent = index(len(db.VORs), func(i int) string { return db.VORs[i].Ident })
	db.ndbsByIdent = index(len(db.NDBs), func(i int) string { return db.NDBs[i].Ident })
	db.waypointsByIdent = index(len(db.Waypoints), func(i int) string { return db.Waypoints[i].Ident })

	var err error
	db.queryCache, err = lru.New[string, any](queryCacheSize)
	if err != nil {
		panic(err)
	}
}

// Utility function for parsing CSV files as strings; it breaks each line
// of the file into fields and calls the provided callback function for
// each one.
func mungeCSV(filename string, r io.Reader, fields []string, callback func([]string)) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	// Find the index of each field the caller requested
	var fieldIndices []int
	if header, err := cr.Read(); err != nil {
		panic(fmt.Sprintf("%s: error parsing CSV file: %s", filename, err))
	} else {
		for fi, f := range fields {
			for hi, h := range header {
				if f == strings.TrimSpace(h) {
					fieldIndices = append(fieldIndices, hi)
					break
				}
			}
			if len(fieldIndices) != fi+1 {
				panic(fmt.Sprintf("%s: did not find requested field header", f))
			}
		}
	}

	var strs []string
	for {
		if record, err := cr.Read(); err == io.EOF {
			return
		} else if err != nil {
			panic(fmt.Sprintf("%s: error parsing CSV file: %s", filename, err))
		} else {
			for _, i := range fieldIndices {
				strs = append(strs, record[i])
			}
			callback(strs)
			strs = strs[:0]
		}
	}
}
