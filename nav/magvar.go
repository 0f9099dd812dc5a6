// nav/magvar.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package nav

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/flightnav/navroute/math"
)

// MagneticGrid holds a regular lat-long grid of magnetic declination
// samples (degrees, east positive) from the world magnetic model. It is
// used to fill in the magnetic variation of database records whose source
// data doesn't carry one.
type MagneticGrid struct {
	MinLatitude, MaxLatitude   float32
	MinLongitude, MaxLongitude float32
	LatLongStep                float32
	Samples                    []float32
}

// ParseMagneticGrid reads a magnetic grid: a header line with the extent
// and step ("minlat maxlat minlon maxlon step"), then one declination
// sample per line, longitude-major from the minimum latitude/longitude.
//
// To regenerate the data:
//  1. Download software and coefficients from https://www.ncei.noaa.gov/products/world-magnetic-model
//  2. Build wmm_grid, run with the extent in the header line, altitude 0 -> 0,
//     select "declination" for output.
//  3. awk '{print $5}' < GridResults.txt, prepend the header, zstd -19.
func ParseMagneticGrid(r io.Reader) (MagneticGrid, error) {
	var mg MagneticGrid

	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil {
		return mg, fmt.Errorf("reading magnetic grid header: %w", err)
	}
	if n, err := fmt.Sscan(header, &mg.MinLatitude, &mg.MaxLatitude,
		&mg.MinLongitude, &mg.MaxLongitude, &mg.LatLongStep); n != 5 || err != nil {
		return mg, fmt.Errorf("%q: invalid magnetic grid header", strings.TrimSpace(header))
	}

	for {
		line, err := br.ReadString('\n')
		if err == io.EOF {
			break
		} else if err != nil {
			return mg, err
		}

		if v, err := strconv.ParseFloat(strings.TrimSpace(line), 32); err != nil {
			return mg, fmt.Errorf("%s: parsing error: %w", strings.TrimSpace(line), err)
		} else {
			mg.Samples = append(mg.Samples, float32(v))
		}
	}

	nlat := int(1 + (mg.MaxLatitude-mg.MinLatitude)/mg.LatLongStep)
	nlong := int(1 + (mg.MaxLongitude-mg.MinLongitude)/mg.LatLongStep)
	if len(mg.Samples) != nlat*nlong {
		return mg, fmt.Errorf("found %d magnetic grid samples, expected %d x %d = %d",
			len(mg.Samples), nlat, nlong, nlat*nlong)
	}

	return mg, nil
}

// Lookup returns the declination at the grid sample nearest to p.
func (mg *MagneticGrid) Lookup(p math.Point2LL) (float32, error) {
	if len(mg.Samples) == 0 {
		return 0, fmt.Errorf("no magnetic grid loaded")
	}
	if p[0] < mg.MinLongitude || p[0] > mg.MaxLongitude ||
		p[1] < mg.MinLatitude || p[1] > mg.MaxLatitude {
		return 0, fmt.Errorf("lookup point outside sampled grid")
	}

	nlat := int(1 + (mg.MaxLatitude-mg.MinLatitude)/mg.LatLongStep)
	nlong := int(1 + (mg.MaxLongitude-mg.MinLongitude)/mg.LatLongStep)

	// Round to nearest
	lat := min(int((p[1]-mg.MinLatitude)/mg.LatLongStep+0.5), nlat-1)
	long := min(int((p[0]-mg.MinLongitude)/mg.LatLongStep+0.5), nlong-1)

	return mg.Samples[long+nlong*lat], nil
}
