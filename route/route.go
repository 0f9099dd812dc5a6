// route/route.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

import (
	"github.com/flightnav/navroute/log"
	"github.com/flightnav/navroute/util"

	"github.com/brunoga/deep"
)

// Route owns the resolved legs for a flight plan: one leg per plan entry,
// optionally followed by the legs of an appended procedure. Legs are
// indexed the way the plan's entries are; procedure legs continue the
// numbering past the last entry.
type Route struct {
	fp   *Flightplan
	legs []Leg
}

func NewRoute(fp *Flightplan) *Route {
	return &Route{fp: fp}
}

func (r *Route) Flightplan() *Flightplan { return r.fp }

func (r *Route) Len() int { return len(r.legs) }

func (r *Route) At(i int) *Leg { return &r.legs[i] }

// Update re-resolves every plan entry against the database and then
// backfills the magnetic variation of user and unresolved legs from
// their neighbors. Any previously appended procedure legs are dropped;
// append the procedure again after updating.
func (r *Route) Update(q NavQuery, lg *log.Logger) {
	r.legs = make([]Leg, len(r.fp.Entries))
	for i := range r.fp.Entries {
		var prev *Leg
		if i > 0 {
			prev = &r.legs[i-1]
		}
		r.legs[i] = NewLeg(r.fp)
		r.legs[i].CreateFromEntry(i, q, prev, lg)
	}

	for i := range r.legs {
		r.legs[i].BackfillMagvar(r)
	}
}

// AppendProcedure appends the legs of a pre-expanded procedure to the
// route and records its name in the plan's properties.
func (r *Route) AppendProcedure(proc Procedure) {
	for _, pl := range proc.Legs {
		var prev *Leg
		if n := len(r.legs); n > 0 {
			prev = &r.legs[n-1]
		}
		leg := NewLeg(r.fp)
		leg.CreateFromProcedureLeg(len(r.legs), pl, prev)
		r.legs = append(r.legs, leg)
	}

	if proc.Name != "" {
		r.fp.SetProperty("approach", proc.Name)
	}
}

// Insert places a leg at index i, shifting later legs up; their indices
// and derived courses/distances are refreshed.
func (r *Route) Insert(i int, l Leg) {
	r.legs = util.InsertSliceElement(r.legs, i, l)
	r.reindex(i)
}

// Remove deletes the leg at index i, shifting later legs down.
func (r *Route) Remove(i int) {
	r.legs = util.DeleteSliceElement(r.legs, i)
	r.reindex(i)
}

// reindex refreshes leg indices and derived geometry from position from
// onward (a structural edit invalidates everything downstream of it).
func (r *Route) reindex(from int) {
	for i := max(from, 0); i < len(r.legs); i++ {
		var prev *Leg
		if i > 0 {
			prev = &r.legs[i-1]
		}
		r.legs[i].UpdateDistanceAndCourse(i, prev)
	}
}

// TotalDistance returns the route's length in nm, the sum of the leg
// distances.
func (r *Route) TotalDistance() float32 {
	var total float32
	for i := range r.legs {
		total += r.legs[i].DistanceTo()
	}
	return total
}

// Clone returns a deep copy of the route and its flight plan, e.g. for
// undo snapshots; the copy's legs reference the copied plan.
func (r *Route) Clone() *Route {
	c := deep.MustCopy(*r)
	return &c
}
