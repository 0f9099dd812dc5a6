// route/maptype.go
// Copyright(c) 2024-2026 navroute contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package route

// MapObjectType says what a resolved route leg turned out to be. Exactly
// one payload in Leg corresponds to the current type; accessors dispatch
// on it.
type MapObjectType int

const (
	MapInvalid MapObjectType = iota
	MapAirport
	MapVOR
	MapNDB
	MapWaypoint
	MapILS
	MapRunwayEnd
	MapUser

	// Procedure legs, by which part of the procedure they belong to.
	MapApproachLeg
	MapTransitionLeg
	MapMissedApproachLeg
)

// IsProcedure reports whether the leg comes from a published procedure
// rather than a direct waypoint-to-waypoint segment.
func (t MapObjectType) IsProcedure() bool {
	return t == MapApproachLeg || t == MapTransitionLeg || t == MapMissedApproachLeg
}

func (t MapObjectType) String() string {
	switch t {
	case MapInvalid:
		return "Invalid"
	case MapAirport:
		return "Airport"
	case MapVOR:
		return "VOR"
	case MapNDB:
		return "NDB"
	case MapWaypoint:
		return "Waypoint"
	case MapILS:
		return "ILS"
	case MapRunwayEnd:
		return "RunwayEnd"
	case MapUser:
		return "User"
	case MapApproachLeg:
		return "ApproachLeg"
	case MapTransitionLeg:
		return "TransitionLeg"
	case MapMissedApproachLeg:
		return "MissedApproachLeg"
	default:
		return "Unknown"
	}
}
