package locode

import (
	"math"
	"sort"
	"strconv"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// s2CellLevel is the granularity of the spatial index. Level 8 cells are
// roughly 40km x 40km.
const s2CellLevel = 8

// earthRadiusKm is the mean Earth radius used to convert angles to distances.
const earthRadiusKm = 6371.01

// maxNearestDistanceKm bounds Nearest; farther locations are not returned.
const maxNearestDistanceKm = 100.0

// LatLng parses the coordinates of the location. UN/LOCODE writes them as
// degrees and minutes, "DDMM[NS] DDDMM[EW]", e.g. "4042N 07400W".
func (l Location) LatLng() (lat, lng float64, ok bool) {
	return parseCoordinates(l.coordinates)
}

// Geohash returns the geohash of the location's coordinates, or "" when it
// has none.
func (l Location) Geohash() string {
	lat, lng, ok := l.LatLng()
	if !ok {
		return ""
	}
	return geohash.Encode(lat, lng)
}

func parseCoordinates(s string) (lat, lng float64, ok bool) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return 0, 0, false
	}
	lat, ok = parseDegreesMinutes(parts[0], 2, 'N', 'S', 90)
	if !ok {
		return 0, 0, false
	}
	lng, ok = parseDegreesMinutes(parts[1], 3, 'E', 'W', 180)
	if !ok {
		return 0, 0, false
	}
	return lat, lng, true
}

// parseDegreesMinutes parses e.g. "4042N" (degDigits=2) or "07400W"
// (degDigits=3).
func parseDegreesMinutes(s string, degDigits int, pos, neg byte, limit float64) (float64, bool) {
	if len(s) != degDigits+3 {
		return 0, false
	}
	hemi := toUpper(s[len(s)-1:])[0]
	if hemi != pos && hemi != neg {
		return 0, false
	}
	deg, err := strconv.Atoi(s[:degDigits])
	if err != nil || deg < 0 {
		return 0, false
	}
	mins, err := strconv.Atoi(s[degDigits : degDigits+2])
	if err != nil || mins < 0 || mins >= 60 {
		return 0, false
	}
	v := float64(deg) + float64(mins)/60
	if v > limit {
		return 0, false
	}
	if hemi == neg {
		v = -v
	}
	return v, true
}

// buildCellIndex creates an S2 cell-based spatial index of every location
// with parseable coordinates.
func (x *Index) buildCellIndex() {
	x.cellIndex = make(map[s2.CellID][]int)
	for i, l := range x.locations {
		lat, lng, ok := l.LatLng()
		if !ok {
			continue
		}
		cell := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng)).Parent(s2CellLevel)
		x.cellIndex[cell] = append(x.cellIndex[cell], i)
	}
}

// nearbyCandidate pairs a location index with its distance from the query
// point.
type nearbyCandidate struct {
	idx  int
	dist s1.Angle
}

// sortCandidates orders by distance, then collection order.
func sortCandidates(c []nearbyCandidate) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].dist != c[j].dist {
			return c[i].dist < c[j].dist
		}
		return c[i].idx < c[j].idx
	})
}

func validLatLng(lat, lng float64) bool {
	return !math.IsNaN(lat) && !math.IsNaN(lng) && !math.IsInf(lat, 0) && !math.IsInf(lng, 0)
}

func kmToAngle(km float64) s1.Angle {
	return s1.Angle(km / earthRadiusKm)
}

// Nearest returns the location closest to lat/lng within
// maxNearestDistanceKm. Ties go to the earlier location in collection order.
func (x *Index) Nearest(lat, lng float64) (Location, bool) {
	found := x.Within(lat, lng, maxNearestDistanceKm, 1)
	if len(found) == 0 {
		return Location{}, false
	}
	return found[0], true
}

// Within returns the locations within radiusKm of lat/lng, nearest first,
// optionally capped at limit.
func (x *Index) Within(lat, lng, radiusKm float64, limit ...int) []Location {
	out := []Location{}
	n := x.resultLimit(limit)
	if !validLatLng(lat, lng) || !(radiusKm > 0) || n == 0 {
		return out
	}

	query := s2.LatLngFromDegrees(lat, lng)
	radius := kmToAngle(radiusKm)
	region := s2.CapFromCenterAngle(s2.PointFromLatLng(query), radius)
	coverer := &s2.RegionCoverer{MaxLevel: s2CellLevel, MaxCells: 16}

	var candidates []nearbyCandidate
	for _, cell := range coverer.Covering(region) {
		// Coarse covering cells are walked down to index cells.
		end := cell.ChildEndAtLevel(s2CellLevel)
		for id := cell.ChildBeginAtLevel(s2CellLevel); id != end; id = id.Next() {
			for _, idx := range x.cellIndex[id] {
				if c := x.candidate(query, idx); c.dist <= radius {
					candidates = append(candidates, c)
				}
			}
		}
	}

	sortCandidates(candidates)
	for _, c := range candidates {
		if len(out) == n {
			break
		}
		out = append(out, x.locations[c.idx])
	}
	return out
}

func (x *Index) candidate(query s2.LatLng, idx int) nearbyCandidate {
	lat, lng, _ := x.locations[idx].LatLng()
	return nearbyCandidate{idx: idx, dist: query.Distance(s2.LatLngFromDegrees(lat, lng))}
}
