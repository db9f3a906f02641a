package geometry

import (
	"math"

	"service-partner/internal/domain"
)

// Contains reports whether pt lies inside any polygon of m: inside the outer
// ring and outside every hole.
func Contains(m domain.MultiPolygon, pt domain.Position) bool {
	if len(pt) < 2 {
		return false
	}
	for _, poly := range m.Coordinates {
		if polygonContains(poly, pt) {
			return true
		}
	}
	return false
}

func polygonContains(poly domain.Polygon, pt domain.Position) bool {
	if len(poly) == 0 || !ringContains(poly[0], pt) {
		return false
	}
	for _, hole := range poly[1:] {
		if ringContains(hole, pt) {
			return false
		}
	}
	return true
}

// ringContains is the even-odd ray casting test.
func ringContains(ring domain.Ring, pt domain.Position) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	x, y := pt.Lon(), pt.Lat()
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i].Lon(), ring[i].Lat()
		xj, yj := ring[j].Lon(), ring[j].Lat()
		if (yi > y) != (yj > y) && x < (xj-xi)*(y-yi)/(yj-yi)+xi {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the bounding box of every position in m.
func Bounds(m domain.MultiPolygon) (lo, hi domain.Position) {
	minLon, minLat := math.Inf(1), math.Inf(1)
	maxLon, maxLat := math.Inf(-1), math.Inf(-1)
	for _, poly := range m.Coordinates {
		for _, ring := range poly {
			for _, pos := range ring {
				minLon = math.Min(minLon, pos.Lon())
				minLat = math.Min(minLat, pos.Lat())
				maxLon = math.Max(maxLon, pos.Lon())
				maxLat = math.Max(maxLat, pos.Lat())
			}
		}
	}
	if math.IsInf(minLon, 1) {
		return domain.NewPosition(0, 0), domain.NewPosition(0, 0)
	}
	return domain.NewPosition(minLon, minLat), domain.NewPosition(maxLon, maxLat)
}
