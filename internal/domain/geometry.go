package domain

// GeoJSON geometry type tags.
const (
	TypePoint        = "Point"
	TypeMultiPolygon = "MultiPolygon"
)

// Position is a GeoJSON position: longitude first, then latitude.
type Position []float64

// NewPosition builds a [lon, lat] position.
func NewPosition(lon, lat float64) Position { return Position{lon, lat} }

// Lon returns the longitude, or 0 for a short position.
func (p Position) Lon() float64 {
	if len(p) < 1 {
		return 0
	}
	return p[0]
}

// Lat returns the latitude, or 0 for a short position.
func (p Position) Lat() float64 {
	if len(p) < 2 {
		return 0
	}
	return p[1]
}

// Equal reports whether both positions hold the same values.
func (p Position) Equal(o Position) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// Clone copies the position.
func (p Position) Clone() Position {
	if p == nil {
		return nil
	}
	return append(Position(nil), p...)
}

// Ring is a closed sequence of positions.
type Ring []Position

// Polygon is an outer ring followed by optional holes.
type Polygon []Ring

// Point is a GeoJSON Point geometry.
type Point struct {
	Type        string
	Coordinates Position
}

// NewPoint builds a typed Point.
func NewPoint(lon, lat float64) Point {
	return Point{Type: TypePoint, Coordinates: NewPosition(lon, lat)}
}

// MultiPolygon is a GeoJSON MultiPolygon geometry.
type MultiPolygon struct {
	Type        string
	Coordinates []Polygon
}

// NewMultiPolygon builds a typed MultiPolygon.
func NewMultiPolygon(polys ...Polygon) MultiPolygon {
	return MultiPolygon{Type: TypeMultiPolygon, Coordinates: polys}
}

// Clone deep-copies the geometry.
func (m MultiPolygon) Clone() MultiPolygon {
	out := MultiPolygon{Type: m.Type}
	if m.Coordinates == nil {
		return out
	}
	out.Coordinates = make([]Polygon, len(m.Coordinates))
	for i, poly := range m.Coordinates {
		cp := make(Polygon, len(poly))
		for j, ring := range poly {
			r := make(Ring, len(ring))
			for k, pos := range ring {
				r[k] = pos.Clone()
			}
			cp[j] = r
		}
		out.Coordinates[i] = cp
	}
	return out
}
