// Package geometry holds the structural checks and planar/spherical math applied
// to partner coverage areas and addresses.
//
// Validation is structural only: ring closure, minimum ring size, outer ring
// presence and coordinate range. Self-intersections, winding order and hole
// placement are accepted as submitted.
package geometry

import (
	"math"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
)

// Field names reported in validation errors.
const (
	FieldCoverageArea = "coverageArea"
	FieldAddress      = "address"
	FieldPoint        = "point"
)

const minRingPositions = 4

// ValidateCoverageArea checks that m is a well-formed MultiPolygon.
func ValidateCoverageArea(m domain.MultiPolygon) error {
	if m.Type != domain.TypeMultiPolygon {
		return apperr.Geometry(FieldCoverageArea, apperr.ErrInvalidType,
			"expected %s, got %q", domain.TypeMultiPolygon, m.Type)
	}
	if len(m.Coordinates) == 0 {
		return apperr.Geometry(FieldCoverageArea, apperr.ErrMalformedRing, "no polygons")
	}
	for i, poly := range m.Coordinates {
		if len(poly) == 0 {
			return apperr.Geometry(FieldCoverageArea, apperr.ErrMalformedRing,
				"polygon %d has no outer ring", i)
		}
		for j, ring := range poly {
			if err := validateRing(ring, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateRing(ring domain.Ring, poly, idx int) error {
	if len(ring) < minRingPositions {
		return apperr.Geometry(FieldCoverageArea, apperr.ErrMalformedRing,
			"polygon %d ring %d has %d positions, need at least %d", poly, idx, len(ring), minRingPositions)
	}
	for k, pos := range ring {
		if len(pos) != 2 {
			return apperr.Geometry(FieldCoverageArea, apperr.ErrMalformedRing,
				"polygon %d ring %d position %d is not a [lon, lat] pair", poly, idx, k)
		}
		if !inRange(pos) {
			return apperr.Geometry(FieldCoverageArea, apperr.ErrOutOfRangeCoordinate,
				"polygon %d ring %d position %d: [%v, %v]", poly, idx, k, pos[0], pos[1])
		}
	}
	if !ring[0].Equal(ring[len(ring)-1]) {
		return apperr.Geometry(FieldCoverageArea, apperr.ErrMalformedRing,
			"polygon %d ring %d is not closed", poly, idx)
	}
	return nil
}

// ValidateAddress checks that p is a Point with a valid coordinate pair.
func ValidateAddress(p domain.Point) error {
	if p.Type != domain.TypePoint {
		return apperr.Geometry(FieldAddress, apperr.ErrInvalidType,
			"expected %s, got %q", domain.TypePoint, p.Type)
	}
	return validatePosition(FieldAddress, p.Coordinates)
}

// ValidatePosition checks a bare query position.
func ValidatePosition(pos domain.Position) error {
	return validatePosition(FieldPoint, pos)
}

func validatePosition(field string, pos domain.Position) error {
	if len(pos) != 2 {
		return apperr.Geometry(field, apperr.ErrOutOfRangeCoordinate,
			"expected a [lon, lat] pair, got %d values", len(pos))
	}
	if !inRange(pos) {
		return apperr.Geometry(field, apperr.ErrOutOfRangeCoordinate,
			"[%v, %v] outside lon [-180, 180] / lat [-90, 90]", pos[0], pos[1])
	}
	return nil
}

// InRange reports whether pos is a finite [lon, lat] pair within WGS84 bounds.
func InRange(pos domain.Position) bool {
	return len(pos) == 2 && inRange(pos)
}

func inRange(pos domain.Position) bool {
	lon, lat := pos[0], pos[1]
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return false
	}
	return lon >= -180 && lon <= 180 && lat >= -90 && lat <= 90
}
