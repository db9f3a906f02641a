package handlers

import (
	"encoding/json"

	"service-partner/internal/apperr"
	"service-partner/internal/domain"
	"service-partner/internal/geometry"
)

// missingField names the first required field absent from the request.
func (r createPartnerRequest) missingField() string {
	switch {
	case r.ID == nil:
		return "id"
	case r.TradingName == nil:
		return "tradingName"
	case r.OwnerName == nil:
		return "ownerName"
	case r.Document == nil:
		return "document"
	case r.CoverageArea == nil:
		return "coverageArea"
	case r.Address == nil:
		return "address"
	}
	return ""
}

// toModel decodes the geometries of a request with every field present. A
// coverage area problem is always reported before an address problem.
func (r createPartnerRequest) toModel() (*domain.Partner, error) {
	area, err := r.CoverageArea.multiPolygon()
	if err != nil {
		return nil, err
	}
	addr, err := r.Address.point()
	if err != nil {
		if verr := geometry.ValidateCoverageArea(area); verr != nil {
			return nil, verr
		}
		return nil, err
	}

	return &domain.Partner{
		ID:           string(*r.ID),
		TradingName:  *r.TradingName,
		OwnerName:    *r.OwnerName,
		Document:     string(*r.Document),
		CoverageArea: area,
		Address:      addr,
	}, nil
}

func (g *geometryRequest) multiPolygon() (domain.MultiPolygon, error) {
	out := domain.MultiPolygon{Type: g.Type}
	if g.Type != domain.TypeMultiPolygon || len(g.Coordinates) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(g.Coordinates, &out.Coordinates); err != nil {
		return out, apperr.Geometry(geometry.FieldCoverageArea, apperr.ErrInvalidType,
			"coordinates do not match MultiPolygon")
	}
	return out, nil
}

func (g *geometryRequest) point() (domain.Point, error) {
	out := domain.Point{Type: g.Type}
	if g.Type != domain.TypePoint || len(g.Coordinates) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(g.Coordinates, &out.Coordinates); err != nil {
		return out, apperr.Geometry(geometry.FieldAddress, apperr.ErrInvalidType,
			"coordinates do not match Point")
	}
	return out, nil
}

func partnerToResponse(p domain.Partner) partnerResponse {
	return partnerResponse{
		ID:           p.ID,
		TradingName:  p.TradingName,
		OwnerName:    p.OwnerName,
		Document:     p.Document,
		CoverageArea: multiPolygonDTO{Type: p.CoverageArea.Type, Coordinates: p.CoverageArea.Coordinates},
		Address:      pointDTO{Type: p.Address.Type, Coordinates: p.Address.Coordinates},
	}
}
