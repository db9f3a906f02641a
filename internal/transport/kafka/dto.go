package kafka

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"service-partner/internal/domain"
)

// MultiPolygonDTO is the wire form of a partner coverage area.
type MultiPolygonDTO struct {
	Type        string           `json:"type"`
	Coordinates []domain.Polygon `json:"coordinates"`
}

// PointDTO is the wire form of a partner address.
type PointDTO struct {
	Type        string          `json:"type"`
	Coordinates domain.Position `json:"coordinates"`
}

// PartnerDTO is a partner record on the import topic.
type PartnerDTO struct {
	ID           string          `json:"id"`
	TradingName  string          `json:"tradingName"`
	OwnerName    string          `json:"ownerName"`
	Document     string          `json:"document"`
	CoverageArea MultiPolygonDTO `json:"coverageArea"`
	Address      PointDTO        `json:"address"`
}

// ToDomain converts PartnerDTO to domain.Partner
func ToDomain(dto PartnerDTO) domain.Partner {
	return domain.Partner{
		ID:           strings.TrimSpace(dto.ID),
		TradingName:  dto.TradingName,
		OwnerName:    dto.OwnerName,
		Document:     strings.TrimSpace(dto.Document),
		CoverageArea: domain.MultiPolygon{Type: dto.CoverageArea.Type, Coordinates: dto.CoverageArea.Coordinates},
		Address:      domain.Point{Type: dto.Address.Type, Coordinates: dto.Address.Coordinates},
	}
}

// decodePartner parses a message value. Every error it returns is permanent.
func decodePartner(value []byte) (domain.Partner, error) {
	dec := json.NewDecoder(bytes.NewReader(value))
	dec.DisallowUnknownFields()

	var dto PartnerDTO
	if err := dec.Decode(&dto); err != nil {
		return domain.Partner{}, Permanent(fmt.Errorf("bad json: %w", err))
	}
	p := ToDomain(dto)
	if p.ID == "" {
		return domain.Partner{}, Permanent(errors.New("empty id"))
	}
	return p, nil
}
