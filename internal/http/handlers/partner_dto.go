package handlers

import (
	"bytes"
	"encoding/json"
	"errors"

	"service-partner/internal/domain"
)

// flexString accepts a JSON string or number and keeps its text.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return errors.New("expected string or number")
	}
	*s = flexString(n.String())
	return nil
}

// geometryRequest defers coordinate decoding until the type tag is known.
type geometryRequest struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

type createPartnerRequest struct {
	ID           *flexString      `json:"id"`
	TradingName  *string          `json:"tradingName"`
	OwnerName    *string          `json:"ownerName"`
	Document     *flexString      `json:"document"`
	CoverageArea *geometryRequest `json:"coverageArea"`
	Address      *geometryRequest `json:"address"`
}

type multiPolygonDTO struct {
	Type        string           `json:"type"`
	Coordinates []domain.Polygon `json:"coordinates"`
}

type pointDTO struct {
	Type        string          `json:"type"`
	Coordinates domain.Position `json:"coordinates"`
}

type partnerResponse struct {
	ID           string          `json:"id"`
	TradingName  string          `json:"tradingName"`
	OwnerName    string          `json:"ownerName"`
	Document     string          `json:"document"`
	CoverageArea multiPolygonDTO `json:"coverageArea"`
	Address      pointDTO        `json:"address"`
}
