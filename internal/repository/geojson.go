package repository

import (
	"encoding/json"
	"fmt"

	"service-partner/internal/domain"
)

type multiPolygonJSON struct {
	Type        string           `json:"type"`
	Coordinates []domain.Polygon `json:"coordinates"`
}

type pointJSON struct {
	Type        string          `json:"type"`
	Coordinates domain.Position `json:"coordinates"`
}

func encodeMultiPolygon(m domain.MultiPolygon) (string, error) {
	b, err := json.Marshal(multiPolygonJSON{Type: m.Type, Coordinates: m.Coordinates})
	if err != nil {
		return "", fmt.Errorf("encode coverage area: %w", err)
	}
	return string(b), nil
}

func encodePoint(p domain.Point) (string, error) {
	b, err := json.Marshal(pointJSON{Type: p.Type, Coordinates: p.Coordinates})
	if err != nil {
		return "", fmt.Errorf("encode address: %w", err)
	}
	return string(b), nil
}

func decodeMultiPolygon(raw string) (domain.MultiPolygon, error) {
	var v multiPolygonJSON
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return domain.MultiPolygon{}, fmt.Errorf("decode coverage area: %w", err)
	}
	return domain.MultiPolygon{Type: v.Type, Coordinates: v.Coordinates}, nil
}

func decodePoint(raw string) (domain.Point, error) {
	var v pointJSON
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return domain.Point{}, fmt.Errorf("decode address: %w", err)
	}
	return domain.Point{Type: v.Type, Coordinates: v.Coordinates}, nil
}
