package domain

// Partner is a registered delivery partner.
type Partner struct {
	ID           string
	TradingName  string
	OwnerName    string
	Document     string
	CoverageArea MultiPolygon
	Address      Point
}

// Clone returns a deep copy so callers cannot alias stored geometry.
func (p Partner) Clone() Partner {
	out := p
	out.CoverageArea = p.CoverageArea.Clone()
	out.Address = Point{Type: p.Address.Type, Coordinates: p.Address.Coordinates.Clone()}
	return out
}
