// Package fixture builds partner records shared by tests across packages.
package fixture

import "service-partner/internal/domain"

// Box returns a closed counter-clockwise rectangular ring.
func Box(minLon, minLat, maxLon, maxLat float64) domain.Ring {
	return domain.Ring{
		domain.NewPosition(minLon, minLat),
		domain.NewPosition(maxLon, minLat),
		domain.NewPosition(maxLon, maxLat),
		domain.NewPosition(minLon, maxLat),
		domain.NewPosition(minLon, minLat),
	}
}

// Partner builds a partner with a single-polygon coverage area.
func Partner(id, document string, area domain.Polygon, lon, lat float64) domain.Partner {
	return domain.Partner{
		ID:           id,
		TradingName:  "Adega " + id,
		OwnerName:    "Owner " + id,
		Document:     document,
		CoverageArea: domain.NewMultiPolygon(area),
		Address:      domain.NewPoint(lon, lat),
	}
}

// Points used by the lookup scenarios.
var (
	RioPoint       = domain.NewPosition(-43.3073990, -22.9964813)
	AcrePoint      = domain.NewPosition(-70.3540372, -8.1750448)
	SaoPauloPoint  = domain.NewPosition(-46.6990754, -23.6206199)
	OutOfRangePt   = domain.NewPosition(-181.3, -91.99)
	DonutHolePoint = domain.NewPosition(-49.25, -25.45)
	DonutRimPoint  = domain.NewPosition(-49.35, -25.35)
)

// Rio covers RioPoint and nothing else in the scenario set.
func Rio() domain.Partner {
	return Partner("1", "1432132123891/0001",
		domain.Polygon{Box(-43.40, -23.05, -43.20, -22.90)}, -43.297337, -23.013538)
}

// SaoPaulo returns three partners whose areas all cover SaoPauloPoint;
// partner "29" has the closest address.
func SaoPaulo() []domain.Partner {
	return []domain.Partner{
		Partner("28", "04666182390", domain.Polygon{Box(-46.80, -23.70, -46.60, -23.50)}, -46.6500, -23.5800),
		Partner("29", "04666182391", domain.Polygon{Box(-46.75, -23.68, -46.65, -23.55)}, -46.6960, -23.6190),
		Partner("30", "04666182392", domain.Polygon{Box(-46.90, -23.80, -46.55, -23.40)}, -46.7900, -23.7400),
	}
}

// Donut has a hole around DonutHolePoint; DonutRimPoint sits between the rings.
func Donut() domain.Partner {
	return Partner("77", "77777777777", domain.Polygon{
		Box(-49.40, -25.50, -49.20, -25.30),
		Box(-49.30, -25.48, -49.22, -25.40),
	}, -49.38, -25.32)
}

// Scenario returns every fixture partner.
func Scenario() []domain.Partner {
	out := []domain.Partner{Rio(), Donut()}
	return append(out, SaoPaulo()...)
}
