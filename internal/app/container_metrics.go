package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	mw "service-partner/internal/http/middleware"
	"service-partner/internal/metrics"
)

type metricsOut struct {
	dig.Out

	Gatherer               prometheus.Gatherer
	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	HTTP                   *mw.HTTPMetrics
	Lookups                *metrics.NearestLookups
	Imports                *metrics.PartnerImports
}

// provideMetrics registers every collector on a fresh registry, so each
// container exposes only its own series.
func provideMetrics() (metricsOut, error) {
	return provideMetricsOn(prometheus.NewRegistry())
}

type registry interface {
	prometheus.Registerer
	prometheus.Gatherer
}

func provideMetricsOn(reg registry) (metricsOut, error) {
	out := metricsOut{
		Gatherer:               reg,
		RateLimitExceededTotal: metrics.NewRateLimitExceededTotal(),
		HTTP:                   mw.NewHTTPMetrics(),
		Lookups:                metrics.NewNearestLookups(),
		Imports:                metrics.NewPartnerImports(),
	}

	groups := []struct {
		name       string
		collectors []prometheus.Collector
	}{
		{"runtime", []prometheus.Collector{
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		}},
		{"rate_limit_exceeded_total", []prometheus.Collector{out.RateLimitExceededTotal}},
		{"http", out.HTTP.Collectors()},
		{"nearest lookups", out.Lookups.Collectors()},
		{"partner imports", out.Imports.Collectors()},
	}
	for _, g := range groups {
		for _, c := range g.collectors {
			if err := reg.Register(c); err != nil {
				return metricsOut{}, fmt.Errorf("register %s: %w", g.name, err)
			}
		}
	}
	return out, nil
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}
