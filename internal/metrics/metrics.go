package metrics

import "github.com/prometheus/client_golang/prometheus"

// Nearest lookup outcomes.
const (
	ResultMatch   = "match"
	ResultNoMatch = "no_match"
	ResultInvalid = "invalid"
	ResultError   = "error"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NearestLookups tracks nearest-partner resolution.
type NearestLookups struct {
	outcomes   *prometheus.CounterVec
	candidates prometheus.Histogram
}

// NewNearestLookups creates unregistered nearest lookup collectors.
func NewNearestLookups() *NearestLookups {
	return &NearestLookups{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "partner_nearest_lookups_total",
			Help: "Nearest partner lookups by result",
		}, []string{"result"}),
		candidates: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "partner_nearest_candidates",
			Help:    "Number of partners whose coverage area contained the query point",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 25, 50},
		}),
	}
}

// Observe records one lookup. Safe on a nil receiver.
func (m *NearestLookups) Observe(result string, candidates int) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(result).Inc()
	if result == ResultMatch || result == ResultNoMatch {
		m.candidates.Observe(float64(candidates))
	}
}

// Outcome returns the counter for a single result label.
func (m *NearestLookups) Outcome(result string) prometheus.Counter {
	return m.outcomes.WithLabelValues(result)
}

// Collectors lists the collectors to register.
func (m *NearestLookups) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.outcomes, m.candidates}
}

// PartnerImports tracks partner records consumed from the import topic.
type PartnerImports struct {
	results *prometheus.CounterVec
}

// Import outcomes.
const (
	ImportCreated   = "created"
	ImportDuplicate = "duplicate"
	ImportRejected  = "rejected"
	ImportFailed    = "failed"
)

// NewPartnerImports creates unregistered import collectors.
func NewPartnerImports() *PartnerImports {
	return &PartnerImports{
		results: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "partner_imports_total",
			Help: "Partner import messages by result",
		}, []string{"result"}),
	}
}

// Inc records one import result. Safe on a nil receiver.
func (m *PartnerImports) Inc(result string) {
	if m == nil {
		return
	}
	m.results.WithLabelValues(result).Inc()
}

// Result returns the counter for a single result label.
func (m *PartnerImports) Result(result string) prometheus.Counter {
	return m.results.WithLabelValues(result)
}

// Collectors lists the collectors to register.
func (m *PartnerImports) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.results}
}
