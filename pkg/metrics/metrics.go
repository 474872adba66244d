package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint", "status"},
	)
	OmnicasaRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omnicasa_requests_total",
			Help: "Total number of outbound Omnicasa API calls",
		},
		[]string{"endpoint", "outcome"},
	)
	OmnicasaRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "omnicasa_request_duration_seconds",
			Help:    "Outbound Omnicasa API call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	CacheHitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omnicasa_cache_hits_total",
			Help: "Total number of response cache hits",
		},
		[]string{"endpoint"},
	)
	CacheMissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "omnicasa_cache_misses_total",
			Help: "Total number of response cache misses",
		},
		[]string{"endpoint"},
	)
	CacheOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cache_operation_duration_seconds",
			Help:    "Cache store operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"store", "operation"},
	)
	CacheErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Total number of failed cache store operations",
		},
		[]string{"store", "operation"},
	)
)

var registerOnce sync.Once

// Init registers every collector with the default registry. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(OmnicasaRequestsTotal)
		prometheus.MustRegister(OmnicasaRequestDuration)
		prometheus.MustRegister(CacheHitsTotal)
		prometheus.MustRegister(CacheMissesTotal)
		prometheus.MustRegister(CacheOperationDuration)
		prometheus.MustRegister(CacheErrorsTotal)
	})
}
