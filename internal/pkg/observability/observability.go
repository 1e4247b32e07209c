package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ServiceName = "daylogbackend"
)

var (
	WeatherCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "weather", "cache_lookups"),
		Help: "Weather cache lookups partitioned by outcome",
	}, []string{"outcome"})
	SourceFetchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: prometheus.BuildFQName(ServiceName, "day", "source_fetch_failures"),
		Help: "Data source fetch failures absorbed during day aggregation",
	}, []string{"source"})
	DayAggregateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    prometheus.BuildFQName(ServiceName, "day", "aggregate_duration_seconds"),
		Help:    "Duration of a full day aggregation in seconds",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
	}, []string{})
)
