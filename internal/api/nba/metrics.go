package nba

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "nbastats_api_requests_total",
		Help: "Total number of stats.nba.com requests by endpoint and status code.",
	}, []string{"endpoint", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nbastats_api_request_duration_seconds",
		Help:    "Latency of stats.nba.com requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)
