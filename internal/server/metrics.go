package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

//nolint:gochecknoglobals
var HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "gift_ledger",
	Name:      "http_request_duration_seconds",
	Help:      "Duration of HTTP requests by route, method and status.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "method", "status"})
