package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	eventCreated     = "created"
	eventRejected    = "rejected"
	eventCompleted   = "completed"
	eventCancelled   = "cancelled"
	eventApplied     = "applied"
	eventRepublished = "republished"
)

//nolint:gochecknoglobals
var giftEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gift_ledger",
	Name:      "gifts_total",
	Help:      "Gift lifecycle events processed by the ledger.",
}, []string{"event"})

//nolint:gochecknoglobals
var listCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "gift_ledger",
	Name:      "gift_list_cache_lookups_total",
	Help:      "Gift-by-post list cache lookups by result.",
}, []string{"result"})
