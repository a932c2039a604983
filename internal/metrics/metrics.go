// Package metrics exposes Prometheus instruments for the plays registry.
// Labels are kept to fixed, low-cardinality values; play ids never appear.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PlaysCreatedTotal counts successful creations.
	PlaysCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "plays_created_total",
		Help: "Total number of plays created.",
	})

	// PlaysDeletedTotal counts delete calls by outcome (deleted/not_found).
	PlaysDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plays_deleted_total",
		Help: "Total number of play delete requests, by outcome.",
	}, []string{"outcome"})

	// PlaysLookupsTotal counts fetch-by-id calls by outcome (found/not_found).
	PlaysLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plays_lookups_total",
		Help: "Total number of play lookups, by outcome.",
	}, []string{"outcome"})

	// PlaysListTotal counts list calls by outcome (ok/invalid_cursor) and
	// whether a title prefix was supplied.
	PlaysListTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plays_list_total",
		Help: "Total number of play list requests, by outcome and filter use.",
	}, []string{"outcome", "filtered"})

	// PlaysStored tracks the current store size.
	PlaysStored = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "plays_stored",
		Help: "Current number of plays held by the store.",
	})

	// ProbeTasksTotal counts processed probe tasks by result.
	ProbeTasksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "plays_probe_tasks_total",
		Help: "Total number of video probe tasks processed, by result.",
	}, []string{"result"})
)

func RecordDelete(deleted bool) {
	if deleted {
		PlaysDeletedTotal.WithLabelValues("deleted").Inc()
		return
	}
	PlaysDeletedTotal.WithLabelValues("not_found").Inc()
}

func RecordLookup(found bool) {
	if found {
		PlaysLookupsTotal.WithLabelValues("found").Inc()
		return
	}
	PlaysLookupsTotal.WithLabelValues("not_found").Inc()
}

func RecordList(outcome string, filtered bool) {
	label := "false"
	if filtered {
		label = "true"
	}
	PlaysListTotal.WithLabelValues(outcome, label).Inc()
}
