// Copyright (c) 2026 Reignline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package metrics owns the Prometheus collectors of the server.

Every collector is registered on a private registry rather than the global one,
so tests can build as many registries as they like.

Categories:

  - HTTP: request counts, latency and in-flight gauge per route pattern.
  - Layout: pass counts, duration and scene size.
  - Cache: scene cache hits and misses per backend.
  - Dataset: load duration and record counts.
*/
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "reignline"

// Registry holds all metrics for the application.
type Registry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Layout Metrics
	LayoutPassesTotal   *prometheus.CounterVec
	LayoutPassDuration  prometheus.Histogram
	LayoutPeopleDrawn   prometheus.Histogram
	LayoutConnectors    prometheus.Histogram
	LayoutCommandsTotal *prometheus.CounterVec

	// Cache Metrics
	SceneCacheTotal *prometheus.CounterVec

	// Dataset Metrics
	DatasetLoadDuration *prometheus.HistogramVec
	DatasetRecords      *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with every collector initialised, plus the Go runtime collectors.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r.initHTTPMetrics()
	r.initLayoutMetrics()
	r.initStoreMetrics()
	return r
}

func (r *Registry) initHTTPMetrics() {
	r.HTTPRequestsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	r.HTTPRequestDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	r.HTTPRequestsInFlight = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
}

func (r *Registry) initLayoutMetrics() {
	r.LayoutPassesTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_passes_total",
			Help:      "Layout passes by outcome",
		},
		[]string{"outcome"},
	)

	r.LayoutPassDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_pass_duration_seconds",
			Help:      "Time spent computing one scene",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	r.LayoutPeopleDrawn = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_people_drawn",
			Help:      "Visible person nodes per scene",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		},
	)

	r.LayoutConnectors = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "layout_connectors",
			Help:      "Routed connectors per scene",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 7),
		},
	)

	r.LayoutCommandsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "layout_commands_total",
			Help:      "Record commands (move, hide, role, visibility, family) by name and outcome",
		},
		[]string{"command", "outcome"},
	)
}

func (r *Registry) initStoreMetrics() {
	r.SceneCacheTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scene_cache_requests_total",
			Help:      "Scene cache lookups by backend and result",
		},
		[]string{"backend", "result"},
	)

	r.DatasetLoadDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dataset_load_duration_seconds",
			Help:      "Time spent loading the dataset from its source",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	r.DatasetRecords = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dataset_records",
			Help:      "Records in the last loaded dataset by kind",
		},
		[]string{"kind"},
	)
}

// # Recorders

// ObserveHTTP records one finished request against its route pattern.
func (r *Registry) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	r.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveLayout records one layout pass. A failed pass only increments the error counter.
func (r *Registry) ObserveLayout(elapsed time.Duration, people, connectors int, err error) {
	if err != nil {
		r.LayoutPassesTotal.WithLabelValues("error").Inc()
		return
	}
	r.LayoutPassesTotal.WithLabelValues("ok").Inc()
	r.LayoutPassDuration.Observe(elapsed.Seconds())
	r.LayoutPeopleDrawn.Observe(float64(people))
	r.LayoutConnectors.Observe(float64(connectors))
}

// ObserveCommand records one record command.
func (r *Registry) ObserveCommand(command string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.LayoutCommandsTotal.WithLabelValues(command, outcome).Inc()
}

// ObserveCache records one scene cache lookup.
func (r *Registry) ObserveCache(backend string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.SceneCacheTotal.WithLabelValues(backend, result).Inc()
}

// ObserveDataset records a dataset load and the record counts it produced.
func (r *Registry) ObserveDataset(source string, elapsed time.Duration, counts map[string]int) {
	r.DatasetLoadDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	for kind, n := range counts {
		r.DatasetRecords.WithLabelValues(kind).Set(float64(n))
	}
}

// Handler exposes the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Gatherer exposes the underlying registry for tests and push gateways.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}
