// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics defines the Prometheus collectors exported at /metrics.
package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the application collectors around one registry.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	CacheLookups     *prometheus.CounterVec
	ContentMutations *prometheus.CounterVec
	AICalls          *prometheus.CounterVec
	Backups          *prometheus.CounterVec
}

// New creates the collectors and registers them, plus the Go runtime and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_http_requests_total",
			Help: "HTTP requests by route pattern, method and status code.",
		}, []string{"route", "method", "code"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "folio_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_page_cache_lookups_total",
			Help: "Page cache lookups by tier and result.",
		}, []string{"tier", "result"}),
		ContentMutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_content_mutations_total",
			Help: "Content store mutations by entity, operation and result.",
		}, []string{"entity", "op", "result"}),
		AICalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_ai_calls_total",
			Help: "Generative AI calls by flow and result.",
		}, []string{"flow", "result"}),
		Backups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "folio_backups_total",
			Help: "Content backups by result (written, unchanged, failed).",
		}, []string{"result"}),
	}

	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.CacheLookups,
		m.ContentMutations,
		m.AICalls,
		m.Backups,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Mutation records the outcome of a content store mutation.
func (m *Metrics) Mutation(entity, op string, err error) {
	if m == nil {
		return
	}
	m.ContentMutations.WithLabelValues(entity, op, result(err)).Inc()
}

// AICall records the outcome of a generative AI flow.
func (m *Metrics) AICall(flow string, err error) {
	if m == nil {
		return
	}
	m.AICalls.WithLabelValues(flow, result(err)).Inc()
}

// CacheLookup records a page cache hit or miss for a tier ("l1", "l2").
func (m *Metrics) CacheLookup(tier string, hit bool) {
	if m == nil {
		return
	}
	r := "miss"
	if hit {
		r = "hit"
	}
	m.CacheLookups.WithLabelValues(tier, r).Inc()
}

// PageCacheEntries exports the local page cache size, read from size at
// scrape time. A second registration on the same registry is ignored.
func (m *Metrics) PageCacheEntries(size func() int) {
	if m == nil {
		return
	}
	g := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "folio_page_cache_local_entries",
		Help: "Pages held in the in-process cache tier.",
	}, func() float64 { return float64(size()) })
	if err := m.Registry.Register(g); err != nil {
		var are prometheus.AlreadyRegisteredError
		if !errors.As(err, &are) {
			panic(err)
		}
	}
}

// Backup records a backup run result.
func (m *Metrics) Backup(res string) {
	if m == nil {
		return
	}
	m.Backups.WithLabelValues(res).Inc()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
