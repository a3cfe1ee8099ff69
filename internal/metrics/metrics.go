// Package metrics exposes the daemon's Prometheus collectors on a private
// registry. A nil *Metrics is valid and records nothing, so components can
// be constructed without metrics in tests.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "clipmark"

// Metrics holds every collector the daemon records.
type Metrics struct {
	registry *prometheus.Registry

	Captures            prometheus.Counter
	ClipboardReadErrors prometheus.Counter
	MenuRebuilds        prometheus.Counter
	PersistFailures     *prometheus.CounterVec
	Commands            *prometheus.CounterVec
	HistorySize         prometheus.Gauge
	BookmarkCount       prometheus.Gauge
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Captures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clipboard_captures_total",
			Help:      "Distinct clipboard values recorded into history.",
		}),
		ClipboardReadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clipboard_read_errors_total",
			Help:      "Clipboard reads that failed and were skipped.",
		}),
		MenuRebuilds: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "menu_rebuilds_total",
			Help:      "Menu models built and published.",
		}),
		PersistFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persist_failures_total",
			Help:      "Failed document writes, by document.",
		}, []string{"document"}),
		Commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands handled, by command and result.",
		}, []string{"command", "result"}),
		HistorySize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "history_items",
			Help:      "Entries currently held in the clipboard history.",
		}),
		BookmarkCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bookmarks",
			Help:      "Bookmarks currently stored.",
		}),
	}
	m.registry.MustRegister(
		m.Captures,
		m.ClipboardReadErrors,
		m.MenuRebuilds,
		m.PersistFailures,
		m.Commands,
		m.HistorySize,
		m.BookmarkCount,
	)
	return m
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler returns an HTTP handler serving the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Capture counts one clipboard change recorded into history.
func (m *Metrics) Capture() {
	if m != nil {
		m.Captures.Inc()
	}
}

// ReadError counts a failed clipboard read.
func (m *Metrics) ReadError() {
	if m != nil {
		m.ClipboardReadErrors.Inc()
	}
}

// Rebuild counts a menu rebuild and sets the size gauges from its inputs.
func (m *Metrics) Rebuild(bookmarks, history int) {
	if m == nil {
		return
	}
	m.MenuRebuilds.Inc()
	m.BookmarkCount.Set(float64(bookmarks))
	m.HistorySize.Set(float64(history))
}

// PersistFailure counts a failed save of document ("config" or "bookmarks").
func (m *Metrics) PersistFailure(document string) {
	if m != nil {
		m.PersistFailures.WithLabelValues(document).Inc()
	}
}

// Command records one handled command. err == nil counts as "ok".
func (m *Metrics) Command(name string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.Commands.WithLabelValues(name, result).Inc()
}
