package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeFound    = "found"
	OutcomeNotFound = "not_found"
)

type Manager struct {
	// counters
	CounterUsersRegistered *prometheus.CounterVec
	CounterInvalidRecords  prometheus.Counter
	CounterReports         *prometheus.CounterVec
	CounterReportCacheHits prometheus.Counter

	// gauges
	GaugeUsersOnTrack prometheus.Gauge

	gatherer prometheus.Gatherer
}

func NewTestManager() *Manager {
	return NewManager("weeklyfit", "test_tracker", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("weeklyfit", "test_tracker", reg), reg
}

// NewManager registers all tracker metrics on reg. When reg is also a
// prometheus.Gatherer, WriteTextfile can export it.
func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterUsersRegistered := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "users_registered",
		Help:      "The total number of registered users",
	}, []string{"on_track"})
	counterInvalidRecords := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "invalid_records",
		Help:      "The total number of rejected fitness records",
	})
	counterReports := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "reports",
		Help:      "The total number of requested user reports",
	}, []string{"outcome"})
	counterReportCacheHits := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "report_cache_hits",
		Help:      "Number of reports served from the report cache",
	})

	gaugeUsersOnTrack := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "users_on_track",
		Help:      "Current number of registered users that are on track",
	})

	gatherer, _ := reg.(prometheus.Gatherer)

	return &Manager{
		CounterUsersRegistered: counterUsersRegistered,
		CounterInvalidRecords:  counterInvalidRecords,
		CounterReports:         counterReports,
		CounterReportCacheHits: counterReportCacheHits,
		GaugeUsersOnTrack:      gaugeUsersOnTrack,
		gatherer:               gatherer,
	}
}

// WriteTextfile dumps the gathered metrics in the node exporter textfile format.
func (m *Manager) WriteTextfile(path string) error {
	if m.gatherer == nil {
		return errors.New("metrics registerer cannot be gathered")
	}
	if err := prometheus.WriteToTextfile(path, m.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
