package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// watchdogMetrics is a one-shot snapshot of a run, written in the
// node_exporter textfile collector format so a scheduled job still gets
// a scrapeable history.
type watchdogMetrics struct {
	registry *prometheus.Registry

	channels        prometheus.Gauge
	correctable     prometheus.Gauge
	uncorrectable   prometheus.Gauge
	rebootTriggered prometheus.Gauge
}

func newWatchdogMetrics(extra ...prometheus.Collector) *watchdogMetrics {
	m := &watchdogMetrics{
		registry: prometheus.NewRegistry(),
		channels: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "locked_qam256_channels",
			Help:      "Downstream channels that are Locked and running QAM256.",
		}),
		correctable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "correctable_codewords",
			Help:      "Correctable codeword errors summed over matching channels.",
		}),
		uncorrectable: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "uncorrectable_codewords",
			Help:      "Uncorrectable codeword errors summed over matching channels.",
		}),
		rebootTriggered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reboot_triggered",
			Help:      "Whether this run decided to reboot the modem.",
		}),
	}
	m.registry.MustRegister(m.channels, m.correctable, m.uncorrectable, m.rebootTriggered)
	for _, c := range extra {
		m.registry.MustRegister(c)
	}
	return m
}

func (m *watchdogMetrics) record(t ErrorTally, triggered bool) {
	m.channels.Set(float64(t.Channels))
	m.correctable.Set(float64(t.Correctable))
	m.uncorrectable.Set(float64(t.Uncorrectable))
	if triggered {
		m.rebootTriggered.Set(1)
	}
}

// writeTextfile writes the registry through a temp file and rename so
// the collector never reads a partial snapshot.
func (m *watchdogMetrics) writeTextfile(path string) error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(f, mf); err != nil {
			f.Close()
			os.Remove(tmp)
			return err
		}
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
