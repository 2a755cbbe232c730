package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts decode outcomes. A nil *Metrics records nothing.
type Metrics struct {
	headers *prometheus.CounterVec
	errors  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		headers: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coaphdr",
				Subsystem: "decode",
				Name:      "headers_total",
				Help:      "Headers decoded successfully.",
			},
			[]string{"type", "class"},
		),
		errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "coaphdr",
				Subsystem: "decode",
				Name:      "errors_total",
				Help:      "Inputs that failed to decode.",
			},
			[]string{"reason"},
		),
	}
	for _, c := range []prometheus.Collector{m.headers, m.errors} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) RecordHeader(msgType, class string) {
	if m == nil {
		return
	}
	m.headers.WithLabelValues(msgType, class).Inc()
}

func (m *Metrics) RecordError(reason string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(reason).Inc()
}

// HeaderCounter exposes a single header series, mainly for tests.
func (m *Metrics) HeaderCounter(msgType, class string) prometheus.Counter {
	return m.headers.WithLabelValues(msgType, class)
}

func (m *Metrics) ErrorCounter(reason string) prometheus.Counter {
	return m.errors.WithLabelValues(reason)
}

// WriteTextfile writes every metric in g to path in the text exposition
// format, for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
