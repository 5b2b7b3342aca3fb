package observability

import (
	"github.com/danmuck/nbtarray/internal/protocol"
	"github.com/prometheus/client_golang/prometheus"
)

// CodecMetrics records array payload operations. It implements
// protocol.Recorder.
type CodecMetrics struct {
	arrays  *prometheus.CounterVec
	bytes   *prometheus.CounterVec
	lengths *prometheus.HistogramVec
}

func NewCodecMetrics() *CodecMetrics {
	return &CodecMetrics{
		arrays: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nbtarray",
				Subsystem: "codec",
				Name:      "arrays_total",
				Help:      "Array payloads processed, by operation, kind and result.",
			},
			[]string{"op", "kind", "result"},
		),
		bytes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nbtarray",
				Subsystem: "codec",
				Name:      "bytes_total",
				Help:      "Stream bytes moved by array payload operations.",
			},
			[]string{"op", "kind"},
		),
		lengths: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nbtarray",
				Subsystem: "codec",
				Name:      "array_length",
				Help:      "Element count of successfully processed arrays.",
				Buckets:   prometheus.ExponentialBuckets(1, 8, 9),
			},
			[]string{"op", "kind"},
		),
	}
}

// Register adds the collectors to reg.
func (m *CodecMetrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.arrays, m.bytes, m.lengths} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *CodecMetrics) ObserveArray(op string, kind protocol.Kind, length int, n int64, err error) {
	k := kind.String()
	m.arrays.WithLabelValues(op, k, protocol.ErrorCode(err)).Inc()
	if n > 0 {
		m.bytes.WithLabelValues(op, k).Add(float64(n))
	}
	if err == nil {
		m.lengths.WithLabelValues(op, k).Observe(float64(length))
	}
}

// Sample is one flattened counter value, used by the CLI summary.
type Sample struct {
	Name   string
	Labels map[string]string
	Value  float64
}

// Snapshot gathers counter samples from g.
func Snapshot(g prometheus.Gatherer) ([]Sample, error) {
	families, err := g.Gather()
	if err != nil {
		return nil, err
	}
	var out []Sample
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			c := m.GetCounter()
			if c == nil {
				continue
			}
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			out = append(out, Sample{Name: mf.GetName(), Labels: labels, Value: c.GetValue()})
		}
	}
	return out, nil
}
