package dispatch

import (
	"sync/atomic"
	"time"
)

// Metrics counts dispatch activity.
type Metrics struct {
	dispatches atomic.Uint64
	failures   atomic.Uint64
	retries    atomic.Uint64
	bytes      atomic.Uint64
	totalNs    atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

func (m *Metrics) recordDispatch(written int, d time.Duration, failed bool) {
	m.dispatches.Add(1)
	m.bytes.Add(uint64(written))
	m.totalNs.Add(d.Nanoseconds())
	if failed {
		m.failures.Add(1)
	}
}

func (m *Metrics) recordRetry() {
	m.retries.Add(1)
}

// MetricsSnapshot is a point-in-time copy of Metrics.
type MetricsSnapshot struct {
	Dispatches  uint64
	Failures    uint64
	Retries     uint64
	Bytes       uint64
	AvgDispatch time.Duration
	Uptime      time.Duration
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	s := MetricsSnapshot{
		Dispatches: m.dispatches.Load(),
		Failures:   m.failures.Load(),
		Retries:    m.retries.Load(),
		Bytes:      m.bytes.Load(),
		Uptime:     time.Since(m.startTime),
	}
	if s.Dispatches > 0 {
		s.AvgDispatch = time.Duration(m.totalNs.Load() / int64(s.Dispatches))
	}
	return s
}
