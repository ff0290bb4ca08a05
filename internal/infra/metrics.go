package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	messagesReceived atomic.Uint64
	messagesDropped  atomic.Uint64
	decodeErrors     atomic.Uint64
	snapshotsApplied atomic.Uint64
	recomputes       atomic.Uint64
	errorsTotal      atomic.Uint64

	// Recompute latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64

	// Gauges
	connected atomic.Int32 // 1 = feed connected, 0 = disconnected
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordMessageReceived counts one raw feed message.
func (m *Metrics) RecordMessageReceived() {
	m.messagesReceived.Add(1)
}

// RecordMessageDropped counts a message dropped on a full inbox.
func (m *Metrics) RecordMessageDropped() {
	m.messagesDropped.Add(1)
}

// RecordDecodeError counts a message dropped by validation.
func (m *Metrics) RecordDecodeError() {
	m.decodeErrors.Add(1)
}

// RecordSnapshotApplied counts a snapshot applied to the store.
func (m *Metrics) RecordSnapshotApplied() {
	m.snapshotsApplied.Add(1)
}

// RecordRecompute records one estimate recompute with its latency.
func (m *Metrics) RecordRecompute(latencyNs int64) {
	m.recomputes.Add(1)
	m.latencySumNs.Add(latencyNs)
	m.latencyCount.Add(1)
}

// RecordError records an error occurrence.
func (m *Metrics) RecordError() {
	m.errorsTotal.Add(1)
}

// SetConnected sets the feed connection gauge.
func (m *Metrics) SetConnected(up bool) {
	if up {
		m.connected.Store(1)
	} else {
		m.connected.Store(0)
	}
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	MessagesReceived uint64
	MessagesDropped  uint64
	DecodeErrors     uint64
	SnapshotsApplied uint64
	Recomputes       uint64
	ErrorsTotal      uint64
	AvgLatencyNs     int64
	Connected        bool
	Timestamp        time.Time
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		MessagesReceived: m.messagesReceived.Load(),
		MessagesDropped:  m.messagesDropped.Load(),
		DecodeErrors:     m.decodeErrors.Load(),
		SnapshotsApplied: m.snapshotsApplied.Load(),
		Recomputes:       m.recomputes.Load(),
		ErrorsTotal:      m.errorsTotal.Load(),
		AvgLatencyNs:     avgLatency,
		Connected:        m.connected.Load() == 1,
		Timestamp:        time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.messagesReceived.Store(0)
	m.messagesDropped.Store(0)
	m.decodeErrors.Store(0)
	m.snapshotsApplied.Store(0)
	m.recomputes.Store(0)
	m.errorsTotal.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
	m.connected.Store(0)
}
