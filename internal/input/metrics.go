package input

import (
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks input volume and per-frame dispatch cost. Counters are
// atomic because backends record dropped events from their own goroutine.
type Metrics struct {
	// Event counters
	keyEventsTotal   atomic.Uint64
	mouseEventsTotal atomic.Uint64
	framesTotal      atomic.Uint64
	firedTotal       atomic.Uint64
	droppedEvents    atomic.Uint64

	// Frame latency ring buffer
	mu                sync.Mutex
	frameLatencies    []time.Duration
	maxLatencySamples int
	latencyIdx        int

	peakFrameLatency atomic.Int64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{
		frameLatencies:    make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
}

// RecordKeyEvent counts one keyboard transition.
func (m *Metrics) RecordKeyEvent() {
	m.keyEventsTotal.Add(1)
}

// RecordMouseEvent counts one mouse transition.
func (m *Metrics) RecordMouseEvent() {
	m.mouseEventsTotal.Add(1)
}

// RecordDroppedEvent records an event lost because the backend queue was full.
func (m *Metrics) RecordDroppedEvent() {
	m.droppedEvents.Add(1)
}

// RecordFrame records one dispatcher frame, how long it took and how many
// handlers fired.
func (m *Metrics) RecordFrame(latency time.Duration, fired int) {
	m.framesTotal.Add(1)
	m.firedTotal.Add(uint64(fired))

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakFrameLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakFrameLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.frameLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	KeyEventsTotal   uint64
	MouseEventsTotal uint64
	FramesTotal      uint64
	FiredTotal       uint64
	DroppedEvents    uint64

	AvgFrameLatency  time.Duration
	P99FrameLatency  time.Duration
	PeakFrameLatency time.Duration

	Uptime time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.Lock()
	latencies := make([]time.Duration, len(m.frameLatencies))
	copy(latencies, m.frameLatencies)
	m.mu.Unlock()

	snap := MetricsSnapshot{
		KeyEventsTotal:   m.keyEventsTotal.Load(),
		MouseEventsTotal: m.mouseEventsTotal.Load(),
		FramesTotal:      m.framesTotal.Load(),
		FiredTotal:       m.firedTotal.Load(),
		DroppedEvents:    m.droppedEvents.Load(),
		PeakFrameLatency: time.Duration(m.peakFrameLatency.Load()),
		Uptime:           time.Since(m.startTime),
	}
	snap.AvgFrameLatency, snap.P99FrameLatency = latencyStats(latencies)
	return snap
}

// latencyStats computes average and p99 over the non-zero samples.
func latencyStats(latencies []time.Duration) (avg, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0
	}

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))

	slices.Sort(valid)
	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	return avg, valid[idx]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.keyEventsTotal.Store(0)
	m.mouseEventsTotal.Store(0)
	m.framesTotal.Store(0)
	m.firedTotal.Store(0)
	m.droppedEvents.Store(0)
	m.peakFrameLatency.Store(0)

	m.mu.Lock()
	m.frameLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}
