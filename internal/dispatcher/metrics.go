package dispatcher

import (
	"slices"
	"sync"
	"time"
)

// Metrics collects per-action fire statistics. It is read from tooling
// goroutines, so access is locked even though firing happens on the main
// loop.
type Metrics struct {
	mu sync.RWMutex

	// Per-action metrics
	actionMetrics map[string]*ActionMetrics

	// Global counters
	totalFires  uint64
	totalPanics uint64

	// Timing
	totalDuration time.Duration
}

// ActionMetrics holds metrics for a specific action.
type ActionMetrics struct {
	Name          string
	FireCount     uint64
	PanicCount    uint64
	TotalDuration time.Duration
	MinDuration   time.Duration
	MaxDuration   time.Duration
	LastFired     time.Time
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		actionMetrics: make(map[string]*ActionMetrics),
	}
}

// RecordFire records one handler invocation and how long it took.
func (m *Metrics) RecordFire(actionName string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalFires++
	m.totalDuration += duration

	am := m.actionMetrics[actionName]
	if am == nil {
		am = &ActionMetrics{
			Name:        actionName,
			MinDuration: duration,
			MaxDuration: duration,
		}
		m.actionMetrics[actionName] = am
	}

	am.FireCount++
	am.TotalDuration += duration
	am.LastFired = time.Now()

	if duration < am.MinDuration {
		am.MinDuration = duration
	}
	if duration > am.MaxDuration {
		am.MaxDuration = duration
	}
}

// RecordPanic records a recovered handler panic.
func (m *Metrics) RecordPanic(actionName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.totalPanics++

	if am := m.actionMetrics[actionName]; am != nil {
		am.PanicCount++
	}
}

// TotalFires returns the total number of handler invocations.
func (m *Metrics) TotalFires() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalFires
}

// TotalPanics returns the total number of panics recovered.
func (m *Metrics) TotalPanics() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.totalPanics
}

// ActionStats returns a copy of the metrics for one action, or nil if it
// has never fired.
func (m *Metrics) ActionStats(actionName string) *ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	am := m.actionMetrics[actionName]
	if am == nil {
		return nil
	}
	c := *am
	return &c
}

// TopActions returns the n most fired actions, most fired first. Ties are
// ordered by name.
func (m *Metrics) TopActions(n int) []*ActionMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	actions := make([]*ActionMetrics, 0, len(m.actionMetrics))
	for _, am := range m.actionMetrics {
		c := *am
		actions = append(actions, &c)
	}

	slices.SortFunc(actions, func(a, b *ActionMetrics) int {
		switch {
		case a.FireCount > b.FireCount:
			return -1
		case a.FireCount < b.FireCount:
			return 1
		}
		if a.Name < b.Name {
			return -1
		}
		if a.Name > b.Name {
			return 1
		}
		return 0
	})

	if n > len(actions) {
		n = len(actions)
	}
	return actions[:n]
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.actionMetrics = make(map[string]*ActionMetrics)
	m.totalFires = 0
	m.totalPanics = 0
	m.totalDuration = 0
}

// MetricsSnapshot is a point-in-time view of the dispatcher metrics.
type MetricsSnapshot struct {
	TotalFires      uint64
	TotalPanics     uint64
	TotalDuration   time.Duration
	AverageDuration time.Duration
	ActionCount     int
	Timestamp       time.Time
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snapshot := MetricsSnapshot{
		TotalFires:    m.totalFires,
		TotalPanics:   m.totalPanics,
		TotalDuration: m.totalDuration,
		ActionCount:   len(m.actionMetrics),
		Timestamp:     time.Now(),
	}
	if m.totalFires > 0 {
		snapshot.AverageDuration = m.totalDuration / time.Duration(m.totalFires)
	}
	return snapshot
}

// AverageDuration returns the average handler duration for the action.
func (am *ActionMetrics) AverageDuration() time.Duration {
	if am.FireCount == 0 {
		return 0
	}
	return am.TotalDuration / time.Duration(am.FireCount)
}
