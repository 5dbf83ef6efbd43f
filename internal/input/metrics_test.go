package input

import (
	"testing"
	"time"
)

func TestMetricsRecordFrame(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(2*time.Millisecond, 3)
	m.RecordFrame(4*time.Millisecond, 1)
	m.RecordDroppedEvent()

	snap := m.Snapshot()
	if snap.FramesTotal != 2 {
		t.Errorf("FramesTotal = %d, want 2", snap.FramesTotal)
	}
	if snap.FiredTotal != 4 {
		t.Errorf("FiredTotal = %d, want 4", snap.FiredTotal)
	}
	if snap.DroppedEvents != 1 {
		t.Errorf("DroppedEvents = %d, want 1", snap.DroppedEvents)
	}
	if snap.AvgFrameLatency != 3*time.Millisecond {
		t.Errorf("AvgFrameLatency = %v, want 3ms", snap.AvgFrameLatency)
	}
	if snap.PeakFrameLatency != 4*time.Millisecond {
		t.Errorf("PeakFrameLatency = %v, want 4ms", snap.PeakFrameLatency)
	}
	if snap.P99FrameLatency != 4*time.Millisecond {
		t.Errorf("P99FrameLatency = %v, want 4ms", snap.P99FrameLatency)
	}
}

func TestMetricsReset(t *testing.T) {
	m := NewMetrics()
	m.RecordKeyEvent()
	m.RecordFrame(time.Millisecond, 1)
	m.Reset()

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 0 || snap.FramesTotal != 0 || snap.PeakFrameLatency != 0 {
		t.Errorf("Reset() left %+v", snap)
	}
}
