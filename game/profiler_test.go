package game

import (
	"testing"
	"time"
)

func TestFrameMonitor(t *testing.T) {
	m := NewFrameMonitor(500 * time.Millisecond)
	start := time.Unix(1000, 0)

	// 30 ticks over half a second
	var tps float64
	var closed bool
	for i := 0; i <= 30; i++ {
		tps, closed = m.Tick(start.Add(time.Duration(i) * 500 * time.Millisecond / 30))
		if i < 30 && closed {
			t.Fatalf("window closed early at tick %d", i)
		}
	}

	if !closed {
		t.Fatal("expected the window to close")
	}
	if tps != 62 {
		t.Errorf("expected 62 TPS, got %f", tps)
	}
	if m.TPS() != tps {
		t.Errorf("expected TPS() to report the last window, got %f", m.TPS())
	}

	// A new window starts from the closing tick
	if _, closed := m.Tick(start.Add(600 * time.Millisecond)); closed {
		t.Error("expected a fresh window after closing")
	}
}

func TestProfilerCooldown(t *testing.T) {
	p := NewProfiler(t.TempDir())
	p.isProfiling = true

	if err := p.CaptureProfile("busy"); err == nil {
		t.Error("expected an error while a capture is running")
	}

	p.isProfiling = false
	p.lastCaptureTime = time.Now()
	if err := p.CaptureProfile("cooldown"); err == nil {
		t.Error("expected an error during cooldown")
	}
	if p.IsProfiling() {
		t.Error("expected no capture to start")
	}
}
