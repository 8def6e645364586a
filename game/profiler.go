package game

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"
)

// FrameMonitor measures ticks per second over fixed windows
type FrameMonitor struct {
	window      time.Duration
	windowStart time.Time
	ticks       int
	tps         float64
}

// NewFrameMonitor creates a monitor that reports once per window
func NewFrameMonitor(window time.Duration) *FrameMonitor {
	return &FrameMonitor{window: window}
}

// Tick records one tick at the given time.
// It returns the measured rate and true when a window has just closed.
func (m *FrameMonitor) Tick(now time.Time) (float64, bool) {
	if m.windowStart.IsZero() {
		m.windowStart = now
	}
	m.ticks++

	elapsed := now.Sub(m.windowStart)
	if elapsed < m.window {
		return m.tps, false
	}

	m.tps = float64(m.ticks) / elapsed.Seconds()
	m.ticks = 0
	m.windowStart = now
	return m.tps, true
}

// TPS returns the rate measured over the last closed window
func (m *FrameMonitor) TPS() float64 {
	return m.tps
}

// Profiler captures CPU profiles and traces when the tick rate drops
type Profiler struct {
	mu              sync.Mutex
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	profilesDir     string
}

// NewProfiler creates a profiler writing into dir
func NewProfiler(dir string) *Profiler {
	return &Profiler{
		captureCooldown: 10 * time.Second, // Don't capture more than once every 10 seconds
		captureDuration: 5 * time.Second,
		profilesDir:     dir,
	}
}

// CaptureProfile starts a background CPU profile and trace capture.
// It returns an error when a capture is running or on cooldown.
func (p *Profiler) CaptureProfile(reason string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isProfiling {
		return fmt.Errorf("already profiling")
	}
	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("capture on cooldown (last capture was %v ago)", time.Since(p.lastCaptureTime))
	}

	if err := os.MkdirAll(p.profilesDir, 0755); err != nil {
		return fmt.Errorf("failed to create profiles dir: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	timestamp := time.Now().Format("20060102-150405")
	baseName := fmt.Sprintf("tps-drop-%s-%s", timestamp, reason)

	// Capture in a goroutine to avoid blocking the frame loop
	go func() {
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)

		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				log.Printf("Error capturing CPU profile: %v", err)
			}
		}()

		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				log.Printf("Error capturing trace: %v", err)
			}
		}()

		wg.Wait()
		p.logSummary(baseName)
	}()

	return nil
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *Profiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// captureCPUProfile captures a CPU profile
func (p *Profiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	log.Printf("CPU profile saved to: %s", profilePath)
	return nil
}

// captureTrace captures an execution trace
func (p *Profiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	log.Printf("Trace saved to: %s", tracePath)
	return nil
}

// logSummary prints where the capture went and the memory stats at the end of it
func (p *Profiler) logSummary(baseName string) {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	info, err := os.Stat(profilePath)
	if err != nil {
		log.Printf("Warning: could not analyze profile: %v", err)
		return
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	log.Printf("Profile %s (%.2f KB); view with: go tool pprof -http=:8080 %s",
		baseName, float64(info.Size())/1024, profilePath)
	log.Printf("Memory: Alloc=%d KB Sys=%d KB NumGC=%d HeapObjects=%d",
		m.Alloc/1024, m.Sys/1024, m.NumGC, m.HeapObjects)
}
