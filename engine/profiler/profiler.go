package profiler

import (
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Profiler tracks loop rate, per-iteration cost and memory statistics.
// Outputs stats to the logger at a configurable interval.
type Profiler struct {
	name           string
	logger         *zap.Logger
	frameCount     int
	totalCost      time.Duration
	maxCost        time.Duration
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(*Profiler)

// WithName labels the loop being profiled, e.g. "tick" or "render".
func WithName(name string) ProfilerOption {
	return func(p *Profiler) {
		p.name = name
	}
}

// WithLogger sets the logger stats are written to.
func WithLogger(logger *zap.Logger) ProfilerOption {
	return func(p *Profiler) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithInterval sets how often stats are written.
func WithInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = interval
	}
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second; output goes to a no-op logger unless WithLogger is given.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		name:           "loop",
		logger:         zap.NewNop(),
		lastTime:       time.Now(),
		updateInterval: time.Second,
	}
	for _, option := range options {
		option(p)
	}
	return p
}

// Tick should be called once per loop iteration with the time the iteration's work took.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: rate, average and max cost, heap usage, allocation rate, GC count/pause times, total memory.
//
// Parameters:
//   - cost: time spent in this iteration
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(cost time.Duration) bool {
	p.frameCount++
	p.totalCost += cost
	p.maxCost = max(p.maxCost, cost)

	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return false
	}

	rate := float64(p.frameCount) / elapsed.Seconds()

	runtime.ReadMemStats(&p.memStats)
	allocMB := float64(p.memStats.Alloc) / 1024 / 1024
	sysMB := float64(p.memStats.Sys) / 1024 / 1024

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	// PauseNs is a circular buffer of the last 256 GC pauses.
	gcCount := p.memStats.NumGC
	var lastPauseUs, maxPauseUs uint64
	if gcCount > 0 {
		lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			maxPauseUs = max(maxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.logger.Info("profiler",
		zap.String("loop", p.name),
		zap.Float64("rate", rate),
		zap.Duration("avg_cost", p.totalCost/time.Duration(p.frameCount)),
		zap.Duration("max_cost", p.maxCost),
		zap.Float64("heap_mb", allocMB),
		zap.Float64("alloc_rate_mb_s", allocRateMB),
		zap.Uint32("gc", gcCount),
		zap.Uint64("gc_last_pause_us", lastPauseUs),
		zap.Uint64("gc_max_pause_us", maxPauseUs),
		zap.Float64("sys_mb", sysMB),
	)

	p.frameCount = 0
	p.totalCost = 0
	p.maxCost = 0
	p.lastTime = currentTime
	p.lastGCCount = gcCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}
