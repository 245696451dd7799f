package profiler

import (
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Sample is one interval's worth of frame rate and memory statistics.
type Sample struct {
	FPS         float64   `json:"fps"`
	HeapMB      float64   `json:"heapMB"`
	AllocRateMB float64   `json:"allocRateMB"`
	GCCount     uint32    `json:"gcCount"`
	LastPauseUs uint64    `json:"lastPauseUs"`
	MaxPauseUs  uint64    `json:"maxPauseUs"`
	SysMB       float64   `json:"sysMB"`
	Frames      uint64    `json:"frames"`
	At          time.Time `json:"at"`
}

// Profiler tracks frame rate and memory statistics for performance monitoring.
// Tick runs on the render goroutine; Latest, Frames and Subscribe are safe from any goroutine.
type Profiler struct {
	mu sync.Mutex

	frameCount     int
	totalFrames    uint64
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	now     func() time.Time
	logging bool
	latest  Sample

	nextID      int
	subscribers map[int]func(Sample)
}

// NewProfiler creates a new Profiler. The update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		now:            time.Now,
		subscribers:    make(map[int]func(Sample)),
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame to track frame timing.
// When the update interval has elapsed it takes a Sample, logs it if logging is on and hands
// it to every subscriber.
// Statistics include: FPS, heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if a sample was taken this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	p.frameCount++
	p.totalFrames++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		p.mu.Unlock()
		return false
	}

	s := p.sample(currentTime, elapsed)
	p.latest = s
	p.frameCount = 0
	p.lastTime = currentTime
	logging := p.logging
	subs := make([]func(Sample), 0, len(p.subscribers))
	for _, fn := range p.subscribers {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	if logging {
		log.Info().
			Float64("fps", s.FPS).
			Float64("heapMB", s.HeapMB).
			Float64("allocRateMB", s.AllocRateMB).
			Uint32("gc", s.GCCount).
			Uint64("lastPauseUs", s.LastPauseUs).
			Uint64("maxPauseUs", s.MaxPauseUs).
			Float64("sysMB", s.SysMB).
			Msg("profiler")
	}
	for _, fn := range subs {
		fn(s)
	}
	return true
}

// sample reads memory statistics. Caller must hold the mutex.
func (p *Profiler) sample(at time.Time, elapsed time.Duration) Sample {
	runtime.ReadMemStats(&p.memStats)
	// Alloc: live heap; TotalAlloc: cumulative (tracks churn); Sys: process footprint
	s := Sample{
		FPS:     float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:  float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:   float64(p.memStats.Sys) / 1024 / 1024,
		GCCount: p.memStats.NumGC,
		Frames:  p.totalFrames,
		At:      at,
	}

	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	s.AllocRateMB = float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

	if gcCount := p.memStats.NumGC; gcCount > 0 {
		// PauseNs is a circular buffer of the last 256 GC pauses
		s.LastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

		startIdx := p.lastGCCount
		if gcCount-startIdx > 256 {
			startIdx = gcCount - 256
		}
		for i := startIdx; i < gcCount; i++ {
			s.MaxPauseUs = max(s.MaxPauseUs, p.memStats.PauseNs[i%256]/1000)
		}
	}

	p.lastGCCount = p.memStats.NumGC
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return s
}

// Latest returns the most recent sample, or the zero Sample before the first interval.
func (p *Profiler) Latest() Sample {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.latest
}

// Frames returns the number of frames ticked since creation.
func (p *Profiler) Frames() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalFrames
}

// SetLogging turns periodic stats logging on or off.
//
// Parameters:
//   - enabled: true to log every sample
func (p *Profiler) SetLogging(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.logging = enabled
}

// Subscribe registers fn to receive every new sample on the render goroutine. fn must not
// block.
//
// Parameters:
//   - fn: the sample callback
//
// Returns:
//   - func(): removes the subscription
func (p *Profiler) Subscribe(fn func(Sample)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn
	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.subscribers, id)
	}
}
