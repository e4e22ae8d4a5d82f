package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one frame.
const (
	PhaseSchedule = "schedule" // shape and noise dispatch
	PhaseComplete = "complete" // blocking wait on the final handle
	PhaseUpload   = "upload"   // flatten and buffer upload
	PhaseDraw     = "draw"
)

var phaseOrder = []string{PhaseSchedule, PhaseComplete, PhaseUpload, PhaseDraw}

// PerfSample holds timing data for a single frame.
type PerfSample struct {
	TickDuration time.Duration
	Phases       map[string]time.Duration
	Recomputes   int
}

// PerfCollector tracks performance metrics over a rolling window.
// It is not safe for concurrent use; the frame loop owns it.
type PerfCollector struct {
	windowSize    int
	samples       []PerfSample
	writeIndex    int
	sampleCount   int
	currentPhases map[string]time.Duration
	recomputes    int
	tickStart     time.Time
	phaseStart    time.Time
	lastPhase     string

	// Frame timing (for graphics mode)
	lastFrameTime time.Time
	frameDuration time.Duration
}

// NewPerfCollector creates a new performance collector.
// windowSize: number of frames to aggregate over (e.g., 60 for 1 second at 60fps).
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize:    windowSize,
		samples:       make([]PerfSample, windowSize),
		currentPhases: make(map[string]time.Duration),
	}
}

// StartTick begins timing a new frame.
func (p *PerfCollector) StartTick() {
	p.tickStart = time.Now()
	p.currentPhases = make(map[string]time.Duration)
	p.recomputes = 0
	p.lastPhase = ""
}

// StartPhase begins timing a specific phase, ending the previous one.
// Repeated phases within a frame accumulate.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.currentPhases[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndPhase stops the running phase without starting another.
func (p *PerfCollector) EndPhase() {
	if p.lastPhase == "" {
		return
	}
	p.currentPhases[p.lastPhase] += time.Since(p.phaseStart)
	p.lastPhase = ""
}

// CountRecompute notes that a visualization ran its pipeline this frame.
func (p *PerfCollector) CountRecompute() {
	p.recomputes++
}

// EndTick finishes timing the current frame and records the sample.
func (p *PerfCollector) EndTick() {
	p.EndPhase()

	p.samples[p.writeIndex] = PerfSample{
		TickDuration: time.Since(p.tickStart),
		Phases:       p.currentPhases,
		Recomputes:   p.recomputes,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// RecordFrame records frame timing for graphics mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrameTime.IsZero() {
		p.frameDuration = now.Sub(p.lastFrameTime)
	}
	p.lastFrameTime = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	// Frame timing
	AvgTickDuration time.Duration
	MinTickDuration time.Duration
	MaxTickDuration time.Duration
	P50TickDuration time.Duration
	P95TickDuration time.Duration

	// Phase breakdown (average durations)
	PhaseAvg map[string]time.Duration

	// Phase percentages of total frame time
	PhasePct map[string]float64

	// Frames in the window that ran at least one pipeline
	Recomputes int

	// Throughput
	TicksPerSecond float64

	// Frame timing (graphics mode)
	FrameDuration time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	var fps float64
	if p.frameDuration > 0 {
		fps = float64(time.Second) / float64(p.frameDuration)
	}

	if p.sampleCount == 0 {
		return PerfStats{
			PhaseAvg:      make(map[string]time.Duration),
			PhasePct:      make(map[string]float64),
			FrameDuration: p.frameDuration,
			FPS:           fps,
		}
	}

	ticks := make([]float64, p.sampleCount)
	phaseSum := make(map[string]time.Duration)
	recomputes := 0
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		ticks[i] = float64(s.TickDuration)
		for phase, dur := range s.Phases {
			phaseSum[phase] += dur
		}
		if s.Recomputes > 0 {
			recomputes++
		}
	}
	slices.Sort(ticks)

	avgTick := time.Duration(stat.Mean(ticks, nil))

	phaseAvg := make(map[string]time.Duration)
	phasePct := make(map[string]float64)
	for phase, sum := range phaseSum {
		phaseAvg[phase] = sum / time.Duration(p.sampleCount)
		if avgTick > 0 {
			phasePct[phase] = float64(phaseAvg[phase]) / float64(avgTick) * 100
		}
	}

	var ticksPerSec float64
	if avgTick > 0 {
		ticksPerSec = float64(time.Second) / float64(avgTick)
	}

	return PerfStats{
		AvgTickDuration: avgTick,
		MinTickDuration: time.Duration(ticks[0]),
		MaxTickDuration: time.Duration(ticks[len(ticks)-1]),
		P50TickDuration: time.Duration(stat.Quantile(0.5, stat.Empirical, ticks, nil)),
		P95TickDuration: time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil)),
		PhaseAvg:        phaseAvg,
		PhasePct:        phasePct,
		Recomputes:      recomputes,
		TicksPerSecond:  ticksPerSec,
		FrameDuration:   p.frameDuration,
		FPS:             fps,
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_tick_us", s.AvgTickDuration.Microseconds()),
		slog.Int64("p50_tick_us", s.P50TickDuration.Microseconds()),
		slog.Int64("p95_tick_us", s.P95TickDuration.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTickDuration.Microseconds()),
		slog.Int("recomputes", s.Recomputes),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
	}

	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}

	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}

	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	WindowEnd   int32   `csv:"window_end"`
	AvgTickUS   int64   `csv:"avg_tick_us"`
	MinTickUS   int64   `csv:"min_tick_us"`
	MaxTickUS   int64   `csv:"max_tick_us"`
	P50TickUS   int64   `csv:"p50_tick_us"`
	P95TickUS   int64   `csv:"p95_tick_us"`
	Recomputes  int     `csv:"recomputes"`
	TicksPerSec float64 `csv:"ticks_per_sec"`
	FPS         float64 `csv:"fps"`
	ScheduleUS  int64   `csv:"schedule_us"`
	CompleteUS  int64   `csv:"complete_us"`
	UploadUS    int64   `csv:"upload_us"`
	DrawUS      int64   `csv:"draw_us"`
}

// ToCSV converts PerfStats to a flat CSV-friendly struct.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:   windowEnd,
		AvgTickUS:   s.AvgTickDuration.Microseconds(),
		MinTickUS:   s.MinTickDuration.Microseconds(),
		MaxTickUS:   s.MaxTickDuration.Microseconds(),
		P50TickUS:   s.P50TickDuration.Microseconds(),
		P95TickUS:   s.P95TickDuration.Microseconds(),
		Recomputes:  s.Recomputes,
		TicksPerSec: s.TicksPerSecond,
		FPS:         s.FPS,
		ScheduleUS:  s.PhaseAvg[PhaseSchedule].Microseconds(),
		CompleteUS:  s.PhaseAvg[PhaseComplete].Microseconds(),
		UploadUS:    s.PhaseAvg[PhaseUpload].Microseconds(),
		DrawUS:      s.PhaseAvg[PhaseDraw].Microseconds(),
	}
}
