package game

import (
	"github.com/qwes348/Pseudorandom-Noise/telemetry"
)

// flushTelemetry writes a perf window and per-visualization noise
// summaries every telemetry.perf_window frames, or immediately when force
// is set and frames ran since the last flush.
func (g *Game) flushTelemetry(force bool) {
	window := int32(g.cfg.Telemetry.PerfWindow)
	if g.frame == g.lastFlush || (!force && g.frame%window != 0) {
		return
	}
	g.lastFlush = g.frame

	perfStats := g.perf.Stats()
	noiseStats := g.sampleNoise()

	if g.logPerf {
		g.logger.Info("perf", "frame", g.frame, "stats", perfStats)
		for _, s := range noiseStats {
			g.logger.Info("noise", "stats", s)
		}
	}

	if err := g.output.WritePerf(perfStats, g.frame); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}
	if err := g.output.WriteNoise(noiseStats...); err != nil {
		g.logger.Error("failed to write noise", "error", err)
	}
}

// sampleNoise summarizes the current noise samples of every visualization.
func (g *Game) sampleNoise() []telemetry.NoiseStats {
	ctrls := g.scene.Controllers()
	out := make([]telemetry.NoiseStats, 0, len(ctrls))
	for _, c := range ctrls {
		out = append(out, telemetry.SummarizeNoise(c.Settings().Name, g.frame, c.NoiseSamples()))
	}
	return out
}
