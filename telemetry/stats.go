package telemetry

import (
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
)

// NoiseStats summarizes the noise samples of one visualization.
type NoiseStats struct {
	Frame         int32   `csv:"frame"`
	Visualization string  `csv:"visualization"`
	Count         int     `csv:"count"`
	Mean          float64 `csv:"mean"`
	Std           float64 `csv:"std"`
	Min           float64 `csv:"min"`
	P10           float64 `csv:"p10"`
	P50           float64 `csv:"p50"`
	P90           float64 `csv:"p90"`
	Max           float64 `csv:"max"`
}

// Percentile returns the p-quantile of a sorted slice using gonum's
// linear interpolation. p is clamped to [0, 1]. Returns 0 if the slice is
// empty and NaN if p is NaN.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if math.IsNaN(p) {
		return math.NaN()
	}
	return stat.Quantile(min(max(p, 0), 1), stat.LinInterp, sorted, nil)
}

// SummarizeNoise computes distribution statistics over noise samples.
// Padding lanes must already be trimmed from values.
func SummarizeNoise(name string, frame int32, values []float32) NoiseStats {
	s := NoiseStats{Frame: frame, Visualization: name, Count: len(values)}
	if len(values) == 0 {
		return s
	}

	sorted := make([]float64, len(values))
	for i, v := range values {
		sorted[i] = float64(v)
	}
	slices.Sort(sorted)

	s.Mean, s.Std = stat.PopMeanStdDev(sorted, nil)
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	s.P10 = Percentile(sorted, 0.10)
	s.P50 = Percentile(sorted, 0.50)
	s.P90 = Percentile(sorted, 0.90)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s NoiseStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frame", int(s.Frame)),
		slog.String("visualization", s.Visualization),
		slog.Int("count", s.Count),
		slog.Float64("mean", s.Mean),
		slog.Float64("std", s.Std),
		slog.Float64("min", s.Min),
		slog.Float64("p50", s.P50),
		slog.Float64("max", s.Max),
	)
}
