package core

import (
	"math"
	"sort"
)

// EvaluationFigures are the externally-supplied model quality numbers folded
// into RunningMetrics. They are placeholders from the last offline evaluation
// run and stay constant until ground-truth labels are available.
type EvaluationFigures struct {
	FalsePositiveRate float64
	Recall            float64
	Precision         float64
}

// DefaultEvaluationFigures returns the figures from the last offline run.
func DefaultEvaluationFigures() EvaluationFigures {
	return EvaluationFigures{
		FalsePositiveRate: 0.028,
		Recall:            0.967,
		Precision:         0.943,
	}
}

// ComputeMetrics folds a window of results into running statistics. It is a
// pure function over the full window and is recomputed from scratch on every
// update, never incrementally patched.
func ComputeMetrics(results []ScoreResult, figures EvaluationFigures) RunningMetrics {
	metrics := RunningMetrics{
		TotalAnalyzed:     len(results),
		FalsePositiveRate: figures.FalsePositiveRate,
		Recall:            figures.Recall,
		Precision:         figures.Precision,
	}
	if len(results) == 0 {
		return metrics
	}

	latencies := make([]float64, 0, len(results))
	var sum float64
	for _, r := range results {
		if r.Verdict.IsThreat() {
			metrics.ThreatsDetected++
		}
		latencies = append(latencies, r.LatencyMs)
		sum += r.LatencyMs
	}

	sort.Float64s(latencies)
	metrics.AverageLatencyMs = sum / float64(len(latencies))
	metrics.P95LatencyMs = latencies[int(math.Floor(0.95*float64(len(latencies))))]

	return metrics
}
