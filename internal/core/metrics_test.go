package core

import (
	"math"
	"testing"
)

func TestComputeMetricsEmptyWindow(t *testing.T) {
	metrics := ComputeMetrics(nil, DefaultEvaluationFigures())

	if metrics.TotalAnalyzed != 0 || metrics.ThreatsDetected != 0 {
		t.Errorf("empty window should report zero counts, got %+v", metrics)
	}
	if metrics.AverageLatencyMs != 0 || metrics.P95LatencyMs != 0 {
		t.Errorf("empty window should report zero latencies, got %+v", metrics)
	}
	if metrics.FalsePositiveRate != 0.028 || metrics.Recall != 0.967 || metrics.Precision != 0.943 {
		t.Errorf("evaluation figures should carry through unchanged, got %+v", metrics)
	}
}

func TestComputeMetricsLatencies(t *testing.T) {
	var results []ScoreResult
	for i := 1; i <= 10; i++ {
		results = append(results, ScoreResult{LatencyMs: float64(i)})
	}

	metrics := ComputeMetrics(results, EvaluationFigures{})

	if math.Abs(metrics.AverageLatencyMs-5.5) > 1e-9 {
		t.Errorf("AverageLatencyMs = %v, want 5.5", metrics.AverageLatencyMs)
	}
	// floor(0.95 * 10) = 9, the last sorted element.
	if metrics.P95LatencyMs != 10 {
		t.Errorf("P95LatencyMs = %v, want 10", metrics.P95LatencyMs)
	}
}

// P95 selection must not depend on insertion order.
func TestComputeMetricsUnsortedInput(t *testing.T) {
	results := []ScoreResult{
		{LatencyMs: 9}, {LatencyMs: 2}, {LatencyMs: 7},
		{LatencyMs: 1}, {LatencyMs: 5},
	}

	metrics := ComputeMetrics(results, EvaluationFigures{})

	// floor(0.95 * 5) = 4, the largest of five samples.
	if metrics.P95LatencyMs != 9 {
		t.Errorf("P95LatencyMs = %v, want 9", metrics.P95LatencyMs)
	}
}

func TestComputeMetricsThreatCount(t *testing.T) {
	results := []ScoreResult{
		{Verdict: VerdictLegit, LatencyMs: 1},
		{Verdict: VerdictPredictedLegit, LatencyMs: 1},
		{Verdict: VerdictPredictedFraud, LatencyMs: 1},
		{Verdict: VerdictPhishing, LatencyMs: 1},
		{Verdict: VerdictPhishing, LatencyMs: 1},
	}

	metrics := ComputeMetrics(results, EvaluationFigures{})

	if metrics.TotalAnalyzed != 5 {
		t.Errorf("TotalAnalyzed = %d, want 5", metrics.TotalAnalyzed)
	}
	if metrics.ThreatsDetected != 3 {
		t.Errorf("ThreatsDetected = %d, want 3", metrics.ThreatsDetected)
	}
}
