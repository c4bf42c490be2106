package core

import (
	"time"
)

// Weights are the additive integer penalties per signal. No signal ever
// reduces the score.
type Weights struct {
	DomainMismatch int
	UrgencyKeyword int
	SuspiciousLink int
	SPFFail        int
	DKIMFail       int
}

// DefaultWeights are the tuned penalties for each feature signal.
func DefaultWeights() Weights {
	return Weights{
		DomainMismatch: 30,
		UrgencyKeyword: 15,
		SuspiciousLink: 25,
		SPFFail:        5,
		DKIMFail:       5,
	}
}

// Thresholds map a total score onto a verdict. Checked in descending order;
// the maximum satisfied threshold wins.
type Thresholds struct {
	Phishing int
	Fraud    int
	Legit    int
}

// DefaultThresholds returns the calibrated verdict boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Phishing: 70,
		Fraud:    50,
		Legit:    20,
	}
}

// minLatencyMs floors the reported latency so very fast hardware never
// produces zero or negative display artifacts.
const minLatencyMs = 1.0

// Scorer computes a composite threat score from extracted features and maps
// it onto a verdict.
type Scorer struct {
	weights    Weights
	thresholds Thresholds
}

// NewScorer builds a scorer from the given weight and threshold tables.
func NewScorer(weights Weights, thresholds Thresholds) *Scorer {
	return &Scorer{weights: weights, thresholds: thresholds}
}

// Score computes the weighted threat score for one feature set and returns
// the classified result. It is total: every input produces a result.
func (s *Scorer) Score(features ExtractedFeatures) ScoreResult {
	start := time.Now()

	score := 0
	if features.DomainMismatch {
		score += s.weights.DomainMismatch
	}
	if len(features.UrgencyKeywords) > 0 {
		score += s.weights.UrgencyKeyword
	}
	if features.SuspiciousLinkCount > 0 {
		score += s.weights.SuspiciousLink
	}
	if !features.SPFPass {
		score += s.weights.SPFFail
	}
	if !features.DKIMPass {
		score += s.weights.DKIMFail
	}

	result := ScoreResult{
		ThreatScore: score,
		Verdict:     s.Classify(score),
		Confidence:  Confidence(score),
		Features:    features,
		AnalyzedAt:  time.Now(),
		ModelUsed:   "heuristic",
	}
	result.LatencyMs = latencyMs(start)
	return result
}

// Classify maps a total score onto the maximum satisfied threshold,
// resolving ties toward the more severe verdict.
func (s *Scorer) Classify(score int) Verdict {
	switch {
	case score >= s.thresholds.Phishing:
		return VerdictPhishing
	case score >= s.thresholds.Fraud:
		return VerdictPredictedFraud
	case score >= s.thresholds.Legit:
		return VerdictPredictedLegit
	default:
		return VerdictLegit
	}
}

// Confidence is a deterministic monotone map of the threat score into
// [0.70, 0.95]. It replaces the earlier bounded-random placeholder so that
// repeated triage of the same message reports the same confidence.
func Confidence(score int) float64 {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return 0.70 + 0.25*float64(score)/100.0
}

func latencyMs(start time.Time) float64 {
	elapsed := float64(time.Since(start).Nanoseconds()) / 1e6
	if elapsed < minLatencyMs {
		return minLatencyMs
	}
	return elapsed
}
