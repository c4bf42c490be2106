package core

import (
	"math"
	"testing"
)

func defaultScorer() *Scorer {
	return NewScorer(DefaultWeights(), DefaultThresholds())
}

// A mismatched domain with urgency language, a suspicious link and failed
// SPF/DKIM accumulates 30+15+25+5+5 = 80 and lands in the phishing band.
func TestScoreFullScenario(t *testing.T) {
	s := defaultScorer()

	features := ExtractedFeatures{
		DomainMismatch:      true,
		UrgencyKeywords:     []string{"urgent"},
		LinkCount:           3,
		SuspiciousLinkCount: 1,
		SPFPass:             false,
		DKIMPass:            false,
	}
	result := s.Score(features)

	if result.ThreatScore != 80 {
		t.Errorf("ThreatScore = %d, want 80", result.ThreatScore)
	}
	if result.Verdict != VerdictPhishing {
		t.Errorf("Verdict = %s, want %s", result.Verdict, VerdictPhishing)
	}
	if result.ModelUsed != "heuristic" {
		t.Errorf("ModelUsed = %q, want \"heuristic\"", result.ModelUsed)
	}
}

// A fully authenticated email with no signals scores zero.
func TestScoreAllClear(t *testing.T) {
	s := defaultScorer()

	result := s.Score(ExtractedFeatures{SPFPass: true, DKIMPass: true})
	if result.ThreatScore != 0 {
		t.Errorf("ThreatScore = %d, want 0", result.ThreatScore)
	}
	if result.Verdict != VerdictLegit {
		t.Errorf("Verdict = %s, want %s", result.Verdict, VerdictLegit)
	}
}

// Multiple urgency keywords and multiple suspicious links each contribute
// their weight once; signals are booleans, not counters.
func TestScoreSignalsCountOnce(t *testing.T) {
	s := defaultScorer()

	single := s.Score(ExtractedFeatures{
		UrgencyKeywords:     []string{"urgent"},
		SuspiciousLinkCount: 1,
		SPFPass:             true,
		DKIMPass:            true,
	})
	many := s.Score(ExtractedFeatures{
		UrgencyKeywords:     []string{"urgent", "act now", "expires"},
		LinkCount:           9,
		SuspiciousLinkCount: 9,
		SPFPass:             true,
		DKIMPass:            true,
	})

	if single.ThreatScore != many.ThreatScore {
		t.Errorf("repeated signals changed the score: %d vs %d", single.ThreatScore, many.ThreatScore)
	}
}

// No signal ever reduces the score: adding any single penalty to a clean
// feature set must leave the score and the verdict severity at least where
// they were.
func TestSingleSignalNeverLowersScore(t *testing.T) {
	s := defaultScorer()

	clean := ExtractedFeatures{SPFPass: true, DKIMPass: true}
	base := s.Score(clean)

	variants := []struct {
		name   string
		mutate func(f *ExtractedFeatures)
	}{
		{"domain mismatch", func(f *ExtractedFeatures) { f.DomainMismatch = true }},
		{"urgency keyword", func(f *ExtractedFeatures) { f.UrgencyKeywords = []string{"urgent"} }},
		{"suspicious link", func(f *ExtractedFeatures) { f.LinkCount = 1; f.SuspiciousLinkCount = 1 }},
		{"spf failure", func(f *ExtractedFeatures) { f.SPFPass = false }},
		{"dkim failure", func(f *ExtractedFeatures) { f.DKIMPass = false }},
	}

	for _, tt := range variants {
		t.Run(tt.name, func(t *testing.T) {
			features := clean
			tt.mutate(&features)
			result := s.Score(features)

			if result.ThreatScore < base.ThreatScore {
				t.Errorf("score dropped from %d to %d", base.ThreatScore, result.ThreatScore)
			}
			if result.Verdict.Rank() < base.Verdict.Rank() {
				t.Errorf("verdict severity dropped from %s to %s", base.Verdict, result.Verdict)
			}
		})
	}
}

func TestClassifyBoundaries(t *testing.T) {
	s := defaultScorer()

	tests := []struct {
		score int
		want  Verdict
	}{
		{0, VerdictLegit},
		{19, VerdictLegit},
		{20, VerdictPredictedLegit},
		{49, VerdictPredictedLegit},
		{50, VerdictPredictedFraud},
		{69, VerdictPredictedFraud},
		{70, VerdictPhishing},
		{100, VerdictPhishing},
	}

	for _, tt := range tests {
		if got := s.Classify(tt.score); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestVerdictOrdering(t *testing.T) {
	order := []Verdict{VerdictLegit, VerdictPredictedLegit, VerdictPredictedFraud, VerdictPhishing}
	for i := 1; i < len(order); i++ {
		if order[i].Rank() <= order[i-1].Rank() {
			t.Errorf("Rank(%s) should exceed Rank(%s)", order[i], order[i-1])
		}
	}

	if VerdictLegit.IsThreat() || VerdictPredictedLegit.IsThreat() {
		t.Error("legit verdicts must not count as threats")
	}
	if !VerdictPredictedFraud.IsThreat() || !VerdictPhishing.IsThreat() {
		t.Error("fraud and phishing verdicts must count as threats")
	}
}

func TestConfidenceDeterministicAndBounded(t *testing.T) {
	tests := []struct {
		score int
		want  float64
	}{
		{0, 0.70},
		{100, 0.95},
		{-5, 0.70},
		{250, 0.95},
		{80, 0.90},
	}

	for _, tt := range tests {
		if got := Confidence(tt.score); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Confidence(%d) = %v, want %v", tt.score, got, tt.want)
		}
	}

	// Monotone in the score.
	for score := 1; score <= 100; score++ {
		if Confidence(score) < Confidence(score-1) {
			t.Fatalf("Confidence decreased between %d and %d", score-1, score)
		}
	}
}

func TestScoreLatencyFloor(t *testing.T) {
	s := defaultScorer()

	result := s.Score(ExtractedFeatures{})
	if result.LatencyMs < 1.0 {
		t.Errorf("LatencyMs = %v, want at least 1.0", result.LatencyMs)
	}
}
