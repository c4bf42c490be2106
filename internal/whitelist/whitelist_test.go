package whitelist

import (
	"context"
	"testing"
	"time"

	"github.com/safecheck/safecheck/internal/core"
	"go.uber.org/zap"
)

// The checker is what both binaries hand to the triage service for the
// trusted-domain fast path.
var _ core.TrustedChecker = (*Checker)(nil)

func TestIsWhitelisted(t *testing.T) {
	checker := NewChecker([]string{"Example.COM", " partner.example "}, nil)

	tests := []struct {
		name string
		from string
		want bool
	}{
		{"exact match", "alice@example.com", true},
		{"case insensitive", "alice@EXAMPLE.com", true},
		{"trimmed entry", "bob@partner.example", true},
		{"angle brackets", "Alice <alice@example.com>", true},
		{"unlisted domain", "mallory@evil.example", false},
		{"subdomain not covered", "alice@mail.example.com", false},
		{"malformed address", "no-at-sign", false},
		{"empty address", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.IsWhitelisted(tt.from); got != tt.want {
				t.Errorf("IsWhitelisted(%q) = %t, want %t", tt.from, got, tt.want)
			}
		})
	}
}

// A checker handed to the triage service short-circuits scoring entirely,
// even for an email that would otherwise land in the phishing band.
func TestCheckerDrivesServiceBypass(t *testing.T) {
	checker := NewChecker([]string{"example.com"}, nil)
	svc := core.NewTriageService(
		core.NewExtractor(nil, nil),
		core.NewScorer(core.DefaultWeights(), core.DefaultThresholds()),
		nil,
		core.NewHistory(5),
		zap.NewNop(),
		false,
		time.Duration(0),
		checker,
		core.DefaultEvaluationFigures(),
	)

	email := &core.EmailRecord{
		From:    "ceo@example.com",
		Subject: "URGENT wire transfer",
		Body:    "act now https://bit.ly/pay",
		Headers: map[string]string{core.HeaderReturnPath: "bounce@evil.example"},
	}
	result := svc.AnalyzeEmail(context.Background(), email)

	if result.ModelUsed != "trusted" {
		t.Errorf("ModelUsed = %q, want \"trusted\"", result.ModelUsed)
	}
	if result.Verdict != core.VerdictLegit || result.ThreatScore != 0 {
		t.Errorf("trusted sender should bypass scoring, got score %d verdict %s",
			result.ThreatScore, result.Verdict)
	}
}

func TestEmptyWhitelist(t *testing.T) {
	checker := NewChecker(nil, nil)

	if checker.IsWhitelisted("alice@example.com") {
		t.Error("empty whitelist should never match")
	}
}
