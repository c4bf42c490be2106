package core

import (
	"time"
)

// Header keys a mail source must always populate, using an empty string when
// the header is absent, so that extractor lookups are total.
const (
	HeaderReturnPath     = "return-path"
	HeaderReplyTo        = "reply-to"
	HeaderAuthResults    = "authentication-results"
	HeaderDKIMSignature  = "dkim-signature"
	HeaderXOriginatingIP = "x-originating-ip"
	HeaderMessageID      = "message-id"
)

// EmailRecord is a fully-materialized raw email as handed over by a mail
// source. It is immutable once received.
type EmailRecord struct {
	From       string
	To         string
	Subject    string
	Body       string
	Headers    map[string]string
	ReceivedAt time.Time
}

// Header returns the named header with a case-insensitive lookup. A missing
// header yields the empty string, never an error.
func (e *EmailRecord) Header(name string) string {
	if e == nil || e.Headers == nil {
		return ""
	}
	if v, ok := e.Headers[name]; ok {
		return v
	}
	lower := toLowerASCII(name)
	for k, v := range e.Headers {
		if toLowerASCII(k) == lower {
			return v
		}
	}
	return ""
}

// ExtractedFeatures holds the normalized signals derived from one EmailRecord.
// Invariant: SuspiciousLinkCount <= LinkCount.
type ExtractedFeatures struct {
	FromDomain       string
	ReturnPathDomain string
	DomainMismatch   bool

	SPFPass   bool
	DKIMPass  bool
	DMARCPass bool

	UrgencyKeywords     []string
	LinkCount           int
	SuspiciousLinkCount int

	HasAttachments  bool
	AttachmentTypes []string
}

// Verdict classifies an email into one of four severities, totally ordered
// by increasing suspicion.
type Verdict string

const (
	VerdictLegit          Verdict = "legit"
	VerdictPredictedLegit Verdict = "predicted_legit"
	VerdictPredictedFraud Verdict = "predicted_fraud"
	VerdictPhishing       Verdict = "predicted_phishing"
)

// Rank returns the severity rank of the verdict, higher is more suspicious.
func (v Verdict) Rank() int {
	switch v {
	case VerdictPredictedLegit:
		return 1
	case VerdictPredictedFraud:
		return 2
	case VerdictPhishing:
		return 3
	default:
		return 0
	}
}

// IsThreat reports whether the verdict counts as a detected threat.
func (v Verdict) IsThreat() bool {
	return v == VerdictPredictedFraud || v == VerdictPhishing
}

// ScoreResult is the outcome of triaging a single email. Created once per
// record, never mutated afterwards.
type ScoreResult struct {
	ThreatScore int               `json:"threatScore"`
	Verdict     Verdict           `json:"verdict"`
	Confidence  float64           `json:"confidence"`
	LatencyMs   float64           `json:"latencyMs"`
	Features    ExtractedFeatures `json:"features"`
	From        string            `json:"from"`
	Subject     string            `json:"subject"`
	AnalyzedAt  time.Time         `json:"analyzedAt"`
	ModelUsed   string            `json:"modelUsed"`
}

// RunningMetrics summarizes a window of triage results. The evaluation
// figures (false positive rate, recall, precision) are placeholders carried
// from offline evaluation until ground truth labels are wired in.
type RunningMetrics struct {
	TotalAnalyzed     int     `json:"totalAnalyzed"`
	ThreatsDetected   int     `json:"threatsDetected"`
	AverageLatencyMs  float64 `json:"averageLatencyMs"`
	P95LatencyMs      float64 `json:"p95LatencyMs"`
	FalsePositiveRate float64 `json:"falsePositiveRate"`
	Recall            float64 `json:"recall"`
	Precision         float64 `json:"precision"`
}

func toLowerASCII(s string) string {
	hasUpper := false
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			hasUpper = true
			break
		}
	}
	if !hasUpper {
		return s
	}
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
