package core

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// TriageService is the core service for email threat triage. It wires the
// extractor and scorer together with the trusted-domain fast path, the
// per-sender verdict cache and the bounded result history.
type TriageService struct {
	extractor    *Extractor
	scorer       *Scorer
	cache        VerdictCache
	history      *History
	logger       *zap.Logger
	cacheEnabled bool
	cacheTTL     time.Duration
	trusted      TrustedChecker
	figures      EvaluationFigures
}

// NewTriageService creates a new triage service. A nil trusted checker
// disables the fast path.
func NewTriageService(
	extractor *Extractor,
	scorer *Scorer,
	cache VerdictCache,
	history *History,
	logger *zap.Logger,
	cacheEnabled bool,
	cacheTTL time.Duration,
	trusted TrustedChecker,
	figures EvaluationFigures,
) *TriageService {
	return &TriageService{
		extractor:    extractor,
		scorer:       scorer,
		cache:        cache,
		history:      history,
		logger:       logger,
		cacheEnabled: cacheEnabled,
		cacheTTL:     cacheTTL,
		trusted:      trusted,
		figures:      figures,
	}
}

func (s *TriageService) isDomainTrusted(from string) bool {
	return s.trusted != nil && s.trusted.IsWhitelisted(from)
}

// AnalyzeEmail triages one email record. It never fails: malformed input
// degrades to absent signals and still produces a result.
func (s *TriageService) AnalyzeEmail(ctx context.Context, email *EmailRecord) *ScoreResult {
	if email == nil {
		email = &EmailRecord{}
	}

	if s.isDomainTrusted(email.From) {
		s.logger.Info("Skipping triage for trusted domain",
			zap.String("sender", email.From),
			zap.String("action", "trusted_bypass"))

		result := &ScoreResult{
			ThreatScore: 0,
			Verdict:     VerdictLegit,
			Confidence:  Confidence(0),
			LatencyMs:   minLatencyMs,
			From:        email.From,
			Subject:     email.Subject,
			AnalyzedAt:  time.Now(),
			ModelUsed:   "trusted",
		}
		s.history.Add(*result)
		return result
	}

	if s.cacheEnabled && s.cache != nil {
		if entry, err := s.cache.Get(ctx, email.From); err == nil {
			s.logger.Debug("Cache hit for sender", zap.String("sender", email.From))
			result := &ScoreResult{
				ThreatScore: entry.ThreatScore,
				Verdict:     entry.Verdict,
				Confidence:  entry.Confidence,
				LatencyMs:   minLatencyMs,
				From:        email.From,
				Subject:     email.Subject,
				AnalyzedAt:  time.Now(),
				ModelUsed:   "cache",
			}
			s.history.Add(*result)
			return result
		}
	}

	start := time.Now()
	features := s.extractor.Extract(email)
	result := s.scorer.Score(features)
	result.LatencyMs = latencyMs(start)
	result.From = email.From
	result.Subject = email.Subject

	s.logger.Info("Email triaged",
		zap.String("sender", email.From),
		zap.Int("threat_score", result.ThreatScore),
		zap.String("verdict", string(result.Verdict)),
		zap.Float64("latency_ms", result.LatencyMs))

	if s.cacheEnabled && s.cache != nil {
		entry := &CacheEntry{
			SenderEmail: email.From,
			Verdict:     result.Verdict,
			ThreatScore: result.ThreatScore,
			Confidence:  result.Confidence,
			LastSeen:    time.Now(),
			ExpiresAt:   time.Now().Add(s.cacheTTL),
		}
		if err := s.cache.Set(ctx, entry); err != nil {
			s.logger.Error("Failed to update cache", zap.Error(err))
		}
	}

	s.history.Add(result)
	return &result
}

// Metrics recomputes the running statistics over the current history window.
func (s *TriageService) Metrics() RunningMetrics {
	return ComputeMetrics(s.history.Snapshot(), s.figures)
}
