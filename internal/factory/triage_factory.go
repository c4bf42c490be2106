package factory

import (
	"github.com/safecheck/safecheck/internal/config"
	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/dataset"
	"go.uber.org/zap"
)

// TriageFactory builds the core pipeline pieces from the configured
// heuristic tables.
type TriageFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTriageFactory creates a new triage factory
func NewTriageFactory(cfg *config.Config, logger *zap.Logger) *TriageFactory {
	return &TriageFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateExtractor builds the feature extractor from the configured
// vocabularies.
func (f *TriageFactory) CreateExtractor() *core.Extractor {
	extraction := f.cfg.GetExtraction()
	return core.NewExtractor(extraction.UrgencyKeywords, extraction.SuspiciousMarkers)
}

// CreateScorer builds the scorer from the configured weight and threshold
// tables.
func (f *TriageFactory) CreateScorer() *core.Scorer {
	scoring := f.cfg.GetScoring()
	return core.NewScorer(
		core.Weights{
			DomainMismatch: scoring.DomainMismatchWeight,
			UrgencyKeyword: scoring.UrgencyKeywordWeight,
			SuspiciousLink: scoring.SuspiciousLinkWeight,
			SPFFail:        scoring.SPFFailWeight,
			DKIMFail:       scoring.DKIMFailWeight,
		},
		core.Thresholds{
			Phishing: scoring.PhishingThreshold,
			Fraud:    scoring.FraudThreshold,
			Legit:    scoring.LegitThreshold,
		},
	)
}

// CreateHistory builds the bounded result window.
func (f *TriageFactory) CreateHistory() *core.History {
	return core.NewHistory(f.cfg.GetInt("triage.history_size"))
}

// CreateEvaluationFigures returns the configured placeholder evaluation
// figures.
func (f *TriageFactory) CreateEvaluationFigures() core.EvaluationFigures {
	return core.EvaluationFigures{
		FalsePositiveRate: f.cfg.GetFloat64("triage.false_positive_rate"),
		Recall:            f.cfg.GetFloat64("triage.recall"),
		Precision:         f.cfg.GetFloat64("triage.precision"),
	}
}

// CreateGenerator builds the synthetic dataset generator.
func (f *TriageFactory) CreateGenerator() *dataset.Generator {
	generator := f.cfg.GetGenerator()
	return dataset.NewGenerator(
		dataset.DefaultPools(),
		generator.BatchSize,
		generator.ShuffleEvery,
		f.logger,
	)
}
