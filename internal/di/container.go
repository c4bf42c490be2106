package di

import (
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/safecheck/safecheck/internal/adapters/httpapi"
	"github.com/safecheck/safecheck/internal/config"
	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/dataset"
	"github.com/safecheck/safecheck/internal/factory"
	"github.com/safecheck/safecheck/internal/logging"
	"github.com/safecheck/safecheck/internal/ports"
	"github.com/safecheck/safecheck/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTriageFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewCacheFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewSourceFactory); err != nil {
		return nil, err
	}

	// Register extractor and scorer
	if err := container.Provide(func(f *factory.TriageFactory) *core.Extractor {
		return f.CreateExtractor()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.TriageFactory) *core.Scorer {
		return f.CreateScorer()
	}); err != nil {
		return nil, err
	}

	// Register result history and evaluation figures
	if err := container.Provide(func(f *factory.TriageFactory) *core.History {
		return f.CreateHistory()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.TriageFactory) core.EvaluationFigures {
		return f.CreateEvaluationFigures()
	}); err != nil {
		return nil, err
	}

	// Register verdict cache
	if err := container.Provide(func(f *factory.CacheFactory) (core.VerdictCache, error) {
		return f.CreateVerdictCache()
	}); err != nil {
		return nil, err
	}

	// Register cache TTL and enabled flag
	if err := container.Provide(func(f *factory.CacheFactory) (time.Duration, error) {
		return f.GetCacheTTL()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.CacheFactory) bool {
		return f.IsCacheEnabled()
	}); err != nil {
		return nil, err
	}

	// Register trusted domain checker
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.TrustedChecker {
		return whitelist.NewChecker(cfg.GetStringSlice("triage.trusted_domains"), logger)
	}); err != nil {
		return nil, err
	}

	// Register triage service
	if err := container.Provide(core.NewTriageService); err != nil {
		return nil, err
	}

	// Register dataset generator
	if err := container.Provide(func(f *factory.TriageFactory) *dataset.Generator {
		return f.CreateGenerator()
	}); err != nil {
		return nil, err
	}

	// Register mail source
	if err := container.Provide(func(f *factory.SourceFactory) (ports.MailSource, error) {
		return f.CreateMailSource()
	}); err != nil {
		return nil, err
	}

	// Register HTTP API server
	if err := container.Provide(func(
		service *core.TriageService,
		generator *dataset.Generator,
		logger *zap.Logger,
		cfg *config.Config,
	) *httpapi.Server {
		return httpapi.NewServer(service, generator, logger, cfg.GetHTTP().ListenAddress)
	}); err != nil {
		return nil, err
	}

	return container, nil
}
