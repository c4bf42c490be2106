package di

import (
	"flag"
	"strings"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/safecheck/safecheck/internal/config"
	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/dataset"
	"github.com/safecheck/safecheck/internal/factory"
	"github.com/safecheck/safecheck/internal/logging"
	"github.com/safecheck/safecheck/internal/whitelist"
)

// CLIFlags contains all command line flags for the CLI application
type CLIFlags struct {
	// Scoring flags
	PhishingThreshold int
	FraudThreshold    int
	LegitThreshold    int

	// Dataset generation flags
	GenerateRecords int
	FraudRatio      float64
	Seed            int64
	OutputFile      string

	// Triage flags
	TrustedDomains string

	// Input flags
	InputFile  string
	Verbose    bool
	JSONLog    bool
	ConfigFile string
}

// ParseFlags parses command line flags and returns a CLIFlags struct
func ParseFlags() *CLIFlags {
	flags := &CLIFlags{}

	// Scoring flags
	flag.IntVar(&flags.PhishingThreshold, "phishing-threshold", 70, "Minimum score for a phishing verdict")
	flag.IntVar(&flags.FraudThreshold, "fraud-threshold", 50, "Minimum score for a fraud verdict")
	flag.IntVar(&flags.LegitThreshold, "legit-threshold", 20, "Minimum score for a predicted-legit verdict")

	// Dataset generation flags
	flag.IntVar(&flags.GenerateRecords, "generate", 0, "Generate a synthetic dataset of N records instead of analyzing an email")
	flag.Float64Var(&flags.FraudRatio, "fraud-ratio", 0.25, "Fraction of generated records labeled fraudulent")
	flag.Int64Var(&flags.Seed, "seed", 0, "Random seed for dataset generation (0 uses the current time)")
	flag.StringVar(&flags.OutputFile, "out", "", "Output file for the generated dataset (use stdout if not specified)")

	// Triage flags
	flag.StringVar(&flags.TrustedDomains, "trusted", "", "Comma-separated list of trusted sender domains")

	// Input flags
	flag.StringVar(&flags.InputFile, "file", "", "Input email file (use stdin if not specified)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (overrides command line flags)")

	flag.Parse()
	return flags
}

// BuildCLIContainer creates and configures a dependency injection container for the CLI application
func BuildCLIContainer(flags *CLIFlags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *CLIFlags { return flags }); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(func(flags *CLIFlags) (*zap.Logger, error) {
		return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
	}); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) (*config.Config, error) {
		if flags.ConfigFile != "" {
			cfg, err := config.New()
			if err != nil {
				return nil, err
			}
			logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
			return cfg, nil
		}

		// Create config from command line flags
		return createConfigFromFlags(flags), nil
	}); err != nil {
		return nil, err
	}

	// Register triage factory
	if err := container.Provide(factory.NewTriageFactory); err != nil {
		return nil, err
	}

	// Register extractor, scorer and history
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
	if err := container.Provide(func(f *factory.TriageFactory) *core.History {
		return f.CreateHistory()
	}); err != nil {
		return nil, err
	}

	// Register dataset generator
	if err := container.Provide(func(f *factory.TriageFactory) *dataset.Generator {
		return f.CreateGenerator()
	}); err != nil {
		return nil, err
	}

	// Register trusted domain checker from the -trusted flag
	if err := container.Provide(func(flags *CLIFlags, logger *zap.Logger) core.TrustedChecker {
		var domains []string
		if flags.TrustedDomains != "" {
			domains = strings.Split(flags.TrustedDomains, ",")
			for i, domain := range domains {
				domains[i] = strings.TrimSpace(domain)
			}
		}
		return whitelist.NewChecker(domains, logger)
	}); err != nil {
		return nil, err
	}

	// Register triage service with no cache
	if err := container.Provide(func(
		extractor *core.Extractor,
		scorer *core.Scorer,
		history *core.History,
		logger *zap.Logger,
		trusted core.TrustedChecker,
		f *factory.TriageFactory,
	) *core.TriageService {
		return core.NewTriageService(
			extractor,
			scorer,
			nil, // No cache for CLI
			history,
			logger,
			false,            // Cache disabled
			time.Duration(0), // No TTL
			trusted,
			f.CreateEvaluationFigures(),
		)
	}); err != nil {
		return nil, err
	}

	return container, nil
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags(flags *CLIFlags) *config.Config {
	v := config.NewEmptyViper()

	// Set some cli specific settings
	v.Set("cli.verbose", flags.Verbose)

	// Set verdict thresholds
	v.Set("scoring.thresholds.phishing", flags.PhishingThreshold)
	v.Set("scoring.thresholds.fraud", flags.FraudThreshold)
	v.Set("scoring.thresholds.legit", flags.LegitThreshold)

	return config.NewFromViper(v)
}
