package factory

import (
	"github.com/safecheck/safecheck/internal/adapters/source"
	"github.com/safecheck/safecheck/internal/config"
	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/ports"
	"github.com/safecheck/safecheck/internal/textproc"
	"go.uber.org/zap"
)

// SourceFactory creates mail sources based on configuration
type SourceFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.TriageService
}

// NewSourceFactory creates a new source factory
func NewSourceFactory(cfg *config.Config, logger *zap.Logger, service *core.TriageService) *SourceFactory {
	return &SourceFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateMailSource creates the configured mail source
func (f *SourceFactory) CreateMailSource() (ports.MailSource, error) {
	smtpCfg := f.cfg.GetSMTP()
	return source.NewSMTPSource(
		f.service,
		f.logger,
		textproc.NewTextProcessor(f.logger),
		smtpCfg.ListenAddress,
		smtpCfg.Domain,
		smtpCfg.MaxMessageBytes,
		smtpCfg.MaxRecipients,
		f.cfg.GetInt("triage.max_body_size"),
		f.cfg.GetBool("smtp.block_threats"),
	), nil
}
