package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/mail"
	"time"

	"github.com/emersion/go-smtp"
	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/textproc"
	"go.uber.org/zap"
)

// SMTPSource receives emails over SMTP, materializes EmailRecords and feeds
// them through the triage service. It is the mail-source collaborator: any
// delivery failure is answered to the SMTP client directly and never enters
// the core.
type SMTPSource struct {
	service         *core.TriageService
	logger          *zap.Logger
	textProcessor   *textproc.TextProcessor
	server          *smtp.Server
	listenAddr      string
	domain          string
	maxMessageBytes int64
	maxRecipients   int
	maxBodySize     int
	blockThreats    bool
}

// NewSMTPSource creates a new SMTP mail source
func NewSMTPSource(
	service *core.TriageService,
	logger *zap.Logger,
	textProcessor *textproc.TextProcessor,
	listenAddr string,
	domain string,
	maxMessageBytes int64,
	maxRecipients int,
	maxBodySize int,
	blockThreats bool,
) *SMTPSource {
	return &SMTPSource{
		service:         service,
		logger:          logger,
		textProcessor:   textProcessor,
		listenAddr:      listenAddr,
		domain:          domain,
		maxMessageBytes: maxMessageBytes,
		maxRecipients:   maxRecipients,
		maxBodySize:     maxBodySize,
		blockThreats:    blockThreats,
	}
}

// Start starts the SMTP server
func (s *SMTPSource) Start() error {
	s.server = smtp.NewServer(&smtpBackend{source: s})

	s.server.Addr = s.listenAddr
	s.server.Domain = s.domain
	s.server.ReadTimeout = 30 * time.Second
	s.server.WriteTimeout = 30 * time.Second
	s.server.MaxMessageBytes = s.maxMessageBytes
	s.server.MaxRecipients = s.maxRecipients
	s.server.AllowInsecureAuth = true

	s.logger.Info("SMTP source starting", zap.String("address", s.listenAddr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				s.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (s *SMTPSource) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	source *SMTPSource
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(c *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{
		source:     b.source,
		recipients: make([]string, 0),
	}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	source     *SMTPSource
	sender     string
	recipients []string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
	s.recipients = make([]string, 0)
}

// AuthPlain handles PLAIN authentication (not needed for a triage source)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt adds a recipient
func (s *smtpSession) Rcpt(to string, _ *smtp.RcptOptions) error {
	s.recipients = append(s.recipients, to)
	return nil
}

// Logout handles session termination
func (s *smtpSession) Logout() error {
	return nil
}

// Data receives the message body, materializes an EmailRecord and runs it
// through the triage pipeline.
func (s *smtpSession) Data(r io.Reader) error {
	rawData, err := io.ReadAll(r)
	if err != nil {
		s.source.logger.Error("Failed to read message data", zap.Error(err))
		return err
	}

	msg, err := mail.ReadMessage(bytes.NewReader(rawData))
	if err != nil {
		s.source.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	record := s.source.buildRecord(s.sender, s.recipients, msg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := s.source.service.AnalyzeEmail(ctx, record)

	s.source.logger.Info("Message triaged",
		zap.String("from", record.From),
		zap.String("verdict", string(result.Verdict)),
		zap.Int("threat_score", result.ThreatScore),
		zap.Float64("confidence", result.Confidence),
		zap.Float64("latency_ms", result.LatencyMs))

	if s.source.blockThreats && result.Verdict.IsThreat() {
		s.source.logger.Info("Rejecting threat email",
			zap.String("from", record.From),
			zap.String("verdict", string(result.Verdict)),
			zap.Int("threat_score", result.ThreatScore))
		return fmt.Errorf("550 Rejected by triage (verdict: %s, score: %d)",
			result.Verdict, result.ThreatScore)
	}

	return nil
}

// buildRecord converts a parsed message into a fully-materialized
// EmailRecord. Every required header key is present, empty when absent,
// so extractor lookups stay total.
func (s *SMTPSource) buildRecord(sender string, recipients []string, msg *mail.Message) *core.EmailRecord {
	from := msg.Header.Get("From")
	if from == "" {
		from = sender
	}

	to := msg.Header.Get("To")
	if to == "" && len(recipients) > 0 {
		to = recipients[0]
	}

	body, err := extractTextFromMessage(msg)
	if err != nil {
		s.logger.Warn("Failed to extract text content, using empty body", zap.Error(err))
		body = ""
	}
	body = s.textProcessor.ProcessText(body, s.maxBodySize)

	headers := map[string]string{
		core.HeaderReturnPath:     "",
		core.HeaderReplyTo:        "",
		core.HeaderAuthResults:    "",
		core.HeaderDKIMSignature:  "",
		core.HeaderXOriginatingIP: "",
		core.HeaderMessageID:      "",
	}
	for key, values := range msg.Header {
		if len(values) == 0 {
			continue
		}
		headers[normalizeHeaderKey(key)] = values[0]
	}

	received := time.Now()
	if date, err := msg.Header.Date(); err == nil {
		received = date
	}

	return &core.EmailRecord{
		From:       from,
		To:         to,
		Subject:    msg.Header.Get("Subject"),
		Body:       body,
		Headers:    headers,
		ReceivedAt: received,
	}
}

func normalizeHeaderKey(key string) string {
	b := []byte(key)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
