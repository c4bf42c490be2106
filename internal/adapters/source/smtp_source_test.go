package source

import (
	"testing"

	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/textproc"
	"go.uber.org/zap"
)

func newTestSource() *SMTPSource {
	logger := zap.NewNop()
	return NewSMTPSource(nil, logger, textproc.NewTextProcessor(logger),
		"127.0.0.1:0", "localhost", 1<<20, 10, 4096, false)
}

func TestBuildRecordHeaderKeys(t *testing.T) {
	s := newTestSource()

	msg := parseMessage(t, "From: Alice <alice@example.com>\r\n"+
		"To: bob@corp.example\r\n"+
		"Subject: quarterly report\r\n"+
		"Return-Path: <bounce@example.com>\r\n"+
		"Authentication-Results: mx; spf=pass; dkim=pass\r\n"+
		"\r\n"+
		"hello\r\n")

	record := s.buildRecord("envelope@example.com", []string{"bob@corp.example"}, msg)

	// Every extractor-relied key must be present, lowercased, even when the
	// message never set it.
	for _, key := range []string{
		core.HeaderReturnPath,
		core.HeaderReplyTo,
		core.HeaderAuthResults,
		core.HeaderDKIMSignature,
		core.HeaderXOriginatingIP,
		core.HeaderMessageID,
	} {
		if _, ok := record.Headers[key]; !ok {
			t.Errorf("header key %q missing from record", key)
		}
	}

	if record.Headers[core.HeaderReturnPath] != "<bounce@example.com>" {
		t.Errorf("return-path = %q", record.Headers[core.HeaderReturnPath])
	}
	if record.Headers[core.HeaderReplyTo] != "" {
		t.Errorf("unset reply-to should be empty, got %q", record.Headers[core.HeaderReplyTo])
	}
	if record.From != "Alice <alice@example.com>" {
		t.Errorf("From = %q", record.From)
	}
	if record.Subject != "quarterly report" {
		t.Errorf("Subject = %q", record.Subject)
	}
}

func TestBuildRecordEnvelopeFallback(t *testing.T) {
	s := newTestSource()

	msg := parseMessage(t, "Subject: no from header\r\n\r\nbody\r\n")
	record := s.buildRecord("envelope@example.com", []string{"rcpt@corp.example"}, msg)

	if record.From != "envelope@example.com" {
		t.Errorf("From = %q, want the envelope sender fallback", record.From)
	}
	if record.To != "rcpt@corp.example" {
		t.Errorf("To = %q, want the first envelope recipient", record.To)
	}
}

func TestNormalizeHeaderKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Return-Path", "return-path"},
		{"AUTHENTICATION-RESULTS", "authentication-results"},
		{"x-originating-ip", "x-originating-ip"},
	}

	for _, tt := range tests {
		if got := normalizeHeaderKey(tt.in); got != tt.want {
			t.Errorf("normalizeHeaderKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
