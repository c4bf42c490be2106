package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/dataset"
	"github.com/safecheck/safecheck/internal/di"
	"go.uber.org/zap"
)

func main() {
	flags := di.ParseFlags()

	// Build the dependency injection container
	container, err := di.BuildCLIContainer(flags)
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run dispatches to dataset generation or single-email analysis
func run(
	flags *di.CLIFlags,
	logger *zap.Logger,
	service *core.TriageService,
	generator *dataset.Generator,
) error {
	defer logger.Sync()

	if flags.GenerateRecords > 0 {
		return generateDataset(flags, logger, generator)
	}
	return analyzeEmail(flags, logger, service)
}

// generateDataset runs the synthetic dataset generator and writes the
// resulting records as a JSON document
func generateDataset(flags *di.CLIFlags, logger *zap.Logger, generator *dataset.Generator) error {
	seed := flags.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runCfg := dataset.RunConfig{
		TotalRecords: flags.GenerateRecords,
		FraudRatio:   flags.FraudRatio,
		Seed:         seed,
	}

	logger.Info("Generating dataset",
		zap.Int("records", runCfg.Clamped().TotalRecords),
		zap.Float64("fraud_ratio", runCfg.Clamped().FraudRatio),
		zap.Int64("seed", seed))

	run := generator.Start(context.Background(), runCfg)

	for progress := range run.Progress() {
		logger.Debug("Generation progress",
			zap.Int("processed", progress.Processed),
			zap.Int("total", progress.Total))
	}
	<-run.Done()

	if err := run.Err(); err != nil {
		return fmt.Errorf("dataset generation failed: %w", err)
	}

	var out io.Writer = os.Stdout
	if flags.OutputFile != "" {
		file, err := os.Create(flags.OutputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	if err := dataset.WriteJSON(out, run.Records()); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	legit, fraud := run.Counts()
	logger.Info("Dataset generated",
		zap.Int("legitimate", legit),
		zap.Int("fraudulent", fraud),
		zap.String("file", flags.OutputFile))
	return nil
}

// analyzeEmail parses one RFC 5322 message and prints the verdict breakdown
func analyzeEmail(flags *di.CLIFlags, logger *zap.Logger, service *core.TriageService) error {
	// Read email from file or stdin
	var emailReader io.Reader
	if flags.InputFile != "" {
		file, err := os.Open(flags.InputFile)
		if err != nil {
			return fmt.Errorf("failed to open input file %s: %w", flags.InputFile, err)
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", flags.InputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		return fmt.Errorf("failed to parse email: %w", err)
	}

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		return fmt.Errorf("failed to read email body: %w", err)
	}

	email := buildRecord(msg, string(bodyBytes))

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", email.From)
	fmt.Printf("To: %s\n", email.To)
	fmt.Printf("Subject: %s\n", email.Subject)
	fmt.Printf("Body length: %d bytes\n", len(email.Body))

	result := service.AnalyzeEmail(context.Background(), email)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Verdict: %s\n", result.Verdict)
	fmt.Printf("Threat score: %d\n", result.ThreatScore)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	fmt.Printf("Latency: %.2f ms\n", result.LatencyMs)
	fmt.Printf("Model used: %s\n", result.ModelUsed)

	fmt.Printf("\n=== Features ===\n")
	fmt.Printf("From domain: %s\n", result.Features.FromDomain)
	fmt.Printf("Return-Path domain: %s\n", result.Features.ReturnPathDomain)
	fmt.Printf("Domain mismatch: %t\n", result.Features.DomainMismatch)
	fmt.Printf("SPF pass: %t\n", result.Features.SPFPass)
	fmt.Printf("DKIM pass: %t\n", result.Features.DKIMPass)
	fmt.Printf("DMARC pass: %t\n", result.Features.DMARCPass)
	fmt.Printf("Urgency keywords: %s\n", strings.Join(result.Features.UrgencyKeywords, ", "))
	fmt.Printf("Links: %d (%d suspicious)\n", result.Features.LinkCount, result.Features.SuspiciousLinkCount)
	fmt.Printf("Attachments: %s\n", strings.Join(result.Features.AttachmentTypes, ", "))
	return nil
}

// buildRecord converts a parsed message into an EmailRecord with the header
// keys the extractor relies on always present
func buildRecord(msg *mail.Message, body string) *core.EmailRecord {
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
		headers[strings.ToLower(key)] = values[0]
	}

	received := time.Now()
	if date, err := msg.Header.Date(); err == nil {
		received = date
	}

	return &core.EmailRecord{
		From:       msg.Header.Get("From"),
		To:         msg.Header.Get("To"),
		Subject:    msg.Header.Get("Subject"),
		Body:       body,
		Headers:    headers,
		ReceivedAt: received,
	}
}
