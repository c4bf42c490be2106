package httpapi

import (
	"bufio"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/dataset"
	"go.uber.org/zap"
)

func newTestServer() *Server {
	service := core.NewTriageService(
		core.NewExtractor(nil, nil),
		core.NewScorer(core.DefaultWeights(), core.DefaultThresholds()),
		nil,
		core.NewHistory(10),
		zap.NewNop(),
		false,
		time.Duration(0),
		nil,
		core.DefaultEvaluationFigures(),
	)
	generator := dataset.NewGenerator(dataset.DefaultPools(), 0, 0, zap.NewNop())
	return NewServer(service, generator, zap.NewNop(), "127.0.0.1:0")
}

func doRequest(s *Server, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	s.server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp["status"] != "healthy" {
		t.Errorf("status field = %q, want \"healthy\"", resp["status"])
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	s := newTestServer()

	body, _ := json.Marshal(map[string]interface{}{
		"from":    "attacker@fake-bank.example",
		"to":      "victim@corp.example",
		"subject": "URGENT: verify your account",
		"body":    "act now at https://bit.ly/verify",
		"headers": map[string]string{
			"Return-Path": "<bounce@other.example>",
		},
	})

	rec := doRequest(s, http.MethodPost, "/api/v1/analyze", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var result core.ScoreResult
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if result.Verdict != core.VerdictPhishing {
		t.Errorf("Verdict = %s, want %s", result.Verdict, core.VerdictPhishing)
	}
	if result.ThreatScore != 80 {
		t.Errorf("ThreatScore = %d, want 80", result.ThreatScore)
	}
	if !result.Features.DomainMismatch {
		t.Error("expected a domain mismatch from the mixed-case Return-Path header")
	}
}

func TestAnalyzeRejectsMalformedBody(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodPost, "/api/v1/analyze", []byte("{nope"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s := newTestServer()

	body, _ := json.Marshal(map[string]string{"from": "someone@example.com"})
	doRequest(s, http.MethodPost, "/api/v1/analyze", body)

	rec := doRequest(s, http.MethodGet, "/api/v1/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var metrics core.RunningMetrics
	if err := json.NewDecoder(rec.Body).Decode(&metrics); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if metrics.TotalAnalyzed != 1 {
		t.Errorf("TotalAnalyzed = %d, want 1", metrics.TotalAnalyzed)
	}
}

func TestGenerateDatasetStream(t *testing.T) {
	s := newTestServer()

	body, _ := json.Marshal(generateRequest{TotalRecords: 150, FraudRatio: 0.20, Seed: 42})
	rec := doRequest(s, http.MethodPost, "/api/v1/dataset/generate", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/x-ndjson" {
		t.Errorf("Content-Type = %q, want application/x-ndjson", ct)
	}

	var events []generateEvent
	scanner := bufio.NewScanner(rec.Body)
	scanner.Buffer(make([]byte, 1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ev generateEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			t.Fatalf("invalid stream line %q: %v", line, err)
		}
		events = append(events, ev)
	}

	if len(events) < 2 {
		t.Fatalf("got %d events, want progress events plus a ready event", len(events))
	}

	last := events[len(events)-1]
	if last.Event != "ready" {
		t.Fatalf("last event = %q, want \"ready\"", last.Event)
	}
	if len(last.Records) != 150 {
		t.Errorf("ready event carries %d records, want 150", len(last.Records))
	}
	if last.Legit+last.Fraud != 150 {
		t.Errorf("class counts %d + %d do not sum to 150", last.Legit, last.Fraud)
	}

	for _, ev := range events[:len(events)-1] {
		if ev.Event != "progress" {
			t.Errorf("unexpected event %q before the terminal ready event", ev.Event)
		}
		if ev.Progress == nil || ev.Progress.Total != 150 {
			t.Errorf("progress event missing totals: %+v", ev.Progress)
		}
	}
}
