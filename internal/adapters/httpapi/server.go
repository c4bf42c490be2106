package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/safecheck/safecheck/internal/core"
	"github.com/safecheck/safecheck/internal/dataset"
	"go.uber.org/zap"
)

// Server exposes the triage core over HTTP: single-record analysis, the
// metrics window and streaming dataset generation.
type Server struct {
	service   *core.TriageService
	generator *dataset.Generator
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a new HTTP API server
func NewServer(
	service *core.TriageService,
	generator *dataset.Generator,
	logger *zap.Logger,
	listenAddr string,
) *Server {
	s := &Server{
		service:   service,
		generator: generator,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/metrics", s.handleMetrics)
		r.Post("/dataset/generate", s.handleGenerateDataset)
	})

	s.server = &http.Server{
		Addr:         listenAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("HTTP API starting", zap.String("address", s.server.Addr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop shuts the HTTP server down gracefully
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// analyzeRequest is the wire shape of a raw email handed in for triage.
// Absent headers are filled with empty strings before extraction.
type analyzeRequest struct {
	From    string            `json:"from"`
	To      string            `json:"to"`
	Subject string            `json:"subject"`
	Body    string            `json:"body"`
	Date    string            `json:"date"`
	Headers map[string]string `json:"headers"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	record := &core.EmailRecord{
		From:       req.From,
		To:         req.To,
		Subject:    req.Subject,
		Body:       req.Body,
		Headers:    normalizeHeaders(req.Headers),
		ReceivedAt: parseDate(req.Date),
	}

	result := s.service.AnalyzeEmail(r.Context(), record)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.service.Metrics())
}

// generateRequest configures one dataset generation run. Out-of-range
// values are clamped, never rejected.
type generateRequest struct {
	TotalRecords int     `json:"totalRecords"`
	FraudRatio   float64 `json:"fraudRatio"`
	Seed         int64   `json:"seed,omitempty"`
}

type generateEvent struct {
	Event    string            `json:"event"`
	Progress *dataset.Progress `json:"progress,omitempty"`
	Records  []dataset.Record  `json:"records,omitempty"`
	Legit    int               `json:"legit,omitempty"`
	Fraud    int               `json:"fraud,omitempty"`
}

// handleGenerateDataset streams newline-delimited JSON: one progress event
// per batch, then a terminal ready event carrying the full record set.
func (s *Server) handleGenerateDataset(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	w.Header().Set("Content-Type", "application/x-ndjson")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	enc := json.NewEncoder(w)

	run := s.generator.Start(r.Context(), dataset.RunConfig{
		TotalRecords: req.TotalRecords,
		FraudRatio:   req.FraudRatio,
		Seed:         req.Seed,
	})

	for progress := range run.Progress() {
		p := progress
		if err := enc.Encode(generateEvent{Event: "progress", Progress: &p}); err != nil {
			return
		}
		if flusher != nil {
			flusher.Flush()
		}
	}

	<-run.Done()
	if err := run.Err(); err != nil {
		s.logger.Warn("Dataset generation aborted", zap.Error(err))
		return
	}

	legit, fraud := run.Counts()
	enc.Encode(generateEvent{
		Event:   "ready",
		Records: run.Records(),
		Legit:   legit,
		Fraud:   fraud,
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func normalizeHeaders(in map[string]string) map[string]string {
	out := map[string]string{
		core.HeaderReturnPath:     "",
		core.HeaderReplyTo:        "",
		core.HeaderAuthResults:    "",
		core.HeaderDKIMSignature:  "",
		core.HeaderXOriginatingIP: "",
		core.HeaderMessageID:      "",
	}
	for k, v := range in {
		out[lowerASCII(k)] = v
	}
	return out
}

func parseDate(date string) time.Time {
	if date == "" {
		return time.Now()
	}
	for _, layout := range []string{time.RFC3339, time.RFC1123Z, time.RFC1123} {
		if t, err := time.Parse(layout, date); err == nil {
			return t
		}
	}
	return time.Now()
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
