// Package httpapi exposes the estimate pipeline over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/aviniti/estimate-engine/internal/dashboard"
	"github.com/aviniti/estimate-engine/internal/estimate"
	"github.com/aviniti/estimate-engine/internal/report"
	"github.com/aviniti/estimate-engine/internal/session"
)

// Server wires the pipeline components behind the public endpoints. A nil
// caller switches analysis to the deterministic sample generator, so the API
// stays usable without model credentials.
type Server struct {
	caller      estimate.LLMCaller
	transcriber estimate.Transcriber
	store       session.Store
	submissions *estimate.SubmissionStore
	dashboards  *dashboard.Generator
	renderer    *report.ChromiumPDFRenderer
	logger      *log.Logger
}

type Config struct {
	Caller      estimate.LLMCaller
	Transcriber estimate.Transcriber
	Store       session.Store
	Renderer    *report.ChromiumPDFRenderer
	Logger      *log.Logger
}

func NewServer(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		caller:      cfg.Caller,
		transcriber: cfg.Transcriber,
		store:       cfg.Store,
		submissions: estimate.NewSubmissionStore(),
		dashboards:  dashboard.NewGenerator(cfg.Caller, logger),
		renderer:    cfg.Renderer,
		logger:      logger,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/v1/dashboard", s.handleDashboard)
	mux.HandleFunc("/v1/report", s.handleReport)
	mux.HandleFunc("/v1/fallback-request", s.handleFallbackRequest)
	mux.HandleFunc("/v1/submissions/", s.handleSubmission)
	mux.HandleFunc("/v1/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorPayload struct {
	Error     string `json:"error"`
	Details   string `json:"details,omitempty"`
	ErrorType string `json:"errorType,omitempty"`
}

// writeEstimateError maps pipeline error types onto status codes and the
// error body contract.
func writeEstimateError(w http.ResponseWriter, err error) {
	var val *estimate.ValidationError
	if errors.As(err, &val) {
		writeJSON(w, http.StatusBadRequest, errorPayload{Error: val.Error(), ErrorType: "validation"})
		return
	}
	var cfg *estimate.ConfigError
	if errors.As(err, &cfg) {
		writeJSON(w, http.StatusInternalServerError, errorPayload{Error: cfg.Error(), ErrorType: "configuration"})
		return
	}
	var tr *estimate.TranscriptionError
	if errors.As(err, &tr) {
		writeJSON(w, http.StatusBadGateway, errorPayload{Error: tr.Error(), ErrorType: "transcription"})
		return
	}
	var an *estimate.AnalysisError
	if errors.As(err, &an) {
		writeJSON(w, http.StatusBadGateway, errorPayload{Error: an.Error(), Details: an.Details, ErrorType: "analysis"})
		return
	}
	writeJSON(w, http.StatusInternalServerError, errorPayload{Error: err.Error()})
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func decodeBody(r *http.Request, dst any) error {
	blob, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	if len(blob) == 0 {
		blob = []byte("{}")
	}
	return json.Unmarshal(blob, dst)
}

type analyzeResponse struct {
	SessionKey string                  `json:"sessionKey"`
	Result     estimate.AnalysisResult `json:"result"`
	Mock       bool                    `json:"mock,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var req estimate.Request
	if err := decodeBody(r, &req); err != nil {
		writeEstimateError(w, &estimate.ValidationError{Reason: "malformed request body"})
		return
	}
	if req.SessionKey == "" {
		req.SessionKey = uuid.NewString()
	}

	if s.caller == nil {
		result := estimate.GenerateMockAnalysis(req.IdeaDetails.Description, req.SelectedPlatforms)
		writeJSON(w, http.StatusOK, analyzeResponse{SessionKey: req.SessionKey, Result: result, Mock: true})
		return
	}

	// One orchestrator per request keeps concurrent sessions independent.
	orch := estimate.NewOrchestrator(s.caller, s.transcriber, s.store, nil, s.logger)
	result, err := orch.Run(r.Context(), req)
	if err != nil {
		s.logger.Printf("analysis failed for session %s: %v", req.SessionKey, err)
		writeEstimateError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, analyzeResponse{SessionKey: req.SessionKey, Result: result})
}

type dashboardRequest struct {
	AppOverview      string             `json:"appOverview"`
	SelectedFeatures []estimate.Feature `json:"selectedFeatures"`
	IdeaText         string             `json:"ideaText,omitempty"`
	Language         string             `json:"language,omitempty"`
}

func (d dashboardRequest) input() dashboard.Input {
	names := make([]string, 0, len(d.SelectedFeatures))
	for _, f := range d.SelectedFeatures {
		names = append(names, f.Name)
	}
	cost, minDays, maxDays := report.Totals(d.SelectedFeatures)
	return dashboard.Input{
		AppOverview:  d.AppOverview,
		FeatureNames: names,
		TotalCost:    cost,
		MinTotalDays: minDays,
		MaxTotalDays: maxDays,
		Language:     d.Language,
		IdeaText:     d.IdeaText,
	}
}

// handleDashboard always answers 200: dashboard generation degrades to the
// deterministic fallback rather than failing.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var req dashboardRequest
	if err := decodeBody(r, &req); err != nil {
		writeEstimateError(w, &estimate.ValidationError{Reason: "malformed request body"})
		return
	}
	writeJSON(w, http.StatusOK, s.dashboards.Generate(r.Context(), req.input()))
}

type reportRequest struct {
	dashboardRequest
	Dashboard *dashboard.Dashboard `json:"dashboard,omitempty"`
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var req reportRequest
	if err := decodeBody(r, &req); err != nil {
		writeEstimateError(w, &estimate.ValidationError{Reason: "malformed request body"})
		return
	}
	data := report.Build(req.AppOverview, req.SelectedFeatures, req.Dashboard)

	switch strings.ToLower(r.URL.Query().Get("format")) {
	case "", "json":
		writeJSON(w, http.StatusOK, data)
	case "html":
		doc, err := report.HTML(data)
		if err != nil {
			writeEstimateError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(doc))
	case "pdf":
		if s.renderer == nil {
			writeJSON(w, http.StatusNotImplemented, errorPayload{Error: "pdf rendering is not enabled"})
			return
		}
		pdf, err := s.renderer.Render(r.Context(), data)
		if err != nil {
			writeEstimateError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write(pdf)
	default:
		writeEstimateError(w, &estimate.ValidationError{Reason: "unknown report format"})
	}
}

func (s *Server) handleFallbackRequest(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	var req estimate.ManualRequest
	if err := decodeBody(r, &req); err != nil {
		writeEstimateError(w, &estimate.ValidationError{Reason: "malformed request body"})
		return
	}
	if req.PreferredContact == "" {
		writeEstimateError(w, &estimate.ValidationError{Reason: "preferredContact is required"})
		return
	}
	sub := s.submissions.Create(req)
	writeJSON(w, http.StatusAccepted, map[string]any{
		"token":  sub.Token,
		"status": sub.Status,
	})
}

func (s *Server) handleSubmission(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	token := strings.TrimPrefix(r.URL.Path, "/v1/submissions/")
	if token == "" || strings.Contains(token, "/") {
		http.NotFound(w, r)
		return
	}
	sub := s.submissions.Get(token)
	if sub == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, sub)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":          true,
		"modelReady":  s.caller != nil,
		"audioReady":  s.transcriber != nil,
		"persistence": s.store != nil,
	})
}
