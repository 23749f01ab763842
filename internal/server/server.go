package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/comparison"
	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/metrics"
	"github.com/iwvelando/mortgage-calculator/internal/optimizer"
	"github.com/iwvelando/mortgage-calculator/internal/scenario"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/optimization"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
)

// ScenarioStore persists named loan inputs.
type ScenarioStore interface {
	List() ([]scenario.SavedScenario, error)
	Save(name string, inputs config.LoanInputs, existingID string) (scenario.SavedScenario, bool, error)
	Load(id string) (scenario.SavedScenario, error)
	Delete(id string) error
	Clear() error
}

// Options configures the HTTP handler.
type Options struct {
	Logger         *zap.Logger
	MaxRequestSize int64
	Version        string
	Store          ScenarioStore
	Metrics        *metrics.Metrics
}

type handler struct {
	logger         *zap.Logger
	maxRequestSize int64
	version        string
	store          ScenarioStore
	metrics        *metrics.Metrics
	runner         *comparison.Runner
	now            func() time.Time
}

// NewHandler constructs the HTTP handler that serves the calculator API.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxRequestSize := opts.MaxRequestSize
	if maxRequestSize <= 0 {
		maxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	var observer comparison.Observer
	if opts.Metrics != nil {
		observer = opts.Metrics
	}

	h := &handler{
		logger:         logger,
		maxRequestSize: maxRequestSize,
		version:        trimmedVersion,
		store:          opts.Store,
		metrics:        opts.Metrics,
		runner:         comparison.NewRunner(logger, observer),
		now:            time.Now,
	}

	mux := http.NewServeMux()
	h.route(mux, "/api/schedule", h.handleSchedule)
	h.route(mux, "/api/compare", h.handleCompare)
	h.route(mux, "/api/optimize", h.handleOptimize)
	h.route(mux, "/api/export/csv", h.handleExportCSV)
	h.route(mux, "/api/export/pdf", h.handleExportPDF)
	h.route(mux, "/api/scenarios", h.handleScenarios)
	h.route(mux, "/api/scenarios/", h.handleScenario)
	h.route(mux, "/api/constraints", h.handleConstraints)
	h.route(mux, "/api/version", h.handleVersion)
	if opts.Metrics != nil {
		mux.Handle("/metrics", opts.Metrics.Handler())
	}

	return mux
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (h *handler) route(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		fn(rec, r)
		if h.metrics != nil {
			h.metrics.ObserveRequest(pattern, rec.status, time.Since(start))
		}
	})
}

// loanRequest is the common request body. Inputs missing from the body keep
// their default values; ScenarioID loads inputs from the scenario store.
type loanRequest struct {
	Inputs          config.LoanInputs       `json:"inputs"`
	ScenarioID      string                  `json:"scenarioId,omitempty"`
	Scenarios       []config.Scenario       `json:"scenarios,omitempty"`
	IncludeSchedule bool                    `json:"includeSchedule,omitempty"`
	Compare         bool                    `json:"compare,omitempty"`
	Optimizer       *config.OptimizerConfig `json:"optimizer,omitempty"`
}

type scheduleResponse struct {
	Scenario output.ScenarioRecord `json:"scenario"`
	Warnings []string              `json:"warnings,omitempty"`
	Duration string                `json:"duration"`
}

type compareResponse struct {
	Scenarios []output.ScenarioRecord `json:"scenarios"`
	Warnings  []string                `json:"warnings,omitempty"`
	Duration  string                  `json:"duration"`
}

type optimizeResponse struct {
	Optimization optimization.Summary `json:"optimization"`
	Warnings     []string             `json:"warnings,omitempty"`
	Duration     string               `json:"duration"`
}

type saveScenarioRequest struct {
	ID     string             `json:"id,omitempty"`
	Name   string             `json:"name"`
	Inputs *config.LoanInputs `json:"inputs"`
}

func (h *handler) handleSchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleSchedule"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, warnings, ok := h.decodeLoanRequest(w, r, op)
	if !ok {
		return
	}

	result, err := h.runner.Evaluate(comparison.BaselineName, req.Inputs)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, scheduleResponse{
		Scenario: output.NewScenarioRecord(result, true),
		Warnings: warnings,
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCompare"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, warnings, ok := h.decodeLoanRequest(w, r, op)
	if !ok {
		return
	}

	results, err := h.runner.Compare(r.Context(), config.Configuration{Loan: req.Inputs, Scenarios: req.Scenarios})
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	records := make([]output.ScenarioRecord, len(results))
	for i, result := range results {
		records[i] = output.NewScenarioRecord(result, req.IncludeSchedule)
	}
	h.writeJSON(w, http.StatusOK, compareResponse{
		Scenarios: records,
		Warnings:  warnings,
		Duration:  time.Since(start).String(),
	})
}

func (h *handler) handleOptimize(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleOptimize"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	req, warnings, ok := h.decodeLoanRequest(w, r, op)
	if !ok {
		return
	}
	if req.Optimizer == nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, "optimizer configuration is required", op)
		return
	}

	summary, err := optimizer.NewRunner(h.logger, h.now()).Optimize(r.Context(), comparison.BaselineName, req.Inputs, *req.Optimizer)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	h.writeJSON(w, http.StatusOK, optimizeResponse{
		Optimization: summary,
		Warnings:     warnings,
		Duration:     time.Since(start).String(),
	})
}

func (h *handler) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportCSV"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req, _, ok := h.decodeLoanRequest(w, r, op)
	if !ok {
		return
	}
	result, err := h.runner.Evaluate(comparison.BaselineName, req.Inputs)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	var buf bytes.Buffer
	if err := output.WriteScheduleCSV(&buf, result.Schedule); err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}
	h.writeAttachment(w, "text/csv", "amortization_schedule.csv", buf.Bytes(), op)
}

func (h *handler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleExportPDF"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	req, _, ok := h.decodeLoanRequest(w, r, op)
	if !ok {
		return
	}

	var results []comparison.Result
	var err error
	if req.Compare {
		results, err = h.runner.Compare(r.Context(), config.Configuration{Loan: req.Inputs, Scenarios: req.Scenarios})
	} else {
		var result comparison.Result
		result, err = h.runner.Evaluate(comparison.BaselineName, req.Inputs)
		results = []comparison.Result{result}
	}
	if err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	data, err := output.GeneratePDFReport(results[0], results, h.now())
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render PDF: %v", err), op)
		return
	}
	h.writeAttachment(w, "application/pdf", constants.DefaultPDFOutputFile, data, op)
}

func (h *handler) handleScenarios(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenarios"
	if h.store == nil {
		h.respondErrorWithOp(w, http.StatusNotImplemented, "scenario storage is not configured", op)
		return
	}

	switch r.Method {
	case http.MethodGet:
		scenarios, err := h.store.List()
		if err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		h.recordStoreSize(len(scenarios))
		h.writeJSON(w, http.StatusOK, map[string]interface{}{"scenarios": scenarios})
	case http.MethodPost:
		var req saveScenarioRequest
		if !h.decodeBody(w, r, &req, op) {
			return
		}
		if req.Inputs == nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, "scenario inputs are required", op)
			return
		}
		inputs, _ := req.Inputs.Clamp()

		saved, created, err := h.store.Save(req.Name, inputs, req.ID)
		if err != nil {
			h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
			return
		}
		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		if scenarios, err := h.store.List(); err == nil {
			h.recordStoreSize(len(scenarios))
		}
		h.writeJSON(w, status, saved)
	case http.MethodDelete:
		if err := h.store.Clear(); err != nil {
			h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
			return
		}
		h.recordStoreSize(0)
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleScenario(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleScenario"
	if h.store == nil {
		h.respondErrorWithOp(w, http.StatusNotImplemented, "scenario storage is not configured", op)
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/scenarios/"), "/")
	if id == "" || strings.Contains(id, "/") {
		h.respondErrorWithOp(w, http.StatusNotFound, "scenario id is required", op)
		return
	}

	switch r.Method {
	case http.MethodGet:
		saved, err := h.store.Load(id)
		if err != nil {
			h.respondStoreError(w, err, op)
			return
		}
		h.writeJSON(w, http.StatusOK, saved)
	case http.MethodDelete:
		if err := h.store.Delete(id); err != nil {
			h.respondStoreError(w, err, op)
			return
		}
		if scenarios, err := h.store.List(); err == nil {
			h.recordStoreSize(len(scenarios))
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

func (h *handler) handleConstraints(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	constraints := make(map[string]validation.InputConstraints)
	for _, key := range validation.InputKeys() {
		c, err := validation.Constraint(key)
		if err != nil {
			continue
		}
		constraints[key] = c
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"constraints": constraints,
		"defaults":    config.DefaultLoanInputs(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeLoanRequest reads a loanRequest, resolves a saved scenario when one is
// referenced, and clamps the inputs and every scenario override. It reports
// false after writing an error.
func (h *handler) decodeLoanRequest(w http.ResponseWriter, r *http.Request, op string) (loanRequest, []string, bool) {
	req := loanRequest{Inputs: config.DefaultLoanInputs()}
	if !h.decodeBody(w, r, &req, op) {
		return req, nil, false
	}

	if req.ScenarioID != "" {
		if h.store == nil {
			h.respondErrorWithOp(w, http.StatusNotImplemented, "scenario storage is not configured", op)
			return req, nil, false
		}
		saved, err := h.store.Load(req.ScenarioID)
		if err != nil {
			h.respondStoreError(w, err, op)
			return req, nil, false
		}
		req.Inputs = saved.Inputs
	}

	conf := config.Configuration{Loan: req.Inputs, Scenarios: req.Scenarios}
	warnings := conf.ValidateConfiguration()
	req.Inputs = conf.Loan
	req.Scenarios = conf.Scenarios
	for _, warning := range warnings {
		h.logger.Debug("input adjusted: "+warning,
			zap.String("op", op),
		)
	}
	return req, warnings, true
}

func (h *handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxBytesErr):
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request exceeds limit of %d bytes", h.maxRequestSize), op)
		case errors.Is(err, io.EOF):
			h.respondErrorWithOp(w, http.StatusBadRequest, "request body is required", op)
		default:
			h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err), op)
		}
		return false
	}
	return true
}

func (h *handler) recordStoreSize(n int) {
	if h.metrics != nil {
		h.metrics.SetSavedScenarios(n)
	}
}

func (h *handler) respondStoreError(w http.ResponseWriter, err error, op string) {
	if errors.Is(err, scenario.ErrNotFound) {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return
	}
	h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func (h *handler) writeAttachment(w http.ResponseWriter, contentType, filename string, data []byte, op string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write response body",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
