// Package server exposes the calculators as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/iwvelando/finance-calculator/internal/metrics"
	"github.com/iwvelando/finance-calculator/internal/service"
	"github.com/iwvelando/finance-calculator/pkg/calculator"
	"github.com/iwvelando/finance-calculator/pkg/constants"
	"github.com/iwvelando/finance-calculator/pkg/currency"
	"github.com/iwvelando/finance-calculator/pkg/history"
	"github.com/iwvelando/finance-calculator/pkg/output"
	"github.com/iwvelando/finance-calculator/pkg/validation"
	"go.uber.org/zap"
)

type handler struct {
	logger      *zap.Logger
	svc         *service.Service
	metrics     *metrics.Metrics
	maxBodySize int64
	version     string
}

// NewHandler constructs the router serving the calculator API. A nil metrics
// disables both request instrumentation and the /metrics endpoint.
func NewHandler(logger *zap.Logger, svc *service.Service, m *metrics.Metrics, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if svc == nil {
		svc = service.New(logger, service.Options{})
	}
	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		svc:         svc,
		metrics:     m,
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware, accessLogMiddleware(logger, m))

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/emi", h.handleEMI).Methods(http.MethodPost)
	api.HandleFunc("/emi/schedule", h.handleEMISchedule).Methods(http.MethodPost)
	api.HandleFunc("/gst", h.handleGST).Methods(http.MethodPost)
	api.HandleFunc("/gst/rates", h.handleGSTRates).Methods(http.MethodGet)
	api.HandleFunc("/currency", h.handleCurrency).Methods(http.MethodPost)
	api.HandleFunc("/currencies", h.handleCurrencies).Methods(http.MethodGet)
	api.HandleFunc("/bmi", h.handleBMI).Methods(http.MethodPost)
	api.HandleFunc("/history/{calculator}", h.handleHistory).Methods(http.MethodGet)
	api.HandleFunc("/history/{calculator}", h.handleClearHistory).Methods(http.MethodDelete)
	api.HandleFunc("/version", h.handleVersion).Methods(http.MethodGet)

	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)
	if m != nil {
		router.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	}

	return router
}

type calculationResponse struct {
	Query   interface{}   `json:"query"`
	Result  interface{}   `json:"result"`
	Rows    []output.Row  `json:"rows"`
	Summary string        `json:"summary"`
	History history.Entry `json:"history"`
}

type errorsResponse struct {
	Errors validation.Errors `json:"errors"`
}

func newCalculationResponse(calc service.Calculation, query, result interface{}) calculationResponse {
	return calculationResponse{
		Query:   query,
		Result:  result,
		Rows:    calc.Report.Rows,
		Summary: calc.Report.Summary,
		History: calc.Entry,
	}
}

func (h *handler) handleEMI(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEMI"
	var form validation.EMIForm
	if !h.decodeForm(w, r, &form, op) {
		return
	}

	outcome, errs := h.svc.EMI(form)
	if !errs.Valid() {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: errs})
		return
	}
	h.writeJSON(w, http.StatusOK, newCalculationResponse(outcome.Calculation, outcome.Terms, outcome.Result))
}

func (h *handler) handleEMISchedule(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleEMISchedule"
	var form validation.EMIForm
	if !h.decodeForm(w, r, &form, op) {
		return
	}

	outcome, errs, err := h.svc.EMISchedule(form)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, err.Error(), op)
		return
	}
	if !errs.Valid() {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: errs})
		return
	}
	h.writeJSON(w, http.StatusOK, outcome)
}

func (h *handler) handleGST(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleGST"
	var form validation.GSTForm
	if !h.decodeForm(w, r, &form, op) {
		return
	}

	outcome, errs := h.svc.GST(form)
	if !errs.Valid() {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: errs})
		return
	}
	h.writeJSON(w, http.StatusOK, newCalculationResponse(outcome.Calculation, outcome.Query, outcome.Result))
}

func (h *handler) handleCurrency(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleCurrency"
	var form validation.CurrencyForm
	if !h.decodeForm(w, r, &form, op) {
		return
	}

	outcome, errs, err := h.svc.Currency(form)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, currency.ErrUnknownCurrency) {
			status = http.StatusUnprocessableEntity
		}
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}
	if !errs.Valid() {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: errs})
		return
	}
	h.writeJSON(w, http.StatusOK, newCalculationResponse(outcome.Calculation, outcome.Query, outcome.Result))
}

func (h *handler) handleBMI(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleBMI"
	var form validation.BMIForm
	if !h.decodeForm(w, r, &form, op) {
		return
	}

	outcome, errs := h.svc.BMI(form)
	if !errs.Valid() {
		h.writeJSON(w, http.StatusUnprocessableEntity, errorsResponse{Errors: errs})
		return
	}
	h.writeJSON(w, http.StatusOK, newCalculationResponse(outcome.Calculation, outcome.Query, outcome.Result))
}

func (h *handler) handleCurrencies(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"pivot":      constants.PivotCurrency,
		"currencies": h.svc.Currencies(),
	})
}

func (h *handler) handleGSTRates(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, struct {
		Default float64              `json:"default"`
		Rates   []calculator.GSTRate `json:"rates"`
	}{
		Default: h.svc.DefaultGSTRate(),
		Rates:   h.svc.GSTRates(),
	})
}

func (h *handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.historyKind(w, r, "server.handleHistory")
	if !ok {
		return
	}

	entries, err := h.svc.History(kind)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), "server.handleHistory")
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"calculator": kind,
		"entries":    entries,
	})
}

func (h *handler) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.historyKind(w, r, "server.handleClearHistory")
	if !ok {
		return
	}

	if err := h.svc.ClearHistory(kind); err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), "server.handleClearHistory")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) historyKind(w http.ResponseWriter, r *http.Request, op string) (service.Kind, bool) {
	kind, err := service.ParseKind(mux.Vars(r)["calculator"])
	if err != nil {
		h.respondErrorWithOp(w, http.StatusNotFound, err.Error(), op)
		return "", false
	}
	return kind, true
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// decodeForm reads a JSON form body, writing the error response itself when
// the body is too large or malformed.
func (h *handler) decodeForm(w http.ResponseWriter, r *http.Request, dst interface{}, op string) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondErrorWithOp(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize), op)
			return false
		}
		h.respondErrorWithOp(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
		return false
	}
	return true
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	if h.logger != nil {
		h.logger.Warn("request failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("error", msg),
		)
	}
	h.writeJSON(w, status, map[string]string{"error": msg})
}

// writeJSON encodes payload before committing the status, so a payload
// that cannot be encoded becomes a 500 rather than a truncated 200.
func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		if h.logger != nil {
			h.logger.Error("failed to encode JSON response", zap.Int("status", status), zap.Error(err))
		}
		status = http.StatusInternalServerError
		body = []byte(`{"error":"failed to encode response"}`)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(append(body, '\n')); err != nil && h.logger != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
