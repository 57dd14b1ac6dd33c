// Package server exposes the forecast engine and per-session scenario stores
// over an HTTP API.
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

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/lendforge/lending-forecast/internal/config"
	"github.com/lendforge/lending-forecast/internal/export"
	"github.com/lendforge/lending-forecast/internal/forecast"
	"github.com/lendforge/lending-forecast/internal/scenario"
	"github.com/lendforge/lending-forecast/pkg/constants"
	"github.com/lendforge/lending-forecast/pkg/output"
	"go.uber.org/zap"
)

// ContentTypeXLSX is the MIME type for exported workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type handler struct {
	logger      *zap.Logger
	sessions    *scenario.Sessions
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the forecast API.
func NewHandler(logger *zap.Logger, cfg *Config, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	maxBodySize := constants.DefaultMaxBodySizeBytes
	sessionTTL, _ := time.ParseDuration(constants.DefaultSessionTTL)
	if cfg != nil {
		if cfg.BodySizeBytes() > 0 {
			maxBodySize = cfg.BodySizeBytes()
		}
		if cfg.SessionTTLDuration() > 0 {
			sessionTTL = cfg.SessionTTLDuration()
		}
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{
		logger:      logger,
		sessions:    scenario.NewSessions(logger, sessionTTL),
		maxBodySize: maxBodySize,
		version:     trimmedVersion,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/api/forecast", h.handleForecast)
	r.Route("/api/scenarios", func(r chi.Router) {
		r.Get("/", h.handleListScenarios)
		r.Delete("/", h.handleClearScenarios)
		r.Put("/{name}", h.handleSaveScenario)
		r.Get("/{name}", h.handleGetScenario)
		r.Delete("/{name}", h.handleDeleteScenario)
	})
	r.Get("/api/compare", h.handleCompare)
	r.Post("/api/export", h.handleExport)
	r.Get("/api/version", h.handleVersion)

	return r
}

type forecastRequest struct {
	Name       string               `json:"name"`
	Parameters config.ParameterSpec `json:"parameters"`
}

type forecastResponse struct {
	Result   *forecast.Result `json:"result"`
	CSV      string           `json:"csv"`
	Warnings []string         `json:"warnings,omitempty"`
	Duration string           `json:"duration"`
}

type exportRequest struct {
	Scenarios []string `json:"scenarios"`
}

func (h *handler) handleForecast(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	req, ok := h.decodeForecastRequest(w, r, "server.handleForecast")
	if !ok {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = "Forecast"
	}

	params := req.Parameters.Resolve(config.DefaultParameters())
	result, err := forecast.Compute(h.logger, name, params)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleForecast")
		return
	}

	elapsed := time.Since(start)
	h.logger.Info("forecast computed",
		zap.String("op", "server.handleForecast"),
		zap.String("scenario", name),
		zap.Int("rows", len(result.Rows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, forecastResponse{
		Result:   result,
		CSV:      output.CsvString([]forecast.Result{*result}),
		Warnings: params.Warnings(),
		Duration: elapsed.String(),
	})
}

func (h *handler) handleSaveScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	req, ok := h.decodeForecastRequest(w, r, "server.handleSaveScenario")
	if !ok {
		return
	}

	params := req.Parameters.Resolve(config.DefaultParameters())
	result, err := forecast.Compute(h.logger, name, params)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSaveScenario")
		return
	}

	store := h.sessionStore(w, r)
	if err := store.Save(result); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleSaveScenario")
		return
	}

	h.logger.Info("scenario saved",
		zap.String("op", "server.handleSaveScenario"),
		zap.String("scenario", name),
		zap.Int("stored", store.Count()),
	)

	h.writeJSON(w, http.StatusOK, forecastResponse{
		Result:   result,
		Warnings: params.Warnings(),
		Duration: "0s",
	})
}

func (h *handler) handleListScenarios(w http.ResponseWriter, r *http.Request) {
	store := h.sessionStore(w, r)
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"scenarios": store.List(),
	})
}

func (h *handler) handleGetScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	store := h.sessionStore(w, r)

	result, ok := store.Get(name)
	if !ok {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("scenario %q not found", name), "server.handleGetScenario")
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

func (h *handler) handleDeleteScenario(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	store := h.sessionStore(w, r)

	if !store.Delete(name) {
		h.respondError(w, http.StatusNotFound, fmt.Sprintf("scenario %q not found", name), "server.handleDeleteScenario")
		return
	}

	h.logger.Info("scenario deleted",
		zap.String("op", "server.handleDeleteScenario"),
		zap.String("scenario", name),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleClearScenarios(w http.ResponseWriter, r *http.Request) {
	store := h.sessionStore(w, r)
	store.Clear()

	h.logger.Info("scenarios cleared",
		zap.String("op", "server.handleClearScenarios"),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	store := h.sessionStore(w, r)

	if store.Count() < 2 {
		h.respondError(w, http.StatusUnprocessableEntity,
			fmt.Sprintf("comparison requires at least 2 saved scenarios, have %d", store.Count()),
			"server.handleCompare")
		return
	}

	comparison, err := store.Compare(r.URL.Query().Get("metric"))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error(), "server.handleCompare")
		return
	}
	h.writeJSON(w, http.StatusOK, comparison)
}

func (h *handler) handleExport(w http.ResponseWriter, r *http.Request) {
	var req exportRequest
	if !h.decodeJSON(w, r, &req, "server.handleExport") {
		return
	}

	store := h.sessionStore(w, r)

	var results []*forecast.Result
	if len(req.Scenarios) == 0 {
		results = store.All()
	} else {
		for _, name := range req.Scenarios {
			result, ok := store.Get(name)
			if !ok {
				h.respondError(w, http.StatusNotFound, fmt.Sprintf("scenario %q not found", name), "server.handleExport")
				return
			}
			results = append(results, result)
		}
	}

	if len(results) == 0 {
		h.respondError(w, http.StatusUnprocessableEntity, "no saved scenarios to export", "server.handleExport")
		return
	}

	// Build the workbook fully before touching the response so an export
	// failure still produces a clean JSON error.
	var buf bytes.Buffer
	if err := export.Write(&buf, results); err != nil {
		h.respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to build workbook: %v", err), "server.handleExport")
		return
	}

	h.logger.Info("workbook exported",
		zap.String("op", "server.handleExport"),
		zap.Int("scenarios", len(results)),
		zap.Int("bytes", buf.Len()),
	)

	w.Header().Set("Content-Type", ContentTypeXLSX)
	w.Header().Set("Content-Disposition", `attachment; filename="lending-forecast.xlsx"`)
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error("failed to stream workbook",
			zap.String("op", "server.handleExport"),
			zap.Error(err),
		)
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// sessionStore resolves the caller's scenario store from the session cookie,
// creating a session (and setting the cookie) when needed.
func (h *handler) sessionStore(w http.ResponseWriter, r *http.Request) *scenario.Store {
	var id uuid.UUID
	if cookie, err := r.Cookie(constants.SessionCookieName); err == nil {
		if parsed, parseErr := uuid.Parse(cookie.Value); parseErr == nil {
			id = parsed
		}
	}

	resolvedID, store := h.sessions.Acquire(id)
	if resolvedID != id {
		http.SetCookie(w, &http.Cookie{
			Name:     constants.SessionCookieName,
			Value:    resolvedID.String(),
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return store
}

func (h *handler) decodeForecastRequest(w http.ResponseWriter, r *http.Request, op string) (*forecastRequest, bool) {
	var req forecastRequest
	if !h.decodeJSON(w, r, &req, op) {
		return nil, false
	}
	return &req, true
}

// decodeJSON decodes the request body into v, enforcing the body size limit.
// An empty body decodes to the zero value.
func (h *handler) decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}, op string) bool {
	if h.maxBodySize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	}

	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respondError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request exceeds limit of %d bytes", h.maxBodySize), op)
		return false
	}

	h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err), op)
	return false
}

func (h *handler) respondError(w http.ResponseWriter, status int, msg string, op string) {
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
