package screening

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"psyfind/internal/apperr"
	"psyfind/internal/platform/logger"
)

type Handler struct {
	svc      *Service
	validate *validator.Validate
	log      *logger.Logger
}

func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{
		svc:      svc,
		validate: validator.New(),
		log:      log,
	}
}

func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, apperr.Validation(err.Error()))
		return
	}

	resp, err := h.svc.Analyze(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) AnalyzeText(w http.ResponseWriter, r *http.Request) {
	var req TextAnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, apperr.Validation(err.Error()))
		return
	}

	resp, err := h.svc.AnalyzeText(r.Context(), req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperr.Validation("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, apperr.Validation(err.Error()))
		return
	}

	h.writeJSON(w, http.StatusOK, h.svc.Chat(r.Context(), req))
}

func (h *Handler) SessionReportPDF(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	lang := r.URL.Query().Get("language")

	data, err := h.svc.ExportPDF(r.Context(), sessionID, lang)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="report_%s.pdf"`, sessionID))
	w.Write(data)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "PsyFind",
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) && appErr.Kind != apperr.KindInternal {
		body := map[string]any{"error": appErr.Message}
		if appErr.Details != nil {
			body["details"] = appErr.Details
		}
		h.writeJSON(w, appErr.HTTPStatus(), body)
		return
	}

	h.log.Error("request failed", "error", err)
	h.writeJSON(w, http.StatusInternalServerError, map[string]any{
		"error": "Analysis failed. Please try again.",
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/api/analyze", h.Analyze)
	r.Post("/api/analyze/text", h.AnalyzeText)
	r.Post("/api/chat", h.Chat)
	r.Get("/api/sessions/{sessionID}/report.pdf", h.SessionReportPDF)
	r.Get("/health", h.Health)
}
