package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/geoquiz/backend/internal/domain/quiz"
	"github.com/geoquiz/backend/internal/service"
)

// Handler holds all dependencies needed by HTTP handlers.
type Handler struct {
	quiz     *service.QuizService
	view     *View
	flagsDir string
	logger   *slog.Logger
}

// NewHandler creates a Handler with the given dependencies.
func NewHandler(qs *service.QuizService, v *View, flagsDir string, logger *slog.Logger) *Handler {
	return &Handler{
		quiz:     qs,
		view:     v,
		flagsDir: flagsDir,
		logger:   logger,
	}
}

// respondJSON writes a JSON response with the given status code.
func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// respondError writes {"error": msg} with the given status code.
func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON decodes the request body into v. On failure it writes a 400
// and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// handleQuizError maps quiz errors to HTTP responses. Returns true if an
// error was handled (caller should return).
func (h *Handler) handleQuizError(w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, service.ErrSelectionIncomplete):
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrNoSession),
		errors.Is(err, quiz.ErrNotRunning),
		errors.Is(err, quiz.ErrNothingToRetry):
		respondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, quiz.ErrEmptyPool):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("quiz error", "error", err)
		respondError(w, http.StatusInternalServerError, "internal error")
	}
	return true
}
