package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/notebase/internal/apperr"
)

// maxArgsBytes bounds a request body. Backups carry whole workspace
// snapshots, so this is generous.
const maxArgsBytes = 32 << 20

// Handler holds API route handlers.
type Handler struct {
	commands Commands
}

// NewHandler creates a new Handler.
func NewHandler(commands Commands) *Handler {
	return &Handler{commands: commands}
}

// ListCommands handles GET /api/commands.
func (h *Handler) ListCommands(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"commands": h.commands.Names()})
}

// Invoke handles POST /api/commands/{name}. The body is a JSON object of
// named arguments; it may be empty for commands that take none.
func (h *Handler) Invoke(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxArgsBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("request body too large"))
		} else {
			writeJSON(w, http.StatusBadRequest, errorBody("read body: "+err.Error()))
		}
		return
	}

	result, err := h.commands.Invoke(name, json.RawMessage(body))
	if err != nil {
		status := statusFor(err)
		if status >= http.StatusInternalServerError {
			slog.Error("command failed", slog.String("command", name), slog.String("error", err.Error()))
		} else {
			slog.Debug("command rejected", slog.String("command", name), slog.String("error", err.Error()))
		}
		writeJSON(w, status, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, resultResponse{Result: result})
}

// statusFor maps a failure onto an HTTP status.
func statusFor(err error) int {
	var unknown errUnknownCommand
	if errors.As(err, &unknown) {
		return http.StatusNotFound
	}
	switch apperr.KindOf(err) {
	case apperr.KindInvalid:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	case apperr.KindConstraint:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
