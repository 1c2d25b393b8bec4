package http

import (
	"errors"
	"log/slog"
	"net/http"

	"portfolio/internal/domain"
	"portfolio/internal/httpx"
	obsmw "portfolio/internal/observability/middleware"
)

const (
	msgInternal = "Terjadi kesalahan pada server."
	msgBadJSON  = "Format data tidak valid."
	lockedStack = "🔒"
)

type errorBody struct {
	Message string `json:"message"`
	Stack   string `json:"stack"`
}

type responder struct {
	production bool
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation), errors.Is(err, domain.ErrConflict):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, httpx.ErrBadJSON):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {message, stack}. Errors without a client-facing
// message are logged and reported as a generic 500.
func (rs responder) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	msg := domain.MessageOf(err)
	switch {
	case errors.Is(err, httpx.ErrBadJSON):
		msg = msgBadJSON
	case msg == "":
		msg = msgInternal
	}
	if status >= http.StatusInternalServerError {
		attrs := append([]any{"status", status, "error", err}, obsmw.LogAttrs(r.Context())...)
		slog.ErrorContext(r.Context(), "request failed", attrs...)
	}

	stack := lockedStack
	if !rs.production {
		stack = err.Error()
		var de *domain.Error
		if errors.As(err, &de) && de.Cause != nil {
			stack = de.Message + ": " + de.Cause.Error()
		}
	}
	httpx.WriteJSON(w, status, errorBody{Message: msg, Stack: stack})
}

func (rs responder) notFound(w http.ResponseWriter, r *http.Request) {
	rs.writeError(w, r, domain.NotFound("Halaman Tidak Ditemukan - "+r.URL.Path))
}

func (rs responder) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusMethodNotAllowed, errorBody{Message: "Method tidak diizinkan.", Stack: lockedStack})
}
