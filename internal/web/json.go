package web

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"renotrack/internal/apperr"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", "error", err)
	}
}

type errResponse struct {
	Error string `json:"error"`
}

func errorBody(msg string) errResponse {
	return errResponse{Error: msg}
}

// writeError maps the application error taxonomy onto HTTP statuses.
// Validation and not-found messages go to the client as-is; everything else
// is logged server-side and masked.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		writeJSON(w, http.StatusBadRequest, errorBody(apperr.Message(err)))
	case apperr.KindNotFound:
		writeJSON(w, http.StatusNotFound, errorBody(apperr.Message(err)))
	default:
		s.logger.Error("request failed",
			"method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorBody(apperr.Message(err)))
	}
}
