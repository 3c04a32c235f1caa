package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/casebase/internal/library"
)

// respondJSON encodes v before writing headers so an encoding failure still
// produces a well-formed 500.
func respondJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("failed to encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		data = []byte(`{"error":"internal error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(data, '\n'))
}

func respondError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	respondJSON(w, logger, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	respondJSON(w, s.logger, status, v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	respondError(w, s.logger, status, msg)
}

// writeLibraryError maps retrieval sentinels to HTTP statuses.
func (s *Server) writeLibraryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, library.ErrUnavailable):
		s.writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.Is(err, library.ErrNoMatch), errors.Is(err, library.ErrCaseNotFound):
		s.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, library.ErrCaseUnreadable):
		s.writeError(w, http.StatusInternalServerError, library.ErrCaseUnreadable.Error())
	default:
		s.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	return dec.Decode(v)
}
