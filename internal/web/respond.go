package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/conorfennell/myeng/internal/service"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeOutcome reports a service failure. Known outcomes go into the body
// under key; anything else is logged and answered with 500.
func (s *Server) writeOutcome(w http.ResponseWriter, r *http.Request, key string, err error) {
	status, known := s.outcomeStatus(err)
	if !known {
		s.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
		return
	}
	writeJSON(w, status, map[string]any{key: err.Error()})
}

func (s *Server) outcomeStatus(err error) (int, bool) {
	switch {
	case errors.Is(err, service.ErrUserExists),
		errors.Is(err, service.ErrAssignConflict):
		return s.strict(http.StatusConflict), true
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrNoSuchTest),
		errors.Is(err, service.ErrAllTestsPassed):
		return s.strict(http.StatusNotFound), true
	}
	return http.StatusInternalServerError, false
}

func (s *Server) strict(status int) int {
	if s.opts.StrictStatus {
		return status
	}
	return http.StatusOK
}
