package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/conorfennell/myeng/internal/domain"
)

type createTestParams struct {
	ID          *int64 `arg:"id"`
	Theme       string `arg:"theme"`
	Questions   string `arg:"questions"`
	PassedUsers string `arg:"passed_users"`
}

func (s *Server) handleCreateTest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := readArgs(w, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		errs := argErrors{}
		p := createTestParams{
			ID:          a.int64Ptr("id", errs),
			Theme:       a.str("theme"),
			Questions:   a.str("questions"),
			PassedUsers: a.str("passed_users"),
		}
		if len(errs) > 0 {
			writeArgErrors(w, errs)
			return
		}

		test := domain.Test{
			ID:          deref(p.ID),
			Theme:       p.Theme,
			Questions:   p.Questions,
			PassedUsers: domain.ParsePassedUsers(p.PassedUsers),
		}
		if _, err := s.tests.Create(r.Context(), test); err != nil {
			s.writeOutcome(w, r, "error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok - test added"})
	}
}

// handleAssignTest gives the user the next test of the theme they have not taken.
func (s *Server) handleAssignTest() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		userID, err := pathInt64(vars, "user_id")
		if err != nil {
			writeArgErrors(w, argErrors{"user_id": err.Error()})
			return
		}

		test, err := s.tests.Assign(r.Context(), vars["theme"], userID)
		if err != nil {
			s.writeOutcome(w, r, "error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"test":    domain.TestMap(test),
			"message": "ok",
		})
	}
}
