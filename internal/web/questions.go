package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/conorfennell/myeng/internal/domain"
)

type createQuestionParams struct {
	ID    *int64 `arg:"id"`
	Theme string `arg:"theme"`
	Text  string `arg:"text"`
	Ans   string `arg:"ans"`
}

func (s *Server) handleCreateQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := readArgs(w, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		errs := argErrors{}
		p := createQuestionParams{
			ID:    a.int64Ptr("id", errs),
			Theme: a.str("theme"),
			Text:  a.str("text"),
			Ans:   a.str("ans"),
		}
		if len(errs) > 0 {
			writeArgErrors(w, errs)
			return
		}

		// A missing or zero id lets the store assign the next one.
		q := domain.Question{ID: deref(p.ID), Theme: p.Theme, Text: p.Text, Ans: p.Ans}
		if _, err := s.questions.Create(r.Context(), q); err != nil {
			s.writeOutcome(w, r, "error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok - question added"})
	}
}

func (s *Server) handleGetQuestion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(mux.Vars(r), "id")
		if err != nil {
			writeArgErrors(w, argErrors{"id": err.Error()})
			return
		}

		q, err := s.questions.Get(r.Context(), id)
		if err != nil {
			s.writeOutcome(w, r, "error", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"question": domain.QuestionMap(q)})
	}
}

// handleListQuestions lists a theme's questions, or all of them without ?theme=.
func (s *Server) handleListQuestions() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := s.questions.List(r.Context(), r.URL.Query().Get("theme"))
		if err != nil {
			s.writeOutcome(w, r, "error", err)
			return
		}
		out := make([]map[string]any, 0, len(questions))
		for _, q := range questions {
			out = append(out, domain.QuestionMap(q))
		}
		writeJSON(w, http.StatusOK, map[string]any{"questions": out})
	}
}
