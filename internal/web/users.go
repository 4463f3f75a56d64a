package web

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/conorfennell/myeng/internal/domain"
)

type createUserParams struct {
	ID           *int64 `arg:"id" validate:"required"`
	Surname      string `arg:"surname"`
	Name         string `arg:"name"`
	Age          *int   `arg:"age"`
	Address      string `arg:"address"`
	Email        string `arg:"email"`
	Password     string `arg:"password"`
	TelegramName string `arg:"telegram_name"`
	Aim          string `arg:"aim"`
}

func parseCreateUser(a args) (createUserParams, argErrors, error) {
	errs := argErrors{}
	p := createUserParams{
		ID:           a.int64Ptr("id", errs),
		Surname:      a.str("surname"),
		Name:         a.str("name"),
		Age:          a.intPtr("age", errs),
		Address:      a.str("address"),
		Email:        a.str("email"),
		Password:     a.str("password"),
		TelegramName: a.str("telegram_name"),
		Aim:          a.str("aim"),
	}
	err := check(&p, errs)
	return p, errs, err
}

// handleListUsers returns every registered user.
func (s *Server) handleListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := s.users.List(r.Context())
		if err != nil {
			s.writeOutcome(w, r, "error", err)
			return
		}
		out := make([]map[string]any, 0, len(users))
		for _, u := range users {
			out = append(out, domain.UserMap(u))
		}
		writeJSON(w, http.StatusOK, map[string]any{"users": out})
	}
}

// handleGetUser returns one user's profile.
func (s *Server) handleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(mux.Vars(r), "id")
		if err != nil {
			writeArgErrors(w, argErrors{"id": err.Error()})
			return
		}

		user, err := s.users.Get(r.Context(), id)
		if err != nil {
			s.writeOutcome(w, r, "message", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"user_data": domain.UserMap(user),
			"message":   "ok",
		})
	}
}

// handleDeleteUser removes a user.
func (s *Server) handleDeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathInt64(mux.Vars(r), "id")
		if err != nil {
			writeArgErrors(w, argErrors{"id": err.Error()})
			return
		}

		if err := s.users.Delete(r.Context(), id); err != nil {
			s.writeOutcome(w, r, "message", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"message": "ok, user successfully deleted"})
	}
}

// handleCreateUser registers a user under a client-chosen id.
func (s *Server) handleCreateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := readArgs(w, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		p, errs, err := parseCreateUser(a)
		if err != nil {
			s.writeOutcome(w, r, "error", err)
			return
		}
		if len(errs) > 0 {
			writeArgErrors(w, errs)
			return
		}

		user := domain.User{
			ID:           *p.ID,
			Surname:      p.Surname,
			Name:         p.Name,
			Age:          deref(p.Age),
			Address:      p.Address,
			Email:        p.Email,
			TelegramName: p.TelegramName,
			Aim:          p.Aim,
			Password:     p.Password,
		}
		if err := s.users.Create(r.Context(), user); err != nil {
			s.writeOutcome(w, r, "message", err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": "OK - the user has been added"})
	}
}
