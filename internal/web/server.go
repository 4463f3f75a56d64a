package web

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Options tune the API surface.
type Options struct {
	// Prefix is prepended to every API route, e.g. "/api".
	Prefix string
	// StrictStatus maps not-found and conflict outcomes to 404/409.
	// Otherwise they are reported in a 200 body.
	StrictStatus bool
}

// Server holds the dependencies for the HTTP server.
type Server struct {
	users     UserService
	questions QuestionService
	tests     TestService
	store     Pinger
	logger    *zap.Logger
	opts      Options

	router  *mux.Router
	handler http.Handler
}

// NewServer creates and configures a new server.
func NewServer(
	opts Options,
	users UserService,
	questions QuestionService,
	tests TestService,
	store Pinger,
	logger *zap.Logger,
) *Server {
	s := &Server{
		users:     users,
		questions: questions,
		tests:     tests,
		store:     store,
		logger:    logger,
		opts:      opts,
		router:    mux.NewRouter(),
	}
	s.routes()
	s.handler = s.logRequests(s.router)
	return s
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// routes sets up the routing for the server. API paths are registered on
// the root router with the prefix prepended so a method mismatch is seen
// there and answered with 405.
func (s *Server) routes() {
	s.router.HandleFunc("/health", s.handleHealth()).Methods(http.MethodGet)

	p := s.opts.Prefix
	s.router.HandleFunc(p+"/users", s.handleListUsers()).Methods(http.MethodGet)
	s.router.HandleFunc(p+"/users", s.handleCreateUser()).Methods(http.MethodPost)
	s.router.HandleFunc(p+"/users/{id:[0-9]+}", s.handleGetUser()).Methods(http.MethodGet)
	s.router.HandleFunc(p+"/users/{id:[0-9]+}", s.handleDeleteUser()).Methods(http.MethodDelete)

	s.router.HandleFunc(p+"/questions", s.handleListQuestions()).Methods(http.MethodGet)
	s.router.HandleFunc(p+"/questions", s.handleCreateQuestion()).Methods(http.MethodPost)
	s.router.HandleFunc(p+"/questions/{id:[0-9]+}", s.handleGetQuestion()).Methods(http.MethodGet)

	s.router.HandleFunc(p+"/tests", s.handleCreateTest()).Methods(http.MethodPost)
	s.router.HandleFunc(p+"/tests/{theme}/{user_id:[0-9]+}", s.handleAssignTest()).Methods(http.MethodGet)

	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"message": "not found"})
	})
	s.router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]any{"message": "method not allowed"})
	})
}

// handleHealth checks that the store still answers.
func (s *Server) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Ping(r.Context()); err != nil {
			s.logger.Error("health check failed", zap.Error(err))
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
	}
}
