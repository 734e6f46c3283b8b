package api

import (
	"database/sql"
	"net/http"

	"pocketledger/config"
	"pocketledger/handlers"
	"pocketledger/middleware"

	"github.com/gorilla/mux"
)

// Server represents the API server
type Server struct {
	db     *sql.DB
	router *mux.Router
	cfg    *config.Config
}

// NewServer creates a new API server
func NewServer(db *sql.DB, cfg *config.Config) *Server {
	s := &Server{
		db:     db,
		router: mux.NewRouter(),
		cfg:    cfg,
	}
	s.RegisterRoutes()
	return s
}

// RegisterRoutes registers all API routes
func (s *Server) RegisterRoutes() {
	// Apply global middleware
	s.router.Use(middleware.EnableCORS(s.cfg.CORS.AllowedOrigins))
	s.router.Use(middleware.LogRequests)

	// Public routes (no session required)
	s.router.HandleFunc("/health", handlers.HealthCheck).Methods("GET", "OPTIONS")
	s.router.HandleFunc("/transactions", handlers.CreateTransaction).Methods("POST", "OPTIONS")

	// Read routes require a resolvable session cookie
	protected := s.router.PathPrefix("/transactions").Subrouter()
	protected.Use(middleware.RequireSession(s.cfg.Session.CookieName))
	protected.HandleFunc("", handlers.GetTransactions).Methods("GET")
	// /summary before /{id} so it is not captured as an id
	protected.HandleFunc("/summary", handlers.GetSummary).Methods("GET")
	protected.HandleFunc("/{id}", handlers.GetTransaction).Methods("GET")
}

// Handler returns the HTTP handler for the API server
func (s *Server) Handler() http.Handler {
	return s.router
}
