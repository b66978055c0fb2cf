package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/mailtrace/internal/store"
	"github.com/mailtrace/internal/web/handlers"
	"github.com/mailtrace/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	config     *Config
	store      *store.Store
	httpServer *http.Server
	router     *mux.Router
}

// NewServer creates a new web server instance
func NewServer(config *Config) (*Server, error) {
	server := &Server{config: config}

	if config.Features.PersistenceEnabled {
		st, err := store.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open store: %w", err)
		}
		if err := st.EnsureSchema(); err != nil {
			st.Close()
			return nil, err
		}
		server.store = st
	}

	server.setupRoutes()

	server.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      server.router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()

	runsHandler := &handlers.RunsHandler{Store: s.store}
	healthHandler := &handlers.HealthHandler{Store: s.store}

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/runs", runsHandler.CreateRun).Methods("POST")
	api.HandleFunc("/runs", runsHandler.ListRuns).Methods("GET")
	api.HandleFunc("/runs/{id:[0-9]+}", runsHandler.GetRun).Methods("GET")
	api.HandleFunc("/health", healthHandler.Health).Methods("GET")

	// Static file serving for the dashboard, when present
	staticDir := "internal/web/static"
	if _, err := os.Stat(staticDir); err == nil {
		s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(staticDir + "/")))
	}

	s.router.Use(middleware.CORS())
	s.router.Use(middleware.RequestLogging())
}

// Start starts the web server and blocks until a shutdown signal arrives.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		fmt.Printf("Starting server on http://%s\n", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server error: %v\n", err)
		}
	}()

	<-stop
	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		fmt.Printf("Server shutdown error: %v\n", err)
	}
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			fmt.Printf("Store close error: %v\n", err)
		}
	}

	fmt.Println("Server stopped")
	return nil
}
