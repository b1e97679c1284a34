// Package server provides the HTTP server and route wiring
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/craveapp/crave/internal/application/user"
	"github.com/craveapp/crave/internal/infrastructure/config"
	"github.com/craveapp/crave/internal/infrastructure/http/handlers"
	"github.com/craveapp/crave/internal/infrastructure/http/middleware"
	"github.com/craveapp/crave/internal/ports/inbound"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	config          *config.Config
	logger          *zap.Logger
	router          *chi.Mux
	server          *http.Server
	resolverService inbound.ResolverService
	historyService  inbound.HistoryService
	userService     *user.UserService
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	resolverService inbound.ResolverService,
	historyService inbound.HistoryService,
	userService *user.UserService,
) *Server {
	s := &Server{
		config:          cfg,
		logger:          logger.Named("http-server"),
		resolverService: resolverService,
		historyService:  historyService,
		userService:     userService,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return s
}

// setupRouter configures routes and middleware
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))

	r.Get("/health", s.handleHealth)

	authHandlers := handlers.NewAuthHandlers(s.userService, s.logger)
	recipeHandlers := handlers.NewRecipeHandlers(s.resolverService, s.logger)
	historyHandlers := handlers.NewHistoryHandlers(s.historyService, s.logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandlers.Register)
			r.Post("/login", authHandlers.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(s.userService))

			r.Post("/recipes/resolve", recipeHandlers.Resolve)
			r.Post("/recipes/{id}/variation", recipeHandlers.Vary)

			r.Route("/history", func(r chi.Router) {
				r.Get("/", historyHandlers.List)
				r.Post("/{id}/save", historyHandlers.Save)
				r.Post("/{id}/unsave", historyHandlers.Unsave)
				r.Delete("/{id}", historyHandlers.Delete)
			})
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","app":%q,"version":%q}`, s.config.App.Name, s.config.App.Version)
}

// Start begins listening for requests
func (s *Server) Start() error {
	s.logger.Info("HTTP server starting", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down")
	return s.server.Shutdown(ctx)
}
