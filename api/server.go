package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/shamim-001/portfolio-backend/config"
	"github.com/shamim-001/portfolio-backend/store"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

func NewServer(st store.Store) (Server, error) {
	c := config.New()

	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(st, withConfig(c), withStartupTime(startupTime))

	// Get timeout values from config with sensible defaults
	readTimeout := config.GetDuration(c, "READ_TIMEOUT_SECONDS", 60*time.Second)
	writeTimeout := config.GetDuration(c, "WRITE_TIMEOUT_SECONDS", 60*time.Second)
	idleTimeout := config.GetDuration(c, "IDLE_TIMEOUT_SECONDS", 180*time.Second)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(st store.Store, opts ...func(*router)) *chi.Mux {
	var router router
	for _, opt := range opts {
		opt(&router)
	}
	c := router.config

	chiRouter := chi.NewRouter()
	chiRouter.Use(chimiddleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(SecurityHeadersMiddleware)

	acceptedOrigins := strings.Split(config.GetString(c, "ACCEPTED_ORIGINS", "*"), ",")
	chiRouter.Use(cors.Handler(cors.Options{
		AllowedOrigins:   acceptedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	sessions := newSessionManager(
		config.GetString(c, "ADMIN_SESSION_SECRET", ""),
		config.GetString(c, "ADMIN_PASSWORD_HASH", ""),
		config.GetString(c, "ADMIN_PASSWORD", ""),
		config.GetBool(c, "SECURE_COOKIES", true),
	)

	// Initialize all handlers
	handlers := initializeHandlers(st, c, sessions)

	// Setup all route types
	setupRoutes(chiRouter, handlers, sessions, router.startupTime)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
