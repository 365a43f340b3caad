// Package server exposes the panel API over HTTP.
package server

import (
	"net/http"

	"krixo-panel/internal/auth"
	"krixo-panel/internal/backend"
	"krixo-panel/internal/common/config"
	"krixo-panel/internal/common/logger"
	"krixo-panel/internal/dashboard"
	"krixo-panel/internal/hiring"
	"krixo-panel/internal/profile"
	"krixo-panel/internal/requests"
	"krixo-panel/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the collaborators the HTTP layer routes to.
type Deps struct {
	Server     config.ServerConfig
	Store      session.Storage
	API        backend.API
	Auth       *auth.Service
	Hiring     *hiring.Service
	Requests   *requests.Service
	Profile    *profile.Service
	Dashboards *dashboard.Registry
	Gatherer   prometheus.Gatherer
	Logger     logger.Logger
}

type Server struct {
	deps   Deps
	logger logger.Logger
	router chi.Router
}

func New(deps Deps) *Server {
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}
	s := &Server{
		deps:   deps,
		logger: deps.Logger.WithFields(map[string]interface{}{"component": "server"}),
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.deps.Gatherer, promhttp.HandlerOpts{}))

	r.Route("/api", func(r chi.Router) {
		r.Use(session.Middleware(s.deps.Store, s.deps.Server.CookieName, s.deps.Server.CookieSecure, s.deps.Auth.Sentinel()))
		r.Use(s.forwardToken)

		r.Post("/requests", s.handleSubmitRequest)
		r.Post("/hiring", s.handleApply)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/admin/login", s.handleAdminLogin)
			r.Post("/worker/login", s.handleLogin)
			r.Post("/logout", s.handleLogout)
			r.Get("/session", s.handleSession)
			r.Post("/register", s.handleRegister)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Use(auth.RequireAdminSession)
			r.Get("/dashboard", s.handleDashboard)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/commands/{id}/approve", s.handleCommandDecision(true))
			r.Post("/commands/{id}/reject", s.handleCommandDecision(false))
			r.Post("/workers/{id}/approve", s.handleWorkerDecision(true))
			r.Post("/workers/{id}/reject", s.handleWorkerDecision(false))
			r.Put("/screenshot-mode", s.handleScreenshotMode)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireWorker)
			r.Get("/workers/{id}", s.handleProfile)
			r.Get("/accounts/{id}", s.handleAccount)
		})
	})

	return r
}
