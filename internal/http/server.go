// Package http is the thin local surface in front of the dashboard core.
// Handlers translate requests into core operations and render their results;
// no business rules live here.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"smartspend/internal/dashboard"
	"smartspend/internal/gateway"
	"smartspend/internal/log"
	"smartspend/internal/mutation"
	"smartspend/internal/session"
)

type Server struct {
	http.Server

	api     gateway.API
	dash    *dashboard.Synchronizer
	mut     *mutation.Coordinator
	holder  *session.Holder
	logger  *log.Logger
	started time.Time
}

// NewServer wires the routes and returns a ready-to-run server. All /api
// routes except login sit behind the session gate; /healthz stays open so
// probes work without a session.
func NewServer(addr string, api gateway.API, dash *dashboard.Synchronizer, mut *mutation.Coordinator, holder *session.Holder, logger *log.Logger) *Server {
	s := &Server{
		api:     api,
		dash:    dash,
		mut:     mut,
		holder:  holder,
		logger:  logger.WithComponent(log.ComponentHTTP),
		started: time.Now(),
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(log.RequestLogger(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireSession)
			r.Post("/logout", s.handleLogout)
			r.Get("/dashboard", s.handleDashboard)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/upload", s.handleUpload)
			r.Delete("/purchases/{id}", s.handleDeletePurchase)
			r.Get("/categories/{name}", s.handleCategory)
		})
	})

	s.Server = http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	return s
}

// requireSession rejects requests arriving without an active session token.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.holder.Active(r.Context()) {
			writeError(w, http.StatusUnauthorized, msgNotAuthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.Server.Shutdown(ctx)
}
