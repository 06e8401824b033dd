// Package httpapi exposes the attendance service as a JSON HTTP API and
// maps the domain error taxonomy onto HTTP status codes.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/mshimizu/kintai/internal/logging"
	"github.com/mshimizu/kintai/internal/server/services"
)

type Server struct {
	address         string
	origin          string
	shutdownTimeout time.Duration
	logger          logging.Logger
	attendance      *services.AttendanceService

	// now is captured once per request so a punch uses a single instant
	// for every timestamp it writes; injectable for tests.
	now func() time.Time
}

func NewServer(address string, l logging.Logger, svc *services.AttendanceService, origin string, shutdownTimeout time.Duration) *Server {
	return &Server{
		address:         address,
		origin:          origin,
		shutdownTimeout: shutdownTimeout,
		logger:          l.With("module", "http_server"),
		attendance:      svc,
		now:             time.Now,
	}
}

// Handler assembles the route table wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/attendance/status", s.handleStatus)
	mux.HandleFunc("POST /api/attendance/punch", s.handlePunch)
	mux.HandleFunc("GET /api/attendance/sessions", s.handleMonthlyReport)
	mux.HandleFunc("GET /api/attendance/sessions/{id}/breaks", s.handleListBreaks)
	mux.HandleFunc("PUT /api/attendance/sessions/{id}", s.handleUpdateSession)
	mux.HandleFunc("POST /api/attendance/sessions/{id}/breaks", s.handleAddBreak)
	mux.HandleFunc("PUT /api/attendance/breaks/{id}", s.handleUpdateBreak)
	mux.HandleFunc("DELETE /api/attendance/breaks/{id}", s.handleDeleteBreak)

	var h http.Handler = mux
	h = s.corsMiddleware(h)
	h = securityHeadersMiddleware(h)
	h = s.loggingMiddleware(h)
	h = requestIDMiddleware(h)
	return h
}

// Run serves until ctx is canceled, then shuts down gracefully within the
// configured timeout.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
