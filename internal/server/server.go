// Package server exposes the calculators as a JSON HTTP API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ukcalc/personal-finance/internal/calculation"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Server serves the calculation engine over HTTP.
type Server struct {
	engine *calculation.CalculationEngine
	logger *zap.Logger
	router chi.Router
}

// New builds a server and its routes. A nil logger disables request logging.
func New(engine *calculation.CalculationEngine, logger *zap.Logger) *Server {
	if engine == nil {
		engine = calculation.NewCalculationEngine()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{engine: engine, logger: logger}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/tax-years", s.handleTaxYears)

		r.Post("/takehome", s.handleTakeHome)
		r.Post("/compound-interest", handle(s, calculation.CompoundInterest))
		r.Post("/car-finance/pcp", handle(s, calculation.CalculatePCP))
		r.Post("/car-finance/hp", handle(s, calculation.CalculateHP))
		r.Post("/mortgage/affordability", handle(s, calculation.MortgageAffordability))
		r.Post("/inflation", handle(s, calculation.AdjustForInflation))
		r.Post("/student-loan/schedule", handle(s, s.engine.RepaymentSchedule))
	})
	return r
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("address", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
