// Package httpapi exposes the coherence validator over a small JSON API.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/valorisation/coherence/internal/application"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	// ConfigPath locates the .coherence.yaml applied to every request.
	ConfigPath string
}

func NewWebAPI(logger zerolog.Logger, cfg Config, svc *application.ValidateService) *WebAPI {
	h := NewHandler(svc, cfg.ConfigPath)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Get("/healthz", h.Health)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/rules", h.ListRules)
		r.Post("/diagnostics/validate", h.Validate)
		r.Post("/diagnostics/validate/batch", h.ValidateBatch)
	})

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		shutdownTimeout: cfg.ShutdownTimeout,
	}
}

// Handler returns the routed handler, mostly for tests.
func (w *WebAPI) Handler() http.Handler {
	return w.router
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then drains in-flight requests within the shutdown timeout.
func (w *WebAPI) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		w.logger.Info().Msg("shutdown initiated")

		timeout := w.shutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		err := w.server.Shutdown(shutdownCtx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}
		return err
	}
}
