package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	handlers "github.com/de-tools/cost-lens/pkg/handlers/reports"
	"github.com/de-tools/cost-lens/pkg/models/domain"
	costlensmiddleware "github.com/de-tools/cost-lens/pkg/server/middleware"
	"github.com/de-tools/cost-lens/pkg/services/aggregator"
	"github.com/de-tools/cost-lens/pkg/services/reports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Registry   reports.Registry
	Collector  reports.Collector
	Aggregator *aggregator.Aggregator
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	DefaultScope    domain.Scope
	Dependencies    Dependencies
}

// ConfigureRouter wires the report handler behind the API routes. Split out
// of NewWebAPI so tests can serve the router directly.
func ConfigureRouter(logger zerolog.Logger, config Config) *chi.Mux {
	handler := handlers.NewHandler(
		config.Dependencies.Registry,
		config.Dependencies.Collector,
		config.Dependencies.Aggregator,
		config.DefaultScope,
	)

	router := chi.NewRouter()

	router.Use(costlensmiddleware.Logger(&logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/reports", handler.ListReports)
		r.Post("/reports/run", handler.RunReports)
		r.Get("/reports/{report}", handler.GetReport)
		r.Post("/reports/{report}/run", handler.RunReport)
	})

	return router
}

func NewWebAPI(logger zerolog.Logger, config Config) *WebAPI {
	router := ConfigureRouter(logger, config)

	shutdownTimeout := config.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 10 * time.Second
	}

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
		shutdownTimeout: shutdownTimeout,
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), w.shutdownTimeout)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}
