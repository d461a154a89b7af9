package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/de-tools/malaria-atlas/pkg/charts"
	advisorhandlers "github.com/de-tools/malaria-atlas/pkg/handlers/advisor"
	dashboardhandlers "github.com/de-tools/malaria-atlas/pkg/handlers/dashboard"
	reporthandlers "github.com/de-tools/malaria-atlas/pkg/handlers/report"
	malariamiddleware "github.com/de-tools/malaria-atlas/pkg/server/middleware"
	"github.com/de-tools/malaria-atlas/pkg/services/advisor"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/de-tools/malaria-atlas/pkg/services/news"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

type WebAPI struct {
	router          *chi.Mux
	logger          *zerolog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
}

type Dependencies struct {
	Explorer dashboard.Explorer
	Charts   charts.Registry
	News     news.Feed
	Reports  reporthandlers.Generator
	Advisor  advisor.Advisor
	// Metrics is scraped on /metrics. Nil uses the default gatherer.
	Metrics prometheus.Gatherer
	Logger  zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	deps := config.Dependencies
	registry := deps.Charts
	if registry == nil {
		registry = charts.NewDefaultRegistry()
	}
	gatherer := deps.Metrics
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	dashboardHandler := dashboardhandlers.NewHandler(deps.Explorer, registry, deps.News)
	reportHandler := reporthandlers.NewHandler(deps.Reports, deps.Explorer)
	advisorHandler := advisorhandlers.NewHandler(deps.Advisor, deps.Explorer)

	router := chi.NewRouter()

	router.Use(malariamiddleware.Logger(&deps.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/filters", dashboardHandler.ListFilters)
		r.Get("/kpis", dashboardHandler.GetKPIs)
		r.Get("/charts/{chart}", dashboardHandler.GetChart)
		r.Get("/news", dashboardHandler.ListNews)
		r.Post("/advisor", advisorHandler.Ask)
		r.Get("/report", reportHandler.GetReport)
		r.Get("/export", reportHandler.GetExport)
	})
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	timeout := config.ShutdownTimeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	return &WebAPI{
		router:          router,
		logger:          &logger,
		shutdownTimeout: timeout,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
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
