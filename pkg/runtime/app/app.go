// Package app wires the configured services shared by the web and terminal binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/malaria-atlas/pkg/charts"
	"github.com/de-tools/malaria-atlas/pkg/report"
	"github.com/de-tools/malaria-atlas/pkg/services/advisor"
	"github.com/de-tools/malaria-atlas/pkg/services/config"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/de-tools/malaria-atlas/pkg/services/news"
	"github.com/de-tools/malaria-atlas/pkg/services/publish"
	"github.com/de-tools/malaria-atlas/pkg/services/reporting"
	"github.com/de-tools/malaria-atlas/pkg/services/surveillance"
	"github.com/de-tools/malaria-atlas/pkg/store/duckdb"
	surveillancestore "github.com/de-tools/malaria-atlas/pkg/store/duckdb/surveillance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type App struct {
	Config   *config.App
	DB       *sql.DB
	Explorer dashboard.Explorer
	Charts   charts.Registry
	News     news.Feed
	Advisor  advisor.Advisor
	Reports  *reporting.Service
	Metrics  *prometheus.Registry
}

// Bootstrap loads the config at path and builds the application on top of it.
func Bootstrap(ctx context.Context, path string) (*App, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}

// New opens the DuckDB store, seeds it with the configured synthetic dataset and
// builds the services on top of it. The logger is taken from ctx.
func New(ctx context.Context, cfg *config.App) (*App, error) {
	logger := zerolog.Ctx(ctx)

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath:  cfg.Store.DbPath,
		Threads: cfg.Store.Threads,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	a, err := build(ctx, cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	logger.Info().
		Str("db", dbLabel(cfg.Store.DbPath)).
		Strs("charts", cfg.Report.Charts).
		Bool("advisor", cfg.Advisor.APIKey != "").
		Bool("publish", cfg.Publish.Bucket != "").
		Msg("application initialized")
	return a, nil
}

func build(ctx context.Context, cfg *config.App, db *sql.DB) (*App, error) {
	logger := zerolog.Ctx(ctx)

	store, err := surveillancestore.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create surveillance store: %w", err)
	}
	explorer := dashboard.NewExplorer(db, store)
	if err := seed(ctx, cfg.Data, explorer); err != nil {
		return nil, err
	}

	feed, err := news.LoadFeed(cfg.News.FeedFile)
	if err != nil {
		return nil, err
	}

	adv, err := advisor.New(ctx, advisor.Settings{
		APIKey: cfg.Advisor.APIKey,
		Model:  cfg.Advisor.Model,
	})
	if err != nil {
		return nil, err
	}

	var publisher publish.Publisher
	settings := publish.Settings{
		Bucket:  cfg.Publish.Bucket,
		Prefix:  cfg.Publish.Prefix,
		Region:  cfg.Publish.Region,
		Profile: cfg.Publish.Profile,
	}
	if settings.Enabled() {
		publisher, err = publish.NewS3Publisher(ctx, settings)
		if err != nil {
			return nil, err
		}
	}

	registry := charts.NewDefaultRegistry()
	for _, name := range cfg.Report.Charts {
		if _, err := registry.Create(name, nil); err != nil {
			return nil, fmt.Errorf("invalid report chart: %w", err)
		}
	}

	metrics := prometheus.NewRegistry()
	reportCfg := ReportConfig(cfg.Report)
	reportCfg.Logger = logger

	return &App{
		Config:   cfg,
		DB:       db,
		Explorer: explorer,
		Charts:   registry,
		News:     feed,
		Advisor:  adv,
		Reports: reporting.NewService(reporting.Options{
			Explorer:   explorer,
			Charts:     registry,
			ChartNames: cfg.Report.Charts,
			Report:     reportCfg,
			Publisher:  publisher,
			Metrics:    reporting.NewMetrics(metrics),
		}),
		Metrics: metrics,
	}, nil
}

// ReportConfig maps the report section of the config onto the builder defaults.
func ReportConfig(cfg config.Report) report.Config {
	rc := report.DefaultConfig()
	if cfg.Title != "" {
		rc.Title = cfg.Title
	}
	if cfg.HeaderAlign != "" {
		rc.Style.HeaderAlign = cfg.HeaderAlign
	}
	rc.BrandingImagePath = cfg.BrandingImage
	rc.RiskField = cfg.RiskField
	rc.HighSentinel = cfg.HighSentinel
	return rc
}

func seed(ctx context.Context, data config.Data, explorer dashboard.Explorer) error {
	years, err := explorer.Years(ctx)
	if err != nil {
		return err
	}
	if len(years) > 0 {
		zerolog.Ctx(ctx).Info().Ints("years", years).Msg("reusing stored surveillance data")
		return nil
	}

	start, end, err := data.Range()
	if err != nil {
		return err
	}
	opts := surveillance.DefaultGeneratorOptions()
	opts.Seed = data.Seed
	opts.Start = start
	opts.End = end

	records := surveillance.Generate(opts)
	if err := explorer.Seed(ctx, records); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Int("records", len(records)).Msg("surveillance data generated")
	return nil
}

func (a *App) Close() error {
	return a.DB.Close()
}

func dbLabel(path string) string {
	if path == "" {
		return ":memory:"
	}
	return path
}
