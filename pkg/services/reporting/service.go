package reporting

import (
	"context"
	"fmt"

	"github.com/de-tools/malaria-atlas/pkg/charts"
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/report"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/de-tools/malaria-atlas/pkg/services/publish"
	"github.com/de-tools/malaria-atlas/pkg/services/surveillance"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	TotalCasesLabel    = "Total Cases"
	AvgPrevalenceLabel = "Avg Prevalence"
)

// DefaultCharts are drawn in every report unless configured otherwise.
var DefaultCharts = []string{charts.CaseTrends, charts.GeographicMap}

// Artifact is a compiled report ready for download or upload.
type Artifact struct {
	ID            string
	FileName      string
	ContentType   string
	Filter        domain.Filter
	Data          []byte
	Pages         int
	ChartFailures []string
}

type Options struct {
	Explorer   dashboard.Explorer
	Charts     charts.Registry
	ChartNames []string
	Report     report.Config
	Publisher  publish.Publisher
	Metrics    *Metrics
}

type Service struct {
	explorer   dashboard.Explorer
	charts     charts.Registry
	chartNames []string
	cfg        report.Config
	publisher  publish.Publisher
	metrics    *Metrics
}

func NewService(opts Options) *Service {
	registry := opts.Charts
	if registry == nil {
		registry = charts.NewDefaultRegistry()
	}
	names := opts.ChartNames
	if len(names) == 0 {
		names = DefaultCharts
	}
	return &Service{
		explorer:   opts.Explorer,
		charts:     registry,
		chartNames: names,
		cfg:        opts.Report,
		publisher:  opts.Publisher,
		metrics:    opts.Metrics,
	}
}

// FileName is the download name of the report for a year.
func FileName(year int) string {
	return fmt.Sprintf("Malaria_Surveillance_%d.pdf", year)
}

// MetricEntries lists the executive summary rows in display order.
func MetricEntries(kpis domain.KPIs, riskField string) []report.MetricEntry {
	if riskField == "" {
		riskField = report.DefaultRiskField
	}
	return []report.MetricEntry{
		{Label: TotalCasesLabel, Value: surveillance.FormatCount(kpis.TotalCases)},
		{Label: AvgPrevalenceLabel, Value: surveillance.FormatPercent(kpis.AvgPrevalence)},
		{Label: riskField, Value: string(kpis.Risk)},
	}
}

// Generate compiles the surveillance report for the filter. A zero year selects the
// latest year in the dataset.
func (s *Service) Generate(ctx context.Context, filter domain.Filter) (*Artifact, error) {
	logger := zerolog.Ctx(ctx)

	filter, err := s.explorer.ResolveFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	records, err := s.explorer.Records(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}

	entries := make([]report.ChartEntry, 0, len(s.chartNames))
	for _, name := range s.chartNames {
		chart, err := s.charts.Create(name, records)
		if err != nil {
			return nil, err
		}
		entries = append(entries, report.ChartEntry{Title: name, Chart: chart})
	}

	cfg := s.cfg
	cfg.Logger = logger
	res, err := report.NewBuilder(cfg).Compile(MetricEntries(surveillance.ComputeKPIs(records), cfg.RiskField), entries)
	if err != nil {
		return nil, fmt.Errorf("failed to build report: %w", err)
	}

	failed := make([]string, 0, len(res.Failures))
	for _, f := range res.Failures {
		failed = append(failed, f.Title)
	}
	s.metrics.observe(filter.RegionLabel(), failed)

	artifact := &Artifact{
		ID:            uuid.NewString(),
		FileName:      FileName(filter.Year),
		ContentType:   report.ContentType,
		Filter:        filter,
		Data:          res.Data,
		Pages:         res.Pages,
		ChartFailures: failed,
	}
	logger.Info().
		Str("report_id", artifact.ID).
		Int("year", filter.Year).
		Str("region", filter.RegionLabel()).
		Int("pages", res.Pages).
		Int("bytes", len(res.Data)).
		Msg("report generated")
	return artifact, nil
}

// Publishing reports whether a publisher is configured.
func (s *Service) Publishing() bool {
	return s.publisher != nil
}

// Publish uploads the artifact and returns its location.
func (s *Service) Publish(ctx context.Context, artifact *Artifact) (string, error) {
	if s.publisher == nil {
		return "", fmt.Errorf("report publishing is not configured")
	}
	name := artifact.FileName
	if !artifact.Filter.AllRegions() {
		name = artifact.Filter.Region + "/" + name
	}
	return s.publisher.Publish(ctx, name, artifact.Data, artifact.ContentType)
}
