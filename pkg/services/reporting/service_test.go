package reporting

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/de-tools/malaria-atlas/pkg/charts"
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/report"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/de-tools/malaria-atlas/pkg/services/surveillance"
	"github.com/de-tools/malaria-atlas/pkg/store/duckdb"
	surveillancestore "github.com/de-tools/malaria-atlas/pkg/store/duckdb/surveillance"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, name string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, name, data, contentType)
	return args.String(0), args.Error(1)
}

const brokenChart = "Broken"

func setupExplorer(t *testing.T) dashboard.Explorer {
	db, err := duckdb.NewDB(duckdb.Settings{})
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	store, err := surveillancestore.NewStore(db)
	require.NoError(t, err)

	opts := surveillance.DefaultGeneratorOptions()
	opts.Start = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	explorer := dashboard.NewExplorer(db, store)
	require.NoError(t, explorer.Seed(context.Background(), surveillance.Generate(opts)))
	return explorer
}

func testReportConfig() report.Config {
	cfg := report.DefaultConfig()
	cfg.Compression = false
	cfg.Now = func() time.Time {
		return time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	}
	return cfg
}

func registryWithBrokenChart(t *testing.T) charts.Registry {
	registry := charts.NewDefaultRegistry()
	require.NoError(t, registry.Register(brokenChart, func([]domain.Record) report.Rasterizer {
		return report.RasterizerFunc(func(int, int, float64) ([]byte, error) {
			return nil, errors.New("renderer offline")
		})
	}))
	return registry
}

func TestMetricEntries(t *testing.T) {
	kpis := domain.KPIs{TotalCases: 123456, AvgPrevalence: 20.04, Risk: domain.RiskHigh}

	entries := MetricEntries(kpis, "")

	assert.Equal(t, []report.MetricEntry{
		{Label: "Total Cases", Value: "123,456"},
		{Label: "Avg Prevalence", Value: "20.0%"},
		{Label: "Regional Risk Status", Value: "High"},
	}, entries)
	assert.Equal(t, "Risk", MetricEntries(kpis, "Risk")[2].Label)
}

func TestService_Generate(t *testing.T) {
	t.Run("default charts for the latest year", func(t *testing.T) {
		// Given
		reg := prometheus.NewRegistry()
		metrics := NewMetrics(reg)
		svc := NewService(Options{
			Explorer: setupExplorer(t),
			Report:   testReportConfig(),
			Metrics:  metrics,
		})

		// When
		artifact, err := svc.Generate(context.Background(), domain.Filter{})

		// Then
		require.NoError(t, err)
		assert.NotEmpty(t, artifact.ID)
		assert.Equal(t, "Malaria_Surveillance_2025.pdf", artifact.FileName)
		assert.Equal(t, "application/pdf", artifact.ContentType)
		assert.Equal(t, domain.Filter{Year: 2025, Region: "All"}, artifact.Filter)
		assert.True(t, bytes.HasPrefix(artifact.Data, []byte("%PDF-")))
		assert.Empty(t, artifact.ChartFailures)
		assert.GreaterOrEqual(t, artifact.Pages, 1)
		assert.Contains(t, string(artifact.Data), "Analysis: Case Trends")
		assert.Contains(t, string(artifact.Data), "Analysis: Geographic Map")
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.reportsBuilt.WithLabelValues("All")))
	})

	t.Run("failing chart becomes a placeholder", func(t *testing.T) {
		// Given
		reg := prometheus.NewRegistry()
		metrics := NewMetrics(reg)
		svc := NewService(Options{
			Explorer:   setupExplorer(t),
			Charts:     registryWithBrokenChart(t),
			ChartNames: []string{charts.CaseTrends, brokenChart},
			Report:     testReportConfig(),
			Metrics:    metrics,
		})

		// When
		artifact, err := svc.Generate(context.Background(), domain.Filter{Year: 2025, Region: "East"})

		// Then
		require.NoError(t, err)
		assert.Equal(t, []string{brokenChart}, artifact.ChartFailures)
		assert.Contains(t, string(artifact.Data), report.DefaultPlaceholder)
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.chartFailures.WithLabelValues(brokenChart)))
		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.reportsBuilt.WithLabelValues("East")))
	})

	t.Run("unknown chart name", func(t *testing.T) {
		svc := NewService(Options{
			Explorer:   setupExplorer(t),
			ChartNames: []string{"Heatmap"},
			Report:     testReportConfig(),
		})

		_, err := svc.Generate(context.Background(), domain.Filter{})

		assert.EqualError(t, err, `chart "Heatmap" is not registered`)
	})

	t.Run("unknown year", func(t *testing.T) {
		svc := NewService(Options{Explorer: setupExplorer(t), Report: testReportConfig()})

		_, err := svc.Generate(context.Background(), domain.Filter{Year: 2019})

		assert.ErrorIs(t, err, dashboard.ErrUnknownYear)
	})
}

func TestService_Publish(t *testing.T) {
	artifact := &Artifact{
		FileName:    "Malaria_Surveillance_2025.pdf",
		ContentType: "application/pdf",
		Filter:      domain.Filter{Year: 2025, Region: "North"},
		Data:        []byte("%PDF-1.3"),
	}

	t.Run("uploads by region", func(t *testing.T) {
		publisher := new(mockPublisher)
		publisher.On("Publish", mock.Anything, "North/Malaria_Surveillance_2025.pdf", artifact.Data, "application/pdf").
			Return("s3://reports/North/Malaria_Surveillance_2025.pdf", nil)
		svc := NewService(Options{Publisher: publisher})

		location, err := svc.Publish(context.Background(), artifact)

		require.NoError(t, err)
		assert.True(t, svc.Publishing())
		assert.Equal(t, "s3://reports/North/Malaria_Surveillance_2025.pdf", location)
		publisher.AssertExpectations(t)
	})

	t.Run("not configured", func(t *testing.T) {
		svc := NewService(Options{})

		_, err := svc.Publish(context.Background(), artifact)

		assert.False(t, svc.Publishing())
		assert.EqualError(t, err, "report publishing is not configured")
	})
}
