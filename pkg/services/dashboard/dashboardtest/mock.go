// Package dashboardtest provides a testify mock of dashboard.Explorer.
package dashboardtest

import (
	"context"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/stretchr/testify/mock"
)

type MockExplorer struct {
	mock.Mock
}

func (m *MockExplorer) Seed(ctx context.Context, records []domain.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *MockExplorer) Years(ctx context.Context) ([]int, error) {
	args := m.Called(ctx)
	years, _ := args.Get(0).([]int)
	return years, args.Error(1)
}

func (m *MockExplorer) Regions(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	regions, _ := args.Get(0).([]string)
	return regions, args.Error(1)
}

func (m *MockExplorer) ResolveFilter(ctx context.Context, filter domain.Filter) (domain.Filter, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.Filter), args.Error(1)
}

func (m *MockExplorer) Records(ctx context.Context, filter domain.Filter) ([]domain.Record, error) {
	args := m.Called(ctx, filter)
	records, _ := args.Get(0).([]domain.Record)
	return records, args.Error(1)
}

func (m *MockExplorer) KPIs(ctx context.Context, filter domain.Filter) (domain.KPIs, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.KPIs), args.Error(1)
}

func (m *MockExplorer) Trend(ctx context.Context, filter domain.Filter) ([]domain.TrendPoint, error) {
	args := m.Called(ctx, filter)
	points, _ := args.Get(0).([]domain.TrendPoint)
	return points, args.Error(1)
}

func (m *MockExplorer) Map(ctx context.Context, filter domain.Filter) ([]domain.MapPoint, error) {
	args := m.Called(ctx, filter)
	points, _ := args.Get(0).([]domain.MapPoint)
	return points, args.Error(1)
}

func (m *MockExplorer) Outcome(ctx context.Context, filter domain.Filter) (domain.OutcomeSplit, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.OutcomeSplit), args.Error(1)
}

func (m *MockExplorer) Pivot(ctx context.Context, filter domain.Filter) ([]domain.PivotRow, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]domain.PivotRow)
	return rows, args.Error(1)
}

func (m *MockExplorer) Frames(ctx context.Context, filter domain.Filter) ([]domain.MapFrame, error) {
	args := m.Called(ctx, filter)
	frames, _ := args.Get(0).([]domain.MapFrame)
	return frames, args.Error(1)
}

func (m *MockExplorer) BarRace(ctx context.Context, filter domain.Filter) ([]domain.RaceFrame, error) {
	args := m.Called(ctx, filter)
	frames, _ := args.Get(0).([]domain.RaceFrame)
	return frames, args.Error(1)
}

func (m *MockExplorer) Snapshot(ctx context.Context, filter domain.Filter) (domain.Snapshot, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(domain.Snapshot), args.Error(1)
}
