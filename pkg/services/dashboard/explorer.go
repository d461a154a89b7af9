package dashboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/services/surveillance"
	"github.com/de-tools/malaria-atlas/pkg/store/duckdb"
	surveillancestore "github.com/de-tools/malaria-atlas/pkg/store/duckdb/surveillance"
)

var (
	ErrNoData        = errors.New("no surveillance data loaded")
	ErrUnknownYear   = errors.New("year not available")
	ErrUnknownRegion = errors.New("region not available")
)

// Explorer answers the dashboard's questions for a year and focus region.
type Explorer interface {
	Seed(ctx context.Context, records []domain.Record) error
	Years(ctx context.Context) ([]int, error)
	Regions(ctx context.Context) ([]string, error)
	// ResolveFilter fills a zero year with the latest available one and rejects
	// years and regions that are not in the dataset.
	ResolveFilter(ctx context.Context, filter domain.Filter) (domain.Filter, error)
	Records(ctx context.Context, filter domain.Filter) ([]domain.Record, error)
	KPIs(ctx context.Context, filter domain.Filter) (domain.KPIs, error)
	Trend(ctx context.Context, filter domain.Filter) ([]domain.TrendPoint, error)
	Map(ctx context.Context, filter domain.Filter) ([]domain.MapPoint, error)
	Outcome(ctx context.Context, filter domain.Filter) (domain.OutcomeSplit, error)
	Pivot(ctx context.Context, filter domain.Filter) ([]domain.PivotRow, error)
	Frames(ctx context.Context, filter domain.Filter) ([]domain.MapFrame, error)
	BarRace(ctx context.Context, filter domain.Filter) ([]domain.RaceFrame, error)
	Snapshot(ctx context.Context, filter domain.Filter) (domain.Snapshot, error)
}

type explorer struct {
	db    *sql.DB
	store surveillancestore.Store
}

func NewExplorer(db *sql.DB, store surveillancestore.Store) Explorer {
	return &explorer{db: db, store: store}
}

// Seed loads records in a single transaction.
func (e *explorer) Seed(ctx context.Context, records []domain.Record) error {
	err := duckdb.InTransaction(ctx, e.db, func(ctx context.Context) error {
		return e.store.Add(ctx, records)
	})
	if err != nil {
		return fmt.Errorf("failed to seed surveillance records: %w", err)
	}
	return nil
}

func (e *explorer) Years(ctx context.Context) ([]int, error) {
	return e.store.Years(ctx)
}

func (e *explorer) Regions(ctx context.Context) ([]string, error) {
	return e.store.Regions(ctx)
}

func (e *explorer) ResolveFilter(ctx context.Context, filter domain.Filter) (domain.Filter, error) {
	years, err := e.store.Years(ctx)
	if err != nil {
		return filter, err
	}
	if len(years) == 0 {
		return filter, ErrNoData
	}

	if filter.Year == 0 {
		filter.Year = years[0]
	} else if !containsYear(years, filter.Year) {
		return filter, fmt.Errorf("%w: %d", ErrUnknownYear, filter.Year)
	}

	if filter.AllRegions() {
		filter.Region = domain.AllRegions
		return filter, nil
	}

	regions, err := e.store.Regions(ctx)
	if err != nil {
		return filter, err
	}
	for _, r := range regions {
		if r == filter.Region {
			return filter, nil
		}
	}
	return filter, fmt.Errorf("%w: %s", ErrUnknownRegion, filter.Region)
}

func (e *explorer) Records(ctx context.Context, filter domain.Filter) ([]domain.Record, error) {
	return e.store.Query(ctx, filter)
}

func (e *explorer) KPIs(ctx context.Context, filter domain.Filter) (domain.KPIs, error) {
	records, err := e.store.Query(ctx, filter)
	if err != nil {
		return domain.KPIs{}, err
	}
	return surveillance.ComputeKPIs(records), nil
}

func (e *explorer) Trend(ctx context.Context, filter domain.Filter) ([]domain.TrendPoint, error) {
	records, err := e.store.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	return surveillance.Trend(records), nil
}

func (e *explorer) Map(ctx context.Context, filter domain.Filter) ([]domain.MapPoint, error) {
	records, err := e.store.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	return surveillance.Map(records), nil
}

func (e *explorer) Outcome(ctx context.Context, filter domain.Filter) (domain.OutcomeSplit, error) {
	records, err := e.store.Query(ctx, filter)
	if err != nil {
		return domain.OutcomeSplit{}, err
	}
	return surveillance.Outcome(records), nil
}

func (e *explorer) Pivot(ctx context.Context, filter domain.Filter) ([]domain.PivotRow, error) {
	return e.store.Pivot(ctx, filter)
}

func (e *explorer) Frames(ctx context.Context, filter domain.Filter) ([]domain.MapFrame, error) {
	records, err := e.store.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	return surveillance.MapFrames(records), nil
}

func (e *explorer) BarRace(ctx context.Context, filter domain.Filter) ([]domain.RaceFrame, error) {
	records, err := e.store.Query(ctx, filter)
	if err != nil {
		return nil, err
	}
	return surveillance.RaceFrames(records), nil
}

func (e *explorer) Snapshot(ctx context.Context, filter domain.Filter) (domain.Snapshot, error) {
	records, err := e.store.Query(ctx, filter)
	if err != nil {
		return domain.Snapshot{}, err
	}
	pivot, err := e.store.Pivot(ctx, filter)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{
		Filter: filter,
		KPIs:   surveillance.ComputeKPIs(records),
		Pivot:  pivot,
	}, nil
}

func containsYear(years []int, year int) bool {
	for _, y := range years {
		if y == year {
			return true
		}
	}
	return false
}
