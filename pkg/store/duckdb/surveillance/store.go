package surveillance

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/store/duckdb"
)

// Store persists surveillance records in DuckDB and answers the dashboard's slicing queries.
type Store interface {
	Add(ctx context.Context, records []domain.Record) error
	Query(ctx context.Context, filter domain.Filter) ([]domain.Record, error)
	Years(ctx context.Context) ([]int, error)
	Regions(ctx context.Context) ([]string, error)
	Pivot(ctx context.Context, filter domain.Filter) ([]domain.PivotRow, error)
}

type recordStore struct {
	db *sql.DB
}

func NewStore(db *sql.DB) (Store, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &recordStore{db: db}, nil
}

// Add inserts records, using the transaction attached to ctx when there is one.
func (s *recordStore) Add(ctx context.Context, records []domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	tx := duckdb.GetTransaction(ctx)
	query := `
		INSERT INTO surveillance_records (
			observed_on, region, latitude, longitude,
			cases, recoveries, deaths, prevalence_rate
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	var stmt *sql.Stmt
	var err error
	if tx == nil {
		stmt, err = s.db.PrepareContext(ctx, query)
	} else {
		stmt, err = tx.PrepareContext(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		_, err = stmt.ExecContext(ctx,
			r.Date,
			r.Region,
			r.Latitude,
			r.Longitude,
			r.Cases,
			r.Recoveries,
			r.Deaths,
			r.PrevalenceRate,
		)
		if err != nil {
			return fmt.Errorf("insert record %s/%s: %w", r.Region, r.Date.Format(time.DateOnly), err)
		}
	}
	return nil
}

func (s *recordStore) Query(ctx context.Context, filter domain.Filter) ([]domain.Record, error) {
	where, args := whereClause(filter)
	query := `
		SELECT observed_on, region, latitude, longitude, cases, recoveries, deaths, prevalence_rate
		FROM surveillance_records` + where + `
		ORDER BY observed_on, region`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := make([]domain.Record, 0)
	for rows.Next() {
		var r domain.Record
		if err := rows.Scan(
			&r.Date, &r.Region, &r.Latitude, &r.Longitude,
			&r.Cases, &r.Recoveries, &r.Deaths, &r.PrevalenceRate,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Years lists the reporting years present, most recent first.
func (s *recordStore) Years(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT CAST(year(observed_on) AS INTEGER) AS y
		FROM surveillance_records
		ORDER BY y DESC`)
	if err != nil {
		return nil, fmt.Errorf("query years: %w", err)
	}
	defer rows.Close()

	years := make([]int, 0)
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, fmt.Errorf("scan year: %w", err)
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

func (s *recordStore) Regions(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT region
		FROM surveillance_records
		ORDER BY region`)
	if err != nil {
		return nil, fmt.Errorf("query regions: %w", err)
	}
	defer rows.Close()

	regions := make([]string, 0)
	for rows.Next() {
		var region string
		if err := rows.Scan(&region); err != nil {
			return nil, fmt.Errorf("scan region: %w", err)
		}
		regions = append(regions, region)
	}
	return regions, rows.Err()
}

// Pivot totals cases and deaths per region.
func (s *recordStore) Pivot(ctx context.Context, filter domain.Filter) ([]domain.PivotRow, error) {
	where, args := whereClause(filter)
	query := `
		SELECT region, CAST(SUM(cases) AS BIGINT), CAST(SUM(deaths) AS BIGINT)
		FROM surveillance_records` + where + `
		GROUP BY region
		ORDER BY region`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query pivot: %w", err)
	}
	defer rows.Close()

	pivot := make([]domain.PivotRow, 0)
	for rows.Next() {
		var row domain.PivotRow
		if err := rows.Scan(&row.Region, &row.Cases, &row.Deaths); err != nil {
			return nil, fmt.Errorf("scan pivot row: %w", err)
		}
		pivot = append(pivot, row)
	}
	return pivot, rows.Err()
}

func whereClause(filter domain.Filter) (string, []interface{}) {
	var conds []string
	var args []interface{}
	if filter.Year != 0 {
		conds = append(conds, "observed_on >= ? AND observed_on < ?")
		args = append(args,
			time.Date(filter.Year, time.January, 1, 0, 0, 0, 0, time.UTC),
			time.Date(filter.Year+1, time.January, 1, 0, 0, 0, 0, time.UTC),
		)
	}
	if !filter.AllRegions() {
		conds = append(conds, "region = ?")
		args = append(args, filter.Region)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return "\n\t\tWHERE " + strings.Join(conds, " AND "), args
}
