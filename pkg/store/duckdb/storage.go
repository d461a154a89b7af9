package duckdb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const SurveillanceTableSchema = `
	CREATE TABLE IF NOT EXISTS surveillance_records (
		observed_on DATE NOT NULL,
		region VARCHAR NOT NULL,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		cases INTEGER NOT NULL,
		recoveries INTEGER NOT NULL,
		deaths INTEGER NOT NULL,
		prevalence_rate DOUBLE NOT NULL,
		PRIMARY KEY (region, observed_on)
	);
`

var bootQueries = []string{
	SurveillanceTableSchema,
}

// Settings configures the DuckDB instance. An empty DbPath opens an in-memory database
// that lives as long as the returned *sql.DB.
type Settings struct {
	DbPath  string
	Threads int
}

func NewDB(settings Settings) (*sql.DB, error) {
	dsn := settings.DbPath
	if settings.Threads > 0 {
		dsn = fmt.Sprintf("%s?threads=%d", dsn, settings.Threads)
	}

	c, err := duckdb.NewConnector(dsn, func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	db := sql.OpenDB(c)
	return db, nil
}
