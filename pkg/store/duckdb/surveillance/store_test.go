package surveillance

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/store/duckdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db    *sql.DB
	store Store
}

func setupFixture(t *testing.T) *fixture {
	db, err := duckdb.NewDB(duckdb.Settings{})
	require.NoError(t, err)
	store, err := NewStore(db)
	require.NoError(t, err)

	t.Cleanup(func() {
		db.Close()
	})

	return &fixture{db: db, store: store}
}

func monthEnd(y int, m time.Month) time.Time {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

func sampleRecords() []domain.Record {
	return []domain.Record{
		{Date: monthEnd(2024, time.December), Region: "North", Latitude: 10.1, Longitude: 8.1, Cases: 900, Recoveries: 765, Deaths: 45, PrevalenceRate: 14.5},
		{Date: monthEnd(2025, time.January), Region: "South", Latitude: 5.2, Longitude: 7.3, Cases: 1200, Recoveries: 1020, Deaths: 60, PrevalenceRate: 21.5},
		{Date: monthEnd(2025, time.January), Region: "North", Latitude: 9.9, Longitude: 7.9, Cases: 700, Recoveries: 595, Deaths: 35, PrevalenceRate: 19.25},
		{Date: monthEnd(2025, time.February), Region: "North", Latitude: 10.3, Longitude: 8.4, Cases: 800, Recoveries: 680, Deaths: 40, PrevalenceRate: 11},
	}
}

func TestStore_AddAndQuery(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.store.Add(ctx, sampleRecords()))

	t.Run("all records ordered by date then region", func(t *testing.T) {
		records, err := f.store.Query(ctx, domain.Filter{})
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "North", records[1].Region)
		assert.Equal(t, "South", records[2].Region)
		assert.True(t, records[0].Date.Equal(monthEnd(2024, time.December)))
	})

	t.Run("year and region", func(t *testing.T) {
		records, err := f.store.Query(ctx, domain.Filter{Year: 2025, Region: "North"})
		require.NoError(t, err)
		require.Len(t, records, 2)
		first := records[0]
		assert.Equal(t, 700, first.Cases)
		assert.Equal(t, 595, first.Recoveries)
		assert.Equal(t, 35, first.Deaths)
		assert.InDelta(t, 19.25, first.PrevalenceRate, 1e-9)
		assert.InDelta(t, 9.9, first.Latitude, 1e-9)
		assert.Equal(t, 2025, first.Date.Year())
		assert.Equal(t, time.January, first.Date.Month())
		assert.Equal(t, 31, first.Date.Day())
	})

	t.Run("all regions keyword", func(t *testing.T) {
		records, err := f.store.Query(ctx, domain.Filter{Year: 2025, Region: domain.AllRegions})
		require.NoError(t, err)
		assert.Len(t, records, 3)
	})

	t.Run("no match", func(t *testing.T) {
		records, err := f.store.Query(ctx, domain.Filter{Year: 2019})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestStore_AddWithinTransaction(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	err := duckdb.InTransaction(ctx, f.db, func(ctx context.Context) error {
		if err := f.store.Add(ctx, sampleRecords()[:2]); err != nil {
			return err
		}
		return errors.New("abort")
	})
	require.EqualError(t, err, "abort")

	records, err := f.store.Query(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Empty(t, records)

	err = duckdb.InTransaction(ctx, f.db, func(ctx context.Context) error {
		return f.store.Add(ctx, sampleRecords())
	})
	require.NoError(t, err)

	records, err = f.store.Query(ctx, domain.Filter{})
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestStore_YearsRegionsPivot(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Add(ctx, sampleRecords()))

	years, err := f.store.Years(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{2025, 2024}, years)

	regions, err := f.store.Regions(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"North", "South"}, regions)

	pivot, err := f.store.Pivot(ctx, domain.Filter{Year: 2025})
	require.NoError(t, err)
	assert.Equal(t, []domain.PivotRow{
		{Region: "North", Cases: 1500, Deaths: 75},
		{Region: "South", Cases: 1200, Deaths: 60},
	}, pivot)
}

func TestStore_Add_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewStore(db)
	require.NoError(t, err)

	require.NoError(t, store.Add(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Add_InsertError(t *testing.T) {
	// Given: an insert that fails on the first row
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	prep := mock.ExpectPrepare(regexp.QuoteMeta("INSERT INTO surveillance_records"))
	prep.ExpectExec().WillReturnError(errors.New("constraint violated"))
	prep.WillBeClosed()

	store, err := NewStore(db)
	require.NoError(t, err)

	// When
	err = store.Add(context.Background(), sampleRecords())

	// Then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert record North/2024-12-31")
	assert.Contains(t, err.Error(), "constraint violated")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_Query_Errors(t *testing.T) {
	t.Run("query fails", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("FROM surveillance_records")).
			WithArgs(
				time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
				"East",
			).
			WillReturnError(errors.New("connection reset"))

		store, _ := NewStore(db)
		_, err = store.Query(context.Background(), domain.Filter{Year: 2025, Region: "East"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "query records")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("bad row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(regexp.QuoteMeta("SELECT DISTINCT region")).
			WillReturnRows(sqlmock.NewRows([]string{"region", "extra"}).AddRow("North", 1))

		store, _ := NewStore(db)
		_, err = store.Regions(context.Background())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "scan region")
	})
}

func TestNewStore_NilDB(t *testing.T) {
	_, err := NewStore(nil)
	assert.EqualError(t, err, "database connection is nil")
}
