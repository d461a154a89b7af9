package surveillance

import (
	"testing"
	"time"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func month(y int, m time.Month) time.Time {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

func fixtureRecords() []domain.Record {
	return []domain.Record{
		{Date: month(2024, time.December), Region: "North", Latitude: 10, Longitude: 8, Cases: 900, Recoveries: 765, Deaths: 45},
		{Date: month(2025, time.January), Region: "North", Latitude: 10.2, Longitude: 8.2, Cases: 700, Recoveries: 595, Deaths: 35},
		{Date: month(2025, time.January), Region: "South", Latitude: 5, Longitude: 7, Cases: 1200, Recoveries: 1020, Deaths: 60},
		{Date: month(2025, time.February), Region: "North", Latitude: 9.8, Longitude: 7.8, Cases: 800, Recoveries: 680, Deaths: 40},
		{Date: month(2025, time.February), Region: "South", Latitude: 5, Longitude: 7, Cases: 800, Recoveries: 680, Deaths: 40},
	}
}

func TestFilter(t *testing.T) {
	records := fixtureRecords()

	assert.Len(t, Filter(records, domain.Filter{}), 5)
	assert.Len(t, Filter(records, domain.Filter{Year: 2025}), 4)
	assert.Len(t, Filter(records, domain.Filter{Year: 2025, Region: "All"}), 4)
	assert.Len(t, Filter(records, domain.Filter{Year: 2025, Region: "South"}), 2)
	assert.Empty(t, Filter(records, domain.Filter{Year: 2019}))
}

func TestTrend(t *testing.T) {
	points := Trend(Filter(fixtureRecords(), domain.Filter{Year: 2025}))

	require.Len(t, points, 4)
	assert.Equal(t, domain.TrendPoint{Date: month(2025, time.January), Region: "North", Cases: 700}, points[0])
	assert.Equal(t, domain.TrendPoint{Date: month(2025, time.January), Region: "South", Cases: 1200}, points[1])
	assert.Equal(t, "North", points[2].Region)
	assert.Equal(t, month(2025, time.February), points[3].Date)
}

func TestMap(t *testing.T) {
	points := Map(Filter(fixtureRecords(), domain.Filter{Year: 2025}))

	require.Len(t, points, 2)
	assert.Equal(t, "North", points[0].Region)
	assert.InDelta(t, 10.0, points[0].Latitude, 1e-9)
	assert.InDelta(t, 8.0, points[0].Longitude, 1e-9)
	assert.Equal(t, 1500, points[0].Cases)
	assert.Equal(t, domain.MapPoint{Region: "South", Latitude: 5, Longitude: 7, Cases: 2000}, points[1])
}

func TestOutcomeAndPivot(t *testing.T) {
	records := fixtureRecords()

	assert.Equal(t, domain.OutcomeSplit{Recoveries: 3740, Deaths: 220}, Outcome(records))
	assert.Equal(t, []domain.PivotRow{
		{Region: "North", Cases: 2400, Deaths: 120},
		{Region: "South", Cases: 2000, Deaths: 100},
	}, Pivot(records))
}

func TestFrames(t *testing.T) {
	records := fixtureRecords()

	mapFrames := MapFrames(records)
	require.Len(t, mapFrames, 3)
	assert.Equal(t, "2024-12", mapFrames[0].Month)
	assert.Len(t, mapFrames[0].Points, 1)
	assert.Len(t, mapFrames[1].Points, 2)

	race := RaceFrames(records)
	require.Len(t, race, 3)
	assert.Equal(t, "2025-01", race[1].Month)
	assert.Equal(t, []domain.RegionTotal{{Region: "South", Cases: 1200}, {Region: "North", Cases: 700}}, race[1].Ranking)
	// equal totals keep alphabetical order
	assert.Equal(t, []domain.RegionTotal{{Region: "North", Cases: 800}, {Region: "South", Cases: 800}}, race[2].Ranking)
}
