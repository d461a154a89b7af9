package surveillance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DefaultShape(t *testing.T) {
	records := Generate(DefaultGeneratorOptions())

	require.Len(t, records, 5*72)
	assert.Equal(t, "North", records[0].Region)
	assert.Equal(t, time.Date(2020, time.January, 31, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC), records[1].Date)
	assert.Equal(t, time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC), records[71].Date)
	assert.Equal(t, "South", records[72].Region)

	centers := map[string]RegionCenter{}
	for _, c := range DefaultRegions {
		centers[c.Name] = c
	}
	for _, r := range records {
		lo, hi := 500, 1500
		if isRainySeason(r.Date.Month()) {
			lo, hi = 1000, 2500
		}
		assert.GreaterOrEqual(t, r.Cases, lo)
		assert.Less(t, r.Cases, hi)
		assert.Equal(t, int(float64(r.Cases)*0.85), r.Recoveries)
		assert.Equal(t, int(float64(r.Cases)*0.05), r.Deaths)
		assert.GreaterOrEqual(t, r.PrevalenceRate, 10.0)
		assert.Less(t, r.PrevalenceRate, 25.0)

		c := centers[r.Region]
		assert.InDelta(t, c.Latitude, r.Latitude, 0.5)
		assert.InDelta(t, c.Longitude, r.Longitude, 0.5)
	}
}

func TestGenerate_IsReproducible(t *testing.T) {
	opts := DefaultGeneratorOptions()

	first := Generate(opts)
	second := Generate(opts)
	opts.Seed = 7
	other := Generate(opts)

	assert.Equal(t, first, second)
	assert.NotEqual(t, first, other)
}

func TestGenerate_CustomRange(t *testing.T) {
	records := Generate(GeneratorOptions{
		Seed:    1,
		Start:   time.Date(2024, time.November, 15, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC),
		Regions: []RegionCenter{{Name: "Coast", Latitude: 4, Longitude: 9}},
	})

	require.Len(t, records, 4)
	assert.Equal(t, time.Date(2024, time.November, 30, 0, 0, 0, 0, time.UTC), records[0].Date)
	assert.Equal(t, time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), records[3].Date)
	for _, r := range records {
		assert.Equal(t, "Coast", r.Region)
	}
}
