package surveillance

import (
	"math/rand/v2"
	"time"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
)

// RegionCenter is the approximate geographic center of a surveillance region.
type RegionCenter struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// DefaultRegions are the five surveillance regions in display order.
var DefaultRegions = []RegionCenter{
	{Name: "North", Latitude: 10.0, Longitude: 8.0},
	{Name: "South", Latitude: 5.0, Longitude: 7.0},
	{Name: "East", Latitude: 8.0, Longitude: 11.0},
	{Name: "West", Latitude: 9.0, Longitude: 4.0},
	{Name: "Central", Latitude: 9.0, Longitude: 7.0},
}

const (
	recoveryRatio = 0.85
	deathRatio    = 0.05
	jitter        = 0.5
)

type GeneratorOptions struct {
	Seed    uint64
	Start   time.Time // first month included
	End     time.Time // last month included
	Regions []RegionCenter
}

func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		Seed:    42,
		Start:   time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		End:     time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC),
		Regions: DefaultRegions,
	}
}

// Generate fabricates one record per region per month, dated on the last day of the month.
// The same options always produce the same records.
func Generate(opts GeneratorOptions) []domain.Record {
	if len(opts.Regions) == 0 {
		opts.Regions = DefaultRegions
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	months := monthEnds(opts.Start, opts.End)

	records := make([]domain.Record, 0, len(months)*len(opts.Regions))
	for _, region := range opts.Regions {
		for _, date := range months {
			cases := 500 + rng.IntN(1000)
			if isRainySeason(date.Month()) {
				cases += 500 + rng.IntN(500)
			}
			records = append(records, domain.Record{
				Date:           date,
				Region:         region.Name,
				Latitude:       region.Latitude + uniform(rng, -jitter, jitter),
				Longitude:      region.Longitude + uniform(rng, -jitter, jitter),
				Cases:          cases,
				Recoveries:     int(float64(cases) * recoveryRatio),
				Deaths:         int(float64(cases) * deathRatio),
				PrevalenceRate: uniform(rng, 10, 25),
			})
		}
	}
	return records
}

func isRainySeason(m time.Month) bool {
	return m == time.June || m == time.July || m == time.August
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func monthEnds(start, end time.Time) []time.Time {
	var out []time.Time
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(last) {
		out = append(out, cur.AddDate(0, 1, -1))
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}
