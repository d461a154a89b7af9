package surveillance

import (
	"sort"
	"time"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
)

// MonthLayout labels animation frames.
const MonthLayout = "2006-01"

// Filter keeps the records matching f, preserving order.
func Filter(records []domain.Record, f domain.Filter) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// Trend returns cases per date and region, ordered by date then region.
func Trend(records []domain.Record) []domain.TrendPoint {
	type key struct {
		date   time.Time
		region string
	}
	totals := map[key]int{}
	for _, r := range records {
		totals[key{r.Date, r.Region}] += r.Cases
	}

	points := make([]domain.TrendPoint, 0, len(totals))
	for k, cases := range totals {
		points = append(points, domain.TrendPoint{Date: k.date, Region: k.region, Cases: cases})
	}
	sort.Slice(points, func(i, j int) bool {
		if !points[i].Date.Equal(points[j].Date) {
			return points[i].Date.Before(points[j].Date)
		}
		return points[i].Region < points[j].Region
	})
	return points
}

// Map sums cases per region at the region's mean reported location.
func Map(records []domain.Record) []domain.MapPoint {
	type acc struct {
		lat, lon float64
		cases, n int
	}
	byRegion := map[string]*acc{}
	for _, r := range records {
		a, ok := byRegion[r.Region]
		if !ok {
			a = &acc{}
			byRegion[r.Region] = a
		}
		a.lat += r.Latitude
		a.lon += r.Longitude
		a.cases += r.Cases
		a.n++
	}

	points := make([]domain.MapPoint, 0, len(byRegion))
	for region, a := range byRegion {
		points = append(points, domain.MapPoint{
			Region:    region,
			Latitude:  a.lat / float64(a.n),
			Longitude: a.lon / float64(a.n),
			Cases:     a.cases,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Region < points[j].Region })
	return points
}

func Outcome(records []domain.Record) domain.OutcomeSplit {
	var o domain.OutcomeSplit
	for _, r := range records {
		o.Recoveries += r.Recoveries
		o.Deaths += r.Deaths
	}
	return o
}

// Pivot sums cases and deaths per region, ordered by region.
func Pivot(records []domain.Record) []domain.PivotRow {
	byRegion := map[string]*domain.PivotRow{}
	for _, r := range records {
		row, ok := byRegion[r.Region]
		if !ok {
			row = &domain.PivotRow{Region: r.Region}
			byRegion[r.Region] = row
		}
		row.Cases += r.Cases
		row.Deaths += r.Deaths
	}

	rows := make([]domain.PivotRow, 0, len(byRegion))
	for _, row := range byRegion {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Region < rows[j].Region })
	return rows
}

// MapFrames groups the map bubbles by month, oldest first.
func MapFrames(records []domain.Record) []domain.MapFrame {
	months, byMonth := groupByMonth(records)
	frames := make([]domain.MapFrame, 0, len(months))
	for _, m := range months {
		frames = append(frames, domain.MapFrame{Month: m, Points: Map(byMonth[m])})
	}
	return frames
}

// RaceFrames ranks regions by monthly cases, highest first; ties are ordered by region name.
func RaceFrames(records []domain.Record) []domain.RaceFrame {
	months, byMonth := groupByMonth(records)
	frames := make([]domain.RaceFrame, 0, len(months))
	for _, m := range months {
		frames = append(frames, domain.RaceFrame{Month: m, Ranking: Ranking(byMonth[m])})
	}
	return frames
}

// Ranking totals cases per region, highest first.
func Ranking(records []domain.Record) []domain.RegionTotal {
	rows := Pivot(records)
	ranking := make([]domain.RegionTotal, 0, len(rows))
	for _, row := range rows {
		ranking = append(ranking, domain.RegionTotal{Region: row.Region, Cases: row.Cases})
	}
	sort.SliceStable(ranking, func(i, j int) bool { return ranking[i].Cases > ranking[j].Cases })
	return ranking
}

func groupByMonth(records []domain.Record) ([]string, map[string][]domain.Record) {
	byMonth := map[string][]domain.Record{}
	for _, r := range records {
		m := r.Date.Format(MonthLayout)
		byMonth[m] = append(byMonth[m], r)
	}
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	return months, byMonth
}
