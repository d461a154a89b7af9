package dashboard

import (
	"github.com/de-tools/malaria-atlas/pkg/models/api"
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
)

func toTrend(points []domain.TrendPoint) []api.TrendPoint {
	out := make([]api.TrendPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.TrendPoint{Date: p.Date, Region: p.Region, Cases: p.Cases})
	}
	return out
}

func toMapPoints(points []domain.MapPoint) []api.MapPoint {
	out := make([]api.MapPoint, 0, len(points))
	for _, p := range points {
		out = append(out, api.MapPoint{
			Region:    p.Region,
			Latitude:  p.Latitude,
			Longitude: p.Longitude,
			Cases:     p.Cases,
		})
	}
	return out
}

func toPivot(rows []domain.PivotRow) []api.PivotRow {
	out := make([]api.PivotRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, api.PivotRow{Region: r.Region, Cases: r.Cases, Deaths: r.Deaths})
	}
	return out
}

func toFrames(frames []domain.MapFrame) []api.MapFrame {
	out := make([]api.MapFrame, 0, len(frames))
	for _, f := range frames {
		out = append(out, api.MapFrame{Month: f.Month, Points: toMapPoints(f.Points)})
	}
	return out
}

func toRace(frames []domain.RaceFrame) []api.RaceFrame {
	out := make([]api.RaceFrame, 0, len(frames))
	for _, f := range frames {
		ranking := make([]api.RegionTotal, 0, len(f.Ranking))
		for _, t := range f.Ranking {
			ranking = append(ranking, api.RegionTotal{Region: t.Region, Cases: t.Cases})
		}
		out = append(out, api.RaceFrame{Month: f.Month, Ranking: ranking})
	}
	return out
}
