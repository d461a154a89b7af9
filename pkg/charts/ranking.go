package charts

import (
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/wcharczuk/go-chart/v2"
)

// RankingChart is a bar chart of regions ordered by total cases.
type RankingChart struct {
	Title   string
	Ranking []domain.RegionTotal
}

func (c RankingChart) Rasterize(width, height int, scale float64) ([]byte, error) {
	if len(c.Ranking) == 0 {
		return nil, ErrNoData
	}

	bars := make([]chart.Value, 0, len(c.Ranking))
	for i, r := range c.Ranking {
		col := seriesColor(i)
		bars = append(bars, chart.Value{
			Value: float64(r.Cases),
			Label: r.Region,
			Style: chart.Style{FillColor: col, StrokeColor: col},
		})
	}

	graph := chart.BarChart{
		Title:  c.Title,
		Width:  pixels(width, scale),
		Height: pixels(height, scale),
		Background: chart.Style{
			Padding: chart.Box{Top: int(50 * scale)},
		},
		BarWidth:   int(60 * scale),
		BarSpacing: int(40 * scale),
		Bars:       bars,
	}
	return render(graph.Render)
}
