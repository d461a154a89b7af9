package charts

import (
	"sort"
	"time"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/wcharczuk/go-chart/v2"
)

// TrendChart is a line chart of cases over time, one line per region.
type TrendChart struct {
	Title  string
	Points []domain.TrendPoint
}

func (c TrendChart) Rasterize(width, height int, scale float64) ([]byte, error) {
	if len(c.Points) == 0 {
		return nil, ErrNoData
	}

	byRegion := map[string][]domain.TrendPoint{}
	for _, p := range c.Points {
		byRegion[p.Region] = append(byRegion[p.Region], p)
	}
	regions := make([]string, 0, len(byRegion))
	for r := range byRegion {
		regions = append(regions, r)
	}
	sort.Strings(regions)

	series := make([]chart.Series, 0, len(regions))
	for i, region := range regions {
		points := byRegion[region]
		sort.Slice(points, func(a, b int) bool { return points[a].Date.Before(points[b].Date) })

		xs := make([]time.Time, 0, len(points))
		ys := make([]float64, 0, len(points))
		for _, p := range points {
			xs = append(xs, p.Date)
			ys = append(ys, float64(p.Cases))
		}
		col := seriesColor(i)
		series = append(series, chart.TimeSeries{
			Name:    region,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: 2 * scale,
				DotColor:    col,
				DotWidth:    3 * scale,
			},
		})
	}

	graph := chart.Chart{
		Title:  c.Title,
		Width:  pixels(width, scale),
		Height: pixels(height, scale),
		Background: chart.Style{
			Padding: chart.Box{Top: int(50 * scale), Left: int(20 * scale), Right: int(20 * scale), Bottom: int(20 * scale)},
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: chart.YAxis{
			Name: "Cases",
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	return render(graph.Render)
}
