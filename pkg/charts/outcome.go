package charts

import (
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/wcharczuk/go-chart/v2"
)

// OutcomeChart is a donut of recoveries against deaths.
type OutcomeChart struct {
	Title   string
	Outcome domain.OutcomeSplit
}

func (c OutcomeChart) Rasterize(width, height int, scale float64) ([]byte, error) {
	if c.Outcome.Recoveries+c.Outcome.Deaths <= 0 {
		return nil, ErrNoData
	}

	donut := chart.DonutChart{
		Title:  c.Title,
		Width:  pixels(width, scale),
		Height: pixels(height, scale),
		Values: []chart.Value{
			{Value: float64(c.Outcome.Recoveries), Label: "Recoveries", Style: chart.Style{FillColor: colorRecoveries}},
			{Value: float64(c.Outcome.Deaths), Label: "Deaths", Style: chart.Style{FillColor: colorDeaths}},
		},
	}
	return render(donut.Render)
}
