// Package charts rasterizes dashboard visuals into PNG images for reports and downloads.
package charts

import (
	"bytes"
	"errors"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("no data to plot")

var (
	colorRecoveries = drawing.ColorFromHex("27ae60")
	colorDeaths     = drawing.ColorFromHex("e74c3c")

	// one color per region, assigned in region name order
	palette = []drawing.Color{
		drawing.ColorFromHex("1f77b4"),
		drawing.ColorFromHex("ff7f0e"),
		drawing.ColorFromHex("2ca02c"),
		drawing.ColorFromHex("d62728"),
		drawing.ColorFromHex("9467bd"),
		drawing.ColorFromHex("8c564b"),
	}
)

func seriesColor(i int) drawing.Color {
	return palette[i%len(palette)]
}

func pixels(n int, scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	return int(float64(n) * scale)
}

func render(fn func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := fn(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
