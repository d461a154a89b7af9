package charts

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	bubbleLow  = color.RGBA{R: 252, G: 187, B: 161, A: 220}
	bubbleHigh = color.RGBA{R: 165, G: 15, B: 21, A: 220}
)

const (
	minBubble = 6.0
	maxBubble = 24.0
	mapMargin = 1.0 // degrees around the outermost bubbles
)

// MapChart is a bubble map: one bubble per region sized and shaded by cases.
type MapChart struct {
	Title  string
	Points []domain.MapPoint
}

func (c MapChart) Rasterize(width, height int, scale float64) ([]byte, error) {
	if len(c.Points) == 0 {
		return nil, ErrNoData
	}
	if scale <= 0 {
		scale = 1
	}

	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"
	p.Add(plotter.NewGrid())

	maxCases := 0
	for _, pt := range c.Points {
		maxCases = max(maxCases, pt.Cases)
	}

	xys := make(plotter.XYs, 0, len(c.Points))
	names := make([]string, 0, len(c.Points))
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, pt := range c.Points {
		xy := plotter.XY{X: pt.Longitude, Y: pt.Latitude}
		bubble, err := plotter.NewScatter(plotter.XYs{xy})
		if err != nil {
			return nil, fmt.Errorf("bubble %s: %w", pt.Region, err)
		}
		ratio := 0.0
		if maxCases > 0 {
			ratio = float64(pt.Cases) / float64(maxCases)
		}
		bubble.GlyphStyle.Shape = draw.CircleGlyph{}
		bubble.GlyphStyle.Color = shade(ratio)
		bubble.GlyphStyle.Radius = vg.Points(minBubble + (maxBubble-minBubble)*ratio)
		p.Add(bubble)

		xys = append(xys, xy)
		names = append(names, pt.Region)
		minX, maxX = math.Min(minX, xy.X), math.Max(maxX, xy.X)
		minY, maxY = math.Min(minY, xy.Y), math.Max(maxY, xy.Y)
	}

	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: names})
	if err != nil {
		return nil, fmt.Errorf("labels: %w", err)
	}
	p.Add(labels)

	p.X.Min, p.X.Max = minX-mapMargin, maxX+mapMargin
	p.Y.Min, p.Y.Max = minY-mapMargin, maxY+mapMargin

	canvas := vgimg.NewWith(
		vgimg.UseWH(vg.Length(width), vg.Length(height)),
		vgimg.UseDPI(int(72*scale)),
	)
	p.Draw(draw.New(canvas))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func shade(ratio float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*ratio)
	}
	return color.RGBA{
		R: mix(bubbleLow.R, bubbleHigh.R),
		G: mix(bubbleLow.G, bubbleHigh.G),
		B: mix(bubbleLow.B, bubbleHigh.B),
		A: bubbleLow.A,
	}
}
