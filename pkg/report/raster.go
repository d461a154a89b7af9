package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
)

// Image is an encoded raster ready to be embedded in the document.
type Image struct {
	Data   []byte
	Format string // "png" or "jpeg"
	Width  int    // pixels
	Height int    // pixels
}

// DecodeImage validates encoded image bytes and reads their dimensions.
func DecodeImage(data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("image has zero size %dx%d", cfg.Width, cfg.Height)
	}
	return &Image{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// RasterResult is the outcome of rasterizing one chart entry: exactly one of Image and Err is set.
type RasterResult struct {
	Title string
	Image *Image
	Err   *ChartRenderError
}

func (r RasterResult) OK() bool {
	return r.Err == nil
}

// Size is the fixed raster format every chart is converted to.
type Size struct {
	Width  int
	Height int
	Scale  float64
}

// Rasterize converts a single entry. Errors and panics raised by the chart are captured in the result.
func Rasterize(entry ChartEntry, size Size) (res RasterResult) {
	res.Title = entry.Title
	fail := func(err error) RasterResult {
		res.Image = nil
		res.Err = &ChartRenderError{Title: entry.Title, Err: err}
		return res
	}
	if entry.Chart == nil {
		return fail(ErrNilChart)
	}

	defer func() {
		if r := recover(); r != nil {
			res = fail(fmt.Errorf("%w: %v", ErrRasterPanic, r))
		}
	}()

	data, err := entry.Chart.Rasterize(size.Width, size.Height, size.Scale)
	if err != nil {
		return fail(err)
	}
	img, err := DecodeImage(data)
	if err != nil {
		return fail(err)
	}
	res.Image = img
	return res
}

// RasterizeAll rasterizes entries one after another, in order. A failing entry never
// prevents the following ones from being rasterized.
func RasterizeAll(entries []ChartEntry, size Size) []RasterResult {
	results := make([]RasterResult, 0, len(entries))
	for _, entry := range entries {
		results = append(results, Rasterize(entry, size))
	}
	return results
}
