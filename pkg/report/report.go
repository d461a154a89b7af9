// Package report compiles surveillance metrics and chart images into a paginated PDF document.
//
// A build runs in three steps: every chart is rasterized in order (failures are kept per entry),
// the inputs are composed into a Document of blocks, and a Paginator lays the blocks out on
// pages with the PDF engine.
package report

import "sort"

// ContentType is the MIME type of a built report.
const ContentType = "application/pdf"

// Rasterizer converts a chart into PNG bytes of width×height pixels multiplied by scale.
type Rasterizer interface {
	Rasterize(width, height int, scale float64) ([]byte, error)
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(width, height int, scale float64) ([]byte, error)

func (f RasterizerFunc) Rasterize(width, height int, scale float64) ([]byte, error) {
	return f(width, height, scale)
}

// MetricEntry is a labeled summary statistic already formatted for display.
type MetricEntry struct {
	Label string
	Value string
}

// ChartEntry pairs a chart title with its image source.
type ChartEntry struct {
	Title string
	Chart Rasterizer
}

// ChartsFromMap turns a title keyed map into entries ordered by title.
func ChartsFromMap(charts map[string]Rasterizer) []ChartEntry {
	entries := make([]ChartEntry, 0, len(charts))
	for title, chart := range charts {
		entries = append(entries, ChartEntry{Title: title, Chart: chart})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Title < entries[j].Title
	})
	return entries
}
