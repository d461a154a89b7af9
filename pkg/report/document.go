package report

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Document is the ordered content of a report: header, summary, visuals.
type Document struct {
	Blocks []Block
}

// Compose lays out the fixed section order for the given inputs. Metric order and chart
// order are kept as supplied; failed charts become placeholders.
func Compose(cfg Config, generated time.Time, logo *Image, metrics []MetricEntry, charts []RasterResult) (*Document, error) {
	if err := validateMetrics(metrics); err != nil {
		return nil, &DocumentAssemblyError{Stage: "summary", Err: err}
	}

	blocks := make([]Block, 0, len(metrics)+len(charts)+5)
	blocks = append(blocks, HeaderBlock{
		Title: cfg.Title,
		Date:  "Generated on: " + generated.Format(cfg.DateLayout),
		Align: cfg.Style.HeaderAlign,
		Logo:  logo,
	})

	blocks = append(blocks, SectionBlock{Title: cfg.SummaryTitle})
	for _, m := range metrics {
		blocks = append(blocks, SummaryRowBlock{
			Label:   m.Label,
			Value:   m.Value,
			Warning: cfg.IsHighRisk(m.Label, m.Value),
		})
	}
	blocks = append(blocks, SpacerBlock{Height: cfg.Style.BlockSpacing})

	blocks = append(blocks, SectionBlock{Title: cfg.VisualsTitle})
	for _, res := range charts {
		title := cfg.ChartPrefix + res.Title
		if !res.OK() {
			blocks = append(blocks, PlaceholderBlock{Title: title, Message: cfg.Placeholder})
			continue
		}
		blocks = append(blocks, ChartBlock{Title: title, Image: res.Image})
	}

	return &Document{Blocks: blocks}, nil
}

func validateMetrics(metrics []MetricEntry) error {
	for i, m := range metrics {
		if m.Label == "" {
			return fmt.Errorf("metric %d: %w", i, ErrEmptyLabel)
		}
		if !utf8.ValidString(m.Label) || !utf8.ValidString(m.Value) {
			return fmt.Errorf("metric %d (%q): invalid UTF-8 text", i, m.Label)
		}
	}
	return nil
}
