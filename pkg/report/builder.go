package report

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultTitle        = "Malaria Surveillance Report"
	DefaultRiskField    = "Regional Risk Status"
	DefaultHighSentinel = "High"
	DefaultPlaceholder  = "chart could not be rendered"
)

// DefaultSize is the raster format charts are converted to: 800x450 at 2x.
var DefaultSize = Size{Width: 800, Height: 450, Scale: 2}

type Config struct {
	Title        string
	SummaryTitle string
	VisualsTitle string
	ChartPrefix  string
	Placeholder  string
	DateLayout   string

	// BrandingImagePath points to an optional PNG or JPEG drawn in the header band.
	// A missing or unreadable file leaves the header without a logo.
	BrandingImagePath string

	// A summary value equal to HighSentinel on the row labeled RiskField is drawn in the
	// warning color. Both comparisons are exact and case-sensitive.
	RiskField    string
	HighSentinel string

	Compression bool
	Size        Size
	Style       Style

	// Now supplies the generation date. Inject a fixed clock for byte-identical output.
	Now    func() time.Time
	Logger *zerolog.Logger
}

func DefaultConfig() Config {
	return Config{
		Title:        DefaultTitle,
		SummaryTitle: "Executive Summary",
		VisualsTitle: "Surveillance Insights",
		ChartPrefix:  "Analysis: ",
		Placeholder:  DefaultPlaceholder,
		DateLayout:   "January 02, 2006",
		RiskField:    DefaultRiskField,
		HighSentinel: DefaultHighSentinel,
		Compression:  true,
		Size:         DefaultSize,
		Style:        DefaultStyle(),
		Now:          time.Now,
	}
}

// IsHighRisk reports whether a summary row gets the warning color.
func (c Config) IsHighRisk(label, value string) bool {
	if c.RiskField == "" {
		return false
	}
	return label == c.RiskField && value == c.HighSentinel
}

// Result is a compiled report together with the charts that were replaced by placeholders.
type Result struct {
	Data     []byte
	Pages    int
	Failures []ChartRenderError
}

// Builder compiles reports. It keeps no state between builds.
type Builder struct {
	cfg    Config
	logger zerolog.Logger
}

func NewBuilder(cfg Config) *Builder {
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Size == (Size{}) {
		cfg.Size = DefaultSize
	}
	if cfg.Style.PageSize == "" {
		cfg.Style = DefaultStyle()
	}
	return &Builder{cfg: cfg, logger: logger}
}

// Build compiles metrics and charts into PDF bytes. Charts that fail to rasterize are
// replaced by placeholder text; any other failure is returned as a *DocumentAssemblyError.
func (b *Builder) Build(metrics []MetricEntry, charts []ChartEntry) ([]byte, error) {
	res, err := b.Compile(metrics, charts)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

// Compile is Build with the per-chart failures reported back to the caller.
func (b *Builder) Compile(metrics []MetricEntry, charts []ChartEntry) (*Result, error) {
	if err := validateMetrics(metrics); err != nil {
		return nil, &DocumentAssemblyError{Stage: "summary", Err: err}
	}
	for i, c := range charts {
		if c.Title == "" {
			return nil, &DocumentAssemblyError{Stage: "visuals", Err: fmt.Errorf("chart %d: %w", i, ErrEmptyTitle)}
		}
	}

	results := RasterizeAll(charts, b.cfg.Size)
	var failures []ChartRenderError
	for _, r := range results {
		if r.OK() {
			continue
		}
		b.logger.Warn().
			Err(r.Err.Err).
			Str("chart", r.Title).
			Msg("chart replaced by placeholder")
		failures = append(failures, *r.Err)
	}

	generated := b.cfg.Now()
	doc, err := Compose(b.cfg, generated, b.loadLogo(), metrics, results)
	if err != nil {
		return nil, err
	}

	paginator := NewPaginator(b.cfg.Style, b.cfg.Title, generated, b.cfg.Compression)
	data, err := paginator.Render(doc)
	if err != nil {
		return nil, &DocumentAssemblyError{Stage: "render", Err: err}
	}

	return &Result{Data: data, Pages: paginator.PageCount(), Failures: failures}, nil
}

func (b *Builder) loadLogo() *Image {
	path := b.cfg.BrandingImagePath
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			b.logger.Warn().Err(err).Str("path", path).Msg("branding image unreadable")
		}
		return nil
	}
	img, err := DecodeImage(data)
	if err != nil {
		b.logger.Warn().Err(err).Str("path", path).Msg("branding image skipped")
		return nil
	}
	return img
}
