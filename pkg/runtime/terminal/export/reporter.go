package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/services/surveillance"
	"github.com/fatih/color"
)

type TableConfig struct {
	RegionWidth int
	ValueWidth  int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		RegionWidth: 16,
		ValueWidth:  14,
	}
}

// Reporter prints dashboard snapshots to the console.
type Reporter struct {
	writer io.Writer
	config TableConfig
	high   *color.Color
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
		high:   color.New(color.FgRed, color.Bold),
	}
}

func (c *Reporter) Handle(snapshot *domain.Snapshot) error {
	funcMap := template.FuncMap{
		"count":   surveillance.FormatCount,
		"percent": surveillance.FormatPercent,
		"risk": func(level domain.RiskLevel) string {
			if level == domain.RiskHigh {
				return c.high.Sprint(string(level))
			}
			return string(level)
		},
		"formatRow": func(region string, cases, deaths string) string {
			return fmt.Sprintf("| %-*s | %*s | %*s |",
				c.config.RegionWidth, region,
				c.config.ValueWidth, cases,
				c.config.ValueWidth, deaths)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.RegionWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2),
				strings.Repeat("-", c.config.ValueWidth+2))
		},
	}

	tmpl := `
Malaria Surveillance ({{.Filter.Year}}, {{.Filter.RegionLabel}})

Total Cases:      {{count .KPIs.TotalCases}}
Recoveries:       {{count .KPIs.TotalRecoveries}}
Deaths:           {{count .KPIs.TotalDeaths}}
Avg Prevalence:   {{percent .KPIs.AvgPrevalence}}
Risk Status:      {{risk .KPIs.Risk}}

{{separator}}
{{formatRow "Region" "Cases" "Deaths"}}
{{separator}}
{{range .Pivot}}{{formatRow .Region (count .Cases) (count .Deaths)}}
{{end}}{{separator}}
`

	t, err := template.New("snapshot").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, snapshot)
}
