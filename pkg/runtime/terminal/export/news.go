package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/fatih/color"
)

// NewsReporter prints news items to the console.
type NewsReporter struct {
	writer io.Writer
	title  *color.Color
}

func NewNewsReporter(writer io.Writer) *NewsReporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &NewsReporter{writer: writer, title: color.New(color.Bold)}
}

func (c *NewsReporter) Handle(items []domain.NewsItem) error {
	tmpl := `{{if not .}}No news for this region.
{{end}}{{range .}}
{{.Date}}  {{title .Title}}
{{.Summary}}
Source: {{.Source}} ({{.Link}})
{{end}}`

	t, err := template.New("news").Funcs(template.FuncMap{"title": c.title.Sprint}).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, items)
}
