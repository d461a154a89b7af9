package report

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/malaria-atlas/pkg/export"
	"github.com/de-tools/malaria-atlas/pkg/handlers"
	"github.com/de-tools/malaria-atlas/pkg/models/api"
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/de-tools/malaria-atlas/pkg/services/reporting"
	"github.com/rs/zerolog"
)

// Generator compiles and optionally uploads surveillance reports.
type Generator interface {
	Generate(ctx context.Context, filter domain.Filter) (*reporting.Artifact, error)
	Publishing() bool
	Publish(ctx context.Context, artifact *reporting.Artifact) (string, error)
}

type Handler struct {
	reports  Generator
	explorer dashboard.Explorer
}

func NewHandler(reports Generator, explorer dashboard.Explorer) *Handler {
	return &Handler{
		reports:  reports,
		explorer: explorer,
	}
}

// GetReport downloads the PDF report. With publish=true the report is uploaded instead
// and its location returned as JSON.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	filter, err := handlers.ParseFilter(r)
	if err != nil {
		handlers.WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: err.Error()})
		return
	}
	publish := false
	if v := r.URL.Query().Get("publish"); v != "" {
		publish, err = strconv.ParseBool(v)
		if err != nil {
			handlers.WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: fmt.Sprintf("invalid publish flag %q", v)})
			return
		}
	}
	if publish && !h.reports.Publishing() {
		handlers.WriteJSON(w, r, http.StatusNotImplemented, api.Error{Error: "report publishing is not configured"})
		return
	}

	artifact, err := h.reports.Generate(ctx, filter)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	for _, title := range artifact.ChartFailures {
		logger.Warn().
			Str("report_id", artifact.ID).
			Str("chart", title).
			Msg("report chart replaced by placeholder")
	}

	if !publish {
		handlers.WriteAttachment(w, r, artifact.FileName, artifact.ContentType, artifact.Data)
		return
	}

	location, err := h.reports.Publish(ctx, artifact)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteJSON(w, r, http.StatusCreated, api.PublishedReport{
		ID:            artifact.ID,
		FileName:      artifact.FileName,
		Location:      location,
		ChartFailures: artifact.ChartFailures,
	})
}

// GetExport downloads the filtered raw records as an xlsx workbook.
func (h *Handler) GetExport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := handlers.ParseFilter(r)
	if err != nil {
		handlers.WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: err.Error()})
		return
	}
	filter, err = h.explorer.ResolveFilter(ctx, filter)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	records, err := h.explorer.Records(ctx, filter)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteWorkbook(&buf, records); err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	handlers.WriteAttachment(w, r, export.FileName(filter), export.ContentType, buf.Bytes())
}
