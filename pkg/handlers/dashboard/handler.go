package dashboard

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/de-tools/malaria-atlas/pkg/charts"
	"github.com/de-tools/malaria-atlas/pkg/handlers"
	"github.com/de-tools/malaria-atlas/pkg/models/api"
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/report"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/de-tools/malaria-atlas/pkg/services/news"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

const pngSuffix = ".png"

// chartImages maps the URL name of a chart to its registry name.
var chartImages = map[string]string{
	"trend":   charts.CaseTrends,
	"map":     charts.GeographicMap,
	"outcome": charts.OutcomeSplit,
	"race":    charts.RegionalRanking,
}

type Handler struct {
	explorer dashboard.Explorer
	charts   charts.Registry
	feed     news.Feed
}

func NewHandler(explorer dashboard.Explorer, registry charts.Registry, feed news.Feed) *Handler {
	return &Handler{
		explorer: explorer,
		charts:   registry,
		feed:     feed,
	}
}

func (h *Handler) ListFilters(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	years, err := h.explorer.Years(ctx)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	regions, err := h.explorer.Regions(ctx)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	handlers.WriteJSON(w, r, http.StatusOK, api.Filters{
		Years:   years,
		Regions: append([]string{domain.AllRegions}, regions...),
	})
}

func (h *Handler) GetKPIs(w http.ResponseWriter, r *http.Request) {
	filter, ok := h.resolve(w, r)
	if !ok {
		return
	}

	kpis, err := h.explorer.KPIs(r.Context(), filter)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	handlers.WriteJSON(w, r, http.StatusOK, api.KPIs{
		Year:            filter.Year,
		Region:          filter.RegionLabel(),
		TotalCases:      kpis.TotalCases,
		TotalRecoveries: kpis.TotalRecoveries,
		TotalDeaths:     kpis.TotalDeaths,
		AvgPrevalence:   kpis.AvgPrevalence,
		Risk:            string(kpis.Risk),
	})
}

// GetChart serves chart data as JSON, or the rasterized chart when the name ends in .png.
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "chart")
	if strings.HasSuffix(name, pngSuffix) {
		h.getChartImage(w, r, strings.TrimSuffix(name, pngSuffix))
		return
	}

	filter, ok := h.resolve(w, r)
	if !ok {
		return
	}

	ctx := r.Context()
	var (
		body interface{}
		err  error
	)
	switch name {
	case "trend":
		var points []domain.TrendPoint
		points, err = h.explorer.Trend(ctx, filter)
		body = toTrend(points)
	case "map":
		var points []domain.MapPoint
		points, err = h.explorer.Map(ctx, filter)
		body = toMapPoints(points)
	case "outcome":
		var split domain.OutcomeSplit
		split, err = h.explorer.Outcome(ctx, filter)
		body = api.OutcomeSplit{Recoveries: split.Recoveries, Deaths: split.Deaths}
	case "pivot":
		var rows []domain.PivotRow
		rows, err = h.explorer.Pivot(ctx, filter)
		body = toPivot(rows)
	case "frames":
		var frames []domain.MapFrame
		frames, err = h.explorer.Frames(ctx, filter)
		body = toFrames(frames)
	case "race":
		var frames []domain.RaceFrame
		frames, err = h.explorer.BarRace(ctx, filter)
		body = toRace(frames)
	default:
		handlers.WriteJSON(w, r, http.StatusNotFound, api.Error{Error: fmt.Sprintf("unknown chart %q", name)})
		return
	}
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	handlers.WriteJSON(w, r, http.StatusOK, body)
}

func (h *Handler) getChartImage(w http.ResponseWriter, r *http.Request, name string) {
	logger := zerolog.Ctx(r.Context())

	chartName, ok := chartImages[name]
	if !ok {
		handlers.WriteJSON(w, r, http.StatusNotFound, api.Error{Error: fmt.Sprintf("chart %q has no image", name)})
		return
	}

	filter, ok := h.resolve(w, r)
	if !ok {
		return
	}
	records, err := h.explorer.Records(r.Context(), filter)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	chart, err := h.charts.Create(chartName, records)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	size := report.DefaultSize
	data, err := chart.Rasterize(size.Width, size.Height, size.Scale)
	if err != nil {
		if errors.Is(err, charts.ErrNoData) {
			handlers.WriteJSON(w, r, http.StatusNotFound, api.Error{Error: err.Error()})
			return
		}
		handlers.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(data); err != nil {
		logger.Error().
			Err(err).
			Str("chart", chartName).
			Msg("failed to write chart image")
	}
}

func (h *Handler) ListNews(w http.ResponseWriter, r *http.Request) {
	items := h.feed.Fetch(r.URL.Query().Get("region"))

	response := make([]api.NewsItem, 0, len(items))
	for _, item := range items {
		response = append(response, api.NewsItem{
			Date:    item.Date,
			Title:   item.Title,
			Summary: item.Summary,
			Source:  item.Source,
			Link:    item.Link,
		})
	}
	handlers.WriteJSON(w, r, http.StatusOK, response)
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) (domain.Filter, bool) {
	filter, err := handlers.ParseFilter(r)
	if err != nil {
		handlers.WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: err.Error()})
		return filter, false
	}
	filter, err = h.explorer.ResolveFilter(r.Context(), filter)
	if err != nil {
		handlers.WriteError(w, r, err)
		return filter, false
	}
	return filter, true
}
