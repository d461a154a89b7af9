package advisor

import (
	"encoding/json"
	"net/http"

	"github.com/de-tools/malaria-atlas/pkg/handlers"
	"github.com/de-tools/malaria-atlas/pkg/models/api"
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/services/advisor"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Handler struct {
	advisor  advisor.Advisor
	explorer dashboard.Explorer
}

func NewHandler(adv advisor.Advisor, explorer dashboard.Explorer) *Handler {
	return &Handler{
		advisor:  adv,
		explorer: explorer,
	}
}

// Ask answers a question using the KPIs of the requested year and region as context.
func (h *Handler) Ask(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.AdvisorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.WriteJSON(w, r, http.StatusBadRequest, api.Error{Error: "invalid request body"})
		return
	}

	filter, err := h.explorer.ResolveFilter(ctx, domain.Filter{Year: req.Year, Region: req.Region})
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}
	kpis, err := h.explorer.KPIs(ctx, filter)
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	answer, err := h.advisor.Ask(ctx, req.Question, domain.DashboardContext{
		Region:     filter.RegionLabel(),
		TotalCases: kpis.TotalCases,
		Risk:       kpis.Risk,
	})
	if err != nil {
		handlers.WriteError(w, r, err)
		return
	}

	id := uuid.NewString()
	logger.Info().
		Str("answer_id", id).
		Str("region", filter.RegionLabel()).
		Msg("advisor answered")
	handlers.WriteJSON(w, r, http.StatusOK, api.AdvisorResponse{ID: id, Answer: answer})
}
