package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/de-tools/malaria-atlas/pkg/models/api"
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/services/advisor"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/rs/zerolog"
)

// ParseFilter reads the year and region query parameters. A missing year is left zero
// so the explorer can pick the latest one.
func ParseFilter(r *http.Request) (domain.Filter, error) {
	q := r.URL.Query()
	filter := domain.Filter{Region: q.Get("region")}
	if year := q.Get("year"); year != "" {
		y, err := strconv.Atoi(year)
		if err != nil || y <= 0 {
			return filter, fmt.Errorf("invalid year %q", year)
		}
		filter.Year = y
	}
	return filter, nil
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("failed to encode response")
	}
}

// WriteError maps err to a status code, logs server-side failures and writes a JSON error body.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Msg("request failed")
	}
	WriteJSON(w, r, status, api.Error{Error: err.Error()})
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownYear), errors.Is(err, dashboard.ErrUnknownRegion):
		return http.StatusNotFound
	case errors.Is(err, advisor.ErrEmptyQuestion):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrNoData), errors.Is(err, advisor.ErrDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// WriteAttachment sends data as a file download.
func WriteAttachment(w http.ResponseWriter, r *http.Request, fileName, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		zerolog.Ctx(r.Context()).Error().
			Err(err).
			Str("file", fileName).
			Msg("failed to write attachment")
	}
}
