package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/services/advisor"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	tests := []struct {
		query    string
		expected domain.Filter
		wantErr  bool
	}{
		{query: "", expected: domain.Filter{}},
		{query: "year=2024", expected: domain.Filter{Year: 2024}},
		{query: "year=2024&region=West", expected: domain.Filter{Year: 2024, Region: "West"}},
		{query: "region=All", expected: domain.Filter{Region: "All"}},
		{query: "year=twenty", wantErr: true},
		{query: "year=0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/kpis?"+tt.query, nil)

			filter, err := ParseFilter(req)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, filter)
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(fmt.Errorf("%w: 1990", dashboard.ErrUnknownYear)))
	assert.Equal(t, http.StatusNotFound, StatusFor(dashboard.ErrUnknownRegion))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(dashboard.ErrNoData))
	assert.Equal(t, http.StatusServiceUnavailable, StatusFor(advisor.ErrDisabled))
	assert.Equal(t, http.StatusBadRequest, StatusFor(advisor.ErrEmptyQuestion))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestWriteAttachment(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/report", nil)

	WriteAttachment(rr, req, "report.pdf", "application/pdf", []byte("%PDF"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "4", rr.Header().Get("Content-Length"))
	assert.Equal(t, `attachment; filename="report.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF", rr.Body.String())
}
