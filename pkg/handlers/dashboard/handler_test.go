package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/malaria-atlas/pkg/charts"
	"github.com/de-tools/malaria-atlas/pkg/models/api"
	"github.com/de-tools/malaria-atlas/pkg/models/domain"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard"
	"github.com/de-tools/malaria-atlas/pkg/services/dashboard/dashboardtest"
	"github.com/de-tools/malaria-atlas/pkg/services/news"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var latest = domain.Filter{Year: 2025, Region: "All"}

func setupRouter(explorer *dashboardtest.MockExplorer) *chi.Mux {
	h := NewHandler(explorer, charts.NewDefaultRegistry(), news.NewStaticFeed(news.DefaultItems))
	r := chi.NewRouter()
	r.Get("/filters", h.ListFilters)
	r.Get("/kpis", h.GetKPIs)
	r.Get("/charts/{chart}", h.GetChart)
	r.Get("/news", h.ListNews)
	return r
}

func serve(router http.Handler, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestListFilters(t *testing.T) {
	// Given
	explorer := new(dashboardtest.MockExplorer)
	explorer.On("Years", mock.Anything).Return([]int{2025, 2024}, nil)
	explorer.On("Regions", mock.Anything).Return([]string{"Central", "North"}, nil)

	// When
	rr := serve(setupRouter(explorer), "/filters")

	// Then
	assert.Equal(t, http.StatusOK, rr.Code)
	var body api.Filters
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, api.Filters{Years: []int{2025, 2024}, Regions: []string{"All", "Central", "North"}}, body)
}

func TestGetKPIs(t *testing.T) {
	tests := []struct {
		name           string
		target         string
		setupMock      func(*dashboardtest.MockExplorer)
		expectedStatus int
		expectedBody   *api.KPIs
	}{
		{
			name:   "latest year by default",
			target: "/kpis",
			setupMock: func(m *dashboardtest.MockExplorer) {
				m.On("ResolveFilter", mock.Anything, domain.Filter{}).Return(latest, nil)
				m.On("KPIs", mock.Anything, latest).Return(domain.KPIs{
					TotalCases: 60000, TotalRecoveries: 51000, TotalDeaths: 3000, AvgPrevalence: 21.5, Risk: domain.RiskHigh,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: &api.KPIs{
				Year: 2025, Region: "All", TotalCases: 60000, TotalRecoveries: 51000,
				TotalDeaths: 3000, AvgPrevalence: 21.5, Risk: "High",
			},
		},
		{
			name:           "invalid year",
			target:         "/kpis?year=abc",
			setupMock:      func(m *dashboardtest.MockExplorer) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown region",
			target: "/kpis?year=2025&region=Atlantis",
			setupMock: func(m *dashboardtest.MockExplorer) {
				m.On("ResolveFilter", mock.Anything, domain.Filter{Year: 2025, Region: "Atlantis"}).
					Return(domain.Filter{}, dashboard.ErrUnknownRegion)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "store failure",
			target: "/kpis?year=2024&region=North",
			setupMock: func(m *dashboardtest.MockExplorer) {
				f := domain.Filter{Year: 2024, Region: "North"}
				m.On("ResolveFilter", mock.Anything, f).Return(f, nil)
				m.On("KPIs", mock.Anything, f).Return(domain.KPIs{}, errors.New("connection reset"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given
			explorer := new(dashboardtest.MockExplorer)
			tt.setupMock(explorer)

			// When
			rr := serve(setupRouter(explorer), tt.target)

			// Then
			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedBody != nil {
				var body api.KPIs
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
				assert.Equal(t, *tt.expectedBody, body)
			}
			explorer.AssertExpectations(t)
		})
	}
}

func TestGetChart_Data(t *testing.T) {
	explorer := new(dashboardtest.MockExplorer)
	explorer.On("ResolveFilter", mock.Anything, mock.Anything).Return(latest, nil)
	explorer.On("Outcome", mock.Anything, latest).Return(domain.OutcomeSplit{Recoveries: 85, Deaths: 5}, nil)
	explorer.On("Pivot", mock.Anything, latest).Return([]domain.PivotRow{{Region: "North", Cases: 10, Deaths: 1}}, nil)
	explorer.On("BarRace", mock.Anything, latest).Return([]domain.RaceFrame{
		{Month: "2025-01", Ranking: []domain.RegionTotal{{Region: "South", Cases: 9}, {Region: "North", Cases: 4}}},
	}, nil)
	router := setupRouter(explorer)

	t.Run("outcome", func(t *testing.T) {
		rr := serve(router, "/charts/outcome")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"recoveries":85,"deaths":5}`, rr.Body.String())
	})

	t.Run("pivot", func(t *testing.T) {
		rr := serve(router, "/charts/pivot")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"region":"North","cases":10,"deaths":1}]`, rr.Body.String())
	})

	t.Run("race", func(t *testing.T) {
		rr := serve(router, "/charts/race")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"month":"2025-01","ranking":[{"region":"South","cases":9},{"region":"North","cases":4}]}]`, rr.Body.String())
	})

	t.Run("unknown chart", func(t *testing.T) {
		rr := serve(router, "/charts/heatmap")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestGetChart_Image(t *testing.T) {
	records := []domain.Record{
		{Date: time.Date(2025, time.January, 31, 0, 0, 0, 0, time.UTC), Region: "North", Cases: 900, Recoveries: 765, Deaths: 45},
		{Date: time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC), Region: "North", Cases: 1100, Recoveries: 935, Deaths: 55},
	}

	t.Run("outcome donut", func(t *testing.T) {
		// Given
		explorer := new(dashboardtest.MockExplorer)
		explorer.On("ResolveFilter", mock.Anything, mock.Anything).Return(latest, nil)
		explorer.On("Records", mock.Anything, latest).Return(records, nil)

		// When
		rr := serve(setupRouter(explorer), "/charts/outcome.png")

		// Then
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		cfg, err := png.DecodeConfig(bytes.NewReader(rr.Body.Bytes()))
		require.NoError(t, err)
		assert.Equal(t, 1600, cfg.Width)
		assert.Equal(t, 900, cfg.Height)
	})

	t.Run("no data", func(t *testing.T) {
		explorer := new(dashboardtest.MockExplorer)
		explorer.On("ResolveFilter", mock.Anything, mock.Anything).Return(latest, nil)
		explorer.On("Records", mock.Anything, latest).Return([]domain.Record{}, nil)

		rr := serve(setupRouter(explorer), "/charts/trend.png")

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("chart without image", func(t *testing.T) {
		explorer := new(dashboardtest.MockExplorer)

		rr := serve(setupRouter(explorer), "/charts/pivot.png")

		assert.Equal(t, http.StatusNotFound, rr.Code)
		explorer.AssertNotCalled(t, "Records", mock.Anything, mock.Anything)
	})
}

func TestListNews(t *testing.T) {
	router := setupRouter(new(dashboardtest.MockExplorer))

	rr := serve(router, "/news")
	require.Equal(t, http.StatusOK, rr.Code)
	var all []api.NewsItem
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&all))
	assert.Len(t, all, 3)

	rr = serve(router, "/news?region=North")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}
