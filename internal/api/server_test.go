package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/analytics"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/ranking"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"golang.org/x/crypto/bcrypt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakeSyncJob struct {
	accept bool
	calls  int
}

func (f *fakeSyncJob) TriggerManualSync(context.Context) bool {
	f.calls++
	return f.accept
}

func (f *fakeSyncJob) GetStatus() map[string]any {
	return map[string]any{"sync_running": !f.accept}
}

func salesFixture() []domain.SaleRecord {
	records := make([]domain.SaleRecord, 0, 72)
	for i := 0; i < 36; i++ {
		orderDate := time.Date(2015, 1, 10, 0, 0, 0, 0, time.UTC).AddDate(0, i, 0)
		for j, customer := range []string{"Claire Gute", "Sean Miller"} {
			records = append(records, domain.SaleRecord{
				RowID:        fmt.Sprintf("%d-%d", i, j),
				OrderDate:    orderDate,
				ShipDate:     orderDate.AddDate(0, 0, 3),
				Amount:       100 + float64(i*(j+1)),
				Region:       []string{"South", "West"}[j],
				Category:     []string{"Furniture", "Technology"}[j],
				SubCategory:  []string{"Chairs", "Phones"}[j],
				Segment:      "Consumer",
				CustomerID:   customer,
				CustomerName: customer,
				Year:         orderDate.Year(),
				Month:        int(orderDate.Month()),
				Quarter:      analytics.QuarterOf(orderDate),
			})
		}
	}
	return records
}

type testAPI struct {
	handler http.Handler
	cron    *fakeSyncJob
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	repo := repository.NewMemorySaleRepository()
	_, err := repo.UpsertSales(context.Background(), "teste", salesFixture())
	require.NoError(t, err)

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin-key"), bcrypt.MinCost)
	require.NoError(t, err)
	viewerHash, err := bcrypt.GenerateFromPassword([]byte("viewer-key"), bcrypt.MinCost)
	require.NoError(t, err)

	cfg := &config.Config{
		Analytics: config.Analytics{DecompositionPeriod: 12, AcfMaxLag: 12, ForecastWindow: 10, RankingSize: 10},
		Auth: config.Auth{
			Secret:        "segredo",
			APIKeyHash:    string(adminHash),
			ViewerKeyHash: string(viewerHash),
			TokenTTL:      time.Hour,
		},
		Cors: config.Cors{AllowedOrigins: []string{"http://localhost:3000"}},
	}

	cron := &fakeSyncJob{accept: true}
	registry := metrics.NewRegistry()

	h := NewHandler(cfg, Services{
		Sales:         repo,
		Reporter:      reporting.NewService(repo, cfg.Analytics).WithMetrics(registry),
		Ranking:       ranking.NewCustomerRankingService(repo),
		Authenticator: authenticating.NewService(cfg.Auth),
		CronJobs:      handler.CronJobServices{SalesImport: cron},
		Metrics:       registry,
	})

	return &testAPI{handler: h, cron: cron}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func (a *testAPI) token(t *testing.T, apiKey string) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/v1/token", "", strings.NewReader(`{"api_key":"`+apiKey+`"}`))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp handler.TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bearer", resp.TokenType)
	return resp.Token
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func TestAPI_PublicRoutes(t *testing.T) {
	api := newTestAPI(t)

	t.Run("Healthcheck sem token", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/healthcheck", "", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 72.0, decode(t, rec)["records"])
	})

	t.Run("Chave inválida - 401", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/token", "", strings.NewReader(`{"api_key":"errada"}`))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "AUTH_001", decode(t, rec)["code"])
	})

	t.Run("Corpo sem chave - 400", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/token", "", strings.NewReader(`{}`))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VAL_003", decode(t, rec)["code"])
	})

	t.Run("Rota protegida sem token - 401", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/dashboard", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "AUTH_006", decode(t, rec)["code"])
	})

	t.Run("Preflight CORS de origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/dashboard", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestAPI_AnalysisRoutes(t *testing.T) {
	api := newTestAPI(t)
	token := api.token(t, "viewer-key")

	tests := []struct {
		name       string
		path       string
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:       "Série mensal com janela",
			path:       "/v1/sales/series?granularity=month&start_date=2016-01-15&end_date=2016-03-31",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				points := decode(t, rec)["points"].([]any)
				assert.Len(t, points, 3)
			},
		},
		{
			name:       "Granularidade inválida",
			path:       "/v1/sales/series?granularity=week",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Data fora do formato ISO",
			path:       "/v1/sales/series?start_date=15/01/2016",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Comparação anual",
			path:       "/v1/sales/years?years=2015,2017",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				years := decode(t, rec)["years"].([]any)
				assert.Len(t, years, 2)
			},
		},
		{
			name:       "Comparação anual sem anos",
			path:       "/v1/sales/years",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Regiões",
			path:       "/v1/regions",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Pareto por subcategoria em janeiro",
			path:       "/v1/pareto?key=sub-category&months=1",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Pareto por campo não suportado",
			path:       "/v1/pareto?key=region",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Ranking de clientes",
			path:       "/v1/customers/ranking?n=1",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				top := decode(t, rec)["top"].([]any)
				require.Len(t, top, 1)
				assert.Equal(t, "Sean Miller", top[0].(map[string]any)["customer"])
			},
		},
		{
			name:       "Decomposição com período padrão",
			path:       "/v1/analysis/decomposition",
			wantStatus: http.StatusOK,
		},
		{
			name:       "Decomposição com série curta para o período - 422",
			path:       "/v1/analysis/decomposition?period=24",
			wantStatus: http.StatusUnprocessableEntity,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "ANL_001", decode(t, rec)["code"])
			},
		},
		{
			name:       "Autocorrelação com defasagem maior que a série - 400",
			path:       "/v1/analysis/autocorrelation?max_lag=36",
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "ANL_002", decode(t, rec)["code"])
			},
		},
		{
			name:       "Autocorrelação com parâmetro não numérico",
			path:       "/v1/analysis/autocorrelation?max_lag=abc",
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, "VAL_003", decode(t, rec)["code"])
			},
		},
		{
			name:       "Metas do próximo mês",
			path:       "/v1/kpis/next-month",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := decode(t, rec)
				assert.NotNil(t, body["sales"].(map[string]any)["estimate"])
				assert.NotNil(t, body["customers"].(map[string]any)["estimate"])
			},
		},
		{
			name:       "Painel completo",
			path:       "/v1/dashboard?granularity=quarter",
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				body := decode(t, rec)
				assert.Equal(t, 72.0, body["records"])
				assert.Nil(t, body["errors"])
				assert.Len(t, body["sales"].(map[string]any)["points"], 12)
				assert.Len(t, body["monthly_sales"].(map[string]any)["points"], 36)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := api.do(t, http.MethodGet, tt.path, token, nil)
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestAPI_CronRoutes(t *testing.T) {
	api := newTestAPI(t)
	viewer := api.token(t, "viewer-key")
	admin := api.token(t, "admin-key")

	t.Run("Perfil viewer não dispara importação - 403", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/cron/sales-import/run", viewer, nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, 0, api.cron.calls)
	})

	t.Run("Admin dispara importação - 202", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/cron/sales-import/run", admin, nil)
		assert.Equal(t, http.StatusAccepted, rec.Code)
		assert.Equal(t, 1, api.cron.calls)
	})

	t.Run("Importação em andamento - 409", func(t *testing.T) {
		api.cron.accept = false
		rec := api.do(t, http.MethodPost, "/v1/cron/all/run", admin, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("Tipo desconhecido - 400", func(t *testing.T) {
		rec := api.do(t, http.MethodPost, "/v1/cron/meta/run", admin, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Status", func(t *testing.T) {
		rec := api.do(t, http.MethodGet, "/v1/cron/status", admin, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, decode(t, rec), "sales-import")
	})
}

func TestAPI_Metrics(t *testing.T) {
	api := newTestAPI(t)

	api.do(t, http.MethodGet, "/healthcheck", "", nil)

	rec := api.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `sales_dashboard_http_requests_total{method="GET",route="/healthcheck",status="200"} 1`)
}
