package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smallbiznis/invoicedesk/internal/cache"
	"github.com/smallbiznis/invoicedesk/internal/clock"
	"github.com/smallbiznis/invoicedesk/internal/config"
	customerrepository "github.com/smallbiznis/invoicedesk/internal/customer/repository"
	customerservice "github.com/smallbiznis/invoicedesk/internal/customer/service"
	dashboardservice "github.com/smallbiznis/invoicedesk/internal/dashboard/service"
	invoicerepository "github.com/smallbiznis/invoicedesk/internal/invoice/repository"
	invoiceservice "github.com/smallbiznis/invoicedesk/internal/invoice/service"
	"github.com/smallbiznis/invoicedesk/internal/observability"
	obsmetrics "github.com/smallbiznis/invoicedesk/internal/observability/metrics"
	"github.com/smallbiznis/invoicedesk/internal/seed"
	"github.com/smallbiznis/invoicedesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	amyBurnsID      = "cc27c14a-0acf-4f4a-a6c9-d45682c144b9"
	seededInvoiceID = "5f0c1a52-6b1e-4c55-9a0e-3f6b8d1e2a01"
	unknownID       = "00000000-0000-4000-8000-000000000000"
)

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T, environment string) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.OpenDB(t)
	_, err := seed.Run(context.Background(), db, zap.NewNop())
	require.NoError(t, err)

	log := zap.NewNop()
	cfg := config.Config{Environment: environment}
	registry := obsmetrics.NewRegistry()
	httpMetrics, err := obsmetrics.NewHTTPMetrics(obsmetrics.Config{Namespace: "invoicedesk_test"}, registry)
	require.NoError(t, err)

	engine := NewEngine(EngineParams{
		Cfg:         cfg,
		ObsCfg:      observability.LoadConfig(cfg),
		Log:         log,
		HTTPMetrics: httpMetrics,
		Registry:    registry,
	})

	views := cache.NewMemoryViewCache(time.Minute)
	invoices := invoiceservice.NewService(invoiceservice.ServiceParam{
		DB:    db,
		Log:   log,
		Clock: clock.NewFakeClock(time.Date(2024, 5, 17, 0, 0, 0, 0, time.UTC)),
		Cache: views,
		Repo:  invoicerepository.Provide(),
	})
	NewServer(ServerParams{
		Gin:          engine,
		Cfg:          cfg,
		DB:           db,
		Log:          log,
		Views:        views,
		CustomerSvc:  customerservice.New(customerservice.Params{DB: db, Log: log, Repo: customerrepository.Provide()}),
		InvoiceSvc:   invoices,
		DashboardSvc: dashboardservice.NewService(dashboardservice.Params{DB: db, Log: log, InvoiceSvc: invoices}),
	})

	return testServer{engine: engine, db: db}
}

func (ts testServer) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	ts.engine.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type listBody struct {
	Invoices []struct {
		ID     string `json:"id"`
		Amount int64  `json:"amount"`
	} `json:"invoices"`
	TotalPages int `json:"total_pages"`
}

func TestHealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "invoicedesk_test_http_requests_total")
}

func TestListInvoicesUsesViewCache(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodGet, "/dashboard/invoices?page=3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "miss", w.Header().Get(viewCacheHeader))
	body := decode[listBody](t, w)
	assert.Equal(t, 3, body.TotalPages)
	assert.Len(t, body.Invoices, 1)

	w = ts.do(http.MethodGet, "/dashboard/invoices?page=3", nil)
	assert.Equal(t, "hit", w.Header().Get(viewCacheHeader))
	assert.Equal(t, body, decode[listBody](t, w))

	// a different query is a different rendering
	w = ts.do(http.MethodGet, "/dashboard/invoices?query=rabbit", nil)
	assert.Equal(t, "miss", w.Header().Get(viewCacheHeader))
	assert.Len(t, decode[listBody](t, w).Invoices, 2)
}

func TestListInvoicesPastLastPage(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	for _, page := range []string{"4611686018427387905", "99999999999999999999999"} {
		w := ts.do(http.MethodGet, "/dashboard/invoices?page="+page, nil)
		require.Equal(t, http.StatusOK, w.Code, page)
		body := decode[listBody](t, w)
		assert.Empty(t, body.Invoices, page)
		assert.Equal(t, 3, body.TotalPages)
	}
}

func TestCreateInvoiceRedirectsAndRevalidates(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodGet, "/dashboard/invoices", nil)
	require.Equal(t, "miss", w.Header().Get(viewCacheHeader))
	w = ts.do(http.MethodGet, "/dashboard/invoices", nil)
	require.Equal(t, "hit", w.Header().Get(viewCacheHeader))

	w = ts.do(http.MethodPost, "/dashboard/invoices", url.Values{
		"customerId": {amyBurnsID},
		"amount":     {"50.00"},
		"status":     {"pending"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/invoices", w.Header().Get("Location"))

	w = ts.do(http.MethodGet, "/dashboard/invoices", nil)
	assert.Equal(t, "miss", w.Header().Get(viewCacheHeader))
	body := decode[listBody](t, w)
	require.NotEmpty(t, body.Invoices)
	assert.Equal(t, int64(5000), body.Invoices[0].Amount)
}

func TestCreateInvoiceValidationState(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodPost, "/dashboard/invoices", url.Values{
		"customerId": {amyBurnsID},
		"amount":     {"-3"},
		"status":     {"overdue"},
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	state := decode[struct {
		Errors  map[string][]string `json:"errors"`
		Message string              `json:"message"`
	}](t, w)
	assert.Equal(t, "Missing Fields. Failed to Create Invoice.", state.Message)
	assert.Contains(t, state.Errors, "amount")
	assert.Contains(t, state.Errors, "status")
	assert.NotContains(t, state.Errors, "customerId")
}

func TestCreateInvoiceStoreFailure(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodPost, "/dashboard/invoices", url.Values{
		"customerId": {unknownID},
		"amount":     {"10"},
		"status":     {"paid"},
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Database Error: Failed to Create Invoice.", decode[map[string]string](t, w)["message"])
}

func TestUpdateInvoice(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodPut, "/dashboard/invoices/"+seededInvoiceID, url.Values{
		"customerId": {amyBurnsID},
		"amount":     {"19.99"},
		"status":     {"paid"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	w = ts.do(http.MethodGet, "/dashboard/invoices/"+seededInvoiceID+"/edit", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Invoice struct {
			Amount float64 `json:"amount"`
			Status string  `json:"status"`
		} `json:"invoice"`
		Customers []map[string]string `json:"customers"`
	}](t, w)
	assert.Equal(t, 19.99, body.Invoice.Amount)
	assert.Equal(t, "paid", body.Invoice.Status)
	assert.Len(t, body.Customers, 6)
}

func TestEditFormMissingInvoice(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodGet, "/dashboard/invoices/"+unknownID+"/edit", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not_found", decode[errorResponse](t, w).Error.Type)
}

func TestCreateFormListsCustomers(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodGet, "/dashboard/invoices/create", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Customers []struct {
			Name string `json:"name"`
		} `json:"customers"`
	}](t, w)
	require.Len(t, body.Customers, 6)
	assert.Equal(t, "Amy Burns", body.Customers[0].Name)
}

func TestDeleteInvoice(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodDelete, "/dashboard/invoices/"+seededInvoiceID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode[map[string]bool](t, w)["deleted"])

	w = ts.do(http.MethodDelete, "/dashboard/invoices/"+seededInvoiceID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode[map[string]bool](t, w)["deleted"])

	w = ts.do(http.MethodPost, "/dashboard/invoices/"+seededInvoiceID+"/delete", url.Values{})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/invoices", w.Header().Get("Location"))
}

func TestListCustomers(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodGet, "/dashboard/customers?query=orban", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Customers []struct {
			Name          string `json:"name"`
			TotalInvoices int64  `json:"total_invoices"`
			TotalPaid     string `json:"total_paid"`
		} `json:"customers"`
	}](t, w)
	require.Len(t, body.Customers, 1)
	assert.Equal(t, "Balazs Orban", body.Customers[0].Name)
	assert.Equal(t, int64(3), body.Customers[0].TotalInvoices)
}

func TestDashboardOverview(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Cards struct {
			NumberOfInvoices  int64 `json:"number_of_invoices"`
			NumberOfCustomers int64 `json:"number_of_customers"`
			TotalPaid         int64 `json:"total_paid_invoices"`
			TotalPending      int64 `json:"total_pending_invoices"`
		} `json:"cards"`
		Revenue        []map[string]any `json:"revenue"`
		LatestInvoices []map[string]any `json:"latest_invoices"`
	}](t, w)
	assert.Equal(t, int64(13), body.Cards.NumberOfInvoices)
	assert.Equal(t, int64(6), body.Cards.NumberOfCustomers)
	assert.Equal(t, int64(8), body.Cards.TotalPaid)
	assert.Equal(t, int64(5), body.Cards.TotalPending)
	assert.Len(t, body.Revenue, 12)
	assert.Len(t, body.LatestInvoices, 5)

	for _, path := range []string{"/dashboard/revenue", "/dashboard/latest-invoices", "/dashboard/cards"} {
		assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, path, nil).Code, path)
	}
}

func TestQueryFailureHidesStoreError(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)
	require.NoError(t, ts.db.Exec("DROP TABLE invoices").Error)

	w := ts.do(http.MethodGet, "/dashboard/cards", nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	payload := decode[errorResponse](t, w).Error
	assert.Equal(t, "internal_error", payload.Type)
	assert.Equal(t, "Failed to fetch card data.", payload.Message)
}

func TestSeedRoute(t *testing.T) {
	ts := newTestServer(t, config.EnvDevelopment)

	w := ts.do(http.MethodPost, "/seed", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode[struct {
		Message string       `json:"message"`
		Summary seed.Summary `json:"summary"`
	}](t, w)
	assert.Equal(t, "Database seeded successfully", body.Message)
	// already seeded
	assert.Equal(t, seed.Summary{}, body.Summary)

	prod := newTestServer(t, config.EnvProduction)
	assert.Equal(t, http.StatusNotFound, prod.do(http.MethodPost, "/seed", nil).Code)
}

func TestMapError(t *testing.T) {
	status, payload := mapError(ErrInvalidRequest)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "invalid_request", payload.Type)

	status, payload = mapError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal server error", payload.Message)

	kind, code := classifyErrorForLog(ErrNotFound)
	assert.Equal(t, "client", kind)
	assert.Equal(t, "not_found", code)
}
