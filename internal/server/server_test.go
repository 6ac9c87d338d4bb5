package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/railzwaylabs/commissions/internal/clock"
	commissiondomain "github.com/railzwaylabs/commissions/internal/commission/domain"
	commissionrepo "github.com/railzwaylabs/commissions/internal/commission/repository"
	commissionsvc "github.com/railzwaylabs/commissions/internal/commission/service"
	"github.com/railzwaylabs/commissions/internal/config"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	ledgerrepo "github.com/railzwaylabs/commissions/internal/ledger/repository"
	ledgersvc "github.com/railzwaylabs/commissions/internal/ledger/service"
	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	paymentmethodrepo "github.com/railzwaylabs/commissions/internal/paymentmethod/repository"
	paymentmethodsvc "github.com/railzwaylabs/commissions/internal/paymentmethod/service"
	ratetierdomain "github.com/railzwaylabs/commissions/internal/ratetier/domain"
	ratetierrepo "github.com/railzwaylabs/commissions/internal/ratetier/repository"
	ratetiersvc "github.com/railzwaylabs/commissions/internal/ratetier/service"
	reportsvc "github.com/railzwaylabs/commissions/internal/report/service"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	sellerrepo "github.com/railzwaylabs/commissions/internal/seller/repository"
	sellersvc "github.com/railzwaylabs/commissions/internal/seller/service"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
	vehiclemodelrepo "github.com/railzwaylabs/commissions/internal/vehiclemodel/repository"
	vehiclemodelsvc "github.com/railzwaylabs/commissions/internal/vehiclemodel/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const salesCSV = "Pessoa;Vendedor;Origem Venda;Pedido;Doc Fiscal;Modelo;Valor Tabela\n" +
	"C1;Ana;Curitiba;P1;NF1;CB 500 AC;10.000,00\n" +
	"C2;Bruno;Londrina;P2;;Biz 125;12.000,00\n"

const proposalsCSV = "Pessoa;Nº Pedido;Doc Fiscal;Modelo;Valor Total;Forma Recebimento;Nº Parcela\n" +
	"C1;P1;NF1;CB 500 AC;5000;PIX;1\n" +
	"C1;P1;NF1;CB 500 AC;6000;Cartao;6\n" +
	"C2;P2;;Biz 125;9000;PIX;1\n"

type testServer struct {
	router  http.Handler
	sellers sellerdomain.Service
	methods paymentmethoddomain.Service
}

func setupTestServer(t *testing.T, ingest config.IngestConfig) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(
		&ledgerdomain.SaleRecord{},
		&ledgerdomain.ProposalRecord{},
		&ledgerdomain.Upload{},
		&sellerdomain.Seller{},
		&vehiclemodeldomain.VehicleModel{},
		&paymentmethoddomain.PaymentMethod{},
		&paymentmethoddomain.ProgressiveTable{},
		&ratetierdomain.RateTier{},
		&commissiondomain.CommissionRecord{},
		&commissiondomain.Run{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()
	now := clock.Fixed(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	cfg := config.Config{AppName: "commissions", AppVersion: "test", Ingest: ingest}
	repo := commissionrepo.Provide()

	sellers := sellersvc.New(sellersvc.Params{DB: conn, Log: log, GenID: node, Repo: sellerrepo.Provide()})
	models := vehiclemodelsvc.New(vehiclemodelsvc.Params{DB: conn, Log: log, GenID: node, Repo: vehiclemodelrepo.Provide()})
	methods := paymentmethodsvc.New(paymentmethodsvc.Params{DB: conn, Log: log, GenID: node, Repo: paymentmethodrepo.Provide()})
	tiers := ratetiersvc.New(ratetiersvc.Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Repo:  ratetierrepo.Provide(),
		Cache: ratetiersvc.NewCache(nil, config.Config{}),
	})
	ledger, err := ledgersvc.New(ledgersvc.Params{
		DB:        conn,
		Log:       log,
		Cfg:       cfg,
		GenID:     node,
		Clock:     now,
		Meter:     metricnoop.NewMeterProvider(),
		Repo:      ledgerrepo.Provide(),
		Derived:   repo,
		SellerSvc: sellers,
		ModelSvc:  models,
		MethodSvc: methods,
	})
	require.NoError(t, err)

	registry := prometheus.NewRegistry()
	commissions := commissionsvc.New(commissionsvc.Params{
		DB:         conn,
		Log:        log,
		GenID:      node,
		Clock:      now,
		Tracer:     tracenoop.NewTracerProvider(),
		Registerer: registry,
		Repo:       repo,
		LedgerSvc:  ledger,
		SellerSvc:  sellers,
		ModelSvc:   models,
		MethodSvc:  methods,
		RateSvc:    tiers,
	})

	srv := New(Params{
		Cfg:           cfg,
		Log:           log,
		Gatherer:      registry,
		LedgerSvc:     ledger,
		CommissionSvc: commissions,
		ReportSvc:     reportsvc.New(reportsvc.Params{Log: log}),
		SellerSvc:     sellers,
		ModelSvc:      models,
		MethodSvc:     methods,
		RateTierSvc:   tiers,
	})
	return &testServer{router: srv.Handler(), sellers: sellers, methods: methods}
}

func (ts *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func (ts *testServer) upload(t *testing.T, path, fileName, content string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", fileName)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

// loadLedgers discounts card payments, ingests both files and flags Ana as
// internal.
func (ts *testServer) loadLedgers(t *testing.T) {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/payment_methods", map[string]any{
		"name":                  "Cartao",
		"apply_present_value":   true,
		"monthly_interest_rate": 0.015,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Equal(t, http.StatusOK, ts.upload(t, "/api/uploads/sales", "saida.csv", salesCSV).Code)
	require.Equal(t, http.StatusOK, ts.upload(t, "/api/uploads/proposals", "propostas.csv", proposalsCSV).Code)

	ana, err := ts.sellers.FindByName(t.Context(), "Ana")
	require.NoError(t, err)
	require.NotNil(t, ana)
	rec = ts.do(t, http.MethodPut, "/api/sellers/"+ana.ID.String(), map[string]any{"is_internal": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

type envelope struct {
	Data     json.RawMessage `json:"data"`
	Warnings []string        `json:"warnings"`
	Error    *APIError       `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestHealthAndDocs(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})

	rec := ts.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

	rec = ts.do(t, http.MethodGet, "/swagger/doc.json", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "/api", doc["basePath"])
	assert.Contains(t, doc["paths"], "/commissions/process")

	rec = ts.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})

	id := "0f8fad5b-d9cb-469f-a165-70867728950e"
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, id)
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(requestIDHeader))
}

func TestSellerSummaryOverHTTP(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})
	ts.loadLedgers(t)

	rec := ts.do(t, http.MethodGet, "/api/commissions/sellers", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var summaries []commissiondomain.SellerSummary
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "Ana", summaries[0].SellerName)
	assert.Equal(t, 128.37, summaries[0].TotalCommission)
	assert.Equal(t, 10697.19, summaries[0].TotalSales)
	assert.Equal(t, "Bruno", summaries[1].SellerName)
	assert.Equal(t, 72.0, summaries[1].TotalCommission)
}

func TestSellerOrdersOverHTTP(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})
	ts.loadLedgers(t)

	rec := ts.do(t, http.MethodGet, "/api/commissions/sellers/Bruno/orders", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decode(t, rec)
	assert.NotEmpty(t, env.Warnings)

	var detail commissiondomain.OrderCommissions
	require.NoError(t, json.Unmarshal(env.Data, &detail))
	require.Len(t, detail.Orders, 1)
	assert.Equal(t, 75.0, detail.Orders[0].AchievementRatio)

	rec = ts.do(t, http.MethodGet, "/api/commissions/sellers/Zelia/orders", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "seller_not_found", decode(t, rec).Error.Code)
}

func TestCitySummaryOverHTTP(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})
	ts.loadLedgers(t)

	rec := ts.do(t, http.MethodGet, "/api/commissions/cities", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result commissiondomain.CitySummaryResult
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
	require.Len(t, result.Cities, 2)
	assert.Equal(t, 2, result.Recorded)

	rec = ts.do(t, http.MethodGet, "/api/commissions/records", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var records []commissiondomain.CommissionRecord
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &records))
	assert.Len(t, records, 2)
}

func TestCalculateCommissionOverHTTP(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})

	rec := ts.do(t, http.MethodPost, "/api/commissions/calculate", map[string]any{
		"sale_value":   9800,
		"target_value": 10000,
		"is_internal":  true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result commissiondomain.CalculateResult
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
	assert.Equal(t, 0.016, result.Rate)
	assert.Equal(t, 156.8, result.Commission)

	rec = ts.do(t, http.MethodPost, "/api/commissions/calculate", map[string]any{
		"sale_value":   100,
		"target_value": 0,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "invalid_target_value", env.Error.Code)
	assert.Equal(t, "target_value", env.Error.Field)

	rec = ts.do(t, http.MethodPost, "/api/commissions/calculate", map[string]any{"sale_value": 100})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_target_value", decode(t, rec).Error.Code)
}

func TestResolveRateOverHTTP(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})

	rec := ts.do(t, http.MethodPost, "/api/commissions/rate", map[string]any{
		"achievement_ratio":    97,
		"is_high_displacement": true,
		"is_internal":          true,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res commissiondomain.RateResolution
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &res))
	assert.Equal(t, 0.012, res.Rate)

	rec = ts.do(t, http.MethodPost, "/api/commissions/rate", map[string]any{"achievement_ratio": -1})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_achievement_ratio", decode(t, rec).Error.Code)
}

func TestSellerTypeDefaultsToInternal(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})

	rec := ts.do(t, http.MethodPost, "/api/commissions/rate", map[string]any{"achievement_ratio": 101})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res commissiondomain.RateResolution
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &res))
	assert.Equal(t, 0.02, res.Rate)

	rec = ts.do(t, http.MethodPost, "/api/commissions/rate", map[string]any{
		"achievement_ratio": 101,
		"is_internal":       false,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &res))
	assert.Equal(t, 0.012, res.Rate)

	rec = ts.do(t, http.MethodPost, "/api/commissions/calculate", map[string]any{
		"sale_value":   10100,
		"target_value": 10000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var result commissiondomain.CalculateResult
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &result))
	assert.Equal(t, 0.02, result.Rate)
	assert.Equal(t, 202.0, result.Commission)
}

func TestProcessAndExportRun(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})

	rec := ts.do(t, http.MethodPost, "/api/commissions/process", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "nothing_to_process", decode(t, rec).Error.Code)

	ts.loadLedgers(t)
	rec = ts.do(t, http.MethodPost, "/api/commissions/process", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
	runID := rec.Header().Get(runIDHeader)
	require.NotEmpty(t, runID)
	assert.Equal(t, "2", rec.Header().Get(countHeader))

	rec = ts.do(t, http.MethodGet, "/api/commissions/runs/"+runID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var run commissiondomain.Run
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &run))
	assert.Equal(t, 200.37, run.TotalCommission)

	rec = ts.do(t, http.MethodGet, "/api/commissions/runs/"+runID+"/export?format=csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "Ana")
	assert.NotEmpty(t, rec.Header().Get(checksumHeader))

	rec = ts.do(t, http.MethodGet, "/api/commissions/runs/"+runID+"/export?format=xml", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "unsupported_export_format", decode(t, rec).Error.Code)

	rec = ts.do(t, http.MethodGet, "/api/commissions/runs/not-a-run", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadValidation(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8, MaxUploadBytes: 32})

	rec := ts.do(t, http.MethodPost, "/api/uploads/sales", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "file_required", decode(t, rec).Error.Code)

	rec = ts.upload(t, "/api/uploads/sales", "saida.csv", salesCSV)
	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Equal(t, "file_too_large", decode(t, rec).Error.Code)

	rec = ts.upload(t, "/api/uploads/proposals", "x.csv", "Pessoa;Pedido\n")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "empty_file", decode(t, rec).Error.Code, "header without data rows")

	rec = ts.upload(t, "/api/uploads/proposals", "x.csv", "Pessoa;Pedido\nC1;P1\n")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "missing_column", decode(t, rec).Error.Code)
}

func TestClearLedgers(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})
	ts.loadLedgers(t)

	rec := ts.do(t, http.MethodPost, "/api/ledgers/clear", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/commissions/sellers", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []commissiondomain.SellerSummary
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &summaries))
	assert.Empty(t, summaries)

	rec = ts.do(t, http.MethodGet, "/api/uploads", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSimulatePresentValue(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})

	cases := []struct {
		name string
		body map[string]any
		want float64
	}{
		{"annuity", map[string]any{"method": "annuity", "total": 6000, "installment_count": 6, "monthly_rate": 0.015}, 5697.19},
		{"single installment", map[string]any{"total": 6000, "installment_count": 1, "monthly_rate": 0.015}, 6000},
		{"progressive", map[string]any{"method": "progressive", "installment": 400, "installment_count": 3, "coefficients": []float64{0, 0.5, 1}}, 1194},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, "/api/present-value/simulate", tc.body)
			require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			var resp simulatePresentValueResponse
			require.NoError(t, json.Unmarshal(decode(t, rec).Data, &resp))
			assert.Equal(t, tc.want, resp.PresentValue)
		})
	}

	rec := ts.do(t, http.MethodPost, "/api/present-value/simulate", map[string]any{
		"method": "progressive", "installment": 400, "installment_count": 3, "coefficients": []float64{1},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/present-value/simulate", map[string]any{"method": "bogus"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_method", decode(t, rec).Error.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	ts := setupTestServer(t, config.IngestConfig{Encoding: config.EncodingUTF8})

	rec := ts.do(t, http.MethodPost, "/api/sellers", map[string]any{"name": "Ana", "city": "Curitiba", "is_internal": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = ts.do(t, http.MethodPost, "/api/sellers", map[string]any{"name": "Ana"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "seller_already_exists", decode(t, rec).Error.Code)

	rec = ts.do(t, http.MethodPost, "/api/vehicle_models", map[string]any{"name": "CB 500 AC", "list_price": 10000})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var model vehiclemodeldomain.VehicleModel
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &model))
	assert.True(t, model.IsHighDisplacement)

	rec = ts.do(t, http.MethodPost, "/api/progressive_tables", map[string]any{"name": "Carne 3x", "coefficients": []float64{0, 0.5, 1}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var table paymentmethoddomain.ProgressiveTable
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &table))

	rec = ts.do(t, http.MethodPost, "/api/payment_methods", map[string]any{"name": "Carne", "apply_present_value": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var method paymentmethoddomain.PaymentMethod
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &method))

	rec = ts.do(t, http.MethodPut, "/api/payment_methods/"+method.ID.String()+"/present_value", map[string]any{
		"apply_present_value":   true,
		"monthly_interest_rate": 0.02,
		"progressive_table_id":  table.ID.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &method))
	assert.Zero(t, method.MonthlyInterestRate)

	rec = ts.do(t, http.MethodDelete, "/api/progressive_tables/"+table.ID.String(), nil)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "progressive_table_in_use", decode(t, rec).Error.Code)

	rec = ts.do(t, http.MethodPost, "/api/payment_methods/"+method.ID.String()+"/deactivate", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/rate_tiers", map[string]any{"is_internal": true, "vehicle_class": "standard", "min_ratio": 100, "rate": 0.025})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = ts.do(t, http.MethodGet, "/api/rate_tiers?scope=internal", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tiers []ratetierdomain.RateTier
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &tiers))
	assert.Len(t, tiers, 1)

	rec = ts.do(t, http.MethodGet, "/api/rate_tiers?scope=everyone", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "scope", decode(t, rec).Error.Field)

	rec = ts.do(t, http.MethodGet, "/api/sellers/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do(t, http.MethodGet, "/api/sellers/123", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownErrorsAreMasked(t *testing.T) {
	apiErr := toAPIError(assert.AnError)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "internal_error", apiErr.Code)
}
