package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/railzwaylabs/commissions/internal/clock"
	"github.com/railzwaylabs/commissions/internal/commission/domain"
	"github.com/railzwaylabs/commissions/internal/commission/repository"
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

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db       *gorm.DB
	svc      domain.Service
	registry *prometheus.Registry
	ledger   ledgerdomain.Service
	sellers  sellerdomain.Service
	models   vehiclemodeldomain.Service
	methods  paymentmethoddomain.Service
	tiers    ratetierdomain.Service
}

func setupTestService(t *testing.T) *fixture {
	t.Helper()

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
		&domain.CommissionRecord{},
		&domain.Run{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()
	repo := repository.Provide()

	f := &fixture{db: conn, registry: prometheus.NewRegistry()}
	f.sellers = sellersvc.New(sellersvc.Params{DB: conn, Log: log, GenID: node, Repo: sellerrepo.Provide()})
	f.models = vehiclemodelsvc.New(vehiclemodelsvc.Params{DB: conn, Log: log, GenID: node, Repo: vehiclemodelrepo.Provide()})
	f.methods = paymentmethodsvc.New(paymentmethodsvc.Params{DB: conn, Log: log, GenID: node, Repo: paymentmethodrepo.Provide()})
	f.tiers = ratetiersvc.New(ratetiersvc.Params{
		DB:    conn,
		Log:   log,
		GenID: node,
		Repo:  ratetierrepo.Provide(),
		Cache: ratetiersvc.NewCache(nil, config.Config{}),
	})
	f.ledger, err = ledgersvc.New(ledgersvc.Params{
		DB:        conn,
		Log:       log,
		Cfg:       config.Config{Ingest: config.IngestConfig{Encoding: config.EncodingUTF8}},
		GenID:     node,
		Clock:     clock.Fixed(testNow),
		Meter:     metricnoop.NewMeterProvider(),
		Repo:      ledgerrepo.Provide(),
		Derived:   repo,
		SellerSvc: f.sellers,
		ModelSvc:  f.models,
		MethodSvc: f.methods,
	})
	require.NoError(t, err)

	f.svc = New(Params{
		DB:         conn,
		Log:        log,
		GenID:      node,
		Clock:      clock.Fixed(testNow),
		Tracer:     tracenoop.NewTracerProvider(),
		Registerer: f.registry,
		Repo:       repo,
		LedgerSvc:  f.ledger,
		SellerSvc:  f.sellers,
		ModelSvc:   f.models,
		MethodSvc:  f.methods,
		RateSvc:    f.tiers,
	})
	return f
}

const salesCSV = "Pessoa;Vendedor;Origem Venda;Pedido;Doc Fiscal;Modelo;Valor Tabela\n" +
	"C1;Ana;Curitiba;P1;NF1;CB 500 AC;10.000,00\n" +
	"C2;Bruno;Londrina;P2;;Biz 125;12.000,00\n" +
	"C3;Carla;Maringa;P3;;Biz 125;12.000,00\n" +
	"C4;Davi;;P4;;Biz 125;12.000,00\n"

const proposalsCSV = "Pessoa;Nº Pedido;Doc Fiscal;Modelo;Valor Total;Forma Recebimento;Nº Parcela\n" +
	"C1;P1;NF1;CB 500 AC;5000;PIX;1\n" +
	"C1;P1;NF1;CB 500 AC;6000;Cartao;6\n" +
	"C2;P2;;Biz 125;9000;PIX;1\n" +
	"C3;P3;;Biz 125;-100;PIX;1\n" +
	"C4;P4;;Biz 125;12000;PIX;1\n" +
	"C9;P9;;Biz 125;500;PIX;1\n"

// loadLedgers registers the discounted card method and Ana as an internal
// seller, then ingests both ledgers.
func (f *fixture) loadLedgers(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	_, err := f.methods.Create(ctx, paymentmethoddomain.CreateRequest{
		Name:                "Cartao",
		ApplyPresentValue:   true,
		MonthlyInterestRate: 0.015,
	})
	require.NoError(t, err)

	_, err = f.ledger.IngestSales(ctx, ledgerdomain.IngestRequest{FileName: "saida.csv", Content: strings.NewReader(salesCSV)})
	require.NoError(t, err)
	_, err = f.ledger.IngestProposals(ctx, ledgerdomain.IngestRequest{FileName: "propostas.csv", Content: strings.NewReader(proposalsCSV)})
	require.NoError(t, err)

	ana, err := f.sellers.FindByName(ctx, "Ana")
	require.NoError(t, err)
	require.NotNil(t, ana)
	internal := true
	_, err = f.sellers.Update(ctx, sellerdomain.UpdateRequest{ID: ana.ID.String(), IsInternal: &internal})
	require.NoError(t, err)
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, m := range family.GetMetric() {
			if labelsMatch(m, labels) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func labelsMatch(m *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, pair := range m.GetLabel() {
		if want, ok := labels[pair.GetName()]; ok {
			if want != pair.GetValue() {
				return false
			}
			matched++
		}
	}
	return matched == len(labels)
}

func TestComputeSellerSummary(t *testing.T) {
	f := setupTestService(t)
	f.loadLedgers(t)

	summaries, err := f.svc.ComputeSellerSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []domain.SellerSummary{
		{SellerName: "Davi", TotalSales: 12000, TotalCommission: 144, OrderCount: 1, AverageCommission: 144},
		{SellerName: "Ana", IsInternal: true, TotalSales: 10697.19, TotalCommission: 128.37, OrderCount: 1, AverageCommission: 128.37},
		{SellerName: "Bruno", TotalSales: 9000, TotalCommission: 72, OrderCount: 1, AverageCommission: 72},
	}, summaries)

	labels := map[string]string{"operation": opSellerSummary}
	assert.Equal(t, 3.0, counterValue(t, f.registry, "commissions_orders_computed_total", labels))
	assert.Equal(t, 3.0, counterValue(t, f.registry, "commissions_fallback_rates_total", labels))
	assert.Equal(t, 1.0, counterValue(t, f.registry, "commissions_rejected_total", map[string]string{"operation": opSellerSummary, "reason": "unknown_seller"}))
	assert.Equal(t, 1.0, counterValue(t, f.registry, "commissions_rejected_total", map[string]string{"operation": opSellerSummary, "reason": "negative_total"}))
}

func TestComputeSellerSummaryUsesConfiguredTiers(t *testing.T) {
	f := setupTestService(t)
	f.loadLedgers(t)
	ctx := context.Background()

	minRatio, rate := 100.0, 0.03
	_, err := f.tiers.Create(ctx, ratetierdomain.CreateRequest{
		IsInternal:   true,
		VehicleClass: string(ratetierdomain.VehicleClassHighDisplacement),
		MinRatio:     &minRatio,
		Rate:         &rate,
	})
	require.NoError(t, err)

	summaries, err := f.svc.ComputeSellerSummary(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, summaries)
	assert.Equal(t, "Ana", summaries[0].SellerName)
	assert.Equal(t, 320.92, summaries[0].TotalCommission)
	assert.Equal(t, 2.0, counterValue(t, f.registry, "commissions_fallback_rates_total", map[string]string{"operation": opSellerSummary}))
}

func TestComputeSellerSummaryEmptyLedgers(t *testing.T) {
	f := setupTestService(t)

	summaries, err := f.svc.ComputeSellerSummary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestComputeCitySummary(t *testing.T) {
	f := setupTestService(t)
	f.loadLedgers(t)
	ctx := context.Background()

	result, err := f.svc.ComputeCitySummary(ctx)
	require.NoError(t, err)

	assert.Equal(t, []domain.CitySummary{
		{City: "Curitiba", TotalSales: 10697.19, TotalCommission: 128.37, OrderCount: 1, AverageCommission: 128.37},
		{City: "Londrina", TotalSales: 9000, TotalCommission: 72, OrderCount: 1, AverageCommission: 72},
	}, result.Cities)
	assert.Equal(t, 2, result.Recorded)
	assert.Equal(t, 1, result.Rejected, "seller without a city")
	assert.Equal(t, 1, result.RejectedRecords, "proposal of an unknown customer")
	assert.Len(t, result.Warnings, 2)

	records, err := f.svc.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	byOrder := map[string]domain.CommissionRecord{}
	for _, r := range records {
		byOrder[r.OrderID] = r
	}
	ana := byOrder["P1"]
	assert.Equal(t, "Ana", ana.SellerName)
	assert.Equal(t, "Curitiba", ana.City)
	assert.Equal(t, "NF1", ana.FiscalDocumentID)
	assert.Equal(t, "Cartao, PIX", ana.PaymentMethods)
	assert.Equal(t, 11000.0, ana.NominalValue)
	assert.Equal(t, 10697.19, ana.SaleValue)
	assert.Equal(t, 1.2, ana.RatePercent)
	assert.Equal(t, 128.37, ana.CommissionValue)
	assert.True(t, ana.IsInternal)
	assert.True(t, ana.CreatedAt.Equal(testNow))

	again, err := f.svc.ComputeCitySummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, result.Cities, again.Cities)
	records, err = f.svc.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2, "the ledger is rewritten, not appended")
}

// failingSellers writes a row and then fails Ensure for one seller, the way
// a unique violation surfaces from the database mid-transaction.
type failingSellers struct {
	sellerdomain.Service
	name string
}

func (s failingSellers) WithTx(tx *gorm.DB) sellerdomain.Service {
	return failingSellers{Service: s.Service.WithTx(tx), name: s.name}
}

func (s failingSellers) Ensure(ctx context.Context, name, city string) (*sellerdomain.Seller, error) {
	if name != s.name {
		return s.Service.Ensure(ctx, name, city)
	}
	if _, err := s.Service.Create(ctx, sellerdomain.CreateRequest{Name: name + " Dup", City: city}); err != nil {
		return nil, err
	}
	return nil, errors.New("duplicate key value violates unique constraint")
}

func TestComputeCitySummaryRejectsFailedReference(t *testing.T) {
	f := setupTestService(t)
	f.loadLedgers(t)
	ctx := context.Background()

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	svc := New(Params{
		DB:         f.db,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.Fixed(testNow),
		Tracer:     tracenoop.NewTracerProvider(),
		Registerer: prometheus.NewRegistry(),
		Repo:       repository.Provide(),
		LedgerSvc:  f.ledger,
		SellerSvc:  failingSellers{Service: f.sellers, name: "Bruno"},
		ModelSvc:   f.models,
		MethodSvc:  f.methods,
		RateSvc:    f.tiers,
	})

	result, err := svc.ComputeCitySummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.CitySummary{
		{City: "Curitiba", TotalSales: 10697.19, TotalCommission: 128.37, OrderCount: 1, AverageCommission: 128.37},
	}, result.Cities)
	assert.Equal(t, 1, result.Recorded)
	assert.Equal(t, 2, result.Rejected)

	dup, err := f.sellers.FindByName(ctx, "Bruno Dup")
	require.NoError(t, err)
	assert.Nil(t, dup, "writes of a rejected order are rolled back")

	records, err := svc.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "P1", records[0].OrderID)
}

func TestUploadClearsCommissionRecords(t *testing.T) {
	f := setupTestService(t)
	f.loadLedgers(t)
	ctx := context.Background()

	_, err := f.svc.ComputeCitySummary(ctx)
	require.NoError(t, err)

	_, err = f.ledger.IngestSales(ctx, ledgerdomain.IngestRequest{FileName: "saida.csv", Content: strings.NewReader(salesCSV)})
	require.NoError(t, err)

	records, err := f.svc.ListRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestComputeOrderCommissions(t *testing.T) {
	f := setupTestService(t)
	f.loadLedgers(t)
	ctx := context.Background()

	detail, err := f.svc.ComputeOrderCommissions(ctx, " ana ")
	require.NoError(t, err)
	assert.Equal(t, "Ana", detail.SellerName)
	assert.True(t, detail.IsInternal)
	assert.Equal(t, "Curitiba", detail.City)
	assert.Empty(t, detail.Warnings)
	require.Len(t, detail.Orders, 1)

	order := detail.Orders[0]
	assert.Equal(t, "P1", order.OrderID)
	assert.Equal(t, 10000.0, order.ListPrice)
	assert.Equal(t, 10697.19, order.PresentValueTotal)
	assert.Equal(t, 106.97, order.AchievementRatio)
	assert.Equal(t, 0.012, order.Rate)
	assert.Equal(t, 128.37, order.CommissionTotal)
	require.Len(t, order.Instruments, 2)
	assert.Equal(t, "PIX", order.Instruments[0].PaymentMethodName)
	assert.Equal(t, 5000.0, order.Instruments[0].PresentValue)
	assert.Equal(t, 60.0, order.Instruments[0].Commission)
	assert.InDelta(t, 5697.19, order.Instruments[1].PresentValue, 0.005)
	assert.Equal(t, 68.37, order.Instruments[1].Commission)

	bruno, err := f.svc.ComputeOrderCommissions(ctx, "Bruno")
	require.NoError(t, err)
	require.Len(t, bruno.Orders, 1)
	assert.Equal(t, []string{
		"no commission rate configured for external seller - standard (achievement 75.00%); using default rate",
	}, bruno.Warnings)

	carla, err := f.svc.ComputeOrderCommissions(ctx, "Carla")
	require.NoError(t, err)
	assert.Empty(t, carla.Orders, "negative orders are dropped")

	_, err = f.svc.ComputeOrderCommissions(ctx, "Nobody")
	assert.ErrorIs(t, err, domain.ErrSellerNotFound)
	_, err = f.svc.ComputeOrderCommissions(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidSellerName)
}

func TestCalculateCommission(t *testing.T) {
	f := setupTestService(t)
	ctx := context.Background()

	result, err := f.svc.CalculateCommission(ctx, domain.CalculateRequest{SaleValue: 9800, TargetValue: 10000, IsInternal: true})
	require.NoError(t, err)
	assert.Equal(t, 98.0, result.AchievementRatio)
	assert.Equal(t, 0.016, result.Rate)
	assert.Equal(t, 1.6, result.RatePercent)
	assert.Equal(t, 156.8, result.Commission)
	assert.Len(t, result.Warnings, 1)

	result, err = f.svc.CalculateCommission(ctx, domain.CalculateRequest{SaleValue: 10697.19, TargetValue: 10000, IsHighDisplacement: true, IsInternal: true})
	require.NoError(t, err)
	assert.Equal(t, 128.37, result.Commission)
	assert.Empty(t, result.Warnings)

	_, err = f.svc.CalculateCommission(ctx, domain.CalculateRequest{SaleValue: 100, TargetValue: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidTarget)
	_, err = f.svc.CalculateCommission(ctx, domain.CalculateRequest{SaleValue: -1, TargetValue: 100})
	assert.ErrorIs(t, err, domain.ErrInvalidSaleValue)
}

func TestResolveRate(t *testing.T) {
	f := setupTestService(t)

	res := f.svc.ResolveRate(context.Background(), 95, false, true)
	assert.Equal(t, 0.012, res.Rate)
	assert.Equal(t, 1.2, res.RatePercent)
	assert.Equal(t, []string{
		"no commission rate configured for internal seller - standard (achievement 95.00%); using default rate",
	}, res.Warnings)
}

func TestProcessCommissions(t *testing.T) {
	f := setupTestService(t)
	ctx := context.Background()

	_, err := f.svc.ProcessCommissions(ctx)
	assert.ErrorIs(t, err, domain.ErrNothingToProcess)

	f.loadLedgers(t)
	run, err := f.svc.ProcessCommissions(ctx)
	require.NoError(t, err)
	assert.Len(t, run.ID, 26)
	assert.Equal(t, 3, run.SellerCount)
	assert.Equal(t, 3, run.OrderCount)
	assert.Equal(t, 31697.19, run.TotalSales)
	assert.Equal(t, 344.37, run.TotalCommission)
	assert.Len(t, run.Checksum, 64)

	stored, err := f.svc.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Checksum, stored.Checksum)
	assert.True(t, stored.CreatedAt.Equal(testNow))

	var summaries []domain.SellerSummary
	require.NoError(t, json.Unmarshal(stored.Summaries, &summaries))
	require.Len(t, summaries, 3)
	assert.Equal(t, "Davi", summaries[0].SellerName)

	var warnings []string
	require.NoError(t, json.Unmarshal(stored.Warnings, &warnings))
	assert.Len(t, warnings, 2)

	runs, err := f.svc.ListRuns(ctx, 0)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, run.ID, runs[0].ID)

	_, err = f.svc.GetRun(ctx, "not-a-ulid")
	assert.ErrorIs(t, err, domain.ErrInvalidRunID)
	_, err = f.svc.GetRun(ctx, ulid.Make().String())
	assert.ErrorIs(t, err, domain.ErrRunNotFound)

	purged, err := f.svc.PurgeRuns(ctx, testNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)
}
