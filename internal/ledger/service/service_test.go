package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/commissions/internal/clock"
	"github.com/railzwaylabs/commissions/internal/config"
	"github.com/railzwaylabs/commissions/internal/ledger/domain"
	"github.com/railzwaylabs/commissions/internal/ledger/repository"
	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	paymentmethodrepo "github.com/railzwaylabs/commissions/internal/paymentmethod/repository"
	paymentmethodsvc "github.com/railzwaylabs/commissions/internal/paymentmethod/service"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	sellerrepo "github.com/railzwaylabs/commissions/internal/seller/repository"
	sellersvc "github.com/railzwaylabs/commissions/internal/seller/service"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
	vehiclemodelrepo "github.com/railzwaylabs/commissions/internal/vehiclemodel/repository"
	vehiclemodelsvc "github.com/railzwaylabs/commissions/internal/vehiclemodel/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type derivedStub struct {
	calls int
}

func (d *derivedStub) DeleteRecords(ctx context.Context, db *gorm.DB) error {
	d.calls++
	return nil
}

type fixture struct {
	db      *gorm.DB
	svc     domain.Service
	derived *derivedStub
	sellers sellerdomain.Service
	models  vehiclemodeldomain.Service
	methods paymentmethoddomain.Service
}

var testNow = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func setupTestService(t *testing.T, ingest config.IngestConfig) *fixture {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(
		&domain.SaleRecord{},
		&domain.ProposalRecord{},
		&domain.Upload{},
		&sellerdomain.Seller{},
		&vehiclemodeldomain.VehicleModel{},
		&paymentmethoddomain.PaymentMethod{},
		&paymentmethoddomain.ProgressiveTable{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()

	f := &fixture{db: conn, derived: &derivedStub{}}
	f.sellers = sellersvc.New(sellersvc.Params{DB: conn, Log: log, GenID: node, Repo: sellerrepo.Provide()})
	f.models = vehiclemodelsvc.New(vehiclemodelsvc.Params{DB: conn, Log: log, GenID: node, Repo: vehiclemodelrepo.Provide()})
	f.methods = paymentmethodsvc.New(paymentmethodsvc.Params{DB: conn, Log: log, GenID: node, Repo: paymentmethodrepo.Provide()})

	f.svc, err = New(Params{
		DB:        conn,
		Log:       log,
		Cfg:       config.Config{Ingest: ingest},
		GenID:     node,
		Clock:     clock.Fixed(testNow),
		Meter:     noop.NewMeterProvider(),
		Repo:      repository.Provide(),
		Derived:   f.derived,
		SellerSvc: f.sellers,
		ModelSvc:  f.models,
		MethodSvc: f.methods,
	})
	require.NoError(t, err)
	return f
}

const salesCSV = "Pessoa;Vendedor;Origem Venda;Pedido;Doc Fiscal;Modelo;Valor Tabela\n" +
	"C1;Ana;Curitiba;P1;NF1;CB 500 AC;10.000,00\n" +
	"C2;Bruno;Londrina;P2;;Biz 125;12.000,00\n" +
	"C3;Desconhecido;;P3;;Desconhecida;0\n"

const proposalsCSV = "Pessoa;Nº Pedido;Doc Fiscal;Modelo;Valor Total;Forma Recebimento;Nº Parcela\n" +
	"C1;P1;NF1;CB 500 AC;5000;PIX;1\n" +
	"C1;P1;NF1;CB 500 AC;6000;Cartao;6\n" +
	"C2;P2;;Biz 125;-100;pix;1\n"

func TestIngestSales(t *testing.T) {
	f := setupTestService(t, config.IngestConfig{Encoding: config.EncodingUTF8})
	ctx := context.Background()

	result, err := f.svc.IngestSales(ctx, domain.IngestRequest{FileName: " saida.csv ", Content: strings.NewReader(salesCSV)})
	require.NoError(t, err)

	assert.Equal(t, domain.KindSales, result.Kind)
	assert.Equal(t, "saida.csv", result.FileName)
	assert.Equal(t, 3, result.Rows)
	assert.Len(t, result.BatchID, 26)
	assert.Len(t, result.Fingerprint, 64)
	require.NotNil(t, result.Sellers)
	assert.Equal(t, []string{"Ana", "Bruno"}, result.Sellers.Created)
	require.NotNil(t, result.VehicleModels)
	assert.Equal(t, []string{"Biz 125", "CB 500 AC"}, result.VehicleModels.Created)
	assert.Equal(t, 1, f.derived.calls)

	ana, err := f.sellers.FindByName(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "Curitiba", ana.City)
	assert.False(t, ana.IsInternal)

	ledgers, err := f.svc.Read(ctx)
	require.NoError(t, err)
	require.Len(t, ledgers.Sales, 3)
	assert.Equal(t, "P1", ledgers.Sales[0].OrderID)
	assert.Equal(t, 10000.0, ledgers.Sales[0].ListPrice)
	assert.Equal(t, result.BatchID, ledgers.Sales[2].BatchID)

	uploads, err := f.svc.ListUploads(ctx, 0)
	require.NoError(t, err)
	require.Len(t, uploads, 1)
	assert.Equal(t, result.Fingerprint, uploads[0].Fingerprint)
	assert.True(t, uploads[0].CreatedAt.Equal(testNow))
}

func TestIngestReplacesPreviousBatch(t *testing.T) {
	f := setupTestService(t, config.IngestConfig{Encoding: config.EncodingUTF8})
	ctx := context.Background()

	_, err := f.svc.IngestProposals(ctx, domain.IngestRequest{FileName: "a.csv", Content: strings.NewReader(proposalsCSV)})
	require.NoError(t, err)

	second, err := f.svc.IngestProposals(ctx, domain.IngestRequest{
		FileName: "b.csv",
		Content:  strings.NewReader("Pessoa;Pedido;Valor Total;Forma Recebimento\nC9;P9;1,50;PIX\n"),
	})
	require.NoError(t, err)
	require.NotNil(t, second.PaymentMethods)
	assert.Equal(t, []string{"PIX"}, second.PaymentMethods.Existing)

	ledgers, err := f.svc.Read(ctx)
	require.NoError(t, err)
	require.Len(t, ledgers.Proposals, 1)
	assert.Equal(t, "C9", ledgers.Proposals[0].CustomerID)
	assert.Equal(t, 1.5, ledgers.Proposals[0].TransactionAmount)
	assert.Equal(t, 2, f.derived.calls)

	methods, err := f.methods.List(ctx, paymentmethoddomain.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, methods, 2)
	for _, m := range methods {
		assert.False(t, m.ApplyPresentValue)
	}
}

func TestIngestRejectsBadFiles(t *testing.T) {
	f := setupTestService(t, config.IngestConfig{Encoding: config.EncodingUTF8, MaxUploadBytes: 64})
	ctx := context.Background()

	_, err := f.svc.IngestSales(ctx, domain.IngestRequest{FileName: "big.csv", Content: strings.NewReader(salesCSV)})
	assert.ErrorIs(t, err, domain.ErrFileTooLarge)

	_, err = f.svc.IngestSales(ctx, domain.IngestRequest{FileName: "empty.csv", Content: strings.NewReader("")})
	assert.ErrorIs(t, err, domain.ErrEmptyFile)

	_, err = f.svc.IngestProposals(ctx, domain.IngestRequest{FileName: "x.csv", Content: strings.NewReader("Pessoa;Pedido\nC1;P1\n")})
	assert.ErrorIs(t, err, domain.ErrMissingColumn)

	assert.Zero(t, f.derived.calls)
}

func TestClearAndPurge(t *testing.T) {
	f := setupTestService(t, config.IngestConfig{Encoding: config.EncodingUTF8})
	ctx := context.Background()

	_, err := f.svc.IngestSales(ctx, domain.IngestRequest{FileName: "s.csv", Content: strings.NewReader(salesCSV)})
	require.NoError(t, err)
	_, err = f.svc.IngestProposals(ctx, domain.IngestRequest{FileName: "p.csv", Content: strings.NewReader(proposalsCSV)})
	require.NoError(t, err)

	require.NoError(t, f.svc.Clear(ctx))
	ledgers, err := f.svc.Read(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledgers.Sales)
	assert.Empty(t, ledgers.Proposals)
	assert.Equal(t, 3, f.derived.calls)

	purged, err := f.svc.PurgeUploads(ctx, testNow.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, int64(2), purged)
}
