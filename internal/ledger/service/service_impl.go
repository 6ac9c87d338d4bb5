package service

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/railzwaylabs/commissions/internal/clock"
	"github.com/railzwaylabs/commissions/internal/config"
	"github.com/railzwaylabs/commissions/internal/ledger/domain"
	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Cfg       config.Config
	GenID     *snowflake.Node
	Clock     clock.Clock
	Meter     metric.MeterProvider
	Repo      domain.Repository
	Derived   domain.DerivedStore
	SellerSvc sellerdomain.Service
	ModelSvc  vehiclemodeldomain.Service
	MethodSvc paymentmethoddomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	cfg       config.IngestConfig
	genID     *snowflake.Node
	clock     clock.Clock
	repo      domain.Repository
	derived   domain.DerivedStore
	sellerSvc sellerdomain.Service
	modelSvc  vehiclemodeldomain.Service
	methodSvc paymentmethoddomain.Service

	rowsIngested metric.Int64Counter
}

func New(p Params) (domain.Service, error) {
	counter, err := p.Meter.Meter("github.com/railzwaylabs/commissions/ledger").Int64Counter(
		"ledger.rows.ingested",
		metric.WithDescription("Ledger rows accepted from uploaded files"),
	)
	if err != nil {
		return nil, err
	}

	return &Service{
		db:           p.DB,
		log:          p.Log.Named("ledger.service"),
		cfg:          p.Cfg.Ingest,
		genID:        p.GenID,
		clock:        p.Clock,
		repo:         p.Repo,
		derived:      p.Derived,
		sellerSvc:    p.SellerSvc,
		modelSvc:     p.ModelSvc,
		methodSvc:    p.MethodSvc,
		rowsIngested: counter,
	}, nil
}

func (s *Service) WithTx(tx *gorm.DB) domain.Service {
	if tx == nil {
		return s
	}
	clone := *s
	clone.db = tx
	return &clone
}

func (s *Service) IngestSales(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	data, err := s.readUpload(req)
	if err != nil {
		return nil, err
	}
	records, err := parseSales(data, s.cfg.Encoding)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	result := s.newResult(domain.KindSales, req.FileName, data, len(records))

	cities := map[string]string{}
	prices := map[string]float64{}
	for i := range records {
		records[i].ID = s.genID.Generate()
		records[i].BatchID = result.BatchID
		records[i].CreatedAt = now

		if name := records[i].SellerName; name != "" && !strings.EqualFold(name, sellerdomain.UnknownSellerName) {
			cities[name] = records[i].OriginCity
		}
		if model := records[i].VehicleModel; model != "" && !strings.EqualFold(model, vehiclemodeldomain.UnknownModelName) {
			prices[model] = records[i].ListPrice
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sellers, err := s.sellerSvc.WithTx(tx).Sync(ctx, cities)
		if err != nil {
			return fmt.Errorf("sync sellers: %w", err)
		}
		models, err := s.modelSvc.WithTx(tx).Sync(ctx, prices)
		if err != nil {
			return fmt.Errorf("sync vehicle models: %w", err)
		}
		result.Sellers = &sellers
		result.VehicleModels = &models

		if err := s.repo.ReplaceSales(ctx, tx, records); err != nil {
			return err
		}
		return s.finish(ctx, tx, result, now)
	})
	if err != nil {
		s.log.Error("sales upload failed", zap.String("file", req.FileName), zap.Error(err))
		return nil, err
	}

	s.recordIngest(ctx, result)
	return result, nil
}

func (s *Service) IngestProposals(ctx context.Context, req domain.IngestRequest) (*domain.IngestResult, error) {
	data, err := s.readUpload(req)
	if err != nil {
		return nil, err
	}
	records, err := parseProposals(data, s.cfg.Encoding)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now(ctx)
	result := s.newResult(domain.KindProposals, req.FileName, data, len(records))

	methods := make([]string, 0, len(records))
	for i := range records {
		records[i].ID = s.genID.Generate()
		records[i].BatchID = result.BatchID
		records[i].CreatedAt = now
		if records[i].PaymentMethodName != "" {
			methods = append(methods, records[i].PaymentMethodName)
		}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		synced, err := s.methodSvc.WithTx(tx).Sync(ctx, methods)
		if err != nil {
			return fmt.Errorf("sync payment methods: %w", err)
		}
		result.PaymentMethods = &synced

		if err := s.repo.ReplaceProposals(ctx, tx, records); err != nil {
			return err
		}
		return s.finish(ctx, tx, result, now)
	})
	if err != nil {
		s.log.Error("proposal upload failed", zap.String("file", req.FileName), zap.Error(err))
		return nil, err
	}

	s.recordIngest(ctx, result)
	return result, nil
}

func (s *Service) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.Clear(ctx, tx); err != nil {
			return err
		}
		return s.derived.DeleteRecords(ctx, tx)
	})
	if err != nil {
		return err
	}
	s.log.Info("ledgers cleared")
	return nil
}

func (s *Service) Read(ctx context.Context) (*domain.Ledgers, error) {
	sales, err := s.repo.ListSales(ctx, s.db)
	if err != nil {
		return nil, err
	}
	proposals, err := s.repo.ListProposals(ctx, s.db)
	if err != nil {
		return nil, err
	}
	return &domain.Ledgers{Sales: sales, Proposals: proposals}, nil
}

func (s *Service) ListUploads(ctx context.Context, limit int) ([]domain.Upload, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListUploads(ctx, s.db, limit)
}

func (s *Service) PurgeUploads(ctx context.Context, before time.Time) (int64, error) {
	return s.repo.DeleteUploadsBefore(ctx, s.db, before)
}

func (s *Service) readUpload(req domain.IngestRequest) ([]byte, error) {
	if req.Content == nil {
		return nil, domain.ErrEmptyFile
	}
	reader := req.Content
	if s.cfg.MaxUploadBytes > 0 {
		reader = io.LimitReader(req.Content, s.cfg.MaxUploadBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, domain.ErrFileTooLarge
	}
	if len(data) == 0 {
		return nil, domain.ErrEmptyFile
	}
	return data, nil
}

func (s *Service) newResult(kind domain.Kind, fileName string, data []byte, rows int) *domain.IngestResult {
	sum := blake2b.Sum256(data)
	return &domain.IngestResult{
		BatchID:     ulid.Make().String(),
		Kind:        kind,
		FileName:    strings.TrimSpace(fileName),
		Fingerprint: hex.EncodeToString(sum[:]),
		Rows:        rows,
	}
}

func (s *Service) finish(ctx context.Context, tx *gorm.DB, result *domain.IngestResult, now time.Time) error {
	if err := s.derived.DeleteRecords(ctx, tx); err != nil {
		return err
	}
	return s.repo.InsertUpload(ctx, tx, &domain.Upload{
		ID:          result.BatchID,
		Kind:        result.Kind,
		FileName:    result.FileName,
		Fingerprint: result.Fingerprint,
		RowCount:    result.Rows,
		CreatedAt:   now,
	})
}

func (s *Service) recordIngest(ctx context.Context, result *domain.IngestResult) {
	s.rowsIngested.Add(ctx, int64(result.Rows), metric.WithAttributes(attribute.String("kind", string(result.Kind))))
	s.log.Info("ledger replaced",
		zap.String("kind", string(result.Kind)),
		zap.String("batch_id", result.BatchID),
		zap.String("file", result.FileName),
		zap.Int("rows", result.Rows),
	)
}
