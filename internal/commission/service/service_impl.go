package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/railzwaylabs/commissions/internal/clock"
	"github.com/railzwaylabs/commissions/internal/commission/calc"
	"github.com/railzwaylabs/commissions/internal/commission/domain"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	paymentmethoddomain "github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	ratetierdomain "github.com/railzwaylabs/commissions/internal/ratetier/domain"
	sellerdomain "github.com/railzwaylabs/commissions/internal/seller/domain"
	vehiclemodeldomain "github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	opSellerSummary = "seller_summary"
	opCitySummary   = "city_summary"
	opOrderDetail   = "order_detail"
	opProcess       = "process"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Tracer     trace.TracerProvider
	Registerer prometheus.Registerer
	Repo       domain.Repository
	LedgerSvc  ledgerdomain.Service
	SellerSvc  sellerdomain.Service
	ModelSvc   vehiclemodeldomain.Service
	MethodSvc  paymentmethoddomain.Service
	RateSvc    ratetierdomain.Service
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	clock     clock.Clock
	tracer    trace.Tracer
	metrics   *metrics
	repo      domain.Repository
	ledgerSvc ledgerdomain.Service
	sellerSvc sellerdomain.Service
	modelSvc  vehiclemodeldomain.Service
	methodSvc paymentmethoddomain.Service
	rateSvc   ratetierdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("commission.service"),
		genID:     p.GenID,
		clock:     p.Clock,
		tracer:    p.Tracer.Tracer("github.com/railzwaylabs/commissions/commission"),
		metrics:   newMetrics(p.Registerer),
		repo:      p.Repo,
		ledgerSvc: p.LedgerSvc,
		sellerSvc: p.SellerSvc,
		modelSvc:  p.ModelSvc,
		methodSvc: p.MethodSvc,
		rateSvc:   p.RateSvc,
	}
}

// pass is one engine run over every surviving order of a snapshot.
type pass struct {
	snap    *domain.Snapshot
	set     orderSet
	results []domain.OrderResult
	engine  *engine
}

func (s *Service) ComputeSellerSummary(ctx context.Context) ([]domain.SellerSummary, error) {
	ctx, span := s.tracer.Start(ctx, "commission.ComputeSellerSummary")
	defer span.End()
	defer s.observe(opSellerSummary, time.Now())

	p, err := s.run(ctx, opSellerSummary)
	if err != nil {
		return nil, s.fail(span, "load snapshot for seller summary", err)
	}
	summaries := summarizeSellers(p.results)
	span.SetAttributes(attribute.Int("commission.orders", len(p.results)), attribute.Int("commission.sellers", len(summaries)))
	return summaries, nil
}

func (s *Service) ComputeCitySummary(ctx context.Context) (*domain.CitySummaryResult, error) {
	ctx, span := s.tracer.Start(ctx, "commission.ComputeCitySummary")
	defer span.End()
	defer s.observe(opCitySummary, time.Now())

	schedule := s.rateSvc.Schedule(ctx)
	result := &domain.CitySummaryResult{}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		p, err := s.runWith(ctx, tx, schedule, opCitySummary)
		if err != nil {
			return err
		}
		result.RejectedRecords = p.set.rejectedRecords
		result.Warnings = p.engine.warnings.items

		now := s.clock.Now(ctx)
		sellers := s.sellerSvc.WithTx(tx)
		models := s.modelSvc.WithTx(tx)
		methods := s.methodSvc.WithTx(tx)

		entries := make([]cityEntry, 0, len(p.results))
		records := make([]domain.CommissionRecord, 0, len(p.results))
		for i, o := range p.set.orders {
			r := p.results[i]
			if err := tx.SavePoint(ensureSavepoint).Error; err != nil {
				return err
			}
			city, ok := s.ensureReferences(ctx, sellers, models, methods, p.snap, o)
			if !ok {
				if err := tx.RollbackTo(ensureSavepoint).Error; err != nil {
					return err
				}
				result.Rejected++
				continue
			}
			entries = append(entries, cityEntry{city: city, result: r})
			records = append(records, domain.CommissionRecord{
				ID:               s.genID.Generate(),
				SellerName:       r.SellerName,
				City:             city,
				VehicleModel:     r.VehicleModel,
				OrderID:          r.OrderID,
				FiscalDocumentID: r.FiscalDocumentID,
				PaymentMethods:   methodNames(r.Instruments),
				NominalValue:     r.NominalTotal,
				SaleValue:        r.PresentValueTotal,
				AchievementRatio: r.AchievementRatio,
				RatePercent:      r.RatePercent,
				CommissionValue:  r.CommissionTotal,
				IsInternal:       r.IsInternal,
				CreatedAt:        now,
			})
		}

		if err := s.repo.DeleteRecords(ctx, tx); err != nil {
			return err
		}
		if err := s.repo.InsertRecords(ctx, tx, records); err != nil {
			return err
		}
		result.Cities = summarizeCities(entries)
		result.Recorded = len(records)
		return nil
	})
	if err != nil {
		return nil, s.fail(span, "compute city summary", err)
	}

	s.metrics.rejected.WithLabelValues(opCitySummary, "unresolved_reference").Add(float64(result.Rejected))
	s.log.Info("commission ledger rewritten",
		zap.Int("recorded", result.Recorded),
		zap.Int("rejected", result.Rejected),
		zap.Int("rejected_records", result.RejectedRecords),
	)
	span.SetAttributes(attribute.Int("commission.recorded", result.Recorded), attribute.Int("commission.rejected", result.Rejected))
	return result, nil
}

// ensureSavepoint scopes the reference writes of one order so a failed
// insert does not abort the rollup transaction.
const ensureSavepoint = "commission_ensure_refs"

// ensureReferences registers the seller, model and payment methods of an
// order and returns the seller's city. It reports false when the order has
// to be left out of the city rollup.
func (s *Service) ensureReferences(
	ctx context.Context,
	sellers sellerdomain.Service,
	models vehiclemodeldomain.Service,
	methods paymentmethoddomain.Service,
	snap *domain.Snapshot,
	o *order,
) (string, bool) {
	seller, err := sellers.Ensure(ctx, o.sellerName, cityFromSales(snap, o.sellerName))
	if err != nil {
		s.log.Warn("order rejected: seller", zap.String("seller", o.sellerName), zap.String("order", o.orderID), zap.Error(err))
		return "", false
	}
	if _, err := models.Ensure(ctx, o.vehicleModel); err != nil {
		s.log.Warn("order rejected: vehicle model", zap.String("model", o.vehicleModel), zap.String("order", o.orderID), zap.Error(err))
		return "", false
	}
	for _, p := range o.instruments {
		name := strings.TrimSpace(p.PaymentMethodName)
		if name == "" || strings.EqualFold(name, paymentmethoddomain.UnknownMethodName) {
			continue
		}
		if _, err := methods.Ensure(ctx, name); err != nil {
			s.log.Warn("order rejected: payment method", zap.String("payment_method", name), zap.String("order", o.orderID), zap.Error(err))
			return "", false
		}
	}

	city := strings.TrimSpace(seller.City)
	if city == "" {
		return "", false
	}
	return city, true
}

func (s *Service) ComputeOrderCommissions(ctx context.Context, sellerName string) (*domain.OrderCommissions, error) {
	ctx, span := s.tracer.Start(ctx, "commission.ComputeOrderCommissions")
	defer span.End()
	defer s.observe(opOrderDetail, time.Now())

	sellerName = strings.TrimSpace(sellerName)
	if sellerName == "" {
		return nil, domain.ErrInvalidSellerName
	}

	schedule := s.rateSvc.Schedule(ctx)
	var snap *domain.Snapshot
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		snap, err = s.snapshot(ctx, tx, schedule)
		return err
	})
	if err != nil {
		return nil, s.fail(span, "load snapshot for order detail", err)
	}
	seller, ok := snap.Seller(sellerName)
	if !ok {
		return nil, domain.ErrSellerNotFound
	}

	set := buildOrders(snap)
	e := newEngine(snap, s.log)
	orders := []domain.OrderResult{}
	for _, o := range set.orders {
		if o.sellerName != seller.Name {
			continue
		}
		orders = append(orders, e.compute(o))
	}
	s.metrics.orders.WithLabelValues(opOrderDetail).Add(float64(len(orders)))
	s.metrics.fallbacks.WithLabelValues(opOrderDetail).Add(float64(e.fallbacks))

	return &domain.OrderCommissions{
		SellerName: seller.Name,
		IsInternal: seller.IsInternal,
		City:       seller.City,
		Orders:     orders,
		Warnings:   e.warnings.items,
	}, nil
}

func (s *Service) ResolveRate(ctx context.Context, ratio float64, highDisplacement, internal bool) domain.RateResolution {
	res := s.rateSvc.Resolve(ctx, ratio, highDisplacement, internal)
	for _, w := range res.Warnings {
		s.log.Warn("rate resolved with fallback", zap.String("warning", w))
	}
	return domain.RateResolution{
		Rate:        res.Rate,
		RatePercent: calc.RatePercent(res.Rate),
		Warnings:    res.Warnings,
	}
}

func (s *Service) CalculateCommission(ctx context.Context, req domain.CalculateRequest) (*domain.CalculateResult, error) {
	if !(req.TargetValue > 0) || math.IsInf(req.TargetValue, 0) {
		return nil, domain.ErrInvalidTarget
	}
	if !(req.SaleValue >= 0) || math.IsInf(req.SaleValue, 0) {
		return nil, domain.ErrInvalidSaleValue
	}

	ratio := req.SaleValue / req.TargetValue * 100
	res := s.ResolveRate(ctx, ratio, req.IsHighDisplacement, req.IsInternal)
	return &domain.CalculateResult{
		SaleValue:        req.SaleValue,
		TargetValue:      req.TargetValue,
		AchievementRatio: calc.Round2(ratio),
		Rate:             res.Rate,
		RatePercent:      res.RatePercent,
		Commission:       calc.Round2(req.SaleValue * res.Rate),
		Warnings:         res.Warnings,
	}, nil
}

func (s *Service) ProcessCommissions(ctx context.Context) (*domain.Run, error) {
	ctx, span := s.tracer.Start(ctx, "commission.ProcessCommissions")
	defer span.End()
	defer s.observe(opProcess, time.Now())

	p, err := s.run(ctx, opProcess)
	if err != nil {
		return nil, s.fail(span, "load snapshot for processing", err)
	}
	summaries := summarizeSellers(p.results)
	if len(summaries) == 0 {
		return nil, domain.ErrNothingToProcess
	}

	summaryJSON, err := json.Marshal(summaries)
	if err != nil {
		return nil, err
	}
	warningJSON, err := json.Marshal(p.engine.warnings.items)
	if err != nil {
		return nil, err
	}
	checksum := sha256.Sum256(summaryJSON)

	run := &domain.Run{
		ID:          ulid.Make().String(),
		SellerCount: len(summaries),
		OrderCount:  len(p.results),
		Summaries:   summaryJSON,
		Warnings:    warningJSON,
		Checksum:    hex.EncodeToString(checksum[:]),
		CreatedAt:   s.clock.Now(ctx),
	}
	for _, summary := range summaries {
		run.TotalSales += summary.TotalSales
		run.TotalCommission += summary.TotalCommission
	}
	run.TotalSales = calc.Round2(run.TotalSales)
	run.TotalCommission = calc.Round2(run.TotalCommission)

	if err := s.repo.InsertRun(ctx, s.db, run); err != nil {
		return nil, s.fail(span, "persist commission run", err)
	}
	s.log.Info("commission run processed",
		zap.String("run_id", run.ID),
		zap.Int("sellers", run.SellerCount),
		zap.Int("orders", run.OrderCount),
		zap.Float64("total_commission", run.TotalCommission),
	)
	span.SetAttributes(attribute.String("commission.run_id", run.ID))
	return run, nil
}

func (s *Service) GetRun(ctx context.Context, id string) (*domain.Run, error) {
	parsed, err := ulid.ParseStrict(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvalidRunID
	}
	run, err := s.repo.FindRun(ctx, s.db, parsed.String())
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrRunNotFound
	}
	return run, nil
}

func (s *Service) ListRuns(ctx context.Context, limit int) ([]domain.Run, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.repo.ListRuns(ctx, s.db, limit)
}

func (s *Service) PurgeRuns(ctx context.Context, before time.Time) (int64, error) {
	return s.repo.DeleteRunsBefore(ctx, s.db, before)
}

func (s *Service) ListRecords(ctx context.Context) ([]domain.CommissionRecord, error) {
	return s.repo.ListRecords(ctx, s.db)
}

func (s *Service) run(ctx context.Context, op string) (*pass, error) {
	schedule := s.rateSvc.Schedule(ctx)
	var p *pass
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		p, err = s.runWith(ctx, tx, schedule, op)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// runWith computes every surviving order. The rate schedule is loaded by
// the caller before the transaction is opened.
func (s *Service) runWith(ctx context.Context, tx *gorm.DB, schedule *ratetierdomain.Schedule, op string) (*pass, error) {
	snap, err := s.snapshot(ctx, tx, schedule)
	if err != nil {
		return nil, err
	}

	set := buildOrders(snap)
	e := newEngine(snap, s.log)
	results := make([]domain.OrderResult, len(set.orders))
	for i, o := range set.orders {
		results[i] = e.compute(o)
	}

	s.metrics.orders.WithLabelValues(op).Add(float64(len(results)))
	s.metrics.fallbacks.WithLabelValues(op).Add(float64(e.fallbacks))
	s.metrics.rejected.WithLabelValues(op, "unknown_seller").Add(float64(set.rejectedRecords))
	s.metrics.rejected.WithLabelValues(op, "negative_total").Add(float64(set.negative))
	if set.rejectedRecords > 0 || set.negative > 0 {
		s.log.Debug("proposals left out",
			zap.String("operation", op),
			zap.Int("rejected_records", set.rejectedRecords),
			zap.Int("negative_orders", set.negative),
		)
	}
	return &pass{snap: snap, set: set, results: results, engine: e}, nil
}

func (s *Service) snapshot(ctx context.Context, tx *gorm.DB, schedule *ratetierdomain.Schedule) (*domain.Snapshot, error) {
	ledgers, err := s.ledgerSvc.WithTx(tx).Read(ctx)
	if err != nil {
		return nil, err
	}
	sellers, err := s.sellerSvc.WithTx(tx).List(ctx, sellerdomain.ListRequest{})
	if err != nil {
		return nil, err
	}
	models, err := s.modelSvc.WithTx(tx).List(ctx, vehiclemodeldomain.ListRequest{})
	if err != nil {
		return nil, err
	}
	methods := s.methodSvc.WithTx(tx)
	paymentMethods, err := methods.List(ctx, paymentmethoddomain.ListRequest{})
	if err != nil {
		return nil, err
	}
	tables, err := methods.ListProgressiveTables(ctx)
	if err != nil {
		return nil, err
	}
	return domain.NewSnapshot(ledgers, sellers, models, paymentMethods, tables, schedule), nil
}

func (s *Service) observe(op string, start time.Time) {
	s.metrics.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (s *Service) fail(span trace.Span, msg string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
	s.log.Error(msg, zap.Error(err))
	return err
}

func cityFromSales(snap *domain.Snapshot, sellerName string) string {
	city := ""
	for _, sale := range snap.Sales {
		if strings.TrimSpace(sale.SellerName) == sellerName && strings.TrimSpace(sale.OriginCity) != "" {
			city = strings.TrimSpace(sale.OriginCity)
		}
	}
	return city
}

func methodNames(instruments []domain.InstrumentResult) string {
	seen := map[string]struct{}{}
	names := []string{}
	for _, inst := range instruments {
		name := strings.TrimSpace(inst.PaymentMethodName)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
