package service

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/railzwaylabs/commissions/internal/paymentmethod/domain"
	"github.com/railzwaylabs/commissions/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("paymentmethod.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) WithTx(tx *gorm.DB) domain.Service {
	if tx == nil {
		return s
	}
	clone := *s
	clone.db = tx
	return &clone
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.PaymentMethod, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	entity := s.newMethod(name)
	if err := s.applyPresentValue(ctx, entity, req.ApplyPresentValue, req.MonthlyInterestRate, req.ProgressiveTableID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.PaymentMethod, error) {
	filter := domain.ListFilter{}
	switch domain.Status(strings.ToLower(strings.TrimSpace(req.Status))) {
	case "":
	case domain.StatusActive:
		filter.Status = domain.StatusActive
	case domain.StatusInactive:
		filter.Status = domain.StatusInactive
	default:
		return nil, domain.ErrInvalidStatus
	}
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	methodID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, methodID)
}

func (s *Service) UpdatePresentValue(ctx context.Context, req domain.UpdatePresentValueRequest) (*domain.PaymentMethod, error) {
	methodID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	entity, err := s.load(ctx, methodID)
	if err != nil {
		return nil, err
	}

	if err := s.applyPresentValue(ctx, entity, req.ApplyPresentValue, req.MonthlyInterestRate, req.ProgressiveTableID); err != nil {
		return nil, err
	}
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}
	s.log.Info("payment method present value updated",
		zap.String("name", entity.Name),
		zap.Bool("apply_present_value", entity.ApplyPresentValue),
		zap.Float64("monthly_interest_rate", entity.MonthlyInterestRate),
	)
	return entity, nil
}

func (s *Service) Deactivate(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	methodID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	entity, err := s.load(ctx, methodID)
	if err != nil {
		return nil, err
	}

	entity.Status = domain.StatusInactive
	entity.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		return nil, err
	}
	return entity, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	methodID, err := parseID(id)
	if err != nil {
		return err
	}
	if _, err := s.load(ctx, methodID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, s.db, methodID)
}

func (s *Service) Ensure(ctx context.Context, name string) (*domain.PaymentMethod, error) {
	name = strings.TrimSpace(name)
	if !isRegistrableName(name) {
		return nil, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	entity := s.newMethod(name)
	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsUniqueViolation(err) {
			return s.repo.FindByName(ctx, s.db, name)
		}
		return nil, err
	}
	s.log.Info("payment method auto-created", zap.String("name", name))
	return entity, nil
}

func (s *Service) Sync(ctx context.Context, names []string) (domain.SyncResult, error) {
	result := domain.SyncResult{Created: []string{}, Existing: []string{}}

	seen := make(map[string]struct{}, len(names))
	unique := make([]string, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if !isRegistrableName(name) {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, name)
	}
	sort.Strings(unique)

	for _, name := range unique {
		existing, err := s.repo.FindByName(ctx, s.db, name)
		if err != nil {
			return result, err
		}
		if existing != nil {
			result.Existing = append(result.Existing, name)
			continue
		}
		if err := s.repo.Insert(ctx, s.db, s.newMethod(name)); err != nil {
			return result, err
		}
		result.Created = append(result.Created, name)
	}

	s.log.Info("payment methods synced",
		zap.Int("created", len(result.Created)),
		zap.Int("existing", len(result.Existing)),
	)
	return result, nil
}

func (s *Service) CreateProgressiveTable(ctx context.Context, req domain.CreateProgressiveTableRequest) (*domain.ProgressiveTable, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	if len(req.Coefficients) == 0 {
		return nil, domain.ErrInvalidCoefficients
	}
	for _, c := range req.Coefficients {
		if math.IsNaN(c) || c < 0 || c >= 100 {
			return nil, domain.ErrInvalidCoefficients
		}
	}

	payload, err := json.Marshal(req.Coefficients)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entity := &domain.ProgressiveTable{
		ID:           s.genID.Generate(),
		Code:         slug.Make(name),
		Name:         name,
		Coefficients: datatypes.JSON(payload),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.InsertTable(ctx, s.db, entity); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrTableAlreadyExists
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) ListProgressiveTables(ctx context.Context) ([]domain.ProgressiveTable, error) {
	return s.repo.ListTables(ctx, s.db)
}

func (s *Service) DeleteProgressiveTable(ctx context.Context, id string) error {
	tableID, err := parseID(id)
	if err != nil {
		return err
	}
	table, err := s.repo.FindTableByID(ctx, s.db, tableID)
	if err != nil {
		return err
	}
	if table == nil {
		return domain.ErrTableNotFound
	}

	inUse, err := s.repo.CountByProgressiveTable(ctx, s.db, tableID)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return domain.ErrTableInUse
	}
	return s.repo.DeleteTable(ctx, s.db, tableID)
}

func (s *Service) applyPresentValue(ctx context.Context, entity *domain.PaymentMethod, apply bool, rate float64, tableID string) error {
	if math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 || rate >= 1 {
		return domain.ErrInvalidInterestRate
	}

	entity.ApplyPresentValue = apply
	entity.MonthlyInterestRate = rate
	entity.ProgressiveTableID = nil

	tableID = strings.TrimSpace(tableID)
	if tableID == "" {
		return nil
	}
	parsed, err := parseID(tableID)
	if err != nil {
		return err
	}
	table, err := s.repo.FindTableByID(ctx, s.db, parsed)
	if err != nil {
		return err
	}
	if table == nil {
		return domain.ErrTableNotFound
	}
	entity.ProgressiveTableID = &table.ID
	entity.MonthlyInterestRate = 0
	return nil
}

func (s *Service) newMethod(name string) *domain.PaymentMethod {
	now := time.Now().UTC()
	return &domain.PaymentMethod{
		ID:        s.genID.Generate(),
		Name:      name,
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (*domain.PaymentMethod, error) {
	entity, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, domain.ErrNotFound
	}
	return entity, nil
}

func isRegistrableName(name string) bool {
	return name != "" && !strings.EqualFold(name, domain.UnknownMethodName)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
