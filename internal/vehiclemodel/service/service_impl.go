package service

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/commissions/internal/vehiclemodel/domain"
	"github.com/railzwaylabs/commissions/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
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
		log:   p.Log.Named("vehiclemodel.service"),
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

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.VehicleModel, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	highDisplacement := domain.IsHighDisplacementName(name)
	if req.IsHighDisplacement != nil {
		highDisplacement = *req.IsHighDisplacement
	}
	listPrice := 0.0
	if req.ListPrice != nil {
		if !validListPrice(*req.ListPrice) {
			return nil, domain.ErrInvalidListPrice
		}
		listPrice = *req.ListPrice
	}

	existing, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	entity := s.newModel(name, highDisplacement, listPrice)
	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.VehicleModel, error) {
	filter := domain.ListFilter{}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status, err := parseStatus(raw)
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.VehicleModel, error) {
	modelID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, modelID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.VehicleModel, error) {
	modelID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	entity, err := s.load(ctx, modelID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		entity.Name = name
	}
	if req.IsHighDisplacement != nil {
		entity.IsHighDisplacement = *req.IsHighDisplacement
	}
	if req.ListPrice != nil {
		if !validListPrice(*req.ListPrice) {
			return nil, domain.ErrInvalidListPrice
		}
		entity.ListPrice = *req.ListPrice
	}
	if req.Status != nil {
		status, err := parseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		entity.Status = status
	}
	entity.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, entity); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) Delete(ctx context.Context, id string) (*domain.VehicleModel, error) {
	inactive := string(domain.StatusInactive)
	return s.Update(ctx, domain.UpdateRequest{ID: id, Status: &inactive})
}

func (s *Service) Ensure(ctx context.Context, name string) (*domain.VehicleModel, error) {
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

	entity := s.newModel(name, domain.IsHighDisplacementName(name), 0)
	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsUniqueViolation(err) {
			return s.repo.FindByName(ctx, s.db, name)
		}
		return nil, err
	}
	s.log.Info("vehicle model auto-created",
		zap.String("name", name),
		zap.Bool("high_displacement", entity.IsHighDisplacement),
	)
	return entity, nil
}

func (s *Service) Sync(ctx context.Context, listPrices map[string]float64) (domain.SyncResult, error) {
	result := domain.SyncResult{Created: []string{}, Existing: []string{}}

	names := make([]string, 0, len(listPrices))
	for name := range listPrices {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if !isRegistrableName(name) {
			continue
		}
		price := listPrices[raw]
		if !validListPrice(price) {
			price = 0
		}

		existing, err := s.repo.FindByName(ctx, s.db, name)
		if err != nil {
			return result, err
		}
		if existing == nil {
			entity := s.newModel(name, domain.IsHighDisplacementName(name), price)
			if err := s.repo.Insert(ctx, s.db, entity); err != nil {
				return result, err
			}
			result.Created = append(result.Created, name)
			continue
		}

		existing.Status = domain.StatusActive
		existing.ListPrice = price
		existing.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, s.db, existing); err != nil {
			return result, err
		}
		result.Existing = append(result.Existing, name)
	}

	s.log.Info("vehicle models synced",
		zap.Int("created", len(result.Created)),
		zap.Int("existing", len(result.Existing)),
	)
	return result, nil
}

func (s *Service) newModel(name string, highDisplacement bool, listPrice float64) *domain.VehicleModel {
	now := time.Now().UTC()
	return &domain.VehicleModel{
		ID:                 s.genID.Generate(),
		Name:               name,
		IsHighDisplacement: highDisplacement,
		ListPrice:          listPrice,
		Status:             domain.StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (*domain.VehicleModel, error) {
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
	return name != "" && !strings.EqualFold(name, domain.UnknownModelName)
}

func validListPrice(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseStatus(value string) (domain.Status, error) {
	switch domain.Status(strings.ToLower(strings.TrimSpace(value))) {
	case domain.StatusActive:
		return domain.StatusActive, nil
	case domain.StatusInactive:
		return domain.StatusInactive, nil
	default:
		return "", domain.ErrInvalidStatus
	}
}
