package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/commissions/internal/seller/domain"
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
		log:   p.Log.Named("seller.service"),
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

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Seller, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	existing, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrAlreadyExists
	}

	now := time.Now().UTC()
	entity := &domain.Seller{
		ID:         s.genID.Generate(),
		Name:       name,
		City:       strings.TrimSpace(req.City),
		IsInternal: req.IsInternal,
		Status:     domain.StatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return entity, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Seller, error) {
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

func (s *Service) Get(ctx context.Context, id string) (*domain.Seller, error) {
	sellerID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, sellerID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.Seller, error) {
	sellerID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	entity, err := s.load(ctx, sellerID)
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
	if req.City != nil {
		entity.City = strings.TrimSpace(*req.City)
	}
	if req.IsInternal != nil {
		entity.IsInternal = *req.IsInternal
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

// Delete marks the seller inactive. Ledger rows keep referring to it by name.
func (s *Service) Delete(ctx context.Context, id string) (*domain.Seller, error) {
	inactive := string(domain.StatusInactive)
	return s.Update(ctx, domain.UpdateRequest{ID: id, Status: &inactive})
}

func (s *Service) FindByName(ctx context.Context, name string) (*domain.Seller, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.ErrInvalidName
	}
	entity, err := s.repo.FindByName(ctx, s.db, name)
	if err != nil {
		return nil, err
	}
	if entity == nil {
		return nil, domain.ErrNotFound
	}
	return entity, nil
}

func (s *Service) Ensure(ctx context.Context, name, city string) (*domain.Seller, error) {
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

	now := time.Now().UTC()
	entity := &domain.Seller{
		ID:        s.genID.Generate(),
		Name:      name,
		City:      strings.TrimSpace(city),
		Status:    domain.StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, s.db, entity); err != nil {
		if db.IsUniqueViolation(err) {
			return s.repo.FindByName(ctx, s.db, name)
		}
		return nil, err
	}
	s.log.Info("seller auto-created", zap.String("name", name), zap.String("city", entity.City))
	return entity, nil
}

func (s *Service) Sync(ctx context.Context, cities map[string]string) (domain.SyncResult, error) {
	result := domain.SyncResult{
		Created:  []string{},
		Existing: []string{},
		Updated:  []string{},
	}

	names := make([]string, 0, len(cities))
	for name := range cities {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if !isRegistrableName(name) {
			continue
		}
		city := strings.TrimSpace(cities[raw])

		existing, err := s.repo.FindByName(ctx, s.db, name)
		if err != nil {
			return result, err
		}
		if existing == nil {
			if _, err := s.Ensure(ctx, name, city); err != nil {
				return result, err
			}
			result.Created = append(result.Created, name)
			continue
		}

		result.Existing = append(result.Existing, name)
		if city == "" || existing.City == city {
			continue
		}
		existing.City = city
		existing.UpdatedAt = time.Now().UTC()
		if err := s.repo.Update(ctx, s.db, existing); err != nil {
			return result, err
		}
		result.Updated = append(result.Updated, name)
	}

	s.log.Info("sellers synced",
		zap.Int("created", len(result.Created)),
		zap.Int("existing", len(result.Existing)),
		zap.Int("city_updated", len(result.Updated)),
	)
	return result, nil
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (*domain.Seller, error) {
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
	return name != "" && !strings.EqualFold(name, domain.UnknownSellerName)
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
