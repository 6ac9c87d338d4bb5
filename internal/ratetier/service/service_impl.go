package service

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/commissions/internal/ratetier/domain"
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
	Cache *Cache
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
	cache *Cache
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ratetier.service"),
		genID: p.GenID,
		repo:  p.Repo,
		cache: p.Cache,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.RateTier, error) {
	if req.MinRatio == nil {
		return nil, domain.ErrInvalidMinRatio
	}
	if req.Rate == nil {
		return nil, domain.ErrInvalidRate
	}

	now := time.Now().UTC()
	tier := &domain.RateTier{
		ID:         s.genID.Generate(),
		IsInternal: req.IsInternal,
		MinRatio:   *req.MinRatio,
		MaxRatio:   req.MaxRatio,
		Rate:       *req.Rate,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if req.IsInternal {
		class, err := parseClass(req.VehicleClass)
		if err != nil {
			return nil, err
		}
		tier.VehicleClass = &class
	}
	if err := validate(tier); err != nil {
		return nil, err
	}

	if err := s.repo.Insert(ctx, s.db, tier); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return tier, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.RateTier, error) {
	filter := domain.ListFilter{}
	switch domain.Scope(strings.ToLower(strings.TrimSpace(req.Scope))) {
	case "":
	case domain.ScopeInternal:
		internal := true
		filter.IsInternal = &internal
	case domain.ScopeExternal:
		internal := false
		filter.IsInternal = &internal
	default:
		return nil, domain.ErrInvalidScope
	}
	return s.repo.List(ctx, s.db, filter)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.RateTier, error) {
	tierID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, tierID)
}

func (s *Service) Update(ctx context.Context, req domain.UpdateRequest) (*domain.RateTier, error) {
	tierID, err := parseID(req.ID)
	if err != nil {
		return nil, err
	}
	tier, err := s.load(ctx, tierID)
	if err != nil {
		return nil, err
	}

	if req.VehicleClass != nil && tier.IsInternal {
		class, err := parseClass(*req.VehicleClass)
		if err != nil {
			return nil, err
		}
		tier.VehicleClass = &class
	}
	if req.MinRatio != nil {
		tier.MinRatio = *req.MinRatio
	}
	if req.ClearMax {
		tier.MaxRatio = nil
	} else if req.MaxRatio != nil {
		tier.MaxRatio = req.MaxRatio
	}
	if req.Rate != nil {
		tier.Rate = *req.Rate
	}
	if err := validate(tier); err != nil {
		return nil, err
	}
	tier.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, s.db, tier); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return tier, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	tierID, err := parseID(id)
	if err != nil {
		return err
	}
	affected, err := s.repo.Delete(ctx, s.db, tierID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	s.invalidate(ctx)
	return nil
}

func (s *Service) Resolve(ctx context.Context, ratio float64, highDisplacement, internal bool) domain.Resolution {
	return s.Schedule(ctx).Resolve(ratio, highDisplacement, internal)
}

func (s *Service) Schedule(ctx context.Context) *domain.Schedule {
	tiers, version, hit, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn("rate tier cache read failed", zap.Error(err))
	}
	if hit {
		return domain.NewSchedule(tiers)
	}

	tiers, err = s.repo.List(ctx, s.db, domain.ListFilter{})
	if err != nil {
		s.log.Error("failed to load rate tiers, using default schedule", zap.Error(err))
		return domain.FailedSchedule(err)
	}
	if err := s.cache.Set(ctx, version, tiers); err != nil {
		s.log.Warn("rate tier cache write failed", zap.Error(err))
	}
	return domain.NewSchedule(tiers)
}

func (s *Service) load(ctx context.Context, id snowflake.ID) (*domain.RateTier, error) {
	tier, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if tier == nil {
		return nil, domain.ErrNotFound
	}
	return tier, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("rate tier cache invalidation failed", zap.Error(err))
	}
}

func validate(tier *domain.RateTier) error {
	if math.IsNaN(tier.MinRatio) || math.IsInf(tier.MinRatio, 0) || tier.MinRatio < 0 {
		return domain.ErrInvalidMinRatio
	}
	if tier.MaxRatio != nil {
		upper := *tier.MaxRatio
		if math.IsNaN(upper) || math.IsInf(upper, 0) || upper < tier.MinRatio {
			return domain.ErrInvalidMaxRatio
		}
	}
	if math.IsNaN(tier.Rate) || tier.Rate < 0 || tier.Rate >= 1 {
		return domain.ErrInvalidRate
	}
	return nil
}

func parseClass(value string) (domain.VehicleClass, error) {
	class := domain.VehicleClass(strings.ToLower(strings.TrimSpace(value)))
	if !class.Valid() {
		return "", domain.ErrInvalidVehicleClass
	}
	return class, nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
