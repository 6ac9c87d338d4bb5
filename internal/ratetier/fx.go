package ratetier

import (
	"github.com/railzwaylabs/commissions/internal/ratetier/repository"
	"github.com/railzwaylabs/commissions/internal/ratetier/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ratetier.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.NewCache),
	fx.Provide(service.New),
)
