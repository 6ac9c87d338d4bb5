package vehiclemodel

import (
	"github.com/railzwaylabs/commissions/internal/vehiclemodel/repository"
	"github.com/railzwaylabs/commissions/internal/vehiclemodel/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vehiclemodel.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
