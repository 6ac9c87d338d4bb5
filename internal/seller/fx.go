package seller

import (
	"github.com/railzwaylabs/commissions/internal/seller/repository"
	"github.com/railzwaylabs/commissions/internal/seller/service"
	"go.uber.org/fx"
)

var Module = fx.Module("seller.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
