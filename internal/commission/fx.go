package commission

import (
	"github.com/railzwaylabs/commissions/internal/commission/domain"
	"github.com/railzwaylabs/commissions/internal/commission/repository"
	"github.com/railzwaylabs/commissions/internal/commission/service"
	ledgerdomain "github.com/railzwaylabs/commissions/internal/ledger/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("commission.service",
	fx.Provide(repository.Provide),
	fx.Provide(func(repo domain.Repository) ledgerdomain.DerivedStore { return repo }),
	fx.Provide(service.New),
)
