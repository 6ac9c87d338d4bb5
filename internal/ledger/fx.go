package ledger

import (
	"github.com/railzwaylabs/commissions/internal/ledger/repository"
	"github.com/railzwaylabs/commissions/internal/ledger/service"
	"go.uber.org/fx"
)

var Module = fx.Module("ledger.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
