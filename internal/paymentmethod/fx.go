package paymentmethod

import (
	"github.com/railzwaylabs/commissions/internal/paymentmethod/repository"
	"github.com/railzwaylabs/commissions/internal/paymentmethod/service"
	"go.uber.org/fx"
)

var Module = fx.Module("paymentmethod.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
