// @title           Commissions API
// @version         1.0
// @description     Sales commission engine for motorcycle dealerships.

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/commissions/internal/bootstrap"
	"github.com/railzwaylabs/commissions/internal/clock"
	"github.com/railzwaylabs/commissions/internal/commission"
	"github.com/railzwaylabs/commissions/internal/config"
	"github.com/railzwaylabs/commissions/internal/ledger"
	"github.com/railzwaylabs/commissions/internal/observability"
	"github.com/railzwaylabs/commissions/internal/paymentmethod"
	"github.com/railzwaylabs/commissions/internal/ratetier"
	"github.com/railzwaylabs/commissions/internal/redis"
	"github.com/railzwaylabs/commissions/internal/report"
	"github.com/railzwaylabs/commissions/internal/seller"
	"github.com/railzwaylabs/commissions/internal/server"
	"github.com/railzwaylabs/commissions/internal/vehiclemodel"
	"github.com/railzwaylabs/commissions/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		bootstrap.Module,
		fx.Invoke(bootstrap.EnforceSchemaGate),

		seller.Module,
		vehiclemodel.Module,
		paymentmethod.Module,
		ratetier.Module,
		ledger.Module,
		commission.Module,
		report.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
