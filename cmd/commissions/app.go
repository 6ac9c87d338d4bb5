package main

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/railzwaylabs/commissions/internal/bootstrap"
	"github.com/railzwaylabs/commissions/internal/clock"
	"github.com/railzwaylabs/commissions/internal/commission"
	"github.com/railzwaylabs/commissions/internal/config"
	"github.com/railzwaylabs/commissions/internal/ledger"
	"github.com/railzwaylabs/commissions/internal/migration"
	"github.com/railzwaylabs/commissions/internal/observability"
	"github.com/railzwaylabs/commissions/internal/paymentmethod"
	"github.com/railzwaylabs/commissions/internal/ratetier"
	"github.com/railzwaylabs/commissions/internal/redis"
	"github.com/railzwaylabs/commissions/internal/report"
	"github.com/railzwaylabs/commissions/internal/scheduler"
	"github.com/railzwaylabs/commissions/internal/seller"
	"github.com/railzwaylabs/commissions/internal/server"
	"github.com/railzwaylabs/commissions/internal/vehiclemodel"
	"github.com/railzwaylabs/commissions/pkg/db"
	"go.uber.org/fx"
)

const oneShotTimeout = 2 * time.Minute

// coreModules wires storage and every domain service.
func coreModules() fx.Option {
	return fx.Options(
		config.Module,
		observability.Module,
		fx.Provide(registerSnowflake),
		db.Module,
		clock.Module,
		redis.Module,
		seller.Module,
		vehiclemodel.Module,
		paymentmethod.Module,
		ratetier.Module,
		ledger.Module,
		commission.Module,
		report.Module,
	)
}

func runMigrate() error {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
	)

	ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("migrate failed: %w", err)
	}
	_ = app.Stop(context.Background())
	return nil
}

func runServe(withScheduler bool) {
	opts := []fx.Option{
		coreModules(),
		bootstrap.Module,
		fx.Invoke(bootstrap.EnforceSchemaGate),
		server.Module,
	}
	if withScheduler {
		opts = append(opts, scheduler.Module, fx.Invoke(scheduler.Start))
	}
	fx.New(opts...).Run()
}

func runScheduler() {
	fx.New(
		coreModules(),
		bootstrap.Module,
		fx.Invoke(bootstrap.EnforceSchemaGate),
		scheduler.Module,
		fx.Invoke(scheduler.Start),
	).Run()
}

// runOneShot starts the core app with the schema gate, fills targets from
// the container and runs fn before stopping it again.
func runOneShot(fn func(ctx context.Context) error, targets ...any) error {
	app := fx.New(
		coreModules(),
		bootstrap.Module,
		fx.Invoke(bootstrap.EnforceSchemaGate),
		fx.Populate(targets...),
		fx.NopLogger,
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), oneShotTimeout)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() { _ = app.Stop(context.Background()) }()

	return fn(ctx)
}

func registerSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
