package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/railzwaylabs/commissions/internal/seller/domain"
	"github.com/railzwaylabs/commissions/internal/seller/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTestService(t *testing.T) (*gorm.DB, domain.Service) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, conn.AutoMigrate(&domain.Seller{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	return conn, New(Params{DB: conn, Log: zap.NewNop(), GenID: node, Repo: repository.Provide()})
}

func TestCreateAndGet(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "  Ana  ", City: "Curitiba", IsInternal: true})
	require.NoError(t, err)
	assert.Equal(t, "Ana", created.Name)
	assert.Equal(t, domain.StatusActive, created.Status)

	got, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Curitiba", got.City)
	assert.True(t, got.IsInternal)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: "ANA"})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	_, err = svc.Create(ctx, domain.CreateRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidName)

	_, err = svc.Get(ctx, "not-a-number")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.Get(ctx, "12345")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteIsSoft(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, domain.CreateRequest{Name: "Bruno"})
	require.NoError(t, err)

	deleted, err := svc.Delete(ctx, created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInactive, deleted.Status)

	active, err := svc.List(ctx, domain.ListRequest{Status: "active"})
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx, domain.ListRequest{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, domain.StatusInactive, all[0].Status)

	_, err = svc.List(ctx, domain.ListRequest{Status: "archived"})
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestEnsure(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	first, err := svc.Ensure(ctx, "Carla", "Londrina")
	require.NoError(t, err)
	assert.False(t, first.IsInternal)
	assert.Equal(t, domain.StatusActive, first.Status)

	again, err := svc.Ensure(ctx, "carla", "")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = svc.Ensure(ctx, "Desconhecido", "")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
	_, err = svc.Ensure(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestSync(t *testing.T) {
	_, svc := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, domain.CreateRequest{Name: "Ana", City: "Curitiba", IsInternal: true})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{Name: "Bruno", City: "Maringa"})
	require.NoError(t, err)

	result, err := svc.Sync(ctx, map[string]string{
		"ANA":          "Cascavel",
		"Bruno":        "",
		"Davi":         "Ponta Grossa",
		"Desconhecido": "Curitiba",
		"":             "Curitiba",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Davi"}, result.Created)
	assert.ElementsMatch(t, []string{"ANA", "Bruno"}, result.Existing)
	assert.Equal(t, []string{"ANA"}, result.Updated)

	ana, err := svc.FindByName(ctx, "ana")
	require.NoError(t, err)
	assert.Equal(t, "Ana", ana.Name)
	assert.Equal(t, "Cascavel", ana.City)
	assert.True(t, ana.IsInternal)

	bruno, err := svc.FindByName(ctx, "Bruno")
	require.NoError(t, err)
	assert.Equal(t, "Maringa", bruno.City)

	davi, err := svc.FindByName(ctx, "Davi")
	require.NoError(t, err)
	assert.Equal(t, "Ponta Grossa", davi.City)

	_, err = svc.FindByName(ctx, "Desconhecido")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWithTxRollsBack(t *testing.T) {
	conn, svc := setupTestService(t)
	ctx := context.Background()

	err := conn.Transaction(func(tx *gorm.DB) error {
		if _, err := svc.WithTx(tx).Ensure(ctx, "Eva", "Toledo"); err != nil {
			return err
		}
		return gorm.ErrInvalidTransaction
	})
	require.ErrorIs(t, err, gorm.ErrInvalidTransaction)

	_, err = svc.FindByName(ctx, "Eva")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
