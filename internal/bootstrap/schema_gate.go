package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/railzwaylabs/commissions/internal/migration"
	"gorm.io/gorm"
)

var (
	ErrSchemaStateNotFound    = errors.New("schema state not found; run migrate first")
	ErrSchemaStateInactive    = errors.New("schema state is not active")
	ErrSchemaVersionMismatch  = errors.New("schema version mismatch")
	ErrSchemaChecksumMismatch = errors.New("schema checksum mismatch")
)

// SchemaGate refuses to serve against a database the current binary has
// not migrated.
type SchemaGate interface {
	MustBeActive(ctx context.Context) error
}

type schemaGate struct {
	db               *gorm.DB
	expectedVersion  string
	expectedChecksum string
}

func NewSchemaGate(db *gorm.DB) (SchemaGate, error) {
	if db == nil {
		return nil, errors.New("schema gate requires database handle")
	}

	latestVersion, err := migration.LatestMigrationVersion()
	if err != nil {
		return nil, err
	}
	expectedChecksum, err := migration.MigrationsChecksum()
	if err != nil {
		return nil, err
	}

	return &schemaGate{
		db:               db,
		expectedVersion:  fmt.Sprintf("%d", latestVersion),
		expectedChecksum: expectedChecksum,
	}, nil
}

func (g *schemaGate) MustBeActive(ctx context.Context) error {
	state, err := migration.LoadSchemaState(ctx, g.db)
	if err != nil {
		return fmt.Errorf("load schema state: %w", err)
	}
	if state == nil {
		return ErrSchemaStateNotFound
	}

	if state.Status != migration.StatusActive {
		return fmt.Errorf("%w: status=%s", ErrSchemaStateInactive, state.Status)
	}
	if state.SchemaVersion != g.expectedVersion {
		return fmt.Errorf("%w: state=%s expected=%s", ErrSchemaVersionMismatch, state.SchemaVersion, g.expectedVersion)
	}
	if state.Checksum != nil && *state.Checksum != g.expectedChecksum {
		return fmt.Errorf("%w: state=%s expected=%s", ErrSchemaChecksumMismatch, *state.Checksum, g.expectedChecksum)
	}
	return nil
}
