package migration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
	"github.com/railzwaylabs/commissions/internal/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const migrationsTable = "schema_migrations"

// RunMigrations brings the schema to the latest embedded version and
// activates the schema state. Postgres runs the embedded SQL under an
// advisory lock; mysql and sqlite use AutoMigrate of the same tables.
func RunMigrations(ctx context.Context, conn *gorm.DB, cfg config.DatabaseConfig, log *zap.Logger) error {
	if conn == nil {
		return errors.New("migration database handle is required")
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	latestVersion, err := LatestMigrationVersion()
	if err != nil {
		return err
	}
	checksum, err := MigrationsChecksum()
	if err != nil {
		return err
	}

	switch cfg.Type {
	case config.DBTypePostgres:
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		if err := runPostgres(ctx, sqlDB, cfg.Schema, latestVersion); err != nil {
			return err
		}
	default:
		if err := conn.WithContext(ctx).AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto migrate: %w", err)
		}
	}

	if err := activateSchemaState(ctx, conn, fmt.Sprintf("%d", latestVersion), checksum); err != nil {
		return err
	}
	log.Info("schema migrated",
		zap.String("db_type", cfg.Type),
		zap.Uint("version", latestVersion),
		zap.String("checksum", checksum),
	)
	return nil
}

func runPostgres(ctx context.Context, db *sql.DB, schema string, latestVersion uint) error {
	unlock, err := acquireAdvisoryLock(ctx, db)
	if err != nil {
		return err
	}
	defer func() {
		_ = unlock(context.Background())
	}()

	schema = strings.TrimSpace(schema)
	if schema == "" {
		schema = "public"
	}
	if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(schema)); err != nil {
		return fmt.Errorf("create schema %s: %w", schema, err)
	}

	sub, err := fs.Sub(embeddedMigrations, migrationsDir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	source, err := iofs.New(sub, ".")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}
	driver, err := postgres.WithInstance(db, &postgres.Config{
		SchemaName:      schema,
		MigrationsTable: migrationsTable,
	})
	if err != nil {
		return fmt.Errorf("create migration driver: %w", err)
	}
	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if _, err := ensureNotDirty(migrator); err != nil {
		return err
	}
	if upErr := migrator.Up(); upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", upErr)
	}

	currentVersion, err := ensureNotDirty(migrator)
	if err != nil {
		return err
	}
	if currentVersion != latestVersion {
		return fmt.Errorf("schema version mismatch after migrate: got %d want %d", currentVersion, latestVersion)
	}
	return nil
}

func ensureNotDirty(migrator *migrate.Migrate) (uint, error) {
	version, dirty, err := migrator.Version()
	if err != nil {
		if errors.Is(err, migrate.ErrNilVersion) {
			return 0, nil
		}
		return 0, fmt.Errorf("read migration version: %w", err)
	}
	if dirty {
		return 0, fmt.Errorf("database migrations are dirty at version %d", version)
	}
	return version, nil
}
