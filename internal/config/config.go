package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	DBTypePostgres = "postgres"
	DBTypeMySQL    = "mysql"
	DBTypeSQLite   = "sqlite"
)

const (
	OtelExporterNone = "none"
	OtelExporterGRPC = "grpc"
	OtelExporterHTTP = "http"
)

const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

var (
	ErrInvalidDatabaseType = errors.New("invalid_database_type")
	ErrInvalidOtelExporter = errors.New("invalid_otel_exporter")
	ErrInvalidEncoding     = errors.New("invalid_ingest_encoding")
)

type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	ConfigFile  string

	HTTP      HTTPConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Log       LogConfig
	Otel      OtelConfig
	Ingest    IngestConfig
	Scheduler SchedulerConfig
}

type HTTPConfig struct {
	Addr               string
	CORSAllowedOrigins []string
}

type DatabaseConfig struct {
	Type         string
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	Schema       string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Addr        string
	Password    string
	DB          int
	RateTierTTL time.Duration
}

// Enabled reports whether a redis address was configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

type LogConfig struct {
	Level  string
	Format string
}

type OtelConfig struct {
	Exporter    string
	Endpoint    string
	ServiceName string
}

type IngestConfig struct {
	Encoding       string
	MaxUploadBytes int64
}

type SchedulerConfig struct {
	Interval         time.Duration
	RunRetentionDays int
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, EnvProduction)
}

// ConnString returns the connection string for the configured driver.
func (c DatabaseConfig) ConnString() string {
	if strings.TrimSpace(c.DSN) != "" {
		return c.DSN
	}
	switch c.Type {
	case DBTypeMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			c.User, c.Password, c.Host, c.Port, c.Name)
	case DBTypeSQLite:
		return c.Name + ".db"
	default:
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s search_path=%s TimeZone=UTC",
			c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Schema)
	}
}

func (c Config) validate() error {
	switch c.Database.Type {
	case DBTypePostgres, DBTypeMySQL, DBTypeSQLite:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidDatabaseType, c.Database.Type)
	}
	switch c.Otel.Exporter {
	case OtelExporterNone, OtelExporterGRPC, OtelExporterHTTP:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidOtelExporter, c.Otel.Exporter)
	}
	switch c.Ingest.Encoding {
	case EncodingUTF8, EncodingWindows1252:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidEncoding, c.Ingest.Encoding)
	}
	return nil
}
