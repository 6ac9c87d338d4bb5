package config

import (
	"fmt"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("app_name", "commissions")
	v.SetDefault("app_version", "dev")
	v.SetDefault("app_env", EnvDevelopment)

	v.SetDefault("http_addr", ":8080")
	v.SetDefault("http_cors_allowed_origins", "*")

	v.SetDefault("db_type", DBTypePostgres)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "commissions")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("db_schema", "public")
	v.SetDefault("db_dsn", "")
	v.SetDefault("db_max_open_conns", 20)
	v.SetDefault("db_max_idle_conns", 5)

	v.SetDefault("redis_addr", "")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("rate_tier_cache_ttl", "5m")

	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("otel_exporter", OtelExporterNone)
	v.SetDefault("otel_endpoint", "localhost:4317")
	v.SetDefault("otel_service_name", "")

	v.SetDefault("ingest_encoding", EncodingUTF8)
	v.SetDefault("ingest_max_upload_bytes", 16<<20)

	v.SetDefault("scheduler_interval", "1h")
	v.SetDefault("scheduler_run_retention_days", 90)
}

// NewViper builds the configuration source. Values come from the process
// environment, a local .env file and, when CONFIG_FILE is set, a YAML file.
func NewViper() (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if file := strings.TrimSpace(v.GetString("config_file")); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}
	return v, nil
}

// FromViper decodes and validates the typed configuration.
func FromViper(v *viper.Viper) (Config, error) {
	cfg := Config{
		AppName:     v.GetString("app_name"),
		AppVersion:  v.GetString("app_version"),
		Environment: strings.ToLower(strings.TrimSpace(v.GetString("app_env"))),
		ConfigFile:  v.ConfigFileUsed(),
		HTTP: HTTPConfig{
			Addr:               v.GetString("http_addr"),
			CORSAllowedOrigins: splitList(v.GetString("http_cors_allowed_origins")),
		},
		Database: DatabaseConfig{
			Type:         strings.ToLower(strings.TrimSpace(v.GetString("db_type"))),
			Host:         v.GetString("db_host"),
			Port:         v.GetString("db_port"),
			User:         v.GetString("db_user"),
			Password:     v.GetString("db_password"),
			Name:         v.GetString("db_name"),
			SSLMode:      v.GetString("db_sslmode"),
			Schema:       v.GetString("db_schema"),
			DSN:          v.GetString("db_dsn"),
			MaxOpenConns: v.GetInt("db_max_open_conns"),
			MaxIdleConns: v.GetInt("db_max_idle_conns"),
		},
		Redis: RedisConfig{
			Addr:        v.GetString("redis_addr"),
			Password:    v.GetString("redis_password"),
			DB:          v.GetInt("redis_db"),
			RateTierTTL: v.GetDuration("rate_tier_cache_ttl"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log_format"))),
		},
		Otel: OtelConfig{
			Exporter:    strings.ToLower(strings.TrimSpace(v.GetString("otel_exporter"))),
			Endpoint:    v.GetString("otel_endpoint"),
			ServiceName: v.GetString("otel_service_name"),
		},
		Ingest: IngestConfig{
			Encoding:       strings.ToLower(strings.TrimSpace(v.GetString("ingest_encoding"))),
			MaxUploadBytes: v.GetInt64("ingest_max_upload_bytes"),
		},
		Scheduler: SchedulerConfig{
			Interval:         v.GetDuration("scheduler_interval"),
			RunRetentionDays: v.GetInt("scheduler_run_retention_days"),
		},
	}
	if cfg.Otel.ServiceName == "" {
		cfg.Otel.ServiceName = cfg.AppName
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads the configuration once without watching for changes.
func Load() (Config, error) {
	v, err := NewViper()
	if err != nil {
		return Config{}, err
	}
	return FromViper(v)
}

// OnChange re-decodes the configuration every time the config file is
// written. It is a no-op when no config file is in use.
func OnChange(v *viper.Viper, fn func(Config, error)) {
	if v == nil || fn == nil || v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		fn(FromViper(v))
	})
	v.WatchConfig()
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
