package observability

import (
	"github.com/railzwaylabs/commissions/internal/config"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LoggerResult struct {
	fx.Out

	Logger *zap.Logger
	Level  zap.AtomicLevel
}

// NewLogger builds the process logger. The returned level can be changed at
// runtime without rebuilding the logger.
func NewLogger(cfg config.Config) (LoggerResult, error) {
	level := zap.NewAtomicLevelAt(parseLevel(cfg.Log.Level))

	var zcfg zap.Config
	if cfg.IsProduction() || cfg.Log.Format == "json" {
		zcfg = zap.NewProductionConfig()
		zcfg.EncoderConfig.TimeKey = "ts"
		zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = level

	logger, err := zcfg.Build(zap.Fields(
		zap.String("service", cfg.AppName),
		zap.String("version", cfg.AppVersion),
	))
	if err != nil {
		return LoggerResult{}, err
	}
	return LoggerResult{Logger: logger, Level: level}, nil
}

func parseLevel(raw string) zapcore.Level {
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// WatchLogLevel applies log level changes made to the watched config file.
func WatchLogLevel(v *viper.Viper, level zap.AtomicLevel, log *zap.Logger) {
	config.OnChange(v, func(cfg config.Config, err error) {
		if err != nil {
			log.Warn("config reload rejected", zap.Error(err))
			return
		}
		next := parseLevel(cfg.Log.Level)
		if next == level.Level() {
			return
		}
		level.SetLevel(next)
		log.Info("log level changed", zap.String("level", next.String()))
	})
}
