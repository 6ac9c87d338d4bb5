package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/railzwaylabs/commissions/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewLoggerLevel(t *testing.T) {
	res, err := NewLogger(config.Config{AppName: "commissions", Log: config.LogConfig{Level: "warn", Format: "console"}})
	require.NoError(t, err)

	assert.Equal(t, zapcore.WarnLevel, res.Level.Level())
	assert.False(t, res.Logger.Core().Enabled(zapcore.InfoLevel))

	res.Level.SetLevel(zapcore.DebugLevel)
	assert.True(t, res.Logger.Core().Enabled(zapcore.DebugLevel))
}

func TestParseLevelFallsBackToInfo(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, parseLevel("loud"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
}

func TestNewRegistryGathers(t *testing.T) {
	res := NewRegistry()
	counter := prometheus.NewCounter(prometheus.CounterOpts{Name: "observability_test_total"})
	require.NoError(t, res.Registerer.Register(counter))
	counter.Inc()

	families, err := res.Gatherer.Gather()
	require.NoError(t, err)

	found := false
	for _, mf := range families {
		if mf.GetName() == "observability_test_total" {
			found = true
			assert.Equal(t, 1.0, mf.GetMetric()[0].GetCounter().GetValue())
		}
	}
	assert.True(t, found)
}
