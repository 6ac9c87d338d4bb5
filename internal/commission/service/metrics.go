package service

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	orders    *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	fallbacks *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		orders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commissions",
			Name:      "orders_computed_total",
			Help:      "Orders that went through the commission engine.",
		}, []string{"operation"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commissions",
			Name:      "rejected_total",
			Help:      "Proposal rows or orders left out of a computation.",
		}, []string{"operation", "reason"}),
		fallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "commissions",
			Name:      "fallback_rates_total",
			Help:      "Orders rated with the built-in fallback schedule.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "commissions",
			Name:      "operation_duration_seconds",
			Help:      "Duration of commission computations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	m.orders = register(reg, m.orders)
	m.rejected = register(reg, m.rejected)
	m.fallbacks = register(reg, m.fallbacks)
	m.duration = register(reg, m.duration)
	return m
}

// register returns the existing collector when an identical one is already
// registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if reg == nil {
		return c
	}
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}
