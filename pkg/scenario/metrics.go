package scenario

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	steps    *prometheus.CounterVec
	failures prometheus.Counter
	runs     prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) (*metrics, error) {
	m := &metrics{
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "scenario_steps_total",
			Help: "The total number of executed scenario steps",
		}, []string{"op"}),
		failures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scenario_failures_total",
			Help: "The total number of failed scenario runs",
		}),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "scenario_runs_total",
			Help: "The total number of scenario runs",
		}),
	}
	if reg == nil {
		return m, nil
	}

	var err error
	if m.steps, err = register(reg, m.steps); err != nil {
		return nil, err
	}
	if m.failures, err = register(reg, m.failures); err != nil {
		return nil, err
	}
	if m.runs, err = register(reg, m.runs); err != nil {
		return nil, err
	}
	return m, nil
}

// register registers c, or returns the collector that is already
// registered under the same descriptor.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}
