// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the counters of one run. Methods may be called on a nil receiver
type Metrics struct {
	Registry     *prometheus.Registry
	steps        *prometheus.CounterVec
	iterations   *prometheus.CounterVec
	nonConverged *prometheus.CounterVec
	passes       prometheus.Gauge
	duration     prometheus.Gauge
}

// NewMetrics returns metrics registered in a new registry
func NewMetrics() *Metrics {
	o := &Metrics{Registry: prometheus.NewRegistry()}
	o.steps = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siteresp",
		Name:      "steps_total",
		Help:      "Number of computed time steps.",
	}, []string{"dir"})
	o.iterations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siteresp",
		Name:      "iterations_total",
		Help:      "Number of iterations over all time steps.",
	}, []string{"dir"})
	o.nonConverged = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "siteresp",
		Name:      "nonconverged_steps_total",
		Help:      "Number of steps accepted without convergence.",
	}, []string{"dir"})
	o.passes = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "siteresp",
		Name:      "passes",
		Help:      "Number of passes through the input motion.",
	})
	o.duration = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "siteresp",
		Name:      "run_duration_seconds",
		Help:      "Wall time of the last run.",
	})
	o.Registry.MustRegister(o.steps, o.iterations, o.nonConverged, o.passes, o.duration)
	return o
}

// Step counts one step with nit iterations
func (o *Metrics) Step(dir string, nit int) {
	if o == nil {
		return
	}
	o.steps.WithLabelValues(dir).Inc()
	o.iterations.WithLabelValues(dir).Add(float64(nit))
}

// NonConverged counts one non-converged step
func (o *Metrics) NonConverged(dir string) {
	if o == nil {
		return
	}
	o.nonConverged.WithLabelValues(dir).Inc()
}

// Passes sets the number of passes
func (o *Metrics) Passes(n int) {
	if o == nil {
		return
	}
	o.passes.Set(float64(n))
}

// Duration sets the run duration
func (o *Metrics) Duration(d time.Duration) {
	if o == nil {
		return
	}
	o.duration.Set(d.Seconds())
}

// WriteFile writes the metrics in the text exposition format
func (o *Metrics) WriteFile(filename string) error {
	if o == nil {
		return nil
	}
	return prometheus.WriteToTextfile(filename, o.Registry)
}
