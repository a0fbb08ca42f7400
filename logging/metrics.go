// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// serviceMetrics holds the dispatch collectors. A nil *serviceMetrics
// records nothing.
type serviceMetrics struct {
	records       *prometheus.CounterVec
	handlerErrors *prometheus.CounterVec
	loggers       prometheus.Gauge
}

func newServiceMetrics(reg prometheus.Registerer) (*serviceMetrics, error) {
	m := &serviceMetrics{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logservice",
			Name:      "records_total",
			Help:      "Records emitted by handlers, by handler and level.",
		}, []string{"handler", "level"}),
		handlerErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logservice",
			Name:      "handler_errors_total",
			Help:      "Handler emit failures and panics, by handler.",
		}, []string{"handler"}),
		loggers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "logservice",
			Name:      "loggers",
			Help:      "Number of named loggers in the registry.",
		}),
	}

	var err error
	if m.records, err = register(reg, m.records); err != nil {
		return nil, err
	}
	if m.handlerErrors, err = register(reg, m.handlerErrors); err != nil {
		return nil, err
	}
	if m.loggers, err = register(reg, m.loggers); err != nil {
		return nil, err
	}

	return m, nil
}

// register registers c, reusing the existing collector when an identical
// one is already registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

func (m *serviceMetrics) recordEmitted(handler string, level Level) {
	if m == nil {
		return
	}
	m.records.WithLabelValues(handler, level.String()).Inc()
}

func (m *serviceMetrics) recordHandlerError(handler string) {
	if m == nil {
		return
	}
	m.handlerErrors.WithLabelValues(handler).Inc()
}

func (m *serviceMetrics) setLoggers(n int) {
	if m == nil {
		return
	}
	m.loggers.Set(float64(n))
}
