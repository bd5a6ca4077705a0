// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ConsoleMetrics records status toggles and reference lookups
type ConsoleMetrics struct {
	toggles        *prometheus.CounterVec
	lookups        *prometheus.CounterVec
	lookupDuration *prometheus.HistogramVec
	wsClients      prometheus.Gauge
}

func NewConsoleMetrics() *ConsoleMetrics {
	return &ConsoleMetrics{
		toggles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_status_toggle_total",
				Help: "Account status toggle attempts by result",
			},
			[]string{"result"},
		),
		lookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_resolver_lookups_total",
				Help: "Reference lookups by kind and result",
			},
			[]string{"kind", "result"},
		),
		lookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "console_resolver_lookup_duration_seconds",
				Help:    "Duration of reference lookups in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
			[]string{"kind"},
		),
		wsClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "console_ws_clients",
				Help: "Connected websocket clients",
			},
		),
	}
}

// Collectors returns every collector for registration, none for a nil receiver
func (m *ConsoleMetrics) Collectors() []prometheus.Collector {
	if m == nil {
		return nil
	}
	return []prometheus.Collector{m.toggles, m.lookups, m.lookupDuration, m.wsClients}
}

func (m *ConsoleMetrics) ObserveToggle(result string) {
	if m == nil {
		return
	}
	m.toggles.WithLabelValues(result).Inc()
}

func (m *ConsoleMetrics) ObserveLookup(kind, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.lookups.WithLabelValues(kind, result).Inc()
	m.lookupDuration.WithLabelValues(kind).Observe(elapsed.Seconds())
}

func (m *ConsoleMetrics) SetWsClients(n int) {
	if m == nil {
		return
	}
	m.wsClients.Set(float64(n))
}
