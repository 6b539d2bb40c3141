// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package metrics

import (
	"net/http"
	"sort"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "solvault"

// InitializePrometheusMetrics installs the prometheus backend. Meters
// created before initialization stay no-op; create meters after calling
// this.
func InitializePrometheusMetrics() {
	if _, ok := service.(*prometheusMetrics); ok {
		return
	}
	service = newPrometheusMetrics()
}

type prometheusMetrics struct {
	mu       sync.Mutex
	counters map[string]prometheus.Counter
	vectors  map[string]*prometheus.CounterVec
	gauges   map[string]prometheus.Gauge
}

func newPrometheusMetrics() *prometheusMetrics {
	return &prometheusMetrics{
		counters: make(map[string]prometheus.Counter),
		vectors:  make(map[string]*prometheus.CounterVec),
		gauges:   make(map[string]prometheus.Gauge),
	}
}

func (p *prometheusMetrics) GetOrCreateCountMeter(name string) CountMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	c, ok := p.counters[name]
	if !ok {
		c = prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name})
		prometheus.MustRegister(c)
		p.counters[name] = c
	}
	return &promCounter{c}
}

func (p *prometheusMetrics) GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	// label order is normalized so AddWithLabel can look values up by
	// sorted key order
	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)
	key := name + ":" + strings.Join(sorted, ",")
	v, ok := p.vectors[key]
	if !ok {
		v = prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name}, sorted)
		prometheus.MustRegister(v)
		p.vectors[key] = v
	}
	return &promCounterVec{v}
}

func (p *prometheusMetrics) GetOrCreateGaugeMeter(name string) GaugeMeter {
	p.mu.Lock()
	defer p.mu.Unlock()
	g, ok := p.gauges[name]
	if !ok {
		g = prometheus.NewGauge(prometheus.GaugeOpts{Namespace: namespace, Name: name})
		prometheus.MustRegister(g)
		p.gauges[name] = g
	}
	return &promGauge{g}
}

func (p *prometheusMetrics) GetOrCreateHandler() http.Handler {
	return promhttp.Handler()
}

type promCounter struct {
	c prometheus.Counter
}

func (p *promCounter) Add(v int64) { p.c.Add(float64(v)) }

type promCounterVec struct {
	v *prometheus.CounterVec
}

func (p *promCounterVec) AddWithLabel(v int64, labels map[string]string) {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	values := make([]string, 0, len(keys))
	for _, k := range keys {
		values = append(values, labels[k])
	}
	p.v.WithLabelValues(values...).Add(float64(v))
}

type promGauge struct {
	g prometheus.Gauge
}

func (p *promGauge) Set(v int64) { p.g.Set(float64(v)) }
