// Copyright (c) 2025 The Solvault developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package metrics is a singleton facade over the metrics backend. It
// defaults to a no-op implementation so importing packages can meter
// unconditionally; a process that wants real numbers installs the
// prometheus backend at startup.
package metrics

import "net/http"

var service Metrics = &noopMetrics{}

// Metrics is the interface a backend implements.
type Metrics interface {
	GetOrCreateCountMeter(name string) CountMeter
	GetOrCreateCountVecMeter(name string, labels []string) CountVecMeter
	GetOrCreateGaugeMeter(name string) GaugeMeter
	GetOrCreateHandler() http.Handler
}

// CountMeter is a monotonically increasing counter.
type CountMeter interface {
	Add(int64)
}

// CountVecMeter is a counter with labels.
type CountVecMeter interface {
	AddWithLabel(int64, map[string]string)
}

// GaugeMeter is a value that can go up and down.
type GaugeMeter interface {
	Set(int64)
}

func Counter(name string) CountMeter { return service.GetOrCreateCountMeter(name) }

func CounterVec(name string, labels []string) CountVecMeter {
	return service.GetOrCreateCountVecMeter(name, labels)
}

func Gauge(name string) GaugeMeter { return service.GetOrCreateGaugeMeter(name) }

// HTTPHandler returns the scrape handler of the installed backend, or
// nil for the no-op backend.
func HTTPHandler() http.Handler { return service.GetOrCreateHandler() }

type noopMetrics struct{}

func (n *noopMetrics) GetOrCreateCountMeter(string) CountMeter { return noopMeter{} }
func (n *noopMetrics) GetOrCreateCountVecMeter(string, []string) CountVecMeter {
	return noopMeter{}
}
func (n *noopMetrics) GetOrCreateGaugeMeter(string) GaugeMeter { return noopMeter{} }
func (n *noopMetrics) GetOrCreateHandler() http.Handler        { return nil }

type noopMeter struct{}

func (noopMeter) Add(int64) {}
func (noopMeter) AddWithLabel(int64, map[string]string) {}
func (noopMeter) Set(int64) {}
