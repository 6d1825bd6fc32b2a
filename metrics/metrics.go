/*
 * MIT License
 *
 * Copyright (c) 2026 The fileopt Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package metrics attaches a Prometheus sink to the event bus, for
// operators running fileopt as a long-lived batch job under a scrape
// target rather than a one-shot CLI invocation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sabouaram/fileopt/eventbus"
)

// Sink registers a handful of counters and a duration histogram on a
// dedicated Registry, then subscribes them to the bus's terminal events.
// A fresh Sink should be built per process; registering the same Sink
// twice on one prometheus.Registry panics, matching client_golang's own
// contract.
type Sink struct {
	registry *prometheus.Registry

	filesTotal     *prometheus.CounterVec
	bytesSaved     prometheus.Counter
	processSeconds prometheus.Histogram
	containers     *prometheus.CounterVec
}

// NewSink builds and registers every metric on a fresh Registry.
func NewSink() *Sink {
	reg := prometheus.NewRegistry()

	s := &Sink{
		registry: reg,
		filesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fileopt",
			Name:      "files_total",
			Help:      "Files processed in Phase 2, labeled by outcome.",
		}, []string{"outcome"}),
		bytesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "fileopt",
			Name:      "bytes_saved_total",
			Help:      "Cumulative bytes freed by committed recompressions.",
		}),
		processSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "fileopt",
			Name:      "process_duration_seconds",
			Help:      "Wall-clock duration of a single leaf Processor.Recompress call.",
			Buckets:   prometheus.DefBuckets,
		}),
		containers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fileopt",
			Name:      "containers_total",
			Help:      "Containers finalized in Phase 3, labeled by outcome.",
		}, []string{"outcome"}),
	}

	reg.MustRegister(s.filesTotal, s.bytesSaved, s.processSeconds, s.containers)
	return s
}

// Registry exposes the underlying prometheus.Registry so the caller can
// mount promhttp.HandlerFor on it.
func (s *Sink) Registry() *prometheus.Registry {
	return s.registry
}

// Attach subscribes every counter and the histogram to bus.
func (s *Sink) Attach(bus *eventbus.Bus) {
	eventbus.Subscribe(bus, func(e eventbus.FileProcessComplete) {
		s.filesTotal.WithLabelValues("replaced").Inc()
		s.processSeconds.Observe(float64(e.DurationMs) / 1000)
		if e.Replaced {
			if saved := e.OriginalSize - e.NewSize; saved > 0 {
				s.bytesSaved.Add(float64(saved))
			}
		}
	})
	eventbus.Subscribe(bus, func(eventbus.FileProcessError) {
		s.filesTotal.WithLabelValues("error").Inc()
	})
	eventbus.Subscribe(bus, func(eventbus.FileProcessSkipped) {
		s.filesTotal.WithLabelValues("skipped").Inc()
	})
	eventbus.Subscribe(bus, func(e eventbus.ContainerFinalizeComplete) {
		s.containers.WithLabelValues("finalized").Inc()
	})
	eventbus.Subscribe(bus, func(eventbus.ContainerFinalizeError) {
		s.containers.WithLabelValues("error").Inc()
	})
}
