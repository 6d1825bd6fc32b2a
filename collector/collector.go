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

// Package collector subscribes to the event bus's terminal events and
// accumulates the two result vectors the report renderer reads once
// Phase 3 is done.
package collector

import (
	"github.com/sabouaram/fileopt/eventbus"
	"github.com/sabouaram/fileopt/internal/mimetype"
	"github.com/sabouaram/fileopt/model"
)

// Collector is the sole writer of Results and ContainerResults. The bus
// serializes every publish across a single lock held for the duration of
// handler invocation, so the five handlers below need no locking of their
// own even though Phase 2 workers publish from multiple goroutines.
type Collector struct {
	results          []model.Result
	containerResults []model.ContainerResult
}

// New builds an empty Collector.
func New() *Collector {
	return &Collector{}
}

// Attach subscribes every terminal-event handler to bus. Call once per run.
func (c *Collector) Attach(bus *eventbus.Bus) {
	eventbus.Subscribe(bus, c.onFileComplete)
	eventbus.Subscribe(bus, c.onFileError)
	eventbus.Subscribe(bus, c.onFileSkipped)
	eventbus.Subscribe(bus, c.onContainerComplete)
	eventbus.Subscribe(bus, c.onContainerError)
}

func (c *Collector) onFileComplete(e eventbus.FileProcessComplete) {
	c.results = append(c.results, model.Result{
		Path:       e.Path,
		Mime:       mimetype.ByPath(e.Path),
		SizeBefore: e.OriginalSize,
		SizeAfter:  e.NewSize,
		Success:    true,
		Replaced:   e.Replaced,
		DurationMs: e.DurationMs,
	})
}

func (c *Collector) onFileError(e eventbus.FileProcessError) {
	c.results = append(c.results, model.Result{
		Path:     e.Path,
		Mime:     mimetype.ByPath(e.Path),
		Success:  false,
		ErrorMsg: e.Error,
	})
}

func (c *Collector) onFileSkipped(e eventbus.FileProcessSkipped) {
	c.results = append(c.results, model.Result{
		Path:       e.Path,
		Mime:       mimetype.ByPath(e.Path),
		Success:    true,
		Replaced:   false,
		SkipReason: e.Reason,
	})
}

func (c *Collector) onContainerComplete(e eventbus.ContainerFinalizeComplete) {
	c.containerResults = append(c.containerResults, model.ContainerResult{
		Filename:  e.Path,
		SizeAfter: e.FinalSize,
		Success:   true,
	})
}

func (c *Collector) onContainerError(e eventbus.ContainerFinalizeError) {
	c.containerResults = append(c.containerResults, model.ContainerResult{
		Filename: e.Path,
		Success:  false,
		ErrorMsg: e.Error,
	})
}

// Results returns every per-file outcome recorded so far. The caller must
// not mutate the returned slice.
func (c *Collector) Results() []model.Result {
	return c.results
}

// ContainerResults returns every per-container outcome recorded so far.
func (c *Collector) ContainerResults() []model.ContainerResult {
	return c.containerResults
}
