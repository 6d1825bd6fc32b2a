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

// Package orchestrator drives the three-phase batch over a list of input
// paths: a single-threaded analyze pass that resolves a Processor per path
// and either extracts a container or schedules a leaf recompress, a
// parallel process pass that runs scheduled recompressions on the worker
// pool, and a single-threaded finalize pass that rebuilds every container
// depth-first, children before parents.
package orchestrator

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sabouaram/fileopt/container"
	"github.com/sabouaram/fileopt/eventbus"
	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/internal/mimetype"
	"github.com/sabouaram/fileopt/logger"
	"github.com/sabouaram/fileopt/model"
	"github.com/sabouaram/fileopt/pool"
	"github.com/sabouaram/fileopt/processor"
)

// Orchestrator wires together the Registry, Pool and Bus into the three
// phases described by the package doc. It holds no per-run state itself;
// Run builds a fresh run for each invocation so a single Orchestrator can
// be reused across batches.
type Orchestrator struct {
	registry *processor.Registry
	pool     *pool.Pool
	bus      *eventbus.Bus
	log      logger.Logger
	opts     processor.Options
}

// New builds an Orchestrator. registry and bus are expected to already have
// every Processor (leaf codecs and container engines) and subscriber
// (Collector, metrics sink) wired in by the caller.
func New(registry *processor.Registry, p *pool.Pool, bus *eventbus.Bus, log logger.Logger, opts processor.Options) *Orchestrator {
	return &Orchestrator{registry: registry, pool: p, bus: bus, log: log, opts: opts}
}

// run carries the state local to one Run call: the work list Phase 2
// consumes and the finalize stack Phase 3 drains. Neither is touched
// concurrently across phases, so neither needs a lock.
type run struct {
	workList      []string
	finalizeStack []*model.ContainerJob
}

// Run executes Phase 1, Phase 2 and Phase 3 in sequence over paths.
func (o *Orchestrator) Run(ctx context.Context, paths []string) {
	r := &run{}

	for _, p := range paths {
		o.analyze(r, p)
	}

	o.process(ctx, r)
	o.pool.WaitIdle()

	o.finalize(r)
}

// analyze implements Phase 1 for a single path: resolve a Processor, then
// either extract (pushing the resulting job onto the finalize stack and
// recursing into everything it produced) or schedule a leaf recompress, or
// publish a skip.
func (o *Orchestrator) analyze(r *run, path string) {
	eventbus.Publish(o.bus, eventbus.FileAnalyzeStart{Path: path})

	mime := mimetype.Sniff(path)
	ext := filepath.Ext(path)
	p := o.registry.Resolve(mime, ext)

	if p == nil {
		eventbus.Publish(o.bus, eventbus.FileAnalyzeSkipped{Path: path, Reason: ferrors.ProcessorMissing.String()})
		return
	}

	switch {
	case p.CanExtract():
		job, err := p.Prepare(path, o.opts)
		if err != nil {
			eventbus.Publish(o.bus, eventbus.FileAnalyzeError{Path: path, Error: err.Error()})
			return
		}

		r.finalizeStack = append(r.finalizeStack, flattenPreOrder(job)...)
		eventbus.Publish(o.bus, eventbus.FileAnalyzeComplete{Path: path, Extracted: true})

		for _, leaf := range job.AllLeaves() {
			o.analyze(r, leaf)
		}

	case p.CanRecompress():
		r.workList = append(r.workList, path)
		eventbus.Publish(o.bus, eventbus.FileAnalyzeComplete{Path: path, Scheduled: true})

	default:
		eventbus.Publish(o.bus, eventbus.FileAnalyzeSkipped{Path: path, Reason: "processor declares neither extraction nor recompression"})
	}
}

// flattenPreOrder returns job and every descendant in the tree, parent
// before children, so that appending the result to a LIFO stack and
// popping from the end later visits every job's children before the job
// itself.
func flattenPreOrder(job *model.ContainerJob) []*model.ContainerJob {
	out := []*model.ContainerJob{job}
	for _, c := range job.Children {
		out = append(out, flattenPreOrder(c)...)
	}
	return out
}

// process implements Phase 2: submit one pool task per work-list entry.
// Each task resolves its own Processor rather than closing over the one
// found in Phase 1, since Phase 1 may have resolved by MIME while a second
// lookup here is cheap and keeps the task self-contained.
func (o *Orchestrator) process(ctx context.Context, r *run) {
	for _, path := range r.workList {
		path := path
		_ = o.pool.Submit(func(ctx context.Context) {
			o.processOne(path)
		})
	}
}

func (o *Orchestrator) processOne(path string) {
	eventbus.Publish(o.bus, eventbus.FileProcessStart{Path: path})

	mime := mimetype.Sniff(path)
	ext := filepath.Ext(path)
	p := o.registry.Resolve(mime, ext)
	if p == nil || !p.CanRecompress() {
		eventbus.Publish(o.bus, eventbus.FileProcessSkipped{Path: path, Reason: "no recompressing processor resolved at process time"})
		return
	}

	tmp := path + ".tmp"
	start := time.Now()
	err := p.Recompress(path, tmp, o.opts)
	duration := time.Since(start).Milliseconds()

	if err != nil {
		_ = os.Remove(tmp)
		eventbus.Publish(o.bus, eventbus.FileProcessError{Path: path, Error: err.Error()})
		return
	}

	origInfo, origErr := os.Stat(path)
	newInfo, newErr := os.Stat(tmp)
	if origErr != nil || newErr != nil {
		_ = os.Remove(tmp)
		eventbus.Publish(o.bus, eventbus.FileProcessError{Path: path, Error: "could not stat original or candidate"})
		return
	}

	origSize := origInfo.Size()
	newSize := newInfo.Size()

	if newSize <= 0 || newSize >= origSize {
		_ = os.Remove(tmp)
		eventbus.Publish(o.bus, eventbus.FileProcessSkipped{Path: path, Reason: ferrors.NoImprovement.String()})
		return
	}

	replaced := false
	if !o.opts.DryRun {
		if err = os.Rename(tmp, path); err != nil {
			_ = os.Remove(tmp)
			eventbus.Publish(o.bus, eventbus.FileProcessError{Path: path, Error: err.Error()})
			return
		}
		replaced = true
	} else {
		_ = os.Remove(tmp)
	}

	eventbus.Publish(o.bus, eventbus.FileProcessComplete{
		Path:         path,
		OriginalSize: origSize,
		NewSize:      newSize,
		Replaced:     replaced,
		DurationMs:   duration,
	})
}

// finalize implements Phase 3: drain the stack built during Phase 1 in
// LIFO order, finalizing each ContainerJob with its own family engine. A job
// whose child failed to finalize is not rebuilt: its temp dir is removed and
// it is reported as a ContainerFinalizeError as well.
func (o *Orchestrator) finalize(r *run) {
	failed := make(map[*model.ContainerJob]bool)
	for i := len(r.finalizeStack) - 1; i >= 0; i-- {
		job := r.finalizeStack[i]

		eventbus.Publish(o.bus, eventbus.ContainerFinalizeStart{Path: job.OriginalPath})

		childFailed := false
		for _, c := range job.Children {
			childFailed = childFailed || failed[c]
		}
		if childFailed {
			_ = os.RemoveAll(job.TempDir)
			failed[job] = true
			eventbus.Publish(o.bus, eventbus.ContainerFinalizeError{Path: job.OriginalPath, Error: "a nested container failed to finalize"})
			continue
		}

		eng := container.EngineFor(job.Format)
		ok, finalSize, err := eng.Finalize(job, o.opts)
		if err != nil {
			failed[job] = true
			eventbus.Publish(o.bus, eventbus.ContainerFinalizeError{Path: job.OriginalPath, Error: err.Error()})
			continue
		}

		if !ok {
			finalSize, _ = fileSize(job.OriginalPath)
		}

		eventbus.Publish(o.bus, eventbus.ContainerFinalizeComplete{Path: job.OriginalPath, FinalSize: finalSize})
	}
}

func fileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
