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

// Package pool implements a bounded worker pool: each submitted leaf task
// runs on its own goroutine, and a weighted semaphore bounds how many of
// them execute at once, the way the reference library's own semaphore
// package gates concurrent work.
package pool

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/sabouaram/fileopt/internal/ferrors"
)

// Task is an independent, side-effecting unit of work. Tasks must not
// depend on one another; the pool makes no ordering guarantee between them.
type Task func(ctx context.Context)

// Pool is a bounded parallel executor for independent tasks.
type Pool struct {
	ctx    context.Context
	cancel context.CancelFunc
	sem    *semaphore.Weighted
	n      int64

	mu       sync.Mutex
	stopped  bool
	inFlight int

	wg   sync.WaitGroup
	idle *sync.Cond

	onStart func()
	onStop  func()
}

// New builds a Pool with n worker slots. n is clamped to at least 1.
func New(ctx context.Context, n int) *Pool {
	if n < 1 {
		n = 1
	}
	c, cancel := context.WithCancel(ctx)
	p := &Pool{
		ctx:    c,
		cancel: cancel,
		sem:    semaphore.NewWeighted(int64(n)),
		n:      int64(n),
	}
	p.idle = sync.NewCond(&p.mu)
	return p
}

// OnTaskStart/OnTaskStop let an observer (e.g. a progress bar) react to
// worker lifecycle without the pool depending on any rendering library.
func (p *Pool) OnTaskStart(f func()) { p.onStart = f }
func (p *Pool) OnTaskStop(f func())  { p.onStop = f }

// Submit enqueues task for execution on a pool goroutine. It returns
// ferrors.PoolStoppedCode if Stop has already been called.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return ferrors.New(ferrors.PoolStoppedCode, "pool stopped")
	}
	p.inFlight++
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(task)

	return nil
}

func (p *Pool) run(task Task) {
	defer p.wg.Done()
	defer p.taskDone()

	if err := p.sem.Acquire(p.ctx, 1); err != nil {
		return
	}
	defer p.sem.Release(1)

	if p.onStart != nil {
		p.onStart()
	}
	defer func() {
		if p.onStop != nil {
			p.onStop()
		}
	}()

	task(p.ctx)
}

func (p *Pool) taskDone() {
	p.mu.Lock()
	p.inFlight--
	if p.inFlight == 0 {
		p.idle.Broadcast()
	}
	p.mu.Unlock()
}

// WaitIdle blocks until the queue is empty and no worker is executing. It
// may be called multiple times.
func (p *Pool) WaitIdle() {
	p.mu.Lock()
	for p.inFlight > 0 {
		p.idle.Wait()
	}
	p.mu.Unlock()
}

// Stop signals the pool to reject further submissions and waits for every
// already-submitted task to finish; it does not cancel tasks already
// running.
func (p *Pool) Stop() {
	p.mu.Lock()
	p.stopped = true
	p.mu.Unlock()

	p.wg.Wait()
	p.cancel()
}

// Size returns the configured number of worker slots.
func (p *Pool) Size() int {
	return int(p.n)
}
