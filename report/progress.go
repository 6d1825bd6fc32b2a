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

package report

import (
	"io"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/sabouaram/fileopt/eventbus"
)

// Progress drives a single mpb bar across Phase 2 and Phase 3, incrementing
// once per terminal event the bus publishes. It is optional: the CLI skips
// it when --quiet is set.
type Progress struct {
	p   *mpb.Progress
	bar *mpb.Bar
}

// NewProgress builds a progress bar tracking total discrete units of work
// (scheduled files plus containers to finalize), rendering to w.
func NewProgress(w io.Writer, total int, name string) *Progress {
	p := mpb.New(mpb.WithOutput(w), mpb.WithWidth(48))
	bar := p.AddBar(int64(total),
		mpb.PrependDecorators(decor.Name(name), decor.CountersNoUnit("%d / %d")),
		mpb.AppendDecorators(decor.Percentage()),
	)
	return &Progress{p: p, bar: bar}
}

// Attach subscribes the bar to every terminal event so each processed
// file or finalized container advances it by one.
func (pr *Progress) Attach(bus *eventbus.Bus) {
	eventbus.Subscribe(bus, func(eventbus.FileProcessComplete) { pr.bar.Increment() })
	eventbus.Subscribe(bus, func(eventbus.FileProcessError) { pr.bar.Increment() })
	eventbus.Subscribe(bus, func(eventbus.FileProcessSkipped) { pr.bar.Increment() })
	eventbus.Subscribe(bus, func(eventbus.ContainerFinalizeComplete) { pr.bar.Increment() })
	eventbus.Subscribe(bus, func(eventbus.ContainerFinalizeError) { pr.bar.Increment() })
}

// Wait blocks until the bar has rendered its final frame.
func (pr *Progress) Wait() {
	pr.p.Wait()
}
