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

package pool

import (
	"os"
	"sync/atomic"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// WithProgress wires an mpb bar tracking how many of total leaf tasks have
// completed, mirroring the reference library's semaphore.New(ctx, n,
// withProgress bool) constructor: progress is opt-in and, when off, the
// pool carries no mpb dependency at runtime.
func (p *Pool) WithProgress(total int) *mpb.Progress {
	prog := mpb.New(mpb.WithOutput(os.Stderr))
	var done int64

	bar := prog.AddBar(int64(total),
		mpb.PrependDecorators(decor.Name("recompress")),
		mpb.AppendDecorators(decor.CountersNoUnit("%d / %d")),
	)

	p.OnTaskStop(func() {
		n := atomic.AddInt64(&done, 1)
		bar.SetCurrent(n)
	})

	return prog
}
