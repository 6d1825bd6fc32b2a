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

package pool_test

import (
	"context"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/pool"
)

var _ = Describe("Pool", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	It("runs submitted tasks and reports idle once all complete", func() {
		p := pool.New(ctx, 2)
		var done int32

		for i := 0; i < 10; i++ {
			Expect(p.Submit(func(context.Context) {
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&done, 1)
			})).ToNot(HaveOccurred())
		}

		p.WaitIdle()
		Expect(atomic.LoadInt32(&done)).To(Equal(int32(10)))
	})

	It("never runs more than Size tasks at once", func() {
		p := pool.New(ctx, 3)
		var current, max int32

		for i := 0; i < 20; i++ {
			Expect(p.Submit(func(context.Context) {
				n := atomic.AddInt32(&current, 1)
				for {
					old := atomic.LoadInt32(&max)
					if n <= old || atomic.CompareAndSwapInt32(&max, old, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&current, -1)
			})).ToNot(HaveOccurred())
		}

		p.WaitIdle()
		Expect(atomic.LoadInt32(&max)).To(BeNumerically("<=", 3))
	})

	It("rejects submissions after Stop", func() {
		p := pool.New(ctx, 1)
		p.Stop()

		err := p.Submit(func(context.Context) {})
		Expect(err).To(HaveOccurred())

		fe, ok := err.(ferrors.Error)
		Expect(ok).To(BeTrue())
		Expect(fe.Is(ferrors.PoolStoppedCode)).To(BeTrue())
	})

	It("WaitIdle can be called multiple times", func() {
		p := pool.New(ctx, 2)
		Expect(p.Submit(func(context.Context) {})).ToNot(HaveOccurred())
		p.WaitIdle()
		p.WaitIdle()
	})

	It("DefaultSize is always at least 1", func() {
		Expect(pool.DefaultSize()).To(BeNumerically(">=", 1))
	})
})
