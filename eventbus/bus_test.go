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

package eventbus_test

import (
	"sync"
	"sync/atomic"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/eventbus"
)

var _ = Describe("Bus", func() {
	It("dispatches only to handlers registered for the matching type", func() {
		b := eventbus.New()

		var gotStart, gotComplete int32

		eventbus.Subscribe(b, func(eventbus.FileAnalyzeStart) {
			atomic.AddInt32(&gotStart, 1)
		})
		eventbus.Subscribe(b, func(eventbus.FileAnalyzeComplete) {
			atomic.AddInt32(&gotComplete, 1)
		})

		eventbus.Publish(b, eventbus.FileAnalyzeStart{Path: "a.png"})

		Expect(atomic.LoadInt32(&gotStart)).To(Equal(int32(1)))
		Expect(atomic.LoadInt32(&gotComplete)).To(Equal(int32(0)))
	})

	It("invokes handlers for the same type in subscription order", func() {
		b := eventbus.New()
		var order []int

		eventbus.Subscribe(b, func(eventbus.FileProcessComplete) { order = append(order, 1) })
		eventbus.Subscribe(b, func(eventbus.FileProcessComplete) { order = append(order, 2) })
		eventbus.Subscribe(b, func(eventbus.FileProcessComplete) { order = append(order, 3) })

		eventbus.Publish(b, eventbus.FileProcessComplete{Path: "x"})

		Expect(order).To(Equal([]int{1, 2, 3}))
	})

	It("allows multiple handlers for the same event type", func() {
		b := eventbus.New()
		count := 0

		eventbus.Subscribe(b, func(eventbus.ContainerFinalizeStart) { count++ })
		eventbus.Subscribe(b, func(eventbus.ContainerFinalizeStart) { count++ })

		eventbus.Publish(b, eventbus.ContainerFinalizeStart{Path: "a.zip"})

		Expect(count).To(Equal(2))
	})

	It("serializes concurrent publishes so handler state needs no extra locking", func() {
		b := eventbus.New()
		seen := make([]string, 0, 100)

		eventbus.Subscribe(b, func(e eventbus.FileProcessComplete) {
			seen = append(seen, e.Path)
		})

		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				eventbus.Publish(b, eventbus.FileProcessComplete{Path: "p"})
			}()
		}
		wg.Wait()

		Expect(seen).To(HaveLen(100))
	})
})
