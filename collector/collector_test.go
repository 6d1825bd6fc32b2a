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

package collector_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/collector"
	"github.com/sabouaram/fileopt/eventbus"
)

var _ = Describe("Collector", func() {
	It("records a successful, replaced file result", func() {
		bus := eventbus.New()
		c := collector.New()
		c.Attach(bus)

		eventbus.Publish(bus, eventbus.FileProcessComplete{
			Path: "a.png", OriginalSize: 100, NewSize: 40, Replaced: true, DurationMs: 5,
		})

		Expect(c.Results()).To(HaveLen(1))
		r := c.Results()[0]
		Expect(r.Success).To(BeTrue())
		Expect(r.Replaced).To(BeTrue())
		Expect(r.SavedBytes()).To(Equal(int64(60)))
	})

	It("records an error result without counting it as replaced", func() {
		bus := eventbus.New()
		c := collector.New()
		c.Attach(bus)

		eventbus.Publish(bus, eventbus.FileProcessError{Path: "b.jpg", Error: "boom"})

		Expect(c.Results()).To(HaveLen(1))
		r := c.Results()[0]
		Expect(r.Success).To(BeFalse())
		Expect(r.ErrorMsg).To(Equal("boom"))
		Expect(r.SavedBytes()).To(Equal(int64(0)))
	})

	It("records a skipped result with its reason", func() {
		bus := eventbus.New()
		c := collector.New()
		c.Attach(bus)

		eventbus.Publish(bus, eventbus.FileProcessSkipped{Path: "c.gz", Reason: "no_improvement"})

		Expect(c.Results()).To(HaveLen(1))
		Expect(c.Results()[0].SkipReason).To(Equal("no_improvement"))
	})

	It("records container outcomes separately from file outcomes", func() {
		bus := eventbus.New()
		c := collector.New()
		c.Attach(bus)

		eventbus.Publish(bus, eventbus.ContainerFinalizeComplete{Path: "d.zip", FinalSize: 900})
		eventbus.Publish(bus, eventbus.ContainerFinalizeError{Path: "e.zip", Error: "write failed"})

		Expect(c.Results()).To(BeEmpty())
		Expect(c.ContainerResults()).To(HaveLen(2))
		Expect(c.ContainerResults()[0].Success).To(BeTrue())
		Expect(c.ContainerResults()[1].Success).To(BeFalse())
	})
})
