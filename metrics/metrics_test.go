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

package metrics_test

import (
	dto "github.com/prometheus/client_model/go"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/eventbus"
	"github.com/sabouaram/fileopt/metrics"
)

func findFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

var _ = Describe("Sink", func() {
	It("counts a replaced file and accumulates its saved bytes", func() {
		bus := eventbus.New()
		s := metrics.NewSink()
		s.Attach(bus)

		eventbus.Publish(bus, eventbus.FileProcessComplete{
			Path: "a.png", OriginalSize: 100, NewSize: 40, Replaced: true, DurationMs: 20,
		})

		mfs, err := s.Registry().Gather()
		Expect(err).ToNot(HaveOccurred())

		saved := findFamily(mfs, "fileopt_bytes_saved_total")
		Expect(saved).ToNot(BeNil())
		Expect(saved.Metric[0].GetCounter().GetValue()).To(Equal(60.0))

		files := findFamily(mfs, "fileopt_files_total")
		Expect(files).ToNot(BeNil())
		Expect(files.Metric[0].GetCounter().GetValue()).To(Equal(1.0))
	})

	It("labels an error distinctly from a skip", func() {
		bus := eventbus.New()
		s := metrics.NewSink()
		s.Attach(bus)

		eventbus.Publish(bus, eventbus.FileProcessError{Path: "b.pdf", Error: "boom"})
		eventbus.Publish(bus, eventbus.FileProcessSkipped{Path: "c.gz", Reason: "no_improvement"})

		mfs, err := s.Registry().Gather()
		Expect(err).ToNot(HaveOccurred())

		files := findFamily(mfs, "fileopt_files_total")
		Expect(files).ToNot(BeNil())
		Expect(files.Metric).To(HaveLen(2))
	})
})
