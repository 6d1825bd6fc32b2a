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

package report_test

import (
	"bytes"
	"encoding/csv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/model"
	"github.com/sabouaram/fileopt/report"
)

var _ = Describe("CSV rendering", func() {
	It("writes a header and one row per result with saved bytes computed", func() {
		var buf bytes.Buffer
		results := []model.Result{
			{Path: "a.png", Mime: "image/png", SizeBefore: 100, SizeAfter: 40, Success: true, Replaced: true, DurationMs: 12},
			{Path: "b.gz", Mime: "application/gzip", Success: true, SkipReason: "no_improvement"},
		}

		Expect(report.WriteFileCSV(&buf, results)).To(Succeed())

		rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		Expect(err).ToNot(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[0][0]).To(Equal("path"))
		Expect(rows[1][4]).To(Equal("60"))
		Expect(rows[2][8]).To(Equal("no_improvement"))
	})

	It("writes container rows with format names", func() {
		var buf bytes.Buffer
		results := []model.ContainerResult{
			{Filename: "x.zip", Format: model.Zip, SizeBefore: 1000, SizeAfter: 800, Success: true},
		}

		Expect(report.WriteContainerCSV(&buf, results)).To(Succeed())

		rows, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
		Expect(err).ToNot(HaveOccurred())
		Expect(rows[1][1]).To(Equal("zip"))
		Expect(rows[1][4]).To(Equal("200"))
	})
})
