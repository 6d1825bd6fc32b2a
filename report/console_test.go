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

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/model"
	"github.com/sabouaram/fileopt/report"
)

var _ = Describe("Console rendering", func() {
	It("prints a line per result and a totals footer", func() {
		var buf bytes.Buffer
		c := report.NewConsole(&buf)

		c.PrintSummary([]model.Result{
			{Path: "a.png", SizeBefore: 100, SizeAfter: 40, Success: true, Replaced: true},
			{Path: "b.gz", Success: true, SkipReason: "no_improvement"},
			{Path: "c.pdf", Success: false, ErrorMsg: "boom"},
		}, nil)

		out := buf.String()
		Expect(out).To(ContainSubstring("a.png"))
		Expect(out).To(ContainSubstring("no_improvement"))
		Expect(out).To(ContainSubstring("boom"))
		Expect(out).To(ContainSubstring("1 replaced, 1 skipped, 1 failed"))
	})
})
