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

// Package report renders the Result Collector's two vectors as CSV (for
// machine consumption) or colorized console output (for an operator
// watching a batch run).
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/sabouaram/fileopt/model"
)

var fileColumns = []string{
	"path", "mime", "size_before", "size_after", "saved_bytes",
	"success", "replaced", "duration_ms", "skip_reason", "error",
}

// WriteFileCSV writes one row per Result to w, header first.
func WriteFileCSV(w io.Writer, results []model.Result) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(fileColumns); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Path,
			r.Mime,
			strconv.FormatInt(r.SizeBefore, 10),
			strconv.FormatInt(r.SizeAfter, 10),
			strconv.FormatInt(r.SavedBytes(), 10),
			strconv.FormatBool(r.Success),
			strconv.FormatBool(r.Replaced),
			strconv.FormatInt(r.DurationMs, 10),
			r.SkipReason,
			r.ErrorMsg,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}

var containerColumns = []string{
	"filename", "format", "size_before", "size_after", "saved_bytes", "success", "error",
}

// WriteContainerCSV writes one row per ContainerResult to w, header first.
func WriteContainerCSV(w io.Writer, results []model.ContainerResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(containerColumns); err != nil {
		return err
	}

	for _, r := range results {
		row := []string{
			r.Filename,
			r.Format.String(),
			strconv.FormatInt(r.SizeBefore, 10),
			strconv.FormatInt(r.SizeAfter, 10),
			strconv.FormatInt(r.SavedBytes(), 10),
			strconv.FormatBool(r.Success),
			r.ErrorMsg,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	return cw.Error()
}
