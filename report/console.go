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
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-colorable"
	"golang.org/x/term"

	"github.com/sabouaram/fileopt/model"
)

// Console renders the collector's vectors as a human-readable summary:
// green for a replaced file, yellow for a skip, red for an error. Color is
// disabled automatically when w isn't a real terminal (CI logs, a redirect
// to a file).
type Console struct {
	out   io.Writer
	width int
}

// NewConsole wraps w for colorized output. When w is os.Stdout and the
// process is attached to a terminal, width is read from it; otherwise a
// conservative 80-column default is used and escape codes are stripped.
func NewConsole(w io.Writer) *Console {
	width := 80

	if f, ok := w.(*os.File); ok {
		if tw, _, err := term.GetSize(int(f.Fd())); err == nil && tw > 0 {
			width = tw
		}
		if term.IsTerminal(int(f.Fd())) {
			w = colorable.NewColorable(f)
		} else {
			w = colorable.NewNonColorable(f)
		}
	}

	return &Console{out: w, width: width}
}

// PrintSummary writes one line per file result plus a totals footer.
func (c *Console) PrintSummary(results []model.Result, containers []model.ContainerResult) {
	var totalSaved int64
	var replaced, skipped, failed int

	for _, r := range results {
		totalSaved += r.SavedBytes()
		switch {
		case !r.Success:
			failed++
			c.line(color.FgRed, "FAIL", r.Path, r.ErrorMsg)
		case r.Replaced:
			replaced++
			c.line(color.FgGreen, "OK", r.Path, fmt.Sprintf("%d -> %d bytes", r.SizeBefore, r.SizeAfter))
		default:
			skipped++
			c.line(color.FgYellow, "SKIP", r.Path, r.SkipReason)
		}
	}

	for _, cr := range containers {
		totalSaved += cr.SavedBytes()
		if cr.Success {
			c.line(color.FgGreen, "OK", cr.Filename, fmt.Sprintf("%s container finalized", cr.Format))
		} else {
			c.line(color.FgRed, "FAIL", cr.Filename, cr.ErrorMsg)
		}
	}

	footer := color.New(color.Bold)
	_, _ = footer.Fprintf(c.out, "\n%d replaced, %d skipped, %d failed, %d bytes saved\n",
		replaced, skipped, failed, totalSaved)
}

func (c *Console) line(attr color.Attribute, tag, path, detail string) {
	cl := color.New(attr, color.Bold)
	_, _ = cl.Fprintf(c.out, "[%-4s] ", tag)
	_, _ = fmt.Fprintf(c.out, "%s", c.truncate(path))
	if detail != "" {
		_, _ = fmt.Fprintf(c.out, " (%s)", detail)
	}
	_, _ = fmt.Fprintln(c.out)
}

// truncate keeps a path within the terminal width, eliding the middle of
// anything longer so the tag and detail columns still fit on one line.
func (c *Console) truncate(path string) string {
	budget := c.width - 40
	if budget < 10 || len(path) <= budget {
		return path
	}
	head := budget / 2
	tail := budget - head - 3
	return path[:head] + "..." + path[len(path)-tail:]
}
