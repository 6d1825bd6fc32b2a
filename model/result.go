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

package model

// CodecUsage records one codec applied to a file and the reduction it bought.
type CodecUsage struct {
	Name         string
	PctReduction float64
}

// Result is the per-file outcome recorded by the Result Collector.
type Result struct {
	Path           string
	Mime           string
	SizeBefore     int64
	SizeAfter      int64
	Success        bool
	Replaced       bool
	DurationMs     int64
	CodecsUsed     []CodecUsage
	ContainerOrigin string
	ErrorMsg       string
	SkipReason     string
}

// SavedBytes returns how many bytes this result freed, zero when not
// replaced.
func (r Result) SavedBytes() int64 {
	if !r.Replaced {
		return 0
	}
	return r.SizeBefore - r.SizeAfter
}

// ContainerResult is the per-container outcome recorded by the Result
// Collector.
type ContainerResult struct {
	Filename   string
	Format     ContainerFormat
	SizeBefore int64
	SizeAfter  int64
	Success    bool
	ErrorMsg   string
}

// SavedBytes returns how many bytes this container's rebuild freed.
func (c ContainerResult) SavedBytes() int64 {
	if !c.Success || c.SizeAfter <= 0 || c.SizeAfter >= c.SizeBefore {
		return 0
	}
	return c.SizeBefore - c.SizeAfter
}
