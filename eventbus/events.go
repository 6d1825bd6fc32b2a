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

package eventbus

// FileAnalyzeStart is published when Phase 1 begins resolving a processor
// for path.
type FileAnalyzeStart struct {
	Path string
}

// FileAnalyzeComplete is published after Phase 1 successfully routed path
// either into extraction (a container) or the Phase 2 work list.
type FileAnalyzeComplete struct {
	Path      string
	Extracted bool
	Scheduled bool
}

// FileAnalyzeError is published when Phase 1 fails to analyze path (e.g. an
// ExtractionFailure while preparing a container).
type FileAnalyzeError struct {
	Path  string
	Error string
}

// FileAnalyzeSkipped is published when no processor could be resolved for
// path (ProcessorMissing).
type FileAnalyzeSkipped struct {
	Path   string
	Reason string
}

// FileProcessStart is published when a worker begins recompressing path.
type FileProcessStart struct {
	Path string
}

// FileProcessComplete is published once per leaf file whose candidate passed
// the commit rule; Replaced is false when dry-run kept the original. A
// candidate the commit rule rejects is reported as FileProcessSkipped.
type FileProcessComplete struct {
	Path         string
	OriginalSize int64
	NewSize      int64
	Replaced     bool
	DurationMs   int64
}

// FileProcessError is published when a leaf codec fails (CodecException).
type FileProcessError struct {
	Path  string
	Error string
}

// FileProcessSkipped is published for NoImprovement and other non-error
// skip outcomes during Phase 2.
type FileProcessSkipped struct {
	Path   string
	Reason string
}

// ContainerFinalizeStart is published immediately before Phase 3 invokes a
// container's finalize.
type ContainerFinalizeStart struct {
	Path string
}

// ContainerFinalizeComplete is published after a container's finalize
// commits (or decides not to commit) successfully.
type ContainerFinalizeComplete struct {
	Path      string
	FinalSize int64
}

// ContainerFinalizeError is published when a container's finalize fails;
// this aborts the parent's finalize as well.
type ContainerFinalizeError struct {
	Path  string
	Error string
}
