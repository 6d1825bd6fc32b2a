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

// Package processor defines the capability interface every recompression
// strategy implements (leaf codecs and, from the container package, whole
// container families), a registry that resolves a file to one, and the
// small set of single-file leaf codecs that recompress without needing to
// unpack anything first.
package processor

import "github.com/sabouaram/fileopt/model"

// Options carries the user-facing knobs every Processor may consult. It is
// kept independent of the config package's Settings type so processor never
// imports config.
type Options struct {
	PreserveMetadata        bool
	VerifyChecksums         bool
	DryRun                  bool
	EncodeMode              model.EncodeMode
	UnencodableTargetFormat model.ContainerFormat
}

// Processor is the capability object the registry hands back for a given
// MIME type or extension. A concrete variant declares, via CanExtract and
// CanRecompress, which of Prepare or Recompress it actually implements; the
// orchestrator never calls the other one.
type Processor interface {
	// Name identifies the variant for logging and Result.CodecsUsed.
	Name() string

	// CanExtract reports whether this variant unpacks a container via
	// Prepare. Mutually exclusive with CanRecompress in every shipped
	// variant, though the interface does not enforce that.
	CanExtract() bool

	// CanRecompress reports whether this variant recompresses a single
	// leaf file via Recompress.
	CanRecompress() bool

	// Prepare extracts path into a fresh ContainerJob. Only called when
	// CanExtract is true.
	Prepare(path string, opts Options) (*model.ContainerJob, error)

	// Recompress reads inPath and writes a candidate replacement to
	// tmpOutPath. It must not touch inPath. Only called when
	// CanRecompress is true.
	Recompress(inPath, tmpOutPath string, opts Options) error

	// Finalize rebuilds job's container and applies the commit rule.
	// finalSize is meaningful only when ok is true. Only called when
	// CanExtract is true.
	Finalize(job *model.ContainerJob, opts Options) (ok bool, finalSize int64, err error)
}
