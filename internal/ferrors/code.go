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

// Package ferrors provides the numeric-coded error kinds raised across the
// orchestrator, container engine and worker pool.
package ferrors

import "strconv"

// Code is a small HTTP-status-flavored classification for pipeline errors,
// similar in spirit to golib's errors.CodeError but scoped to the kinds this
// module actually raises.
type Code uint16

const (
	Unknown Code = iota
	SanitizationReject
	ExtractionFailure
	NonDecodableStream
	WriteFailure
	RenameFailure
	NoImprovement
	ProcessorMissing
	CodecException
	PoolStoppedCode
)

var names = map[Code]string{
	Unknown:             "unknown",
	SanitizationReject:  "sanitization_reject",
	ExtractionFailure:   "extraction_failure",
	NonDecodableStream:  "non_decodable_stream",
	WriteFailure:        "write_failure",
	RenameFailure:       "rename_failure",
	NoImprovement:       "no_improvement",
	ProcessorMissing:    "processor_missing",
	CodecException:      "codec_exception",
	PoolStoppedCode:     "pool_stopped",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return "code(" + strconv.Itoa(int(c)) + ")"
}
