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
	"io"

	"github.com/ugorji/go/codec"

	"github.com/sabouaram/fileopt/model"
)

// Envelope bundles both result vectors for the binary report format, so a
// downstream tool consuming --report-bin gets one self-contained payload
// rather than two separate streams to correlate.
type Envelope struct {
	Files      []model.Result
	Containers []model.ContainerResult
}

var mpHandle codec.MsgpackHandle

// WriteMsgpack encodes env as MessagePack to w, for tooling that wants a
// compact, typed report instead of parsing CSV.
func WriteMsgpack(w io.Writer, env Envelope) error {
	return codec.NewEncoder(w, &mpHandle).Encode(&env)
}

// ReadMsgpack decodes a MessagePack report previously written by
// WriteMsgpack.
func ReadMsgpack(r io.Reader) (Envelope, error) {
	var env Envelope
	err := codec.NewDecoder(r, &mpHandle).Decode(&env)
	return env, err
}
