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

package processor

import (
	"io"
	"os"

	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/model"
)

// JpegCodec copies the source unchanged. Real lossless JPEG recompression
// (re-multiplexing Huffman tables without touching coefficients) needs a
// dedicated transcoder this module does not vendor; until one is wired in,
// the codec is registered so JPEG entries route through the pipeline and
// consistently report "no improvement" rather than ProcessorMissing.
type JpegCodec struct{}

func (JpegCodec) Name() string               { return "jpeg" }
func (JpegCodec) CanExtract() bool           { return false }
func (JpegCodec) CanRecompress() bool        { return true }
func (JpegCodec) Prepare(string, Options) (*model.ContainerJob, error) { return nil, nil }
func (JpegCodec) Finalize(*model.ContainerJob, Options) (bool, int64, error) { return false, 0, nil }

func (JpegCodec) Recompress(inPath, tmpOutPath string, _ Options) error {
	in, err := os.Open(inPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "jpeg: open source", err)
	}
	defer in.Close()

	out, err := os.Create(tmpOutPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "jpeg: create output", err)
	}
	defer out.Close()

	if _, err = io.Copy(out, in); err != nil {
		return ferrors.New(ferrors.CodecException, "jpeg: copy", err)
	}

	return nil
}
