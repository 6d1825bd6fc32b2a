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
	"image/png"
	"os"

	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/model"
)

// PngCodec decodes and re-encodes a PNG at the encoder's best compression
// level, a lossless pass: the decoded pixels are bit-identical, only the
// filter/deflate choices change.
type PngCodec struct{}

func (PngCodec) Name() string               { return "png" }
func (PngCodec) CanExtract() bool           { return false }
func (PngCodec) CanRecompress() bool        { return true }
func (PngCodec) Prepare(string, Options) (*model.ContainerJob, error) { return nil, nil }
func (PngCodec) Finalize(*model.ContainerJob, Options) (bool, int64, error) { return false, 0, nil }

func (PngCodec) Recompress(inPath, tmpOutPath string, _ Options) error {
	in, err := os.Open(inPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "png: open source", err)
	}
	defer in.Close()

	img, err := png.Decode(in)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "png: decode", err)
	}

	out, err := os.Create(tmpOutPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "png: create output", err)
	}
	defer out.Close()

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err = enc.Encode(out, img); err != nil {
		return ferrors.New(ferrors.CodecException, "png: encode", err)
	}

	return nil
}
