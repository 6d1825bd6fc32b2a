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
	"compress/gzip"
	"io"
	"os"

	dsnetbz2 "github.com/dsnet/compress/bzip2"
	lz4 "github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"

	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/model"
)

// GzipCodec decodes a single-member gzip stream and re-encodes it at the
// deflate level the container rebuild rules use everywhere else.
type GzipCodec struct{}

func (GzipCodec) Name() string               { return "gzip" }
func (GzipCodec) CanExtract() bool           { return false }
func (GzipCodec) CanRecompress() bool        { return true }
func (GzipCodec) Prepare(string, Options) (*model.ContainerJob, error) { return nil, nil }
func (GzipCodec) Finalize(*model.ContainerJob, Options) (bool, int64, error) { return false, 0, nil }

func (GzipCodec) Recompress(inPath, tmpOutPath string, _ Options) error {
	in, err := os.Open(inPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "gzip: open source", err)
	}
	defer in.Close()

	r, err := gzip.NewReader(in)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "gzip: open reader", err)
	}
	defer r.Close()

	out, err := os.Create(tmpOutPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "gzip: create output", err)
	}
	defer out.Close()

	w, err := gzip.NewWriterLevel(out, gzip.BestCompression)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "gzip: writer init", err)
	}

	if _, err = io.Copy(w, r); err != nil {
		_ = w.Close()
		return ferrors.New(ferrors.CodecException, "gzip: recompress", err)
	}

	if err = w.Close(); err != nil {
		return ferrors.New(ferrors.CodecException, "gzip: close", err)
	}

	return nil
}

// Bzip2Codec decodes a bzip2 stream (stdlib bzip2 is read-only) and
// re-encodes it with dsnet/compress/bzip2, the only BSD/MIT-licensed bzip2
// encoder in the ecosystem's common use, at its highest block size.
type Bzip2Codec struct{}

func (Bzip2Codec) Name() string               { return "bzip2" }
func (Bzip2Codec) CanExtract() bool           { return false }
func (Bzip2Codec) CanRecompress() bool        { return true }
func (Bzip2Codec) Prepare(string, Options) (*model.ContainerJob, error) { return nil, nil }
func (Bzip2Codec) Finalize(*model.ContainerJob, Options) (bool, int64, error) { return false, 0, nil }

func (Bzip2Codec) Recompress(inPath, tmpOutPath string, _ Options) error {
	in, err := os.Open(inPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "bzip2: open source", err)
	}
	defer in.Close()

	r, err := dsnetbz2.NewReader(in, nil)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "bzip2: open reader", err)
	}
	defer r.Close()

	out, err := os.Create(tmpOutPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "bzip2: create output", err)
	}
	defer out.Close()

	w, err := dsnetbz2.NewWriter(out, &dsnetbz2.WriterConfig{Level: dsnetbz2.BestCompression})
	if err != nil {
		return ferrors.New(ferrors.CodecException, "bzip2: writer init", err)
	}

	if _, err = io.Copy(w, r); err != nil {
		_ = w.Close()
		return ferrors.New(ferrors.CodecException, "bzip2: recompress", err)
	}

	if err = w.Close(); err != nil {
		return ferrors.New(ferrors.CodecException, "bzip2: close", err)
	}

	return nil
}

// XzCodec decodes and re-encodes a single-stream xz file via
// github.com/ulikunitz/xz, the pure-Go xz implementation the reference
// pack's archive handling favors over shelling out to liblzma.
type XzCodec struct{}

func (XzCodec) Name() string               { return "xz" }
func (XzCodec) CanExtract() bool           { return false }
func (XzCodec) CanRecompress() bool        { return true }
func (XzCodec) Prepare(string, Options) (*model.ContainerJob, error) { return nil, nil }
func (XzCodec) Finalize(*model.ContainerJob, Options) (bool, int64, error) { return false, 0, nil }

func (XzCodec) Recompress(inPath, tmpOutPath string, _ Options) error {
	in, err := os.Open(inPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "xz: open source", err)
	}
	defer in.Close()

	r, err := xz.NewReader(in)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "xz: open reader", err)
	}

	out, err := os.Create(tmpOutPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "xz: create output", err)
	}
	defer out.Close()

	cfg := xz.WriterConfig{}
	w, err := cfg.NewWriter(out)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "xz: writer init", err)
	}

	if _, err = io.Copy(w, r); err != nil {
		_ = w.Close()
		return ferrors.New(ferrors.CodecException, "xz: recompress", err)
	}

	if err = w.Close(); err != nil {
		return ferrors.New(ferrors.CodecException, "xz: close", err)
	}

	return nil
}

// Lz4Codec decodes and re-encodes a standalone LZ4 frame stream via
// github.com/pierrec/lz4/v4. It handles standalone .lz4 files only; the Tar
// extraction and rebuild paths do not use LZ4.
type Lz4Codec struct{}

func (Lz4Codec) Name() string               { return "lz4" }
func (Lz4Codec) CanExtract() bool           { return false }
func (Lz4Codec) CanRecompress() bool        { return true }
func (Lz4Codec) Prepare(string, Options) (*model.ContainerJob, error) { return nil, nil }
func (Lz4Codec) Finalize(*model.ContainerJob, Options) (bool, int64, error) { return false, 0, nil }

func (Lz4Codec) Recompress(inPath, tmpOutPath string, _ Options) error {
	in, err := os.Open(inPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "lz4: open source", err)
	}
	defer in.Close()

	r := lz4.NewReader(in)

	out, err := os.Create(tmpOutPath)
	if err != nil {
		return ferrors.New(ferrors.CodecException, "lz4: create output", err)
	}
	defer out.Close()

	w := lz4.NewWriter(out)
	if err = w.Apply(lz4.CompressionLevelOption(lz4.Level9)); err != nil {
		return ferrors.New(ferrors.CodecException, "lz4: writer init", err)
	}

	if _, err = io.Copy(w, r); err != nil {
		_ = w.Close()
		return ferrors.New(ferrors.CodecException, "lz4: recompress", err)
	}

	if err = w.Close(); err != nil {
		return ferrors.New(ferrors.CodecException, "lz4: close", err)
	}

	return nil
}
