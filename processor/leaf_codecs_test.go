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

package processor_test

import (
	"bytes"
	"compress/gzip"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"

	lz4 "github.com/pierrec/lz4/v4"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/processor"
)

var _ = Describe("leaf codecs", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	It("recompresses a PNG losslessly", func() {
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				img.Set(x, y, color.RGBA{R: uint8(x * 16), G: uint8(y * 16), B: 10, A: 255})
			}
		}

		src := filepath.Join(dir, "in.png")
		f, err := os.Create(src)
		Expect(err).ToNot(HaveOccurred())
		Expect((&png.Encoder{CompressionLevel: png.NoCompression}).Encode(f, img)).To(Succeed())
		Expect(f.Close()).To(Succeed())

		out := filepath.Join(dir, "out.png")
		Expect(processor.PngCodec{}.Recompress(src, out, processor.Options{})).To(Succeed())

		decoded, err := os.Open(out)
		Expect(err).ToNot(HaveOccurred())
		defer decoded.Close()

		roundTripped, err := png.Decode(decoded)
		Expect(err).ToNot(HaveOccurred())
		Expect(roundTripped.Bounds()).To(Equal(img.Bounds()))
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				Expect(roundTripped.At(x, y)).To(Equal(img.At(x, y)))
			}
		}
	})

	It("rejects a non-PNG source with CodecException", func() {
		src := filepath.Join(dir, "not-a.png")
		Expect(os.WriteFile(src, []byte("definitely not png"), 0o644)).To(Succeed())

		err := processor.PngCodec{}.Recompress(src, filepath.Join(dir, "out.png"), processor.Options{})
		Expect(err).To(HaveOccurred())
		fe, ok := err.(ferrors.Error)
		Expect(ok).To(BeTrue())
		Expect(fe.Is(ferrors.CodecException)).To(BeTrue())
	})

	It("re-encodes a gzip stream to an equivalent payload", func() {
		var buf bytes.Buffer
		w, _ := gzip.NewWriterLevel(&buf, gzip.NoCompression)
		_, err := w.Write([]byte("hello hello hello hello hello"))
		Expect(err).ToNot(HaveOccurred())
		Expect(w.Close()).To(Succeed())

		src := filepath.Join(dir, "in.gz")
		Expect(os.WriteFile(src, buf.Bytes(), 0o644)).To(Succeed())

		out := filepath.Join(dir, "out.gz")
		Expect(processor.GzipCodec{}.Recompress(src, out, processor.Options{})).To(Succeed())

		rf, err := os.Open(out)
		Expect(err).ToNot(HaveOccurred())
		defer rf.Close()

		r, err := gzip.NewReader(rf)
		Expect(err).ToNot(HaveOccurred())
		defer r.Close()

		var roundTripped bytes.Buffer
		_, err = roundTripped.ReadFrom(r)
		Expect(err).ToNot(HaveOccurred())
		Expect(roundTripped.String()).To(Equal("hello hello hello hello hello"))
	})

	It("copies JPEG bytes through unchanged", func() {
		src := filepath.Join(dir, "in.jpg")
		payload := []byte{0xff, 0xd8, 0xff, 0xd9}
		Expect(os.WriteFile(src, payload, 0o644)).To(Succeed())

		out := filepath.Join(dir, "out.jpg")
		Expect(processor.JpegCodec{}.Recompress(src, out, processor.Options{})).To(Succeed())

		got, err := os.ReadFile(out)
		Expect(err).ToNot(HaveOccurred())
		Expect(got).To(Equal(payload))
	})

	It("re-encodes an lz4 frame to an equivalent payload", func() {
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		_, err := w.Write([]byte("hello hello hello hello hello"))
		Expect(err).ToNot(HaveOccurred())
		Expect(w.Close()).To(Succeed())

		src := filepath.Join(dir, "in.lz4")
		Expect(os.WriteFile(src, buf.Bytes(), 0o644)).To(Succeed())

		out := filepath.Join(dir, "out.lz4")
		Expect(processor.Lz4Codec{}.Recompress(src, out, processor.Options{})).To(Succeed())

		rf, err := os.Open(out)
		Expect(err).ToNot(HaveOccurred())
		defer rf.Close()

		var roundTripped bytes.Buffer
		_, err = roundTripped.ReadFrom(lz4.NewReader(rf))
		Expect(err).ToNot(HaveOccurred())
		Expect(roundTripped.String()).To(Equal("hello hello hello hello hello"))
	})
})
