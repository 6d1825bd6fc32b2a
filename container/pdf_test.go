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

package container_test

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fileopt/container"
	"github.com/sabouaram/fileopt/processor"
)

func zlibCompress(plaintext []byte) []byte {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, _ = zw.Write(plaintext)
	_ = zw.Close()
	return buf.Bytes()
}

// assemblePdfObject wraps compressed behind a minimal "N G obj ... stream
// ... endstream ... endobj" span, using lengthClause verbatim as the
// dictionary's /Length entry.
func assemblePdfObject(lengthClause string, compressed []byte) []byte {
	var raw bytes.Buffer
	raw.WriteString("%PDF-1.4\n")
	raw.WriteString(fmt.Sprintf("1 0 obj\n<< %s /Filter /FlateDecode >>\nstream\n", lengthClause))
	raw.Write(compressed)
	raw.WriteString("\nendstream\nendobj\n")
	return raw.Bytes()
}

func decodedStreamOf(rebuilt []byte) []byte {
	idx := bytes.Index(rebuilt, []byte("stream\n"))
	Expect(idx).To(BeNumerically(">=", 0))
	start := idx + len("stream\n")
	end := bytes.Index(rebuilt[start:], []byte("\nendstream"))
	Expect(end).To(BeNumerically(">=", 0))

	zr, err := zlib.NewReader(bytes.NewReader(rebuilt[start : start+end]))
	Expect(err).ToNot(HaveOccurred())
	decoded, err := io.ReadAll(zr)
	Expect(err).ToNot(HaveOccurred())
	return decoded
}

var _ = Describe("Pdf stream recompression", func() {
	It("recompresses a stream located via its declared /Length", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "doc.pdf")
		content := bytes.Repeat([]byte("Hello stream world. "), 50)
		compressed := zlibCompress(content)
		raw := assemblePdfObject(fmt.Sprintf("/Length %d", len(compressed)), compressed)
		Expect(os.WriteFile(path, raw, 0o644)).To(Succeed())

		eng := container.Pdf{}
		job, err := eng.Prepare(path, processor.Options{})
		Expect(err).ToNot(HaveOccurred())
		Expect(job.Warnings).To(BeEmpty())

		forceCommit(path)
		ok, _, err := eng.Finalize(job, processor.Options{})
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeTrue())

		rebuilt, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(decodedStreamOf(rebuilt)).To(Equal(content))
	})

	It("falls back to a literal endstream search when /Length is an indirect reference", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "doc.pdf")
		content := []byte("plain content with no tricky keywords inside it")
		raw := assemblePdfObject("/Length 5 0 R", zlibCompress(content))
		Expect(os.WriteFile(path, raw, 0o644)).To(Succeed())

		eng := container.Pdf{}
		job, err := eng.Prepare(path, processor.Options{})
		Expect(err).ToNot(HaveOccurred())
		Expect(job.Warnings).To(BeEmpty())

		forceCommit(path)
		ok, _, err := eng.Finalize(job, processor.Options{})
		Expect(err).ToNot(HaveOccurred())
		Expect(ok).To(BeTrue())

		rebuilt, err := os.ReadFile(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(decodedStreamOf(rebuilt)).To(Equal(content))
	})
})
