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

package container

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/internal/zlibx"
	"github.com/sabouaram/fileopt/model"
	"github.com/sabouaram/fileopt/processor"
)

// pdfObject describes one indirect object's stream as found by a linear
// scan of the file. This module does not build a full cross-reference
// table; it finds "N G obj" headers directly and then locates each
// stream's end from its dictionary's declared /Length, falling back to a
// literal "endstream" search only when /Length is absent or indirect. This
// is sufficient for the decode/recompress contract this handler implements
// and simpler than a conforming xref/object-stream-aware parser.
type pdfObject struct {
	start, end int // byte offsets from "N G obj" to just past "endstream"
	dict       []byte
	streamData []byte // decoded stream bytes when decodable, else the raw bytes
	decodable  bool
	eligible   bool // flate-only, no /DecodeParms: safe to recompress
	decodedTo  string
}

var objStartRe = regexp.MustCompile(`(?s)(\d+)\s+(\d+)\s+obj(.*?)stream\r?\n`)
var lengthRe = regexp.MustCompile(`/Length\s+(\d+)(\s+\d+\s+R)?`)

// Pdf implements the uniform container contract for PDF documents by
// decoding and, where eligible, recompressing their FlateDecode streams.
// It does not rebuild the file from scratch (the model is state-preserving
// in-place rewriting, per the external contract it follows), so features
// like linearization and deterministic object IDs are out of scope here.
type Pdf struct{}

func (Pdf) Name() string        { return "pdf" }
func (Pdf) CanExtract() bool    { return true }
func (Pdf) CanRecompress() bool { return false }

func (Pdf) Recompress(string, string, processor.Options) error {
	return ferrors.New(ferrors.CodecException, "the pdf engine does not implement Recompress")
}

func (Pdf) Prepare(path string, _ processor.Options) (*model.ContainerJob, error) {
	dir, err := newTempDir("pdf")
	if err != nil {
		return nil, ferrors.New(ferrors.ExtractionFailure, "temp dir", err)
	}
	job := model.NewContainerJob(path, dir, model.Pdf)

	raw, err := os.ReadFile(path)
	if err != nil {
		return job, ferrors.New(ferrors.ExtractionFailure, "read pdf", err)
	}

	matches := objStartRe.FindAllSubmatchIndex(raw, -1)
	objects := make([]pdfObject, 0, len(matches))

	for i, m := range matches {
		dict := raw[m[6]:m[7]]
		streamStart := m[1]

		stream, streamEnd, ok := sliceStream(raw, streamStart, dict)
		if !ok {
			job.Warnings = append(job.Warnings, fmt.Sprintf("object %d: could not locate endstream", i))
			continue
		}

		obj := pdfObject{start: m[0], end: streamEnd, dict: append([]byte(nil), dict...)}

		isFlate := bytes.Contains(dict, []byte("/FlateDecode"))
		hasParms := bytes.Contains(dict, []byte("/DecodeParms"))
		obj.eligible = isFlate && !hasParms

		decoded, derr := zlibDecode(stream)
		if derr == nil {
			obj.decodable = true
			obj.streamData = decoded
			ext := guessExtension(dict, decoded)
			dest := fmt.Sprintf("%s/object_%d%s", dir, i, ext)
			if werr := os.WriteFile(dest, decoded, 0o644); werr == nil {
				obj.decodedTo = dest
			}
		} else {
			obj.streamData = append([]byte(nil), stream...)
			job.Warnings = append(job.Warnings, fmt.Sprintf("object %d: non-decodable stream", i))
		}

		objects = append(objects, obj)
	}

	job.Extra = objects
	return job, nil
}

// sliceStream locates the exact end of the stream body starting at
// streamStart. It prefers the dictionary's declared /Length, verifying the
// bytes right after it really are followed by "endstream" before trusting
// it; a literal search for the next "endstream" keyword is used only as a
// fallback when /Length is missing, indirect (an "N G R" reference this
// handler cannot resolve without an object table), or does not line up,
// since a literal search can be fooled by a binary payload that happens to
// contain the bytes "endstream" before its real end.
func sliceStream(raw []byte, streamStart int, dict []byte) (data []byte, end int, ok bool) {
	if n, lok := declaredLength(dict); lok {
		if keywordAt, eok := matchesEndstream(raw, streamStart+n); eok {
			return raw[streamStart : streamStart+n], keywordAt + len("endstream"), true
		}
	}

	idx := bytes.Index(raw[streamStart:], []byte("endstream"))
	if idx < 0 {
		return nil, 0, false
	}
	bodyEnd := trimTrailingEOL(raw, streamStart+idx)
	return raw[streamStart:bodyEnd], streamStart + idx + len("endstream"), true
}

// declaredLength extracts a literal /Length value from a stream dictionary.
// It refuses an indirect reference ("/Length 12 0 R"): resolving that would
// require a cross-reference table this handler does not build.
func declaredLength(dict []byte) (int, bool) {
	m := lengthRe.FindSubmatch(dict)
	if m == nil || len(m[2]) > 0 {
		return 0, false
	}
	n, err := strconv.Atoi(string(m[1]))
	if err != nil {
		return 0, false
	}
	return n, true
}

// matchesEndstream reports whether raw[pos:], after skipping one optional
// EOL, begins with the "endstream" keyword, and returns the offset the
// keyword itself starts at.
func matchesEndstream(raw []byte, pos int) (int, bool) {
	if pos < 0 || pos > len(raw) {
		return 0, false
	}
	p := pos
	switch {
	case p+1 < len(raw) && raw[p] == '\r' && raw[p+1] == '\n':
		p += 2
	case p < len(raw) && (raw[p] == '\n' || raw[p] == '\r'):
		p++
	}
	if bytes.HasPrefix(raw[p:], []byte("endstream")) {
		return p, true
	}
	return 0, false
}

// trimTrailingEOL backs off one EOL sequence immediately before pos, since
// the literal-search fallback finds "endstream" itself, not the stream
// body's own end.
func trimTrailingEOL(raw []byte, pos int) int {
	if pos >= 2 && raw[pos-2] == '\r' && raw[pos-1] == '\n' {
		return pos - 2
	}
	if pos >= 1 && (raw[pos-1] == '\n' || raw[pos-1] == '\r') {
		return pos - 1
	}
	return pos
}

func zlibDecode(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// guessExtension inspects the stream dictionary and, failing that, sniffs
// magic bytes to name the decoded object file the way a font/image
// extractor would.
func guessExtension(dict, decoded []byte) string {
	switch {
	case bytes.Contains(dict, []byte("/FontFile2")):
		return ".ttf"
	case bytes.Contains(dict, []byte("/FontFile3")) && bytes.Contains(dict, []byte("Type1C")):
		return ".cff"
	case bytes.Contains(dict, []byte("/Type /Metadata")) || bytes.Contains(dict, []byte("/Type/Metadata")):
		return ".xml"
	}

	switch {
	case bytes.HasPrefix(decoded, []byte{0xff, 0xd8}):
		return ".jpg"
	case bytes.HasPrefix(decoded, []byte{0x89, 'P', 'N', 'G'}):
		return ".png"
	case bytes.HasPrefix(decoded, []byte("%PDF")):
		return ".pdf"
	case bytes.HasPrefix(decoded, []byte("OTTO")):
		return ".otf"
	default:
		return ".bin"
	}
}

func (Pdf) Finalize(job *model.ContainerJob, opts processor.Options) (bool, int64, error) {
	defer os.RemoveAll(job.TempDir)

	objects, ok := job.Extra.([]pdfObject)
	if !ok {
		return false, 0, ferrors.New(ferrors.ExtractionFailure, "pdf job missing object table")
	}

	raw, err := os.ReadFile(job.OriginalPath)
	if err != nil {
		return false, 0, ferrors.New(ferrors.WriteFailure, "reopen pdf", err)
	}

	var out bytes.Buffer
	cursor := 0

	for i, obj := range objects {
		out.Write(raw[cursor:obj.start])

		if !obj.eligible || !obj.decodable {
			out.Write(raw[obj.start:obj.end])
			cursor = obj.end
			continue
		}

		decoded := obj.streamData
		if obj.decodedTo != "" {
			if b, rerr := os.ReadFile(obj.decodedTo); rerr == nil {
				decoded = b
			}
		}

		recompressed, rerr := zlibx.Recompress(decoded, true)
		if rerr != nil {
			out.Write(raw[obj.start:obj.end])
			cursor = obj.end
			job.Warnings = append(job.Warnings, fmt.Sprintf("object %d: recompress failed, kept original", i))
			continue
		}

		newDict := lengthRe.ReplaceAll(obj.dict, []byte("/Length "+strconv.Itoa(len(recompressed))))

		out.Write(bytes.TrimSpace(objHeader(raw, obj.start)))
		out.WriteString(" obj")
		out.Write(newDict)
		out.WriteString("stream\n")
		out.Write(recompressed)
		out.WriteString("\nendstream")

		cursor = obj.end
	}

	out.Write(raw[cursor:])

	candidate := siblingTemp(job.OriginalPath)
	if err = os.WriteFile(candidate, out.Bytes(), 0o644); err != nil {
		return false, 0, ferrors.New(ferrors.WriteFailure, "write candidate pdf", err)
	}

	return Commit(job.OriginalPath, candidate, job.Format, opts.DryRun)
}

// objHeader returns the "N G" object number/generation prefix that preceded
// the match at start, re-derived from the original bytes since the regexp
// only captured the numbers, not their exact spacing.
func objHeader(raw []byte, start int) []byte {
	end := start
	for end < len(raw) && raw[end] != 'o' {
		end++
	}
	return raw[start:end]
}
