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

// Package mimetype resolves a file to a MIME type using an extension table
// for the formats this module recognizes, with a magic-byte fallback for
// the handful of container signatures the engine itself needs to detect.
package mimetype

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

var byExtension = map[string]string{
	".zip":  "application/zip",
	".7z":   "application/x-7z-compressed",
	".tar":  "application/x-tar",
	".gz":   "application/gzip",
	".tgz":  "application/gzip",
	".bz2":  "application/x-bzip2",
	".xz":   "application/x-xz",
	".lz4":  "application/x-lz4",
	".rar":  "application/vnd.rar",
	".wim":  "application/x-ms-wim",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".odt":  "application/vnd.oasis.opendocument.text",
	".ods":  "application/vnd.oasis.opendocument.spreadsheet",
	".odp":  "application/vnd.oasis.opendocument.presentation",
	".odg":  "application/vnd.oasis.opendocument.graphics",
	".odf":  "application/vnd.oasis.opendocument.formula",
	".epub": "application/epub+zip",
	".cbz":  "application/vnd.comicbook+zip",
	".cbt":  "application/x-cbt",
	".jar":  "application/java-archive",
	".xpi":  "application/x-xpinstall",
	".ora":  "image/openraster",
	".dwfx": "model/vnd.dwfx+xps",
	".xps":  "application/vnd.ms-xpsdocument",
	".apk":  "application/vnd.android.package-archive",
	".pdf":  "application/pdf",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

// ByExtension resolves ext (leading dot, case-insensitive) to a MIME string,
// or "" when unrecognized.
func ByExtension(ext string) string {
	return byExtension[strings.ToLower(ext)]
}

// ByPath applies ByExtension to path's extension.
func ByPath(path string) string {
	return ByExtension(filepath.Ext(path))
}

var magic = []struct {
	sig  []byte
	mime string
}{
	{[]byte{0x50, 0x4b, 0x03, 0x04}, "application/zip"},
	{[]byte{0x50, 0x4b, 0x05, 0x06}, "application/zip"},
	{[]byte{0x1f, 0x8b}, "application/gzip"},
	{[]byte("BZh"), "application/x-bzip2"},
	{[]byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, "application/x-xz"},
	{[]byte("%PDF"), "application/pdf"},
	{[]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a}, "image/png"},
	{[]byte{0xff, 0xd8}, "image/jpeg"},
	{append([]byte("ustar"), 0x00), "application/x-tar"},
}

// Sniff inspects the header bytes of a file and returns the best-guess MIME
// type, falling back to the extension table and finally "".
func Sniff(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ByPath(path)
	}
	defer f.Close()

	buf := make([]byte, 265)
	n, _ := f.Read(buf)
	buf = buf[:n]

	if len(buf) >= 263 && bytes.Equal(buf[257:263], append([]byte("ustar"), 0x00)) {
		return "application/x-tar"
	}

	for _, m := range magic {
		if bytes.HasPrefix(buf, m.sig) {
			return m.mime
		}
	}

	return ByPath(path)
}
