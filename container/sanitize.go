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

// Package container implements the per-family extraction/rebuild engines:
// generic archives, ZIP-bundled office and compound documents, and PDF.
// Every engine shares the same entry-path sanitization and deterministic
// rebuild conventions defined in this file.
package container

import (
	"path/filepath"
	"strings"
)

// SanitizeEntry normalizes an archive entry name and confirms it cannot
// escape root once joined to it. It rejects NUL bytes, backslash-only
// traversal tricks, and lexical ".." escapes the way a path-traversal-aware
// extractor must.
func SanitizeEntry(root, name string) (absPath string, ok bool) {
	if strings.ContainsRune(name, 0) {
		return "", false
	}

	clean := strings.ReplaceAll(name, "\\", "/")
	clean = strings.TrimPrefix(clean, "/")
	clean = filepath.Clean(clean)

	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", false
	}

	joined := filepath.Join(root, clean)
	rootWithSep := root
	if !strings.HasSuffix(rootWithSep, string(filepath.Separator)) {
		rootWithSep += string(filepath.Separator)
	}
	if joined != root && !strings.HasPrefix(joined, rootWithSep) {
		return "", false
	}

	return joined, true
}

// ArchivePath converts an OS path into the forward-slash, non-absolute form
// every rebuilt archive entry must use.
func ArchivePath(p string) string {
	p = filepath.ToSlash(p)
	return strings.TrimPrefix(p, "/")
}
