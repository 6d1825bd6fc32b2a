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

// Package model holds the data types shared by every pipeline package:
// the container format enumeration, the in-progress container job, and
// the per-file/per-container outcomes recorded by the result collector.
package model

import "strings"

// ContainerFormat is the closed tagged enumeration over every container
// family the engine recognizes.
type ContainerFormat uint8

const (
	Unknown ContainerFormat = iota

	// generic archives
	Zip
	SevenZip
	Tar
	GZip
	BZip2
	Xz
	Rar
	Wim

	// ZIP-bundled office/compound documents
	Docx
	Xlsx
	Pptx
	Odt
	Ods
	Odp
	Odg
	Odf
	Epub
	Cbz
	Cbt
	Jar
	Xpi
	Ora
	Dwfx
	Xps
	Apk

	Pdf
)

var formatNames = map[ContainerFormat]string{
	Unknown: "unknown", Zip: "zip", SevenZip: "7z", Tar: "tar", GZip: "gzip",
	BZip2: "bzip2", Xz: "xz", Rar: "rar", Wim: "wim", Docx: "docx", Xlsx: "xlsx",
	Pptx: "pptx", Odt: "odt", Ods: "ods", Odp: "odp", Odg: "odg", Odf: "odf",
	Epub: "epub", Cbz: "cbz", Cbt: "cbt", Jar: "jar", Xpi: "xpi", Ora: "ora",
	Dwfx: "dwfx", Xps: "xps", Apk: "apk", Pdf: "pdf",
}

func (f ContainerFormat) String() string {
	if n, ok := formatNames[f]; ok {
		return n
	}
	return "unknown"
}

// Readable reports whether f is a recognized container format (any value
// except Unknown). Rar, Wim and SevenZip are recognized, but the Container
// Engine has no extractor for them: their Prepare fails with
// ExtractionFailure.
func (f ContainerFormat) Readable() bool {
	return f != Unknown
}

// Writable reports whether the Container Engine can rebuild this format.
// Rar, Wim and SevenZip have no encoder wired, so they are never rewritten.
func (f ContainerFormat) Writable() bool {
	switch f {
	case Unknown, Rar, Wim, SevenZip:
		return false
	default:
		return true
	}
}

// IsOfficeZip reports whether f belongs to the ZIP-bundled office/compound
// document family, as opposed to a generic archive.
func (f ContainerFormat) IsOfficeZip() bool {
	switch f {
	case Docx, Xlsx, Pptx, Odt, Ods, Odp, Odg, Odf, Epub, Cbz, Cbt, Jar, Xpi, Ora, Dwfx, Xps, Apk:
		return true
	default:
		return false
	}
}

// IsOOXML reports whether f uses the "[Content_Types].xml first" ordering
// rule.
func (f ContainerFormat) IsOOXML() bool {
	switch f {
	case Docx, Xlsx, Pptx:
		return true
	default:
		return false
	}
}

// IsODF reports whether f belongs to the OpenDocument family.
func (f ContainerFormat) IsODF() bool {
	switch f {
	case Odt, Ods, Odp, Odg, Odf:
		return true
	default:
		return false
	}
}

// NeedsBackupOnCommit reports whether committing a rebuild of f invalidates
// a package signature the platform checks (Xpi/Apk). Commit copies such an
// original to a backup before replacing it; no warning is emitted.
func (f ContainerFormat) NeedsBackupOnCommit() bool {
	return f == Xpi || f == Apk
}

// NeedsNaturalOrder reports whether f must emit entries in natural
// (numeric-aware) order rather than discovery order (Cbz/Cbt).
func (f ContainerFormat) NeedsNaturalOrder() bool {
	return f == Cbz || f == Cbt
}

// ParseFormatName maps a short format name, as printed by String, back to
// its ContainerFormat. Used to decode the unencodable_target_format
// setting, which is expressed as a name rather than a MIME type.
func ParseFormatName(name string) (ContainerFormat, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for f, n := range formatNames {
		if n == name && f != Unknown {
			return f, true
		}
	}
	return Unknown, false
}

// ParseFormat maps a MIME string to a ContainerFormat, matching on the
// canonical media types used by the mimetype detector.
func ParseFormat(mime string) ContainerFormat {
	mime = strings.ToLower(strings.TrimSpace(mime))
	switch mime {
	case "application/zip":
		return Zip
	case "application/x-7z-compressed":
		return SevenZip
	case "application/x-tar":
		return Tar
	case "application/gzip", "application/x-gzip":
		return GZip
	case "application/x-bzip2":
		return BZip2
	case "application/x-xz":
		return Xz
	case "application/vnd.rar", "application/x-rar-compressed":
		return Rar
	case "application/x-ms-wim":
		return Wim
	case "application/vnd.openxmlformats-officedocument.wordprocessingml.document":
		return Docx
	case "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":
		return Xlsx
	case "application/vnd.openxmlformats-officedocument.presentationml.presentation":
		return Pptx
	case "application/vnd.oasis.opendocument.text":
		return Odt
	case "application/vnd.oasis.opendocument.spreadsheet":
		return Ods
	case "application/vnd.oasis.opendocument.presentation":
		return Odp
	case "application/vnd.oasis.opendocument.graphics":
		return Odg
	case "application/vnd.oasis.opendocument.formula":
		return Odf
	case "application/epub+zip":
		return Epub
	case "application/vnd.comicbook+zip":
		return Cbz
	case "application/x-cbt":
		return Cbt
	case "application/java-archive":
		return Jar
	case "application/x-xpinstall":
		return Xpi
	case "image/openraster":
		return Ora
	case "model/vnd.dwfx+xps":
		return Dwfx
	case "application/vnd.ms-xpsdocument":
		return Xps
	case "application/vnd.android.package-archive":
		return Apk
	case "application/pdf":
		return Pdf
	default:
		return Unknown
	}
}
