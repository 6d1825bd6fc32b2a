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
	"github.com/sabouaram/fileopt/model"
	"github.com/sabouaram/fileopt/processor"
)

// engineFor returns the family engine responsible for extracting format.
// Prepare calls this directly (rather than going through a processor
// Registry) so that recursing into a nested container never needs to leave
// this package.
func engineFor(format model.ContainerFormat) processor.Processor {
	switch {
	case format.IsOfficeZip():
		return OfficeZip{Format: format}
	case format == model.Pdf:
		return Pdf{}
	default:
		return GenericArchive{Format: format}
	}
}

// EngineFor exposes engineFor to the orchestrator, which already holds a
// *model.ContainerJob (built during Phase 1) and needs the matching engine
// to call Finalize on it in Phase 3 without re-resolving through the
// Registry.
func EngineFor(format model.ContainerFormat) processor.Processor {
	return engineFor(format)
}

// RegisterEngines wires every container family this package implements into
// r, keyed by both MIME type and extension.
func RegisterEngines(r *processor.Registry) {
	families := []model.ContainerFormat{
		model.Zip, model.SevenZip, model.Tar, model.GZip, model.BZip2, model.Xz, model.Rar, model.Wim,
		model.Docx, model.Xlsx, model.Pptx, model.Odt, model.Ods, model.Odp, model.Odg, model.Odf,
		model.Epub, model.Cbz, model.Cbt, model.Jar, model.Xpi, model.Ora, model.Dwfx, model.Xps, model.Apk,
		model.Pdf,
	}

	ext := map[model.ContainerFormat]string{
		model.Zip: ".zip", model.SevenZip: ".7z", model.Tar: ".tar", model.GZip: ".gz",
		model.BZip2: ".bz2", model.Xz: ".xz", model.Rar: ".rar", model.Wim: ".wim",
		model.Docx: ".docx", model.Xlsx: ".xlsx", model.Pptx: ".pptx", model.Odt: ".odt",
		model.Ods: ".ods", model.Odp: ".odp", model.Odg: ".odg", model.Odf: ".odf",
		model.Epub: ".epub", model.Cbz: ".cbz", model.Cbt: ".cbt", model.Jar: ".jar",
		model.Xpi: ".xpi", model.Ora: ".ora", model.Dwfx: ".dwfx", model.Xps: ".xps",
		model.Apk: ".apk", model.Pdf: ".pdf",
	}

	mime := map[model.ContainerFormat]string{
		model.Zip: "application/zip", model.SevenZip: "application/x-7z-compressed",
		model.Tar: "application/x-tar", model.GZip: "application/gzip",
		model.BZip2: "application/x-bzip2", model.Xz: "application/x-xz",
		model.Rar: "application/vnd.rar", model.Wim: "application/x-ms-wim",
		model.Docx: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		model.Xlsx: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		model.Pptx: "application/vnd.openxmlformats-officedocument.presentationml.presentation",
		model.Odt:  "application/vnd.oasis.opendocument.text",
		model.Ods:  "application/vnd.oasis.opendocument.spreadsheet",
		model.Odp:  "application/vnd.oasis.opendocument.presentation",
		model.Odg:  "application/vnd.oasis.opendocument.graphics",
		model.Odf:  "application/vnd.oasis.opendocument.formula",
		model.Epub: "application/epub+zip", model.Cbz: "application/vnd.comicbook+zip",
		model.Cbt: "application/x-cbt", model.Jar: "application/java-archive",
		model.Xpi: "application/x-xpinstall", model.Ora: "image/openraster",
		model.Dwfx: "model/vnd.dwfx+xps", model.Xps: "application/vnd.ms-xpsdocument",
		model.Apk: "application/vnd.android.package-archive", model.Pdf: "application/pdf",
	}

	for _, f := range families {
		eng := engineFor(f)
		if m, ok := mime[f]; ok {
			r.RegisterMime(m, eng)
		}
		if e, ok := ext[f]; ok {
			r.RegisterExtension(e, eng)
		}
	}
}
