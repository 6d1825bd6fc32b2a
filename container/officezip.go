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
	"archive/zip"
	"compress/flate"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/model"
	"github.com/sabouaram/fileopt/processor"
)

// OfficeZip handles every ZIP-bundled office or compound-document format:
// OOXML (Docx/Xlsx/Pptx), ODF (Odt/Ods/Odp/Odg/Odf), and the family of
// plain ZIP-with-a-convention formats (Epub, Cbz, Cbt, Jar, Xpi, Ora, Dwfx,
// Xps, Apk). Extraction is identical to a plain Zip; only the rebuild
// differs, per format, in entry ordering and which leaf entries get a
// lossless re-encode pass before being written.
type OfficeZip struct {
	Format model.ContainerFormat
}

func (o OfficeZip) Name() string        { return o.Format.String() }
func (o OfficeZip) CanExtract() bool    { return true }
func (o OfficeZip) CanRecompress() bool { return false }

func (o OfficeZip) Recompress(string, string, processor.Options) error {
	return ferrors.New(ferrors.CodecException, "office zip engines do not implement Recompress")
}

func (o OfficeZip) Prepare(path string, opts processor.Options) (*model.ContainerJob, error) {
	dir, err := newTempDir(o.Format.String())
	if err != nil {
		return nil, ferrors.New(ferrors.ExtractionFailure, "temp dir", err)
	}
	job := model.NewContainerJob(path, dir, o.Format)

	zr, err := zip.OpenReader(path)
	if err != nil {
		return job, ferrors.New(ferrors.ExtractionFailure, "open archive", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		dest, ok := SanitizeEntry(dir, f.Name)
		if !ok {
			job.Warnings = append(job.Warnings, "rejected unsafe entry: "+f.Name)
			continue
		}

		if f.FileInfo().IsDir() {
			_ = os.MkdirAll(dest, 0o755)
			continue
		}

		if err = extractZipEntry(f, dest); err != nil {
			job.Warnings = append(job.Warnings, "extract failed for "+f.Name+": "+err.Error())
			continue
		}

		// Prepare does not recurse into office/compound document leaves,
		// and adds no Children. Each leaf goes to the orchestrator, which
		// resolves it through the registry like any other path, so an
		// embedded object that sniffs as a container is extracted and
		// rebuilt there as a job of its own.
		job.FileList = append(job.FileList, dest)
	}

	return job, nil
}

func (o OfficeZip) Finalize(job *model.ContainerJob, opts processor.Options) (bool, int64, error) {
	defer os.RemoveAll(job.TempDir)

	names, byPath := entryNames(entries(job))
	names = OrderEntries(job.Format, names)

	candidate := siblingTemp(job.OriginalPath)
	out, err := os.Create(candidate)
	if err != nil {
		return false, 0, ferrors.New(ferrors.WriteFailure, "create candidate", err)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	for _, name := range names {
		if err = o.writeEntry(zw, job.Format, name, byPath[name], opts); err != nil {
			_ = zw.Close()
			_ = out.Close()
			_ = os.Remove(candidate)
			return false, 0, ferrors.New(ferrors.WriteFailure, "write entry "+name, err)
		}
	}

	if err = zw.Close(); err != nil {
		_ = out.Close()
		_ = os.Remove(candidate)
		return false, 0, ferrors.New(ferrors.WriteFailure, "close archive", err)
	}
	if err = out.Close(); err != nil {
		_ = os.Remove(candidate)
		return false, 0, ferrors.New(ferrors.WriteFailure, "close candidate file", err)
	}

	return Commit(job.OriginalPath, candidate, job.Format, opts.DryRun)
}

func (o OfficeZip) writeEntry(zw *zip.Writer, format model.ContainerFormat, name, srcPath string, opts processor.Options) error {
	if format == model.Epub && name == "mimetype" {
		hdr := &zip.FileHeader{Name: name, Method: zip.Store, Modified: zeroTime()}
		hdr.SetMode(0o644)
		w, err := zw.CreateHeader(hdr)
		if err != nil {
			return err
		}
		in, err := os.Open(srcPath)
		if err != nil {
			return err
		}
		defer in.Close()
		_, err = io.Copy(w, in)
		return err
	}

	finalSrc := srcPath
	if needsImageReencode(format, name) {
		reenc, err := reencodeImage(name, srcPath)
		if err == nil {
			defer os.Remove(reenc)
			finalSrc = reenc
		}
	}

	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: zeroTime()}
	hdr.SetMode(0o644)
	w, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}

	in, err := os.Open(finalSrc)
	if err != nil {
		return err
	}
	defer in.Close()

	_, err = io.Copy(w, in)
	return err
}

func needsImageReencode(format model.ContainerFormat, name string) bool {
	if !format.IsOOXML() && !format.IsODF() {
		return false
	}
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".png" || ext == ".jpg" || ext == ".jpeg"
}

func reencodeImage(name, srcPath string) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	dest := srcPath + ".reenc"

	var codec processor.Processor
	if ext == ".png" {
		codec = processor.PngCodec{}
	} else {
		codec = processor.JpegCodec{}
	}

	if err := codec.Recompress(srcPath, dest, processor.Options{}); err != nil {
		return "", err
	}

	in, ierr := os.Stat(srcPath)
	out, oerr := os.Stat(dest)
	if ierr == nil && oerr == nil && out.Size() >= in.Size() {
		_ = os.Remove(dest)
		return "", ferrors.New(ferrors.NoImprovement, "reencoded image not smaller")
	}

	return dest, nil
}
