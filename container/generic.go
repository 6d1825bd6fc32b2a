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
	"archive/tar"
	"archive/zip"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	dsnetbz2 "github.com/dsnet/compress/bzip2"
	"github.com/hashicorp/go-uuid"
	"github.com/ulikunitz/xz"

	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/internal/mimetype"
	"github.com/sabouaram/fileopt/model"
	"github.com/sabouaram/fileopt/processor"
)

// GenericArchive handles the non-office container families: Zip and its
// read-only relatives (SevenZip, Rar, Wim) plus the single-stream
// compressors (Tar, GZip, BZip2, Xz).
type GenericArchive struct {
	Format model.ContainerFormat
}

func (g GenericArchive) Name() string        { return g.Format.String() }
func (g GenericArchive) CanExtract() bool    { return true }
func (g GenericArchive) CanRecompress() bool { return false }

func (g GenericArchive) Recompress(string, string, processor.Options) error {
	return ferrors.New(ferrors.CodecException, "generic archive engines do not implement Recompress")
}

func newTempDir(prefix string) (string, error) {
	rnd, err := uuid.GenerateUUID()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(os.TempDir(), prefix+"_"+rnd)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func (g GenericArchive) Prepare(path string, opts processor.Options) (*model.ContainerJob, error) {
	switch g.Format {
	case model.Zip:
		return g.prepareZip(path, opts)
	case model.Tar:
		return g.prepareTar(path, opts)
	case model.GZip, model.BZip2, model.Xz:
		return g.prepareSingleStream(path, opts)
	default:
		return model.NewContainerJob(path, "", g.Format),
			ferrors.New(ferrors.ExtractionFailure, fmt.Sprintf("no extractor wired for %s", g.Format))
	}
}

func (g GenericArchive) prepareZip(path string, opts processor.Options) (*model.ContainerJob, error) {
	dir, err := newTempDir("zip")
	if err != nil {
		return nil, ferrors.New(ferrors.ExtractionFailure, "temp dir", err)
	}
	job := model.NewContainerJob(path, dir, g.Format)

	zr, err := zip.OpenReader(path)
	if err != nil {
		return job, ferrors.New(ferrors.ExtractionFailure, "open zip", err)
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

		classifyLeaf(job, dest, opts)
	}

	return job, nil
}

func extractZipEntry(f *zip.File, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, rc)
	return err
}

func (g GenericArchive) prepareTar(path string, opts processor.Options) (*model.ContainerJob, error) {
	dir, err := newTempDir("tar")
	if err != nil {
		return nil, ferrors.New(ferrors.ExtractionFailure, "temp dir", err)
	}
	job := model.NewContainerJob(path, dir, g.Format)

	f, err := os.Open(path)
	if err != nil {
		return job, ferrors.New(ferrors.ExtractionFailure, "open tar", err)
	}
	defer f.Close()

	tr := tar.NewReader(f)
	for {
		hdr, terr := tr.Next()
		if terr == io.EOF {
			break
		}
		if terr != nil {
			return job, ferrors.New(ferrors.ExtractionFailure, "read tar", terr)
		}

		dest, ok := SanitizeEntry(dir, hdr.Name)
		if !ok {
			job.Warnings = append(job.Warnings, "rejected unsafe entry: "+hdr.Name)
			continue
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			_ = os.MkdirAll(dest, 0o755)
		case tar.TypeReg:
			if err = os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
				job.Warnings = append(job.Warnings, "mkdir failed for "+hdr.Name)
				continue
			}
			out, cerr := os.Create(dest)
			if cerr != nil {
				job.Warnings = append(job.Warnings, "create failed for "+hdr.Name)
				continue
			}
			if _, err = io.Copy(out, tr); err != nil {
				job.Warnings = append(job.Warnings, "copy failed for "+hdr.Name)
			}
			_ = out.Close()
			classifyLeaf(job, dest, opts)
		case tar.TypeLink:
			target, ok := SanitizeEntry(dir, hdr.Linkname)
			if !ok {
				job.Warnings = append(job.Warnings, "hardlink target rejected: "+hdr.Linkname)
				continue
			}
			if err = os.Link(target, dest); err != nil {
				job.Warnings = append(job.Warnings, "hardlink recreation failed for "+hdr.Name+": "+err.Error())
				continue
			}
			classifyLeaf(job, dest, opts)
		case tar.TypeSymlink:
			if err = os.Symlink(hdr.Linkname, dest); err != nil {
				job.Warnings = append(job.Warnings, "symlink recreation failed for "+hdr.Name+": "+err.Error())
			}
		default:
			job.Warnings = append(job.Warnings, "skipped non-regular entry: "+hdr.Name)
		}
	}

	return job, nil
}

func (g GenericArchive) prepareSingleStream(path string, opts processor.Options) (*model.ContainerJob, error) {
	dir, err := newTempDir(g.Format.String())
	if err != nil {
		return nil, ferrors.New(ferrors.ExtractionFailure, "temp dir", err)
	}
	job := model.NewContainerJob(path, dir, g.Format)

	in, err := os.Open(path)
	if err != nil {
		return job, ferrors.New(ferrors.ExtractionFailure, "open source", err)
	}
	defer in.Close()

	var r io.Reader
	switch g.Format {
	case model.GZip:
		gr, gerr := gzip.NewReader(in)
		if gerr != nil {
			return job, ferrors.New(ferrors.ExtractionFailure, "open gzip", gerr)
		}
		defer gr.Close()
		r = gr
	case model.BZip2:
		br, berr := dsnetbz2.NewReader(in, nil)
		if berr != nil {
			return job, ferrors.New(ferrors.ExtractionFailure, "open bzip2", berr)
		}
		defer br.Close()
		r = br
	case model.Xz:
		xr, xerr := xz.NewReader(in)
		if xerr != nil {
			return job, ferrors.New(ferrors.ExtractionFailure, "open xz", xerr)
		}
		r = xr
	}

	base := trimCompressionSuffix(filepath.Base(path))
	dest := filepath.Join(dir, base)
	out, err := os.Create(dest)
	if err != nil {
		return job, ferrors.New(ferrors.ExtractionFailure, "create decompressed output", err)
	}
	if _, err = io.Copy(out, r); err != nil {
		_ = out.Close()
		return job, ferrors.New(ferrors.ExtractionFailure, "decompress", err)
	}
	_ = out.Close()

	classifyLeaf(job, dest, opts)
	return job, nil
}

func trimCompressionSuffix(name string) string {
	ext := filepath.Ext(name)
	switch ext {
	case ".gz", ".bz2", ".xz", ".tgz":
		return name[:len(name)-len(ext)]
	default:
		return name + ".decoded"
	}
}

// classifyLeaf decides whether an extracted regular file is itself a
// readable container (recurse into a child job) or a leaf destined for
// Phase 2 (append to the job's file list).
func classifyLeaf(job *model.ContainerJob, path string, opts processor.Options) {
	mime := mimetype.Sniff(path)
	format := model.ParseFormat(mime)

	if format.Readable() {
		child, err := engineFor(format).Prepare(path, opts)
		if err == nil {
			job.Children = append(job.Children, child)
			return
		}
		job.Warnings = append(job.Warnings, "nested container extraction failed for "+path+": "+err.Error())
	}

	job.FileList = append(job.FileList, path)
}

func (g GenericArchive) Finalize(job *model.ContainerJob, opts processor.Options) (bool, int64, error) {
	switch g.Format {
	case model.Zip:
		return g.finalizeZip(job, opts)
	case model.Tar:
		return g.finalizeTar(job, opts)
	case model.GZip, model.BZip2, model.Xz:
		return g.finalizeSingleStream(job, opts)
	default:
		_ = os.RemoveAll(job.TempDir)
		return false, 0, ferrors.New(ferrors.ExtractionFailure, fmt.Sprintf("no rebuilder wired for %s", g.Format))
	}
}

// archiveEntry pairs an archive-relative name with the on-disk path holding
// its content.
type archiveEntry struct {
	Name string
	Path string
}

// entries returns every leaf path with its archive-relative name, including
// nested children's committed content under their own subtree, in discovery
// order: job.FileList and job.Children are both already ordered by
// Prepare's walk, so no reordering happens here. Callers that need a plain
// name slice use entryNames rather than ranging a map, so that the default
// (non-reordered) rebuild case reproduces the same entry order every run.
func entries(job *model.ContainerJob) []archiveEntry {
	out := make([]archiveEntry, 0, len(job.FileList)+len(job.Children))
	for _, p := range job.FileList {
		rel, err := filepath.Rel(job.TempDir, p)
		if err != nil {
			continue
		}
		out = append(out, archiveEntry{Name: ArchivePath(rel), Path: p})
	}
	for _, c := range job.Children {
		rel, err := filepath.Rel(job.TempDir, c.OriginalPath)
		if err != nil {
			continue
		}
		out = append(out, archiveEntry{Name: ArchivePath(rel), Path: c.OriginalPath})
	}
	return out
}

// entryNames splits an ordered entry list into a discovery-ordered name
// slice, suitable as OrderEntries' input, and a name->path lookup for
// writing each entry's content back out.
func entryNames(ent []archiveEntry) ([]string, map[string]string) {
	names := make([]string, len(ent))
	byPath := make(map[string]string, len(ent))
	for i, e := range ent {
		names[i] = e.Name
		byPath[e.Name] = e.Path
	}
	return names, byPath
}

func (g GenericArchive) finalizeZip(job *model.ContainerJob, opts processor.Options) (bool, int64, error) {
	defer os.RemoveAll(job.TempDir)

	names, byPath := entryNames(entries(job))
	names = OrderEntries(job.Format, names)

	candidate := siblingTemp(job.OriginalPath)
	out, err := os.Create(candidate)
	if err != nil {
		return false, 0, ferrors.New(ferrors.WriteFailure, "create candidate zip", err)
	}

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})

	for _, name := range names {
		if err = writeZipEntry(zw, name, byPath[name]); err != nil {
			_ = zw.Close()
			_ = out.Close()
			_ = os.Remove(candidate)
			return false, 0, ferrors.New(ferrors.WriteFailure, "write zip entry "+name, err)
		}
	}

	if err = zw.Close(); err != nil {
		_ = out.Close()
		_ = os.Remove(candidate)
		return false, 0, ferrors.New(ferrors.WriteFailure, "close zip", err)
	}
	if err = out.Close(); err != nil {
		_ = os.Remove(candidate)
		return false, 0, ferrors.New(ferrors.WriteFailure, "close zip file", err)
	}

	ok, size, err := Commit(job.OriginalPath, candidate, job.Format, opts.DryRun)
	return ok, size, err
}

func writeZipEntry(zw *zip.Writer, name, srcPath string) error {
	hdr := &zip.FileHeader{Name: name, Method: zip.Deflate, Modified: zeroTime()}
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

func (g GenericArchive) finalizeTar(job *model.ContainerJob, opts processor.Options) (bool, int64, error) {
	defer os.RemoveAll(job.TempDir)

	names, byPath := entryNames(entries(job))
	names = OrderEntries(job.Format, names)

	candidate := siblingTemp(job.OriginalPath)
	out, err := os.Create(candidate)
	if err != nil {
		return false, 0, ferrors.New(ferrors.WriteFailure, "create candidate tar", err)
	}

	tw := tar.NewWriter(out)
	seen := make(map[model.HardlinkKey]string, len(names))
	for _, name := range names {
		srcPath := byPath[name]

		if key, ok := HardlinkKeyOf(srcPath); ok {
			if first, dup := seen[key]; dup {
				hdr := &tar.Header{
					Name:     name,
					Linkname: first,
					Typeflag: tar.TypeLink,
					Mode:     0o644,
					Format:   tar.FormatPAX,
					ModTime:  zeroTime(),
				}
				if err = tw.WriteHeader(hdr); err != nil {
					break
				}
				continue
			}
			seen[key] = name
		}

		info, serr := os.Stat(srcPath)
		if serr != nil {
			continue
		}
		hdr := &tar.Header{
			Name:    name,
			Mode:    0o644,
			Size:    info.Size(),
			Format:  tar.FormatPAX,
			ModTime: zeroTime(),
		}
		if err = tw.WriteHeader(hdr); err != nil {
			break
		}
		in, oerr := os.Open(srcPath)
		if oerr != nil {
			err = oerr
			break
		}
		_, err = io.Copy(tw, in)
		_ = in.Close()
		if err != nil {
			break
		}
	}

	if err == nil {
		err = tw.Close()
	}
	if err != nil {
		_ = out.Close()
		_ = os.Remove(candidate)
		return false, 0, ferrors.New(ferrors.WriteFailure, "write tar", err)
	}
	if err = out.Close(); err != nil {
		_ = os.Remove(candidate)
		return false, 0, ferrors.New(ferrors.WriteFailure, "close tar file", err)
	}

	return Commit(job.OriginalPath, candidate, job.Format, opts.DryRun)
}

func (g GenericArchive) finalizeSingleStream(job *model.ContainerJob, opts processor.Options) (bool, int64, error) {
	defer os.RemoveAll(job.TempDir)

	var srcPath string
	switch {
	case len(job.FileList) == 1 && len(job.Children) == 0:
		srcPath = job.FileList[0]
	case len(job.Children) == 1 && len(job.FileList) == 0:
		srcPath = job.Children[0].OriginalPath
	default:
		return false, 0, ferrors.New(ferrors.ExtractionFailure, "single-stream container lost its sole content")
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return false, 0, ferrors.New(ferrors.WriteFailure, "reopen decoded content", err)
	}
	defer in.Close()

	candidate := siblingTemp(job.OriginalPath)
	out, err := os.Create(candidate)
	if err != nil {
		return false, 0, ferrors.New(ferrors.WriteFailure, "create candidate", err)
	}

	switch g.Format {
	case model.GZip:
		w, _ := gzip.NewWriterLevel(out, gzip.BestCompression)
		_, err = io.Copy(w, in)
		if err == nil {
			err = w.Close()
		}
	case model.BZip2:
		w, werr := dsnetbz2.NewWriter(out, &dsnetbz2.WriterConfig{Level: dsnetbz2.BestCompression})
		if werr != nil {
			err = werr
			break
		}
		_, err = io.Copy(w, in)
		if err == nil {
			err = w.Close()
		}
	case model.Xz:
		cfg := xz.WriterConfig{}
		w, werr := cfg.NewWriter(out)
		if werr != nil {
			err = werr
			break
		}
		_, err = io.Copy(w, in)
		if err == nil {
			err = w.Close()
		}
	}

	if err != nil {
		_ = out.Close()
		_ = os.Remove(candidate)
		return false, 0, ferrors.New(ferrors.WriteFailure, "recompress single stream", err)
	}
	if err = out.Close(); err != nil {
		_ = os.Remove(candidate)
		return false, 0, ferrors.New(ferrors.WriteFailure, "close candidate", err)
	}

	return Commit(job.OriginalPath, candidate, job.Format, opts.DryRun)
}
