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

package model

// HardlinkKey identifies a POSIX (device, inode) pair so the rebuild step
// can emit the second occurrence of a hard-linked file as a zero-data
// hardlink entry.
type HardlinkKey struct {
	Dev uint64
	Ino uint64
}

// ContainerJob is an in-progress container operation. It is populated by
// Prepare (single-threaded, Phase 1) and consumed by Finalize
// (single-threaded, Phase 3); no concurrent phase ever touches it, so it
// carries no internal locking.
type ContainerJob struct {
	OriginalPath string
	TempDir      string
	Format       ContainerFormat

	// FileList holds absolute paths, inside TempDir, of extracted leaf
	// files (files the engine does not itself recognize as a readable
	// container).
	FileList []string

	// Children holds nested ContainerJobs discovered during Prepare,
	// ordered by discovery.
	Children []*ContainerJob

	// Hardlinks maps a (dev, ino) pair to an archive-relative path. No
	// engine fills it: the Tar rebuild tracks hard links in its own local
	// map while writing entries.
	Hardlinks map[HardlinkKey]string

	// Warnings accumulates non-fatal issues (skipped entries, symlink
	// recreation failures) surfaced by Prepare/Finalize.
	Warnings []string

	// Extra holds engine-private working state that needs to survive from
	// Prepare to Finalize but has no meaning to the orchestrator (e.g. the
	// PDF handler's per-object stream descriptors). Opaque outside the
	// owning engine.
	Extra interface{}
}

// NewContainerJob builds an empty job rooted at tempDir.
func NewContainerJob(originalPath, tempDir string, format ContainerFormat) *ContainerJob {
	return &ContainerJob{
		OriginalPath: originalPath,
		TempDir:      tempDir,
		Format:       format,
		Hardlinks:    make(map[HardlinkKey]string),
	}
}

// AllLeaves returns every leaf path owned transitively by this job: its own
// FileList plus each child's AllLeaves.
func (j *ContainerJob) AllLeaves() []string {
	out := append([]string(nil), j.FileList...)
	for _, c := range j.Children {
		out = append(out, c.AllLeaves()...)
	}
	return out
}

// EncodeMode selects how the leaf codecs compose candidate compressors. It
// is opaque to the core; the orchestrator only threads it through to
// Processor.Recompress.
type EncodeMode uint8

const (
	Pipe EncodeMode = iota
	Parallel
)

func (m EncodeMode) String() string {
	if m == Parallel {
		return "parallel"
	}
	return "pipe"
}
