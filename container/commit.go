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
	"os"

	"github.com/sabouaram/fileopt/internal/ferrors"
	"github.com/sabouaram/fileopt/model"
)

// ShouldCommit applies the universal commit rule: replace the original only
// when the candidate exists, is nonzero, and is either strictly smaller or
// the original was itself empty.
func ShouldCommit(origSize, newSize int64) bool {
	return newSize > 0 && (origSize == 0 || newSize < origSize)
}

// Commit renames candidatePath over originalPath when the commit rule
// passes, backing up originalPath first for formats whose on-disk signature
// a rebuild invalidates. It always removes candidatePath when it does not
// take over originalPath's name.
func Commit(originalPath, candidatePath string, format model.ContainerFormat, dryRun bool) (committed bool, finalSize int64, err error) {
	origInfo, statErr := os.Stat(originalPath)
	var origSize int64
	if statErr == nil {
		origSize = origInfo.Size()
	}

	candInfo, err := os.Stat(candidatePath)
	if err != nil {
		return false, origSize, nil
	}
	newSize := candInfo.Size()

	if !ShouldCommit(origSize, newSize) {
		_ = os.Remove(candidatePath)
		return false, origSize, nil
	}

	if dryRun {
		_ = os.Remove(candidatePath)
		return false, origSize, nil
	}

	if format.NeedsBackupOnCommit() {
		if err = copyFile(originalPath, originalPath+".bak"); err != nil {
			_ = os.Remove(candidatePath)
			return false, origSize, ferrors.New(ferrors.WriteFailure, "backup before commit", err)
		}
	}

	if err = os.Rename(candidatePath, originalPath); err != nil {
		_ = os.Remove(candidatePath)
		return false, origSize, ferrors.New(ferrors.RenameFailure, "commit rename", err)
	}

	return true, newSize, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err = out.ReadFrom(in); err != nil {
		return err
	}
	return out.Close()
}
