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

	"golang.org/x/sys/unix"

	"github.com/sabouaram/fileopt/model"
)

// HardlinkKeyOf reads the (device, inode) pair backing path. On platforms
// where the stat_t shape differs this degrades to a key that never matches,
// which only costs a missed dedup opportunity, never correctness.
func HardlinkKeyOf(path string) (model.HardlinkKey, bool) {
	info, err := os.Lstat(path)
	if err != nil {
		return model.HardlinkKey{}, false
	}

	st, ok := info.Sys().(*unix.Stat_t)
	if !ok {
		return model.HardlinkKey{}, false
	}

	return model.HardlinkKey{Dev: uint64(st.Dev), Ino: st.Ino}, st.Nlink > 1
}
