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
	"sort"
	"unicode"

	"github.com/sabouaram/fileopt/model"
)

// OrderEntries sorts archive-relative paths according to format's rebuild
// convention: discovery order is preserved for every family except Cbz/Cbt,
// which sort in natural (numeric-aware) order; OOXML formats additionally
// pin [Content_Types].xml first, and EPUB pins mimetype first.
func OrderEntries(format model.ContainerFormat, paths []string) []string {
	out := append([]string(nil), paths...)

	switch {
	case format.NeedsNaturalOrder():
		sort.SliceStable(out, func(i, j int) bool { return naturalLess(out[i], out[j]) })
	case format.IsOOXML():
		pinFirst(out, "[Content_Types].xml")
	case format == model.Epub:
		pinFirst(out, "mimetype")
	}

	return out
}

func pinFirst(paths []string, name string) {
	for i, p := range paths {
		if p == name {
			copy(paths[1:i+1], paths[0:i])
			paths[0] = name
			return
		}
	}
}

// naturalLess compares two archive paths the way a comic-book reader
// expects page order to sort: runs of digits compare numerically rather
// than lexically, so "page9" sorts before "page10".
func naturalLess(a, b string) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		ca, cb := rune(a[ai]), rune(b[bi])

		if unicode.IsDigit(ca) && unicode.IsDigit(cb) {
			as, bs := ai, bi
			for ai < len(a) && unicode.IsDigit(rune(a[ai])) {
				ai++
			}
			for bi < len(b) && unicode.IsDigit(rune(b[bi])) {
				bi++
			}
			na, nb := trimLeadingZeros(a[as:ai]), trimLeadingZeros(b[bs:bi])
			if len(na) != len(nb) {
				return len(na) < len(nb)
			}
			if na != nb {
				return na < nb
			}
			continue
		}

		if ca != cb {
			return ca < cb
		}
		ai++
		bi++
	}
	return len(a)-ai < len(b)-bi
}

func trimLeadingZeros(s string) string {
	i := 0
	for i < len(s)-1 && s[i] == '0' {
		i++
	}
	return s[i:]
}
