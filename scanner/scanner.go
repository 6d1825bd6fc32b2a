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

// Package scanner expands user-supplied inputs (files, directories, and a
// single "-" for stdin) into a deduplicated, ordered list of regular file
// paths, applying the junk filter and include/exclude regex lists before
// the orchestrator ever sees a path.
package scanner

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mitchellh/go-homedir"

	"github.com/sabouaram/fileopt/logger"
)

// Options configures one Scan call.
type Options struct {
	Recursive       bool
	IncludePatterns []string
	ExcludePatterns []string
	Stdin           io.Reader
}

var junkNames = map[string]bool{
	".ds_store":   true,
	"desktop.ini": true,
}

// Scan expands inputs into an ordered, deduplicated list of regular files.
// At most one entry of inputs may be "-"; a second one is ignored with a
// warning.
func Scan(inputs []string, opts Options, log logger.Logger) ([]string, error) {
	include, err := compileAll(opts.IncludePatterns, log)
	if err != nil {
		return nil, err
	}
	exclude, err := compileAll(opts.ExcludePatterns, log)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []string
	stdinUsed := false

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if seen[abs] {
			return
		}
		if isJunk(abs) {
			return
		}
		if !passesFilters(abs, include, exclude, len(opts.IncludePatterns) > 0, log) {
			return
		}
		seen[abs] = true
		out = append(out, abs)
	}

	for _, in := range inputs {
		expanded, err := homedir.Expand(in)
		if err != nil {
			expanded = in
		}

		if expanded == "-" {
			if stdinUsed {
				log.Warning("ignoring second stdin marker", logger.Fields{"input": in})
				continue
			}
			stdinUsed = true
			tmp, err := drainStdin(opts.Stdin)
			if err != nil {
				return nil, err
			}
			add(tmp)
			continue
		}

		info, err := os.Stat(expanded)
		if err != nil {
			log.Warning("input not found", logger.Fields{"path": expanded, "error": err.Error()})
			continue
		}

		if !info.IsDir() {
			add(expanded)
			continue
		}

		walkDir(expanded, opts.Recursive, add, log)
	}

	return out, nil
}

func walkDir(root string, recursive bool, add func(string), log logger.Logger) {
	entries, err := os.ReadDir(root)
	if err != nil {
		log.Warning("cannot read directory", logger.Fields{"path": root, "error": err.Error()})
		return
	}

	for _, e := range entries {
		full := filepath.Join(root, e.Name())
		if e.IsDir() {
			if recursive {
				walkDir(full, recursive, add, log)
			}
			continue
		}
		add(full)
	}
}

// drainStdin copies stdin (or the supplied reader) to a temp file and
// returns its path, so the rest of the pipeline only ever deals with real
// paths on disk.
func drainStdin(r io.Reader) (string, error) {
	if r == nil {
		r = os.Stdin
	}

	f, err := os.CreateTemp("", "fileopt_stdin_*")
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err = io.Copy(w, r); err != nil {
		return "", err
	}
	if err = w.Flush(); err != nil {
		return "", err
	}

	return f.Name(), nil
}

func isJunk(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, "._") {
		return true
	}
	return junkNames[strings.ToLower(name)]
}

func compileAll(patterns []string, log logger.Logger) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			log.Warning("invalid regex, treating as non-matching", logger.Fields{"pattern": p, "error": err.Error()})
			continue
		}
		out = append(out, re)
	}
	return out, nil
}

// passesFilters reports whether path survives the exclude list and, when any
// include pattern was configured, matches at least one compiled include
// pattern. Invalid include patterns were dropped by compileAll, so a list of
// only invalid patterns matches nothing.
func passesFilters(path string, include, exclude []*regexp.Regexp, includeConfigured bool, _ logger.Logger) bool {
	for _, re := range exclude {
		if re.MatchString(path) {
			return false
		}
	}

	if !includeConfigured {
		return true
	}
	for _, re := range include {
		if re.MatchString(path) {
			return true
		}
	}
	return false
}
