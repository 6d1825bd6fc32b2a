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

package processor

import "sync"

// Registry resolves a file to a Processor by MIME type first, falling back
// to extension. It is safe for concurrent use; registration normally
// happens once at startup, lookups happen throughout Phase 1 and Phase 2.
type Registry struct {
	mu        sync.Mutex
	byMime    map[string]Processor
	byExt     map[string]Processor
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byMime: make(map[string]Processor),
		byExt:  make(map[string]Processor),
	}
}

// RegisterMime associates mime with p, overwriting any previous entry.
func (r *Registry) RegisterMime(mime string, p Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byMime[mime] = p
}

// RegisterExtension associates ext (leading dot, case-insensitive already
// expected from the caller) with p, overwriting any previous entry.
func (r *Registry) RegisterExtension(ext string, p Processor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byExt[ext] = p
}

// FindByMime returns the Processor registered for mime, or nil.
func (r *Registry) FindByMime(mime string) Processor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byMime[mime]
}

// FindByExtension returns the Processor registered for ext, or nil.
func (r *Registry) FindByExtension(ext string) Processor {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byExt[ext]
}

// Resolve applies the registry's lookup policy: MIME first, extension on
// miss. It returns nil when neither matches.
func (r *Registry) Resolve(mime, ext string) Processor {
	if p := r.FindByMime(mime); p != nil {
		return p
	}
	return r.FindByExtension(ext)
}
