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

// Package eventbus implements a synchronous, type-dispatched publish/subscribe
// bus carrying phase events from the orchestrator to the result collector and
// any other interested subscriber (e.g. metrics).
//
// The bus is intentionally small: registration keyed by reflect.Type rather
// than a closed sum type, mirroring the registry pattern used throughout the
// config package of the reference library (a mutex-guarded map of slices),
// but parametrized with generics instead of a string key.
package eventbus

import (
	"reflect"
	"sync"
)

// Handler is invoked synchronously, on the publisher's goroutine, whenever a
// matching event is published. Handlers must not block and must not publish
// back into the same Bus from within the call (reentrancy is undefined).
type Handler[E any] func(E)

// Bus dispatches published events to every handler subscribed for that
// event's concrete type. The zero value is not usable; construct with New.
type Bus struct {
	mu sync.Mutex
	h  map[reflect.Type][]func(interface{})
}

// New constructs an empty Bus.
func New() *Bus {
	return &Bus{h: make(map[reflect.Type][]func(interface{}))}
}

// Subscribe registers handler for events of type E. Multiple handlers may be
// registered for the same type; they run in subscription order.
func Subscribe[E any](b *Bus, handler Handler[E]) {
	var zero E
	t := reflect.TypeOf(zero)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.h[t] = append(b.h[t], func(v interface{}) {
		handler(v.(E))
	})
}

// Publish invokes every handler registered for E's type, synchronously, while
// holding the bus's internal lock. This is the serialization point that lets
// concurrent workers in Phase 2 publish without their own locking: the lock
// here covers the full handler invocation, not just the map lookup.
func Publish[E any](b *Bus, event E) {
	t := reflect.TypeOf(event)

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, h := range b.h[t] {
		h(event)
	}
}
