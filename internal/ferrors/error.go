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

package ferrors

import (
	"fmt"
	"strings"
)

// Error wraps a Code with a message and an optional chain of parent errors,
// so a container finalize failure can carry the child failure that caused it
// without losing either message.
type Error interface {
	error
	Code() Code
	Parent() []error
	Add(parent ...error) Error
	Is(code Code) bool
}

type fErr struct {
	code Code
	msg  string
	par  []error
}

// New builds an Error for the given code and message, attaching any
// non-nil parents.
func New(code Code, msg string, parent ...error) Error {
	e := &fErr{code: code, msg: msg}
	return e.Add(parent...)
}

// Newf is New with fmt.Sprintf-style formatting of msg.
func Newf(code Code, format string, args ...interface{}) Error {
	return New(code, fmt.Sprintf(format, args...))
}

func (e *fErr) Error() string {
	var b strings.Builder
	b.WriteString(e.code.String())
	if e.msg != "" {
		b.WriteString(": ")
		b.WriteString(e.msg)
	}
	for _, p := range e.par {
		if p == nil {
			continue
		}
		b.WriteString(" <- ")
		b.WriteString(p.Error())
	}
	return b.String()
}

func (e *fErr) Code() Code {
	return e.code
}

func (e *fErr) Parent() []error {
	return e.par
}

func (e *fErr) Add(parent ...error) Error {
	for _, p := range parent {
		if p != nil {
			e.par = append(e.par, p)
		}
	}
	return e
}

func (e *fErr) Is(code Code) bool {
	if e.code == code {
		return true
	}
	for _, p := range e.par {
		if fe, ok := p.(Error); ok && fe.Is(code) {
			return true
		}
	}
	return false
}
