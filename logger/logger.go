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

// Package logger provides structured, leveled logging for the pipeline,
// backed by logrus with an optional hclog facade for third-party
// collaborators that expect one.
package logger

import (
	"io"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

type Level uint8

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) logrus() logrus.Level {
	switch l {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Fields carries contextual key/value pairs attached to a single log entry,
// e.g. the file path or container being processed.
type Fields map[string]interface{}

// Logger is the logging surface consumed by every package in this module.
// It intentionally mirrors only the slice of golib's Logger interface this
// module exercises: level-gated entries with attached fields.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warning(msg string, fields Fields)
	Error(msg string, fields Fields)
	SetLevel(lvl Level)
	GetLevel() Level
}

type logger struct {
	mu  sync.Mutex
	lvl atomic.Uint32
	out *logrus.Logger
}

// New builds a Logger writing to w at the given minimal level.
func New(w io.Writer, lvl Level) Logger {
	l := &logger{out: logrus.New()}
	l.out.SetOutput(w)
	l.out.SetLevel(lvl.logrus())
	l.lvl.Store(uint32(lvl))
	return l
}

func (l *logger) entry(f Fields) *logrus.Entry {
	if len(f) == 0 {
		return logrus.NewEntry(l.out)
	}
	return l.out.WithFields(logrus.Fields(f))
}

func (l *logger) Debug(msg string, f Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(f).Debug(msg)
}

func (l *logger) Info(msg string, f Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(f).Info(msg)
}

func (l *logger) Warning(msg string, f Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(f).Warning(msg)
}

func (l *logger) Error(msg string, f Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entry(f).Error(msg)
}

func (l *logger) SetLevel(lvl Level) {
	l.lvl.Store(uint32(lvl))
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.SetLevel(lvl.logrus())
}

func (l *logger) GetLevel() Level {
	return Level(l.lvl.Load())
}
