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

package logger

import (
	"io"
	stdlog "log"

	"github.com/hashicorp/go-hclog"
)

// AsHCLog adapts Logger to hclog.Logger so third-party components that
// expect hclog (e.g. a future Consul/Vault-flavored collaborator) can log
// through the same sink as the rest of the pipeline.
func AsHCLog(l Logger, name string) hclog.Logger {
	return &hclogFacade{l: l, name: name}
}

type hclogFacade struct {
	l    Logger
	name string
}

func (h *hclogFacade) argsToFields(args []interface{}) Fields {
	f := Fields{}
	for i := 0; i+1 < len(args); i += 2 {
		if k, ok := args[i].(string); ok {
			f[k] = args[i+1]
		}
	}
	return f
}

func (h *hclogFacade) Log(level hclog.Level, msg string, args ...interface{}) {
	switch level {
	case hclog.Trace, hclog.Debug:
		h.l.Debug(msg, h.argsToFields(args))
	case hclog.Info:
		h.l.Info(msg, h.argsToFields(args))
	case hclog.Warn:
		h.l.Warning(msg, h.argsToFields(args))
	case hclog.Error:
		h.l.Error(msg, h.argsToFields(args))
	}
}

func (h *hclogFacade) Trace(msg string, args ...interface{}) { h.l.Debug(msg, h.argsToFields(args)) }
func (h *hclogFacade) Debug(msg string, args ...interface{}) { h.l.Debug(msg, h.argsToFields(args)) }
func (h *hclogFacade) Info(msg string, args ...interface{})  { h.l.Info(msg, h.argsToFields(args)) }
func (h *hclogFacade) Warn(msg string, args ...interface{})  { h.l.Warning(msg, h.argsToFields(args)) }
func (h *hclogFacade) Error(msg string, args ...interface{}) { h.l.Error(msg, h.argsToFields(args)) }

func (h *hclogFacade) IsTrace() bool { return h.l.GetLevel() == DebugLevel }
func (h *hclogFacade) IsDebug() bool { return h.l.GetLevel() <= DebugLevel }
func (h *hclogFacade) IsInfo() bool  { return h.l.GetLevel() <= InfoLevel }
func (h *hclogFacade) IsWarn() bool  { return h.l.GetLevel() <= WarnLevel }
func (h *hclogFacade) IsError() bool { return h.l.GetLevel() <= ErrorLevel }

func (h *hclogFacade) ImpliedArgs() []interface{} { return nil }
func (h *hclogFacade) With(args ...interface{}) hclog.Logger {
	return h
}
func (h *hclogFacade) Name() string { return h.name }
func (h *hclogFacade) Named(name string) hclog.Logger {
	if h.name == "" {
		return AsHCLog(h.l, name)
	}
	return AsHCLog(h.l, h.name+"."+name)
}
func (h *hclogFacade) ResetNamed(name string) hclog.Logger { return AsHCLog(h.l, name) }
func (h *hclogFacade) SetLevel(level hclog.Level) {
	switch level {
	case hclog.Trace, hclog.Debug:
		h.l.SetLevel(DebugLevel)
	case hclog.Info:
		h.l.SetLevel(InfoLevel)
	case hclog.Warn:
		h.l.SetLevel(WarnLevel)
	case hclog.Error:
		h.l.SetLevel(ErrorLevel)
	}
}
func (h *hclogFacade) GetLevel() hclog.Level { return hclog.Info }
func (h *hclogFacade) StandardLogger(opts *hclog.StandardLoggerOptions) *stdlog.Logger {
	return stdlog.New(h.StandardWriter(opts), "", 0)
}
func (h *hclogFacade) StandardWriter(opts *hclog.StandardLoggerOptions) io.Writer {
	return &stdWriter{h: h}
}

type stdWriter struct {
	h *hclogFacade
}

func (w *stdWriter) Write(p []byte) (int, error) {
	w.h.l.Info(string(p), nil)
	return len(p), nil
}
