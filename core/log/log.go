// Copyright (C) 2026 The Skyline Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package log provides leveled logging carried through context.Context.
//
// A Handler is stored on the context with PutHandler; the package-level
// functions V, D, I, W, E and F build a Message from the context and hand it
// to the Handler, provided it passes the minimum severity installed with
// PutSeverity.
package log

import (
	"context"
	"fmt"
	"time"
)

// Logger provides a logging interface detached from a context.
type Logger struct {
	handler Handler
	minimum Severity
	tag     string
}

// From returns a new Logger from the context ctx.
func From(ctx context.Context) *Logger {
	return &Logger{
		handler: GetHandler(ctx),
		minimum: GetSeverity(ctx),
		tag:     GetTag(ctx),
	}
}

// V logs a verbose message to the logging target.
func V(ctx context.Context, fmt string, args ...interface{}) { From(ctx).V(fmt, args...) }

// D logs a debug message to the logging target.
func D(ctx context.Context, fmt string, args ...interface{}) { From(ctx).D(fmt, args...) }

// I logs an info message to the logging target.
func I(ctx context.Context, fmt string, args ...interface{}) { From(ctx).I(fmt, args...) }

// W logs a warning message to the logging target.
func W(ctx context.Context, fmt string, args ...interface{}) { From(ctx).W(fmt, args...) }

// E logs an error message to the logging target.
func E(ctx context.Context, fmt string, args ...interface{}) { From(ctx).E(fmt, args...) }

// F logs a fatal message to the logging target.
// If stopProcess is true then the message indicates the process should stop.
func F(ctx context.Context, stopProcess bool, fmt string, args ...interface{}) {
	From(ctx).F(fmt, stopProcess, args...)
}

// Err logs the error err with a message prefix to the logging target, and
// returns err for chaining.
func Err(ctx context.Context, err error, msg string) error {
	if err != nil {
		From(ctx).E("%s: %v", msg, err)
	}
	return err
}

// V logs a verbose message to the logging target.
func (l *Logger) V(fmt string, args ...interface{}) { l.Logf(Verbose, false, fmt, args...) }

// D logs a debug message to the logging target.
func (l *Logger) D(fmt string, args ...interface{}) { l.Logf(Debug, false, fmt, args...) }

// I logs an info message to the logging target.
func (l *Logger) I(fmt string, args ...interface{}) { l.Logf(Info, false, fmt, args...) }

// W logs a warning message to the logging target.
func (l *Logger) W(fmt string, args ...interface{}) { l.Logf(Warning, false, fmt, args...) }

// E logs an error message to the logging target.
func (l *Logger) E(fmt string, args ...interface{}) { l.Logf(Error, false, fmt, args...) }

// F logs a fatal message to the logging target.
// If stopProcess is true then the message indicates the process should stop.
func (l *Logger) F(fmt string, stopProcess bool, args ...interface{}) {
	l.Logf(Fatal, stopProcess, fmt, args...)
}

// Logf logs a printf-style message at severity s to the logging target.
func (l *Logger) Logf(s Severity, stopProcess bool, format string, args ...interface{}) {
	h := l.handler
	if h == nil || s < l.minimum {
		return
	}
	h.Handle(l.Messagef(s, stopProcess, format, args...))
}

// Messagef returns a new Message with the given severity and text.
func (l *Logger) Messagef(s Severity, stopProcess bool, format string, args ...interface{}) *Message {
	return &Message{
		Text:        fmt.Sprintf(format, args...),
		Time:        time.Now(),
		Severity:    s,
		StopProcess: stopProcess,
		Tag:         l.tag,
	}
}
