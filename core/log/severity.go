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

package log

import (
	"context"
	"fmt"
	"strings"
)

// Severity defines the severity of a logging message.
// The levels match the importance order of the message, low to high.
type Severity int

const (
	// Verbose is the severity for high-frequency tracing messages.
	Verbose Severity = iota
	// Debug is the severity for debugging messages.
	Debug
	// Info is the severity for informational messages.
	Info
	// Warning is the severity for warning messages.
	Warning
	// Error is the severity for error messages.
	Error
	// Fatal is the severity for unrecoverable error messages.
	Fatal
)

func (s Severity) String() string {
	switch s {
	case Verbose:
		return "Verbose"
	case Debug:
		return "Debug"
	case Info:
		return "Info"
	case Warning:
		return "Warning"
	case Error:
		return "Error"
	case Fatal:
		return "Fatal"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Short returns the single-character representation of the severity.
func (s Severity) Short() string {
	switch s {
	case Verbose:
		return "V"
	case Debug:
		return "D"
	case Info:
		return "I"
	case Warning:
		return "W"
	case Error:
		return "E"
	case Fatal:
		return "F"
	default:
		return "?"
	}
}

// ParseSeverity parses the severity from a string, accepting either the full
// or single-character name, in any case.
func ParseSeverity(str string) (Severity, error) {
	for _, s := range []Severity{Verbose, Debug, Info, Warning, Error, Fatal} {
		if strings.EqualFold(str, s.String()) || strings.EqualFold(str, s.Short()) {
			return s, nil
		}
	}
	return Info, fmt.Errorf("Unknown severity '%s'", str)
}

type severityKeyTy string

const severityKey severityKeyTy = "log.severityKey"

// PutSeverity returns a new context with the minimum displayed severity set
// to s. Messages below s are discarded before reaching the handler.
func PutSeverity(ctx context.Context, s Severity) context.Context {
	return context.WithValue(ctx, severityKey, s)
}

// GetSeverity returns the minimum displayed severity stored in ctx, defaulting
// to Verbose (show everything).
func GetSeverity(ctx context.Context) Severity {
	if s, ok := ctx.Value(severityKey).(Severity); ok {
		return s
	}
	return Verbose
}
