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

// Package app provides the framework for command line applications: flag
// parsing, usage text and logging setup.
package app

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/MarkTseng/skyline/core/log"
	"github.com/pkg/errors"
)

var (
	// Name is the full name of the application.
	Name string
	// ShortHelp should be set to add a help message to the usage text.
	ShortHelp = ""
	// ShortUsage is usage text for the additional non-flag arguments.
	ShortUsage = ""
	// ExitFuncForTesting can be set to change the behaviour on a fatal
	// failure. It defaults to os.Exit.
	ExitFuncForTesting = os.Exit
)

var (
	logLevel = flag.String("log-level", "info", "minimum displayed logging severity")
	logStyle = flag.String("log-style", "normal", "logging style (brief, normal, detailed)")
)

func usage() {
	out := flag.CommandLine.Output()
	if ShortHelp != "" {
		fmt.Fprintln(out, ShortHelp)
	}
	fmt.Fprintf(out, "Usage: %s [flags] %s\n", Name, ShortUsage)
	flag.PrintDefaults()
}

// Run performs all the work needed to start up an application: parses the
// command line, installs the log handler on the context and then invokes the
// main task. It returns once the task succeeds; if the task fails, the
// process exits with a non-zero status through ExitFuncForTesting.
func Run(main func(ctx context.Context) error) {
	if Name == "" {
		Name = os.Args[0]
	}
	flag.Usage = usage
	flag.Parse()

	ctx, shutdown, err := logContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		ExitFuncForTesting(2)
		return
	}
	defer shutdown()

	if err := main(ctx); err != nil {
		log.F(ctx, true, "%s failed: %v", Name, errors.Cause(err))
		shutdown()
		ExitFuncForTesting(1)
	}
}

func logContext(ctx context.Context) (context.Context, func(), error) {
	severity, err := log.ParseSeverity(*logLevel)
	if err != nil {
		return nil, nil, err
	}
	var style log.Style
	switch *logStyle {
	case "brief":
		style = log.Brief
	case "normal":
		style = log.Normal
	case "detailed":
		style = log.Detailed
	default:
		return nil, nil, errors.Errorf("unknown log style '%s'", *logStyle)
	}
	handler := log.Std(style)
	ctx = log.PutHandler(ctx, handler)
	ctx = log.PutSeverity(ctx, severity)
	ctx = log.PutTag(ctx, Name)
	return ctx, handler.Close, nil
}
