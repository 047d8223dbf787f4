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
	"bytes"
	"fmt"
)

// Style controls how a Message is printed as a single line of text.
type Style struct {
	// Timestamp includes the message time in the printed line.
	Timestamp bool
	// Tag includes the logger tag in the printed line.
	Tag bool
}

var (
	// Brief is a style that only prints the severity and text.
	Brief = Style{}
	// Normal is a style that prints the severity, tag and text.
	Normal = Style{Tag: true}
	// Detailed is a style that prints everything Normal does plus timestamps.
	Detailed = Style{Timestamp: true, Tag: true}
)

// Print returns the message m printed to a single line using the style s.
func (s Style) Print(m *Message) string {
	buf := &bytes.Buffer{}
	if s.Timestamp {
		fmt.Fprintf(buf, "%s ", m.Time.Format("15:04:05.000"))
	}
	fmt.Fprintf(buf, "%s:", m.Severity.Short())
	if s.Tag && m.Tag != "" {
		fmt.Fprintf(buf, " [%s]", m.Tag)
	}
	fmt.Fprintf(buf, " %s", m.Text)
	return buf.String()
}
