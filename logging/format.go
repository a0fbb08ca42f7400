// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package logging

import (
	"fmt"
	"strings"
	"sync"
)

// TimeLayout is the timestamp layout of the {time} token. Times are
// rendered in UTC.
const TimeLayout = "2006-01-02 15:04:05.000000"

// DefaultFormat is the console line template used when no format option
// is configured.
const DefaultFormat = "{time} {severity} [{name}] {message}"

// ANSI color codes
const (
	colorReset   = "\033[0m"
	colorDim     = "\033[2m"
	colorGray    = "\033[90m"
	colorYellow  = "\033[33m"
	colorRed     = "\033[31m"
	colorBoldRed = "\033[1;31m"
)

type tokenKind uint8

const (
	tokenLiteral tokenKind = iota
	tokenTime
	tokenSeverity
	tokenName
	tokenMessage
)

var tokenNames = map[string]tokenKind{
	"time":     tokenTime,
	"severity": tokenSeverity,
	"name":     tokenName,
	"message":  tokenMessage,
}

type token struct {
	kind tokenKind
	text string
}

// layout is a parsed line template.
type layout []token

// parseLayout parses a template made of literal text and {time},
// {severity}, {name} and {message} placeholders. A '{' without a closing
// '}' is literal text.
func parseLayout(format string) (layout, error) {
	var (
		out layout
		lit strings.Builder
	)
	flush := func() {
		if lit.Len() > 0 {
			out = append(out, token{kind: tokenLiteral, text: lit.String()})
			lit.Reset()
		}
	}

	rest := format
	for rest != "" {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			lit.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open:], '}')
		if end < 0 {
			lit.WriteString(rest)
			break
		}
		end += open

		lit.WriteString(rest[:open])
		name := rest[open+1 : end]
		kind, ok := tokenNames[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown format token {%s}", ErrInvalidOption, name)
		}
		flush()
		out = append(out, token{kind: kind})
		rest = rest[end+1:]
	}
	flush()

	return out, nil
}

// builderPool provides reusable [strings.Builder] instances for formatting
// console lines.
var builderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// format renders r as one newline-terminated line.
func (l layout) format(r Record, color bool) string {
	b := builderPool.Get().(*strings.Builder)
	b.Reset()
	defer builderPool.Put(b)

	for _, t := range l {
		switch t.kind {
		case tokenLiteral:
			b.WriteString(t.text)
		case tokenTime:
			b.WriteString(r.Time.UTC().Format(TimeLayout))
		case tokenSeverity:
			code := ""
			if color {
				code = levelColor(r.Level)
			}
			if code != "" {
				b.WriteString(code)
				b.WriteString(r.Level.String())
				b.WriteString(colorReset)
			} else {
				b.WriteString(r.Level.String())
			}
		case tokenName:
			b.WriteString(r.Logger)
		case tokenMessage:
			b.WriteString(r.Message)
		}
	}

	if r.Err != nil {
		b.WriteString(" error=")
		b.WriteString(r.Err.Error())
	}
	if r.TraceID != "" {
		b.WriteString(" " + fieldTraceID + "=")
		b.WriteString(r.TraceID)
		b.WriteString(" " + fieldSpanID + "=")
		b.WriteString(r.SpanID)
	}
	b.WriteByte('\n')

	return b.String()
}

// levelColor returns the ANSI code for a severity token. INFO is uncolored.
func levelColor(level Level) string {
	switch {
	case level >= LevelFatal:
		return colorBoldRed
	case level >= LevelError:
		return colorRed
	case level >= LevelWarn:
		return colorYellow
	case level >= LevelInfo:
		return ""
	case level >= LevelDebug:
		return colorGray
	default:
		return colorDim
	}
}
