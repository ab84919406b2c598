// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package render formats scanned spans and comments for output.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.astrophena.name/commentscan/internal/doc"
	"go.astrophena.name/commentscan/internal/scan"
)

// Format is an output format.
type Format string

// Output formats.
const (
	Spans    Format = "spans"    // every span with its text
	Comments Format = "comments" // comment groups with markers removed
	Docs     Format = "doc"      // documentation comments and what they document
	JSON     Format = "json"     // one JSON object per span
	Reflow   Format = "reflow"   // source with line comments refilled
)

// Formats lists the supported formats.
var Formats = []Format{Spans, Comments, Docs, JSON, Reflow}

// ErrUnknownFormat is returned by [ParseFormat] for unsupported formats.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, s)
}

// Record is a span together with its text and the file it came from.
type Record struct {
	Path string `json:"path,omitempty"`
	scan.Span
	Text string `json:"text"`
}

// NewRecord returns a record for the span s of src.
func NewRecord(path string, src []byte, s scan.Span) Record {
	return Record{Path: path, Span: s, Text: string(s.Text(src))}
}

// Span writes r as a single line:
//
//	kind start_line:start_col end_line:end_col [unterminated] "text"
func Span(w io.Writer, r Record) error {
	_, err := fmt.Fprintf(w, "%s %q\n", r.Span, r.Text)
	return err
}

// SpanJSON writes r as a line of JSON.
func SpanJSON(w io.Writer, r Record) error {
	return json.NewEncoder(w).Encode(r)
}

// Group writes the position range of g followed by its text, indented with a
// tab.
func Group(w io.Writer, g *doc.Group) error {
	if _, err := fmt.Fprintf(w, "%s-%s\n", g.Pos(), g.End()); err != nil {
		return err
	}
	return indented(w, g.Text())
}

// Doc writes the position of d, the first line of the code it documents, and
// its text, indented with a tab.
func Doc(w io.Writer, d doc.Doc) error {
	if _, err := fmt.Fprintf(w, "%s: %s\n", d.TargetPos, d.Target); err != nil {
		return err
	}
	return indented(w, d.Text())
}

func indented(w io.Writer, text string) error {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			continue
		}
		if line != "\n" {
			sb.WriteByte('\t')
		}
		sb.WriteString(line)
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
