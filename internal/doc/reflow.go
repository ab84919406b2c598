// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package doc

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"go.astrophena.name/commentscan/internal/scan"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
)

// Reflow returns a copy of src with the words of every reflowable comment
// group refilled into lines of at most width columns. Columns are measured in
// display width, and a tab counts as one.
//
// A group is reflowable if it consists of line comments on their own lines
// that share the same marker ("//", "///" or "//!") followed by whitespace.
// Lines that hold only the marker separate paragraphs. The refilled group
// keeps the indentation of its first line. Block comments, trailing comments
// and directives such as "//go:build" are left alone, as is everything
// outside of comments.
//
// A word longer than the width gets a line of its own.
func Reflow(src []byte, width int) []byte {
	var (
		out  bytes.Buffer
		last int
	)
	for _, g := range Groups(src, scan.Spans(src)) {
		text, ok := g.reflow(src, width)
		if !ok {
			continue
		}
		out.Write(src[last:g.Pos().Offset])
		out.WriteString(text)
		last = g.End().Offset
	}
	out.Write(src[last:])
	return out.Bytes()
}

func (g *Group) reflow(src []byte, width int) (string, bool) {
	first := g.List[0]
	if !lineStartsAt(src, first.Start.Offset) {
		return "", false
	}
	indent := string(src[bytes.LastIndexByte(src[:first.Start.Offset], '\n')+1 : first.Start.Offset])
	marker := lineMarker(first.Raw)

	var (
		paras [][]string
		words []string
	)
	for _, c := range g.List {
		if c.Kind != scan.LineComment || lineMarker(c.Raw) != marker || strings.ContainsAny(c.Raw, "\r\n") {
			return "", false
		}
		body := strings.TrimPrefix(c.Raw, marker)
		fields := strings.Fields(body)
		if len(fields) == 0 {
			if len(words) > 0 {
				paras = append(paras, words)
				words = nil
			}
			continue
		}
		if body[0] != ' ' && body[0] != '\t' {
			return "", false
		}
		words = append(words, fields...)
	}
	if len(words) > 0 {
		paras = append(paras, words)
	}
	if len(paras) == 0 {
		return "", false
	}

	nl := "\n"
	if bytes.HasPrefix(src[g.End().Offset:], []byte("\r\n")) {
		nl = "\r\n"
	}
	var lines []string
	for i, para := range paras {
		if i > 0 {
			lines = append(lines, marker)
		}
		lines = fill(lines, para, marker+" ", width-utf8.RuneCountInString(indent))
	}
	return strings.Join(lines, nl+indent), true
}

// fill appends lines of words, each starting with prefix and at most width
// columns long unless a single word is longer.
func fill(lines, words []string, prefix string, width int) []string {
	limit := width - ansi.PrintableRuneWidth(prefix)
	if limit < 1 {
		limit = 1
	}
	ww := wordwrap.NewWriter(limit)
	// Words are never split, not even at hyphens.
	ww.Breakpoints = nil
	ww.Write([]byte(strings.Join(words, " ")))
	ww.Close()
	for _, line := range strings.Split(ww.String(), "\n") {
		lines = append(lines, prefix+line)
	}
	return lines
}

func lineMarker(raw string) string {
	for _, m := range []string{"///", "//!"} {
		if strings.HasPrefix(raw, m) {
			return m
		}
	}
	return "//"
}
