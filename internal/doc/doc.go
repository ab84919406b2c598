// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package doc groups comments found by package scan and extracts
// documentation comments from them.
package doc

import (
	"bytes"
	"strings"

	"go.astrophena.name/commentscan/internal/scan"
)

// Comment is a single line or block comment.
type Comment struct {
	scan.Span
	Raw string // comment text including markers
}

// Group is a sequence of comments with no code and at most one line break
// between adjacent comments.
type Group struct {
	List []Comment
}

// Pos returns the position of the first comment in the group.
func (g *Group) Pos() scan.Position { return g.List[0].Start }

// End returns the end position of the last comment in the group.
func (g *Group) End() scan.Position { return g.List[len(g.List)-1].End }

// Doc is a comment group that documents the code following it.
type Doc struct {
	*Group
	// Target is the first line of the documented code, trimmed of
	// surrounding whitespace.
	Target string
	// TargetPos is the position of the first byte of Target.
	TargetPos scan.Position
}

// Groups returns the comment groups of src, given its spans as produced by
// [scan.Spans].
func Groups(src []byte, spans []scan.Span) []*Group {
	var (
		groups []*Group
		cur    *Group
	)
	for _, s := range spans {
		switch {
		case s.Kind.IsComment():
			if cur == nil {
				cur = new(Group)
				groups = append(groups, cur)
			}
			cur.List = append(cur.List, Comment{Span: s, Raw: string(s.Text(src))})
		case s.Kind == scan.Code && isBlank(s.Text(src)) && bytes.Count(s.Text(src), []byte("\n")) <= 1:
			// Separator within a group.
		default:
			cur = nil
		}
	}
	return groups
}

// Docs returns the documentation comments of src. A comment group is a
// documentation comment if it starts on a line with no code before it and the
// code after it starts on the next line.
func Docs(src []byte) []Doc {
	spans := scan.Spans(src)
	var docs []Doc
	for _, g := range Groups(src, spans) {
		if !lineStartsAt(src, g.Pos().Offset) {
			continue
		}
		next := spanAfter(spans, g.End().Offset)
		if next < 0 || spans[next].Kind != scan.Code {
			continue
		}
		code := spans[next].Text(src)
		lead := len(code) - len(bytes.TrimLeft(code, " \t\r\n\f\v"))
		if lead == len(code) || bytes.Count(code[:lead], []byte("\n")) != 1 {
			continue
		}

		off := spans[next].Start.Offset + lead
		line := src[off:]
		if i := bytes.IndexByte(line, '\n'); i >= 0 {
			line = line[:i]
		}
		nl := bytes.LastIndexByte(code[:lead], '\n')
		docs = append(docs, Doc{
			Group:  g,
			Target: string(bytes.TrimSpace(line)),
			TargetPos: scan.Position{
				Offset: off,
				Line:   g.End().Line + 1,
				Column: lead - nl,
			},
		})
	}
	return docs
}

// Package returns the text of the first block comment in src, or an empty
// string if there is none. It is meant for extracting package documentation
// from Go-style doc.go files.
func Package(src []byte) string {
	for s := range scan.All(src) {
		if s.Kind == scan.BlockComment {
			g := &Group{List: []Comment{{Span: s, Raw: string(s.Text(src))}}}
			return g.Text()
		}
	}
	return ""
}

// Text returns the text of the comment group with comment markers removed.
// Trailing whitespace is removed from each line, runs of blank lines are
// collapsed into one, and leading and trailing blank lines are dropped.
// Non-empty text ends with a newline.
func (g *Group) Text() string {
	var lines []string
	for _, c := range g.List {
		lines = append(lines, commentLines(c)...)
	}

	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimRight(line, " \t\r\f\v")
		if line == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}
		out = append(out, line)
	}
	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}

func commentLines(c Comment) []string {
	text := c.Raw
	if c.Kind == scan.LineComment {
		text = trimMarker(strings.TrimPrefix(text, "//"), '/')
		text = strings.ReplaceAll(text, "\\\r\n", "\n")
		text = strings.ReplaceAll(text, "\\\n", "\n")
		return strings.Split(strings.TrimPrefix(text, " "), "\n")
	}

	text = strings.TrimPrefix(text, "/*")
	if !c.Unterminated {
		text = strings.TrimSuffix(text, "*/")
	}
	text = trimMarker(text, '*')
	lines := strings.Split(text, "\n")
	lines[0] = strings.TrimPrefix(lines[0], " ")

	// Strip "*" decoration only when every continuation line carries it.
	decorated := len(lines) > 1
	for _, line := range lines[1:] {
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed != "" && !strings.HasPrefix(trimmed, "*") {
			decorated = false
			break
		}
	}
	if decorated {
		for i, line := range lines[1:] {
			line = strings.TrimLeft(line, " \t")
			line = strings.TrimPrefix(line, "*")
			lines[i+1] = strings.TrimPrefix(line, " ")
		}
	}
	return lines
}

// trimMarker removes the extra character of documentation markers such as
// "///", "//!", "/**" and "/*!".
func trimMarker(text string, extra byte) string {
	if len(text) > 0 && (text[0] == extra || text[0] == '!') {
		return text[1:]
	}
	return text
}

// lineStartsAt reports whether only whitespace precedes offset on its line.
func lineStartsAt(src []byte, offset int) bool {
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	return isBlank(src[start:offset])
}

// spanAfter returns the index of the span starting at offset, or -1.
func spanAfter(spans []scan.Span, offset int) int {
	for i, s := range spans {
		if s.Start.Offset == offset {
			return i
		}
	}
	return -1
}

func isBlank(b []byte) bool {
	return len(bytes.TrimLeft(b, " \t\r\n\f\v")) == 0
}
