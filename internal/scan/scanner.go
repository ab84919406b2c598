// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package scan classifies C-family source text into code, comments and
// literals.
//
// The scanner is a single-pass state machine over bytes with one byte of
// lookahead. It never fails: malformed input such as an unclosed block
// comment produces a span that runs to the end of input and is marked
// [Span.Unterminated].
//
// Spans returned for one buffer are ordered, non-empty and cover the buffer
// exactly once, so concatenating their text reproduces the input.
//
// Line comments follow C99 line splicing: a backslash immediately before the
// newline continues the comment onto the next line.
package scan

import (
	"iter"
	"slices"
)

// eof is passed as lookahead past the last byte.
const eof = -1

// state is the transient state of one scan.
type state struct {
	mode Kind
	// escape is set inside a literal after an unconsumed backslash.
	escape bool
	// splice is set inside a line comment after a backslash, and stays set
	// over a following carriage return if a line feed comes next.
	splice bool
	// pending is the second byte of a "/*" or "*/" delimiter whose first
	// byte has just been consumed, or zero.
	pending byte
}

// open reports whether the state is inside a construct that needs a closing
// delimiter.
func (st state) open() bool {
	return st.mode == BlockComment || st.mode.IsLiteral()
}

// step classifies byte c, followed by next (or eof), in state st. It returns
// the state for the following byte, the kind of c, and whether c opens a new
// construct.
func step(st state, c byte, next int) (state, Kind, bool) {
	switch st.mode {
	case LineComment:
		switch {
		case c == '\\':
			st.splice = true
			return st, LineComment, false
		case c == '\r' && st.splice && next == '\n':
			return st, LineComment, false
		case c == '\n' && !st.splice, c == '\r' && next == '\n':
			return state{}, Code, false
		}
		st.splice = false
		return st, LineComment, false

	case BlockComment:
		switch {
		case st.pending == '*':
			st.pending = 0
		case st.pending == '/':
			return state{}, BlockComment, false
		case c == '*' && next == '/':
			st.pending = '/'
		}
		return st, BlockComment, false

	case StringLiteral, CharLiteral:
		switch {
		case st.escape:
			st.escape = false
		case c == '\\':
			st.escape = true
		case c == '"' && st.mode == StringLiteral, c == '\'' && st.mode == CharLiteral:
			return state{}, st.mode, false
		}
		return st, st.mode, false
	}

	switch {
	case c == '/' && next == '/':
		return state{mode: LineComment}, LineComment, true
	case c == '/' && next == '*':
		return state{mode: BlockComment, pending: '*'}, BlockComment, true
	case c == '"':
		return state{mode: StringLiteral}, StringLiteral, true
	case c == '\'':
		return state{mode: CharLiteral}, CharLiteral, true
	}
	return st, Code, false
}

// Scanner produces the spans of a source buffer one at a time.
type Scanner struct {
	src []byte
	off int
	st  state
	em  emitter
}

// New returns a Scanner positioned at the start of src. The scanner does not
// modify src.
func New(src []byte) *Scanner {
	return &Scanner{src: src, em: newEmitter()}
}

// Next returns the next span. It returns false once the input is exhausted.
func (s *Scanner) Next() (Span, bool) {
	for s.off < len(s.src) {
		c := s.src[s.off]
		next := eof
		if s.off+1 < len(s.src) {
			next = int(s.src[s.off+1])
		}
		st, kind, boundary := step(s.st, c, next)
		s.st = st
		s.off++
		if span, ok := s.em.push(c, kind, boundary); ok {
			return span, true
		}
	}
	return s.em.flush(s.st.open())
}

// All returns an iterator over the spans of src. Every iteration scans src
// from the start; stopping early needs no cleanup.
func All(src []byte) iter.Seq[Span] {
	return func(yield func(Span) bool) {
		s := New(src)
		for span, ok := s.Next(); ok; span, ok = s.Next() {
			if !yield(span) {
				return
			}
		}
	}
}

// Spans scans src and returns all of its spans.
func Spans(src []byte) []Span {
	return slices.Collect(All(src))
}
