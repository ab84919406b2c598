// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package scan

import (
	"fmt"
	"strconv"
)

// Position is a location in a source buffer.
type Position struct {
	Offset int `json:"offset"` // byte offset, 0-based
	Line   int `json:"line"`   // line number, 1-based
	Column int `json:"column"` // byte column in line, 1-based
}

// String returns the position in "line:column" form.
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Span is a contiguous, classified part of a source buffer.
type Span struct {
	Kind  Kind     `json:"kind"`
	Start Position `json:"start"`
	End   Position `json:"end"` // exclusive

	// Unterminated is set on a block comment or literal that was still open
	// at the end of input.
	Unterminated bool `json:"unterminated,omitempty"`
}

// Len returns the length of the span in bytes.
func (s Span) Len() int { return s.End.Offset - s.Start.Offset }

// Text returns the bytes of src covered by the span.
func (s Span) Text(src []byte) []byte { return src[s.Start.Offset:s.End.Offset] }

// Contains reports whether the byte at offset belongs to the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// String implements the [fmt.Stringer] interface.
func (s Span) String() string {
	str := fmt.Sprintf("%s %s %s", s.Kind, s.Start, s.End)
	if s.Unterminated {
		str += " unterminated"
	}
	return str
}

// Error describes a construct that was not closed before the end of input.
// Scanning never fails; errors are derived from flagged spans by [Problems].
type Error struct {
	Pos  Position
	Kind Kind
	Msg  string
}

func (e *Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// Problems returns an error for every unterminated span, in order.
func Problems(spans []Span) []*Error {
	var errs []*Error
	for _, s := range spans {
		if !s.Unterminated {
			continue
		}
		var what string
		switch s.Kind {
		case BlockComment:
			what = "block comment"
		case StringLiteral:
			what = "string literal"
		case CharLiteral:
			what = "character literal"
		default:
			what = s.Kind.String()
		}
		errs = append(errs, &Error{Pos: s.Start, Kind: s.Kind, Msg: what + " not terminated"})
	}
	return errs
}
