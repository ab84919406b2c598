// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package scan

// emitter coalesces classified bytes into spans and tracks positions.
type emitter struct {
	cur    Span
	active bool
	pos    Position // of the next byte
}

func newEmitter() emitter {
	return emitter{pos: Position{Line: 1, Column: 1}}
}

// push adds byte c of the given kind. If c cannot extend the current span,
// the current span is returned and a new one is started at c.
func (e *emitter) push(c byte, kind Kind, boundary bool) (span Span, ok bool) {
	if e.active && (kind != e.cur.Kind || boundary) {
		span, ok = e.cur, true
		span.End = e.pos
		e.active = false
	}
	if !e.active {
		e.cur = Span{Kind: kind, Start: e.pos}
		e.active = true
	}

	e.pos.Offset++
	if c == '\n' {
		e.pos.Line++
		e.pos.Column = 1
	} else {
		e.pos.Column++
	}
	return span, ok
}

// flush returns the span in progress, if any, marking it unterminated when
// the scanner ended inside an open construct.
func (e *emitter) flush(unterminated bool) (Span, bool) {
	if !e.active {
		return Span{}, false
	}
	e.active = false
	span := e.cur
	span.End = e.pos
	span.Unterminated = unterminated
	return span, true
}
