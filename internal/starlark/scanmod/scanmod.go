// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package scanmod exposes the comment scanner to Starlark.
//
// The module is available as "scan" and has these members:
//
//	scan.spans(src)            # list of spans of src
//	scan.comments(src)         # list of comment groups of src
//	scan.docs(src)             # list of documentation comments of src
//	scan.reflow(src, width=80) # src with line comment groups refilled
//	scan.kinds                 # tuple of span kind names
//
// A span has the fields kind, start, end, text and unterminated; start and
// end have the fields offset, line and column. A comment group has start, end
// and text; a documentation comment additionally has target and target_pos.
package scanmod

import (
	"fmt"
	"io"

	"go.astrophena.name/commentscan/internal/doc"
	"go.astrophena.name/commentscan/internal/render"
	"go.astrophena.name/commentscan/internal/scan"

	"go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
	"go.starlark.net/syntax"
)

// Module returns the "scan" Starlark module.
func Module() *starlarkstruct.Module {
	kinds := make(starlark.Tuple, 0, 5)
	for _, k := range []scan.Kind{scan.Code, scan.LineComment, scan.BlockComment, scan.StringLiteral, scan.CharLiteral} {
		kinds = append(kinds, starlark.String(k.String()))
	}
	return &starlarkstruct.Module{
		Name: "scan",
		Members: starlark.StringDict{
			"spans":    starlark.NewBuiltin("scan.spans", spans),
			"comments": starlark.NewBuiltin("scan.comments", comments),
			"docs":     starlark.NewBuiltin("scan.docs", docs),
			"reflow":   starlark.NewBuiltin("scan.reflow", reflow),
			"kinds":    kinds,
		},
	}
}

func unpackSrc(b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) ([]byte, error) {
	var src string
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src); err != nil {
		return nil, err
	}
	return []byte(src), nil
}

func spans(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	src, err := unpackSrc(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	var list []starlark.Value
	for s := range scan.All(src) {
		list = append(list, SpanValue(render.NewRecord("", src, s)))
	}
	return starlark.NewList(list), nil
}

func comments(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	src, err := unpackSrc(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	var list []starlark.Value
	for _, g := range doc.Groups(src, scan.Spans(src)) {
		list = append(list, starlarkstruct.FromStringDict(starlarkstruct.Default, groupDict(g)))
	}
	return starlark.NewList(list), nil
}

func docs(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	src, err := unpackSrc(b, args, kwargs)
	if err != nil {
		return nil, err
	}
	var list []starlark.Value
	for _, d := range doc.Docs(src) {
		m := groupDict(d.Group)
		m["target"] = starlark.String(d.Target)
		m["target_pos"] = positionValue(d.TargetPos)
		list = append(list, starlarkstruct.FromStringDict(starlarkstruct.Default, m))
	}
	return starlark.NewList(list), nil
}

func reflow(thread *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		src   string
		width = 80
	)
	if err := starlark.UnpackArgs(b.Name(), args, kwargs, "src", &src, "width?", &width); err != nil {
		return nil, err
	}
	if width < 1 {
		return nil, fmt.Errorf("%s: width must be positive, got %d", b.Name(), width)
	}
	return starlark.String(doc.Reflow([]byte(src), width)), nil
}

func groupDict(g *doc.Group) starlark.StringDict {
	return starlark.StringDict{
		"start": positionValue(g.Pos()),
		"end":   positionValue(g.End()),
		"text":  starlark.String(g.Text()),
	}
}

// SpanValue converts a span record to a Starlark struct.
func SpanValue(r render.Record) *starlarkstruct.Struct {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"kind":         starlark.String(r.Kind.String()),
		"start":        positionValue(r.Start),
		"end":          positionValue(r.End),
		"text":         starlark.String(r.Text),
		"unterminated": starlark.Bool(r.Unterminated),
		"path":         starlark.String(r.Path),
	})
}

func positionValue(p scan.Position) *starlarkstruct.Struct {
	return starlarkstruct.FromStringDict(starlarkstruct.Default, starlark.StringDict{
		"offset": starlark.MakeInt(p.Offset),
		"line":   starlark.MakeInt(p.Line),
		"column": starlark.MakeInt(p.Column),
	})
}

// Filter is a compiled Starlark expression over a span.
type Filter struct {
	fn     starlark.Value
	thread *starlark.Thread
}

// NewFilter compiles expr, a Starlark expression that refers to the span
// being tested as "span", for example:
//
//	span.kind == "line_comment" and "TODO" in span.text
//
// The "scan" module is predeclared.
func NewFilter(expr string) (*Filter, error) {
	thread := &starlark.Thread{Name: "filter"}
	fn, err := starlark.EvalOptions(
		&syntax.FileOptions{},
		thread,
		"filter",
		"lambda span: ("+expr+")",
		starlark.StringDict{"scan": Module()},
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}
	return &Filter{fn: fn, thread: thread}, nil
}

// Match reports whether the expression is true for r. A Filter must not be
// used concurrently.
func (f *Filter) Match(r render.Record) (bool, error) {
	v, err := starlark.Call(f.thread, f.fn, starlark.Tuple{SpanValue(r)}, nil)
	if err != nil {
		return false, err
	}
	return bool(v.Truth()), nil
}

// Exec runs the Starlark script in file with "scan", "path" and "src"
// predeclared. Output of print goes to stdout.
func Exec(stdout io.Writer, file string, script []byte, path string, src []byte) error {
	thread := &starlark.Thread{
		Name:  file,
		Print: func(_ *starlark.Thread, msg string) { fmt.Fprintln(stdout, msg) },
	}
	_, err := starlark.ExecFileOptions(
		&syntax.FileOptions{
			TopLevelControl: true,
		},
		thread,
		file,
		script,
		starlark.StringDict{
			"scan": Module(),
			"path": starlark.String(path),
			"src":  starlark.String(src),
		},
	)
	return err
}
