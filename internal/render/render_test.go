// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package render

import (
	"bytes"
	"errors"
	"testing"

	"go.astrophena.name/commentscan/internal/doc"
	"go.astrophena.name/commentscan/internal/scan"
	"go.astrophena.name/commentscan/internal/testutil"
)

func TestParseFormat(t *testing.T) {
	t.Parallel()

	for _, f := range Formats {
		got, err := ParseFormat(string(f))
		if err != nil {
			t.Fatal(err)
		}
		testutil.AssertEqual(t, got, f)
	}
	if _, err := ParseFormat("html"); !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("ParseFormat(html) = %v, want ErrUnknownFormat", err)
	}
}

func TestSpan(t *testing.T) {
	t.Parallel()

	src := []byte("x = \"a\\n\"; /* open")
	var buf bytes.Buffer
	for _, s := range scan.Spans(src) {
		if err := Span(&buf, NewRecord("", src, s)); err != nil {
			t.Fatal(err)
		}
	}
	testutil.AssertEqual(t, buf.String(), `code 1:1 1:5 "x = "
string 1:5 1:10 "\"a\\n\""
code 1:10 1:12 "; "
block_comment 1:12 1:19 unterminated "/* open"
`)
}

func TestSpanJSON(t *testing.T) {
	t.Parallel()

	src := []byte("/* open")
	var buf bytes.Buffer
	if err := SpanJSON(&buf, NewRecord("a.c", src, scan.Spans(src)[0])); err != nil {
		t.Fatal(err)
	}

	type position struct {
		Offset, Line, Column int
	}
	type record struct {
		Path         string
		Kind         string
		Start, End   position
		Unterminated bool
		Text         string
	}
	testutil.AssertEqual(t, testutil.UnmarshalJSON[record](t, buf.Bytes()), record{
		Path:         "a.c",
		Kind:         "block_comment",
		Start:        position{Offset: 0, Line: 1, Column: 1},
		End:          position{Offset: 7, Line: 1, Column: 8},
		Unterminated: true,
		Text:         "/* open",
	})
}

func TestDoc(t *testing.T) {
	t.Parallel()

	src := []byte("#include <stdio.h>\n\n/**\n * Entry point.\n *\n * Returns 0.\n */\nint main(void) {\n  return 0;\n}\n")
	docs := doc.Docs(src)
	if len(docs) != 1 {
		t.Fatalf("got %d docs, want 1", len(docs))
	}

	var buf bytes.Buffer
	if err := Doc(&buf, docs[0]); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, buf.String(), "8:1: int main(void) {\n\tEntry point.\n\n\tReturns 0.\n")
}

func TestGroup(t *testing.T) {
	t.Parallel()

	src := []byte("int x; // a\n// b\n")
	groups := doc.Groups(src, scan.Spans(src))
	if len(groups) != 1 {
		t.Fatalf("got %d groups, want 1", len(groups))
	}

	var buf bytes.Buffer
	if err := Group(&buf, groups[0]); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, buf.String(), "1:8-2:5\n\ta\n\tb\n")
}
