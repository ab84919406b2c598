// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"flag"
	"io/fs"
	"strings"
	"testing"

	"go.astrophena.name/commentscan/internal/cli"
	"go.astrophena.name/commentscan/internal/cli/clitest"
	"go.astrophena.name/commentscan/internal/render"
)

const helloSpans = `code 1:1 3:1 "#include <stdio.h>\n\n"
block_comment 3:1 3:25 "/* Greets the caller. */"
code 3:25 5:3 "\nint main(void) {\n  "
line_comment 5:3 5:20 "// TODO: localize"
code 5:20 6:10 "\n  printf("
string 6:10 6:29 "\"hello, // world\\n\""
code 6:29 9:1 ");\n  return 0;\n}\n"
`

const wrapReflowed = `int f(void);

    // Returns the answer to
    // the ultimate question,
    // as computed by a very
    // large machine.
    //
    // Never changes.
    int answer(void) { /* not
reflowed */ return 42; }
`

func TestRun(t *testing.T) {
	clitest.Run(t, func(t *testing.T) *app { return new(app) }, map[string]clitest.Case[*app]{
		"prints usage with flags": {
			Args:         []string{"-h"},
			WantErr:      flag.ErrHelp,
			WantInStderr: "Available flags:",
		},
		"usage includes documentation": {
			Args:         []string{"-h"},
			WantErr:      flag.ErrHelp,
			WantInStderr: "Commentscan classifies C-family source code",
		},
		"version": {
			Args:    []string{"-version"},
			WantErr: cli.ErrExitVersion,
		},
		"spans": {
			Args:       []string{"testdata/hello.c"},
			WantStdout: helloSpans,
		},
		"stdin": {
			Stdin: strings.NewReader("int x; // hi\n"),
			WantStdout: `code 1:1 1:8 "int x; "
line_comment 1:8 1:13 "// hi"
code 1:13 2:1 "\n"
`,
		},
		"stdin as dash": {
			Args:       []string{"-kind", "char", "-"},
			Stdin:      strings.NewReader("c = '\\'';\n"),
			WantStdout: `char 1:5 1:9 "'\\''"` + "\n",
		},
		"kind": {
			Args: []string{"-kind", "line_comment, block_comment", "testdata/hello.c"},
			WantStdout: `block_comment 3:1 3:25 "/* Greets the caller. */"
line_comment 5:3 5:20 "// TODO: localize"
`,
		},
		"unknown kind": {
			Args:    []string{"-kind", "comment", "testdata/hello.c"},
			WantErr: cli.ErrInvalidArgs,
		},
		"match with lookahead": {
			Args:       []string{"-match", `TODO(?=:)`, "testdata/hello.c"},
			WantStdout: `line_comment 5:3 5:20 "// TODO: localize"` + "\n",
		},
		"invalid match": {
			Args:    []string{"-match", `(`, "testdata/hello.c"},
			WantErr: cli.ErrInvalidArgs,
		},
		"filter": {
			Args:       []string{"-filter", `span.kind == "string" and span.start.line == 6`, "testdata/hello.c"},
			WantStdout: `string 6:10 6:29 "\"hello, // world\\n\""` + "\n",
		},
		"invalid filter": {
			Args:    []string{"-filter", `span.kind ==`, "testdata/hello.c"},
			WantErr: cli.ErrInvalidArgs,
		},
		"script": {
			Args:       []string{"-script", "testdata/todo.star", "testdata/hello.c"},
			WantStdout: "testdata/hello.c:5: // TODO: localize\n",
		},
		"missing script": {
			Args:    []string{"-script", "testdata/missing.star", "testdata/hello.c"},
			WantErr: fs.ErrNotExist,
		},
		"comments": {
			Args:       []string{"-format", "comments", "testdata/hello.c"},
			WantStdout: "3:1-3:25\n\tGreets the caller.\n5:3-5:20\n\tTODO: localize\n",
		},
		"doc": {
			Args:       []string{"-format", "doc", "testdata/hello.c"},
			WantStdout: "4:1: int main(void) {\n\tGreets the caller.\n6:3: printf(\"hello, // world\\n\");\n\tTODO: localize\n",
		},
		"json": {
			Args:       []string{"-format", "json", "-kind", "char", "testdata/open.c"},
			WantStdout: `{"path":"testdata/open.c","kind":"char","start":{"offset":9,"line":1,"column":10},"end":{"offset":12,"line":1,"column":13},"text":"'x'"}` + "\n",
		},
		"format from environment": {
			Args:         []string{"testdata/hello.c"},
			Env:          map[string]string{"COMMENTSCAN_FORMAT": "comments"},
			WantInStdout: "3:1-3:25\n",
		},
		"invalid format": {
			Args:    []string{"-format", "xml", "testdata/hello.c"},
			WantErr: render.ErrUnknownFormat,
		},
		"invalid jobs": {
			Args:    []string{"-j", "0", "testdata/hello.c"},
			WantErr: cli.ErrInvalidArgs,
		},
		"unterminated is reported": {
			Args:         []string{"testdata/open.c"},
			WantInStdout: `block_comment 2:1 3:1 unterminated "/* never closed\n"`,
			WantInStderr: "testdata/open.c:2:1: block comment not terminated",
		},
		"strict": {
			Args:         []string{"-strict", "testdata/open.c"},
			WantErr:      errUnterminated,
			WantInStderr: "testdata/open.c:2:1: block comment not terminated",
		},
		"strict passes": {
			Args:       []string{"-strict", "testdata/hello.c"},
			WantStdout: helloSpans,
		},
		"multiple files": {
			Args: []string{"-j", "1", "-kind", "block_comment", "testdata/hello.c", "testdata/open.c"},
			WantStdout: `==> testdata/hello.c <==
block_comment 3:1 3:25 "/* Greets the caller. */"
==> testdata/open.c <==
block_comment 2:1 3:1 unterminated "/* never closed\n"
`,
		},
		"reflow": {
			Args:       []string{"-format", "reflow", "-width", "30", "testdata/wrap.c"},
			WantStdout: wrapReflowed,
		},
		"reflow width from environment": {
			Args:       []string{"-format", "reflow", "testdata/wrap.c"},
			Env:        map[string]string{"COMMENTSCAN_WIDTH": "30"},
			WantStdout: wrapReflowed,
		},
		"invalid width": {
			Args:    []string{"-format", "reflow", "-width", "0", "testdata/wrap.c"},
			WantErr: cli.ErrInvalidArgs,
		},
		"kind with comments format": {
			Args:    []string{"-format", "comments", "-kind", "line_comment", "testdata/hello.c"},
			WantErr: cli.ErrInvalidArgs,
		},
		"match with doc format": {
			Args:    []string{"-format", "doc", "-match", "TODO", "testdata/hello.c"},
			WantErr: cli.ErrInvalidArgs,
		},
		"filter with reflow format": {
			Args:    []string{"-format", "reflow", "-filter", "True", "testdata/hello.c"},
			WantErr: cli.ErrInvalidArgs,
		},
		"kind with script": {
			Args:    []string{"-script", "testdata/todo.star", "-kind", "code", "testdata/hello.c"},
			WantErr: cli.ErrInvalidArgs,
		},
		"missing file": {
			Args:    []string{"testdata/missing.c"},
			WantErr: fs.ErrNotExist,
		},
	})
}
