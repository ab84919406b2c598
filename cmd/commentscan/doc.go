// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Commentscan classifies C-family source code into code, comments, string
literals and character literals, and extracts comments and documentation
comments.

# Usage

	$ commentscan [flags...] [file...]

With no files, or with "-", commentscan reads standard input. When several
files are given they are scanned concurrently and printed in argument order,
each preceded by a "==> file <==" header.

# Output formats

The -format flag selects what is printed:

  - spans prints every span as "kind start end text", where start and end
    are line:column positions and the end is exclusive.
  - comments prints comment groups with comment markers removed.
  - doc prints documentation comments: comment groups on their own lines
    directly followed by code, together with the first line of that code.
  - json prints every span as a JSON object on its own line.
  - reflow prints the input with the words of its line comment groups
    refilled to -width columns. Each group keeps its indentation and its
    "//", "///" or "//!" marker; block comments and code are printed as is.

The -kind, -match and -filter flags narrow the spans and json formats. They
can't be combined with other formats or with -script.

-match takes a regular expression with .NET syntax, including lookaround.
-filter takes a Starlark expression over span, for example:

	$ commentscan -filter 'span.kind == "line_comment" and "TODO" in span.text' main.c

With -script, commentscan runs a Starlark file for every input instead of
printing spans. The script sees the input as src, its name as path, and the
scan module, which has spans, comments, docs and reflow functions.

Block comments and literals that are still open at the end of a file are
reported on standard error. With -strict they also make commentscan exit
with a non-zero status.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/commentscan/internal/cli"
)

//go:embed doc.go
var docSrc []byte

func init() { cli.SetDocComment(docSrc) }
