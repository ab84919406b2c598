// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"go.astrophena.name/commentscan/internal/cli"
	"go.astrophena.name/commentscan/internal/cli/envflag"
	"go.astrophena.name/commentscan/internal/doc"
	"go.astrophena.name/commentscan/internal/logger"
	"go.astrophena.name/commentscan/internal/render"
	"go.astrophena.name/commentscan/internal/scan"
	"go.astrophena.name/commentscan/internal/starlark/scanmod"
	"go.astrophena.name/commentscan/internal/util/syncx"

	"github.com/dlclark/regexp2"
	"golang.org/x/sync/errgroup"
)

func main() { cli.Main(new(app)) }

var errUnterminated = errors.New("unterminated comments or literals")

// matchTimeout bounds a single -match evaluation.
const matchTimeout = 5 * time.Second

type app struct {
	// configuration
	format *string
	jobs   *int
	width  *int
	strict bool
	kinds  string
	match  string
	filter string
	script string

	// parsed in Run
	out       render.Format
	kindSet   map[scan.Kind]bool
	re        *regexp2.Regexp
	scriptSrc syncx.Lazy[[]byte]
}

func (a *app) Flags(fs *flag.FlagSet, getenv func(string) string) {
	a.format = envflag.Value(fs, getenv, "format", "COMMENTSCAN_FORMAT", string(render.Spans), "Output `format`: spans, comments, doc, json or reflow.")
	a.jobs = envflag.Value(fs, getenv, "j", "COMMENTSCAN_JOBS", runtime.GOMAXPROCS(0), "Number of files to scan concurrently.")
	a.width = envflag.Value(fs, getenv, "width", "COMMENTSCAN_WIDTH", 80, "Line `width` for the reflow format.")
	fs.BoolVar(&a.strict, "strict", false, "Fail if any block comment or literal is not terminated.")
	fs.StringVar(&a.kinds, "kind", "", "Comma-separated span `kinds` to print: code, line_comment, block_comment, string, char.")
	fs.StringVar(&a.match, "match", "", "Print only spans whose text matches `regexp`.")
	fs.StringVar(&a.filter, "filter", "", "Print only spans for which the Starlark `expression` is true.")
	fs.StringVar(&a.script, "script", "", "Run the Starlark `file` for every input instead of printing.")
}

// result is the output of scanning a single file.
type result struct {
	name     string
	out      bytes.Buffer
	problems []*scan.Error
}

func (a *app) Run(ctx context.Context, env *cli.Env) error {
	if err := a.parse(); err != nil {
		return err
	}

	paths := env.Args
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	results := make([]result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(*a.jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := &results[i]
			src, err := a.read(env, path, res)
			if err != nil {
				return err
			}
			return a.process(res, src)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var unterminated int
	for _, res := range results {
		if len(results) > 1 {
			fmt.Fprintf(env.Stdout, "==> %s <==\n", res.name)
		}
		if _, err := env.Stdout.Write(res.out.Bytes()); err != nil {
			return err
		}
		for _, p := range res.problems {
			logger.Pos(env.Logf, res.name, p.Pos)("%s", p.Msg)
			unterminated++
		}
	}

	if a.strict && unterminated > 0 {
		return fmt.Errorf("%w: %d found", errUnterminated, unterminated)
	}
	return nil
}

// parse validates flag values that can't be checked by the flag package.
func (a *app) parse() error {
	var err error
	if a.out, err = render.ParseFormat(*a.format); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)
	}
	if *a.jobs < 1 {
		return fmt.Errorf("%w: -j must be positive, got %d", cli.ErrInvalidArgs, *a.jobs)
	}
	if *a.width < 1 {
		return fmt.Errorf("%w: -width must be positive, got %d", cli.ErrInvalidArgs, *a.width)
	}
	if a.kinds != "" || a.match != "" || a.filter != "" {
		if a.script != "" {
			return fmt.Errorf("%w: -kind, -match and -filter can't be used with -script", cli.ErrInvalidArgs)
		}
		if a.out != render.Spans && a.out != render.JSON {
			return fmt.Errorf("%w: -kind, -match and -filter only apply to the spans and json formats, not %s", cli.ErrInvalidArgs, a.out)
		}
	}

	if a.kinds != "" {
		a.kindSet = make(map[scan.Kind]bool)
		for _, name := range strings.Split(a.kinds, ",") {
			k, err := scan.ParseKind(strings.TrimSpace(name))
			if err != nil {
				return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)
			}
			a.kindSet[k] = true
		}
	}

	if a.match != "" {
		if a.re, err = regexp2.Compile(a.match, regexp2.None); err != nil {
			return fmt.Errorf("%w: invalid -match: %w", cli.ErrInvalidArgs, err)
		}
		a.re.MatchTimeout = matchTimeout
	}

	if a.filter != "" {
		// Filters aren't safe for concurrent use, so each file compiles its
		// own; this one only reports syntax errors early.
		if _, err := scanmod.NewFilter(a.filter); err != nil {
			return fmt.Errorf("%w: %w", cli.ErrInvalidArgs, err)
		}
	}
	return nil
}

func (a *app) read(env *cli.Env, path string, res *result) ([]byte, error) {
	if path == "-" {
		res.name = "<stdin>"
		return io.ReadAll(env.Stdin)
	}
	res.name = path
	return os.ReadFile(path)
}

func (a *app) process(res *result, src []byte) error {
	spans := scan.Spans(src)
	res.problems = scan.Problems(spans)

	if a.script != "" {
		script, err := a.scriptSrc.GetErr(func() ([]byte, error) { return os.ReadFile(a.script) })
		if err != nil {
			return err
		}
		return scanmod.Exec(&res.out, a.script, script, res.name, src)
	}

	switch a.out {
	case render.Comments:
		for _, g := range doc.Groups(src, spans) {
			if err := render.Group(&res.out, g); err != nil {
				return err
			}
		}
		return nil
	case render.Docs:
		for _, d := range doc.Docs(src) {
			if err := render.Doc(&res.out, d); err != nil {
				return err
			}
		}
		return nil
	case render.Reflow:
		res.out.Write(doc.Reflow(src, *a.width))
		return nil
	}

	var filter *scanmod.Filter
	if a.filter != "" {
		var err error
		if filter, err = scanmod.NewFilter(a.filter); err != nil {
			return err
		}
	}

	write := render.Span
	if a.out == render.JSON {
		write = render.SpanJSON
	}
	for _, s := range spans {
		r := render.NewRecord(res.name, src, s)
		ok, err := a.keep(r, filter)
		if err != nil {
			return fmt.Errorf("%s:%s: %w", res.name, s.Start, err)
		}
		if !ok {
			continue
		}
		if err := write(&res.out, r); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) keep(r render.Record, filter *scanmod.Filter) (bool, error) {
	if a.kindSet != nil && !a.kindSet[r.Kind] {
		return false, nil
	}
	if a.re != nil {
		ok, err := a.re.MatchString(r.Text)
		if err != nil || !ok {
			return false, err
		}
	}
	if filter != nil {
		return filter.Match(r)
	}
	return true, nil
}
