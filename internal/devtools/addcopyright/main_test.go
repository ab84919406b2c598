// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/commentscan/internal/testutil"
)

func TestHasHeader(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		src  string
		want bool
	}{
		"line comments": {
			src:  "// © 2025 Someone.\n\npackage main\n",
			want: true,
		},
		"block comment after blank lines": {
			src:  "\n\n/* © 2025 Someone. */\nint x;\n",
			want: true,
		},
		"other comment first": {
			src:  "// Package main does things.\npackage main // ©\n",
			want: false,
		},
		"code first": {
			src:  "package main\n// © 2025 Someone.\n",
			want: false,
		},
		"sign in a string": {
			src:  `char *s = "// ©";` + "\n",
			want: false,
		},
		"empty": {
			src:  "",
			want: false,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			testutil.AssertEqual(t, hasHeader([]byte(tc.src)), tc.want)
		})
	}
}

func TestWalk(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	files := map[string]string{
		"main.go":           "package main\n",
		"lib/lib.h":         "// © 2024 Someone.\nint f(void);\n",
		"lib/lib.c":         "/* Library. */\nint f(void) { return 0; }\n",
		"testdata/input.c":  "int x;\n",
		"README.md":         "# Readme\n",
		"_examples/skip.go": "package skip\n",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	var reported []string
	report := func(path string) {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			t.Fatal(err)
		}
		reported = append(reported, filepath.ToSlash(rel))
	}

	if err := walk(dir, true, report); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, reported, []string{"lib/lib.c", "main.go"})

	reported = nil
	if err := walk(dir, false, report); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"main.go", "lib/lib.c"} {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(b), "// © ") || !strings.HasSuffix(string(b), files[name]) {
			t.Errorf("%s: header not added:\n%s", name, b)
		}
		if !hasHeader(b) {
			t.Errorf("%s: hasHeader = false after adding", name)
		}
	}

	reported = nil
	if err := walk(dir, true, report); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, len(reported), 0)

	b, err := os.ReadFile(filepath.Join(dir, "testdata", "input.c"))
	if err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, string(b), files["testdata/input.c"])
}
