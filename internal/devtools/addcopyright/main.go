// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Addcopyright adds copyright header to each Go and C source file that
// doesn't start with one.
//
// A file already has a header if its first comment, ignoring leading blank
// lines, contains a copyright sign.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"slices"

	"go.astrophena.name/commentscan/internal/atomicio"
	"go.astrophena.name/commentscan/internal/scan"
)

const tmpl = `// © %d Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

`

var exts = []string{".go", ".c", ".h"}

// Fixtures are scanned verbatim and must not be touched.
var skipDirs = []string{"testdata", "_examples", ".git"}

func main() {
	log.SetFlags(0)
	dryRun := flag.Bool("n", false, "Print files missing a header without changing them.")
	flag.Parse()

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}
	if err := walk(root, *dryRun, func(path string) { fmt.Println(path) }); err != nil {
		log.Fatal(err)
	}
}

func walk(root string, dryRun bool, report func(path string)) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && slices.Contains(skipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !slices.Contains(exts, filepath.Ext(path)) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if hasHeader(content) {
			return nil
		}
		report(path)
		if dryRun {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		fmt.Fprintf(&buf, tmpl, info.ModTime().Year())
		buf.Write(content)
		return atomicio.WriteFile(path, buf.Bytes(), 0)
	})
}

func hasHeader(src []byte) bool {
	for s := range scan.All(src) {
		text := s.Text(src)
		switch {
		case s.Kind.IsComment():
			return bytes.Contains(text, []byte("©"))
		case s.Kind == scan.Code && len(bytes.TrimSpace(text)) == 0:
			continue
		}
		return false
	}
	return false
}
