// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package atomicio writes files so that readers never see partial content.
package atomicio

import (
	"io/fs"
	"os"
	"path/filepath"
)

// WriteFile writes data to the named file atomically. The data is written to
// a temporary file in the same directory, which then replaces name. If name
// exists and perm is zero, its permissions are kept.
func WriteFile(name string, data []byte, perm fs.FileMode) (err error) {
	if perm == 0 {
		perm = 0o644
		if fi, err := os.Stat(name); err == nil {
			perm = fi.Mode().Perm()
		}
	}

	// os.Rename is only atomic within a single filesystem.
	f, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()

	if _, err := f.Write(data); err != nil {
		return err
	}
	if err := f.Chmod(perm); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), name)
}
