// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger defines a type for writing to logs.
package logger

import (
	"fmt"
	"io"
	"log"
)

// Logf is the basic logger type: a printf-like func. Like [log.Printf], the
// format need not end in a newline. Logf functions must be safe for concurrent
// use.
type Logf func(format string, args ...any)

// Write implements the [io.Writer] interface.
func (f Logf) Write(p []byte) (n int, err error) {
	f("%s", p)
	return len(p), nil
}

// New returns a Logf that writes lines to w with no prefix or timestamp.
func New(w io.Writer) Logf {
	return log.New(w, "", 0).Printf
}

// Pos returns a Logf that prefixes every message with "name:pos: ", the
// conventional shape of compiler-style diagnostics.
func Pos(logf Logf, name string, pos fmt.Stringer) Logf {
	return func(format string, args ...any) {
		logf("%s:%s: "+format, append([]any{name, pos}, args...)...)
	}
}
