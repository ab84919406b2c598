// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"fmt"
	"testing"

	"go.astrophena.name/commentscan/internal/testutil"
)

func TestLogfWriter(t *testing.T) {
	t.Parallel()

	var (
		logged  bool
		message string
	)
	logf := func(format string, args ...any) {
		logged = true
		message = fmt.Sprintf(format, args...)
	}
	Logf(logf).Write([]byte("hello"))
	testutil.AssertEqual(t, logged, true)
	testutil.AssertEqual(t, message, "hello")
}

type pos string

func (p pos) String() string { return string(p) }

func TestPos(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logf := Pos(New(&buf), "main.c", pos("3:7"))
	logf("block comment not terminated (%d bytes)", 12)
	testutil.AssertEqual(t, buf.String(), "main.c:3:7: block comment not terminated (12 bytes)\n")
}
