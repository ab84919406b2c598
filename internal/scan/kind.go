// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package scan

import "fmt"

// Kind classifies a byte of source text.
type Kind uint8

// Span kinds. Every byte of input has exactly one of them.
const (
	Code Kind = iota
	LineComment
	BlockComment
	StringLiteral
	CharLiteral

	kindCount
)

var kindNames = [...]string{
	Code:          "code",
	LineComment:   "line_comment",
	BlockComment:  "block_comment",
	StringLiteral: "string",
	CharLiteral:   "char",
}

// String returns the name of the kind, as accepted by [ParseKind].
func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsComment reports whether k is a line or block comment.
func (k Kind) IsComment() bool { return k == LineComment || k == BlockComment }

// IsLiteral reports whether k is a string or character literal.
func (k Kind) IsLiteral() bool { return k == StringLiteral || k == CharLiteral }

// MarshalText implements [encoding.TextMarshaler].
func (k Kind) MarshalText() ([]byte, error) {
	if k >= kindCount {
		return nil, fmt.Errorf("scan: invalid kind %d", k)
	}
	return []byte(kindNames[k]), nil
}

// ParseKind returns the kind named s.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("scan: unknown kind %q", s)
}
