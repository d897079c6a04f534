package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Decode locates the assignment of variable inside a JavaScript source file
// (typically apidoc.js and the apiSchema variable) and decodes the assigned
// array or object literal into the source tree. A top-level object literal is
// wrapped as a single-node tree. Only a missing assignment or malformed
// syntax fails; a field of the wrong type decodes as absent and every
// well-typed field around it is kept.
func Decode(src []byte, variable string) ([]*Node, error) {
	lit, err := ExtractLiteral(src, variable)
	if err != nil {
		return nil, err
	}
	if lit[0] == '{' {
		var single Node
		if err := json.Unmarshal(lit, &single); err != nil && !typeMismatch(err) {
			return nil, fmt.Errorf("decoding %s literal: %w", variable, err)
		}
		return []*Node{&single}, nil
	}
	var nodes []*Node
	if err := json.Unmarshal(lit, &nodes); err != nil && !typeMismatch(err) {
		return nil, fmt.Errorf("decoding %s literal: %w", variable, err)
	}
	return nodes, nil
}

// typeMismatch reports whether err is a wrong-typed field rather than broken
// syntax. encoding/json fills every well-typed field, skips the mismatched
// one and keeps going, so the partially-populated result honors the
// shape-deviation defaults.
func typeMismatch(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr)
}

// ExtractLiteral returns the array or object literal assigned to variable in
// src. The assignment may be prefixed by const/var/let and followed by
// arbitrary further code; the literal is delimited by bracket matching, so
// trailing semicolons and unrelated statements are ignored.
func ExtractLiteral(src []byte, variable string) ([]byte, error) {
	needle := []byte(variable)
	for i := 0; i+len(needle) <= len(src); {
		j := bytes.Index(src[i:], needle)
		if j < 0 {
			break
		}
		j += i
		i = j + len(needle)
		if !identBoundary(src, j, len(needle)) {
			continue
		}
		k := skipSpace(src, j+len(needle))
		// Require a plain assignment, not == or ===.
		if k >= len(src) || src[k] != '=' || (k+1 < len(src) && src[k+1] == '=') {
			continue
		}
		k = skipSpace(src, k+1)
		if k < len(src) && (src[k] == '[' || src[k] == '{') {
			return scanLiteral(src[k:], variable)
		}
	}
	return nil, fmt.Errorf("no array or object literal assigned to %q", variable)
}

// identBoundary reports whether src[pos:pos+n] stands alone as an identifier.
func identBoundary(src []byte, pos, n int) bool {
	if pos > 0 && isIdent(src[pos-1]) {
		return false
	}
	if pos+n < len(src) && isIdent(src[pos+n]) {
		return false
	}
	return true
}

func isIdent(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

func skipSpace(src []byte, i int) int {
	for i < len(src) {
		switch src[i] {
		case ' ', '\t', '\r', '\n':
			i++
		default:
			return i
		}
	}
	return i
}

// scanLiteral returns the prefix of src that forms one balanced bracketed
// literal, honoring string literals, escapes and JavaScript comments so
// brackets inside either do not count.
func scanLiteral(src []byte, variable string) ([]byte, error) {
	depth := 0
	var quote byte
	for i := 0; i < len(src); i++ {
		b := src[i]
		if quote != 0 {
			switch b {
			case '\\':
				i++
			case quote:
				quote = 0
			}
			continue
		}
		switch b {
		case '"', '\'', '`':
			quote = b
		case '/':
			if i+1 >= len(src) {
				break
			}
			switch src[i+1] {
			case '/':
				for i < len(src) && src[i] != '\n' {
					i++
				}
			case '*':
				end := bytes.Index(src[i+2:], []byte("*/"))
				if end < 0 {
					return nil, fmt.Errorf("unterminated comment in literal assigned to %q", variable)
				}
				i += 2 + end + 1
			}
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return src[:i+1], nil
			}
		}
	}
	return nil, fmt.Errorf("unterminated literal assigned to %q", variable)
}
