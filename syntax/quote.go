// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// Python-like string literal quotation and unquotation.

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// unquote unquotes the quoted string, returning the actual string value,
// whether the original was a byte string, and whether it was a formatted
// (f-prefixed) string. Raw (r-prefixed) strings are returned without
// escape interpretation; an f-string's interpolations are interpreted
// later by the parser.
func unquote(quoted string) (s string, isByte, isFString bool, err error) {
	// Prefix letters: r, b, f in any order and case, at most one each,
	// and not both b and f.
	raw := false
prefix:
	for len(quoted) > 0 {
		switch quoted[0] {
		case 'r', 'R':
			if raw {
				err = fmt.Errorf("duplicate string prefix 'r'")
				return
			}
			raw = true
		case 'b', 'B':
			if isByte {
				err = fmt.Errorf("duplicate string prefix 'b'")
				return
			}
			isByte = true
		case 'f', 'F':
			if isFString {
				err = fmt.Errorf("duplicate string prefix 'f'")
				return
			}
			isFString = true
		default:
			break prefix
		}
		quoted = quoted[1:]
	}
	if isByte && isFString {
		err = fmt.Errorf("string prefixes 'b' and 'f' are incompatible")
		return
	}

	// Check for quotes.
	if len(quoted) < 2 {
		err = fmt.Errorf("string literal too short")
		return
	}
	quote := quoted[0]
	if quote != '"' && quote != '\'' {
		err = fmt.Errorf("string literal has invalid quotes")
		return
	}

	// Handle triple quoted strings.
	if len(quoted) >= 6 && quoted[1] == quote && quoted[2] == quote {
		if quoted[len(quoted)-3:] != quoted[:3] {
			err = fmt.Errorf("unbalanced quotes")
			return
		}
		quoted = quoted[3 : len(quoted)-3]
	} else {
		if quoted[len(quoted)-1] != quote {
			err = fmt.Errorf("unbalanced quotes")
			return
		}
		quoted = quoted[1 : len(quoted)-1]
	}

	// Raw strings keep their backslashes.
	if raw {
		s = quoted
		return
	}

	// precondition: quotes are balanced
	if !strings.Contains(quoted, `\`) {
		s = quoted
		return
	}

	var buf strings.Builder
	for len(quoted) > 0 {
		c := quoted[0]
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(quoted)
			buf.WriteRune(r)
			quoted = quoted[size:]
			continue
		}
		if len(quoted) < 2 {
			err = fmt.Errorf("dangling backslash")
			return
		}
		switch quoted[1] {
		case '\n':
			// ignore escaped newline
			quoted = quoted[2:]
		case 'n':
			buf.WriteByte('\n')
			quoted = quoted[2:]
		case 't':
			buf.WriteByte('\t')
			quoted = quoted[2:]
		case 'r':
			buf.WriteByte('\r')
			quoted = quoted[2:]
		case 'a':
			buf.WriteByte('\a')
			quoted = quoted[2:]
		case 'b':
			buf.WriteByte('\b')
			quoted = quoted[2:]
		case 'f':
			buf.WriteByte('\f')
			quoted = quoted[2:]
		case 'v':
			buf.WriteByte('\v')
			quoted = quoted[2:]
		case '\\', '\'', '"':
			buf.WriteByte(quoted[1])
			quoted = quoted[2:]
		case '0', '1', '2', '3', '4', '5', '6', '7':
			// octal escape: up to three digits
			n := 1
			for n < 3 && n < len(quoted)-1 && '0' <= quoted[1+n] && quoted[1+n] <= '7' {
				n++
			}
			v, _ := strconv.ParseUint(quoted[1:1+n], 8, 32)
			if v > 255 {
				err = fmt.Errorf(`invalid escape sequence \%s`, quoted[1:1+n])
				return
			}
			buf.WriteByte(byte(v))
			quoted = quoted[1+n:]
		case 'x':
			if len(quoted) < 4 {
				err = fmt.Errorf(`truncated escape sequence %s`, quoted)
				return
			}
			v, e := strconv.ParseUint(quoted[2:4], 16, 32)
			if e != nil {
				err = fmt.Errorf(`invalid escape sequence %s`, quoted[:4])
				return
			}
			buf.WriteByte(byte(v))
			quoted = quoted[4:]
		case 'u', 'U':
			sz := 6 // \uXXXX
			if quoted[1] == 'U' {
				sz = 10 // \UXXXXXXXX
			}
			if len(quoted) < sz {
				err = fmt.Errorf(`truncated escape sequence %s`, quoted)
				return
			}
			v, e := strconv.ParseUint(quoted[2:sz], 16, 32)
			if e != nil || v > 0x10FFFF {
				err = fmt.Errorf(`invalid escape sequence %s`, quoted[:sz])
				return
			}
			buf.WriteRune(rune(v))
			quoted = quoted[sz:]
		default:
			// An unrecognized escape keeps its backslash,
			// as in Python.
			buf.WriteByte('\\')
			buf.WriteByte(quoted[1])
			quoted = quoted[2:]
		}
	}
	s = buf.String()
	return
}

// Quote returns a double-quoted string literal denoting s,
// using b"..." form if isByte.
func Quote(s string, isByte bool) string {
	const hex = "0123456789abcdef"
	var buf strings.Builder
	if isByte {
		buf.WriteByte('b')
	}
	buf.WriteByte('"')
	for w := 0; w < len(s); {
		r, width := utf8.DecodeRuneInString(s[w:])
		w += width
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\t':
			buf.WriteString(`\t`)
		case '\r':
			buf.WriteString(`\r`)
		default:
			if r < ' ' || r == 0x7f {
				buf.WriteString(`\x`)
				buf.WriteByte(hex[r>>4])
				buf.WriteByte(hex[r&0xf])
			} else if r == utf8.RuneError && width == 1 {
				buf.WriteString(`\x`)
				buf.WriteByte(hex[s[w-1]>>4])
				buf.WriteByte(hex[s[w-1]&0xf])
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
