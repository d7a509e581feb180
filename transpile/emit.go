// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpile

import (
	"fmt"
	"strings"
)

// JavaScript operator precedence levels, loosest first.  A fragment
// tagged with a level is parenthesized by its consumer only when
// embedded where a tighter level is required.
const (
	precLowest  = iota // yield, not composable without parens
	precCond           // ?:
	precOr             // ||
	precAnd            // &&
	precBitOr          // |
	precBitXor         // ^
	precBitAnd         // &
	precEq             // === !==
	precRel            // < <= > >= instanceof
	precShift          // << >>
	precAdd            // + -
	precMul            // * / %
	precUnary          // ! - + ~ typeof await
	precPostfix        // call, member access, indexing, new
	precAtom           // literals, identifiers, parenthesized
)

// A fragment is an emitted JavaScript expression with the precedence
// of its outermost operator.
type fragment struct {
	code string
	prec int
}

func atom(code string) fragment { return fragment{code, precAtom} }

// at returns the code, parenthesized if the fragment binds looser
// than min.
func (f fragment) at(min int) string {
	if f.prec < min {
		return "(" + f.code + ")"
	}
	return f.code
}

// An emitter accumulates formatted statements.  Statement translators
// append lines; block constructs adjust the depth around their bodies.
type emitter struct {
	buf    strings.Builder
	indent string
	depth  int
}

func (e *emitter) line(format string, args ...interface{}) {
	for i := 0; i < e.depth; i++ {
		e.buf.WriteString(e.indent)
	}
	if len(args) == 0 {
		e.buf.WriteString(format)
	} else {
		fmt.Fprintf(&e.buf, format, args...)
	}
	e.buf.WriteByte('\n')
}

// open emits a line and indents the lines that follow it.
func (e *emitter) open(format string, args ...interface{}) {
	e.line(format, args...)
	e.depth++
}

// close outdents and emits a closing line.
func (e *emitter) close(format string, args ...interface{}) {
	e.depth--
	e.line(format, args...)
}

// raw appends preformatted text, reindenting each line to the current
// depth plus its own leading indentation.
func (e *emitter) raw(text string) {
	for _, l := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		e.line("%s", l)
	}
}

func (e *emitter) String() string { return e.buf.String() }

// jsQuote renders s as a double-quoted JavaScript string literal.
func jsQuote(s string) string {
	var buf strings.Builder
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				fmt.Fprintf(&buf, `\u%04x`, r)
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
	return buf.String()
}
