// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpile

import (
	"fmt"

	"go.adder.dev/jslib"
	"go.adder.dev/syntax"
)

// The mangler assigns each binding a target-safe JavaScript name.
//
// A name passes through unchanged unless it is a JavaScript reserved
// word, a target-significant global, or a runtime helper name.  A
// colliding name receives a numeric suffix, chosen to avoid every
// identifier that occurs anywhere in the translation unit, so a
// suffixed name can never be shadowed or captured by a user name in
// any scope.  Translator-generated temporaries are outside the
// mangler entirely: they carry a "$" prefix, and source identifiers
// never contain "$".

// jsReserved holds the ES5 and ES6 reserved words plus the globals the
// generated code relies on; a user name equal to any of these is
// renamed.
var jsReserved = map[string]bool{
	// reserved words
	"arguments": true, "await": true, "break": true, "case": true,
	"catch": true, "class": true, "const": true, "continue": true,
	"debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "eval": true, "export": true,
	"extends": true, "finally": true, "for": true, "function": true,
	"if": true, "implements": true, "import": true, "in": true,
	"instanceof": true, "interface": true, "let": true, "new": true,
	"null": true, "package": true, "private": true, "protected": true,
	"public": true, "return": true, "static": true, "super": true,
	"switch": true, "this": true, "throw": true, "try": true,
	"typeof": true, "var": true, "void": true, "while": true,
	"with": true, "yield": true,
	// target-significant globals
	"Array": true, "Boolean": true, "Error": true, "Infinity": true,
	"JSON": true, "Math": true, "NaN": true, "Number": true,
	"Object": true, "String": true, "console": true, "undefined": true,
}

const maxMangle = 100

type mangler struct {
	names map[*syntax.Binding]string // assigned target names
	taken map[string]bool            // every identifier occurring in the unit, plus assigned names
}

func newMangler(file *syntax.File) *mangler {
	m := &mangler{
		names: make(map[*syntax.Binding]string),
		taken: make(map[string]bool),
	}
	if file != nil {
		for _, stmt := range file.Stmts {
			syntax.Walk(stmt, m.collect)
		}
	}
	return m
}

func (m *mangler) collect(n syntax.Node) bool {
	if id, ok := n.(*syntax.Ident); ok {
		m.taken[id.Name] = true
	}
	return true
}

// unsafe reports whether name may not appear as a JavaScript variable.
func unsafe(name string) bool {
	return jsReserved[name] || jslib.IsHelper(name)
}

// name returns the target-safe name for a binding, assigning one on
// first use.  Forward and backward references to the same binding
// yield the same name.
func (m *mangler) name(b *syntax.Binding) (string, error) {
	if s, ok := m.names[b]; ok {
		return s, nil
	}
	orig := b.First.Name
	s := orig
	if unsafe(s) {
		var found bool
		for i := 1; i <= maxMangle; i++ {
			c := fmt.Sprintf("%s_%d", orig, i)
			if !unsafe(c) && !m.taken[c] {
				s, found = c, true
				break
			}
		}
		if !found {
			return "", &Error{
				Pos:  b.First.NamePos,
				Kind: ReservedNameCollision,
				Msg:  fmt.Sprintf("cannot find a collision-free rename for %s", orig),
			}
		}
		m.taken[s] = true
	}
	m.names[b] = s
	return s, nil
}
