// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package jslib provides the JavaScript runtime support library for
// translated programs.
//
// The library is a fixed catalog of helper routines, keyed by stable
// name.  Function helpers are named _py_xxx and method helpers
// _pym_xxx.  The translator treats every helper name as reserved, so a
// user identifier that happens to spell a helper name is renamed.
// Each helper records the other helpers its body refers to, so that a
// translation unit can link exactly the transitive closure of the
// helpers it uses.
//
// The catalog is versioned: two toolchains at the same Version emit
// byte-identical helper definitions, so externally linked runtime
// modules are interchangeable.
package jslib // import "go.adder.dev/jslib"

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Version identifies the helper catalog.  It changes whenever the
// source of any helper changes.
const Version = "0.4.0"

type helper struct {
	name string
	deps []string
	src  string // a JavaScript function expression
}

var catalog = make(map[string]*helper)

func register(name string, deps []string, src string) {
	if _, ok := catalog[name]; ok {
		panic("jslib: duplicate helper " + name)
	}
	catalog[name] = &helper{name: name, deps: deps, src: src}
}

// IsHelper reports whether name is the name of a catalog helper.
func IsHelper(name string) bool {
	_, ok := catalog[name]
	return ok
}

// Lookup returns the JavaScript source and dependencies of the named
// helper.
func Lookup(name string) (src string, deps []string, ok bool) {
	h, ok := catalog[name]
	if !ok {
		return "", nil, false
	}
	return h.src, h.deps, true
}

// Names returns the names of all helpers in the catalog, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Closure returns the transitive dependency closure of the named
// helpers, in a deterministic order with every helper preceding its
// dependents.  Unknown names cause a panic; the translator only asks
// for names it obtained from the catalog.
func Closure(names []string) []string {
	var order []string
	seen := make(map[string]bool)
	var visit func(name string)
	visit = func(name string) {
		if seen[name] {
			return
		}
		seen[name] = true
		h, ok := catalog[name]
		if !ok {
			panic("jslib: no such helper: " + name)
		}
		deps := append([]string(nil), h.deps...)
		sort.Strings(deps)
		for _, dep := range deps {
			visit(dep)
		}
		order = append(order, name)
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	for _, name := range sorted {
		visit(name)
	}
	return order
}

// Source returns the JavaScript definitions of the named helpers and
// their transitive dependencies, one "var name = function ...;" per
// helper, in Closure order.
func Source(names []string) string {
	var buf strings.Builder
	if err := Emit(&buf, names); err != nil {
		panic(err) // Builder does not fail
	}
	return buf.String()
}

// Emit writes the definitions of the named helpers and their
// transitive dependencies to w, for linking into a shared runtime
// module.
func Emit(w io.Writer, names []string) error {
	for _, name := range Closure(names) {
		h := catalog[name]
		if _, err := fmt.Fprintf(w, "var %s = %s;\n", h.name, h.src); err != nil {
			return err
		}
	}
	return nil
}
