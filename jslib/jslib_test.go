// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jslib

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var helperRef = regexp.MustCompile(`_pym?_[a-z]+`)

// Every helper may refer only to itself and to its declared
// dependencies, and every declared dependency must be referenced.
func TestDepsDeclared(t *testing.T) {
	for _, name := range Names() {
		src, deps, _ := Lookup(name)
		declared := map[string]bool{name: true}
		for _, dep := range deps {
			if !IsHelper(dep) {
				t.Errorf("%s: dependency %s is not in the catalog", name, dep)
			}
			declared[dep] = true
		}
		used := map[string]bool{}
		for _, ref := range helperRef.FindAllString(src, -1) {
			if !IsHelper(ref) {
				t.Errorf("%s: refers to unknown name %s", name, ref)
				continue
			}
			used[ref] = true
			if !declared[ref] {
				t.Errorf("%s: refers to %s but does not declare it", name, ref)
			}
		}
		for _, dep := range deps {
			if !used[dep] {
				t.Errorf("%s: declares %s but never refers to it", name, dep)
			}
		}
	}
}

func TestClosureDeterministic(t *testing.T) {
	a := Closure([]string{"_py_print", "_py_sorted", "_pym_format"})
	b := Closure([]string{"_py_sorted", "_pym_format", "_py_print"})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("closure depends on request order (-first +second):\n%s", diff)
	}
}

func TestClosureOrder(t *testing.T) {
	order := Closure(Names())
	pos := make(map[string]int)
	for i, name := range order {
		pos[name] = i
	}
	if len(order) != len(Names()) {
		t.Fatalf("closure of all names has %d entries, want %d", len(order), len(Names()))
	}
	for _, name := range order {
		_, deps, _ := Lookup(name)
		for _, dep := range deps {
			if pos[dep] >= pos[name] {
				t.Errorf("%s emitted before its dependency %s", name, dep)
			}
		}
	}
}

func TestSource(t *testing.T) {
	src := Source([]string{"_py_print"})
	for _, want := range []string{
		"var _py_print = function",
		"var _py_str = function",
		"var _py_repr = function",
		"var _py_splitargs = function",
	} {
		if !strings.Contains(src, want) {
			t.Errorf("Source(_py_print) lacks %q", want)
		}
	}
	want := len(Closure([]string{"_py_print"}))
	if n := strings.Count(src, "var _py"); n != want {
		t.Errorf("Source has %d definitions, closure has %d", n, want)
	}
}

func TestBuiltinTables(t *testing.T) {
	for builtin, helper := range builtinHelpers {
		if !IsHelper(helper) {
			t.Errorf("builtin %s maps to unknown helper %s", builtin, helper)
		}
		if !IsBuiltin(builtin) {
			t.Errorf("IsBuiltin(%s) = false", builtin)
		}
	}
	for _, name := range []string{"True", "False", "None", "ValueError", "Exception"} {
		if !IsBuiltin(name) {
			t.Errorf("IsBuiltin(%s) = false", name)
		}
	}
	if IsBuiltin("frobnicate") {
		t.Error("IsBuiltin(frobnicate) = true")
	}
	if got := MethodHelper("append"); got != "_pym_append" {
		t.Errorf("MethodHelper(append) = %q", got)
	}
	if got := MethodHelper("frobnicate"); got != "" {
		t.Errorf("MethodHelper(frobnicate) = %q, want empty", got)
	}
}
