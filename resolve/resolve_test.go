// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package resolve_test

import (
	"testing"

	"go.adder.dev/internal/chunkedfile"
	"go.adder.dev/resolve"
	"go.adder.dev/syntax"
)

// isUniversal reports whether a name belongs to the translation
// target's built-in catalog, as the translator's runtime defines it.
var universal = map[string]bool{
	"True": true, "False": true, "None": true,
	"print": true, "len": true, "range": true, "enumerate": true,
	"zip": true, "isinstance": true, "str": true, "repr": true,
	"bool": true, "int": true, "float": true, "list": true,
	"tuple": true, "dict": true, "set": true, "min": true,
	"max": true, "sum": true, "abs": true, "all": true, "any": true,
	"sorted": true, "reversed": true, "round": true, "callable": true,
	"hasattr": true, "getattr": true, "setattr": true, "delattr": true,
	"chr": true, "ord": true, "divmod": true, "filter": true, "map": true,
	"Exception": true, "ValueError": true, "TypeError": true,
	"KeyError": true, "IndexError": true, "AttributeError": true,
	"RuntimeError": true, "ZeroDivisionError": true, "StopIteration": true,
	"NotImplementedError": true, "AssertionError": true,
}

func isUniversal(name string) bool { return universal[name] }

func TestResolve(t *testing.T) {
	filename := "testdata/resolve.py"
	for _, chunk := range chunkedfile.Read(filename, t) {
		f, err := syntax.Parse(filename, chunk.Source, 0)
		if err != nil {
			t.Error(err)
			continue
		}

		if err := resolve.File(f, isUniversal); err != nil {
			for _, err := range err.(resolve.ErrorList) {
				chunk.GotError(int(err.Pos.Line), err.Msg)
			}
		}
		chunk.Done()
	}
}

func TestDefVarargsAndKwargsSet(t *testing.T) {
	source := "def f(*args, **kwargs): pass\n"
	file, err := syntax.Parse("foo.py", source, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := resolve.File(file, isUniversal); err != nil {
		t.Fatal(err)
	}
	fn := file.Stmts[0].(*syntax.DefStmt).Function.(*resolve.Function)
	if !fn.HasVarargs {
		t.Error("HasVarargs not set")
	}
	if !fn.HasKwargs {
		t.Error("HasKwargs not set")
	}
}

func TestGeneratorFlag(t *testing.T) {
	source := "def f(n):\n    for i in range(n):\n        yield i\n"
	file, err := syntax.Parse("gen.py", source, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := resolve.File(file, isUniversal); err != nil {
		t.Fatal(err)
	}
	fn := file.Stmts[0].(*syntax.DefStmt).Function.(*resolve.Function)
	if !fn.IsGenerator {
		t.Error("IsGenerator not set")
	}
}

func TestFreeVars(t *testing.T) {
	source := "def outer():\n" +
		"    x = 1\n" +
		"    def inner():\n" +
		"        return x\n" +
		"    return inner\n"
	file, err := syntax.Parse("free.py", source, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := resolve.File(file, isUniversal); err != nil {
		t.Fatal(err)
	}
	outer := file.Stmts[0].(*syntax.DefStmt)
	inner := outer.Body[1].(*syntax.DefStmt)
	innerFn := inner.Function.(*resolve.Function)
	if len(innerFn.FreeVars) != 1 || innerFn.FreeVars[0].First.Name != "x" {
		t.Errorf("inner FreeVars = %v, want [x]", innerFn.FreeVars)
	}
	if got := innerFn.FreeVars[0].Scope; got != syntax.CellScope {
		t.Errorf("captured binding scope = %v, want cell", got)
	}
}

func TestClassAttrs(t *testing.T) {
	source := "class Point:\n" +
		"    unit = 1\n" +
		"    def __init__(self, x):\n" +
		"        self.x = x\n" +
		"    def norm(self):\n" +
		"        return abs(self.x)\n"
	file, err := syntax.Parse("class.py", source, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := resolve.File(file, isUniversal); err != nil {
		t.Fatal(err)
	}
	cls := file.Stmts[0].(*syntax.ClassStmt).Class.(*resolve.Class)
	want := []string{"unit", "__init__", "norm"}
	if len(cls.Attrs) != len(want) {
		t.Fatalf("got %d class attrs, want %d", len(cls.Attrs), len(want))
	}
	for i, attr := range cls.Attrs {
		if attr.First.Name != want[i] {
			t.Errorf("attr %d = %s, want %s", i, attr.First.Name, want[i])
		}
		if attr.Scope != syntax.ClassAttrScope {
			t.Errorf("attr %s scope = %v, want class attribute", attr.First.Name, attr.Scope)
		}
	}
	bind := file.Stmts[0].(*syntax.ClassStmt).Name.Binding
	if bind == nil || !bind.IsClass {
		t.Errorf("class name binding IsClass not set")
	}
}

func TestModuleGlobals(t *testing.T) {
	source := "a = 1\nb = 2\ndef f(): pass\n"
	file, err := syntax.Parse("globals.py", source, 0)
	if err != nil {
		t.Fatal(err)
	}
	if err := resolve.File(file, isUniversal); err != nil {
		t.Fatal(err)
	}
	mod := file.Module.(*resolve.Module)
	want := []string{"a", "b", "f"}
	if len(mod.Globals) != len(want) {
		t.Fatalf("got %d globals, want %d", len(mod.Globals), len(want))
	}
	for i, g := range mod.Globals {
		if g.First.Name != want[i] {
			t.Errorf("global %d = %s, want %s", i, g.First.Name, want[i])
		}
	}
}
