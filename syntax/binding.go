// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package syntax

// This file defines resolver data types referenced by the syntax tree.
// We cannot guarantee API stability for these types
// as they are closely tied to the implementation.

// A Binding ties together all identifiers that denote the same variable.
// The resolver computes a binding for every Ident.
type Binding struct {
	Scope Scope

	// Index records the index into the enclosing
	// - resolve.Function.Locals, if Scope==Local or Cell
	// - resolve.Function.FreeVars, if Scope==Free
	// - resolve.Module.Globals,  if Scope==Global
	// - resolve.Class.Attrs,     if Scope==ClassAttr.
	// It is zero if Scope is Universal or Undefined.
	Index int

	First *Ident // first binding use (iff Scope==Local/Cell/Free/Global/ClassAttr)

	// IsClass reports whether the binding is introduced by a class
	// statement, allowing the translator to resolve base-class method
	// calls through the prototype captured at class definition.
	IsClass bool
}

// The Scope of Binding indicates what kind of scope it has.
type Scope uint8

const (
	UndefinedScope Scope = iota // name is not defined
	LocalScope                  // name is local to its function
	CellScope                   // name is local but shared with a nested function
	FreeScope                   // name is cell of some enclosing function
	GlobalScope                 // name is global to module
	ClassAttrScope              // name is an attribute of the enclosing class body
	UniversalScope              // name is universal (e.g. len, range, ValueError)
)

var scopeNames = [...]string{
	UndefinedScope: "undefined",
	LocalScope:     "local",
	CellScope:      "cell",
	FreeScope:      "free",
	GlobalScope:    "global",
	ClassAttrScope: "class attribute",
	UniversalScope: "universal",
}

func (scope Scope) String() string { return scopeNames[scope] }
