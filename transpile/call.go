// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpile

import (
	"fmt"
	"strings"

	"go.adder.dev/jslib"
	"go.adder.dev/resolve"
	"go.adder.dev/syntax"
)

// callArgs is a call's argument list split into its four kinds, in
// source order within each kind.
type callArgs struct {
	pos     []syntax.Expr
	splats  []syntax.Expr // *seq arguments
	kwOrder []kwGroup     // name=value runs interleaved with **mapping spreads
}

type kwGroup struct {
	names  []string // Python keyword names; nil for a **mapping spread
	values []syntax.Expr
	spread syntax.Expr
}

func splitArgs(args []syntax.Expr) callArgs {
	var ca callArgs
	for _, arg := range args {
		switch arg := arg.(type) {
		case *syntax.UnaryExpr:
			switch arg.Op {
			case syntax.STAR:
				ca.splats = append(ca.splats, arg.X)
				continue
			case syntax.STARSTAR:
				ca.kwOrder = append(ca.kwOrder, kwGroup{spread: arg.X})
				continue
			}
		case *syntax.BinaryExpr:
			if arg.Op == syntax.EQ {
				name := arg.X.(*syntax.Ident).Name
				n := len(ca.kwOrder)
				if n > 0 && ca.kwOrder[n-1].spread == nil {
					ca.kwOrder[n-1].names = append(ca.kwOrder[n-1].names, name)
					ca.kwOrder[n-1].values = append(ca.kwOrder[n-1].values, arg.Y)
				} else {
					ca.kwOrder = append(ca.kwOrder, kwGroup{names: []string{name}, values: []syntax.Expr{arg.Y}})
				}
				continue
			}
		}
		ca.pos = append(ca.pos, arg)
	}
	return ca
}

func (ca callArgs) hasKw() bool { return len(ca.kwOrder) > 0 }

// kwArg translates the keyword arguments into the trailing tagged
// argument of the calling convention.
func (t *translator) kwArg(ca callArgs) string {
	if len(ca.kwOrder) == 1 && ca.kwOrder[0].spread == nil {
		return fmt.Sprintf("%s(%s)", t.helper("_py_kwtag"), t.kwObject(ca.kwOrder[0]))
	}
	var groups []string
	for _, g := range ca.kwOrder {
		if g.spread != nil {
			groups = append(groups, t.expr(g.spread).code)
		} else {
			groups = append(groups, t.kwObject(g))
		}
	}
	return fmt.Sprintf("%s(%s)", t.helper("_py_kwmerge"), strings.Join(groups, ", "))
}

func (t *translator) kwObject(g kwGroup) string {
	var parts []string
	for i, name := range g.names {
		parts = append(parts, jsQuote(name)+": "+t.expr(g.values[i]).code)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// argList translates the plain-call argument list: positionals
// followed by the tagged keyword argument if any.  Valid only when
// the call has no *seq splats.
func (t *translator) argList(ca callArgs) string {
	var parts []string
	for _, a := range ca.pos {
		parts = append(parts, t.expr(a).code)
	}
	if ca.hasKw() {
		parts = append(parts, t.kwArg(ca))
	}
	return strings.Join(parts, ", ")
}

// argArray translates the argument list into a JavaScript array
// expression for Function.prototype.apply, splicing *seq splats in
// source position.
func (t *translator) argArray(ca callArgs, extra ...string) string {
	var segs []string
	var run []string
	flush := func() {
		if len(run) > 0 {
			segs = append(segs, "["+strings.Join(run, ", ")+"]")
			run = nil
		}
	}
	run = append(run, extra...)
	for _, a := range ca.pos {
		run = append(run, t.expr(a).code)
	}
	flush()
	for _, sp := range ca.splats {
		segs = append(segs, fmt.Sprintf("%s(%s)", t.helper("_py_iter"), t.expr(sp).code))
	}
	if ca.hasKw() {
		segs = append(segs, "["+t.kwArg(ca)+"]")
	}
	if len(segs) == 1 && strings.HasPrefix(segs[0], "[") {
		return segs[0]
	}
	return "[].concat(" + strings.Join(segs, ", ") + ")"
}

// plainFunctions maps each binding that is assigned exactly once, by a
// def whose parameters are all plain positionals, to true.  The plain
// function form declares JavaScript parameters directly and never
// splits the caller's arguments, so a keyword argument passed to such
// a function would silently bind its tag object to a positional
// parameter.
func plainFunctions(f *syntax.File) map[*syntax.Binding]bool {
	writes := make(map[*syntax.Binding]int)
	plain := make(map[*syntax.Binding]bool)
	var targets func(e syntax.Expr)
	targets = func(e syntax.Expr) {
		switch e := e.(type) {
		case *syntax.Ident:
			if e.Binding != nil {
				writes[e.Binding]++
			}
		case *syntax.ParenExpr:
			targets(e.X)
		case *syntax.TupleExpr:
			for _, elem := range e.List {
				targets(elem)
			}
		case *syntax.ListExpr:
			for _, elem := range e.List {
				targets(elem)
			}
		}
	}
	syntax.Walk(f, func(n syntax.Node) bool {
		switch n := n.(type) {
		case *syntax.DefStmt:
			if b := n.Name.Binding; b != nil {
				writes[b]++
				fn := n.Function.(*resolve.Function)
				if !fn.HasVarargs && !fn.HasKwargs && !fn.HasDefaults && fn.NumKwonlyParams == 0 {
					plain[b] = true
				}
			}
		case *syntax.ClassStmt:
			targets(n.Name)
		case *syntax.AssignStmt:
			targets(n.LHS)
		case *syntax.ForStmt:
			targets(n.Vars)
		case *syntax.ForClause:
			targets(n.Vars)
		case *syntax.WithStmt:
			for _, item := range n.Items {
				if item.Var != nil {
					targets(item.Var)
				}
			}
		case *syntax.TryStmt:
			for _, h := range n.Handlers {
				if h.Name != nil {
					targets(h.Name)
				}
			}
		}
		return true
	})
	for b := range plain {
		if writes[b] != 1 {
			delete(plain, b)
		}
	}
	return plain
}

func (t *translator) callExpr(e *syntax.CallExpr) fragment {
	ca := splitArgs(e.Args)

	switch fn := e.Fn.(type) {
	case *syntax.Ident:
		if fn.Binding != nil && fn.Binding.Scope == syntax.UniversalScope {
			return t.builtinCall(fn, ca)
		}
		if ca.hasKw() && t.plainFns[fn.Binding] {
			t.errorf(fn.NamePos, UnsupportedConstruct,
				"%s() takes no keyword arguments", fn.Name)
		}

	case *syntax.DotExpr:
		return t.methodCall(fn, ca)
	}

	f := t.expr(e.Fn)
	if len(ca.splats) == 0 {
		return fragment{
			fmt.Sprintf("%s(%s)", f.at(precPostfix), t.argList(ca)),
			precPostfix,
		}
	}
	return fragment{
		fmt.Sprintf("%s.apply(null, %s)", f.at(precPostfix), t.argArray(ca)),
		precPostfix,
	}
}

// builtinCall lowers a call to a universal built-in function.
func (t *translator) builtinCall(fn *syntax.Ident, ca callArgs) fragment {
	if jslib.IsErrorName(fn.Name) {
		// Constructing an exception value.
		if len(ca.splats) > 0 || ca.hasKw() {
			t.errorf(fn.NamePos, UnsupportedConstruct, "%s() takes a single positional message", fn.Name)
		}
		msg := "undefined"
		if len(ca.pos) > 0 {
			msg = t.expr(ca.pos[0]).code
		}
		return fragment{
			fmt.Sprintf("%s(%s, %s)", t.helper("_py_err"), jsQuote(fn.Name), msg),
			precPostfix,
		}
	}

	if fn.Name == "isinstance" || fn.Name == "issubclass" {
		if len(ca.pos) != 2 || len(ca.splats) > 0 || ca.hasKw() {
			t.errorf(fn.NamePos, UnsupportedConstruct, "%s() takes exactly two positional arguments", fn.Name)
		}
		return fragment{
			fmt.Sprintf("%s(%s, %s)", t.helper(jslib.BuiltinHelper(fn.Name)),
				t.expr(ca.pos[0]).code, t.classArg(ca.pos[1])),
			precPostfix,
		}
	}

	helper := jslib.BuiltinHelper(fn.Name)
	if helper == "" {
		t.errorf(fn.NamePos, UnsupportedConstruct, "%s is not callable", fn.Name)
	}
	h := t.helper(helper)
	if len(ca.splats) == 0 {
		return fragment{fmt.Sprintf("%s(%s)", h, t.argList(ca)), precPostfix}
	}
	return fragment{
		fmt.Sprintf("%s.apply(null, %s)", h, t.argArray(ca)),
		precPostfix,
	}
}

// classArg lowers the class operand of isinstance or issubclass.  A
// built-in type name becomes its name string, which the helper matches
// against the value's shape; a display of alternatives lowers
// elementwise.
func (t *translator) classArg(e syntax.Expr) string {
	if p, ok := e.(*syntax.ParenExpr); ok {
		return t.classArg(p.X)
	}
	if elems, ok := displayElems(e); ok {
		var parts []string
		for _, elem := range elems {
			parts = append(parts, t.classArg(elem))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if id, ok := e.(*syntax.Ident); ok && id.Binding != nil &&
		id.Binding.Scope == syntax.UniversalScope && jslib.IsTypeName(id.Name) {
		return jsQuote(id.Name)
	}
	return t.expr(e).code
}

// methodCall lowers x.m(...).  A receiver that is a class name
// dispatches through the prototype with an explicit this argument, as
// in Base.__init__(self, x).  Otherwise a catalogued method name goes
// through its runtime helper, which delegates to a matching property
// when the receiver defines one; anything else is a direct property
// call.
func (t *translator) methodCall(dot *syntax.DotExpr, ca callArgs) fragment {
	if id, ok := dot.X.(*syntax.Ident); ok && id.Binding != nil && id.Binding.IsClass {
		if len(ca.splats) > 0 {
			t.errorf(dot.Dot, UnsupportedConstruct, "cannot splice *arguments into a class method dispatch")
		}
		target := fmt.Sprintf("%s.prototype.%s", t.bindingName(id), dot.Name.Name)
		if len(ca.pos) == 0 {
			return fragment{fmt.Sprintf("%s(%s)", target, t.argList(ca)), precPostfix}
		}
		self := t.expr(ca.pos[0]).code
		rest := ca
		rest.pos = ca.pos[1:]
		args := t.argList(rest)
		if args != "" {
			args = ", " + args
		}
		return fragment{
			fmt.Sprintf("%s.call(%s%s)", target, self, args),
			precPostfix,
		}
	}

	recv := t.expr(dot.X)
	if helper := jslib.MethodHelper(dot.Name.Name); helper != "" {
		h := t.helper(helper)
		if len(ca.splats) == 0 {
			args := t.argList(ca)
			if args != "" {
				args = ", " + args
			}
			return fragment{fmt.Sprintf("%s(%s%s)", h, recv.code, args), precPostfix}
		}
		return fragment{
			fmt.Sprintf("%s.apply(null, %s)", h, t.argArray(ca, recv.code)),
			precPostfix,
		}
	}

	if len(ca.splats) == 0 {
		return fragment{
			fmt.Sprintf("%s.%s(%s)", recv.at(precPostfix), dot.Name.Name, t.argList(ca)),
			precPostfix,
		}
	}
	// The receiver appears twice in the apply form; evaluate it once.
	this := recv.at(precPostfix)
	if !pure(dot.X) {
		tmp := t.tempvar()
		this = fmt.Sprintf("(%s = %s)", tmp, recv.code)
		return fragment{
			fmt.Sprintf("%s.%s.apply(%s, %s)", this, dot.Name.Name, tmp, t.argArray(ca)),
			precPostfix,
		}
	}
	return fragment{
		fmt.Sprintf("%s.%s.apply(%s, %s)", this, dot.Name.Name, this, t.argArray(ca)),
		precPostfix,
	}
}
