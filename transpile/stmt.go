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

func (t *translator) stmts(e *emitter, stmts []syntax.Stmt) {
	for _, s := range stmts {
		t.stmt(e, s)
	}
}

func (t *translator) stmt(e *emitter, s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.ExprStmt:
		if _, ok := s.X.(*syntax.Literal); ok {
			return // docstring or other effect-free literal
		}
		code := t.expr(s.X).code
		// An expression statement may not begin with "{" or "function".
		if strings.HasPrefix(code, "{") || strings.HasPrefix(code, "function") {
			code = "(" + code + ")"
		}
		e.line("%s;", code)

	case *syntax.AssignStmt:
		t.assignStmt(e, s)

	case *syntax.IfStmt:
		t.ifStmt(e, s)

	case *syntax.WhileStmt:
		t.whileStmt(e, s)

	case *syntax.ForStmt:
		t.forStmt(e, s)

	case *syntax.ReturnStmt:
		if s.Result == nil {
			e.line("return;")
		} else {
			e.line("return %s;", t.expr(s.Result).code)
		}

	case *syntax.BranchStmt:
		switch s.Token {
		case syntax.BREAK:
			if loop := t.loops[len(t.loops)-1]; loop.flag != "" {
				e.line("%s = false;", loop.flag)
			}
			e.line("break;")
		case syntax.CONTINUE:
			e.line("continue;")
		case syntax.PASS:
			// no effect
		}

	case *syntax.DefStmt:
		t.defStmt(e, s)

	case *syntax.ClassStmt:
		t.classStmt(e, s)

	case *syntax.TryStmt:
		t.tryStmt(e, s)

	case *syntax.RaiseStmt:
		t.raiseStmt(e, s)

	case *syntax.WithStmt:
		t.withStmt(e, s)

	case *syntax.AssertStmt:
		msg := "undefined"
		if s.Msg != nil {
			msg = t.expr(s.Msg).code
		}
		e.line("if (!%s) { throw %s(\"AssertionError\", %s); }",
			t.boolOperand(s.Cond), t.helper("_py_err"), msg)

	case *syntax.DelStmt:
		for _, target := range s.List {
			switch target := target.(type) {
			case *syntax.IndexExpr:
				e.line("%s(%s, %s);", t.helper("_py_delitem"),
					t.expr(target.X).code, t.expr(target.Y).code)
			case *syntax.DotExpr:
				e.line("%s(%s, %s);", t.helper("_py_delattr"),
					t.expr(target.X).code, jsQuote(target.Name.Name))
			default:
				t.errorf(syntax.Start(target), InternalInvariant, "unexpected del target %T", target)
			}
		}

	case *syntax.GlobalStmt, *syntax.NonlocalStmt:
		// scope declarations have no translation

	default:
		t.errorf(syntax.Start(s), InternalInvariant, "unexpected statement %T", s)
	}
}

func (t *translator) assignStmt(e *emitter, s *syntax.AssignStmt) {
	if s.Op != syntax.EQ {
		t.augAssign(e, s)
		return
	}

	// Unpacking a tuple or list display evaluates the whole right
	// side into an array before any target changes, so "a, b = b, a"
	// swaps.
	if targets, ok := unpackTargets(s.LHS); ok {
		if elems, ok := displayElems(s.RHS); ok && len(elems) == len(targets) {
			tmp := t.stmtvar("tu")
			e.line("var %s = %s;", tmp, t.arrayDisplay(elems).code)
			for i, target := range targets {
				t.assignTo(e, target, fragment{fmt.Sprintf("%s[%d]", tmp, i), precPostfix})
			}
			return
		}
	}
	t.assignTo(e, s.LHS, t.expr(s.RHS))
}

// unpackTargets returns the element targets if lhs is a tuple or list
// pattern.
func unpackTargets(lhs syntax.Expr) ([]syntax.Expr, bool) {
	switch lhs := lhs.(type) {
	case *syntax.ParenExpr:
		return unpackTargets(lhs.X)
	case *syntax.TupleExpr:
		return lhs.List, true
	case *syntax.ListExpr:
		return lhs.List, true
	}
	return nil, false
}

func displayElems(rhs syntax.Expr) ([]syntax.Expr, bool) {
	switch rhs := rhs.(type) {
	case *syntax.ParenExpr:
		return displayElems(rhs.X)
	case *syntax.TupleExpr:
		return rhs.List, true
	case *syntax.ListExpr:
		return rhs.List, true
	}
	return nil, false
}

// assignTo emits statements assigning rhs to an arbitrary target
// pattern.
func (t *translator) assignTo(e *emitter, lhs syntax.Expr, rhs fragment) {
	switch lhs := lhs.(type) {
	case *syntax.ParenExpr:
		t.assignTo(e, lhs.X, rhs)

	case *syntax.Ident:
		e.line("%s = %s;", t.assignTarget(lhs), rhs.code)

	case *syntax.TupleExpr:
		t.unpackTo(e, lhs.List, rhs)
	case *syntax.ListExpr:
		t.unpackTo(e, lhs.List, rhs)

	case *syntax.IndexExpr:
		e.line("%s(%s, %s, %s);", t.helper("_py_setitem"),
			t.expr(lhs.X).code, t.expr(lhs.Y).code, rhs.code)

	case *syntax.DotExpr:
		e.line("%s.%s = %s;", t.expr(lhs.X).at(precPostfix), lhs.Name.Name, rhs.code)

	default:
		t.errorf(syntax.Start(lhs), InternalInvariant, "unexpected assignment target %T", lhs)
	}
}

func (t *translator) unpackTo(e *emitter, targets []syntax.Expr, rhs fragment) {
	tmp := t.stmtvar("tu")
	e.line("var %s = %s(%s);", tmp, t.helper("_py_iter"), rhs.code)
	e.line("if (%s.length !== %d) { throw %s(\"ValueError\", %s); }",
		tmp, len(targets), t.helper("_py_err"),
		jsQuote(fmt.Sprintf("expected %d values to unpack", len(targets))))
	for i, target := range targets {
		t.assignTo(e, target, fragment{fmt.Sprintf("%s[%d]", tmp, i), precPostfix})
	}
}

// assignTarget returns the assignable reference for a name: a class
// body attribute lands on the class prototype, anything else is the
// variable itself.
func (t *translator) assignTarget(id *syntax.Ident) string {
	if id.Binding != nil && id.Binding.Scope == syntax.ClassAttrScope {
		return t.classTarget() + ".prototype." + id.Name
	}
	return t.bindingName(id)
}

// augAssign lowers x op= y, evaluating every operand of the target
// exactly once.
func (t *translator) augAssign(e *emitter, s *syntax.AssignStmt) {
	rhs := t.expr(s.RHS)
	switch lhs := s.LHS.(type) {
	case *syntax.Ident:
		target := t.assignTarget(lhs)
		read := fragment{target, precPostfix}
		e.line("%s = %s;", target, t.augCombine(s, read, rhs).code)

	case *syntax.IndexExpr:
		obj := t.once(e, lhs.X, "o")
		key := t.once(e, lhs.Y, "k")
		read := fragment{
			fmt.Sprintf("%s(%s, %s)", t.helper("_py_getitem"), obj, key),
			precPostfix,
		}
		e.line("%s(%s, %s, %s);", t.helper("_py_setitem"),
			obj, key, t.augCombine(s, read, rhs).code)

	case *syntax.DotExpr:
		obj := t.once(e, lhs.X, "o")
		read := fragment{obj + "." + lhs.Name.Name, precPostfix}
		e.line("%s.%s = %s;", obj, lhs.Name.Name, t.augCombine(s, read, rhs).code)

	default:
		t.errorf(s.OpPos, InternalInvariant, "unexpected augmented target %T", lhs)
	}
}

// once yields a reference to e's value that is safe to mention twice,
// introducing a temporary unless re-evaluation is harmless.
func (t *translator) once(e *emitter, x syntax.Expr, prefix string) string {
	f := t.expr(x)
	if pure(x) {
		return f.at(precPostfix)
	}
	tmp := t.stmtvar(prefix)
	e.line("var %s = %s;", tmp, f.code)
	return tmp
}

func (t *translator) augCombine(s *syntax.AssignStmt, x, y fragment) fragment {
	switch s.Op {
	case syntax.PLUS_EQ:
		return fragment{fmt.Sprintf("%s(%s, %s)", t.helper("_py_add"), x.code, y.code), precPostfix}
	case syntax.STAR_EQ:
		return fragment{fmt.Sprintf("%s(%s, %s)", t.helper("_py_mult"), x.code, y.code), precPostfix}
	case syntax.SLASHSLASH_EQ:
		return fragment{fmt.Sprintf("%s(%s, %s)", t.helper("_py_floordiv"), x.code, y.code), precPostfix}
	case syntax.PERCENT_EQ:
		return fragment{fmt.Sprintf("%s(%s, %s)", t.helper("_py_mod"), x.code, y.code), precPostfix}
	case syntax.STARSTAR_EQ:
		return fragment{fmt.Sprintf("Math.pow(%s, %s)", x.code, y.code), precPostfix}
	case syntax.MINUS_EQ:
		return fragment{x.at(precAdd) + " - " + y.at(precAdd+1), precAdd}
	case syntax.SLASH_EQ:
		return fragment{x.at(precMul) + " / " + y.at(precMul+1), precMul}
	case syntax.LTLT_EQ:
		return fragment{x.at(precShift) + " << " + y.at(precShift+1), precShift}
	case syntax.GTGT_EQ:
		return fragment{x.at(precShift) + " >> " + y.at(precShift+1), precShift}
	case syntax.AMP_EQ:
		return fragment{x.at(precBitAnd) + " & " + y.at(precBitAnd+1), precBitAnd}
	case syntax.PIPE_EQ:
		return fragment{x.at(precBitOr) + " | " + y.at(precBitOr+1), precBitOr}
	case syntax.CIRCUMFLEX_EQ:
		return fragment{x.at(precBitXor) + " ^ " + y.at(precBitXor+1), precBitXor}
	}
	t.errorf(s.OpPos, InternalInvariant, "unexpected augmented operator %s", s.Op)
	panic("unreachable")
}

func (t *translator) ifStmt(e *emitter, s *syntax.IfStmt) {
	e.open("if (%s) {", t.boolExpr(s.Cond))
	t.stmts(e, s.True)
	for len(s.False) == 1 {
		elif, ok := s.False[0].(*syntax.IfStmt)
		if !ok {
			break
		}
		e.depth--
		e.line("} else if (%s) {", t.boolExpr(elif.Cond))
		e.depth++
		t.stmts(e, elif.True)
		s = elif
	}
	if len(s.False) > 0 {
		e.depth--
		e.line("} else {")
		e.depth++
		t.stmts(e, s.False)
	}
	e.close("}")
}

// pushLoop enters a loop, allocating a completion flag when the loop
// carries an else clause.
func (t *translator) pushLoop(e *emitter, hasElse bool) *loopInfo {
	loop := &loopInfo{}
	if hasElse {
		loop.flag = t.stmtvar("ok")
		e.line("var %s = true;", loop.flag)
	}
	t.loops = append(t.loops, loop)
	return loop
}

func (t *translator) popLoop(e *emitter, loop *loopInfo, elseBody []syntax.Stmt) {
	t.loops = t.loops[:len(t.loops)-1]
	if loop.flag != "" {
		e.open("if (%s) {", loop.flag)
		t.stmts(e, elseBody)
		e.close("}")
	}
}

func (t *translator) whileStmt(e *emitter, s *syntax.WhileStmt) {
	loop := t.pushLoop(e, len(s.Else) > 0)
	e.open("while (%s) {", t.boolExpr(s.Cond))
	t.stmts(e, s.Body)
	e.close("}")
	t.popLoop(e, loop, s.Else)
}

func (t *translator) forStmt(e *emitter, s *syntax.ForStmt) {
	loop := t.pushLoop(e, len(s.Else) > 0)
	seq := t.stmtvar("seq")
	idx := t.stmtvar("i")
	e.line("var %s = %s(%s);", seq, t.helper("_py_iter"), t.expr(s.X).code)
	e.open("for (var %s = 0; %s < %s.length; %s++) {", idx, idx, seq, idx)
	t.assignTo(e, s.Vars, fragment{fmt.Sprintf("%s[%s]", seq, idx), precPostfix})
	t.stmts(e, s.Body)
	e.close("}")
	t.popLoop(e, loop, s.Else)
}

func (t *translator) defStmt(e *emitter, s *syntax.DefStmt) {
	fn := s.Function.(*resolve.Function)
	isMethod := s.Name.Binding != nil && s.Name.Binding.Scope == syntax.ClassAttrScope
	parts := t.functionParts(fn, isMethod, s.Async, func(body *emitter) {
		t.stmts(body, fn.Body)
	})
	t.emitFunc(e, t.assignTarget(s.Name), parts)
}

func (t *translator) classStmt(e *emitter, s *syntax.ClassStmt) {
	if len(s.Bases) > 1 {
		t.errorf(s.ClassPos, UnsupportedConstruct, "multiple inheritance is not supported")
	}
	name := t.bindingName(s.Name)
	e.line("%s = function () { return %s(this, %s, arguments); };",
		name, t.helper("_py_instance"), name)

	if len(s.Bases) == 1 {
		base := s.Bases[0]
		if id, ok := base.(*syntax.Ident); ok && id.Binding != nil &&
			id.Binding.Scope == syntax.UniversalScope && jslib.IsErrorName(id.Name) {
			e.line("%s.prototype._errbase = %s;", name, jsQuote(id.Name))
		} else {
			b := t.expr(base).at(precPostfix)
			e.line("%s.prototype = Object.create(%s.prototype);", name, b)
			e.line("%s.prototype.constructor = %s;", name, name)
			e.line("%s.prototype._base = %s.prototype;", name, b)
		}
	}
	e.line("%s.prototype.__name__ = %s;", name, jsQuote(s.Name.Name))

	t.classes = append(t.classes, name)
	t.stmts(e, s.Body)
	t.classes = t.classes[:len(t.classes)-1]
}

func (t *translator) tryStmt(e *emitter, s *syntax.TryStmt) {
	var okFlag string
	if len(s.Else) > 0 {
		okFlag = t.stmtvar("ok")
		e.line("var %s = true;", okFlag)
	}
	if len(s.Finally) > 0 {
		e.open("try {")
	}

	if len(s.Handlers) > 0 {
		errName := t.stmtvar("err")
		e.open("try {")
		t.stmts(e, s.Body)
		e.depth--
		e.line("} catch (%s) {", errName)
		e.depth++
		if okFlag != "" {
			e.line("%s = false;", okFlag)
		}
		t.handlers = append(t.handlers, errName)
		t.catchDispatch(e, s.Handlers, errName)
		t.handlers = t.handlers[:len(t.handlers)-1]
		e.close("}")
	} else {
		t.stmts(e, s.Body)
	}

	if okFlag != "" {
		e.open("if (%s) {", okFlag)
		t.stmts(e, s.Else)
		e.close("}")
	}

	if len(s.Finally) > 0 {
		e.depth--
		e.line("} finally {")
		e.depth++
		t.stmts(e, s.Finally)
		e.close("}")
	}
}

// catchDispatch emits the handler chain inside a catch block.  A
// handler without an exception type matches anything; without one the
// chain ends by rethrowing.
func (t *translator) catchDispatch(e *emitter, handlers []*syntax.ExceptClause, errName string) {
	chain := false
	caughtAll := false
	for i, h := range handlers {
		if h.Type == nil {
			caughtAll = true
			if i > 0 {
				e.depth--
				e.line("} else {")
				e.depth++
			}
			t.bindCaught(e, h, errName)
			t.stmts(e, h.Body)
			break
		}
		cond := t.matchCond(h.Type, errName)
		if i == 0 {
			e.open("if (%s) {", cond)
			chain = true
		} else {
			e.depth--
			e.line("} else if (%s) {", cond)
			e.depth++
		}
		t.bindCaught(e, h, errName)
		t.stmts(e, h.Body)
	}
	if !caughtAll && chain {
		e.depth--
		e.line("} else {")
		e.depth++
		e.line("throw %s;", errName)
	}
	if chain {
		e.close("}")
	}
}

func (t *translator) bindCaught(e *emitter, h *syntax.ExceptClause, errName string) {
	if h.Name != nil {
		e.line("%s = %s;", t.assignTarget(h.Name), errName)
	}
}

// matchCond builds the test for "except T" or "except (T1, T2)".
func (t *translator) matchCond(typ syntax.Expr, errName string) string {
	if elems, ok := displayElems(typ); ok {
		var conds []string
		for _, elem := range elems {
			conds = append(conds, t.matchCond(elem, errName))
		}
		return strings.Join(conds, " || ")
	}
	return fmt.Sprintf("%s(%s, %s)", t.helper("_py_errmatch"), errName, t.expr(typ).code)
}

func (t *translator) raiseStmt(e *emitter, s *syntax.RaiseStmt) {
	if s.Exc == nil {
		if len(t.handlers) == 0 {
			e.line("throw %s(\"RuntimeError\", \"no active exception to re-raise\");",
				t.helper("_py_err"))
			return
		}
		e.line("throw %s;", t.handlers[len(t.handlers)-1])
		return
	}
	// A bare exception name raises a fresh instance of it.
	if id, ok := s.Exc.(*syntax.Ident); ok && id.Binding != nil &&
		id.Binding.Scope == syntax.UniversalScope && jslib.IsErrorName(id.Name) {
		e.line("throw %s(%s, undefined);", t.helper("_py_err"), jsQuote(id.Name))
		return
	}
	e.line("throw %s;", t.expr(s.Exc).code)
}

// withStmt lowers a context manager block.  The manager's exit hook
// runs exactly once on every path: with the exception when the body
// throws, with null otherwise.
func (t *translator) withStmt(e *emitter, s *syntax.WithStmt) {
	t.withItems(e, s.Items, s.Body)
}

func (t *translator) withItems(e *emitter, items []*syntax.WithItem, body []syntax.Stmt) {
	item := items[0]
	mgr := t.stmtvar("mgr")
	exc := t.stmtvar("exc")
	e.line("var %s = %s;", mgr, t.expr(item.X).code)
	if item.Var != nil {
		t.assignTo(e, item.Var, fragment{
			fmt.Sprintf("%s(%s)", t.helper("_py_enter"), mgr),
			precPostfix,
		})
	} else {
		e.line("%s(%s);", t.helper("_py_enter"), mgr)
	}
	e.line("var %s = null;", exc)
	e.open("try {")
	if len(items) > 1 {
		t.withItems(e, items[1:], body)
	} else {
		t.stmts(e, body)
	}
	errName := t.stmtvar("err")
	e.depth--
	e.line("} catch (%s) {", errName)
	e.depth++
	e.line("%s = %s;", exc, errName)
	e.line("if (!%s(%s(%s, %s))) { throw %s; }",
		t.helper("_py_truthy"), t.helper("_py_exit"), mgr, errName, errName)
	e.depth--
	e.line("} finally {")
	e.depth++
	e.line("if (%s === null) { %s(%s, null); }", exc, t.helper("_py_exit"), mgr)
	e.close("}")
}
