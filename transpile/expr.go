// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transpile

import (
	"fmt"
	"math/big"
	"strings"

	"go.adder.dev/jslib"
	"go.adder.dev/resolve"
	"go.adder.dev/syntax"
)

// expr translates a value-producing node into a JavaScript expression
// fragment.
func (t *translator) expr(e syntax.Expr) fragment {
	switch e := e.(type) {
	case *syntax.Ident:
		return t.identExpr(e)

	case *syntax.Literal:
		return t.literal(e)

	case *syntax.FString:
		return t.fstring(e)

	case *syntax.ParenExpr:
		return t.expr(e.X)

	case *syntax.ListExpr:
		return t.arrayDisplay(e.List)

	case *syntax.TupleExpr:
		return t.arrayDisplay(e.List)

	case *syntax.SetExpr:
		elems := t.arrayDisplay(e.List)
		return fragment{fmt.Sprintf("%s(%s)", t.helper("_py_set"), elems.code), precPostfix}

	case *syntax.DictExpr:
		return t.dictDisplay(e)

	case *syntax.CondExpr:
		cond := t.boolExpr(e.Cond)
		yes := t.expr(e.True)
		no := t.expr(e.False)
		return fragment{
			fmt.Sprintf("%s ? %s : %s", cond, yes.at(precCond+1), no.at(precCond)),
			precCond,
		}

	case *syntax.UnaryExpr:
		return t.unaryExpr(e)

	case *syntax.BinaryExpr:
		return t.binaryExpr(e)

	case *syntax.DotExpr:
		x := t.expr(e.X)
		return fragment{x.at(precPostfix) + "." + e.Name.Name, precPostfix}

	case *syntax.IndexExpr:
		return t.indexExpr(e)

	case *syntax.SliceExpr:
		return t.sliceExpr(e)

	case *syntax.CallExpr:
		return t.callExpr(e)

	case *syntax.LambdaExpr:
		return t.lambdaExpr(e)

	case *syntax.Comprehension:
		return t.comprehension(e)

	case *syntax.YieldExpr:
		return t.yieldExpr(e)

	case *syntax.AwaitExpr:
		if !t.opts.Profile.Async {
			t.errorf(e.Await, UnsupportedConstruct, "await requires a target profile with async support")
		}
		x := t.expr(e.X)
		return fragment{"await " + x.at(precUnary), precUnary}

	default:
		t.errorf(syntax.Start(e), InternalInvariant, "unexpected expression %T", e)
		panic("unreachable")
	}
}

// identExpr translates a name reference.
func (t *translator) identExpr(id *syntax.Ident) fragment {
	b := id.Binding
	if b == nil {
		t.errorf(id.NamePos, InternalInvariant, "unresolved identifier %s", id.Name)
	}
	switch b.Scope {
	case syntax.UniversalScope:
		return t.universalExpr(id)
	case syntax.ClassAttrScope:
		return fragment{t.classTarget() + ".prototype." + id.Name, precPostfix}
	case syntax.UndefinedScope:
		t.errorf(id.NamePos, NameResolution, "undefined: %s", id.Name)
	}
	return atom(t.bindingName(id))
}

// universalExpr translates a universal name used as a value: constants
// become literals, exception classes become their name string, and
// built-in functions become runtime helper references.
func (t *translator) universalExpr(id *syntax.Ident) fragment {
	switch id.Name {
	case "True":
		return atom("true")
	case "False":
		return atom("false")
	case "None":
		return atom("null")
	}
	if jslib.IsErrorName(id.Name) {
		return atom(jsQuote(id.Name))
	}
	if h := jslib.BuiltinHelper(id.Name); h != "" {
		return atom(t.helper(h))
	}
	t.errorf(id.NamePos, InternalInvariant, "universal name %s has no translation", id.Name)
	panic("unreachable")
}

func (t *translator) literal(lit *syntax.Literal) fragment {
	switch lit.Token {
	case syntax.INT:
		switch v := lit.Value.(type) {
		case int64:
			return atom(fmt.Sprintf("%d", v))
		case *big.Int:
			// The target has no integer wider than float64;
			// emitted digits beyond 2**53 lose precision.
			return atom(v.String())
		}
	case syntax.FLOAT:
		return atom(formatFloat(lit.Value.(float64)))
	case syntax.STRING:
		return atom(jsQuote(lit.Value.(string)))
	case syntax.BYTES:
		t.errorf(lit.TokenPos, UnsupportedConstruct, "bytes literals have no target representation")
	}
	t.errorf(lit.TokenPos, InternalInvariant, "unexpected literal %s", lit.Token)
	panic("unreachable")
}

func formatFloat(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// fstring lowers an f-string to a concatenation of text pieces and
// converted interpolations.
func (t *translator) fstring(fs *syntax.FString) fragment {
	var parts []string
	for _, chunk := range fs.Chunks {
		if chunk.Text != "" {
			parts = append(parts, jsQuote(chunk.Text))
		}
		if chunk.X == nil {
			continue
		}
		x := t.expr(chunk.X)
		switch {
		case chunk.Spec != "":
			parts = append(parts, fmt.Sprintf("%s(%s, %s)",
				t.helper("_py_fmtval"), x.code, jsQuote(chunk.Spec)))
		case chunk.Conv == 'r':
			parts = append(parts, fmt.Sprintf("%s(%s)", t.helper("_py_repr"), x.code))
		default:
			parts = append(parts, fmt.Sprintf("%s(%s)", t.helper("_py_str"), x.code))
		}
	}
	if len(parts) == 0 {
		return atom(`""`)
	}
	if len(parts) == 1 {
		if strings.HasPrefix(parts[0], `"`) {
			return atom(parts[0])
		}
		return fragment{parts[0], precPostfix}
	}
	return fragment{strings.Join(parts, " + "), precAdd}
}

func (t *translator) arrayDisplay(elems []syntax.Expr) fragment {
	var parts []string
	for _, elem := range elems {
		parts = append(parts, t.expr(elem).code)
	}
	return atom("[" + strings.Join(parts, ", ") + "]")
}

// dictDisplay lowers a dict literal: an object literal when every key
// is a string or integer literal, otherwise a runtime construction
// from key/value pairs (object literal syntax cannot express computed
// keys on the ES5 target).
func (t *translator) dictDisplay(d *syntax.DictExpr) fragment {
	literalKeys := true
	for _, entry := range d.List {
		entry := entry.(*syntax.DictEntry)
		if lit, ok := entry.Key.(*syntax.Literal); !ok || (lit.Token != syntax.STRING && lit.Token != syntax.INT) {
			literalKeys = false
			break
		}
	}
	if literalKeys {
		var parts []string
		for _, entry := range d.List {
			entry := entry.(*syntax.DictEntry)
			key := entry.Key.(*syntax.Literal)
			var ks string
			if key.Token == syntax.STRING {
				ks = jsQuote(key.Value.(string))
			} else {
				ks = t.literal(key).code
			}
			parts = append(parts, ks+": "+t.expr(entry.Value).code)
		}
		return atom("{" + strings.Join(parts, ", ") + "}")
	}
	var pairs []string
	for _, entry := range d.List {
		entry := entry.(*syntax.DictEntry)
		pairs = append(pairs, fmt.Sprintf("[%s, %s]", t.expr(entry.Key).code, t.expr(entry.Value).code))
	}
	return fragment{
		fmt.Sprintf("%s([%s])", t.helper("_py_dict"), strings.Join(pairs, ", ")),
		precPostfix,
	}
}

func (t *translator) unaryExpr(e *syntax.UnaryExpr) fragment {
	switch e.Op {
	case syntax.NOT:
		return fragment{"!" + t.boolOperand(e.X), precUnary}
	case syntax.MINUS:
		return fragment{"-" + t.expr(e.X).at(precUnary), precUnary}
	case syntax.PLUS:
		return fragment{"+" + t.expr(e.X).at(precUnary), precUnary}
	case syntax.TILDE:
		return fragment{"~" + t.expr(e.X).at(precUnary), precUnary}
	}
	t.errorf(e.OpPos, InternalInvariant, "unexpected unary operator %s", e.Op)
	panic("unreachable")
}

// comparison operators form chains; everything else is a plain binary
// operator.
var cmpOp = map[syntax.Token]bool{
	syntax.EQL: true, syntax.NEQ: true,
	syntax.LT: true, syntax.LE: true, syntax.GT: true, syntax.GE: true,
	syntax.IN: true, syntax.NOT_IN: true,
	syntax.IS: true, syntax.IS_NOT: true,
}

func (t *translator) binaryExpr(e *syntax.BinaryExpr) fragment {
	if cmpOp[e.Op] {
		return t.comparison(e)
	}
	switch e.Op {
	case syntax.AND, syntax.OR:
		return t.boolOp(e)

	case syntax.PLUS:
		if numericLiteral(e.X) && numericLiteral(e.Y) {
			return t.nativeBinop(e, "+", precAdd)
		}
		return t.helperCall("_py_add", e.X, e.Y)

	case syntax.STAR:
		if numericLiteral(e.X) && numericLiteral(e.Y) {
			return t.nativeBinop(e, "*", precMul)
		}
		return t.helperCall("_py_mult", e.X, e.Y)

	case syntax.MINUS:
		return t.nativeBinop(e, "-", precAdd)
	case syntax.SLASH:
		return t.nativeBinop(e, "/", precMul)
	case syntax.SLASHSLASH:
		return t.helperCall("_py_floordiv", e.X, e.Y)
	case syntax.PERCENT:
		return t.helperCall("_py_mod", e.X, e.Y)
	case syntax.STARSTAR:
		return fragment{
			fmt.Sprintf("Math.pow(%s, %s)", t.expr(e.X).code, t.expr(e.Y).code),
			precPostfix,
		}
	case syntax.LTLT:
		return t.nativeBinop(e, "<<", precShift)
	case syntax.GTGT:
		return t.nativeBinop(e, ">>", precShift)
	case syntax.AMP:
		return t.nativeBinop(e, "&", precBitAnd)
	case syntax.PIPE:
		return t.nativeBinop(e, "|", precBitOr)
	case syntax.CIRCUMFLEX:
		return t.nativeBinop(e, "^", precBitXor)
	}
	t.errorf(e.OpPos, InternalInvariant, "unexpected binary operator %s", e.Op)
	panic("unreachable")
}

func (t *translator) nativeBinop(e *syntax.BinaryExpr, op string, prec int) fragment {
	x := t.expr(e.X)
	y := t.expr(e.Y)
	return fragment{x.at(prec) + " " + op + " " + y.at(prec+1), prec}
}

func (t *translator) helperCall(helper string, args ...syntax.Expr) fragment {
	var parts []string
	for _, arg := range args {
		parts = append(parts, t.expr(arg).code)
	}
	return fragment{
		fmt.Sprintf("%s(%s)", t.helper(helper), strings.Join(parts, ", ")),
		precPostfix,
	}
}

// boolOp lowers "and"/"or".  When both operands are provably boolean
// the native operator applies; otherwise the value-preserving form
// evaluates the left operand once into a temporary and selects.
func (t *translator) boolOp(e *syntax.BinaryExpr) fragment {
	if isBoolExpr(e.X) && isBoolExpr(e.Y) {
		if e.Op == syntax.AND {
			x, y := t.expr(e.X), t.expr(e.Y)
			return fragment{x.at(precAnd) + " && " + y.at(precAnd+1), precAnd}
		}
		x, y := t.expr(e.X), t.expr(e.Y)
		return fragment{x.at(precOr) + " || " + y.at(precOr+1), precOr}
	}
	tmp := t.tempvar()
	x := t.expr(e.X)
	y := t.expr(e.Y)
	test := fmt.Sprintf("%s(%s = %s)", t.helper("_py_truthy"), tmp, x.code)
	if e.Op == syntax.AND {
		return fragment{
			fmt.Sprintf("%s ? %s : %s", test, y.at(precCond+1), tmp),
			precCond,
		}
	}
	return fragment{
		fmt.Sprintf("%s ? %s : %s", test, tmp, y.at(precCond)),
		precCond,
	}
}

// comparison lowers a comparison, possibly chained (a < b < c).  The
// parser leaves a chain as a left spine of comparison nodes; an
// explicitly parenthesized comparison operand is a ParenExpr and is
// not part of the chain.  Each interior operand is evaluated exactly
// once, through a temporary unless it is trivially pure.
func (t *translator) comparison(e *syntax.BinaryExpr) fragment {
	// Collect the spine: operands[0] op[0] operands[1] op[1] ...
	var operands []syntax.Expr
	var ops []syntax.Token
	for {
		operands = append([]syntax.Expr{e.Y}, operands...)
		ops = append([]syntax.Token{e.Op}, ops...)
		left, ok := e.X.(*syntax.BinaryExpr)
		if !ok || !cmpOp[left.Op] {
			operands = append([]syntax.Expr{e.X}, operands...)
			break
		}
		e = left
	}

	// Translate each operand once.  Interior operands appear in two
	// pairs; impure ones are bound to a temporary at first mention.
	first := make([]string, len(operands))  // code for first mention
	second := make([]string, len(operands)) // code for second mention
	for i, operand := range operands {
		f := t.expr(operand)
		interior := i > 0 && i < len(operands)-1
		if interior && !pure(operand) {
			tmp := t.tempvar()
			first[i] = fmt.Sprintf("(%s = %s)", tmp, f.code)
			second[i] = tmp
		} else {
			code := f.at(precUnary) // tight enough for every pair form
			first[i] = code
			second[i] = code
		}
	}

	var pairs []string
	for i, op := range ops {
		lhs := second[i]
		if i == 0 {
			lhs = first[i]
		}
		pairs = append(pairs, t.comparePair(op, lhs, first[i+1]))
	}
	if len(pairs) == 1 {
		return fragment{pairs[0], pairPrec(ops[0])}
	}
	return fragment{strings.Join(pairs, " && "), precAnd}
}

func pairPrec(op syntax.Token) int {
	switch op {
	case syntax.LT, syntax.LE, syntax.GT, syntax.GE:
		return precRel
	case syntax.IS, syntax.IS_NOT:
		return precEq
	case syntax.NEQ, syntax.NOT_IN:
		return precUnary
	}
	return precPostfix // helper call
}

func (t *translator) comparePair(op syntax.Token, lhs, rhs string) string {
	switch op {
	case syntax.LT, syntax.LE, syntax.GT, syntax.GE:
		return fmt.Sprintf("%s %s %s", lhs, op, rhs)
	case syntax.IS:
		return fmt.Sprintf("%s === %s", lhs, rhs)
	case syntax.IS_NOT:
		return fmt.Sprintf("%s !== %s", lhs, rhs)
	case syntax.EQL:
		return fmt.Sprintf("%s(%s, %s)", t.helper("_py_eq"), lhs, rhs)
	case syntax.NEQ:
		return fmt.Sprintf("!%s(%s, %s)", t.helper("_py_eq"), lhs, rhs)
	case syntax.IN:
		return fmt.Sprintf("%s(%s, %s)", t.helper("_py_contains"), lhs, rhs)
	case syntax.NOT_IN:
		return fmt.Sprintf("!%s(%s, %s)", t.helper("_py_contains"), lhs, rhs)
	}
	panic(&Error{Kind: InternalInvariant, Msg: "unexpected comparison " + op.String()})
}

// numericLiteral reports whether e is an int or float literal, so a
// native arithmetic operator is exact.
func numericLiteral(e syntax.Expr) bool {
	lit, ok := e.(*syntax.Literal)
	return ok && (lit.Token == syntax.INT || lit.Token == syntax.FLOAT)
}

// pure reports whether evaluating e twice is indistinguishable from
// evaluating it once.
func pure(e syntax.Expr) bool {
	switch e := e.(type) {
	case *syntax.Ident, *syntax.Literal:
		return true
	case *syntax.ParenExpr:
		return pure(e.X)
	}
	return false
}

// isBoolExpr reports whether e provably evaluates to a JavaScript
// boolean, making a truthiness wrapper redundant.
func isBoolExpr(e syntax.Expr) bool {
	switch e := e.(type) {
	case *syntax.ParenExpr:
		return isBoolExpr(e.X)
	case *syntax.UnaryExpr:
		return e.Op == syntax.NOT
	case *syntax.BinaryExpr:
		if cmpOp[e.Op] {
			return true
		}
		if e.Op == syntax.AND || e.Op == syntax.OR {
			return isBoolExpr(e.X) && isBoolExpr(e.Y)
		}
	case *syntax.Ident:
		return e.Name == "True" || e.Name == "False"
	}
	return false
}

// boolExpr translates e for a condition position: the result is a
// JavaScript boolean.
func (t *translator) boolExpr(e syntax.Expr) string {
	return t.boolOperand(e)
}

// boolOperand is boolExpr constrained to unary-operand precedence,
// so the caller may prefix it with "!".
func (t *translator) boolOperand(e syntax.Expr) string {
	if isBoolExpr(e) {
		return t.expr(e).at(precUnary)
	}
	return fmt.Sprintf("%s(%s)", t.helper("_py_truthy"), t.expr(e).code)
}

// indexExpr lowers a subscript through the runtime helper even for
// literal keys: a bare o[k] would return undefined where the source
// raises IndexError or KeyError.
func (t *translator) indexExpr(e *syntax.IndexExpr) fragment {
	x := t.expr(e.X)
	return fragment{
		fmt.Sprintf("%s(%s, %s)", t.helper("_py_getitem"), x.code, t.expr(e.Y).code),
		precPostfix,
	}
}

func (t *translator) sliceExpr(e *syntax.SliceExpr) fragment {
	bound := func(b syntax.Expr) string {
		if b == nil {
			return "null"
		}
		return t.expr(b).code
	}
	return fragment{
		fmt.Sprintf("%s(%s, %s, %s, %s)", t.helper("_py_slice"),
			t.expr(e.X).code, bound(e.Lo), bound(e.Hi), bound(e.Step)),
		precPostfix,
	}
}

func (t *translator) yieldExpr(e *syntax.YieldExpr) fragment {
	if !t.opts.Profile.Generators {
		t.errorf(e.Yield, UnsupportedConstruct, "generators require a target profile with generator support")
	}
	if e.Result == nil {
		return fragment{"yield", precLowest}
	}
	return fragment{"yield " + t.expr(e.Result).code, precLowest}
}

// comprehension lowers a list/set/dict comprehension to an
// immediately-invoked closure holding an accumulation loop, so the
// loop variables never leak into the enclosing scope, including on
// targets without block-scoped declarations.  The first for-clause
// iterable is evaluated in the enclosing scope, outside the closure,
// so a loop variable that shadows a name there (as in [x for x in x])
// cannot capture its own iterable.
func (t *translator) comprehension(e *syntax.Comprehension) fragment {
	fn := e.Function.(*resolve.Function)

	first := e.Clauses[0].(*syntax.ForClause)
	arg := fmt.Sprintf("%s(%s)", t.helper("_py_iter"), t.expr(first.X).code)
	seq0 := t.stmtvar("seq")

	t.pushFunction(fn)
	defer t.popFunction()

	locals, err := t.declare(fn.Locals)
	if err != nil {
		panic(err.(*Error))
	}

	body := &emitter{indent: t.opts.Indent, depth: 1}
	res := t.stmtvar("res")
	entry, isDict := e.Body.(*syntax.DictEntry)
	if isDict {
		body.line("var %s = {};", res)
	} else {
		body.line("var %s = [];", res)
	}

	depth0 := body.depth
	for i, clause := range e.Clauses {
		switch clause := clause.(type) {
		case *syntax.ForClause:
			seq := seq0
			if i > 0 {
				seq = t.stmtvar("seq")
				body.line("var %s = %s(%s);", seq, t.helper("_py_iter"), t.expr(clause.X).code)
			}
			idx := t.stmtvar("i")
			body.open("for (var %s = 0; %s < %s.length; %s++) {", idx, idx, seq, idx)
			t.assignTo(body, clause.Vars, fragment{seq + "[" + idx + "]", precPostfix})
		case *syntax.IfClause:
			body.open("if (%s) {", t.boolExpr(clause.Cond))
		}
	}

	switch {
	case isDict:
		body.line("%s[%s] = %s;", res, t.expr(entry.Key).code, t.expr(entry.Value).code)
	case e.Kind == syntax.LBRACE:
		body.line("%s(%s, %s);", t.helper("_py_setadd"), res, t.expr(e.Body).code)
	default:
		body.line("%s.push(%s);", res, t.expr(e.Body).code)
	}

	for body.depth > depth0 {
		body.close("}")
	}
	body.line("return %s;", res)

	decls := append(locals, t.fn.temps...)
	var buf strings.Builder
	buf.WriteString("(function (" + seq0 + ") {\n")
	if len(decls) > 0 {
		buf.WriteString(t.opts.Indent + "var " + joinNames(decls) + ";\n")
	}
	buf.WriteString(body.String())
	buf.WriteString("}).call(this, " + arg + ")")
	return fragment{buf.String(), precPostfix}
}
