// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package resolve defines a name-resolution pass for the Python subset.
//
// The resolver sets the Binding field of each syntax.Ident, classifying
// every name reference as local to a function, a cell shared with a
// nested function, free (bound by an enclosing function), global to the
// module, an attribute of the enclosing class body, or universal (a
// built-in such as len or ValueError).  It reproduces the source
// language's scoping rules:
//
//   - A name assigned anywhere in a function body is local to the whole
//     body, unless declared global or nonlocal; references to it before
//     the first assignment still resolve to the local binding.  The
//     resolver performs a full pre-pass over each body to collect
//     assignment targets before resolving any reference.
//
//   - Class-body bindings become attributes of the class, not lexical
//     variables: they are invisible to functions nested in the body.
//
//   - Comprehension loop variables are local to the comprehension and
//     do not leak into the enclosing scope.  The iterable of the first
//     for-clause is resolved in the enclosing scope.
//
// The resolver also records, per function, its local and free
// variables, whether it is a generator, and its parameter shape, all of
// which the translator consumes.
package resolve // import "go.adder.dev/resolve"

import (
	"fmt"

	"go.adder.dev/internal/spell"
	"go.adder.dev/syntax"
)

// An ErrorList is a non-empty list of resolver error messages.
type ErrorList []Error // len > 0

func (e ErrorList) Error() string { return e[0].Error() }

// An Error describes the nature and position of a resolver error.
type Error struct {
	Pos syntax.Position
	Msg string
}

func (e Error) Error() string { return e.Pos.String() + ": " + e.Msg }

// A Module contains resolver information about a file.
// The resolver populates the Module field of each syntax.File.
type Module struct {
	Globals []*syntax.Binding // the file's module-level variables, in order of binding
}

// A Function contains resolver information about a function, lambda,
// or comprehension.  The resolver populates the Function field of each
// syntax.DefStmt, syntax.LambdaExpr and syntax.Comprehension.
type Function struct {
	Pos    syntax.Position // of DEF, LAMBDA or opening bracket
	Name   string          // name of def, or "lambda" or "comprehension"
	Params []syntax.Expr   // param = ident | ident=expr | * | *ident | **ident
	Body   []syntax.Stmt   // statements of a def body; nil for lambda and comprehension

	HasVarargs      bool              // whether params includes *args
	HasKwargs       bool              // whether params includes **kwargs
	NumKwonlyParams int               // number of keyword-only optional parameters
	HasDefaults     bool              // whether any param carries a default value
	IsGenerator     bool              // whether the body contains a yield expression
	Locals          []*syntax.Binding // this function's local/cell variables, parameters first
	FreeVars        []*syntax.Binding // enclosing cells referred to by this function
}

// A Class contains resolver information about a class statement.
// The resolver populates the Class field of each syntax.ClassStmt.
type Class struct {
	Name  string
	Attrs []*syntax.Binding // class-body attributes (including methods), in order of binding
}

// File resolves the specified file and populates the Module field.
//
// The isUniversal predicate reports whether a name is a universal
// built-in of the translation target's runtime catalog (e.g. len,
// range, True, ValueError).
func File(file *syntax.File, isUniversal func(name string) bool) error {
	r := newResolver(isUniversal)
	r.stmts(file.Stmts)

	r.file = file
	file.Module = &Module{Globals: r.moduleGlobals}

	if len(r.errors) > 0 {
		return r.errors
	}
	return nil
}

// Expr resolves a standalone expression, as in a REPL,
// treating it as if it appeared at module level.
func Expr(expr syntax.Expr, isUniversal func(name string) bool) error {
	r := newResolver(isUniversal)
	r.expr(expr)
	if len(r.errors) > 0 {
		return r.errors
	}
	return nil
}

// REPLChunk resolves one input of a REPL session.  Free names that
// isSession recognizes resolve as module globals, so successive inputs
// may refer to names defined by earlier ones.
func REPLChunk(file *syntax.File, isSession, isUniversal func(name string) bool) error {
	r := newResolver(isUniversal)
	r.isSession = isSession
	r.stmts(file.Stmts)

	r.file = file
	file.Module = &Module{Globals: r.moduleGlobals}

	if len(r.errors) > 0 {
		return r.errors
	}
	return nil
}

type blockKind uint8

const (
	moduleBlock blockKind = iota
	functionBlock
	classBlock
	comprehensionBlock
)

type block struct {
	parent *block // nil for module block
	kind   blockKind

	function *Function // for functionBlock and comprehensionBlock
	class    *Class    // for classBlock

	// bindings maps a name to its binding; a 'global' or 'nonlocal'
	// declaration installs an alias to the distant binding here.
	bindings map[string]*syntax.Binding
}

func (b *block) bind(name string, bind *syntax.Binding) {
	b.bindings[name] = bind
}

func (b *block) String() string {
	switch b.kind {
	case moduleBlock:
		return "module"
	case classBlock:
		return "class " + b.class.Name
	case comprehensionBlock:
		return "comprehension"
	}
	return "function " + b.function.Name
}

type resolver struct {
	file *syntax.File

	// env is the current local environment:
	// a linked list of blocks, innermost first.
	env           *block
	moduleGlobals []*syntax.Binding

	// loops is the number of enclosing loops within the current
	// function, for break/continue validation.
	loops int

	isUniversal func(name string) bool

	// isSession reports names defined by earlier inputs of a REPL
	// session; nil outside REPLChunk.
	isSession func(name string) bool

	errors ErrorList
}

func newResolver(isUniversal func(name string) bool) *resolver {
	r := &resolver{isUniversal: isUniversal}
	r.env = &block{kind: moduleBlock, bindings: make(map[string]*syntax.Binding)}
	return r
}

func (r *resolver) errorf(pos syntax.Position, format string, args ...interface{}) {
	r.errors = append(r.errors, Error{pos, fmt.Sprintf(format, args...)})
}

func (r *resolver) push(b *block) {
	b.parent = r.env
	if b.bindings == nil {
		b.bindings = make(map[string]*syntax.Binding)
	}
	r.env = b
}

func (r *resolver) pop() { r.env = r.env.parent }

// container returns the innermost enclosing function-like block
// (function, comprehension, or module), skipping class blocks.
func (r *resolver) container() *block {
	for b := r.env; ; b = b.parent {
		if b.kind != classBlock {
			return b
		}
	}
}

// bind creates (or re-uses) a binding for id in the current block,
// recording it as an assignment target.
func (r *resolver) bind(id *syntax.Ident) *syntax.Binding {
	b := r.env
	bind, ok := b.bindings[id.Name]
	if !ok {
		switch b.kind {
		case moduleBlock:
			bind = &syntax.Binding{Scope: syntax.GlobalScope, Index: len(r.moduleGlobals), First: id}
			r.moduleGlobals = append(r.moduleGlobals, bind)
		case classBlock:
			bind = &syntax.Binding{Scope: syntax.ClassAttrScope, Index: len(b.class.Attrs), First: id}
			b.class.Attrs = append(b.class.Attrs, bind)
		default:
			bind = &syntax.Binding{Scope: syntax.LocalScope, Index: len(b.function.Locals), First: id}
			b.function.Locals = append(b.function.Locals, bind)
		}
		b.bind(id.Name, bind)
	}
	id.Binding = bind
	return bind
}

// use resolves a name reference, setting id.Binding.
func (r *resolver) use(id *syntax.Ident) {
	startFn := r.container()
	for b := r.env; b != nil; b = b.parent {
		// Class-body bindings are attributes, not lexical
		// variables: they are visible only to references made
		// directly within the class body.
		if b.kind == classBlock && b != r.env {
			continue
		}
		if bind, ok := b.bindings[id.Name]; ok {
			if bind.Scope == syntax.LocalScope && b.kind != moduleBlock && b != startFn && b.function != startFn.function {
				// Captured by a nested function: the defining
				// function must keep it in a cell.
				bind.Scope = syntax.CellScope
			}
			if bind.Scope == syntax.CellScope && startFn.function != nil && b.function != startFn.function {
				r.recordFreeVar(startFn.function, bind)
			}
			id.Binding = bind
			return
		}
	}

	if r.isSession != nil && r.isSession(id.Name) {
		// Defined by an earlier input of the session: resolve as a
		// module global.  Session names shadow universal builtins,
		// as rebinding does within a single file.
		mod := r.env
		for mod.kind != moduleBlock {
			mod = mod.parent
		}
		bind := &syntax.Binding{Scope: syntax.GlobalScope, Index: len(r.moduleGlobals), First: id}
		r.moduleGlobals = append(r.moduleGlobals, bind)
		mod.bind(id.Name, bind)
		id.Binding = bind
		return
	}

	if r.isUniversal(id.Name) {
		id.Binding = &syntax.Binding{Scope: syntax.UniversalScope}
		return
	}

	var hint string
	if r.boundInSkippedClass(id.Name) {
		hint = " (class attributes must be accessed through self or the class)"
	} else if n := r.spellcheck(id.Name); n != "" {
		hint = fmt.Sprintf(" (did you mean %s?)", n)
	}
	r.errorf(id.NamePos, "undefined: %s%s", id.Name, hint)
	id.Binding = &syntax.Binding{Scope: syntax.UndefinedScope}
}

// boundInSkippedClass reports whether name is bound in an enclosing
// class body that lexical lookup skipped.
func (r *resolver) boundInSkippedClass(name string) bool {
	for b := r.env; b != nil; b = b.parent {
		if b.kind == classBlock && b != r.env {
			if _, ok := b.bindings[name]; ok {
				return true
			}
		}
	}
	return false
}

func (r *resolver) recordFreeVar(fn *Function, bind *syntax.Binding) {
	for _, fv := range fn.FreeVars {
		if fv == bind {
			return
		}
	}
	fn.FreeVars = append(fn.FreeVars, bind)
}

// spellcheck returns the most likely misspelling of name
// in the current environment.
func (r *resolver) spellcheck(name string) string {
	var names []string
	for b := r.env; b != nil; b = b.parent {
		for n := range b.bindings {
			names = append(names, n)
		}
	}
	return spell.Nearest(name, names)
}

// stmts resolves a statement list in the current block.
// It performs the binding pre-pass before resolving any reference,
// reproducing the source rule that an assignment anywhere in a body
// makes the name local to the whole body.
func (r *resolver) stmts(stmts []syntax.Stmt) {
	r.createBindings(stmts)
	for _, stmt := range stmts {
		r.stmt(stmt)
	}
}

// createBindings is the shallow pre-pass: it binds every assignment
// target in stmts, honoring global and nonlocal declarations, but does
// not descend into nested function, lambda, class, or comprehension
// scopes.
func (r *resolver) createBindings(stmts []syntax.Stmt) {
	for _, stmt := range stmts {
		switch stmt := stmt.(type) {
		case *syntax.AssignStmt:
			r.bindTargets(stmt.LHS)
		case *syntax.DefStmt:
			bind := r.bind(stmt.Name)
			bind.IsClass = false
		case *syntax.ClassStmt:
			bind := r.bind(stmt.Name)
			bind.IsClass = true
		case *syntax.ForStmt:
			r.bindTargets(stmt.Vars)
			r.createBindings(stmt.Body)
			r.createBindings(stmt.Else)
		case *syntax.WhileStmt:
			r.createBindings(stmt.Body)
			r.createBindings(stmt.Else)
		case *syntax.IfStmt:
			r.createBindings(stmt.True)
			r.createBindings(stmt.False)
		case *syntax.TryStmt:
			r.createBindings(stmt.Body)
			for _, clause := range stmt.Handlers {
				if clause.Name != nil {
					r.bind(clause.Name)
				}
				r.createBindings(clause.Body)
			}
			r.createBindings(stmt.Else)
			r.createBindings(stmt.Finally)
		case *syntax.WithStmt:
			for _, item := range stmt.Items {
				if item.Var != nil {
					r.bindTargets(item.Var)
				}
			}
			r.createBindings(stmt.Body)
		case *syntax.GlobalStmt:
			for _, name := range stmt.Names {
				r.declareGlobal(name)
			}
		case *syntax.NonlocalStmt:
			for _, name := range stmt.Names {
				r.declareNonlocal(name)
			}
		}
	}
}

func (r *resolver) declareGlobal(id *syntax.Ident) {
	b := r.env
	if b.kind == moduleBlock {
		return // no effect at module level
	}
	if _, ok := b.bindings[id.Name]; ok {
		r.errorf(id.NamePos, "name %s is assigned before global declaration", id.Name)
		return
	}
	// Find or create the module-level binding.
	mod := b
	for mod.kind != moduleBlock {
		mod = mod.parent
	}
	bind, ok := mod.bindings[id.Name]
	if !ok {
		bind = &syntax.Binding{Scope: syntax.GlobalScope, Index: len(r.moduleGlobals), First: id}
		r.moduleGlobals = append(r.moduleGlobals, bind)
		mod.bind(id.Name, bind)
	}
	b.bind(id.Name, bind)
	id.Binding = bind
}

func (r *resolver) declareNonlocal(id *syntax.Ident) {
	b := r.env
	if b.kind == moduleBlock {
		r.errorf(id.NamePos, "nonlocal declaration not allowed at module level")
		return
	}
	if _, ok := b.bindings[id.Name]; ok {
		r.errorf(id.NamePos, "name %s is assigned before nonlocal declaration", id.Name)
		return
	}
	for enc := b.parent; enc != nil; enc = enc.parent {
		if enc.kind == moduleBlock {
			break
		}
		if enc.kind != functionBlock {
			continue
		}
		if bind, ok := enc.bindings[id.Name]; ok && (bind.Scope == syntax.LocalScope || bind.Scope == syntax.CellScope) {
			bind.Scope = syntax.CellScope
			b.bind(id.Name, bind)
			id.Binding = bind
			return
		}
	}
	r.errorf(id.NamePos, "no binding for nonlocal %s found", id.Name)
}

// bindTargets binds the identifiers of an assignment target.
func (r *resolver) bindTargets(target syntax.Expr) {
	switch target := target.(type) {
	case *syntax.Ident:
		r.bind(target)

	case *syntax.TupleExpr:
		for _, x := range target.List {
			r.bindTargets(x)
		}

	case *syntax.ListExpr:
		for _, x := range target.List {
			r.bindTargets(x)
		}

	case *syntax.ParenExpr:
		r.bindTargets(target.X)

	case *syntax.IndexExpr, *syntax.SliceExpr, *syntax.DotExpr:
		// x[i] = ..., x[i:j] = ..., x.f = ...: no binding created.

	default:
		r.errorf(syntax.Start(target), "cannot assign to %s", exprKindName(target))
	}
}

func (r *resolver) stmt(stmt syntax.Stmt) {
	switch stmt := stmt.(type) {
	case *syntax.ExprStmt:
		r.expr(stmt.X)

	case *syntax.BranchStmt:
		if r.loops == 0 && (stmt.Token == syntax.BREAK || stmt.Token == syntax.CONTINUE) {
			r.errorf(stmt.TokenPos, "%s not in a loop", stmt.Token)
		}

	case *syntax.IfStmt:
		r.expr(stmt.Cond)
		for _, s := range stmt.True {
			r.stmt(s)
		}
		for _, s := range stmt.False {
			r.stmt(s)
		}

	case *syntax.AssignStmt:
		r.expr(stmt.RHS)
		if stmt.Op != syntax.EQ {
			// x += y is a use as well as an assignment
			r.assignUse(stmt.LHS)
		}
		r.assign(stmt.LHS)

	case *syntax.AssertStmt:
		r.expr(stmt.Cond)
		if stmt.Msg != nil {
			r.expr(stmt.Msg)
		}

	case *syntax.DefStmt:
		r.assign(stmt.Name)
		fn := &Function{
			Pos:    stmt.Def,
			Name:   stmt.Name.Name,
			Params: stmt.Params,
			Body:   stmt.Body,
		}
		stmt.Function = fn
		r.function(fn, stmt.Def)
		if fn.IsGenerator && stmt.Async {
			r.errorf(stmt.Def, "async generator functions are not supported")
		}

	case *syntax.ClassStmt:
		r.assign(stmt.Name)
		for _, base := range stmt.Bases {
			r.expr(base)
		}
		cls := &Class{Name: stmt.Name.Name}
		stmt.Class = cls
		b := &block{kind: classBlock, class: cls}
		r.push(b)
		savedLoops := r.loops
		r.loops = 0
		r.stmts(stmt.Body)
		r.loops = savedLoops
		r.pop()

	case *syntax.DelStmt:
		for _, x := range stmt.List {
			switch x.(type) {
			case *syntax.IndexExpr, *syntax.DotExpr:
				r.expr(x)
			default:
				r.errorf(syntax.Start(x), "can only delete an item or attribute, not %s", exprKindName(x))
			}
		}

	case *syntax.ForStmt:
		r.expr(stmt.X)
		r.assign(stmt.Vars)
		r.loops++
		for _, s := range stmt.Body {
			r.stmt(s)
		}
		r.loops--
		for _, s := range stmt.Else {
			r.stmt(s)
		}

	case *syntax.WhileStmt:
		r.expr(stmt.Cond)
		r.loops++
		for _, s := range stmt.Body {
			r.stmt(s)
		}
		r.loops--
		for _, s := range stmt.Else {
			r.stmt(s)
		}

	case *syntax.GlobalStmt, *syntax.NonlocalStmt:
		// handled by createBindings

	case *syntax.RaiseStmt:
		if stmt.Exc != nil {
			r.expr(stmt.Exc)
		}

	case *syntax.ReturnStmt:
		if r.container().kind != functionBlock {
			r.errorf(stmt.Return, "return statement not within a function")
		}
		if stmt.Result != nil {
			r.expr(stmt.Result)
		}

	case *syntax.TryStmt:
		for _, s := range stmt.Body {
			r.stmt(s)
		}
		for _, clause := range stmt.Handlers {
			if clause.Type != nil {
				r.expr(clause.Type)
			}
			if clause.Name != nil {
				r.assign(clause.Name)
			}
			for _, s := range clause.Body {
				r.stmt(s)
			}
		}
		for _, s := range stmt.Else {
			r.stmt(s)
		}
		for _, s := range stmt.Finally {
			r.stmt(s)
		}

	case *syntax.WithStmt:
		for _, item := range stmt.Items {
			r.expr(item.X)
			if item.Var != nil {
				r.assign(item.Var)
			}
		}
		for _, s := range stmt.Body {
			r.stmt(s)
		}

	default:
		panic(fmt.Sprintf("unexpected stmt %T", stmt))
	}
}

// assign resolves the identifiers of an already-bound assignment
// target, and the uses within its index/attribute subexpressions.
func (r *resolver) assign(target syntax.Expr) {
	switch target := target.(type) {
	case *syntax.Ident:
		// The pre-pass bound it in this block (or installed a
		// global/nonlocal alias).
		if bind, ok := r.env.bindings[target.Name]; ok {
			target.Binding = bind
		} else {
			// Happens only for targets the pre-pass rejected.
			target.Binding = &syntax.Binding{Scope: syntax.UndefinedScope}
		}

	case *syntax.TupleExpr:
		for _, x := range target.List {
			r.assign(x)
		}

	case *syntax.ListExpr:
		for _, x := range target.List {
			r.assign(x)
		}

	case *syntax.ParenExpr:
		r.assign(target.X)

	case *syntax.IndexExpr:
		r.expr(target.X)
		r.expr(target.Y)

	case *syntax.SliceExpr:
		r.expr(target.X)
		if target.Lo != nil {
			r.expr(target.Lo)
		}
		if target.Hi != nil {
			r.expr(target.Hi)
		}
		if target.Step != nil {
			r.expr(target.Step)
		}

	case *syntax.DotExpr:
		r.expr(target.X)

	default:
		// already reported by bindTargets
	}
}

// assignUse records the reads implied by an augmented assignment target.
func (r *resolver) assignUse(target syntax.Expr) {
	if id, ok := target.(*syntax.Ident); ok {
		r.use(id)
	}
	// Index/attribute reads are resolved by assign.
}

func (r *resolver) expr(e syntax.Expr) {
	switch e := e.(type) {
	case *syntax.Ident:
		r.use(e)

	case *syntax.Literal:
		// nothing to do

	case *syntax.FString:
		for _, chunk := range e.Chunks {
			if chunk.X != nil {
				r.expr(chunk.X)
			}
		}

	case *syntax.ListExpr:
		for _, x := range e.List {
			r.expr(x)
		}

	case *syntax.SetExpr:
		for _, x := range e.List {
			r.expr(x)
		}

	case *syntax.CondExpr:
		r.expr(e.Cond)
		r.expr(e.True)
		r.expr(e.False)

	case *syntax.IndexExpr:
		r.expr(e.X)
		r.expr(e.Y)

	case *syntax.DictEntry:
		r.expr(e.Key)
		r.expr(e.Value)

	case *syntax.SliceExpr:
		r.expr(e.X)
		if e.Lo != nil {
			r.expr(e.Lo)
		}
		if e.Hi != nil {
			r.expr(e.Hi)
		}
		if e.Step != nil {
			r.expr(e.Step)
		}

	case *syntax.Comprehension:
		fn := &Function{
			Pos:  e.Lbrack,
			Name: "comprehension",
		}
		e.Function = fn

		// The iterable of the first for-clause is resolved in
		// the enclosing scope.
		first := e.Clauses[0].(*syntax.ForClause)
		r.expr(first.X)

		b := &block{kind: comprehensionBlock, function: fn}
		r.push(b)
		savedLoops := r.loops
		r.loops = 0
		for i, clause := range e.Clauses {
			switch clause := clause.(type) {
			case *syntax.ForClause:
				r.bindTargets(clause.Vars)
				r.assign(clause.Vars)
				if i > 0 {
					r.expr(clause.X)
				}
			case *syntax.IfClause:
				r.expr(clause.Cond)
			}
		}
		r.expr(e.Body)
		r.loops = savedLoops
		r.pop()

	case *syntax.TupleExpr:
		for _, x := range e.List {
			r.expr(x)
		}

	case *syntax.DictExpr:
		for _, entry := range e.List {
			entry := entry.(*syntax.DictEntry)
			r.expr(entry.Key)
			r.expr(entry.Value)
		}

	case *syntax.UnaryExpr:
		if e.X != nil {
			r.expr(e.X)
		}

	case *syntax.BinaryExpr:
		r.expr(e.X)
		r.expr(e.Y)

	case *syntax.DotExpr:
		// ignore e.Name: attributes are late-bound
		r.expr(e.X)

	case *syntax.ParenExpr:
		r.expr(e.X)

	case *syntax.CallExpr:
		r.expr(e.Fn)
		seenKwargs := false
		var seenName map[string]bool
		for _, arg := range e.Args {
			pos, _ := arg.Span()
			if unop, ok := arg.(*syntax.UnaryExpr); ok && unop.Op == syntax.STARSTAR {
				if seenKwargs {
					r.errorf(pos, "multiple **kwargs not allowed")
				}
				seenKwargs = true
				r.expr(arg)
				continue
			}
			if binop, ok := arg.(*syntax.BinaryExpr); ok && binop.Op == syntax.EQ {
				// k=v
				name := binop.X.(*syntax.Ident).Name
				if seenName[name] {
					r.errorf(pos, "keyword argument %s repeated", name)
				} else {
					if seenName == nil {
						seenName = make(map[string]bool)
					}
					seenName[name] = true
				}
				r.expr(binop.Y)
				continue
			}
			r.expr(arg)
		}

	case *syntax.LambdaExpr:
		fn := &Function{
			Pos:    e.Lambda,
			Name:   "lambda",
			Params: e.Params,
		}
		e.Function = fn
		r.functionBody(fn, e.Lambda, func() { r.expr(e.Body) })

	case *syntax.YieldExpr:
		fb := r.container()
		if fb.kind != functionBlock {
			r.errorf(e.Yield, "yield expression not within a function")
		} else {
			fb.function.IsGenerator = true
		}
		if e.Result != nil {
			r.expr(e.Result)
		}

	case *syntax.AwaitExpr:
		if r.container().kind != functionBlock {
			r.errorf(e.Await, "await expression not within a function")
		}
		r.expr(e.X)

	default:
		panic(fmt.Sprintf("unexpected expr %T", e))
	}
}

// function resolves a def statement's body in a new function block.
func (r *resolver) function(fn *Function, pos syntax.Position) {
	r.functionBody(fn, pos, func() { r.stmts(fn.Body) })
}

func (r *resolver) functionBody(fn *Function, pos syntax.Position, body func()) {
	// Resolve defaults in the enclosing scope: they are evaluated
	// once, at definition time.
	for _, param := range fn.Params {
		if binary, ok := param.(*syntax.BinaryExpr); ok {
			r.expr(binary.Y)
		}
	}

	b := &block{kind: functionBlock, function: fn}
	r.push(b)

	var seenOptional bool
	var star *syntax.UnaryExpr // * or *args param
	var starStar *syntax.Ident // **kwargs ident
	for _, param := range fn.Params {
		switch param := param.(type) {
		case *syntax.Ident:
			// e.g. x
			if starStar != nil {
				r.errorf(param.NamePos, "required parameter may not follow **%s", starStar.Name)
			} else if star != nil {
				fn.NumKwonlyParams++
			} else if seenOptional {
				r.errorf(param.NamePos, "required parameter may not follow optional")
			}
			if r.bindParam(fn, param) {
				r.errorf(param.NamePos, "duplicate parameter: %s", param.Name)
			}

		case *syntax.BinaryExpr:
			// e.g. y=dflt
			if starStar != nil {
				r.errorf(param.OpPos, "optional parameter may not follow **%s", starStar.Name)
			} else if star != nil {
				fn.NumKwonlyParams++
			} else {
				seenOptional = true
			}
			fn.HasDefaults = true
			if id := param.X.(*syntax.Ident); r.bindParam(fn, id) {
				r.errorf(id.NamePos, "duplicate parameter: %s", id.Name)
			}

		case *syntax.UnaryExpr:
			// * or *args or **kwargs
			if param.Op == syntax.STAR {
				if starStar != nil {
					r.errorf(param.OpPos, "* parameter may not follow **%s", starStar.Name)
				} else if star != nil {
					r.errorf(param.OpPos, "multiple * parameters not allowed")
				} else {
					star = param
				}
			} else {
				if starStar != nil {
					r.errorf(param.OpPos, "multiple ** parameters not allowed")
				}
				starStar = param.X.(*syntax.Ident)
			}
			if param.X != nil {
				if id := param.X.(*syntax.Ident); r.bindParam(fn, id) {
					r.errorf(id.NamePos, "duplicate parameter: %s", id.Name)
				}
			}
		}
	}

	if star != nil && star.X == nil && fn.NumKwonlyParams == 0 {
		r.errorf(star.OpPos, "bare * must be followed by keyword-only parameters")
	}
	fn.HasVarargs = star != nil && star.X != nil
	fn.HasKwargs = starStar != nil

	savedLoops := r.loops
	r.loops = 0
	body()
	r.loops = savedLoops

	r.pop()
}

// bindParam binds a parameter name, reporting whether it was a duplicate.
func (r *resolver) bindParam(fn *Function, id *syntax.Ident) (dup bool) {
	if _, ok := r.env.bindings[id.Name]; ok {
		return true
	}
	r.bind(id)
	return false
}

func exprKindName(e syntax.Expr) string {
	switch e.(type) {
	case *syntax.Ident:
		return "name"
	case *syntax.Literal:
		return "literal"
	case *syntax.CallExpr:
		return "function call"
	case *syntax.LambdaExpr:
		return "lambda"
	case *syntax.Comprehension:
		return "comprehension"
	case *syntax.BinaryExpr:
		return "operator"
	case *syntax.UnaryExpr:
		return "operator"
	case *syntax.CondExpr:
		return "conditional expression"
	}
	return fmt.Sprintf("%T", e)
}
