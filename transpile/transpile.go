// Copyright 2024 The Adder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transpile translates a resolved syntax tree for the Python
// subset into JavaScript source text.
//
// Translation is a pure, synchronous tree traversal: a call builds a
// fresh translator, walks the tree, and either returns the generated
// text plus the set of runtime helpers it references, or fails with a
// position-carrying error.  No state is shared between calls; the
// helper catalog (package jslib) is read-only, so concurrent calls
// are safe.
//
// The generated module is wrapped in an immediately-invoked function
// so that module-level names do not leak into the target's global
// scope.  With inline linking the referenced helper definitions are
// prepended inside the wrapper; with external linking the caller is
// responsible for loading a shared runtime module (jslib.Emit) built
// from Result.Helpers.
package transpile // import "go.adder.dev/transpile"

import (
	"fmt"
	"sort"
	"strings"

	"go.adder.dev/jslib"
	"go.adder.dev/resolve"
	"go.adder.dev/syntax"
)

// A Result holds the output of a successful translation.
type Result struct {
	// JS is the generated JavaScript source.
	JS string

	// Helpers lists the names of the runtime helpers the generated
	// code references, closed under helper-to-helper dependencies
	// and ordered for definition-before-use emission.
	Helpers []string
}

// File translates a resolved file.  If f has not been resolved, File
// resolves it first against the universal built-in catalog.
//
// In default strictness the first untranslatable construct aborts the
// call.  With Options.Batch, each top-level statement is translated
// independently; the output contains the statements that succeeded
// and the returned ErrorList the failures, one entry per failing
// statement in source order.
func File(f *syntax.File, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if f.Module == nil {
		if err := resolve.File(f, jslib.IsBuiltin); err != nil {
			return nil, convertResolveErrors(err)
		}
	}

	t := &translator{
		opts:     opts,
		mangler:  newMangler(f),
		helpers:  make(map[string]bool),
		plainFns: plainFunctions(f),
	}
	t.pushFunction(nil)

	mod := f.Module.(*resolve.Module)
	globals, err := t.declare(mod.Globals)
	if err != nil {
		return nil, err
	}

	body := &emitter{indent: opts.Indent}
	var errs ErrorList
	for _, stmt := range f.Stmts {
		if opts.Batch {
			sub := &emitter{indent: opts.Indent, depth: body.depth}
			if e := t.catching(func() { t.stmt(sub, stmt) }); e != nil {
				errs = append(errs, e)
				continue
			}
			body.buf.WriteString(sub.String())
		} else {
			if e := t.catching(func() { t.stmt(body, stmt) }); e != nil {
				return nil, e
			}
		}
	}

	decls := append(globals, t.fn.temps...)
	out := &emitter{indent: opts.Indent}
	out.line("(function () {")
	used := t.usedHelpers()
	if opts.Linking == LinkInline && len(used) > 0 {
		out.raw(jslib.Source(used))
	}
	if len(decls) > 0 {
		out.line("var %s;", joinNames(decls))
	}
	out.buf.WriteString(body.String())
	out.line("}).call(this);")

	res := &Result{JS: out.String(), Helpers: used}
	if len(errs) > 0 {
		return res, errs
	}
	return res, nil
}

// Source parses, resolves, and translates src, which may be a string,
// []byte, or io.Reader as for syntax.Parse.
func Source(filename string, src interface{}, opts *Options) (*Result, error) {
	f, err := syntax.Parse(filename, src, 0)
	if err != nil {
		return nil, err
	}
	return File(f, opts)
}

// Expr translates a single expression, as in a REPL.  The result's JS
// field holds a JavaScript expression, not a statement.  If e has not
// been resolved, Expr resolves it against the universal catalog.
func Expr(e syntax.Expr, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if unresolved(e) {
		if err := resolve.Expr(e, jslib.IsBuiltin); err != nil {
			return nil, convertResolveErrors(err)
		}
	}

	t := &translator{
		opts:    opts,
		mangler: newMangler(nil),
		helpers: make(map[string]bool),
	}
	t.pushFunction(nil)

	var frag fragment
	if err := t.catching(func() { frag = t.expr(e) }); err != nil {
		return nil, err
	}

	js := frag.code
	if len(t.fn.temps) > 0 {
		// The expression needed temporaries; give them a scope.
		js = fmt.Sprintf("(function () { var %s; return %s; }).call(this)",
			joinNames(t.fn.temps), frag.code)
	}
	return &Result{JS: js, Helpers: t.usedHelpers()}, nil
}

// unresolved reports whether any identifier in e lacks a binding.
func unresolved(e syntax.Expr) bool {
	found := false
	syntax.Walk(e, func(n syntax.Node) bool {
		if id, ok := n.(*syntax.Ident); ok && id.Binding == nil {
			found = true
		}
		return !found
	})
	return found
}

func convertResolveErrors(err error) error {
	list, ok := err.(resolve.ErrorList)
	if !ok {
		return err
	}
	var out ErrorList
	for _, e := range list {
		kind := UnsupportedConstruct
		if strings.HasPrefix(e.Msg, "undefined") {
			kind = NameResolution
		}
		out = append(out, &Error{Pos: e.Pos, Kind: kind, Msg: e.Msg})
	}
	return out
}

// A translator holds the state of one translation call.
type translator struct {
	opts     *Options
	mangler  *mangler
	helpers  map[string]bool
	plainFns map[*syntax.Binding]bool // names bound once to an all-positional def

	fn       *fnState
	classes  []string // enclosing class target names, innermost last
	loops    []*loopInfo
	handlers []string // catch variable names, innermost last
	ntemp    int
}

// fnState is the per-function emission state.
type fnState struct {
	parent *fnState
	fn     *resolve.Function // nil at module level
	temps  []string          // expression temporaries to declare in the prologue
}

type loopInfo struct {
	flag string // completed-normally flag, "" if the loop has no else
}

func (t *translator) pushFunction(fn *resolve.Function) {
	t.fn = &fnState{parent: t.fn, fn: fn}
}

func (t *translator) popFunction() { t.fn = t.fn.parent }

// catching runs f, converting a translation panic into an error.
func (t *translator) catching(f func()) (err *Error) {
	defer func() {
		switch e := recover().(type) {
		case nil:
		case *Error:
			err = e
		default:
			panic(e)
		}
	}()
	f()
	return nil
}

func (t *translator) errorf(pos syntax.Position, kind ErrKind, format string, args ...interface{}) {
	panic(&Error{Pos: pos, Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// helper records a runtime helper as used and returns its name.
func (t *translator) helper(name string) string {
	if !jslib.IsHelper(name) {
		panic(&Error{Kind: InternalInvariant, Msg: "unknown runtime helper " + name})
	}
	t.helpers[name] = true
	return name
}

func (t *translator) usedHelpers() []string {
	if len(t.helpers) == 0 {
		return nil
	}
	names := make([]string, 0, len(t.helpers))
	for name := range t.helpers {
		names = append(names, name)
	}
	sort.Strings(names)
	return jslib.Closure(names)
}

// tempvar allocates an expression temporary, declared in the current
// function's prologue.
func (t *translator) tempvar() string {
	name := fmt.Sprintf("$t%d", t.ntemp)
	t.ntemp++
	t.fn.temps = append(t.fn.temps, name)
	return name
}

// stmtvar allocates a temporary for statement-level lowering; the
// caller declares it with var at its first assignment.
func (t *translator) stmtvar(prefix string) string {
	name := fmt.Sprintf("$%s%d", prefix, t.ntemp)
	t.ntemp++
	return name
}

// bindingName returns the target name for a resolved identifier.
func (t *translator) bindingName(id *syntax.Ident) string {
	b := id.Binding
	if b == nil {
		t.errorf(id.NamePos, InternalInvariant, "unresolved identifier %s", id.Name)
	}
	name, err := t.mangler.name(b)
	if err != nil {
		panic(err.(*Error))
	}
	return name
}

// declare assigns target names to a scope's bindings in binding
// order, returning the names to put in the var prologue.
func (t *translator) declare(bindings []*syntax.Binding) ([]string, error) {
	var names []string
	for _, b := range bindings {
		name, err := t.mangler.name(b)
		if err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, nil
}

func joinNames(names []string) string { return strings.Join(names, ", ") }

// classTarget returns the prototype owner for class-attribute
// references, e.g. "C" for the innermost enclosing class body.
func (t *translator) classTarget() string {
	if len(t.classes) == 0 {
		return ""
	}
	return t.classes[len(t.classes)-1]
}
